//go:build !windows

package app

import (
	"os"
	"syscall"
)

var triggerSignals = []os.Signal{syscall.SIGUSR1}
