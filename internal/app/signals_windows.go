//go:build windows

package app

import "os"

// Windows has no user signals; the daemon is unavailable there.
var triggerSignals []os.Signal
