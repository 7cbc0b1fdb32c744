//go:build !windows

package platform

func openWindows(Options) (Backend, error) {
	return nil, ErrUnsupported
}
