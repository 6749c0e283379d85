//go:build !windows

package stream

import (
	"syscall"

	"golang.org/x/sys/unix"
)

// reuseAddress marks a listening socket's port for immediate reuse so that
// repeated short-lived server runs don't exhaust the port space.
func reuseAddress(_, _ string, connection syscall.RawConn) error {
	var result error
	if err := connection.Control(func(descriptor uintptr) {
		result = unix.SetsockoptInt(int(descriptor), unix.SOL_SOCKET, unix.SO_REUSEADDR, 1)
	}); err != nil {
		return err
	}
	return result
}
