//go:build windows

package stream

import "syscall"

// reuseAddress is a no-op on Windows, where closed listening ports are
// immediately reusable and SO_REUSEADDR has unrelated semantics.
func reuseAddress(_, _ string, _ syscall.RawConn) error {
	return nil
}
