// Package must provides helpers for cleanup-style operations whose failures
// can't meaningfully change control flow but still shouldn't pass silently.
package must

import (
	"fmt"
	"io"
	"os"

	"github.com/USEPA/rsigserver-sub001/pkg/logging"
)

// Fprint writes formatted output to a writer, logging a warning if the write
// fails or comes up short.
func Fprint(w io.Writer, logger *logging.Logger, a ...any) {
	s := fmt.Sprint(a...)
	n, err := fmt.Fprint(w, s)
	if err != nil {
		logger.Warnf("unable to print '%s': %s", s, err.Error())
	} else if n < len(s) {
		logger.Warnf("unable to print all of '%s'; printed only %d of %d bytes", s, n, len(s))
	}
}

// Close closes a closer, logging a warning on failure.
func Close(c io.Closer, logger *logging.Logger) {
	if err := c.Close(); err != nil {
		logger.Warnf("unable to close: %s", err.Error())
	}
}

// Flush flushes a flushable stream, logging a warning on failure.
func Flush(f interface{ Flush() error }, logger *logging.Logger) {
	if err := f.Flush(); err != nil {
		logger.Warnf("unable to flush: %s", err.Error())
	}
}

// OSRemove removes a filesystem path, logging a warning on failure.
func OSRemove(name string, logger *logging.Logger) {
	if err := os.Remove(name); err != nil {
		logger.Warnf("unable to remove '%s': %s", name, err.Error())
	}
}
