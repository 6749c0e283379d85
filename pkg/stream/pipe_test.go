//go:build !windows

package stream

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

func TestReadPipe(t *testing.T) {
	// Read a command's output through a pipe stream.
	s, err := OpenReadPipe("printf 'alpha beta\\n'")
	if err != nil {
		t.Fatal("unable to open read pipe:", err)
	}
	if s.Kind() != TransportPipe {
		t.Error("transport kind mismatch:", s.Kind())
	}
	if s.IsWritable() {
		t.Error("read pipe misreports writability")
	}
	if s.IsSeekable() {
		t.Error("pipe stream misreports seekability")
	}
	if !s.IsBlocking() {
		t.Error("pipe stream misreports blocking")
	}

	if word, err := s.ReadWord(256); err != nil {
		t.Fatal("unable to read word:", err)
	} else if word != "alpha" {
		t.Errorf("word mismatch: '%s'", word)
	}
	if word, err := s.ReadWord(256); err != nil {
		t.Fatal("unable to read word:", err)
	} else if word != "beta" {
		t.Errorf("word mismatch: '%s'", word)
	}

	// Closing waits for the child to exit.
	if err := s.Close(); err != nil {
		t.Fatal("unable to close pipe stream:", err)
	}
}

func TestWritePipe(t *testing.T) {
	// Write data into a command's standard input through a pipe stream and
	// verify it reaches the command.
	path := filepath.Join(t.TempDir(), "sink")
	s, err := OpenWritePipe(fmt.Sprintf("cat > '%s'", path))
	if err != nil {
		t.Fatal("unable to open write pipe:", err)
	}
	if s.IsReadable() {
		t.Error("write pipe misreports readability")
	}
	if err := s.WriteString("piped\n"); err != nil {
		t.Fatal("unable to write string:", err)
	}

	// Closing flushes buffered output, signals end of input, and waits for
	// the child to exit.
	if err := s.Close(); err != nil {
		t.Fatal("unable to close pipe stream:", err)
	}
	contents, err := os.ReadFile(path)
	if err != nil {
		t.Fatal("unable to read sink file:", err)
	}
	if string(contents) != "piped\n" {
		t.Errorf("sink contents mismatch: '%s'", string(contents))
	}
}

func TestReadPipeCommandFailure(t *testing.T) {
	// A failing child is reported at close, not at open.
	s, err := OpenReadPipe("exit 3")
	if err != nil {
		t.Fatal("unable to open read pipe:", err)
	}
	if err := s.Close(); err == nil {
		t.Error("expected close to report child failure")
	}
}
