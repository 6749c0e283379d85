package stream

import (
	"bufio"
	"os"

	"github.com/pkg/errors"
)

const (
	// StandardInputName is the reserved stream name that binds to the
	// process' standard input instead of opening a path.
	StandardInputName = "-stdin"
	// StandardOutputName is the reserved stream name that binds to the
	// process' standard output instead of opening a path.
	StandardOutputName = "-stdout"
	// StandardErrorName is the reserved stream name that binds to the
	// process' standard error instead of opening a path.
	StandardErrorName = "-stderr"
)

// newFileStream initializes a stream over an open file.
func newFileStream(name string, mode Mode, file *os.File, ownsFile bool) *Stream {
	s := &Stream{
		name:     name,
		kind:     TransportFile,
		mode:     mode,
		file:     file,
		ownsFile: ownsFile,
		ok:       true,
		logger:   defaultLogger(),
	}
	if mode.readable() {
		s.reader = bufio.NewReader(file)
	}
	if mode.writable() {
		s.writer = bufio.NewWriter(file)
	}
	return s
}

// OpenFile opens a regular file in binary mode as a stream. The reserved
// names "-stdin", "-stdout", and "-stderr" bind to the corresponding standard
// stream instead of opening a path; standard input may only be opened
// read-only and standard output/error only write-only. The returned stream is
// fully initialized and usable, or nil with an error.
func OpenFile(name string, mode Mode) (*Stream, error) {
	// Handle the standard stream aliases.
	switch name {
	case StandardInputName:
		if mode != ModeRead {
			return nil, errors.New("standard input only supports read-only access")
		}
		return newFileStream(name, mode, os.Stdin, false), nil
	case StandardOutputName, StandardErrorName:
		if mode.readable() || !mode.writable() {
			return nil, errors.Errorf("'%s' only supports write-only access", name)
		}
		file := os.Stdout
		if name == StandardErrorName {
			file = os.Stderr
		}
		return newFileStream(name, mode, file, false), nil
	}

	// Open the file.
	file, err := os.OpenFile(name, mode.osFlags(), 0666)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to open file '%s'", name)
	}

	// Success.
	return newFileStream(name, mode, file, true), nil
}
