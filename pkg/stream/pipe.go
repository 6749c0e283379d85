package stream

import (
	"bufio"
	"os"
	"os/exec"

	"github.com/pkg/errors"
)

// syncStandardStreams flushes the process' own standard output and error so
// that output already written by this process reaches its destination before
// any output from a child process sharing those descriptors. Failures are
// expected for descriptors that don't support synchronization (terminals,
// pipes) and are ignored.
func syncStandardStreams() {
	os.Stdout.Sync()
	os.Stderr.Sync()
}

// OpenReadPipe launches command through the shell and returns a read-only
// stream connected to the child process' standard output. The child's
// standard error passes through to the parent's. Closing the stream blocks
// until the child process exits.
func OpenReadPipe(command string) (*Stream, error) {
	// Flush our own standard streams first so that any prior output precedes
	// the child's.
	syncStandardStreams()

	// Create the child process and redirect its output.
	process := exec.Command("/bin/sh", "-c", command)
	process.Stderr = os.Stderr
	output, err := process.StdoutPipe()
	if err != nil {
		return nil, errors.Wrap(err, "unable to redirect command output")
	}

	// Start the child process.
	if err := process.Start(); err != nil {
		return nil, errors.Wrapf(err, "unable to start command '%s'", command)
	}

	// Success.
	return &Stream{
		name:       command,
		kind:       TransportPipe,
		mode:       ModeRead,
		process:    process,
		pipeReader: output,
		reader:     bufio.NewReader(output),
		ok:         true,
		logger:     defaultLogger(),
	}, nil
}

// OpenWritePipe launches command through the shell and returns a write-only
// stream connected to the child process' standard input. The child's standard
// output and error pass through to the parent's. Closing the stream signals
// end of input and blocks until the child process exits.
func OpenWritePipe(command string) (*Stream, error) {
	// Flush our own standard streams first so that any prior output precedes
	// the child's.
	syncStandardStreams()

	// Create the child process and redirect its input.
	process := exec.Command("/bin/sh", "-c", command)
	process.Stdout = os.Stdout
	process.Stderr = os.Stderr
	input, err := process.StdinPipe()
	if err != nil {
		return nil, errors.Wrap(err, "unable to redirect command input")
	}

	// Start the child process.
	if err := process.Start(); err != nil {
		return nil, errors.Wrapf(err, "unable to start command '%s'", command)
	}

	// Success.
	return &Stream{
		name:       command,
		kind:       TransportPipe,
		mode:       ModeWrite,
		process:    process,
		pipeWriter: input,
		writer:     bufio.NewWriter(input),
		ok:         true,
		logger:     defaultLogger(),
	}, nil
}
