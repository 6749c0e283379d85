// Package stream provides a portable, buffered, byte-order-normalizing I/O
// channel over files, child-process pipes, and TCP sockets. All multi-byte
// values are interchanged most-significant-byte-first regardless of host
// architecture, integers are interchanged as a single 64-bit logical type
// with range clamping at narrower widths, and reals are interchanged as
// IEEE-754 values at 32-bit or 64-bit width.
package stream

import (
	"bufio"
	"io"
	"math"
	"net"
	"os"
	"os/exec"

	"github.com/pkg/errors"

	"github.com/USEPA/rsigserver-sub001/pkg/logging"
)

// TransportKind identifies the underlying OS I/O primitive family used by a
// stream.
type TransportKind uint8

const (
	// TransportFile indicates a stream backed by a regular file or one of the
	// standard streams.
	TransportFile TransportKind = iota
	// TransportPipe indicates a stream backed by a child process' standard
	// input or output.
	TransportPipe
	// TransportSocket indicates a stream backed by a connected TCP socket.
	TransportSocket
)

// String provides a human-readable representation of a transport kind.
func (k TransportKind) String() string {
	switch k {
	case TransportFile:
		return "file"
	case TransportPipe:
		return "pipe"
	case TransportSocket:
		return "socket"
	default:
		return "unknown"
	}
}

// Mode specifies the access mode for a stream, fixed at creation.
type Mode uint8

const (
	// ModeRead opens an existing stream for reading only.
	ModeRead Mode = iota
	// ModeWrite creates or truncates a stream for writing only.
	ModeWrite
	// ModeAppend opens or creates a stream for writing at the end.
	ModeAppend
	// ModeReadWrite opens an existing stream for reading and writing.
	ModeReadWrite
	// ModeWriteRead creates or truncates a stream for reading and writing.
	ModeWriteRead
	// ModeAppendRead opens or creates a stream for reading and appending.
	ModeAppendRead
)

// readable indicates whether or not the mode permits reading.
func (m Mode) readable() bool {
	return m == ModeRead || m == ModeReadWrite || m == ModeWriteRead || m == ModeAppendRead
}

// writable indicates whether or not the mode permits writing.
func (m Mode) writable() bool {
	return m != ModeRead
}

// osFlags converts the mode to flags for os.OpenFile.
func (m Mode) osFlags() int {
	switch m {
	case ModeRead:
		return os.O_RDONLY
	case ModeWrite:
		return os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	case ModeAppend:
		return os.O_WRONLY | os.O_CREATE | os.O_APPEND
	case ModeReadWrite:
		return os.O_RDWR
	case ModeWriteRead:
		return os.O_RDWR | os.O_CREATE | os.O_TRUNC
	case ModeAppendRead:
		return os.O_RDWR | os.O_CREATE | os.O_APPEND
	default:
		return os.O_RDONLY
	}
}

// String provides a human-readable representation of a mode.
func (m Mode) String() string {
	switch m {
	case ModeRead:
		return "read"
	case ModeWrite:
		return "write"
	case ModeAppend:
		return "append"
	case ModeReadWrite:
		return "read-write"
	case ModeWriteRead:
		return "write-read"
	case ModeAppendRead:
		return "append-read"
	default:
		return "unknown"
	}
}

const (
	// transferBufferSize is the size of the scratch buffer that a stream
	// allocates (lazily, on first batched transfer) to stage encoded values.
	// Batched transfers larger than this are processed in multiple bounded
	// portions that produce wire bytes identical to repeated scalar calls.
	transferBufferSize = 32 * 1024
)

// maximumTransferSize bounds the byte count handed to a single underlying
// buffered I/O call. Transfers beyond this size are transparently split into
// multiple sub-calls. It's a variable rather than a constant so that tests
// can substitute a small limit without allocating enormous buffers.
var maximumTransferSize = math.MaxInt32

// Stream is a portable binary data channel over a file, a child-process pipe,
// or a TCP socket. A stream's name and transport kind are immutable after
// creation. Streams are not safe for concurrent use; each instance owns its
// underlying OS handles exclusively.
type Stream struct {
	// name is the stream's identity: a path, a command line, or a host:port
	// descriptor, depending on the transport kind.
	name string
	// kind is the transport kind.
	kind TransportKind
	// mode is the access mode fixed at creation.
	mode Mode
	// file is the underlying file for file transports.
	file *os.File
	// ownsFile indicates whether or not Close should close file. It's false
	// for the standard stream aliases, whose lifecycle belongs to the
	// process.
	ownsFile bool
	// process is the child process for pipe transports.
	process *exec.Cmd
	// pipeReader is the child's standard output for read pipes.
	pipeReader io.ReadCloser
	// pipeWriter is the child's standard input for write pipes.
	pipeWriter io.WriteCloser
	// conn is the underlying connection for socket transports.
	conn net.Conn
	// reader is the buffered decode side. It's nil iff the stream isn't
	// readable.
	reader *bufio.Reader
	// writer is the buffered encode side. It's nil iff the stream isn't
	// writable.
	writer *bufio.Writer
	// lastWasWrite tracks the stream's direction state so that direction
	// switches on read-write streams can flush and realign transparently.
	lastWasWrite bool
	// ok indicates whether or not the most recent operation fully succeeded.
	ok bool
	// closed indicates whether or not Close has been invoked.
	closed bool
	// transferBuffer is the lazily allocated scratch buffer for batched
	// transfers.
	transferBuffer []byte
	// logger is the diagnostic sink. It may be nil.
	logger *logging.Logger
}

// defaultLogger returns the logger used by streams unless overridden.
func defaultLogger() *logging.Logger {
	return logging.RootLogger.Sublogger("stream")
}

// SetLogger replaces the stream's diagnostic logger. A nil logger silences
// diagnostics without disabling failure reporting through error returns.
func (s *Stream) SetLogger(logger *logging.Logger) {
	s.logger = logger
}

// Name returns the stream's name: a path, command line, or host:port
// descriptor.
func (s *Stream) Name() string {
	return s.name
}

// Kind returns the stream's transport kind.
func (s *Stream) Kind() TransportKind {
	return s.kind
}

// Ok indicates whether or not the most recent operation on the stream fully
// succeeded. Every operation resets it at entry and sets it at exit.
func (s *Stream) Ok() bool {
	return s.ok
}

// IsReadable indicates whether or not the stream permits reading.
func (s *Stream) IsReadable() bool {
	return s.reader != nil && !s.closed
}

// IsWritable indicates whether or not the stream permits writing.
func (s *Stream) IsWritable() bool {
	return s.writer != nil && !s.closed
}

// IsSeekable indicates whether or not the stream supports seeking: only file
// transports that aren't standard stream aliases or the null device.
func (s *Stream) IsSeekable() bool {
	return s.kind == TransportFile && s.ownsFile && s.name != os.DevNull && !s.closed
}

// IsBlocking indicates whether or not reads on the stream can block awaiting
// a peer: all pipe and socket transports, plus the standard input alias.
func (s *Stream) IsBlocking() bool {
	return s.kind != TransportFile || s.name == StandardInputName
}

// File exposes the underlying file handle of a file transport (nil
// otherwise) for interoperation with libraries that consume file handles
// directly. The caller must never close it; the close lifecycle belongs
// solely to the stream.
func (s *Stream) File() *os.File {
	return s.file
}

// Conn exposes the underlying connection of a socket transport (nil
// otherwise). The caller must never close it; the close lifecycle belongs
// solely to the stream.
func (s *Stream) Conn() net.Conn {
	return s.conn
}

// scratch returns the stream's scratch buffer, allocating it on first use.
func (s *Stream) scratch() []byte {
	if s.transferBuffer == nil {
		s.transferBuffer = make([]byte, transferBufferSize)
	}
	return s.transferBuffer
}

// beginRead prepares the stream for a decode operation: it resets the ok
// flag, validates readability, and (on read-write streams) commits any
// buffered output from a preceding encode operation before the read observes
// the stream.
func (s *Stream) beginRead() error {
	s.ok = false
	if s.closed {
		return errors.New("stream is closed")
	} else if s.reader == nil {
		return errors.New("stream is not readable")
	}

	// Switching from encode to decode commits buffered output first. On file
	// transports, read-ahead buffered before the write is stale and must be
	// discarded.
	if s.lastWasWrite {
		if s.writer != nil {
			if err := s.writer.Flush(); err != nil {
				return errors.Wrap(err, "unable to flush buffered output")
			}
		}
		if s.kind == TransportFile {
			s.reader.Reset(s.file)
		}
		s.lastWasWrite = false
	}

	// Success.
	return nil
}

// beginWrite prepares the stream for an encode operation: it resets the ok
// flag, validates writability, and (on seekable streams) unwinds buffered
// read-ahead so the write lands at the logical position.
func (s *Stream) beginWrite() error {
	s.ok = false
	if s.closed {
		return errors.New("stream is closed")
	} else if s.writer == nil {
		return errors.New("stream is not writable")
	}

	// Switching from decode to encode realigns the underlying position on
	// seekable streams, whose descriptor has advanced past the logical
	// position by the amount of read-ahead.
	if !s.lastWasWrite && s.reader != nil {
		if buffered := s.reader.Buffered(); buffered > 0 && s.IsSeekable() {
			if _, err := s.file.Seek(int64(-buffered), io.SeekCurrent); err != nil {
				return errors.Wrap(err, "unable to realign position")
			}
			s.reader.Reset(s.file)
		}
	}
	s.lastWasWrite = true

	// Success.
	return nil
}

// fail records an operation failure: it leaves the ok flag false and emits
// exactly one diagnostic naming the operation, the byte count involved, and
// the stream.
func (s *Stream) fail(operation string, byteCount int64, err error) error {
	wrapped := errors.Wrapf(err, "unable to %s (%d bytes) on %s stream '%s'",
		operation, byteCount, s.kind, s.name)
	s.logger.Error(wrapped)
	return wrapped
}

// readFull reads exactly len(buffer) bytes from the decode side, splitting
// the transfer into bounded sub-calls and looping over short reads from pipes
// and sockets. Client code issues one logical call regardless of size.
func (s *Stream) readFull(buffer []byte) error {
	for len(buffer) > 0 {
		portion := buffer
		if len(portion) > maximumTransferSize {
			portion = portion[:maximumTransferSize]
		}
		if _, err := io.ReadFull(s.reader, portion); err != nil {
			return err
		}
		buffer = buffer[len(portion):]
	}
	return nil
}

// writeFull writes the entirety of buffer to the encode side, splitting the
// transfer into bounded sub-calls.
func (s *Stream) writeFull(buffer []byte) error {
	for len(buffer) > 0 {
		portion := buffer
		if len(portion) > maximumTransferSize {
			portion = portion[:maximumTransferSize]
		}
		if _, err := s.writer.Write(portion); err != nil {
			return err
		}
		buffer = buffer[len(portion):]
	}
	return nil
}

// Flush commits any buffered output to the underlying transport.
func (s *Stream) Flush() error {
	s.ok = false
	if s.closed {
		return s.fail("flush", 0, errors.New("stream is closed"))
	} else if s.writer == nil {
		return s.fail("flush", 0, errors.New("stream is not writable"))
	}
	if err := s.writer.Flush(); err != nil {
		return s.fail("flush", 0, err)
	}
	s.ok = true
	return nil
}

// Close flushes any buffered output, releases the stream's OS handles, and
// invalidates the stream. For pipe transports it blocks until the child
// process exits. Flush and close failures are reported as warnings and
// returned, but the stream is always fully invalidated.
func (s *Stream) Close() error {
	s.ok = false
	if s.closed {
		return errors.New("stream already closed")
	}
	s.closed = true

	// Commit any buffered output. A failure here means data may not have
	// been fully written, which warrants a warning rather than escalation.
	var failure error
	if s.writer != nil {
		if err := s.writer.Flush(); err != nil {
			failure = errors.Wrapf(err, "unable to flush stream '%s'; buffered data may not have been fully written", s.name)
			s.logger.Warn(failure)
		}
	}

	// Release the transport.
	switch s.kind {
	case TransportFile:
		if s.ownsFile {
			if err := s.file.Close(); err != nil {
				err = errors.Wrapf(err, "unable to close stream '%s'", s.name)
				s.logger.Warn(err)
				if failure == nil {
					failure = err
				}
			}
		}
	case TransportPipe:
		// Flush our own standard streams so output from the parent and the
		// exiting child interleave in program order.
		syncStandardStreams()

		// Close our end of the pipe so the child observes end of stream,
		// then block until it exits.
		if s.pipeWriter != nil {
			if err := s.pipeWriter.Close(); err != nil {
				s.logger.Warnf("unable to close pipe to '%s': %s", s.name, err.Error())
			}
		}
		if s.pipeReader != nil {
			if err := s.pipeReader.Close(); err != nil {
				s.logger.Warnf("unable to close pipe from '%s': %s", s.name, err.Error())
			}
		}
		if err := s.process.Wait(); err != nil {
			err = errors.Wrapf(err, "command '%s' failed", s.name)
			s.logger.Warn(err)
			if failure == nil {
				failure = err
			}
		}
	case TransportSocket:
		if err := s.conn.Close(); err != nil {
			err = errors.Wrapf(err, "unable to close stream '%s'", s.name)
			s.logger.Warn(err)
			if failure == nil {
				failure = err
			}
		}
	}

	// Record the outcome.
	s.ok = failure == nil
	return failure
}
