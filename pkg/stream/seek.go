package stream

import (
	"io"

	"github.com/pkg/errors"
)

// seek moves a seekable stream to the specified absolute target position. On
// failure it makes a best-effort attempt to restore the stream's prior
// position before reporting the failure.
func (s *Stream) seek(operation string, target int64, whence int) error {
	s.ok = false
	if !s.IsSeekable() {
		return s.fail(operation, target, errors.New("stream is not seekable"))
	}

	// Capture the prior logical position for best-effort rollback.
	prior := s.Offset()

	// Commit buffered output and discard read-ahead so the underlying
	// position matches the logical one.
	if s.writer != nil {
		if err := s.writer.Flush(); err != nil {
			return s.fail(operation, target, err)
		}
	}
	if s.reader != nil {
		s.reader.Reset(s.file)
	}

	// Seek, rolling back to the prior position on failure.
	if _, err := s.file.Seek(target, whence); err != nil {
		s.file.Seek(prior, io.SeekStart)
		return s.fail(operation, target, err)
	}

	// Success.
	s.ok = true
	return nil
}

// SeekFromStart moves a seekable stream to offset bytes from its beginning.
func (s *Stream) SeekFromStart(offset int64) error {
	return s.seek("seek from start", offset, io.SeekStart)
}

// SeekFromEnd moves a seekable stream to offset bytes from its end.
func (s *Stream) SeekFromEnd(offset int64) error {
	return s.seek("seek from end", offset, io.SeekEnd)
}

// SeekFromCurrent moves a seekable stream offset bytes relative to its
// current logical position.
func (s *Stream) SeekFromCurrent(offset int64) error {
	return s.seek("seek from current", s.Offset()+offset, io.SeekStart)
}

// Offset reports the current logical byte position of a seekable stream,
// accounting for buffered data in both directions. It reports 0 rather than
// failing when the position is indeterminate.
func (s *Stream) Offset() int64 {
	if !s.IsSeekable() {
		return 0
	}
	position, err := s.file.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0
	}
	if s.reader != nil {
		position -= int64(s.reader.Buffered())
	}
	if s.writer != nil {
		position += int64(s.writer.Buffered())
	}
	if position < 0 {
		return 0
	}
	return position
}

// Size reports the total byte size of a seekable stream, committing buffered
// output first so the result reflects all writes. It reports 0 rather than
// failing when the size is indeterminate.
func (s *Stream) Size() int64 {
	if !s.IsSeekable() {
		return 0
	}
	if s.writer != nil {
		if err := s.writer.Flush(); err != nil {
			return 0
		}
	}
	info, err := s.file.Stat()
	if err != nil {
		return 0
	}
	return info.Size()
}

// IsAtEnd tests for end of stream by peeking one byte without consuming it.
// On pipes and sockets it may block until the peer sends more data or closes.
func (s *Stream) IsAtEnd() bool {
	if err := s.beginRead(); err != nil {
		return true
	}
	_, err := s.reader.Peek(1)
	s.ok = err == nil || err == io.EOF
	return err != nil
}
