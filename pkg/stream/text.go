package stream

import (
	"io"
	"strings"

	"github.com/pkg/errors"
)

// isSpace indicates whether or not a byte is ASCII whitespace.
func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\v' || b == '\f'
}

// WriteBytes writes the entirety of buffer.
func (s *Stream) WriteBytes(buffer []byte) error {
	if err := s.beginWrite(); err != nil {
		return s.fail("write bytes", int64(len(buffer)), err)
	}
	if err := s.writeFull(buffer); err != nil {
		return s.fail("write bytes", int64(len(buffer)), err)
	}
	s.ok = true
	return nil
}

// ReadBytes fills buffer exactly, looping internally to cope with short reads
// from pipes and sockets, and fails unless every byte is obtained. On failure
// the first destination byte is zeroed.
func (s *Stream) ReadBytes(buffer []byte) error {
	err := s.beginRead()
	if err == nil {
		err = s.readFull(buffer)
	}
	if err != nil {
		if len(buffer) > 0 {
			buffer[0] = 0
		}
		return s.fail("read bytes", int64(len(buffer)), err)
	}
	s.ok = true
	return nil
}

// ReadUpToBytes reads up to len(buffer) bytes, reporting however many were
// actually available. Running out of data before the buffer fills is a
// normal, expected outcome rather than a failure; only transport errors fail.
func (s *Stream) ReadUpToBytes(buffer []byte) (int, error) {
	if err := s.beginRead(); err != nil {
		return 0, s.fail("read up to bytes", int64(len(buffer)), err)
	}
	var total int
	for total < len(buffer) {
		portion := buffer[total:min(total+maximumTransferSize, len(buffer))]
		count, err := s.reader.Read(portion)
		total += count
		if err == io.EOF {
			break
		} else if err != nil {
			return total, s.fail("read up to bytes", int64(len(buffer)), err)
		}
	}
	s.ok = true
	return total, nil
}

// WriteString writes the entirety of value.
func (s *Stream) WriteString(value string) error {
	if err := s.beginWrite(); err != nil {
		return s.fail("write string", int64(len(value)), err)
	}
	if _, err := s.writer.WriteString(value); err != nil {
		return s.fail("write string", int64(len(value)), err)
	}
	s.ok = true
	return nil
}

// ReadString reads a line of text: up to maximum-1 bytes or through the first
// newline, whichever comes first. The newline is retained, like a line read.
// End of stream before any byte is obtained is a failure; end of stream after
// a partial line is not.
func (s *Stream) ReadString(maximum int) (string, error) {
	if maximum < 1 {
		return "", s.fail("read string", int64(maximum), errors.New("invalid maximum length"))
	}
	if err := s.beginRead(); err != nil {
		return "", s.fail("read string", int64(maximum), err)
	}
	var builder strings.Builder
	for builder.Len() < maximum-1 {
		value, err := s.reader.ReadByte()
		if err == io.EOF {
			if builder.Len() == 0 {
				return "", s.fail("read string", int64(maximum), err)
			}
			break
		} else if err != nil {
			return "", s.fail("read string", int64(maximum), err)
		}
		builder.WriteByte(value)
		if value == '\n' {
			break
		}
	}
	s.ok = true
	return builder.String(), nil
}

// ReadWord reads a whitespace-delimited token of up to maximum-1 bytes,
// skipping any leading whitespace. The delimiting whitespace byte, if any, is
// left in the stream. End of stream before any token byte is obtained is a
// failure.
func (s *Stream) ReadWord(maximum int) (string, error) {
	if maximum < 1 {
		return "", s.fail("read word", int64(maximum), errors.New("invalid maximum length"))
	}
	if err := s.beginRead(); err != nil {
		return "", s.fail("read word", int64(maximum), err)
	}

	// Skip leading whitespace.
	for {
		value, err := s.reader.ReadByte()
		if err != nil {
			return "", s.fail("read word", int64(maximum), err)
		}
		if !isSpace(value) {
			s.reader.UnreadByte()
			break
		}
	}

	// Accumulate the token.
	var builder strings.Builder
	for builder.Len() < maximum-1 {
		value, err := s.reader.ReadByte()
		if err == io.EOF {
			break
		} else if err != nil {
			return "", s.fail("read word", int64(maximum), err)
		}
		if isSpace(value) {
			s.reader.UnreadByte()
			break
		}
		builder.WriteByte(value)
	}
	s.ok = true
	return builder.String(), nil
}
