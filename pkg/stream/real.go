package stream

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Reals are interchanged as a single 64-bit logical floating type in IEEE-754
// big-endian layout. On modern hosts the native representation already
// matches IEEE-754, so encoding reduces to bit extraction plus byte ordering;
// the historical portable-conversion path for non-IEEE architectures is
// subsumed by these conversions, which map non-finite values (infinities,
// NaN) onto their IEEE-754 encodings rather than corrupting memory. 32-bit
// transfers narrow through float32 (overflowing finite magnitudes saturate to
// an infinity of matching sign) and widen back losslessly within 32-bit
// precision.

// encodeReal stores a logical 64-bit real at the given byte width,
// most-significant-byte-first, at the start of buffer.
func encodeReal(buffer []byte, value float64, width int) {
	if width == 4 {
		binary.BigEndian.PutUint32(buffer, math.Float32bits(float32(value)))
	} else {
		binary.BigEndian.PutUint64(buffer, math.Float64bits(value))
	}
}

// decodeReal loads a most-significant-byte-first IEEE-754 real of the given
// byte width from the start of buffer and widens it to 64 bits.
func decodeReal(buffer []byte, width int) float64 {
	if width == 4 {
		return float64(math.Float32frombits(binary.BigEndian.Uint32(buffer)))
	}
	return math.Float64frombits(binary.BigEndian.Uint64(buffer))
}

// readReal reads one real of the given byte width, widened to 64 bits.
func (s *Stream) readReal(width int) (float64, error) {
	operation := fmt.Sprintf("read %d-bit real", width*8)
	if err := s.beginRead(); err != nil {
		return 0, s.fail(operation, int64(width), err)
	}
	var scratch [8]byte
	if err := s.readFull(scratch[:width]); err != nil {
		return 0, s.fail(operation, int64(width), err)
	}
	s.ok = true
	return decodeReal(scratch[:width], width), nil
}

// writeReal writes one real at the given byte width.
func (s *Stream) writeReal(value float64, width int) error {
	operation := fmt.Sprintf("write %d-bit real", width*8)
	if err := s.beginWrite(); err != nil {
		return s.fail(operation, int64(width), err)
	}
	var scratch [8]byte
	encodeReal(scratch[:width], value, width)
	if err := s.writeFull(scratch[:width]); err != nil {
		return s.fail(operation, int64(width), err)
	}
	s.ok = true
	return nil
}

// readReals fills values with reals of the given byte width, staging the
// transfer through the scratch buffer in bounded portions. On failure the
// first destination element is zeroed.
func (s *Stream) readReals(values []float64, width int) error {
	operation := fmt.Sprintf("read %d-bit reals", width*8)
	byteCount := int64(len(values)) * int64(width)
	if err := s.beginRead(); err != nil {
		return s.failRealRead(values, operation, byteCount, err)
	}
	scratch := s.scratch()
	capacity := len(scratch) / width
	for start := 0; start < len(values); start += capacity {
		portion := values[start:min(start+capacity, len(values))]
		raw := scratch[:len(portion)*width]
		if err := s.readFull(raw); err != nil {
			return s.failRealRead(values, operation, byteCount, err)
		}
		for i := range portion {
			portion[i] = decodeReal(raw[i*width:], width)
		}
	}
	s.ok = true
	return nil
}

// writeReals writes values as reals of the given byte width, staging the
// transfer through the scratch buffer in bounded portions. The wire bytes are
// identical to those of repeated scalar calls.
func (s *Stream) writeReals(values []float64, width int) error {
	operation := fmt.Sprintf("write %d-bit reals", width*8)
	byteCount := int64(len(values)) * int64(width)
	if err := s.beginWrite(); err != nil {
		return s.fail(operation, byteCount, err)
	}
	scratch := s.scratch()
	capacity := len(scratch) / width
	for start := 0; start < len(values); start += capacity {
		portion := values[start:min(start+capacity, len(values))]
		raw := scratch[:len(portion)*width]
		for i, value := range portion {
			encodeReal(raw[i*width:], value, width)
		}
		if err := s.writeFull(raw); err != nil {
			return s.fail(operation, byteCount, err)
		}
	}
	s.ok = true
	return nil
}

// failRealRead records a read failure, additionally zeroing the first
// destination element.
func (s *Stream) failRealRead(values []float64, operation string, byteCount int64, err error) error {
	if len(values) > 0 {
		values[0] = 0
	}
	return s.fail(operation, byteCount, err)
}

// Read32BitReal reads one big-endian IEEE-754 32-bit real, widened to 64
// bits.
func (s *Stream) Read32BitReal() (float64, error) {
	return s.readReal(4)
}

// Read64BitReal reads one big-endian IEEE-754 64-bit real.
func (s *Stream) Read64BitReal() (float64, error) {
	return s.readReal(8)
}

// Write32BitReal writes one real at 32-bit width, narrowed through IEEE-754
// single precision.
func (s *Stream) Write32BitReal(value float64) error {
	return s.writeReal(value, 4)
}

// Write64BitReal writes one big-endian IEEE-754 64-bit real.
func (s *Stream) Write64BitReal(value float64) error {
	return s.writeReal(value, 8)
}

// Read32BitReals fills values with big-endian IEEE-754 32-bit reals, widened
// to 64 bits.
func (s *Stream) Read32BitReals(values []float64) error {
	return s.readReals(values, 4)
}

// Read64BitReals fills values with big-endian IEEE-754 64-bit reals.
func (s *Stream) Read64BitReals(values []float64) error {
	return s.readReals(values, 8)
}

// Write32BitReals writes values at 32-bit width, each narrowed through
// IEEE-754 single precision.
func (s *Stream) Write32BitReals(values []float64) error {
	return s.writeReals(values, 4)
}

// Write64BitReals writes values as big-endian IEEE-754 64-bit reals.
func (s *Stream) Write64BitReals(values []float64) error {
	return s.writeReals(values, 8)
}
