package stream

import (
	"encoding/binary"
	"fmt"
	"math"
)

// clampInteger bounds a logical 64-bit integer to the representable signed
// range of the given byte width. Out-of-range values saturate at the range
// boundary rather than wrapping.
func clampInteger(value int64, width int) int64 {
	switch width {
	case 1:
		if value < math.MinInt8 {
			return math.MinInt8
		} else if value > math.MaxInt8 {
			return math.MaxInt8
		}
	case 2:
		if value < math.MinInt16 {
			return math.MinInt16
		} else if value > math.MaxInt16 {
			return math.MaxInt16
		}
	case 4:
		if value < math.MinInt32 {
			return math.MinInt32
		} else if value > math.MaxInt32 {
			return math.MaxInt32
		}
	}
	return value
}

// encodeInteger clamps a logical 64-bit integer to the given byte width and
// stores it most-significant-byte-first at the start of buffer.
func encodeInteger(buffer []byte, value int64, width int) {
	value = clampInteger(value, width)
	switch width {
	case 1:
		buffer[0] = byte(value)
	case 2:
		binary.BigEndian.PutUint16(buffer, uint16(value))
	case 4:
		binary.BigEndian.PutUint32(buffer, uint32(value))
	default:
		binary.BigEndian.PutUint64(buffer, uint64(value))
	}
}

// decodeInteger loads a most-significant-byte-first integer of the given byte
// width from the start of buffer and sign-extends it to 64 bits.
func decodeInteger(buffer []byte, width int) int64 {
	switch width {
	case 1:
		return int64(int8(buffer[0]))
	case 2:
		return int64(int16(binary.BigEndian.Uint16(buffer)))
	case 4:
		return int64(int32(binary.BigEndian.Uint32(buffer)))
	default:
		return int64(binary.BigEndian.Uint64(buffer))
	}
}

// ReadByte transfers exactly one 8-bit unit, unmodified. It's the only
// transfer operation with no byte-order or range semantics.
func (s *Stream) ReadByte() (byte, error) {
	if err := s.beginRead(); err != nil {
		return 0, s.fail("read byte", 1, err)
	}
	value, err := s.reader.ReadByte()
	if err != nil {
		return 0, s.fail("read byte", 1, err)
	}
	s.ok = true
	return value, nil
}

// WriteByte transfers exactly one 8-bit unit, unmodified.
func (s *Stream) WriteByte(value byte) error {
	if err := s.beginWrite(); err != nil {
		return s.fail("write byte", 1, err)
	}
	if err := s.writer.WriteByte(value); err != nil {
		return s.fail("write byte", 1, err)
	}
	s.ok = true
	return nil
}

// readInteger reads one sign-extended integer of the given byte width.
func (s *Stream) readInteger(width int) (int64, error) {
	operation := fmt.Sprintf("read %d-bit integer", width*8)
	if err := s.beginRead(); err != nil {
		return 0, s.fail(operation, int64(width), err)
	}
	var scratch [8]byte
	if err := s.readFull(scratch[:width]); err != nil {
		return 0, s.fail(operation, int64(width), err)
	}
	s.ok = true
	return decodeInteger(scratch[:width], width), nil
}

// writeInteger writes one range-clamped integer of the given byte width.
func (s *Stream) writeInteger(value int64, width int) error {
	operation := fmt.Sprintf("write %d-bit integer", width*8)
	if err := s.beginWrite(); err != nil {
		return s.fail(operation, int64(width), err)
	}
	var scratch [8]byte
	encodeInteger(scratch[:width], value, width)
	if err := s.writeFull(scratch[:width]); err != nil {
		return s.fail(operation, int64(width), err)
	}
	s.ok = true
	return nil
}

// readIntegers fills values with sign-extended integers of the given byte
// width, staging the transfer through the scratch buffer in bounded portions.
// On failure the first destination element is zeroed so callers can't mistake
// stale memory for valid data.
func (s *Stream) readIntegers(values []int64, width int) error {
	operation := fmt.Sprintf("read %d-bit integers", width*8)
	byteCount := int64(len(values)) * int64(width)
	if err := s.beginRead(); err != nil {
		return s.failRead(values, operation, byteCount, err)
	}
	scratch := s.scratch()
	capacity := len(scratch) / width
	for start := 0; start < len(values); start += capacity {
		portion := values[start:min(start+capacity, len(values))]
		raw := scratch[:len(portion)*width]
		if err := s.readFull(raw); err != nil {
			return s.failRead(values, operation, byteCount, err)
		}
		for i := range portion {
			portion[i] = decodeInteger(raw[i*width:], width)
		}
	}
	s.ok = true
	return nil
}

// writeIntegers writes values as range-clamped integers of the given byte
// width, staging the transfer through the scratch buffer in bounded portions.
// The wire bytes are identical to those of repeated scalar calls.
func (s *Stream) writeIntegers(values []int64, width int) error {
	operation := fmt.Sprintf("write %d-bit integers", width*8)
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
			encodeInteger(raw[i*width:], value, width)
		}
		if err := s.writeFull(raw); err != nil {
			return s.fail(operation, byteCount, err)
		}
	}
	s.ok = true
	return nil
}

// failRead records a read failure, additionally zeroing the first destination
// element.
func (s *Stream) failRead(values []int64, operation string, byteCount int64, err error) error {
	if len(values) > 0 {
		values[0] = 0
	}
	return s.fail(operation, byteCount, err)
}

// Read8BitInteger reads one 8-bit integer, sign-extended to 64 bits.
func (s *Stream) Read8BitInteger() (int64, error) {
	return s.readInteger(1)
}

// Read16BitInteger reads one big-endian 16-bit integer, sign-extended to 64
// bits.
func (s *Stream) Read16BitInteger() (int64, error) {
	return s.readInteger(2)
}

// Read32BitInteger reads one big-endian 32-bit integer, sign-extended to 64
// bits.
func (s *Stream) Read32BitInteger() (int64, error) {
	return s.readInteger(4)
}

// Read64BitInteger reads one big-endian 64-bit integer.
func (s *Stream) Read64BitInteger() (int64, error) {
	return s.readInteger(8)
}

// Write8BitInteger writes one integer at 8-bit width, clamped to
// [-128, 127].
func (s *Stream) Write8BitInteger(value int64) error {
	return s.writeInteger(value, 1)
}

// Write16BitInteger writes one big-endian integer at 16-bit width, clamped to
// [-32768, 32767].
func (s *Stream) Write16BitInteger(value int64) error {
	return s.writeInteger(value, 2)
}

// Write32BitInteger writes one big-endian integer at 32-bit width, clamped to
// [-2147483648, 2147483647].
func (s *Stream) Write32BitInteger(value int64) error {
	return s.writeInteger(value, 4)
}

// Write64BitInteger writes one big-endian 64-bit integer.
func (s *Stream) Write64BitInteger(value int64) error {
	return s.writeInteger(value, 8)
}

// Read8BitIntegers fills values with 8-bit integers, sign-extended to 64
// bits.
func (s *Stream) Read8BitIntegers(values []int64) error {
	return s.readIntegers(values, 1)
}

// Read16BitIntegers fills values with big-endian 16-bit integers,
// sign-extended to 64 bits.
func (s *Stream) Read16BitIntegers(values []int64) error {
	return s.readIntegers(values, 2)
}

// Read32BitIntegers fills values with big-endian 32-bit integers,
// sign-extended to 64 bits.
func (s *Stream) Read32BitIntegers(values []int64) error {
	return s.readIntegers(values, 4)
}

// Read64BitIntegers fills values with big-endian 64-bit integers.
func (s *Stream) Read64BitIntegers(values []int64) error {
	return s.readIntegers(values, 8)
}

// Write8BitIntegers writes values at 8-bit width, each clamped to
// [-128, 127].
func (s *Stream) Write8BitIntegers(values []int64) error {
	return s.writeIntegers(values, 1)
}

// Write16BitIntegers writes values as big-endian 16-bit integers, each
// clamped to [-32768, 32767].
func (s *Stream) Write16BitIntegers(values []int64) error {
	return s.writeIntegers(values, 2)
}

// Write32BitIntegers writes values as big-endian 32-bit integers, each
// clamped to [-2147483648, 2147483647].
func (s *Stream) Write32BitIntegers(values []int64) error {
	return s.writeIntegers(values, 4)
}

// Write64BitIntegers writes values as big-endian 64-bit integers.
func (s *Stream) Write64BitIntegers(values []int64) error {
	return s.writeIntegers(values, 8)
}
