package stream

import (
	"bytes"
	"math"
	"os"
	"testing"
)

func TestRealRoundTrip(t *testing.T) {
	// 64-bit transfers must round-trip exactly; 32-bit transfers must
	// round-trip within single precision.
	values := []float64{0, 1, -1, math.Pi, -math.SmallestNonzeroFloat32, math.MaxFloat32}

	s, path := openTemporary(t, ModeWrite)
	if err := s.Write64BitReals(values); err != nil {
		t.Fatal("unable to write reals:", err)
	}
	if err := s.Write32BitReals(values); err != nil {
		t.Fatal("unable to write reals:", err)
	}
	if err := s.Close(); err != nil {
		t.Fatal("unable to close stream:", err)
	}

	s, err := OpenFile(path, ModeRead)
	if err != nil {
		t.Fatal("unable to reopen stream:", err)
	}
	defer s.Close()
	wide := make([]float64, len(values))
	if err := s.Read64BitReals(wide); err != nil {
		t.Fatal("unable to read reals:", err)
	}
	for i, value := range wide {
		if value != values[i] {
			t.Errorf("64-bit round trip mismatch: %g != %g", value, values[i])
		}
	}
	narrow := make([]float64, len(values))
	if err := s.Read32BitReals(narrow); err != nil {
		t.Fatal("unable to read reals:", err)
	}
	for i, value := range narrow {
		if value != float64(float32(values[i])) {
			t.Errorf("32-bit round trip mismatch: %g != %g", value, float64(float32(values[i])))
		}
	}
}

func TestRealWireFormat(t *testing.T) {
	// Write the 64-bit real 1.0.
	s, path := openTemporary(t, ModeWrite)
	if err := s.Write64BitReal(1); err != nil {
		t.Fatal("unable to write real:", err)
	}
	if err := s.Close(); err != nil {
		t.Fatal("unable to close stream:", err)
	}

	// Verify the raw on-wire bytes are IEEE-754 most-significant-byte-first.
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal("unable to read backing file:", err)
	}
	expected := []byte{0x3F, 0xF0, 0, 0, 0, 0, 0, 0}
	if !bytes.Equal(raw, expected) {
		t.Errorf("wire bytes mismatch: % x != % x", raw, expected)
	}
}

func TestNonFiniteReals(t *testing.T) {
	// Non-finite values must preserve their classification through both
	// widths, with the sign of infinities preserved.
	values := []float64{math.Inf(1), math.Inf(-1), math.NaN()}

	for _, width := range []int{4, 8} {
		s, path := openTemporary(t, ModeWrite)
		for _, value := range values {
			if err := s.writeReal(value, width); err != nil {
				t.Fatal("unable to write real:", err)
			}
		}
		if err := s.Close(); err != nil {
			t.Fatal("unable to close stream:", err)
		}

		s, err := OpenFile(path, ModeRead)
		if err != nil {
			t.Fatal("unable to reopen stream:", err)
		}
		if value, err := s.readReal(width); err != nil {
			t.Fatal("unable to read real:", err)
		} else if !math.IsInf(value, 1) {
			t.Errorf("%d-bit positive infinity not preserved: %g", width*8, value)
		}
		if value, err := s.readReal(width); err != nil {
			t.Fatal("unable to read real:", err)
		} else if !math.IsInf(value, -1) {
			t.Errorf("%d-bit negative infinity not preserved: %g", width*8, value)
		}
		if value, err := s.readReal(width); err != nil {
			t.Fatal("unable to read real:", err)
		} else if !math.IsNaN(value) {
			t.Errorf("%d-bit NaN not preserved: %g", width*8, value)
		}
		if err := s.Close(); err != nil {
			t.Fatal("unable to close stream:", err)
		}
	}
}

func TestRealBatchScalarEquivalence(t *testing.T) {
	values := []float64{0, 1, -1, math.Pi, math.Inf(1), math.MaxFloat64}

	for _, width := range []int{4, 8} {
		// Write the values with one batched call.
		batched, batchedPath := openTemporary(t, ModeWrite)
		if err := batched.writeReals(values, width); err != nil {
			t.Fatal("unable to write real batch:", err)
		}
		if err := batched.Close(); err != nil {
			t.Fatal("unable to close stream:", err)
		}

		// Write the values with repeated scalar calls.
		scalar, scalarPath := openTemporary(t, ModeWrite)
		for _, value := range values {
			if err := scalar.writeReal(value, width); err != nil {
				t.Fatal("unable to write real:", err)
			}
		}
		if err := scalar.Close(); err != nil {
			t.Fatal("unable to close stream:", err)
		}

		// The wire bytes must be identical.
		batchedRaw, err := os.ReadFile(batchedPath)
		if err != nil {
			t.Fatal("unable to read backing file:", err)
		}
		scalarRaw, err := os.ReadFile(scalarPath)
		if err != nil {
			t.Fatal("unable to read backing file:", err)
		}
		if !bytes.Equal(batchedRaw, scalarRaw) {
			t.Errorf("%d-bit batch and scalar wire bytes differ", width*8)
		}
	}
}
