package stream

import (
	"math"
	"testing"
)

func TestEndToEndIntegers(t *testing.T) {
	// Write a batch, close, reopen, and read it back, verifying the ok flag
	// at every step.
	values := []int64{1, -1, math.MaxInt64}

	s, path := openTemporary(t, ModeWrite)
	if err := s.Write64BitIntegers(values); err != nil {
		t.Fatal("unable to write integers:", err)
	}
	if !s.Ok() {
		t.Error("ok flag not set after successful write")
	}
	if err := s.Close(); err != nil {
		t.Fatal("unable to close stream:", err)
	}
	if !s.Ok() {
		t.Error("ok flag not set after successful close")
	}

	s, err := OpenFile(path, ModeRead)
	if err != nil {
		t.Fatal("unable to reopen stream:", err)
	}
	if !s.Ok() {
		t.Error("ok flag not set after successful open")
	}
	read := make([]int64, len(values))
	if err := s.Read64BitIntegers(read); err != nil {
		t.Fatal("unable to read integers:", err)
	}
	if !s.Ok() {
		t.Error("ok flag not set after successful read")
	}
	for i, value := range read {
		if value != values[i] {
			t.Errorf("round trip mismatch: %d != %d", value, values[i])
		}
	}
	if err := s.Close(); err != nil {
		t.Fatal("unable to close stream:", err)
	}
}

func TestDirectionSwitchFlush(t *testing.T) {
	// Write a value on a read-write stream, then read it back from the start
	// without any manual flush call. The direction switch must commit the
	// buffered output before the read observes the stream.
	s, _ := openTemporary(t, ModeWriteRead)
	defer s.Close()

	if err := s.Write64BitInteger(42); err != nil {
		t.Fatal("unable to write integer:", err)
	}
	if err := s.SeekFromStart(0); err != nil {
		t.Fatal("unable to seek:", err)
	}
	value, err := s.Read64BitInteger()
	if err != nil {
		t.Fatal("unable to read integer:", err)
	}
	if value != 42 {
		t.Error("direction switch lost buffered write:", value, "!= 42")
	}
}

func TestReadAfterWriteRealignment(t *testing.T) {
	// Interleave writes and reads on a read-write stream: after writing at a
	// position reached by reading, the next read must observe the written
	// value, not stale read-ahead.
	s, _ := openTemporary(t, ModeWriteRead)
	defer s.Close()

	if err := s.Write64BitIntegers([]int64{10, 20, 30}); err != nil {
		t.Fatal("unable to write integers:", err)
	}
	if err := s.SeekFromStart(0); err != nil {
		t.Fatal("unable to seek:", err)
	}
	if value, err := s.Read64BitInteger(); err != nil {
		t.Fatal("unable to read integer:", err)
	} else if value != 10 {
		t.Error("read mismatch:", value, "!= 10")
	}

	// Overwrite the second value. The write must land at the logical
	// position despite buffered read-ahead.
	if err := s.Write64BitInteger(99); err != nil {
		t.Fatal("unable to write integer:", err)
	}
	if value, err := s.Read64BitInteger(); err != nil {
		t.Fatal("unable to read integer:", err)
	} else if value != 30 {
		t.Error("read after write mismatch:", value, "!= 30")
	}
	if err := s.SeekFromStart(8); err != nil {
		t.Fatal("unable to seek:", err)
	}
	if value, err := s.Read64BitInteger(); err != nil {
		t.Fatal("unable to read integer:", err)
	} else if value != 99 {
		t.Error("overwrite not observed:", value, "!= 99")
	}
}

func TestOversizedTransferChunking(t *testing.T) {
	// Substitute a tiny transfer limit so that a modest batch exceeds it
	// many times over, then verify that one logical call still round-trips.
	defer func(previous int) {
		maximumTransferSize = previous
	}(maximumTransferSize)
	maximumTransferSize = 7

	values := make([]int64, 1000)
	for i := range values {
		values[i] = int64(i) - 500
	}

	s, path := openTemporary(t, ModeWrite)
	if err := s.Write64BitIntegers(values); err != nil {
		t.Fatal("unable to write integers:", err)
	}
	if err := s.Close(); err != nil {
		t.Fatal("unable to close stream:", err)
	}

	s, err := OpenFile(path, ModeRead)
	if err != nil {
		t.Fatal("unable to reopen stream:", err)
	}
	defer s.Close()
	read := make([]int64, len(values))
	if err := s.Read64BitIntegers(read); err != nil {
		t.Fatal("unable to read integers:", err)
	}
	for i, value := range read {
		if value != values[i] {
			t.Fatalf("chunked round trip mismatch at %d: %d != %d", i, value, values[i])
		}
	}
}

func TestStandardAliasRestrictions(t *testing.T) {
	// Standard input must reject write-capable modes.
	if _, err := OpenFile(StandardInputName, ModeWrite); err == nil {
		t.Error("expected write-mode standard input to fail")
	}
	if _, err := OpenFile(StandardInputName, ModeReadWrite); err == nil {
		t.Error("expected read-write standard input to fail")
	}

	// Standard output and error must reject read-capable modes.
	if _, err := OpenFile(StandardOutputName, ModeRead); err == nil {
		t.Error("expected read-mode standard output to fail")
	}
	if _, err := OpenFile(StandardErrorName, ModeReadWrite); err == nil {
		t.Error("expected read-write standard error to fail")
	}
}

func TestStreamQueries(t *testing.T) {
	// A regular file stream is seekable and non-blocking.
	s, _ := openTemporary(t, ModeWriteRead)
	if s.Kind() != TransportFile {
		t.Error("transport kind mismatch:", s.Kind())
	}
	if !s.IsReadable() || !s.IsWritable() {
		t.Error("read-write stream misreports accessibility")
	}
	if !s.IsSeekable() {
		t.Error("regular file stream misreports seekability")
	}
	if s.IsBlocking() {
		t.Error("regular file stream misreports blocking")
	}
	if s.File() == nil {
		t.Error("file stream doesn't expose its handle")
	}
	if err := s.Close(); err != nil {
		t.Fatal("unable to close stream:", err)
	}
	if s.IsReadable() || s.IsWritable() || s.IsSeekable() {
		t.Error("closed stream misreports accessibility")
	}

	// Standard input is blocking and not seekable.
	in, err := OpenFile(StandardInputName, ModeRead)
	if err != nil {
		t.Fatal("unable to open standard input stream:", err)
	}
	if !in.IsBlocking() {
		t.Error("standard input stream misreports blocking")
	}
	if in.IsSeekable() {
		t.Error("standard input stream misreports seekability")
	}
	if err := in.Close(); err != nil {
		t.Fatal("unable to close standard input stream:", err)
	}
}

func TestOperationsAfterClose(t *testing.T) {
	s, _ := openTemporary(t, ModeWriteRead)
	if err := s.Close(); err != nil {
		t.Fatal("unable to close stream:", err)
	}
	if err := s.Write64BitInteger(1); err == nil {
		t.Error("expected write on closed stream to fail")
	}
	if _, err := s.Read64BitInteger(); err == nil {
		t.Error("expected read on closed stream to fail")
	}
	if err := s.Close(); err == nil {
		t.Error("expected second close to fail")
	}
}
