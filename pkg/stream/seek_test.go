package stream

import (
	"testing"
)

func TestSeekAndQueryPositions(t *testing.T) {
	s, _ := openTemporary(t, ModeWriteRead)
	defer s.Close()

	// Write sixteen bytes and verify accounting.
	if err := s.Write64BitIntegers([]int64{1, 2}); err != nil {
		t.Fatal("unable to write integers:", err)
	}
	if offset := s.Offset(); offset != 16 {
		t.Error("offset mismatch after write:", offset, "!= 16")
	}
	if size := s.Size(); size != 16 {
		t.Error("size mismatch after write:", size, "!= 16")
	}

	// Seek to the second value and read it.
	if err := s.SeekFromStart(8); err != nil {
		t.Fatal("unable to seek:", err)
	}
	if offset := s.Offset(); offset != 8 {
		t.Error("offset mismatch after seek:", offset, "!= 8")
	}
	if value, err := s.Read64BitInteger(); err != nil {
		t.Fatal("unable to read integer:", err)
	} else if value != 2 {
		t.Error("read mismatch:", value, "!= 2")
	}

	// Seek relative to the end and re-read the first value.
	if err := s.SeekFromEnd(-16); err != nil {
		t.Fatal("unable to seek:", err)
	}
	if value, err := s.Read64BitInteger(); err != nil {
		t.Fatal("unable to read integer:", err)
	} else if value != 1 {
		t.Error("read mismatch:", value, "!= 1")
	}

	// Seek relative to the current logical position (which accounts for
	// buffered read-ahead).
	if err := s.SeekFromCurrent(-8); err != nil {
		t.Fatal("unable to seek:", err)
	}
	if value, err := s.Read64BitInteger(); err != nil {
		t.Fatal("unable to read integer:", err)
	} else if value != 1 {
		t.Error("read mismatch:", value, "!= 1")
	}
}

func TestSeekFailureRollback(t *testing.T) {
	s, _ := openTemporary(t, ModeWriteRead)
	defer s.Close()

	if err := s.Write64BitInteger(7); err != nil {
		t.Fatal("unable to write integer:", err)
	}
	if err := s.SeekFromStart(0); err != nil {
		t.Fatal("unable to seek:", err)
	}

	// A seek to a negative position must fail, restore the prior position,
	// and leave the stream usable.
	if err := s.SeekFromStart(-1); err == nil {
		t.Error("expected seek to negative position to fail")
	}
	if s.Ok() {
		t.Error("ok flag set after failed seek")
	}
	if offset := s.Offset(); offset != 0 {
		t.Error("position not restored after failed seek:", offset, "!= 0")
	}
	if value, err := s.Read64BitInteger(); err != nil {
		t.Fatal("unable to read integer after failed seek:", err)
	} else if value != 7 {
		t.Error("read mismatch after failed seek:", value, "!= 7")
	}
}

func TestSeekOnNonSeekableStream(t *testing.T) {
	in, err := OpenFile(StandardInputName, ModeRead)
	if err != nil {
		t.Fatal("unable to open standard input stream:", err)
	}
	defer in.Close()

	if err := in.SeekFromStart(0); err == nil {
		t.Error("expected seek on non-seekable stream to fail")
	}
	if offset := in.Offset(); offset != 0 {
		t.Error("non-seekable stream reported nonzero offset:", offset)
	}
	if size := in.Size(); size != 0 {
		t.Error("non-seekable stream reported nonzero size:", size)
	}
}

func TestIsAtEnd(t *testing.T) {
	s, path := openTemporary(t, ModeWrite)
	if err := s.WriteByte(1); err != nil {
		t.Fatal("unable to write byte:", err)
	}
	if err := s.Close(); err != nil {
		t.Fatal("unable to close stream:", err)
	}

	s, err := OpenFile(path, ModeRead)
	if err != nil {
		t.Fatal("unable to reopen stream:", err)
	}
	defer s.Close()

	// The peek must not consume the pending byte.
	if s.IsAtEnd() {
		t.Error("stream with pending data reported at end")
	}
	if value, err := s.ReadByte(); err != nil {
		t.Fatal("unable to read byte:", err)
	} else if value != 1 {
		t.Error("peek consumed pending byte:", value, "!= 1")
	}
	if !s.IsAtEnd() {
		t.Error("exhausted stream not reported at end")
	}
}
