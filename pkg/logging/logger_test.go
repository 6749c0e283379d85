package logging

import (
	"testing"
)

func TestNilLoggerUsable(t *testing.T) {
	// A nil logger must accept all operations without panicking.
	var logger *Logger
	logger.Info("information")
	logger.Infof("formatted %d", 1)
	logger.Warnf("warning %d", 2)
	if sublogger := logger.Sublogger("sub"); sublogger != nil {
		t.Error("nil logger produced non-nil sublogger")
	}
	if _, err := logger.Writer().Write([]byte("discarded\n")); err != nil {
		t.Error("nil logger writer failed:", err)
	}
}

func TestSubloggerPrefixes(t *testing.T) {
	sublogger := RootLogger.Sublogger("stream")
	if sublogger.prefix != "stream" {
		t.Error("sublogger prefix mismatch:", sublogger.prefix)
	}
	nested := sublogger.Sublogger("socket")
	if nested.prefix != "stream.socket" {
		t.Error("nested sublogger prefix mismatch:", nested.prefix)
	}
}

func TestWriterLineSplitting(t *testing.T) {
	// The line writer must split input into lines, trim carriage returns,
	// and retain incomplete fragments.
	var lines []string
	w := &writer{callback: func(s string) {
		lines = append(lines, s)
	}}

	if _, err := w.Write([]byte("first\r\nsec")); err != nil {
		t.Fatal("unable to write:", err)
	}
	if _, err := w.Write([]byte("ond\n")); err != nil {
		t.Fatal("unable to write:", err)
	}
	if len(lines) != 2 {
		t.Fatal("line count mismatch:", len(lines), "!= 2")
	}
	if lines[0] != "first" {
		t.Error("first line mismatch:", lines[0])
	}
	if lines[1] != "second" {
		t.Error("second line mismatch:", lines[1])
	}
}

func TestLevelNames(t *testing.T) {
	// Names and levels must round-trip.
	for _, name := range []string{"disabled", "error", "warn", "info", "debug"} {
		level, ok := NameToLevel(name)
		if !ok {
			t.Error("valid level name rejected:", name)
		}
		if level.String() != name {
			t.Error("level name mismatch:", level.String(), "!=", name)
		}
	}
	if _, ok := NameToLevel("verbose"); ok {
		t.Error("invalid level name accepted")
	}
}
