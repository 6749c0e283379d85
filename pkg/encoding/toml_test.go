package encoding

import (
	"path/filepath"
	"testing"
)

// testConfiguration is a sample structure for exercising the configuration
// codecs.
type testConfiguration struct {
	Host string  `toml:"host" yaml:"host"`
	Port uint16  `toml:"port" yaml:"port"`
	West float64 `toml:"west" yaml:"west"`
}

func TestTOMLSaveAndLoad(t *testing.T) {
	// Save a value.
	path := filepath.Join(t.TempDir(), "configuration.toml")
	expected := &testConfiguration{Host: "example.org", Port: 8787, West: -126}
	if err := MarshalAndSaveTOML(path, expected); err != nil {
		t.Fatal("unable to save TOML:", err)
	}

	// Load it back and compare.
	value := &testConfiguration{}
	if err := LoadAndUnmarshalTOML(path, value); err != nil {
		t.Fatal("unable to load TOML:", err)
	}
	if *value != *expected {
		t.Error("TOML round trip mismatch:", *value, "!=", *expected)
	}
}

func TestTOMLLoadInvalid(t *testing.T) {
	// Save malformed data.
	path := filepath.Join(t.TempDir(), "configuration.toml")
	if err := marshalAndSave(path, func() ([]byte, error) {
		return []byte("host = ["), nil
	}); err != nil {
		t.Fatal("unable to save test data:", err)
	}

	// Loading must fail.
	if LoadAndUnmarshalTOML(path, &testConfiguration{}) == nil {
		t.Error("expected load of malformed TOML to fail")
	}
}
