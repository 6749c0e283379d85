package encoding

import (
	"path/filepath"
	"testing"
)

func TestYAMLSaveAndLoad(t *testing.T) {
	// Save a value.
	path := filepath.Join(t.TempDir(), "configuration.yaml")
	expected := &testConfiguration{Host: "example.org", Port: 8787, West: -126}
	if err := MarshalAndSaveYAML(path, expected); err != nil {
		t.Fatal("unable to save YAML:", err)
	}

	// Load it back and compare.
	value := &testConfiguration{}
	if err := LoadAndUnmarshalYAML(path, value); err != nil {
		t.Fatal("unable to load YAML:", err)
	}
	if *value != *expected {
		t.Error("YAML round trip mismatch:", *value, "!=", *expected)
	}
}

func TestYAMLLoadInvalid(t *testing.T) {
	// Save malformed data.
	path := filepath.Join(t.TempDir(), "configuration.yaml")
	if err := marshalAndSave(path, func() ([]byte, error) {
		return []byte("host: [\n"), nil
	}); err != nil {
		t.Fatal("unable to save test data:", err)
	}

	// Loading must fail.
	if LoadAndUnmarshalYAML(path, &testConfiguration{}) == nil {
		t.Error("expected load of malformed YAML to fail")
	}
}
