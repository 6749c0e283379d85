package encoding

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
)

func TestLoadAndUnmarshalNonExistentPath(t *testing.T) {
	if !os.IsNotExist(loadAndUnmarshal("/this/does/not/exist", nil)) {
		t.Error("expected loadAndUnmarshal to pass through non-existence errors")
	}
}

func TestLoadAndUnmarshalUnmarshalFail(t *testing.T) {
	// Create an empty file.
	path := filepath.Join(t.TempDir(), "empty")
	if err := os.WriteFile(path, nil, 0600); err != nil {
		t.Fatal("unable to create test file:", err)
	}

	// Create a broken unmarshaling function.
	unmarshal := func(_ []byte) error {
		return errors.New("unmarshal failed")
	}

	// Attempt to load and unmarshal using a broken unmarshaling function.
	if loadAndUnmarshal(path, unmarshal) == nil {
		t.Error("expected loadAndUnmarshal to return an error")
	}
}

func TestMarshalAndSaveMarshalFail(t *testing.T) {
	// Create a broken marshaling function.
	marshal := func() ([]byte, error) {
		return nil, errors.New("marshal failed")
	}

	// Attempt to marshal and save using a broken marshaling function.
	if marshalAndSave(filepath.Join(t.TempDir(), "output"), marshal) == nil {
		t.Error("expected marshalAndSave to return an error")
	}
}

func TestMarshalAndSaveInvalidPath(t *testing.T) {
	// Create a marshaling function.
	marshal := func() ([]byte, error) {
		return []byte{0}, nil
	}

	// Attempt to marshal and save using a directory as the target path.
	if marshalAndSave(t.TempDir(), marshal) == nil {
		t.Error("expected marshalAndSave to return an error")
	}
}
