package encoding

import (
	"bytes"

	"github.com/BurntSushi/toml"
)

// LoadAndUnmarshalTOML loads TOML data from the specified path and decodes it
// into the specified value.
func LoadAndUnmarshalTOML(path string, value interface{}) error {
	return loadAndUnmarshal(path, func(data []byte) error {
		return toml.Unmarshal(data, value)
	})
}

// MarshalAndSaveTOML encodes the specified value as TOML and writes it
// atomically to the specified path.
func MarshalAndSaveTOML(path string, value interface{}) error {
	return marshalAndSave(path, func() ([]byte, error) {
		buffer := &bytes.Buffer{}
		if err := toml.NewEncoder(buffer).Encode(value); err != nil {
			return nil, err
		}
		return buffer.Bytes(), nil
	})
}
