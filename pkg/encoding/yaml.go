package encoding

import (
	"gopkg.in/yaml.v3"
)

// LoadAndUnmarshalYAML loads YAML data from the specified path and decodes it
// into the specified value.
func LoadAndUnmarshalYAML(path string, value interface{}) error {
	return loadAndUnmarshal(path, func(data []byte) error {
		return yaml.Unmarshal(data, value)
	})
}

// MarshalAndSaveYAML encodes the specified value as YAML and writes it
// atomically to the specified path.
func MarshalAndSaveYAML(path string, value interface{}) error {
	return marshalAndSave(path, func() ([]byte, error) {
		return yaml.Marshal(value)
	})
}
