package main

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"

	"github.com/USEPA/rsigserver-sub001/pkg/encoding"
	"github.com/USEPA/rsigserver-sub001/pkg/subset"
)

const (
	// defaultConfigurationPath is the configuration file consulted when no
	// explicit path is given. Its absence is not an error.
	defaultConfigurationPath = "xdrtool.toml"
	// hostEnvironmentVariable overrides the configured peer host.
	hostEnvironmentVariable = "RSIG_HOST"
	// portEnvironmentVariable overrides the configured peer port.
	portEnvironmentVariable = "RSIG_PORT"
)

// configuration is the tool configuration, loaded from a TOML file with
// environment-based overrides.
type configuration struct {
	// Host is the default peer host for socket transfers.
	Host string `toml:"host"`
	// Port is the default peer port for socket transfers.
	Port uint16 `toml:"port"`
	// Domain is the default longitude/latitude domain for generated data.
	Domain subset.Domain `toml:"domain"`
}

// defaultConfiguration returns the built-in tool configuration: localhost
// transfers and a continental-US domain.
func defaultConfiguration() *configuration {
	return &configuration{
		Host: "localhost",
		Port: 8787,
		Domain: subset.Domain{
			MinimumLongitude: -126,
			MinimumLatitude:  24,
			MaximumLongitude: -66,
			MaximumLatitude:  50,
		},
	}
}

// loadConfiguration resolves the effective tool configuration from built-in
// defaults, an optional TOML file, and environment overrides (including any
// .env file in the working directory).
func loadConfiguration(path string) (*configuration, error) {
	// Start from defaults and layer on the configuration file. Absence of
	// the default configuration file is not an error.
	result := defaultConfiguration()
	if err := encoding.LoadAndUnmarshalTOML(path, result); err != nil {
		if !(os.IsNotExist(err) && path == defaultConfigurationPath) {
			return nil, errors.Wrap(err, "unable to load configuration")
		}
	}

	// Apply environment overrides, honoring any .env file. Absence of a .env
	// file is likewise not an error.
	godotenv.Load()
	if host := os.Getenv(hostEnvironmentVariable); host != "" {
		result.Host = host
	}
	if port := os.Getenv(portEnvironmentVariable); port != "" {
		value, err := strconv.ParseUint(port, 10, 16)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid %s value '%s'", portEnvironmentVariable, port)
		}
		result.Port = uint16(value)
	}

	// Validate the result.
	if err := result.Domain.EnsureValid(); err != nil {
		return nil, errors.Wrap(err, "invalid configured domain")
	}

	// Success.
	return result, nil
}
