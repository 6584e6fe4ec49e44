// Package config loads the sphinxctl demo binary's TOML configuration.
// The header-construction core itself (the sphinx package at the
// module root) takes no config and has no file I/O, per spec.md §6:
// this package exists only for the outer cmd/sphinxctl layer.
package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
	logging "gopkg.in/op/go-logging.v1"
)

var log = logging.MustGetLogger("sphinx/config")

// Params holds the demo binary's tunables. SecurityParameter and
// MaxPathLength are recorded for operator visibility only — the core
// package's own constants are compile-time fixed, so a mismatch here
// is a configuration error, not something this package silently
// reconciles.
type Params struct {
	SecurityParameter int    `toml:"security_parameter"`
	MaxPathLength     int    `toml:"max_path_length"`
	LogLevel          string `toml:"log_level"`
}

// Default returns the parameters matching the sphinx package's
// compiled-in constants.
func Default() Params {
	return Params{
		SecurityParameter: 16,
		MaxPathLength:     5,
		LogLevel:          "INFO",
	}
}

// Load reads and decodes a TOML config file, falling back to Default
// for any field left unset.
func Load(path string) (Params, error) {
	p := Default()
	if _, err := toml.DecodeFile(path, &p); err != nil {
		return Params{}, fmt.Errorf("config: decoding %s: %w", path, err)
	}
	log.Infof("loaded config from %s", path)
	return p, nil
}

// Validate checks that the loaded parameters match the sphinx
// package's compiled-in constants — this binary does not support
// repointing the core engine at different constants at runtime.
func (p Params) Validate(compiledSecurityParameter, compiledMaxPathLength int) error {
	if p.SecurityParameter != compiledSecurityParameter {
		return fmt.Errorf("config: security_parameter %d does not match compiled value %d", p.SecurityParameter, compiledSecurityParameter)
	}
	if p.MaxPathLength != compiledMaxPathLength {
		return fmt.Errorf("config: max_path_length %d does not match compiled value %d", p.MaxPathLength, compiledMaxPathLength)
	}
	return nil
}
