package config

import (
	"io"

	"gopkg.in/yaml.v3"
)

// Decode strict-decodes a Config from r, rejecting unknown top-level keys.
func Decode(r io.Reader) (*Config, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	cfg := &Config{}
	if err := dec.Decode(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
