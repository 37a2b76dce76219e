package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/ekisa-team/scivision/internal/envvar"
	"github.com/ekisa-team/scivision/internal/mapsafe"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"go.yaml.in/yaml/v3"
)

//go:embed schema.json
var schemaSource string

var configSchema = jsonschema.MustCompileString("scivision.v1.schema.json", schemaSource)

// LoadAndValidate loads and validates the configuration at path.
// Unknown options are rejected.
func LoadAndValidate(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: failed to read config: %w", err)
	}

	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("config: invalid YAML: %w", err)
	}
	if raw == nil {
		raw = map[string]any{}
	}

	value, err := mapsafe.JSONValue(mapsafe.Normalize(raw))
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	if err := configSchema.Validate(value); err != nil {
		return nil, fmt.Errorf("config: validation failed: %w", err)
	}

	var config Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&config); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: failed to unmarshal into Config struct: %w", err)
	}

	config.applyDefaults()

	return &config, nil
}

// Load reads the configuration at path and applies environment overrides.
// When optional is set a missing file yields Default().
func Load(path string, optional bool) (*Config, error) {
	config, err := LoadAndValidate(path)
	if err != nil {
		if !optional || !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		config = Default()
	}

	config.applyEnv()

	return config, nil
}

// applyEnv overrides settings from environment variables.
func (c *Config) applyEnv() {
	if v := os.Getenv(envvar.ScivisionBaseURL); v != "" {
		c.Source.BaseURL = v
	}
	if v := os.Getenv(envvar.ScivisionLogFile); v != "" {
		c.Log.File = v
		c.Log.ToFile = true
	}
}
