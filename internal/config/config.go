package config

import (
	"time"

	"go.yaml.in/yaml/v3"
)

// Config holds the CLI configuration.
type Config struct {
	Version  Version        `json:"version"            yaml:"version"`
	Source   SourceConfig   `json:"source,omitempty"   yaml:"source,omitempty"`
	Log      LogConfig      `json:"log,omitempty"      yaml:"log,omitempty"`
	Backends BackendsConfig `json:"backends,omitempty" yaml:"backends,omitempty"`
}

// Version is the config format version. Both version: 1 and version: "1"
// are accepted.
type Version string

// UnmarshalYAML keeps the scalar text whatever its YAML type.
func (v *Version) UnmarshalYAML(node *yaml.Node) error {
	*v = Version(node.Value)
	return nil
}

// SourceConfig controls where manifests are fetched from.
type SourceConfig struct {
	// BaseURL is a template; {location} is replaced with the model location.
	BaseURL          string `json:"base_url,omitempty"          yaml:"base_url,omitempty"`
	ManifestFilename string `json:"manifest_filename,omitempty" yaml:"manifest_filename,omitempty"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `json:"level,omitempty"   yaml:"level,omitempty"`
	File   string `json:"file,omitempty"    yaml:"file,omitempty"`
	ToFile bool   `json:"to_file,omitempty" yaml:"to_file,omitempty"`
}

// BackendsConfig declares backing packages provided outside the binary.
type BackendsConfig struct {
	Commands map[string]CommandConfig `json:"commands,omitempty" yaml:"commands,omitempty"`
}

// CommandConfig declares an executable backend registered under its map key.
type CommandConfig struct {
	Binary  string        `json:"binary"            yaml:"binary"`
	Timeout time.Duration `json:"timeout,omitempty" yaml:"timeout,omitempty"`
}
