package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/ekisa-team/scivision/internal/envvar"
	"github.com/ekisa-team/scivision/internal/manifest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadAndValidate(t *testing.T) {
	path := writeConfig(t, `version: "1"
source:
  base_url: "mem://localhost/{location}/"
log:
  level: debug
backends:
  commands:
    resnet_plugin:
      binary: /usr/local/bin/resnet-plugin
      timeout: 30s
    detector:
      binary: detector
`)

	cfg, err := LoadAndValidate(path)
	require.NoError(t, err)

	assert.Equal(t, "mem://localhost/{location}/", cfg.Source.BaseURL)
	assert.Equal(t, manifest.DefaultFilename, cfg.Source.ManifestFilename)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.NotEmpty(t, cfg.Log.File)
	assert.Equal(t, CommandConfig{Binary: "/usr/local/bin/resnet-plugin", Timeout: 30 * time.Second}, cfg.Backends.Commands["resnet_plugin"])
	assert.Equal(t, DefaultCommandTimeout, cfg.Backends.Commands["detector"].Timeout)
}

func TestLoadAndValidate_EmptyFile(t *testing.T) {
	cfg, err := LoadAndValidate(writeConfig(t, ""))
	require.NoError(t, err)

	assert.Equal(t, Default(), cfg)
}

func TestLoadAndValidate_VersionForms(t *testing.T) {
	for _, content := range []string{"version: 1\n", "version: \"1\"\n"} {
		cfg, err := LoadAndValidate(writeConfig(t, content))
		require.NoError(t, err, content)
		assert.Equal(t, Version(CurrentVersion), cfg.Version, content)
	}

	_, err := LoadAndValidate(writeConfig(t, "version: 2\n"))
	assert.Error(t, err)
}

func TestLoadAndValidate_RejectsInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "unknown top-level option", content: "version: \"1\"\ncache: true\n"},
		{name: "unknown source option", content: "source:\n  branch: dev\n"},
		{name: "bad log level", content: "log:\n  level: loud\n"},
		{name: "command without binary", content: "backends:\n  commands:\n    x:\n      timeout: 1s\n"},
		{name: "numeric timeout", content: "backends:\n  commands:\n    x:\n      binary: x\n      timeout: 30\n"},
		{name: "invalid yaml", content: "source: [\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadAndValidate(writeConfig(t, tc.content))
			assert.Error(t, err)
		})
	}
}

func TestLoad_OptionalMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"), true)
	require.NoError(t, err)
	assert.Equal(t, manifest.DefaultBaseURL, cfg.Source.BaseURL)

	_, err = Load(filepath.Join(t.TempDir(), "absent.yaml"), false)
	assert.Error(t, err)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv(envvar.ScivisionBaseURL, "file:///srv/manifests/{location}")
	t.Setenv(envvar.ScivisionLogFile, "/tmp/scivision.log")

	cfg, err := Load(writeConfig(t, "version: \"1\"\n"), false)
	require.NoError(t, err)

	assert.Equal(t, "file:///srv/manifests/{location}", cfg.Source.BaseURL)
	assert.Equal(t, "/tmp/scivision.log", cfg.Log.File)
	assert.True(t, cfg.Log.ToFile)
}

func TestDefaultConfigPath(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG layout only applies on linux")
	}

	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	assert.Equal(t, filepath.Join("/xdg", "scivision"), DefaultConfigPath())
}
