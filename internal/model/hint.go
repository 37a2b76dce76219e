package model

import (
	"fmt"

	"github.com/ekisa-team/scivision/internal/manifest"
)

// InstallHint returns the advisory install command for the package a
// manifest refers to. Nothing is ever installed automatically.
func InstallHint(m *manifest.Manifest) string {
	return fmt.Sprintf("pip install -e git+%s@main#egg=%s", m.RepositoryURL(), m.Import)
}
