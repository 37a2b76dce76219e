package env

import (
	"os"
	"strings"

	"github.com/ekisa-team/scivision/internal/envvar"
)

// Environment is the deployment environment the CLI runs in.
type Environment string

const (
	Development Environment = "development"
	Production  Environment = "production"
	Test        Environment = "test"
)

// FromEnv reads the environment from SCIVISION_ENV, defaulting to development.
func FromEnv() Environment {
	return Parse(os.Getenv(envvar.ScivisionEnv))
}

// Parse maps a string to an Environment. Unknown values mean development.
func Parse(s string) Environment {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "prod", "production":
		return Production
	case "test":
		return Test
	default:
		return Development
	}
}

// IsProduction reports whether e is the production environment.
func (e Environment) IsProduction() bool {
	return e == Production
}
