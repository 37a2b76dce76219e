package model

import (
	"context"
	"fmt"
	"maps"

	"github.com/ekisa-team/scivision/internal/backend"
	"github.com/ekisa-team/scivision/internal/manifest"
)

// PretrainedModel wraps the prediction function of a loaded manifest.
type PretrainedModel struct {
	id       string
	manifest *manifest.Manifest
	backend  string
	function string
	predict  backend.PredictFunc
	params   map[string]any
}

// ID returns the identifier assigned when the model was loaded.
func (p *PretrainedModel) ID() string {
	return p.id
}

// Manifest returns the manifest the model was loaded from.
func (p *PretrainedModel) Manifest() *manifest.Manifest {
	return p.manifest
}

// Backend returns the import name of the backing package.
func (p *PretrainedModel) Backend() string {
	return p.backend
}

// Function returns the name of the wrapped prediction function.
func (p *PretrainedModel) Function() string {
	return p.function
}

// Params returns a copy of the parameters passed with WithParams.
func (p *PretrainedModel) Params() map[string]any {
	return maps.Clone(p.params)
}

// Predict forwards args to the prediction function and returns its result
// and error unchanged.
func (p *PretrainedModel) Predict(ctx context.Context, args ...any) (any, error) {
	return p.predict(ctx, args...)
}

func (p *PretrainedModel) String() string {
	return fmt.Sprintf("PretrainedModel(%s.%s)", p.backend, p.function)
}
