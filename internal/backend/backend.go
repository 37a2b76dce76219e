package backend

import (
	"context"
	"fmt"
	"sort"
)

// PredictFunc is a prediction function exposed by a backing package.
// Arguments are forwarded verbatim from PretrainedModel.Predict.
type PredictFunc func(ctx context.Context, args ...any) (any, error)

// Backend defines a backing package that a manifest can import.
type Backend interface {
	// Name returns the import name manifests refer to.
	Name() string

	// Function resolves a prediction function by name.
	Function(name string) (PredictFunc, error)

	// Close cleans up resources.
	Close() error
}

// Package is an in-process Backend built from a set of Go functions.
type Package struct {
	name      string
	functions map[string]PredictFunc
}

// NewPackage creates a Package exposing functions under name.
func NewPackage(name string, functions map[string]PredictFunc) *Package {
	fns := make(map[string]PredictFunc, len(functions))
	for k, fn := range functions {
		fns[k] = fn
	}

	return &Package{
		name:      name,
		functions: fns,
	}
}

// Name returns the import name.
func (p *Package) Name() string {
	return p.name
}

// Function returns the function registered under name.
func (p *Package) Function(name string) (PredictFunc, error) {
	fn, ok := p.functions[name]
	if !ok || fn == nil {
		return nil, fmt.Errorf("%w: %s.%s", ErrFunctionNotFound, p.name, name)
	}

	return fn, nil
}

// Functions returns the sorted names of the exposed functions.
func (p *Package) Functions() []string {
	names := make([]string, 0, len(p.functions))
	for name := range p.functions {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// Close cleans up resources. A Package holds none.
func (p *Package) Close() error {
	return nil
}
