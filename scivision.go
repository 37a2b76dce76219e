// Package scivision loads pretrained models described by a
// .scivision-config.yaml manifest and exposes their prediction function
// through a uniform Predict call.
//
// Backing packages are not imported dynamically. A program makes a package
// available by registering a Backend under the manifest's import name,
// usually from an init function:
//
//	func init() {
//		scivision.MustRegister(scivision.NewPackage("resnet_plugin", map[string]scivision.PredictFunc{
//			"predict": predict,
//		}))
//	}
//
// LoadPretrainedModel then resolves the manifest for an owner/repo location
// and wraps the registered function.
package scivision

import (
	"context"

	"github.com/ekisa-team/scivision/internal/backend"
	"github.com/ekisa-team/scivision/internal/manifest"
	"github.com/ekisa-team/scivision/internal/model"
)

type (
	// PretrainedModel wraps the prediction function of a loaded manifest.
	PretrainedModel = model.PretrainedModel

	// Manifest is a parsed .scivision-config.yaml document.
	Manifest = manifest.Manifest

	// Backend is a backing package that manifests can import.
	Backend = backend.Backend

	// PredictFunc is a prediction function exposed by a Backend.
	PredictFunc = backend.PredictFunc

	// Option configures LoadPretrainedModel.
	Option = model.Option

	// NotFoundError reports a manifest location that could not be read.
	NotFoundError = manifest.NotFoundError

	// ParseError reports manifest content that is not valid YAML.
	ParseError = manifest.ParseError

	// MissingFieldError reports a manifest without prediction_fn.args.X.
	MissingFieldError = manifest.MissingFieldError

	// PackageMissingError reports a manifest whose import is not registered.
	PackageMissingError = model.PackageMissingError

	// FunctionMissingError reports a backend without the requested function.
	FunctionMissingError = model.FunctionMissingError

	// Resolver turns a location into a validated Manifest.
	Resolver = manifest.Resolver

	// ResolverOption configures a Resolver.
	ResolverOption = manifest.ResolverOption

	// Fetcher reads manifest documents for a Resolver.
	Fetcher = manifest.Fetcher

	// Registry maps import names to backends.
	Registry = backend.Registry
)

var (
	ErrNotFound          = backend.ErrNotFound
	ErrAlreadyRegistered = backend.ErrAlreadyRegistered
	ErrFunctionNotFound  = backend.ErrFunctionNotFound
)

var (
	WithResolver     = model.WithResolver
	WithRegistry     = model.WithRegistry
	WithAllowInstall = model.WithAllowInstall
	WithParams       = model.WithParams

	NewResolver  = manifest.NewResolver
	WithBaseURL  = manifest.WithBaseURL
	WithFilename = manifest.WithFilename
	WithFetcher  = manifest.WithFetcher

	NewRegistry = backend.NewRegistry
)

// LoadPretrainedModel resolves the manifest published at location and
// returns a model wrapping its prediction function. location is an
// owner/repo fragment substituted into
// https://raw.githubusercontent.com/{location}/main/.
//
// Missing packages are never installed, even with WithAllowInstall: the
// returned PackageMissingError carries the command to run instead.
func LoadPretrainedModel(ctx context.Context, location string, opts ...Option) (*PretrainedModel, error) {
	return model.NewLoader(opts...).Load(ctx, location)
}

// NewPackage creates an in-process Backend exposing functions under name.
func NewPackage(name string, functions map[string]PredictFunc) Backend {
	return backend.NewPackage(name, functions)
}

// Register makes b available to manifests importing b.Name().
func Register(b Backend) error {
	return backend.Default().Register(b)
}

// MustRegister is Register that panics on error.
func MustRegister(b Backend) {
	if err := Register(b); err != nil {
		panic(err)
	}
}

// Registered returns the sorted names of all registered backends.
func Registered() []string {
	return backend.Default().Names()
}
