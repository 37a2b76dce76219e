package model

import (
	"context"
	"errors"
	"log/slog"
	"maps"

	"github.com/ekisa-team/scivision/internal/backend"
	"github.com/ekisa-team/scivision/internal/manifest"
	"github.com/google/uuid"
)

// Loader resolves manifests and wraps their prediction functions.
type Loader struct {
	resolver     *manifest.Resolver
	registry     *backend.Registry
	allowInstall bool
	params       map[string]any
}

// Option configures a Loader.
type Option func(*Loader)

// WithResolver sets the manifest resolver.
func WithResolver(r *manifest.Resolver) Option {
	return func(l *Loader) {
		l.resolver = r
	}
}

// WithRegistry sets the backend registry used to find backing packages.
func WithRegistry(r *backend.Registry) Option {
	return func(l *Loader) {
		l.registry = r
	}
}

// WithAllowInstall records that installing missing packages is permitted.
// Installation is not supported: a missing package still fails with
// PackageMissingError.
func WithAllowInstall(allow bool) Option {
	return func(l *Loader) {
		l.allowInstall = allow
	}
}

// WithParams attaches parameters to every loaded model. They are not used
// while loading.
func WithParams(params map[string]any) Option {
	return func(l *Loader) {
		l.params = maps.Clone(params)
	}
}

// NewLoader creates a Loader. Without options it reads manifests from GitHub
// and looks packages up in backend.Default().
func NewLoader(opts ...Option) *Loader {
	l := &Loader{}
	for _, opt := range opts {
		opt(l)
	}
	if l.resolver == nil {
		l.resolver = manifest.NewResolver()
	}
	if l.registry == nil {
		l.registry = backend.Default()
	}

	return l
}

// Load resolves the manifest for location and wraps its prediction function.
func (l *Loader) Load(ctx context.Context, location string) (*PretrainedModel, error) {
	m, err := l.resolver.Resolve(ctx, location)
	if err != nil {
		return nil, err
	}

	return l.Wrap(m)
}

// LoadURL is Load for an explicit manifest URL or local path.
func (l *Loader) LoadURL(ctx context.Context, url string) (*PretrainedModel, error) {
	m, err := l.resolver.ResolveURL(ctx, url)
	if err != nil {
		return nil, err
	}

	return l.Wrap(m)
}

// Wrap checks that the manifest's backing package is registered and
// returns a model around its prediction function.
func (l *Loader) Wrap(m *manifest.Manifest) (*PretrainedModel, error) {
	b, err := l.registry.Lookup(m.Import)
	if err != nil {
		hint := InstallHint(m)
		if l.allowInstall && errors.Is(err, backend.ErrNotFound) {
			slog.Warn("Automatic installation is not supported, install the package manually", "import", m.Import, "command", hint)
		}

		return nil, &PackageMissingError{
			Import: m.Import,
			URL:    m.RepositoryURL(),
			Hint:   hint,
			Err:    err,
		}
	}

	call := m.PredictionFn.Function()
	fn, err := b.Function(call)
	if err != nil {
		return nil, &FunctionMissingError{Import: m.Import, Function: call, Err: err}
	}

	model := &PretrainedModel{
		id:       uuid.NewString(),
		manifest: m,
		backend:  b.Name(),
		function: call,
		predict:  fn,
		params:   maps.Clone(l.params),
	}

	slog.Info("Pretrained model loaded", "id", model.id, "import", m.Import, "function", call)

	return model, nil
}
