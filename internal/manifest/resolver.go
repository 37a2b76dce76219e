package manifest

import (
	"context"
	"errors"
	"log/slog"

	"github.com/ekisa-team/scivision/internal/mapsafe"
	"github.com/viant/afs"
	"go.yaml.in/yaml/v3"
)

// Fetcher reads manifest documents from a URL or local path.
type Fetcher interface {
	Exists(ctx context.Context, url string) (bool, error)
	Download(ctx context.Context, url string) ([]byte, error)
}

// AFSFetcher implements Fetcher on top of an afs.Service, which serves
// http(s), file, mem and plain local paths.
type AFSFetcher struct {
	fs afs.Service
}

// NewAFSFetcher creates a Fetcher backed by fs. A nil fs uses afs.New().
func NewAFSFetcher(fs afs.Service) *AFSFetcher {
	if fs == nil {
		fs = afs.New()
	}
	return &AFSFetcher{fs: fs}
}

// Exists reports whether url can be opened.
func (f *AFSFetcher) Exists(ctx context.Context, url string) (bool, error) {
	return f.fs.Exists(ctx, url)
}

// Download reads the full content at url.
func (f *AFSFetcher) Download(ctx context.Context, url string) ([]byte, error) {
	return f.fs.DownloadWithURL(ctx, url)
}

// Resolver turns a location identifier into a validated Manifest.
type Resolver struct {
	fetcher  Fetcher
	baseURL  string
	filename string
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithFetcher sets the transport used to read manifests.
func WithFetcher(f Fetcher) ResolverOption {
	return func(r *Resolver) {
		r.fetcher = f
	}
}

// WithBaseURL sets the base URL template. It may contain {location}.
func WithBaseURL(baseURL string) ResolverOption {
	return func(r *Resolver) {
		if baseURL != "" {
			r.baseURL = baseURL
		}
	}
}

// WithFilename sets the manifest file name appended to the base URL.
func WithFilename(filename string) ResolverOption {
	return func(r *Resolver) {
		if filename != "" {
			r.filename = filename
		}
	}
}

// NewResolver creates a Resolver using the GitHub raw content convention
// unless overridden.
func NewResolver(opts ...ResolverOption) *Resolver {
	r := &Resolver{
		baseURL:  DefaultBaseURL,
		filename: DefaultFilename,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.fetcher == nil {
		r.fetcher = NewAFSFetcher(nil)
	}

	return r
}

// URL returns the manifest URL for location.
func (r *Resolver) URL(location string) string {
	return URLFor(r.baseURL, location, r.filename)
}

// Resolve fetches, parses and validates the manifest for location.
// Every call reads the manifest again.
func (r *Resolver) Resolve(ctx context.Context, location string) (*Manifest, error) {
	return r.ResolveURL(ctx, r.URL(location))
}

// ResolveURL fetches, parses and validates the manifest stored at url.
func (r *Resolver) ResolveURL(ctx context.Context, url string) (*Manifest, error) {
	slog.Debug("Fetching manifest", "url", url)

	ok, err := r.fetcher.Exists(ctx, url)
	if err != nil {
		return nil, &NotFoundError{URL: url, Err: err}
	}
	if !ok {
		return nil, &NotFoundError{URL: url}
	}

	data, err := r.fetcher.Download(ctx, url)
	if err != nil {
		return nil, &NotFoundError{URL: url, Err: err}
	}

	return Parse(url, data)
}

// Parse decodes and validates manifest content read from url.
func Parse(url string, data []byte) (*Manifest, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &ParseError{URL: url, Err: err}
	}
	doc = mapsafe.Normalize(doc)

	value, err := mapsafe.JSONValue(doc)
	if err != nil {
		return nil, &ParseError{URL: url, Err: err}
	}

	if err := manifestSchema.Validate(value); err != nil {
		return nil, &MissingFieldError{URL: url, Field: "prediction_fn.args." + InputArg, Err: err}
	}

	raw, ok := doc.(map[string]any)
	if !ok {
		// Unreachable once the schema accepted the document as an object.
		return nil, &MissingFieldError{URL: url, Field: "prediction_fn.args." + InputArg, Err: errors.New("document is not a mapping")}
	}

	m := fromRaw(raw)
	slog.Debug("Manifest resolved", "url", url, "import", m.Import, "call", m.PredictionFn.Function())

	return m, nil
}
