package manifest

import (
	"strings"

	"github.com/ekisa-team/scivision/internal/mapsafe"
)

const (
	// DefaultBaseURL is the location template manifests are fetched from.
	// {location} is replaced with the caller supplied owner/repo fragment.
	DefaultBaseURL = "https://raw.githubusercontent.com/{location}/main/"

	// DefaultFilename is the manifest file name appended to the base URL.
	DefaultFilename = ".scivision-config.yaml"

	// LocationPlaceholder is substituted in the base URL template.
	LocationPlaceholder = "{location}"

	// DefaultCall is the prediction function used when the manifest names none.
	DefaultCall = "predict"

	// InputArg is the argument every prediction function must declare.
	InputArg = "X"
)

// Manifest is a parsed .scivision-config.yaml document.
type Manifest struct {
	Name         string         `json:"name,omitempty"  yaml:"name,omitempty"`
	Import       string         `json:"import"          yaml:"import"`
	URL          string         `json:"url"             yaml:"url"`
	PredictionFn PredictionFn   `json:"prediction_fn"   yaml:"prediction_fn"`
	Raw          map[string]any `json:"-"               yaml:"-"`
}

// PredictionFn describes the callable a model forwards predictions to.
type PredictionFn struct {
	Call string         `json:"call,omitempty" yaml:"call,omitempty"`
	Args map[string]any `json:"args"           yaml:"args"`
}

// Function returns the name of the prediction function, falling back to DefaultCall.
func (p PredictionFn) Function() string {
	if call := strings.TrimSpace(p.Call); call != "" {
		return call
	}
	return DefaultCall
}

// RepositoryURL returns URL without a trailing ".git" suffix.
func (m *Manifest) RepositoryURL() string {
	return strings.TrimSuffix(m.URL, ".git")
}

// fromRaw builds a Manifest from a decoded document that already passed
// shape validation. Scalar fields are read permissively.
func fromRaw(raw map[string]any) *Manifest {
	m := &Manifest{
		Name:   mapsafe.Get(raw, "name", ""),
		Import: mapsafe.Get(raw, "import", ""),
		URL:    mapsafe.Get(raw, "url", ""),
		Raw:    raw,
	}

	if fn, ok := mapsafe.Map(raw, "prediction_fn"); ok {
		m.PredictionFn.Call = mapsafe.Get(fn, "call", "")
	}
	if args, ok := mapsafe.Map(raw, "prediction_fn", "args"); ok {
		m.PredictionFn.Args = args
	}

	return m
}

// URLFor joins a base URL template, a location and a file name into the
// manifest URL. No validation is performed on location.
func URLFor(baseURL, location, filename string) string {
	base := strings.ReplaceAll(baseURL, LocationPlaceholder, location)
	if filename == "" {
		return base
	}
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return base + filename
}
