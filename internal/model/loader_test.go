package model

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/ekisa-team/scivision/internal/backend"
	"github.com/ekisa-team/scivision/internal/manifest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/afs"
)

const memBase = "mem://localhost/model-test/{location}/"

func upload(t *testing.T, location, content string) {
	t.Helper()

	url := manifest.URLFor(memBase, location, manifest.DefaultFilename)
	require.NoError(t, afs.New().Upload(context.Background(), url, 0o644, strings.NewReader(content)))
}

func echo(_ context.Context, args ...any) (any, error) {
	return args, nil
}

func newTestLoader(t *testing.T, opts ...Option) *Loader {
	t.Helper()

	reg := backend.NewRegistry()
	require.NoError(t, reg.Register(backend.NewPackage("numpy", map[string]backend.PredictFunc{
		"predict":  echo,
		"classify": echo,
	})))

	base := []Option{
		WithResolver(manifest.NewResolver(manifest.WithBaseURL(memBase))),
		WithRegistry(reg),
	}
	return NewLoader(append(base, opts...)...)
}

func TestLoader_ScenarioA_LoadSucceeds(t *testing.T) {
	upload(t, "scenario/a", "import: numpy\nurl: https://github.com/x/y.git\nprediction_fn:\n  args:\n    X: image\n")

	m, err := newTestLoader(t).Load(context.Background(), "scenario/a")
	require.NoError(t, err)

	assert.NotEmpty(t, m.ID())
	assert.Equal(t, "numpy", m.Backend())
	assert.Equal(t, "predict", m.Function())
	assert.Equal(t, "numpy", m.Manifest().Import)
	assert.Equal(t, "PretrainedModel(numpy.predict)", m.String())

	out, err := m.Predict(context.Background(), "image.png", 42, map[string]any{"k": "v"})
	require.NoError(t, err)
	assert.Equal(t, []any{"image.png", 42, map[string]any{"k": "v"}}, out)
}

func TestLoader_ScenarioB_PackageMissing(t *testing.T) {
	upload(t, "scenario/b", "import: totally_missing_pkg_123\nurl: https://github.com/x/y.git\nprediction_fn:\n  args:\n    X: image\n")

	for _, allow := range []bool{false, true} {
		_, err := newTestLoader(t, WithAllowInstall(allow)).Load(context.Background(), "scenario/b")

		var missing *PackageMissingError
		require.ErrorAs(t, err, &missing)
		assert.ErrorIs(t, err, backend.ErrNotFound)
		assert.Equal(t, "totally_missing_pkg_123", missing.Import)
		assert.Equal(t, "https://github.com/x/y", missing.URL)
		assert.Contains(t, err.Error(), "https://github.com/x/y@main")
		assert.NotContains(t, err.Error(), "y.git")
		assert.Contains(t, err.Error(), "totally_missing_pkg_123")
		assert.Equal(t, "pip install -e git+https://github.com/x/y@main#egg=totally_missing_pkg_123", missing.Hint)
	}
}

func TestLoader_ScenarioC_MissingInputArg(t *testing.T) {
	upload(t, "scenario/c", "import: numpy\nprediction_fn:\n  args:\n    Y: image\n")

	_, err := newTestLoader(t).Load(context.Background(), "scenario/c")

	var missing *manifest.MissingFieldError
	assert.ErrorAs(t, err, &missing)
}

func TestLoader_ScenarioD_NotFound(t *testing.T) {
	_, err := newTestLoader(t).Load(context.Background(), "scenario/d")

	var notFound *manifest.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestLoader_URLWithoutGitSuffix(t *testing.T) {
	upload(t, "hint/plain", "import: absent\nurl: https://github.com/x/plain\nprediction_fn:\n  args:\n    X: image\n")

	_, err := newTestLoader(t).Load(context.Background(), "hint/plain")

	var missing *PackageMissingError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "pip install -e git+https://github.com/x/plain@main#egg=absent", missing.Hint)
}

func TestLoader_NamedFunction(t *testing.T) {
	upload(t, "call/named", "import: numpy\nprediction_fn:\n  call: classify\n  args:\n    X: image\n")

	m, err := newTestLoader(t).Load(context.Background(), "call/named")
	require.NoError(t, err)
	assert.Equal(t, "classify", m.Function())
}

func TestLoader_FunctionMissing(t *testing.T) {
	upload(t, "call/missing", "import: numpy\nprediction_fn:\n  call: segment\n  args:\n    X: image\n")

	_, err := newTestLoader(t).Load(context.Background(), "call/missing")

	var missing *FunctionMissingError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "segment", missing.Function)
	assert.ErrorIs(t, err, backend.ErrFunctionNotFound)
}

func TestLoader_PredictErrorsPropagate(t *testing.T) {
	boom := errors.New("model exploded")
	reg := backend.NewRegistry()
	require.NoError(t, reg.Register(backend.NewPackage("fragile", map[string]backend.PredictFunc{
		"predict": func(context.Context, ...any) (any, error) { return nil, boom },
	})))

	upload(t, "predict/error", "import: fragile\nprediction_fn:\n  args:\n    X: image\n")

	l := NewLoader(
		WithResolver(manifest.NewResolver(manifest.WithBaseURL(memBase))),
		WithRegistry(reg),
	)
	m, err := l.Load(context.Background(), "predict/error")
	require.NoError(t, err)

	_, err = m.Predict(context.Background(), "x")
	assert.Same(t, boom, err)
}

func TestLoader_Params(t *testing.T) {
	upload(t, "params/a", "import: numpy\nprediction_fn:\n  args:\n    X: image\n")

	params := map[string]any{"device": "cpu"}
	m, err := newTestLoader(t, WithParams(params)).Load(context.Background(), "params/a")
	require.NoError(t, err)

	params["device"] = "gpu"
	assert.Equal(t, map[string]any{"device": "cpu"}, m.Params())
}

func TestLoader_IndependentLoads(t *testing.T) {
	upload(t, "independent/a", "import: numpy\nprediction_fn:\n  args:\n    X: image\n")

	l := newTestLoader(t)
	first, err := l.Load(context.Background(), "independent/a")
	require.NoError(t, err)
	second, err := l.Load(context.Background(), "independent/a")
	require.NoError(t, err)

	assert.NotEqual(t, first.ID(), second.ID())
	assert.NotSame(t, first.Manifest(), second.Manifest())
	assert.Equal(t, first.Manifest(), second.Manifest())
}
