package scivision_test

import (
	"context"
	"strings"
	"testing"

	"github.com/ekisa-team/scivision"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/afs"
)

const base = "mem://localhost/scivision/{location}/"

func publish(t *testing.T, location, content string) {
	t.Helper()

	url := strings.ReplaceAll(base, "{location}", location) + ".scivision-config.yaml"
	require.NoError(t, afs.New().Upload(context.Background(), url, 0o644, strings.NewReader(content)))
}

func load(ctx context.Context, location string, opts ...scivision.Option) (*scivision.PretrainedModel, error) {
	opts = append([]scivision.Option{
		scivision.WithResolver(scivision.NewResolver(scivision.WithBaseURL(base))),
	}, opts...)
	return scivision.LoadPretrainedModel(ctx, location, opts...)
}

func TestMain(m *testing.M) {
	scivision.MustRegister(scivision.NewPackage("numpy", map[string]scivision.PredictFunc{
		"predict": func(_ context.Context, args ...any) (any, error) {
			return args, nil
		},
	}))

	m.Run()
}

func TestLoadPretrainedModel_Scenarios(t *testing.T) {
	publish(t, "x/a", "import: numpy\nurl: https://github.com/x/y.git\nprediction_fn:\n  args:\n    X: image\n")
	publish(t, "x/b", "import: totally_missing_pkg_123\nurl: https://github.com/x/y.git\nprediction_fn:\n  args:\n    X: image\n")
	publish(t, "x/c", "import: numpy\nprediction_fn:\n  args:\n    Y: image\n")

	t.Run("A registered import loads", func(t *testing.T) {
		m, err := load(context.Background(), "x/a")
		require.NoError(t, err)

		out, err := m.Predict(context.Background(), "image.png", 0.5)
		require.NoError(t, err)
		assert.Equal(t, []any{"image.png", 0.5}, out)
	})

	t.Run("B missing import advises install", func(t *testing.T) {
		_, err := load(context.Background(), "x/b", scivision.WithAllowInstall(true))

		var missing *scivision.PackageMissingError
		require.ErrorAs(t, err, &missing)
		assert.ErrorIs(t, err, scivision.ErrNotFound)
		assert.Contains(t, err.Error(), "https://github.com/x/y@main")
		assert.Contains(t, err.Error(), "totally_missing_pkg_123")
	})

	t.Run("C missing X argument", func(t *testing.T) {
		_, err := load(context.Background(), "x/c")

		var missing *scivision.MissingFieldError
		assert.ErrorAs(t, err, &missing)
	})

	t.Run("D unreadable location", func(t *testing.T) {
		_, err := load(context.Background(), "x/d")

		var notFound *scivision.NotFoundError
		assert.ErrorAs(t, err, &notFound)
	})
}

func TestRegister_Duplicate(t *testing.T) {
	err := scivision.Register(scivision.NewPackage("numpy", nil))
	assert.ErrorIs(t, err, scivision.ErrAlreadyRegistered)
	assert.Contains(t, scivision.Registered(), "numpy")
}

func TestLoadPretrainedModel_CustomRegistry(t *testing.T) {
	publish(t, "custom/registry", "import: numpy\nurl: https://github.com/x/y\nprediction_fn:\n  args:\n    X: image\n")

	_, err := load(context.Background(), "custom/registry", scivision.WithRegistry(scivision.NewRegistry()))

	var missing *scivision.PackageMissingError
	assert.ErrorAs(t, err, &missing)
}
