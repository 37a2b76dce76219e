package main

import (
	"context"

	"github.com/ekisa-team/scivision/internal/manifest"
	"github.com/ekisa-team/scivision/internal/model"
	"github.com/ekisa-team/scivision/internal/xfs"
)

// resolve reads the manifest for arg, treating local paths as manifest files.
func (a *app) resolve(ctx context.Context, arg string) (*manifest.Manifest, error) {
	if xfs.IsLocalPath(arg) {
		return a.resolver.ResolveURL(ctx, xfs.ExpandTilde(arg))
	}
	return a.resolver.Resolve(ctx, arg)
}

// load resolves arg and wraps its prediction function.
func (a *app) load(ctx context.Context, arg string, opts ...model.Option) (*model.PretrainedModel, error) {
	m, err := a.resolve(ctx, arg)
	if err != nil {
		return nil, err
	}
	return a.loader(opts...).Wrap(m)
}
