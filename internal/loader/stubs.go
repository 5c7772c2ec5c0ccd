package loader

import (
	"context"
	"errors"

	"dispatchsim/internal/domain"
)

// ErrNotImplemented is returned by loaders that are named in the package's
// interface surface but have no implementation yet.
var ErrNotImplemented = errors.New("loader: not implemented")

// Benchmark will load one of the MDRP public benchmark instances (Grubhub,
// LaDe) the way original_source/grubhub_loader.py and lade_loader.py do.
// Named here so callers can depend on the interface ahead of the loader
// existing; no public benchmark dataset ships with this repository.
type Benchmark struct {
	Path string
}

func (b *Benchmark) Load(_ context.Context) (*domain.World, Params, error) {
	return nil, Params{}, ErrNotImplemented
}

// Parquet will load a columnar instance export. Named for the same reason
// as Benchmark.
type Parquet struct {
	Path string
}

func (p *Parquet) Load(_ context.Context) (*domain.World, Params, error) {
	return nil, Params{}, ErrNotImplemented
}
