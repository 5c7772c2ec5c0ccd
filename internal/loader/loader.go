// Package loader builds an initial domain.World from an instance
// definition. Only the synthetic generator is implemented; the Benchmark
// and Parquet loaders are named but return ErrNotImplemented.
package loader

import (
	"context"

	"dispatchsim/internal/domain"
)

// Params carries the run's pay and service-time constants, loaded alongside
// the instance data since some datasets (synthetic, in particular) have no
// natural source for them other than the loader's defaults.
type Params struct {
	PayPerOrder          float64
	GuaranteedPayPerHour float64
	PickupServiceMinutes float64
	TargetClickToDoor    float64
	MaxClickToDoor       float64
	MetersPerMinute      float64
}

// DefaultParams mirrors internal/config's dispatcher defaults, used by
// loaders that have no better source for these constants.
func DefaultParams() Params {
	return Params{
		PayPerOrder:          10.0,
		GuaranteedPayPerHour: 15.0,
		PickupServiceMinutes: 4.0,
		TargetClickToDoor:    40.0,
		MaxClickToDoor:       90.0,
		MetersPerMinute:      320.0,
	}
}

// Loader produces a populated World plus the run parameters that go with
// it. Implementations do not mutate any shared state between calls.
type Loader interface {
	Load(ctx context.Context) (*domain.World, Params, error)
}
