// Package loop orchestrates one full dispatcher tick: clock advancement,
// bundle formation, urgency classification, matching and commitment, in the
// order the dispatcher's component design requires.
package loop

import (
	"context"
	"log"
	"sort"
	"time"

	"dispatchsim/internal/config"
	"dispatchsim/internal/dispatch/bundle"
	"dispatchsim/internal/dispatch/clock"
	"dispatchsim/internal/dispatch/commit"
	"dispatchsim/internal/dispatch/match"
	"dispatchsim/internal/dispatch/score"
	"dispatchsim/internal/domain"
	"dispatchsim/internal/oracle"
	"dispatchsim/internal/proximity"
)

// Dispatcher runs the optimization pass every OptimizationFrequency tick and
// the courier/order bookkeeping every tick in between.
type Dispatcher struct {
	World   *domain.World
	Clock   *clock.Clock
	Builder *bundle.Builder
	Scorer  score.Inputs
	Commit  *commit.Manager
	Config  config.DispatchConfig

	lastOptimization time.Time
	started          bool
}

// New wires a Dispatcher. proximityIndex is optional (nil disables the
// Bundle Builder's Redis GEO pre-filter and falls back to the shift-clock
// courier count).
func New(world *domain.World, backend oracle.Backend, cfg config.DispatchConfig, proximityIndex *proximity.Index) *Dispatcher {
	builder := bundle.NewBuilder(world, backend, cfg)
	builder.Proximity = proximityIndex
	return &Dispatcher{
		World:   world,
		Clock:   clock.New(world, cfg.PayPerOrder, 0),
		Builder: builder,
		Scorer:  score.Inputs{World: world, Oracle: backend, Config: cfg},
		Commit:  commit.NewManager(world, backend, cfg),
		Config:  cfg,
	}
}

// Tick advances the world by one unit of simulated time and, on
// optimization-frequency boundaries, runs the full matching pass. Panics
// inside a single tick are recovered and logged so one bad tick cannot take
// down a long-running simulation.
func (d *Dispatcher) Tick(ctx context.Context, t time.Time) (err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("dispatcher tick panicked at %v: %v", t, r)
			err = nil
		}
	}()

	d.Clock.ActivateCouriers(t)
	d.Clock.ReleaseReadyOrders(t)

	if d.dueForOptimization(t) {
		if runErr := d.runOptimizationPass(ctx, t); runErr != nil {
			log.Printf("optimization pass failed at %v: %v", t, runErr)
		}
		d.lastOptimization = t
	}

	d.Clock.SettleCompletedRoutes(t)
	d.Clock.ApplyMinimumPayFloor(t, d.Config.GuaranteedPayPerHour)
	return nil
}

func (d *Dispatcher) dueForOptimization(t time.Time) bool {
	if !d.started {
		d.started = true
		return true
	}
	return !t.Before(d.lastOptimization.Add(d.Config.OptimizationFrequency))
}

// runOptimizationPass builds bundles per restaurant, classifies them into
// urgency groups, then solves matching group by group in priority order
// I -> II -> III so the most urgent bundles claim couriers first.
func (d *Dispatcher) runOptimizationPass(ctx context.Context, t time.Time) error {
	free := d.World.FreeCouriers()
	if len(free) == 0 {
		return nil
	}

	restaurantIDs := make([]domain.ID, 0, len(d.World.Restaurants))
	for id := range d.World.Restaurants {
		restaurantIDs = append(restaurantIDs, id)
	}
	sort.Slice(restaurantIDs, func(i, j int) bool { return restaurantIDs[i] < restaurantIDs[j] })

	type classified struct {
		bundle bundle.Bundle
		group  score.Group
	}
	var all []classified

	for _, id := range restaurantIDs {
		restaurant := d.World.Restaurants[id]
		bundles, err := d.Builder.Build(ctx, restaurant, t)
		if err != nil {
			return err
		}
		for _, b := range bundles {
			g := d.Scorer.Classify(ctx, b, free, t)
			all = append(all, classified{bundle: b, group: g})
		}
	}

	remaining := make(map[domain.ID]bool, len(free))
	for _, c := range free {
		remaining[c.ID] = true
	}
	// free is already sorted by id (World.FreeCouriers); filtering it in
	// place preserves courier id order without re-sorting a map.
	sortedRemaining := func() []*domain.Courier {
		out := make([]*domain.Courier, 0, len(remaining))
		for _, c := range free {
			if remaining[c.ID] {
				out = append(out, c)
			}
		}
		return out
	}

	for _, g := range []score.Group{score.GroupI, score.GroupII, score.GroupIII} {
		var bundles []bundle.Bundle
		for _, c := range all {
			if c.group == g {
				bundles = append(bundles, c.bundle)
			}
		}
		if len(bundles) == 0 {
			continue
		}

		couriers := sortedRemaining()
		pairs := match.MatchGroup(ctx, d.Scorer, couriers, bundles, t)
		for _, p := range pairs {
			outcome := d.Commit.Commit(ctx, p.CourierID, p.Bundle, t)
			if outcome == commit.OutcomeFinal || outcome == commit.OutcomePartial {
				delete(remaining, p.CourierID)
			}
		}

		// The Hungarian solve for this group produced no feasible pairs at
		// all (every cell was sentinel-cost): fall back to nearest-courier
		// assignment so urgent bundles are not stranded on oracle noise.
		if len(pairs) == 0 {
			for _, b := range bundles {
				pool := sortedRemaining()
				if len(pool) == 0 {
					break
				}
				restaurant := d.World.Restaurants[b.RestaurantID]
				if restaurant == nil {
					continue
				}
				courierID, ok := match.NearestFallback(d.World, restaurant, pool)
				if !ok {
					continue
				}
				outcome := d.Commit.Commit(ctx, courierID, b, t)
				if outcome == commit.OutcomeFinal || outcome == commit.OutcomePartial {
					delete(remaining, courierID)
				}
			}
		}
	}

	return nil
}

