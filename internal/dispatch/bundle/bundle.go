// Package bundle implements the Bundle Builder: parallel cheapest-insertion
// grouping of a restaurant's ready orders into candidate multi-stop routes.
package bundle

import (
	"context"
	"log"
	"math"
	"time"

	"golang.org/x/sync/errgroup"

	"dispatchsim/internal/config"
	"dispatchsim/internal/domain"
	"dispatchsim/internal/oracle"
	"dispatchsim/internal/proximity"
)

// Bundle is an ordered set of orders from a single restaurant, destined to
// be delivered together in one route.
type Bundle struct {
	RestaurantID domain.ID
	Orders       []domain.ID
}

// Builder produces candidate bundles for a restaurant on a single tick.
type Builder struct {
	World  *domain.World
	Oracle oracle.Backend
	Config config.DispatchConfig

	// Proximity, if set, pre-filters couriers_available (spec 4.3) to those
	// the Redis GEO index reports within ProximityRadiusKm of the
	// restaurant, instead of every free courier on the shift clock. Nil
	// disables the pre-filter.
	Proximity *proximity.Index
}

func NewBuilder(world *domain.World, backend oracle.Backend, cfg config.DispatchConfig) *Builder {
	return &Builder{World: world, Oracle: backend, Config: cfg}
}

// Build runs parallel cheapest insertion over restaurant's ready orders
// within the assignment horizon, returning the non-empty resulting bundles.
func (bu *Builder) Build(ctx context.Context, restaurant *domain.Restaurant, now time.Time) ([]Bundle, error) {
	ordersForTarget := bu.readyOrdersWithin(restaurant, now.Add(bu.Config.Delta1))
	couriersAvailable := bu.couriersAvailable(ctx, restaurant, now)
	target := TargetBundleSize(len(ordersForTarget), couriersAvailable)

	ordersInHorizon := bu.readyOrdersWithin(restaurant, now.Add(bu.Config.AssignmentHorizon))
	if len(ordersInHorizon) == 0 {
		return nil, nil
	}

	slotCount := len(ordersInHorizon) / target
	if slotCount < couriersAvailable {
		slotCount = couriersAvailable
	}
	if slotCount < 1 {
		slotCount = 1
	}

	slots := make([]Bundle, slotCount)
	for i := range slots {
		slots[i].RestaurantID = restaurant.ID
	}

	for _, orderID := range ordersInHorizon {
		slotIdx, pos, err := bu.cheapestInsertion(ctx, restaurant, slots, orderID, now)
		if err != nil {
			return nil, err
		}
		if slotIdx == -1 {
			slots = append(slots, Bundle{RestaurantID: restaurant.ID, Orders: []domain.ID{orderID}})
			continue
		}
		slots[slotIdx].Orders = insertAt(slots[slotIdx].Orders, pos, orderID)
	}

	out := make([]Bundle, 0, len(slots))
	for _, s := range slots {
		if len(s.Orders) > 0 {
			out = append(out, s)
		}
	}
	return out, nil
}

type candidateResult struct {
	cost float64
	ok   bool
}

// cheapestInsertion evaluates every (slot, position) pair for orderID in
// parallel and returns the cheapest feasible one. Evaluation order is fixed
// (slot index, then position) so the argmin is deterministic regardless of
// goroutine completion order.
func (bu *Builder) cheapestInsertion(ctx context.Context, restaurant *domain.Restaurant, slots []Bundle, orderID domain.ID, now time.Time) (int, int, error) {
	type candidate struct {
		slotIdx, pos int
	}

	var candidates []candidate
	for slotIdx, slot := range slots {
		for pos := 0; pos <= len(slot.Orders); pos++ {
			candidates = append(candidates, candidate{slotIdx: slotIdx, pos: pos})
		}
	}

	results := make([]candidateResult, len(candidates))
	g, gctx := errgroup.WithContext(ctx)
	for i, c := range candidates {
		i, c := i, c
		g.Go(func() error {
			cost, ok := bu.insertionCost(gctx, restaurant, slots[c.slotIdx], orderID, c.pos)
			results[i] = candidateResult{cost: cost, ok: ok}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return -1, -1, err
	}

	bestIdx := -1
	bestCost := math.Inf(1)
	for i, r := range results {
		if !r.ok {
			continue
		}
		if r.cost < bestCost {
			bestCost = r.cost
			bestIdx = i
		}
	}
	if bestIdx == -1 {
		return -1, -1, nil
	}
	return candidates[bestIdx].slotIdx, candidates[bestIdx].pos, nil
}

// insertionCost computes travel_time + theta*service_delay for inserting
// orderID at position pos in slot, per spec 4.3.
func (bu *Builder) insertionCost(ctx context.Context, restaurant *domain.Restaurant, slot Bundle, orderID domain.ID, insertPos int) (float64, bool) {
	candidateOrders := insertAt(append([]domain.ID(nil), slot.Orders...), insertPos, orderID)

	waypoints := make([]domain.Point, 0, len(candidateOrders))
	for _, id := range candidateOrders {
		o, ok := bu.World.Orders[id]
		if !ok {
			return 0, false
		}
		waypoints = append(waypoints, o.DropoffLoc)
	}

	result, err := bu.Oracle.Route(ctx, restaurant.Location, waypoints)
	if err != nil {
		return 0, false
	}

	travelMinutes := result.DurationSec / 60
	k := len(slot.Orders)
	serviceMinutes := bu.Config.ServiceTime.Minutes()
	var serviceDelay float64
	if k == 0 {
		serviceDelay = serviceMinutes
	} else {
		serviceDelay = serviceMinutes * float64(k+1)
	}

	cost := travelMinutes + bu.Config.FreshnessPenaltyTheta*serviceDelay
	return cost, true
}

func insertAt(s []domain.ID, pos int, id domain.ID) []domain.ID {
	out := make([]domain.ID, 0, len(s)+1)
	out = append(out, s[:pos]...)
	out = append(out, id)
	out = append(out, s[pos:]...)
	return out
}

// couriersAvailable counts shift-horizon-available couriers (spec 4.3),
// pre-filtered to those near restaurant when a proximity index is
// configured. A failed index lookup falls back to the unfiltered count
// rather than starving the restaurant of bundles over a Redis hiccup.
func (bu *Builder) couriersAvailable(ctx context.Context, restaurant *domain.Restaurant, now time.Time) int {
	if bu.Proximity == nil {
		return CouriersAvailable(bu.World, now, bu.Config.Delta2)
	}

	nearby, err := bu.Proximity.Nearby(ctx, restaurant.Location, bu.Config.ProximityRadiusKm)
	if err != nil {
		log.Printf("bundle: proximity lookup for restaurant %s failed, falling back to full courier count: %v", restaurant.ID, err)
		return CouriersAvailable(bu.World, now, bu.Config.Delta2)
	}

	deadline := now.Add(bu.Config.Delta2)
	count := 0
	for _, id := range nearby {
		c, ok := bu.World.Couriers[id]
		if !ok || !c.Free() || c.OffTime.Before(deadline) {
			continue
		}
		count++
	}
	return count
}

// readyOrdersWithin returns restaurant.ReadyOrders with ready_time <=
// deadline, sorted by ready_time ascending.
func (bu *Builder) readyOrdersWithin(restaurant *domain.Restaurant, deadline time.Time) []domain.ID {
	var out []domain.ID
	for _, id := range restaurant.ReadyOrders {
		o, ok := bu.World.Orders[id]
		if !ok || o.Status != domain.StatusReady {
			continue
		}
		if !o.ReadyTime.After(deadline) {
			out = append(out, id)
		}
	}
	sortByReadyTime(out, bu.World)
	return out
}

func sortByReadyTime(ids []domain.ID, w *domain.World) {
	for i := 1; i < len(ids); i++ {
		key := ids[i]
		keyTime := w.Orders[key].ReadyTime
		j := i - 1
		for j >= 0 && w.Orders[ids[j]].ReadyTime.After(keyTime) {
			ids[j+1] = ids[j]
			j--
		}
		ids[j+1] = key
	}
}
