// Package commit implements the Commitment Manager: turning a matched
// (courier, bundle) pair into a final or partial route commitment.
package commit

import (
	"context"
	"fmt"
	"time"

	"dispatchsim/internal/config"
	"dispatchsim/internal/dispatch/bundle"
	"dispatchsim/internal/domain"
	"dispatchsim/internal/oracle"
)

type Outcome int

const (
	OutcomeFinal Outcome = iota
	OutcomePartial
	OutcomeAborted
)

type Manager struct {
	World  *domain.World
	Oracle oracle.Backend
	Config config.DispatchConfig
}

func NewManager(world *domain.World, backend oracle.Backend, cfg config.DispatchConfig) *Manager {
	return &Manager{World: world, Oracle: backend, Config: cfg}
}

// Commit runs the decision procedure of spec 4.6 and mutates the world
// accordingly. The caller must have already verified courier is free;
// committing a courier that already has a route in flight panics.
func (m *Manager) Commit(ctx context.Context, courierID domain.ID, b bundle.Bundle, t time.Time) Outcome {
	courier := m.World.Couriers[courierID]
	restaurant := m.World.Restaurants[b.RestaurantID]
	if courier == nil || restaurant == nil {
		return OutcomeAborted
	}
	if courier.CurrentRoute != nil {
		panic(fmt.Sprintf("commit: courier %s already has a route in flight", courierID))
	}

	readyTooLong := false
	for _, oid := range b.Orders {
		o := m.World.Orders[oid]
		if o == nil {
			return OutcomeAborted
		}
		if t.Sub(o.ReadyTime) > m.Config.XCommitment {
			readyTooLong = true
			break
		}
	}

	fullRoute, fullErr := m.fullRoute(ctx, courier, restaurant, b)

	if readyTooLong {
		if fullErr != nil {
			return OutcomeAborted
		}
		m.commitFinal(courier, restaurant, b, fullRoute, t)
		return OutcomeFinal
	}

	if fullErr != nil {
		return OutcomeAborted
	}

	inboundResult, inboundErr := m.Oracle.Route(ctx, courier.Location, []domain.Point{restaurant.Location})

	canReachInHorizon := inboundErr == nil &&
		time.Duration(0.5*inboundResult.DurationSec*float64(time.Second)) <= m.Config.OptimizationFrequency

	allReadyInHorizon := true
	deadline := t.Add(m.Config.OptimizationFrequency)
	for _, oid := range b.Orders {
		if m.World.Orders[oid].ReadyTime.After(deadline) {
			allReadyInHorizon = false
			break
		}
	}

	if canReachInHorizon && allReadyInHorizon {
		m.commitFinal(courier, restaurant, b, fullRoute, t)
		return OutcomeFinal
	}

	if inboundErr == nil {
		m.commitPartial(courier, restaurant, inboundResult, t)
		return OutcomePartial
	}

	return OutcomeAborted
}

func (m *Manager) fullRoute(ctx context.Context, courier *domain.Courier, restaurant *domain.Restaurant, b bundle.Bundle) (oracle.Result, error) {
	waypoints := make([]domain.Point, 0, len(b.Orders)+1)
	waypoints = append(waypoints, restaurant.Location)
	for _, oid := range b.Orders {
		waypoints = append(waypoints, m.World.Orders[oid].DropoffLoc)
	}
	return m.Oracle.Route(ctx, courier.Location, waypoints)
}

func (m *Manager) commitFinal(courier *domain.Courier, restaurant *domain.Restaurant, b bundle.Bundle, route oracle.Result, t time.Time) {
	completion := t.Add(time.Duration(route.DurationSec * float64(time.Second)))
	courier.CurrentRoute = &domain.Route{
		Orders:         append([]domain.ID(nil), b.Orders...),
		Geometry:       route.Geometry,
		DistanceMeters: route.DistanceMeters,
		DurationSec:    route.DurationSec,
		StartTime:      t,
		CompletionTime: completion,
		CommitmentType: domain.CommitmentFinal,
		LastWaypoint:   route.LastWaypoint(lastDropoff(m.World, b)),
	}

	for _, oid := range b.Orders {
		o := m.World.Orders[oid]
		o.Status = domain.StatusAssigned
		o.BundleSize = len(b.Orders)
		restaurant.RemoveReadyOrder(oid)
	}
}

func (m *Manager) commitPartial(courier *domain.Courier, restaurant *domain.Restaurant, inbound oracle.Result, t time.Time) {
	completion := t.Add(time.Duration(inbound.DurationSec * float64(time.Second)))
	courier.CurrentRoute = &domain.Route{
		Geometry:       inbound.Geometry,
		DistanceMeters: inbound.DistanceMeters,
		DurationSec:    inbound.DurationSec,
		StartTime:      t,
		CompletionTime: completion,
		CommitmentType: domain.CommitmentPartial,
		LastWaypoint:   inbound.LastWaypoint(restaurant.Location),
	}
}

func lastDropoff(w *domain.World, b bundle.Bundle) domain.Point {
	if len(b.Orders) == 0 {
		return domain.Point{}
	}
	return w.Orders[b.Orders[len(b.Orders)-1]].DropoffLoc
}
