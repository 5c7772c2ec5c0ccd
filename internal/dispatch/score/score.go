// Package score computes Score(bundle, courier, t) and classifies bundles
// into urgency groups I/II/III, per the dispatcher's bundle scorer.
package score

import (
	"context"
	"math"
	"time"

	"dispatchsim/internal/config"
	"dispatchsim/internal/dispatch/bundle"
	"dispatchsim/internal/domain"
	"dispatchsim/internal/oracle"
)

var negInf = math.Inf(-1)

// Inputs bundles the shared world/oracle/config a scorer call needs.
type Inputs struct {
	World  *domain.World
	Oracle oracle.Backend
	Config config.DispatchConfig
}

// timeline is the set of intermediate timestamps shared by Score and
// Classify, computed once per (bundle, courier, t) triple.
type timeline struct {
	feasible        bool
	arrivalAtRest   time.Time
	pickupTime      time.Time
	departure       time.Time
	deliveryFinish  time.Time
	outboundMinutes float64
}

func (in Inputs) computeTimeline(ctx context.Context, b bundle.Bundle, courier *domain.Courier, t time.Time) timeline {
	restaurant, ok := in.World.Restaurants[b.RestaurantID]
	if !ok {
		return timeline{}
	}

	inbound, err := in.Oracle.Route(ctx, courier.Location, []domain.Point{restaurant.Location})
	if err != nil {
		return timeline{}
	}
	arrivalAtRest := t.Add(time.Duration(inbound.DurationSec * float64(time.Second)))

	serviceHalf := in.Config.ServiceTime / 2

	maxReady := t
	first := true
	dropoffs := make([]domain.Point, 0, len(b.Orders))
	for _, oid := range b.Orders {
		o, ok := in.World.Orders[oid]
		if !ok {
			return timeline{}
		}
		dropoffs = append(dropoffs, o.DropoffLoc)
		if first || o.ReadyTime.After(maxReady) {
			maxReady = o.ReadyTime
			first = false
		}
	}
	if len(b.Orders) == 0 {
		return timeline{}
	}

	pickupCandidate := arrivalAtRest.Add(serviceHalf)
	pickupTime := maxReady
	if pickupCandidate.After(pickupTime) {
		pickupTime = pickupCandidate
	}
	departure := pickupTime.Add(serviceHalf)

	outbound, err := in.Oracle.Route(ctx, restaurant.Location, dropoffs)
	if err != nil {
		return timeline{}
	}

	deliveryFinish := departure.
		Add(time.Duration(outbound.DurationSec * float64(time.Second))).
		Add(time.Duration(float64(serviceHalf) * float64(len(b.Orders))))

	return timeline{
		feasible:        true,
		arrivalAtRest:   arrivalAtRest,
		pickupTime:      pickupTime,
		departure:       departure,
		deliveryFinish:  deliveryFinish,
		outboundMinutes: outbound.DurationSec / 60,
	}
}

// Score implements spec 4.4's Score(bundle, courier, t).
func (in Inputs) Score(ctx context.Context, b bundle.Bundle, courier *domain.Courier, t time.Time) float64 {
	tl := in.computeTimeline(ctx, b, courier, t)
	if !tl.feasible {
		return negInf
	}

	minPlacement, maxReady := in.boundaryTimes(b)

	var priorityPenalty float64
	if tl.deliveryFinish.After(minPlacement.Add(in.Config.MaxClickToDoor)) {
		priorityPenalty = in.Config.GroupIPenalty
	} else if tl.pickupTime.After(maxReady) {
		priorityPenalty = in.Config.GroupIIPenalty
	}

	throughput := float64(len(b.Orders)) / (tl.outboundMinutes + in.Config.ServiceTime.Minutes())

	var freshnessPenalty float64
	for _, oid := range b.Orders {
		o := in.World.Orders[oid]
		delay := tl.pickupTime.Sub(o.ReadyTime).Minutes()
		if delay < 0 {
			delay = 0
		}
		if delay > freshnessPenalty {
			freshnessPenalty = delay
		}
	}
	freshnessPenalty *= in.Config.FreshnessPenaltyTheta

	return throughput - freshnessPenalty - priorityPenalty
}

func (in Inputs) boundaryTimes(b bundle.Bundle) (minPlacement, maxReady time.Time) {
	first := true
	for _, oid := range b.Orders {
		o := in.World.Orders[oid]
		if first {
			minPlacement, maxReady = o.PlacementTime, o.ReadyTime
			first = false
			continue
		}
		if o.PlacementTime.Before(minPlacement) {
			minPlacement = o.PlacementTime
		}
		if o.ReadyTime.After(maxReady) {
			maxReady = o.ReadyTime
		}
	}
	return minPlacement, maxReady
}
