package score

import (
	"context"
	"time"

	"dispatchsim/internal/dispatch/bundle"
	"dispatchsim/internal/domain"
)

type Group int

const (
	GroupI Group = iota + 1
	GroupII
	GroupIII
)

func (g Group) String() string {
	switch g {
	case GroupI:
		return "I"
	case GroupII:
		return "II"
	case GroupIII:
		return "III"
	default:
		return "unknown"
	}
}

// Classify implements spec 4.4's Classify(bundle, couriers, t) -> {I, II, III}.
func (in Inputs) Classify(ctx context.Context, b bundle.Bundle, couriers []*domain.Courier, t time.Time) Group {
	minPlacement, maxReady := in.boundaryTimes(b)
	targetDropoff := minPlacement.Add(in.Config.TargetClickToDoor)

	anyCanDropoffByTarget := false
	anyCanPickupAtReady := false

	for _, courier := range couriers {
		tl := in.computeTimeline(ctx, b, courier, t)
		if !tl.feasible {
			continue
		}
		if !tl.deliveryFinish.After(targetDropoff) {
			anyCanDropoffByTarget = true
		}
		earliestPickup := tl.arrivalAtRest.Add(in.Config.ServiceTime / 2)
		if !earliestPickup.After(maxReady) {
			anyCanPickupAtReady = true
		}
	}

	if !anyCanDropoffByTarget {
		return GroupI
	}
	if !anyCanPickupAtReady {
		return GroupII
	}
	return GroupIII
}
