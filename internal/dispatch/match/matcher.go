package match

import (
	"context"
	"math"
	"time"

	"dispatchsim/internal/dispatch/bundle"
	"dispatchsim/internal/dispatch/score"
	"dispatchsim/internal/domain"
)

// Pair is a matched (courier, bundle) handed to the Commitment Manager.
type Pair struct {
	CourierID domain.ID
	Bundle    bundle.Bundle
}

// MatchGroup solves one min-cost bipartite matching between the given free
// couriers and a single urgency group's bundles (spec 4.5). Couriers is
// expected to already exclude any courier matched by an earlier group this
// tick, so there is no possibility of a courier appearing twice across
// calls within the same dispatcher pass.
func MatchGroup(ctx context.Context, scorer score.Inputs, couriers []*domain.Courier, bundles []bundle.Bundle, t time.Time) []Pair {
	if len(couriers) == 0 || len(bundles) == 0 {
		return nil
	}

	cost := make([][]float64, len(couriers))
	for i, c := range couriers {
		cost[i] = make([]float64, len(bundles))
		for j, b := range bundles {
			s := scorer.Score(ctx, b, c, t)
			if math.IsInf(s, -1) {
				cost[i][j] = Sentinel
				continue
			}
			cost[i][j] = -s
		}
	}

	rowToCol := Solve(cost)

	var pairs []Pair
	for i, col := range rowToCol {
		if col == -1 {
			continue
		}
		pairs = append(pairs, Pair{CourierID: couriers[i].ID, Bundle: bundles[col]})
	}
	return pairs
}
