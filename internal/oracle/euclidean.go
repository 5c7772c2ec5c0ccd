package oracle

import (
	"context"

	"dispatchsim/internal/domain"
)

// EuclideanBackend sums straight-line segment lengths between consecutive
// points and derives duration from a configured constant speed. It fails
// only when given no waypoints.
type EuclideanBackend struct {
	MetersPerMinute float64
}

func NewEuclideanBackend(metersPerMinute float64) *EuclideanBackend {
	return &EuclideanBackend{MetersPerMinute: metersPerMinute}
}

func (b *EuclideanBackend) Route(_ context.Context, start domain.Point, waypoints []domain.Point) (Result, error) {
	if len(waypoints) == 0 {
		return Result{}, ErrRouteFailure
	}

	var totalMeters float64
	prev := start
	legs := make([]Leg, 0, len(waypoints))
	for _, wp := range waypoints {
		segMeters := domain.HaversineKm(prev, wp) * 1000
		totalMeters += segMeters
		legs = append(legs, Leg{Steps: []Step{{Maneuver: Maneuver{Location: [2]float64{wp.Lng, wp.Lat}}}}})
		prev = wp
	}

	speed := b.MetersPerMinute
	if speed <= 0 {
		speed = 320
	}
	durationMinutes := totalMeters / speed
	return Result{
		DistanceMeters: totalMeters,
		DurationSec:    durationMinutes * 60,
		Geometry:       "",
		Legs:           legs,
	}, nil
}
