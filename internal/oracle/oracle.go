// Package oracle implements the Routing Oracle: given a start coordinate and
// an ordered list of waypoints, it returns distance, duration, geometry and
// leg-level detail, or a distinguished failure. Callers never see whether a
// result came from straight-line math or an HTTP router.
package oracle

import (
	"context"
	"errors"
	"fmt"

	"dispatchsim/internal/domain"
)

// ErrRouteFailure is returned (optionally wrapped) whenever no route could
// be produced: transport failure, a non-retryable status, or retries
// exhausted.
var ErrRouteFailure = errors.New("routing oracle: no route")

// Maneuver is the coordinate a routing step ends at, in (lon, lat) order to
// match the external router's wire shape.
type Maneuver struct {
	Location [2]float64 // [lon, lat]
}

type Step struct {
	Maneuver Maneuver
}

type Leg struct {
	Steps []Step
}

// Result mirrors the fields the dispatcher core actually consumes from a
// routing response.
type Result struct {
	DistanceMeters float64
	DurationSec    float64
	Geometry       string
	Legs           []Leg
}

// LastWaypoint returns legs[-1].steps[-1].maneuver.location as a domain
// Point, falling back to `fallback` when the result carries no legs or its
// last leg has no steps.
func (r Result) LastWaypoint(fallback domain.Point) domain.Point {
	if len(r.Legs) == 0 {
		return fallback
	}
	lastLeg := r.Legs[len(r.Legs)-1]
	if len(lastLeg.Steps) == 0 {
		return fallback
	}
	loc := lastLeg.Steps[len(lastLeg.Steps)-1].Maneuver.Location
	return domain.Point{Lat: loc[1], Lng: loc[0]}
}

// Backend computes a route from start through waypoints in order.
type Backend interface {
	Route(ctx context.Context, start domain.Point, waypoints []domain.Point) (Result, error)
}

// HTTPStatusError is returned by HTTP-backed implementations so wrapping
// retry logic can decide whether a status code is retryable.
type HTTPStatusError struct {
	StatusCode int
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("routing oracle: http status %d", e.StatusCode)
}

// Unwrap makes a status failure match ErrRouteFailure under errors.Is.
func (e *HTTPStatusError) Unwrap() error {
	return ErrRouteFailure
}

var retryableStatus = map[int]bool{
	429: true,
	500: true,
	502: true,
	503: true,
	504: true,
}

// IsRetryableStatus reports whether a given HTTP status code is in the
// oracle's fixed retryable set.
func IsRetryableStatus(code int) bool {
	return retryableStatus[code]
}
