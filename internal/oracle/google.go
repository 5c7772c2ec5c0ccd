package oracle

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	gmaps "googlemaps.github.io/maps"

	"dispatchsim/internal/domain"
)

// GoogleBackend routes through the Google Directions API, the second of the
// oracle's two HTTP-backed options.
type GoogleBackend struct {
	client *gmaps.Client
}

func NewGoogleBackend(apiKey string) (*GoogleBackend, error) {
	client, err := gmaps.NewClient(gmaps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create maps client: %w", err)
	}
	return &GoogleBackend{client: client}, nil
}

func (b *GoogleBackend) Route(ctx context.Context, start domain.Point, waypoints []domain.Point) (Result, error) {
	if len(waypoints) == 0 {
		return Result{}, ErrRouteFailure
	}

	req := &gmaps.DirectionsRequest{
		Origin:      latLngString(start),
		Destination: latLngString(waypoints[len(waypoints)-1]),
		Mode:        gmaps.TravelModeDriving,
	}
	if len(waypoints) > 1 {
		stops := make([]string, 0, len(waypoints)-1)
		for _, wp := range waypoints[:len(waypoints)-1] {
			stops = append(stops, latLngString(wp))
		}
		req.Waypoints = stops
	}

	routes, _, err := b.client.Directions(ctx, req)
	if err != nil {
		return Result{}, fmt.Errorf("%w: maps api error: %v", ErrRouteFailure, err)
	}
	if len(routes) == 0 || len(routes[0].Legs) == 0 {
		return Result{}, fmt.Errorf("%w: no route found", ErrRouteFailure)
	}

	route := routes[0]
	var distanceM, durationS float64
	legs := make([]Leg, 0, len(route.Legs))
	for _, leg := range route.Legs {
		distanceM += float64(leg.Distance.Meters)
		durationS += leg.Duration.Seconds()
		steps := make([]Step, 0, len(leg.Steps))
		for _, step := range leg.Steps {
			steps = append(steps, Step{Maneuver: Maneuver{Location: [2]float64{step.EndLocation.Lng, step.EndLocation.Lat}}})
		}
		legs = append(legs, Leg{Steps: steps})
	}

	return Result{
		DistanceMeters: distanceM,
		DurationSec:    durationS,
		Geometry:       route.OverviewPolyline.Points,
		Legs:           legs,
	}, nil
}

func latLngString(p domain.Point) string {
	return strings.Join([]string{
		strconv.FormatFloat(p.Lat, 'f', 6, 64),
		strconv.FormatFloat(p.Lng, 'f', 6, 64),
	}, ",")
}
