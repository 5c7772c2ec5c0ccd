package oracle

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"dispatchsim/internal/domain"
)

// ExternalBackend issues a single request per call to an OSRM-compatible
// routing server and decodes its bespoke `legs[].steps[].maneuver.location`
// response shape. No client library in this codebase's dependency pack
// speaks OSRM's format, so the decode path is plain encoding/json.
type ExternalBackend struct {
	BaseURL string
	Client  *http.Client
}

func NewExternalBackend(baseURL string, client *http.Client) *ExternalBackend {
	if client == nil {
		client = http.DefaultClient
	}
	return &ExternalBackend{BaseURL: baseURL, Client: client}
}

type osrmManeuver struct {
	Location [2]float64 `json:"location"`
}

type osrmStep struct {
	Maneuver osrmManeuver `json:"maneuver"`
}

type osrmLeg struct {
	Steps []osrmStep `json:"steps"`
}

type osrmRoute struct {
	Distance float64   `json:"distance"`
	Duration float64   `json:"duration"`
	Geometry string    `json:"geometry"`
	Legs     []osrmLeg `json:"legs"`
}

type osrmResponse struct {
	Code    string      `json:"code"`
	Routes  []osrmRoute `json:"routes"`
	Message string      `json:"message"`
}

func (b *ExternalBackend) Route(ctx context.Context, start domain.Point, waypoints []domain.Point) (Result, error) {
	if len(waypoints) == 0 {
		return Result{}, ErrRouteFailure
	}

	points := make([]string, 0, len(waypoints)+1)
	points = append(points, coordPair(start))
	for _, wp := range waypoints {
		points = append(points, coordPair(wp))
	}
	url := fmt.Sprintf("%s/route/v1/driving/%s?overview=full", strings.TrimRight(b.BaseURL, "/"), strings.Join(points, ";"))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrRouteFailure, err)
	}

	resp, err := b.Client.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrRouteFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Result{}, &HTTPStatusError{StatusCode: resp.StatusCode}
	}

	var decoded osrmResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return Result{}, fmt.Errorf("%w: decode response: %v", ErrRouteFailure, err)
	}
	if decoded.Code != "Ok" || len(decoded.Routes) == 0 {
		return Result{}, fmt.Errorf("%w: %s", ErrRouteFailure, decoded.Message)
	}

	route := decoded.Routes[0]
	legs := make([]Leg, 0, len(route.Legs))
	for _, l := range route.Legs {
		steps := make([]Step, 0, len(l.Steps))
		for _, s := range l.Steps {
			steps = append(steps, Step{Maneuver: Maneuver{Location: s.Maneuver.Location}})
		}
		legs = append(legs, Leg{Steps: steps})
	}

	return Result{
		DistanceMeters: route.Distance,
		DurationSec:    route.Duration,
		Geometry:       route.Geometry,
		Legs:           legs,
	}, nil
}

func coordPair(p domain.Point) string {
	return strconv.FormatFloat(p.Lng, 'f', 6, 64) + "," + strconv.FormatFloat(p.Lat, 'f', 6, 64)
}
