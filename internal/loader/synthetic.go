package loader

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"dispatchsim/internal/domain"
)

// Synthetic generates a deterministic (seed-controlled) instance: a small
// set of restaurants scattered inside the La Paz bounding box, a stream of
// orders placed against them, and a courier fleet with a single shared
// depot at the centroid of all restaurant locations. It is the Go
// equivalent of load_synth_instance: there is no real dataset to load, so
// the instance is generated instead.
type Synthetic struct {
	Seed           int64
	NumRestaurants int
	NumOrders      int
	NumCouriers    int
	StartTime      time.Time
	OrderSpread    time.Duration
}

// NewSynthetic returns a Synthetic loader with the spec's benchmark-scale
// defaults, overridable field by field.
func NewSynthetic(seed int64, startTime time.Time) *Synthetic {
	return &Synthetic{
		Seed:           seed,
		NumRestaurants: 10,
		NumOrders:      200,
		NumCouriers:    5,
		StartTime:      startTime,
		OrderSpread:    3 * time.Hour,
	}
}

func (s *Synthetic) Load(_ context.Context) (*domain.World, Params, error) {
	rng := rand.New(rand.NewSource(s.Seed))
	w := domain.NewWorld()

	restaurants := make([]*domain.Restaurant, s.NumRestaurants)
	for i := range restaurants {
		loc := XYToLatLon(rng.Float64()*xMax, rng.Float64()*yMax)
		r := &domain.Restaurant{ID: domain.ID(fmt.Sprintf("r%d", i)), Location: loc}
		restaurants[i] = r
		w.AddRestaurant(r)
	}

	var minPlacement, maxReady time.Time
	for i := 0; i < s.NumOrders; i++ {
		restaurant := restaurants[rng.Intn(len(restaurants))]

		placement := s.StartTime.Add(time.Duration(rng.Float64() * float64(s.OrderSpread)))
		readyDelay := time.Duration(10+rng.Intn(20)) * time.Minute
		ready := placement.Add(readyDelay)

		dropoff := XYToLatLon(rng.Float64()*xMax, rng.Float64()*yMax)

		o := &domain.Order{
			ID:            domain.ID(fmt.Sprintf("o%d", i)),
			RestaurantID:  restaurant.ID,
			PlacementTime: placement,
			ReadyTime:     ready,
			DropoffLoc:    dropoff,
			Status:        domain.StatusPending,
		}
		w.AddOrder(o)

		if i == 0 || placement.Before(minPlacement) {
			minPlacement = placement
		}
		if i == 0 || ready.After(maxReady) {
			maxReady = ready
		}
	}

	depot := restaurantCentroid(restaurants)
	shiftStart := minPlacement.Add(-15 * time.Minute)
	shiftEnd := maxReady.Add(time.Hour)

	for i := 0; i < s.NumCouriers; i++ {
		w.AddCourier(&domain.Courier{
			ID:       domain.ID(fmt.Sprintf("c%d", i)),
			OnTime:   shiftStart,
			OffTime:  shiftEnd,
			Location: depot,
		})
	}

	return w, DefaultParams(), nil
}

func restaurantCentroid(restaurants []*domain.Restaurant) domain.Point {
	var sumLat, sumLng float64
	for _, r := range restaurants {
		sumLat += r.Location.Lat
		sumLng += r.Location.Lng
	}
	n := float64(len(restaurants))
	if n == 0 {
		return domain.Point{}
	}
	return domain.Point{Lat: sumLat / n, Lng: sumLng / n}
}
