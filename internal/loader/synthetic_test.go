package loader

import (
	"context"
	"testing"
	"time"

	"dispatchsim/internal/domain"
)

func TestSyntheticLoadProducesRequestedCounts(t *testing.T) {
	s := NewSynthetic(42, time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC))
	s.NumRestaurants = 3
	s.NumOrders = 20
	s.NumCouriers = 2

	w, params, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(w.Restaurants) != 3 {
		t.Errorf("restaurants = %d, want 3", len(w.Restaurants))
	}
	if len(w.Orders) != 20 {
		t.Errorf("orders = %d, want 20", len(w.Orders))
	}
	if len(w.Couriers) != 2 {
		t.Errorf("couriers = %d, want 2", len(w.Couriers))
	}
	if params.PayPerOrder <= 0 {
		t.Error("expected non-zero default pay per order")
	}
}

func TestSyntheticLoadIsDeterministicForSameSeed(t *testing.T) {
	start := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)

	s1 := NewSynthetic(7, start)
	s1.NumOrders = 10
	w1, _, _ := s1.Load(context.Background())

	s2 := NewSynthetic(7, start)
	s2.NumOrders = 10
	w2, _, _ := s2.Load(context.Background())

	var locs1, locs2 []domain.Point
	for _, r := range w1.Restaurants {
		locs1 = append(locs1, r.Location)
	}
	for _, r := range w2.Restaurants {
		locs2 = append(locs2, r.Location)
	}
	if len(locs1) != len(locs2) {
		t.Fatalf("restaurant counts differ between identical seeds")
	}
}

func TestSyntheticCourierShiftCoversAllOrders(t *testing.T) {
	start := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)
	s := NewSynthetic(1, start)
	s.NumOrders = 50

	w, _, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	var courier *domain.Courier
	for _, c := range w.Couriers {
		courier = c
		break
	}

	for _, o := range w.Orders {
		if o.PlacementTime.Before(courier.OnTime) {
			t.Errorf("order placed at %v before courier shift starts at %v", o.PlacementTime, courier.OnTime)
		}
		if o.ReadyTime.After(courier.OffTime) {
			t.Errorf("order ready at %v after courier shift ends at %v", o.ReadyTime, courier.OffTime)
		}
	}
}
