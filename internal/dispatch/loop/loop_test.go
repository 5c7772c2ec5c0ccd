package loop

import (
	"context"
	"testing"
	"time"

	"dispatchsim/internal/config"
	"dispatchsim/internal/domain"
	"dispatchsim/internal/oracle"
)

func testConfig() config.DispatchConfig {
	return config.DispatchConfig{
		OptimizationFrequency: 5 * time.Minute,
		AssignmentHorizon:     20 * time.Minute,
		TargetClickToDoor:     40 * time.Minute,
		MaxClickToDoor:        90 * time.Minute,
		ServiceTime:           4 * time.Minute,
		Delta1:                20 * time.Minute,
		Delta2:                20 * time.Minute,
		GroupIPenalty:         100,
		GroupIIPenalty:        50,
		FreshnessPenaltyTheta: 1.5,
		XCommitment:           15 * time.Minute,
		PayPerOrder:           10,
		GuaranteedPayPerHour:  15,
	}
}

// TestTickAssignsSingleOrderToSingleCourier covers the baseline scenario: one
// active courier, one ready order, nothing else competing for the match.
func TestTickAssignsSingleOrderToSingleCourier(t *testing.T) {
	w := domain.NewWorld()
	now := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)

	restaurant := &domain.Restaurant{ID: "r1", Location: domain.Point{Lat: 24.5, Lng: -110.5}}
	w.AddRestaurant(restaurant)

	order := &domain.Order{
		ID:            "o1",
		RestaurantID:  "r1",
		PlacementTime: now.Add(-10 * time.Minute),
		ReadyTime:     now.Add(-time.Minute),
		DropoffLoc:    domain.Point{Lat: 24.51, Lng: -110.51},
		Status:        domain.StatusPending,
	}
	w.AddOrder(order)

	courier := &domain.Courier{
		ID:       "c1",
		OnTime:   now.Add(-time.Hour),
		OffTime:  now.Add(8 * time.Hour),
		Location: domain.Point{Lat: 24.499, Lng: -110.499},
	}
	w.AddCourier(courier)

	d := New(w, oracle.NewEuclideanBackend(320), testConfig(), nil)
	if err := d.Tick(context.Background(), now); err != nil {
		t.Fatalf("Tick returned error: %v", err)
	}

	if order.Status != domain.StatusAssigned {
		t.Errorf("order status = %s, want assigned", order.Status)
	}
	if courier.CurrentRoute == nil {
		t.Fatal("courier should have been committed to a route")
	}
}

// TestTickSkipsOptimizationBetweenFrequencyBoundaries verifies the dispatcher
// only rebuilds bundles on OptimizationFrequency boundaries, not every tick.
func TestTickSkipsOptimizationBetweenFrequencyBoundaries(t *testing.T) {
	w := domain.NewWorld()
	now := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)

	d := New(w, oracle.NewEuclideanBackend(320), testConfig(), nil)
	if err := d.Tick(context.Background(), now); err != nil {
		t.Fatalf("first tick error: %v", err)
	}
	if !d.lastOptimization.Equal(now) {
		t.Fatalf("first tick should run optimization immediately")
	}

	next := now.Add(time.Minute)
	if err := d.Tick(context.Background(), next); err != nil {
		t.Fatalf("second tick error: %v", err)
	}
	if d.lastOptimization.Equal(next) {
		t.Error("optimization should not rerun before OptimizationFrequency elapses")
	}
}

// TestTickOrderPlacedBeforeCourierShift covers a courier whose shift has not
// started yet: the order must stay unassigned until activation.
func TestTickOrderPlacedBeforeCourierShift(t *testing.T) {
	w := domain.NewWorld()
	now := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)

	restaurant := &domain.Restaurant{ID: "r1", Location: domain.Point{Lat: 24.5, Lng: -110.5}}
	w.AddRestaurant(restaurant)

	order := &domain.Order{
		ID:            "o1",
		RestaurantID:  "r1",
		PlacementTime: now,
		ReadyTime:     now,
		DropoffLoc:    domain.Point{Lat: 24.51, Lng: -110.51},
		Status:        domain.StatusPending,
	}
	w.AddOrder(order)

	courier := &domain.Courier{
		ID:       "c1",
		OnTime:   now.Add(time.Hour),
		OffTime:  now.Add(9 * time.Hour),
		Location: domain.Point{Lat: 24.499, Lng: -110.499},
	}
	w.AddCourier(courier)

	d := New(w, oracle.NewEuclideanBackend(320), testConfig(), nil)
	if err := d.Tick(context.Background(), now); err != nil {
		t.Fatalf("Tick returned error: %v", err)
	}

	if order.Status == domain.StatusAssigned {
		t.Error("order must not be assigned before any courier's shift starts")
	}
	if courier.Active {
		t.Error("courier should still be inactive before OnTime")
	}
}
