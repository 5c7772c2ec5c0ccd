package bundle

import (
	"context"
	"testing"
	"time"

	"dispatchsim/internal/config"
	"dispatchsim/internal/domain"
	"dispatchsim/internal/oracle"
)

func TestTargetBundleSizeMonotonicity(t *testing.T) {
	if got := TargetBundleSize(8, 2); got != 4 {
		t.Errorf("TargetBundleSize(8, 2) = %d, want 4", got)
	}
	if got := TargetBundleSize(0, 2); got != 1 {
		t.Errorf("TargetBundleSize(0, 2) = %d, want 1 (floor at 1)", got)
	}
	// non-decreasing in demand
	if TargetBundleSize(16, 2) < TargetBundleSize(8, 2) {
		t.Error("TargetBundleSize should be non-decreasing in demand")
	}
	// non-increasing in supply
	if TargetBundleSize(8, 4) > TargetBundleSize(8, 2) {
		t.Error("TargetBundleSize should be non-increasing in supply")
	}
}

func buildWorldForSurge() (*domain.World, *domain.Restaurant, time.Time) {
	w := domain.NewWorld()
	now := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)

	restaurant := &domain.Restaurant{ID: "r1", Location: domain.Point{Lat: 24.10, Lng: -110.30}}
	for i := 0; i < 8; i++ {
		id := domain.ID("o" + string(rune('a'+i)))
		order := &domain.Order{
			ID:            id,
			RestaurantID:  restaurant.ID,
			PlacementTime: now.Add(-5 * time.Minute),
			ReadyTime:     now,
			DropoffLoc:    domain.Point{Lat: 24.10 + 0.001*float64(i), Lng: -110.30 + 0.001*float64(i)},
			Status:        domain.StatusReady,
		}
		w.AddOrder(order)
		restaurant.ReadyOrders = append(restaurant.ReadyOrders, id)
	}
	w.AddRestaurant(restaurant)

	for i := 0; i < 2; i++ {
		id := domain.ID("c" + string(rune('1'+i)))
		w.AddCourier(&domain.Courier{
			ID:      id,
			OnTime:  now.Add(-time.Hour),
			OffTime: now.Add(4 * time.Hour),
			Active:  true,
			Location: domain.Point{Lat: 24.10, Lng: -110.30},
		})
	}

	return w, restaurant, now
}

func TestBuilderAllocatesSlotsForDemandSurge(t *testing.T) {
	w, restaurant, now := buildWorldForSurge()
	cfg := config.DispatchConfig{
		AssignmentHorizon:     20 * time.Minute,
		Delta1:                20 * time.Minute,
		Delta2:                20 * time.Minute,
		ServiceTime:           4 * time.Minute,
		FreshnessPenaltyTheta: 1.5,
	}
	backend := oracle.NewEuclideanBackend(320)
	builder := NewBuilder(w, backend, cfg)

	bundles, err := builder.Build(context.Background(), restaurant, now)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(bundles) == 0 {
		t.Fatal("expected at least one bundle")
	}

	total := 0
	for _, b := range bundles {
		total += len(b.Orders)
	}
	if total != 8 {
		t.Errorf("expected all 8 orders placed, got %d", total)
	}
	if len(bundles) > 2 {
		t.Errorf("expected at most 2 slots for 2 couriers, got %d bundles", len(bundles))
	}
}
