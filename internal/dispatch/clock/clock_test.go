package clock

import (
	"testing"
	"time"

	"dispatchsim/internal/domain"
)

func TestActivateCouriersOnShiftStart(t *testing.T) {
	w := domain.NewWorld()
	now := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)

	early := &domain.Courier{ID: "c1", OnTime: now.Add(-time.Minute)}
	late := &domain.Courier{ID: "c2", OnTime: now.Add(time.Minute)}
	w.AddCourier(early)
	w.AddCourier(late)

	c := New(w, 10, 320)
	c.ActivateCouriers(now)

	if !early.Active {
		t.Error("courier whose shift already started should be active")
	}
	if late.Active {
		t.Error("courier whose shift has not started should stay inactive")
	}
}

func TestReleaseReadyOrdersMovesPendingToReady(t *testing.T) {
	w := domain.NewWorld()
	now := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)

	restaurant := &domain.Restaurant{ID: "r1"}
	w.AddRestaurant(restaurant)

	ready := &domain.Order{ID: "o1", RestaurantID: "r1", ReadyTime: now.Add(-time.Minute), Status: domain.StatusPending}
	notYet := &domain.Order{ID: "o2", RestaurantID: "r1", ReadyTime: now.Add(time.Minute), Status: domain.StatusPending}
	w.AddOrder(ready)
	w.AddOrder(notYet)

	c := New(w, 10, 320)
	c.ReleaseReadyOrders(now)

	if ready.Status != domain.StatusReady {
		t.Errorf("order o1 status = %s, want ready", ready.Status)
	}
	if notYet.Status != domain.StatusPending {
		t.Errorf("order o2 status = %s, want pending (not yet ready)", notYet.Status)
	}
	if len(restaurant.ReadyOrders) != 1 || restaurant.ReadyOrders[0] != "o1" {
		t.Errorf("restaurant.ReadyOrders = %v, want [o1]", restaurant.ReadyOrders)
	}
}

func TestSettleCompletedRoutesDeliversFinalAndMovesCourier(t *testing.T) {
	w := domain.NewWorld()
	now := time.Date(2026, 1, 1, 8, 30, 0, 0, time.UTC)

	order := &domain.Order{ID: "o1", Status: domain.StatusAssigned}
	w.AddOrder(order)

	dest := domain.Point{Lat: 1, Lng: 2}
	courier := &domain.Courier{
		ID: "c1",
		CurrentRoute: &domain.Route{
			Orders:         []domain.ID{"o1"},
			DistanceMeters: 1000,
			StartTime:      now.Add(-10 * time.Minute),
			CompletionTime: now,
			CommitmentType: domain.CommitmentFinal,
			LastWaypoint:   dest,
		},
	}
	w.AddCourier(courier)

	c := New(w, 10, 320)
	c.SettleCompletedRoutes(now)

	if order.Status != domain.StatusDelivered {
		t.Errorf("order status = %s, want delivered", order.Status)
	}
	if order.DeliveryTime == nil || !order.DeliveryTime.Equal(now) {
		t.Error("delivery time should equal route completion time")
	}
	if courier.CurrentRoute != nil {
		t.Error("courier should be freed after route settles")
	}
	if courier.Location != dest {
		t.Errorf("courier location = %v, want %v", courier.Location, dest)
	}
	if courier.OrdersDelivered != 1 {
		t.Errorf("orders delivered = %d, want 1", courier.OrdersDelivered)
	}
	if courier.Earnings != 10 {
		t.Errorf("earnings = %f, want 10", courier.Earnings)
	}
	if len(courier.RouteHistory) != 1 {
		t.Errorf("route history length = %d, want 1", len(courier.RouteHistory))
	}
}

func TestSettleCompletedRoutesPartialRepositionsWithoutDelivering(t *testing.T) {
	w := domain.NewWorld()
	now := time.Date(2026, 1, 1, 8, 30, 0, 0, time.UTC)

	dest := domain.Point{Lat: 5, Lng: 6}
	courier := &domain.Courier{
		ID: "c1",
		CurrentRoute: &domain.Route{
			DistanceMeters: 500,
			StartTime:      now.Add(-5 * time.Minute),
			CompletionTime: now,
			CommitmentType: domain.CommitmentPartial,
			LastWaypoint:   dest,
		},
	}
	w.AddCourier(courier)

	c := New(w, 10, 320)
	c.SettleCompletedRoutes(now)

	if courier.OrdersDelivered != 0 || courier.Earnings != 0 {
		t.Error("partial commitment settlement must not deliver orders or pay")
	}
	if courier.Location != dest {
		t.Errorf("courier location = %v, want %v", courier.Location, dest)
	}
	if courier.CurrentRoute != nil {
		t.Error("courier should be freed after partial route settles")
	}
}

func TestApplyMinimumPayFloorTopsUpLowEarners(t *testing.T) {
	w := domain.NewWorld()
	now := time.Date(2026, 1, 1, 16, 0, 0, 0, time.UTC)

	courier := &domain.Courier{
		ID:       "c1",
		OnTime:   now.Add(-4 * time.Hour),
		OffTime:  now,
		Earnings: 5,
	}
	w.AddCourier(courier)

	c := New(w, 10, 320)
	c.ApplyMinimumPayFloor(now, 15)

	if courier.Earnings != 60 {
		t.Errorf("earnings = %f, want 60 (4h * $15 floor)", courier.Earnings)
	}
}
