// Package report produces the order-level and courier-level result rows a
// dispatcher run leaves behind, and summary statistics over them.
package report

import "time"

// OrderRow is one delivered-or-not order's outcome for a run.
type OrderRow struct {
	OrderID       string
	Status        string
	PlacementTime time.Time
	ReadyTime     time.Time
	PickupTime    *time.Time
	DeliveryTime  *time.Time
	ClickToDoor   float64 // minutes, -1 if undelivered
	ReadyToPickup float64 // minutes, -1 if not yet picked up
	BundleSize    int
}

// CourierRow is one courier's aggregate outcome for a run.
type CourierRow struct {
	CourierID          string
	OrdersDelivered    int
	TotalDistanceKm    float64
	ShiftDurationHours float64
	Earnings           float64
}
