package report

import "dispatchsim/internal/domain"

// BuildRows converts the terminal state of a World into the row shapes a
// Sink persists.
func BuildRows(w *domain.World) ([]OrderRow, []CourierRow) {
	orders := make([]OrderRow, 0, len(w.Orders))
	for _, o := range w.Orders {
		orders = append(orders, OrderRow{
			OrderID:       string(o.ID),
			Status:        string(o.Status),
			PlacementTime: o.PlacementTime,
			ReadyTime:     o.ReadyTime,
			PickupTime:    o.PickupTime,
			DeliveryTime:  o.DeliveryTime,
			ClickToDoor:   o.ClickToDoorMinutes(),
			ReadyToPickup: o.ReadyToPickupMinutes(),
			BundleSize:    o.BundleSize,
		})
	}

	couriers := make([]CourierRow, 0, len(w.Couriers))
	for _, c := range w.Couriers {
		couriers = append(couriers, CourierRow{
			CourierID:          string(c.ID),
			OrdersDelivered:    c.OrdersDelivered,
			TotalDistanceKm:    c.TotalDistanceM / 1000,
			ShiftDurationHours: c.OffTime.Sub(c.OnTime).Hours(),
			Earnings:           c.Earnings,
		})
	}

	return orders, couriers
}
