package bundle

import (
	"time"

	"dispatchsim/internal/domain"
)

// TargetBundleSize returns Zt = max(floor(ordersReady/couriersAvailable), 1),
// non-decreasing in demand and non-increasing in supply.
func TargetBundleSize(ordersReady, couriersAvailable int) int {
	denominator := couriersAvailable
	if denominator < 1 {
		denominator = 1
	}
	z := ordersReady / denominator
	if z < 1 {
		z = 1
	}
	return z
}

// CouriersAvailable counts free couriers whose shift extends at least
// `horizon` past now, per spec 4.3's couriers_available definition.
func CouriersAvailable(w *domain.World, now time.Time, horizon time.Duration) int {
	deadline := now.Add(horizon)
	count := 0
	for _, c := range w.Couriers {
		if c.Free() && !c.OffTime.Before(deadline) {
			count++
		}
	}
	return count
}
