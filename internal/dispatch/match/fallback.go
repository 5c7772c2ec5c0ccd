package match

import "dispatchsim/internal/domain"

// NearestFallback assigns a bundle to the free courier nearest the
// restaurant by straight-line distance, used only when a group's Hungarian
// solve produces no feasible pairs at all. It never overrides a feasible
// Hungarian match; callers invoke it only as a last resort.
func NearestFallback(w *domain.World, restaurant *domain.Restaurant, couriers []*domain.Courier) (domain.ID, bool) {
	var nearest *domain.Courier
	bestDist := -1.0
	for _, c := range couriers {
		if !c.Free() {
			continue
		}
		d := domain.HaversineKm(c.Location, restaurant.Location)
		if nearest == nil || d < bestDist {
			nearest = c
			bestDist = d
		}
	}
	if nearest == nil {
		return "", false
	}
	return nearest.ID, true
}
