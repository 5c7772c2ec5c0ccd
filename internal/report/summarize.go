package report

import "sort"

// Summary mirrors the KPI table original_source/scripts/generate_results.py
// prints, computed directly over in-memory rows instead of a CSV round
// trip.
type Summary struct {
	AvgClickToDoorMinutes     float64
	P95ClickToDoorMinutes     float64
	AvgReadyToPickupMinutes   float64
	UndeliveredPct            float64
	TotalDistanceKm           float64
	OrdersPerCourierPerHour   float64
	AvgBundleSize             float64
	TotalCompensation         float64
	CostPerOrder              float64
	FractionMinCompCouriers   float64
	AvgClickToDoorOverageMins float64
}

const (
	targetClickToDoorMinutes = 40.0
	payPerOrder              = 10.0
	minPayPerHour            = 15.0
)

// Summarize computes run-level KPIs from the order and courier rows a run
// produced. Rows with no delivered orders yield a Summary of all zeros
// except UndeliveredPct, which is 100 when there were any orders at all.
func Summarize(orders []OrderRow, couriers []CourierRow) Summary {
	if len(orders) == 0 {
		return Summary{}
	}

	var delivered []OrderRow
	for _, o := range orders {
		if o.Status == "delivered" {
			delivered = append(delivered, o)
		}
	}

	s := Summary{
		UndeliveredPct: float64(len(orders)-len(delivered)) / float64(len(orders)) * 100,
	}
	if len(delivered) == 0 {
		return s
	}

	ctd := make([]float64, len(delivered))
	var sumCTD, sumRTP, sumBundle, sumOverage float64
	for i, o := range delivered {
		ctd[i] = o.ClickToDoor
		sumCTD += o.ClickToDoor
		sumRTP += o.ReadyToPickup
		sumBundle += float64(o.BundleSize)
		overage := o.ClickToDoor - targetClickToDoorMinutes
		if overage > 0 {
			sumOverage += overage
		}
	}
	n := float64(len(delivered))
	s.AvgClickToDoorMinutes = sumCTD / n
	s.AvgReadyToPickupMinutes = sumRTP / n
	s.AvgBundleSize = sumBundle / n
	s.AvgClickToDoorOverageMins = sumOverage / n
	s.P95ClickToDoorMinutes = percentile(ctd, 0.95)

	var totalDistanceKm, totalHours float64
	var totalDelivered int
	var totalCompensation float64
	var minCompCount int
	for _, c := range couriers {
		totalDistanceKm += c.TotalDistanceKm
		totalHours += c.ShiftDurationHours
		totalDelivered += c.OrdersDelivered

		deliveryEarnings := float64(c.OrdersDelivered) * payPerOrder
		minimumEarnings := c.ShiftDurationHours * minPayPerHour
		compensation := deliveryEarnings
		if minimumEarnings > compensation {
			compensation = minimumEarnings
		}
		totalCompensation += compensation
		if compensation == minimumEarnings {
			minCompCount++
		}
	}
	s.TotalDistanceKm = totalDistanceKm
	if totalHours > 0 {
		s.OrdersPerCourierPerHour = float64(totalDelivered) / totalHours
	}
	s.TotalCompensation = totalCompensation
	if totalDelivered > 0 {
		s.CostPerOrder = totalCompensation / float64(totalDelivered)
	}
	if len(couriers) > 0 {
		s.FractionMinCompCouriers = float64(minCompCount) / float64(len(couriers))
	}

	return s
}

// percentile computes the linear-interpolation percentile pandas' quantile
// uses, over a copy of values so the caller's slice is never reordered.
func percentile(values []float64, p float64) float64 {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	if len(sorted) == 1 {
		return sorted[0]
	}
	rank := p * float64(len(sorted)-1)
	lo := int(rank)
	hi := lo + 1
	if hi >= len(sorted) {
		return sorted[len(sorted)-1]
	}
	frac := rank - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}
