package report

import (
	"math"
	"testing"
)

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func TestSummarizeEmptyOrdersYieldsZeroSummary(t *testing.T) {
	s := Summarize(nil, nil)
	if s != (Summary{}) {
		t.Errorf("Summarize(nil, nil) = %+v, want zero value", s)
	}
}

func TestSummarizeAllUndeliveredReportsFullUndeliveredPct(t *testing.T) {
	orders := []OrderRow{
		{OrderID: "o1", Status: "assigned"},
		{OrderID: "o2", Status: "ready"},
	}
	s := Summarize(orders, nil)
	if s.UndeliveredPct != 100 {
		t.Errorf("UndeliveredPct = %f, want 100", s.UndeliveredPct)
	}
	if s.AvgClickToDoorMinutes != 0 {
		t.Errorf("AvgClickToDoorMinutes = %f, want 0", s.AvgClickToDoorMinutes)
	}
}

func TestSummarizeComputesAveragesAndPercentile(t *testing.T) {
	orders := []OrderRow{
		{OrderID: "o1", Status: "delivered", ClickToDoor: 20, ReadyToPickup: 2, BundleSize: 1},
		{OrderID: "o2", Status: "delivered", ClickToDoor: 40, ReadyToPickup: 4, BundleSize: 2},
		{OrderID: "o3", Status: "delivered", ClickToDoor: 60, ReadyToPickup: 6, BundleSize: 3},
		{OrderID: "o4", Status: "assigned"},
	}
	couriers := []CourierRow{
		{CourierID: "c1", OrdersDelivered: 3, TotalDistanceKm: 12, ShiftDurationHours: 2},
	}

	s := Summarize(orders, couriers)

	if !approxEqual(s.AvgClickToDoorMinutes, 40) {
		t.Errorf("AvgClickToDoorMinutes = %f, want 40", s.AvgClickToDoorMinutes)
	}
	if !approxEqual(s.AvgReadyToPickupMinutes, 4) {
		t.Errorf("AvgReadyToPickupMinutes = %f, want 4", s.AvgReadyToPickupMinutes)
	}
	if !approxEqual(s.AvgBundleSize, 2) {
		t.Errorf("AvgBundleSize = %f, want 2", s.AvgBundleSize)
	}
	if !approxEqual(s.UndeliveredPct, 25) {
		t.Errorf("UndeliveredPct = %f, want 25", s.UndeliveredPct)
	}
	if !approxEqual(s.OrdersPerCourierPerHour, 1.5) {
		t.Errorf("OrdersPerCourierPerHour = %f, want 1.5", s.OrdersPerCourierPerHour)
	}
	// delivery earnings 3*10=30 = minimum 2*15=30, tie counts as min-comp (per source's == check).
	if !approxEqual(s.TotalCompensation, 30) {
		t.Errorf("TotalCompensation = %f, want 30", s.TotalCompensation)
	}
	if !approxEqual(s.CostPerOrder, 10) {
		t.Errorf("CostPerOrder = %f, want 10", s.CostPerOrder)
	}
}

func TestPercentileMatchesLinearInterpolation(t *testing.T) {
	values := []float64{10, 20, 30, 40, 50}
	got := percentile(values, 0.5)
	if !approxEqual(got, 30) {
		t.Errorf("median = %f, want 30", got)
	}
}
