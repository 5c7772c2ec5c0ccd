package domain

import "time"

type Status string

const (
	StatusPending  Status = "pending"
	StatusReady    Status = "ready"
	StatusAssigned Status = "assigned"
	StatusDelivered Status = "delivered"
)

// Order is a single meal order placed at a Restaurant for delivery to
// DropoffLoc. Status transitions are strictly monotonic: pending -> ready ->
// assigned -> delivered.
type Order struct {
	ID            ID
	RestaurantID  ID
	PlacementTime time.Time
	ReadyTime     time.Time
	DropoffLoc    Point
	Status        Status

	PickupTime   *time.Time
	DeliveryTime *time.Time

	// BundleSize is the number of orders in the route that actually
	// delivered this order, stamped at commitment time. Used by
	// internal/report instead of the courier's current route length.
	BundleSize int
}

// AllowedTransitions encodes the order lifecycle as data, the way a state
// machine table is usually expressed in this codebase.
var AllowedTransitions = map[Status][]Status{
	StatusPending:  {StatusReady},
	StatusReady:    {StatusAssigned},
	StatusAssigned: {StatusDelivered},
}

var allowedTransitionSet = buildTransitionSet(AllowedTransitions)

func buildTransitionSet(transitions map[Status][]Status) map[Status]map[Status]struct{} {
	set := make(map[Status]map[Status]struct{}, len(transitions))
	for from, tos := range transitions {
		next := make(map[Status]struct{}, len(tos))
		for _, to := range tos {
			next[to] = struct{}{}
		}
		set[from] = next
	}
	return set
}

// CanTransition reports whether moving an order from `from` to `to` is a
// legal state transition.
func CanTransition(from, to Status) bool {
	next, ok := allowedTransitionSet[from]
	if !ok {
		return false
	}
	_, ok = next[to]
	return ok
}

// ClickToDoorMinutes returns delivery_time - placement_time in minutes, or
// -1 if the order has not been delivered.
func (o *Order) ClickToDoorMinutes() float64 {
	if o.DeliveryTime == nil {
		return -1
	}
	return o.DeliveryTime.Sub(o.PlacementTime).Minutes()
}

// ReadyToPickupMinutes returns pickup_time - ready_time in minutes, or -1 if
// the order has not been picked up.
func (o *Order) ReadyToPickupMinutes() float64 {
	if o.PickupTime == nil {
		return -1
	}
	return o.PickupTime.Sub(o.ReadyTime).Minutes()
}
