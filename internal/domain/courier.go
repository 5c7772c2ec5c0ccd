package domain

import "time"

type CommitmentType string

const (
	CommitmentFinal   CommitmentType = "final"
	CommitmentPartial CommitmentType = "partial"
)

// Route is a committed route owned by exactly one Courier while active.
// Final commitments deliver their Orders at CompletionTime; partial
// commitments only reposition the courier and leave Orders unassigned for a
// later tick.
type Route struct {
	Orders         []ID
	Geometry       string
	DistanceMeters float64
	DurationSec    float64
	StartTime      time.Time
	CompletionTime time.Time
	CommitmentType CommitmentType

	// LastWaypoint is the final leg's end coordinate, used to update
	// Courier.Location when the route completes (spec requires this for
	// both final and partial commitments).
	LastWaypoint Point
}

// Courier delivers bundles of orders during its shift [OnTime, OffTime).
// CurrentRoute non-nil means the courier is busy and must be excluded from
// matching.
type Courier struct {
	ID      ID
	OnTime  time.Time
	OffTime time.Time
	Active  bool

	Location     Point
	CurrentRoute *Route
	RouteHistory []Route

	OrdersDelivered int
	TotalDistanceM  float64
	Earnings        float64
}

// Free reports whether the courier is active and has no route in flight.
func (c *Courier) Free() bool {
	return c.Active && c.CurrentRoute == nil
}
