// Package clock advances the simulation by one tick: activating couriers
// whose shift has started, releasing orders that became ready, and settling
// routes that complete at or before the tick time.
package clock

import (
	"sort"
	"time"

	"dispatchsim/internal/domain"
)

// Clock owns tick-boundary world mutation. The dispatcher loop calls
// ActivateCouriers and ReleaseReadyOrders before the matching pass and
// SettleCompletedRoutes after it, once per tick.
type Clock struct {
	World           *domain.World
	PayPerOrder     float64
	MetersPerMinute float64
}

func New(world *domain.World, payPerOrder, metersPerMinute float64) *Clock {
	return &Clock{World: world, PayPerOrder: payPerOrder, MetersPerMinute: metersPerMinute}
}

// ActivateCouriers marks active every courier whose shift has started by t.
// It is the first step of a tick: activate couriers, release ready orders,
// then settle completed routes, with the dispatcher pass run by the caller
// between release and settlement.
func (c *Clock) ActivateCouriers(t time.Time) {
	for _, courier := range c.World.Couriers {
		if !courier.Active && !courier.OnTime.After(t) {
			courier.Active = true
		}
	}
}

// ReleaseReadyOrders moves every pending order whose ready_time has arrived
// into the ready state and appends it to its restaurant's ready list, in
// ready-time order.
func (c *Clock) ReleaseReadyOrders(t time.Time) {
	var released []*domain.Order
	for _, o := range c.World.Orders {
		if o.Status == domain.StatusPending && !o.ReadyTime.After(t) {
			released = append(released, o)
		}
	}
	sort.Slice(released, func(i, j int) bool {
		return released[i].ReadyTime.Before(released[j].ReadyTime)
	})

	for _, o := range released {
		o.Status = domain.StatusReady
		restaurant := c.World.Restaurants[o.RestaurantID]
		if restaurant != nil {
			restaurant.ReadyOrders = append(restaurant.ReadyOrders, o.ID)
		}
	}
}

// SettleCompletedRoutes finalizes every courier whose current route
// completes at or before t: final commitments deliver their orders and pay
// the courier, both commitment types reposition the courier to the route's
// last waypoint, and the route is archived to history.
func (c *Clock) SettleCompletedRoutes(t time.Time) {
	for _, courier := range c.World.Couriers {
		route := courier.CurrentRoute
		if route == nil || route.CompletionTime.After(t) {
			continue
		}

		if route.CommitmentType == domain.CommitmentFinal {
			for _, oid := range route.Orders {
				o := c.World.Orders[oid]
				if o == nil {
					continue
				}
				pickup := route.StartTime
				delivery := route.CompletionTime
				o.PickupTime = &pickup
				o.DeliveryTime = &delivery
				o.Status = domain.StatusDelivered
			}
			courier.OrdersDelivered += len(route.Orders)
			courier.Earnings += c.PayPerOrder * float64(len(route.Orders))
		}

		courier.TotalDistanceM += route.DistanceMeters
		courier.Location = route.LastWaypoint
		courier.RouteHistory = append(courier.RouteHistory, *route)
		courier.CurrentRoute = nil
	}
}

// ApplyMinimumPayFloor tops up a courier's earnings to the guaranteed
// hourly minimum once its shift ends, per spec 6's pay-floor rule.
func (c *Clock) ApplyMinimumPayFloor(t time.Time, guaranteedPerHour float64) {
	for _, courier := range c.World.Couriers {
		if courier.OffTime.After(t) {
			continue
		}
		hours := courier.OffTime.Sub(courier.OnTime).Hours()
		if hours <= 0 {
			continue
		}
		floor := guaranteedPerHour * hours
		if courier.Earnings < floor {
			courier.Earnings = floor
		}
	}
}
