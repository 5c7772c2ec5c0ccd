package domain

// Restaurant owns the ready-but-unassigned orders placed against it. Once an
// order is placed into a final commitment it is removed from ReadyOrders;
// the restaurant never owns delivered orders.
type Restaurant struct {
	ID       ID
	Location Point

	// ReadyOrders holds order ids in the order they were released as ready.
	// The Bundle Builder still sorts its selection by ready time.
	ReadyOrders []ID
}

// RemoveReadyOrder removes an order id from the ready list, preserving the
// relative order of the remaining entries.
func (r *Restaurant) RemoveReadyOrder(id ID) {
	for i, oid := range r.ReadyOrders {
		if oid == id {
			r.ReadyOrders = append(r.ReadyOrders[:i], r.ReadyOrders[i+1:]...)
			return
		}
	}
}
