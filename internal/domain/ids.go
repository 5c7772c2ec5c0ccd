// Package domain holds the dispatcher's core entities: orders, restaurants,
// couriers and route commitments, kept in id-indexed arenas so cyclic
// references (restaurant<->order, courier<->route<->order) never require
// shared ownership.
package domain

import "github.com/google/uuid"

type ID string

// NewID returns a fresh random identifier. Loaders that need reproducible
// ids (synthetic instances, fixtures) construct IDs directly instead of
// calling this.
func NewID() ID {
	return ID(uuid.NewString())
}
