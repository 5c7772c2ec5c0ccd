// Package proximity maintains a Redis GEO index of free couriers so the
// Bundle Builder can count only couriers near a given restaurant when it
// computes couriers_available, instead of every free courier on the shift
// clock.
package proximity

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"dispatchsim/internal/domain"
)

const courierGeoKey = "dispatch:couriers"

// Index wraps a Redis GEO set keyed by courier id. It only affects the
// courier count behind bundle sizing: matching still scores every free
// courier, whether or not this index returns it.
type Index struct {
	redis *redis.Client
}

func NewIndex(client *redis.Client) *Index {
	return &Index{redis: client}
}

// Upsert records a courier's current location, replacing any prior entry.
func (idx *Index) Upsert(ctx context.Context, id domain.ID, p domain.Point) error {
	return idx.redis.GeoAdd(ctx, courierGeoKey, &redis.GeoLocation{
		Name:      string(id),
		Longitude: p.Lng,
		Latitude:  p.Lat,
	}).Err()
}

// Remove drops a single courier from the index. The dispatcher itself does
// not call it; Sync rebuilds the whole index each tick.
func (idx *Index) Remove(ctx context.Context, id domain.ID) error {
	return idx.redis.ZRem(ctx, courierGeoKey, string(id)).Err()
}

// Nearby returns the ids of indexed couriers within radiusKm of p, nearest
// first.
func (idx *Index) Nearby(ctx context.Context, p domain.Point, radiusKm float64) ([]domain.ID, error) {
	results, err := idx.redis.GeoSearch(ctx, courierGeoKey, &redis.GeoSearchQuery{
		Longitude:  p.Lng,
		Latitude:   p.Lat,
		Radius:     radiusKm,
		RadiusUnit: "km",
		Sort:       "ASC",
	}).Result()
	if err != nil {
		return nil, fmt.Errorf("proximity: nearby search: %w", err)
	}
	ids := make([]domain.ID, len(results))
	for i, r := range results {
		ids[i] = domain.ID(r)
	}
	return ids, nil
}

// Sync replaces the whole index with exactly the given free couriers, used
// once per tick before the optimization pass runs so the index never drifts
// from World's notion of who is free.
func (idx *Index) Sync(ctx context.Context, couriers []*domain.Courier) error {
	if err := idx.redis.Del(ctx, courierGeoKey).Err(); err != nil {
		return fmt.Errorf("proximity: reset index: %w", err)
	}
	if len(couriers) == 0 {
		return nil
	}
	locations := make([]*redis.GeoLocation, len(couriers))
	for i, c := range couriers {
		locations[i] = &redis.GeoLocation{
			Name:      string(c.ID),
			Longitude: c.Location.Lng,
			Latitude:  c.Location.Lat,
		}
	}
	return idx.redis.GeoAdd(ctx, courierGeoKey, locations...).Err()
}
