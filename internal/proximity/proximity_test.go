package proximity

import (
	"context"
	"os"
	"testing"

	"github.com/redis/go-redis/v9"

	"dispatchsim/internal/domain"
)

func setupTestIndex(t *testing.T) *Index {
	t.Helper()

	addr := os.Getenv("DISPATCH_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("DISPATCH_TEST_REDIS_ADDR not set; skipping Redis-backed proximity tests")
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { client.Close() })

	ctx := context.Background()
	if err := client.Del(ctx, courierGeoKey).Err(); err != nil {
		t.Fatalf("reset geo key: %v", err)
	}

	return NewIndex(client)
}

func TestSyncAndNearbyRoundTrip(t *testing.T) {
	idx := setupTestIndex(t)
	ctx := context.Background()

	couriers := []*domain.Courier{
		{ID: "c1", Location: domain.Point{Lat: 24.5, Lng: -110.5}},
		{ID: "c2", Location: domain.Point{Lat: 30.0, Lng: -100.0}},
	}
	if err := idx.Sync(ctx, couriers); err != nil {
		t.Fatalf("Sync: %v", err)
	}

	near, err := idx.Nearby(ctx, domain.Point{Lat: 24.5, Lng: -110.5}, 5)
	if err != nil {
		t.Fatalf("Nearby: %v", err)
	}
	if len(near) != 1 || near[0] != "c1" {
		t.Fatalf("Nearby = %v, want [c1]", near)
	}
}

func TestUpsertAndRemove(t *testing.T) {
	idx := setupTestIndex(t)
	ctx := context.Background()

	if err := idx.Upsert(ctx, "c1", domain.Point{Lat: 1, Lng: 1}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	near, err := idx.Nearby(ctx, domain.Point{Lat: 1, Lng: 1}, 1)
	if err != nil || len(near) != 1 {
		t.Fatalf("Nearby after upsert = %v, err %v", near, err)
	}

	if err := idx.Remove(ctx, "c1"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	near, err = idx.Nearby(ctx, domain.Point{Lat: 1, Lng: 1}, 1)
	if err != nil || len(near) != 0 {
		t.Fatalf("Nearby after remove = %v, err %v", near, err)
	}
}
