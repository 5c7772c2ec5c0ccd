package oracle

import (
	"context"
	"strconv"
	"strings"
	"sync"

	"dispatchsim/internal/domain"
)

// MemoizingBackend caches route results by canonicalized waypoint sequence
// for the lifetime of one tick. The Bundle Builder issues
// O(|orders| * sum(|bundle|)) oracle calls per restaurant per tick, most of
// which repeat an already-seen (start, waypoints) pair; Reset must be
// called at the start of each tick so stale results never leak across
// ticks.
type MemoizingBackend struct {
	Backend Backend

	mu    sync.Mutex
	cache map[string]cacheEntry
}

type cacheEntry struct {
	result Result
	err    error
}

func NewMemoizingBackend(backend Backend) *MemoizingBackend {
	return &MemoizingBackend{Backend: backend, cache: make(map[string]cacheEntry)}
}

// Reset drops all cached entries. Call once per tick.
func (b *MemoizingBackend) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cache = make(map[string]cacheEntry)
}

func (b *MemoizingBackend) Route(ctx context.Context, start domain.Point, waypoints []domain.Point) (Result, error) {
	key := canonicalKey(start, waypoints)

	b.mu.Lock()
	if entry, ok := b.cache[key]; ok {
		b.mu.Unlock()
		return entry.result, entry.err
	}
	b.mu.Unlock()

	result, err := b.Backend.Route(ctx, start, waypoints)

	b.mu.Lock()
	b.cache[key] = cacheEntry{result: result, err: err}
	b.mu.Unlock()

	return result, err
}

func canonicalKey(start domain.Point, waypoints []domain.Point) string {
	var b strings.Builder
	writePoint(&b, start)
	for _, wp := range waypoints {
		b.WriteByte('|')
		writePoint(&b, wp)
	}
	return b.String()
}

func writePoint(b *strings.Builder, p domain.Point) {
	b.WriteString(strconv.FormatFloat(p.Lat, 'f', 6, 64))
	b.WriteByte(',')
	b.WriteString(strconv.FormatFloat(p.Lng, 'f', 6, 64))
}
