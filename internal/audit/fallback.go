package audit

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/redis/go-redis/v9"

	"github.com/ecowave/ecowave-hub/internal/model"
)

// FallbackCap bounds the local fallback list. Eviction is FIFO: entries
// are prepended newest-first and the tail is dropped past the cap.
const FallbackCap = 100

// FallbackStore is the local persistence the logger writes to when the
// remote trail is unreachable, and the history read path serves from when
// the remote read fails.
type FallbackStore interface {
	Push(ctx context.Context, e model.HistoryEntry) error
	Recent(ctx context.Context, n int) ([]model.HistoryEntry, error)
}

// RedisFallback keeps the fallback list in a single Redis list under a
// well-known key. LPUSH + LTRIM gives exactly the prepend-then-truncate
// policy the cap requires.
type RedisFallback struct {
	rdb *redis.Client
	key string
}

// NewRedisFallback constructs a RedisFallback on the given key.
func NewRedisFallback(rdb *redis.Client, key string) *RedisFallback {
	return &RedisFallback{rdb: rdb, key: key}
}

func (f *RedisFallback) Push(ctx context.Context, e model.HistoryEntry) error {
	b, err := json.Marshal(e)
	if err != nil {
		return err
	}
	pipe := f.rdb.TxPipeline()
	pipe.LPush(ctx, f.key, b)
	pipe.LTrim(ctx, f.key, 0, FallbackCap-1)
	_, err = pipe.Exec(ctx)
	return err
}

func (f *RedisFallback) Recent(ctx context.Context, n int) ([]model.HistoryEntry, error) {
	if n <= 0 || n > FallbackCap {
		n = FallbackCap
	}
	vals, err := f.rdb.LRange(ctx, f.key, 0, int64(n-1)).Result()
	if err != nil {
		return nil, err
	}
	out := make([]model.HistoryEntry, 0, len(vals))
	for _, v := range vals {
		var e model.HistoryEntry
		if err := json.Unmarshal([]byte(v), &e); err != nil {
			continue // skip rows that predate the current entry shape
		}
		out = append(out, e)
	}
	return out, nil
}

// MemoryFallback is the in-process fallback used when no Redis client is
// available, and by tests. Same ordering and cap as RedisFallback.
type MemoryFallback struct {
	mu      sync.Mutex
	entries []model.HistoryEntry
}

// NewMemoryFallback constructs an empty MemoryFallback.
func NewMemoryFallback() *MemoryFallback { return &MemoryFallback{} }

func (f *MemoryFallback) Push(_ context.Context, e model.HistoryEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = append([]model.HistoryEntry{e}, f.entries...)
	if len(f.entries) > FallbackCap {
		f.entries = f.entries[:FallbackCap]
	}
	return nil
}

func (f *MemoryFallback) Recent(_ context.Context, n int) ([]model.HistoryEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if n <= 0 || n > len(f.entries) {
		n = len(f.entries)
	}
	out := make([]model.HistoryEntry, n)
	copy(out, f.entries[:n])
	return out, nil
}
