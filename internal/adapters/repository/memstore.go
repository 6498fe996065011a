package repository

import (
	"context"
	"hash/fnv"
	"sort"
	"sync"

	"github.com/okian/fullcircle/internal/domain/model"
	"github.com/okian/fullcircle/pkg/metrics"
)

// Sharded, in-memory Store implementation.
//
// Records hash onto shards by ratee id, so all records for one ratee live in
// one shard and a single RWMutex covers its read-modify cycle. Reads hand out
// deep copies: a snapshot taken at call time stays stable while concurrent
// appends land.

// defaultShardCount balances lock contention against bookkeeping overhead.
const defaultShardCount = 8

// shard holds the records of the ratees hashed onto it.
type shard struct {
	mu      sync.RWMutex
	byRatee map[string][]Record
}

// MemStore implements Store with sharded in-memory maps.
type MemStore struct {
	shards []*shard
	count  int64
	mu     sync.Mutex // guards count
	closed bool
}

// NewMemStore creates an in-memory store with configuration options.
func NewMemStore(_ context.Context, opts ...Option) *MemStore {
	s := &MemStore{}

	// Apply all options
	for _, opt := range opts {
		opt(s)
	}

	if len(s.shards) == 0 {
		s.shards = makeShards(defaultShardCount)
	}

	return s
}

func makeShards(n int) []*shard {
	shards := make([]*shard, n)
	for i := range shards {
		shards[i] = &shard{byRatee: make(map[string][]Record)}
	}
	return shards
}

// shardFor hashes a ratee id onto its shard.
func (s *MemStore) shardFor(ratee string) *shard {
	h := fnv.New32a()
	_, _ = h.Write([]byte(ratee))
	return s.shards[int(h.Sum32()%uint32(len(s.shards)))] //nolint:gosec // shard count is a small positive number
}

// Append persists one accepted rating record.
func (s *MemStore) Append(_ context.Context, rec Record) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	s.count++
	total := s.count
	s.mu.Unlock()

	sh := s.shardFor(rec.RateeID)
	sh.mu.Lock()
	sh.byRatee[rec.RateeID] = append(sh.byRatee[rec.RateeID], rec.Clone())
	sh.mu.Unlock()

	metrics.UpdateRecordsStored(int(total))
	return nil
}

// ListByRatee returns a snapshot of all records for a ratee in insertion order.
func (s *MemStore) ListByRatee(_ context.Context, ratee string) ([]Record, error) {
	sh := s.shardFor(ratee)
	sh.mu.RLock()
	defer sh.mu.RUnlock()

	stored := sh.byRatee[ratee]
	out := make([]Record, len(stored))
	for i, rec := range stored {
		out[i] = rec.Clone()
	}
	return out, nil
}

// Ratees returns the ids of all ratees with a self record, sorted.
func (s *MemStore) Ratees(_ context.Context) ([]string, error) {
	var out []string
	for _, sh := range s.shards {
		sh.mu.RLock()
		for ratee, records := range sh.byRatee {
			for _, rec := range records {
				if rec.Role == model.RoleSelf {
					out = append(out, ratee)
					break
				}
			}
		}
		sh.mu.RUnlock()
	}
	sort.Strings(out)
	metrics.UpdateRateeCount(len(out))
	return out, nil
}

// Count returns the total number of stored records.
func (s *MemStore) Count(_ context.Context) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int(s.count)
}

// Close marks the store closed; subsequent appends fail with ErrClosed.
func (s *MemStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
