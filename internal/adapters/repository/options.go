// Package repository defines the rating record store interface and errors.
package repository

// Option applies a configuration option to the MemStore.
type Option func(*MemStore)

// WithShardCount sets the number of shards in the store.
func WithShardCount(n int) Option {
	return func(s *MemStore) {
		if n > 0 {
			s.shards = makeShards(n)
		}
	}
}
