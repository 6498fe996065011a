// Package gate enforces the submission-time invariants the aggregator
// depends on.
package gate

import "sync"

// Option applies a configuration option to the StoreGate.
type Option func(*StoreGate)

// WithMaxPeerRaters caps the number of distinct peer raters per ratee.
func WithMaxPeerRaters(n int) Option {
	return func(g *StoreGate) {
		if n > 0 {
			g.maxPeerRaters = n
		}
	}
}

// WithMaxManagerRaters caps the number of distinct manager raters per ratee.
func WithMaxManagerRaters(n int) Option {
	return func(g *StoreGate) {
		if n > 0 {
			g.maxManagerRaters = n
		}
	}
}

// WithStripeCount sets the number of per-ratee lock stripes.
func WithStripeCount(n int) Option {
	return func(g *StoreGate) {
		if n > 0 {
			g.stripes = make([]sync.Mutex, n)
		}
	}
}
