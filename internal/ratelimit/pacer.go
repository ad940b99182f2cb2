// Package ratelimit spaces outbound upstream calls. One Pacer is shared by
// every league adapter so the provider-wide quota is respected no matter how
// the aggregator fans out.
package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const defaultMinInterval = 100 * time.Millisecond

// Pacer grants execution no earlier than a minimum interval after the
// previous grant. Acquisition is serialized; the network call that follows
// is not.
type Pacer struct {
	limiter     *rate.Limiter
	minInterval time.Duration

	mu        sync.Mutex
	lastGrant time.Time
}

// NewPacer builds a Pacer with the given spacing. Non-positive intervals
// fall back to the 100ms default.
func NewPacer(minInterval time.Duration) *Pacer {
	if minInterval <= 0 {
		minInterval = defaultMinInterval
	}
	return &Pacer{
		limiter:     rate.NewLimiter(rate.Every(minInterval), 1),
		minInterval: minInterval,
	}
}

// Acquire blocks until the pacer grants a slot or ctx is done. It never
// fails for any other reason. The last-grant timestamp advances exactly once
// per successful acquisition.
func (p *Pacer) Acquire(ctx context.Context) error {
	if err := p.limiter.Wait(ctx); err != nil {
		return err
	}

	p.mu.Lock()
	if now := time.Now(); now.After(p.lastGrant) {
		p.lastGrant = now
	}
	p.mu.Unlock()
	return nil
}

// WouldBlock reports whether Acquire would have to wait right now. Callers
// that cannot wait use it to skip the live path and degrade instead.
func (p *Pacer) WouldBlock() bool {
	return p.limiter.Tokens() < 1
}

// LastGrant returns the time of the most recent grant. It only moves forward.
func (p *Pacer) LastGrant() time.Time {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastGrant
}

// MinInterval returns the configured spacing between grants.
func (p *Pacer) MinInterval() time.Duration {
	return p.minInterval
}
