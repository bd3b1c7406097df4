package mem

import (
	"sync"
	"time"
)

type pairKey struct {
	profile string
	from    string
	to      string
}

type pairEntry struct {
	seconds   float64
	expiresAt time.Time
}

// PairCache keeps routing-provider travel durations warm between matrix
// rebuilds, keyed by transport profile and the two location keys.
type PairCache struct {
	mu   sync.RWMutex
	ttl  time.Duration
	data map[pairKey]pairEntry
}

func NewPairCache(ttl time.Duration) *PairCache {
	return &PairCache{
		ttl:  ttl,
		data: make(map[pairKey]pairEntry),
	}
}

func (c *PairCache) Get(profile, from, to string) (float64, bool) {
	c.mu.RLock()
	e, ok := c.data[pairKey{profile: profile, from: from, to: to}]
	c.mu.RUnlock()
	if !ok || time.Now().After(e.expiresAt) {
		return 0, false
	}
	return e.seconds, true
}

func (c *PairCache) Put(profile, from, to string, seconds float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[pairKey{profile: profile, from: from, to: to}] = pairEntry{
		seconds:   seconds,
		expiresAt: time.Now().Add(c.ttl),
	}
}

// PutBatch stores one origin row of a matrix response in a single lock
// acquisition.
func (c *PairCache) PutBatch(profile, from string, row map[string]float64) {
	expires := time.Now().Add(c.ttl)
	c.mu.Lock()
	defer c.mu.Unlock()
	for to, seconds := range row {
		c.data[pairKey{profile: profile, from: from, to: to}] = pairEntry{
			seconds:   seconds,
			expiresAt: expires,
		}
	}
}

// Purge removes expired entries and reports how many were dropped.
func (c *PairCache) Purge() int {
	now := time.Now()
	c.mu.Lock()
	defer c.mu.Unlock()

	var dropped int
	for key, e := range c.data {
		if now.After(e.expiresAt) {
			delete(c.data, key)
			dropped++
		}
	}
	return dropped
}
