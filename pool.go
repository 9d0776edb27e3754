// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package rendergraph

import (
	"fmt"
	"slices"
)

// DefaultPoolTTL is the number of idle frames a pooled physical resource
// survives before it is disposed.
const DefaultPoolTTL = 2

// PoolStats contains pool usage statistics.
type PoolStats struct {
	// Entries is the number of idle physical resources currently pooled.
	Entries int

	// Keys is the number of distinct descriptor keys among pooled entries.
	Keys int

	// Hits counts Get calls that returned a pooled resource.
	Hits uint64

	// Misses counts Get calls that found nothing.
	Misses uint64

	// Disposed counts resources permanently released by the pool.
	Disposed uint64
}

// String returns a human-readable string of pool stats.
func (s PoolStats) String() string {
	return fmt.Sprintf("Pool[%d entries, %d keys, %d hits, %d misses, %d disposed]",
		s.Entries, s.Keys, s.Hits, s.Misses, s.Disposed)
}

// poolEntry is an idle physical resource waiting to be reused.
type poolEntry struct {
	key      string
	resource PhysicalResource
	age      int
}

// Pool is a keyed cache of retired physical resources, recycled across
// frames with an idle time-to-live.
//
// Entries are kept in push order so that aging and disposal are
// deterministic. Get is last-in-first-out within a key.
//
// Pool is not safe for concurrent use. A RenderGraph owns exactly one Pool
// and mutates it only while attaching and releasing.
type Pool struct {
	entries []poolEntry
	ttl     int

	hits     uint64
	misses   uint64
	disposed uint64
}

// NewPool creates an empty pool. A ttl <= 0 selects DefaultPoolTTL.
func NewPool(ttl int) *Pool {
	if ttl <= 0 {
		ttl = DefaultPoolTTL
	}
	return &Pool{ttl: ttl}
}

// TTL returns the configured time-to-live in frames.
func (p *Pool) TTL() int {
	return p.ttl
}

// Get pops the most recently pushed resource stored under key.
// Returns (resource, true) if found, (nil, false) otherwise.
func (p *Pool) Get(key string) (PhysicalResource, bool) {
	for i := len(p.entries) - 1; i >= 0; i-- {
		if p.entries[i].key != key {
			continue
		}
		res := p.entries[i].resource
		p.entries = slices.Delete(p.entries, i, i+1)
		p.hits++
		return res, true
	}
	p.misses++
	return nil, false
}

// Push stores an idle resource under key with its idle age reset to zero.
func (p *Pool) Push(key string, res PhysicalResource) {
	if res == nil {
		return
	}
	p.entries = append(p.entries, poolEntry{key: key, resource: res})
}

// Update advances every entry's idle age by one frame and disposes the
// entries whose age exceeds the time-to-live.
// Returns the number of disposed entries.
func (p *Pool) Update() int {
	kept := p.entries[:0]
	n := 0
	for _, e := range p.entries {
		e.age++
		if e.age > p.ttl {
			e.resource.Dispose()
			n++
			continue
		}
		kept = append(kept, e)
	}
	clear(p.entries[len(kept):])
	p.entries = kept
	p.disposed += uint64(n) //nolint:gosec // G115: n is a non-negative count
	return n
}

// Clear disposes all pooled resources.
func (p *Pool) Clear() {
	for _, e := range p.entries {
		e.resource.Dispose()
	}
	p.disposed += uint64(len(p.entries))
	clear(p.entries)
	p.entries = p.entries[:0]
}

// Len returns the number of pooled entries.
func (p *Pool) Len() int {
	return len(p.entries)
}

// Stats returns current pool statistics.
func (p *Pool) Stats() PoolStats {
	keys := make(map[string]struct{}, len(p.entries))
	for _, e := range p.entries {
		keys[e.key] = struct{}{}
	}
	return PoolStats{
		Entries:  len(p.entries),
		Keys:     len(keys),
		Hits:     p.hits,
		Misses:   p.misses,
		Disposed: p.disposed,
	}
}
