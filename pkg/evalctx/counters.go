package evalctx

import "sync"

// Counters holds the two counter backends described for the Counter schema
// node: a single global monotone integer, and a mapping from
// normalised-path string to its own independent monotone integer. Both
// start lazily on first observation rather than at construction.
type Counters struct {
	mu           sync.Mutex
	globalInit   bool
	global       int64
	pathSpecific map[string]int64
}

// NewCounters creates a zero-valued Counters. A Counters is typically
// owned by the root Context and shared down the tree, matching the spec's
// "module-level" framing for a single generation run; callers that run
// multiple generations concurrently hold distinct Counters per root.
func NewCounters() *Counters {
	return &Counters{pathSpecific: make(map[string]int64)}
}

// Global lazily initialises the global counter from start (applied only
// the first time, when the counter is still at its zero value) and
// returns the pre-increment value, then increments by one.
func (c *Counters) Global(start int64) int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.globalInit {
		c.global = start
		c.globalInit = true
	}
	v := c.global
	c.global++
	return v
}

// PathSpecific returns the next value of the counter scoped to
// normalizedPath: 1 on first use, then incremented thereafter (never 0).
func (c *Counters) PathSpecific(normalizedPath string) int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	v, ok := c.pathSpecific[normalizedPath]
	if !ok {
		c.pathSpecific[normalizedPath] = 2
		return 1
	}
	c.pathSpecific[normalizedPath] = v + 1
	return v
}
