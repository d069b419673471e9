package core

// CounterItem is one acquired slot of a Counter. Its rank is the slot's
// position in the pool and shifts down when a lower rank is released.
type CounterItem struct {
	rank      int
	observers []func(int)
}

// Rank returns the current 0-based rank.
func (it *CounterItem) Rank() int { return it.rank }

// OnRankChanged registers fn to be called with the new rank whenever the item
// shifts. Used by rows to keep their displayed index current.
func (it *CounterItem) OnRankChanged(fn func(int)) {
	it.observers = append(it.observers, fn)
}

func (it *CounterItem) update(rank int) {
	if it.rank == rank {
		return
	}
	it.rank = rank
	for _, fn := range it.observers {
		fn(rank)
	}
}

// Counter is a bounded pool of contiguous slot ranks shared by the beam and
// target composition tables. Ranks are 0-based; releasing a rank compacts the
// pool, so ranks above the released one shift down by exactly one.
type Counter struct {
	maximum      int
	entries      []*CounterItem
	maxObservers []func(bool)
	full         bool
}

// NewCounter constructs a counter allowing at most maximum concurrent ranks.
func NewCounter(maximum int) *Counter {
	c := &Counter{maximum: maximum}
	c.full = maximum <= 0
	return c
}

// Acquire returns the smallest unused rank, or ok=false when the pool is
// exhausted. Filling the last slot fires the max-reached transition.
func (c *Counter) Acquire() (*CounterItem, bool) {
	if len(c.entries) >= c.maximum {
		return nil, false
	}
	it := &CounterItem{rank: len(c.entries)}
	c.entries = append(c.entries, it)
	if len(c.entries) >= c.maximum {
		c.setFull(true)
	}
	return it, true
}

// Release frees the given rank and compacts the pool, notifying every shifted
// item. Releasing an untracked rank is a no-op: rows removed on abort paths
// may never have acquired.
func (c *Counter) Release(rank int) {
	if rank < 0 || rank >= len(c.entries) {
		return
	}
	c.entries = append(c.entries[:rank], c.entries[rank+1:]...)
	for i := rank; i < len(c.entries); i++ {
		c.entries[i].update(i)
	}
	c.setFull(false)
}

// Len returns the number of ranks in use.
func (c *Counter) Len() int { return len(c.entries) }

// Maximum returns the pool bound.
func (c *Counter) Maximum() int { return c.maximum }

// MaxReached reports whether the pool is full.
func (c *Counter) MaxReached() bool { return len(c.entries) >= c.maximum }

// OnMaxReached registers fn to be called on full/free transitions. It fires
// only on edges, not on every acquire or release.
func (c *Counter) OnMaxReached(fn func(bool)) {
	c.maxObservers = append(c.maxObservers, fn)
}

func (c *Counter) setFull(full bool) {
	if c.full == full {
		return
	}
	c.full = full
	for _, fn := range c.maxObservers {
		fn(full)
	}
}
