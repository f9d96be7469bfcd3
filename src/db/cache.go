package db

import (
	"fmt"
	"sync"

	"budget-planner/src/budget"

	"github.com/dgraph-io/ristretto"
)

// DashboardCache holds computed month projections. Keys are tracked per
// owner so that a write can drop every month cached for that owner. Each
// owner also has a generation that moves on every invalidation; a projection
// built before the latest invalidation is refused by Set.
type DashboardCache struct {
	cache *ristretto.Cache
	keys  struct {
		sync.RWMutex
		m   map[int64]map[string]struct{}
		gen map[int64]uint64
	}
}

func NewDashboardCache(maxCost int64) (*DashboardCache, error) {
	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: maxCost * 10, // number of keys to track frequency of
		MaxCost:     maxCost,
		BufferItems: 64, // number of keys per Get buffer
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cache: %w", err)
	}
	c := &DashboardCache{cache: cache}
	c.keys.m = make(map[int64]map[string]struct{})
	c.keys.gen = make(map[int64]uint64)
	return c, nil
}

func dashboardKey(userID int64, p budget.Period) string {
	return fmt.Sprintf("dashboard:%d:%04d-%02d", userID, p.Year, p.Month)
}

func (c *DashboardCache) Get(userID int64, p budget.Period) (budget.Dashboard, bool) {
	v, ok := c.cache.Get(dashboardKey(userID, p))
	if !ok {
		return budget.Dashboard{}, false
	}
	d, ok := v.(budget.Dashboard)
	return d, ok
}

// Generation is read before loading the data a projection is built from and
// handed back to Set.
func (c *DashboardCache) Generation(userID int64) uint64 {
	c.keys.RLock()
	defer c.keys.RUnlock()
	return c.keys.gen[userID]
}

// Set stores d unless the owner was invalidated after gen was read. It
// reports whether the entry was stored.
func (c *DashboardCache) Set(userID int64, p budget.Period, gen uint64, d budget.Dashboard) bool {
	key := dashboardKey(userID, p)
	c.keys.Lock()
	defer c.keys.Unlock()
	if c.keys.gen[userID] != gen {
		return false
	}
	owned, ok := c.keys.m[userID]
	if !ok {
		owned = make(map[string]struct{})
		c.keys.m[userID] = owned
	}
	owned[key] = struct{}{}
	c.cache.Set(key, d, 1)
	return true
}

// InvalidateUser drops every cached month of one owner.
func (c *DashboardCache) InvalidateUser(userID int64) {
	c.keys.Lock()
	for key := range c.keys.m[userID] {
		c.cache.Del(key)
	}
	delete(c.keys.m, userID)
	c.keys.gen[userID]++
	c.keys.Unlock()
}

// Clear drops everything and returns how many keys were tracked.
func (c *DashboardCache) Clear() int {
	c.keys.Lock()
	n := 0
	for _, owned := range c.keys.m {
		n += len(owned)
	}
	c.keys.m = make(map[int64]map[string]struct{})
	c.cache.Clear()
	c.keys.Unlock()
	return n
}

// Wait blocks until buffered writes are applied.
func (c *DashboardCache) Wait() {
	c.cache.Wait()
}

func (c *DashboardCache) Close() {
	c.cache.Close()
}
