package inmemory

import (
	"context"
	"sync"
	"time"

	wagedomain "shiftboard-go/internal/domain/wage"
)

// InMemoryRatesCache is process-local. Deployments running more than one
// instance use the redis backend so invalidation reaches every reader.
type InMemoryRatesCache struct {
	mu       sync.RWMutex
	items    map[int64]ratesItem
	versions map[int64]uint64
	now      func() time.Time
}

type ratesItem struct {
	value     []wagedomain.WageRate
	expiresAt time.Time
}

func NewInMemoryRatesCache() *InMemoryRatesCache {
	return &InMemoryRatesCache{
		items:    make(map[int64]ratesItem),
		versions: make(map[int64]uint64),
		now:      time.Now,
	}
}

func (c *InMemoryRatesCache) GetRates(_ context.Context, groupID int64) ([]wagedomain.WageRate, uint64, bool) {
	now := c.now()

	c.mu.RLock()
	item, ok := c.items[groupID]
	version := c.versions[groupID]
	c.mu.RUnlock()
	if !ok {
		return nil, version, false
	}

	if !item.expiresAt.After(now) {
		c.mu.Lock()
		item, ok = c.items[groupID]
		if ok && !item.expiresAt.After(now) {
			delete(c.items, groupID)
		}
		version = c.versions[groupID]
		c.mu.Unlock()
		return nil, version, false
	}

	return cloneRates(item.value), version, true
}

// SetRates drops the write when the group was invalidated after version was
// observed.
func (c *InMemoryRatesCache) SetRates(_ context.Context, groupID int64, version uint64, rates []wagedomain.WageRate, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.versions[groupID] != version {
		return
	}
	if ttl <= 0 {
		delete(c.items, groupID)
		return
	}
	c.items[groupID] = ratesItem{
		value:     cloneRates(rates),
		expiresAt: c.now().Add(ttl),
	}
}

func (c *InMemoryRatesCache) DeleteRates(_ context.Context, groupID int64) {
	c.mu.Lock()
	delete(c.items, groupID)
	c.versions[groupID]++
	c.mu.Unlock()
}

func cloneRates(rates []wagedomain.WageRate) []wagedomain.WageRate {
	if rates == nil {
		return nil
	}
	cloned := make([]wagedomain.WageRate, len(rates))
	for i := range rates {
		cloned[i] = rates[i]
		if rates[i].EffectiveTo != nil {
			to := *rates[i].EffectiveTo
			cloned[i].EffectiveTo = &to
		}
	}
	return cloned
}
