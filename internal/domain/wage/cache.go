package wage

import (
	"context"
	"time"
)

// RateCache holds a group's full rate history. Every group carries a version
// that DeleteRates advances. GetRates reports the version it saw on a miss and
// SetRates stores only while that version is still current, so a history read
// before a write commits is never cached after the write invalidates it.
type RateCache interface {
	GetRates(ctx context.Context, groupID int64) ([]WageRate, uint64, bool)
	SetRates(ctx context.Context, groupID int64, version uint64, rates []WageRate, ttl time.Duration)
	DeleteRates(ctx context.Context, groupID int64)
}

type noopCache struct{}

func (noopCache) GetRates(context.Context, int64) ([]WageRate, uint64, bool) {
	return nil, 0, false
}

func (noopCache) SetRates(context.Context, int64, uint64, []WageRate, time.Duration) {}

func (noopCache) DeleteRates(context.Context, int64) {}
