package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	goredis "github.com/redis/go-redis/v9"

	wagedomain "shiftboard-go/internal/domain/wage"
	"shiftboard-go/pkg/logger"
)

const (
	ratesKeyPrefix   = "shiftboard:wage_rates:"
	versionKeyPrefix = "shiftboard:wage_rates_version:"
)

type Options struct {
	Addr     string
	Password string
	DB       int
}

func NewClient(opts Options) *goredis.Client {
	return goredis.NewClient(&goredis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
}

// RatesCache stores a group's rate history as JSON next to a version counter.
// Redis failures degrade to cache misses so the database stays authoritative.
type RatesCache struct {
	client *goredis.Client
	log    logger.Logger
}

func NewRatesCache(client *goredis.Client, log logger.Logger) *RatesCache {
	return &RatesCache{client: client, log: log}
}

func (c *RatesCache) GetRates(ctx context.Context, groupID int64) ([]wagedomain.WageRate, uint64, bool) {
	values, err := c.client.MGet(ctx, ratesKey(groupID), versionKey(groupID)).Result()
	if err != nil {
		c.log.Warn("rates cache get failed", "group_id", groupID, "err", err)
		return nil, 0, false
	}

	version, err := parseVersion(values[1])
	if err != nil {
		c.log.Warn("rates cache version is corrupt", "group_id", groupID, "err", err)
		return nil, 0, false
	}

	data, ok := values[0].(string)
	if !ok {
		return nil, version, false
	}

	var rates []wagedomain.WageRate
	if err := json.Unmarshal([]byte(data), &rates); err != nil {
		c.log.Warn("rates cache entry is corrupt", "group_id", groupID, "err", err)
		c.DeleteRates(ctx, groupID)
		return nil, version + 1, false
	}
	return rates, version, true
}

// SetRates writes under WATCH on the version key and gives up when the
// version moved since the caller's miss.
func (c *RatesCache) SetRates(ctx context.Context, groupID int64, version uint64, rates []wagedomain.WageRate, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	data, err := json.Marshal(rates)
	if err != nil {
		c.log.Warn("rates cache encode failed", "group_id", groupID, "err", err)
		return
	}

	vkey := versionKey(groupID)
	err = c.client.Watch(ctx, func(tx *goredis.Tx) error {
		raw, err := tx.Get(ctx, vkey).Result()
		if err != nil && !errors.Is(err, goredis.Nil) {
			return err
		}
		current, err := parseVersion(raw)
		if err != nil {
			return err
		}
		if current != version {
			return errStaleRates
		}
		_, err = tx.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
			pipe.Set(ctx, ratesKey(groupID), data, ttl)
			return nil
		})
		return err
	}, vkey)

	switch {
	case err == nil, errors.Is(err, errStaleRates), errors.Is(err, goredis.TxFailedErr):
		return
	default:
		c.log.Warn("rates cache set failed", "group_id", groupID, "err", err)
	}
}

// DeleteRates drops the entry and advances the version in one transaction.
func (c *RatesCache) DeleteRates(ctx context.Context, groupID int64) {
	_, err := c.client.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		pipe.Del(ctx, ratesKey(groupID))
		pipe.Incr(ctx, versionKey(groupID))
		return nil
	})
	if err != nil {
		c.log.Warn("rates cache delete failed", "group_id", groupID, "err", err)
	}
}

var errStaleRates = errors.New("rates cache fill is stale")

func parseVersion(value interface{}) (uint64, error) {
	switch v := value.(type) {
	case nil:
		return 0, nil
	case string:
		if v == "" {
			return 0, nil
		}
		return strconv.ParseUint(v, 10, 64)
	default:
		return 0, fmt.Errorf("unexpected version type %T", value)
	}
}

func ratesKey(groupID int64) string {
	return ratesKeyPrefix + strconv.FormatInt(groupID, 10)
}

func versionKey(groupID int64) string {
	return versionKeyPrefix + strconv.FormatInt(groupID, 10)
}
