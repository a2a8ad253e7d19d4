// Package pagecache caches listing responses in Redis and drops them when the
// underlying data changes.
package pagecache

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"winespace/internal/config"
	"winespace/internal/utils"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const keyPrefix = "winespace:page:"

// Listing prefixes invalidated by the actions.
const (
	Products   = "products"
	Orders     = "orders"
	Bookings   = "bookings"
	Providers  = "providers"
	Promotions = "promotions"
	Sawis      = "sawis"
	Offenders  = "offenders"
	BulkWine   = "bulkwine"
	RFQs       = "rfqs"
	Users      = "users"
	Dashboard  = "dashboard"
)

type Cache interface {
	// Get decodes a cached value into dst and reports whether it was found.
	Get(ctx context.Context, key string, dst interface{}) bool
	Set(ctx context.Context, key string, value interface{})
	Invalidate(ctx context.Context, prefixes ...string)
}

// Key builds the cache key of a listing under prefix.
func Key(prefix string, parts ...string) string {
	return keyPrefix + prefix + ":" + utils.Hash(strings.Join(parts, "|"))
}

// New returns a Redis backed cache, or a no-op one when no address is configured.
func New(cnf config.Redis) Cache {
	if cnf.Addr == "" {
		log.Info().Msg("page cache disabled, REDIS_ADDR is empty")
		return Noop{}
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:         cnf.Addr,
		Password:     cnf.Password,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})
	return &RedisCache{rdb: rdb, ttl: cnf.TTL}
}

type RedisCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func (c *RedisCache) Get(ctx context.Context, key string, dst interface{}) bool {
	b, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Warn().Err(err).Msgf("page cache: get %s", key)
		}
		return false
	}
	if err := json.Unmarshal(b, dst); err != nil {
		log.Warn().Err(err).Msgf("page cache: decode %s", key)
		return false
	}
	return true
}

func (c *RedisCache) Set(ctx context.Context, key string, value interface{}) {
	b, err := json.Marshal(value)
	if err != nil {
		log.Warn().Err(err).Msgf("page cache: encode %s", key)
		return
	}
	if err := c.rdb.Set(ctx, key, b, c.ttl).Err(); err != nil {
		log.Warn().Err(err).Msgf("page cache: set %s", key)
	}
}

// Invalidate deletes every key cached under the prefixes. Failures are only
// logged; stale pages expire with the TTL.
func (c *RedisCache) Invalidate(ctx context.Context, prefixes ...string) {
	for _, prefix := range prefixes {
		keys := []string{}
		iter := c.rdb.Scan(ctx, 0, keyPrefix+prefix+":*", 100).Iterator()
		for iter.Next(ctx) {
			keys = append(keys, iter.Val())
		}
		if err := iter.Err(); err != nil {
			log.Warn().Err(err).Msgf("page cache: scan %s", prefix)
			continue
		}
		if len(keys) == 0 {
			continue
		}
		if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
			log.Warn().Err(err).Msgf("page cache: invalidate %s", prefix)
		}
	}
}

func (c *RedisCache) Close() error {
	return c.rdb.Close()
}

type Noop struct{}

func (Noop) Get(ctx context.Context, key string, dst interface{}) bool { return false }

func (Noop) Set(ctx context.Context, key string, value interface{}) {}

func (Noop) Invalidate(ctx context.Context, prefixes ...string) {}
