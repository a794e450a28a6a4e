// Package cache holds the best-effort redis cache for active credit balances.
// Cache failures are logged and never fail a request; the database remains
// the source of truth.
package cache

import (
	"context"
	"strconv"
	"time"

	"fitbook/pkg/utils"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type CreditCache struct {
	rdb *redis.Client
	ttl time.Duration
	log *zap.Logger
}

// NewCreditCache returns nil when redis is disabled; all methods are nil-safe.
func NewCreditCache(config utils.RedisConfig, log *zap.Logger) *CreditCache {
	if !config.Enabled {
		return nil
	}

	ttl := time.Duration(config.TTLSeconds) * time.Second
	if ttl <= 0 {
		ttl = 30 * time.Second
	}

	return &CreditCache{
		rdb: redis.NewClient(&redis.Options{
			Addr:     config.Addr,
			Password: config.Password,
			DB:       config.DB,
		}),
		ttl: ttl,
		log: log.With(zap.String("cache", "credits")),
	}
}

func creditKey(accountID uuid.UUID) string {
	return "credits:" + accountID.String()
}

func (c *CreditCache) Get(ctx context.Context, accountID uuid.UUID) (int, bool) {
	if c == nil {
		return 0, false
	}

	val, err := c.rdb.Get(ctx, creditKey(accountID)).Result()
	if err == redis.Nil {
		return 0, false
	}
	if err != nil {
		c.log.Warn("Credit cache read failed",
			zap.Error(err),
			zap.String("account_id", accountID.String()),
		)
		return 0, false
	}

	balance, err := strconv.Atoi(val)
	if err != nil {
		return 0, false
	}

	return balance, true
}

func (c *CreditCache) Set(ctx context.Context, accountID uuid.UUID, balance int) {
	if c == nil {
		return
	}

	if err := c.rdb.Set(ctx, creditKey(accountID), strconv.Itoa(balance), c.ttl).Err(); err != nil {
		c.log.Warn("Credit cache write failed",
			zap.Error(err),
			zap.String("account_id", accountID.String()),
		)
	}
}

// Invalidate drops the cached balance after any mutation so the next read
// goes to the database.
func (c *CreditCache) Invalidate(ctx context.Context, accountID uuid.UUID) {
	if c == nil {
		return
	}

	if err := c.rdb.Del(ctx, creditKey(accountID)).Err(); err != nil {
		c.log.Warn("Credit cache invalidation failed",
			zap.Error(err),
			zap.String("account_id", accountID.String()),
		)
	}
}
