// Package cache keeps a best-effort redis projection of user balances for
// display. It is explicitly allowed to be stale: every read that matters goes
// to the ledger store, and every successful mutation invalidates the entry so
// the next display read re-fetches the authoritative value.
package cache

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/VirtualStudios6/VirtualGift-App-sub000/internal/logger"
)

const balanceKeyPrefix = "balance:"

type BalanceCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func New(redisAddr string) *BalanceCache {
	return NewWithClient(redis.NewClient(&redis.Options{Addr: redisAddr}), time.Minute)
}

func NewWithClient(rdb *redis.Client, ttl time.Duration) *BalanceCache {
	return &BalanceCache{rdb: rdb, ttl: ttl}
}

// Get returns the cached points and whether the entry existed. Any redis
// failure is treated as a miss.
func (b *BalanceCache) Get(ctx context.Context, userID string) (int64, bool) {
	if b == nil || b.rdb == nil {
		return 0, false
	}

	val, err := b.rdb.Get(ctx, balanceKeyPrefix+userID).Result()
	if err != nil {
		return 0, false
	}

	points, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, false
	}

	return points, true
}

func (b *BalanceCache) Set(ctx context.Context, userID string, points int64) {
	if b == nil || b.rdb == nil {
		return
	}

	if err := b.rdb.Set(ctx, balanceKeyPrefix+userID, points, b.ttl).Err(); err != nil {
		logger.Debugf("balance cache set failed for %s: %v", userID, err)
	}
}

// Invalidate drops the cached projection after a balance mutation.
func (b *BalanceCache) Invalidate(ctx context.Context, userID string) {
	if b == nil || b.rdb == nil {
		return
	}

	if err := b.rdb.Del(ctx, balanceKeyPrefix+userID).Err(); err != nil {
		logger.Debugf("balance cache invalidate failed for %s: %v", userID, err)
	}
}

func (b *BalanceCache) Close() error {
	if b == nil || b.rdb == nil {
		return nil
	}
	return b.rdb.Close()
}
