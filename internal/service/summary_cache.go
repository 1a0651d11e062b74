package service

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/spec-kit/expense-service/internal/domain"
	"github.com/spec-kit/expense-service/internal/persistence"
)

// SummaryCache stores computed expense summaries per owner so repeated chart
// requests skip the aggregation query. A miss is always safe.
type SummaryCache interface {
	Get(ctx context.Context, ownerID int64) (*domain.ExpenseSummary, bool)
	Set(ctx context.Context, ownerID int64, summary *domain.ExpenseSummary)
	Invalidate(ctx context.Context, ownerID int64)
}

type redisSummaryCache struct {
	redis *persistence.Redis
	ttl   time.Duration
}

// NewRedisSummaryCache builds a Redis-backed cache with the given TTL.
func NewRedisSummaryCache(redis *persistence.Redis, ttl time.Duration) SummaryCache {
	return &redisSummaryCache{redis: redis, ttl: ttl}
}

func summaryKey(ownerID int64) string {
	return "expense_summary:" + strconv.FormatInt(ownerID, 10)
}

func (c *redisSummaryCache) Get(ctx context.Context, ownerID int64) (*domain.ExpenseSummary, bool) {
	if c.redis == nil || c.redis.Client == nil {
		return nil, false
	}
	raw, err := c.redis.Client.Get(ctx, summaryKey(ownerID)).Bytes()
	if err != nil {
		return nil, false
	}
	var summary domain.ExpenseSummary
	if err := json.Unmarshal(raw, &summary); err != nil {
		return nil, false
	}
	return &summary, true
}

func (c *redisSummaryCache) Set(ctx context.Context, ownerID int64, summary *domain.ExpenseSummary) {
	if c.redis == nil || c.redis.Client == nil {
		return
	}
	raw, err := json.Marshal(summary)
	if err != nil {
		return
	}
	_ = c.redis.Client.Set(ctx, summaryKey(ownerID), raw, c.ttl).Err()
}

func (c *redisSummaryCache) Invalidate(ctx context.Context, ownerID int64) {
	if c.redis == nil || c.redis.Client == nil {
		return
	}
	_ = c.redis.Client.Del(ctx, summaryKey(ownerID)).Err()
}
