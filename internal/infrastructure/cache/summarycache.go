package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/reliefops/cva/internal/domain/reconciliation"
	"github.com/reliefops/cva/internal/shared/logger"
)

const (
	summaryKeyPrefix  = "cva:summary:distribution:"
	defaultSummaryTTL = 24 * time.Hour
)

// RedisSummaryCache implements reconciliation.Cache with one JSON string per distribution.
type RedisSummaryCache struct {
	client *redis.Client
	ttl    time.Duration
	logger logger.Interface
}

// NewRedisSummaryCache creates a new Redis-based summary cache
func NewRedisSummaryCache(client *redis.Client, ttl time.Duration, log logger.Interface) *RedisSummaryCache {
	if ttl <= 0 {
		ttl = defaultSummaryTTL
	}
	return &RedisSummaryCache{
		client: client,
		ttl:    ttl,
		logger: log,
	}
}

func (c *RedisSummaryCache) key(distributionID uint) string {
	return fmt.Sprintf("%s%d", summaryKeyPrefix, distributionID)
}

// Get returns nil, nil on a cache miss
func (c *RedisSummaryCache) Get(ctx context.Context, distributionID uint) (*reconciliation.Summary, error) {
	raw, err := c.client.Get(ctx, c.key(distributionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get summary from cache: %w", err)
	}

	var summary reconciliation.Summary
	if err := json.Unmarshal(raw, &summary); err != nil {
		c.logger.Warnw("dropping undecodable cached summary", "distribution_id", distributionID, "error", err)
		_ = c.Invalidate(ctx, distributionID)
		return nil, nil
	}
	return &summary, nil
}

// Set ignores summaries of open distributions since they still change
func (c *RedisSummaryCache) Set(ctx context.Context, summary *reconciliation.Summary) error {
	if !summary.Cacheable() {
		return nil
	}
	raw, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("failed to encode summary: %w", err)
	}
	if err := c.client.Set(ctx, c.key(summary.DistributionID), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set summary in cache: %w", err)
	}
	return nil
}

func (c *RedisSummaryCache) Invalidate(ctx context.Context, distributionID uint) error {
	if err := c.client.Del(ctx, c.key(distributionID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate summary: %w", err)
	}
	return nil
}

// NopSummaryCache is used when Redis is disabled.
type NopSummaryCache struct{}

func (NopSummaryCache) Get(context.Context, uint) (*reconciliation.Summary, error) { return nil, nil }
func (NopSummaryCache) Set(context.Context, *reconciliation.Summary) error        { return nil }
func (NopSummaryCache) Invalidate(context.Context, uint) error                    { return nil }
