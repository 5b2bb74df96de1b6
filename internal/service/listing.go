package service

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/resume-server/internal/persistence"
)

// Pagination describes one page of a list response.
type Pagination struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalPages int `json:"totalPages"`
}

const statsCacheTTL = 30 * time.Second

// cachedStats serves a stats payload through the Redis cache. Cache errors
// degrade to a direct computation.
func cachedStats[T any](ctx context.Context, cache *persistence.Redis, logger *zap.Logger, key string, compute func(context.Context) (*T, error)) (*T, error) {
	if raw, err := cache.GetCached(ctx, key); err != nil {
		logger.Warn("stats cache read failed", zap.String("key", key), zap.Error(err))
	} else if raw != "" {
		var stats T
		if err := json.Unmarshal([]byte(raw), &stats); err == nil {
			return &stats, nil
		}
	}

	stats, err := compute(ctx)
	if err != nil {
		return nil, err
	}
	if payload, err := json.Marshal(stats); err == nil {
		if err := cache.SetCached(ctx, key, string(payload), statsCacheTTL); err != nil {
			logger.Warn("stats cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return stats, nil
}
