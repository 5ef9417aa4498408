package cache

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/culina/v2/internal/ports/outbound"
)

// CachedAIClient decorates an AI client with response caching. Prompts
// are deterministic for identical input, so the hash of purpose,
// language and prompt identifies a generation exactly. Cache failures
// never fail the request; the inner client is always the fallback.
type CachedAIClient struct {
	inner  outbound.AIClient
	cache  outbound.CacheRepository
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedAIClient wraps an AI client with a cache layer.
func NewCachedAIClient(inner outbound.AIClient, cache outbound.CacheRepository, ttl time.Duration, logger *zap.Logger) *CachedAIClient {
	return &CachedAIClient{
		inner:  inner,
		cache:  cache,
		ttl:    ttl,
		logger: logger,
	}
}

// Generate serves from cache when possible, otherwise delegates and
// stores the successful envelope.
func (c *CachedAIClient) Generate(ctx context.Context, req outbound.AIRequest) (*outbound.AIEnvelope, error) {
	key := cacheKey(req)

	if data, err := c.cache.Get(ctx, key); err == nil && len(data) > 0 {
		var envelope outbound.AIEnvelope
		if err := json.Unmarshal(data, &envelope); err == nil {
			c.logger.Debug("AI cache hit",
				zap.String("purpose", req.Purpose),
				zap.String("key", key),
			)
			return &envelope, nil
		}
		// A corrupt entry is dropped and regenerated.
		_ = c.cache.Delete(ctx, key)
	}

	envelope, err := c.inner.Generate(ctx, req)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(envelope); err == nil {
		if err := c.cache.Set(ctx, key, data, c.ttl); err != nil {
			c.logger.Debug("AI cache store failed", zap.String("key", key), zap.Error(err))
		}
	}
	return envelope, nil
}

// cacheKey hashes the request identity into a stable cache key.
func cacheKey(req outbound.AIRequest) string {
	sum := sha256.Sum256([]byte(req.Purpose + "|" + req.Language + "|" + req.Prompt))
	return fmt.Sprintf("ai:response:%x", sum)
}

var _ outbound.AIClient = (*CachedAIClient)(nil)
