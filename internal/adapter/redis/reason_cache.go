package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/restodesk/backoffice/internal/adapter/logger"
	"github.com/restodesk/backoffice/internal/config"
	"github.com/restodesk/backoffice/internal/domain"
	"github.com/restodesk/backoffice/internal/interfaces"
)

func Connect(ctx context.Context, cfg config.RedisConfig) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return client, nil
}

// ReasonCache caches active reason lists per restaurant and type. It is
// strictly best-effort: any transport or codec error degrades to a miss.
type ReasonCache struct {
	client *goredis.Client
	ttl    time.Duration
	logger logger.Logger
}

func NewReasonCache(client *goredis.Client, ttl time.Duration, lgr logger.Logger) interfaces.ReasonCache {
	return &ReasonCache{client: client, ttl: ttl, logger: lgr}
}

func reasonKey(restaurantID uuid.UUID, reasonType domain.ReasonType) string {
	return fmt.Sprintf("reasons:%s:%s", restaurantID, reasonType)
}

func (c *ReasonCache) GetActive(ctx context.Context, restaurantID uuid.UUID, reasonType domain.ReasonType) ([]*domain.Reason, bool) {
	data, err := c.client.Get(ctx, reasonKey(restaurantID, reasonType)).Bytes()
	if err != nil {
		if !errors.Is(err, goredis.Nil) {
			c.logger.Error("cache_get_failed", "Failed to read reason cache", nil, err)
		}
		return nil, false
	}

	var reasons []*domain.Reason
	if err := json.Unmarshal(data, &reasons); err != nil {
		c.logger.Error("cache_decode_failed", "Failed to decode cached reasons", nil, err)
		return nil, false
	}
	return reasons, true
}

func (c *ReasonCache) SetActive(ctx context.Context, restaurantID uuid.UUID, reasonType domain.ReasonType, reasons []*domain.Reason) {
	data, err := json.Marshal(reasons)
	if err != nil {
		c.logger.Error("cache_encode_failed", "Failed to encode reasons", nil, err)
		return
	}

	if err := c.client.Set(ctx, reasonKey(restaurantID, reasonType), data, c.ttl).Err(); err != nil {
		c.logger.Error("cache_set_failed", "Failed to write reason cache", nil, err)
	}
}

// Invalidate drops both type keys for the restaurant; called on every write.
func (c *ReasonCache) Invalidate(ctx context.Context, restaurantID uuid.UUID) {
	keys := []string{
		reasonKey(restaurantID, domain.ReasonTypeWaiting),
		reasonKey(restaurantID, domain.ReasonTypeRejected),
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.logger.Error("cache_invalidate_failed", "Failed to invalidate reason cache", nil, err)
	}
}
