package view

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
	"github.com/shinyyama/teamchat-backend/internal/metrics"
	"go.uber.org/zap"
)

const (
	DefaultKeyPrefix = "teamchat:view:"
	DefaultChannel   = "teamchat:view-invalidations"
)

// RedisInvalidator bumps a per-scope version counter and publishes the scope
// name so UI caches can drop their copy.
type RedisInvalidator struct {
	client  redis.UniversalClient
	prefix  string
	channel string
	logger  *zap.Logger
}

func NewRedisInvalidator(client redis.UniversalClient, logger *zap.Logger) *RedisInvalidator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisInvalidator{
		client:  client,
		prefix:  DefaultKeyPrefix,
		channel: DefaultChannel,
		logger:  logger,
	}
}

func (r *RedisInvalidator) Invalidate(ctx context.Context, scopes ...Scope) {
	if len(scopes) == 0 {
		return
	}
	pipe := r.client.TxPipeline()
	for _, s := range scopes {
		pipe.Incr(ctx, r.prefix+s.String())
		pipe.Publish(ctx, r.channel, s.String())
	}
	if _, err := pipe.Exec(ctx); err != nil {
		metrics.ObserveInvalidation(false)
		r.logger.Warn("view invalidation failed", zap.Error(err), zap.Int("scopes", len(scopes)))
		return
	}
	metrics.ObserveInvalidation(true)
}

func (r *RedisInvalidator) Version(ctx context.Context, scope Scope) (int64, error) {
	v, err := r.client.Get(ctx, r.prefix+scope.String()).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return v, err
}

// Channel is the pub/sub channel scopes are published on.
func (r *RedisInvalidator) Channel() string {
	return r.channel
}
