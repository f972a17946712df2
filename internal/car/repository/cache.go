package repository

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"github.com/SlavaShagalov/rental-booking/internal/car/usecase"
	"github.com/SlavaShagalov/rental-booking/internal/models"
)

const carKeyPrefix = "car:"

// RedisClient is the subset of *redis.Client used by the cache.
type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	Ping(ctx context.Context) *redis.StatusCmd
}

// CachedRepository serves Get through Redis and falls back to the wrapped
// repository on a miss. Writes evict the entry. Cache failures never fail the
// request.
type CachedRepository struct {
	usecase.Repository

	client RedisClient
	ttl    time.Duration
	logger *slog.Logger
}

func NewCachedRepository(repo usecase.Repository, client RedisClient, ttl time.Duration, logger *slog.Logger) *CachedRepository {
	return &CachedRepository{
		Repository: repo,
		client:     client,
		ttl:        ttl,
		logger:     logger,
	}
}

func (r *CachedRepository) HealthCheck(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		r.logger.Warn("redis ping failed", slog.String("error", err.Error()))
	}
	return r.Repository.HealthCheck(ctx)
}

func (r *CachedRepository) Update(ctx context.Context, id int, params usecase.CarParams) (models.Car, error) {
	car, err := r.Repository.Update(ctx, id, params)
	r.evict(ctx, id)
	return car, err
}

func (r *CachedRepository) Delete(ctx context.Context, id int) error {
	err := r.Repository.Delete(ctx, id)
	r.evict(ctx, id)
	return err
}

func (r *CachedRepository) evict(ctx context.Context, id int) {
	key := carKeyPrefix + strconv.Itoa(id)
	if err := r.client.Del(ctx, key).Err(); err != nil {
		r.logger.Warn("cache evict failed", slog.String("key", key), slog.String("error", err.Error()))
	}
}

func (r *CachedRepository) Get(ctx context.Context, id int) (models.Car, error) {
	key := carKeyPrefix + strconv.Itoa(id)

	data, err := r.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var car models.Car
		if err = json.Unmarshal(data, &car); err == nil {
			return car, nil
		}
		r.logger.Warn("drop malformed cache entry", slog.String("key", key), slog.String("error", err.Error()))
	case !errors.Is(err, redis.Nil):
		r.logger.Warn("cache get failed", slog.String("key", key), slog.String("error", err.Error()))
	}

	car, err := r.Repository.Get(ctx, id)
	if err != nil {
		return models.Car{}, err
	}

	if data, err = json.Marshal(car); err == nil {
		err = r.client.Set(ctx, key, data, r.ttl).Err()
	}
	if err != nil {
		r.logger.Warn("cache set failed", slog.String("key", key), slog.String("error", err.Error()))
	}

	return car, nil
}
