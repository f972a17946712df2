package repository

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SlavaShagalov/rental-booking/internal/car/mocks"
	"github.com/SlavaShagalov/rental-booking/internal/car/usecase"
	"github.com/SlavaShagalov/rental-booking/internal/models"
	pkgErrors "github.com/SlavaShagalov/rental-booking/internal/pkg/errors"
)

type fakeRedis struct {
	values  map[string]string
	getErr  error
	sets    int
	ttl     time.Duration
	deleted []string
}

func (f *fakeRedis) Get(_ context.Context, key string) *redis.StringCmd {
	if f.getErr != nil {
		return redis.NewStringResult("", f.getErr)
	}
	value, ok := f.values[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(value, nil)
}

func (f *fakeRedis) Set(_ context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	f.sets++
	f.ttl = expiration
	f.values[key] = string(value.([]byte))
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Del(_ context.Context, keys ...string) *redis.IntCmd {
	var n int64
	for _, key := range keys {
		if _, ok := f.values[key]; ok {
			delete(f.values, key)
			n++
		}
		f.deleted = append(f.deleted, key)
	}
	return redis.NewIntResult(n, nil)
}

func (f *fakeRedis) Ping(_ context.Context) *redis.StatusCmd {
	return redis.NewStatusResult("PONG", nil)
}

func newCached(t *testing.T, client *fakeRedis) (*CachedRepository, *mocks.MockRepository) {
	repo := mocks.NewMockRepository(gomock.NewController(t))
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewCachedRepository(repo, client, time.Minute, logger), repo
}

func TestCachedRepositoryReadThrough(t *testing.T) {
	client := &fakeRedis{values: map[string]string{}}
	cached, repo := newCached(t, client)

	car := models.Car{ID: 3, Brand: "Kia", DailyRate: decimal.RequireFromString("45.50")}
	repo.EXPECT().Get(gomock.Any(), 3).Return(car, nil).Times(1)

	first, err := cached.Get(context.Background(), 3)
	require.NoError(t, err)
	second, err := cached.Get(context.Background(), 3)
	require.NoError(t, err)

	assert.Equal(t, 1, client.sets)
	assert.Equal(t, time.Minute, client.ttl)
	assert.Equal(t, car.Brand, second.Brand)
	assert.True(t, first.DailyRate.Equal(second.DailyRate))
}

func TestCachedRepositoryHit(t *testing.T) {
	data, err := json.Marshal(models.Car{ID: 5, Model: "Rio"})
	require.NoError(t, err)

	client := &fakeRedis{values: map[string]string{"car:5": string(data)}}
	cached, _ := newCached(t, client)

	car, err := cached.Get(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, "Rio", car.Model)
	assert.Zero(t, client.sets)
}

func TestCachedRepositoryRedisDown(t *testing.T) {
	client := &fakeRedis{values: map[string]string{}, getErr: errors.New("connection refused")}
	cached, repo := newCached(t, client)
	repo.EXPECT().Get(gomock.Any(), 8).Return(models.Car{ID: 8}, nil)

	car, err := cached.Get(context.Background(), 8)
	require.NoError(t, err)
	assert.Equal(t, 8, car.ID)
}

func TestCachedRepositoryNotFoundIsNotCached(t *testing.T) {
	client := &fakeRedis{values: map[string]string{}}
	cached, repo := newCached(t, client)
	repo.EXPECT().Get(gomock.Any(), 9).Return(models.Car{}, pkgErrors.ErrCarNotFound)

	_, err := cached.Get(context.Background(), 9)
	assert.ErrorIs(t, err, pkgErrors.ErrCarNotFound)
	assert.Zero(t, client.sets)
}

func TestCachedRepositoryUpdateEvicts(t *testing.T) {
	client := &fakeRedis{values: map[string]string{}}
	cached, repo := newCached(t, client)

	repo.EXPECT().Get(gomock.Any(), 3).Return(models.Car{ID: 3, DailyRate: decimal.NewFromInt(40)}, nil)
	repo.EXPECT().Update(gomock.Any(), 3, gomock.Any()).Return(models.Car{ID: 3, DailyRate: decimal.NewFromInt(60)}, nil)
	repo.EXPECT().Get(gomock.Any(), 3).Return(models.Car{ID: 3, DailyRate: decimal.NewFromInt(60)}, nil)

	_, err := cached.Get(context.Background(), 3)
	require.NoError(t, err)

	_, err = cached.Update(context.Background(), 3, usecase.CarParams{DailyRate: decimal.NewFromInt(60)})
	require.NoError(t, err)
	assert.Equal(t, []string{"car:3"}, client.deleted)

	car, err := cached.Get(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, "60", car.DailyRate.String())
}

func TestCachedRepositoryDeleteEvicts(t *testing.T) {
	client := &fakeRedis{values: map[string]string{"car:4": `{"ID":4}`}}
	cached, repo := newCached(t, client)
	repo.EXPECT().Delete(gomock.Any(), 4).Return(nil)

	require.NoError(t, cached.Delete(context.Background(), 4))
	assert.NotContains(t, client.values, "car:4")
}
