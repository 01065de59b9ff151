package repository

import (
	"context"
	"os"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/comitanigiacomo/summit/internal/core/domain"
)

func setupTestRedis(t *testing.T) *redis.Client {
	rdb := redis.NewClient(&redis.Options{
		Addr:     getEnv("REDIS_HOST", "localhost") + ":" + getEnv("REDIS_PORT", "6379"),
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       2,
	})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		t.Skipf("Skipping Redis integration test: %v", err)
	}
	require.NoError(t, rdb.FlushDB(context.Background()).Err())
	return rdb
}

func TestCachedPlanRepository_Integration(t *testing.T) {
	rdb := setupTestRedis(t)
	defer rdb.Close()

	ctx := context.Background()
	workouts := NewInMemoryWorkoutRepository()
	backing := NewInMemoryPlanRepository(workouts)
	repo := NewCachedPlanRepository(backing, rdb, zap.NewNop())

	phases := []domain.Phase{{Name: "All", WeekStart: 1, WeekEnd: 2}}
	plan, err := domain.NewPlan("cache-user", "Cached", domain.GoalRace, date(2024, 4, 1), 2, phases)
	require.NoError(t, err)
	require.NoError(t, repo.ActivateWithWorkouts(ctx, plan, nil))

	t.Run("Miss fills the cache", func(t *testing.T) {
		got, err := repo.GetActive(ctx, "cache-user")
		require.NoError(t, err)
		assert.Equal(t, plan.ID, got.ID)

		exists, err := rdb.Exists(ctx, "plans:active:cache-user").Result()
		require.NoError(t, err)
		assert.Equal(t, int64(1), exists)
	})

	t.Run("Hit serves phases from cache", func(t *testing.T) {
		got, err := repo.GetActive(ctx, "cache-user")
		require.NoError(t, err)
		require.Len(t, got.Phases, 1)
		assert.Equal(t, "All", got.Phases[0].Name)
	})

	t.Run("Update invalidates", func(t *testing.T) {
		plan.Name = "Renamed"
		require.NoError(t, repo.Update(ctx, plan))

		exists, err := rdb.Exists(ctx, "plans:active:cache-user").Result()
		require.NoError(t, err)
		assert.Equal(t, int64(0), exists)

		got, err := repo.GetActive(ctx, "cache-user")
		require.NoError(t, err)
		assert.Equal(t, "Renamed", got.Name)
	})

	t.Run("Corrupted entry falls through", func(t *testing.T) {
		require.NoError(t, rdb.Set(ctx, "plans:active:cache-user", "{not json", 0).Err())

		got, err := repo.GetActive(ctx, "cache-user")
		require.NoError(t, err)
		assert.Equal(t, plan.ID, got.ID)
	})

	t.Run("No active plan is not cached", func(t *testing.T) {
		_, err := repo.GetActive(ctx, "someone-else")
		assert.ErrorIs(t, err, domain.ErrNoActivePlan)

		exists, err := rdb.Exists(ctx, "plans:active:someone-else").Result()
		require.NoError(t, err)
		assert.Equal(t, int64(0), exists)
	})
}
