package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/comitanigiacomo/summit/internal/core/domain"
)

var _ domain.PlanRepository = (*CachedPlanRepository)(nil)

const activePlanTTL = 30 * time.Minute

// CachedPlanRepository caches each user's active plan, which the dashboard
// and coach read on every request. Writes invalidate the user's entry.
type CachedPlanRepository struct {
	next   domain.PlanRepository
	cache  *redis.Client
	logger *zap.Logger
}

func NewCachedPlanRepository(next domain.PlanRepository, cache *redis.Client, logger *zap.Logger) *CachedPlanRepository {
	return &CachedPlanRepository{
		next:   next,
		cache:  cache,
		logger: logger,
	}
}

func (r *CachedPlanRepository) cacheKey(userID string) string {
	return fmt.Sprintf("plans:active:%s", userID)
}

func (r *CachedPlanRepository) invalidate(ctx context.Context, userID string) {
	if err := r.cache.Del(ctx, r.cacheKey(userID)).Err(); err != nil {
		r.logger.Warn("cache invalidation failed", zap.String("user_id", userID), zap.Error(err))
	}
}

func (r *CachedPlanRepository) GetActive(ctx context.Context, userID string) (*domain.Plan, error) {
	key := r.cacheKey(userID)

	val, err := r.cache.Get(ctx, key).Result()
	if err == nil {
		var plan domain.Plan
		if err := json.Unmarshal([]byte(val), &plan); err == nil {
			return &plan, nil
		}

		r.logger.Warn("corrupted cache entry, cleaning up", zap.String("key", key))
		r.cache.Del(ctx, key)
	} else if !errors.Is(err, redis.Nil) {
		r.logger.Warn("cache read failed", zap.Error(err))
	}

	plan, err := r.next.GetActive(ctx, userID)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(plan); err == nil {
		if setErr := r.cache.Set(ctx, key, data, activePlanTTL).Err(); setErr != nil {
			r.logger.Warn("cache write failed", zap.Error(setErr))
		}
	}

	return plan, nil
}

func (r *CachedPlanRepository) GetByID(ctx context.Context, id string) (*domain.Plan, error) {
	return r.next.GetByID(ctx, id)
}

func (r *CachedPlanRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Plan, error) {
	return r.next.ListByUserID(ctx, userID)
}

func (r *CachedPlanRepository) ListGenerating(ctx context.Context) ([]*domain.Plan, error) {
	return r.next.ListGenerating(ctx)
}

func (r *CachedPlanRepository) Create(ctx context.Context, plan *domain.Plan) error {
	if err := r.next.Create(ctx, plan); err != nil {
		return err
	}
	r.invalidate(ctx, plan.UserID)
	return nil
}

func (r *CachedPlanRepository) Update(ctx context.Context, plan *domain.Plan) error {
	if err := r.next.Update(ctx, plan); err != nil {
		return err
	}
	r.invalidate(ctx, plan.UserID)
	return nil
}

func (r *CachedPlanRepository) ActivateWithWorkouts(ctx context.Context, plan *domain.Plan, workouts []*domain.Workout) error {
	if err := r.next.ActivateWithWorkouts(ctx, plan, workouts); err != nil {
		return err
	}
	r.invalidate(ctx, plan.UserID)
	return nil
}
