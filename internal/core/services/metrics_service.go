package services

import (
	"context"
	"time"

	"github.com/comitanigiacomo/summit/internal/core/domain"
)

type MetricsService struct {
	repo domain.MetricsRepository
}

func NewMetricsService(repo domain.MetricsRepository) *MetricsService {
	return &MetricsService{
		repo: repo,
	}
}

type UpsertMetricsInput struct {
	UserID        string
	Date          time.Time
	HRV           *float64
	SleepScore    *int
	RecoveryScore *int
	RestingHR     *int
	Source        string
}

// Upsert records the readings for one day, replacing any earlier sync.
func (s *MetricsService) Upsert(ctx context.Context, input UpsertMetricsInput) (*domain.DailyMetrics, error) {
	m, err := domain.NewDailyMetrics(input.UserID, input.Date, input.HRV, input.SleepScore, input.RecoveryScore, input.RestingHR, input.Source)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Upsert(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *MetricsService) Get(ctx context.Context, userID string, date time.Time) (*domain.DailyMetrics, error) {
	return s.repo.GetByDate(ctx, userID, date)
}

func (s *MetricsService) List(ctx context.Context, userID string, from, to time.Time) ([]*domain.DailyMetrics, error) {
	if err := validateRange(from, to); err != nil {
		return nil, err
	}
	return s.repo.ListByDateRange(ctx, userID, from, to)
}
