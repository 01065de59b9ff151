package services

import (
	"context"
	"sort"

	"github.com/comitanigiacomo/summit/internal/core/domain"
)

type StatsService struct {
	workoutRepo domain.WorkoutRepository
}

func NewStatsService(workoutRepo domain.WorkoutRepository) *StatsService {
	return &StatsService{
		workoutRepo: workoutRepo,
	}
}

func rate(done, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(done) / float64(total) * 100
}

func (s *StatsService) GetTrainingStats(ctx context.Context, input domain.StatsInput) (*domain.TrainingStats, error) {
	startDate := domain.TruncateDay(input.StartDate)
	endDate := domain.TruncateDay(input.EndDate)
	if err := validateRange(startDate, endDate); err != nil {
		return nil, err
	}

	workouts, err := s.workoutRepo.ListByDateRange(ctx, input.UserID, startDate, endDate)
	if err != nil {
		return nil, err
	}

	minutesByDay := make(map[string]int)
	byType := make(map[string]*domain.TypeStat)

	stats := &domain.TrainingStats{
		StartDate: domain.FormatDate(startDate),
		EndDate:   domain.FormatDate(endDate),
		ByType:    make([]domain.TypeStat, 0),
	}

	for _, w := range workouts {
		if w.IsRest() {
			continue
		}
		ts, ok := byType[w.WorkoutType]
		if !ok {
			ts = &domain.TypeStat{WorkoutType: w.WorkoutType}
			byType[w.WorkoutType] = ts
		}
		ts.Planned++
		stats.Planned++

		if !w.Completed {
			continue
		}
		ts.Completed++
		ts.Minutes += w.DurationMinutes
		stats.Completed++
		stats.TotalMinutes += w.DurationMinutes
		minutesByDay[domain.FormatDate(w.ScheduledDate)] += w.DurationMinutes
	}

	for currentDate := startDate; !currentDate.After(endDate); currentDate = currentDate.AddDate(0, 0, 1) {
		stats.DailyMinutes = append(stats.DailyMinutes, minutesByDay[domain.FormatDate(currentDate)])
	}

	for _, ts := range byType {
		ts.CompletionRate = rate(ts.Completed, ts.Planned)
		stats.ByType = append(stats.ByType, *ts)
	}
	sort.Slice(stats.ByType, func(i, j int) bool {
		return stats.ByType[i].WorkoutType < stats.ByType[j].WorkoutType
	})

	stats.CompletionRate = rate(stats.Completed, stats.Planned)
	return stats, nil
}
