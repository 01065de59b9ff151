package services

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/comitanigiacomo/summit/internal/core/domain"
)

// Dashboard is everything the home screen shows for one user on one day.
type Dashboard struct {
	Date             string               `json:"date"`
	Plan             *domain.Plan         `json:"plan,omitempty"`
	WeekNumber       int                  `json:"week_number"`
	Phase            *domain.Phase        `json:"phase,omitempty"`
	Streak           int                  `json:"streak"`
	ShowWeeklyReview bool                 `json:"show_weekly_review"`
	Message          string               `json:"message"`
	TodayWorkout     *domain.Workout      `json:"today_workout,omitempty"`
	TodayMetrics     *domain.DailyMetrics `json:"today_metrics,omitempty"`
	Week             *WeekView            `json:"week"`

	profile *domain.Profile
	local   time.Time
}

type DashboardService struct {
	profiles domain.ProfileRepository
	workouts domain.WorkoutRepository
	metrics  domain.MetricsRepository
	plans    *PlanService
	selector *domain.MotivationSelector
	logger   *zap.Logger
}

func NewDashboardService(
	profiles domain.ProfileRepository,
	workouts domain.WorkoutRepository,
	metrics domain.MetricsRepository,
	plans *PlanService,
	selector *domain.MotivationSelector,
	logger *zap.Logger,
) *DashboardService {
	if selector == nil {
		selector = domain.NewMotivationSelector(nil)
	}
	return &DashboardService{
		profiles: profiles,
		workouts: workouts,
		metrics:  metrics,
		plans:    plans,
		selector: selector,
		logger:   logger,
	}
}

// Get assembles the dashboard for now, read in the user's timezone.
func (s *DashboardService) Get(ctx context.Context, userID string, now time.Time) (*Dashboard, error) {
	profile, err := s.profiles.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	local := now.In(profile.Location())
	today := domain.TruncateDay(local)

	d := &Dashboard{
		Date:    domain.FormatDate(today),
		profile: profile,
		local:   local,
	}

	overview, err := s.plans.activeFor(ctx, profile, now)
	if err != nil {
		return nil, err
	}
	if overview != nil {
		d.Plan = overview.Plan
		d.WeekNumber = overview.WeekNumber
		d.Phase = overview.Phase

		show, err := domain.ShouldShowReview(overview.Plan.StartDate, overview.WeekNumber, overview.Plan.TotalWeeks, local)
		if err != nil {
			s.logger.Warn("weekly review check failed", zap.String("plan_id", overview.Plan.ID), zap.Error(err))
		}
		d.ShowWeeklyReview = show
	}

	history, err := s.workouts.ListByDateRange(ctx, userID, today.AddDate(0, 0, -domain.StreakWindowDays), today)
	if err != nil {
		return nil, err
	}
	d.Streak = domain.CalculateStreak(history, today)
	d.TodayWorkout = pickToday(history, today)

	d.TodayMetrics, err = s.metrics.GetByDate(ctx, userID, today)
	if err != nil && !errors.Is(err, domain.ErrMetricsNotFound) {
		return nil, err
	}

	week, err := NewWorkoutService(s.workouts).Week(ctx, userID, today)
	if err != nil {
		return nil, err
	}
	d.Week = week

	d.Message = s.selector.Select(domain.MessageInput{
		Metrics:      d.TodayMetrics,
		Streak:       d.Streak,
		TodayWorkout: d.TodayWorkout,
	})

	return d, nil
}

// pickToday prefers a real workout over a rest entry on the same date.
func pickToday(history []*domain.Workout, today time.Time) *domain.Workout {
	key := domain.FormatDate(today)
	var rest *domain.Workout
	for _, w := range history {
		if domain.FormatDate(w.ScheduledDate) != key {
			continue
		}
		if !w.IsRest() {
			return w
		}
		if rest == nil {
			rest = w
		}
	}
	return rest
}
