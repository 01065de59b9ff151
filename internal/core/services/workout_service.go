package services

import (
	"context"
	"fmt"
	"time"

	"github.com/comitanigiacomo/summit/internal/core/domain"
)

// MaxRangeDays caps list queries over dates.
const MaxRangeDays = 366

type WorkoutService struct {
	repo domain.WorkoutRepository
}

func NewWorkoutService(repo domain.WorkoutRepository) *WorkoutService {
	return &WorkoutService{
		repo: repo,
	}
}

type CreateWorkoutInput struct {
	UserID          string
	PlanID          *string
	ScheduledDate   time.Time
	WorkoutType     string
	Title           string
	Description     string
	DurationMinutes int
}

type UpdateWorkoutInput struct {
	ID              string
	UserID          string
	WorkoutType     string
	Title           string
	Description     string
	DurationMinutes int
	Version         int
}

type CompleteWorkoutInput struct {
	ID        string
	UserID    string
	Completed bool
	Notes     string
	At        time.Time
}

// WeekView is one Monday to Sunday window of workouts, oldest first.
type WeekView struct {
	Start    string            `json:"start"`
	End      string            `json:"end"`
	Workouts []*domain.Workout `json:"workouts"`
}

func validateRange(from, to time.Time) error {
	if to.Before(from) {
		return fmt.Errorf("%w: 'from' date cannot be after 'to' date", domain.ErrInvalidArgument)
	}
	if domain.DaysBetween(from, to) > MaxRangeDays {
		return fmt.Errorf("%w: date range too large (max %d days)", domain.ErrInvalidArgument, MaxRangeDays)
	}
	return nil
}

func (s *WorkoutService) List(ctx context.Context, userID string, from, to time.Time) ([]*domain.Workout, error) {
	if err := validateRange(from, to); err != nil {
		return nil, err
	}
	return s.repo.ListByDateRange(ctx, userID, from, to)
}

// Week returns the canonical week containing date.
func (s *WorkoutService) Week(ctx context.Context, userID string, date time.Time) (*WeekView, error) {
	start := domain.WeekStart(date, time.Monday)
	end := domain.WeekEnd(date)

	workouts, err := s.repo.ListByDateRange(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}

	ordered := make([]*domain.Workout, 0, len(workouts))
	for i := len(workouts) - 1; i >= 0; i-- {
		ordered = append(ordered, workouts[i])
	}

	return &WeekView{
		Start:    domain.FormatDate(start),
		End:      domain.FormatDate(end),
		Workouts: ordered,
	}, nil
}

func (s *WorkoutService) Get(ctx context.Context, userID, id string) (*domain.Workout, error) {
	w, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if w.UserID != userID {
		return nil, domain.ErrWorkoutNotFound
	}
	return w, nil
}

func (s *WorkoutService) Create(ctx context.Context, input CreateWorkoutInput) (*domain.Workout, error) {
	w, err := domain.NewWorkout(input.UserID, input.PlanID, input.ScheduledDate, input.WorkoutType, input.Title, input.Description, input.DurationMinutes)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}

func (s *WorkoutService) Update(ctx context.Context, input UpdateWorkoutInput) (*domain.Workout, error) {
	w, err := s.Get(ctx, input.UserID, input.ID)
	if err != nil {
		return nil, err
	}
	if w.Version != input.Version {
		return nil, domain.ErrWorkoutConflict
	}

	if err := w.Update(input.WorkoutType, input.Title, input.Description, input.DurationMinutes); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}

// Complete logs or withdraws a completion.
func (s *WorkoutService) Complete(ctx context.Context, input CompleteWorkoutInput) (*domain.Workout, error) {
	w, err := s.Get(ctx, input.UserID, input.ID)
	if err != nil {
		return nil, err
	}

	if input.Completed {
		at := input.At
		if at.IsZero() {
			at = time.Now()
		}
		if err := w.Complete(input.Notes, at); err != nil {
			return nil, err
		}
	} else {
		w.Uncomplete()
	}

	if err := s.repo.Update(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}

// Remove turns the workout into a rest day; workouts are never hard deleted.
func (s *WorkoutService) Remove(ctx context.Context, userID, id, reason string) (*domain.Workout, error) {
	w, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if w.IsRest() {
		return w, nil
	}

	w.ConvertToRest(reason)
	if err := s.repo.Update(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}
