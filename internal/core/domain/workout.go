package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrWorkoutNotFound     = errors.New("workout not found")
	ErrWorkoutConflict     = errors.New("workout version conflict")
	ErrInvalidWorkoutType  = errors.New("invalid workout type")
	ErrWorkoutTitleTooLong = errors.New("workout title is too long (max 120 chars)")
	ErrInvalidDuration     = errors.New("duration cannot be negative")
	ErrRestNotCompletable  = errors.New("rest days do not need to be completed")
)

const (
	WorkoutTypeRun      = "run"
	WorkoutTypeStrength = "strength"
	WorkoutTypeCross    = "cross_training"
	WorkoutTypeMobility = "mobility"
	WorkoutTypeHIIT     = "hiit"
	WorkoutTypeRest     = "rest"
	MaxWorkoutTitleLen  = 120
)

var workoutTypes = map[string]bool{
	WorkoutTypeRun:      true,
	WorkoutTypeStrength: true,
	WorkoutTypeCross:    true,
	WorkoutTypeMobility: true,
	WorkoutTypeHIIT:     true,
	WorkoutTypeRest:     true,
}

func IsValidWorkoutType(t string) bool {
	return workoutTypes[t]
}

type Workout struct {
	ID              string     `json:"id" db:"id"`
	PlanID          *string    `json:"plan_id,omitempty" db:"plan_id"`
	UserID          string     `json:"user_id" db:"user_id"`
	ScheduledDate   time.Time  `json:"scheduled_date" db:"scheduled_date"`
	WorkoutType     string     `json:"workout_type" db:"workout_type"`
	Title           string     `json:"title" db:"title"`
	Description     string     `json:"description" db:"description"`
	DurationMinutes int        `json:"duration_minutes" db:"duration_minutes"`
	Completed       bool       `json:"completed" db:"completed"`
	CompletedAt     *time.Time `json:"completed_at,omitempty" db:"completed_at"`
	Notes           string     `json:"notes" db:"notes"`

	Version   int       `json:"version" db:"version"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

func validateWorkout(wType, title string, duration int) error {
	if !IsValidWorkoutType(wType) {
		return ErrInvalidWorkoutType
	}
	if len(strings.TrimSpace(title)) > MaxWorkoutTitleLen {
		return ErrWorkoutTitleTooLong
	}
	if duration < 0 {
		return ErrInvalidDuration
	}
	return nil
}

func NewWorkout(userID string, planID *string, date time.Time, wType, title, description string, duration int) (*Workout, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrProfileInvalidID
	}
	if date.IsZero() {
		return nil, ErrInvalidArgument
	}
	if err := validateWorkout(wType, title, duration); err != nil {
		return nil, err
	}

	if wType == WorkoutTypeRest {
		duration = 0
		if strings.TrimSpace(title) == "" {
			title = "Rest day"
		}
	}

	now := time.Now().UTC()
	return &Workout{
		ID:              uuid.NewString(),
		PlanID:          planID,
		UserID:          userID,
		ScheduledDate:   civil(date),
		WorkoutType:     wType,
		Title:           strings.TrimSpace(title),
		Description:     strings.TrimSpace(description),
		DurationMinutes: duration,
		Version:         1,
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

func (w *Workout) IsRest() bool {
	return w.WorkoutType == WorkoutTypeRest
}

func (w *Workout) Update(wType, title, description string, duration int) error {
	if err := validateWorkout(wType, title, duration); err != nil {
		return err
	}
	if wType == WorkoutTypeRest {
		duration = 0
		w.Completed = false
		w.CompletedAt = nil
	}

	w.WorkoutType = wType
	w.Title = strings.TrimSpace(title)
	w.Description = strings.TrimSpace(description)
	w.DurationMinutes = duration
	w.UpdatedAt = time.Now().UTC()
	return nil
}

func (w *Workout) Complete(notes string, at time.Time) error {
	if w.IsRest() {
		return ErrRestNotCompletable
	}
	at = at.UTC()
	w.Completed = true
	w.CompletedAt = &at
	if n := strings.TrimSpace(notes); n != "" {
		w.Notes = n
	}
	w.UpdatedAt = at
	return nil
}

func (w *Workout) Uncomplete() {
	w.Completed = false
	w.CompletedAt = nil
	w.UpdatedAt = time.Now().UTC()
}

// ConvertToRest is how a workout is "removed": the row survives as a rest
// day so that history and streaks stay consistent.
func (w *Workout) ConvertToRest(reason string) {
	w.WorkoutType = WorkoutTypeRest
	w.Title = "Rest day"
	w.Description = strings.TrimSpace(reason)
	w.DurationMinutes = 0
	w.Completed = false
	w.CompletedAt = nil
	w.UpdatedAt = time.Now().UTC()
}
