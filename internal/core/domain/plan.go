package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrPlanNotFound         = errors.New("plan not found")
	ErrNoActivePlan         = errors.New("no active plan")
	ErrPlanNameEmpty        = errors.New("plan name cannot be empty")
	ErrInvalidTotalWeeks    = errors.New("total weeks must be between 1 and 52")
	ErrPlanGenerationFailed = errors.New("plan generation failed")
)

const (
	PlanStatusGenerating = "generating"
	PlanStatusActive     = "active"
	PlanStatusArchived   = "archived"
	PlanStatusFailed     = "failed"
	MaxPlanWeeks         = 52
)

type Phase struct {
	Name      string `json:"name" db:"name"`
	WeekStart int    `json:"week_start" db:"week_start"`
	WeekEnd   int    `json:"week_end" db:"week_end"`
	Focus     string `json:"focus,omitempty" db:"focus"`
}

func (p Phase) Contains(week int) bool {
	return p.WeekStart <= week && week <= p.WeekEnd
}

type Plan struct {
	ID         string    `json:"id" db:"id"`
	UserID     string    `json:"user_id" db:"user_id"`
	Name       string    `json:"name" db:"name"`
	Goal       string    `json:"goal" db:"goal"`
	StartDate  time.Time `json:"start_date" db:"start_date"`
	TotalWeeks int       `json:"total_weeks" db:"total_weeks"`
	Status     string    `json:"status" db:"status"`
	Phases     []Phase   `json:"phases" db:"-"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}

func NewPlan(userID, name, goal string, startDate time.Time, totalWeeks int, phases []Phase) (*Plan, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrProfileInvalidID
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrPlanNameEmpty
	}
	if totalWeeks < 1 || totalWeeks > MaxPlanWeeks {
		return nil, ErrInvalidTotalWeeks
	}
	if err := ValidatePhases(phases, totalWeeks); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &Plan{
		ID:         uuid.NewString(),
		UserID:     userID,
		Name:       name,
		Goal:       strings.TrimSpace(goal),
		StartDate:  civil(startDate),
		TotalWeeks: totalWeeks,
		Status:     PlanStatusActive,
		Phases:     phases,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

// NewPendingPlan is the placeholder row shown while the coach drafts a plan.
func NewPendingPlan(userID, goal string, startDate time.Time) *Plan {
	now := time.Now().UTC()
	return &Plan{
		ID:        uuid.NewString(),
		UserID:    userID,
		Name:      "Generating your plan",
		Goal:      goal,
		StartDate: civil(startDate),
		Status:    PlanStatusGenerating,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (p *Plan) EndDate() time.Time {
	return p.StartDate.AddDate(0, 0, p.TotalWeeks*daysPerWeek-1)
}

// WeekNumber is CurrentWeekNumber bound to this plan.
func (p *Plan) WeekNumber(today time.Time) int {
	return CurrentWeekNumber(p.StartDate, today)
}

func (p *Plan) PhaseFor(week int) (Phase, bool) {
	return PhaseForWeek(p.Phases, week)
}

// ScheduledDate maps a 1-indexed (week, day) slot to a calendar date, day 1 being the plan's Monday.
func (p *Plan) ScheduledDate(week, day int) (time.Time, error) {
	if week < 1 || week > p.TotalWeeks {
		return time.Time{}, fmt.Errorf("%w: week %d outside plan of %d weeks", ErrInvalidArgument, week, p.TotalWeeks)
	}
	if day < 1 || day > daysPerWeek {
		return time.Time{}, fmt.Errorf("%w: day %d must be 1-7", ErrInvalidArgument, day)
	}
	return p.StartDate.AddDate(0, 0, (week-1)*daysPerWeek+day-1), nil
}

func (p *Plan) Activate() {
	p.Status = PlanStatusActive
	p.UpdatedAt = time.Now().UTC()
}

func (p *Plan) Archive() {
	if p.Status == PlanStatusArchived {
		return
	}
	p.Status = PlanStatusArchived
	p.UpdatedAt = time.Now().UTC()
}

func (p *Plan) Fail() {
	p.Status = PlanStatusFailed
	p.UpdatedAt = time.Now().UTC()
}

// CurrentWeekNumber returns the 1-indexed plan week containing today, or 0
// before the plan starts. Only calendar days count; time of day is ignored.
func CurrentWeekNumber(planStart, today time.Time) int {
	days := DaysBetween(planStart, today)
	if days < 0 {
		return 0
	}
	return days/daysPerWeek + 1
}

// PhaseForWeek returns the first phase containing week. A miss means the
// phase list does not cover the plan, which is reported but not repaired.
func PhaseForWeek(phases []Phase, week int) (Phase, bool) {
	for _, p := range phases {
		if p.Contains(week) {
			return p, true
		}
	}
	return Phase{}, false
}

// ValidatePhases checks that phases partition [1, totalWeeks] in order,
// without gaps or overlaps.
func ValidatePhases(phases []Phase, totalWeeks int) error {
	if totalWeeks < 1 {
		return fmt.Errorf("%w: total weeks %d", ErrInvalidArgument, totalWeeks)
	}
	if len(phases) == 0 {
		return fmt.Errorf("%w: plan has no phases", ErrInvalidArgument)
	}

	next := 1
	for i, p := range phases {
		if strings.TrimSpace(p.Name) == "" {
			return fmt.Errorf("%w: phase %d has no name", ErrInvalidArgument, i)
		}
		if p.WeekStart != next {
			return fmt.Errorf("%w: phase %q starts at week %d, expected %d", ErrInvalidArgument, p.Name, p.WeekStart, next)
		}
		if p.WeekEnd < p.WeekStart {
			return fmt.Errorf("%w: phase %q ends before it starts", ErrInvalidArgument, p.Name)
		}
		next = p.WeekEnd + 1
	}

	if next-1 != totalWeeks {
		return fmt.Errorf("%w: phases cover %d of %d weeks", ErrInvalidArgument, next-1, totalWeeks)
	}
	return nil
}

// NextPlanStart is the Monday a freshly generated plan begins on: today when
// today is a Monday, otherwise the following Monday.
func NextPlanStart(today time.Time) time.Time {
	monday := WeekStart(today, time.Monday)
	if civil(monday).Equal(civil(today)) {
		return civil(monday)
	}
	return civil(monday.AddDate(0, 0, daysPerWeek))
}
