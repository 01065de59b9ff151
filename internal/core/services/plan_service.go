package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/comitanigiacomo/summit/internal/core/domain"
)

// PlanQueue hands a generating plan to the background author.
type PlanQueue interface {
	Enqueue(planID string) bool
}

type PlanService struct {
	plans    domain.PlanRepository
	profiles domain.ProfileRepository
	queue    PlanQueue
	logger   *zap.Logger
}

func NewPlanService(plans domain.PlanRepository, profiles domain.ProfileRepository, queue PlanQueue, logger *zap.Logger) *PlanService {
	return &PlanService{
		plans:    plans,
		profiles: profiles,
		queue:    queue,
		logger:   logger,
	}
}

type CreatePlanInput struct {
	UserID     string
	Name       string
	Goal       string
	StartDate  time.Time
	TotalWeeks int
	Phases     []domain.Phase
}

// PlanOverview is the active plan positioned on today's date.
type PlanOverview struct {
	Plan       *domain.Plan  `json:"plan"`
	WeekNumber int           `json:"week_number"`
	Phase      *domain.Phase `json:"phase,omitempty"`
}

// Create stores a hand-written plan and makes it the active one.
func (s *PlanService) Create(ctx context.Context, input CreatePlanInput) (*domain.Plan, error) {
	goal := strings.TrimSpace(input.Goal)
	if goal == "" {
		profile, err := s.profiles.GetByID(ctx, input.UserID)
		if err != nil {
			return nil, err
		}
		goal = profile.Goal
	}

	plan, err := domain.NewPlan(input.UserID, input.Name, goal, input.StartDate, input.TotalWeeks, input.Phases)
	if err != nil {
		return nil, err
	}

	if err := s.plans.ActivateWithWorkouts(ctx, plan, nil); err != nil {
		return nil, err
	}
	return plan, nil
}

// RequestGeneration stores a placeholder plan and queues it for the coach.
// The plan starts on the next Monday in the user's timezone. A plan still
// generating for the user is returned instead of queueing another.
func (s *PlanService) RequestGeneration(ctx context.Context, userID string, now time.Time) (*domain.Plan, error) {
	profile, err := s.profiles.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !profile.IsOnboarded() {
		return nil, domain.ErrOnboardingIncomplete
	}

	pending, err := s.inFlight(ctx, userID)
	if err != nil {
		return nil, err
	}
	if pending != nil {
		s.logger.Debug("plan generation already in flight", zap.String("user_id", userID), zap.String("plan_id", pending.ID))
		return pending, nil
	}

	today := now.In(profile.Location())
	plan := domain.NewPendingPlan(userID, profile.Goal, domain.NextPlanStart(today))

	if err := s.plans.Create(ctx, plan); err != nil {
		return nil, err
	}

	if !s.queue.Enqueue(plan.ID) {
		plan.Fail()
		if err := s.plans.Update(ctx, plan); err != nil {
			s.logger.Error("failed to mark dropped plan as failed", zap.String("plan_id", plan.ID), zap.Error(err))
		}
		return nil, domain.ErrPlanGenerationFailed
	}

	return plan, nil
}

// inFlight returns the user's plan that is still being generated, if any.
func (s *PlanService) inFlight(ctx context.Context, userID string) (*domain.Plan, error) {
	plans, err := s.plans.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, p := range plans {
		if p.Status == domain.PlanStatusGenerating {
			return p, nil
		}
	}
	return nil, nil
}

func (s *PlanService) Get(ctx context.Context, userID, planID string) (*domain.Plan, error) {
	plan, err := s.plans.GetByID(ctx, planID)
	if err != nil {
		return nil, err
	}
	if plan.UserID != userID {
		return nil, domain.ErrPlanNotFound
	}
	return plan, nil
}

func (s *PlanService) List(ctx context.Context, userID string) ([]*domain.Plan, error) {
	return s.plans.ListByUserID(ctx, userID)
}

// Active positions the user's active plan on their local calendar.
func (s *PlanService) Active(ctx context.Context, userID string, now time.Time) (*PlanOverview, error) {
	profile, err := s.profiles.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	out, err := s.activeFor(ctx, profile, now)
	if err != nil {
		return nil, err
	}
	if out == nil {
		return nil, domain.ErrNoActivePlan
	}
	return out, nil
}

// activeFor returns nil without error when the user has no active plan.
func (s *PlanService) activeFor(ctx context.Context, profile *domain.Profile, now time.Time) (*PlanOverview, error) {
	plan, err := s.plans.GetActive(ctx, profile.ID)
	if isNoPlan(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return s.overview(plan, now.In(profile.Location())), nil
}

func (s *PlanService) overview(plan *domain.Plan, today time.Time) *PlanOverview {
	out := &PlanOverview{
		Plan:       plan,
		WeekNumber: plan.WeekNumber(today),
	}
	if out.WeekNumber == 0 || out.WeekNumber > plan.TotalWeeks {
		return out
	}

	phase, ok := plan.PhaseFor(out.WeekNumber)
	if !ok {
		s.logger.Warn("plan phases do not cover current week",
			zap.String("plan_id", plan.ID),
			zap.Int("week", out.WeekNumber),
		)
		return out
	}
	out.Phase = &phase
	return out
}

func isNoPlan(err error) bool {
	return errors.Is(err, domain.ErrNoActivePlan) || errors.Is(err, domain.ErrPlanNotFound)
}
