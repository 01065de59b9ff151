package services

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/comitanigiacomo/summit/internal/core/domain"
)

type OnboardingService struct {
	profiles domain.ProfileRepository
	drafts   domain.DraftStore
	plans    *PlanService
	logger   *zap.Logger
}

func NewOnboardingService(profiles domain.ProfileRepository, drafts domain.DraftStore, plans *PlanService, logger *zap.Logger) *OnboardingService {
	return &OnboardingService{
		profiles: profiles,
		drafts:   drafts,
		plans:    plans,
		logger:   logger,
	}
}

func (s *OnboardingService) LoadDraft(ctx context.Context, userID string) (*domain.OnboardingDraft, error) {
	return s.drafts.Load(ctx, userID)
}

func (s *OnboardingService) SaveDraft(ctx context.Context, userID string, step int, data json.RawMessage) (*domain.OnboardingDraft, error) {
	draft, err := domain.NewOnboardingDraft(userID, step, data)
	if err != nil {
		return nil, err
	}
	if err := s.drafts.Save(ctx, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

func (s *OnboardingService) ClearDraft(ctx context.Context, userID string) error {
	return s.drafts.Clear(ctx, userID)
}

// Complete stamps the profile as onboarded and requests the first plan.
// Repeating it on an onboarded profile returns the plan already in flight, if any.
func (s *OnboardingService) Complete(ctx context.Context, userID string, now time.Time) (*domain.Plan, error) {
	profile, err := s.profiles.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if !profile.IsOnboarded() {
		profile.MarkOnboarded()
		if err := s.profiles.Upsert(ctx, profile); err != nil {
			return nil, err
		}
	}

	if err := s.drafts.Clear(ctx, userID); err != nil {
		s.logger.Warn("failed to clear onboarding draft", zap.String("user_id", userID), zap.Error(err))
	}

	return s.plans.RequestGeneration(ctx, userID, now)
}
