package services

import (
	"context"
	"errors"

	"github.com/comitanigiacomo/summit/internal/core/domain"
)

type ProfileService struct {
	repo domain.ProfileRepository
}

func NewProfileService(repo domain.ProfileRepository) *ProfileService {
	return &ProfileService{
		repo: repo,
	}
}

type UpsertProfileInput struct {
	UserID          string
	Email           string
	DisplayName     string
	Goal            string
	ExperienceLevel string
	DaysPerWeek     int
	Equipment       []string
	Timezone        string
}

func (in UpsertProfileInput) fields() domain.ProfileFields {
	return domain.ProfileFields{
		Email:           in.Email,
		DisplayName:     in.DisplayName,
		Goal:            in.Goal,
		ExperienceLevel: in.ExperienceLevel,
		DaysPerWeek:     in.DaysPerWeek,
		Equipment:       in.Equipment,
		Timezone:        in.Timezone,
	}
}

// Upsert creates the caller's profile on first use and edits it afterwards.
// Subscription state and onboarding stamps are never touched here.
func (s *ProfileService) Upsert(ctx context.Context, input UpsertProfileInput) (*domain.Profile, error) {
	profile, err := s.repo.GetByID(ctx, input.UserID)
	switch {
	case errors.Is(err, domain.ErrProfileNotFound):
		profile, err = domain.NewProfile(input.UserID, input.fields())
		if err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	default:
		if err := profile.Update(input.fields()); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Upsert(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *ProfileService) Get(ctx context.Context, userID string) (*domain.Profile, error) {
	if userID == "" {
		return nil, domain.ErrProfileInvalidID
	}
	return s.repo.GetByID(ctx, userID)
}
