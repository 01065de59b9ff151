package domain

import (
	"errors"
	"net/mail"
	"strings"
	"time"
)

var (
	ErrProfileNotFound      = errors.New("profile not found")
	ErrProfileInvalidID     = errors.New("invalid user id")
	ErrInvalidEmail         = errors.New("invalid email format")
	ErrInvalidGoal          = errors.New("invalid goal")
	ErrInvalidExperience    = errors.New("invalid experience level (must be beginner, intermediate or advanced)")
	ErrInvalidDaysPerWeek   = errors.New("days per week must be between 1 and 7")
	ErrInvalidTimezone      = errors.New("invalid timezone")
	ErrDisplayNameTooLong   = errors.New("display name is too long (max 80 chars)")
	ErrOnboardingIncomplete = errors.New("onboarding is not complete")
)

const (
	GoalGeneralFitness = "general_fitness"
	GoalEndurance      = "endurance"
	GoalStrength       = "strength"
	GoalWeightLoss     = "weight_loss"
	GoalRace           = "race"

	ExperienceBeginner     = "beginner"
	ExperienceIntermediate = "intermediate"
	ExperienceAdvanced     = "advanced"

	SubscriptionNone     = "none"
	SubscriptionTrialing = "trialing"
	SubscriptionActive   = "active"
	SubscriptionPastDue  = "past_due"
	SubscriptionCanceled = "canceled"

	DefaultTimezone   = "UTC"
	MaxDisplayNameLen = 80
)

var goals = map[string]bool{
	GoalGeneralFitness: true,
	GoalEndurance:      true,
	GoalStrength:       true,
	GoalWeightLoss:     true,
	GoalRace:           true,
}

var experienceLevels = map[string]bool{
	ExperienceBeginner:     true,
	ExperienceIntermediate: true,
	ExperienceAdvanced:     true,
}

// Profile is the app-side record for a user of the hosted auth provider;
// ID is the provider's user id.
type Profile struct {
	ID                 string     `json:"id" db:"id"`
	Email              string     `json:"email" db:"email"`
	DisplayName        string     `json:"display_name" db:"display_name"`
	Goal               string     `json:"goal" db:"goal"`
	ExperienceLevel    string     `json:"experience_level" db:"experience_level"`
	DaysPerWeek        int        `json:"days_per_week" db:"days_per_week"`
	Equipment          []string   `json:"equipment" db:"-"`
	Timezone           string     `json:"timezone" db:"timezone"`
	SubscriptionStatus string     `json:"subscription_status" db:"subscription_status"`
	StripeCustomerID   *string    `json:"-" db:"stripe_customer_id"`
	OnboardedAt        *time.Time `json:"onboarded_at,omitempty" db:"onboarded_at"`
	CreatedAt          time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at" db:"updated_at"`
}

type ProfileFields struct {
	Email           string
	DisplayName     string
	Goal            string
	ExperienceLevel string
	DaysPerWeek     int
	Equipment       []string
	Timezone        string
}

func normalizeEquipment(items []string) []string {
	seen := make(map[string]bool)
	out := make([]string, 0, len(items))
	for _, it := range items {
		it = strings.ToLower(strings.TrimSpace(it))
		if it == "" || seen[it] {
			continue
		}
		seen[it] = true
		out = append(out, it)
	}
	return out
}

func validateProfile(f *ProfileFields) error {
	f.Email = strings.ToLower(strings.TrimSpace(f.Email))
	if f.Email != "" {
		if _, err := mail.ParseAddress(f.Email); err != nil {
			return ErrInvalidEmail
		}
	}
	f.DisplayName = strings.TrimSpace(f.DisplayName)
	if len(f.DisplayName) > MaxDisplayNameLen {
		return ErrDisplayNameTooLong
	}
	if !goals[f.Goal] {
		return ErrInvalidGoal
	}
	if !experienceLevels[f.ExperienceLevel] {
		return ErrInvalidExperience
	}
	if f.DaysPerWeek < 1 || f.DaysPerWeek > 7 {
		return ErrInvalidDaysPerWeek
	}
	if f.Timezone == "" {
		f.Timezone = DefaultTimezone
	}
	if _, err := time.LoadLocation(f.Timezone); err != nil {
		return ErrInvalidTimezone
	}
	f.Equipment = normalizeEquipment(f.Equipment)
	return nil
}

func NewProfile(id string, f ProfileFields) (*Profile, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrProfileInvalidID
	}
	if err := validateProfile(&f); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &Profile{
		ID:                 id,
		Email:              f.Email,
		DisplayName:        f.DisplayName,
		Goal:               f.Goal,
		ExperienceLevel:    f.ExperienceLevel,
		DaysPerWeek:        f.DaysPerWeek,
		Equipment:          f.Equipment,
		Timezone:           f.Timezone,
		SubscriptionStatus: SubscriptionNone,
		CreatedAt:          now,
		UpdatedAt:          now,
	}, nil
}

func (p *Profile) Update(f ProfileFields) error {
	if f.Email == "" {
		f.Email = p.Email
	}
	if err := validateProfile(&f); err != nil {
		return err
	}

	p.Email = f.Email
	p.DisplayName = f.DisplayName
	p.Goal = f.Goal
	p.ExperienceLevel = f.ExperienceLevel
	p.DaysPerWeek = f.DaysPerWeek
	p.Equipment = f.Equipment
	p.Timezone = f.Timezone
	p.UpdatedAt = time.Now().UTC()
	return nil
}

func (p *Profile) IsOnboarded() bool {
	return p.OnboardedAt != nil
}

func (p *Profile) MarkOnboarded() {
	if p.OnboardedAt != nil {
		return
	}
	now := time.Now().UTC()
	p.OnboardedAt = &now
	p.UpdatedAt = now
}

// Location falls back to UTC when the stored timezone no longer loads.
func (p *Profile) Location() *time.Location {
	loc, err := time.LoadLocation(p.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func (p *Profile) HasActiveSubscription() bool {
	return p.SubscriptionStatus == SubscriptionActive || p.SubscriptionStatus == SubscriptionTrialing
}
