package domain

import (
	"encoding/json"
	"errors"
	"time"
)

var (
	ErrDraftNotFound = errors.New("onboarding draft not found")
	ErrDraftTooLarge = errors.New("onboarding draft is too large (max 16KB)")
)

const MaxDraftBytes = 16 * 1024

// OnboardingDraft is the partially filled onboarding form, kept server side
// between steps. It is loaded at session start, written through on every
// change and cleared on logout or completion.
type OnboardingDraft struct {
	UserID    string          `json:"user_id"`
	Step      int             `json:"step"`
	Data      json.RawMessage `json:"data"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func NewOnboardingDraft(userID string, step int, data json.RawMessage) (*OnboardingDraft, error) {
	if userID == "" {
		return nil, ErrProfileInvalidID
	}
	if step < 0 {
		return nil, ErrInvalidArgument
	}
	if len(data) > MaxDraftBytes {
		return nil, ErrDraftTooLarge
	}
	if len(data) == 0 {
		data = json.RawMessage("{}")
	}
	if !json.Valid(data) {
		return nil, ErrInvalidArgument
	}

	return &OnboardingDraft{
		UserID:    userID,
		Step:      step,
		Data:      data,
		UpdatedAt: time.Now().UTC(),
	}, nil
}
