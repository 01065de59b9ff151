package domain

import (
	"context"
	"time"
)

type ProfileRepository interface {
	// Upsert creates the profile or overwrites its editable fields.
	Upsert(ctx context.Context, profile *Profile) error

	GetByID(ctx context.Context, id string) (*Profile, error)

	// GetByStripeCustomerID resolves the owner of a billing customer.
	GetByStripeCustomerID(ctx context.Context, customerID string) (*Profile, error)

	UpdateSubscription(ctx context.Context, id, status string, customerID *string) error
}

type PlanRepository interface {
	// Create persists a plan together with its phases.
	Create(ctx context.Context, plan *Plan) error

	GetByID(ctx context.Context, id string) (*Plan, error)

	// GetActive returns the user's single active plan, or ErrNoActivePlan.
	GetActive(ctx context.Context, userID string) (*Plan, error)

	ListByUserID(ctx context.Context, userID string) ([]*Plan, error)

	// ListGenerating returns every plan still awaiting the coach, oldest first.
	ListGenerating(ctx context.Context) ([]*Plan, error)

	// Update rewrites the plan row and replaces its phases.
	Update(ctx context.Context, plan *Plan) error

	// ActivateWithWorkouts archives the previous active plan, activates this
	// one and inserts its workouts in a single transaction.
	ActivateWithWorkouts(ctx context.Context, plan *Plan, workouts []*Workout) error
}

type WorkoutRepository interface {
	Create(ctx context.Context, workout *Workout) error

	GetByID(ctx context.Context, id string) (*Workout, error)

	// Update must enforce optimistic locking on Version.
	Update(ctx context.Context, workout *Workout) error

	// ListByDateRange returns workouts with from <= scheduled_date <= to,
	// ordered by date descending.
	ListByDateRange(ctx context.Context, userID string, from, to time.Time) ([]*Workout, error)

	ListByDate(ctx context.Context, userID string, date time.Time) ([]*Workout, error)
}

type MetricsRepository interface {
	// Upsert enforces one record per user per day.
	Upsert(ctx context.Context, metrics *DailyMetrics) error

	GetByDate(ctx context.Context, userID string, date time.Time) (*DailyMetrics, error)

	ListByDateRange(ctx context.Context, userID string, from, to time.Time) ([]*DailyMetrics, error)
}

type ChatRepository interface {
	Create(ctx context.Context, msg *ChatMessage) error

	// ListRecent returns the newest limit messages in chronological order.
	ListRecent(ctx context.Context, userID string, limit int) ([]*ChatMessage, error)
}

type BillingEventRepository interface {
	// MarkProcessed records the event id, returning ErrEventAlreadyHandled on replays.
	MarkProcessed(ctx context.Context, event *BillingEvent) error

	// Forget drops the record so the provider's retry is applied again.
	Forget(ctx context.Context, eventID string) error
}

// WebhookVerifier authenticates a raw provider payload and reduces it to a BillingEvent.
type WebhookVerifier interface {
	Verify(payload []byte, signature string) (*BillingEvent, error)
}

// LanguageModel is the hosted LLM used for coaching and plan authoring.
type LanguageModel interface {
	Complete(ctx context.Context, system string, history []*ChatMessage) (string, error)
}

type DraftStore interface {
	Load(ctx context.Context, userID string) (*OnboardingDraft, error)
	Save(ctx context.Context, draft *OnboardingDraft) error
	Clear(ctx context.Context, userID string) error
}
