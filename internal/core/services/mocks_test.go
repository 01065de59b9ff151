package services_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/comitanigiacomo/summit/internal/core/domain"
)

func ptr[T any](v T) *T {
	return &v
}

type MockProfileRepo struct {
	mock.Mock
}

func (m *MockProfileRepo) Upsert(ctx context.Context, profile *domain.Profile) error {
	return m.Called(ctx, profile).Error(0)
}

func (m *MockProfileRepo) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

func (m *MockProfileRepo) GetByStripeCustomerID(ctx context.Context, customerID string) (*domain.Profile, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

func (m *MockProfileRepo) UpdateSubscription(ctx context.Context, id, status string, customerID *string) error {
	return m.Called(ctx, id, status, customerID).Error(0)
}

type MockPlanRepo struct {
	mock.Mock
}

func (m *MockPlanRepo) Create(ctx context.Context, plan *domain.Plan) error {
	return m.Called(ctx, plan).Error(0)
}

func (m *MockPlanRepo) GetByID(ctx context.Context, id string) (*domain.Plan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Plan), args.Error(1)
}

func (m *MockPlanRepo) GetActive(ctx context.Context, userID string) (*domain.Plan, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Plan), args.Error(1)
}

func (m *MockPlanRepo) ListByUserID(ctx context.Context, userID string) ([]*domain.Plan, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Plan), args.Error(1)
}

func (m *MockPlanRepo) ListGenerating(ctx context.Context) ([]*domain.Plan, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Plan), args.Error(1)
}

func (m *MockPlanRepo) Update(ctx context.Context, plan *domain.Plan) error {
	return m.Called(ctx, plan).Error(0)
}

func (m *MockPlanRepo) ActivateWithWorkouts(ctx context.Context, plan *domain.Plan, workouts []*domain.Workout) error {
	return m.Called(ctx, plan, workouts).Error(0)
}

type MockWorkoutRepo struct {
	mock.Mock
}

func (m *MockWorkoutRepo) Create(ctx context.Context, w *domain.Workout) error {
	return m.Called(ctx, w).Error(0)
}

func (m *MockWorkoutRepo) GetByID(ctx context.Context, id string) (*domain.Workout, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Workout), args.Error(1)
}

func (m *MockWorkoutRepo) Update(ctx context.Context, w *domain.Workout) error {
	return m.Called(ctx, w).Error(0)
}

func (m *MockWorkoutRepo) ListByDateRange(ctx context.Context, userID string, from, to time.Time) ([]*domain.Workout, error) {
	args := m.Called(ctx, userID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Workout), args.Error(1)
}

func (m *MockWorkoutRepo) ListByDate(ctx context.Context, userID string, date time.Time) ([]*domain.Workout, error) {
	args := m.Called(ctx, userID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Workout), args.Error(1)
}

type MockMetricsRepo struct {
	mock.Mock
}

func (m *MockMetricsRepo) Upsert(ctx context.Context, metrics *domain.DailyMetrics) error {
	return m.Called(ctx, metrics).Error(0)
}

func (m *MockMetricsRepo) GetByDate(ctx context.Context, userID string, date time.Time) (*domain.DailyMetrics, error) {
	args := m.Called(ctx, userID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DailyMetrics), args.Error(1)
}

func (m *MockMetricsRepo) ListByDateRange(ctx context.Context, userID string, from, to time.Time) ([]*domain.DailyMetrics, error) {
	args := m.Called(ctx, userID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.DailyMetrics), args.Error(1)
}

type MockChatRepo struct {
	mock.Mock
}

func (m *MockChatRepo) Create(ctx context.Context, msg *domain.ChatMessage) error {
	return m.Called(ctx, msg).Error(0)
}

func (m *MockChatRepo) ListRecent(ctx context.Context, userID string, limit int) ([]*domain.ChatMessage, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.ChatMessage), args.Error(1)
}

type MockBillingEventRepo struct {
	mock.Mock
}

func (m *MockBillingEventRepo) MarkProcessed(ctx context.Context, event *domain.BillingEvent) error {
	return m.Called(ctx, event).Error(0)
}

func (m *MockBillingEventRepo) Forget(ctx context.Context, eventID string) error {
	return m.Called(ctx, eventID).Error(0)
}

type MockVerifier struct {
	mock.Mock
}

func (m *MockVerifier) Verify(payload []byte, signature string) (*domain.BillingEvent, error) {
	args := m.Called(payload, signature)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BillingEvent), args.Error(1)
}

type MockDraftStore struct {
	mock.Mock
}

func (m *MockDraftStore) Load(ctx context.Context, userID string) (*domain.OnboardingDraft, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OnboardingDraft), args.Error(1)
}

func (m *MockDraftStore) Save(ctx context.Context, draft *domain.OnboardingDraft) error {
	return m.Called(ctx, draft).Error(0)
}

func (m *MockDraftStore) Clear(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

type MockLanguageModel struct {
	mock.Mock
}

func (m *MockLanguageModel) Complete(ctx context.Context, system string, history []*domain.ChatMessage) (string, error) {
	args := m.Called(ctx, system, history)
	return args.String(0), args.Error(1)
}

type MockPlanQueue struct {
	mock.Mock
}

func (m *MockPlanQueue) Enqueue(planID string) bool {
	return m.Called(planID).Bool(0)
}

func testProfile(id string) *domain.Profile {
	p, err := domain.NewProfile(id, domain.ProfileFields{
		Email:           id + "@example.com",
		Goal:            domain.GoalEndurance,
		ExperienceLevel: domain.ExperienceIntermediate,
		DaysPerWeek:     4,
		Timezone:        "UTC",
	})
	if err != nil {
		panic(err)
	}
	return p
}

func testWorkout(userID string, date time.Time, wType string, completed bool) *domain.Workout {
	w, err := domain.NewWorkout(userID, nil, date, wType, "session", "", 30)
	if err != nil {
		panic(err)
	}
	if completed {
		_ = w.Complete("", date)
	}
	return w
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
