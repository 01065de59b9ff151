package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/comitanigiacomo/summit/internal/core/domain"
	"github.com/comitanigiacomo/summit/internal/core/services"
)

type planFixture struct {
	plans    *MockPlanRepo
	profiles *MockProfileRepo
	queue    *MockPlanQueue
	svc      *services.PlanService
}

func newPlanFixture() *planFixture {
	f := &planFixture{
		plans:    new(MockPlanRepo),
		profiles: new(MockProfileRepo),
		queue:    new(MockPlanQueue),
	}
	f.svc = services.NewPlanService(f.plans, f.profiles, f.queue, zap.NewNop())
	return f
}

func threePhasePlan(t *testing.T, userID string, start time.Time) *domain.Plan {
	plan, err := domain.NewPlan(userID, "Half marathon", domain.GoalRace, start, 8, []domain.Phase{
		{Name: "Base", WeekStart: 1, WeekEnd: 3},
		{Name: "Build", WeekStart: 4, WeekEnd: 6},
		{Name: "Taper", WeekStart: 7, WeekEnd: 8},
	})
	require.NoError(t, err)
	return plan
}

func TestPlanService_RequestGeneration(t *testing.T) {
	ctx := context.Background()
	// Wednesday
	now := time.Date(2024, 1, 10, 15, 0, 0, 0, time.UTC)

	t.Run("Success: queues a plan starting next Monday", func(t *testing.T) {
		f := newPlanFixture()
		profile := testProfile("u1")
		profile.MarkOnboarded()

		f.profiles.On("GetByID", ctx, "u1").Return(profile, nil)
		f.plans.On("ListByUserID", ctx, "u1").Return([]*domain.Plan{}, nil)
		f.plans.On("Create", ctx, mock.AnythingOfType("*domain.Plan")).Return(nil)
		f.queue.On("Enqueue", mock.AnythingOfType("string")).Return(true)

		plan, err := f.svc.RequestGeneration(ctx, "u1", now)

		require.NoError(t, err)
		assert.Equal(t, domain.PlanStatusGenerating, plan.Status)
		assert.Equal(t, "2024-01-15", domain.FormatDate(plan.StartDate))
		assert.Equal(t, domain.GoalEndurance, plan.Goal)
		f.queue.AssertCalled(t, "Enqueue", plan.ID)
	})

	t.Run("Success: uses the user's timezone for the start date", func(t *testing.T) {
		f := newPlanFixture()
		profile := testProfile("u1")
		profile.Timezone = "Pacific/Auckland"
		profile.MarkOnboarded()

		f.profiles.On("GetByID", ctx, "u1").Return(profile, nil)
		f.plans.On("ListByUserID", ctx, "u1").Return([]*domain.Plan{}, nil)
		f.plans.On("Create", ctx, mock.Anything).Return(nil)
		f.queue.On("Enqueue", mock.Anything).Return(true)

		// Sunday 14:00 UTC is already Monday in Auckland.
		plan, err := f.svc.RequestGeneration(ctx, "u1", time.Date(2024, 1, 14, 14, 0, 0, 0, time.UTC))

		require.NoError(t, err)
		assert.Equal(t, "2024-01-15", domain.FormatDate(plan.StartDate))
	})

	t.Run("Fail: onboarding not complete", func(t *testing.T) {
		f := newPlanFixture()
		f.profiles.On("GetByID", ctx, "u1").Return(testProfile("u1"), nil)

		_, err := f.svc.RequestGeneration(ctx, "u1", now)

		assert.ErrorIs(t, err, domain.ErrOnboardingIncomplete)
		f.plans.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Success: a generation in flight is returned instead of a new one", func(t *testing.T) {
		f := newPlanFixture()
		profile := testProfile("u1")
		profile.MarkOnboarded()
		pending := domain.NewPendingPlan("u1", domain.GoalEndurance, day(2024, 1, 15))
		failed := domain.NewPendingPlan("u1", domain.GoalEndurance, day(2024, 1, 8))
		failed.Fail()

		f.profiles.On("GetByID", ctx, "u1").Return(profile, nil)
		f.plans.On("ListByUserID", ctx, "u1").Return([]*domain.Plan{failed, pending}, nil)

		plan, err := f.svc.RequestGeneration(ctx, "u1", now)

		require.NoError(t, err)
		assert.Equal(t, pending.ID, plan.ID)
		f.plans.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		f.queue.AssertNotCalled(t, "Enqueue", mock.Anything)
	})

	t.Run("Fail: listing error is returned", func(t *testing.T) {
		f := newPlanFixture()
		profile := testProfile("u1")
		profile.MarkOnboarded()

		f.profiles.On("GetByID", ctx, "u1").Return(profile, nil)
		f.plans.On("ListByUserID", ctx, "u1").Return(nil, errors.New("db down"))

		_, err := f.svc.RequestGeneration(ctx, "u1", now)

		assert.EqualError(t, err, "db down")
		f.plans.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Fail: full queue marks the plan failed", func(t *testing.T) {
		f := newPlanFixture()
		profile := testProfile("u1")
		profile.MarkOnboarded()

		f.profiles.On("GetByID", ctx, "u1").Return(profile, nil)
		f.plans.On("ListByUserID", ctx, "u1").Return([]*domain.Plan{}, nil)
		f.plans.On("Create", ctx, mock.Anything).Return(nil)
		f.queue.On("Enqueue", mock.Anything).Return(false)
		f.plans.On("Update", ctx, mock.MatchedBy(func(p *domain.Plan) bool {
			return p.Status == domain.PlanStatusFailed
		})).Return(nil)

		_, err := f.svc.RequestGeneration(ctx, "u1", now)

		assert.ErrorIs(t, err, domain.ErrPlanGenerationFailed)
		f.plans.AssertExpectations(t)
	})
}

func TestPlanService_Active(t *testing.T) {
	ctx := context.Background()
	start := day(2024, 1, 1)

	t.Run("Success: week and phase", func(t *testing.T) {
		f := newPlanFixture()
		plan := threePhasePlan(t, "u1", start)

		f.profiles.On("GetByID", ctx, "u1").Return(testProfile("u1"), nil)
		f.plans.On("GetActive", ctx, "u1").Return(plan, nil)

		out, err := f.svc.Active(ctx, "u1", time.Date(2024, 1, 24, 9, 0, 0, 0, time.UTC))

		require.NoError(t, err)
		assert.Equal(t, 4, out.WeekNumber)
		require.NotNil(t, out.Phase)
		assert.Equal(t, "Build", out.Phase.Name)
	})

	t.Run("Success: before start has week zero and no phase", func(t *testing.T) {
		f := newPlanFixture()
		plan := threePhasePlan(t, "u1", start)

		f.profiles.On("GetByID", ctx, "u1").Return(testProfile("u1"), nil)
		f.plans.On("GetActive", ctx, "u1").Return(plan, nil)

		out, err := f.svc.Active(ctx, "u1", day(2023, 12, 30))

		require.NoError(t, err)
		assert.Equal(t, 0, out.WeekNumber)
		assert.Nil(t, out.Phase)
	})

	t.Run("Success: phase gap reports no phase", func(t *testing.T) {
		f := newPlanFixture()
		plan := threePhasePlan(t, "u1", start)
		plan.Phases = plan.Phases[:1]

		f.profiles.On("GetByID", ctx, "u1").Return(testProfile("u1"), nil)
		f.plans.On("GetActive", ctx, "u1").Return(plan, nil)

		out, err := f.svc.Active(ctx, "u1", day(2024, 1, 24))

		require.NoError(t, err)
		assert.Equal(t, 4, out.WeekNumber)
		assert.Nil(t, out.Phase)
	})

	t.Run("Fail: no active plan", func(t *testing.T) {
		f := newPlanFixture()
		f.profiles.On("GetByID", ctx, "u1").Return(testProfile("u1"), nil)
		f.plans.On("GetActive", ctx, "u1").Return(nil, domain.ErrNoActivePlan)

		_, err := f.svc.Active(ctx, "u1", day(2024, 1, 24))
		assert.ErrorIs(t, err, domain.ErrNoActivePlan)
	})
}

func TestPlanService_CreateAndGet(t *testing.T) {
	ctx := context.Background()

	t.Run("Success: manual plan is activated", func(t *testing.T) {
		f := newPlanFixture()
		f.plans.On("ActivateWithWorkouts", ctx, mock.AnythingOfType("*domain.Plan"), []*domain.Workout(nil)).Return(nil)

		plan, err := f.svc.Create(ctx, services.CreatePlanInput{
			UserID:     "u1",
			Name:       "Strength block",
			Goal:       domain.GoalStrength,
			StartDate:  day(2024, 2, 5),
			TotalWeeks: 4,
			Phases:     []domain.Phase{{Name: "Volume", WeekStart: 1, WeekEnd: 4}},
		})

		require.NoError(t, err)
		assert.Equal(t, domain.PlanStatusActive, plan.Status)
		f.profiles.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("Fail: phases must cover the plan", func(t *testing.T) {
		f := newPlanFixture()

		_, err := f.svc.Create(ctx, services.CreatePlanInput{
			UserID:     "u1",
			Name:       "Broken",
			Goal:       domain.GoalStrength,
			StartDate:  day(2024, 2, 5),
			TotalWeeks: 4,
			Phases:     []domain.Phase{{Name: "Volume", WeekStart: 1, WeekEnd: 3}},
		})

		assert.ErrorIs(t, err, domain.ErrInvalidArgument)
	})

	t.Run("Fail: other user's plan is not found", func(t *testing.T) {
		f := newPlanFixture()
		plan := threePhasePlan(t, "owner", day(2024, 1, 1))
		f.plans.On("GetByID", ctx, plan.ID).Return(plan, nil)

		_, err := f.svc.Get(ctx, "intruder", plan.ID)
		assert.ErrorIs(t, err, domain.ErrPlanNotFound)

		got, err := f.svc.Get(ctx, "owner", plan.ID)
		require.NoError(t, err)
		assert.Equal(t, plan.ID, got.ID)
	})
}
