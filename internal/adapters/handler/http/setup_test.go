package http_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/comitanigiacomo/summit/internal/adapters/billing"
	adapterHTTP "github.com/comitanigiacomo/summit/internal/adapters/handler/http"
	"github.com/comitanigiacomo/summit/internal/adapters/repository"
	"github.com/comitanigiacomo/summit/internal/core/domain"
	"github.com/comitanigiacomo/summit/internal/core/services"
)

const webhookSecret = "whsec_handler_tests"

type stubModel struct {
	mu    sync.Mutex
	reply string
	err   error
	calls int
}

func (m *stubModel) Complete(ctx context.Context, system string, history []*domain.ChatMessage) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	return m.reply, m.err
}

type stubQueue struct {
	reject bool
	ids    []string
}

func (q *stubQueue) Enqueue(planID string) bool {
	if q.reject {
		return false
	}
	q.ids = append(q.ids, planID)
	return true
}

type testEnv struct {
	router   *gin.Engine
	tokens   *services.TokenService
	profiles *repository.InMemoryProfileRepository
	plans    *repository.InMemoryPlanRepository
	workouts *repository.InMemoryWorkoutRepository
	metrics  *repository.InMemoryMetricsRepository
	chats    *repository.InMemoryChatRepository
	drafts   *repository.InMemoryDraftStore
	model    *stubModel
	queue    *stubQueue
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return newTestEnvWith(t, nil)
}

// newTestEnvWith lets a test adjust the router dependencies, e.g. to plug in redis.
func newTestEnvWith(t *testing.T, adjust func(*adapterHTTP.RouterDependencies)) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()

	env := &testEnv{
		tokens:   services.NewTokenService("handler-secret", "", "authenticated", time.Hour),
		profiles: repository.NewInMemoryProfileRepository(),
		workouts: repository.NewInMemoryWorkoutRepository(),
		metrics:  repository.NewInMemoryMetricsRepository(),
		chats:    repository.NewInMemoryChatRepository(),
		drafts:   repository.NewInMemoryDraftStore(),
		model:    &stubModel{reply: "Nice work, keep going."},
		queue:    &stubQueue{},
	}
	env.plans = repository.NewInMemoryPlanRepository(env.workouts)

	planSvc := services.NewPlanService(env.plans, env.profiles, env.queue, logger)
	dashboardSvc := services.NewDashboardService(env.profiles, env.workouts, env.metrics, planSvc,
		domain.NewMotivationSelector(func(int) int { return 0 }), logger)

	deps := adapterHTTP.RouterDependencies{
		ProfileHandler:    adapterHTTP.NewProfileHandler(services.NewProfileService(env.profiles)),
		OnboardingHandler: adapterHTTP.NewOnboardingHandler(services.NewOnboardingService(env.profiles, env.drafts, planSvc, logger)),
		PlanHandler:       adapterHTTP.NewPlanHandler(planSvc),
		WorkoutHandler:    adapterHTTP.NewWorkoutHandler(services.NewWorkoutService(env.workouts)),
		MetricsHandler:    adapterHTTP.NewMetricsHandler(services.NewMetricsService(env.metrics)),
		DashboardHandler:  adapterHTTP.NewDashboardHandler(dashboardSvc),
		CoachHandler:      adapterHTTP.NewCoachHandler(services.NewCoachService(env.chats, env.workouts, env.model, dashboardSvc, logger)),
		StatsHandler:      adapterHTTP.NewStatsHandler(services.NewStatsService(env.workouts)),
		BillingHandler: adapterHTTP.NewBillingHandler(services.NewBillingService(
			billing.NewStripeVerifier(webhookSecret),
			repository.NewInMemoryBillingEventRepository(),
			env.profiles,
			logger,
		)),
		Tokens:    env.tokens,
		Logger:    logger,
		StartTime: time.Now(),
	}
	if adjust != nil {
		adjust(&deps)
	}
	env.router = adapterHTTP.NewRouter(deps)

	return env
}

// do sends an authenticated request as userID; an empty userID sends none.
func (e *testEnv) do(t *testing.T, method, path, body, userID string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, "/api/v1"+path, bytes.NewBufferString(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if userID != "" {
		token, err := e.tokens.GenerateToken(userID, userID+"@summit.test")
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// onboard stores a UTC profile for userID, optionally stamped as onboarded.
func (e *testEnv) onboard(t *testing.T, userID string, done bool) *domain.Profile {
	t.Helper()
	p, err := domain.NewProfile(userID, domain.ProfileFields{
		Goal:            domain.GoalEndurance,
		ExperienceLevel: domain.ExperienceIntermediate,
		DaysPerWeek:     4,
		Timezone:        "UTC",
	})
	require.NoError(t, err)
	if done {
		p.MarkOnboarded()
	}
	require.NoError(t, e.profiles.Upsert(context.Background(), p))
	return p
}

func (e *testEnv) schedule(t *testing.T, userID string, date time.Time, wType string, completed bool) *domain.Workout {
	t.Helper()
	w, err := domain.NewWorkout(userID, nil, date, wType, strings.ToUpper(wType[:1])+wType[1:], "", 30)
	require.NoError(t, err)
	if completed {
		require.NoError(t, w.Complete("", date))
	}
	require.NoError(t, e.workouts.Create(context.Background(), w))
	return w
}

func today() time.Time {
	return domain.TruncateDay(time.Now().UTC())
}

func assertStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	require.Equalf(t, want, w.Code, "body: %s", w.Body.String())
}

func record(e *testEnv, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}
