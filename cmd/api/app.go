package main

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/comitanigiacomo/summit/internal/adapters/cache"
	adapterHTTP "github.com/comitanigiacomo/summit/internal/adapters/handler/http"
	"github.com/comitanigiacomo/summit/internal/adapters/repository"
	"github.com/comitanigiacomo/summit/internal/config"
	"github.com/comitanigiacomo/summit/internal/core/domain"
	"github.com/comitanigiacomo/summit/internal/core/services"
	"github.com/comitanigiacomo/summit/internal/core/workers"
)

// devTokenTTL only applies to tokens minted locally; production tokens come
// from the identity provider.
const devTokenTTL = time.Hour

type stores struct {
	profiles domain.ProfileRepository
	plans    domain.PlanRepository
	workouts domain.WorkoutRepository
	metrics  domain.MetricsRepository
	chats    domain.ChatRepository
	billing  domain.BillingEventRepository
	drafts   domain.DraftStore
}

// postgresStores wires the SQL repositories. Without redis the active plan
// is read uncached and onboarding drafts live in process memory.
func postgresStores(db *sqlx.DB, rdb *redis.Client, draftTTL time.Duration, logger *zap.Logger) stores {
	s := stores{
		profiles: repository.NewPostgresProfileRepository(db),
		plans:    repository.NewPostgresPlanRepository(db),
		workouts: repository.NewPostgresWorkoutRepository(db),
		metrics:  repository.NewPostgresMetricsRepository(db),
		chats:    repository.NewPostgresChatRepository(db),
		billing:  repository.NewPostgresBillingEventRepository(db),
		drafts:   repository.NewInMemoryDraftStore(),
	}
	if rdb != nil {
		s.plans = repository.NewCachedPlanRepository(s.plans, rdb, logger)
		s.drafts = cache.NewRedisDraftStore(rdb, draftTTL)
	}
	return s
}

type appDeps struct {
	cfg      *config.Config
	stores   stores
	model    domain.LanguageModel
	verifier domain.WebhookVerifier
	db       *sqlx.DB
	redis    *redis.Client
	logger   *zap.Logger
	started  time.Time
}

// newApp starts the plan worker on ctx and returns the API router.
func newApp(ctx context.Context, d appDeps) *gin.Engine {
	s := d.stores

	worker := workers.NewPlanWorker(s.plans, s.profiles, d.model, d.logger, d.cfg.Worker.QueueSize, workers.DefaultJobTimeout)
	worker.Start(ctx)

	tokens := services.NewTokenService(d.cfg.Auth.JWTSecret, d.cfg.Auth.Issuer, d.cfg.Auth.Audience, devTokenTTL)

	planSvc := services.NewPlanService(s.plans, s.profiles, worker, d.logger)
	dashboardSvc := services.NewDashboardService(s.profiles, s.workouts, s.metrics, planSvc, domain.NewMotivationSelector(nil), d.logger)

	return adapterHTTP.NewRouter(adapterHTTP.RouterDependencies{
		ProfileHandler:    adapterHTTP.NewProfileHandler(services.NewProfileService(s.profiles)),
		OnboardingHandler: adapterHTTP.NewOnboardingHandler(services.NewOnboardingService(s.profiles, s.drafts, planSvc, d.logger)),
		PlanHandler:       adapterHTTP.NewPlanHandler(planSvc),
		WorkoutHandler:    adapterHTTP.NewWorkoutHandler(services.NewWorkoutService(s.workouts)),
		MetricsHandler:    adapterHTTP.NewMetricsHandler(services.NewMetricsService(s.metrics)),
		DashboardHandler:  adapterHTTP.NewDashboardHandler(dashboardSvc),
		CoachHandler:      adapterHTTP.NewCoachHandler(services.NewCoachService(s.chats, s.workouts, d.model, dashboardSvc, d.logger)),
		StatsHandler:      adapterHTTP.NewStatsHandler(services.NewStatsService(s.workouts)),
		BillingHandler:    adapterHTTP.NewBillingHandler(services.NewBillingService(d.verifier, s.billing, s.profiles, d.logger)),
		Tokens:            tokens,
		DB:                d.db,
		Redis:             d.redis,
		Logger:            d.logger,
		RateLimit:         d.cfg.RateLimit.Requests,
		RateLimitWindow:   d.cfg.RateLimit.Window,
		StartTime:         d.started,
	})
}
