package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/comitanigiacomo/summit/docs"
	"github.com/comitanigiacomo/summit/internal/adapters/handler/http/middleware"
)

type RouterDependencies struct {
	ProfileHandler    *ProfileHandler
	OnboardingHandler *OnboardingHandler
	PlanHandler       *PlanHandler
	WorkoutHandler    *WorkoutHandler
	MetricsHandler    *MetricsHandler
	DashboardHandler  *DashboardHandler
	CoachHandler      *CoachHandler
	StatsHandler      *StatsHandler
	BillingHandler    *BillingHandler

	Tokens middleware.TokenValidator
	DB     *sqlx.DB
	Redis  *redis.Client
	Logger *zap.Logger

	RateLimit       int
	RateLimitWindow time.Duration
	StartTime       time.Time
}

func NewRouter(deps RouterDependencies) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger(deps.Logger))

	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	router.GET("/health", healthHandler(deps))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	apiV1 := router.Group("/api/v1")
	if deps.Redis != nil && deps.RateLimit > 0 {
		apiV1.Use(middleware.RateLimiterMiddleware(deps.Redis, deps.RateLimit, deps.RateLimitWindow, deps.Logger))
	}

	if deps.BillingHandler != nil {
		deps.BillingHandler.RegisterRoutes(apiV1)
	}

	protected := apiV1.Group("")
	protected.Use(middleware.AuthMiddleware(deps.Tokens))
	{
		deps.ProfileHandler.RegisterRoutes(protected)
		deps.OnboardingHandler.RegisterRoutes(protected)
		deps.PlanHandler.RegisterRoutes(protected)
		deps.WorkoutHandler.RegisterRoutes(protected)
		deps.MetricsHandler.RegisterRoutes(protected)
		deps.DashboardHandler.RegisterRoutes(protected)
		deps.CoachHandler.RegisterRoutes(protected)
		deps.StatsHandler.RegisterRoutes(protected)
	}

	return router
}

func healthHandler(deps RouterDependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		dbStatus := "connected"
		if deps.DB == nil || deps.DB.PingContext(ctx) != nil {
			dbStatus = "unreachable"
		}

		redisStatus := "connected"
		if deps.Redis == nil || deps.Redis.Ping(ctx).Err() != nil {
			redisStatus = "unreachable"
		}

		status, code := "ok", http.StatusOK
		if dbStatus == "unreachable" || redisStatus == "unreachable" {
			status, code = "degraded", http.StatusServiceUnavailable
		}

		c.JSON(code, gin.H{
			"status":   status,
			"database": dbStatus,
			"redis":    redisStatus,
			"uptime":   time.Since(deps.StartTime).String(),
		})
	}
}
