package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/summit/internal/core/services"
)

type MetricsHandler struct {
	svc *services.MetricsService
}

func NewMetricsHandler(svc *services.MetricsService) *MetricsHandler {
	return &MetricsHandler{svc: svc}
}

type upsertMetricsRequest struct {
	HRV           *float64 `json:"hrv"`
	SleepScore    *int     `json:"sleep_score"`
	RecoveryScore *int     `json:"recovery_score"`
	RestingHR     *int     `json:"resting_hr"`
	Source        string   `json:"source"`
}

func (h *MetricsHandler) RegisterRoutes(router *gin.RouterGroup) {
	metrics := router.Group("/metrics")
	{
		metrics.GET("", h.List)
		metrics.GET("/:date", h.Get)
		metrics.PUT("/:date", h.Upsert)
	}
}

// Upsert godoc
// @Summary  Record wearable readings for one day
// @Tags     metrics
// @Accept   json
// @Produce  json
// @Param    date path string true "YYYY-MM-DD"
// @Success  200 {object} domain.DailyMetrics
// @Failure  400 {object} map[string]string
// @Security BearerAuth
// @Router   /metrics/{date} [put]
func (h *MetricsHandler) Upsert(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	date, ok := dateParam(c, "date")
	if !ok {
		return
	}

	var req upsertMetricsRequest
	if !bindJSON(c, &req) {
		return
	}

	m, err := h.svc.Upsert(c.Request.Context(), services.UpsertMetricsInput{
		UserID:        userID,
		Date:          date,
		HRV:           req.HRV,
		SleepScore:    req.SleepScore,
		RecoveryScore: req.RecoveryScore,
		RestingHR:     req.RestingHR,
		Source:        req.Source,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, m)
}

func (h *MetricsHandler) Get(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	date, ok := dateParam(c, "date")
	if !ok {
		return
	}

	m, err := h.svc.Get(c.Request.Context(), userID, date)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, m)
}

// List defaults to the trailing 30 days.
func (h *MetricsHandler) List(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	to, ok := dateQuery(c, "to", time.Now().UTC())
	if !ok {
		return
	}
	from, ok := dateQuery(c, "from", to.AddDate(0, 0, -29))
	if !ok {
		return
	}

	list, err := h.svc.List(c.Request.Context(), userID, from, to)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, list)
}
