package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/summit/internal/core/domain"
	"github.com/comitanigiacomo/summit/internal/core/services"
)

type StatsHandler struct {
	svc *services.StatsService
}

func NewStatsHandler(svc *services.StatsService) *StatsHandler {
	return &StatsHandler{svc: svc}
}

func (h *StatsHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/stats", h.GetTrainingStats)
}

// GetTrainingStats godoc
// @Summary  Planned vs completed training over a date range
// @Description Defaults to the seven days ending today. Rest days are not counted.
// @Tags     stats
// @Produce  json
// @Param    start_date query string false "YYYY-MM-DD"
// @Param    end_date   query string false "YYYY-MM-DD"
// @Success  200 {object} domain.TrainingStats
// @Failure  400 {object} map[string]string
// @Security BearerAuth
// @Router   /stats [get]
func (h *StatsHandler) GetTrainingStats(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	endDate, ok := dateQuery(c, "end_date", domain.TruncateDay(time.Now().UTC()))
	if !ok {
		return
	}
	startDate, ok := dateQuery(c, "start_date", endDate.AddDate(0, 0, -6))
	if !ok {
		return
	}

	if startDate.After(endDate) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start_date cannot be after end_date"})
		return
	}

	stats, err := h.svc.GetTrainingStats(c.Request.Context(), domain.StatsInput{
		UserID:    userID,
		StartDate: startDate,
		EndDate:   endDate,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
