package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/summit/internal/core/services"
)

type DashboardHandler struct {
	svc *services.DashboardService
}

func NewDashboardHandler(svc *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

func (h *DashboardHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/dashboard", h.Get)
}

// Get godoc
// @Summary  Home screen for today in the user's timezone
// @Tags     dashboard
// @Produce  json
// @Success  200 {object} services.Dashboard
// @Failure  404 {object} map[string]string
// @Security BearerAuth
// @Router   /dashboard [get]
func (h *DashboardHandler) Get(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	dashboard, err := h.svc.Get(c.Request.Context(), userID, time.Now())
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dashboard)
}
