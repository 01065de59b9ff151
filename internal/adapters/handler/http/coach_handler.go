package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/summit/internal/core/services"
)

type CoachHandler struct {
	svc *services.CoachService
}

func NewCoachHandler(svc *services.CoachService) *CoachHandler {
	return &CoachHandler{svc: svc}
}

type chatRequest struct {
	Message string `json:"message" binding:"required"`
}

func (h *CoachHandler) RegisterRoutes(router *gin.RouterGroup) {
	coach := router.Group("/coach")
	{
		coach.POST("/chat", h.Chat)
		coach.GET("/messages", h.Messages)
		coach.POST("/adapt", h.Adapt)
	}
}

// Chat godoc
// @Summary  Send a message to the coach
// @Tags     coach
// @Accept   json
// @Produce  json
// @Success  200 {object} services.ChatExchange
// @Failure  503 {object} map[string]string
// @Security BearerAuth
// @Router   /coach/chat [post]
func (h *CoachHandler) Chat(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req chatRequest
	if !bindJSON(c, &req) {
		return
	}

	exchange, err := h.svc.Chat(c.Request.Context(), userID, req.Message, time.Now())
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, exchange)
}

func (h *CoachHandler) Messages(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a number"})
			return
		}
		limit = n
	}

	msgs, err := h.svc.Messages(c.Request.Context(), userID, limit)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, msgs)
}

// Adapt godoc
// @Summary  Let the coach reshape the next seven days
// @Tags     coach
// @Accept   json
// @Produce  json
// @Success  200 {object} services.AdaptResult
// @Failure  502 {object} map[string]string
// @Security BearerAuth
// @Router   /coach/adapt [post]
func (h *CoachHandler) Adapt(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req chatRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.svc.Adapt(c.Request.Context(), userID, req.Message, time.Now())
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
