package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/summit/internal/core/services"
)

type OnboardingHandler struct {
	svc *services.OnboardingService
}

func NewOnboardingHandler(svc *services.OnboardingService) *OnboardingHandler {
	return &OnboardingHandler{svc: svc}
}

type saveDraftRequest struct {
	Step int             `json:"step"`
	Data json.RawMessage `json:"data"`
}

func (h *OnboardingHandler) RegisterRoutes(router *gin.RouterGroup) {
	onboarding := router.Group("/onboarding")
	{
		onboarding.GET("/draft", h.LoadDraft)
		onboarding.PUT("/draft", h.SaveDraft)
		onboarding.DELETE("/draft", h.ClearDraft)
		onboarding.POST("/complete", h.Complete)
	}
}

// LoadDraft returns the saved onboarding form so a new session can resume it.
func (h *OnboardingHandler) LoadDraft(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	draft, err := h.svc.LoadDraft(c.Request.Context(), userID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, draft)
}

func (h *OnboardingHandler) SaveDraft(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req saveDraftRequest
	if !bindJSON(c, &req) {
		return
	}

	draft, err := h.svc.SaveDraft(c.Request.Context(), userID, req.Step, req.Data)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, draft)
}

func (h *OnboardingHandler) ClearDraft(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	if err := h.svc.ClearDraft(c.Request.Context(), userID); err != nil {
		handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Complete godoc
// @Summary  Finish onboarding and queue the first plan
// @Tags     onboarding
// @Produce  json
// @Success  202 {object} domain.Plan
// @Failure  422 {object} map[string]string
// @Security BearerAuth
// @Router   /onboarding/complete [post]
func (h *OnboardingHandler) Complete(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	plan, err := h.svc.Complete(c.Request.Context(), userID, time.Now())
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, plan)
}
