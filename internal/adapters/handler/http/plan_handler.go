package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/summit/internal/core/domain"
	"github.com/comitanigiacomo/summit/internal/core/services"
)

type PlanHandler struct {
	svc *services.PlanService
}

func NewPlanHandler(svc *services.PlanService) *PlanHandler {
	return &PlanHandler{svc: svc}
}

type createPlanRequest struct {
	Name       string         `json:"name" binding:"required"`
	Goal       string         `json:"goal"`
	StartDate  string         `json:"start_date" binding:"required"`
	TotalWeeks int            `json:"total_weeks" binding:"required"`
	Phases     []domain.Phase `json:"phases" binding:"required"`
}

func (h *PlanHandler) RegisterRoutes(router *gin.RouterGroup) {
	plans := router.Group("/plans")
	{
		plans.GET("", h.List)
		plans.POST("", h.Create)
		plans.POST("/generate", h.Generate)
		plans.GET("/active", h.Active)
		plans.GET("/:id", h.Get)
	}
}

// Generate godoc
// @Summary  Ask the coach to author a new plan
// @Description Returns the placeholder plan in "generating" status; poll GET /plans/{id}.
// @Tags     plans
// @Produce  json
// @Success  202 {object} domain.Plan
// @Failure  422 {object} map[string]string
// @Failure  503 {object} map[string]string
// @Security BearerAuth
// @Router   /plans/generate [post]
func (h *PlanHandler) Generate(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	plan, err := h.svc.RequestGeneration(c.Request.Context(), userID, time.Now())
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, plan)
}

func (h *PlanHandler) Create(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req createPlanRequest
	if !bindJSON(c, &req) {
		return
	}

	start, err := domain.ParseDate(req.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start_date format, expected YYYY-MM-DD"})
		return
	}

	plan, err := h.svc.Create(c.Request.Context(), services.CreatePlanInput{
		UserID:     userID,
		Name:       req.Name,
		Goal:       req.Goal,
		StartDate:  start,
		TotalWeeks: req.TotalWeeks,
		Phases:     req.Phases,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, plan)
}

func (h *PlanHandler) List(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	plans, err := h.svc.List(c.Request.Context(), userID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, plans)
}

// Active godoc
// @Summary  Active plan with today's week number and phase
// @Tags     plans
// @Produce  json
// @Success  200 {object} services.PlanOverview
// @Failure  404 {object} map[string]string
// @Security BearerAuth
// @Router   /plans/active [get]
func (h *PlanHandler) Active(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	overview, err := h.svc.Active(c.Request.Context(), userID, time.Now())
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, overview)
}

func (h *PlanHandler) Get(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	plan, err := h.svc.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, plan)
}
