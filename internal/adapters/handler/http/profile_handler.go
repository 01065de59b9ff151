package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/summit/internal/adapters/handler/http/middleware"
	"github.com/comitanigiacomo/summit/internal/core/services"
)

type ProfileHandler struct {
	svc *services.ProfileService
}

func NewProfileHandler(svc *services.ProfileService) *ProfileHandler {
	return &ProfileHandler{svc: svc}
}

type upsertProfileRequest struct {
	Email           string   `json:"email"`
	DisplayName     string   `json:"display_name"`
	Goal            string   `json:"goal" binding:"required"`
	ExperienceLevel string   `json:"experience_level" binding:"required"`
	DaysPerWeek     int      `json:"days_per_week" binding:"required"`
	Equipment       []string `json:"equipment"`
	Timezone        string   `json:"timezone"`
}

func (h *ProfileHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/profile", h.Get)
	router.PUT("/profile", h.Upsert)
}

// Get godoc
// @Summary  Current user's profile
// @Tags     profile
// @Produce  json
// @Success  200 {object} domain.Profile
// @Failure  404 {object} map[string]string
// @Security BearerAuth
// @Router   /profile [get]
func (h *ProfileHandler) Get(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	profile, err := h.svc.Get(c.Request.Context(), userID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// Upsert godoc
// @Summary  Create or edit the current user's profile
// @Tags     profile
// @Accept   json
// @Produce  json
// @Success  200 {object} domain.Profile
// @Failure  400 {object} map[string]string
// @Security BearerAuth
// @Router   /profile [put]
func (h *ProfileHandler) Upsert(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req upsertProfileRequest
	if !bindJSON(c, &req) {
		return
	}

	email := req.Email
	if email == "" {
		email = middleware.GetEmail(c)
	}

	profile, err := h.svc.Upsert(c.Request.Context(), services.UpsertProfileInput{
		UserID:          userID,
		Email:           email,
		DisplayName:     req.DisplayName,
		Goal:            req.Goal,
		ExperienceLevel: req.ExperienceLevel,
		DaysPerWeek:     req.DaysPerWeek,
		Equipment:       req.Equipment,
		Timezone:        req.Timezone,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}
