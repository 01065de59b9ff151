package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/summit/internal/core/domain"
	"github.com/comitanigiacomo/summit/internal/core/services"
)

type WorkoutHandler struct {
	svc *services.WorkoutService
}

func NewWorkoutHandler(svc *services.WorkoutService) *WorkoutHandler {
	return &WorkoutHandler{svc: svc}
}

type createWorkoutRequest struct {
	PlanID          *string `json:"plan_id"`
	ScheduledDate   string  `json:"scheduled_date" binding:"required"`
	WorkoutType     string  `json:"workout_type" binding:"required"`
	Title           string  `json:"title"`
	Description     string  `json:"description"`
	DurationMinutes int     `json:"duration_minutes"`
}

type updateWorkoutRequest struct {
	WorkoutType     string `json:"workout_type" binding:"required"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	DurationMinutes int    `json:"duration_minutes"`
	Version         int    `json:"version" binding:"required"`
}

type completeWorkoutRequest struct {
	Completed *bool      `json:"completed"`
	Notes     string     `json:"notes"`
	At        *time.Time `json:"completed_at"`
}

type removeWorkoutRequest struct {
	Reason string `json:"reason"`
}

func (h *WorkoutHandler) RegisterRoutes(router *gin.RouterGroup) {
	workouts := router.Group("/workouts")
	{
		workouts.GET("", h.List)
		workouts.GET("/week", h.Week)
		workouts.POST("", h.Create)
		workouts.GET("/:id", h.Get)
		workouts.PUT("/:id", h.Update)
		workouts.POST("/:id/complete", h.Complete)
		workouts.DELETE("/:id", h.Remove)
	}
}

// List godoc
// @Summary  Workouts between two dates, newest first
// @Description Without from/to the current Monday to Sunday week is returned.
// @Tags     workouts
// @Produce  json
// @Param    from query string false "YYYY-MM-DD"
// @Param    to   query string false "YYYY-MM-DD"
// @Success  200 {array} domain.Workout
// @Failure  400 {object} map[string]string
// @Security BearerAuth
// @Router   /workouts [get]
func (h *WorkoutHandler) List(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	today := time.Now().UTC()
	from, ok := dateQuery(c, "from", domain.WeekStart(today, time.Monday))
	if !ok {
		return
	}
	to, ok := dateQuery(c, "to", domain.WeekEnd(today))
	if !ok {
		return
	}

	workouts, err := h.svc.List(c.Request.Context(), userID, from, to)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, workouts)
}

func (h *WorkoutHandler) Week(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	date, ok := dateQuery(c, "date", time.Now().UTC())
	if !ok {
		return
	}

	week, err := h.svc.Week(c.Request.Context(), userID, date)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, week)
}

func (h *WorkoutHandler) Get(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	w, err := h.svc.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, w)
}

func (h *WorkoutHandler) Create(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req createWorkoutRequest
	if !bindJSON(c, &req) {
		return
	}

	date, err := domain.ParseDate(req.ScheduledDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid scheduled_date format, expected YYYY-MM-DD"})
		return
	}

	w, err := h.svc.Create(c.Request.Context(), services.CreateWorkoutInput{
		UserID:          userID,
		PlanID:          req.PlanID,
		ScheduledDate:   date,
		WorkoutType:     req.WorkoutType,
		Title:           req.Title,
		Description:     req.Description,
		DurationMinutes: req.DurationMinutes,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, w)
}

// Update godoc
// @Summary  Edit a workout
// @Description The request must carry the version it was read at; a stale version returns 409.
// @Tags     workouts
// @Accept   json
// @Produce  json
// @Param    id path string true "Workout ID"
// @Success  200 {object} domain.Workout
// @Failure  409 {object} map[string]string
// @Security BearerAuth
// @Router   /workouts/{id} [put]
func (h *WorkoutHandler) Update(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req updateWorkoutRequest
	if !bindJSON(c, &req) {
		return
	}

	w, err := h.svc.Update(c.Request.Context(), services.UpdateWorkoutInput{
		ID:              c.Param("id"),
		UserID:          userID,
		WorkoutType:     req.WorkoutType,
		Title:           req.Title,
		Description:     req.Description,
		DurationMinutes: req.DurationMinutes,
		Version:         req.Version,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, w)
}

func (h *WorkoutHandler) Complete(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req completeWorkoutRequest
	if c.Request.ContentLength > 0 && !bindJSON(c, &req) {
		return
	}

	input := services.CompleteWorkoutInput{
		ID:        c.Param("id"),
		UserID:    userID,
		Completed: req.Completed == nil || *req.Completed,
		Notes:     req.Notes,
	}
	if req.At != nil {
		input.At = *req.At
	}

	w, err := h.svc.Complete(c.Request.Context(), input)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, w)
}

// Remove converts the workout into a rest day and returns it.
func (h *WorkoutHandler) Remove(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req removeWorkoutRequest
	if c.Request.ContentLength > 0 && !bindJSON(c, &req) {
		return
	}

	w, err := h.svc.Remove(c.Request.Context(), userID, c.Param("id"), req.Reason)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, w)
}
