package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/summit/internal/core/domain"
	"github.com/comitanigiacomo/summit/internal/core/prompt"
)

var badRequestErrors = []error{
	domain.ErrInvalidArgument,
	domain.ErrProfileInvalidID,
	domain.ErrInvalidEmail,
	domain.ErrInvalidGoal,
	domain.ErrInvalidExperience,
	domain.ErrInvalidDaysPerWeek,
	domain.ErrInvalidTimezone,
	domain.ErrDisplayNameTooLong,
	domain.ErrPlanNameEmpty,
	domain.ErrInvalidTotalWeeks,
	domain.ErrInvalidWorkoutType,
	domain.ErrWorkoutTitleTooLong,
	domain.ErrInvalidDuration,
	domain.ErrEmptyMessage,
	domain.ErrMessageTooLong,
	domain.ErrInvalidChatRole,
	domain.ErrInvalidScore,
	domain.ErrInvalidHRV,
	domain.ErrInvalidRestingHR,
	domain.ErrDraftTooLarge,
	domain.ErrInvalidWebhook,
}

var notFoundErrors = []error{
	domain.ErrProfileNotFound,
	domain.ErrPlanNotFound,
	domain.ErrNoActivePlan,
	domain.ErrWorkoutNotFound,
	domain.ErrMetricsNotFound,
	domain.ErrDraftNotFound,
}

func isAny(err error, targets []error) bool {
	for _, t := range targets {
		if errors.Is(err, t) {
			return true
		}
	}
	return false
}

func handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		c.JSON(http.StatusForbidden, gin.H{"error": "unauthorized access"})

	case isAny(err, notFoundErrors):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})

	case errors.Is(err, domain.ErrWorkoutConflict):
		c.JSON(http.StatusConflict, gin.H{
			"error":   "version conflict",
			"message": "workout has been modified elsewhere, reload and retry",
		})

	case isAny(err, badRequestErrors):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

	case errors.Is(err, domain.ErrRestNotCompletable), errors.Is(err, domain.ErrOnboardingIncomplete):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})

	case errors.Is(err, prompt.ErrNoJSON):
		_ = c.Error(err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "the coach replied with something we could not read, try again"})

	case errors.Is(err, domain.ErrCoachUnavailable), errors.Is(err, domain.ErrPlanGenerationFailed):
		_ = c.Error(err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})

	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
