package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/summit/internal/adapters/handler/http/middleware"
	"github.com/comitanigiacomo/summit/internal/core/domain"
)

func currentUser(c *gin.Context) (string, bool) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return "", false
	}
	return userID, true
}

func bindJSON(c *gin.Context, v any) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return false
	}
	return true
}

// dateQuery parses an optional YYYY-MM-DD query parameter, returning
// fallback when it is absent.
func dateQuery(c *gin.Context, name string, fallback time.Time) (time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return fallback, true
	}
	d, err := domain.ParseDate(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name + " format, expected YYYY-MM-DD"})
		return time.Time{}, false
	}
	return d, true
}

func dateParam(c *gin.Context, name string) (time.Time, bool) {
	d, err := domain.ParseDate(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name + ", expected YYYY-MM-DD"})
		return time.Time{}, false
	}
	return d, true
}
