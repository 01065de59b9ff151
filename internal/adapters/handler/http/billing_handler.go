package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/summit/internal/core/domain"
	"github.com/comitanigiacomo/summit/internal/core/services"
)

const (
	maxWebhookBytes = 64 << 10
	signatureHeader = "Stripe-Signature"
)

type BillingHandler struct {
	svc *services.BillingService
}

func NewBillingHandler(svc *services.BillingService) *BillingHandler {
	return &BillingHandler{svc: svc}
}

// RegisterRoutes mounts the webhook; it authenticates by signature, not JWT.
func (h *BillingHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/billing/webhook", h.Webhook)
}

// Webhook godoc
// @Summary  Payment provider webhook
// @Tags     billing
// @Accept   json
// @Produce  json
// @Success  200 {object} map[string]any
// @Failure  400 {object} map[string]string
// @Router   /billing/webhook [post]
func (h *BillingHandler) Webhook(c *gin.Context) {
	payload, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxWebhookBytes))
	if err != nil {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "payload too large"})
		return
	}

	event, err := h.svc.HandleWebhook(c.Request.Context(), payload, c.GetHeader(signatureHeader))
	if errors.Is(err, domain.ErrEventAlreadyHandled) {
		c.JSON(http.StatusOK, gin.H{"received": true, "duplicate": true})
		return
	}
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"received": true, "type": event.Type})
}
