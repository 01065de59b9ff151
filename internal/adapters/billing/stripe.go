// Package billing verifies Stripe webhooks and reduces them to domain.BillingEvent.
package billing

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/webhook"

	"github.com/comitanigiacomo/summit/internal/core/domain"
)

var _ domain.WebhookVerifier = (*StripeVerifier)(nil)

// UserIDMetadataKey is the subscription metadata key carrying our user id,
// set when the checkout session is created on the client.
const UserIDMetadataKey = "user_id"

type StripeVerifier struct {
	secret    string
	tolerance time.Duration
	now       func() time.Time
}

func NewStripeVerifier(secret string) *StripeVerifier {
	return &StripeVerifier{
		secret:    secret,
		tolerance: webhook.DefaultTolerance,
		now:       time.Now,
	}
}

func (v *StripeVerifier) Verify(payload []byte, signature string) (*domain.BillingEvent, error) {
	if v.secret == "" || signature == "" {
		return nil, domain.ErrInvalidWebhook
	}

	event, err := webhook.ConstructEventWithOptions(payload, signature, v.secret, webhook.ConstructEventOptions{
		Tolerance:                v.tolerance,
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidWebhook, err)
	}

	out := &domain.BillingEvent{
		ID:         event.ID,
		Type:       string(event.Type),
		ReceivedAt: v.now().UTC(),
	}
	if event.Data == nil {
		return out, nil
	}

	switch out.Type {
	case domain.BillingEventCheckoutCompleted:
		var session stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
			return nil, fmt.Errorf("%w: checkout session: %v", domain.ErrInvalidWebhook, err)
		}
		out.UserID = session.ClientReferenceID
		if session.Customer != nil {
			out.CustomerID = session.Customer.ID
		}

	case domain.BillingEventSubscriptionCreated,
		domain.BillingEventSubscriptionUpdated,
		domain.BillingEventSubscriptionDeleted:
		var sub stripe.Subscription
		if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
			return nil, fmt.Errorf("%w: subscription: %v", domain.ErrInvalidWebhook, err)
		}
		if sub.Customer != nil {
			out.CustomerID = sub.Customer.ID
		}
		out.UserID = sub.Metadata[UserIDMetadataKey]
		out.SubscriptionStatus = subscriptionStatus(sub.Status)
	}

	return out, nil
}

func subscriptionStatus(s stripe.SubscriptionStatus) string {
	switch s {
	case stripe.SubscriptionStatusActive:
		return domain.SubscriptionActive
	case stripe.SubscriptionStatusTrialing:
		return domain.SubscriptionTrialing
	case stripe.SubscriptionStatusPastDue, stripe.SubscriptionStatusUnpaid, stripe.SubscriptionStatusIncomplete:
		return domain.SubscriptionPastDue
	case stripe.SubscriptionStatusCanceled, stripe.SubscriptionStatusIncompleteExpired, stripe.SubscriptionStatusPaused:
		return domain.SubscriptionCanceled
	default:
		return ""
	}
}
