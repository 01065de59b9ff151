package domain

import (
	"errors"
	"time"
)

var (
	ErrInvalidWebhook      = errors.New("invalid webhook payload or signature")
	ErrEventAlreadyHandled = errors.New("billing event already processed")
)

const (
	BillingEventCheckoutCompleted   = "checkout.session.completed"
	BillingEventSubscriptionCreated = "customer.subscription.created"
	BillingEventSubscriptionUpdated = "customer.subscription.updated"
	BillingEventSubscriptionDeleted = "customer.subscription.deleted"
)

// BillingEvent is the provider-neutral view of a verified payment webhook.
type BillingEvent struct {
	ID                 string
	Type               string
	UserID             string
	CustomerID         string
	SubscriptionStatus string
	ReceivedAt         time.Time
}
