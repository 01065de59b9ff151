package services

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/comitanigiacomo/summit/internal/core/domain"
)

type BillingService struct {
	verifier domain.WebhookVerifier
	events   domain.BillingEventRepository
	profiles domain.ProfileRepository
	logger   *zap.Logger
}

func NewBillingService(verifier domain.WebhookVerifier, events domain.BillingEventRepository, profiles domain.ProfileRepository, logger *zap.Logger) *BillingService {
	return &BillingService{
		verifier: verifier,
		events:   events,
		profiles: profiles,
		logger:   logger,
	}
}

// HandleWebhook verifies and applies one provider event. Replays return
// ErrEventAlreadyHandled; unknown event types are acknowledged and ignored.
func (s *BillingService) HandleWebhook(ctx context.Context, payload []byte, signature string) (*domain.BillingEvent, error) {
	event, err := s.verifier.Verify(payload, signature)
	if err != nil {
		return nil, err
	}

	if err := s.events.MarkProcessed(ctx, event); err != nil {
		return event, err
	}

	if err := s.apply(ctx, event); err != nil {
		if ferr := s.events.Forget(ctx, event.ID); ferr != nil {
			s.logger.Error("failed to release billing event", zap.String("event_id", event.ID), zap.Error(ferr))
		}
		return event, err
	}

	return event, nil
}

func (s *BillingService) apply(ctx context.Context, event *domain.BillingEvent) error {
	switch event.Type {
	case domain.BillingEventCheckoutCompleted:
		if event.UserID == "" {
			s.logger.Warn("checkout without client reference", zap.String("event_id", event.ID))
			return nil
		}
		status := event.SubscriptionStatus
		if status == "" {
			status = domain.SubscriptionActive
		}
		return s.updateSubscription(ctx, event, event.UserID, status)

	case domain.BillingEventSubscriptionCreated,
		domain.BillingEventSubscriptionUpdated,
		domain.BillingEventSubscriptionDeleted:
		profile, err := s.owner(ctx, event)
		if err != nil {
			return err
		}
		if profile == nil {
			s.logger.Warn("subscription event for unknown customer",
				zap.String("event_id", event.ID),
				zap.String("customer_id", event.CustomerID),
			)
			return nil
		}
		status := event.SubscriptionStatus
		if event.Type == domain.BillingEventSubscriptionDeleted || status == "" {
			status = domain.SubscriptionCanceled
		}
		return s.updateSubscription(ctx, event, profile.ID, status)

	default:
		s.logger.Debug("ignoring billing event", zap.String("type", event.Type), zap.String("event_id", event.ID))
		return nil
	}
}

func (s *BillingService) owner(ctx context.Context, event *domain.BillingEvent) (*domain.Profile, error) {
	if event.CustomerID != "" {
		p, err := s.profiles.GetByStripeCustomerID(ctx, event.CustomerID)
		if err == nil {
			return p, nil
		}
		if !errors.Is(err, domain.ErrProfileNotFound) {
			return nil, err
		}
	}
	if event.UserID != "" {
		p, err := s.profiles.GetByID(ctx, event.UserID)
		if err == nil {
			return p, nil
		}
		if !errors.Is(err, domain.ErrProfileNotFound) {
			return nil, err
		}
	}
	return nil, nil
}

func (s *BillingService) updateSubscription(ctx context.Context, event *domain.BillingEvent, userID, status string) error {
	var customerID *string
	if event.CustomerID != "" {
		customerID = &event.CustomerID
	}

	err := s.profiles.UpdateSubscription(ctx, userID, status, customerID)
	if errors.Is(err, domain.ErrProfileNotFound) {
		s.logger.Warn("billing event for missing profile", zap.String("user_id", userID), zap.String("event_id", event.ID))
		return nil
	}
	if err != nil {
		return err
	}

	s.logger.Info("subscription updated",
		zap.String("user_id", userID),
		zap.String("status", status),
		zap.String("event_id", event.ID),
	)
	return nil
}
