package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/comitanigiacomo/summit/internal/core/domain"
	"github.com/comitanigiacomo/summit/internal/core/services"
)

type billingFixture struct {
	verifier *MockVerifier
	events   *MockBillingEventRepo
	profiles *MockProfileRepo
	svc      *services.BillingService
}

func newBillingFixture() *billingFixture {
	f := &billingFixture{
		verifier: new(MockVerifier),
		events:   new(MockBillingEventRepo),
		profiles: new(MockProfileRepo),
	}
	f.svc = services.NewBillingService(f.verifier, f.events, f.profiles, zap.NewNop())
	return f
}

var payload = []byte(`{"id":"evt_1"}`)

func TestBillingService_HandleWebhook(t *testing.T) {
	ctx := context.Background()

	t.Run("Success: checkout activates the subscription", func(t *testing.T) {
		f := newBillingFixture()
		event := &domain.BillingEvent{ID: "evt_1", Type: domain.BillingEventCheckoutCompleted, UserID: "u1", CustomerID: "cus_1"}

		f.verifier.On("Verify", payload, "sig").Return(event, nil)
		f.events.On("MarkProcessed", ctx, event).Return(nil)
		f.profiles.On("UpdateSubscription", ctx, "u1", domain.SubscriptionActive, ptr("cus_1")).Return(nil)

		_, err := f.svc.HandleWebhook(ctx, payload, "sig")

		require.NoError(t, err)
		f.profiles.AssertExpectations(t)
	})

	t.Run("Success: deletion cancels by customer id", func(t *testing.T) {
		f := newBillingFixture()
		event := &domain.BillingEvent{ID: "evt_2", Type: domain.BillingEventSubscriptionDeleted, CustomerID: "cus_1", SubscriptionStatus: "active"}
		profile := testProfile("u1")

		f.verifier.On("Verify", payload, "sig").Return(event, nil)
		f.events.On("MarkProcessed", ctx, event).Return(nil)
		f.profiles.On("GetByStripeCustomerID", ctx, "cus_1").Return(profile, nil)
		f.profiles.On("UpdateSubscription", ctx, "u1", domain.SubscriptionCanceled, ptr("cus_1")).Return(nil)

		_, err := f.svc.HandleWebhook(ctx, payload, "sig")

		require.NoError(t, err)
		f.profiles.AssertExpectations(t)
	})

	t.Run("Success: update for unknown customer is acknowledged", func(t *testing.T) {
		f := newBillingFixture()
		event := &domain.BillingEvent{ID: "evt_3", Type: domain.BillingEventSubscriptionUpdated, CustomerID: "cus_x", SubscriptionStatus: "past_due"}

		f.verifier.On("Verify", payload, "sig").Return(event, nil)
		f.events.On("MarkProcessed", ctx, event).Return(nil)
		f.profiles.On("GetByStripeCustomerID", ctx, "cus_x").Return(nil, domain.ErrProfileNotFound)

		_, err := f.svc.HandleWebhook(ctx, payload, "sig")

		require.NoError(t, err)
		f.profiles.AssertNotCalled(t, "UpdateSubscription", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Success: unknown event type is ignored", func(t *testing.T) {
		f := newBillingFixture()
		event := &domain.BillingEvent{ID: "evt_4", Type: "invoice.paid"}

		f.verifier.On("Verify", payload, "sig").Return(event, nil)
		f.events.On("MarkProcessed", ctx, event).Return(nil)

		_, err := f.svc.HandleWebhook(ctx, payload, "sig")
		require.NoError(t, err)
	})

	t.Run("Fail: replay is reported", func(t *testing.T) {
		f := newBillingFixture()
		event := &domain.BillingEvent{ID: "evt_1", Type: domain.BillingEventCheckoutCompleted, UserID: "u1"}

		f.verifier.On("Verify", payload, "sig").Return(event, nil)
		f.events.On("MarkProcessed", ctx, event).Return(domain.ErrEventAlreadyHandled)

		_, err := f.svc.HandleWebhook(ctx, payload, "sig")

		assert.ErrorIs(t, err, domain.ErrEventAlreadyHandled)
		f.profiles.AssertNotCalled(t, "UpdateSubscription", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Fail: bad signature", func(t *testing.T) {
		f := newBillingFixture()
		f.verifier.On("Verify", payload, "forged").Return(nil, domain.ErrInvalidWebhook)

		_, err := f.svc.HandleWebhook(ctx, payload, "forged")

		assert.ErrorIs(t, err, domain.ErrInvalidWebhook)
		f.events.AssertNotCalled(t, "MarkProcessed", mock.Anything, mock.Anything)
	})

	t.Run("Fail: apply error releases the event for retry", func(t *testing.T) {
		f := newBillingFixture()
		event := &domain.BillingEvent{ID: "evt_5", Type: domain.BillingEventCheckoutCompleted, UserID: "u1"}
		dbErr := errors.New("deadlock")

		f.verifier.On("Verify", payload, "sig").Return(event, nil)
		f.events.On("MarkProcessed", ctx, event).Return(nil)
		f.profiles.On("UpdateSubscription", ctx, "u1", domain.SubscriptionActive, (*string)(nil)).Return(dbErr)
		f.events.On("Forget", ctx, "evt_5").Return(nil)

		_, err := f.svc.HandleWebhook(ctx, payload, "sig")

		assert.ErrorIs(t, err, dbErr)
		f.events.AssertExpectations(t)
	})
}
