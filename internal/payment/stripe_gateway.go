package payment

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"brytashop-be/internal/logger"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/client"
	"go.uber.org/zap"
)

type stripeGateway struct {
	secretKey string
	api       *client.API
}

func NewStripeGateway(secretKey string) ChargeGateway {
	if secretKey == "" {
		logger.L().Warn("Stripe secret key is empty")
	}
	return newStripeGateway(secretKey, &http.Client{Timeout: 15 * time.Second})
}

// newStripeGateway disables the SDK's own retries; CreateOrder decides what
// happens after a failed charge.
func newStripeGateway(secretKey string, httpClient *http.Client) *stripeGateway {
	backends := stripe.NewBackendsWithConfig(&stripe.BackendConfig{
		HTTPClient:        httpClient,
		MaxNetworkRetries: stripe.Int64(0),
		LeveledLogger:     logger.L().Named("stripe").Sugar(),
	})
	return &stripeGateway{
		secretKey: secretKey,
		api:       client.New(secretKey, backends),
	}
}

// ----------------- Charge -----------------

func (s *stripeGateway) Charge(ctx context.Context, p ChargeParams) (*Charge, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("provider", "stripe"),
		zap.Int("amount", p.Amount),
		zap.String("currency", p.Currency),
	)
	if s.secretKey == "" {
		return nil, ErrMissingSecretKey
	}

	params := &stripe.ChargeParams{
		Amount:   stripe.Int64(int64(p.Amount)),
		Currency: stripe.String(strings.ToLower(p.Currency)),
	}
	if p.Description != "" {
		params.Description = stripe.String(p.Description)
	}
	if err := params.SetSource(p.Source); err != nil {
		return nil, err
	}
	params.Context = ctx
	if p.IdempotencyKey != "" {
		params.SetIdempotencyKey(p.IdempotencyKey)
	}

	ch, err := s.api.Charges.New(params)
	if err != nil {
		err = wrapStripeError(err)
		log.Error("stripe charge failed", zap.Error(err))
		return nil, err
	}

	if !ch.Paid {
		log.Warn("stripe charge not paid", zap.String("charge_id", ch.ID), zap.String("status", string(ch.Status)))
		return nil, ErrChargeNotPaid
	}

	log.Info("stripe charge created", zap.String("charge_id", ch.ID))
	return &Charge{
		ID:       ch.ID,
		Amount:   int(ch.Amount),
		Currency: string(ch.Currency),
		Status:   string(ch.Status),
		Paid:     ch.Paid,
	}, nil
}

// ----------------- Refund -----------------

func (s *stripeGateway) Refund(ctx context.Context, chargeID string) (*Refund, error) {
	if s.secretKey == "" {
		return nil, ErrMissingSecretKey
	}

	params := &stripe.RefundParams{Charge: stripe.String(chargeID)}
	params.Context = ctx
	params.SetIdempotencyKey("refund-" + chargeID)

	re, err := s.api.Refunds.New(params)
	if err != nil {
		err = wrapStripeError(err)
		logger.FromCtx(ctx).Error("stripe refund failed", zap.String("charge_id", chargeID), zap.Error(err))
		return nil, err
	}

	logger.FromCtx(ctx).Info("stripe refund issued", zap.String("charge_id", chargeID), zap.String("refund_id", re.ID))
	return &Refund{ID: re.ID, Status: string(re.Status)}, nil
}

func wrapStripeError(err error) error {
	var se *stripe.Error
	if errors.As(err, &se) && se.Msg != "" {
		return fmt.Errorf("stripe error: %s", se.Msg)
	}
	return err
}
