package payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"

	"github.com/seu-repo/sigep-parking/internal/ports"
)

type StripeGateway struct {
	log *zap.Logger
}

func NewStripeGateway(apiKey string, log *zap.Logger) ports.PaymentGateway {
	stripe.Key = apiKey
	return &StripeGateway{
		log: log,
	}
}

// Charge captures a card payment for a closed session. The amount is in
// currency units (COP has no minor unit worth tracking for parking fees, but
// Stripe still wants the smallest denomination).
func (s *StripeGateway) Charge(ctx context.Context, amount decimal.Decimal, currency, description string) (string, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return "", errors.New("invalid amount")
	}

	s.log.Info("Creating payment intent",
		zap.String("amount", amount.String()),
		zap.String("currency", currency),
	)

	params := &stripe.PaymentIntentParams{
		Amount:      stripe.Int64(amount.Mul(decimal.NewFromInt(100)).IntPart()),
		Currency:    stripe.String(currency),
		Description: stripe.String(description),
		Confirm:     stripe.Bool(true),
	}
	params.Context = ctx

	pi, err := paymentintent.New(params)
	if err != nil {
		s.log.Error("Failed to create payment intent", zap.Error(err))
		return "", fmt.Errorf("stripe: create payment intent: %w", err)
	}

	s.log.Info("Payment intent created",
		zap.String("payment_intent_id", pi.ID),
		zap.String("status", string(pi.Status)),
	)

	return pi.ID, nil
}
