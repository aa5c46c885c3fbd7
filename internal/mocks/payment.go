package mocks

import (
	"context"

	"github.com/shopspring/decimal"
)

// MockPaymentGateway is a mock implementation of PaymentGateway
type MockPaymentGateway struct {
	ChargeFunc func(ctx context.Context, amount decimal.Decimal, currency, description string) (string, error)

	// Charges records every call when ChargeFunc is nil.
	Charges []decimal.Decimal
}

func (m *MockPaymentGateway) Charge(ctx context.Context, amount decimal.Decimal, currency, description string) (string, error) {
	if m.ChargeFunc != nil {
		return m.ChargeFunc(ctx, amount, currency, description)
	}
	m.Charges = append(m.Charges, amount)
	return "ch_mock", nil
}
