package ports

import (
	"context"

	"github.com/shopspring/decimal"
)

// PaymentGateway charges card-typed payment methods on pay-per-use exits.
// Cash methods never reach the gateway.
type PaymentGateway interface {
	Charge(ctx context.Context, amount decimal.Decimal, currency, description string) (string, error)
}
