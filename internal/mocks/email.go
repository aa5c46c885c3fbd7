package mocks

import (
	"context"

	"github.com/seu-repo/sigep-parking/internal/domain"
)

// MockMailer is a mock implementation of the notifier's Mailer
type MockMailer struct {
	SendLeaseExpiringFunc func(ctx context.Context, customer *domain.Customer, lease *domain.Lease, plate string, daysLeft int) error

	// Sent records the lease IDs mailed when SendLeaseExpiringFunc is nil.
	Sent []string
}

func (m *MockMailer) SendLeaseExpiring(ctx context.Context, customer *domain.Customer, lease *domain.Lease, plate string, daysLeft int) error {
	if m.SendLeaseExpiringFunc != nil {
		return m.SendLeaseExpiringFunc(ctx, customer, lease, plate, daysLeft)
	}
	m.Sent = append(m.Sent, lease.ID)
	return nil
}
