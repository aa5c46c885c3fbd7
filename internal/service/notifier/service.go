package notifier

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/seu-repo/sigep-parking/internal/domain"
	"github.com/seu-repo/sigep-parking/internal/ports"
)

// Mailer is the subset of the email service the notifier needs.
type Mailer interface {
	SendLeaseExpiring(ctx context.Context, customer *domain.Customer, lease *domain.Lease, plate string, daysLeft int) error
}

// Service periodically warns customers whose lease is about to end.
type Service struct {
	leases    ports.LeaseRepository
	vehicles  ports.VehicleRepository
	customers ports.CustomerRepository
	mailer    Mailer

	// WarnBefore is how far ahead of the lease end the reminder fires.
	WarnBefore time.Duration
	// Interval is how often the expiry scan runs.
	Interval time.Duration

	now func() time.Time
	log *zap.Logger

	// sent tracks lease IDs already reminded, so a lease gets one email per
	// process lifetime rather than one per scan.
	sent map[string]bool
}

func NewService(leases ports.LeaseRepository, vehicles ports.VehicleRepository, customers ports.CustomerRepository, mailer Mailer, log *zap.Logger) *Service {
	return &Service{
		leases:     leases,
		vehicles:   vehicles,
		customers:  customers,
		mailer:     mailer,
		WarnBefore: 3 * 24 * time.Hour,
		Interval:   time.Hour,
		now:        time.Now,
		log:        log,
		sent:       make(map[string]bool),
	}
}

// Run scans on a ticker until the context is cancelled.
func (s *Service) Run(ctx context.Context) {
	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	s.log.Info("lease expiry notifier started",
		zap.Duration("interval", s.Interval),
		zap.Duration("warn_before", s.WarnBefore),
	)

	for {
		select {
		case <-ctx.Done():
			s.log.Info("lease expiry notifier stopped")
			return
		case <-ticker.C:
			if err := s.Scan(ctx); err != nil {
				s.log.Error("lease expiry scan failed", zap.Error(err))
			}
		}
	}
}

// Scan finds leases ending inside the warning window and emails their owners.
func (s *Service) Scan(ctx context.Context) error {
	now := s.now()
	leases, err := s.leases.FindExpiringBetween(ctx, now, now.Add(s.WarnBefore))
	if err != nil {
		return err
	}

	for i := range leases {
		lease := &leases[i]
		if s.sent[lease.ID] {
			continue
		}
		if err := s.notify(ctx, lease, now); err != nil {
			s.log.Warn("lease expiry reminder failed",
				zap.String("lease_id", lease.ID),
				zap.Error(err),
			)
			continue
		}
		s.sent[lease.ID] = true
	}

	return nil
}

func (s *Service) notify(ctx context.Context, lease *domain.Lease, now time.Time) error {
	vehicle, err := s.vehicles.FindByID(ctx, lease.VehicleID)
	if err != nil {
		return err
	}
	if vehicle == nil || vehicle.CustomerID == nil {
		// No owner on record, nothing to send.
		return nil
	}

	customer, err := s.customers.FindByID(ctx, *vehicle.CustomerID)
	if err != nil {
		return err
	}
	if customer == nil || customer.Email == "" {
		return nil
	}

	daysLeft := int(lease.EndTime.Sub(now).Hours() / 24)
	if err := s.mailer.SendLeaseExpiring(ctx, customer, lease, vehicle.Plate, daysLeft); err != nil {
		return err
	}

	s.log.Info("lease expiry reminder sent",
		zap.String("lease_id", lease.ID),
		zap.String("plate", vehicle.Plate),
		zap.Int("days_left", daysLeft),
	)
	return nil
}
