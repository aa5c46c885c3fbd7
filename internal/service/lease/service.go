package lease

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/seu-repo/sigep-parking/internal/adapter/queue"
	"github.com/seu-repo/sigep-parking/internal/domain"
	"github.com/seu-repo/sigep-parking/internal/observability/telemetry"
	"github.com/seu-repo/sigep-parking/internal/ports"
)

// Service manages lease contracts and the pause/extension engine.
type Service struct {
	leases        ports.LeaseRepository
	vehicles      ports.VehicleRepository
	rates         ports.RateRepository
	methods       ports.PaymentMethodRepository
	periodicities ports.PeriodicityRepository
	mq            queue.MessageQueue
	now           func() time.Time
	log           *zap.Logger
}

func NewService(
	leases ports.LeaseRepository,
	vehicles ports.VehicleRepository,
	rates ports.RateRepository,
	methods ports.PaymentMethodRepository,
	periodicities ports.PeriodicityRepository,
	mq queue.MessageQueue,
	log *zap.Logger,
) *Service {
	return &Service{
		leases:        leases,
		vehicles:      vehicles,
		rates:         rates,
		methods:       methods,
		periodicities: periodicities,
		mq:            mq,
		now:           time.Now,
		log:           log,
	}
}

func (s *Service) Create(ctx context.Context, req ports.LeaseRequest) (*ports.LeaseDetails, error) {
	if err := s.validate(ctx, req); err != nil {
		return nil, err
	}

	lease := &domain.Lease{
		ID:              uuid.New().String(),
		Description:     req.Description,
		VehicleID:       req.VehicleID,
		RateID:          req.RateID,
		PaymentMethodID: req.PaymentMethodID,
		PeriodicityID:   req.PeriodicityID,
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		CreatedAt:       s.now(),
		UpdatedAt:       s.now(),
	}
	if err := s.leases.Save(ctx, lease); err != nil {
		return nil, err
	}

	s.publish(queue.SubjectLeaseCreated, map[string]interface{}{
		"lease_id":   lease.ID,
		"vehicle_id": lease.VehicleID,
		"start":      lease.StartTime,
		"end":        lease.EndTime,
	})
	s.log.Info("lease created",
		zap.String("lease", lease.ID),
		zap.String("vehicle", lease.VehicleID),
	)
	return s.details(ctx, lease)
}

func (s *Service) Update(ctx context.Context, id string, req ports.LeaseRequest) (*ports.LeaseDetails, error) {
	lease, err := s.leases.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if lease == nil {
		return nil, domain.ErrLeaseNotFound
	}
	if !req.EndTime.After(req.StartTime) {
		return nil, errors.New("lease end must be after start")
	}

	lease.Description = req.Description
	lease.PeriodicityID = req.PeriodicityID
	lease.PaymentMethodID = req.PaymentMethodID
	lease.RateID = req.RateID
	lease.StartTime = req.StartTime
	lease.EndTime = req.EndTime
	lease.UpdatedAt = s.now()

	if err := s.leases.Update(ctx, lease); err != nil {
		return nil, err
	}
	return s.details(ctx, lease)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	lease, err := s.leases.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if lease == nil {
		return domain.ErrLeaseNotFound
	}
	return s.leases.Delete(ctx, id)
}

func (s *Service) ListByVehicle(ctx context.Context, vehicleID string) ([]ports.LeaseDetails, error) {
	leases, err := s.leases.FindByVehicleID(ctx, vehicleID)
	if err != nil {
		return nil, err
	}
	out := make([]ports.LeaseDetails, 0, len(leases))
	for i := range leases {
		d, err := s.details(ctx, &leases[i])
		if err != nil {
			return nil, err
		}
		out = append(out, *d)
	}
	return out, nil
}

// TogglePause pauses a lease and pushes its end date out by the pause
// duration. The pause must fit inside the lease: with the pause applied now,
// at least pauseDays of lease time must remain past the projected resume
// point, otherwise the request is refused and the lease stays untouched.
// Pausing an already-paused lease is refused; a second extension would stack
// on the first.
func (s *Service) TogglePause(ctx context.Context, id string, pauseDays int) (*domain.Lease, error) {
	lease, err := s.leases.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if lease == nil {
		return nil, domain.ErrLeaseNotFound
	}
	if lease.Paused {
		return nil, domain.ErrLeaseAlreadyPaused
	}

	now := s.now()
	projected := now.AddDate(0, 0, pauseDays)
	remainingDays := int(lease.EndTime.Sub(projected).Hours() / 24)
	if remainingDays < pauseDays {
		return nil, domain.ErrPauseExceedsRemaining
	}

	lease.Paused = true
	lease.PauseDays = pauseDays
	lease.EndTime = lease.EndTime.AddDate(0, 0, pauseDays)
	lease.PausedAt = &now
	lease.UpdatedAt = now

	if err := s.leases.Update(ctx, lease); err != nil {
		return nil, err
	}

	telemetry.LeasePausesTotal.Inc()
	s.publish(queue.SubjectLeasePaused, map[string]interface{}{
		"lease_id":   lease.ID,
		"vehicle_id": lease.VehicleID,
		"pause_days": pauseDays,
		"new_end":    lease.EndTime,
	})
	s.log.Info("lease paused",
		zap.String("lease", lease.ID),
		zap.Int("days", pauseDays),
		zap.Time("new_end", lease.EndTime),
	)
	return lease, nil
}

// Resume clears the paused flag. The end-date extension granted at pause time
// is kept; resuming does not roll it back.
func (s *Service) Resume(ctx context.Context, id string) (*domain.Lease, error) {
	lease, err := s.leases.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if lease == nil {
		return nil, domain.ErrLeaseNotFound
	}
	if !lease.Paused {
		return nil, domain.ErrLeaseNotPaused
	}

	lease.Paused = false
	lease.UpdatedAt = s.now()
	if err := s.leases.Update(ctx, lease); err != nil {
		return nil, err
	}
	return lease, nil
}

func (s *Service) validate(ctx context.Context, req ports.LeaseRequest) error {
	if !req.EndTime.After(req.StartTime) {
		return errors.New("lease end must be after start")
	}
	vehicle, err := s.vehicles.FindByID(ctx, req.VehicleID)
	if err != nil {
		return err
	}
	if vehicle == nil {
		return domain.ErrVehicleNotFound
	}
	rate, err := s.rates.FindByID(ctx, req.RateID)
	if err != nil {
		return err
	}
	if rate == nil {
		return domain.ErrRateNotFound
	}
	return nil
}

func (s *Service) details(ctx context.Context, lease *domain.Lease) (*ports.LeaseDetails, error) {
	d := &ports.LeaseDetails{Lease: *lease}

	if p, err := s.periodicities.FindByID(ctx, lease.PeriodicityID); err != nil {
		return nil, err
	} else if p != nil {
		d.PeriodicityName = p.Name
	}
	if m, err := s.methods.FindByID(ctx, lease.PaymentMethodID); err != nil {
		return nil, err
	} else if m != nil {
		d.PaymentMethodName = m.Name
	}
	if r, err := s.rates.FindByID(ctx, lease.RateID); err != nil {
		return nil, err
	} else if r != nil {
		d.RateName = r.Name
		d.RateCost = r.Cost
	}
	return d, nil
}

func (s *Service) publish(subject string, payload map[string]interface{}) {
	if s.mq == nil {
		return
	}
	data, err := json.Marshal(payload)
	if err != nil {
		s.log.Error("failed to marshal event", zap.String("subject", subject), zap.Error(err))
		return
	}
	if err := s.mq.Publish(subject, data); err != nil {
		s.log.Error("failed to publish event", zap.String("subject", subject), zap.Error(err))
	}
}
