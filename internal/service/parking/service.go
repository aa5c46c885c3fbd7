package parking

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/seu-repo/sigep-parking/internal/adapter/queue"
	"github.com/seu-repo/sigep-parking/internal/domain"
	"github.com/seu-repo/sigep-parking/internal/observability/telemetry"
	"github.com/seu-repo/sigep-parking/internal/ports"
)

// Service drives the parking-session lifecycle: module occupancy, vehicle and
// lease resolution on entry, and fee settlement on exit.
type Service struct {
	vehicles     ports.VehicleRepository
	sessions     ports.SessionRepository
	leases       ports.LeaseRepository
	modules      ports.ModuleRepository
	rates        ports.RateRepository
	rateTypes    ports.RateTypeRepository
	vehicleTypes ports.VehicleTypeRepository
	methods      ports.PaymentMethodRepository
	gateway      ports.PaymentGateway // nil when card payments are disabled
	mq           queue.MessageQueue
	now          func() time.Time
	log          *zap.Logger
}

func NewService(
	vehicles ports.VehicleRepository,
	sessions ports.SessionRepository,
	leases ports.LeaseRepository,
	modules ports.ModuleRepository,
	rates ports.RateRepository,
	rateTypes ports.RateTypeRepository,
	vehicleTypes ports.VehicleTypeRepository,
	methods ports.PaymentMethodRepository,
	gateway ports.PaymentGateway,
	mq queue.MessageQueue,
	log *zap.Logger,
) *Service {
	return &Service{
		vehicles:     vehicles,
		sessions:     sessions,
		leases:       leases,
		modules:      modules,
		rates:        rates,
		rateTypes:    rateTypes,
		vehicleTypes: vehicleTypes,
		methods:      methods,
		gateway:      gateway,
		mq:           mq,
		now:          time.Now,
		log:          log,
	}
}

func (s *Service) SearchVehicle(ctx context.Context, plate string) (*domain.Vehicle, *domain.VehicleType, error) {
	vehicle, err := s.vehicles.FindByPlate(ctx, plate)
	if err != nil {
		return nil, nil, err
	}
	if vehicle == nil {
		return nil, nil, domain.ErrVehicleNotFound
	}
	vt, err := s.vehicleTypes.FindByID(ctx, vehicle.VehicleTypeID)
	if err != nil {
		return nil, nil, err
	}
	return vehicle, vt, nil
}

func (s *Service) EditVehicle(ctx context.Context, plate string, update ports.VehicleUpdate) (*domain.Vehicle, error) {
	vehicle, err := s.vehicles.FindByPlate(ctx, plate)
	if err != nil {
		return nil, err
	}
	if vehicle == nil {
		return nil, domain.ErrVehicleNotFound
	}

	vehicle.Brand = update.Brand
	vehicle.Model = update.Model
	vehicle.VehicleTypeID = update.VehicleTypeID
	vehicle.UpdatedAt = s.now()

	if err := s.vehicles.Update(ctx, vehicle); err != nil {
		return nil, err
	}
	return vehicle, nil
}

// Enter admits a vehicle into a module. The sequence is fixed: occupancy check,
// vehicle resolution (creating unseen vehicles), lease resolution, session
// creation. Any refusal leaves the store untouched.
func (s *Service) Enter(ctx context.Context, req ports.EnterRequest) (*ports.EntryResult, error) {
	module, err := s.modules.FindByID(ctx, req.ModuleID)
	if err != nil {
		return nil, err
	}
	if module == nil {
		return nil, domain.ErrModuleNotFound
	}
	if !module.Enabled {
		return nil, domain.ErrModuleDisabled
	}

	occupied, err := s.sessions.FindOpenByModuleID(ctx, req.ModuleID)
	if err != nil {
		return nil, err
	}
	if occupied != nil {
		telemetry.EntryRefusals.WithLabelValues("module_occupied").Inc()
		return nil, domain.ErrModuleOccupied
	}

	vehicle, err := s.vehicles.FindByPlate(ctx, req.Plate)
	if err != nil {
		return nil, err
	}

	leaseCovered := false
	var rate *domain.Rate

	if vehicle != nil {
		open, err := s.sessions.FindOpenByVehicleID(ctx, vehicle.ID)
		if err != nil {
			return nil, err
		}
		if open != nil {
			telemetry.EntryRefusals.WithLabelValues("vehicle_parked").Inc()
			return nil, domain.ErrVehicleAlreadyParked
		}

		lease, err := s.resolveLease(ctx, vehicle.ID)
		if err != nil {
			return nil, err
		}
		if lease != nil {
			leaseCovered = true
			rate, err = s.rates.FindByID(ctx, lease.RateID)
			if err != nil {
				return nil, err
			}
		} else {
			rate, err = s.rates.FindByID(ctx, vehicle.RateID)
			if err != nil {
				return nil, err
			}
		}
	} else {
		vehicle = &domain.Vehicle{
			ID:            uuid.New().String(),
			Plate:         req.Plate,
			VehicleTypeID: req.VehicleTypeID,
			RateID:        req.RateID,
			Available:     true,
			CreatedAt:     s.now(),
			UpdatedAt:     s.now(),
		}
		if err := s.vehicles.Save(ctx, vehicle); err != nil {
			return nil, err
		}
		rate, err = s.rates.FindByID(ctx, req.RateID)
		if err != nil {
			return nil, err
		}
	}
	if rate == nil {
		return nil, domain.ErrRateNotFound
	}

	session := &domain.ParkingSession{
		ID:           uuid.New().String(),
		VehicleID:    vehicle.ID,
		ModuleID:     module.ID,
		EntryTime:    s.now(),
		LeaseCovered: leaseCovered,
		CreatedAt:    s.now(),
		UpdatedAt:    s.now(),
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}

	telemetry.EntriesTotal.Inc()
	telemetry.OpenSessions.Inc()
	s.publish(queue.SubjectParkingEntered, map[string]interface{}{
		"session_id": session.ID,
		"plate":      vehicle.Plate,
		"module_id":  module.ID,
		"site_id":    module.SiteID,
		"leased":     leaseCovered,
		"entry_time": session.EntryTime,
	})

	vt, err := s.vehicleTypes.FindByID(ctx, vehicle.VehicleTypeID)
	if err != nil {
		return nil, err
	}

	s.log.Info("vehicle entered",
		zap.String("plate", vehicle.Plate),
		zap.String("module", module.Name),
		zap.Bool("leased", leaseCovered),
	)

	return &ports.EntryResult{
		Session:     session,
		Vehicle:     vehicle,
		VehicleType: vt,
		Rate: ports.RateInfo{
			ID:   rate.ID,
			Name: rate.Name,
			Cost: rate.Cost,
		},
		LeaseCovered: leaseCovered,
	}, nil
}

// resolveLease applies the lease-entry policy. The active-date-range query
// (start <= now <= end) is authoritative; the latest lease is consulted only
// to refuse vehicles whose last lease already ended. A lease that has not
// started yet does not block a pay-per-use entry.
func (s *Service) resolveLease(ctx context.Context, vehicleID string) (*domain.Lease, error) {
	now := s.now()

	active, err := s.leases.FindActiveByVehicleID(ctx, vehicleID, now)
	if err != nil {
		return nil, err
	}
	if active != nil {
		if active.Paused {
			telemetry.EntryRefusals.WithLabelValues("lease_paused").Inc()
			return nil, domain.ErrLeasePaused
		}
		return active, nil
	}

	latest, err := s.leases.FindLatestByVehicleID(ctx, vehicleID)
	if err != nil {
		return nil, err
	}
	if latest != nil && latest.ExpiredAt(now) {
		telemetry.EntryRefusals.WithLabelValues("lease_expired").Inc()
		return nil, domain.ErrLeaseExpired
	}
	return nil, nil
}

// Exit closes the vehicle's open session. Lease-covered exits record no
// payment: billing runs on the lease's own recurrence.
func (s *Service) Exit(ctx context.Context, req ports.ExitRequest) error {
	vehicle, err := s.vehicles.FindByPlate(ctx, req.Plate)
	if err != nil {
		return err
	}
	if vehicle == nil {
		return domain.ErrVehicleNotFound
	}

	session, err := s.sessions.FindOpenByVehicleID(ctx, vehicle.ID)
	if err != nil {
		return err
	}
	if session == nil {
		return domain.ErrSessionNotFound
	}

	now := s.now()
	session.ExitTime = &now
	session.UpdatedAt = now

	if !req.LeaseCovered {
		session.AmountPaid = req.AmountPaid
		methodID := req.PaymentMethodID
		session.PaymentMethodID = &methodID

		if err := s.settleCardPayment(ctx, req, vehicle); err != nil {
			return err
		}
	}

	if err := s.sessions.Update(ctx, session); err != nil {
		return err
	}

	telemetry.ExitsTotal.Inc()
	telemetry.OpenSessions.Dec()

	siteID := ""
	if module, err := s.modules.FindByID(ctx, session.ModuleID); err == nil && module != nil {
		siteID = module.SiteID
	}
	s.publish(queue.SubjectParkingExited, map[string]interface{}{
		"session_id": session.ID,
		"plate":      vehicle.Plate,
		"module_id":  session.ModuleID,
		"site_id":    siteID,
		"amount":     session.AmountPaid.String(),
		"leased":     req.LeaseCovered,
		"exit_time":  now,
	})

	s.log.Info("vehicle exited",
		zap.String("plate", vehicle.Plate),
		zap.Bool("leased", req.LeaseCovered),
	)
	return nil
}

// settleCardPayment charges the gateway when the chosen method is card-typed.
// Cash methods only record the collected amount on the session.
func (s *Service) settleCardPayment(ctx context.Context, req ports.ExitRequest, vehicle *domain.Vehicle) error {
	if s.gateway == nil || req.PaymentMethodID == "" {
		return nil
	}
	method, err := s.methods.FindByID(ctx, req.PaymentMethodID)
	if err != nil {
		return err
	}
	if method == nil || !method.Card {
		return nil
	}

	ref, err := s.gateway.Charge(ctx, req.AmountPaid, "COP", fmt.Sprintf("parking %s", req.Plate))
	if err != nil {
		return fmt.Errorf("card payment failed: %w", err)
	}
	s.log.Info("card payment captured",
		zap.String("plate", vehicle.Plate),
		zap.String("reference", ref),
	)
	return nil
}

// ActiveSessions lists the open sessions of a site. The rate on each row is
// recomputed on demand (lease state changes over time): active lease rate if
// one covers the vehicle now, the vehicle's default rate otherwise.
func (s *Service) ActiveSessions(ctx context.Context, siteID string) ([]ports.ActiveSession, error) {
	sessions, err := s.sessions.FindOpenBySiteID(ctx, siteID)
	if err != nil {
		return nil, err
	}

	out := make([]ports.ActiveSession, 0, len(sessions))
	for _, session := range sessions {
		vehicle, err := s.vehicles.FindByID(ctx, session.VehicleID)
		if err != nil {
			return nil, err
		}
		if vehicle == nil {
			continue
		}
		module, err := s.modules.FindByID(ctx, session.ModuleID)
		if err != nil {
			return nil, err
		}
		if module == nil {
			continue
		}

		rate, leased, err := s.currentRate(ctx, vehicle)
		if err != nil {
			return nil, err
		}
		vt, err := s.vehicleTypes.FindByID(ctx, vehicle.VehicleTypeID)
		if err != nil {
			return nil, err
		}

		out = append(out, ports.ActiveSession{
			Session:     session,
			Vehicle:     *vehicle,
			VehicleType: vt,
			Module:      *module,
			Rate:        rate,
			Leased:      leased,
		})
	}
	return out, nil
}

// currentRate resolves the rate applying to a vehicle right now.
func (s *Service) currentRate(ctx context.Context, vehicle *domain.Vehicle) (ports.RateInfo, bool, error) {
	rateID := vehicle.RateID
	leased := false

	lease, err := s.leases.FindActiveByVehicleID(ctx, vehicle.ID, s.now())
	if err != nil {
		return ports.RateInfo{}, false, err
	}
	if lease != nil {
		rateID = lease.RateID
		leased = true
	}

	rate, err := s.rates.FindByID(ctx, rateID)
	if err != nil {
		return ports.RateInfo{}, false, err
	}
	if rate == nil {
		return ports.RateInfo{}, false, domain.ErrRateNotFound
	}
	return ports.RateInfo{ID: rate.ID, Name: rate.Name, Cost: rate.Cost}, leased, nil
}

// QuoteOpenSession computes the fee owed by an open session at the current
// rate, rounding the elapsed time up to whole rate-type units.
func (s *Service) QuoteOpenSession(ctx context.Context, plate string) (*ports.SessionQuote, error) {
	vehicle, err := s.vehicles.FindByPlate(ctx, plate)
	if err != nil {
		return nil, err
	}
	if vehicle == nil {
		return nil, domain.ErrVehicleNotFound
	}
	session, err := s.sessions.FindOpenByVehicleID(ctx, vehicle.ID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, domain.ErrSessionNotFound
	}

	rate, _, err := s.currentRate(ctx, vehicle)
	if err != nil {
		return nil, err
	}
	fullRate, err := s.rates.FindByID(ctx, rate.ID)
	if err != nil {
		return nil, err
	}
	rateType, err := s.rateTypes.FindByID(ctx, fullRate.RateTypeID)
	if err != nil {
		return nil, err
	}
	unit := domain.RateUnitHour
	if rateType != nil {
		unit = rateType.Unit
	}

	elapsed := s.now().Sub(session.EntryTime)
	units := billableUnits(elapsed, unit)
	due := rate.Cost.Mul(decimal.NewFromInt(units))

	return &ports.SessionQuote{
		Session:  *session,
		Rate:     rate,
		Units:    units,
		Due:      due,
		Duration: elapsed,
	}, nil
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
