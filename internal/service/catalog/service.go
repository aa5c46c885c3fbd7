package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/seu-repo/sigep-parking/internal/domain"
	"github.com/seu-repo/sigep-parking/internal/ports"
)

// Service manages reference data: rates, rate types, vehicle types, payment
// methods and periodicities.
type Service struct {
	rates         ports.RateRepository
	rateTypes     ports.RateTypeRepository
	vehicleTypes  ports.VehicleTypeRepository
	methods       ports.PaymentMethodRepository
	periodicities ports.PeriodicityRepository
	now           func() time.Time
	log           *zap.Logger
}

func NewService(
	rates ports.RateRepository,
	rateTypes ports.RateTypeRepository,
	vehicleTypes ports.VehicleTypeRepository,
	methods ports.PaymentMethodRepository,
	periodicities ports.PeriodicityRepository,
	log *zap.Logger,
) *Service {
	return &Service{
		rates:         rates,
		rateTypes:     rateTypes,
		vehicleTypes:  vehicleTypes,
		methods:       methods,
		periodicities: periodicities,
		now:           time.Now,
		log:           log,
	}
}

type RateRequest struct {
	Name       string
	Cost       decimal.Decimal
	RateTypeID string
}

func (s *Service) ListRates(ctx context.Context) ([]domain.Rate, error) {
	return s.rates.FindAll(ctx)
}

func (s *Service) CreateRate(ctx context.Context, req RateRequest) (*domain.Rate, error) {
	rt, err := s.rateTypes.FindByID(ctx, req.RateTypeID)
	if err != nil {
		return nil, err
	}
	if rt == nil {
		return nil, domain.ErrNotFound
	}

	rate := &domain.Rate{
		ID:         uuid.New().String(),
		Name:       req.Name,
		Cost:       req.Cost,
		RateTypeID: req.RateTypeID,
		CreatedAt:  s.now(),
		UpdatedAt:  s.now(),
	}
	if err := s.rates.Save(ctx, rate); err != nil {
		return nil, err
	}
	return rate, nil
}

func (s *Service) UpdateRate(ctx context.Context, id string, req RateRequest) (*domain.Rate, error) {
	rate, err := s.rates.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rate == nil {
		return nil, domain.ErrRateNotFound
	}

	rate.Name = req.Name
	rate.Cost = req.Cost
	rate.RateTypeID = req.RateTypeID
	rate.UpdatedAt = s.now()
	if err := s.rates.Update(ctx, rate); err != nil {
		return nil, err
	}
	return rate, nil
}

func (s *Service) DeleteRate(ctx context.Context, id string) error {
	rate, err := s.rates.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if rate == nil {
		return domain.ErrRateNotFound
	}
	return s.rates.Delete(ctx, id)
}

func (s *Service) ListRateTypes(ctx context.Context) ([]domain.RateType, error) {
	return s.rateTypes.FindAll(ctx)
}

func (s *Service) CreateRateType(ctx context.Context, name string, unit domain.RateUnit) (*domain.RateType, error) {
	rt := &domain.RateType{
		ID:   uuid.New().String(),
		Name: name,
		Unit: unit,
	}
	if err := s.rateTypes.Save(ctx, rt); err != nil {
		return nil, err
	}
	return rt, nil
}

func (s *Service) UpdateRateType(ctx context.Context, id, name string, unit domain.RateUnit) (*domain.RateType, error) {
	rt, err := s.rateTypes.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rt == nil {
		return nil, domain.ErrNotFound
	}
	rt.Name = name
	rt.Unit = unit
	if err := s.rateTypes.Update(ctx, rt); err != nil {
		return nil, err
	}
	return rt, nil
}

func (s *Service) DeleteRateType(ctx context.Context, id string) error {
	rt, err := s.rateTypes.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if rt == nil {
		return domain.ErrNotFound
	}
	return s.rateTypes.Delete(ctx, id)
}

func (s *Service) ListVehicleTypes(ctx context.Context) ([]domain.VehicleType, error) {
	return s.vehicleTypes.FindAll(ctx)
}

func (s *Service) CreateVehicleType(ctx context.Context, name string) (*domain.VehicleType, error) {
	vt := &domain.VehicleType{
		ID:   uuid.New().String(),
		Name: name,
	}
	if err := s.vehicleTypes.Save(ctx, vt); err != nil {
		return nil, err
	}
	return vt, nil
}

func (s *Service) ListPaymentMethods(ctx context.Context) ([]domain.PaymentMethod, error) {
	return s.methods.FindAll(ctx)
}

func (s *Service) CreatePaymentMethod(ctx context.Context, name string, card bool) (*domain.PaymentMethod, error) {
	pm := &domain.PaymentMethod{
		ID:   uuid.New().String(),
		Name: name,
		Card: card,
	}
	if err := s.methods.Save(ctx, pm); err != nil {
		return nil, err
	}
	return pm, nil
}

func (s *Service) UpdatePaymentMethod(ctx context.Context, id, name string, card bool) (*domain.PaymentMethod, error) {
	pm, err := s.methods.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if pm == nil {
		return nil, domain.ErrNotFound
	}
	pm.Name = name
	pm.Card = card
	if err := s.methods.Update(ctx, pm); err != nil {
		return nil, err
	}
	return pm, nil
}

func (s *Service) DeletePaymentMethod(ctx context.Context, id string) error {
	pm, err := s.methods.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if pm == nil {
		return domain.ErrNotFound
	}
	return s.methods.Delete(ctx, id)
}

func (s *Service) ListPeriodicities(ctx context.Context, lotID string) ([]domain.Periodicity, error) {
	return s.periodicities.FindByLotID(ctx, lotID)
}

func (s *Service) CreatePeriodicity(ctx context.Context, name string, days int, lotID string) (*domain.Periodicity, error) {
	p := &domain.Periodicity{
		ID:           uuid.New().String(),
		Name:         name,
		Days:         days,
		ParkingLotID: lotID,
	}
	if err := s.periodicities.Save(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}
