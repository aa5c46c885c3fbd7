package postgres

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/seu-repo/sigep-parking/internal/domain"
	"github.com/seu-repo/sigep-parking/internal/ports"
)

// Reference-data repositories: rates, rate types, payment methods and
// periodicities share the same small CRUD shape.

type RateRepository struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewRateRepository(db *gorm.DB, log *zap.Logger) ports.RateRepository {
	return &RateRepository{
		db:  db,
		log: log,
	}
}

func (r *RateRepository) Save(ctx context.Context, rate *domain.Rate) error {
	return r.db.WithContext(ctx).Save(rate).Error
}

func (r *RateRepository) FindByID(ctx context.Context, id string) (*domain.Rate, error) {
	var rate domain.Rate
	err := r.db.WithContext(ctx).First(&rate, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rate, nil
}

func (r *RateRepository) FindAll(ctx context.Context) ([]domain.Rate, error) {
	var rates []domain.Rate
	err := r.db.WithContext(ctx).Order("name asc").Find(&rates).Error
	return rates, err
}

func (r *RateRepository) Update(ctx context.Context, rate *domain.Rate) error {
	return r.db.WithContext(ctx).Save(rate).Error
}

func (r *RateRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&domain.Rate{}, "id = ?", id).Error
}

type RateTypeRepository struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewRateTypeRepository(db *gorm.DB, log *zap.Logger) ports.RateTypeRepository {
	return &RateTypeRepository{
		db:  db,
		log: log,
	}
}

func (r *RateTypeRepository) Save(ctx context.Context, rt *domain.RateType) error {
	return r.db.WithContext(ctx).Save(rt).Error
}

func (r *RateTypeRepository) FindByID(ctx context.Context, id string) (*domain.RateType, error) {
	var rt domain.RateType
	err := r.db.WithContext(ctx).First(&rt, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rt, nil
}

func (r *RateTypeRepository) FindAll(ctx context.Context) ([]domain.RateType, error) {
	var types []domain.RateType
	err := r.db.WithContext(ctx).Order("name asc").Find(&types).Error
	return types, err
}

func (r *RateTypeRepository) Update(ctx context.Context, rt *domain.RateType) error {
	return r.db.WithContext(ctx).Save(rt).Error
}

func (r *RateTypeRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&domain.RateType{}, "id = ?", id).Error
}

type PaymentMethodRepository struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewPaymentMethodRepository(db *gorm.DB, log *zap.Logger) ports.PaymentMethodRepository {
	return &PaymentMethodRepository{
		db:  db,
		log: log,
	}
}

func (r *PaymentMethodRepository) Save(ctx context.Context, pm *domain.PaymentMethod) error {
	return r.db.WithContext(ctx).Save(pm).Error
}

func (r *PaymentMethodRepository) FindByID(ctx context.Context, id string) (*domain.PaymentMethod, error) {
	var pm domain.PaymentMethod
	err := r.db.WithContext(ctx).First(&pm, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &pm, nil
}

func (r *PaymentMethodRepository) FindAll(ctx context.Context) ([]domain.PaymentMethod, error) {
	var methods []domain.PaymentMethod
	err := r.db.WithContext(ctx).Order("name asc").Find(&methods).Error
	return methods, err
}

func (r *PaymentMethodRepository) Update(ctx context.Context, pm *domain.PaymentMethod) error {
	return r.db.WithContext(ctx).Save(pm).Error
}

func (r *PaymentMethodRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&domain.PaymentMethod{}, "id = ?", id).Error
}

type PeriodicityRepository struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewPeriodicityRepository(db *gorm.DB, log *zap.Logger) ports.PeriodicityRepository {
	return &PeriodicityRepository{
		db:  db,
		log: log,
	}
}

func (r *PeriodicityRepository) Save(ctx context.Context, p *domain.Periodicity) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *PeriodicityRepository) FindByID(ctx context.Context, id string) (*domain.Periodicity, error) {
	var p domain.Periodicity
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *PeriodicityRepository) FindByLotID(ctx context.Context, lotID string) ([]domain.Periodicity, error) {
	var periodicities []domain.Periodicity
	err := r.db.WithContext(ctx).
		Where("parking_lot_id = ?", lotID).
		Order("days asc").
		Find(&periodicities).Error
	return periodicities, err
}

func (r *PeriodicityRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&domain.Periodicity{}, "id = ?", id).Error
}
