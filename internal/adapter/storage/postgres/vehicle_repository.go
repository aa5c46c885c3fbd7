package postgres

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/seu-repo/sigep-parking/internal/domain"
	"github.com/seu-repo/sigep-parking/internal/ports"
)

type VehicleRepository struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewVehicleRepository(db *gorm.DB, log *zap.Logger) ports.VehicleRepository {
	return &VehicleRepository{
		db:  db,
		log: log,
	}
}

func (r *VehicleRepository) Save(ctx context.Context, v *domain.Vehicle) error {
	return r.db.WithContext(ctx).Save(v).Error
}

func (r *VehicleRepository) FindByID(ctx context.Context, id string) (*domain.Vehicle, error) {
	var v domain.Vehicle
	err := r.db.WithContext(ctx).First(&v, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &v, nil
}

func (r *VehicleRepository) FindByPlate(ctx context.Context, plate string) (*domain.Vehicle, error) {
	var v domain.Vehicle
	err := r.db.WithContext(ctx).First(&v, "plate = ?", plate).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &v, nil
}

func (r *VehicleRepository) Update(ctx context.Context, v *domain.Vehicle) error {
	return r.db.WithContext(ctx).Save(v).Error
}

type VehicleTypeRepository struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewVehicleTypeRepository(db *gorm.DB, log *zap.Logger) ports.VehicleTypeRepository {
	return &VehicleTypeRepository{
		db:  db,
		log: log,
	}
}

func (r *VehicleTypeRepository) Save(ctx context.Context, vt *domain.VehicleType) error {
	return r.db.WithContext(ctx).Save(vt).Error
}

func (r *VehicleTypeRepository) FindByID(ctx context.Context, id string) (*domain.VehicleType, error) {
	var vt domain.VehicleType
	err := r.db.WithContext(ctx).First(&vt, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &vt, nil
}

func (r *VehicleTypeRepository) FindAll(ctx context.Context) ([]domain.VehicleType, error) {
	var types []domain.VehicleType
	err := r.db.WithContext(ctx).Order("name asc").Find(&types).Error
	return types, err
}

func (r *VehicleTypeRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&domain.VehicleType{}, "id = ?", id).Error
}
