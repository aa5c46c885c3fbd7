package postgres

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/seu-repo/sigep-parking/internal/domain"
	"github.com/seu-repo/sigep-parking/internal/ports"
)

type LeaseRepository struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewLeaseRepository(db *gorm.DB, log *zap.Logger) ports.LeaseRepository {
	return &LeaseRepository{
		db:  db,
		log: log,
	}
}

func (r *LeaseRepository) Save(ctx context.Context, l *domain.Lease) error {
	return r.db.WithContext(ctx).Save(l).Error
}

func (r *LeaseRepository) FindByID(ctx context.Context, id string) (*domain.Lease, error) {
	var l domain.Lease
	err := r.db.WithContext(ctx).First(&l, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &l, nil
}

func (r *LeaseRepository) FindActiveByVehicleID(ctx context.Context, vehicleID string, at time.Time) (*domain.Lease, error) {
	var l domain.Lease
	err := r.db.WithContext(ctx).
		Where("vehicle_id = ? AND start_time <= ? AND end_time >= ?", vehicleID, at, at).
		Order("end_time desc").
		First(&l).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &l, nil
}

func (r *LeaseRepository) FindLatestByVehicleID(ctx context.Context, vehicleID string) (*domain.Lease, error) {
	var l domain.Lease
	err := r.db.WithContext(ctx).
		Where("vehicle_id = ?", vehicleID).
		Order("end_time desc").
		First(&l).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &l, nil
}

func (r *LeaseRepository) FindByVehicleID(ctx context.Context, vehicleID string) ([]domain.Lease, error) {
	var leases []domain.Lease
	err := r.db.WithContext(ctx).
		Where("vehicle_id = ?", vehicleID).
		Order("end_time desc").
		Find(&leases).Error
	return leases, err
}

func (r *LeaseRepository) FindExpiringBetween(ctx context.Context, from, to time.Time) ([]domain.Lease, error) {
	var leases []domain.Lease
	err := r.db.WithContext(ctx).
		Where("end_time >= ? AND end_time <= ?", from, to).
		Order("end_time asc").
		Find(&leases).Error
	return leases, err
}

func (r *LeaseRepository) Update(ctx context.Context, l *domain.Lease) error {
	return r.db.WithContext(ctx).Save(l).Error
}

func (r *LeaseRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&domain.Lease{}, "id = ?", id).Error
}
