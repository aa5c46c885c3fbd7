package postgres

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/seu-repo/sigep-parking/internal/domain"
	"github.com/seu-repo/sigep-parking/internal/ports"
)

type SessionRepository struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewSessionRepository(db *gorm.DB, log *zap.Logger) ports.SessionRepository {
	return &SessionRepository{
		db:  db,
		log: log,
	}
}

func (r *SessionRepository) Save(ctx context.Context, s *domain.ParkingSession) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *SessionRepository) FindByID(ctx context.Context, id string) (*domain.ParkingSession, error) {
	var s domain.ParkingSession
	err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *SessionRepository) FindOpenByVehicleID(ctx context.Context, vehicleID string) (*domain.ParkingSession, error) {
	var s domain.ParkingSession
	err := r.db.WithContext(ctx).
		Where("vehicle_id = ? AND exit_time IS NULL", vehicleID).
		First(&s).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *SessionRepository) FindOpenByModuleID(ctx context.Context, moduleID string) (*domain.ParkingSession, error) {
	var s domain.ParkingSession
	err := r.db.WithContext(ctx).
		Where("module_id = ? AND exit_time IS NULL", moduleID).
		First(&s).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *SessionRepository) FindOpenBySiteID(ctx context.Context, siteID string) ([]domain.ParkingSession, error) {
	var sessions []domain.ParkingSession
	err := r.db.WithContext(ctx).
		Joins("JOIN parking_modules ON parking_modules.id = parking_sessions.module_id").
		Where("parking_modules.site_id = ? AND parking_sessions.exit_time IS NULL", siteID).
		Order("parking_sessions.entry_time asc").
		Find(&sessions).Error
	return sessions, err
}

func (r *SessionRepository) Update(ctx context.Context, s *domain.ParkingSession) error {
	return r.db.WithContext(ctx).Save(s).Error
}
