package postgres

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/seu-repo/sigep-parking/internal/domain"
	"github.com/seu-repo/sigep-parking/internal/ports"
)

type SiteRepository struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewSiteRepository(db *gorm.DB, log *zap.Logger) ports.SiteRepository {
	return &SiteRepository{
		db:  db,
		log: log,
	}
}

func (r *SiteRepository) Save(ctx context.Context, s *domain.Site) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *SiteRepository) FindByID(ctx context.Context, id string) (*domain.Site, error) {
	var s domain.Site
	err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *SiteRepository) FindByLotID(ctx context.Context, lotID string) ([]domain.Site, error) {
	var sites []domain.Site
	err := r.db.WithContext(ctx).
		Where("parking_lot_id = ?", lotID).
		Order("name asc").
		Find(&sites).Error
	return sites, err
}

func (r *SiteRepository) Update(ctx context.Context, s *domain.Site) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *SiteRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&domain.Site{}, "id = ?", id).Error
}

func (r *SiteRepository) SaveAssignment(ctx context.Context, a *domain.SiteAssignment) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *SiteRepository) FindAssignment(ctx context.Context, siteID, userID string) (*domain.SiteAssignment, error) {
	var a domain.SiteAssignment
	err := r.db.WithContext(ctx).
		Where("site_id = ? AND user_id = ?", siteID, userID).
		First(&a).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

func (r *SiteRepository) FindAssignmentsByUserID(ctx context.Context, userID string) ([]domain.SiteAssignment, error) {
	var assignments []domain.SiteAssignment
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&assignments).Error
	return assignments, err
}

type ModuleRepository struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewModuleRepository(db *gorm.DB, log *zap.Logger) ports.ModuleRepository {
	return &ModuleRepository{
		db:  db,
		log: log,
	}
}

func (r *ModuleRepository) Save(ctx context.Context, m *domain.ParkingModule) error {
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *ModuleRepository) FindByID(ctx context.Context, id string) (*domain.ParkingModule, error) {
	var m domain.ParkingModule
	err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (r *ModuleRepository) FindBySiteID(ctx context.Context, siteID string) ([]domain.ParkingModule, error) {
	var modules []domain.ParkingModule
	err := r.db.WithContext(ctx).
		Where("site_id = ?", siteID).
		Order("name asc").
		Find(&modules).Error
	return modules, err
}

func (r *ModuleRepository) Update(ctx context.Context, m *domain.ParkingModule) error {
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *ModuleRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&domain.ParkingModule{}, "id = ?", id).Error
}

type ParkingLotRepository struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewParkingLotRepository(db *gorm.DB, log *zap.Logger) ports.ParkingLotRepository {
	return &ParkingLotRepository{
		db:  db,
		log: log,
	}
}

func (r *ParkingLotRepository) Save(ctx context.Context, lot *domain.ParkingLot) error {
	return r.db.WithContext(ctx).Save(lot).Error
}

func (r *ParkingLotRepository) FindByID(ctx context.Context, id string) (*domain.ParkingLot, error) {
	var lot domain.ParkingLot
	err := r.db.WithContext(ctx).First(&lot, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &lot, nil
}

func (r *ParkingLotRepository) FindByOwnerUserID(ctx context.Context, userID string) (*domain.ParkingLot, error) {
	var lot domain.ParkingLot
	err := r.db.WithContext(ctx).First(&lot, "owner_user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &lot, nil
}

func (r *ParkingLotRepository) Update(ctx context.Context, lot *domain.ParkingLot) error {
	return r.db.WithContext(ctx).Save(lot).Error
}
