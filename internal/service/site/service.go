package site

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/seu-repo/sigep-parking/internal/domain"
	"github.com/seu-repo/sigep-parking/internal/ports"
)

// Service manages sites, their modules, and operator assignments.
type Service struct {
	sites   ports.SiteRepository
	modules ports.ModuleRepository
	users   ports.UserRepository
	now     func() time.Time
	log     *zap.Logger
}

func NewService(sites ports.SiteRepository, modules ports.ModuleRepository, users ports.UserRepository, log *zap.Logger) *Service {
	return &Service{
		sites:   sites,
		modules: modules,
		users:   users,
		now:     time.Now,
		log:     log,
	}
}

type SiteRequest struct {
	Name         string
	Address      string
	Phone        string
	Email        string
	ParkingLotID string
}

func (s *Service) CreateSite(ctx context.Context, req SiteRequest) (*domain.Site, error) {
	site := &domain.Site{
		ID:           uuid.New().String(),
		Name:         req.Name,
		Address:      req.Address,
		Phone:        req.Phone,
		Email:        req.Email,
		ParkingLotID: req.ParkingLotID,
		CreatedAt:    s.now(),
		UpdatedAt:    s.now(),
	}
	if err := s.sites.Save(ctx, site); err != nil {
		return nil, err
	}
	s.log.Info("site created", zap.String("site", site.Name))
	return site, nil
}

func (s *Service) UpdateSite(ctx context.Context, id string, req SiteRequest) (*domain.Site, error) {
	site, err := s.sites.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if site == nil {
		return nil, domain.ErrNotFound
	}

	site.Name = req.Name
	site.Address = req.Address
	site.Phone = req.Phone
	site.Email = req.Email
	site.UpdatedAt = s.now()
	if err := s.sites.Update(ctx, site); err != nil {
		return nil, err
	}
	return site, nil
}

func (s *Service) DeleteSite(ctx context.Context, id string) error {
	site, err := s.sites.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if site == nil {
		return domain.ErrNotFound
	}
	return s.sites.Delete(ctx, id)
}

func (s *Service) ListSites(ctx context.Context, lotID string) ([]domain.Site, error) {
	return s.sites.FindByLotID(ctx, lotID)
}

type ModuleRequest struct {
	Name        string
	Description string
	SiteID      string
	Enabled     bool
}

func (s *Service) CreateModule(ctx context.Context, req ModuleRequest) (*domain.ParkingModule, error) {
	site, err := s.sites.FindByID(ctx, req.SiteID)
	if err != nil {
		return nil, err
	}
	if site == nil {
		return nil, domain.ErrNotFound
	}

	module := &domain.ParkingModule{
		ID:          uuid.New().String(),
		Name:        req.Name,
		Description: req.Description,
		SiteID:      req.SiteID,
		Enabled:     req.Enabled,
		CreatedAt:   s.now(),
		UpdatedAt:   s.now(),
	}
	if err := s.modules.Save(ctx, module); err != nil {
		return nil, err
	}
	return module, nil
}

func (s *Service) UpdateModule(ctx context.Context, id string, req ModuleRequest) (*domain.ParkingModule, error) {
	module, err := s.modules.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if module == nil {
		return nil, domain.ErrModuleNotFound
	}

	module.Name = req.Name
	module.Description = req.Description
	module.Enabled = req.Enabled
	module.UpdatedAt = s.now()
	if err := s.modules.Update(ctx, module); err != nil {
		return nil, err
	}
	return module, nil
}

func (s *Service) ListModules(ctx context.Context, siteID string) ([]domain.ParkingModule, error) {
	return s.modules.FindBySiteID(ctx, siteID)
}

// AssignUser links an operator to a site by document. Duplicate assignment is
// a business outcome ("existente").
func (s *Service) AssignUser(ctx context.Context, siteID, document string) (*domain.SiteAssignment, error) {
	user, err := s.users.FindByDocument(ctx, document)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	existing, err := s.sites.FindAssignment(ctx, siteID, user.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrAlreadyAssigned
	}

	assignment := &domain.SiteAssignment{
		ID:     uuid.New().String(),
		SiteID: siteID,
		UserID: user.ID,
	}
	if err := s.sites.SaveAssignment(ctx, assignment); err != nil {
		return nil, err
	}
	return assignment, nil
}

func (s *Service) AssignmentsByDocument(ctx context.Context, document string) ([]domain.SiteAssignment, error) {
	user, err := s.users.FindByDocument(ctx, document)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return s.sites.FindAssignmentsByUserID(ctx, user.ID)
}
