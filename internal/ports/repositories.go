package ports

import (
	"context"
	"time"

	"github.com/seu-repo/sigep-parking/internal/domain"
)

// Repositories return (nil, nil) when an entity is absent; "not found" is an
// explicit branch for the caller, never an error value from the store.

type VehicleRepository interface {
	Save(ctx context.Context, v *domain.Vehicle) error
	FindByID(ctx context.Context, id string) (*domain.Vehicle, error)
	FindByPlate(ctx context.Context, plate string) (*domain.Vehicle, error)
	Update(ctx context.Context, v *domain.Vehicle) error
}

type SessionRepository interface {
	Save(ctx context.Context, s *domain.ParkingSession) error
	FindByID(ctx context.Context, id string) (*domain.ParkingSession, error)
	// FindOpenByVehicleID returns the vehicle's session with a null exit
	// timestamp, if any. At most one can exist.
	FindOpenByVehicleID(ctx context.Context, vehicleID string) (*domain.ParkingSession, error)
	// FindOpenByModuleID returns the open session occupying the module, if any.
	FindOpenByModuleID(ctx context.Context, moduleID string) (*domain.ParkingSession, error)
	FindOpenBySiteID(ctx context.Context, siteID string) ([]domain.ParkingSession, error)
	Update(ctx context.Context, s *domain.ParkingSession) error
}

type LeaseRepository interface {
	Save(ctx context.Context, l *domain.Lease) error
	FindByID(ctx context.Context, id string) (*domain.Lease, error)
	// FindActiveByVehicleID returns the lease whose date range covers the
	// given instant (start <= at <= end), if any.
	FindActiveByVehicleID(ctx context.Context, vehicleID string, at time.Time) (*domain.Lease, error)
	// FindLatestByVehicleID returns the vehicle's most recent lease ordered by
	// end date descending, if any.
	FindLatestByVehicleID(ctx context.Context, vehicleID string) (*domain.Lease, error)
	FindByVehicleID(ctx context.Context, vehicleID string) ([]domain.Lease, error)
	// FindExpiringBetween lists leases whose end date falls inside the window,
	// for expiry reminders.
	FindExpiringBetween(ctx context.Context, from, to time.Time) ([]domain.Lease, error)
	Update(ctx context.Context, l *domain.Lease) error
	Delete(ctx context.Context, id string) error
}

type ModuleRepository interface {
	Save(ctx context.Context, m *domain.ParkingModule) error
	FindByID(ctx context.Context, id string) (*domain.ParkingModule, error)
	FindBySiteID(ctx context.Context, siteID string) ([]domain.ParkingModule, error)
	Update(ctx context.Context, m *domain.ParkingModule) error
	Delete(ctx context.Context, id string) error
}

type SiteRepository interface {
	Save(ctx context.Context, s *domain.Site) error
	FindByID(ctx context.Context, id string) (*domain.Site, error)
	FindByLotID(ctx context.Context, lotID string) ([]domain.Site, error)
	Update(ctx context.Context, s *domain.Site) error
	Delete(ctx context.Context, id string) error
	SaveAssignment(ctx context.Context, a *domain.SiteAssignment) error
	FindAssignment(ctx context.Context, siteID, userID string) (*domain.SiteAssignment, error)
	FindAssignmentsByUserID(ctx context.Context, userID string) ([]domain.SiteAssignment, error)
}

type CustomerRepository interface {
	Save(ctx context.Context, c *domain.Customer) error
	FindByID(ctx context.Context, id string) (*domain.Customer, error)
	FindByDocument(ctx context.Context, document string) (*domain.Customer, error)
	FindAll(ctx context.Context) ([]domain.Customer, error)
	Update(ctx context.Context, c *domain.Customer) error
	Delete(ctx context.Context, id string) error
}

type UserRepository interface {
	Save(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByDocument(ctx context.Context, document string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
}

type ParkingLotRepository interface {
	Save(ctx context.Context, lot *domain.ParkingLot) error
	FindByID(ctx context.Context, id string) (*domain.ParkingLot, error)
	FindByOwnerUserID(ctx context.Context, userID string) (*domain.ParkingLot, error)
	Update(ctx context.Context, lot *domain.ParkingLot) error
}

type RateRepository interface {
	Save(ctx context.Context, r *domain.Rate) error
	FindByID(ctx context.Context, id string) (*domain.Rate, error)
	FindAll(ctx context.Context) ([]domain.Rate, error)
	Update(ctx context.Context, r *domain.Rate) error
	Delete(ctx context.Context, id string) error
}

type RateTypeRepository interface {
	Save(ctx context.Context, rt *domain.RateType) error
	FindByID(ctx context.Context, id string) (*domain.RateType, error)
	FindAll(ctx context.Context) ([]domain.RateType, error)
	Update(ctx context.Context, rt *domain.RateType) error
	Delete(ctx context.Context, id string) error
}

type VehicleTypeRepository interface {
	Save(ctx context.Context, vt *domain.VehicleType) error
	FindByID(ctx context.Context, id string) (*domain.VehicleType, error)
	FindAll(ctx context.Context) ([]domain.VehicleType, error)
	Delete(ctx context.Context, id string) error
}

type PaymentMethodRepository interface {
	Save(ctx context.Context, pm *domain.PaymentMethod) error
	FindByID(ctx context.Context, id string) (*domain.PaymentMethod, error)
	FindAll(ctx context.Context) ([]domain.PaymentMethod, error)
	Update(ctx context.Context, pm *domain.PaymentMethod) error
	Delete(ctx context.Context, id string) error
}

type PeriodicityRepository interface {
	Save(ctx context.Context, p *domain.Periodicity) error
	FindByID(ctx context.Context, id string) (*domain.Periodicity, error)
	FindByLotID(ctx context.Context, lotID string) ([]domain.Periodicity, error)
	Delete(ctx context.Context, id string) error
}
