package mocks

import (
	"context"
	"time"

	"github.com/seu-repo/sigep-parking/internal/domain"
)

// MockVehicleRepository is a mock implementation of VehicleRepository
type MockVehicleRepository struct {
	SaveFunc        func(ctx context.Context, v *domain.Vehicle) error
	FindByIDFunc    func(ctx context.Context, id string) (*domain.Vehicle, error)
	FindByPlateFunc func(ctx context.Context, plate string) (*domain.Vehicle, error)
	UpdateFunc      func(ctx context.Context, v *domain.Vehicle) error
}

func (m *MockVehicleRepository) Save(ctx context.Context, v *domain.Vehicle) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, v)
	}
	return nil
}

func (m *MockVehicleRepository) FindByID(ctx context.Context, id string) (*domain.Vehicle, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockVehicleRepository) FindByPlate(ctx context.Context, plate string) (*domain.Vehicle, error) {
	if m.FindByPlateFunc != nil {
		return m.FindByPlateFunc(ctx, plate)
	}
	return nil, nil
}

func (m *MockVehicleRepository) Update(ctx context.Context, v *domain.Vehicle) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, v)
	}
	return nil
}

// MockSessionRepository is a mock implementation of SessionRepository
type MockSessionRepository struct {
	SaveFunc                func(ctx context.Context, s *domain.ParkingSession) error
	FindByIDFunc            func(ctx context.Context, id string) (*domain.ParkingSession, error)
	FindOpenByVehicleIDFunc func(ctx context.Context, vehicleID string) (*domain.ParkingSession, error)
	FindOpenByModuleIDFunc  func(ctx context.Context, moduleID string) (*domain.ParkingSession, error)
	FindOpenBySiteIDFunc    func(ctx context.Context, siteID string) ([]domain.ParkingSession, error)
	UpdateFunc              func(ctx context.Context, s *domain.ParkingSession) error
}

func (m *MockSessionRepository) Save(ctx context.Context, s *domain.ParkingSession) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, s)
	}
	return nil
}

func (m *MockSessionRepository) FindByID(ctx context.Context, id string) (*domain.ParkingSession, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockSessionRepository) FindOpenByVehicleID(ctx context.Context, vehicleID string) (*domain.ParkingSession, error) {
	if m.FindOpenByVehicleIDFunc != nil {
		return m.FindOpenByVehicleIDFunc(ctx, vehicleID)
	}
	return nil, nil
}

func (m *MockSessionRepository) FindOpenByModuleID(ctx context.Context, moduleID string) (*domain.ParkingSession, error) {
	if m.FindOpenByModuleIDFunc != nil {
		return m.FindOpenByModuleIDFunc(ctx, moduleID)
	}
	return nil, nil
}

func (m *MockSessionRepository) FindOpenBySiteID(ctx context.Context, siteID string) ([]domain.ParkingSession, error) {
	if m.FindOpenBySiteIDFunc != nil {
		return m.FindOpenBySiteIDFunc(ctx, siteID)
	}
	return nil, nil
}

func (m *MockSessionRepository) Update(ctx context.Context, s *domain.ParkingSession) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, s)
	}
	return nil
}

// MockLeaseRepository is a mock implementation of LeaseRepository
type MockLeaseRepository struct {
	SaveFunc                  func(ctx context.Context, l *domain.Lease) error
	FindByIDFunc              func(ctx context.Context, id string) (*domain.Lease, error)
	FindActiveByVehicleIDFunc func(ctx context.Context, vehicleID string, at time.Time) (*domain.Lease, error)
	FindLatestByVehicleIDFunc func(ctx context.Context, vehicleID string) (*domain.Lease, error)
	FindByVehicleIDFunc       func(ctx context.Context, vehicleID string) ([]domain.Lease, error)
	FindExpiringBetweenFunc   func(ctx context.Context, from, to time.Time) ([]domain.Lease, error)
	UpdateFunc                func(ctx context.Context, l *domain.Lease) error
	DeleteFunc                func(ctx context.Context, id string) error
}

func (m *MockLeaseRepository) Save(ctx context.Context, l *domain.Lease) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, l)
	}
	return nil
}

func (m *MockLeaseRepository) FindByID(ctx context.Context, id string) (*domain.Lease, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockLeaseRepository) FindActiveByVehicleID(ctx context.Context, vehicleID string, at time.Time) (*domain.Lease, error) {
	if m.FindActiveByVehicleIDFunc != nil {
		return m.FindActiveByVehicleIDFunc(ctx, vehicleID, at)
	}
	return nil, nil
}

func (m *MockLeaseRepository) FindLatestByVehicleID(ctx context.Context, vehicleID string) (*domain.Lease, error) {
	if m.FindLatestByVehicleIDFunc != nil {
		return m.FindLatestByVehicleIDFunc(ctx, vehicleID)
	}
	return nil, nil
}

func (m *MockLeaseRepository) FindByVehicleID(ctx context.Context, vehicleID string) ([]domain.Lease, error) {
	if m.FindByVehicleIDFunc != nil {
		return m.FindByVehicleIDFunc(ctx, vehicleID)
	}
	return nil, nil
}

func (m *MockLeaseRepository) FindExpiringBetween(ctx context.Context, from, to time.Time) ([]domain.Lease, error) {
	if m.FindExpiringBetweenFunc != nil {
		return m.FindExpiringBetweenFunc(ctx, from, to)
	}
	return nil, nil
}

func (m *MockLeaseRepository) Update(ctx context.Context, l *domain.Lease) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, l)
	}
	return nil
}

func (m *MockLeaseRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// MockModuleRepository is a mock implementation of ModuleRepository
type MockModuleRepository struct {
	SaveFunc         func(ctx context.Context, mod *domain.ParkingModule) error
	FindByIDFunc     func(ctx context.Context, id string) (*domain.ParkingModule, error)
	FindBySiteIDFunc func(ctx context.Context, siteID string) ([]domain.ParkingModule, error)
	UpdateFunc       func(ctx context.Context, mod *domain.ParkingModule) error
	DeleteFunc       func(ctx context.Context, id string) error
}

func (m *MockModuleRepository) Save(ctx context.Context, mod *domain.ParkingModule) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, mod)
	}
	return nil
}

func (m *MockModuleRepository) FindByID(ctx context.Context, id string) (*domain.ParkingModule, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockModuleRepository) FindBySiteID(ctx context.Context, siteID string) ([]domain.ParkingModule, error) {
	if m.FindBySiteIDFunc != nil {
		return m.FindBySiteIDFunc(ctx, siteID)
	}
	return nil, nil
}

func (m *MockModuleRepository) Update(ctx context.Context, mod *domain.ParkingModule) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, mod)
	}
	return nil
}

func (m *MockModuleRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// MockSiteRepository is a mock implementation of SiteRepository
type MockSiteRepository struct {
	SaveFunc                    func(ctx context.Context, s *domain.Site) error
	FindByIDFunc                func(ctx context.Context, id string) (*domain.Site, error)
	FindByLotIDFunc             func(ctx context.Context, lotID string) ([]domain.Site, error)
	UpdateFunc                  func(ctx context.Context, s *domain.Site) error
	DeleteFunc                  func(ctx context.Context, id string) error
	SaveAssignmentFunc          func(ctx context.Context, a *domain.SiteAssignment) error
	FindAssignmentFunc          func(ctx context.Context, siteID, userID string) (*domain.SiteAssignment, error)
	FindAssignmentsByUserIDFunc func(ctx context.Context, userID string) ([]domain.SiteAssignment, error)
}

func (m *MockSiteRepository) Save(ctx context.Context, s *domain.Site) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, s)
	}
	return nil
}

func (m *MockSiteRepository) FindByID(ctx context.Context, id string) (*domain.Site, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockSiteRepository) FindByLotID(ctx context.Context, lotID string) ([]domain.Site, error) {
	if m.FindByLotIDFunc != nil {
		return m.FindByLotIDFunc(ctx, lotID)
	}
	return nil, nil
}

func (m *MockSiteRepository) Update(ctx context.Context, s *domain.Site) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, s)
	}
	return nil
}

func (m *MockSiteRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockSiteRepository) SaveAssignment(ctx context.Context, a *domain.SiteAssignment) error {
	if m.SaveAssignmentFunc != nil {
		return m.SaveAssignmentFunc(ctx, a)
	}
	return nil
}

func (m *MockSiteRepository) FindAssignment(ctx context.Context, siteID, userID string) (*domain.SiteAssignment, error) {
	if m.FindAssignmentFunc != nil {
		return m.FindAssignmentFunc(ctx, siteID, userID)
	}
	return nil, nil
}

func (m *MockSiteRepository) FindAssignmentsByUserID(ctx context.Context, userID string) ([]domain.SiteAssignment, error) {
	if m.FindAssignmentsByUserIDFunc != nil {
		return m.FindAssignmentsByUserIDFunc(ctx, userID)
	}
	return nil, nil
}

// MockCustomerRepository is a mock implementation of CustomerRepository
type MockCustomerRepository struct {
	SaveFunc           func(ctx context.Context, c *domain.Customer) error
	FindByIDFunc       func(ctx context.Context, id string) (*domain.Customer, error)
	FindByDocumentFunc func(ctx context.Context, document string) (*domain.Customer, error)
	FindAllFunc        func(ctx context.Context) ([]domain.Customer, error)
	UpdateFunc         func(ctx context.Context, c *domain.Customer) error
	DeleteFunc         func(ctx context.Context, id string) error
}

func (m *MockCustomerRepository) Save(ctx context.Context, c *domain.Customer) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, c)
	}
	return nil
}

func (m *MockCustomerRepository) FindByID(ctx context.Context, id string) (*domain.Customer, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockCustomerRepository) FindByDocument(ctx context.Context, document string) (*domain.Customer, error) {
	if m.FindByDocumentFunc != nil {
		return m.FindByDocumentFunc(ctx, document)
	}
	return nil, nil
}

func (m *MockCustomerRepository) FindAll(ctx context.Context) ([]domain.Customer, error) {
	if m.FindAllFunc != nil {
		return m.FindAllFunc(ctx)
	}
	return nil, nil
}

func (m *MockCustomerRepository) Update(ctx context.Context, c *domain.Customer) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, c)
	}
	return nil
}

func (m *MockCustomerRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	SaveFunc           func(ctx context.Context, user *domain.User) error
	FindByIDFunc       func(ctx context.Context, id string) (*domain.User, error)
	FindByEmailFunc    func(ctx context.Context, email string) (*domain.User, error)
	FindByDocumentFunc func(ctx context.Context, document string) (*domain.User, error)
	UpdateFunc         func(ctx context.Context, user *domain.User) error
}

func (m *MockUserRepository) Save(ctx context.Context, user *domain.User) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, user)
	}
	return nil
}

func (m *MockUserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	return nil, nil
}

func (m *MockUserRepository) FindByDocument(ctx context.Context, document string) (*domain.User, error) {
	if m.FindByDocumentFunc != nil {
		return m.FindByDocumentFunc(ctx, document)
	}
	return nil, nil
}

func (m *MockUserRepository) Update(ctx context.Context, user *domain.User) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, user)
	}
	return nil
}

// MockParkingLotRepository is a mock implementation of ParkingLotRepository
type MockParkingLotRepository struct {
	SaveFunc              func(ctx context.Context, lot *domain.ParkingLot) error
	FindByIDFunc          func(ctx context.Context, id string) (*domain.ParkingLot, error)
	FindByOwnerUserIDFunc func(ctx context.Context, userID string) (*domain.ParkingLot, error)
	UpdateFunc            func(ctx context.Context, lot *domain.ParkingLot) error
}

func (m *MockParkingLotRepository) Save(ctx context.Context, lot *domain.ParkingLot) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, lot)
	}
	return nil
}

func (m *MockParkingLotRepository) FindByID(ctx context.Context, id string) (*domain.ParkingLot, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockParkingLotRepository) FindByOwnerUserID(ctx context.Context, userID string) (*domain.ParkingLot, error) {
	if m.FindByOwnerUserIDFunc != nil {
		return m.FindByOwnerUserIDFunc(ctx, userID)
	}
	return nil, nil
}

func (m *MockParkingLotRepository) Update(ctx context.Context, lot *domain.ParkingLot) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, lot)
	}
	return nil
}

// MockRateRepository is a mock implementation of RateRepository
type MockRateRepository struct {
	SaveFunc     func(ctx context.Context, r *domain.Rate) error
	FindByIDFunc func(ctx context.Context, id string) (*domain.Rate, error)
	FindAllFunc  func(ctx context.Context) ([]domain.Rate, error)
	UpdateFunc   func(ctx context.Context, r *domain.Rate) error
	DeleteFunc   func(ctx context.Context, id string) error
}

func (m *MockRateRepository) Save(ctx context.Context, r *domain.Rate) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, r)
	}
	return nil
}

func (m *MockRateRepository) FindByID(ctx context.Context, id string) (*domain.Rate, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockRateRepository) FindAll(ctx context.Context) ([]domain.Rate, error) {
	if m.FindAllFunc != nil {
		return m.FindAllFunc(ctx)
	}
	return nil, nil
}

func (m *MockRateRepository) Update(ctx context.Context, r *domain.Rate) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, r)
	}
	return nil
}

func (m *MockRateRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// MockRateTypeRepository is a mock implementation of RateTypeRepository
type MockRateTypeRepository struct {
	SaveFunc     func(ctx context.Context, rt *domain.RateType) error
	FindByIDFunc func(ctx context.Context, id string) (*domain.RateType, error)
	FindAllFunc  func(ctx context.Context) ([]domain.RateType, error)
	UpdateFunc   func(ctx context.Context, rt *domain.RateType) error
	DeleteFunc   func(ctx context.Context, id string) error
}

func (m *MockRateTypeRepository) Save(ctx context.Context, rt *domain.RateType) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, rt)
	}
	return nil
}

func (m *MockRateTypeRepository) FindByID(ctx context.Context, id string) (*domain.RateType, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockRateTypeRepository) FindAll(ctx context.Context) ([]domain.RateType, error) {
	if m.FindAllFunc != nil {
		return m.FindAllFunc(ctx)
	}
	return nil, nil
}

func (m *MockRateTypeRepository) Update(ctx context.Context, rt *domain.RateType) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, rt)
	}
	return nil
}

func (m *MockRateTypeRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// MockVehicleTypeRepository is a mock implementation of VehicleTypeRepository
type MockVehicleTypeRepository struct {
	SaveFunc     func(ctx context.Context, vt *domain.VehicleType) error
	FindByIDFunc func(ctx context.Context, id string) (*domain.VehicleType, error)
	FindAllFunc  func(ctx context.Context) ([]domain.VehicleType, error)
	DeleteFunc   func(ctx context.Context, id string) error
}

func (m *MockVehicleTypeRepository) Save(ctx context.Context, vt *domain.VehicleType) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, vt)
	}
	return nil
}

func (m *MockVehicleTypeRepository) FindByID(ctx context.Context, id string) (*domain.VehicleType, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockVehicleTypeRepository) FindAll(ctx context.Context) ([]domain.VehicleType, error) {
	if m.FindAllFunc != nil {
		return m.FindAllFunc(ctx)
	}
	return nil, nil
}

func (m *MockVehicleTypeRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// MockPaymentMethodRepository is a mock implementation of PaymentMethodRepository
type MockPaymentMethodRepository struct {
	SaveFunc     func(ctx context.Context, pm *domain.PaymentMethod) error
	FindByIDFunc func(ctx context.Context, id string) (*domain.PaymentMethod, error)
	FindAllFunc  func(ctx context.Context) ([]domain.PaymentMethod, error)
	UpdateFunc   func(ctx context.Context, pm *domain.PaymentMethod) error
	DeleteFunc   func(ctx context.Context, id string) error
}

func (m *MockPaymentMethodRepository) Save(ctx context.Context, pm *domain.PaymentMethod) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, pm)
	}
	return nil
}

func (m *MockPaymentMethodRepository) FindByID(ctx context.Context, id string) (*domain.PaymentMethod, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockPaymentMethodRepository) FindAll(ctx context.Context) ([]domain.PaymentMethod, error) {
	if m.FindAllFunc != nil {
		return m.FindAllFunc(ctx)
	}
	return nil, nil
}

func (m *MockPaymentMethodRepository) Update(ctx context.Context, pm *domain.PaymentMethod) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, pm)
	}
	return nil
}

func (m *MockPaymentMethodRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// MockPeriodicityRepository is a mock implementation of PeriodicityRepository
type MockPeriodicityRepository struct {
	SaveFunc        func(ctx context.Context, p *domain.Periodicity) error
	FindByIDFunc    func(ctx context.Context, id string) (*domain.Periodicity, error)
	FindByLotIDFunc func(ctx context.Context, lotID string) ([]domain.Periodicity, error)
	DeleteFunc      func(ctx context.Context, id string) error
}

func (m *MockPeriodicityRepository) Save(ctx context.Context, p *domain.Periodicity) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, p)
	}
	return nil
}

func (m *MockPeriodicityRepository) FindByID(ctx context.Context, id string) (*domain.Periodicity, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockPeriodicityRepository) FindByLotID(ctx context.Context, lotID string) ([]domain.Periodicity, error) {
	if m.FindByLotIDFunc != nil {
		return m.FindByLotIDFunc(ctx, lotID)
	}
	return nil, nil
}

func (m *MockPeriodicityRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}
