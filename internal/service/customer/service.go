package customer

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/seu-repo/sigep-parking/internal/domain"
	"github.com/seu-repo/sigep-parking/internal/ports"
)

// Service manages customers and their vehicle links.
type Service struct {
	customers ports.CustomerRepository
	vehicles  ports.VehicleRepository
	now       func() time.Time
	log       *zap.Logger
}

func NewService(customers ports.CustomerRepository, vehicles ports.VehicleRepository, log *zap.Logger) *Service {
	return &Service{
		customers: customers,
		vehicles:  vehicles,
		now:       time.Now,
		log:       log,
	}
}

// Create registers a customer. A duplicate document is a business outcome
// ("existente"), not a failure. When a plate is supplied the matching vehicle
// is linked to the new customer.
func (s *Service) Create(ctx context.Context, req ports.CustomerRequest) (*domain.Customer, error) {
	existing, err := s.customers.FindByDocument(ctx, req.Document)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicateDocument
	}

	customer := &domain.Customer{
		ID:           uuid.New().String(),
		Document:     req.Document,
		Names:        req.Names,
		Surnames:     req.Surnames,
		Phone:        req.Phone,
		Email:        req.Email,
		Address:      req.Address,
		Active:       true,
		ParkingLotID: req.ParkingLotID,
		CreatedAt:    s.now(),
		UpdatedAt:    s.now(),
	}
	if err := s.customers.Save(ctx, customer); err != nil {
		return nil, err
	}

	if req.Plate != "" {
		vehicle, err := s.vehicles.FindByPlate(ctx, req.Plate)
		if err != nil {
			return nil, err
		}
		if vehicle != nil {
			vehicle.CustomerID = &customer.ID
			vehicle.UpdatedAt = s.now()
			if err := s.vehicles.Update(ctx, vehicle); err != nil {
				return nil, err
			}
		}
	}

	s.log.Info("customer created", zap.String("document", customer.Document))
	return customer, nil
}

func (s *Service) Update(ctx context.Context, document string, req ports.CustomerRequest) (*domain.Customer, error) {
	customer, err := s.customers.FindByDocument(ctx, document)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrCustomerNotFound
	}

	customer.Document = req.Document
	customer.Names = req.Names
	customer.Surnames = req.Surnames
	customer.Phone = req.Phone
	customer.Email = req.Email
	customer.Address = req.Address
	if req.ParkingLotID != "" {
		customer.ParkingLotID = req.ParkingLotID
	}
	customer.UpdatedAt = s.now()

	if err := s.customers.Update(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

func (s *Service) Delete(ctx context.Context, document string) error {
	customer, err := s.customers.FindByDocument(ctx, document)
	if err != nil {
		return err
	}
	if customer == nil {
		return domain.ErrCustomerNotFound
	}
	return s.customers.Delete(ctx, customer.ID)
}

func (s *Service) List(ctx context.Context) ([]domain.Customer, error) {
	return s.customers.FindAll(ctx)
}

func (s *Service) ToggleActive(ctx context.Context, document string) (*domain.Customer, error) {
	customer, err := s.customers.FindByDocument(ctx, document)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrCustomerNotFound
	}

	customer.Active = !customer.Active
	customer.UpdatedAt = s.now()
	if err := s.customers.Update(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

func (s *Service) FindByVehiclePlate(ctx context.Context, plate string) (*domain.Customer, error) {
	vehicle, err := s.vehicles.FindByPlate(ctx, plate)
	if err != nil {
		return nil, err
	}
	if vehicle == nil {
		return nil, domain.ErrVehicleNotFound
	}
	if vehicle.CustomerID == nil {
		return nil, domain.ErrCustomerNotFound
	}
	customer, err := s.customers.FindByID(ctx, *vehicle.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrCustomerNotFound
	}
	return customer, nil
}
