package parking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/seu-repo/sigep-parking/internal/domain"
	"github.com/seu-repo/sigep-parking/internal/mocks"
	"github.com/seu-repo/sigep-parking/internal/ports"
)

func newTestLogger() *zap.Logger {
	logger, _ := zap.NewDevelopment()
	return logger
}

func fixedNow() time.Time {
	return time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
}

type serviceMocks struct {
	vehicles     *mocks.MockVehicleRepository
	sessions     *mocks.MockSessionRepository
	leases       *mocks.MockLeaseRepository
	modules      *mocks.MockModuleRepository
	rates        *mocks.MockRateRepository
	rateTypes    *mocks.MockRateTypeRepository
	vehicleTypes *mocks.MockVehicleTypeRepository
	methods      *mocks.MockPaymentMethodRepository
	gateway      *mocks.MockPaymentGateway
	mq           *mocks.MockMessageQueue
}

func newServiceMocks() *serviceMocks {
	return &serviceMocks{
		vehicles:     &mocks.MockVehicleRepository{},
		sessions:     &mocks.MockSessionRepository{},
		leases:       &mocks.MockLeaseRepository{},
		modules:      &mocks.MockModuleRepository{},
		rates:        &mocks.MockRateRepository{},
		rateTypes:    &mocks.MockRateTypeRepository{},
		vehicleTypes: &mocks.MockVehicleTypeRepository{},
		methods:      &mocks.MockPaymentMethodRepository{},
		gateway:      &mocks.MockPaymentGateway{},
		mq:           mocks.NewMockMessageQueue(),
	}
}

func (sm *serviceMocks) build() *Service {
	svc := NewService(
		sm.vehicles, sm.sessions, sm.leases, sm.modules,
		sm.rates, sm.rateTypes, sm.vehicleTypes, sm.methods,
		sm.gateway, sm.mq, newTestLogger(),
	)
	svc.now = fixedNow
	return svc
}

func enabledModule() *domain.ParkingModule {
	return &domain.ParkingModule{
		ID:      "mod-1",
		Name:    "A-01",
		SiteID:  "site-1",
		Enabled: true,
	}
}

func hourlyRate() *domain.Rate {
	return &domain.Rate{
		ID:         "rate-hour",
		Name:       "Hora carro",
		Cost:       decimal.NewFromInt(3000),
		RateTypeID: "rt-hour",
	}
}

func TestEnter_ModuleOccupied(t *testing.T) {
	// Arrange
	ctx := context.Background()
	sm := newServiceMocks()
	sm.modules.FindByIDFunc = func(ctx context.Context, id string) (*domain.ParkingModule, error) {
		return enabledModule(), nil
	}
	sm.sessions.FindOpenByModuleIDFunc = func(ctx context.Context, moduleID string) (*domain.ParkingSession, error) {
		return &domain.ParkingSession{ID: "sess-other", ModuleID: moduleID}, nil
	}
	svc := sm.build()

	// Act
	_, err := svc.Enter(ctx, ports.EnterRequest{ModuleID: "mod-1", Plate: "ABC123"})

	// Assert
	if !errors.Is(err, domain.ErrModuleOccupied) {
		t.Fatalf("expected ErrModuleOccupied, got %v", err)
	}
}

func TestEnter_ModuleDisabled(t *testing.T) {
	// Arrange
	ctx := context.Background()
	sm := newServiceMocks()
	sm.modules.FindByIDFunc = func(ctx context.Context, id string) (*domain.ParkingModule, error) {
		m := enabledModule()
		m.Enabled = false
		return m, nil
	}
	svc := sm.build()

	// Act
	_, err := svc.Enter(ctx, ports.EnterRequest{ModuleID: "mod-1", Plate: "ABC123"})

	// Assert
	if !errors.Is(err, domain.ErrModuleDisabled) {
		t.Fatalf("expected ErrModuleDisabled, got %v", err)
	}
}

func TestEnter_VehicleAlreadyParked(t *testing.T) {
	// Arrange
	ctx := context.Background()
	sm := newServiceMocks()
	sm.modules.FindByIDFunc = func(ctx context.Context, id string) (*domain.ParkingModule, error) {
		return enabledModule(), nil
	}
	sm.vehicles.FindByPlateFunc = func(ctx context.Context, plate string) (*domain.Vehicle, error) {
		return &domain.Vehicle{ID: "veh-1", Plate: plate}, nil
	}
	sm.sessions.FindOpenByVehicleIDFunc = func(ctx context.Context, vehicleID string) (*domain.ParkingSession, error) {
		return &domain.ParkingSession{ID: "sess-open", VehicleID: vehicleID}, nil
	}
	svc := sm.build()

	// Act
	_, err := svc.Enter(ctx, ports.EnterRequest{ModuleID: "mod-1", Plate: "ABC123"})

	// Assert
	if !errors.Is(err, domain.ErrVehicleAlreadyParked) {
		t.Fatalf("expected ErrVehicleAlreadyParked, got %v", err)
	}
}

func TestEnter_LeaseCoveredUsesLeaseRate(t *testing.T) {
	// Arrange
	ctx := context.Background()
	sm := newServiceMocks()
	sm.modules.FindByIDFunc = func(ctx context.Context, id string) (*domain.ParkingModule, error) {
		return enabledModule(), nil
	}
	sm.vehicles.FindByPlateFunc = func(ctx context.Context, plate string) (*domain.Vehicle, error) {
		return &domain.Vehicle{ID: "veh-1", Plate: plate, RateID: "rate-default", VehicleTypeID: "vt-1"}, nil
	}
	sm.leases.FindActiveByVehicleIDFunc = func(ctx context.Context, vehicleID string, at time.Time) (*domain.Lease, error) {
		return &domain.Lease{
			ID:        "lease-1",
			VehicleID: vehicleID,
			RateID:    "rate-month",
			StartTime: at.AddDate(0, 0, -5),
			EndTime:   at.AddDate(0, 0, 25),
		}, nil
	}
	sm.rates.FindByIDFunc = func(ctx context.Context, id string) (*domain.Rate, error) {
		if id != "rate-month" {
			t.Errorf("expected lease rate lookup, got %q", id)
		}
		return &domain.Rate{ID: id, Name: "Mensualidad", Cost: decimal.NewFromInt(120000)}, nil
	}
	sm.vehicleTypes.FindByIDFunc = func(ctx context.Context, id string) (*domain.VehicleType, error) {
		return &domain.VehicleType{ID: id, Name: "Carro"}, nil
	}
	svc := sm.build()

	// Act
	result, err := svc.Enter(ctx, ports.EnterRequest{ModuleID: "mod-1", Plate: "ABC123"})

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !result.LeaseCovered {
		t.Error("expected entry to be lease covered")
	}
	if !result.Session.LeaseCovered {
		t.Error("expected session marked lease covered")
	}
	if result.Rate.ID != "rate-month" {
		t.Errorf("expected lease rate on result, got %q", result.Rate.ID)
	}
	if len(sm.mq.PublishedMessages["parking.entered"]) != 1 {
		t.Error("expected one parking.entered event")
	}
}

func TestEnter_LeasePausedRefused(t *testing.T) {
	// Arrange
	ctx := context.Background()
	sm := newServiceMocks()
	sm.modules.FindByIDFunc = func(ctx context.Context, id string) (*domain.ParkingModule, error) {
		return enabledModule(), nil
	}
	sm.vehicles.FindByPlateFunc = func(ctx context.Context, plate string) (*domain.Vehicle, error) {
		return &domain.Vehicle{ID: "veh-1", Plate: plate}, nil
	}
	sm.leases.FindActiveByVehicleIDFunc = func(ctx context.Context, vehicleID string, at time.Time) (*domain.Lease, error) {
		return &domain.Lease{
			ID:        "lease-1",
			VehicleID: vehicleID,
			Paused:    true,
			StartTime: at.AddDate(0, 0, -5),
			EndTime:   at.AddDate(0, 0, 25),
		}, nil
	}
	svc := sm.build()

	// Act
	_, err := svc.Enter(ctx, ports.EnterRequest{ModuleID: "mod-1", Plate: "ABC123"})

	// Assert
	if !errors.Is(err, domain.ErrLeasePaused) {
		t.Fatalf("expected ErrLeasePaused, got %v", err)
	}
}

func TestEnter_LeaseExpiredRefused(t *testing.T) {
	// Arrange
	ctx := context.Background()
	sm := newServiceMocks()
	sm.modules.FindByIDFunc = func(ctx context.Context, id string) (*domain.ParkingModule, error) {
		return enabledModule(), nil
	}
	sm.vehicles.FindByPlateFunc = func(ctx context.Context, plate string) (*domain.Vehicle, error) {
		return &domain.Vehicle{ID: "veh-1", Plate: plate}, nil
	}
	sm.leases.FindLatestByVehicleIDFunc = func(ctx context.Context, vehicleID string) (*domain.Lease, error) {
		return &domain.Lease{
			ID:        "lease-old",
			VehicleID: vehicleID,
			StartTime: fixedNow().AddDate(0, -2, 0),
			EndTime:   fixedNow().AddDate(0, -1, 0),
		}, nil
	}
	svc := sm.build()

	// Act
	_, err := svc.Enter(ctx, ports.EnterRequest{ModuleID: "mod-1", Plate: "ABC123"})

	// Assert
	if !errors.Is(err, domain.ErrLeaseExpired) {
		t.Fatalf("expected ErrLeaseExpired, got %v", err)
	}
}

func TestEnter_FutureLeaseDoesNotBlock(t *testing.T) {
	// Arrange
	ctx := context.Background()
	sm := newServiceMocks()
	sm.modules.FindByIDFunc = func(ctx context.Context, id string) (*domain.ParkingModule, error) {
		return enabledModule(), nil
	}
	sm.vehicles.FindByPlateFunc = func(ctx context.Context, plate string) (*domain.Vehicle, error) {
		return &domain.Vehicle{ID: "veh-1", Plate: plate, RateID: "rate-hour", VehicleTypeID: "vt-1"}, nil
	}
	sm.leases.FindLatestByVehicleIDFunc = func(ctx context.Context, vehicleID string) (*domain.Lease, error) {
		return &domain.Lease{
			ID:        "lease-future",
			VehicleID: vehicleID,
			StartTime: fixedNow().AddDate(0, 0, 3),
			EndTime:   fixedNow().AddDate(0, 1, 3),
		}, nil
	}
	sm.rates.FindByIDFunc = func(ctx context.Context, id string) (*domain.Rate, error) {
		return hourlyRate(), nil
	}
	sm.vehicleTypes.FindByIDFunc = func(ctx context.Context, id string) (*domain.VehicleType, error) {
		return &domain.VehicleType{ID: id, Name: "Carro"}, nil
	}
	svc := sm.build()

	// Act
	result, err := svc.Enter(ctx, ports.EnterRequest{ModuleID: "mod-1", Plate: "ABC123"})

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result.LeaseCovered {
		t.Error("expected a pay-per-use entry, got lease covered")
	}
}

func TestEnter_UnknownPlateCreatesVehicle(t *testing.T) {
	// Arrange
	ctx := context.Background()
	sm := newServiceMocks()
	var saved *domain.Vehicle
	sm.modules.FindByIDFunc = func(ctx context.Context, id string) (*domain.ParkingModule, error) {
		return enabledModule(), nil
	}
	sm.vehicles.SaveFunc = func(ctx context.Context, v *domain.Vehicle) error {
		saved = v
		return nil
	}
	sm.rates.FindByIDFunc = func(ctx context.Context, id string) (*domain.Rate, error) {
		return hourlyRate(), nil
	}
	sm.vehicleTypes.FindByIDFunc = func(ctx context.Context, id string) (*domain.VehicleType, error) {
		return &domain.VehicleType{ID: id, Name: "Moto"}, nil
	}
	svc := sm.build()

	// Act
	result, err := svc.Enter(ctx, ports.EnterRequest{
		ModuleID:      "mod-1",
		Plate:         "XYZ789",
		VehicleTypeID: "vt-moto",
		RateID:        "rate-hour",
	})

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if saved == nil {
		t.Fatal("expected the vehicle to be created")
	}
	if saved.Plate != "XYZ789" || saved.VehicleTypeID != "vt-moto" || saved.RateID != "rate-hour" {
		t.Errorf("vehicle created with wrong fields: %+v", saved)
	}
	if result.LeaseCovered {
		t.Error("new vehicles cannot be lease covered")
	}
}

func TestExit_VehicleNotFound(t *testing.T) {
	// Arrange
	ctx := context.Background()
	sm := newServiceMocks()
	svc := sm.build()

	// Act
	err := svc.Exit(ctx, ports.ExitRequest{Plate: "NOPE"})

	// Assert
	if !errors.Is(err, domain.ErrVehicleNotFound) {
		t.Fatalf("expected ErrVehicleNotFound, got %v", err)
	}
}

func TestExit_NoOpenSession(t *testing.T) {
	// Arrange
	ctx := context.Background()
	sm := newServiceMocks()
	sm.vehicles.FindByPlateFunc = func(ctx context.Context, plate string) (*domain.Vehicle, error) {
		return &domain.Vehicle{ID: "veh-1", Plate: plate}, nil
	}
	svc := sm.build()

	// Act
	err := svc.Exit(ctx, ports.ExitRequest{Plate: "ABC123"})

	// Assert
	if !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestExit_LeaseCoveredRecordsNoPayment(t *testing.T) {
	// Arrange
	ctx := context.Background()
	sm := newServiceMocks()
	var updated *domain.ParkingSession
	sm.vehicles.FindByPlateFunc = func(ctx context.Context, plate string) (*domain.Vehicle, error) {
		return &domain.Vehicle{ID: "veh-1", Plate: plate}, nil
	}
	sm.sessions.FindOpenByVehicleIDFunc = func(ctx context.Context, vehicleID string) (*domain.ParkingSession, error) {
		return &domain.ParkingSession{
			ID:           "sess-1",
			VehicleID:    vehicleID,
			ModuleID:     "mod-1",
			EntryTime:    fixedNow().Add(-2 * time.Hour),
			LeaseCovered: true,
		}, nil
	}
	sm.sessions.UpdateFunc = func(ctx context.Context, s *domain.ParkingSession) error {
		updated = s
		return nil
	}
	svc := sm.build()

	// Act
	err := svc.Exit(ctx, ports.ExitRequest{Plate: "ABC123", LeaseCovered: true})

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if updated == nil {
		t.Fatal("expected the session to be updated")
	}
	if updated.ExitTime == nil || !updated.ExitTime.Equal(fixedNow()) {
		t.Errorf("expected exit time %v, got %v", fixedNow(), updated.ExitTime)
	}
	if !updated.AmountPaid.IsZero() {
		t.Errorf("lease-covered exit must not record a payment, got %s", updated.AmountPaid)
	}
	if updated.PaymentMethodID != nil {
		t.Error("lease-covered exit must not record a payment method")
	}
	if len(sm.gateway.Charges) != 0 {
		t.Error("lease-covered exit must not touch the payment gateway")
	}
}

func TestExit_CardPaymentCharged(t *testing.T) {
	// Arrange
	ctx := context.Background()
	sm := newServiceMocks()
	amount := decimal.NewFromInt(9000)
	sm.vehicles.FindByPlateFunc = func(ctx context.Context, plate string) (*domain.Vehicle, error) {
		return &domain.Vehicle{ID: "veh-1", Plate: plate}, nil
	}
	sm.sessions.FindOpenByVehicleIDFunc = func(ctx context.Context, vehicleID string) (*domain.ParkingSession, error) {
		return &domain.ParkingSession{
			ID:        "sess-1",
			VehicleID: vehicleID,
			ModuleID:  "mod-1",
			EntryTime: fixedNow().Add(-3 * time.Hour),
		}, nil
	}
	sm.methods.FindByIDFunc = func(ctx context.Context, id string) (*domain.PaymentMethod, error) {
		return &domain.PaymentMethod{ID: id, Name: "Tarjeta", Card: true}, nil
	}
	svc := sm.build()

	// Act
	err := svc.Exit(ctx, ports.ExitRequest{
		Plate:           "ABC123",
		AmountPaid:      amount,
		PaymentMethodID: "pm-card",
	})

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(sm.gateway.Charges) != 1 {
		t.Fatalf("expected one gateway charge, got %d", len(sm.gateway.Charges))
	}
	if !sm.gateway.Charges[0].Equal(amount) {
		t.Errorf("expected charge of %s, got %s", amount, sm.gateway.Charges[0])
	}
}

func TestExit_CashPaymentSkipsGateway(t *testing.T) {
	// Arrange
	ctx := context.Background()
	sm := newServiceMocks()
	sm.vehicles.FindByPlateFunc = func(ctx context.Context, plate string) (*domain.Vehicle, error) {
		return &domain.Vehicle{ID: "veh-1", Plate: plate}, nil
	}
	sm.sessions.FindOpenByVehicleIDFunc = func(ctx context.Context, vehicleID string) (*domain.ParkingSession, error) {
		return &domain.ParkingSession{ID: "sess-1", VehicleID: vehicleID, EntryTime: fixedNow().Add(-time.Hour)}, nil
	}
	sm.methods.FindByIDFunc = func(ctx context.Context, id string) (*domain.PaymentMethod, error) {
		return &domain.PaymentMethod{ID: id, Name: "Efectivo", Card: false}, nil
	}
	svc := sm.build()

	// Act
	err := svc.Exit(ctx, ports.ExitRequest{
		Plate:           "ABC123",
		AmountPaid:      decimal.NewFromInt(3000),
		PaymentMethodID: "pm-cash",
	})

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(sm.gateway.Charges) != 0 {
		t.Error("cash payments must not hit the gateway")
	}
	if len(sm.mq.PublishedMessages["parking.exited"]) != 1 {
		t.Error("expected one parking.exited event")
	}
}

func TestQuoteOpenSession_RoundsUpToWholeUnits(t *testing.T) {
	// Arrange
	ctx := context.Background()
	sm := newServiceMocks()
	sm.vehicles.FindByPlateFunc = func(ctx context.Context, plate string) (*domain.Vehicle, error) {
		return &domain.Vehicle{ID: "veh-1", Plate: plate, RateID: "rate-hour"}, nil
	}
	sm.sessions.FindOpenByVehicleIDFunc = func(ctx context.Context, vehicleID string) (*domain.ParkingSession, error) {
		return &domain.ParkingSession{
			ID:        "sess-1",
			VehicleID: vehicleID,
			EntryTime: fixedNow().Add(-150 * time.Minute),
		}, nil
	}
	sm.rates.FindByIDFunc = func(ctx context.Context, id string) (*domain.Rate, error) {
		return hourlyRate(), nil
	}
	sm.rateTypes.FindByIDFunc = func(ctx context.Context, id string) (*domain.RateType, error) {
		return &domain.RateType{ID: id, Name: "Hora", Unit: domain.RateUnitHour}, nil
	}
	svc := sm.build()

	// Act
	quote, err := svc.QuoteOpenSession(ctx, "ABC123")

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if quote.Units != 3 {
		t.Errorf("expected 2.5h to bill 3 units, got %d", quote.Units)
	}
	want := decimal.NewFromInt(9000)
	if !quote.Due.Equal(want) {
		t.Errorf("expected %s due, got %s", want, quote.Due)
	}
}
