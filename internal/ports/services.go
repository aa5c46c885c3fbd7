package ports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/seu-repo/sigep-parking/internal/domain"
)

type AuthService interface {
	Login(ctx context.Context, email, password string) (string, string, error) // access, refresh, err
	Register(ctx context.Context, user *domain.User) error
	RefreshToken(ctx context.Context, token string) (string, error)
	ValidateToken(ctx context.Context, token string) (*domain.User, error)
	Logout(ctx context.Context, userID string) error
	ToggleActive(ctx context.Context, document string) (*domain.User, error)
	SetRole(ctx context.Context, document string, role domain.UserRole) (*domain.User, error)
}

// RateInfo is the resolved rate reported to the gate operator.
type RateInfo struct {
	ID   string          `json:"id"`
	Name string          `json:"name"`
	Cost decimal.Decimal `json:"cost"`
}

// EnterRequest carries the gate operator's entry form. VehicleTypeID and
// RateID are used only when the plate is unseen and a vehicle must be created.
type EnterRequest struct {
	ModuleID      string
	Plate         string
	VehicleTypeID string
	RateID        string
}

// EntryResult is the non-rejecting outcome of an entry: who entered, at which
// rate, and whether the visit is covered by an active lease.
type EntryResult struct {
	Session      *domain.ParkingSession
	Vehicle      *domain.Vehicle
	VehicleType  *domain.VehicleType
	Rate         RateInfo
	LeaseCovered bool
}

type ExitRequest struct {
	Plate           string
	AmountPaid      decimal.Decimal
	PaymentMethodID string
	LeaseCovered    bool
}

// ActiveSession is one row of the per-site occupancy listing. Rate is resolved
// at read time: active lease rate if one covers the vehicle now, default rate
// otherwise.
type ActiveSession struct {
	Session     domain.ParkingSession
	Vehicle     domain.Vehicle
	VehicleType *domain.VehicleType
	Module      domain.ParkingModule
	Rate        RateInfo
	Leased      bool
}

// SessionQuote is the fee owed by an open pay-per-use session at quote time.
type SessionQuote struct {
	Session  domain.ParkingSession
	Rate     RateInfo
	Units    int64
	Due      decimal.Decimal
	Duration time.Duration
}

type ParkingService interface {
	SearchVehicle(ctx context.Context, plate string) (*domain.Vehicle, *domain.VehicleType, error)
	EditVehicle(ctx context.Context, plate string, update VehicleUpdate) (*domain.Vehicle, error)
	Enter(ctx context.Context, req EnterRequest) (*EntryResult, error)
	Exit(ctx context.Context, req ExitRequest) error
	ActiveSessions(ctx context.Context, siteID string) ([]ActiveSession, error)
	QuoteOpenSession(ctx context.Context, plate string) (*SessionQuote, error)
}

// VehicleUpdate is the explicit, typed update surface for a vehicle.
type VehicleUpdate struct {
	Brand         string
	Model         string
	VehicleTypeID string
}

type LeaseRequest struct {
	Description     string
	VehicleID       string
	PeriodicityID   string
	PaymentMethodID string
	RateID          string
	StartTime       time.Time
	EndTime         time.Time
}

// LeaseDetails is a lease joined with the display names its responses carry.
type LeaseDetails struct {
	Lease             domain.Lease
	PeriodicityName   string
	PaymentMethodName string
	RateName          string
	RateCost          decimal.Decimal
}

type LeaseService interface {
	Create(ctx context.Context, req LeaseRequest) (*LeaseDetails, error)
	Update(ctx context.Context, id string, req LeaseRequest) (*LeaseDetails, error)
	Delete(ctx context.Context, id string) error
	ListByVehicle(ctx context.Context, vehicleID string) ([]LeaseDetails, error)
	// TogglePause pauses the lease and extends its end date by pauseDays.
	// Refuses with ErrPauseExceedsRemaining when the lease does not have
	// enough time left, and with ErrLeaseAlreadyPaused on a paused lease.
	TogglePause(ctx context.Context, id string, pauseDays int) (*domain.Lease, error)
	Resume(ctx context.Context, id string) (*domain.Lease, error)
}

type CustomerRequest struct {
	Document     string
	Names        string
	Surnames     string
	Phone        string
	Email        string
	Address      string
	ParkingLotID string
	Plate        string // optional: link an existing vehicle at creation
}

type CustomerService interface {
	Create(ctx context.Context, req CustomerRequest) (*domain.Customer, error)
	Update(ctx context.Context, document string, req CustomerRequest) (*domain.Customer, error)
	Delete(ctx context.Context, document string) error
	List(ctx context.Context) ([]domain.Customer, error)
	ToggleActive(ctx context.Context, document string) (*domain.Customer, error)
	FindByVehiclePlate(ctx context.Context, plate string) (*domain.Customer, error)
}

type EmailService interface {
	Send(ctx context.Context, to, subject, body string) error
}

type TicketService interface {
	// GenerateEntryTicket renders the PDF gate ticket with QR code for a
	// vehicle currently entering.
	GenerateEntryTicket(ctx context.Context, plate, attendant string) ([]byte, error)
}
