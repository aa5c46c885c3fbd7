package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ParkingLot is the business entity owning sites and their modules.
type ParkingLot struct {
	ID                 string    `json:"id" gorm:"primaryKey"`
	CommercialRegistry string    `json:"commercial_registry"` // RUT
	Name               string    `json:"name"`
	Address            string    `json:"address"`
	City               string    `json:"city"`
	Email              string    `json:"email" gorm:"uniqueIndex"`
	Phone              string    `json:"phone"`
	CountryID          string    `json:"country_id"`
	OwnerUserID        string    `json:"owner_user_id" gorm:"index"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// Site is a physical location of a parking lot (sede).
type Site struct {
	ID           string    `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name"`
	Address      string    `json:"address"`
	Phone        string    `json:"phone"`
	Email        string    `json:"email" gorm:"uniqueIndex"`
	ParkingLotID string    `json:"parking_lot_id" gorm:"index"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ParkingModule is a single bay within a site. Availability is derived from
// whether an open session references it, never stored.
type ParkingModule struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	SiteID      string    `json:"site_id" gorm:"index"`
	Enabled     bool      `json:"enabled" gorm:"default:true"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// SiteAssignment links an operator user to the site they work at.
type SiteAssignment struct {
	ID     string `json:"id" gorm:"primaryKey"`
	SiteID string `json:"site_id" gorm:"index"`
	UserID string `json:"user_id" gorm:"index"`
}

// ParkingSession is one vehicle's occupancy of a module, from entry to exit.
// ExitTime is nil while the session is open. A session is mutated exactly once,
// at exit, and never deleted.
//
// Invariants (also enforced by partial unique indexes, see postgres migrations):
// at most one open session per vehicle, at most one open session per module.
type ParkingSession struct {
	ID              string          `json:"id" gorm:"primaryKey"`
	VehicleID       string          `json:"vehicle_id" gorm:"index"`
	ModuleID        string          `json:"module_id" gorm:"index"`
	EntryTime       time.Time       `json:"entry_time"`
	ExitTime        *time.Time      `json:"exit_time,omitempty"`
	AmountPaid      decimal.Decimal `json:"amount_paid" gorm:"type:numeric(12,2);default:0"`
	PaymentMethodID *string         `json:"payment_method_id,omitempty"`
	LeaseCovered    bool            `json:"lease_covered"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// Open reports whether the session is still occupying its module.
func (s *ParkingSession) Open() bool {
	return s.ExitTime == nil
}
