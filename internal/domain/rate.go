package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RateUnit is the unit of time a rate is billed in.
type RateUnit string

const (
	RateUnitMinute RateUnit = "minute"
	RateUnitHour   RateUnit = "hour"
	RateUnitDay    RateUnit = "day"
	RateUnitWeek   RateUnit = "week"
	RateUnitMonth  RateUnit = "month"
	RateUnitYear   RateUnit = "year"
)

// Duration returns the length of one billing unit. Months and years use the
// same fixed-day convention the billing reports always have (30/365 days).
func (u RateUnit) Duration() time.Duration {
	switch u {
	case RateUnitMinute:
		return time.Minute
	case RateUnitHour:
		return time.Hour
	case RateUnitDay:
		return 24 * time.Hour
	case RateUnitWeek:
		return 7 * 24 * time.Hour
	case RateUnitMonth:
		return 30 * 24 * time.Hour
	case RateUnitYear:
		return 365 * 24 * time.Hour
	}
	return time.Hour
}

// RateType names a billing time unit (tarifa tipo).
type RateType struct {
	ID   string   `json:"id" gorm:"primaryKey"`
	Name string   `json:"name" gorm:"uniqueIndex"`
	Unit RateUnit `json:"unit"`
}

// Rate is a cost per rate-type unit (tarifa). Vehicles reference a default
// rate; leases may override it with their own.
type Rate struct {
	ID         string          `json:"id" gorm:"primaryKey"`
	Name       string          `json:"name"`
	Cost       decimal.Decimal `json:"cost" gorm:"type:numeric(12,2)"`
	RateTypeID string          `json:"rate_type_id" gorm:"index"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// PaymentMethod is a way of settling a session or lease (medio de pago).
type PaymentMethod struct {
	ID   string `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"uniqueIndex"`
	Card bool   `json:"card"` // card-typed methods go through the payment gateway
}

// Periodicity is the recurrence period of a lease (periodicidad).
type Periodicity struct {
	ID           string `json:"id" gorm:"primaryKey"`
	Name         string `json:"name"`
	Days         int    `json:"days"`
	ParkingLotID string `json:"parking_lot_id" gorm:"index"`
}
