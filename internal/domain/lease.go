package domain

import (
	"time"
)

// Lease is a recurring parking contract for a vehicle (arrendamiento).
// A lease covers entries between StartTime and EndTime; billing happens on the
// lease's own recurrence, never per visit.
//
// Invariant: EndTime is after StartTime. When a pause is applied, EndTime is
// extended by exactly the pause duration at that moment.
type Lease struct {
	ID              string     `json:"id" gorm:"primaryKey"`
	Description     string     `json:"description"`
	VehicleID       string     `json:"vehicle_id" gorm:"index"`
	RateID          string     `json:"rate_id"`
	PaymentMethodID string     `json:"payment_method_id"`
	PeriodicityID   string     `json:"periodicity_id"`
	StartTime       time.Time  `json:"start_time"`
	EndTime         time.Time  `json:"end_time" gorm:"index"`
	Paused          bool       `json:"paused"`
	PauseDays       int        `json:"pause_days"`
	PausedAt        *time.Time `json:"paused_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// ActiveAt reports whether the lease covers the given instant, regardless of
// the paused flag.
func (l *Lease) ActiveAt(t time.Time) bool {
	return !l.StartTime.After(t) && !l.EndTime.Before(t)
}

// ExpiredAt reports whether the lease ended before the given instant.
func (l *Lease) ExpiredAt(t time.Time) bool {
	return t.After(l.EndTime)
}
