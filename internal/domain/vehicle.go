package domain

import (
	"time"
)

// Vehicle is a vehicle known to the parking lot, identified by its plate.
// Vehicles created at the entry gate carry only plate, type and default rate;
// the customer link is attached later by the customer-management flow.
type Vehicle struct {
	ID            string    `json:"id" gorm:"primaryKey"`
	Plate         string    `json:"plate" gorm:"uniqueIndex"`
	Brand         string    `json:"brand"`
	Model         string    `json:"model"`
	VehicleTypeID string    `json:"vehicle_type_id" gorm:"index"`
	RateID        string    `json:"rate_id"` // default pay-per-use rate
	CustomerID    *string   `json:"customer_id,omitempty" gorm:"index"`
	Available     bool      `json:"available" gorm:"default:true"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type VehicleType struct {
	ID   string `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"uniqueIndex"`
}
