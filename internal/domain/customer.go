package domain

import (
	"time"
)

// Customer owns vehicles and leases (cliente). Identified by national document.
type Customer struct {
	ID           string    `json:"id" gorm:"primaryKey"`
	Document     string    `json:"document" gorm:"uniqueIndex"`
	Names        string    `json:"names"`
	Surnames     string    `json:"surnames"`
	Phone        string    `json:"phone"`
	Email        string    `json:"email"`
	Address      string    `json:"address"`
	Active       bool      `json:"active" gorm:"default:true"`
	ParkingLotID string    `json:"parking_lot_id" gorm:"index"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
