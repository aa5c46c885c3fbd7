package domain

import (
	"time"
)

type UserRole string

const (
	UserRoleOwner    UserRole = "owner"    // propietario
	UserRoleAdmin    UserRole = "admin"    // administrador
	UserRoleOperator UserRole = "operator" // operario
)

type User struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	Document  string    `json:"document" gorm:"uniqueIndex"`
	Names     string    `json:"names"`
	Surnames  string    `json:"surnames"`
	Email     string    `json:"email" gorm:"uniqueIndex"`
	Password  string    `json:"-"` // bcrypt hash
	Role      UserRole  `json:"role"`
	Active    bool      `json:"active" gorm:"default:true"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
