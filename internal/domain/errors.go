package domain

import (
	"errors"
)

// Business-rule outcomes. Handlers translate these into non-"success" status
// strings on HTTP 200 responses; they are expected user-facing results, not
// system failures.
var (
	ErrModuleOccupied        = errors.New("module occupied")
	ErrModuleDisabled        = errors.New("module disabled")
	ErrVehicleAlreadyParked  = errors.New("vehicle already parked")
	ErrLeaseExpired          = errors.New("lease expired")
	ErrLeasePaused           = errors.New("lease paused")
	ErrLeaseAlreadyPaused    = errors.New("lease already paused")
	ErrLeaseNotPaused        = errors.New("lease not paused")
	ErrPauseExceedsRemaining = errors.New("pause duration exceeds remaining lease time")
	ErrDuplicateDocument     = errors.New("document already registered")
	ErrDuplicateEmail        = errors.New("email already registered")
	ErrAlreadyAssigned       = errors.New("user already assigned to site")
)

// Not-found outcomes, mapped to HTTP 404 or a "failure" status per endpoint.
var (
	ErrVehicleNotFound  = errors.New("vehicle not found")
	ErrSessionNotFound  = errors.New("session not found or already closed")
	ErrLeaseNotFound    = errors.New("lease not found")
	ErrModuleNotFound   = errors.New("module not found")
	ErrCustomerNotFound = errors.New("customer not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrRateNotFound     = errors.New("rate not found")
	ErrNotFound         = errors.New("not found")
)
