package integration

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
)

// TestDatabase_CustomerCRUD tests customer database operations
func TestDatabase_CustomerCRUD(t *testing.T) {
	env := SetupTestEnvironment(t)
	if env == nil || env.DB == nil {
		t.Skip("Database not available")
	}

	SetupSchema(t, env.DB)
	CleanDatabase(t, env.DB)

	ctx := context.Background()
	customerID := uuid.New().String()

	// Create customer
	t.Run("CreateCustomer", func(t *testing.T) {
		_, err := env.DB.ExecContext(ctx, `
			INSERT INTO customers (id, document, names, surnames, phone, email, active, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`, customerID, "1098765432", "Laura", "Quintero", "3004567890", "laura@example.com", true, time.Now(), time.Now())

		if err != nil {
			t.Fatalf("Failed to create customer: %v", err)
		}
	})

	// Read customer
	t.Run("ReadCustomer", func(t *testing.T) {
		var id, document, names string
		err := env.DB.QueryRowContext(ctx, `
			SELECT id, document, names FROM customers WHERE id = $1
		`, customerID).Scan(&id, &document, &names)

		if err != nil {
			t.Fatalf("Failed to read customer: %v", err)
		}

		if document != "1098765432" {
			t.Errorf("Expected document '1098765432', got '%s'", document)
		}

		if names != "Laura" {
			t.Errorf("Expected names 'Laura', got '%s'", names)
		}
	})

	// Duplicate document must be rejected
	t.Run("DuplicateDocument", func(t *testing.T) {
		_, err := env.DB.ExecContext(ctx, `
			INSERT INTO customers (id, document, names, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5)
		`, uuid.New().String(), "1098765432", "Otra", time.Now(), time.Now())

		if err == nil {
			t.Error("Expected unique violation on duplicate document")
		}
	})

	// Update customer
	t.Run("UpdateCustomer", func(t *testing.T) {
		_, err := env.DB.ExecContext(ctx, `
			UPDATE customers SET active = FALSE, updated_at = $1 WHERE id = $2
		`, time.Now(), customerID)

		if err != nil {
			t.Fatalf("Failed to update customer: %v", err)
		}

		var active bool
		env.DB.QueryRowContext(ctx, `SELECT active FROM customers WHERE id = $1`, customerID).Scan(&active)

		if active {
			t.Error("Expected customer to be deactivated")
		}
	})

	// Delete customer
	t.Run("DeleteCustomer", func(t *testing.T) {
		_, err := env.DB.ExecContext(ctx, `DELETE FROM customers WHERE id = $1`, customerID)
		if err != nil {
			t.Fatalf("Failed to delete customer: %v", err)
		}

		var count int
		env.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM customers WHERE id = $1`, customerID).Scan(&count)

		if count != 0 {
			t.Error("Customer should have been deleted")
		}
	})
}

// TestDatabase_VehicleCRUD tests vehicle database operations
func TestDatabase_VehicleCRUD(t *testing.T) {
	env := SetupTestEnvironment(t)
	if env == nil || env.DB == nil {
		t.Skip("Database not available")
	}

	SetupSchema(t, env.DB)
	CleanDatabase(t, env.DB)

	ctx := context.Background()
	typeID := uuid.New().String()
	vehicleID := uuid.New().String()

	if _, err := env.DB.ExecContext(ctx, `
		INSERT INTO vehicle_types (id, name) VALUES ($1, $2)
	`, typeID, "Carro"); err != nil {
		t.Fatalf("Failed to create vehicle type: %v", err)
	}

	// Create vehicle
	t.Run("CreateVehicle", func(t *testing.T) {
		_, err := env.DB.ExecContext(ctx, `
			INSERT INTO vehicles (id, plate, brand, model, vehicle_type_id, available, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`, vehicleID, "ABC123", "Renault", "Logan", typeID, true, time.Now(), time.Now())

		if err != nil {
			t.Fatalf("Failed to create vehicle: %v", err)
		}
	})

	// Read vehicle by plate
	t.Run("ReadVehicleByPlate", func(t *testing.T) {
		var id, plate, brand string
		err := env.DB.QueryRowContext(ctx, `
			SELECT id, plate, brand FROM vehicles WHERE plate = $1
		`, "ABC123").Scan(&id, &plate, &brand)

		if err != nil {
			t.Fatalf("Failed to read vehicle: %v", err)
		}

		if id != vehicleID {
			t.Errorf("Expected id '%s', got '%s'", vehicleID, id)
		}

		if brand != "Renault" {
			t.Errorf("Expected brand 'Renault', got '%s'", brand)
		}
	})

	// Duplicate plate must be rejected
	t.Run("DuplicatePlate", func(t *testing.T) {
		_, err := env.DB.ExecContext(ctx, `
			INSERT INTO vehicles (id, plate, created_at, updated_at)
			VALUES ($1, $2, $3, $4)
		`, uuid.New().String(), "ABC123", time.Now(), time.Now())

		if err == nil {
			t.Error("Expected unique violation on duplicate plate")
		}
	})

	// Link vehicle to customer
	t.Run("LinkCustomer", func(t *testing.T) {
		customerID := uuid.New().String()
		_, err := env.DB.ExecContext(ctx, `
			INSERT INTO customers (id, document, names, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5)
		`, customerID, "52468135", "Pedro", time.Now(), time.Now())
		if err != nil {
			t.Fatalf("Failed to create customer: %v", err)
		}

		_, err = env.DB.ExecContext(ctx, `
			UPDATE vehicles SET customer_id = $1, updated_at = $2 WHERE id = $3
		`, customerID, time.Now(), vehicleID)
		if err != nil {
			t.Fatalf("Failed to link customer: %v", err)
		}

		var linked string
		env.DB.QueryRowContext(ctx, `SELECT customer_id FROM vehicles WHERE id = $1`, vehicleID).Scan(&linked)

		if linked != customerID {
			t.Errorf("Expected customer_id '%s', got '%s'", customerID, linked)
		}
	})
}

// TestDatabase_SessionLifecycle tests a parking session from entry to exit,
// including the partial unique indexes that enforce single occupancy.
func TestDatabase_SessionLifecycle(t *testing.T) {
	env := SetupTestEnvironment(t)
	if env == nil || env.DB == nil {
		t.Skip("Database not available")
	}

	SetupSchema(t, env.DB)
	CleanDatabase(t, env.DB)

	ctx := context.Background()
	lotID := uuid.New().String()
	siteID := uuid.New().String()
	moduleID := uuid.New().String()
	otherModuleID := uuid.New().String()
	vehicleID := uuid.New().String()
	otherVehicleID := uuid.New().String()
	sessionID := uuid.New().String()

	seed := []struct {
		query string
		args  []interface{}
	}{
		{`INSERT INTO parking_lots (id, name, email, created_at, updated_at) VALUES ($1, $2, $3, $4, $5)`,
			[]interface{}{lotID, "Parqueadero Central", "central@example.com", time.Now(), time.Now()}},
		{`INSERT INTO sites (id, name, email, parking_lot_id, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6)`,
			[]interface{}{siteID, "Sede Norte", "norte@example.com", lotID, time.Now(), time.Now()}},
		{`INSERT INTO parking_modules (id, name, site_id, enabled, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6)`,
			[]interface{}{moduleID, "A-01", siteID, true, time.Now(), time.Now()}},
		{`INSERT INTO parking_modules (id, name, site_id, enabled, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6)`,
			[]interface{}{otherModuleID, "A-02", siteID, true, time.Now(), time.Now()}},
		{`INSERT INTO vehicles (id, plate, created_at, updated_at) VALUES ($1, $2, $3, $4)`,
			[]interface{}{vehicleID, "XYZ789", time.Now(), time.Now()}},
		{`INSERT INTO vehicles (id, plate, created_at, updated_at) VALUES ($1, $2, $3, $4)`,
			[]interface{}{otherVehicleID, "JKL456", time.Now(), time.Now()}},
	}
	for _, s := range seed {
		if _, err := env.DB.ExecContext(ctx, s.query, s.args...); err != nil {
			t.Fatalf("Failed to seed: %v", err)
		}
	}

	// Open a session
	t.Run("OpenSession", func(t *testing.T) {
		_, err := env.DB.ExecContext(ctx, `
			INSERT INTO parking_sessions (id, vehicle_id, module_id, entry_time, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, sessionID, vehicleID, moduleID, time.Now(), time.Now(), time.Now())

		if err != nil {
			t.Fatalf("Failed to open session: %v", err)
		}
	})

	// Second open session for the same vehicle must be rejected
	t.Run("VehicleSingleOccupancy", func(t *testing.T) {
		_, err := env.DB.ExecContext(ctx, `
			INSERT INTO parking_sessions (id, vehicle_id, module_id, entry_time, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, uuid.New().String(), vehicleID, otherModuleID, time.Now(), time.Now(), time.Now())

		if err == nil {
			t.Error("Expected unique violation: vehicle already has an open session")
		}
	})

	// Second open session for the same module must be rejected
	t.Run("ModuleSingleOccupancy", func(t *testing.T) {
		_, err := env.DB.ExecContext(ctx, `
			INSERT INTO parking_sessions (id, vehicle_id, module_id, entry_time, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, uuid.New().String(), otherVehicleID, moduleID, time.Now(), time.Now(), time.Now())

		if err == nil {
			t.Error("Expected unique violation: module already occupied")
		}
	})

	// Close the session
	t.Run("CloseSession", func(t *testing.T) {
		_, err := env.DB.ExecContext(ctx, `
			UPDATE parking_sessions SET exit_time = $1, amount_paid = $2, updated_at = $3 WHERE id = $4
		`, time.Now(), 6000.00, time.Now(), sessionID)

		if err != nil {
			t.Fatalf("Failed to close session: %v", err)
		}

		var open int
		env.DB.QueryRowContext(ctx, `
			SELECT COUNT(*) FROM parking_sessions WHERE vehicle_id = $1 AND exit_time IS NULL
		`, vehicleID).Scan(&open)

		if open != 0 {
			t.Error("Session should no longer be open")
		}
	})

	// Module and vehicle are free again after exit
	t.Run("ReentryAfterExit", func(t *testing.T) {
		_, err := env.DB.ExecContext(ctx, `
			INSERT INTO parking_sessions (id, vehicle_id, module_id, entry_time, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, uuid.New().String(), vehicleID, moduleID, time.Now(), time.Now(), time.Now())

		if err != nil {
			t.Errorf("Re-entry after exit should be allowed: %v", err)
		}
	})
}

// TestDatabase_LeaseQueries tests the time-window queries leases depend on
func TestDatabase_LeaseQueries(t *testing.T) {
	env := SetupTestEnvironment(t)
	if env == nil || env.DB == nil {
		t.Skip("Database not available")
	}

	SetupSchema(t, env.DB)
	CleanDatabase(t, env.DB)

	ctx := context.Background()
	vehicleID := uuid.New().String()
	now := time.Now()

	if _, err := env.DB.ExecContext(ctx, `
		INSERT INTO vehicles (id, plate, created_at, updated_at) VALUES ($1, $2, $3, $4)
	`, vehicleID, "MNO321", time.Now(), time.Now()); err != nil {
		t.Fatalf("Failed to create vehicle: %v", err)
	}

	leases := []struct {
		id    string
		start time.Time
		end   time.Time
	}{
		{uuid.New().String(), now.AddDate(0, -2, 0), now.AddDate(0, -1, 0)},  // expired
		{uuid.New().String(), now.AddDate(0, 0, -10), now.AddDate(0, 0, 20)}, // active
		{uuid.New().String(), now.AddDate(0, 1, 0), now.AddDate(0, 2, 0)},    // future
	}
	for _, l := range leases {
		if _, err := env.DB.ExecContext(ctx, `
			INSERT INTO leases (id, vehicle_id, start_time, end_time, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, l.id, vehicleID, l.start, l.end, time.Now(), time.Now()); err != nil {
			t.Fatalf("Failed to create lease: %v", err)
		}
	}

	// Active lease: covers the current instant
	t.Run("ActiveLease", func(t *testing.T) {
		var id string
		err := env.DB.QueryRowContext(ctx, `
			SELECT id FROM leases
			WHERE vehicle_id = $1 AND start_time <= $2 AND end_time >= $2
		`, vehicleID, now).Scan(&id)

		if err != nil {
			t.Fatalf("Failed to find active lease: %v", err)
		}

		if id != leases[1].id {
			t.Errorf("Expected active lease '%s', got '%s'", leases[1].id, id)
		}
	})

	// Latest lease: highest end_time regardless of coverage
	t.Run("LatestLease", func(t *testing.T) {
		var id string
		err := env.DB.QueryRowContext(ctx, `
			SELECT id FROM leases WHERE vehicle_id = $1 ORDER BY end_time DESC LIMIT 1
		`, vehicleID).Scan(&id)

		if err != nil {
			t.Fatalf("Failed to find latest lease: %v", err)
		}

		if id != leases[2].id {
			t.Errorf("Expected latest lease '%s', got '%s'", leases[2].id, id)
		}
	})

	// Expiring window: leases ending within the next 30 days
	t.Run("ExpiringWindow", func(t *testing.T) {
		var count int
		err := env.DB.QueryRowContext(ctx, `
			SELECT COUNT(*) FROM leases
			WHERE vehicle_id = $1 AND end_time BETWEEN $2 AND $3
		`, vehicleID, now, now.AddDate(0, 0, 30)).Scan(&count)

		if err != nil {
			t.Fatalf("Failed to query expiring leases: %v", err)
		}

		if count != 1 {
			t.Errorf("Expected 1 lease expiring within 30 days, got %d", count)
		}
	})
}

// TestDatabase_Transactions tests database transactions (ACID)
func TestDatabase_Transactions(t *testing.T) {
	env := SetupTestEnvironment(t)
	if env == nil || env.DB == nil {
		t.Skip("Database not available")
	}

	SetupSchema(t, env.DB)
	CleanDatabase(t, env.DB)

	ctx := context.Background()

	// Rollback leaves no rows behind
	t.Run("Rollback", func(t *testing.T) {
		tx, err := env.DB.BeginTx(ctx, nil)
		if err != nil {
			t.Fatalf("Failed to begin transaction: %v", err)
		}

		customerID := uuid.New().String()
		_, err = tx.ExecContext(ctx, `
			INSERT INTO customers (id, document, names, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5)
		`, customerID, "80123456", "Transitorio", time.Now(), time.Now())
		if err != nil {
			t.Fatalf("Failed to insert in transaction: %v", err)
		}

		if err := tx.Rollback(); err != nil {
			t.Fatalf("Failed to rollback: %v", err)
		}

		var count int
		env.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM customers WHERE id = $1`, customerID).Scan(&count)

		if count != 0 {
			t.Error("Rolled back customer should not exist")
		}
	})

	// Commit persists the customer and the vehicle link atomically
	t.Run("Commit", func(t *testing.T) {
		tx, err := env.DB.BeginTx(ctx, nil)
		if err != nil {
			t.Fatalf("Failed to begin transaction: %v", err)
		}

		customerID := uuid.New().String()
		vehicleID := uuid.New().String()

		_, err = tx.ExecContext(ctx, `
			INSERT INTO customers (id, document, names, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5)
		`, customerID, "80654321", "Permanente", time.Now(), time.Now())
		if err != nil {
			t.Fatalf("Failed to insert customer: %v", err)
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO vehicles (id, plate, customer_id, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5)
		`, vehicleID, "PQR654", customerID, time.Now(), time.Now())
		if err != nil {
			t.Fatalf("Failed to insert vehicle: %v", err)
		}

		if err := tx.Commit(); err != nil {
			t.Fatalf("Failed to commit: %v", err)
		}

		var linked string
		env.DB.QueryRowContext(ctx, `SELECT customer_id FROM vehicles WHERE id = $1`, vehicleID).Scan(&linked)

		if linked != customerID {
			t.Error("Committed vehicle should be linked to its customer")
		}
	})
}
