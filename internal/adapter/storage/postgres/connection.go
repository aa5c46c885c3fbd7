package postgres

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/seu-repo/sigep-parking/internal/domain"
)

// NewConnection initializes a new PostgreSQL connection using GORM
func NewConnection(url string, log *zap.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(url), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	if err := db.Use(latencyPlugin{}); err != nil {
		return nil, fmt.Errorf("register latency plugin: %w", err)
	}

	log.Info("Successfully connected to PostgreSQL")
	return db, nil
}

// RunMigrations creates or updates the schema, plus the partial unique indexes
// that enforce single-occupancy, which AutoMigrate cannot express.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&domain.User{},
		&domain.ParkingLot{},
		&domain.Site{},
		&domain.SiteAssignment{},
		&domain.ParkingModule{},
		&domain.VehicleType{},
		&domain.RateType{},
		&domain.Rate{},
		&domain.PaymentMethod{},
		&domain.Periodicity{},
		&domain.Customer{},
		&domain.Vehicle{},
		&domain.Lease{},
		&domain.ParkingSession{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	// At most one open session per vehicle and per module. Concurrent entries
	// that race past the service-level checks hit these.
	stmts := []string{
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_open_session_vehicle
			ON parking_sessions (vehicle_id) WHERE exit_time IS NULL`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_open_session_module
			ON parking_sessions (module_id) WHERE exit_time IS NULL`,
	}
	for _, stmt := range stmts {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("create index: %w", err)
		}
	}

	return nil
}

// Close releases the underlying sql.DB pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
