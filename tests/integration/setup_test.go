package integration

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	redismod "github.com/testcontainers/testcontainers-go/modules/redis"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"

	_ "github.com/lib/pq"
)

// TestEnv holds test environment resources
type TestEnv struct {
	DB                *sql.DB
	DatabaseURL       string
	Redis             *redis.Client
	PostgresContainer testcontainers.Container
	RedisContainer    testcontainers.Container
	Logger            *zap.Logger
	ctx               context.Context
}

var testEnv *TestEnv

// SetupTestEnvironment initializes the test environment with containers
func SetupTestEnvironment(t *testing.T) *TestEnv {
	if testEnv != nil {
		return testEnv
	}

	ctx := context.Background()

	// Check if using external services (CI environment)
	if os.Getenv("DATABASE_URL") != "" {
		return setupExternalServices(t, ctx)
	}

	// Use testcontainers for local testing
	return setupContainers(t, ctx)
}

func setupExternalServices(t *testing.T, ctx context.Context) *TestEnv {
	logger, _ := zap.NewDevelopment()

	// Connect to external Postgres
	db, err := sql.Open("postgres", os.Getenv("DATABASE_URL"))
	if err != nil {
		t.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.Ping(); err != nil {
		t.Fatalf("Failed to ping database: %v", err)
	}

	// Connect to external Redis
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379"
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		t.Fatalf("Failed to parse Redis URL: %v", err)
	}

	redisClient := redis.NewClient(opt)
	if err := redisClient.Ping(ctx).Err(); err != nil {
		t.Fatalf("Failed to connect to Redis: %v", err)
	}

	testEnv = &TestEnv{
		DB:          db,
		DatabaseURL: os.Getenv("DATABASE_URL"),
		Redis:       redisClient,
		Logger:      logger,
		ctx:         ctx,
	}

	return testEnv
}

func setupContainers(t *testing.T, ctx context.Context) *TestEnv {
	logger, _ := zap.NewDevelopment()

	// Start Postgres container
	postgresContainer, err := postgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:16-alpine"),
		postgres.WithDatabase("sigep_test"),
		postgres.WithUsername("sigep"),
		postgres.WithPassword("sigep_test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("Failed to start postgres container: %v", err)
	}

	// Get Postgres connection string
	pgHost, err := postgresContainer.Host(ctx)
	if err != nil {
		t.Fatalf("Failed to get postgres host: %v", err)
	}

	pgPort, err := postgresContainer.MappedPort(ctx, "5432")
	if err != nil {
		t.Fatalf("Failed to get postgres port: %v", err)
	}

	pgConnStr := fmt.Sprintf("postgres://sigep:sigep_test@%s:%s/sigep_test?sslmode=disable", pgHost, pgPort.Port())

	// Connect to Postgres
	db, err := sql.Open("postgres", pgConnStr)
	if err != nil {
		t.Fatalf("Failed to connect to postgres: %v", err)
	}

	// Wait for connection
	for i := 0; i < 30; i++ {
		if err := db.Ping(); err == nil {
			break
		}
		time.Sleep(time.Second)
	}

	// Start Redis container
	redisContainer, err := redismod.RunContainer(ctx,
		testcontainers.WithImage("redis:7-alpine"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("Ready to accept connections").
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("Failed to start redis container: %v", err)
	}

	// Get Redis connection string
	redisHost, err := redisContainer.Host(ctx)
	if err != nil {
		t.Fatalf("Failed to get redis host: %v", err)
	}

	redisPort, err := redisContainer.MappedPort(ctx, "6379")
	if err != nil {
		t.Fatalf("Failed to get redis port: %v", err)
	}

	// Connect to Redis
	redisClient := redis.NewClient(&redis.Options{
		Addr: fmt.Sprintf("%s:%s", redisHost, redisPort.Port()),
	})

	if err := redisClient.Ping(ctx).Err(); err != nil {
		t.Fatalf("Failed to connect to redis: %v", err)
	}

	testEnv = &TestEnv{
		DB:                db,
		DatabaseURL:       pgConnStr,
		Redis:             redisClient,
		PostgresContainer: postgresContainer,
		RedisContainer:    redisContainer,
		Logger:            logger,
		ctx:               ctx,
	}

	return testEnv
}

// TeardownTestEnvironment cleans up the test environment
func TeardownTestEnvironment(t *testing.T) {
	if testEnv == nil {
		return
	}

	ctx := context.Background()

	if testEnv.DB != nil {
		testEnv.DB.Close()
	}

	if testEnv.Redis != nil {
		testEnv.Redis.Close()
	}

	if testEnv.PostgresContainer != nil {
		if err := testEnv.PostgresContainer.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate postgres container: %v", err)
		}
	}

	if testEnv.RedisContainer != nil {
		if err := testEnv.RedisContainer.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate redis container: %v", err)
		}
	}

	testEnv = nil
}

// CleanDatabase truncates all tables
func CleanDatabase(t *testing.T, db *sql.DB) {
	tables := []string{
		"parking_sessions",
		"leases",
		"vehicles",
		"customers",
		"periodicities",
		"payment_methods",
		"rates",
		"rate_types",
		"vehicle_types",
		"site_assignments",
		"parking_modules",
		"sites",
		"parking_lots",
		"users",
	}

	for _, table := range tables {
		_, err := db.Exec(fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		if err != nil {
			// Table might not exist, that's ok
			t.Logf("Failed to truncate %s: %v", table, err)
		}
	}
}

// FlushRedis clears all Redis keys
func FlushRedis(t *testing.T, client *redis.Client) {
	ctx := context.Background()
	if err := client.FlushAll(ctx).Err(); err != nil {
		t.Fatalf("Failed to flush redis: %v", err)
	}
}

// SetupSchema creates the database schema for testing
func SetupSchema(t *testing.T, db *sql.DB) {
	schema := `
	CREATE TABLE IF NOT EXISTS users (
		id VARCHAR(36) PRIMARY KEY,
		document VARCHAR(50) UNIQUE NOT NULL,
		names VARCHAR(255),
		surnames VARCHAR(255),
		email VARCHAR(255) UNIQUE NOT NULL,
		password VARCHAR(255) NOT NULL,
		role VARCHAR(50) DEFAULT 'operator',
		active BOOLEAN DEFAULT TRUE,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS parking_lots (
		id VARCHAR(36) PRIMARY KEY,
		commercial_registry VARCHAR(100),
		name VARCHAR(255),
		address TEXT,
		city VARCHAR(100),
		email VARCHAR(255) UNIQUE,
		phone VARCHAR(50),
		country_id VARCHAR(36),
		owner_user_id VARCHAR(36),
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS sites (
		id VARCHAR(36) PRIMARY KEY,
		name VARCHAR(255),
		address TEXT,
		phone VARCHAR(50),
		email VARCHAR(255) UNIQUE,
		parking_lot_id VARCHAR(36) REFERENCES parking_lots(id),
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS parking_modules (
		id VARCHAR(36) PRIMARY KEY,
		name VARCHAR(100),
		description TEXT,
		site_id VARCHAR(36) REFERENCES sites(id),
		enabled BOOLEAN DEFAULT TRUE,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS site_assignments (
		id VARCHAR(36) PRIMARY KEY,
		site_id VARCHAR(36) REFERENCES sites(id),
		user_id VARCHAR(36) REFERENCES users(id)
	);

	CREATE TABLE IF NOT EXISTS vehicle_types (
		id VARCHAR(36) PRIMARY KEY,
		name VARCHAR(100) UNIQUE NOT NULL
	);

	CREATE TABLE IF NOT EXISTS rate_types (
		id VARCHAR(36) PRIMARY KEY,
		name VARCHAR(100) UNIQUE NOT NULL,
		unit VARCHAR(20)
	);

	CREATE TABLE IF NOT EXISTS rates (
		id VARCHAR(36) PRIMARY KEY,
		name VARCHAR(100),
		cost NUMERIC(12, 2) NOT NULL,
		rate_type_id VARCHAR(36) REFERENCES rate_types(id),
		vehicle_type_id VARCHAR(36),
		parking_lot_id VARCHAR(36),
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS payment_methods (
		id VARCHAR(36) PRIMARY KEY,
		name VARCHAR(100) UNIQUE NOT NULL,
		card BOOLEAN DEFAULT FALSE
	);

	CREATE TABLE IF NOT EXISTS periodicities (
		id VARCHAR(36) PRIMARY KEY,
		name VARCHAR(100),
		days INTEGER,
		parking_lot_id VARCHAR(36)
	);

	CREATE TABLE IF NOT EXISTS customers (
		id VARCHAR(36) PRIMARY KEY,
		document VARCHAR(50) UNIQUE NOT NULL,
		names VARCHAR(255),
		surnames VARCHAR(255),
		phone VARCHAR(50),
		email VARCHAR(255),
		address TEXT,
		active BOOLEAN DEFAULT TRUE,
		parking_lot_id VARCHAR(36),
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS vehicles (
		id VARCHAR(36) PRIMARY KEY,
		plate VARCHAR(20) UNIQUE NOT NULL,
		brand VARCHAR(100),
		model VARCHAR(100),
		vehicle_type_id VARCHAR(36) REFERENCES vehicle_types(id),
		rate_id VARCHAR(36),
		customer_id VARCHAR(36) REFERENCES customers(id),
		available BOOLEAN DEFAULT TRUE,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS leases (
		id VARCHAR(36) PRIMARY KEY,
		description TEXT,
		vehicle_id VARCHAR(36) REFERENCES vehicles(id),
		rate_id VARCHAR(36),
		payment_method_id VARCHAR(36),
		periodicity_id VARCHAR(36),
		start_time TIMESTAMP NOT NULL,
		end_time TIMESTAMP NOT NULL,
		paused BOOLEAN DEFAULT FALSE,
		pause_days INTEGER DEFAULT 0,
		paused_at TIMESTAMP,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS parking_sessions (
		id VARCHAR(36) PRIMARY KEY,
		vehicle_id VARCHAR(36) REFERENCES vehicles(id),
		module_id VARCHAR(36) REFERENCES parking_modules(id),
		entry_time TIMESTAMP NOT NULL,
		exit_time TIMESTAMP,
		amount_paid NUMERIC(12, 2) DEFAULT 0,
		payment_method_id VARCHAR(36),
		lease_covered BOOLEAN DEFAULT FALSE,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_parking_sessions_vehicle_id ON parking_sessions(vehicle_id);
	CREATE INDEX IF NOT EXISTS idx_parking_sessions_module_id ON parking_sessions(module_id);
	CREATE INDEX IF NOT EXISTS idx_leases_vehicle_id ON leases(vehicle_id);
	CREATE INDEX IF NOT EXISTS idx_leases_end_time ON leases(end_time);
	CREATE UNIQUE INDEX IF NOT EXISTS idx_open_session_vehicle
		ON parking_sessions (vehicle_id) WHERE exit_time IS NULL;
	CREATE UNIQUE INDEX IF NOT EXISTS idx_open_session_module
		ON parking_sessions (module_id) WHERE exit_time IS NULL;
	`

	_, err := db.Exec(schema)
	if err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}
}
