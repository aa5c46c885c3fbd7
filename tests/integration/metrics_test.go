package integration

import (
	"testing"

	dto "github.com/prometheus/client_model/go"

	pgstore "github.com/seu-repo/sigep-parking/internal/adapter/storage/postgres"
	"github.com/seu-repo/sigep-parking/internal/observability/telemetry"
)

// TestDatabase_LatencyObserved verifies that queries issued through the gorm
// connection feed the database latency histogram.
func TestDatabase_LatencyObserved(t *testing.T) {
	env := SetupTestEnvironment(t)
	if env == nil || env.DB == nil {
		t.Skip("Database not available")
	}

	SetupSchema(t, env.DB)
	CleanDatabase(t, env.DB)

	db, err := pgstore.NewConnection(env.DatabaseURL, env.Logger)
	if err != nil {
		t.Fatalf("Failed to open gorm connection: %v", err)
	}
	defer func() {
		_ = pgstore.Close(db)
	}()

	before := histogramSampleCount(t)

	var count int64
	if err := db.Table("users").Count(&count).Error; err != nil {
		t.Fatalf("Failed to count users: %v", err)
	}

	after := histogramSampleCount(t)
	if after <= before {
		t.Errorf("expected latency samples to grow, before=%d after=%d", before, after)
	}
}

func histogramSampleCount(t *testing.T) uint64 {
	t.Helper()
	var m dto.Metric
	if err := telemetry.DatabaseLatency.Write(&m); err != nil {
		t.Fatalf("Failed to read histogram: %v", err)
	}
	return m.GetHistogram().GetSampleCount()
}
