package postgres

import (
	"time"

	"gorm.io/gorm"

	"github.com/seu-repo/sigep-parking/internal/observability/telemetry"
)

const latencyStartKey = "telemetry:query_start"

// latencyPlugin feeds gorm query durations into the database latency
// histogram. It wraps every statement kind, not just SELECTs.
type latencyPlugin struct{}

func (latencyPlugin) Name() string { return "sigep:latency" }

func (latencyPlugin) Initialize(db *gorm.DB) error {
	before := func(db *gorm.DB) {
		db.InstanceSet(latencyStartKey, time.Now())
	}
	after := func(db *gorm.DB) {
		v, ok := db.InstanceGet(latencyStartKey)
		if !ok {
			return
		}
		start, ok := v.(time.Time)
		if !ok {
			return
		}
		telemetry.DatabaseLatency.Observe(time.Since(start).Seconds())
	}

	if err := db.Callback().Create().Before("gorm:create").Register("sigep:latency_before_create", before); err != nil {
		return err
	}
	if err := db.Callback().Create().After("gorm:create").Register("sigep:latency_after_create", after); err != nil {
		return err
	}
	if err := db.Callback().Query().Before("gorm:query").Register("sigep:latency_before_query", before); err != nil {
		return err
	}
	if err := db.Callback().Query().After("gorm:query").Register("sigep:latency_after_query", after); err != nil {
		return err
	}
	if err := db.Callback().Update().Before("gorm:update").Register("sigep:latency_before_update", before); err != nil {
		return err
	}
	if err := db.Callback().Update().After("gorm:update").Register("sigep:latency_after_update", after); err != nil {
		return err
	}
	if err := db.Callback().Delete().Before("gorm:delete").Register("sigep:latency_before_delete", before); err != nil {
		return err
	}
	if err := db.Callback().Delete().After("gorm:delete").Register("sigep:latency_after_delete", after); err != nil {
		return err
	}
	if err := db.Callback().Row().Before("gorm:row").Register("sigep:latency_before_row", before); err != nil {
		return err
	}
	return db.Callback().Row().After("gorm:row").Register("sigep:latency_after_row", after)
}
