package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Métricas de negocio
	OpenSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "sigep_open_parking_sessions",
		Help: "Número de sesiones de parqueo abiertas",
	})

	EntriesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sigep_vehicle_entries_total",
		Help: "Total de ingresos de vehículos",
	})

	ExitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sigep_vehicle_exits_total",
		Help: "Total de salidas de vehículos",
	})

	EntryRefusals = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sigep_entry_refusals_total",
		Help: "Total de ingresos rechazados por motivo",
	}, []string{"reason"})

	LeasePausesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sigep_lease_pauses_total",
		Help: "Total de pausas de arrendamiento aplicadas",
	})

	// Métricas de infraestructura
	DatabaseLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "sigep_database_latency_seconds",
		Help:    "Latencia de consultas a la base de datos",
		Buckets: prometheus.DefBuckets,
	})
)
