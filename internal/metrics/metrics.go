package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// ViewLoads counts merged-view loads by source ("cache" or "store").
	ViewLoads = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "caseledger_view_loads_total",
		Help: "Merged view loads by source (cache or store).",
	}, []string{"source"})

	// Upserts counts status upserts by result ("ok" or "error").
	Upserts = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "caseledger_upserts_total",
		Help: "Status upserts by result.",
	}, []string{"result"})

	// IntakeAppends counts successful case intake rows.
	IntakeAppends = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "caseledger_intake_appends_total",
		Help: "Case intake rows appended.",
	})

	// Notifications counts webhook deliveries by result ("ok" or "error").
	Notifications = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "caseledger_notifications_total",
		Help: "Webhook notifications by result.",
	}, []string{"result"})

	// OrphanEvents tracks status events whose case id has no intake row, as
	// of the last store read. Orphans never surface in the merged view but
	// usually mean someone hand-edited the status log.
	OrphanEvents = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "caseledger_orphan_events",
		Help: "Status events with no matching case, as of the last store read.",
	})
)

// MustRegister registers every collector with the default registry. Called
// once from main; tests use the collectors unregistered.
func MustRegister() {
	prometheus.MustRegister(ViewLoads, Upserts, IntakeAppends, Notifications, OrphanEvents)
}
