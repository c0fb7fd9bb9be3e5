// Package metrics exposes runtime counters via expvar.
package metrics

import "expvar"

var (
	OEEComputationsTotal  = expvar.NewInt("oee_computations_total")
	FeatureBuildsTotal    = expvar.NewInt("feature_builds_total")
	TrainingsTotal        = expvar.NewInt("trainings_total")
	TrainingErrors        = expvar.NewInt("training_errors")
	ScoringsTotal         = expvar.NewInt("scorings_total")
	ScoringErrors         = expvar.NewInt("scoring_errors")
	MachinesAtRisk        = expvar.NewInt("machines_at_risk")
	AlertsDispatched      = expvar.NewInt("alerts_dispatched")
	AnomaliesDetected     = expvar.NewInt("anomalies_detected")
	InsightsComputedTotal = expvar.NewInt("insights_computed_total")
	StoreQueryErrors      = expvar.NewInt("store_query_errors")
	HTTPRequestsTotal     = expvar.NewInt("http_requests_total")
	HTTPRequestsRejected  = expvar.NewInt("http_requests_rejected")
)
