// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	WorkerJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_completed_total",
			Help: "Total number of jobs completed by worker",
		},
		[]string{"task_type"},
	)

	WorkerJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_failed_total",
			Help: "Total number of jobs failed by worker",
		},
		[]string{"task_type", "error_code"},
	)

	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "worker_job_duration_seconds",
			Help: "Duration of job processing in seconds",
		},
		[]string{"task_type"},
	)

	WorkerJobsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "worker_jobs_active",
			Help: "Number of active jobs per worker",
		},
		[]string{"task_type"},
	)

	QuotesComputed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "finance_quotes_computed_total",
			Help: "Total number of finance quotes computed",
		},
		[]string{"rate_kind"},
	)

	ProfitRecomputations = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "deal_profit_recomputations_total",
			Help: "Total number of deal profit recomputations",
		},
	)

	DataQualityAdvisories = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "deal_data_quality_advisories_total",
			Help: "Total number of data quality advisories raised during profit computation",
		},
		[]string{"advisory_code"},
	)

	PolicyCacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "policy_cache_hits_total",
			Help: "Site policy cache lookups by outcome",
		},
		[]string{"outcome"},
	)
)
