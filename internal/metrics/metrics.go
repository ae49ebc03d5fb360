package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

var (
	ErrorsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pipeline_errors_total",
			Help: "Total number of occurred errors.",
		},
		[]string{"type"},
	)
	ApplicationsSubmittedCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "pipeline_applications_submitted_total",
			Help: "Total number of submitted applications.",
		},
	)
	StageMovesCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "pipeline_stage_moves_total",
			Help: "Total number of application moves across stages.",
		},
	)
	StatusTransitionsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pipeline_status_transitions_total",
			Help: "Total number of application status transitions.",
		},
		[]string{"status"},
	)
	NotificationsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pipeline_notifications_created_total",
			Help: "Total number of created notifications.",
		},
		[]string{"kind"},
	)
	AlertDispatchesCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "pipeline_alert_dispatches_total",
			Help: "Total number of job alert notifications dispatched.",
		},
	)
	AlertEvaluationDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "pipeline_alert_evaluation_duration_seconds",
			Help:    "Duration of alert evaluation on job activation.",
			Buckets: []float64{0.01, 0.05, 0.25, 1, 5},
		},
	)
)

func StartMetricsServer(addr string) {

	prometheus.MustRegister(ErrorsCounter)
	prometheus.MustRegister(ApplicationsSubmittedCounter)
	prometheus.MustRegister(StageMovesCounter)
	prometheus.MustRegister(StatusTransitionsCounter)
	prometheus.MustRegister(NotificationsCounter)
	prometheus.MustRegister(AlertDispatchesCounter)
	prometheus.MustRegister(AlertEvaluationDuration)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	go func() {
		log.Fatal(http.ListenAndServe(addr, mux))
	}()
}
