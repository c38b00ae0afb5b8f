package adapters

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/coral-developers/coral-web/internal/config"
	"github.com/coral-developers/coral-web/internal/domain"
)

type MetricsServer struct {
	*http.Server

	submissionsTotal   *prometheus.CounterVec
	submissionDuration prometheus.Histogram
	deliveriesTotal    *prometheus.CounterVec
}

// Contact mailer metrics labels
var (
	submissionLabels = []string{"notification", "auto_reply"}
	deliveryLabels   = []string{"kind", "status"}
)

// NewMetricsServer returns a new prometheus server
func NewMetricsServer(cfg *config.Config) *MetricsServer {
	reg := prometheus.NewRegistry()

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))

	return &MetricsServer{
		Server: &http.Server{
			Addr:              cfg.Statistics.ListeningAddress,
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
		},

		submissionsTotal: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "coral_contact_submissions_total",
				Help: "Processed contact form submissions by outcome of both emails.",
			}, submissionLabels,
		),
		submissionDuration: promauto.With(reg).NewHistogram(
			prometheus.HistogramOpts{
				Name:    "coral_contact_submission_duration_seconds",
				Help:    "Time spent verifying the relay and dispatching both emails.",
				Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
			},
		),
		deliveriesTotal: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "coral_mail_deliveries_total",
				Help: "Delivery attempts by mail kind and status.",
			}, deliveryLabels,
		),
	}
}

// Run starts the metrics server
func (m *MetricsServer) Run(ctx context.Context) {
	// Run the metrics server in a goroutine
	go func() {
		if err := m.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("metrics service exited", "address", m.Addr, "error", err)
		}
	}()

	slog.Info("started metrics service", "address", m.Addr)

	// Wait for the context to be done
	<-ctx.Done()

	// Create a context with timeout for the shutdown process
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Attempt to gracefully shutdown the metrics server
	if err := m.Shutdown(shutdownCtx); err != nil {
		slog.Error("metrics service shutdown failed", "address", m.Addr, "error", err)
	} else {
		slog.Info("metrics service shutdown gracefully", "address", m.Addr)
	}
}

// UpdateSubmissionMetrics records a processed contact submission.
func (m *MetricsServer) UpdateSubmissionMetrics(event domain.ContactSubmittedEvent) {
	m.submissionsTotal.WithLabelValues(
		outcomeStatus(event.Result.Notification),
		outcomeStatus(event.Result.AutoReply),
	).Inc()
	m.submissionDuration.Observe(event.Duration.Seconds())
}

// UpdateDeliveryMetrics records a single delivery attempt.
func (m *MetricsServer) UpdateDeliveryMetrics(event domain.MailDeliveredEvent) {
	m.deliveriesTotal.WithLabelValues(string(event.Kind), outcomeStatus(event.Outcome)).Inc()
}

func outcomeStatus(outcome domain.DeliveryOutcome) string {
	if outcome.Success {
		return "success"
	}
	return "failure"
}
