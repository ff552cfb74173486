package service

import (
	"fmt"
	"net/http"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/noah-isme/studyflow-api/internal/models"
)

// MetricsService encapsulates Prometheus instrumentation and provides lightweight snapshots for API consumption.
// A nil *MetricsService is valid and records nothing.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	storeDuration   *prometheus.HistogramVec
	subjectsCreated prometheus.Counter
	subjectsDeleted prometheus.Counter
	planningRuns    prometheus.Counter
	subjectsTracked prometheus.Gauge
	urgentSubjects  prometheus.Gauge
	globalScore     prometheus.Gauge
	exportsTotal    *prometheus.CounterVec

	requestCount         uint64
	requestDurationTotal uint64
	storeOpCount         uint64
	storeOpDurationTotal uint64
	createdCount         uint64
	deletedCount         uint64
	planningCount        uint64
}

// NewMetricsService registers core Prometheus collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	storeDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "store_operation_duration_seconds",
		Help:    "Duration of subject store operations",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})

	subjectsCreated := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "studyflow_subjects_created_total",
		Help: "Total subjects created",
	})

	subjectsDeleted := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "studyflow_subjects_deleted_total",
		Help: "Total subjects deleted",
	})

	planningRuns := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "studyflow_planning_computations_total",
		Help: "Total planning overviews derived",
	})

	subjectsTracked := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "studyflow_subjects_tracked",
		Help: "Subjects seen by the last planning computation",
	})

	urgentSubjects := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "studyflow_urgent_subjects",
		Help: "Subjects inside the urgency window at the last planning computation",
	})

	globalScore := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "studyflow_global_safety_score",
		Help: "Global safety score at the last planning computation",
	})

	exportsTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "studyflow_exports_total",
		Help: "Planning exports by format and terminal status",
	}, []string{"format", "status"})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, storeDuration, subjectsCreated, subjectsDeleted,
		planningRuns, subjectsTracked, urgentSubjects, globalScore, exportsTotal, goroutines)

	handler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})

	return &MetricsService{
		registry:        registry,
		handler:         handler,
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		storeDuration:   storeDuration,
		subjectsCreated: subjectsCreated,
		subjectsDeleted: subjectsDeleted,
		planningRuns:    planningRuns,
		subjectsTracked: subjectsTracked,
		urgentSubjects:  urgentSubjects,
		globalScore:     globalScore,
		exportsTotal:    exportsTotal,
	}
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveHTTPRequest records request metrics and aggregates simple stats for snapshots.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := fmt.Sprintf("%d", status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
	atomic.AddUint64(&m.requestCount, 1)
	atomic.AddUint64(&m.requestDurationTotal, uint64(duration.Nanoseconds()))
}

// ObserveStoreOperation records subject store timing.
func (m *MetricsService) ObserveStoreOperation(operation string, duration time.Duration) {
	if m == nil {
		return
	}
	m.storeDuration.WithLabelValues(operation).Observe(duration.Seconds())
	atomic.AddUint64(&m.storeOpCount, 1)
	atomic.AddUint64(&m.storeOpDurationTotal, uint64(duration.Nanoseconds()))
}

// RecordSubjectCreated counts a successful creation.
func (m *MetricsService) RecordSubjectCreated() {
	if m == nil {
		return
	}
	m.subjectsCreated.Inc()
	atomic.AddUint64(&m.createdCount, 1)
}

// RecordSubjectDeleted counts a successful deletion.
func (m *MetricsService) RecordSubjectDeleted() {
	if m == nil {
		return
	}
	m.subjectsDeleted.Inc()
	atomic.AddUint64(&m.deletedCount, 1)
}

// RecordPlanning tracks the shape of the latest planning computation.
func (m *MetricsService) RecordPlanning(subjects, urgent int, global models.GlobalProgress) {
	if m == nil {
		return
	}
	m.planningRuns.Inc()
	atomic.AddUint64(&m.planningCount, 1)
	m.subjectsTracked.Set(float64(subjects))
	m.urgentSubjects.Set(float64(urgent))
	m.globalScore.Set(float64(global.Score))
}

// RecordExport counts an export reaching a terminal status.
func (m *MetricsService) RecordExport(format models.ExportFormat, status models.ExportStatus) {
	if m == nil {
		return
	}
	m.exportsTotal.WithLabelValues(string(format), string(status)).Inc()
}

// Snapshot returns aggregated metrics suitable for the system metrics endpoint.
func (m *MetricsService) Snapshot() models.SystemMetrics {
	if m == nil {
		return models.SystemMetrics{}
	}
	requests := atomic.LoadUint64(&m.requestCount)
	reqDuration := atomic.LoadUint64(&m.requestDurationTotal)
	storeOps := atomic.LoadUint64(&m.storeOpCount)
	storeDuration := atomic.LoadUint64(&m.storeOpDurationTotal)

	var avgRequestMs float64
	if requests > 0 {
		avgRequestMs = float64(reqDuration) / float64(requests) / float64(time.Millisecond)
	}

	var avgStoreMs float64
	if storeOps > 0 {
		avgStoreMs = float64(storeDuration) / float64(storeOps) / float64(time.Millisecond)
	}

	return models.SystemMetrics{
		RequestsTotal:            requests,
		AverageRequestDurationMs: avgRequestMs,
		StoreOperations:          storeOps,
		AverageStoreDurationMs:   avgStoreMs,
		SubjectsCreated:          atomic.LoadUint64(&m.createdCount),
		SubjectsDeleted:          atomic.LoadUint64(&m.deletedCount),
		PlanningComputations:     atomic.LoadUint64(&m.planningCount),
		Goroutines:               runtime.NumGoroutine(),
		GeneratedAt:              time.Now().UTC(),
	}
}
