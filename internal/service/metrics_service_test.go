package service

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/studyflow-api/internal/models"
)

func TestMetricsServiceSnapshot(t *testing.T) {
	m := NewMetricsService()
	m.ObserveHTTPRequest(http.MethodGet, "/api/v1/planning", http.StatusOK, 20*time.Millisecond)
	m.ObserveHTTPRequest(http.MethodPost, "/api/v1/subjects", http.StatusCreated, 40*time.Millisecond)
	m.ObserveStoreOperation("load", 2*time.Millisecond)
	m.RecordSubjectCreated()
	m.RecordSubjectDeleted()
	m.RecordPlanning(3, 1, models.GlobalProgress{Score: 64, HasData: true})
	m.RecordExport(models.ExportFormatCSV, models.ExportStatusFinished)

	snapshot := m.Snapshot()
	assert.Equal(t, uint64(2), snapshot.RequestsTotal)
	assert.InDelta(t, 30.0, snapshot.AverageRequestDurationMs, 0.001)
	assert.Equal(t, uint64(1), snapshot.StoreOperations)
	assert.InDelta(t, 2.0, snapshot.AverageStoreDurationMs, 0.001)
	assert.Equal(t, uint64(1), snapshot.SubjectsCreated)
	assert.Equal(t, uint64(1), snapshot.SubjectsDeleted)
	assert.Equal(t, uint64(1), snapshot.PlanningComputations)
	assert.Positive(t, snapshot.Goroutines)
}

func TestMetricsServiceExposition(t *testing.T) {
	m := NewMetricsService()
	m.RecordPlanning(2, 0, models.GlobalProgress{Score: 80, HasData: true})

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "studyflow_global_safety_score 80")
	assert.Contains(t, body, "studyflow_subjects_tracked 2")
}

func TestMetricsServiceNilReceiver(t *testing.T) {
	var m *MetricsService
	m.ObserveHTTPRequest(http.MethodGet, "/", http.StatusOK, time.Millisecond)
	m.RecordSubjectCreated()
	m.RecordPlanning(1, 1, models.GlobalProgress{})
	assert.Equal(t, models.SystemMetrics{}, m.Snapshot())

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
