package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/studyflow-api/internal/dto"
	"github.com/noah-isme/studyflow-api/internal/models"
	"github.com/noah-isme/studyflow-api/internal/repository"
	"github.com/noah-isme/studyflow-api/internal/service"
)

func newPlannerRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	store := repository.NewMemoryStore()
	metrics := service.NewMetricsService()
	subjects := repository.NewSubjectRepository(store, "studyflow_subjects_v1", zap.NewNop())
	preferences := repository.NewPreferenceRepository(store, "studyflow_theme")

	r := gin.New()
	RegisterRoutes(r, "/api/v1", Handlers{
		Subjects:    NewSubjectHandler(service.NewSubjectService(subjects, nil, metrics, nil)),
		Planning:    NewPlanningHandler(service.NewPlanningService(subjects, time.UTC, metrics, nil)),
		Preferences: NewPreferenceHandler(service.NewPreferenceService(preferences, nil, nil)),
		Metrics:     NewMetricsHandler(metrics, nil),
	})
	return r
}

func serve(r *gin.Engine, method, path string, body []byte) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(rec, req)
	return rec
}

func TestRouterSubjectLifecycle(t *testing.T) {
	r := newPlannerRouter(t)
	exam := time.Now().UTC().AddDate(0, 0, 40).Format("2006-01-02")

	rec := serve(r, http.MethodPost, "/api/v1/subjects", []byte(`{"name":"Histoire","examDate":"`+exam+`","difficulty":"Facile"}`))
	require.Equal(t, http.StatusCreated, rec.Code)
	var created models.StudySubject
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &created))
	require.NotEmpty(t, created.ID)

	rec = serve(r, http.MethodGet, "/api/v1/planning", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var planning dto.PlanningResponse
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &planning))
	require.Len(t, planning.Subjects, 1)
	assert.Equal(t, 100, planning.Subjects[0].SafetyScore)
	assert.Equal(t, models.StatusAhead, planning.Subjects[0].Status)
	assert.Empty(t, planning.Urgent)

	rec = serve(r, http.MethodDelete, "/api/v1/subjects/"+created.ID, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = serve(r, http.MethodDelete, "/api/v1/subjects/"+created.ID, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = serve(r, http.MethodGet, "/api/v1/planning/progress", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var progress models.GlobalProgress
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &progress))
	assert.False(t, progress.HasData)
}

func TestRouterRejectsInvalidSubject(t *testing.T) {
	r := newPlannerRouter(t)

	rec := serve(r, http.MethodPost, "/api/v1/subjects", []byte(`{"name":"Histoire","examDate":"demain","difficulty":"Facile"}`))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(r, http.MethodGet, "/api/v1/subjects", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(0), decodeEnvelope(t, rec).Meta["count"])
}

func TestRouterExportsDisabled(t *testing.T) {
	r := newPlannerRouter(t)

	rec := serve(r, http.MethodPost, "/api/v1/planning/exports", []byte(`{"format":"csv"}`))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouterProbes(t *testing.T) {
	r := newPlannerRouter(t)

	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/health", nil).Code)
	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/ready", nil).Code)
	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/metrics", nil).Code)
}
