package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/studyflow-api/internal/dto"
	"github.com/noah-isme/studyflow-api/internal/models"
	appErrors "github.com/noah-isme/studyflow-api/pkg/errors"
)

type planningServiceMock struct {
	planning      *dto.PlanningResponse
	notifications []dto.Notification
	chart         *dto.ChartResponse
	progress      *models.GlobalProgress
	err           error
}

func (m *planningServiceMock) Planning(context.Context) (*dto.PlanningResponse, error) {
	return m.planning, m.err
}

func (m *planningServiceMock) Notifications(context.Context) ([]dto.Notification, error) {
	return m.notifications, m.err
}

func (m *planningServiceMock) Chart(context.Context) (*dto.ChartResponse, error) {
	return m.chart, m.err
}

func (m *planningServiceMock) Progress(context.Context) (*models.GlobalProgress, error) {
	return m.progress, m.err
}

func TestPlanningHandlerOverview(t *testing.T) {
	gin.SetMode(gin.TestMode)
	item := dto.PlanningItem{
		DerivedSubject: models.DerivedSubject{
			StudySubject:  models.StudySubject{ID: "a", Name: "Maths", ExamDate: "2026-10-18"},
			DaysRemaining: 2,
			SafetyScore:   10,
			Status:        models.StatusBehind,
		},
		ExamDateDisplay: "18/10/2026",
	}
	handler := NewPlanningHandler(&planningServiceMock{planning: &dto.PlanningResponse{
		Subjects: []dto.PlanningItem{item},
		Urgent:   []dto.PlanningItem{item},
		Global:   models.GlobalProgress{Score: 10, Status: models.StatusBehind, HasData: true, Label: "Global: En retard"},
	}})

	c, w := newGinContext(http.MethodGet, "/api/v1/planning", nil)
	handler.Overview(c)

	require.Equal(t, http.StatusOK, w.Code)
	envelope := decodeEnvelope(t, w)
	assert.Equal(t, float64(1), envelope.Meta["urgent"])

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(envelope.Data, &body))
	subjects := body["subjects"].([]interface{})
	first := subjects[0].(map[string]interface{})
	assert.Equal(t, "Maths", first["name"])
	assert.Equal(t, float64(2), first["daysRemaining"])
	assert.Equal(t, "18/10/2026", first["examDateDisplay"])
	assert.Equal(t, "En retard", first["status"])
	global := body["global"].(map[string]interface{})
	assert.Equal(t, true, global["hasData"])
}

func TestPlanningHandlerNotifications(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewPlanningHandler(&planningServiceMock{notifications: []dto.Notification{
		{SubjectID: "a", Name: "Maths", DaysRemaining: 1, Message: "Alerte: Maths dans 1 jour(s). Priorite aux revisions."},
	}})

	c, w := newGinContext(http.MethodGet, "/api/v1/planning/notifications", nil)
	handler.Notifications(c)

	require.Equal(t, http.StatusOK, w.Code)
	var notifications []dto.Notification
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &notifications))
	require.Len(t, notifications, 1)
	assert.Contains(t, notifications[0].Message, "Alerte: Maths")
}

func TestPlanningHandlerChartAndProgress(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewPlanningHandler(&planningServiceMock{
		chart:    &dto.ChartResponse{Bars: []dto.ChartBar{}, Max: 1, Empty: true, Message: "Ajoute des matieres pour afficher le graphique."},
		progress: &models.GlobalProgress{Label: "Aucune matiere"},
	})

	c, w := newGinContext(http.MethodGet, "/api/v1/planning/chart", nil)
	handler.Chart(c)
	require.Equal(t, http.StatusOK, w.Code)
	var chart dto.ChartResponse
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &chart))
	assert.True(t, chart.Empty)

	c, w = newGinContext(http.MethodGet, "/api/v1/planning/progress", nil)
	handler.Progress(c)
	require.Equal(t, http.StatusOK, w.Code)
	var progress models.GlobalProgress
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &progress))
	assert.False(t, progress.HasData)
	assert.Equal(t, "Aucune matiere", progress.Label)
}

func TestPlanningHandlerStoreFailure(t *testing.T) {
	gin.SetMode(gin.TestMode)
	err := appErrors.Wrap(errors.New("redis down"), appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load subjects")
	handler := NewPlanningHandler(&planningServiceMock{err: err})

	c, w := newGinContext(http.MethodGet, "/api/v1/planning", nil)
	handler.Overview(c)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Len(t, c.Errors, 1)
}
