package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/studyflow-api/internal/dto"
	"github.com/noah-isme/studyflow-api/internal/models"
)

type preferenceServiceMock struct {
	theme   *dto.ThemeResponse
	lastReq dto.UpdateThemeRequest
	err     error
}

func (m *preferenceServiceMock) Theme(context.Context) (*dto.ThemeResponse, error) {
	return m.theme, m.err
}

func (m *preferenceServiceMock) UpdateTheme(_ context.Context, req dto.UpdateThemeRequest) (*dto.ThemeResponse, error) {
	m.lastReq = req
	return &dto.ThemeResponse{Theme: req.Theme, Stored: true}, m.err
}

func TestPreferenceHandlerThemeUnset(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewPreferenceHandler(&preferenceServiceMock{theme: &dto.ThemeResponse{}})

	c, w := newGinContext(http.MethodGet, "/api/v1/preferences/theme", nil)
	handler.Theme(c)

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &body))
	assert.Equal(t, false, body["stored"])
	assert.NotContains(t, body, "theme")
}

func TestPreferenceHandlerUpdateTheme(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &preferenceServiceMock{}
	handler := NewPreferenceHandler(mockSvc)

	c, w := newGinContext(http.MethodPut, "/api/v1/preferences/theme", []byte(`{"theme":"dark"}`))
	handler.UpdateTheme(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.ThemeDark, mockSvc.lastReq.Theme)
}

func TestPreferenceHandlerUpdateThemeMalformed(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewPreferenceHandler(&preferenceServiceMock{})

	c, w := newGinContext(http.MethodPut, "/api/v1/preferences/theme", []byte(`dark`))
	handler.UpdateTheme(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
