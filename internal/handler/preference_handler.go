package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/studyflow-api/internal/dto"
	appErrors "github.com/noah-isme/studyflow-api/pkg/errors"
	"github.com/noah-isme/studyflow-api/pkg/response"
)

type preferenceService interface {
	Theme(ctx context.Context) (*dto.ThemeResponse, error)
	UpdateTheme(ctx context.Context, req dto.UpdateThemeRequest) (*dto.ThemeResponse, error)
}

// PreferenceHandler exposes user interface preferences.
type PreferenceHandler struct {
	service preferenceService
}

// NewPreferenceHandler constructs a preference handler.
func NewPreferenceHandler(service preferenceService) *PreferenceHandler {
	return &PreferenceHandler{service: service}
}

// Theme godoc
// @Summary Stored theme
// @Tags Preferences
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /preferences/theme [get]
func (h *PreferenceHandler) Theme(c *gin.Context) {
	theme, err := h.service.Theme(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, theme)
}

// UpdateTheme godoc
// @Summary Change theme
// @Tags Preferences
// @Accept json
// @Produce json
// @Param payload body dto.UpdateThemeRequest true "Theme payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /preferences/theme [put]
func (h *PreferenceHandler) UpdateTheme(c *gin.Context) {
	var req dto.UpdateThemeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid theme payload"))
		return
	}
	theme, err := h.service.UpdateTheme(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, theme)
}
