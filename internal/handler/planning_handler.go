package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/studyflow-api/internal/dto"
	"github.com/noah-isme/studyflow-api/internal/models"
	"github.com/noah-isme/studyflow-api/pkg/response"
)

type planningService interface {
	Planning(ctx context.Context) (*dto.PlanningResponse, error)
	Notifications(ctx context.Context) ([]dto.Notification, error)
	Chart(ctx context.Context) (*dto.ChartResponse, error)
	Progress(ctx context.Context) (*models.GlobalProgress, error)
}

// PlanningHandler exposes the derived planning views.
type PlanningHandler struct {
	service planningService
}

// NewPlanningHandler constructs a planning handler.
func NewPlanningHandler(service planningService) *PlanningHandler {
	return &PlanningHandler{service: service}
}

// Overview godoc
// @Summary Planning overview
// @Description Subjects sorted by nearest exam, urgent subset and global progress.
// @Tags Planning
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /planning [get]
func (h *PlanningHandler) Overview(c *gin.Context) {
	planning, err := h.service.Planning(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, planning, map[string]interface{}{
		"count":  len(planning.Subjects),
		"urgent": len(planning.Urgent),
	})
}

// Notifications godoc
// @Summary Urgent exam alerts
// @Tags Planning
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /planning/notifications [get]
func (h *PlanningHandler) Notifications(c *gin.Context) {
	notifications, err := h.service.Notifications(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, notifications, map[string]interface{}{"count": len(notifications)})
}

// Chart godoc
// @Summary Remaining workload chart
// @Tags Planning
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /planning/chart [get]
func (h *PlanningHandler) Chart(c *gin.Context) {
	chart, err := h.service.Chart(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, chart)
}

// Progress godoc
// @Summary Global safety score
// @Tags Planning
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /planning/progress [get]
func (h *PlanningHandler) Progress(c *gin.Context) {
	progress, err := h.service.Progress(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, progress)
}
