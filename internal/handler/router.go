package handler

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// Handlers groups the endpoint handlers mounted by RegisterRoutes. Exports may be nil when disabled.
type Handlers struct {
	Subjects    *SubjectHandler
	Planning    *PlanningHandler
	Preferences *PreferenceHandler
	Exports     *ExportHandler
	Metrics     *MetricsHandler
}

// RegisterRoutes mounts the probes at the root and the API under prefix.
func RegisterRoutes(r *gin.Engine, prefix string, h Handlers) {
	r.GET("/health", h.Metrics.Health)
	r.GET("/ready", h.Metrics.Ready)
	r.GET("/metrics", h.Metrics.Prometheus)

	prefix = "/" + strings.Trim(prefix, "/")
	api := r.Group(prefix)

	subjects := api.Group("/subjects")
	subjects.GET("", h.Subjects.List)
	subjects.POST("", h.Subjects.Create)
	subjects.DELETE("/:id", h.Subjects.Delete)

	planning := api.Group("/planning")
	planning.GET("", h.Planning.Overview)
	planning.GET("/notifications", h.Planning.Notifications)
	planning.GET("/chart", h.Planning.Chart)
	planning.GET("/progress", h.Planning.Progress)
	if h.Exports != nil {
		planning.POST("/exports", h.Exports.Create)
		planning.GET("/exports/:id", h.Exports.Status)
		planning.GET("/exports/download/:token", h.Exports.Download)
	}

	preferences := api.Group("/preferences")
	preferences.GET("/theme", h.Preferences.Theme)
	preferences.PUT("/theme", h.Preferences.UpdateTheme)

	api.GET("/system/metrics", h.Metrics.System)
}
