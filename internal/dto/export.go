package dto

import "github.com/noah-isme/studyflow-api/internal/models"

// ExportRequest asks for an asynchronous rendering of the planning table.
type ExportRequest struct {
	Format models.ExportFormat `json:"format" validate:"required,oneof=csv pdf"`
}
