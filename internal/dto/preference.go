package dto

import "github.com/noah-isme/studyflow-api/internal/models"

// ThemeResponse reports the stored theme. Stored is false when the client should
// fall back to its own colour-scheme preference.
type ThemeResponse struct {
	Theme  models.Theme `json:"theme,omitempty"`
	Stored bool         `json:"stored"`
}

// UpdateThemeRequest changes the theme preference.
type UpdateThemeRequest struct {
	Theme models.Theme `json:"theme" validate:"required,oneof=light dark"`
}
