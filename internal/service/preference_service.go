package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/studyflow-api/internal/dto"
	"github.com/noah-isme/studyflow-api/internal/models"
	appErrors "github.com/noah-isme/studyflow-api/pkg/errors"
)

type themeStore interface {
	Theme(ctx context.Context) (models.Theme, bool, error)
	SetTheme(ctx context.Context, theme models.Theme) error
}

// PreferenceService reads and writes the theme preference.
type PreferenceService struct {
	repo      themeStore
	validator *validator.Validate
	logger    *zap.Logger
}

// NewPreferenceService constructs a preference service.
func NewPreferenceService(repo themeStore, validate *validator.Validate, logger *zap.Logger) *PreferenceService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PreferenceService{repo: repo, validator: validate, logger: logger}
}

// Theme returns the stored theme, if any.
func (s *PreferenceService) Theme(ctx context.Context) (*dto.ThemeResponse, error) {
	theme, ok, err := s.repo.Theme(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load theme")
	}
	return &dto.ThemeResponse{Theme: theme, Stored: ok}, nil
}

// UpdateTheme persists the requested theme.
func (s *PreferenceService) UpdateTheme(ctx context.Context, req dto.UpdateThemeRequest) (*dto.ThemeResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid theme")
	}
	if err := s.repo.SetTheme(ctx, req.Theme); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save theme")
	}
	s.logger.Info("theme updated", zap.String("theme", string(req.Theme)))
	return &dto.ThemeResponse{Theme: req.Theme, Stored: true}, nil
}
