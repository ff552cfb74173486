package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/noah-isme/studyflow-api/internal/models"
	appErrors "github.com/noah-isme/studyflow-api/pkg/errors"
)

// PreferenceRepository stores the theme preference as a bare string.
type PreferenceRepository struct {
	store    KeyValueStore
	themeKey string
}

// NewPreferenceRepository constructs a preference repository.
func NewPreferenceRepository(store KeyValueStore, themeKey string) *PreferenceRepository {
	return &PreferenceRepository{store: store, themeKey: themeKey}
}

// Theme returns the stored theme. ok is false when nothing usable was stored.
func (r *PreferenceRepository) Theme(ctx context.Context) (theme models.Theme, ok bool, err error) {
	raw, err := r.store.Get(ctx, r.themeKey)
	if err != nil {
		if errors.Is(err, appErrors.ErrStoreKeyMiss) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("load theme: %w", err)
	}
	switch models.Theme(strings.TrimSpace(raw)) {
	case models.ThemeDark:
		return models.ThemeDark, true, nil
	case models.ThemeLight:
		return models.ThemeLight, true, nil
	default:
		return "", false, nil
	}
}

// SetTheme persists theme.
func (r *PreferenceRepository) SetTheme(ctx context.Context, theme models.Theme) error {
	if err := r.store.Set(ctx, r.themeKey, string(theme)); err != nil {
		return fmt.Errorf("save theme: %w", err)
	}
	return nil
}
