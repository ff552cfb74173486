package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "/api/v1", cfg.APIPrefix)
	assert.Equal(t, StoreDriverFile, cfg.Store.Driver)
	assert.Equal(t, "studyflow_subjects_v1", cfg.Store.SubjectsKey)
	assert.Equal(t, "studyflow_theme", cfg.Store.ThemeKey)
	assert.Equal(t, 24*time.Hour, cfg.Exports.SignedURLTTL)
	assert.Equal(t, time.Local, cfg.Planner.Location())
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	t.Setenv("STORE_DRIVER", " Redis ")
	t.Setenv("SUBJECTS_KEY", "custom_subjects")
	t.Setenv("ALLOWED_ORIGINS", "http://a.test, ,http://b.test")
	t.Setenv("EXPORTS_SIGNED_URL_TTL", "not-a-duration")
	t.Setenv("PLANNER_TIMEZONE", "UTC")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, StoreDriverRedis, cfg.Store.Driver)
	assert.Equal(t, "custom_subjects", cfg.Store.SubjectsKey)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, 24*time.Hour, cfg.Exports.SignedURLTTL)
	assert.Equal(t, time.UTC, cfg.Planner.Location())
}

func TestLoadRejectsUnknownTimezone(t *testing.T) {
	t.Setenv("PLANNER_TIMEZONE", "Europe/Pariss")

	cfg, err := Load()
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "PLANNER_TIMEZONE")
}

func TestPlannerLoadLocation(t *testing.T) {
	loc, err := PlannerConfig{}.LoadLocation()
	require.NoError(t, err)
	assert.Equal(t, time.Local, loc)

	loc, err = PlannerConfig{Timezone: " local "}.LoadLocation()
	require.NoError(t, err)
	assert.Equal(t, time.Local, loc)

	_, err = PlannerConfig{Timezone: "Mars/Olympus"}.LoadLocation()
	require.Error(t, err)
}
