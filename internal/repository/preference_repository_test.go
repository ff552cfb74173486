package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/studyflow-api/internal/models"
)

func TestPreferenceRepositoryTheme(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	repo := NewPreferenceRepository(store, "studyflow_theme")

	_, ok, err := repo.Theme(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, repo.SetTheme(ctx, models.ThemeDark))
	theme, ok, err := repo.Theme(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, models.ThemeDark, theme)

	require.NoError(t, store.Set(ctx, "studyflow_theme", "sepia"))
	_, ok, err = repo.Theme(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestExportJobRepositoryLifecycle(t *testing.T) {
	ctx := context.Background()
	repo := NewExportJobRepository()
	job := &models.ExportJob{ID: "job-1", Format: models.ExportFormatCSV, Status: models.ExportStatusQueued}

	require.NoError(t, repo.Create(ctx, job))
	assert.Error(t, repo.Create(ctx, job))

	require.NoError(t, repo.MarkProcessing(ctx, "job-1"))
	stored, err := repo.FindByID(ctx, "job-1")
	require.NoError(t, err)
	assert.Equal(t, models.ExportStatusProcessing, stored.Status)
	assert.Equal(t, 1, stored.Attempts)

	require.NoError(t, repo.MarkFinished(ctx, "job-1", "planning/job-1.csv", "/download/token", stored.CreatedAt))
	stored, err = repo.FindByID(ctx, "job-1")
	require.NoError(t, err)
	assert.Equal(t, models.ExportStatusFinished, stored.Status)
	require.NotNil(t, stored.ResultURL)
	assert.Equal(t, "/download/token", *stored.ResultURL)

	assert.Equal(t, 1, repo.Forget(ctx, []string{"planning/job-1.csv"}))
	_, err = repo.FindByID(ctx, "job-1")
	assert.Error(t, err)
	assert.Error(t, repo.MarkFailed(ctx, "job-1", "boom", stored.CreatedAt))
}
