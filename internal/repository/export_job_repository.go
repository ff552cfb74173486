package repository

import (
	"context"
	"sync"
	"time"

	"github.com/noah-isme/studyflow-api/internal/models"
	appErrors "github.com/noah-isme/studyflow-api/pkg/errors"
)

// ExportJobRepository tracks export jobs in process memory.
type ExportJobRepository struct {
	mu   sync.RWMutex
	jobs map[string]models.ExportJob
}

// NewExportJobRepository constructs an empty job registry.
func NewExportJobRepository() *ExportJobRepository {
	return &ExportJobRepository{jobs: make(map[string]models.ExportJob)}
}

// Create registers a new job.
func (r *ExportJobRepository) Create(_ context.Context, job *models.ExportJob) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.jobs[job.ID]; exists {
		return appErrors.Clone(appErrors.ErrConflict, "export job already exists")
	}
	r.jobs[job.ID] = *job
	return nil
}

// FindByID returns the job with the given id.
func (r *ExportJobRepository) FindByID(_ context.Context, id string) (*models.ExportJob, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	job, ok := r.jobs[id]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "export job not found")
	}
	return &job, nil
}

// MarkProcessing moves the job to PROCESSING and increments its attempt counter.
func (r *ExportJobRepository) MarkProcessing(_ context.Context, id string) error {
	return r.update(id, func(job *models.ExportJob) {
		job.Status = models.ExportStatusProcessing
		job.Attempts++
		job.ErrorMessage = nil
	})
}

// MarkQueued puts a failed attempt back in the queue, keeping the last error.
func (r *ExportJobRepository) MarkQueued(_ context.Context, id, message string) error {
	return r.update(id, func(job *models.ExportJob) {
		job.Status = models.ExportStatusQueued
		job.ErrorMessage = &message
	})
}

// MarkFinished records the rendered file and its download link.
func (r *ExportJobRepository) MarkFinished(_ context.Context, id, relPath, resultURL string, finishedAt time.Time) error {
	return r.update(id, func(job *models.ExportJob) {
		job.Status = models.ExportStatusFinished
		job.RelativePath = relPath
		job.ResultURL = &resultURL
		job.ErrorMessage = nil
		job.FinishedAt = &finishedAt
	})
}

// MarkFailed records a terminal failure.
func (r *ExportJobRepository) MarkFailed(_ context.Context, id, message string, finishedAt time.Time) error {
	return r.update(id, func(job *models.ExportJob) {
		job.Status = models.ExportStatusFailed
		job.ErrorMessage = &message
		job.FinishedAt = &finishedAt
	})
}

// Forget drops jobs whose files were cleaned up.
func (r *ExportJobRepository) Forget(_ context.Context, relPaths []string) int {
	if len(relPaths) == 0 {
		return 0
	}
	lookup := make(map[string]struct{}, len(relPaths))
	for _, p := range relPaths {
		lookup[p] = struct{}{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	removed := 0
	for id, job := range r.jobs {
		if _, ok := lookup[job.RelativePath]; ok {
			delete(r.jobs, id)
			removed++
		}
	}
	return removed
}

func (r *ExportJobRepository) update(id string, mutate func(*models.ExportJob)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	job, ok := r.jobs[id]
	if !ok {
		return appErrors.Clone(appErrors.ErrNotFound, "export job not found")
	}
	mutate(&job)
	r.jobs[id] = job
	return nil
}
