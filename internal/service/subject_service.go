package service

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/studyflow-api/internal/dto"
	"github.com/noah-isme/studyflow-api/internal/models"
	appErrors "github.com/noah-isme/studyflow-api/pkg/errors"
)

type subjectStore interface {
	LoadAll(ctx context.Context) ([]models.StudySubject, error)
	Append(ctx context.Context, subject models.StudySubject) error
	Remove(ctx context.Context, id string) (bool, error)
}

// SubjectService validates and persists study subjects.
type SubjectService struct {
	repo      subjectStore
	validator *validator.Validate
	metrics   *MetricsService
	logger    *zap.Logger
	now       func() time.Time
	newID     func() string
}

// NewSubjectService constructs a subject service.
func NewSubjectService(repo subjectStore, validate *validator.Validate, metrics *MetricsService, logger *zap.Logger) *SubjectService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SubjectService{
		repo:      repo,
		validator: validate,
		metrics:   metrics,
		logger:    logger,
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

// List returns the stored subjects in insertion order.
func (s *SubjectService) List(ctx context.Context) ([]models.StudySubject, error) {
	start := time.Now()
	subjects, err := s.repo.LoadAll(ctx)
	s.metrics.ObserveStoreOperation("load", time.Since(start))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load subjects")
	}
	return subjects, nil
}

// Create validates the request and appends a new subject stamped with a fresh id and creation time.
func (s *SubjectService) Create(ctx context.Context, req dto.CreateSubjectRequest) (*models.StudySubject, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.ExamDate = strings.TrimSpace(req.ExamDate)
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
	}

	subject := models.StudySubject{
		ID:         s.newID(),
		Name:       req.Name,
		ExamDate:   req.ExamDate,
		Difficulty: req.Difficulty,
		CreatedAt:  formatTimestamp(s.now()),
	}

	start := time.Now()
	err := s.repo.Append(ctx, subject)
	s.metrics.ObserveStoreOperation("append", time.Since(start))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save subject")
	}
	s.metrics.RecordSubjectCreated()
	s.logger.Info("subject created", zap.String("subject_id", subject.ID), zap.String("difficulty", string(subject.Difficulty)))
	return &subject, nil
}

// Delete removes the subject with the given id.
func (s *SubjectService) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return appErrors.Clone(appErrors.ErrValidation, "id is required")
	}

	start := time.Now()
	removed, err := s.repo.Remove(ctx, id)
	s.metrics.ObserveStoreOperation("remove", time.Since(start))
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete subject")
	}
	if !removed {
		return appErrors.Clone(appErrors.ErrNotFound, "subject not found")
	}
	s.metrics.RecordSubjectDeleted()
	s.logger.Info("subject deleted", zap.String("subject_id", id))
	return nil
}
