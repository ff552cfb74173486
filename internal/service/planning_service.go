package service

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/noah-isme/studyflow-api/internal/dto"
	"github.com/noah-isme/studyflow-api/internal/models"
	appErrors "github.com/noah-isme/studyflow-api/pkg/errors"
)

const (
	emptyPlanningMessage = "Aucune matiere pour le moment. Ajoute ta premiere revision."
	emptyChartMessage    = "Ajoute des matieres pour afficher le graphique."
	chartLabelRunes      = 10
)

type subjectLoader interface {
	LoadAll(ctx context.Context) ([]models.StudySubject, error)
}

// PlanningService derives the planning view from the stored subjects on every call.
type PlanningService struct {
	subjects subjectLoader
	metrics  *MetricsService
	logger   *zap.Logger
	loc      *time.Location
	now      func() time.Time
}

// NewPlanningService constructs a planning service evaluating dates in loc.
func NewPlanningService(subjects subjectLoader, loc *time.Location, metrics *MetricsService, logger *zap.Logger) *PlanningService {
	if loc == nil {
		loc = time.Local
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PlanningService{
		subjects: subjects,
		metrics:  metrics,
		logger:   logger,
		loc:      loc,
		now:      time.Now,
	}
}

// Overview loads the subjects and builds the derived overview as of now.
func (s *PlanningService) Overview(ctx context.Context) (*models.PlanningOverview, error) {
	start := time.Now()
	subjects, err := s.subjects.LoadAll(ctx)
	s.metrics.ObserveStoreOperation("load", time.Since(start))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load subjects")
	}

	overview := BuildOverview(subjects, s.now().In(s.loc))
	s.metrics.RecordPlanning(len(overview.Subjects), len(overview.Urgent), overview.Global)
	s.logger.Debug("planning computed",
		zap.Int("subjects", len(overview.Subjects)),
		zap.Int("urgent", len(overview.Urgent)),
		zap.Int("global_score", overview.Global.Score))
	return &overview, nil
}

// Planning returns the sorted list, urgent subset and global progress with display text.
func (s *PlanningService) Planning(ctx context.Context) (*dto.PlanningResponse, error) {
	overview, err := s.Overview(ctx)
	if err != nil {
		return nil, err
	}
	resp := &dto.PlanningResponse{
		Subjects:    s.planningItems(overview.Subjects),
		Urgent:      s.planningItems(overview.Urgent),
		Global:      overview.Global,
		GeneratedAt: overview.GeneratedAt,
	}
	if len(overview.Subjects) == 0 {
		resp.EmptyMessage = emptyPlanningMessage
	}
	return resp, nil
}

// Notifications returns one alert per urgent subject, nearest exam first.
func (s *PlanningService) Notifications(ctx context.Context) ([]dto.Notification, error) {
	overview, err := s.Overview(ctx)
	if err != nil {
		return nil, err
	}
	return BuildNotifications(overview.Urgent), nil
}

// Chart returns the workload chart data.
func (s *PlanningService) Chart(ctx context.Context) (*dto.ChartResponse, error) {
	overview, err := s.Overview(ctx)
	if err != nil {
		return nil, err
	}
	chart := BuildChart(overview.Subjects)
	return &chart, nil
}

// Progress returns the global progress only.
func (s *PlanningService) Progress(ctx context.Context) (*models.GlobalProgress, error) {
	overview, err := s.Overview(ctx)
	if err != nil {
		return nil, err
	}
	return &overview.Global, nil
}

func (s *PlanningService) planningItems(subjects []models.DerivedSubject) []dto.PlanningItem {
	items := make([]dto.PlanningItem, 0, len(subjects))
	for _, subject := range subjects {
		items = append(items, dto.PlanningItem{
			DerivedSubject:  subject,
			ExamDateDisplay: formatDisplayDate(subject.ExamDate, s.loc),
		})
	}
	return items
}

// BuildNotifications renders the alert text of each urgent subject.
func BuildNotifications(urgent []models.DerivedSubject) []dto.Notification {
	notifications := make([]dto.Notification, 0, len(urgent))
	for _, subject := range urgent {
		notifications = append(notifications, dto.Notification{
			SubjectID:     subject.ID,
			Name:          subject.Name,
			DaysRemaining: subject.DaysRemaining,
			Message:       fmt.Sprintf("Alerte: %s dans %d jour(s). Priorite aux revisions.", subject.Name, subject.DaysRemaining),
		})
	}
	return notifications
}

// BuildChart scales each subject's remaining hours against the largest one.
// The scale never drops below 1 so an all-zero chart stays flat.
func BuildChart(subjects []models.DerivedSubject) dto.ChartResponse {
	if len(subjects) == 0 {
		return dto.ChartResponse{Bars: []dto.ChartBar{}, Max: 1, Empty: true, Message: emptyChartMessage}
	}
	scale := 1
	for _, subject := range subjects {
		scale = maxInt(scale, subject.RemainingHours)
	}
	bars := make([]dto.ChartBar, 0, len(subjects))
	for _, subject := range subjects {
		bars = append(bars, dto.ChartBar{
			SubjectID:      subject.ID,
			Label:          chartLabel(subject.Name),
			RemainingHours: subject.RemainingHours,
			Ratio:          float64(subject.RemainingHours) / float64(scale),
		})
	}
	return dto.ChartResponse{Bars: bars, Max: scale}
}

func chartLabel(name string) string {
	if utf8.RuneCountInString(name) <= chartLabelRunes {
		return name
	}
	return string([]rune(name)[:chartLabelRunes]) + "..."
}
