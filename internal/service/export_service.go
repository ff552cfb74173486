package service

import (
	"context"
	"fmt"
	"os"
	"path"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/studyflow-api/internal/models"
	"github.com/noah-isme/studyflow-api/pkg/export"
	"github.com/noah-isme/studyflow-api/pkg/storage"
)

const exportDir = "planning"

type overviewSource interface {
	Overview(ctx context.Context) (*models.PlanningOverview, error)
}

type fileStorage interface {
	Save(filename string, data []byte) (string, error)
	Open(filename string) (*os.File, error)
	Delete(filename string) error
	CleanupOlderThan(dir string, ttl time.Duration, now time.Time) ([]string, error)
}

type datasetRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

// ExportConfig tunes export behaviour.
type ExportConfig struct {
	APIPrefix string
	ResultTTL time.Duration
	Location  *time.Location
}

// ExportResult captures successful generation metadata.
type ExportResult struct {
	RelativePath string
	Token        string
	URL          string
	Format       models.ExportFormat
	ExpiresAt    time.Time
}

// ExportService renders the planning table and persists the rendered files.
type ExportService struct {
	planning overviewSource
	storage  fileStorage
	csv      datasetRenderer
	pdf      datasetRenderer
	signer   *storage.SignedURLSigner
	logger   *zap.Logger
	cfg      ExportConfig
	now      func() time.Time
}

// NewExportService constructs an ExportService.
func NewExportService(planning overviewSource, files fileStorage, signer *storage.SignedURLSigner, cfg ExportConfig, logger *zap.Logger, csv, pdf datasetRenderer) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.ResultTTL <= 0 {
		cfg.ResultTTL = 24 * time.Hour
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	return &ExportService{
		planning: planning,
		storage:  files,
		csv:      csv,
		pdf:      pdf,
		signer:   signer,
		logger:   logger,
		cfg:      cfg,
		now:      time.Now,
	}
}

// Generate renders the current planning in the job's format and stores the file.
func (s *ExportService) Generate(ctx context.Context, job *models.ExportJob) (*ExportResult, error) {
	if job == nil {
		return nil, fmt.Errorf("job nil")
	}
	overview, err := s.planning.Overview(ctx)
	if err != nil {
		return nil, err
	}
	dataset, err := BuildPlanningDataset(*overview, s.cfg.Location)
	if err != nil {
		return nil, err
	}

	var payload []byte
	switch job.Format {
	case models.ExportFormatCSV:
		payload, err = s.csv.Render(dataset)
	case models.ExportFormatPDF:
		payload, err = s.pdf.Render(dataset)
	default:
		err = fmt.Errorf("unsupported format %s", job.Format)
	}
	if err != nil {
		return nil, err
	}

	relPath, err := s.storage.Save(s.buildFilename(job), payload)
	if err != nil {
		return nil, err
	}

	token, expiresAt, err := s.signer.Generate(job.ID, relPath)
	if err != nil {
		return nil, err
	}
	prefix := strings.TrimRight(s.cfg.APIPrefix, "/")
	if prefix == "" {
		prefix = "/api/v1"
	}

	s.logger.Info("planning export rendered",
		zap.String("job_id", job.ID), zap.String("format", string(job.Format)), zap.Int("bytes", len(payload)))
	return &ExportResult{
		RelativePath: relPath,
		Token:        token,
		URL:          fmt.Sprintf("%s/planning/exports/download/%s", prefix, token),
		Format:       job.Format,
		ExpiresAt:    expiresAt,
	}, nil
}

// ParseToken validates download token metadata.
func (s *ExportService) ParseToken(token string, allowExpired bool) (jobID, relPath string, expiresAt time.Time, err error) {
	return s.signer.Parse(token, allowExpired)
}

// Open returns a handle to the stored file.
func (s *ExportService) Open(relPath string) (*os.File, error) {
	return s.storage.Open(relPath)
}

// Delete removes a stored export file.
func (s *ExportService) Delete(relPath string) error {
	return s.storage.Delete(relPath)
}

// Cleanup removes rendered files older than ttl (the configured ResultTTL when ttl <= 0).
func (s *ExportService) Cleanup(ttl time.Duration) ([]string, error) {
	if ttl <= 0 {
		ttl = s.cfg.ResultTTL
	}
	return s.storage.CleanupOlderThan(exportDir, ttl, s.now())
}

func (s *ExportService) buildFilename(job *models.ExportJob) string {
	timestamp := s.now().UTC().Format("20060102_150405")
	return path.Join(exportDir, fmt.Sprintf("planning_%s_%s.%s", timestamp, job.ID, job.Format))
}

// BuildPlanningDataset flattens an overview into the export table, one row per subject in planning order.
func BuildPlanningDataset(overview models.PlanningOverview, loc *time.Location) (export.Dataset, error) {
	dataset := export.Dataset{
		Title: "StudyFlow - Planning des revisions",
		Summary: []string{
			"Genere le " + overview.GeneratedAt.In(loc).Format(displayLayout),
			progressSummary(overview.Global),
			fmt.Sprintf("Matieres urgentes: %d", len(overview.Urgent)),
		},
		Headers: []string{"Matiere", "Examen", "Difficulte", "Jours restants", "Heures/jour", "Heures restantes", "Score", "Statut"},
		Rows:    make([][]string, 0, len(overview.Subjects)),
	}
	for _, subject := range overview.Subjects {
		err := dataset.AddRow(
			subject.Name,
			formatDisplayDate(subject.ExamDate, loc),
			string(subject.Difficulty),
			strconv.Itoa(subject.DaysRemaining),
			strconv.Itoa(subject.HoursPerDay),
			strconv.Itoa(subject.RemainingHours),
			strconv.Itoa(subject.SafetyScore)+"%",
			string(subject.Status),
		)
		if err != nil {
			return export.Dataset{}, err
		}
	}
	return dataset, nil
}

func progressSummary(global models.GlobalProgress) string {
	if !global.HasData {
		return global.Label
	}
	return fmt.Sprintf("%s (%d%%)", global.Label, global.Score)
}
