package dto

import (
	"time"

	"github.com/noah-isme/studyflow-api/internal/models"
)

// PlanningItem is a derived subject with presentation text attached.
type PlanningItem struct {
	models.DerivedSubject
	ExamDateDisplay string `json:"examDateDisplay"`
}

// PlanningResponse is the payload of the planning overview endpoint.
type PlanningResponse struct {
	Subjects     []PlanningItem        `json:"subjects"`
	Urgent       []PlanningItem        `json:"urgent"`
	Global       models.GlobalProgress `json:"global"`
	GeneratedAt  time.Time             `json:"generatedAt"`
	EmptyMessage string                `json:"emptyMessage,omitempty"`
}

// Notification alerts about an exam inside the urgency window.
type Notification struct {
	SubjectID     string `json:"subjectId"`
	Name          string `json:"name"`
	DaysRemaining int    `json:"daysRemaining"`
	Message       string `json:"message"`
}

// ChartBar is one bar of the workload chart.
type ChartBar struct {
	SubjectID      string  `json:"subjectId"`
	Label          string  `json:"label"`
	RemainingHours int     `json:"remainingHours"`
	Ratio          float64 `json:"ratio"`
}

// ChartResponse holds the workload chart in planning order.
type ChartResponse struct {
	Bars    []ChartBar `json:"bars"`
	Max     int        `json:"max"`
	Empty   bool       `json:"empty"`
	Message string     `json:"message,omitempty"`
}
