package models

import "time"

// GlobalProgress aggregates the safety scores of every subject.
// HasData is false for an empty collection, in which case Score is 0 and Status is empty.
type GlobalProgress struct {
	Score   int    `json:"score"`
	Status  Status `json:"status,omitempty"`
	HasData bool   `json:"hasData"`
	Label   string `json:"label"`
}

// PlanningOverview is the full derived state handed to presentation.
type PlanningOverview struct {
	Subjects    []DerivedSubject `json:"subjects"`
	Urgent      []DerivedSubject `json:"urgent"`
	Global      GlobalProgress   `json:"global"`
	GeneratedAt time.Time        `json:"generatedAt"`
}

// Theme is the persisted colour scheme preference.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// SystemMetrics is a lightweight snapshot of process counters.
type SystemMetrics struct {
	RequestsTotal            uint64    `json:"requestsTotal"`
	AverageRequestDurationMs float64   `json:"averageRequestDurationMs"`
	StoreOperations          uint64    `json:"storeOperations"`
	AverageStoreDurationMs   float64   `json:"averageStoreDurationMs"`
	SubjectsCreated          uint64    `json:"subjectsCreated"`
	SubjectsDeleted          uint64    `json:"subjectsDeleted"`
	PlanningComputations     uint64    `json:"planningComputations"`
	Goroutines               int       `json:"goroutines"`
	GeneratedAt              time.Time `json:"generatedAt"`
}
