package models

// Difficulty classifies how demanding a subject is to revise.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Facile"
	DifficultyMedium Difficulty = "Moyen"
	DifficultyHard   Difficulty = "Difficile"
)

// Difficulties lists every supported difficulty in ascending order.
var Difficulties = []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}

// HoursPerDay returns the recommended daily study hours for the difficulty.
// The boolean is false for values outside the supported set.
func (d Difficulty) HoursPerDay() (int, bool) {
	switch d {
	case DifficultyEasy:
		return 1, true
	case DifficultyMedium:
		return 2, true
	case DifficultyHard:
		return 3, true
	default:
		return 0, false
	}
}

// Valid reports whether the difficulty belongs to the supported set.
func (d Difficulty) Valid() bool {
	_, ok := d.HoursPerDay()
	return ok
}

// Status is the three-tier preparation classification derived from a safety score.
type Status string

const (
	StatusAhead  Status = "En avance"
	StatusNormal Status = "Normal"
	StatusBehind Status = "En retard"
)

// StudySubject is the persisted subject record. Dates stay textual so that
// malformed historical records still decode and remain deletable.
type StudySubject struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	ExamDate   string     `json:"examDate"`
	Difficulty Difficulty `json:"difficulty"`
	CreatedAt  string     `json:"createdAt,omitempty"`
}

// DerivedSubject is the display-ready view of a subject computed for a given instant.
type DerivedSubject struct {
	StudySubject
	DaysRemaining  int    `json:"daysRemaining"`
	InitialDays    int    `json:"initialDays"`
	HoursPerDay    int    `json:"hoursPerDay"`
	RemainingHours int    `json:"remainingHours"`
	SafetyScore    int    `json:"safetyScore"`
	Status         Status `json:"status"`
}
