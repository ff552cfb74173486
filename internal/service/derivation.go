package service

import (
	"math"
	"sort"
	"time"

	"github.com/noah-isme/studyflow-api/internal/models"
)

const (
	// UrgencyThresholdDays is the inclusive number of remaining days that triggers an alert.
	UrgencyThresholdDays = 3

	aheadThreshold   = 70
	normalThreshold  = 40
	fallbackHours    = 1
	workloadWeekDays = 7

	noSubjectsLabel   = "Aucune matiere"
	globalLabelPrefix = "Global: "
)

// DeriveSubject computes the view-model of a subject as of now. Calendar
// arithmetic happens in now's location. The function never fails: malformed
// records degrade to safe defaults so they stay visible and deletable.
func DeriveSubject(subject models.StudySubject, now time.Time) models.DerivedSubject {
	loc := now.Location()
	today := startOfDay(now, loc)

	exam, ok := parseCalendarDate(subject.ExamDate, loc)
	if !ok {
		exam = today
	}
	created, ok := parseCalendarDate(subject.CreatedAt, loc)
	if !ok {
		created = today
	}

	daysRemaining := maxInt(0, daysUntil(today, exam))
	initialDays := maxInt(1, daysUntil(created, exam))

	hoursPerDay, ok := subject.Difficulty.HoursPerDay()
	if !ok {
		hoursPerDay = fallbackHours
	}

	score := SafetyScore(daysRemaining, hoursPerDay)

	return models.DerivedSubject{
		StudySubject:   subject,
		DaysRemaining:  daysRemaining,
		InitialDays:    initialDays,
		HoursPerDay:    hoursPerDay,
		RemainingHours: daysRemaining * hoursPerDay,
		SafetyScore:    score,
		Status:         ClassifyScore(score),
	}
}

// SafetyScore normalises the remaining days against a weekly workload of
// hoursPerDay*7 days and clamps the rounded percentage to [0,100].
func SafetyScore(daysRemaining, hoursPerDay int) int {
	if hoursPerDay <= 0 {
		hoursPerDay = fallbackHours
	}
	raw := (float64(daysRemaining) / float64(hoursPerDay*workloadWeekDays)) * 100
	return clampInt(roundHalfUp(raw), 0, 100)
}

// ClassifyScore maps a safety score onto the three status tiers.
func ClassifyScore(score int) models.Status {
	switch {
	case score >= aheadThreshold:
		return models.StatusAhead
	case score >= normalThreshold:
		return models.StatusNormal
	default:
		return models.StatusBehind
	}
}

// SortByDaysRemaining returns a copy ordered by nearest exam first. Ties keep input order.
func SortByDaysRemaining(subjects []models.DerivedSubject) []models.DerivedSubject {
	sorted := make([]models.DerivedSubject, len(subjects))
	copy(sorted, subjects)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].DaysRemaining < sorted[j].DaysRemaining
	})
	return sorted
}

// UrgentSubjects keeps the subjects whose exam is at most UrgencyThresholdDays away.
func UrgentSubjects(subjects []models.DerivedSubject) []models.DerivedSubject {
	urgent := make([]models.DerivedSubject, 0)
	for _, subject := range subjects {
		if subject.DaysRemaining <= UrgencyThresholdDays {
			urgent = append(urgent, subject)
		}
	}
	return urgent
}

// ComputeGlobalProgress averages safety scores. An empty collection reports HasData=false.
func ComputeGlobalProgress(subjects []models.DerivedSubject) models.GlobalProgress {
	if len(subjects) == 0 {
		return models.GlobalProgress{Label: noSubjectsLabel}
	}
	total := 0
	for _, subject := range subjects {
		total += subject.SafetyScore
	}
	score := roundHalfUp(float64(total) / float64(len(subjects)))
	status := ClassifyScore(score)
	return models.GlobalProgress{
		Score:   score,
		Status:  status,
		HasData: true,
		Label:   globalLabelPrefix + string(status),
	}
}

// BuildOverview derives every subject as of now and aggregates the result.
func BuildOverview(subjects []models.StudySubject, now time.Time) models.PlanningOverview {
	derived := make([]models.DerivedSubject, 0, len(subjects))
	for _, subject := range subjects {
		derived = append(derived, DeriveSubject(subject, now))
	}
	sorted := SortByDaysRemaining(derived)
	return models.PlanningOverview{
		Subjects:    sorted,
		Urgent:      UrgentSubjects(sorted),
		Global:      ComputeGlobalProgress(sorted),
		GeneratedAt: now,
	}
}

func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
