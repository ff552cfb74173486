package dto

import "github.com/noah-isme/studyflow-api/internal/models"

// CreateSubjectRequest is the payload accepted when adding a subject.
type CreateSubjectRequest struct {
	Name       string            `json:"name" validate:"required,max=120"`
	ExamDate   string            `json:"examDate" validate:"required,datetime=2006-01-02"`
	Difficulty models.Difficulty `json:"difficulty" validate:"required,oneof=Facile Moyen Difficile"`
}
