// file: internals/features/school/exams/dto/exam_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	model "edupro_backend/internals/features/school/exams/model"
)

/* =========================================================
   CREATE (subjects ride along)
   ========================================================= */

type ExamSubjectInput struct {
	Name      string  `json:"name" validate:"required,min=1,max=120"`
	FullMarks float64 `json:"full_marks" validate:"required,gt=0"`
}

type CreateExamRequest struct {
	Name         string             `json:"name" validate:"required,min=1,max=200"`
	AcademicYear string             `json:"academic_year" validate:"required,min=4,max=16"`
	Description  *string            `json:"description"`
	Subjects     []ExamSubjectInput `json:"subjects" validate:"required,min=1,dive"`
}

func (r *CreateExamRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.AcademicYear = strings.TrimSpace(r.AcademicYear)
	if r.Description != nil {
		d := strings.TrimSpace(*r.Description)
		if d == "" {
			r.Description = nil
		} else {
			r.Description = &d
		}
	}
	for i := range r.Subjects {
		r.Subjects[i].Name = strings.TrimSpace(r.Subjects[i].Name)
	}
}

func (r *CreateExamRequest) ToModel() model.ExamModel {
	subjects := make([]model.ExamSubjectModel, 0, len(r.Subjects))
	for _, s := range r.Subjects {
		subjects = append(subjects, model.ExamSubjectModel{
			ExamSubjectName:      s.Name,
			ExamSubjectFullMarks: s.FullMarks,
		})
	}
	return model.ExamModel{
		ExamName:         r.Name,
		ExamAcademicYear: r.AcademicYear,
		ExamDescription:  r.Description,
		ExamSubjects:     subjects,
	}
}

/* =========================================================
   RESPONSES
   ========================================================= */

type ExamSubjectResponse struct {
	ExamSubjectID uuid.UUID `json:"exam_subject_id"`
	Name          string    `json:"name"`
	FullMarks     float64   `json:"full_marks"`
}

type ExamResponse struct {
	ExamID       uuid.UUID             `json:"exam_id"`
	Name         string                `json:"name"`
	AcademicYear string                `json:"academic_year"`
	Description  *string               `json:"description,omitempty"`
	Subjects     []ExamSubjectResponse `json:"subjects"`
	CreatedAt    time.Time             `json:"created_at"`
}

func FromExamModel(m *model.ExamModel) ExamResponse {
	subjects := make([]ExamSubjectResponse, 0, len(m.ExamSubjects))
	for _, s := range m.ExamSubjects {
		subjects = append(subjects, ExamSubjectResponse{
			ExamSubjectID: s.ExamSubjectID,
			Name:          s.ExamSubjectName,
			FullMarks:     s.ExamSubjectFullMarks,
		})
	}
	return ExamResponse{
		ExamID:       m.ExamID,
		Name:         m.ExamName,
		AcademicYear: m.ExamAcademicYear,
		Description:  m.ExamDescription,
		Subjects:     subjects,
		CreatedAt:    m.ExamCreatedAt,
	}
}

func FromExamModels(ms []model.ExamModel) []ExamResponse {
	out := make([]ExamResponse, 0, len(ms))
	for i := range ms {
		out = append(out, FromExamModel(&ms[i]))
	}
	return out
}
