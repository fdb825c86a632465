// file: internals/features/school/grading/gradebook/dto/gradebook_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	gradebookModel "edupro_backend/internals/features/school/grading/gradebook/model"
	gradebookService "edupro_backend/internals/features/school/grading/gradebook/service"
)

/* =========================================================
   MARK ENTRY / EDIT
   ========================================================= */

type CreateMarkRequest struct {
	ExamSubjectID uuid.UUID `json:"exam_subject_id" validate:"required"`
	StudentID     uuid.UUID `json:"student_id" validate:"required"`
	MarksObtained *float64  `json:"marks_obtained" validate:"required,gte=0"`
}

// UpdateMarkRequest is the commit of one editable cell.
type UpdateMarkRequest struct {
	MarksObtained *float64 `json:"marks_obtained" validate:"required,gte=0"`
}

/* =========================================================
   RESPONSES
   ========================================================= */

type MarkResponse struct {
	ExamSubjectMarkID uuid.UUID  `json:"exam_subject_mark_id"`
	ExamSubjectID     uuid.UUID  `json:"exam_subject_id"`
	StudentID         uuid.UUID  `json:"student_id"`
	MarksObtained     float64    `json:"marks_obtained"`
	GradingSystemID   *uuid.UUID `json:"grading_system_id,omitempty"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

func FromMarkModel(m *gradebookModel.ExamSubjectMarkModel) MarkResponse {
	return MarkResponse{
		ExamSubjectMarkID: m.ExamSubjectMarkID,
		ExamSubjectID:     m.ExamSubjectMarkExamSubjectID,
		StudentID:         m.ExamSubjectMarkStudentID,
		MarksObtained:     m.ExamSubjectMarkMarksObtained,
		GradingSystemID:   m.ExamSubjectMarkGradingSystemID,
		UpdatedAt:         m.ExamSubjectMarkUpdatedAt,
	}
}

// GradebookResponse couples the summary with the system it was resolved under.
type GradebookResponse struct {
	StudentID         uuid.UUID                     `json:"student_id"`
	GradingSystemID   uuid.UUID                     `json:"grading_system_id"`
	GradingSystemName string                        `json:"grading_system_name"`
	Summary           gradebookService.GradeSummary `json:"summary"`
}

// MarkEditResponse is the editor round-trip: the persisted cell plus the
// freshly recomputed summary.
type MarkEditResponse struct {
	Mark MarkResponse `json:"mark"`
	// nil when no grading system is configured yet
	Gradebook *GradebookResponse `json:"gradebook,omitempty"`
}

// MarkEditConflict echoes the prior value so the editing cell can revert.
type MarkEditConflict struct {
	ExamSubjectMarkID  uuid.UUID `json:"exam_subject_mark_id"`
	PriorMarksObtained float64   `json:"prior_marks_obtained"`
}
