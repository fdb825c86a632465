// file: internals/features/school/grading/gradebook/model/exam_subject_mark_model.go
package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ExamSubjectMarkModel struct {
	// ============ PK ============
	ExamSubjectMarkID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:exam_subject_mark_id" json:"exam_subject_mark_id"`

	// One row per (exam subject, student)
	ExamSubjectMarkExamSubjectID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_exam_subject_marks_cell,priority:1;column:exam_subject_mark_exam_subject_id" json:"exam_subject_mark_exam_subject_id"`
	ExamSubjectMarkStudentID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_exam_subject_marks_cell,priority:2;index;column:exam_subject_mark_student_id" json:"exam_subject_mark_student_id"`

	ExamSubjectMarkMarksObtained float64 `gorm:"type:decimal(6,2);not null;column:exam_subject_mark_marks_obtained" json:"exam_subject_mark_marks_obtained"`

	// Grading system in effect when this mark's grade was last computed.
	// The store's delete guard counts these references.
	ExamSubjectMarkGradingSystemID *uuid.UUID `gorm:"type:uuid;index;column:exam_subject_mark_grading_system_id" json:"exam_subject_mark_grading_system_id,omitempty"`

	// ============ Audit ============
	ExamSubjectMarkCreatedAt time.Time `gorm:"type:timestamptz;not null;autoCreateTime;column:exam_subject_mark_created_at" json:"exam_subject_mark_created_at"`
	ExamSubjectMarkUpdatedAt time.Time `gorm:"type:timestamptz;not null;autoUpdateTime;column:exam_subject_mark_updated_at" json:"exam_subject_mark_updated_at"`
}

func (ExamSubjectMarkModel) TableName() string { return "exam_subject_marks" }

func (m *ExamSubjectMarkModel) BeforeSave(tx *gorm.DB) error {
	if m.ExamSubjectMarkMarksObtained < 0 {
		return errors.New("exam_subject_mark_marks_obtained must be >= 0")
	}
	return nil
}
