// file: internals/features/school/exams/model/exam_model.go
package model

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ExamModel struct {
	// ============ PK ============
	ExamID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:exam_id" json:"exam_id"`

	// Example name: "First Terminal 2026" | "Half Yearly"
	ExamName string `gorm:"type:text;not null;column:exam_name" json:"exam_name"`
	// Example academic_year: "2026"
	ExamAcademicYear string  `gorm:"type:varchar(16);not null;column:exam_academic_year" json:"exam_academic_year"`
	ExamDescription  *string `gorm:"type:text;column:exam_description" json:"exam_description,omitempty"`

	// Owned subject rows (full marks live here)
	ExamSubjects []ExamSubjectModel `gorm:"foreignKey:ExamSubjectExamID;references:ExamID" json:"exam_subjects,omitempty"`

	// ============ Audit ============
	ExamCreatedAt time.Time `gorm:"type:timestamptz;not null;autoCreateTime;column:exam_created_at" json:"exam_created_at"`
	ExamUpdatedAt time.Time `gorm:"type:timestamptz;not null;autoUpdateTime;column:exam_updated_at" json:"exam_updated_at"`
}

func (ExamModel) TableName() string { return "exams" }

func (m *ExamModel) BeforeSave(tx *gorm.DB) error {
	m.ExamName = strings.TrimSpace(m.ExamName)
	if m.ExamName == "" {
		return errors.New("exam_name must not be empty")
	}
	m.ExamAcademicYear = strings.TrimSpace(m.ExamAcademicYear)
	return nil
}

type ExamSubjectModel struct {
	// ============ PK & owner ============
	ExamSubjectID     uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:exam_subject_id" json:"exam_subject_id"`
	ExamSubjectExamID uuid.UUID `gorm:"type:uuid;not null;index;column:exam_subject_exam_id" json:"exam_subject_exam_id"`

	ExamSubjectName string `gorm:"type:text;not null;column:exam_subject_name" json:"exam_subject_name"`
	// Marks are resolved into percentages against this ceiling
	ExamSubjectFullMarks float64 `gorm:"type:decimal(6,2);not null;column:exam_subject_full_marks" json:"exam_subject_full_marks"`

	// ============ Audit ============
	ExamSubjectCreatedAt time.Time `gorm:"type:timestamptz;not null;autoCreateTime;column:exam_subject_created_at" json:"exam_subject_created_at"`
}

func (ExamSubjectModel) TableName() string { return "exam_subjects" }

func (m *ExamSubjectModel) BeforeSave(tx *gorm.DB) error {
	// full marks of zero would make every percentage undefined
	if m.ExamSubjectFullMarks <= 0 {
		return errors.New("exam_subject_full_marks must be > 0")
	}
	m.ExamSubjectName = strings.TrimSpace(m.ExamSubjectName)
	if m.ExamSubjectName == "" {
		return errors.New("exam_subject_name must not be empty")
	}
	return nil
}
