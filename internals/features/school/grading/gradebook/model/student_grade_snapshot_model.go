// file: internals/features/school/grading/gradebook/model/student_grade_snapshot_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// StudentGradeSnapshotModel caches the last computed grade-book summary for a
// (student, grading system) pair. Never a source of truth — it is upserted on
// read and dropped whenever one of the student's marks changes.
type StudentGradeSnapshotModel struct {
	StudentGradeSnapshotID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:student_grade_snapshot_id" json:"student_grade_snapshot_id"`

	StudentGradeSnapshotStudentID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_student_grade_snapshots,priority:1;column:student_grade_snapshot_student_id" json:"student_grade_snapshot_student_id"`
	StudentGradeSnapshotGradingSystemID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_student_grade_snapshots,priority:2;column:student_grade_snapshot_grading_system_id" json:"student_grade_snapshot_grading_system_id"`

	// Serialized summary (cells + GPA + overall grade)
	StudentGradeSnapshotPayload datatypes.JSON `gorm:"type:jsonb;not null;column:student_grade_snapshot_payload" json:"student_grade_snapshot_payload"`

	StudentGradeSnapshotComputedAt time.Time `gorm:"type:timestamptz;not null;autoUpdateTime;column:student_grade_snapshot_computed_at" json:"student_grade_snapshot_computed_at"`
}

func (StudentGradeSnapshotModel) TableName() string { return "student_grade_snapshots" }
