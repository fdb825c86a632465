// file: internals/features/school/grading/grading_systems/model/grading_system_model.go
package model

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GradingSystemModel struct {
	// ============ PK ============
	GradingSystemID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:grading_system_id" json:"grading_system_id"`

	// ============ Identity ============
	// Example name: "Standard" | "Cambridge" | "Madrasah"
	GradingSystemName string `gorm:"type:text;not null;uniqueIndex:uq_grading_systems_name;column:grading_system_name" json:"grading_system_name"`
	// Partial unique index: the store can never hold two default rows,
	// whatever path wrote them.
	GradingSystemIsDefault bool `gorm:"not null;default:false;uniqueIndex:uq_grading_systems_default,where:grading_system_is_default = TRUE;column:grading_system_is_default" json:"grading_system_is_default"`

	// Owned bands, exclusive ownership (deleting the system deletes its bands)
	GradeBands []GradeBandModel `gorm:"foreignKey:GradeBandGradingSystemID;references:GradingSystemID" json:"grade_bands,omitempty"`

	// ============ Audit ============
	GradingSystemCreatedAt time.Time `gorm:"type:timestamptz;not null;autoCreateTime;column:grading_system_created_at" json:"grading_system_created_at"`
	GradingSystemUpdatedAt time.Time `gorm:"type:timestamptz;not null;autoUpdateTime;column:grading_system_updated_at" json:"grading_system_updated_at"`
}

func (GradingSystemModel) TableName() string { return "grading_systems" }

func (m *GradingSystemModel) BeforeSave(tx *gorm.DB) error {
	m.GradingSystemName = strings.TrimSpace(m.GradingSystemName)
	if m.GradingSystemName == "" {
		return errors.New("grading_system_name must not be empty")
	}
	return nil
}

type GradeBandModel struct {
	// ============ PK & owner ============
	GradeBandID              uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:grade_band_id" json:"grade_band_id"`
	GradeBandGradingSystemID uuid.UUID `gorm:"type:uuid;not null;index;column:grade_band_grading_system_id" json:"grade_band_grading_system_id"`

	// Example grade_name: "A+" | "B" | "F"
	GradeBandGradeName     string  `gorm:"type:varchar(10);not null;column:grade_band_grade_name" json:"grade_band_grade_name"`
	GradeBandMinPercentage float64 `gorm:"type:decimal(5,2);not null;column:grade_band_min_percentage" json:"grade_band_min_percentage"`
	GradeBandMaxPercentage float64 `gorm:"type:decimal(5,2);not null;column:grade_band_max_percentage" json:"grade_band_max_percentage"`
	GradeBandPoints        float64 `gorm:"type:decimal(4,2);not null;column:grade_band_points" json:"grade_band_points"`

	// ============ Audit ============
	GradeBandCreatedAt time.Time `gorm:"type:timestamptz;not null;autoCreateTime;column:grade_band_created_at" json:"grade_band_created_at"`
}

func (GradeBandModel) TableName() string { return "grade_bands" }

func (m *GradeBandModel) BeforeSave(tx *gorm.DB) error {
	// Mirror CHECK: min < max
	if m.GradeBandMinPercentage >= m.GradeBandMaxPercentage {
		return errors.New("grade_band_min_percentage must be < grade_band_max_percentage")
	}
	m.GradeBandGradeName = strings.TrimSpace(m.GradeBandGradeName)
	return nil
}
