// file: internals/features/school/grading/grading_systems/service/grading_system_service.go
package service

import (
	"database/sql"
	"errors"
	"log"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	gradebookModel "edupro_backend/internals/features/school/grading/gradebook/model"
	model "edupro_backend/internals/features/school/grading/grading_systems/model"
)

// At READ COMMITTED the clear-then-set default reassignment and the
// check-then-delete reference guard are not atomic against a concurrent
// writer: two defaults (or a dangling mark reference) can both commit.
// Serializable makes the losing transaction abort instead.
var serializableTx = &sql.TxOptions{Isolation: sql.LevelSerializable}

// GradingSystemService owns persisted grading systems and their bands.
// Every multi-row mutation (create-with-bands, replace-band-set,
// default reassignment, check-then-delete) runs inside one transaction so
// no intermediate state is ever visible to concurrent readers.
type GradingSystemService struct {
	DB *gorm.DB
}

func NewGradingSystemService(db *gorm.DB) *GradingSystemService {
	return &GradingSystemService{DB: db}
}

type CreateGradingSystemInput struct {
	Name      string
	IsDefault bool
	Bands     []Band
}

type UpdateGradingSystemInput struct {
	Name      *string
	IsDefault *bool
	Bands     []Band // nil keeps the existing set; non-nil replaces it wholesale
}

// storageErr logs the raw cause for operators and returns the opaque error.
func storageErr(op string, err error) error {
	log.Printf("[ERROR] grading systems %s: %v", op, err)
	return &StorageError{Cause: err}
}

// Create validates and persists a new grading system with its band set.
func (s *GradingSystemService) Create(in CreateGradingSystemInput) (*model.GradingSystemModel, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, NewValidationError("name is required")
	}
	if err := ValidateBands(in.Bands); err != nil {
		return nil, err
	}

	var created model.GradingSystemModel
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var cnt int64
		if err := tx.Model(&model.GradingSystemModel{}).
			Where("lower(grading_system_name) = lower(?)", name).
			Count(&cnt).Error; err != nil {
			return storageErr("create/name check", err)
		}
		if cnt > 0 {
			return &ConflictError{Msg: "a grading system with this name already exists"}
		}

		// Exactly one default across the store: clear others inside the same tx.
		if in.IsDefault {
			if err := tx.Model(&model.GradingSystemModel{}).
				Where("grading_system_is_default = TRUE").
				Update("grading_system_is_default", false).Error; err != nil {
				return storageErr("create/clear defaults", err)
			}
		}

		created = model.GradingSystemModel{
			GradingSystemName:      name,
			GradingSystemIsDefault: in.IsDefault,
		}
		if err := tx.Create(&created).Error; err != nil {
			return storageErr("create/system", err)
		}

		bands := bandsToModels(created.GradingSystemID, in.Bands)
		if err := tx.Create(&bands).Error; err != nil {
			return storageErr("create/bands", err)
		}
		return nil
	}, serializableTx)
	if err != nil {
		return nil, err
	}

	return s.getHydrated(created.GradingSystemID)
}

// Update applies partial header changes and, when Bands is non-nil, replaces
// the whole band set (delete-all-then-recreate) in one atomic unit. Stale
// bands silently overlapping a new one are impossible this way.
func (s *GradingSystemService) Update(id uuid.UUID, in UpdateGradingSystemInput) (*model.GradingSystemModel, error) {
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		return nil, NewValidationError("name must not be empty")
	}
	if in.Bands != nil {
		if err := ValidateBands(in.Bands); err != nil {
			return nil, err
		}
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var ent model.GradingSystemModel
		if err := tx.Where("grading_system_id = ?", id).First(&ent).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Msg: "grading system not found"}
			}
			return storageErr("update/fetch", err)
		}

		updates := map[string]any{}

		if in.Name != nil {
			name := strings.TrimSpace(*in.Name)
			var cnt int64
			if err := tx.Model(&model.GradingSystemModel{}).
				Where("lower(grading_system_name) = lower(?) AND grading_system_id <> ?", name, id).
				Count(&cnt).Error; err != nil {
				return storageErr("update/name check", err)
			}
			if cnt > 0 {
				return &ConflictError{Msg: "a grading system with this name already exists"}
			}
			updates["grading_system_name"] = name
		}

		if in.IsDefault != nil {
			if *in.IsDefault && !ent.GradingSystemIsDefault {
				// false→true: clear every other default first, same tx
				if err := tx.Model(&model.GradingSystemModel{}).
					Where("grading_system_id <> ? AND grading_system_is_default = TRUE", id).
					Update("grading_system_is_default", false).Error; err != nil {
					return storageErr("update/clear defaults", err)
				}
			}
			updates["grading_system_is_default"] = *in.IsDefault
		}

		if len(updates) > 0 {
			if err := tx.Model(&ent).Updates(updates).Error; err != nil {
				return storageErr("update/system", err)
			}
		}

		if in.Bands != nil {
			if err := tx.Where("grade_band_grading_system_id = ?", id).
				Delete(&model.GradeBandModel{}).Error; err != nil {
				return storageErr("update/delete bands", err)
			}
			bands := bandsToModels(id, in.Bands)
			if err := tx.Create(&bands).Error; err != nil {
				return storageErr("update/recreate bands", err)
			}
		}
		return nil
	}, serializableTx)
	if err != nil {
		return nil, err
	}

	return s.getHydrated(id)
}

// Delete removes a grading system and, by ownership cascade, its bands —
// unless any persisted mark still references it. The reference check and the
// delete share one transaction to close the check-then-delete race.
func (s *GradingSystemService) Delete(id uuid.UUID) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var ent model.GradingSystemModel
		if err := tx.Where("grading_system_id = ?", id).First(&ent).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Msg: "grading system not found"}
			}
			return storageErr("delete/fetch", err)
		}

		var refs int64
		if err := tx.Model(&gradebookModel.ExamSubjectMarkModel{}).
			Where("exam_subject_mark_grading_system_id = ?", id).
			Count(&refs).Error; err != nil {
			return storageErr("delete/reference check", err)
		}
		if refs > 0 {
			return &ReferentialIntegrityError{Msg: "grading system is still referenced by exam results"}
		}

		if err := tx.Where("grade_band_grading_system_id = ?", id).
			Delete(&model.GradeBandModel{}).Error; err != nil {
			return storageErr("delete/bands", err)
		}
		if err := tx.Delete(&ent).Error; err != nil {
			return storageErr("delete/system", err)
		}
		return nil
	}, serializableTx)
}

// List returns every grading system, default first, bands highest-first for
// display.
func (s *GradingSystemService) List() ([]model.GradingSystemModel, error) {
	var systems []model.GradingSystemModel
	if err := s.DB.
		Preload("GradeBands", bandsDisplayOrder).
		Order("grading_system_is_default DESC, grading_system_name ASC").
		Find(&systems).Error; err != nil {
		return nil, storageErr("list", err)
	}
	return systems, nil
}

// GetByID returns one hydrated system.
func (s *GradingSystemService) GetByID(id uuid.UUID) (*model.GradingSystemModel, error) {
	return s.getHydrated(id)
}

// Default returns the system currently flagged as the institution default.
func (s *GradingSystemService) Default() (*model.GradingSystemModel, error) {
	var ent model.GradingSystemModel
	if err := s.DB.
		Preload("GradeBands", bandsDisplayOrder).
		Where("grading_system_is_default = TRUE").
		First(&ent).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Msg: "no default grading system configured"}
		}
		return nil, storageErr("default/fetch", err)
	}
	return &ent, nil
}

func (s *GradingSystemService) getHydrated(id uuid.UUID) (*model.GradingSystemModel, error) {
	var ent model.GradingSystemModel
	if err := s.DB.
		Preload("GradeBands", bandsDisplayOrder).
		Where("grading_system_id = ?", id).
		First(&ent).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Msg: "grading system not found"}
		}
		return nil, storageErr("fetch", err)
	}
	return &ent, nil
}

func bandsDisplayOrder(db *gorm.DB) *gorm.DB {
	return db.Order("grade_band_min_percentage DESC")
}

func bandsToModels(systemID uuid.UUID, bands []Band) []model.GradeBandModel {
	out := make([]model.GradeBandModel, 0, len(bands))
	for _, b := range bands {
		out = append(out, model.GradeBandModel{
			GradeBandGradingSystemID: systemID,
			GradeBandGradeName:       strings.TrimSpace(b.GradeName),
			GradeBandMinPercentage:   b.MinPercentage,
			GradeBandMaxPercentage:   b.MaxPercentage,
			GradeBandPoints:          b.Points,
		})
	}
	return out
}

// BandsOf converts persisted band rows into the pure-logic shape.
func BandsOf(sys *model.GradingSystemModel) []Band {
	out := make([]Band, 0, len(sys.GradeBands))
	for _, b := range sys.GradeBands {
		out = append(out, Band{
			GradeName:     b.GradeBandGradeName,
			MinPercentage: b.GradeBandMinPercentage,
			MaxPercentage: b.GradeBandMaxPercentage,
			Points:        b.GradeBandPoints,
		})
	}
	return out
}
