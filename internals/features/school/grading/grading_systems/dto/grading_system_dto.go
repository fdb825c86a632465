// file: internals/features/school/grading/grading_systems/dto/grading_system_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	model "edupro_backend/internals/features/school/grading/grading_systems/model"
	service "edupro_backend/internals/features/school/grading/grading_systems/service"
)

/* =========================================================
   CREATE
   ========================================================= */

type GradeBandInput struct {
	// All four fields are required; pointers so an absent field is
	// distinguishable from a zero value.
	GradeName     *string  `json:"grade_name" validate:"required"`
	MinPercentage *float64 `json:"min_percentage" validate:"required"`
	MaxPercentage *float64 `json:"max_percentage" validate:"required"`
	Points        *float64 `json:"points" validate:"required"`
}

type CreateGradingSystemRequest struct {
	Name      string           `json:"name" validate:"required,min=1,max=120"`
	IsDefault bool             `json:"is_default"`
	Bands     []GradeBandInput `json:"bands" validate:"required,min=1,dive"`
}

func (r *CreateGradingSystemRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	for i := range r.Bands {
		if r.Bands[i].GradeName != nil {
			g := strings.TrimSpace(*r.Bands[i].GradeName)
			r.Bands[i].GradeName = &g
		}
	}
}

/* =========================================================
   UPDATE (partial; a supplied band set replaces the old one)
   ========================================================= */

type UpdateGradingSystemRequest struct {
	Name      *string          `json:"name" validate:"omitempty,min=1,max=120"`
	IsDefault *bool            `json:"is_default"`
	Bands     []GradeBandInput `json:"bands" validate:"omitempty,min=1,dive"`
}

func (r *UpdateGradingSystemRequest) Normalize() {
	if r.Name != nil {
		n := strings.TrimSpace(*r.Name)
		r.Name = &n
	}
	for i := range r.Bands {
		if r.Bands[i].GradeName != nil {
			g := strings.TrimSpace(*r.Bands[i].GradeName)
			r.Bands[i].GradeName = &g
		}
	}
}

// BandsToService converts inputs to the pure-logic shape, naming the first
// missing field so the caller gets an actionable message.
func BandsToService(in []GradeBandInput) ([]service.Band, error) {
	out := make([]service.Band, 0, len(in))
	for _, b := range in {
		switch {
		case b.GradeName == nil:
			return nil, service.NewValidationError("grade_name is required")
		case b.MinPercentage == nil:
			return nil, service.NewValidationError("min_percentage is required")
		case b.MaxPercentage == nil:
			return nil, service.NewValidationError("max_percentage is required")
		case b.Points == nil:
			return nil, service.NewValidationError("points is required")
		}
		out = append(out, service.Band{
			GradeName:     *b.GradeName,
			MinPercentage: *b.MinPercentage,
			MaxPercentage: *b.MaxPercentage,
			Points:        *b.Points,
		})
	}
	return out, nil
}

/* =========================================================
   RESPONSES
   ========================================================= */

type GradeBandResponse struct {
	GradeBandID   uuid.UUID `json:"grade_band_id"`
	GradeName     string    `json:"grade_name"`
	MinPercentage float64   `json:"min_percentage"`
	MaxPercentage float64   `json:"max_percentage"`
	Points        float64   `json:"points"`
}

type GradingSystemResponse struct {
	GradingSystemID uuid.UUID           `json:"grading_system_id"`
	Name            string              `json:"name"`
	IsDefault       bool                `json:"is_default"`
	Bands           []GradeBandResponse `json:"bands"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

// FromModel maps a hydrated system; bands keep the store's display order
// (descending min percentage).
func FromModel(m *model.GradingSystemModel) GradingSystemResponse {
	bands := make([]GradeBandResponse, 0, len(m.GradeBands))
	for _, b := range m.GradeBands {
		bands = append(bands, GradeBandResponse{
			GradeBandID:   b.GradeBandID,
			GradeName:     b.GradeBandGradeName,
			MinPercentage: b.GradeBandMinPercentage,
			MaxPercentage: b.GradeBandMaxPercentage,
			Points:        b.GradeBandPoints,
		})
	}
	return GradingSystemResponse{
		GradingSystemID: m.GradingSystemID,
		Name:            m.GradingSystemName,
		IsDefault:       m.GradingSystemIsDefault,
		Bands:           bands,
		CreatedAt:       m.GradingSystemCreatedAt,
		UpdatedAt:       m.GradingSystemUpdatedAt,
	}
}

func FromModels(ms []model.GradingSystemModel) []GradingSystemResponse {
	out := make([]GradingSystemResponse, 0, len(ms))
	for i := range ms {
		out = append(out, FromModel(&ms[i]))
	}
	return out
}
