// file: internals/features/school/exams/controller/exam_controller.go
package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "edupro_backend/internals/features/school/exams/dto"
	model "edupro_backend/internals/features/school/exams/model"
	helper "edupro_backend/internals/helpers"
)

type ExamController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewExamController(db *gorm.DB, v *validator.Validate) *ExamController {
	if v == nil {
		v = validator.New()
	}
	return &ExamController{DB: db, Validator: v}
}

/* ============================================
   CREATE (admin only)
   POST /admin/exams
============================================ */

func (ctl *ExamController) Create(c *fiber.Ctx) error {
	var req dto.CreateExamRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	req.Normalize()
	if err := ctl.Validator.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	ent := req.ToModel()
	// exam header and its subject rows land together or not at all
	if err := ctl.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&ent).Error
	}); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "operation failed")
	}

	return helper.JsonCreated(c, "Exam created", dto.FromExamModel(&ent))
}

/* ============================================
   LIST
   GET /exams?academic_year=&page=&per_page=
============================================ */

func (ctl *ExamController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	tx := ctl.DB.Model(&model.ExamModel{})
	if year := strings.TrimSpace(c.Query("academic_year")); year != "" {
		tx = tx.Where("exam_academic_year = ?", year)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "operation failed")
	}

	var exams []model.ExamModel
	if err := tx.
		Preload("ExamSubjects").
		Order("exam_created_at DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&exams).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "operation failed")
	}

	p := helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage)
	return helper.JsonList(c, "Exams fetched", dto.FromExamModels(exams), &p)
}

/* ============================================
   DETAIL
   GET /exams/:id
============================================ */

func (ctl *ExamController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}

	var ent model.ExamModel
	if err := ctl.DB.
		Preload("ExamSubjects").
		Where("exam_id = ?", id).
		First(&ent).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Exam not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "operation failed")
	}
	return helper.JsonOK(c, "Exam found", dto.FromExamModel(&ent))
}
