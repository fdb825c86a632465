// file: internals/features/school/grading/grading_systems/controller/grading_system_controller.go
package controller

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "edupro_backend/internals/features/school/grading/grading_systems/dto"
	service "edupro_backend/internals/features/school/grading/grading_systems/service"
	helper "edupro_backend/internals/helpers"
)

/* ============================================
   Controller
============================================ */

type GradingSystemController struct {
	DB        *gorm.DB
	Validator *validator.Validate
	Service   *service.GradingSystemService
}

func NewGradingSystemController(db *gorm.DB, v *validator.Validate) *GradingSystemController {
	if v == nil {
		v = validator.New()
	}
	return &GradingSystemController{
		DB:        db,
		Validator: v,
		Service:   service.NewGradingSystemService(db),
	}
}

/* ============================================
   RESP/ERR helpers
============================================ */

func bindAndValidate[T any](c *fiber.Ctx, v *validator.Validate, dst *T) error {
	if err := c.BodyParser(dst); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if v != nil {
		if err := v.Struct(dst); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
	}
	return nil
}

// svcErr maps the grading error taxonomy onto the response envelope.
// Storage causes were already logged by the service; the caller only sees
// the opaque message.
func svcErr(c *fiber.Ctx, err error) error {
	switch err.(type) {
	case *service.ValidationError:
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	case *service.ConflictError:
		return helper.JsonError(c, fiber.StatusConflict, err.Error())
	case *service.ReferentialIntegrityError:
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	case *service.NotFoundError:
		return helper.JsonError(c, fiber.StatusNotFound, err.Error())
	case *service.StorageError:
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	default:
		if fe, ok := err.(*fiber.Error); ok {
			return helper.JsonError(c, fe.Code, fe.Message)
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "operation failed")
	}
}

/* ============================================
   LIST
   GET /grading-systems
============================================ */

func (ctl *GradingSystemController) List(c *fiber.Ctx) error {
	systems, err := ctl.Service.List()
	if err != nil {
		return svcErr(c, err)
	}
	return helper.JsonOK(c, "Grading systems fetched", dto.FromModels(systems))
}

/* ============================================
   DETAIL
   GET /grading-systems/:id
============================================ */

func (ctl *GradingSystemController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}
	sys, err := ctl.Service.GetByID(id)
	if err != nil {
		return svcErr(c, err)
	}
	return helper.JsonOK(c, "Grading system found", dto.FromModel(sys))
}

/* ============================================
   CREATE (admin only)
   POST /admin/grading-systems
============================================ */

func (ctl *GradingSystemController) Create(c *fiber.Ctx) error {
	var req dto.CreateGradingSystemRequest
	if err := bindAndValidate(c, ctl.Validator, &req); err != nil {
		return svcErr(c, err)
	}
	req.Normalize()

	bands, err := dto.BandsToService(req.Bands)
	if err != nil {
		return svcErr(c, err)
	}

	sys, err := ctl.Service.Create(service.CreateGradingSystemInput{
		Name:      req.Name,
		IsDefault: req.IsDefault,
		Bands:     bands,
	})
	if err != nil {
		return svcErr(c, err)
	}
	return helper.JsonCreated(c, "Grading system created", dto.FromModel(sys))
}

/* ============================================
   UPDATE (admin only)
   PUT /admin/grading-systems/:id
============================================ */

func (ctl *GradingSystemController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}

	var req dto.UpdateGradingSystemRequest
	if err := bindAndValidate(c, ctl.Validator, &req); err != nil {
		return svcErr(c, err)
	}
	req.Normalize()

	in := service.UpdateGradingSystemInput{
		Name:      req.Name,
		IsDefault: req.IsDefault,
	}
	if req.Bands != nil {
		bands, err := dto.BandsToService(req.Bands)
		if err != nil {
			return svcErr(c, err)
		}
		in.Bands = bands
	}

	sys, err := ctl.Service.Update(id, in)
	if err != nil {
		return svcErr(c, err)
	}
	return helper.JsonUpdated(c, "Grading system updated", dto.FromModel(sys))
}

/* ============================================
   DELETE (admin only)
   DELETE /admin/grading-systems/:id
============================================ */

func (ctl *GradingSystemController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}

	if err := ctl.Service.Delete(id); err != nil {
		return svcErr(c, err)
	}
	return helper.JsonDeleted(c, "Grading system deleted", fiber.Map{"grading_system_id": id})
}
