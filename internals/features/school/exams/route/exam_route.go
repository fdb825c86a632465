// file: internals/features/school/exams/route/exam_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"edupro_backend/internals/constants"
	examCtl "edupro_backend/internals/features/school/exams/controller"
	authMiddleware "edupro_backend/internals/middlewares/auth"
)

func ExamAdminRoutes(api fiber.Router, db *gorm.DB) {
	ctl := examCtl.NewExamController(db, nil)

	base := api.Group("",
		authMiddleware.OnlyRoles(
			constants.RoleErrorAdmin("managing exams"),
			constants.RoleAdmin,
		),
	)

	base.Post("/exams", ctl.Create)
}

func ExamTeacherRoutes(api fiber.Router, db *gorm.DB) {
	ctl := examCtl.NewExamController(db, nil)

	base := api.Group("",
		authMiddleware.OnlyRoles(
			constants.RoleErrorTeacher("exams"),
			constants.RoleTeacher, constants.RoleAdmin,
		),
	)

	base.Get("/exams", ctl.List)
	base.Get("/exams/:id", ctl.GetByID)
}
