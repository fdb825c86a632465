// file: internals/features/school/grading/gradebook/route/teacher_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"edupro_backend/internals/constants"
	gradebookCtl "edupro_backend/internals/features/school/grading/gradebook/controller"
	authMiddleware "edupro_backend/internals/middlewares/auth"
)

// Teachers (and admins) read the aggregated grade book and edit cells.
func GradebookTeacherRoutes(api fiber.Router, db *gorm.DB) {
	ctl := gradebookCtl.NewGradebookController(db, nil)

	base := api.Group("",
		authMiddleware.OnlyRolesSlice(
			constants.RoleErrorTeacher("the grade book"),
			constants.TeacherAndAbove,
		),
	)

	base.Get("/gradebook/students/:student_id", ctl.GetStudentGradebook)
	base.Post("/gradebook/marks", ctl.CreateMark)
	base.Patch("/gradebook/marks/:id", ctl.UpdateMark)
}
