// file: internals/features/school/grading/grading_systems/route/admin_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"edupro_backend/internals/constants"
	gradingCtl "edupro_backend/internals/features/school/grading/grading_systems/controller"
	authMiddleware "edupro_backend/internals/middlewares/auth"
)

func GradingSystemAdminRoutes(api fiber.Router, db *gorm.DB) {
	ctl := gradingCtl.NewGradingSystemController(db, nil)

	base := api.Group("",
		authMiddleware.OnlyRolesSlice(
			constants.RoleErrorAdmin("managing grading systems"),
			constants.AdminOnly,
		),
	)

	base.Post("/grading-systems", ctl.Create)
	base.Put("/grading-systems/:id", ctl.Update)
	base.Delete("/grading-systems/:id", ctl.Delete)
}
