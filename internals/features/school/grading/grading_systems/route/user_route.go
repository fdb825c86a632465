// file: internals/features/school/grading/grading_systems/route/user_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	gradingCtl "edupro_backend/internals/features/school/grading/grading_systems/controller"
)

// Read-only endpoints for any authenticated role (dashboards show the scale).
func GradingSystemUserRoutes(api fiber.Router, db *gorm.DB) {
	ctl := gradingCtl.NewGradingSystemController(db, nil)

	api.Get("/grading-systems", ctl.List)
	api.Get("/grading-systems/:id", ctl.GetByID)
}
