// file: internals/route/index.go
package routes

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	examRoute "edupro_backend/internals/features/school/exams/route"
	gradebookRoute "edupro_backend/internals/features/school/grading/gradebook/route"
	gradingRoute "edupro_backend/internals/features/school/grading/grading_systems/route"
	authRoute "edupro_backend/internals/features/users/auth/route"
	authMiddleware "edupro_backend/internals/middlewares/auth"
)

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	// ===================== AUTH (public) =====================
	log.Println("[INFO] Setting up AuthRoutes...")
	authRoute.AuthRoutes(app, db)

	jwtGuard := authMiddleware.AuthJWT(authMiddleware.AuthJWTOpts{
		Secret:              os.Getenv("JWT_SECRET"),
		AllowCookieFallback: true,
	})

	// ===================== PRIVATE (any authenticated role) =====================
	log.Println("[INFO] Setting up USER group...")
	user := app.Group("/api/u", jwtGuard)
	gradingRoute.GradingSystemUserRoutes(user, db)

	// ===================== TEACHER =====================
	log.Println("[INFO] Setting up TEACHER group...")
	teacher := app.Group("/api/t", jwtGuard)
	gradebookRoute.GradebookTeacherRoutes(teacher, db)
	examRoute.ExamTeacherRoutes(teacher, db)

	// ===================== ADMIN =====================
	log.Println("[INFO] Setting up ADMIN group...")
	admin := app.Group("/api/a", jwtGuard)
	gradingRoute.GradingSystemAdminRoutes(admin, db)
	examRoute.ExamAdminRoutes(admin, db)
	gradebookRoute.GradebookTeacherRoutes(admin, db)
}
