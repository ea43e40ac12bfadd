// file: internals/features/lessons/sessions/route/lesson_session_routes.go
package routes

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	sessCtl "bimbelku_backend/internals/features/lessons/sessions/controller"
	"bimbelku_backend/internals/middlewares"
)

// LessonSessionAdminRoutes: operasi status pertemuan (staff)
func LessonSessionAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctl := sessCtl.New(db, validator.New())

	grp := admin.Group("/lesson-sessions", middlewares.MutationRateLimiter())

	grp.Post("/set-status", ctl.SetStatus)
	grp.Post("/reschedule", ctl.Reschedule)
	grp.Post("/additional", ctl.CreateAdditional)
	grp.Patch("/:id", ctl.Update)
}

// LessonSessionUserRoutes: daftar baris persisted per series
func LessonSessionUserRoutes(user fiber.Router, db *gorm.DB) {
	ctl := sessCtl.New(db, validator.New())

	user.Get("/lesson-sessions/by-series/:id", ctl.ListBySeries)
	user.Get("/lesson-sessions/:id", ctl.GetByID)
}
