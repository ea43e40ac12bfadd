// file: internals/features/lessons/series/route/lesson_series_routes.go
package routes

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	seriesCtl "bimbelku_backend/internals/features/lessons/series/controller"
	"bimbelku_backend/internals/middlewares"
)

// LessonSeriesAdminRoutes: mutasi series + pencatatan perubahan jadwal (staff)
func LessonSeriesAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctl := seriesCtl.New(db, validator.New())

	grp := admin.Group("/lesson-series", middlewares.MutationRateLimiter())

	grp.Post("/", ctl.Create)
	grp.Patch("/:id", ctl.Update)
	grp.Patch("/:id/deactivate", ctl.Deactivate)
	grp.Delete("/:id", ctl.Delete)

	grp.Post("/:id/schedule-changes", ctl.CreateScheduleChange)
}

// LessonSeriesUserRoutes: read-only
func LessonSeriesUserRoutes(user fiber.Router, db *gorm.DB) {
	ctl := seriesCtl.New(db, validator.New())

	grp := user.Group("/lesson-series")

	grp.Get("/", ctl.List)
	grp.Get("/:id", ctl.GetByID)
	grp.Get("/:id/effective-time", ctl.EffectiveTime)
	grp.Get("/:id/schedule-changes", ctl.ListScheduleChanges)
}
