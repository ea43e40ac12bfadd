// file: internals/features/lessons/schedule/route/lesson_schedule_routes.go
package routes

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	schedCtl "bimbelku_backend/internals/features/lessons/schedule/controller"
)

// LessonScheduleUserRoutes: occurrence & timeline (read-only)
func LessonScheduleUserRoutes(user fiber.Router, db *gorm.DB) {
	ctl := schedCtl.New(db, validator.New())

	user.Get("/lesson-series/:id/occurrences", ctl.Occurrences)
	user.Get("/lesson-series/:id/timeline", ctl.Timeline)
}
