// file: internals/route/details/lesson_routes.go
package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	schedRoute "bimbelku_backend/internals/features/lessons/schedule/route"
	seriesRoute "bimbelku_backend/internals/features/lessons/series/route"
	sessRoute "bimbelku_backend/internals/features/lessons/sessions/route"
)

func UserLessonRoutes(r fiber.Router, db *gorm.DB) {
	seriesRoute.LessonSeriesUserRoutes(r, db)
	schedRoute.LessonScheduleUserRoutes(r, db)
	sessRoute.LessonSessionUserRoutes(r, db)
}

func AdminLessonRoutes(r fiber.Router, db *gorm.DB) {
	seriesRoute.LessonSeriesAdminRoutes(r, db)
	sessRoute.LessonSessionAdminRoutes(r, db)
}
