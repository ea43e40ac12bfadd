// file: internals/route/index.go
package routes

import (
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"bimbelku_backend/internals/middlewares"
	authMiddleware "bimbelku_backend/internals/middlewares/auth"
	routeDetails "bimbelku_backend/internals/route/details"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	startTime = time.Now()

	// DB di locals untuk handler yang butuh akses langsung
	app.Use(middlewares.DBMiddleware(db))

	// ===================== PUBLIC =====================
	log.Println("[INFO] Setting up PUBLIC group...")
	public := app.Group("/api/public")
	routeDetails.PublicBillingRoutes(public, db)

	public.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
			"uptime": time.Since(startTime).String(),
		})
	})

	// ===================== PRIVATE (USER) =====================
	// Read-only: jadwal, timeline, jam efektif.
	log.Println("[INFO] Setting up PRIVATE (user) group...")
	user := app.Group("/api/u",
		authMiddleware.AuthJWT(authMiddleware.AuthJWTOpts{
			Secret:              os.Getenv("JWT_SECRET"),
			AllowCookieFallback: true,
		}),
	)
	routeDetails.UserLessonRoutes(user, db)

	// ===================== ADMIN (STAFF) =====================
	// Mutasi: series CRUD, set-status, reschedule, payment.
	log.Println("[INFO] Setting up ADMIN group...")
	admin := app.Group("/api/a",
		authMiddleware.AuthJWT(authMiddleware.AuthJWTOpts{
			Secret:              os.Getenv("JWT_SECRET"),
			AllowCookieFallback: true,
		}),
	)
	routeDetails.AdminLessonRoutes(admin, db)
	routeDetails.AdminBillingRoutes(admin, db)

	log.Println("[INFO] All routes ready ✅")
}
