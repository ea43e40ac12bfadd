// file: internals/route/details/billing_routes.go
package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	payRoute "bimbelku_backend/internals/features/billing/payments/route"
)

func AdminBillingRoutes(r fiber.Router, db *gorm.DB) {
	payRoute.PaymentAdminRoutes(r, db)
}

func PublicBillingRoutes(r fiber.Router, db *gorm.DB) {
	payRoute.PaymentPublicRoutes(r, db)
}
