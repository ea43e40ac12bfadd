// file: internals/features/billing/payments/route/payment_routes.go
package routes

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	payCtl "bimbelku_backend/internals/features/billing/payments/controller"
	"bimbelku_backend/internals/middlewares"
)

// PaymentAdminRoutes: pencatatan & atribusi pembayaran (accountant/admin/owner)
func PaymentAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctl := payCtl.New(db, validator.New())

	grp := admin.Group("/payments", middlewares.MutationRateLimiter())

	grp.Post("/", ctl.Create)
	grp.Get("/", ctl.List)
	grp.Get("/:id", ctl.GetByID)

	grp.Post("/attach", ctl.AttachToSession)
	grp.Post("/detach", ctl.DetachFromSession)
	grp.Post("/checkout", ctl.Checkout)
}

// PaymentPublicRoutes: webhook Midtrans (tanpa auth, rate-limited)
func PaymentPublicRoutes(public fiber.Router, db *gorm.DB) {
	ctl := payCtl.New(db, validator.New())

	public.Post("/payments/midtrans/webhook",
		middlewares.WebhookRateLimiter(), ctl.MidtransWebhook)
}
