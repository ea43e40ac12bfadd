// file: internals/features/billing/payments/controller/payment_controller.go
package controller

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	helper "bimbelku_backend/internals/helpers"
	helperAuth "bimbelku_backend/internals/helpers/auth"

	d "bimbelku_backend/internals/features/billing/payments/dto"
	m "bimbelku_backend/internals/features/billing/payments/model"
	svc "bimbelku_backend/internals/features/billing/payments/service"
	sessDto "bimbelku_backend/internals/features/lessons/sessions/dto"
	sessService "bimbelku_backend/internals/features/lessons/sessions/service"
)

/* =========================
   Controller & Constructor
   ========================= */

type PaymentController struct {
	DB       *gorm.DB
	Validate *validator.Validate
	Attach   *svc.AttachService
}

func New(db *gorm.DB, v *validator.Validate) *PaymentController {
	return &PaymentController{
		DB:       db,
		Validate: v,
		Attach:   svc.NewAttachService(db),
	}
}

func parseUUIDParam(c *fiber.Ctx, name string) (uuid.UUID, error) {
	return uuid.Parse(strings.TrimSpace(c.Params(name)))
}

func writeAttachError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, sessService.ErrSeriesNotFound):
		return helper.JsonError(c, http.StatusNotFound, "Series tidak ditemukan")
	case errors.Is(err, sessService.ErrSessionNotFound):
		return helper.JsonError(c, http.StatusNotFound, "Sesi tidak ditemukan")
	case errors.Is(err, sessService.ErrNotOccurrence):
		return helper.JsonError(c, http.StatusUnprocessableEntity, "Tanggal di luar pola jadwal series")
	case errors.Is(err, svc.ErrPaymentNotFound):
		return helper.JsonError(c, http.StatusNotFound, "Payment tidak ditemukan")
	case errors.Is(err, svc.ErrQuotaExceeded):
		return helper.JsonError(c, http.StatusUnprocessableEntity, "Kuota menit payment terlampaui")
	case errors.Is(err, svc.ErrPaidMinInvalid):
		return helper.JsonError(c, http.StatusUnprocessableEntity, "Menit terbayar di luar rentang durasi sesi")
	}
	return helper.WritePGError(c, err)
}

/*
========================= Create & Read =========================
*/

func (ctl *PaymentController) Create(c *fiber.Ctx) error {
	if !helperAuth.IsFinance(c) {
		return helper.JsonError(c, http.StatusForbidden, "Akses ditolak")
	}
	actorID, err := helperAuth.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, http.StatusUnauthorized, err.Error())
	}

	var req d.CreatePaymentRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("[Payment.Create] BodyParser error: %v", err)
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonValidationFromErr(c, err)
	}

	row := req.ToModel(actorID)
	if err := ctl.DB.WithContext(c.Context()).Create(row).Error; err != nil {
		return helper.WritePGError(c, err)
	}

	return helper.JsonCreated(c, "Payment tercatat", d.FromModel(row))
}

func (ctl *PaymentController) List(c *fiber.Ctx) error {
	if !helperAuth.IsFinance(c) {
		return helper.JsonError(c, http.StatusForbidden, "Akses ditolak")
	}
	pg := helper.ResolvePaging(c, 20, 100)

	q := ctl.DB.WithContext(c.Context()).Model(&m.PaymentModel{})
	if sid := strings.TrimSpace(c.Query("student_id")); sid != "" {
		id, err := uuid.Parse(sid)
		if err != nil {
			return helper.JsonError(c, http.StatusBadRequest, "student_id tidak valid")
		}
		q = q.Where("payment_student_id = ?", id)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.WritePGError(c, err)
	}

	var rows []m.PaymentModel
	if err := q.Order("payment_date DESC").
		Limit(pg.Limit).Offset(pg.Offset).
		Find(&rows).Error; err != nil {
		return helper.WritePGError(c, err)
	}

	return helper.JsonList(c, "Daftar payment", d.FromModels(rows),
		helper.BuildPaginationFromPage(total, pg.Page, pg.PerPage))
}

func (ctl *PaymentController) GetByID(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "ID payment tidak valid")
	}

	var row m.PaymentModel
	if err := ctl.DB.WithContext(c.Context()).
		Where("payment_id = ?", id).
		First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, http.StatusNotFound, "Payment tidak ditemukan")
		}
		return helper.WritePGError(c, err)
	}

	return helper.JsonOK(c, "OK", d.FromModel(&row))
}

/*
========================= Attach / Detach =========================
*/

// POST /attach — atribusikan payment ke satu pertemuan (series, date).
// Kuota menit dijaga: total menit teratribusi ≤ lessons_count × durasi nominal.
func (ctl *PaymentController) AttachToSession(c *fiber.Ctx) error {
	if !helperAuth.IsFinance(c) {
		return helper.JsonError(c, http.StatusForbidden, "Akses ditolak")
	}
	actorID, err := helperAuth.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, http.StatusUnauthorized, err.Error())
	}

	var req d.AttachPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("[Payment.Attach] BodyParser error: %v", err)
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonValidationFromErr(c, err)
	}

	row, err := ctl.Attach.Attach(c.Context(), svc.AttachInput{
		SeriesID:  req.LessonSessionSeriesID,
		Date:      req.Date(),
		PaymentID: req.PaymentID,
		PaidMin:   req.LessonSessionPaidMin,
		ActorID:   actorID,
	})
	if err != nil {
		return writeAttachError(c, err)
	}

	return helper.JsonUpdated(c, "Payment teratribusi", sessDto.SessionFromModel(row))
}

func (ctl *PaymentController) DetachFromSession(c *fiber.Ctx) error {
	if !helperAuth.IsFinance(c) {
		return helper.JsonError(c, http.StatusForbidden, "Akses ditolak")
	}
	actorID, err := helperAuth.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, http.StatusUnauthorized, err.Error())
	}

	var req d.DetachPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonValidationFromErr(c, err)
	}

	row, err := ctl.Attach.Detach(c.Context(), svc.DetachInput{
		SeriesID: req.LessonSessionSeriesID,
		Date:     req.Date(),
		ActorID:  actorID,
	})
	if err != nil {
		return writeAttachError(c, err)
	}

	return helper.JsonUpdated(c, "Atribusi payment dilepas", sessDto.SessionFromModel(row))
}

/*
========================= Midtrans =========================
*/

// POST /checkout — generate Snap token untuk payment method=midtrans.
func (ctl *PaymentController) Checkout(c *fiber.Ctx) error {
	if !helperAuth.IsFinance(c) {
		return helper.JsonError(c, http.StatusForbidden, "Akses ditolak")
	}

	var req d.CheckoutPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonValidationFromErr(c, err)
	}

	var payment m.PaymentModel
	if err := ctl.DB.WithContext(c.Context()).
		Where("payment_id = ?", req.PaymentID).
		First(&payment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, http.StatusNotFound, "Payment tidak ditemukan")
		}
		return helper.WritePGError(c, err)
	}
	if payment.PaymentMethod != m.PaymentMethodMidtrans {
		return helper.JsonError(c, http.StatusUnprocessableEntity, "Payment bukan method midtrans")
	}

	// Order ID disimpan dulu supaya webhook bisa cocokkan.
	if payment.PaymentOrderID == nil || *payment.PaymentOrderID == "" {
		orderID := "PAY-" + payment.PaymentID.String()
		if err := ctl.DB.WithContext(c.Context()).
			Model(&m.PaymentModel{}).
			Where("payment_id = ?", payment.PaymentID).
			Update("payment_order_id", orderID).Error; err != nil {
			return helper.WritePGError(c, err)
		}
		payment.PaymentOrderID = &orderID
	}

	token, err := svc.GenerateSnapToken(payment, req.CustomerName, req.CustomerEmail)
	if err != nil {
		log.Printf("[Payment.Checkout] snap error: %v", err)
		return helper.JsonError(c, http.StatusBadGateway, "Gagal membuat transaksi Midtrans")
	}

	return helper.JsonOK(c, "Snap token dibuat", fiber.Map{
		"payment_id": payment.PaymentID,
		"order_id":   payment.PaymentOrderID,
		"snap_token": token,
	})
}

// POST /webhook — notifikasi status transaksi dari Midtrans (tanpa auth,
// diproteksi rate limiter khusus webhook).
func (ctl *PaymentController) MidtransWebhook(c *fiber.Ctx) error {
	var body map[string]interface{}
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "Payload tidak valid")
	}

	if err := svc.HandlePaymentStatusWebhook(ctl.DB.WithContext(c.Context()), body); err != nil {
		log.Printf("[Payment.Webhook] error: %v", err)
		return helper.JsonError(c, http.StatusInternalServerError, "Gagal memproses notifikasi")
	}

	return helper.JsonOK(c, "OK", nil)
}
