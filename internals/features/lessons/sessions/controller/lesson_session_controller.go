// file: internals/features/lessons/sessions/controller/lesson_session_controller.go
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

	schedService "bimbelku_backend/internals/features/lessons/schedule/service"
	seriesModel "bimbelku_backend/internals/features/lessons/series/model"
	d "bimbelku_backend/internals/features/lessons/sessions/dto"
	m "bimbelku_backend/internals/features/lessons/sessions/model"
	svc "bimbelku_backend/internals/features/lessons/sessions/service"
)

/* =========================
   Controller & Constructor
   ========================= */

type LessonSessionController struct {
	DB       *gorm.DB
	Validate *validator.Validate
	Status   *svc.StatusService
}

func New(db *gorm.DB, v *validator.Validate) *LessonSessionController {
	return &LessonSessionController{
		DB:       db,
		Validate: v,
		Status:   svc.NewStatusService(db),
	}
}

/* =========================
   Helpers
   ========================= */

// Mapping error service → HTTP. Selain daftar ini, jatuh ke PG mapper.
func writeServiceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, svc.ErrSeriesNotFound):
		return helper.JsonError(c, http.StatusNotFound, "Series tidak ditemukan")
	case errors.Is(err, svc.ErrSessionNotFound):
		return helper.JsonError(c, http.StatusNotFound, "Sesi tidak ditemukan")
	case errors.Is(err, svc.ErrInvalidStatus):
		return helper.JsonError(c, http.StatusBadRequest, "Status tidak dikenal")
	case errors.Is(err, svc.ErrSpecialStatus):
		return helper.JsonError(c, http.StatusBadRequest, "Status reschedule hanya lewat endpoint reschedule")
	case errors.Is(err, svc.ErrNotOccurrence):
		return helper.JsonError(c, http.StatusUnprocessableEntity, "Tanggal di luar pola jadwal series")
	case errors.Is(err, svc.ErrTargetTaken):
		return helper.JsonError(c, http.StatusConflict, "Tanggal tujuan sudah terpakai")
	case errors.Is(err, svc.ErrAlreadyMoved):
		return helper.JsonError(c, http.StatusConflict, "Sesi sudah pernah dipindahkan")
	}
	return helper.WritePGError(c, err)
}

/*
========================= Set status =========================
*/

// POST /set-status — operasi inti state machine. Bisa berdampak ke baris
// lain (transfer pembayaran maju/mundur); hasil transfer ikut di response.
func (ctl *LessonSessionController) SetStatus(c *fiber.Ctx) error {
	if !helperAuth.IsStaff(c) {
		return helper.JsonError(c, http.StatusForbidden, "Akses ditolak")
	}
	actorID, err := helperAuth.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, http.StatusUnauthorized, err.Error())
	}

	var req d.SetLessonSessionStatusRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("[LessonSession.SetStatus] BodyParser error: %v", err)
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonValidationFromErr(c, err)
	}

	res, err := ctl.Status.SetStatus(c.Context(), svc.SetStatusInput{
		SeriesID: req.LessonSessionSeriesID,
		Date:     req.Date(),
		Status:   m.LessonSessionStatus(req.LessonSessionStatus),
		ActorID:  actorID,
	})
	if err != nil {
		return writeServiceError(c, err)
	}

	data := fiber.Map{
		"changed": res.Changed,
	}
	if res.Session != nil {
		data["session"] = d.SessionFromModel(res.Session)
	}
	if res.Transfer.Moved {
		data["transfer_target_date"] = res.Transfer.TargetDate.Format(d.DateLayout)
	}

	// Pembayaran lepas tanpa tujuan: sukses, tapi bawa warning.
	if res.Transfer.Warning != "" {
		return helper.JsonOKWarn(c, "Status sesi diperbarui", res.Transfer.Warning, data)
	}
	return helper.JsonUpdated(c, "Status sesi diperbarui", data)
}

/*
========================= Reschedule =========================
*/

// POST /reschedule — asal jadi rescheduled_out, target jadi rescheduled;
// payment ref ikut pindah.
func (ctl *LessonSessionController) Reschedule(c *fiber.Ctx) error {
	if !helperAuth.IsStaff(c) {
		return helper.JsonError(c, http.StatusForbidden, "Akses ditolak")
	}
	actorID, err := helperAuth.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, http.StatusUnauthorized, err.Error())
	}

	var req d.RescheduleLessonSessionRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("[LessonSession.Reschedule] BodyParser error: %v", err)
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonValidationFromErr(c, err)
	}
	if req.LessonSessionFromDate == req.LessonSessionToDate {
		return helper.JsonError(c, http.StatusUnprocessableEntity, "Tanggal asal dan tujuan sama")
	}

	res, err := ctl.Status.Reschedule(c.Context(), svc.RescheduleInput{
		SeriesID: req.LessonSessionSeriesID,
		FromDate: req.FromDate(),
		ToDate:   req.ToDate(),
		ActorID:  actorID,
	})
	if err != nil {
		return writeServiceError(c, err)
	}

	return helper.JsonUpdated(c, "Sesi dipindahkan", fiber.Map{
		"origin": d.SessionFromModel(res.Origin),
		"target": d.SessionFromModel(res.Target),
	})
}

/*
========================= Additional session =========================
*/

// POST /additional — pertemuan tambahan (make-up) di luar pola; boleh juga
// pada tanggal pola yang belum persisted.
func (ctl *LessonSessionController) CreateAdditional(c *fiber.Ctx) error {
	if !helperAuth.IsStaff(c) {
		return helper.JsonError(c, http.StatusForbidden, "Akses ditolak")
	}
	actorID, err := helperAuth.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, http.StatusUnauthorized, err.Error())
	}

	var req d.CreateAdditionalSessionRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("[LessonSession.CreateAdditional] BodyParser error: %v", err)
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonValidationFromErr(c, err)
	}

	var series seriesModel.LessonSeriesModel
	if err := ctl.DB.WithContext(c.Context()).
		Where("lesson_series_id = ?", req.LessonSessionSeriesID).
		First(&series).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, http.StatusNotFound, "Series tidak ditemukan")
		}
		return helper.WritePGError(c, err)
	}

	date := schedService.DateOnly(req.Date())
	duration := series.LessonSeriesDurationMin
	if req.LessonSessionDurationMin != nil {
		duration = *req.LessonSessionDurationMin
	}

	row := &m.LessonSessionModel{
		LessonSessionSeriesID:     series.LessonSeriesID,
		LessonSessionDate:         date,
		LessonSessionStatus:       m.SessionScheduled,
		LessonSessionDurationMin:  duration,
		LessonSessionNotes:        req.LessonSessionNotes,
		LessonSessionIsAdditional: !schedService.FromSeries(series).Contains(date),
		LessonSessionUpdatedBy:    &actorID,
	}
	if err := ctl.DB.WithContext(c.Context()).Create(row).Error; err != nil {
		// unique (series, date) → 409 via mapper
		return helper.WritePGError(c, err)
	}

	return helper.JsonCreated(c, "Pertemuan tambahan dibuat", d.SessionFromModel(row))
}

/*
========================= Update (notes & durasi) =========================
*/

func (ctl *LessonSessionController) Update(c *fiber.Ctx) error {
	if !helperAuth.IsStaff(c) {
		return helper.JsonError(c, http.StatusForbidden, "Akses ditolak")
	}
	actorID, err := helperAuth.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, http.StatusUnauthorized, err.Error())
	}

	idStr := strings.TrimSpace(c.Params("id"))
	id, err := uuid.Parse(idStr)
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "ID sesi tidak valid")
	}

	var req d.UpdateLessonSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonValidationFromErr(c, err)
	}

	var row m.LessonSessionModel
	if err := ctl.DB.WithContext(c.Context()).
		Where("lesson_session_id = ?", id).
		First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, http.StatusNotFound, "Sesi tidak ditemukan")
		}
		return helper.WritePGError(c, err)
	}

	req.ApplyTo(&row)
	if row.LessonSessionPaidMin > row.LessonSessionDurationMin {
		return helper.JsonError(c, http.StatusUnprocessableEntity,
			"Durasi baru lebih kecil dari menit terbayar sesi")
	}
	row.LessonSessionUpdatedBy = &actorID

	if err := ctl.DB.WithContext(c.Context()).Save(&row).Error; err != nil {
		return helper.WritePGError(c, err)
	}

	return helper.JsonUpdated(c, "Sesi diperbarui", d.SessionFromModel(&row))
}

/*
========================= List =========================
*/

func (ctl *LessonSessionController) GetByID(c *fiber.Ctx) error {
	idStr := strings.TrimSpace(c.Params("id"))
	id, err := uuid.Parse(idStr)
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "ID sesi tidak valid")
	}

	var row m.LessonSessionModel
	if err := ctl.DB.WithContext(c.Context()).
		Where("lesson_session_id = ?", id).
		First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, http.StatusNotFound, "Sesi tidak ditemukan")
		}
		return helper.WritePGError(c, err)
	}

	return helper.JsonOK(c, "OK", d.SessionFromModel(&row))
}

// GET /by-series/:id — hanya baris persisted (timeline lengkap ada di
// endpoint timeline).
func (ctl *LessonSessionController) ListBySeries(c *fiber.Ctx) error {
	idStr := strings.TrimSpace(c.Params("id"))
	id, err := uuid.Parse(idStr)
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "ID series tidak valid")
	}

	var rows []m.LessonSessionModel
	if err := ctl.DB.WithContext(c.Context()).
		Where("lesson_session_series_id = ?", id).
		Order("lesson_session_date ASC").
		Find(&rows).Error; err != nil {
		return helper.WritePGError(c, err)
	}

	return helper.JsonOK(c, "Daftar sesi", d.SessionsFromModels(rows))
}
