// file: internals/features/lessons/series/controller/lesson_schedule_change_controller.go
package controller

import (
	"errors"
	"log"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	helper "bimbelku_backend/internals/helpers"
	helperAuth "bimbelku_backend/internals/helpers/auth"

	d "bimbelku_backend/internals/features/lessons/series/dto"
	m "bimbelku_backend/internals/features/lessons/series/model"
)

/*
========================= Schedule changes (audit) =========================
Record perubahan jadwal bersifat append-only: create & list saja.
*/

// POST /:id/schedule-changes
func (ctl *LessonSeriesController) CreateScheduleChange(c *fiber.Ctx) error {
	if !helperAuth.IsStaff(c) {
		return helper.JsonError(c, http.StatusForbidden, "Akses ditolak")
	}
	actorID, err := helperAuth.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, http.StatusUnauthorized, err.Error())
	}

	seriesID, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "ID series tidak valid")
	}

	var req d.CreateScheduleChangeRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("[ScheduleChange.Create] BodyParser error: %v", err)
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonValidationFromErr(c, err)
	}
	if req.LessonScheduleChangeAppliedTo != nil &&
		req.LessonScheduleChangeAppliedFrom > *req.LessonScheduleChangeAppliedTo {
		return helper.JsonError(c, http.StatusUnprocessableEntity, "applied_from harus ≤ applied_to")
	}

	// Series harus ada dulu.
	var exists int64
	if err := ctl.DB.WithContext(c.Context()).
		Model(&m.LessonSeriesModel{}).
		Where("lesson_series_id = ?", seriesID).
		Count(&exists).Error; err != nil {
		return helper.WritePGError(c, err)
	}
	if exists == 0 {
		return helper.JsonError(c, http.StatusNotFound, "Series tidak ditemukan")
	}

	row := req.ToModel(seriesID, actorID)
	if err := ctl.DB.WithContext(c.Context()).Create(row).Error; err != nil {
		return helper.WritePGError(c, err)
	}

	return helper.JsonCreated(c, "Perubahan jadwal tercatat", d.ChangeFromModel(row))
}

// GET /:id/schedule-changes?field=time
func (ctl *LessonSeriesController) ListScheduleChanges(c *fiber.Ctx) error {
	seriesID, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "ID series tidak valid")
	}

	q := ctl.DB.WithContext(c.Context()).
		Where("lesson_schedule_change_series_id = ?", seriesID)

	if f := c.Query("field"); f != "" {
		if !m.LessonScheduleChangeField(f).Valid() {
			return helper.JsonError(c, http.StatusBadRequest, "field tidak dikenal")
		}
		q = q.Where("lesson_schedule_change_field = ?", f)
	}

	var rows []m.LessonScheduleChangeModel
	if err := q.Order("lesson_schedule_change_applied_from ASC").
		Find(&rows).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			rows = nil
		} else {
			return helper.WritePGError(c, err)
		}
	}

	return helper.JsonOK(c, "Riwayat perubahan jadwal", d.ChangesFromModels(rows))
}
