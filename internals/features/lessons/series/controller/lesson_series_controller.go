// file: internals/features/lessons/series/controller/lesson_series_controller.go
package controller

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	helper "bimbelku_backend/internals/helpers"
	helperAuth "bimbelku_backend/internals/helpers/auth"

	d "bimbelku_backend/internals/features/lessons/series/dto"
	m "bimbelku_backend/internals/features/lessons/series/model"
	svc "bimbelku_backend/internals/features/lessons/series/service"

	schedService "bimbelku_backend/internals/features/lessons/schedule/service"
)

/* =========================
   Controller & Constructor
   ========================= */

type LessonSeriesController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func New(db *gorm.DB, v *validator.Validate) *LessonSeriesController {
	return &LessonSeriesController{DB: db, Validate: v}
}

/* =========================
   Helpers
   ========================= */

func parseUUIDParam(c *fiber.Ctx, name string) (uuid.UUID, error) {
	idStr := strings.TrimSpace(c.Params(name))
	if idStr == "" {
		return uuid.Nil, fmt.Errorf("%s is required", name)
	}
	return uuid.Parse(idStr)
}

// Pastikan token hari valid & jam mulai < jam selesai sebelum nyentuh DB.
func validateScheduleFields(weekdays []string, startTime, endTime string) error {
	for _, tok := range weekdays {
		if _, ok := schedService.ParseDayToken(tok); !ok {
			return fmt.Errorf("token hari tidak dikenal: %q", tok)
		}
	}
	if startTime != "" && endTime != "" && startTime >= endTime {
		return fmt.Errorf("jam mulai harus sebelum jam selesai")
	}
	return nil
}

/*
========================= Create =========================
*/

func (ctl *LessonSeriesController) Create(c *fiber.Ctx) error {
	// --- guard
	if !helperAuth.IsStaff(c) {
		return helper.JsonError(c, http.StatusForbidden, "Akses ditolak")
	}
	actorID, err := helperAuth.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, http.StatusUnauthorized, err.Error())
	}

	// --- body
	var req d.CreateLessonSeriesRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("[LessonSeries.Create] BodyParser error: %v", err)
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonValidationFromErr(c, err)
	}
	if err := validateScheduleFields(req.LessonSeriesWeekdays, req.LessonSeriesStartTime, req.LessonSeriesEndTime); err != nil {
		return helper.JsonError(c, http.StatusUnprocessableEntity, err.Error())
	}
	if req.LessonSeriesStartDate > req.LessonSeriesEndDate {
		return helper.JsonError(c, http.StatusUnprocessableEntity, "tanggal mulai harus ≤ tanggal selesai")
	}

	row := req.ToModel(actorID)
	if err := ctl.DB.WithContext(c.Context()).Create(row).Error; err != nil {
		return helper.WritePGError(c, err)
	}

	return helper.JsonCreated(c, "Series berhasil dibuat", d.FromModel(row))
}

/*
========================= List & Detail =========================
*/

func (ctl *LessonSeriesController) List(c *fiber.Ctx) error {
	pg := helper.ResolvePaging(c, 20, 100)

	q := ctl.DB.WithContext(c.Context()).Model(&m.LessonSeriesModel{})

	if sid := strings.TrimSpace(c.Query("student_id")); sid != "" {
		id, err := uuid.Parse(sid)
		if err != nil {
			return helper.JsonError(c, http.StatusBadRequest, "student_id tidak valid")
		}
		q = q.Where("lesson_series_student_id = ?", id)
	}
	if gid := strings.TrimSpace(c.Query("group_id")); gid != "" {
		id, err := uuid.Parse(gid)
		if err != nil {
			return helper.JsonError(c, http.StatusBadRequest, "group_id tidak valid")
		}
		q = q.Where("lesson_series_group_id = ?", id)
	}
	if act := strings.TrimSpace(c.Query("active")); act != "" {
		q = q.Where("lesson_series_is_active = ?", act == "true" || act == "1")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.WritePGError(c, err)
	}

	var rows []m.LessonSeriesModel
	if err := q.Order("lesson_series_created_at DESC").
		Limit(pg.Limit).Offset(pg.Offset).
		Find(&rows).Error; err != nil {
		return helper.WritePGError(c, err)
	}

	return helper.JsonList(c, "Daftar series", d.FromModels(rows),
		helper.BuildPaginationFromPage(total, pg.Page, pg.PerPage))
}

func (ctl *LessonSeriesController) GetByID(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "ID series tidak valid")
	}

	var row m.LessonSeriesModel
	if err := ctl.DB.WithContext(c.Context()).
		Where("lesson_series_id = ?", id).
		First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, http.StatusNotFound, "Series tidak ditemukan")
		}
		return helper.WritePGError(c, err)
	}

	return helper.JsonOK(c, "OK", d.FromModel(&row))
}

/*
========================= Update (partial) =========================
*/

func (ctl *LessonSeriesController) Update(c *fiber.Ctx) error {
	if !helperAuth.IsStaff(c) {
		return helper.JsonError(c, http.StatusForbidden, "Akses ditolak")
	}

	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "ID series tidak valid")
	}

	var req d.UpdateLessonSeriesRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("[LessonSeries.Update] BodyParser error: %v", err)
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonValidationFromErr(c, err)
	}

	start, end := "", ""
	if req.LessonSeriesStartTime != nil {
		start = *req.LessonSeriesStartTime
	}
	if req.LessonSeriesEndTime != nil {
		end = *req.LessonSeriesEndTime
	}
	if err := validateScheduleFields(req.LessonSeriesWeekdays, start, end); err != nil {
		return helper.JsonError(c, http.StatusUnprocessableEntity, err.Error())
	}

	var row m.LessonSeriesModel
	if err := ctl.DB.WithContext(c.Context()).
		Where("lesson_series_id = ?", id).
		First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, http.StatusNotFound, "Series tidak ditemukan")
		}
		return helper.WritePGError(c, err)
	}

	req.ApplyTo(&row)
	if row.LessonSeriesStartDate.After(row.LessonSeriesEndDate) {
		return helper.JsonError(c, http.StatusUnprocessableEntity, "tanggal mulai harus ≤ tanggal selesai")
	}

	if err := ctl.DB.WithContext(c.Context()).Save(&row).Error; err != nil {
		return helper.WritePGError(c, err)
	}

	return helper.JsonUpdated(c, "Series berhasil diperbarui", d.FromModel(&row))
}

/*
========================= Deactivate & Delete =========================
*/

// Deactivate: series berhenti menghasilkan occurrence virtual; baris sesi
// yang sudah persisted tetap apa adanya.
func (ctl *LessonSeriesController) Deactivate(c *fiber.Ctx) error {
	if !helperAuth.IsStaff(c) {
		return helper.JsonError(c, http.StatusForbidden, "Akses ditolak")
	}

	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "ID series tidak valid")
	}

	res := ctl.DB.WithContext(c.Context()).
		Model(&m.LessonSeriesModel{}).
		Where("lesson_series_id = ?", id).
		Update("lesson_series_is_active", false)
	if res.Error != nil {
		return helper.WritePGError(c, res.Error)
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, http.StatusNotFound, "Series tidak ditemukan")
	}

	return helper.JsonUpdated(c, "Series dinonaktifkan", fiber.Map{"lesson_series_id": id})
}

func (ctl *LessonSeriesController) Delete(c *fiber.Ctx) error {
	if !(helperAuth.IsAdmin(c) || helperAuth.IsOwner(c)) {
		return helper.JsonError(c, http.StatusForbidden, "Akses ditolak")
	}

	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "ID series tidak valid")
	}

	res := ctl.DB.WithContext(c.Context()).
		Where("lesson_series_id = ?", id).
		Delete(&m.LessonSeriesModel{})
	if res.Error != nil {
		return helper.WritePGError(c, res.Error)
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, http.StatusNotFound, "Series tidak ditemukan")
	}

	return helper.JsonDeleted(c, "Series dihapus", fiber.Map{"lesson_series_id": id})
}

/*
========================= Effective time =========================
*/

// GET /:id/effective-time?date=YYYY-MM-DD
// Jam efektif pada satu tanggal setelah semua change record diterapkan.
func (ctl *LessonSeriesController) EffectiveTime(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "ID series tidak valid")
	}

	date, err := helper.ParseDateParam(c.Query("date"))
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "query date wajib (YYYY-MM-DD)")
	}

	var series m.LessonSeriesModel
	if err := ctl.DB.WithContext(c.Context()).
		Where("lesson_series_id = ?", id).
		First(&series).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, http.StatusNotFound, "Series tidak ditemukan")
		}
		return helper.WritePGError(c, err)
	}

	var records []m.LessonScheduleChangeModel
	if err := ctl.DB.WithContext(c.Context()).
		Where("lesson_schedule_change_series_id = ? AND lesson_schedule_change_field = ?",
			id, m.ChangeFieldTime).
		Order("lesson_schedule_change_applied_from ASC").
		Find(&records).Error; err != nil {
		return helper.WritePGError(c, err)
	}

	win := svc.ResolveEffectiveTime(series, records, date)

	return helper.JsonOK(c, "OK", fiber.Map{
		"lesson_series_id": id,
		"date":             date.Format(d.DateLayout),
		"start_time":       win.Start,
		"end_time":         win.End,
	})
}
