// file: internals/features/lessons/schedule/controller/lesson_schedule_controller.go
package controller

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	helper "bimbelku_backend/internals/helpers"

	svc "bimbelku_backend/internals/features/lessons/schedule/service"
	seriesModel "bimbelku_backend/internals/features/lessons/series/model"
	sessModel "bimbelku_backend/internals/features/lessons/sessions/model"
)

const dateLayout = "2006-01-02"

/* =========================
   Controller & Constructor
   ========================= */

type LessonScheduleController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func New(db *gorm.DB, v *validator.Validate) *LessonScheduleController {
	return &LessonScheduleController{DB: db, Validate: v}
}

func (ctl *LessonScheduleController) loadSeries(c *fiber.Ctx) (*seriesModel.LessonSeriesModel, error) {
	idStr := strings.TrimSpace(c.Params("id"))
	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil, fiber.NewError(http.StatusBadRequest, "ID series tidak valid")
	}

	var series seriesModel.LessonSeriesModel
	if err := ctl.DB.WithContext(c.Context()).
		Where("lesson_series_id = ?", id).
		First(&series).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(http.StatusNotFound, "Series tidak ditemukan")
		}
		return nil, err
	}
	return &series, nil
}

func writeLoadErr(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return helper.JsonError(c, fe.Code, fe.Message)
	}
	return helper.WritePGError(c, err)
}

/*
========================= Occurrences =========================
*/

// GET /:id/occurrences?from=YYYY-MM-DD&to=YYYY-MM-DD
// Daftar tanggal dari pola recurrence murni (tanpa ledger sesi).
func (ctl *LessonScheduleController) Occurrences(c *fiber.Ctx) error {
	series, err := ctl.loadSeries(c)
	if err != nil {
		return writeLoadErr(c, err)
	}

	rec := svc.FromSeries(*series)
	if rec.Empty() {
		// Konfigurasi belum lengkap bukan error — timeline saja kosong.
		return helper.JsonOK(c, "Jadwal belum diatur", fiber.Map{
			"lesson_series_id": series.LessonSeriesID,
			"dates":            []string{},
		})
	}

	// Clamp opsional via query.
	var from, to time.Time
	if s := c.Query("from"); s != "" {
		if from, err = helper.ParseDateParam(s); err != nil {
			return helper.JsonError(c, http.StatusBadRequest, "query from tidak valid (YYYY-MM-DD)")
		}
	}
	if s := c.Query("to"); s != "" {
		if to, err = helper.ParseDateParam(s); err != nil {
			return helper.JsonError(c, http.StatusBadRequest, "query to tidak valid (YYYY-MM-DD)")
		}
	}

	dates := make([]string, 0, 32)
	for d := range rec.Iter() {
		if !from.IsZero() && d.Before(from) {
			continue
		}
		if !to.IsZero() && d.After(to) {
			break
		}
		dates = append(dates, d.Format(dateLayout))
	}

	return helper.JsonOK(c, "OK", fiber.Map{
		"lesson_series_id": series.LessonSeriesID,
		"dates":            dates,
	})
}

/*
========================= Timeline =========================
*/

// GET /:id/timeline
// Gabungan occurrence virtual + baris sesi persisted; baris persisted menang.
func (ctl *LessonScheduleController) Timeline(c *fiber.Ctx) error {
	series, err := ctl.loadSeries(c)
	if err != nil {
		return writeLoadErr(c, err)
	}

	var sessions []sessModel.LessonSessionModel
	if err := ctl.DB.WithContext(c.Context()).
		Where("lesson_session_series_id = ?", series.LessonSeriesID).
		Order("lesson_session_date ASC").
		Find(&sessions).Error; err != nil {
		return helper.WritePGError(c, err)
	}

	entries := svc.BuildTimeline(*series, sessions)

	msg := "OK"
	if svc.FromSeries(*series).Empty() && len(entries) == 0 {
		msg = "Jadwal belum diatur"
	}

	return helper.JsonOK(c, msg, fiber.Map{
		"lesson_series_id": series.LessonSeriesID,
		"entries":          entries,
	})
}
