// file: internals/features/lessons/series/dto/lesson_series_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	m "bimbelku_backend/internals/features/lessons/series/model"
)

const DateLayout = "2006-01-02"

/* =============== REQUESTS =============== */

// Create
type CreateLessonSeriesRequest struct {
	LessonSeriesStudentID *uuid.UUID `json:"lesson_series_student_id" validate:"omitempty"`
	LessonSeriesGroupID   *uuid.UUID `json:"lesson_series_group_id"   validate:"omitempty"`

	// Token hari: "monday"/"mon"/"sen"/"1" dst — dinormalisasi generator
	LessonSeriesWeekdays []string `json:"lesson_series_weekdays" validate:"required,min=1,dive,min=1"`

	LessonSeriesStartTime string `json:"lesson_series_start_time" validate:"required,datetime=15:04"`
	LessonSeriesEndTime   string `json:"lesson_series_end_time"   validate:"required,datetime=15:04"`

	LessonSeriesStartDate string `json:"lesson_series_start_date" validate:"required,datetime=2006-01-02"`
	LessonSeriesEndDate   string `json:"lesson_series_end_date"   validate:"required,datetime=2006-01-02"`

	LessonSeriesDurationMin int `json:"lesson_series_duration_min" validate:"required,gt=0,lte=480"`
	LessonSeriesPriceIDR    int `json:"lesson_series_price_idr"    validate:"gte=0"`
}

func (r CreateLessonSeriesRequest) ToModel(createdBy uuid.UUID) *m.LessonSeriesModel {
	start, _ := time.Parse(DateLayout, r.LessonSeriesStartDate)
	end, _ := time.Parse(DateLayout, r.LessonSeriesEndDate)
	return &m.LessonSeriesModel{
		LessonSeriesStudentID:   r.LessonSeriesStudentID,
		LessonSeriesGroupID:     r.LessonSeriesGroupID,
		LessonSeriesWeekdays:    r.LessonSeriesWeekdays,
		LessonSeriesStartTime:   r.LessonSeriesStartTime,
		LessonSeriesEndTime:     r.LessonSeriesEndTime,
		LessonSeriesStartDate:   start,
		LessonSeriesEndDate:     end,
		LessonSeriesDurationMin: r.LessonSeriesDurationMin,
		LessonSeriesPriceIDR:    r.LessonSeriesPriceIDR,
		LessonSeriesIsActive:    true,
		LessonSeriesCreatedBy:   &createdBy,
	}
}

// Update (partial)
type UpdateLessonSeriesRequest struct {
	LessonSeriesWeekdays []string `json:"lesson_series_weekdays" validate:"omitempty,min=1,dive,min=1"`

	LessonSeriesStartTime *string `json:"lesson_series_start_time" validate:"omitempty,datetime=15:04"`
	LessonSeriesEndTime   *string `json:"lesson_series_end_time"   validate:"omitempty,datetime=15:04"`

	LessonSeriesStartDate *string `json:"lesson_series_start_date" validate:"omitempty,datetime=2006-01-02"`
	LessonSeriesEndDate   *string `json:"lesson_series_end_date"   validate:"omitempty,datetime=2006-01-02"`

	LessonSeriesDurationMin *int `json:"lesson_series_duration_min" validate:"omitempty,gt=0,lte=480"`
	LessonSeriesPriceIDR    *int `json:"lesson_series_price_idr"    validate:"omitempty,gte=0"`
}

// Terapkan perubahan ke model existing (untuk PATCH)
func (r UpdateLessonSeriesRequest) ApplyTo(mo *m.LessonSeriesModel) {
	if len(r.LessonSeriesWeekdays) > 0 {
		mo.LessonSeriesWeekdays = r.LessonSeriesWeekdays
	}
	if r.LessonSeriesStartTime != nil {
		mo.LessonSeriesStartTime = *r.LessonSeriesStartTime
	}
	if r.LessonSeriesEndTime != nil {
		mo.LessonSeriesEndTime = *r.LessonSeriesEndTime
	}
	if r.LessonSeriesStartDate != nil {
		if d, err := time.Parse(DateLayout, *r.LessonSeriesStartDate); err == nil {
			mo.LessonSeriesStartDate = d
		}
	}
	if r.LessonSeriesEndDate != nil {
		if d, err := time.Parse(DateLayout, *r.LessonSeriesEndDate); err == nil {
			mo.LessonSeriesEndDate = d
		}
	}
	if r.LessonSeriesDurationMin != nil {
		mo.LessonSeriesDurationMin = *r.LessonSeriesDurationMin
	}
	if r.LessonSeriesPriceIDR != nil {
		mo.LessonSeriesPriceIDR = *r.LessonSeriesPriceIDR
	}
}

/* =============== RESPONSES =============== */

type LessonSeriesResponse struct {
	LessonSeriesID        uuid.UUID  `json:"lesson_series_id"`
	LessonSeriesStudentID *uuid.UUID `json:"lesson_series_student_id,omitempty"`
	LessonSeriesGroupID   *uuid.UUID `json:"lesson_series_group_id,omitempty"`

	LessonSeriesWeekdays []string `json:"lesson_series_weekdays"`

	LessonSeriesStartTime string `json:"lesson_series_start_time"`
	LessonSeriesEndTime   string `json:"lesson_series_end_time"`

	LessonSeriesStartDate string `json:"lesson_series_start_date"`
	LessonSeriesEndDate   string `json:"lesson_series_end_date"`

	LessonSeriesDurationMin int  `json:"lesson_series_duration_min"`
	LessonSeriesPriceIDR    int  `json:"lesson_series_price_idr"`
	LessonSeriesIsActive    bool `json:"lesson_series_is_active"`

	LessonSeriesCreatedAt time.Time `json:"lesson_series_created_at"`
}

func FromModel(mo *m.LessonSeriesModel) LessonSeriesResponse {
	return LessonSeriesResponse{
		LessonSeriesID:          mo.LessonSeriesID,
		LessonSeriesStudentID:   mo.LessonSeriesStudentID,
		LessonSeriesGroupID:     mo.LessonSeriesGroupID,
		LessonSeriesWeekdays:    mo.LessonSeriesWeekdays,
		LessonSeriesStartTime:   mo.LessonSeriesStartTime,
		LessonSeriesEndTime:     mo.LessonSeriesEndTime,
		LessonSeriesStartDate:   mo.LessonSeriesStartDate.Format(DateLayout),
		LessonSeriesEndDate:     mo.LessonSeriesEndDate.Format(DateLayout),
		LessonSeriesDurationMin: mo.LessonSeriesDurationMin,
		LessonSeriesPriceIDR:    mo.LessonSeriesPriceIDR,
		LessonSeriesIsActive:    mo.LessonSeriesIsActive,
		LessonSeriesCreatedAt:   mo.LessonSeriesCreatedAt,
	}
}

func FromModels(rows []m.LessonSeriesModel) []LessonSeriesResponse {
	out := make([]LessonSeriesResponse, 0, len(rows))
	for i := range rows {
		out = append(out, FromModel(&rows[i]))
	}
	return out
}
