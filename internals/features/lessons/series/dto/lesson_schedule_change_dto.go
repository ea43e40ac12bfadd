// file: internals/features/lessons/series/dto/lesson_schedule_change_dto.go
package dto

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	m "bimbelku_backend/internals/features/lessons/series/model"
)

/* =============== REQUESTS =============== */

// Create — record audit immutable; tidak ada update/delete.
type CreateScheduleChangeRequest struct {
	LessonScheduleChangeField string `json:"lesson_schedule_change_field" validate:"required,oneof=time teacher room"`

	LessonScheduleChangeOldValue json.RawMessage `json:"lesson_schedule_change_old_value" validate:"omitempty"`
	LessonScheduleChangeNewValue json.RawMessage `json:"lesson_schedule_change_new_value" validate:"required"`

	LessonScheduleChangeAppliedFrom string  `json:"lesson_schedule_change_applied_from" validate:"required,datetime=2006-01-02"`
	LessonScheduleChangeAppliedTo   *string `json:"lesson_schedule_change_applied_to"   validate:"omitempty,datetime=2006-01-02"`
}

func (r CreateScheduleChangeRequest) ToModel(seriesID, userID uuid.UUID) *m.LessonScheduleChangeModel {
	from, _ := time.Parse(DateLayout, r.LessonScheduleChangeAppliedFrom)

	var to *time.Time
	if r.LessonScheduleChangeAppliedTo != nil {
		if d, err := time.Parse(DateLayout, *r.LessonScheduleChangeAppliedTo); err == nil {
			to = &d
		}
	}

	return &m.LessonScheduleChangeModel{
		LessonScheduleChangeSeriesID:    seriesID,
		LessonScheduleChangeField:       m.LessonScheduleChangeField(r.LessonScheduleChangeField),
		LessonScheduleChangeOldValue:    datatypes.JSON(r.LessonScheduleChangeOldValue),
		LessonScheduleChangeNewValue:    datatypes.JSON(r.LessonScheduleChangeNewValue),
		LessonScheduleChangeAppliedFrom: from,
		LessonScheduleChangeAppliedTo:   to,
		LessonScheduleChangeUserID:      userID,
	}
}

/* =============== RESPONSES =============== */

type ScheduleChangeResponse struct {
	LessonScheduleChangeID       uuid.UUID       `json:"lesson_schedule_change_id"`
	LessonScheduleChangeSeriesID uuid.UUID       `json:"lesson_schedule_change_series_id"`
	LessonScheduleChangeField    string          `json:"lesson_schedule_change_field"`
	LessonScheduleChangeOldValue json.RawMessage `json:"lesson_schedule_change_old_value,omitempty"`
	LessonScheduleChangeNewValue json.RawMessage `json:"lesson_schedule_change_new_value"`

	LessonScheduleChangeAppliedFrom string  `json:"lesson_schedule_change_applied_from"`
	LessonScheduleChangeAppliedTo   *string `json:"lesson_schedule_change_applied_to,omitempty"`

	LessonScheduleChangeUserID    uuid.UUID `json:"lesson_schedule_change_user_id"`
	LessonScheduleChangeCreatedAt time.Time `json:"lesson_schedule_change_created_at"`
}

func ChangeFromModel(mo *m.LessonScheduleChangeModel) ScheduleChangeResponse {
	var to *string
	if mo.LessonScheduleChangeAppliedTo != nil {
		s := mo.LessonScheduleChangeAppliedTo.Format(DateLayout)
		to = &s
	}
	return ScheduleChangeResponse{
		LessonScheduleChangeID:          mo.LessonScheduleChangeID,
		LessonScheduleChangeSeriesID:    mo.LessonScheduleChangeSeriesID,
		LessonScheduleChangeField:       string(mo.LessonScheduleChangeField),
		LessonScheduleChangeOldValue:    json.RawMessage(mo.LessonScheduleChangeOldValue),
		LessonScheduleChangeNewValue:    json.RawMessage(mo.LessonScheduleChangeNewValue),
		LessonScheduleChangeAppliedFrom: mo.LessonScheduleChangeAppliedFrom.Format(DateLayout),
		LessonScheduleChangeAppliedTo:   to,
		LessonScheduleChangeUserID:      mo.LessonScheduleChangeUserID,
		LessonScheduleChangeCreatedAt:   mo.LessonScheduleChangeCreatedAt,
	}
}

func ChangesFromModels(rows []m.LessonScheduleChangeModel) []ScheduleChangeResponse {
	out := make([]ScheduleChangeResponse, 0, len(rows))
	for i := range rows {
		out = append(out, ChangeFromModel(&rows[i]))
	}
	return out
}
