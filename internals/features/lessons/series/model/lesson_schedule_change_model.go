// file: internals/features/lessons/series/model/lesson_schedule_change_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

/* =========================
   Enum: field yang bisa berubah mid-series
========================= */

type LessonScheduleChangeField string

const (
	ChangeFieldTime    LessonScheduleChangeField = "time"
	ChangeFieldTeacher LessonScheduleChangeField = "teacher"
	ChangeFieldRoom    LessonScheduleChangeField = "room"
)

func (f LessonScheduleChangeField) Valid() bool {
	switch f {
	case ChangeFieldTime, ChangeFieldTeacher, ChangeFieldRoom:
		return true
	}
	return false
}

/* =========================
   Model: LessonScheduleChangeModel
========================= */

// LessonScheduleChangeModel adalah audit entry immutable atas satu perubahan
// atribut series (jam/guru/ruang): nilai lama, nilai baru, siapa yang mengubah,
// dan rentang applied_from..applied_to di mana nilai baru berlaku.
// applied_to NULL = berlaku selamanya. Hanya create + read; tidak pernah diupdate.
type LessonScheduleChangeModel struct {
	// PK
	LessonScheduleChangeID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:lesson_schedule_change_id" json:"lesson_schedule_change_id"`

	// FK ke series
	LessonScheduleChangeSeriesID uuid.UUID `gorm:"type:uuid;not null;column:lesson_schedule_change_series_id;index:idx_lesson_schedule_changes_series" json:"lesson_schedule_change_series_id"`

	LessonScheduleChangeField LessonScheduleChangeField `gorm:"type:varchar(20);not null;column:lesson_schedule_change_field" json:"lesson_schedule_change_field"`

	// Nilai lama/baru disimpan sebagai JSON supaya satu tabel melayani semua field
	// (time window, teacher id, room id).
	LessonScheduleChangeOldValue datatypes.JSON `gorm:"column:lesson_schedule_change_old_value" json:"lesson_schedule_change_old_value"`
	LessonScheduleChangeNewValue datatypes.JSON `gorm:"not null;column:lesson_schedule_change_new_value" json:"lesson_schedule_change_new_value"`

	// Rentang berlaku nilai baru (inklusif); applied_to NULL = selamanya
	LessonScheduleChangeAppliedFrom time.Time  `gorm:"type:date;not null;column:lesson_schedule_change_applied_from" json:"lesson_schedule_change_applied_from"`
	LessonScheduleChangeAppliedTo   *time.Time `gorm:"type:date;column:lesson_schedule_change_applied_to" json:"lesson_schedule_change_applied_to,omitempty"`

	// Audit
	LessonScheduleChangeUserID uuid.UUID `gorm:"type:uuid;not null;column:lesson_schedule_change_user_id" json:"lesson_schedule_change_user_id"`

	LessonScheduleChangeCreatedAt time.Time `gorm:"column:lesson_schedule_change_created_at;autoCreateTime" json:"lesson_schedule_change_created_at"`
}

func (LessonScheduleChangeModel) TableName() string { return "lesson_schedule_changes" }

func (r *LessonScheduleChangeModel) BeforeCreate(tx *gorm.DB) error {
	if r.LessonScheduleChangeID == uuid.Nil {
		r.LessonScheduleChangeID = uuid.New()
	}
	return nil
}
