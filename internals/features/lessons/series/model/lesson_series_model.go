// file: internals/features/lessons/series/model/lesson_series_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

/* =========================
   Model: LessonSeriesModel
========================= */

// LessonSeriesModel adalah definisi les berulang: pola hari, jam nominal,
// periode berlaku, durasi & harga nominal per pertemuan.
// Series tidak pernah dihapus selama masih ada sesi yang mereferensikannya —
// dinonaktifkan lewat is_active.
type LessonSeriesModel struct {
	// PK
	LessonSeriesID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:lesson_series_id" json:"lesson_series_id"`

	// Owner: salah satu dari student (les privat) atau group (les kelas)
	LessonSeriesStudentID *uuid.UUID `gorm:"type:uuid;column:lesson_series_student_id;index" json:"lesson_series_student_id,omitempty"`
	LessonSeriesGroupID   *uuid.UUID `gorm:"type:uuid;column:lesson_series_group_id;index" json:"lesson_series_group_id,omitempty"`

	// Pola berulang: token hari yang sudah dinormalisasi ("monday", "sen", "1", dst)
	LessonSeriesWeekdays pq.StringArray `gorm:"type:text[];not null;column:lesson_series_weekdays" json:"lesson_series_weekdays"`

	// Jam nominal "HH:MM"
	LessonSeriesStartTime string `gorm:"type:varchar(5);not null;column:lesson_series_start_time" json:"lesson_series_start_time"`
	LessonSeriesEndTime   string `gorm:"type:varchar(5);not null;column:lesson_series_end_time" json:"lesson_series_end_time"`

	// Batas berlaku (inklusif dua arah)
	LessonSeriesStartDate time.Time `gorm:"type:date;not null;column:lesson_series_start_date" json:"lesson_series_start_date"`
	LessonSeriesEndDate   time.Time `gorm:"type:date;not null;column:lesson_series_end_date" json:"lesson_series_end_date"`

	// Durasi nominal per pertemuan (menit) & harga per pertemuan
	LessonSeriesDurationMin int `gorm:"not null;default:60;check:lesson_series_duration_min > 0;column:lesson_series_duration_min" json:"lesson_series_duration_min"`
	LessonSeriesPriceIDR    int `gorm:"not null;default:0;check:lesson_series_price_idr >= 0;column:lesson_series_price_idr" json:"lesson_series_price_idr"`

	LessonSeriesIsActive bool `gorm:"not null;default:true;column:lesson_series_is_active" json:"lesson_series_is_active"`

	// Audit
	LessonSeriesCreatedBy *uuid.UUID `gorm:"type:uuid;column:lesson_series_created_by" json:"lesson_series_created_by,omitempty"`

	// Timestamps
	LessonSeriesCreatedAt time.Time      `gorm:"column:lesson_series_created_at;autoCreateTime" json:"lesson_series_created_at"`
	LessonSeriesUpdatedAt *time.Time     `gorm:"column:lesson_series_updated_at;autoUpdateTime" json:"lesson_series_updated_at,omitempty"`
	LessonSeriesDeletedAt gorm.DeletedAt `gorm:"column:lesson_series_deleted_at;index" json:"lesson_series_deleted_at,omitempty"`
}

func (LessonSeriesModel) TableName() string { return "lesson_series" }

func (s *LessonSeriesModel) BeforeCreate(tx *gorm.DB) error {
	if s.LessonSeriesID == uuid.Nil {
		s.LessonSeriesID = uuid.New()
	}
	return nil
}
