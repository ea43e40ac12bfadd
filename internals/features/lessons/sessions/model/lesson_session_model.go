// file: internals/features/lessons/sessions/model/lesson_session_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* =========================
   Enum: status sesi
========================= */

type LessonSessionStatus string

const (
	SessionScheduled      LessonSessionStatus = "scheduled"
	SessionAttended       LessonSessionStatus = "attended"
	SessionCompleted      LessonSessionStatus = "completed"
	SessionFree           LessonSessionStatus = "free"
	SessionPaidAbsence    LessonSessionStatus = "paid_absence"
	SessionPartialPayment LessonSessionStatus = "partial_payment"
	SessionMakeup         LessonSessionStatus = "makeup"
	SessionPenalty        LessonSessionStatus = "penalty"
	SessionCancelled      LessonSessionStatus = "cancelled"
	SessionRescheduled    LessonSessionStatus = "rescheduled"     // tujuan pemindahan
	SessionRescheduledOut LessonSessionStatus = "rescheduled_out" // asal pemindahan
)

func (s LessonSessionStatus) Valid() bool {
	switch s {
	case SessionScheduled, SessionAttended, SessionCompleted, SessionFree,
		SessionPaidAbsence, SessionPartialPayment, SessionMakeup, SessionPenalty,
		SessionCancelled, SessionRescheduled, SessionRescheduledOut:
		return true
	}
	return false
}

// IsTerminal: tanggal ini tidak lagi dihitung sebagai pertemuan aktif.
// Revert eksplisit ke scheduled tetap diizinkan (lihat SetStatus).
func (s LessonSessionStatus) IsTerminal() bool {
	return s == SessionCancelled || s == SessionRescheduledOut
}

// IsSpecial: status yang butuh follow-up flow tersendiri, bukan tulisan status biasa.
func (s LessonSessionStatus) IsSpecial() bool {
	return s == SessionRescheduled || s == SessionRescheduledOut
}

// ReleasesPayment: transisi ke status ini melepaskan pembayaran sesi
// (memicu forward transfer bila sesi sedang membawa payment ref).
func (s LessonSessionStatus) ReleasesPayment() bool {
	return s == SessionCancelled || s == SessionFree
}

/* =========================
   Model: LessonSessionModel
========================= */

// LessonSessionModel adalah satu pertemuan konkret dari sebuah series pada
// tanggal tertentu. Baris hanya dibuat saat pertemuan menyimpang dari default
// hasil generator (ganti status, attach pembayaran, catatan) atau saat
// pertemuan tambahan (is_additional). Selain itu pertemuan bersifat virtual.
// Invariant: maksimal satu baris per (series, date).
type LessonSessionModel struct {
	// PK
	LessonSessionID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:lesson_session_id" json:"lesson_session_id"`

	// FK ke series + tanggal (unik per series)
	LessonSessionSeriesID uuid.UUID `gorm:"type:uuid;not null;column:lesson_session_series_id;uniqueIndex:uq_lesson_sessions_series_date" json:"lesson_session_series_id"`
	LessonSessionDate     time.Time `gorm:"type:date;not null;column:lesson_session_date;uniqueIndex:uq_lesson_sessions_series_date" json:"lesson_session_date"`

	LessonSessionStatus LessonSessionStatus `gorm:"type:varchar(20);not null;default:'scheduled';column:lesson_session_status" json:"lesson_session_status"`

	// Durasi (default dari series, boleh dioverride) & menit terbayar
	// Invariant: 0 <= paid_min <= duration_min (dijaga di write boundary).
	LessonSessionDurationMin int `gorm:"not null;check:lesson_session_duration_min > 0;column:lesson_session_duration_min" json:"lesson_session_duration_min"`
	LessonSessionPaidMin     int `gorm:"not null;default:0;check:lesson_session_paid_min >= 0;column:lesson_session_paid_min" json:"lesson_session_paid_min"`

	// Referensi pembayaran (weak ref, boleh dipakai beberapa sesi untuk paket)
	LessonSessionPaymentID *uuid.UUID `gorm:"type:uuid;column:lesson_session_payment_id;index:idx_lesson_sessions_payment" json:"lesson_session_payment_id,omitempty"`

	LessonSessionNotes *string `gorm:"type:text;column:lesson_session_notes" json:"lesson_session_notes,omitempty"`

	// Pertemuan di luar pola recurrence (mis. make-up lesson)
	LessonSessionIsAdditional bool `gorm:"not null;default:false;column:lesson_session_is_additional" json:"lesson_session_is_additional"`

	// Audit: siapa yang terakhir memutasi baris ini
	LessonSessionUpdatedBy *uuid.UUID `gorm:"type:uuid;column:lesson_session_updated_by" json:"lesson_session_updated_by,omitempty"`

	// Timestamps
	LessonSessionCreatedAt time.Time      `gorm:"column:lesson_session_created_at;autoCreateTime" json:"lesson_session_created_at"`
	LessonSessionUpdatedAt *time.Time     `gorm:"column:lesson_session_updated_at;autoUpdateTime" json:"lesson_session_updated_at,omitempty"`
	LessonSessionDeletedAt gorm.DeletedAt `gorm:"column:lesson_session_deleted_at;index" json:"lesson_session_deleted_at,omitempty"`
}

func (LessonSessionModel) TableName() string { return "lesson_sessions" }

func (s *LessonSessionModel) BeforeCreate(tx *gorm.DB) error {
	if s.LessonSessionID == uuid.Nil {
		s.LessonSessionID = uuid.New()
	}
	return nil
}

// HasPayment: sesi sedang membawa referensi pembayaran.
func (s *LessonSessionModel) HasPayment() bool {
	return s.LessonSessionPaymentID != nil && *s.LessonSessionPaymentID != uuid.Nil
}
