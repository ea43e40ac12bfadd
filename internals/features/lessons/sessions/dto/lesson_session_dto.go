// file: internals/features/lessons/sessions/dto/lesson_session_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	m "bimbelku_backend/internals/features/lessons/sessions/model"
)

const DateLayout = "2006-01-02"

/* =============== REQUESTS =============== */

// SetStatus — operasi inti state machine; bisa berefek ke baris sesi LAIN
// (target transfer pembayaran), lihat response.
type SetLessonSessionStatusRequest struct {
	LessonSessionSeriesID uuid.UUID `json:"lesson_session_series_id" validate:"required"`
	LessonSessionDate     string    `json:"lesson_session_date"      validate:"required,datetime=2006-01-02"`

	LessonSessionStatus string `json:"lesson_session_status" validate:"required,oneof=scheduled attended completed free paid_absence partial_payment makeup penalty cancelled"`
}

func (r SetLessonSessionStatusRequest) Date() time.Time {
	d, _ := time.Parse(DateLayout, r.LessonSessionDate)
	return d
}

// Reschedule — follow-up flow khusus, bukan set-status biasa.
type RescheduleLessonSessionRequest struct {
	LessonSessionSeriesID uuid.UUID `json:"lesson_session_series_id" validate:"required"`
	LessonSessionFromDate string    `json:"lesson_session_from_date" validate:"required,datetime=2006-01-02"`
	LessonSessionToDate   string    `json:"lesson_session_to_date"   validate:"required,datetime=2006-01-02"`
}

func (r RescheduleLessonSessionRequest) FromDate() time.Time {
	d, _ := time.Parse(DateLayout, r.LessonSessionFromDate)
	return d
}

func (r RescheduleLessonSessionRequest) ToDate() time.Time {
	d, _ := time.Parse(DateLayout, r.LessonSessionToDate)
	return d
}

// Pertemuan tambahan di luar pola (make-up lesson).
type CreateAdditionalSessionRequest struct {
	LessonSessionSeriesID uuid.UUID `json:"lesson_session_series_id" validate:"required"`
	LessonSessionDate     string    `json:"lesson_session_date"      validate:"required,datetime=2006-01-02"`

	LessonSessionDurationMin *int    `json:"lesson_session_duration_min" validate:"omitempty,gt=0,lte=480"`
	LessonSessionNotes       *string `json:"lesson_session_notes"        validate:"omitempty,max=2000"`
}

func (r CreateAdditionalSessionRequest) Date() time.Time {
	d, _ := time.Parse(DateLayout, r.LessonSessionDate)
	return d
}

// Update (partial) — catatan & override durasi.
type UpdateLessonSessionRequest struct {
	LessonSessionDurationMin *int    `json:"lesson_session_duration_min" validate:"omitempty,gt=0,lte=480"`
	LessonSessionNotes       *string `json:"lesson_session_notes"        validate:"omitempty,max=2000"`
}

func (r UpdateLessonSessionRequest) ApplyTo(mo *m.LessonSessionModel) {
	if r.LessonSessionDurationMin != nil {
		mo.LessonSessionDurationMin = *r.LessonSessionDurationMin
	}
	if r.LessonSessionNotes != nil {
		mo.LessonSessionNotes = r.LessonSessionNotes
	}
}

/* =============== RESPONSES =============== */

type LessonSessionResponse struct {
	LessonSessionID       uuid.UUID `json:"lesson_session_id"`
	LessonSessionSeriesID uuid.UUID `json:"lesson_session_series_id"`
	LessonSessionDate     string    `json:"lesson_session_date"`

	LessonSessionStatus      m.LessonSessionStatus `json:"lesson_session_status"`
	LessonSessionDurationMin int                   `json:"lesson_session_duration_min"`
	LessonSessionPaidMin     int                   `json:"lesson_session_paid_min"`

	LessonSessionPaymentID *uuid.UUID `json:"lesson_session_payment_id,omitempty"`
	LessonSessionNotes     *string    `json:"lesson_session_notes,omitempty"`

	LessonSessionIsAdditional bool `json:"lesson_session_is_additional"`
}

func SessionFromModel(mo *m.LessonSessionModel) LessonSessionResponse {
	return LessonSessionResponse{
		LessonSessionID:           mo.LessonSessionID,
		LessonSessionSeriesID:     mo.LessonSessionSeriesID,
		LessonSessionDate:         mo.LessonSessionDate.Format(DateLayout),
		LessonSessionStatus:       mo.LessonSessionStatus,
		LessonSessionDurationMin:  mo.LessonSessionDurationMin,
		LessonSessionPaidMin:      mo.LessonSessionPaidMin,
		LessonSessionPaymentID:    mo.LessonSessionPaymentID,
		LessonSessionNotes:        mo.LessonSessionNotes,
		LessonSessionIsAdditional: mo.LessonSessionIsAdditional,
	}
}

func SessionsFromModels(rows []m.LessonSessionModel) []LessonSessionResponse {
	out := make([]LessonSessionResponse, 0, len(rows))
	for i := range rows {
		out = append(out, SessionFromModel(&rows[i]))
	}
	return out
}
