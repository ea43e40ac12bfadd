// file: internals/features/billing/payments/dto/payment_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	m "bimbelku_backend/internals/features/billing/payments/model"
)

const DateLayout = "2006-01-02"

/* =============== REQUESTS =============== */

// Create
type CreatePaymentRequest struct {
	PaymentStudentID *uuid.UUID `json:"payment_student_id" validate:"omitempty"`
	PaymentGroupID   *uuid.UUID `json:"payment_group_id"   validate:"omitempty"`

	PaymentAmountIDR    int    `json:"payment_amount_idr"    validate:"required,gte=0"`
	PaymentDate         string `json:"payment_date"          validate:"required,datetime=2006-01-02"`
	PaymentLessonsCount int    `json:"payment_lessons_count" validate:"required,gt=0"`
	PaymentMethod       string `json:"payment_method"        validate:"required,oneof=cash transfer midtrans"`

	PaymentNote *string `json:"payment_note" validate:"omitempty,max=2000"`
}

func (r CreatePaymentRequest) ToModel(createdBy uuid.UUID) *m.PaymentModel {
	date, _ := time.Parse(DateLayout, r.PaymentDate)
	return &m.PaymentModel{
		PaymentStudentID:    r.PaymentStudentID,
		PaymentGroupID:      r.PaymentGroupID,
		PaymentAmountIDR:    r.PaymentAmountIDR,
		PaymentDate:         date,
		PaymentLessonsCount: r.PaymentLessonsCount,
		PaymentMethod:       m.PaymentMethod(r.PaymentMethod),
		PaymentNote:         r.PaymentNote,
		PaymentCreatedBy:    &createdBy,
	}
}

// Attach payment ref ke sesi (ledger keyed by series+date)
type AttachPaymentRequest struct {
	PaymentID             uuid.UUID `json:"payment_id"               validate:"required"`
	LessonSessionSeriesID uuid.UUID `json:"lesson_session_series_id" validate:"required"`
	LessonSessionDate     string    `json:"lesson_session_date"      validate:"required,datetime=2006-01-02"`

	// 0 = pakai durasi sesi (dibatasi kuota payment)
	LessonSessionPaidMin int `json:"lesson_session_paid_min" validate:"gte=0,lte=480"`
}

func (r AttachPaymentRequest) Date() time.Time {
	d, _ := time.Parse(DateLayout, r.LessonSessionDate)
	return d
}

type DetachPaymentRequest struct {
	LessonSessionSeriesID uuid.UUID `json:"lesson_session_series_id" validate:"required"`
	LessonSessionDate     string    `json:"lesson_session_date"      validate:"required,datetime=2006-01-02"`
}

func (r DetachPaymentRequest) Date() time.Time {
	d, _ := time.Parse(DateLayout, r.LessonSessionDate)
	return d
}

// Checkout Midtrans
type CheckoutPaymentRequest struct {
	PaymentID     uuid.UUID `json:"payment_id"     validate:"required"`
	CustomerName  string    `json:"customer_name"  validate:"required,min=2"`
	CustomerEmail string    `json:"customer_email" validate:"required,email"`
}

/* =============== RESPONSES =============== */

type PaymentResponse struct {
	PaymentID        uuid.UUID  `json:"payment_id"`
	PaymentStudentID *uuid.UUID `json:"payment_student_id,omitempty"`
	PaymentGroupID   *uuid.UUID `json:"payment_group_id,omitempty"`

	PaymentAmountIDR    int    `json:"payment_amount_idr"`
	PaymentDate         string `json:"payment_date"`
	PaymentLessonsCount int    `json:"payment_lessons_count"`
	PaymentMethod       string `json:"payment_method"`

	PaymentOrderID       *string `json:"payment_order_id,omitempty"`
	PaymentGatewayStatus *string `json:"payment_gateway_status,omitempty"`
	PaymentNote          *string `json:"payment_note,omitempty"`

	PaymentCreatedAt time.Time `json:"payment_created_at"`
}

func FromModel(mo *m.PaymentModel) PaymentResponse {
	return PaymentResponse{
		PaymentID:            mo.PaymentID,
		PaymentStudentID:     mo.PaymentStudentID,
		PaymentGroupID:       mo.PaymentGroupID,
		PaymentAmountIDR:     mo.PaymentAmountIDR,
		PaymentDate:          mo.PaymentDate.Format(DateLayout),
		PaymentLessonsCount:  mo.PaymentLessonsCount,
		PaymentMethod:        string(mo.PaymentMethod),
		PaymentOrderID:       mo.PaymentOrderID,
		PaymentGatewayStatus: mo.PaymentGatewayStatus,
		PaymentNote:          mo.PaymentNote,
		PaymentCreatedAt:     mo.PaymentCreatedAt,
	}
}

func FromModels(rows []m.PaymentModel) []PaymentResponse {
	out := make([]PaymentResponse, 0, len(rows))
	for i := range rows {
		out = append(out, FromModel(&rows[i]))
	}
	return out
}
