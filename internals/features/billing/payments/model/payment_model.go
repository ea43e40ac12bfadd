// file: internals/features/billing/payments/model/payment_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PaymentMethod string

const (
	PaymentMethodCash     PaymentMethod = "cash"
	PaymentMethodTransfer PaymentMethod = "transfer"
	PaymentMethodMidtrans PaymentMethod = "midtrans"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodTransfer, PaymentMethodMidtrans:
		return true
	}
	return false
}

/* =========================
   Model: PaymentModel
========================= */

// PaymentModel adalah catatan uang masuk: nominal, tanggal, berapa pertemuan
// yang dibeli, metode. Satu payment boleh direferensikan beberapa sesi (paket),
// tiap sesi maksimal satu payment. Transfer atribusi antar sesi tidak pernah
// mengubah amount/date/lessons_count di sini.
type PaymentModel struct {
	// PK
	PaymentID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:payment_id" json:"payment_id"`

	// Pemilik tagihan (siswa les privat atau grup)
	PaymentStudentID *uuid.UUID `gorm:"type:uuid;column:payment_student_id;index" json:"payment_student_id,omitempty"`
	PaymentGroupID   *uuid.UUID `gorm:"type:uuid;column:payment_group_id;index" json:"payment_group_id,omitempty"`

	PaymentAmountIDR    int           `gorm:"not null;check:payment_amount_idr >= 0;column:payment_amount_idr" json:"payment_amount_idr"`
	PaymentDate         time.Time     `gorm:"type:date;not null;column:payment_date" json:"payment_date"`
	PaymentLessonsCount int           `gorm:"not null;default:1;check:payment_lessons_count > 0;column:payment_lessons_count" json:"payment_lessons_count"`
	PaymentMethod       PaymentMethod `gorm:"type:varchar(20);not null;default:'cash';column:payment_method" json:"payment_method"`

	// Midtrans (hanya terisi untuk method=midtrans)
	PaymentOrderID       *string `gorm:"type:varchar(64);uniqueIndex:uq_payments_order_id;column:payment_order_id" json:"payment_order_id,omitempty"`
	PaymentGatewayStatus *string `gorm:"type:varchar(20);column:payment_gateway_status" json:"payment_gateway_status,omitempty"`

	PaymentNote *string `gorm:"type:text;column:payment_note" json:"payment_note,omitempty"`

	// Audit
	PaymentCreatedBy *uuid.UUID `gorm:"type:uuid;column:payment_created_by" json:"payment_created_by,omitempty"`

	// Timestamps
	PaymentCreatedAt time.Time      `gorm:"column:payment_created_at;autoCreateTime" json:"payment_created_at"`
	PaymentUpdatedAt *time.Time     `gorm:"column:payment_updated_at;autoUpdateTime" json:"payment_updated_at,omitempty"`
	PaymentDeletedAt gorm.DeletedAt `gorm:"column:payment_deleted_at;index" json:"payment_deleted_at,omitempty"`
}

func (PaymentModel) TableName() string { return "payments" }

func (p *PaymentModel) BeforeCreate(tx *gorm.DB) error {
	if p.PaymentID == uuid.Nil {
		p.PaymentID = uuid.New()
	}
	return nil
}

// QuotaMinutes: total menit yang dibeli payment ini untuk durasi nominal tertentu.
func (p *PaymentModel) QuotaMinutes(nominalDurationMin int) int {
	return p.PaymentLessonsCount * nominalDurationMin
}
