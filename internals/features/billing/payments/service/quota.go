// file: internals/features/billing/payments/service/quota.go
package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	paymentModel "bimbelku_backend/internals/features/billing/payments/model"
	schedService "bimbelku_backend/internals/features/lessons/schedule/service"
	seriesModel "bimbelku_backend/internals/features/lessons/series/model"
	sessModel "bimbelku_backend/internals/features/lessons/sessions/model"
	sessService "bimbelku_backend/internals/features/lessons/sessions/service"
)

var (
	ErrPaymentNotFound = errors.New("payment tidak ditemukan")
	ErrQuotaExceeded   = errors.New("kuota menit payment terlampaui")
	ErrPaidMinInvalid  = errors.New("paid_min harus 0..durasi sesi")
)

// UsedMinutes menjumlahkan menit terbayar semua sesi yang mereferensikan
// payment yang sama (paket), di luar sesi yang dikecualikan.
func UsedMinutes(paymentID uuid.UUID, sessions []sessModel.LessonSessionModel, exclude uuid.UUID) int {
	used := 0
	for _, s := range sessions {
		if s.LessonSessionID == exclude {
			continue
		}
		if s.HasPayment() && *s.LessonSessionPaymentID == paymentID {
			used += s.LessonSessionPaidMin
		}
	}
	return used
}

// CheckQuota menjaga invariant: total paid_min semua sesi satu payment
// tidak boleh melebihi lessons_count × durasi nominal series.
// Ditolak di write boundary, bukan disimpan diam-diam.
func CheckQuota(
	p paymentModel.PaymentModel,
	series seriesModel.LessonSeriesModel,
	sessions []sessModel.LessonSessionModel,
	target *sessModel.LessonSessionModel,
	wantPaidMin int,
) error {
	if wantPaidMin < 0 || wantPaidMin > target.LessonSessionDurationMin {
		return ErrPaidMinInvalid
	}
	used := UsedMinutes(p.PaymentID, sessions, target.LessonSessionID)
	if used+wantPaidMin > p.QuotaMinutes(series.LessonSeriesDurationMin) {
		return ErrQuotaExceeded
	}
	return nil
}

/* =========================
   AttachService: attach/detach payment ↔ sesi
========================= */

// AttachService menempel/melepas payment ref pada sesi, dalam critical
// section per-series yang sama dengan StatusService supaya tidak balapan
// dengan transfer.
type AttachService struct {
	DB *gorm.DB
}

func NewAttachService(db *gorm.DB) *AttachService { return &AttachService{DB: db} }

type AttachInput struct {
	SeriesID  uuid.UUID
	Date      time.Time
	PaymentID uuid.UUID
	PaidMin   int // 0 = pakai durasi sesi (dibatasi kuota)
	ActorID   uuid.UUID
}

func (s *AttachService) Attach(ctx context.Context, in AttachInput) (*sessModel.LessonSessionModel, error) {
	var out *sessModel.LessonSessionModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var series seriesModel.LessonSeriesModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("lesson_series_id = ?", in.SeriesID).
			First(&series).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return sessService.ErrSeriesNotFound
			}
			return err
		}

		var payment paymentModel.PaymentModel
		if err := tx.Where("payment_id = ?", in.PaymentID).First(&payment).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPaymentNotFound
			}
			return err
		}

		st := &sessService.GormSessionStore{DB: tx, ForUpdate: true}
		sessions, err := st.ListBySeries(ctx, in.SeriesID)
		if err != nil {
			return err
		}

		row, err := st.GetByDate(ctx, in.SeriesID, in.Date)
		if err != nil {
			return err
		}
		if row == nil {
			rec := schedService.FromSeries(series)
			if !rec.Contains(in.Date) {
				return sessService.ErrNotOccurrence
			}
			row = &sessModel.LessonSessionModel{
				LessonSessionSeriesID:    in.SeriesID,
				LessonSessionDate:        schedService.DateOnly(in.Date),
				LessonSessionStatus:      sessModel.SessionScheduled,
				LessonSessionDurationMin: series.LessonSeriesDurationMin,
				LessonSessionUpdatedBy:   &in.ActorID,
			}
			if err := st.Create(ctx, row); err != nil {
				return err
			}
		}

		paid := in.PaidMin
		if paid == 0 {
			paid = row.LessonSessionDurationMin
		}
		if err := CheckQuota(payment, series, sessions, row, paid); err != nil {
			return err
		}

		pid := payment.PaymentID
		row.LessonSessionPaymentID = &pid
		row.LessonSessionPaidMin = paid
		row.LessonSessionUpdatedBy = &in.ActorID
		if err := st.Save(ctx, row); err != nil {
			return err
		}
		out = row
		return nil
	})
	return out, err
}

type DetachInput struct {
	SeriesID uuid.UUID
	Date     time.Time
	ActorID  uuid.UUID
}

func (s *AttachService) Detach(ctx context.Context, in DetachInput) (*sessModel.LessonSessionModel, error) {
	var out *sessModel.LessonSessionModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		st := &sessService.GormSessionStore{DB: tx, ForUpdate: true}
		row, err := st.GetByDate(ctx, in.SeriesID, in.Date)
		if err != nil {
			return err
		}
		if row == nil {
			return sessService.ErrSessionNotFound
		}
		if !row.HasPayment() {
			out = row // sudah lepas — idempotent
			return nil
		}
		row.LessonSessionPaymentID = nil
		row.LessonSessionPaidMin = 0
		row.LessonSessionUpdatedBy = &in.ActorID
		if err := st.Save(ctx, row); err != nil {
			return err
		}
		out = row
		return nil
	})
	return out, err
}
