// file: internals/features/lessons/sessions/service/status.go
package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	schedService "bimbelku_backend/internals/features/lessons/schedule/service"
	seriesModel "bimbelku_backend/internals/features/lessons/series/model"
	m "bimbelku_backend/internals/features/lessons/sessions/model"
)

/* =========================
   Set status (state machine §)
========================= */

type SetStatusInput struct {
	SeriesID uuid.UUID
	Date     time.Time
	Status   m.LessonSessionStatus
	ActorID  uuid.UUID
}

type SetStatusResult struct {
	Session  *m.LessonSessionModel
	Transfer TransferOutcome
	Changed  bool
}

// ApplySetStatus adalah inti operasi set-status, bebas dari gorm supaya bisa
// diuji dengan store in-memory. Kontrak:
//   - upsert baris (series, date): update kalau ada, insert kalau belum;
//   - status "special" (reschedule) ditolak — pakai ApplyReschedule;
//   - memicu transfer pembayaran saat transisi mengubah klasifikasi
//     paid/unpaid sesi;
//   - no-op yang tidak mengubah state tidak menulis apa pun (idempotent).
func ApplySetStatus(
	ctx context.Context,
	st SessionStore,
	series seriesModel.LessonSeriesModel,
	in SetStatusInput,
) (SetStatusResult, error) {
	if !in.Status.Valid() {
		return SetStatusResult{}, ErrInvalidStatus
	}
	if in.Status.IsSpecial() {
		return SetStatusResult{}, ErrSpecialStatus
	}

	date := schedService.DateOnly(in.Date)

	row, err := st.GetByDate(ctx, series.LessonSeriesID, date)
	if err != nil {
		return SetStatusResult{}, err
	}

	prev := m.SessionScheduled // default virtual
	if row == nil {
		// Virtual → scheduled adalah default; tidak ada yang perlu ditulis.
		if in.Status == m.SessionScheduled {
			return SetStatusResult{Changed: false}, nil
		}
		rec := schedService.FromSeries(series)
		if !rec.Contains(date) {
			return SetStatusResult{}, ErrNotOccurrence
		}
		row = &m.LessonSessionModel{
			LessonSessionSeriesID:    series.LessonSeriesID,
			LessonSessionDate:        date,
			LessonSessionStatus:      in.Status,
			LessonSessionDurationMin: series.LessonSeriesDurationMin,
			LessonSessionUpdatedBy:   &in.ActorID,
		}
		if err := st.Create(ctx, row); err != nil {
			return SetStatusResult{}, err
		}
	} else {
		if row.LessonSessionStatus == m.SessionRescheduledOut {
			// Slot yang sudah dipindahkan itu terminal: baris targetnya masih
			// hidup, jadi menghidupkan ulang slot asal = dobel pertemuan.
			return SetStatusResult{}, ErrAlreadyMoved
		}
		if row.LessonSessionStatus == in.Status {
			// Sudah konsisten — jangan tulis ulang.
			return SetStatusResult{Session: row, Changed: false}, nil
		}
		prev = row.LessonSessionStatus
		row.LessonSessionStatus = in.Status
		row.LessonSessionUpdatedBy = &in.ActorID
		if err := st.Save(ctx, row); err != nil {
			return SetStatusResult{}, err
		}
	}

	res := SetStatusResult{Session: row, Changed: true}

	// Transisi yang mengubah klasifikasi paid/unpaid memicu resolver transfer.
	switch {
	case row.HasPayment() && in.Status.ReleasesPayment():
		out, err := ForwardTransfer(ctx, st, series, row, in.ActorID)
		if err != nil {
			return SetStatusResult{}, err
		}
		res.Transfer = out

	case !row.HasPayment() && in.Status == m.SessionScheduled && prev != m.SessionScheduled:
		out, err := BackwardReclaim(ctx, st, row, in.ActorID)
		if err != nil {
			return SetStatusResult{}, err
		}
		res.Transfer = out
	}

	return res, nil
}

/* =========================
   Reschedule (follow-up flow)
========================= */

type RescheduleInput struct {
	SeriesID uuid.UUID
	FromDate time.Time
	ToDate   time.Time
	ActorID  uuid.UUID
}

type RescheduleResult struct {
	Origin *m.LessonSessionModel
	Target *m.LessonSessionModel
}

// ApplyReschedule memindahkan satu pertemuan ke tanggal lain:
// asal → rescheduled_out (terminal), target → rescheduled.
// Payment ref (beserta menit terbayar) ikut pindah ke target.
// Target di luar pola recurrence ditandai is_additional.
func ApplyReschedule(
	ctx context.Context,
	st SessionStore,
	series seriesModel.LessonSeriesModel,
	in RescheduleInput,
) (RescheduleResult, error) {
	from := schedService.DateOnly(in.FromDate)
	to := schedService.DateOnly(in.ToDate)
	if from.Equal(to) {
		return RescheduleResult{}, ErrTargetTaken
	}

	rec := schedService.FromSeries(series)

	origin, err := st.GetByDate(ctx, series.LessonSeriesID, from)
	if err != nil {
		return RescheduleResult{}, err
	}
	if origin == nil {
		if !rec.Contains(from) {
			return RescheduleResult{}, ErrNotOccurrence
		}
		origin = &m.LessonSessionModel{
			LessonSessionSeriesID:    series.LessonSeriesID,
			LessonSessionDate:        from,
			LessonSessionStatus:      m.SessionScheduled,
			LessonSessionDurationMin: series.LessonSeriesDurationMin,
			LessonSessionUpdatedBy:   &in.ActorID,
		}
		if err := st.Create(ctx, origin); err != nil {
			return RescheduleResult{}, err
		}
	}
	if origin.LessonSessionStatus.IsTerminal() {
		return RescheduleResult{}, ErrAlreadyMoved
	}

	existing, err := st.GetByDate(ctx, series.LessonSeriesID, to)
	if err != nil {
		return RescheduleResult{}, err
	}
	if existing != nil {
		return RescheduleResult{}, ErrTargetTaken
	}

	target := &m.LessonSessionModel{
		LessonSessionSeriesID:     series.LessonSeriesID,
		LessonSessionDate:         to,
		LessonSessionStatus:       m.SessionRescheduled,
		LessonSessionDurationMin:  origin.LessonSessionDurationMin,
		LessonSessionPaymentID:    origin.LessonSessionPaymentID,
		LessonSessionPaidMin:      origin.LessonSessionPaidMin,
		LessonSessionIsAdditional: !rec.Contains(to),
		LessonSessionUpdatedBy:    &in.ActorID,
	}
	if err := st.Create(ctx, target); err != nil {
		return RescheduleResult{}, err
	}

	origin.LessonSessionStatus = m.SessionRescheduledOut
	origin.LessonSessionPaymentID = nil
	origin.LessonSessionPaidMin = 0
	origin.LessonSessionUpdatedBy = &in.ActorID
	if err := st.Save(ctx, origin); err != nil {
		return RescheduleResult{}, err
	}

	return RescheduleResult{Origin: origin, Target: target}, nil
}

/* =========================
   StatusService: critical section per-series
========================= */

// StatusService membungkus operasi mutasi dalam satu transaksi dengan
// FOR UPDATE: baris series sebagai anchor lock, lalu baris-baris sesi.
// Dua mutasi simultan pada series yang sama terserialisasi; series berbeda
// tidak pernah saling menunggu. Konflik tulis dikembalikan sebagai error
// retryable — pemanggil mengulang dengan read baru, bukan dianggap sukses.
type StatusService struct {
	DB *gorm.DB
}

func NewStatusService(db *gorm.DB) *StatusService { return &StatusService{DB: db} }

func (s *StatusService) lockSeries(tx *gorm.DB, id uuid.UUID) (seriesModel.LessonSeriesModel, error) {
	var series seriesModel.LessonSeriesModel
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("lesson_series_id = ?", id).
		First(&series).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return series, ErrSeriesNotFound
	}
	return series, err
}

func (s *StatusService) SetStatus(ctx context.Context, in SetStatusInput) (SetStatusResult, error) {
	var res SetStatusResult
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		series, err := s.lockSeries(tx, in.SeriesID)
		if err != nil {
			return err
		}
		st := &GormSessionStore{DB: tx, ForUpdate: true}
		res, err = ApplySetStatus(ctx, st, series, in)
		return err
	})
	return res, err
}

func (s *StatusService) Reschedule(ctx context.Context, in RescheduleInput) (RescheduleResult, error) {
	var res RescheduleResult
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		series, err := s.lockSeries(tx, in.SeriesID)
		if err != nil {
			return err
		}
		st := &GormSessionStore{DB: tx, ForUpdate: true}
		res, err = ApplyReschedule(ctx, st, series, in)
		return err
	})
	return res, err
}
