// file: internals/features/lessons/sessions/service/transfer.go
package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	schedService "bimbelku_backend/internals/features/lessons/schedule/service"
	seriesModel "bimbelku_backend/internals/features/lessons/series/model"
	m "bimbelku_backend/internals/features/lessons/sessions/model"
)

// TransferOutcome merangkum hasil satu operasi pemindahan atribusi.
type TransferOutcome struct {
	Moved      bool       `json:"moved"`
	TargetDate *time.Time `json:"target_date,omitempty"`
	Warning    string     `json:"warning,omitempty"`
}

const WarnPaymentUnattributed = "Series sudah habis: pembayaran dilepas dan belum teratribusi ke pertemuan mana pun."

// movedMinutes: menit yang ikut pindah bersama payment ref.
// Kalau asal belum mencatat menit terbayar, pakai durasi nominal series.
func movedMinutes(origin *m.LessonSessionModel, series seriesModel.LessonSeriesModel) int {
	if origin.LessonSessionPaidMin > 0 {
		return origin.LessonSessionPaidMin
	}
	return series.LessonSeriesDurationMin
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// isDonorSlot: tanggal persisted yang layak menerima pembayaran —
// strictly setelah asal, belum membawa payment ref, dan statusnya scheduled.
func isDonorSlot(s m.LessonSessionModel, after time.Time) bool {
	return s.LessonSessionDate.After(after) &&
		!s.HasPayment() &&
		s.LessonSessionStatus == m.SessionScheduled
}

// ForwardTransfer memindahkan payment ref dari sesi yang dibatalkan/digratiskan
// ke pertemuan belum-terbayar paling awal setelahnya.
//
// Preferensi target:
//  a. baris persisted paling awal yang memenuhi predikat donor;
//  b. kalau tidak ada, tanggal hasil generator paling awal setelah asal
//     yang belum punya baris persisted (baris baru dibuat, status scheduled).
//
// Kalau series habis sebelum slot ditemukan, payment ref asal dilepas dan
// operasi selesai dengan warning non-fatal — target tidak pernah dikarang.
// Idempotent: asal tanpa payment ref adalah no-op.
func ForwardTransfer(
	ctx context.Context,
	st SessionStore,
	series seriesModel.LessonSeriesModel,
	origin *m.LessonSessionModel,
	actorID uuid.UUID,
) (TransferOutcome, error) {
	if !origin.HasPayment() {
		return TransferOutcome{}, nil
	}

	originDate := schedService.DateOnly(origin.LessonSessionDate)
	paymentID := *origin.LessonSessionPaymentID
	minutes := movedMinutes(origin, series)

	sessions, err := st.ListBySeries(ctx, series.LessonSeriesID)
	if err != nil {
		return TransferOutcome{}, err
	}

	// (a) baris persisted paling awal yang memenuhi predikat donor
	var target *m.LessonSessionModel
	for i := range sessions {
		if sessions[i].LessonSessionID == origin.LessonSessionID {
			continue
		}
		if isDonorSlot(sessions[i], originDate) {
			target = &sessions[i]
			break
		}
	}

	// (b) tanggal generator paling awal setelah asal tanpa baris persisted
	if target == nil {
		occupied := make(map[time.Time]struct{}, len(sessions))
		for _, s := range sessions {
			occupied[schedService.DateOnly(s.LessonSessionDate)] = struct{}{}
		}
		rec := schedService.FromSeries(series)
		for d, ok := rec.NextAfter(originDate); ok; d, ok = rec.NextAfter(d) {
			if _, taken := occupied[d]; taken {
				continue
			}
			target = &m.LessonSessionModel{
				LessonSessionSeriesID:    series.LessonSeriesID,
				LessonSessionDate:        d,
				LessonSessionStatus:      m.SessionScheduled,
				LessonSessionDurationMin: series.LessonSeriesDurationMin,
				LessonSessionUpdatedBy:   &actorID,
			}
			if err := st.Create(ctx, target); err != nil {
				return TransferOutcome{}, err
			}
			break
		}
	}

	if target == nil {
		// Series habis: lepas, jangan karang target.
		origin.LessonSessionPaymentID = nil
		origin.LessonSessionPaidMin = 0
		origin.LessonSessionUpdatedBy = &actorID
		if err := st.Save(ctx, origin); err != nil {
			return TransferOutcome{}, err
		}
		return TransferOutcome{Warning: WarnPaymentUnattributed}, nil
	}

	// Attach ke target dulu, baru lepas dari asal — dua fase dalam satu
	// critical section supaya atribusi tidak pernah terduplikasi/hilang.
	target.LessonSessionPaymentID = &paymentID
	target.LessonSessionPaidMin = minInt(target.LessonSessionDurationMin, minutes)
	target.LessonSessionUpdatedBy = &actorID
	if err := st.Save(ctx, target); err != nil {
		return TransferOutcome{}, err
	}

	origin.LessonSessionPaymentID = nil
	origin.LessonSessionPaidMin = 0
	origin.LessonSessionUpdatedBy = &actorID
	if err := st.Save(ctx, origin); err != nil {
		return TransferOutcome{}, err
	}

	t := target.LessonSessionDate
	return TransferOutcome{Moved: true, TargetDate: &t}, nil
}

// BackwardReclaim menarik kembali pembayaran untuk sesi yang di-revert ke
// scheduled: donor adalah sesi persisted pertama setelah asal yang membawa
// payment ref dan masih scheduled. Tanpa donor, asal tetap unpaid scheduled.
// Idempotent: asal yang sudah membawa payment ref adalah no-op.
func BackwardReclaim(
	ctx context.Context,
	st SessionStore,
	origin *m.LessonSessionModel,
	actorID uuid.UUID,
) (TransferOutcome, error) {
	if origin.HasPayment() {
		return TransferOutcome{}, nil
	}

	originDate := schedService.DateOnly(origin.LessonSessionDate)

	sessions, err := st.ListBySeries(ctx, origin.LessonSessionSeriesID)
	if err != nil {
		return TransferOutcome{}, err
	}

	var donor *m.LessonSessionModel
	for i := range sessions {
		s := &sessions[i]
		if !s.LessonSessionDate.After(originDate) {
			continue
		}
		if s.HasPayment() && s.LessonSessionStatus == m.SessionScheduled {
			donor = s
			break
		}
	}
	if donor == nil {
		return TransferOutcome{}, nil
	}

	paymentID := *donor.LessonSessionPaymentID
	minutes := donor.LessonSessionPaidMin
	if minutes == 0 {
		minutes = origin.LessonSessionDurationMin
	}

	origin.LessonSessionPaymentID = &paymentID
	origin.LessonSessionPaidMin = minInt(origin.LessonSessionDurationMin, minutes)
	origin.LessonSessionUpdatedBy = &actorID
	if err := st.Save(ctx, origin); err != nil {
		return TransferOutcome{}, err
	}

	donor.LessonSessionPaymentID = nil
	donor.LessonSessionPaidMin = 0
	donor.LessonSessionUpdatedBy = &actorID
	if err := st.Save(ctx, donor); err != nil {
		return TransferOutcome{}, err
	}

	d := donor.LessonSessionDate
	return TransferOutcome{Moved: true, TargetDate: &d}, nil
}
