// file: internals/features/lessons/schedule/service/timeline.go
package service

import (
	"sort"
	"time"

	"github.com/google/uuid"

	seriesModel "bimbelku_backend/internals/features/lessons/series/model"
	sessModel "bimbelku_backend/internals/features/lessons/sessions/model"
)

// TimelineEntry adalah satu baris timeline final yang dirender pemanggil:
// gabungan tanggal virtual hasil generator dan baris persisted.
type TimelineEntry struct {
	Date         time.Time                     `json:"date"`
	Status       sessModel.LessonSessionStatus `json:"status"`
	DurationMin  int                           `json:"duration_min"`
	PaidMin      int                           `json:"paid_min"`
	PaymentID    *uuid.UUID                    `json:"payment_id,omitempty"`
	Notes        *string                       `json:"notes,omitempty"`
	IsAdditional bool                          `json:"is_additional"`
	IsVirtual    bool                          `json:"is_virtual"`
}

// BuildTimeline meng-union tanggal generator dengan semua baris persisted
// (termasuk is_additional dan target reschedule di luar pola), dedup per
// tanggal, urut naik. Baris persisted selalu menang atas default virtual.
// Tidak ada cursor/cache: mutasi upstream (set status, transfer) bisa
// menambah/memindah baris kapan saja, jadi timeline dihitung ulang tiap read.
func BuildTimeline(series seriesModel.LessonSeriesModel, sessions []sessModel.LessonSessionModel) []TimelineEntry {
	byDate := make(map[time.Time]TimelineEntry, len(sessions))

	for _, s := range sessions {
		d := DateOnly(s.LessonSessionDate)
		byDate[d] = TimelineEntry{
			Date:         d,
			Status:       s.LessonSessionStatus,
			DurationMin:  s.LessonSessionDurationMin,
			PaidMin:      s.LessonSessionPaidMin,
			PaymentID:    s.LessonSessionPaymentID,
			Notes:        s.LessonSessionNotes,
			IsAdditional: s.LessonSessionIsAdditional,
			IsVirtual:    false,
		}
	}

	rec := FromSeries(series)
	for d := range rec.Iter() {
		if _, taken := byDate[d]; taken {
			continue
		}
		byDate[d] = TimelineEntry{
			Date:        d,
			Status:      sessModel.SessionScheduled,
			DurationMin: series.LessonSeriesDurationMin,
			IsVirtual:   true,
		}
	}

	out := make([]TimelineEntry, 0, len(byDate))
	for _, e := range byDate {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}
