// file: internals/features/lessons/series/service/effective_value.go
package service

import (
	"sort"
	"time"

	"github.com/bytedance/sonic"
	"gorm.io/datatypes"

	m "bimbelku_backend/internals/features/lessons/series/model"
)

// TimeWindow adalah jam mulai/selesai "HH:MM" yang berlaku pada satu tanggal.
type TimeWindow struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ResolveEffectiveRaw menjawab "nilai apa yang berlaku untuk field ini pada
// tanggal ini" dari riwayat perubahan. Urutan prioritas (first match wins):
//
//  1. Record yang rentang [applied_from, applied_to]-nya memuat tanggal
//     (applied_to NULL = selamanya) → nilai BARU record itu.
//  2. Tanggal sebelum applied_from record paling awal → nilai LAMA record
//     paling awal (baseline sebelum perubahan apa pun tercatat).
//  3. Scan naik berdasarkan applied_from, pegang nilai BARU dari record
//     terakhir dengan applied_from <= tanggal (carry-forward untuk gap).
//  4. Tidak ada yang cocok → ok=false, pemanggil pakai nilai nominal series.
//
// Records boleh datang tidak terurut dan rentangnya boleh bolong; resolver
// menoleransi dua-duanya.
func ResolveEffectiveRaw(records []m.LessonScheduleChangeModel, field m.LessonScheduleChangeField, date time.Time) (datatypes.JSON, bool) {
	d := dateOnly(date)

	var recs []m.LessonScheduleChangeModel
	for _, r := range records {
		if r.LessonScheduleChangeField == field {
			recs = append(recs, r)
		}
	}
	if len(recs) == 0 {
		return nil, false
	}
	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].LessonScheduleChangeAppliedFrom.Before(recs[j].LessonScheduleChangeAppliedFrom)
	})

	// Aturan 1: containment — kalau beberapa record memuat tanggal
	// (rentang open-ended saling tumpang), yang applied_from-nya terakhir menang.
	for i := len(recs) - 1; i >= 0; i-- {
		r := recs[i]
		from := dateOnly(r.LessonScheduleChangeAppliedFrom)
		if d.Before(from) {
			continue
		}
		if r.LessonScheduleChangeAppliedTo == nil || !d.After(dateOnly(*r.LessonScheduleChangeAppliedTo)) {
			return r.LessonScheduleChangeNewValue, true
		}
	}

	// Aturan 2: sebelum record paling awal → baseline (nilai lama)
	earliest := recs[0]
	if d.Before(dateOnly(earliest.LessonScheduleChangeAppliedFrom)) {
		if len(earliest.LessonScheduleChangeOldValue) > 0 {
			return earliest.LessonScheduleChangeOldValue, true
		}
		return nil, false
	}

	// Aturan 3: carry-forward record terakhir dengan applied_from <= tanggal
	var last *m.LessonScheduleChangeModel
	for i := range recs {
		if !dateOnly(recs[i].LessonScheduleChangeAppliedFrom).After(d) {
			last = &recs[i]
		}
	}
	if last != nil {
		return last.LessonScheduleChangeNewValue, true
	}

	// Aturan 4: fallback ke nominal series (di pemanggil)
	return nil, false
}

// ResolveEffectiveTime mengembalikan time window yang berlaku untuk satu
// tanggal occurrence. Tanpa record (atau record tidak bisa didecode),
// jatuh ke jam nominal series saat ini.
func ResolveEffectiveTime(series m.LessonSeriesModel, records []m.LessonScheduleChangeModel, date time.Time) TimeWindow {
	fallback := TimeWindow{
		Start: series.LessonSeriesStartTime,
		End:   series.LessonSeriesEndTime,
	}

	raw, ok := ResolveEffectiveRaw(records, m.ChangeFieldTime, date)
	if !ok || len(raw) == 0 {
		return fallback
	}

	var tw TimeWindow
	if err := sonic.Unmarshal(raw, &tw); err != nil || tw.Start == "" {
		return fallback
	}
	if tw.End == "" {
		tw.End = fallback.End
	}
	return tw
}
