// file: internals/features/lessons/schedule/service/occurrence.go
package service

import (
	"iter"
	"strings"
	"time"

	seriesModel "bimbelku_backend/internals/features/lessons/series/model"
)

/* =========================
   Token hari → time.Weekday
========================= */

// dayTokens menoleransi beberapa kosakata sekaligus:
// inggris panjang/pendek (monday/mon), indonesia (senin/sen, dst),
// dan angka ISO 1..7 (1=Senin) seperti kolom day_of_week di DB.
var dayTokens = map[string]time.Weekday{
	// english
	"monday": time.Monday, "mon": time.Monday,
	"tuesday": time.Tuesday, "tue": time.Tuesday, "tues": time.Tuesday,
	"wednesday": time.Wednesday, "wed": time.Wednesday,
	"thursday": time.Thursday, "thu": time.Thursday, "thur": time.Thursday, "thurs": time.Thursday,
	"friday": time.Friday, "fri": time.Friday,
	"saturday": time.Saturday, "sat": time.Saturday,
	"sunday": time.Sunday, "sun": time.Sunday,

	// indonesia
	"senin": time.Monday, "sen": time.Monday,
	"selasa": time.Tuesday, "sel": time.Tuesday,
	"rabu": time.Wednesday, "rab": time.Wednesday,
	"kamis": time.Thursday, "kam": time.Thursday,
	"jumat": time.Friday, "jum": time.Friday, "jum'at": time.Friday,
	"sabtu": time.Saturday, "sab": time.Saturday,
	"minggu": time.Sunday, "min": time.Sunday, "ahad": time.Sunday,

	// ISO 1..7 (1=Senin)
	"1": time.Monday, "2": time.Tuesday, "3": time.Wednesday,
	"4": time.Thursday, "5": time.Friday, "6": time.Saturday, "7": time.Sunday,
}

// ParseDayToken menormalisasi satu token hari (case-insensitive).
func ParseDayToken(tok string) (time.Weekday, bool) {
	wd, ok := dayTokens[strings.ToLower(strings.TrimSpace(tok))]
	return wd, ok
}

// ParseWeekdaySet menormalisasi daftar token menjadi himpunan weekday.
// Token yang tidak dikenal dilewati; validasi bentuk token ada di DTO.
func ParseWeekdaySet(tokens []string) map[time.Weekday]struct{} {
	set := make(map[time.Weekday]struct{}, len(tokens))
	for _, t := range tokens {
		if wd, ok := ParseDayToken(t); ok {
			set[wd] = struct{}{}
		}
	}
	return set
}

/* =========================
   Recurrence: generator occurrence
========================= */

// DateOnly membuang komponen jam — semua tanggal di engine ini adalah
// civil date, bukan instant; tidak ada pergeseran timezone.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Recurrence adalah pola berulang sebuah series dalam bentuk siap pakai.
type Recurrence struct {
	Days      map[time.Weekday]struct{}
	StartDate time.Time
	EndDate   time.Time
}

// FromSeries membangun Recurrence dari model series.
func FromSeries(s seriesModel.LessonSeriesModel) Recurrence {
	return Recurrence{
		Days:      ParseWeekdaySet(s.LessonSeriesWeekdays),
		StartDate: DateOnly(s.LessonSeriesStartDate),
		EndDate:   DateOnly(s.LessonSeriesEndDate),
	}
}

// Empty: himpunan hari kosong atau periode tidak valid (end < start).
// Dua-duanya bukan error — konsumen menampilkan "jadwal belum diatur".
func (r Recurrence) Empty() bool {
	return len(r.Days) == 0 || r.EndDate.Before(r.StartDate)
}

// Iter menghasilkan urutan tanggal occurrence secara lazy, terurut naik,
// inklusif kedua ujung periode. Sequence ini restartable: setiap range
// mengulang dari awal.
func (r Recurrence) Iter() iter.Seq[time.Time] {
	return func(yield func(time.Time) bool) {
		if r.Empty() {
			return
		}
		for d := r.StartDate; !d.After(r.EndDate); d = d.AddDate(0, 0, 1) {
			if _, ok := r.Days[d.Weekday()]; !ok {
				continue
			}
			if !yield(d) {
				return
			}
		}
	}
}

// Dates materialisasi seluruh occurrence (untuk response list).
func (r Recurrence) Dates() []time.Time {
	var out []time.Time
	for d := range r.Iter() {
		out = append(out, d)
	}
	return out
}

// Contains: apakah tanggal termasuk pola recurrence (hari cocok & dalam periode).
func (r Recurrence) Contains(date time.Time) bool {
	d := DateOnly(date)
	if r.Empty() || d.Before(r.StartDate) || d.After(r.EndDate) {
		return false
	}
	_, ok := r.Days[d.Weekday()]
	return ok
}

// NextAfter mencari occurrence pertama yang strictly setelah tanggal acuan.
func (r Recurrence) NextAfter(date time.Time) (time.Time, bool) {
	if r.Empty() {
		return time.Time{}, false
	}
	after := DateOnly(date)
	for d := range r.Iter() {
		if d.After(after) {
			return d, true
		}
	}
	return time.Time{}, false
}
