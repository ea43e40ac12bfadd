// file: internals/features/lessons/schedule/service/occurrence_test.go
package service

import (
	"testing"
	"time"

	seriesModel "bimbelku_backend/internals/features/lessons/series/model"
)

func date(y int, mo time.Month, d int) time.Time {
	return time.Date(y, mo, d, 0, 0, 0, 0, time.UTC)
}

func testSeries(weekdays []string, start, end time.Time) seriesModel.LessonSeriesModel {
	return seriesModel.LessonSeriesModel{
		LessonSeriesWeekdays:    weekdays,
		LessonSeriesStartDate:   start,
		LessonSeriesEndDate:     end,
		LessonSeriesStartTime:   "10:00",
		LessonSeriesEndTime:     "11:30",
		LessonSeriesDurationMin: 90,
	}
}

func TestRecurrenceDates(t *testing.T) {
	// 2024-01-01 adalah Senin.
	rec := FromSeries(testSeries(
		[]string{"monday", "wednesday", "friday"},
		date(2024, 1, 1), date(2024, 1, 12),
	))

	got := rec.Dates()
	want := []time.Time{
		date(2024, 1, 1), date(2024, 1, 3), date(2024, 1, 5),
		date(2024, 1, 8), date(2024, 1, 10), date(2024, 1, 12),
	}

	if len(got) != len(want) {
		t.Fatalf("jumlah occurrence = %d, want %d (%v)", len(got), len(want), got)
	}
	for i := range want {
		if !got[i].Equal(want[i]) {
			t.Fatalf("occurrence[%d] = %s, want %s", i, got[i].Format("2006-01-02"), want[i].Format("2006-01-02"))
		}
	}
}

func TestRecurrenceVocabularies(t *testing.T) {
	cases := []struct {
		tok  string
		want time.Weekday
	}{
		{"monday", time.Monday},
		{"Mon", time.Monday},
		{"senin", time.Monday},
		{"SEN", time.Monday},
		{"1", time.Monday},
		{"jum'at", time.Friday},
		{"ahad", time.Sunday},
		{"7", time.Sunday},
		{" rab ", time.Wednesday},
	}
	for _, c := range cases {
		wd, ok := ParseDayToken(c.tok)
		if !ok || wd != c.want {
			t.Fatalf("ParseDayToken(%q) = (%v, %v), want (%v, true)", c.tok, wd, ok, c.want)
		}
	}

	if _, ok := ParseDayToken("someday"); ok {
		t.Fatalf("token tidak dikenal harus gagal parse")
	}

	// Kosakata campur untuk hari yang sama tetap satu entry di set.
	set := ParseWeekdaySet([]string{"monday", "sen", "1", "fri"})
	if len(set) != 2 {
		t.Fatalf("set = %v, want 2 hari unik", set)
	}
}

func TestRecurrenceEmpty(t *testing.T) {
	// Himpunan hari kosong: bukan error, sekadar tidak ada occurrence.
	rec := FromSeries(testSeries(nil, date(2024, 1, 1), date(2024, 1, 31)))
	if !rec.Empty() {
		t.Fatalf("tanpa weekdays harus Empty")
	}
	if got := rec.Dates(); len(got) != 0 {
		t.Fatalf("Dates() = %v, want kosong", got)
	}

	// Periode terbalik juga bukan error.
	rec = FromSeries(testSeries([]string{"monday"}, date(2024, 2, 1), date(2024, 1, 1)))
	if !rec.Empty() {
		t.Fatalf("end < start harus Empty")
	}
	if got := rec.Dates(); len(got) != 0 {
		t.Fatalf("Dates() = %v, want kosong", got)
	}
}

func TestRecurrenceSingleDay(t *testing.T) {
	// Periode satu hari yang tepat jatuh di hari pola → tepat satu occurrence.
	rec := FromSeries(testSeries([]string{"monday"}, date(2024, 1, 1), date(2024, 1, 1)))
	got := rec.Dates()
	if len(got) != 1 || !got[0].Equal(date(2024, 1, 1)) {
		t.Fatalf("Dates() = %v, want [2024-01-01]", got)
	}
}

func TestRecurrenceIterRestartable(t *testing.T) {
	rec := FromSeries(testSeries([]string{"monday", "friday"}, date(2024, 1, 1), date(2024, 1, 31)))

	first := rec.Dates()
	second := rec.Dates()
	if len(first) != len(second) {
		t.Fatalf("iterasi kedua beda panjang: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if !first[i].Equal(second[i]) {
			t.Fatalf("iterasi tidak deterministik di index %d", i)
		}
	}

	// Early break tidak merusak iterasi berikutnya.
	n := 0
	for range rec.Iter() {
		n++
		if n == 2 {
			break
		}
	}
	if got := len(rec.Dates()); got != len(first) {
		t.Fatalf("setelah early break, Dates() = %d, want %d", got, len(first))
	}
}

func TestRecurrenceContainsAndNextAfter(t *testing.T) {
	rec := FromSeries(testSeries([]string{"wednesday"}, date(2024, 1, 1), date(2024, 1, 31)))

	if !rec.Contains(date(2024, 1, 10)) {
		t.Fatalf("2024-01-10 (Rabu) harus termasuk pola")
	}
	if rec.Contains(date(2024, 1, 11)) {
		t.Fatalf("2024-01-11 (Kamis) tidak boleh termasuk pola")
	}
	if rec.Contains(date(2024, 2, 7)) {
		t.Fatalf("di luar periode tidak boleh termasuk pola")
	}
	// Komponen jam dibuang dulu.
	if !rec.Contains(time.Date(2024, 1, 10, 23, 59, 0, 0, time.UTC)) {
		t.Fatalf("Contains harus membuang komponen jam")
	}

	next, ok := rec.NextAfter(date(2024, 1, 10))
	if !ok || !next.Equal(date(2024, 1, 17)) {
		t.Fatalf("NextAfter(2024-01-10) = (%v, %v), want 2024-01-17", next, ok)
	}
	if _, ok := rec.NextAfter(date(2024, 1, 31)); ok {
		t.Fatalf("NextAfter setelah akhir periode harus false")
	}
}
