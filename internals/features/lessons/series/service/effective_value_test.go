// file: internals/features/lessons/series/service/effective_value_test.go
package service

import (
	"testing"
	"time"

	"gorm.io/datatypes"

	m "bimbelku_backend/internals/features/lessons/series/model"
)

func date(y int, mo time.Month, d int) time.Time {
	return time.Date(y, mo, d, 0, 0, 0, 0, time.UTC)
}

func timeChange(old, new string, from time.Time, to *time.Time) m.LessonScheduleChangeModel {
	rec := m.LessonScheduleChangeModel{
		LessonScheduleChangeField:       m.ChangeFieldTime,
		LessonScheduleChangeNewValue:    datatypes.JSON(new),
		LessonScheduleChangeAppliedFrom: from,
		LessonScheduleChangeAppliedTo:   to,
	}
	if old != "" {
		rec.LessonScheduleChangeOldValue = datatypes.JSON(old)
	}
	return rec
}

func ptr(t time.Time) *time.Time { return &t }

func baseSeries() m.LessonSeriesModel {
	return m.LessonSeriesModel{
		LessonSeriesStartTime: "10:00",
		LessonSeriesEndTime:   "11:30",
	}
}

const (
	winNominal = `{"start":"10:00","end":"11:30"}`
	winA       = `{"start":"13:00","end":"14:30"}`
	winB       = `{"start":"15:00","end":"16:30"}`
)

func TestResolveEffectiveTimeNoRecords(t *testing.T) {
	got := ResolveEffectiveTime(baseSeries(), nil, date(2024, 3, 1))
	if got.Start != "10:00" || got.End != "11:30" {
		t.Fatalf("tanpa record harus jatuh ke jam nominal, got %+v", got)
	}
}

func TestResolveEffectiveTimeContainment(t *testing.T) {
	// Rentang terbatas: hanya Maret yang pindah jam.
	recs := []m.LessonScheduleChangeModel{
		timeChange(winNominal, winA, date(2024, 3, 1), ptr(date(2024, 3, 31))),
	}
	s := baseSeries()

	got := ResolveEffectiveTime(s, recs, date(2024, 3, 15))
	if got.Start != "13:00" {
		t.Fatalf("dalam rentang harus pakai nilai baru, got %+v", got)
	}

	// Ujung rentang inklusif dua-duanya.
	if got := ResolveEffectiveTime(s, recs, date(2024, 3, 1)); got.Start != "13:00" {
		t.Fatalf("applied_from inklusif, got %+v", got)
	}
	if got := ResolveEffectiveTime(s, recs, date(2024, 3, 31)); got.Start != "13:00" {
		t.Fatalf("applied_to inklusif, got %+v", got)
	}
}

func TestResolveEffectiveTimeBaselineBeforeEarliest(t *testing.T) {
	recs := []m.LessonScheduleChangeModel{
		timeChange(winNominal, winA, date(2024, 3, 1), nil),
	}
	// Sebelum record paling awal → nilai LAMA record itu.
	got := ResolveEffectiveTime(baseSeries(), recs, date(2024, 2, 15))
	if got.Start != "10:00" || got.End != "11:30" {
		t.Fatalf("sebelum perubahan harus baseline, got %+v", got)
	}
}

func TestResolveEffectiveTimeCarryForward(t *testing.T) {
	// Rentang pertama berakhir, tanggal jatuh di gap sebelum record kedua:
	// nilai baru record terakhir yang sudah mulai tetap berlaku.
	recs := []m.LessonScheduleChangeModel{
		timeChange(winNominal, winA, date(2024, 3, 1), ptr(date(2024, 3, 31))),
		timeChange(winA, winB, date(2024, 6, 1), nil),
	}
	got := ResolveEffectiveTime(baseSeries(), recs, date(2024, 4, 15))
	if got.Start != "13:00" {
		t.Fatalf("gap harus carry-forward nilai baru terakhir, got %+v", got)
	}

	// Setelah record kedua mulai, nilai barunya yang menang.
	got = ResolveEffectiveTime(baseSeries(), recs, date(2024, 7, 1))
	if got.Start != "15:00" {
		t.Fatalf("setelah record kedua harus winB, got %+v", got)
	}
}

func TestResolveEffectiveTimeLatestOpenEndedWins(t *testing.T) {
	// Dua record open-ended yang tumpang: applied_from terakhir menang.
	recs := []m.LessonScheduleChangeModel{
		timeChange(winNominal, winA, date(2024, 1, 1), nil),
		timeChange(winA, winB, date(2024, 2, 1), nil),
	}
	got := ResolveEffectiveTime(baseSeries(), recs, date(2024, 3, 1))
	if got.Start != "15:00" {
		t.Fatalf("record terbaru harus menang, got %+v", got)
	}
}

func TestResolveEffectiveTimeUnorderedInput(t *testing.T) {
	// Resolver tidak boleh bergantung pada urutan datang record.
	recs := []m.LessonScheduleChangeModel{
		timeChange(winA, winB, date(2024, 6, 1), nil),
		timeChange(winNominal, winA, date(2024, 3, 1), ptr(date(2024, 3, 31))),
	}
	if got := ResolveEffectiveTime(baseSeries(), recs, date(2024, 3, 15)); got.Start != "13:00" {
		t.Fatalf("containment dengan input tak terurut, got %+v", got)
	}
	if got := ResolveEffectiveTime(baseSeries(), recs, date(2024, 2, 1)); got.Start != "10:00" {
		t.Fatalf("baseline dengan input tak terurut, got %+v", got)
	}
}

func TestResolveEffectiveRawIgnoresOtherFields(t *testing.T) {
	recs := []m.LessonScheduleChangeModel{
		{
			LessonScheduleChangeField:       m.ChangeFieldTeacher,
			LessonScheduleChangeNewValue:    datatypes.JSON(`{"teacher_id":"x"}`),
			LessonScheduleChangeAppliedFrom: date(2024, 1, 1),
		},
	}
	if _, ok := ResolveEffectiveRaw(recs, m.ChangeFieldTime, date(2024, 2, 1)); ok {
		t.Fatalf("record field lain tidak boleh memengaruhi resolusi time")
	}
	if _, ok := ResolveEffectiveRaw(recs, m.ChangeFieldTeacher, date(2024, 2, 1)); !ok {
		t.Fatalf("record teacher harus ditemukan untuk field teacher")
	}
}

func TestResolveEffectiveTimeBadPayload(t *testing.T) {
	recs := []m.LessonScheduleChangeModel{
		timeChange("", `"bukan-objek"`, date(2024, 1, 1), nil),
	}
	got := ResolveEffectiveTime(baseSeries(), recs, date(2024, 2, 1))
	if got.Start != "10:00" {
		t.Fatalf("payload tak terdecode harus jatuh ke nominal, got %+v", got)
	}
}
