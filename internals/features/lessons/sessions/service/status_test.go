// file: internals/features/lessons/sessions/service/status_test.go
package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"

	seriesModel "bimbelku_backend/internals/features/lessons/series/model"
	m "bimbelku_backend/internals/features/lessons/sessions/model"
)

/* =========================
   In-memory SessionStore
========================= */

type memStore struct {
	rows   map[time.Time]m.LessonSessionModel
	writes int
}

func newMemStore() *memStore {
	return &memStore{rows: map[time.Time]m.LessonSessionModel{}}
}

func dateKey(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func (s *memStore) ListBySeries(_ context.Context, _ uuid.UUID) ([]m.LessonSessionModel, error) {
	out := make([]m.LessonSessionModel, 0, len(s.rows))
	for _, r := range s.rows {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].LessonSessionDate.Before(out[j].LessonSessionDate)
	})
	return out, nil
}

func (s *memStore) GetByDate(_ context.Context, _ uuid.UUID, date time.Time) (*m.LessonSessionModel, error) {
	r, ok := s.rows[dateKey(date)]
	if !ok {
		return nil, nil
	}
	cp := r
	return &cp, nil
}

func (s *memStore) Create(_ context.Context, row *m.LessonSessionModel) error {
	key := dateKey(row.LessonSessionDate)
	if _, exists := s.rows[key]; exists {
		return fmt.Errorf("duplicate (series, date) %s", key.Format("2006-01-02"))
	}
	if row.LessonSessionID == uuid.Nil {
		row.LessonSessionID = uuid.New()
	}
	s.rows[key] = *row
	s.writes++
	return nil
}

func (s *memStore) Save(_ context.Context, row *m.LessonSessionModel) error {
	s.rows[dateKey(row.LessonSessionDate)] = *row
	s.writes++
	return nil
}

// seed menaruh baris langsung tanpa menghitung writes.
func (s *memStore) seed(row m.LessonSessionModel) {
	if row.LessonSessionID == uuid.Nil {
		row.LessonSessionID = uuid.New()
	}
	s.rows[dateKey(row.LessonSessionDate)] = row
}

func (s *memStore) paymentHolders(payID uuid.UUID) []time.Time {
	var out []time.Time
	for d, r := range s.rows {
		if r.LessonSessionPaymentID != nil && *r.LessonSessionPaymentID == payID {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}

/* =========================
   Fixtures
========================= */

func date(y int, mo time.Month, d int) time.Time {
	return time.Date(y, mo, d, 0, 0, 0, 0, time.UTC)
}

// Senin/Rabu/Jumat, 2024-01-01 s/d 2024-01-12 → 01,03,05,08,10,12.
func mwfSeries() seriesModel.LessonSeriesModel {
	return seriesModel.LessonSeriesModel{
		LessonSeriesID:          uuid.New(),
		LessonSeriesWeekdays:    []string{"monday", "wednesday", "friday"},
		LessonSeriesStartDate:   date(2024, 1, 1),
		LessonSeriesEndDate:     date(2024, 1, 12),
		LessonSeriesStartTime:   "10:00",
		LessonSeriesEndTime:     "11:30",
		LessonSeriesDurationMin: 90,
	}
}

func paidRow(series seriesModel.LessonSeriesModel, d time.Time, payID uuid.UUID) m.LessonSessionModel {
	return m.LessonSessionModel{
		LessonSessionSeriesID:    series.LessonSeriesID,
		LessonSessionDate:        d,
		LessonSessionStatus:      m.SessionScheduled,
		LessonSessionDurationMin: series.LessonSeriesDurationMin,
		LessonSessionPaidMin:     series.LessonSeriesDurationMin,
		LessonSessionPaymentID:   &payID,
	}
}

func plainRow(series seriesModel.LessonSeriesModel, d time.Time, status m.LessonSessionStatus) m.LessonSessionModel {
	return m.LessonSessionModel{
		LessonSessionSeriesID:    series.LessonSeriesID,
		LessonSessionDate:        d,
		LessonSessionStatus:      status,
		LessonSessionDurationMin: series.LessonSeriesDurationMin,
	}
}

var actor = uuid.New()

/* =========================
   SetStatus: validasi & idempotensi
========================= */

func TestSetStatusRejectsInvalidAndSpecial(t *testing.T) {
	series := mwfSeries()
	st := newMemStore()

	_, err := ApplySetStatus(context.Background(), st, series, SetStatusInput{
		SeriesID: series.LessonSeriesID, Date: date(2024, 1, 3), Status: "hadir-banget", ActorID: actor,
	})
	if !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("status asing harus ErrInvalidStatus, got %v", err)
	}

	for _, special := range []m.LessonSessionStatus{m.SessionRescheduled, m.SessionRescheduledOut} {
		_, err := ApplySetStatus(context.Background(), st, series, SetStatusInput{
			SeriesID: series.LessonSeriesID, Date: date(2024, 1, 3), Status: special, ActorID: actor,
		})
		if !errors.Is(err, ErrSpecialStatus) {
			t.Fatalf("status %s harus ErrSpecialStatus, got %v", special, err)
		}
	}
	if st.writes != 0 {
		t.Fatalf("operasi yang ditolak tidak boleh menulis, writes=%d", st.writes)
	}
}

func TestSetStatusVirtualScheduledIsNoop(t *testing.T) {
	series := mwfSeries()
	st := newMemStore()

	res, err := ApplySetStatus(context.Background(), st, series, SetStatusInput{
		SeriesID: series.LessonSeriesID, Date: date(2024, 1, 3), Status: m.SessionScheduled, ActorID: actor,
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if res.Changed || st.writes != 0 {
		t.Fatalf("virtual → scheduled harus no-op tanpa tulisan (changed=%v writes=%d)", res.Changed, st.writes)
	}
}

func TestSetStatusRejectsOutsidePattern(t *testing.T) {
	series := mwfSeries()
	st := newMemStore()

	// 2024-01-04 Kamis: bukan occurrence dan belum persisted.
	_, err := ApplySetStatus(context.Background(), st, series, SetStatusInput{
		SeriesID: series.LessonSeriesID, Date: date(2024, 1, 4), Status: m.SessionAttended, ActorID: actor,
	})
	if !errors.Is(err, ErrNotOccurrence) {
		t.Fatalf("tanggal di luar pola harus ErrNotOccurrence, got %v", err)
	}
}

func TestSetStatusUpsertAndIdempotent(t *testing.T) {
	series := mwfSeries()
	st := newMemStore()

	in := SetStatusInput{
		SeriesID: series.LessonSeriesID, Date: date(2024, 1, 3), Status: m.SessionAttended, ActorID: actor,
	}

	res, err := ApplySetStatus(context.Background(), st, series, in)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !res.Changed || res.Session == nil {
		t.Fatalf("insert pertama harus changed, got %+v", res)
	}
	if res.Session.LessonSessionDurationMin != 90 {
		t.Fatalf("baris baru harus pakai durasi nominal, got %d", res.Session.LessonSessionDurationMin)
	}
	writesAfterFirst := st.writes

	// Ulang dengan status sama: tidak boleh ada tulisan baru.
	res, err = ApplySetStatus(context.Background(), st, series, in)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if res.Changed || st.writes != writesAfterFirst {
		t.Fatalf("set-status berulang harus no-op (changed=%v writes=%d)", res.Changed, st.writes)
	}
}

/* =========================
   Forward transfer (skenario batal/gratis berpayment)
========================= */

func TestCancelPaidMovesPaymentToGeneratedDate(t *testing.T) {
	series := mwfSeries()
	payID := uuid.New()
	st := newMemStore()
	st.seed(paidRow(series, date(2024, 1, 3), payID))

	res, err := ApplySetStatus(context.Background(), st, series, SetStatusInput{
		SeriesID: series.LessonSeriesID, Date: date(2024, 1, 3), Status: m.SessionCancelled, ActorID: actor,
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !res.Transfer.Moved || res.Transfer.TargetDate == nil {
		t.Fatalf("pembayaran harus pindah, got %+v", res.Transfer)
	}
	// Tidak ada baris persisted setelah 01-03 → slot generator pertama: 01-05.
	if !res.Transfer.TargetDate.Equal(date(2024, 1, 5)) {
		t.Fatalf("target = %s, want 2024-01-05", res.Transfer.TargetDate.Format("2006-01-02"))
	}

	holders := st.paymentHolders(payID)
	if len(holders) != 1 || !holders[0].Equal(date(2024, 1, 5)) {
		t.Fatalf("payment harus di tepat satu baris (01-05), got %v", holders)
	}

	origin, _ := st.GetByDate(context.Background(), series.LessonSeriesID, date(2024, 1, 3))
	if origin.LessonSessionStatus != m.SessionCancelled || origin.HasPayment() || origin.LessonSessionPaidMin != 0 {
		t.Fatalf("asal harus cancelled tanpa payment, got %+v", origin)
	}
	target, _ := st.GetByDate(context.Background(), series.LessonSeriesID, date(2024, 1, 5))
	if target.LessonSessionStatus != m.SessionScheduled || target.LessonSessionPaidMin != 90 {
		t.Fatalf("target harus scheduled terbayar penuh, got %+v", target)
	}
}

func TestCancelPaidPrefersPersistedDonor(t *testing.T) {
	series := mwfSeries()
	payID := uuid.New()
	st := newMemStore()
	st.seed(paidRow(series, date(2024, 1, 3), payID))
	// 01-05 sudah attended (bukan donor); 01-10 scheduled kosong (donor).
	st.seed(plainRow(series, date(2024, 1, 5), m.SessionAttended))
	st.seed(plainRow(series, date(2024, 1, 10), m.SessionScheduled))

	res, err := ApplySetStatus(context.Background(), st, series, SetStatusInput{
		SeriesID: series.LessonSeriesID, Date: date(2024, 1, 3), Status: m.SessionFree, ActorID: actor,
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !res.Transfer.Moved || !res.Transfer.TargetDate.Equal(date(2024, 1, 10)) {
		t.Fatalf("donor persisted 01-10 harus menang, got %+v", res.Transfer)
	}

	if holders := st.paymentHolders(payID); len(holders) != 1 || !holders[0].Equal(date(2024, 1, 10)) {
		t.Fatalf("konservasi payment gagal: %v", st.paymentHolders(payID))
	}
}

func TestCancelPaidAtSeriesEndReleasesWithWarning(t *testing.T) {
	series := mwfSeries()
	payID := uuid.New()
	st := newMemStore()
	// Pertemuan terakhir pola (01-12) yang terbayar.
	st.seed(paidRow(series, date(2024, 1, 12), payID))

	res, err := ApplySetStatus(context.Background(), st, series, SetStatusInput{
		SeriesID: series.LessonSeriesID, Date: date(2024, 1, 12), Status: m.SessionCancelled, ActorID: actor,
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if res.Transfer.Moved {
		t.Fatalf("series habis: tidak boleh mengarang target, got %+v", res.Transfer)
	}
	if res.Transfer.Warning == "" {
		t.Fatalf("pelepasan tanpa target harus membawa warning")
	}
	if holders := st.paymentHolders(payID); len(holders) != 0 {
		t.Fatalf("payment harus terlepas dari semua baris, got %v", holders)
	}
}

func TestCancelUnpaidDoesNotTransfer(t *testing.T) {
	series := mwfSeries()
	st := newMemStore()
	st.seed(plainRow(series, date(2024, 1, 3), m.SessionScheduled))

	res, err := ApplySetStatus(context.Background(), st, series, SetStatusInput{
		SeriesID: series.LessonSeriesID, Date: date(2024, 1, 3), Status: m.SessionCancelled, ActorID: actor,
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if res.Transfer.Moved || res.Transfer.Warning != "" {
		t.Fatalf("sesi unpaid tidak memicu transfer, got %+v", res.Transfer)
	}
}

func TestAttendPaidKeepsPayment(t *testing.T) {
	series := mwfSeries()
	payID := uuid.New()
	st := newMemStore()
	st.seed(paidRow(series, date(2024, 1, 3), payID))

	res, err := ApplySetStatus(context.Background(), st, series, SetStatusInput{
		SeriesID: series.LessonSeriesID, Date: date(2024, 1, 3), Status: m.SessionAttended, ActorID: actor,
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if res.Transfer.Moved {
		t.Fatalf("attended tidak melepaskan pembayaran")
	}
	if holders := st.paymentHolders(payID); len(holders) != 1 || !holders[0].Equal(date(2024, 1, 3)) {
		t.Fatalf("payment harus tetap di 01-03, got %v", holders)
	}
}

/* =========================
   Backward reclaim (revert cancelled → scheduled)
========================= */

func TestRevertCancelledReclaimsPayment(t *testing.T) {
	series := mwfSeries()
	payID := uuid.New()
	st := newMemStore()
	// Hasil pembatalan sebelumnya: 01-03 cancelled unpaid, payment sudah maju ke 01-05.
	st.seed(plainRow(series, date(2024, 1, 3), m.SessionCancelled))
	st.seed(paidRow(series, date(2024, 1, 5), payID))

	res, err := ApplySetStatus(context.Background(), st, series, SetStatusInput{
		SeriesID: series.LessonSeriesID, Date: date(2024, 1, 3), Status: m.SessionScheduled, ActorID: actor,
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !res.Transfer.Moved || !res.Transfer.TargetDate.Equal(date(2024, 1, 5)) {
		t.Fatalf("reclaim harus menarik dari donor 01-05, got %+v", res.Transfer)
	}

	if holders := st.paymentHolders(payID); len(holders) != 1 || !holders[0].Equal(date(2024, 1, 3)) {
		t.Fatalf("payment harus kembali ke 01-03, got %v", holders)
	}
	donor, _ := st.GetByDate(context.Background(), series.LessonSeriesID, date(2024, 1, 5))
	if donor.HasPayment() || donor.LessonSessionPaidMin != 0 || donor.LessonSessionStatus != m.SessionScheduled {
		t.Fatalf("donor harus kembali unpaid scheduled, got %+v", donor)
	}
}

func TestRevertWithoutDonorStaysUnpaid(t *testing.T) {
	series := mwfSeries()
	st := newMemStore()
	st.seed(plainRow(series, date(2024, 1, 3), m.SessionCancelled))

	res, err := ApplySetStatus(context.Background(), st, series, SetStatusInput{
		SeriesID: series.LessonSeriesID, Date: date(2024, 1, 3), Status: m.SessionScheduled, ActorID: actor,
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if res.Transfer.Moved {
		t.Fatalf("tanpa donor tidak ada reclaim, got %+v", res.Transfer)
	}
	row, _ := st.GetByDate(context.Background(), series.LessonSeriesID, date(2024, 1, 3))
	if row.LessonSessionStatus != m.SessionScheduled || row.HasPayment() {
		t.Fatalf("revert tanpa donor harus unpaid scheduled, got %+v", row)
	}
}

/* =========================
   Reschedule
========================= */

func TestReschedulePaymentFollowsLesson(t *testing.T) {
	series := mwfSeries()
	payID := uuid.New()
	st := newMemStore()
	st.seed(paidRow(series, date(2024, 1, 3), payID))

	// Target Sabtu 01-06: di luar pola → is_additional.
	res, err := ApplyReschedule(context.Background(), st, series, RescheduleInput{
		SeriesID: series.LessonSeriesID,
		FromDate: date(2024, 1, 3),
		ToDate:   date(2024, 1, 6),
		ActorID:  actor,
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	if res.Origin.LessonSessionStatus != m.SessionRescheduledOut || res.Origin.HasPayment() {
		t.Fatalf("asal harus rescheduled_out tanpa payment, got %+v", res.Origin)
	}
	if res.Target.LessonSessionStatus != m.SessionRescheduled {
		t.Fatalf("target harus rescheduled, got %+v", res.Target)
	}
	if !res.Target.LessonSessionIsAdditional {
		t.Fatalf("target luar pola harus is_additional")
	}
	if holders := st.paymentHolders(payID); len(holders) != 1 || !holders[0].Equal(date(2024, 1, 6)) {
		t.Fatalf("payment harus ikut ke target, got %v", holders)
	}
}

func TestRescheduleTargetInPatternNotAdditional(t *testing.T) {
	series := mwfSeries()
	st := newMemStore()
	st.seed(plainRow(series, date(2024, 1, 3), m.SessionScheduled))

	res, err := ApplyReschedule(context.Background(), st, series, RescheduleInput{
		SeriesID: series.LessonSeriesID,
		FromDate: date(2024, 1, 3),
		ToDate:   date(2024, 1, 10),
		ActorID:  actor,
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if res.Target.LessonSessionIsAdditional {
		t.Fatalf("target di dalam pola tidak boleh is_additional")
	}
}

func TestRescheduleConflicts(t *testing.T) {
	series := mwfSeries()
	st := newMemStore()
	st.seed(plainRow(series, date(2024, 1, 3), m.SessionScheduled))
	st.seed(plainRow(series, date(2024, 1, 5), m.SessionAttended))

	// Target sudah terpakai.
	_, err := ApplyReschedule(context.Background(), st, series, RescheduleInput{
		SeriesID: series.LessonSeriesID,
		FromDate: date(2024, 1, 3),
		ToDate:   date(2024, 1, 5),
		ActorID:  actor,
	})
	if !errors.Is(err, ErrTargetTaken) {
		t.Fatalf("target terpakai harus ErrTargetTaken, got %v", err)
	}

	// Pindah beneran, lalu coba pindahkan lagi dari asal yang sama.
	if _, err := ApplyReschedule(context.Background(), st, series, RescheduleInput{
		SeriesID: series.LessonSeriesID,
		FromDate: date(2024, 1, 3),
		ToDate:   date(2024, 1, 8),
		ActorID:  actor,
	}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	_, err = ApplyReschedule(context.Background(), st, series, RescheduleInput{
		SeriesID: series.LessonSeriesID,
		FromDate: date(2024, 1, 3),
		ToDate:   date(2024, 1, 10),
		ActorID:  actor,
	})
	if !errors.Is(err, ErrAlreadyMoved) {
		t.Fatalf("asal yang sudah pindah harus ErrAlreadyMoved, got %v", err)
	}
}

// Slot rescheduled_out juga tidak boleh dibangkitkan lewat set-status:
// baris targetnya masih ada, jadi revert ke scheduled (atau status lain)
// akan menggandakan pertemuan dan bisa menarik balik pembayaran ke slot lama.
func TestSetStatusRejectsRescheduledOut(t *testing.T) {
	series := mwfSeries()
	payID := uuid.New()
	st := newMemStore()
	st.seed(plainRow(series, date(2024, 1, 3), m.SessionRescheduledOut))
	st.seed(paidRow(series, date(2024, 1, 5), payID))

	for _, next := range []m.LessonSessionStatus{
		m.SessionScheduled, m.SessionAttended, m.SessionCancelled,
	} {
		_, err := ApplySetStatus(context.Background(), st, series, SetStatusInput{
			SeriesID: series.LessonSeriesID, Date: date(2024, 1, 3), Status: next, ActorID: actor,
		})
		if !errors.Is(err, ErrAlreadyMoved) {
			t.Fatalf("rescheduled_out → %s harus ErrAlreadyMoved, got %v", next, err)
		}
	}
	if st.writes != 0 {
		t.Fatalf("penolakan tidak boleh menulis, writes=%d", st.writes)
	}

	// Pembayaran tetap di pemegang sekarang, tidak ditarik ke slot lama.
	if got := st.paymentHolders(payID); len(got) != 1 || !got[0].Equal(date(2024, 1, 5)) {
		t.Fatalf("payment harus tetap di 2024-01-05, got %v", got)
	}
	row, _ := st.GetByDate(context.Background(), series.LessonSeriesID, date(2024, 1, 3))
	if row.LessonSessionStatus != m.SessionRescheduledOut {
		t.Fatalf("slot asal harus tetap rescheduled_out, got %s", row.LessonSessionStatus)
	}
}
