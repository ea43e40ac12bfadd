// file: internals/features/billing/payments/service/quota_test.go
package service

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	paymentModel "bimbelku_backend/internals/features/billing/payments/model"
	seriesModel "bimbelku_backend/internals/features/lessons/series/model"
	sessModel "bimbelku_backend/internals/features/lessons/sessions/model"
)

func quotaFixture() (paymentModel.PaymentModel, seriesModel.LessonSeriesModel) {
	p := paymentModel.PaymentModel{
		PaymentID:           uuid.New(),
		PaymentLessonsCount: 4, // × 90 menit nominal = kuota 360
	}
	s := seriesModel.LessonSeriesModel{
		LessonSeriesID:          uuid.New(),
		LessonSeriesDurationMin: 90,
	}
	return p, s
}

func sessionWith(payID *uuid.UUID, paidMin int) sessModel.LessonSessionModel {
	return sessModel.LessonSessionModel{
		LessonSessionID:          uuid.New(),
		LessonSessionStatus:      sessModel.SessionScheduled,
		LessonSessionDurationMin: 90,
		LessonSessionPaidMin:     paidMin,
		LessonSessionPaymentID:   payID,
	}
}

func TestCheckQuotaWithinLimit(t *testing.T) {
	p, s := quotaFixture()
	existing := []sessModel.LessonSessionModel{
		sessionWith(&p.PaymentID, 90),
		sessionWith(&p.PaymentID, 90),
	}
	target := sessionWith(nil, 0)

	if err := CheckQuota(p, s, existing, &target, 90); err != nil {
		t.Fatalf("180+90 ≤ 360 harus lolos, got %v", err)
	}
}

func TestCheckQuotaExceeded(t *testing.T) {
	p, s := quotaFixture()
	existing := []sessModel.LessonSessionModel{
		sessionWith(&p.PaymentID, 90),
		sessionWith(&p.PaymentID, 90),
		sessionWith(&p.PaymentID, 90),
		sessionWith(&p.PaymentID, 90),
	}
	target := sessionWith(nil, 0)

	if err := CheckQuota(p, s, existing, &target, 90); !errors.Is(err, ErrQuotaExceeded) {
		t.Fatalf("360+90 > 360 harus ErrQuotaExceeded, got %v", err)
	}
	// Menit 0 pada sesi kelima tetap sah (tidak menambah pemakaian).
	if err := CheckQuota(p, s, existing, &target, 0); err != nil {
		t.Fatalf("tambahan 0 menit harus lolos, got %v", err)
	}
}

func TestCheckQuotaReattachExcludesTarget(t *testing.T) {
	p, s := quotaFixture()
	// Target sudah memegang 90 menit dari payment yang sama; re-attach dengan
	// nilai baru tidak boleh menghitung dirinya dobel.
	target := sessionWith(&p.PaymentID, 90)
	existing := []sessModel.LessonSessionModel{
		target,
		sessionWith(&p.PaymentID, 90),
		sessionWith(&p.PaymentID, 90),
		sessionWith(&p.PaymentID, 90),
	}

	if err := CheckQuota(p, s, existing, &target, 90); err != nil {
		t.Fatalf("re-attach sesi sendiri harus lolos, got %v", err)
	}
}

func TestCheckQuotaPaidMinBounds(t *testing.T) {
	p, s := quotaFixture()
	target := sessionWith(nil, 0)

	if err := CheckQuota(p, s, nil, &target, -1); !errors.Is(err, ErrPaidMinInvalid) {
		t.Fatalf("paid_min negatif harus ErrPaidMinInvalid, got %v", err)
	}
	if err := CheckQuota(p, s, nil, &target, 91); !errors.Is(err, ErrPaidMinInvalid) {
		t.Fatalf("paid_min > durasi harus ErrPaidMinInvalid, got %v", err)
	}
	if err := CheckQuota(p, s, nil, &target, 90); err != nil {
		t.Fatalf("paid_min = durasi harus sah, got %v", err)
	}
}
