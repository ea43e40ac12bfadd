// file: internals/features/lessons/sessions/service/store.go
package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	m "bimbelku_backend/internals/features/lessons/sessions/model"
	schedService "bimbelku_backend/internals/features/lessons/schedule/service"
)

/* =========================
   Errors (dipetakan ke HTTP di controller)
========================= */

var (
	ErrSeriesNotFound  = errors.New("series tidak ditemukan")
	ErrSessionNotFound = errors.New("sesi tidak ditemukan")
	ErrInvalidStatus   = errors.New("status tidak dikenal")
	ErrSpecialStatus   = errors.New("status ini hanya lewat flow reschedule")
	ErrNotOccurrence   = errors.New("tanggal bukan pertemuan series ini")
	ErrTargetTaken     = errors.New("tanggal tujuan sudah terpakai")
	ErrAlreadyMoved    = errors.New("sesi asal sudah dipindahkan")
)

/* =========================
   SessionStore: sparse exception table keyed by (series, date)
========================= */

// SessionStore adalah kontrak ledger sesi: upsert-by-(series,date) +
// read-all-for-series. Implementasi produksi gorm (di bawah);
// test pakai fake in-memory.
type SessionStore interface {
	// ListBySeries mengembalikan semua baris persisted sebuah series,
	// terurut tanggal naik.
	ListBySeries(ctx context.Context, seriesID uuid.UUID) ([]m.LessonSessionModel, error)

	// GetByDate mengembalikan baris pada tanggal tsb, atau (nil, nil)
	// kalau pertemuan masih virtual.
	GetByDate(ctx context.Context, seriesID uuid.UUID, date time.Time) (*m.LessonSessionModel, error)

	Create(ctx context.Context, row *m.LessonSessionModel) error
	Save(ctx context.Context, row *m.LessonSessionModel) error
}

/* =========================
   Gorm implementation
========================= */

// GormSessionStore menjalankan SessionStore di atas *gorm.DB.
// Saat dipakai di dalam critical section transfer, DB harus berupa tx
// dan ForUpdate true supaya baris sesi ikut terkunci (lihat StatusService).
type GormSessionStore struct {
	DB        *gorm.DB
	ForUpdate bool
}

func (s *GormSessionStore) base(ctx context.Context) *gorm.DB {
	q := s.DB.WithContext(ctx)
	if s.ForUpdate {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return q
}

func (s *GormSessionStore) ListBySeries(ctx context.Context, seriesID uuid.UUID) ([]m.LessonSessionModel, error) {
	var rows []m.LessonSessionModel
	err := s.base(ctx).
		Where("lesson_session_series_id = ?", seriesID).
		Order("lesson_session_date ASC").
		Find(&rows).Error
	return rows, err
}

func (s *GormSessionStore) GetByDate(ctx context.Context, seriesID uuid.UUID, date time.Time) (*m.LessonSessionModel, error) {
	var row m.LessonSessionModel
	err := s.base(ctx).
		Where("lesson_session_series_id = ? AND lesson_session_date = ?", seriesID, schedService.DateOnly(date)).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (s *GormSessionStore) Create(ctx context.Context, row *m.LessonSessionModel) error {
	row.LessonSessionDate = schedService.DateOnly(row.LessonSessionDate)
	return s.DB.WithContext(ctx).Create(row).Error
}

func (s *GormSessionStore) Save(ctx context.Context, row *m.LessonSessionModel) error {
	return s.DB.WithContext(ctx).Save(row).Error
}
