// file: internals/helpers/pg_error.go
package helper

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

// --- PG error mapping ---

type pgSQLErr interface {
	SQLState() string
	Error() string
}

func MapPGError(err error) (int, string) {
	// 23505 = unique_violation
	// 23503 = foreign_key_violation
	// 23514 = check_violation
	// 40001 = serialization_failure, 40P01 = deadlock_detected → retryable
	var pgErr pgSQLErr
	if errors.As(err, &pgErr) {
		switch pgErr.SQLState() {
		case "23505":
			return http.StatusConflict, "Data duplikat (unique violation)."
		case "23503":
			return http.StatusBadRequest, "Referensi tidak ditemukan (FK violation)."
		case "23514":
			return http.StatusUnprocessableEntity, "Data melanggar constraint (check violation)."
		case "40001", "40P01":
			return http.StatusConflict, "Konflik tulis bersamaan — ulangi operasi dengan read terbaru."
		}
	}
	return http.StatusInternalServerError, err.Error()
}

func WritePGError(c *fiber.Ctx, err error) error {
	code, msg := MapPGError(err)
	return JsonError(c, code, msg)
}

// ParseDateParam membaca tanggal "YYYY-MM-DD" dari query/path.
// Tanggal diperlakukan sebagai civil date (anchor midnight UTC, tanpa shifting).
func ParseDateParam(s string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}
