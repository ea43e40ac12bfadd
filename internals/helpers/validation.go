// file: internals/helpers/validation.go
package helper

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

/* =======================================================
   VALIDATION (validator.v10)
   ======================================================= */

// ValidationErrorsToMap: konversi validator.ValidationErrors → map field → pesan
func ValidationErrorsToMap(err error) map[string][]string {
	out := make(map[string][]string)
	ve, ok := err.(validator.ValidationErrors)
	if !ok {
		out["body"] = []string{err.Error()}
		return out
	}
	for _, fe := range ve {
		field := strings.ToLower(fe.Field())
		out[field] = append(out[field], validationMessage(fe))
	}
	return out
}

// JsonValidationFromErr: shortcut BodyParser/Validate → 422
func JsonValidationFromErr(c *fiber.Ctx, err error) error {
	return JsonValidationError(c, ValidationErrorsToMap(err))
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "field ini wajib diisi"
	case "uuid":
		return "format UUID tidak valid"
	case "datetime":
		return "format tanggal/jam tidak valid (" + fe.Param() + ")"
	case "oneof":
		return "nilai harus salah satu dari: " + fe.Param()
	case "min":
		return "nilai minimal " + fe.Param()
	case "max":
		return "nilai maksimal " + fe.Param()
	case "gt":
		return "nilai harus lebih dari " + fe.Param()
	case "email":
		return "format email tidak valid"
	default:
		return "tidak memenuhi aturan " + fe.Tag()
	}
}
