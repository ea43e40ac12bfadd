// file: internals/helpers/auth/actor_context.go
package helperAuth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"bimbelku_backend/internals/constants"
)

/* =========================
   Locals keys (diisi middleware AuthJWT)
========================= */

const (
	LocUserID      = "user_id"      // string | uuid
	LocRolesGlobal = "roles_global" // []any | []string
	LocIsOwner     = "is_owner"     // bool
	LocTeacherID   = "teacher_id"   // string | uuid
)

// GetUserIDFromLocals mengambil acting user id dari token.
// Setiap mutasi sesi/pembayaran wajib membawa id ini sebagai audit.
func GetUserIDFromLocals(c *fiber.Ctx) (uuid.UUID, error) {
	v := c.Locals(LocUserID)
	switch t := v.(type) {
	case uuid.UUID:
		if t != uuid.Nil {
			return t, nil
		}
	case string:
		if id, err := uuid.Parse(strings.TrimSpace(t)); err == nil && id != uuid.Nil {
			return id, nil
		}
	}
	return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "user_id tidak ditemukan di token")
}

func rolesFromLocals(c *fiber.Ctx) []string {
	switch t := c.Locals(LocRolesGlobal).(type) {
	case []string:
		return t
	case []any:
		out := make([]string, 0, len(t))
		for _, v := range t {
			if s, ok := v.(string); ok {
				out = append(out, strings.ToLower(strings.TrimSpace(s)))
			}
		}
		return out
	case string:
		return []string{strings.ToLower(strings.TrimSpace(t))}
	}
	return nil
}

func HasRole(c *fiber.Ctx, role string) bool {
	for _, r := range rolesFromLocals(c) {
		if r == role {
			return true
		}
	}
	return false
}

func IsOwner(c *fiber.Ctx) bool {
	if v, ok := c.Locals(LocIsOwner).(bool); ok && v {
		return true
	}
	return HasRole(c, constants.RoleOwner)
}

func IsAdmin(c *fiber.Ctx) bool   { return HasRole(c, constants.RoleAdmin) }
func IsTeacher(c *fiber.Ctx) bool { return HasRole(c, constants.RoleTeacher) }

// IsStaff: boleh mengubah jadwal & status sesi
func IsStaff(c *fiber.Ctx) bool {
	return IsOwner(c) || IsAdmin(c) || IsTeacher(c)
}

// IsFinance: boleh membuat & memindahkan pembayaran
func IsFinance(c *fiber.Ctx) bool {
	return IsOwner(c) || IsAdmin(c) || HasRole(c, constants.RoleAccountant)
}
