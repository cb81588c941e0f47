package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims represents the JWT claims issued by the portal identity provider.
type Claims struct {
	jwt.RegisteredClaims
	UserID  uuid.UUID  `json:"user_id"`
	ClassID *uuid.UUID `json:"class_id,omitempty"`
	Roles   []string   `json:"roles"`
}

// HasRole checks if the claims include the specified role.
func (c Claims) HasRole(role string) bool {
	for _, r := range c.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the claims carry any role allowed to mutate
// billing configuration or ledger rows.
func (c Claims) IsAdmin() bool {
	return c.HasRole(RoleAdminDev) || c.HasRole(RoleAdminKelas)
}

// Role constants. admin_dev is the cohort-wide superuser; admin_kelas is
// scoped to a single class; mahasiswa is a regular student.
const (
	RoleAdminDev   = "admin_dev"
	RoleAdminKelas = "admin_kelas"
	RoleAdminDosen = "admin_dosen"
	RoleMahasiswa  = "mahasiswa"
)
