package model

import "time"

type Role string

const (
	RoleStudent           Role = "student"
	RoleInstructor        Role = "instructor"
	RolePartnerInstructor Role = "partner_instructor"
	RoleGuest             Role = "guest"
	RoleAdmin             Role = "admin"
)

var AllRoles = []Role{
	RoleStudent,
	RoleInstructor,
	RolePartnerInstructor,
	RoleGuest,
	RoleAdmin,
}

func (r Role) Known() bool {
	for _, known := range AllRoles {
		if r == known {
			return true
		}
	}
	return false
}

// StatusSuspended forces every permission check to fail regardless of role.
const StatusSuspended = "suspended"

type Permission string

// UserRecord is the identity record returned by the API. Permissions, when
// present, fully replaces the role's default permission set.
type UserRecord struct {
	ID                string              `json:"id"`
	Email             string              `json:"email"`
	Role              Role                `json:"role"`
	Status            string              `json:"status,omitempty"`
	Permissions       map[Permission]bool `json:"permissions,omitempty"`
	GuestAccessExpiry *time.Time          `json:"guestAccessExpiry,omitempty"`
	InstitutionID     string              `json:"institutionId,omitempty"`
}

func (u *UserRecord) Suspended() bool {
	return u != nil && u.Status == StatusSuspended
}

type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}
