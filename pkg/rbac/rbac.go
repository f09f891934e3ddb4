// Package rbac implements the client-side role and permission model. Every
// function is total and side-effect free: absent or malformed input yields
// the access-denying outcome, never a panic. The checks here are advisory
// UX gating; the backend remains the authority on every decision.
package rbac

import "learnhub_client/internal/model"

// PermissionsForRole returns a copy of the role's default permission set.
// Unknown roles get an empty set.
func PermissionsForRole(role model.Role) map[model.Permission]bool {
	set := make(map[model.Permission]bool, len(rolePermissions[role]))
	for _, p := range rolePermissions[role] {
		set[p] = true
	}
	return set
}

// HasPermission reports whether the user holds the permission. A custom
// permission map on the record replaces the role defaults entirely, it is
// never merged with them.
func HasPermission(user *model.UserRecord, perm model.Permission) bool {
	if user == nil || user.Role == "" {
		return false
	}
	if user.Suspended() {
		return false
	}
	if user.Role == model.RoleGuest && IsGuestAccessExpired(user) {
		return false
	}
	if user.Role == model.RoleAdmin {
		return true
	}
	if user.Permissions != nil {
		return user.Permissions[perm]
	}
	for _, p := range rolePermissions[user.Role] {
		if p == perm {
			return true
		}
	}
	return false
}

func HasAnyPermission(user *model.UserRecord, perms []model.Permission) bool {
	for _, p := range perms {
		if HasPermission(user, p) {
			return true
		}
	}
	return false
}

func HasAllPermissions(user *model.UserRecord, perms []model.Permission) bool {
	for _, p := range perms {
		if !HasPermission(user, p) {
			return false
		}
	}
	return true
}

// IsValidRoleChange reports whether a role transition may be requested
// through the regular edit flow. Promotions to admin and demotions from
// admin are always rejected; those go through a separate privileged flow.
func IsValidRoleChange(from, to model.Role) bool {
	if !from.Known() || !to.Known() {
		return false
	}
	if to == model.RoleAdmin || from == model.RoleAdmin {
		return false
	}
	return true
}

// GetRoleHierarchy lists the roles whose views the given role may also
// browse. Descriptive only, not used for enforcement.
func GetRoleHierarchy(role model.Role) []model.Role {
	switch role {
	case model.RoleAdmin:
		return []model.Role{model.RoleAdmin, model.RoleInstructor, model.RolePartnerInstructor, model.RoleStudent, model.RoleGuest}
	case model.RoleInstructor:
		return []model.Role{model.RoleInstructor, model.RolePartnerInstructor, model.RoleStudent, model.RoleGuest}
	case model.RolePartnerInstructor:
		return []model.Role{model.RolePartnerInstructor, model.RoleStudent}
	case model.RoleStudent:
		return []model.Role{model.RoleStudent}
	case model.RoleGuest:
		return []model.Role{model.RoleGuest}
	}
	return nil
}

// CanManageUser reports whether the actor may edit the target's account.
func CanManageUser(actor, target *model.UserRecord) bool {
	if actor == nil || target == nil || actor.Suspended() {
		return false
	}
	switch actor.Role {
	case model.RoleAdmin:
		return true
	case model.RoleInstructor:
		switch target.Role {
		case model.RolePartnerInstructor, model.RoleGuest, model.RoleStudent:
			return true
		}
		return false
	case model.RolePartnerInstructor:
		return target.Role == model.RoleStudent
	case model.RoleGuest:
		return actor.InstitutionID != "" && actor.InstitutionID == target.InstitutionID
	}
	return false
}

// ValidateGuestPermissions checks a custom grant map for a guest account:
// every key must come from the guest whitelist.
func ValidateGuestPermissions(perms map[model.Permission]bool) bool {
	return validateGrantMap(perms, guestGrantable)
}

// ValidatePartnerInstructorPermissions checks a custom grant map for a
// partner-instructor account against its whitelist.
func ValidatePartnerInstructorPermissions(perms map[model.Permission]bool) bool {
	return validateGrantMap(perms, partnerInstructorGrantable)
}

func validateGrantMap(perms map[model.Permission]bool, allowed map[model.Permission]bool) bool {
	if perms == nil {
		return false
	}
	for p := range perms {
		if !allowed[p] {
			return false
		}
	}
	return true
}
