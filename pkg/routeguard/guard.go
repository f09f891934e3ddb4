// Package routeguard evaluates a navigation request against session state.
// It is a pure decision function; rendering and redirecting belong to the
// view layer consuming the Decision.
package routeguard

import (
	"learnhub_client/internal/model"
	"learnhub_client/pkg/rbac"
	"learnhub_client/pkg/session"
)

type Kind int

const (
	Loading Kind = iota
	RedirectToLogin
	RedirectToExpiredNotice
	RedirectToHome
	Render
)

func (k Kind) String() string {
	switch k {
	case Loading:
		return "loading"
	case RedirectToLogin:
		return "redirect-to-login"
	case RedirectToExpiredNotice:
		return "redirect-to-expired-notice"
	case RedirectToHome:
		return "redirect-to-home"
	case Render:
		return "render"
	}
	return "unknown"
}

type Decision struct {
	Kind Kind
	// RedirectPath is set for the redirect kinds.
	RedirectPath string
	// AttemptedPath preserves where the user was headed so login can
	// optionally return there.
	AttemptedPath string
}

// Decide runs the guard checks in order. The guest-expiry check here is a
// live recomputation, deliberately independent of the store's load-time
// cache: a guest session may expire mid-visit and this surface has to see
// that. The cached flag keeps serving coarse session-level gating.
func Decide(snap session.Snapshot, attemptedPath string, requiredRoles []model.Role, requiredPerms []model.Permission) Decision {
	if snap.Loading {
		return Decision{Kind: Loading}
	}
	if snap.Identity == nil {
		return Decision{Kind: RedirectToLogin, RedirectPath: "/login", AttemptedPath: attemptedPath}
	}
	if snap.User != nil && snap.User.Role == model.RoleGuest && rbac.IsGuestAccessExpired(snap.User) {
		return Decision{Kind: RedirectToExpiredNotice, RedirectPath: "/guest/expired"}
	}
	if len(requiredRoles) > 0 && !roleAllowed(snap.User, requiredRoles) {
		return Decision{Kind: RedirectToHome, RedirectPath: rbac.GetUserHomeRoute(snap.User)}
	}
	if len(requiredPerms) > 0 && !rbac.HasAllPermissions(snap.User, requiredPerms) {
		return Decision{Kind: RedirectToHome, RedirectPath: rbac.GetUserHomeRoute(snap.User)}
	}
	return Decision{Kind: Render}
}

func roleAllowed(user *model.UserRecord, roles []model.Role) bool {
	if user == nil {
		return false
	}
	for _, r := range roles {
		if user.Role == r {
			return true
		}
	}
	return false
}
