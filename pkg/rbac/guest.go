package rbac

import (
	"time"

	"learnhub_client/internal/model"
)

// DefaultGuestAccessDuration bounds a guest account's validity when no
// duration is configured.
const DefaultGuestAccessDuration = 48 * time.Hour

// CalculateGuestAccessExpiry stamps a new guest-access window ending at
// now + duration. Non-positive durations fall back to the default.
func CalculateGuestAccessExpiry(duration time.Duration) time.Time {
	if duration <= 0 {
		duration = DefaultGuestAccessDuration
	}
	return time.Now().Add(duration)
}

// IsGuestAccessExpired reports whether a guest's access window has closed.
// Non-guest users and guests without an expiry never expire.
func IsGuestAccessExpired(user *model.UserRecord) bool {
	if user == nil || user.Role != model.RoleGuest || user.GuestAccessExpiry == nil {
		return false
	}
	return user.GuestAccessExpiry.Before(time.Now())
}

type GuestTimeRemaining struct {
	Hours   int  `json:"hours"`
	Minutes int  `json:"minutes"`
	Expired bool `json:"expired"`
}

// GetGuestTimeRemaining breaks the time left in a guest's access window
// into whole hours and minutes. Nil for anyone without a window.
func GetGuestTimeRemaining(user *model.UserRecord) *GuestTimeRemaining {
	if user == nil || user.Role != model.RoleGuest || user.GuestAccessExpiry == nil {
		return nil
	}
	ms := time.Until(*user.GuestAccessExpiry).Milliseconds()
	if ms <= 0 {
		return &GuestTimeRemaining{Expired: true}
	}
	return &GuestTimeRemaining{
		Hours:   int(ms / (60 * 60 * 1000)),
		Minutes: int(ms % (60 * 60 * 1000) / (60 * 1000)),
	}
}
