package rbac

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"learnhub_client/internal/model"
)

func TestCalculateGuestAccessExpiry(t *testing.T) {
	before := time.Now()
	expiry := CalculateGuestAccessExpiry(2 * time.Hour)
	assert.WithinDuration(t, before.Add(2*time.Hour), expiry, time.Second)

	// Zero and negative fall back to the default window.
	expiry = CalculateGuestAccessExpiry(0)
	assert.WithinDuration(t, before.Add(DefaultGuestAccessDuration), expiry, time.Second)
	expiry = CalculateGuestAccessExpiry(-time.Hour)
	assert.WithinDuration(t, before.Add(DefaultGuestAccessDuration), expiry, time.Second)
}

func TestIsGuestAccessExpired(t *testing.T) {
	past := time.Now().Add(-time.Minute)
	future := time.Now().Add(time.Hour)

	assert.False(t, IsGuestAccessExpired(nil))
	assert.False(t, IsGuestAccessExpired(&model.UserRecord{Role: model.RoleStudent, GuestAccessExpiry: &past}))
	assert.False(t, IsGuestAccessExpired(&model.UserRecord{Role: model.RoleGuest}))
	assert.False(t, IsGuestAccessExpired(&model.UserRecord{Role: model.RoleGuest, GuestAccessExpiry: &future}))
	assert.True(t, IsGuestAccessExpired(&model.UserRecord{Role: model.RoleGuest, GuestAccessExpiry: &past}))
}

func TestGetGuestTimeRemaining(t *testing.T) {
	assert.Nil(t, GetGuestTimeRemaining(nil))
	assert.Nil(t, GetGuestTimeRemaining(&model.UserRecord{Role: model.RoleGuest}))
	assert.Nil(t, GetGuestTimeRemaining(&model.UserRecord{Role: model.RoleStudent}))

	past := time.Now().Add(-time.Second)
	got := GetGuestTimeRemaining(&model.UserRecord{Role: model.RoleGuest, GuestAccessExpiry: &past})
	require.NotNil(t, got)
	assert.True(t, got.Expired)
	assert.Zero(t, got.Hours)
	assert.Zero(t, got.Minutes)

	// 25h30m out, with slack so the assertion is stable.
	future := time.Now().Add(25*time.Hour + 30*time.Minute + 30*time.Second)
	got = GetGuestTimeRemaining(&model.UserRecord{Role: model.RoleGuest, GuestAccessExpiry: &future})
	require.NotNil(t, got)
	assert.False(t, got.Expired)
	assert.Equal(t, 25, got.Hours)
	assert.Equal(t, 30, got.Minutes)
}
