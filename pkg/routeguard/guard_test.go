package routeguard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"learnhub_client/internal/model"
	"learnhub_client/pkg/rbac"
	"learnhub_client/pkg/session"
)

func snapshotFor(user *model.UserRecord) session.Snapshot {
	snap := session.Snapshot{User: user}
	if user != nil {
		snap.Identity = &model.Identity{ID: user.ID, Email: user.Email}
	}
	return snap
}

func TestDecideLoading(t *testing.T) {
	d := Decide(session.Snapshot{Loading: true}, "/courses", nil, nil)
	assert.Equal(t, Loading, d.Kind)
	assert.Empty(t, d.RedirectPath)
}

func TestDecideAnonymousAlwaysLogin(t *testing.T) {
	paths := []string{"/courses", "/admin", "/", "/guest/expired"}
	for _, path := range paths {
		d := Decide(session.Snapshot{}, path, nil, nil)
		assert.Equal(t, RedirectToLogin, d.Kind, "path=%s", path)
		assert.Equal(t, "/login", d.RedirectPath)
		assert.Equal(t, path, d.AttemptedPath, "attempted path preserved for post-login return")
	}
}

func TestDecideExpiredGuestBeatsEverything(t *testing.T) {
	expiry := time.Now().Add(-time.Minute)
	guest := &model.UserRecord{ID: "g1", Role: model.RoleGuest, GuestAccessExpiry: &expiry}

	// Even with no role or permission requirements the expired guest is
	// sent to the notice page.
	d := Decide(snapshotFor(guest), "/courses", nil, nil)
	assert.Equal(t, RedirectToExpiredNotice, d.Kind)
	assert.Equal(t, "/guest/expired", d.RedirectPath)

	d = Decide(snapshotFor(guest), "/guest", []model.Role{model.RoleGuest}, nil)
	assert.Equal(t, RedirectToExpiredNotice, d.Kind)
}

func TestDecideExpiryIsRecomputedLive(t *testing.T) {
	// The snapshot's cached flag says the window was open at load time, but
	// the record itself has since expired. The guard must trust the record.
	expiry := time.Now().Add(-time.Second)
	guest := &model.UserRecord{ID: "g1", Role: model.RoleGuest, GuestAccessExpiry: &expiry}
	snap := snapshotFor(guest)
	snap.GuestExpired = false

	d := Decide(snap, "/courses", nil, nil)
	assert.Equal(t, RedirectToExpiredNotice, d.Kind)
}

func TestDecideRoleMismatchGoesHomeNeverRenders(t *testing.T) {
	student := &model.UserRecord{ID: "u1", Role: model.RoleStudent}

	d := Decide(snapshotFor(student), "/admin", []model.Role{model.RoleAdmin}, nil)
	assert.Equal(t, RedirectToHome, d.Kind)
	assert.Equal(t, "/courses", d.RedirectPath)

	instructor := &model.UserRecord{ID: "u2", Role: model.RoleInstructor}
	d = Decide(snapshotFor(instructor), "/admin", []model.Role{model.RoleAdmin}, nil)
	assert.Equal(t, RedirectToHome, d.Kind)
	assert.Equal(t, "/instructor", d.RedirectPath)
}

func TestDecidePermissionMismatchGoesHome(t *testing.T) {
	student := &model.UserRecord{ID: "u1", Role: model.RoleStudent}

	d := Decide(snapshotFor(student), "/gradebook", nil, []model.Permission{rbac.PermViewGradebook})
	assert.Equal(t, RedirectToHome, d.Kind)
	assert.Equal(t, "/courses", d.RedirectPath)

	// All required permissions must hold, not just one.
	partner := &model.UserRecord{ID: "u2", Role: model.RolePartnerInstructor}
	d = Decide(snapshotFor(partner), "/reports", nil, []model.Permission{rbac.PermViewReports, rbac.PermExportReports})
	assert.Equal(t, RedirectToHome, d.Kind)
}

func TestDecideSuspendedUserGoesHomeOnPermissionGate(t *testing.T) {
	suspended := &model.UserRecord{ID: "u1", Role: model.RoleInstructor, Status: model.StatusSuspended}
	d := Decide(snapshotFor(suspended), "/reports", nil, []model.Permission{rbac.PermViewReports})
	assert.Equal(t, RedirectToHome, d.Kind)
}

func TestDecideRender(t *testing.T) {
	tests := []struct {
		name  string
		user  *model.UserRecord
		roles []model.Role
		perms []model.Permission
	}{
		{"no requirements", &model.UserRecord{ID: "u1", Role: model.RoleStudent}, nil, nil},
		{"role match", &model.UserRecord{ID: "u1", Role: model.RoleAdmin}, []model.Role{model.RoleAdmin}, nil},
		{"one of several roles", &model.UserRecord{ID: "u1", Role: model.RoleInstructor}, []model.Role{model.RoleInstructor, model.RoleAdmin}, nil},
		{"permission match", &model.UserRecord{ID: "u1", Role: model.RoleInstructor}, nil, []model.Permission{rbac.PermGradeAssessments}},
		{"role and permission", &model.UserRecord{ID: "u1", Role: model.RoleInstructor}, []model.Role{model.RoleInstructor}, []model.Permission{rbac.PermViewReports}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Decide(snapshotFor(tt.user), "/somewhere", tt.roles, tt.perms)
			assert.Equal(t, Render, d.Kind)
		})
	}
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "loading", Loading.String())
	assert.Equal(t, "redirect-to-login", RedirectToLogin.String())
	assert.Equal(t, "redirect-to-expired-notice", RedirectToExpiredNotice.String())
	assert.Equal(t, "redirect-to-home", RedirectToHome.String())
	assert.Equal(t, "render", Render.String())
	assert.Equal(t, "unknown", Kind(99).String())
}
