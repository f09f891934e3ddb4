package rbac

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"learnhub_client/internal/model"
)

func userWithRole(role model.Role) *model.UserRecord {
	return &model.UserRecord{ID: "u1", Email: "u1@test", Role: role}
}

func expiredGuest() *model.UserRecord {
	expiry := time.Now().Add(-time.Minute)
	return &model.UserRecord{ID: "g1", Role: model.RoleGuest, GuestAccessExpiry: &expiry}
}

func activeGuest() *model.UserRecord {
	expiry := time.Now().Add(time.Hour)
	return &model.UserRecord{ID: "g1", Role: model.RoleGuest, GuestAccessExpiry: &expiry}
}

func TestCatalogSize(t *testing.T) {
	assert.Len(t, Catalog, 35)

	seen := make(map[model.Permission]bool)
	for _, p := range Catalog {
		assert.False(t, seen[p], "duplicate permission %s", p)
		seen[p] = true
	}
}

func TestPermissionsForRole(t *testing.T) {
	assert.Len(t, PermissionsForRole(model.RoleAdmin), len(Catalog))
	assert.NotEmpty(t, PermissionsForRole(model.RoleStudent))
	assert.Empty(t, PermissionsForRole(model.Role("villain")))

	// Returned set is a copy; mutating it must not poison the table.
	set := PermissionsForRole(model.RoleGuest)
	set[PermDeleteUsers] = true
	assert.False(t, HasPermission(userWithRole(model.RoleGuest), PermDeleteUsers))
}

func TestHasPermission(t *testing.T) {
	tests := []struct {
		name string
		user *model.UserRecord
		perm model.Permission
		want bool
	}{
		{"nil user", nil, PermViewCourses, false},
		{"no role", &model.UserRecord{ID: "u1"}, PermViewCourses, false},
		{"unknown role", userWithRole("villain"), PermViewCourses, false},
		{"student default", userWithRole(model.RoleStudent), PermTakeAssessments, true},
		{"student denied", userWithRole(model.RoleStudent), PermGradeAssessments, false},
		{"instructor default", userWithRole(model.RoleInstructor), PermGradeAssessments, true},
		{"admin everything", userWithRole(model.RoleAdmin), PermManageInstitutions, true},
		{"expired guest", expiredGuest(), PermViewCourses, false},
		{"active guest", activeGuest(), PermViewCourses, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HasPermission(tt.user, tt.perm))
		})
	}
}

func TestHasPermissionSuspendedAlwaysFalse(t *testing.T) {
	for _, role := range model.AllRoles {
		user := userWithRole(role)
		user.Status = model.StatusSuspended
		for _, perm := range Catalog {
			assert.False(t, HasPermission(user, perm), "role=%s perm=%s", role, perm)
		}
	}
}

func TestHasPermissionAdminHoldsFullCatalog(t *testing.T) {
	admin := userWithRole(model.RoleAdmin)
	for _, perm := range Catalog {
		assert.True(t, HasPermission(admin, perm), "perm=%s", perm)
	}
}

func TestHasPermissionExpiredGuestDeniedEverything(t *testing.T) {
	guest := expiredGuest()
	for _, perm := range Catalog {
		assert.False(t, HasPermission(guest, perm), "perm=%s", perm)
	}
}

func TestHasPermissionCustomMapOverridesNotMerges(t *testing.T) {
	guest := activeGuest()
	guest.Permissions = map[model.Permission]bool{}

	// The guest default set is non-empty, but an empty custom map means
	// zero permissions.
	require.NotEmpty(t, PermissionsForRole(model.RoleGuest))
	for _, perm := range Catalog {
		assert.False(t, HasPermission(guest, perm), "perm=%s", perm)
	}

	guest.Permissions = map[model.Permission]bool{
		PermTakeAssessments: true,
		PermViewCourses:     false,
	}
	assert.True(t, HasPermission(guest, PermTakeAssessments))
	assert.False(t, HasPermission(guest, PermViewCourses))
	// Default guest permissions are not consulted when a custom map exists.
	assert.False(t, HasPermission(guest, PermViewDashboard))
}

func TestHasAnyAllPermissions(t *testing.T) {
	student := userWithRole(model.RoleStudent)

	assert.True(t, HasAnyPermission(student, []model.Permission{PermGradeAssessments, PermTakeAssessments}))
	assert.False(t, HasAnyPermission(student, []model.Permission{PermGradeAssessments, PermDeleteUsers}))
	assert.False(t, HasAnyPermission(student, nil))

	assert.True(t, HasAllPermissions(student, []model.Permission{PermViewCourses, PermTakeAssessments}))
	assert.False(t, HasAllPermissions(student, []model.Permission{PermViewCourses, PermGradeAssessments}))
	assert.True(t, HasAllPermissions(student, nil))
}

func TestIsValidRoleChange(t *testing.T) {
	for _, role := range model.AllRoles {
		assert.False(t, IsValidRoleChange(role, model.RoleAdmin), "to admin from %s", role)
		assert.False(t, IsValidRoleChange(model.RoleAdmin, role), "from admin to %s", role)
	}

	assert.True(t, IsValidRoleChange(model.RoleStudent, model.RoleInstructor))
	assert.True(t, IsValidRoleChange(model.RoleInstructor, model.RoleGuest))
	assert.False(t, IsValidRoleChange("villain", model.RoleStudent))
	assert.False(t, IsValidRoleChange(model.RoleStudent, "villain"))
}

func TestGetRoleHierarchy(t *testing.T) {
	assert.Len(t, GetRoleHierarchy(model.RoleAdmin), 5)
	assert.Equal(t, []model.Role{model.RoleStudent}, GetRoleHierarchy(model.RoleStudent))
	assert.Nil(t, GetRoleHierarchy("villain"))
}

func TestCanManageUser(t *testing.T) {
	admin := userWithRole(model.RoleAdmin)
	instructor := userWithRole(model.RoleInstructor)
	partner := userWithRole(model.RolePartnerInstructor)
	student := userWithRole(model.RoleStudent)

	guestA := activeGuest()
	guestA.InstitutionID = "inst-1"
	peerSameInst := userWithRole(model.RoleStudent)
	peerSameInst.InstitutionID = "inst-1"
	peerOtherInst := userWithRole(model.RoleStudent)
	peerOtherInst.InstitutionID = "inst-2"

	tests := []struct {
		name   string
		actor  *model.UserRecord
		target *model.UserRecord
		want   bool
	}{
		{"nil actor", nil, student, false},
		{"nil target", admin, nil, false},
		{"admin manages admin", admin, userWithRole(model.RoleAdmin), true},
		{"admin manages student", admin, student, true},
		{"instructor manages student", instructor, student, true},
		{"instructor manages partner", instructor, partner, true},
		{"instructor manages guest", instructor, guestA, true},
		{"instructor cannot manage instructor", instructor, userWithRole(model.RoleInstructor), false},
		{"instructor cannot manage admin", instructor, admin, false},
		{"partner manages student", partner, student, true},
		{"partner cannot manage guest", partner, guestA, false},
		{"guest manages same institution", guestA, peerSameInst, true},
		{"guest cannot manage other institution", guestA, peerOtherInst, false},
		{"student manages nobody", student, student, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanManageUser(tt.actor, tt.target))
		})
	}
}

func TestValidateCustomPermissionMaps(t *testing.T) {
	assert.False(t, ValidateGuestPermissions(nil))
	assert.True(t, ValidateGuestPermissions(map[model.Permission]bool{}))
	assert.True(t, ValidateGuestPermissions(map[model.Permission]bool{PermViewCourses: true, PermTakeAssessments: false}))
	assert.False(t, ValidateGuestPermissions(map[model.Permission]bool{PermDeleteUsers: true}))
	assert.False(t, ValidateGuestPermissions(map[model.Permission]bool{PermViewCourses: true, "made_up": true}))

	assert.False(t, ValidatePartnerInstructorPermissions(nil))
	assert.True(t, ValidatePartnerInstructorPermissions(map[model.Permission]bool{PermGradeAssessments: true, PermExportReports: true}))
	assert.False(t, ValidatePartnerInstructorPermissions(map[model.Permission]bool{PermManageInstitutions: true}))
}

func TestCanAccessRoute(t *testing.T) {
	tests := []struct {
		name string
		user *model.UserRecord
		path string
		want bool
	}{
		{"nil user", nil, "/courses", false},
		{"admin on admin", userWithRole(model.RoleAdmin), "/admin/users", true},
		{"student on admin", userWithRole(model.RoleStudent), "/admin/users", false},
		{"student on unmatched", userWithRole(model.RoleStudent), "/courses/algebra", true},
		{"partner on manage", userWithRole(model.RolePartnerInstructor), "/courses/manage/new", true},
		{"student on manage", userWithRole(model.RoleStudent), "/courses/manage/new", false},
		{"instructor on reports", userWithRole(model.RoleInstructor), "/reports/term", true},
		{"partner on reports", userWithRole(model.RolePartnerInstructor), "/reports/term", false},
		{"guest on guest", activeGuest(), "/guest/welcome", true},
		{"expired guest anywhere", expiredGuest(), "/courses", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanAccessRoute(tt.user, tt.path))
		})
	}
}

func TestCanAccessRouteFirstPrefixWins(t *testing.T) {
	// /courses/manage is listed before the open /courses fallthrough, so
	// a student is refused there but allowed on plain course pages.
	student := userWithRole(model.RoleStudent)
	assert.False(t, CanAccessRoute(student, "/courses/manage"))
	assert.True(t, CanAccessRoute(student, "/courses"))
}

func TestGetUserHomeRoute(t *testing.T) {
	tests := []struct {
		role model.Role
		want string
	}{
		{model.RoleAdmin, "/admin"},
		{model.RoleInstructor, "/instructor"},
		{model.RolePartnerInstructor, "/partner"},
		{model.RoleGuest, "/guest"},
		{model.RoleStudent, "/courses"},
		{"villain", "/login"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, GetUserHomeRoute(userWithRole(tt.role)), "role=%s", tt.role)
	}
	assert.Equal(t, "/login", GetUserHomeRoute(nil))
}
