package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"learnhub_client/internal/config"
	"learnhub_client/internal/model"
	"learnhub_client/internal/repository"
	"learnhub_client/internal/util"
	"learnhub_client/pkg/rbac"
)

func seedUserRepo(t *testing.T) *repository.UserRepository {
	t.Helper()
	repo := repository.NewUserRepository()
	expiry := time.Now().Add(24 * time.Hour)
	accounts := []*repository.Account{
		{UserRecord: model.UserRecord{ID: "admin-1", Email: "admin@test", Role: model.RoleAdmin}},
		{UserRecord: model.UserRecord{ID: "instructor-1", Email: "inst@test", Role: model.RoleInstructor, InstitutionID: "inst-1"}},
		{UserRecord: model.UserRecord{ID: "partner-1", Email: "partner@test", Role: model.RolePartnerInstructor, InstitutionID: "inst-2"}},
		{UserRecord: model.UserRecord{ID: "student-1", Email: "student@test", Role: model.RoleStudent, InstitutionID: "inst-1"}},
		{UserRecord: model.UserRecord{ID: "guest-1", Email: "guest@test", Role: model.RoleGuest, GuestAccessExpiry: &expiry, InstitutionID: "inst-1"}},
	}
	for _, account := range accounts {
		require.NoError(t, repo.Create(account))
	}
	return repo
}

func newUserService(t *testing.T) *UserService {
	t.Helper()
	return NewUserService(seedUserRepo(t), &config.Config{})
}

func TestListRequiresViewUsers(t *testing.T) {
	svc := newUserService(t)

	records, err := svc.List("instructor-1")
	require.NoError(t, err)
	assert.Len(t, records, 5)

	_, err = svc.List("student-1")
	assert.ErrorIs(t, err, util.ErrPermissionDenied)

	_, err = svc.List("missing")
	assert.ErrorIs(t, err, util.ErrUserNotFound)
}

func TestChangeRole(t *testing.T) {
	svc := newUserService(t)

	updated, err := svc.ChangeRole("instructor-1", "student-1", model.RolePartnerInstructor)
	require.NoError(t, err)
	assert.Equal(t, model.RolePartnerInstructor, updated.Role)
}

func TestChangeRoleClearsCustomGrants(t *testing.T) {
	repo := seedUserRepo(t)
	svc := NewUserService(repo, &config.Config{})

	guest, err := repo.FindByID("guest-1")
	require.NoError(t, err)
	guest.Permissions = map[model.Permission]bool{rbac.PermViewCourses: true}
	require.NoError(t, repo.Update(guest))

	updated, err := svc.ChangeRole("instructor-1", "guest-1", model.RoleStudent)
	require.NoError(t, err)
	assert.Equal(t, model.RoleStudent, updated.Role)
	assert.Nil(t, updated.Permissions, "grants from the old role must not survive")
}

func TestChangeRoleRejectsAdminTransitions(t *testing.T) {
	svc := newUserService(t)

	_, err := svc.ChangeRole("admin-1", "student-1", model.RoleAdmin)
	assert.ErrorIs(t, err, util.ErrInvalidRoleChange)

	_, err = svc.ChangeRole("admin-1", "admin-1", model.RoleStudent)
	assert.ErrorIs(t, err, util.ErrInvalidRoleChange)
}

func TestChangeRoleRequiresManagementRights(t *testing.T) {
	svc := newUserService(t)

	// A student cannot manage anyone.
	_, err := svc.ChangeRole("student-1", "guest-1", model.RoleStudent)
	assert.ErrorIs(t, err, util.ErrPermissionDenied)

	// A partner instructor cannot manage an instructor.
	_, err = svc.ChangeRole("partner-1", "instructor-1", model.RoleStudent)
	assert.ErrorIs(t, err, util.ErrPermissionDenied)
}

func TestUpdatePermissions(t *testing.T) {
	svc := newUserService(t)

	updated, err := svc.UpdatePermissions("instructor-1", "guest-1", map[model.Permission]bool{
		rbac.PermViewCourses:     true,
		rbac.PermTakeAssessments: true,
	})
	require.NoError(t, err)
	assert.True(t, updated.Permissions[rbac.PermTakeAssessments])

	// The installed map replaces the defaults entirely.
	assert.False(t, rbac.HasPermission(updated, rbac.PermViewDashboard))
}

func TestUpdatePermissionsEmptyMapMeansNoPermissions(t *testing.T) {
	svc := newUserService(t)

	updated, err := svc.UpdatePermissions("instructor-1", "guest-1", map[model.Permission]bool{})
	require.NoError(t, err)
	for _, perm := range rbac.Catalog {
		assert.False(t, rbac.HasPermission(updated, perm), "perm=%s", perm)
	}
}

func TestUpdatePermissionsRejectsOffWhitelistGrants(t *testing.T) {
	svc := newUserService(t)

	_, err := svc.UpdatePermissions("instructor-1", "guest-1", map[model.Permission]bool{
		rbac.PermDeleteUsers: true,
	})
	assert.ErrorIs(t, err, util.ErrInvalidPermissionMap)
}

func TestUpdatePermissionsOnlyCustomGrantRoles(t *testing.T) {
	svc := newUserService(t)

	// Students and instructors carry role defaults only.
	_, err := svc.UpdatePermissions("admin-1", "student-1", map[model.Permission]bool{})
	assert.ErrorIs(t, err, util.ErrInvalidPermissionMap)
	_, err = svc.UpdatePermissions("admin-1", "instructor-1", map[model.Permission]bool{})
	assert.ErrorIs(t, err, util.ErrInvalidPermissionMap)

	_, err = svc.UpdatePermissions("admin-1", "partner-1", map[model.Permission]bool{rbac.PermGradeAssessments: true})
	assert.NoError(t, err)
}

func TestCreateGuest(t *testing.T) {
	repo := seedUserRepo(t)
	cfg := &config.Config{}
	cfg.Guest.AccessHours = 24
	svc := NewUserService(repo, cfg)

	guest, err := svc.CreateGuest("instructor-1", "new-guest@test", "passw0rd", "inst-1")
	require.NoError(t, err)
	assert.Equal(t, model.RoleGuest, guest.Role)
	assert.Equal(t, "inst-1", guest.InstitutionID)
	require.NotNil(t, guest.GuestAccessExpiry)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), *guest.GuestAccessExpiry, time.Minute)

	stored, err := repo.FindByEmail("new-guest@test")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword(stored.PasswordHash, []byte("passw0rd")))
}

func TestCreateGuestRequiresCreateUsers(t *testing.T) {
	svc := newUserService(t)

	_, err := svc.CreateGuest("student-1", "g@test", "passw0rd", "inst-1")
	assert.ErrorIs(t, err, util.ErrPermissionDenied)
}

func TestCreateGuestDuplicateEmail(t *testing.T) {
	svc := newUserService(t)

	_, err := svc.CreateGuest("instructor-1", "student@test", "passw0rd", "inst-1")
	assert.ErrorIs(t, err, util.ErrEmailRegistered)
}
