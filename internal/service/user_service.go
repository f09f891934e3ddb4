package service

import (
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"learnhub_client/internal/config"
	"learnhub_client/internal/model"
	"learnhub_client/internal/repository"
	"learnhub_client/internal/util"
	"learnhub_client/pkg/rbac"
)

type UserService struct {
	UserRepo *repository.UserRepository
	Cfg      *config.Config
}

func NewUserService(userRepo *repository.UserRepository, cfg *config.Config) *UserService {
	return &UserService{
		UserRepo: userRepo,
		Cfg:      cfg,
	}
}

func (s *UserService) List(actorID string) ([]model.UserRecord, error) {
	actor, err := s.UserRepo.FindByID(actorID)
	if err != nil {
		return nil, err
	}
	if !rbac.HasPermission(&actor.UserRecord, rbac.PermViewUsers) {
		return nil, util.ErrPermissionDenied
	}
	accounts := s.UserRepo.List()
	records := make([]model.UserRecord, 0, len(accounts))
	for _, account := range accounts {
		records = append(records, account.UserRecord)
	}
	return records, nil
}

// ChangeRole applies a role transition through the coarse policy: the
// actor must be allowed to manage the target, and transitions to or from
// admin are always refused.
func (s *UserService) ChangeRole(actorID, targetID string, newRole model.Role) (*model.UserRecord, error) {
	actor, err := s.UserRepo.FindByID(actorID)
	if err != nil {
		return nil, err
	}
	target, err := s.UserRepo.FindByID(targetID)
	if err != nil {
		return nil, err
	}

	if !rbac.CanManageUser(&actor.UserRecord, &target.UserRecord) {
		return nil, util.ErrPermissionDenied
	}
	if !rbac.IsValidRoleChange(target.Role, newRole) {
		return nil, util.ErrInvalidRoleChange
	}

	target.Role = newRole
	// A role change invalidates any custom grants from the old role.
	target.Permissions = nil
	if err := s.UserRepo.Update(target); err != nil {
		return nil, err
	}
	return &target.UserRecord, nil
}

// UpdatePermissions installs a custom permission map on a custom-grant
// role. The map replaces the role defaults entirely, so an empty map means
// no permissions at all.
func (s *UserService) UpdatePermissions(actorID, targetID string, perms map[model.Permission]bool) (*model.UserRecord, error) {
	actor, err := s.UserRepo.FindByID(actorID)
	if err != nil {
		return nil, err
	}
	target, err := s.UserRepo.FindByID(targetID)
	if err != nil {
		return nil, err
	}

	if !rbac.CanManageUser(&actor.UserRecord, &target.UserRecord) {
		return nil, util.ErrPermissionDenied
	}

	valid := false
	switch target.Role {
	case model.RoleGuest:
		valid = rbac.ValidateGuestPermissions(perms)
	case model.RolePartnerInstructor:
		valid = rbac.ValidatePartnerInstructorPermissions(perms)
	}
	if !valid {
		return nil, util.ErrInvalidPermissionMap
	}

	target.Permissions = perms
	if err := s.UserRepo.Update(target); err != nil {
		return nil, err
	}
	return &target.UserRecord, nil
}

// CreateGuest provisions a guest account with a bounded access window.
func (s *UserService) CreateGuest(actorID, email, password, institutionID string) (*model.UserRecord, error) {
	actor, err := s.UserRepo.FindByID(actorID)
	if err != nil {
		return nil, err
	}
	if !rbac.HasPermission(&actor.UserRecord, rbac.PermCreateUsers) {
		return nil, util.ErrPermissionDenied
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	expiry := rbac.CalculateGuestAccessExpiry(s.Cfg.GuestAccessDuration())
	account := &repository.Account{
		UserRecord: model.UserRecord{
			ID:                uuid.NewString(),
			Email:             email,
			Role:              model.RoleGuest,
			GuestAccessExpiry: &expiry,
			InstitutionID:     institutionID,
		},
		PasswordHash: hash,
	}
	if err := s.UserRepo.Create(account); err != nil {
		return nil, err
	}
	record := account.UserRecord
	return &record, nil
}
