package service

import (
	"golang.org/x/crypto/bcrypt"

	"learnhub_client/internal/config"
	"learnhub_client/internal/model"
	"learnhub_client/internal/repository"
	"learnhub_client/internal/util"
)

type AuthService struct {
	UserRepo *repository.UserRepository
	Cfg      *config.Config
}

func NewAuthService(userRepo *repository.UserRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		UserRepo: userRepo,
		Cfg:      cfg,
	}
}

func (s *AuthService) Login(email, password string) (string, error) {
	account, err := s.UserRepo.FindByEmail(email)
	if err != nil {
		return "", util.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword(account.PasswordHash, []byte(password)); err != nil {
		return "", util.ErrInvalidCredentials
	}

	return util.GenerateJWT(&account.UserRecord, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
}

// CurrentUser resolves the token claims back to the full record. The
// client recomputes all derived access state from this response.
func (s *AuthService) CurrentUser(claims *util.Claims) (*model.UserRecord, error) {
	if claims == nil {
		return nil, util.ErrUserNotFound
	}
	account, err := s.UserRepo.FindByID(claims.UserID)
	if err != nil {
		return nil, err
	}
	record := account.UserRecord
	return &record, nil
}
