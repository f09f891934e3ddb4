package util

import "errors"

var (
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrUserNotFound         = errors.New("user not found")
	ErrEmailRegistered      = errors.New("this email is already registered")
	ErrPermissionDenied     = errors.New("permission denied")
	ErrModuleNotFound       = errors.New("module not found")
	ErrQuizNotFound         = errors.New("no quiz for this module")
	ErrAttemptNotFound      = errors.New("attempt not found")
	ErrAttemptExpired       = errors.New("attempt time limit exceeded")
	ErrAttemptSubmitted     = errors.New("attempt already submitted")
	ErrInvalidRoleChange    = errors.New("role change not allowed")
	ErrInvalidPermissionMap = errors.New("custom permission map rejected")
	ErrScenarioNotFound     = errors.New("simulation scenario not found")
	ErrSessionNotFound      = errors.New("simulation session not found")
	ErrSessionCompleted     = errors.New("simulation session already completed")
)
