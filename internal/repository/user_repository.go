package repository

import (
	"sync"

	"learnhub_client/internal/model"
	"learnhub_client/internal/util"
)

// Account pairs a wire-facing user record with its stored credential hash.
type Account struct {
	model.UserRecord
	PasswordHash []byte
}

// UserRepository is an in-memory account table seeded at startup.
type UserRepository struct {
	mu    sync.RWMutex
	users map[string]*Account
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[string]*Account)}
}

func (r *UserRepository) Create(account *Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == account.Email {
			return util.ErrEmailRegistered
		}
	}
	r.users[account.ID] = account
	return nil
}

func (r *UserRepository) FindByID(id string) (*Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	account, ok := r.users[id]
	if !ok {
		return nil, util.ErrUserNotFound
	}
	return cloneAccount(account), nil
}

func (r *UserRepository) FindByEmail(email string) (*Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, account := range r.users {
		if account.Email == email {
			return cloneAccount(account), nil
		}
	}
	return nil, util.ErrUserNotFound
}

func (r *UserRepository) List() []*Account {
	r.mu.RLock()
	defer r.mu.RUnlock()
	accounts := make([]*Account, 0, len(r.users))
	for _, account := range r.users {
		accounts = append(accounts, cloneAccount(account))
	}
	return accounts
}

func (r *UserRepository) Update(account *Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[account.ID]; !ok {
		return util.ErrUserNotFound
	}
	r.users[account.ID] = cloneAccount(account)
	return nil
}

// cloneAccount keeps callers from mutating shared state through returned
// pointers.
func cloneAccount(account *Account) *Account {
	clone := *account
	if account.Permissions != nil {
		perms := make(map[model.Permission]bool, len(account.Permissions))
		for k, v := range account.Permissions {
			perms[k] = v
		}
		clone.Permissions = perms
	}
	if account.GuestAccessExpiry != nil {
		expiry := *account.GuestAccessExpiry
		clone.GuestAccessExpiry = &expiry
	}
	return &clone
}
