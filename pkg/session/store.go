// Package session holds the single source of truth for who is logged in
// and what they can do. The store is populated exactly once per
// application load and torn down on sign-out.
package session

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"learnhub_client/internal/model"
	"learnhub_client/pkg/logger"
	"learnhub_client/pkg/rbac"
	"learnhub_client/pkg/tokenstore"
)

// IdentityFetcher is the identity-fetch collaborator. Any error means the
// session is treated as anonymous.
type IdentityFetcher interface {
	CurrentUser(ctx context.Context) (*model.UserRecord, error)
}

type Store struct {
	mu      sync.RWMutex
	fetcher IdentityFetcher
	tokens  tokenstore.Store

	identity     *model.Identity
	user         *model.UserRecord
	loading      bool
	guestExpired bool

	// generation discards fetch results that land after a sign-out or
	// teardown; initialized makes Initialize one-shot.
	generation  uint64
	initialized bool
	closed      bool
}

func NewStore(fetcher IdentityFetcher, tokens tokenstore.Store) *Store {
	return &Store{
		fetcher: fetcher,
		tokens:  tokens,
		loading: true,
	}
}

// Initialize fetches the current identity once. Any fetch error clears the
// stored tokens and leaves the session anonymous; no retry, no polling.
// Calls after the first are no-ops.
func (s *Store) Initialize(ctx context.Context) {
	s.mu.Lock()
	if s.initialized || s.closed {
		s.mu.Unlock()
		return
	}
	s.initialized = true
	gen := s.generation
	s.mu.Unlock()

	user, err := s.fetcher.CurrentUser(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || s.generation != gen {
		// Signed out or torn down while the fetch was in flight.
		return
	}
	if err != nil || user == nil {
		if err != nil {
			logger.Log.Debug("identity fetch failed, treating session as anonymous", zap.Error(err))
		}
		s.clearLocked()
	} else {
		s.identity = &model.Identity{ID: user.ID, Email: user.Email}
		s.user = user
		s.guestExpired = rbac.IsGuestAccessExpired(user)
	}
	s.loading = false
}

// SignOut discards the tokens and resets the session. Idempotent.
func (s *Store) SignOut() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearLocked()
	s.loading = false
	s.generation++
}

// Close tears the store down; a fetch still in flight is discarded.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.generation++
}

func (s *Store) clearLocked() {
	s.guestExpired = false
	if err := s.tokens.Clear(); err != nil {
		logger.Log.Warn("failed to clear stored tokens", zap.Error(err))
	}
	s.identity = nil
	s.user = nil
}

func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

func (s *Store) Identity() *model.Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.identity
}

func (s *Store) User() *model.UserRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

func (s *Store) GuestExpired() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.guestExpired
}

// HasPermission delegates to rbac with the session-level guards on top:
// suspended accounts and guests whose window was already expired at load
// time always fail. The expiry flag is the one cached by Initialize, not a
// live recomputation.
func (s *Store) HasPermission(perm model.Permission) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.usableLocked() {
		return false
	}
	return rbac.HasPermission(s.user, perm)
}

// CanAccess applies the same guards, then the route-prefix table.
func (s *Store) CanAccess(routePath string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.usableLocked() {
		return false
	}
	return rbac.CanAccessRoute(s.user, routePath)
}

func (s *Store) HasRole(role model.Role) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil && s.user.Role == role
}

func (s *Store) usableLocked() bool {
	if s.user == nil || s.user.Suspended() {
		return false
	}
	if s.user.Role == model.RoleGuest && s.guestExpired {
		return false
	}
	return true
}

// Snapshot is the session state the route guard consumes.
type Snapshot struct {
	Loading      bool
	Identity     *model.Identity
	User         *model.UserRecord
	GuestExpired bool
}

func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		Loading:      s.loading,
		Identity:     s.identity,
		User:         s.user,
		GuestExpired: s.guestExpired,
	}
}
