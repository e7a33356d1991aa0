// Package session holds the client-side authentication state: the bearer
// token and the cached user profile, mirrored to persistent storage.
//
// The session is either anonymous (no token, no profile) or authenticated
// (both present). Login is the only way in; Logout and Expire are the only
// ways out.
package session

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/labmall/storefront/internal/domain"
)

// State is a copy of the session at one point in time.
type State struct {
	Token string       `json:"token,omitempty"`
	User  *domain.User `json:"userInfo,omitempty"`
}

// Authenticated reports whether both halves of the session are present.
func (s State) Authenticated() bool {
	return s.Token != "" && s.User != nil
}

// Empty reports whether neither half is present.
func (s State) Empty() bool {
	return s.Token == "" && s.User == nil
}

func (s State) clone() State {
	out := State{Token: s.Token}
	if s.User != nil {
		u := *s.User
		out.User = &u
	}
	return out
}

// Storage persists the session across restarts.
type Storage interface {
	Load(ctx context.Context) (State, error)
	Save(ctx context.Context, st State) error
	Clear(ctx context.Context) error
}

// Store is the single owner of session state. It is safe for concurrent use;
// readers never block each other.
type Store struct {
	mu        sync.RWMutex
	storage   Storage
	state     State
	listeners []func(State)
}

func NewStore(storage Storage) *Store {
	if storage == nil {
		storage = NewMemoryStorage()
	}
	return &Store{storage: storage}
}

// Restore reads the persisted session. A half-present session (token without
// profile or the reverse) is treated as anonymous and wiped from storage.
func (s *Store) Restore(ctx context.Context) error {
	st, err := s.storage.Load(ctx)
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}

	if !st.Authenticated() {
		if !st.Empty() {
			if err := s.storage.Clear(ctx); err != nil {
				return fmt.Errorf("clear incomplete session: %w", err)
			}
		}
		st = State{}
	}

	s.mu.Lock()
	s.state = st
	s.mu.Unlock()
	s.notify(st)
	return nil
}

// Login moves the session to AUTHENTICATED. Storage is written first; on a
// storage error the in-memory state is left unchanged.
func (s *Store) Login(ctx context.Context, token string, user *domain.User) error {
	token = strings.TrimSpace(token)
	if token == "" || user == nil {
		return domain.ErrIncompleteSession
	}

	st := State{Token: token, User: user}.clone()
	if err := s.storage.Save(ctx, st); err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	s.mu.Lock()
	s.state = st
	s.mu.Unlock()
	s.notify(st)
	return nil
}

// UpdateUser replaces the cached profile of an authenticated session.
func (s *Store) UpdateUser(ctx context.Context, user *domain.User) error {
	if user == nil {
		return domain.ErrIncompleteSession
	}

	s.mu.Lock()
	if !s.state.Authenticated() {
		s.mu.Unlock()
		return domain.ErrNotAuthenticated
	}
	st := State{Token: s.state.Token, User: user}.clone()
	if err := s.storage.Save(ctx, st); err != nil {
		s.mu.Unlock()
		return fmt.Errorf("save session: %w", err)
	}
	s.state = st
	s.mu.Unlock()

	s.notify(st)
	return nil
}

// Logout is the explicit user-initiated transition to ANONYMOUS.
func (s *Store) Logout(ctx context.Context) error {
	return s.clear(ctx)
}

// Expire is the transition taken when the backend rejects the token.
func (s *Store) Expire(ctx context.Context) error {
	return s.clear(ctx)
}

func (s *Store) clear(ctx context.Context) error {
	s.mu.Lock()
	if s.state.Empty() {
		s.mu.Unlock()
		return nil
	}
	// Memory is cleared even if storage fails: a rejected token must not be
	// sent again by this process.
	s.state = State{}
	s.mu.Unlock()

	err := s.storage.Clear(ctx)
	s.notify(State{})
	if err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// Token returns the bearer token, or "" when anonymous.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Token
}

// User returns a copy of the cached profile, or nil when anonymous.
func (s *Store) User() *domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.clone().User
}

func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Authenticated()
}

func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.clone()
}

// OnChange registers fn to be called after every transition.
func (s *Store) OnChange(fn func(State)) {
	s.mu.Lock()
	s.listeners = append(s.listeners, fn)
	s.mu.Unlock()
}

func (s *Store) notify(st State) {
	s.mu.RLock()
	listeners := slices.Clone(s.listeners)
	s.mu.RUnlock()
	for _, fn := range listeners {
		fn(st.clone())
	}
}
