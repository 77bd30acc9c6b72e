// Package session holds the advisory console role of a visitor. Login
// performs no credential check and the role is never enforced server-side.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/Domenick1991/flightdb/internal/domain"
	"github.com/rs/zerolog"
)

var ErrInvalidRole = errors.New("invalid role")

// Storage persists one role string per session id. Presence of a value means
// the session is authenticated.
type Storage interface {
	Get(ctx context.Context, sessionID string) (string, bool, error)
	Set(ctx context.Context, sessionID, role string) error
	Delete(ctx context.Context, sessionID string) error
}

// State is a point-in-time view of a session.
type State struct {
	Authenticated bool        `json:"authenticated"`
	Role          domain.Role `json:"role"`
}

type Manager struct {
	storage Storage
	logger  zerolog.Logger
}

func NewManager(storage Storage, logger zerolog.Logger) *Manager {
	return &Manager{
		storage: storage,
		logger:  logger.With().Str("component", "session").Logger(),
	}
}

// Open restores the session id from storage. Unreadable or unknown stored
// values yield an anonymous session.
func (m *Manager) Open(ctx context.Context, id string) *Session {
	s := &Session{id: id, storage: m.storage, logger: m.logger}

	stored, ok, err := m.storage.Get(ctx, id)
	if err != nil {
		m.logger.Error().Err(err).Str("session_id", id).Msg("restore session")
		return s
	}
	if !ok {
		return s
	}
	role, err := domain.ParseRole(stored)
	if err != nil {
		m.logger.Warn().Str("session_id", id).Str("stored_role", stored).Msg("ignoring unknown stored role")
		return s
	}
	s.authenticated = true
	s.role = role
	return s
}

type Session struct {
	id      string
	storage Storage
	logger  zerolog.Logger

	mu            sync.RWMutex
	authenticated bool
	role          domain.Role
}

func (s *Session) ID() string { return s.id }

func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return State{Authenticated: s.authenticated, Role: s.role}
}

// Login assumes role without any check and persists it.
func (s *Session) Login(ctx context.Context, role domain.Role) error {
	if _, err := domain.ParseRole(string(role)); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRole, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.storage.Set(ctx, s.id, string(role)); err != nil {
		return fmt.Errorf("persist role: %w", err)
	}
	s.authenticated = true
	s.role = role
	s.logger.Info().Str("session_id", s.id).Str("role", role.String()).Msg("login")
	return nil
}

// Logout clears the in-memory state and removes the persisted role. The
// in-memory state is cleared even when the storage delete fails.
func (s *Session) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.authenticated = false
	s.role = domain.RoleNone
	if err := s.storage.Delete(ctx, s.id); err != nil {
		return fmt.Errorf("remove persisted role: %w", err)
	}
	s.logger.Info().Str("session_id", s.id).Msg("logout")
	return nil
}
