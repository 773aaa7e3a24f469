// Package session holds the in-process session state: the authenticated
// identity and the workspace role chosen for it. State is explicit and scoped
// to the selector instance rather than ambient globals.
package session

import (
	"fmt"
	"sync"

	"github.com/packhouse/backend/internal/logger"
	"github.com/packhouse/backend/internal/model"
	"github.com/packhouse/backend/internal/service"
)

// State is the gate deciding which view is active.
type State int

const (
	// StateUnauthenticated means no identity is signed in.
	StateUnauthenticated State = iota
	// StateRoleSelection means an identity is signed in but has not chosen
	// a workspace role yet.
	StateRoleSelection
	// StateInWorkspace means the session has a chosen role.
	StateInWorkspace
)

func (s State) String() string {
	switch s {
	case StateUnauthenticated:
		return "unauthenticated"
	case StateRoleSelection:
		return "role-selection"
	case StateInWorkspace:
		return "in-workspace"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// AuthStateSource pushes auth-state changes; implemented by the identity
// service.
type AuthStateSource interface {
	Subscribe(listener service.AuthStateListener) func()
}

// Selector tracks the current session and its chosen role, driven by the
// identity provider's auth-state stream. The role is chosen once per session
// and reset when the identity signs out.
type Selector struct {
	logger      *logger.Logger
	unsubscribe func()

	mu      sync.Mutex
	state   State
	session *model.Session
	role    model.Role
}

// NewSelector creates a selector subscribed to the auth-state stream.
// Close must be called on teardown to release the subscription.
func NewSelector(source AuthStateSource, logger *logger.Logger) *Selector {
	s := &Selector{
		logger: logger,
		state:  StateUnauthenticated,
	}
	s.unsubscribe = source.Subscribe(s.onAuthStateChange)
	return s
}

func (s *Selector) onAuthStateChange(session *model.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if session == nil {
		s.logger.Debug("Session selector: signed out")
		s.state = StateUnauthenticated
		s.session = nil
		s.role = model.RoleUnset
		return
	}

	s.logger.Debug("Session selector: signed in", "user_id", session.UserID)
	s.session = session
	if s.state == StateUnauthenticated {
		s.state = StateRoleSelection
	}
}

// SelectRole fixes the workspace role for the current session.
func (s *Selector) SelectRole(role model.Role) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateUnauthenticated {
		return fmt.Errorf("cannot select role: not signed in")
	}
	if !role.Valid() {
		return fmt.Errorf("cannot select role: unknown role %q", role)
	}

	s.role = role
	s.state = StateInWorkspace
	s.logger.Info("Session selector: role selected", "role", role)

	return nil
}

// State returns the current gate state.
func (s *Selector) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Session returns the current session, nil when unauthenticated.
func (s *Selector) Session() *model.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session
}

// Role returns the chosen workspace role, RoleUnset before selection.
func (s *Selector) Role() model.Role {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.role
}

// Close releases the auth-state subscription.
func (s *Selector) Close() {
	if s.unsubscribe != nil {
		s.unsubscribe()
		s.unsubscribe = nil
	}
}
