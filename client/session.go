package client

import (
	"context"
	"sync"
)

// SessionState is the dashboard's view of its own authentication.
type SessionState int

const (
	// StateUnknown is the only valid initial state: nothing may render or
	// redirect until the server has been asked.
	StateUnknown SessionState = iota
	StateAuthenticated
	StateUnauthenticated
)

func (s SessionState) String() string {
	switch s {
	case StateAuthenticated:
		return "authenticated"
	case StateUnauthenticated:
		return "unauthenticated"
	default:
		return "unknown"
	}
}

// ActionKind tells the caller what to do with the current route.
type ActionKind int

const (
	// ActionWait means the session state is not yet known; show nothing.
	ActionWait ActionKind = iota
	// ActionRender means the requested path may be shown as-is.
	ActionRender
	// ActionRedirect means navigate to Target, replacing the current
	// history entry so back-navigation cannot bounce between guards.
	ActionRedirect
)

// Action is the guard's verdict for one path + state pair.
type Action struct {
	Kind   ActionKind
	Target string
}

const (
	// LoginPath is the only route an unauthenticated session may see.
	LoginPath = "/login"
	// HomePath is where an already-authenticated session lands when it
	// tries to visit the login screen.
	HomePath = "/"
)

// Guard decides what to do with a route given the current session state.
// It is pure: same inputs, same verdict, no I/O.
func Guard(currentPath string, state SessionState) Action {
	switch state {
	case StateAuthenticated:
		if currentPath == LoginPath {
			return Action{Kind: ActionRedirect, Target: HomePath}
		}
		return Action{Kind: ActionRender}
	case StateUnauthenticated:
		if currentPath != LoginPath {
			return Action{Kind: ActionRedirect, Target: LoginPath}
		}
		return Action{Kind: ActionRender}
	default:
		return Action{Kind: ActionWait}
	}
}

// prober asks the server whether the ambient session credential is live.
type prober interface {
	CheckAuth(ctx context.Context) (bool, error)
}

// SessionStore holds the session state for one dashboard instance. The
// server probe runs at most once per store; login/logout override the
// state explicitly through Set.
type SessionStore struct {
	mu     sync.Mutex
	state  SessionState
	probed bool
	api    prober
}

// NewSessionStore builds a store in the Unknown state.
func NewSessionStore(api prober) *SessionStore {
	return &SessionStore{state: StateUnknown, api: api}
}

// State returns the current session state.
func (s *SessionStore) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Probe resolves Unknown by asking the server once. Any transport error or
// unexpected answer resolves to Unauthenticated: an unreachable server must
// never leave a session looking signed-in. Repeat calls return the already
// resolved state without another request.
func (s *SessionStore) Probe(ctx context.Context) SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.probed {
		return s.state
	}
	s.probed = true

	authenticated, err := s.api.CheckAuth(ctx)
	if err != nil || !authenticated {
		s.state = StateUnauthenticated
	} else {
		s.state = StateAuthenticated
	}
	return s.state
}

// Set overrides the state after an explicit login or logout. Unknown is not
// a settable state; it exists only before the first resolution.
func (s *SessionStore) Set(state SessionState) {
	if state == StateUnknown {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.probed = true
	s.state = state
}
