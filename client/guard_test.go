package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

func TestGuardVerdicts(t *testing.T) {
	cases := []struct {
		name  string
		path  string
		state SessionState
		want  Action
	}{
		{"unknown waits on login", LoginPath, StateUnknown, Action{Kind: ActionWait}},
		{"unknown waits on dashboard", "/users", StateUnknown, Action{Kind: ActionWait}},
		{"authenticated renders dashboard", "/users", StateAuthenticated, Action{Kind: ActionRender}},
		{"authenticated renders home", HomePath, StateAuthenticated, Action{Kind: ActionRender}},
		{"authenticated leaves login", LoginPath, StateAuthenticated, Action{Kind: ActionRedirect, Target: HomePath}},
		{"unauthenticated renders login", LoginPath, StateUnauthenticated, Action{Kind: ActionRender}},
		{"unauthenticated redirected from dashboard", "/plans", StateUnauthenticated, Action{Kind: ActionRedirect, Target: LoginPath}},
		{"unauthenticated redirected from home", HomePath, StateUnauthenticated, Action{Kind: ActionRedirect, Target: LoginPath}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Guard(tc.path, tc.state)
			if got != tc.want {
				t.Fatalf("Guard(%q, %v) = %+v, want %+v", tc.path, tc.state, got, tc.want)
			}
		})
	}
}

func TestGuardRedirectsSettle(t *testing.T) {
	// Following a redirect target with the same state must always land on
	// Render; anything else would loop.
	for _, state := range []SessionState{StateAuthenticated, StateUnauthenticated} {
		for _, path := range []string{HomePath, LoginPath, "/users", "/plans", "/transactions"} {
			action := Guard(path, state)
			if action.Kind != ActionRedirect {
				continue
			}
			next := Guard(action.Target, state)
			if next.Kind != ActionRender {
				t.Fatalf("redirect from %q (%v) to %q does not settle: %+v", path, state, action.Target, next)
			}
		}
	}
}

type fakeProber struct {
	calls         atomic.Int64
	authenticated bool
	err           error
}

func (f *fakeProber) CheckAuth(context.Context) (bool, error) {
	f.calls.Add(1)
	return f.authenticated, f.err
}

func TestStoreStartsUnknown(t *testing.T) {
	store := NewSessionStore(&fakeProber{})
	if store.State() != StateUnknown {
		t.Fatalf("initial state = %v, want unknown", store.State())
	}
}

func TestProbeResolvesAuthenticated(t *testing.T) {
	api := &fakeProber{authenticated: true}
	store := NewSessionStore(api)

	if got := store.Probe(context.Background()); got != StateAuthenticated {
		t.Fatalf("probe = %v, want authenticated", got)
	}
}

func TestProbeRunsOnce(t *testing.T) {
	api := &fakeProber{authenticated: true}
	store := NewSessionStore(api)

	for i := 0; i < 3; i++ {
		store.Probe(context.Background())
	}
	if got := api.calls.Load(); got != 1 {
		t.Fatalf("probe hit the server %d times, want 1", got)
	}
}

func TestProbeFailsClosedOnServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	api, err := New(srv.URL)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	store := NewSessionStore(api)

	if got := store.Probe(context.Background()); got != StateUnauthenticated {
		t.Fatalf("probe after 500 = %v, want unauthenticated", got)
	}
}

func TestProbeFailsClosedOnUnreachableServer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing listening anymore

	api, err := New(srv.URL)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	store := NewSessionStore(api)

	if got := store.Probe(context.Background()); got != StateUnauthenticated {
		t.Fatalf("probe against dead server = %v, want unauthenticated", got)
	}
}

func TestSetOverridesProbe(t *testing.T) {
	api := &fakeProber{authenticated: false}
	store := NewSessionStore(api)

	store.Set(StateAuthenticated)
	if store.State() != StateAuthenticated {
		t.Fatalf("state after Set = %v, want authenticated", store.State())
	}
	// Set resolves the store; the probe must not overwrite it.
	if got := store.Probe(context.Background()); got != StateAuthenticated {
		t.Fatalf("probe after Set = %v, want authenticated", got)
	}
	if api.calls.Load() != 0 {
		t.Fatal("probe hit the server after an explicit Set")
	}
}

func TestSetIgnoresUnknown(t *testing.T) {
	store := NewSessionStore(&fakeProber{})
	store.Set(StateAuthenticated)
	store.Set(StateUnknown)
	if store.State() != StateAuthenticated {
		t.Fatalf("state = %v, Unknown must not be settable", store.State())
	}
}
