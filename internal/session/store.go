package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/t4nm4ymittal/payflow/internal/domain"
)

// State is the store's position in its lifecycle. The only transitions
// are INITIALIZING -> {AUTHENTICATED, UNAUTHENTICATED} during
// hydration, and AUTHENTICATED -> UNAUTHENTICATED on logout or token
// decode failure. Login is the sole way back to AUTHENTICATED.
type State int

const (
	StateInitializing State = iota
	StateAuthenticated
	StateUnauthenticated
)

const (
	tokenFile   = "token"
	profileFile = "user.json"
)

// ErrUnauthenticated is returned by the guard when no valid session is
// present.
var ErrUnauthenticated = errors.New("session: not authenticated")

// Store owns the bearer token and the identity derived from it. It is
// the single lifecycle controller for session state: collaborators
// receive identity from here instead of re-reading ambient storage.
type Store struct {
	mu     sync.Mutex
	dir    string
	logger *slog.Logger
	nowFn  func() time.Time

	state  State
	token  string
	claims domain.Claims
	user   *domain.User
}

// NewStore creates a session store persisting under dir. The store
// starts in StateInitializing; call Hydrate before querying it.
func NewStore(dir string, logger *slog.Logger) *Store {
	return &Store{
		dir:    dir,
		logger: logger,
		nowFn:  time.Now,
		state:  StateInitializing,
	}
}

// WithClock overrides the time provider (used primarily in tests).
func (s *Store) WithClock(nowFn func() time.Time) {
	if nowFn != nil {
		s.nowFn = nowFn
	}
}

// Hydrate loads the persisted token, resolving the initial state
// exactly once per process. Subsequent calls are no-ops, so the
// loading phase can never oscillate back.
func (s *Store) Hydrate() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateInitializing {
		return s.state
	}

	raw, err := os.ReadFile(filepath.Join(s.dir, tokenFile))
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.logger.Warn("reading persisted token failed", "error", err)
		}
		s.state = StateUnauthenticated
		return s.state
	}

	token := string(raw)
	claims, err := DecodeClaims(token)
	if err != nil {
		s.logger.Warn("persisted token is not decodable, discarding", "error", err)
		s.clearFilesLocked()
		s.state = StateUnauthenticated
		return s.state
	}
	if claims.Expired(s.nowFn()) {
		s.logger.Info("persisted token expired, discarding")
		s.clearFilesLocked()
		s.state = StateUnauthenticated
		return s.state
	}

	s.token = token
	s.claims = claims
	s.user = s.readProfileLocked()
	s.state = StateAuthenticated
	return s.state
}

// Login stores the token and caches the user profile, transitioning to
// StateAuthenticated. A token that fails structural decode is rejected
// and leaves the store unauthenticated.
func (s *Store) Login(user domain.User, token string) error {
	claims, err := DecodeClaims(token)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.dir, tokenFile), []byte(token), 0o600); err != nil {
		return fmt.Errorf("persist token: %w", err)
	}
	if blob, err := json.Marshal(user); err == nil {
		if err := os.WriteFile(filepath.Join(s.dir, profileFile), blob, 0o600); err != nil {
			s.logger.Warn("caching user profile failed", "error", err)
		}
	}

	s.token = token
	s.claims = claims
	s.user = &user
	s.state = StateAuthenticated
	return nil
}

// Logout clears the session and removes persisted state. Idempotent.
func (s *Store) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearFilesLocked()
	s.resetLocked()
}

// Invalidate drops the in-memory session after a token decode failure
// observed during a protected operation. Persisted files are removed
// as well so the next hydration does not resurrect the bad token.
func (s *Store) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearFilesLocked()
	s.resetLocked()
}

// State returns the current lifecycle state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// IsAuthenticated reports whether a decodable, non-expired-looking
// token is present.
func (s *Store) IsAuthenticated() bool {
	return s.State() == StateAuthenticated
}

// Token implements the api token source: it returns the bearer token
// when a session is active.
func (s *Store) Token() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateAuthenticated {
		return "", false
	}
	return s.token, true
}

// Claims returns the identity claims for the active session.
func (s *Store) Claims() (domain.Claims, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateAuthenticated {
		return domain.Claims{}, false
	}
	return s.claims, true
}

// UserID returns the current user's ID when authenticated.
func (s *Store) UserID() (int64, bool) {
	claims, ok := s.Claims()
	return claims.UserID, ok
}

// CachedUser returns the last-good profile blob stored at login.
func (s *Store) CachedUser() (domain.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateAuthenticated || s.user == nil {
		return domain.User{}, false
	}
	return *s.user, true
}

func (s *Store) resetLocked() {
	s.token = ""
	s.claims = domain.Claims{}
	s.user = nil
	s.state = StateUnauthenticated
}

func (s *Store) clearFilesLocked() {
	for _, name := range []string{tokenFile, profileFile} {
		if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !errors.Is(err, os.ErrNotExist) {
			s.logger.Warn("removing session file failed", "file", name, "error", err)
		}
	}
}

func (s *Store) readProfileLocked() *domain.User {
	blob, err := os.ReadFile(filepath.Join(s.dir, profileFile))
	if err != nil {
		return nil
	}
	var user domain.User
	if err := json.Unmarshal(blob, &user); err != nil {
		s.logger.Warn("cached profile is not decodable, ignoring", "error", err)
		return nil
	}
	return &user
}
