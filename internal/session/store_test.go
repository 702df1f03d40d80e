package session

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/t4nm4ymittal/payflow/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	dir := t.TempDir()
	return NewStore(dir, testLogger()), dir
}

func TestStoreHydrateEmptyDir(t *testing.T) {
	store, _ := newTestStore(t)

	if got := store.State(); got != StateInitializing {
		t.Fatalf("expected StateInitializing before hydration, got %v", got)
	}
	if got := store.Hydrate(); got != StateUnauthenticated {
		t.Fatalf("expected StateUnauthenticated, got %v", got)
	}
	if _, ok := store.Token(); ok {
		t.Errorf("expected no token from an unauthenticated store")
	}
}

func TestStoreLoginPersistsAndRestores(t *testing.T) {
	store, dir := newTestStore(t)
	store.Hydrate()

	token := makeToken(t, map[string]any{"userId": 7})
	user := domain.User{ID: 7, Name: "Asha", Email: "asha@example.com"}
	if err := store.Login(user, token); err != nil {
		t.Fatalf("expected login to succeed, got %v", err)
	}

	if !store.IsAuthenticated() {
		t.Fatalf("expected authenticated state after login")
	}
	if got, ok := store.Token(); !ok || got != token {
		t.Errorf("expected token %q, got %q (ok=%v)", token, got, ok)
	}
	if id, ok := store.UserID(); !ok || id != 7 {
		t.Errorf("expected user ID 7, got %d (ok=%v)", id, ok)
	}
	if cached, ok := store.CachedUser(); !ok || cached.Name != "Asha" {
		t.Errorf("expected cached profile, got %+v (ok=%v)", cached, ok)
	}
	if _, err := os.Stat(filepath.Join(dir, "token")); err != nil {
		t.Errorf("expected token file on disk: %v", err)
	}

	// A fresh store over the same directory restores the session.
	restored := NewStore(dir, testLogger())
	if got := restored.Hydrate(); got != StateAuthenticated {
		t.Fatalf("expected restored store to be authenticated, got %v", got)
	}
	if cached, ok := restored.CachedUser(); !ok || cached.Email != "asha@example.com" {
		t.Errorf("expected restored profile, got %+v (ok=%v)", cached, ok)
	}
}

func TestStoreLoginRejectsUndecodableToken(t *testing.T) {
	store, _ := newTestStore(t)
	store.Hydrate()

	err := store.Login(domain.User{ID: 1}, "garbage")
	if !errors.Is(err, ErrMalformedToken) {
		t.Fatalf("expected ErrMalformedToken, got %v", err)
	}
	if store.IsAuthenticated() {
		t.Errorf("expected store to stay unauthenticated after a rejected login")
	}
}

func TestStoreHydrateDiscardsMalformedToken(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "token"), []byte("not-a-token"), 0o600); err != nil {
		t.Fatalf("seed token file: %v", err)
	}

	store := NewStore(dir, testLogger())
	if got := store.Hydrate(); got != StateUnauthenticated {
		t.Fatalf("expected StateUnauthenticated for malformed token, got %v", got)
	}
	if _, err := os.Stat(filepath.Join(dir, "token")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected malformed token file to be removed, stat err = %v", err)
	}
}

func TestStoreHydrateDiscardsExpiredToken(t *testing.T) {
	dir := t.TempDir()
	exp := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	token := makeToken(t, map[string]any{"userId": 7, "exp": exp.Unix()})
	if err := os.WriteFile(filepath.Join(dir, "token"), []byte(token), 0o600); err != nil {
		t.Fatalf("seed token file: %v", err)
	}

	store := NewStore(dir, testLogger())
	store.WithClock(func() time.Time { return exp.Add(time.Hour) })
	if got := store.Hydrate(); got != StateUnauthenticated {
		t.Fatalf("expected expired token to hydrate unauthenticated, got %v", got)
	}
}

func TestStoreHydrateRunsOnce(t *testing.T) {
	store, dir := newTestStore(t)
	if got := store.Hydrate(); got != StateUnauthenticated {
		t.Fatalf("expected StateUnauthenticated, got %v", got)
	}

	// A token written after the first hydration must not be picked up.
	token := makeToken(t, map[string]any{"userId": 9})
	if err := os.WriteFile(filepath.Join(dir, "token"), []byte(token), 0o600); err != nil {
		t.Fatalf("seed token file: %v", err)
	}
	if got := store.Hydrate(); got != StateUnauthenticated {
		t.Fatalf("expected repeat hydration to keep its state, got %v", got)
	}
}

func TestStoreLogoutClearsEverything(t *testing.T) {
	store, dir := newTestStore(t)
	store.Hydrate()
	token := makeToken(t, map[string]any{"userId": 7})
	if err := store.Login(domain.User{ID: 7}, token); err != nil {
		t.Fatalf("login: %v", err)
	}

	store.Logout()

	if store.IsAuthenticated() {
		t.Errorf("expected unauthenticated state after logout")
	}
	if _, ok := store.Claims(); ok {
		t.Errorf("expected no claims after logout")
	}
	if _, err := os.Stat(filepath.Join(dir, "token")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected token file removed, stat err = %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "user.json")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected profile file removed, stat err = %v", err)
	}

	// Logout again is a no-op.
	store.Logout()
}

func TestGuardRequire(t *testing.T) {
	store, _ := newTestStore(t)
	guard := NewGuard(store)

	// Require hydrates lazily and reports the missing session.
	if _, err := guard.Require(); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}

	token := makeToken(t, map[string]any{"userId": 21})
	if err := store.Login(domain.User{ID: 21}, token); err != nil {
		t.Fatalf("login: %v", err)
	}

	claims, err := guard.Require()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if claims.UserID != 21 {
		t.Errorf("expected user ID 21, got %d", claims.UserID)
	}
}
