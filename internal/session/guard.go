package session

import "github.com/t4nm4ymittal/payflow/internal/domain"

// Guard gates protected operations on an authenticated session. It is
// the command-line analogue of a protected route: instead of mounting
// a view it hands back the caller's claims, and instead of redirecting
// it returns ErrUnauthenticated for the entry point to act on.
type Guard struct {
	store *Store
}

// NewGuard wraps the store.
func NewGuard(store *Store) *Guard {
	return &Guard{store: store}
}

// Require hydrates the store if it is still initializing, then returns
// the session claims or ErrUnauthenticated. It never panics on a
// malformed token; decode failures were already downgraded to the
// unauthenticated state by the store.
func (g *Guard) Require() (domain.Claims, error) {
	if g.store.State() == StateInitializing {
		g.store.Hydrate()
	}
	claims, ok := g.store.Claims()
	if !ok {
		return domain.Claims{}, ErrUnauthenticated
	}
	return claims, nil
}
