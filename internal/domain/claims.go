package domain

import "time"

// Claims is the identity extracted from the bearer token once at login
// or hydration. It is the single source of truth for the current user
// ID; collaborators must not re-decode the token themselves.
type Claims struct {
	UserID    int64
	ExpiresAt time.Time
}

// Expired reports whether the claims carry an expiry in the past.
// Tokens without an exp claim never expire from the client's point of
// view; validation here is structural only.
func (c Claims) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && c.ExpiresAt.Before(now)
}
