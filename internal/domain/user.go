package domain

import "time"

// User is a platform account, looked up by ID to resolve the
// counterpart display name of a transaction.
type User struct {
	ID        int64
	Name      string
	Email     string
	Phone     string
	CreatedAt time.Time
}

// Wallet holds the balances the wallet service reports for a user.
type Wallet struct {
	UserID           int64
	Balance          float64
	AvailableBalance float64
	Currency         string
}

// Reward is a single reward-points grant.
type Reward struct {
	Points int
	SentAt time.Time
}

// Notification is one entry in a user's notification feed, newest first.
type Notification struct {
	ID        int64
	Message   string
	Timestamp time.Time
}
