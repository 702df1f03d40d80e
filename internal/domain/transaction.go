package domain

import "time"

// Status enumerates the lifecycle states a transaction can be in.
type Status string

const (
	StatusSuccess Status = "SUCCESS"
	StatusPending Status = "PENDING"
	StatusFailed  Status = "FAILED"
)

// Transaction models a money transfer between two platform users.
// Records are immutable once fetched; identity is the ID.
type Transaction struct {
	ID         int64
	SenderID   int64
	ReceiverID int64
	Amount     float64
	Status     Status
	Timestamp  time.Time
	// Message carries the backend's technical explanation on failed
	// transfers; empty on successful ones.
	Message string
}

// Sent reports whether the transaction was sent by the given user.
func (t Transaction) Sent(userID int64) bool {
	return t.SenderID == userID
}

// Counterpart returns the other party's user ID from the given user's
// point of view.
func (t Transaction) Counterpart(userID int64) int64 {
	if t.Sent(userID) {
		return t.ReceiverID
	}
	return t.SenderID
}
