package domain

import "testing"

func TestTransactionDirection(t *testing.T) {
	tx := Transaction{ID: 1, SenderID: 7, ReceiverID: 9}

	if !tx.Sent(7) {
		t.Errorf("expected transaction to count as sent for the sender")
	}
	if tx.Sent(9) {
		t.Errorf("expected transaction to count as received for the receiver")
	}
	if got := tx.Counterpart(7); got != 9 {
		t.Errorf("expected counterpart 9 for the sender, got %d", got)
	}
	if got := tx.Counterpart(9); got != 7 {
		t.Errorf("expected counterpart 7 for the receiver, got %d", got)
	}
}
