// Package devstub implements an in-memory stand-in for the PayFlow
// platform services. It exists so the command-line client can be
// exercised end to end on a laptop without the real backend: one
// process serves the auth, user, wallet, transaction, reward and
// notification endpoints with consistent fake state.
package devstub

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/t4nm4ymittal/payflow/internal/domain"
)

// signingSecret signs the stub's tokens. The client never verifies
// signatures, so the value only needs to be stable within one process.
const signingSecret = "payflow-devstub"

const tokenTTL = 24 * time.Hour

// rewardDivisor grants one point per this many units transferred.
const rewardDivisor = 100

type account struct {
	user     domain.User
	password string
}

// Store holds the fake platform state. All access is serialized; the
// stub trades throughput for simplicity.
type Store struct {
	mu sync.Mutex

	nextUserID int64
	nextTxID   int64
	nextNoteID int64

	accounts      map[int64]*account
	byEmail       map[string]int64
	wallets       map[int64]*domain.Wallet
	transactions  []domain.Transaction
	rewards       map[int64][]domain.Reward
	notifications map[int64][]domain.Notification

	nowFn func() time.Time
}

// NewStore creates an empty platform state.
func NewStore() *Store {
	return &Store{
		nextUserID:    1,
		nextTxID:      1,
		nextNoteID:    1,
		accounts:      make(map[int64]*account),
		byEmail:       make(map[string]int64),
		wallets:       make(map[int64]*domain.Wallet),
		rewards:       make(map[int64][]domain.Reward),
		notifications: make(map[int64][]domain.Notification),
		nowFn:         time.Now,
	}
}

// WithClock overrides the time provider (used primarily in tests).
func (s *Store) WithClock(nowFn func() time.Time) {
	if nowFn != nil {
		s.nowFn = nowFn
	}
}

// Signup registers an account with an empty wallet. The email must be
// unused.
func (s *Store) Signup(name, email, password string) (domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return domain.User{}, fmt.Errorf("email and password are required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byEmail[email]; exists {
		return domain.User{}, fmt.Errorf("email %s is already registered", email)
	}

	user := domain.User{
		ID:        s.nextUserID,
		Name:      strings.TrimSpace(name),
		Email:     email,
		CreatedAt: s.nowFn(),
	}
	s.nextUserID++

	s.accounts[user.ID] = &account{user: user, password: password}
	s.byEmail[email] = user.ID
	s.wallets[user.ID] = &domain.Wallet{UserID: user.ID, Currency: "INR"}
	return user, nil
}

// Login checks the credentials and mints a signed token carrying the
// numeric userId claim the real auth service issues.
func (s *Store) Login(email, password string) (string, domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.byEmail[email]
	if !ok {
		return "", domain.User{}, fmt.Errorf("invalid credentials")
	}
	acct := s.accounts[id]
	if acct.password != password {
		return "", domain.User{}, fmt.Errorf("invalid credentials")
	}

	now := s.nowFn()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userId": acct.user.ID,
		"sub":    fmt.Sprintf("%d", acct.user.ID),
		"iat":    now.Unix(),
		"exp":    now.Add(tokenTTL).Unix(),
	})
	signed, err := token.SignedString([]byte(signingSecret))
	if err != nil {
		return "", domain.User{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, acct.user, nil
}

// User returns the profile for an ID.
func (s *Store) User(id int64) (domain.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	acct, ok := s.accounts[id]
	if !ok {
		return domain.User{}, false
	}
	return acct.user, true
}

// Users lists every profile ordered by ID.
func (s *Store) Users() []domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	users := make([]domain.User, 0, len(s.accounts))
	for _, acct := range s.accounts {
		users = append(users, acct.user)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users
}

// Wallet returns the wallet for a user.
func (s *Store) Wallet(userID int64) (domain.Wallet, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	w, ok := s.wallets[userID]
	if !ok {
		return domain.Wallet{}, false
	}
	return *w, true
}

// Credit adds funds to a user's wallet and returns the updated wallet.
func (s *Store) Credit(userID int64, currency string, amount float64) (domain.Wallet, error) {
	if amount <= 0 {
		return domain.Wallet{}, fmt.Errorf("amount must be positive")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	w, ok := s.wallets[userID]
	if !ok {
		return domain.Wallet{}, fmt.Errorf("wallet for user %d not found", userID)
	}
	if currency != "" {
		w.Currency = currency
	}
	w.Balance += amount
	w.AvailableBalance += amount
	return *w, nil
}

// Transfer moves funds between users, recording the transaction either
// way. Insufficient funds produce a FAILED record carrying the raw
// technical message the real service forwards, not an HTTP error.
func (s *Store) Transfer(senderID, receiverID int64, amount float64) (domain.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sender, ok := s.wallets[senderID]
	if !ok {
		return domain.Transaction{}, fmt.Errorf("wallet for user %d not found", senderID)
	}
	receiver, ok := s.wallets[receiverID]
	if !ok {
		return domain.Transaction{}, fmt.Errorf("wallet for user %d not found", receiverID)
	}

	tx := domain.Transaction{
		ID:         s.nextTxID,
		SenderID:   senderID,
		ReceiverID: receiverID,
		Amount:     amount,
		Timestamp:  s.nowFn(),
	}
	s.nextTxID++

	if amount <= 0 || sender.AvailableBalance < amount {
		tx.Status = domain.StatusFailed
		tx.Message = fmt.Sprintf("500 : Not enough balance in wallet %d", senderID)
		s.transactions = append(s.transactions, tx)
		return tx, nil
	}

	sender.Balance -= amount
	sender.AvailableBalance -= amount
	receiver.Balance += amount
	receiver.AvailableBalance += amount
	tx.Status = domain.StatusSuccess
	s.transactions = append(s.transactions, tx)

	if points := int(amount) / rewardDivisor; points > 0 {
		s.rewards[senderID] = append(s.rewards[senderID], domain.Reward{Points: points, SentAt: tx.Timestamp})
	}
	s.pushNotificationLocked(receiverID, fmt.Sprintf("You received %.2f from user %d", amount, senderID))
	return tx, nil
}

// TransactionsFor lists transactions the user participated in.
func (s *Store) TransactionsFor(userID int64) []domain.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Transaction, 0)
	for _, tx := range s.transactions {
		if tx.SenderID == userID || tx.ReceiverID == userID {
			out = append(out, tx)
		}
	}
	return out
}

// RewardsFor lists the reward grants for a user.
func (s *Store) RewardsFor(userID int64) []domain.Reward {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Reward(nil), s.rewards[userID]...)
}

// NotificationsFor lists a user's notifications newest first.
func (s *Store) NotificationsFor(userID int64) []domain.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Notification(nil), s.notifications[userID]...)
}

// PushNotification prepends a notification to the user's feed.
func (s *Store) PushNotification(userID int64, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pushNotificationLocked(userID, message)
}

func (s *Store) pushNotificationLocked(userID int64, message string) {
	note := domain.Notification{ID: s.nextNoteID, Message: message, Timestamp: s.nowFn()}
	s.nextNoteID++
	s.notifications[userID] = append([]domain.Notification{note}, s.notifications[userID]...)
}
