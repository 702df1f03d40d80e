// Package dashboard assembles the overview screen from the remote
// services. The user profile is required; wallet, rewards and
// notifications are nice-to-have reads that degrade to empty values
// when their service is down.
package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/t4nm4ymittal/payflow/internal/domain"
)

// recentLimit caps how many transactions the overview shows.
const recentLimit = 5

// UserFetcher resolves a user profile.
type UserFetcher interface {
	Get(ctx context.Context, id int64) (domain.User, error)
}

// WalletFetcher resolves a user's wallet.
type WalletFetcher interface {
	Get(ctx context.Context, userID int64) (domain.Wallet, error)
}

// TransactionFetcher lists a user's transactions.
type TransactionFetcher interface {
	ListByUser(ctx context.Context, userID int64) ([]domain.Transaction, error)
}

// RewardFetcher lists a user's rewards.
type RewardFetcher interface {
	ListByUser(ctx context.Context, userID int64) ([]domain.Reward, error)
}

// NotificationFetcher lists a user's notifications.
type NotificationFetcher interface {
	ListByUser(ctx context.Context, userID int64) ([]domain.Notification, error)
}

// Overview is one snapshot of the dashboard.
type Overview struct {
	User             domain.User
	Balance          float64
	Recent           []domain.Transaction
	TransactionCount int
	RewardCount      int
	Notifications    []domain.Notification
}

// Service fans out to the remote services for overview snapshots.
type Service struct {
	users   UserFetcher
	wallets WalletFetcher
	txs     TransactionFetcher
	rewards RewardFetcher
	notifs  NotificationFetcher
	logger  *slog.Logger
}

// NewService wires the fetchers.
func NewService(users UserFetcher, wallets WalletFetcher, txs TransactionFetcher, rewards RewardFetcher, notifs NotificationFetcher, logger *slog.Logger) *Service {
	return &Service{
		users:   users,
		wallets: wallets,
		txs:     txs,
		rewards: rewards,
		notifs:  notifs,
		logger:  logger,
	}
}

// Fetch builds an overview snapshot for the user. The profile fetch is
// fatal; every other read logs and falls back to its zero value so one
// degraded service does not take the whole screen down. The reads run
// concurrently and each result lands in its own field, replaced
// wholesale.
func (s *Service) Fetch(ctx context.Context, userID int64) (Overview, error) {
	user, err := s.users.Get(ctx, userID)
	if err != nil {
		return Overview{}, fmt.Errorf("fetch user %d: %w", userID, err)
	}

	ov := Overview{User: user}

	var wg sync.WaitGroup
	wg.Add(4)

	go func() {
		defer wg.Done()
		wallet, err := s.wallets.Get(ctx, userID)
		if err != nil {
			s.logger.Warn("wallet service unavailable", "error", err)
			return
		}
		ov.Balance = wallet.AvailableBalance
	}()

	go func() {
		defer wg.Done()
		txs, err := s.txs.ListByUser(ctx, userID)
		if err != nil {
			s.logger.Warn("transaction service unavailable", "error", err)
			return
		}
		ov.TransactionCount = len(txs)
		ov.Recent = newestFirst(txs, recentLimit)
	}()

	go func() {
		defer wg.Done()
		rewards, err := s.rewards.ListByUser(ctx, userID)
		if err != nil {
			s.logger.Warn("reward service unavailable", "error", err)
			return
		}
		ov.RewardCount = len(rewards)
	}()

	go func() {
		defer wg.Done()
		notifs, err := s.notifs.ListByUser(ctx, userID)
		if err != nil {
			s.logger.Warn("notification service unavailable", "error", err)
			return
		}
		ov.Notifications = notifs
	}()

	wg.Wait()
	return ov, nil
}

// newestFirst returns up to limit transactions ordered newest first,
// without touching the input slice.
func newestFirst(txs []domain.Transaction, limit int) []domain.Transaction {
	out := make([]domain.Transaction, len(txs))
	copy(out, txs)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
