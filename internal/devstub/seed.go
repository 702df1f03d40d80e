package devstub

import (
	"fmt"
	"math/rand"
	"time"
)

// SeedConfig drives the synthetic data seeding.
type SeedConfig struct {
	NumUsers        int
	NumTransactions int
	StartingBalance float64
	Seed            int64
}

// DefaultSeedConfig returns baseline settings that give the client
// something worth browsing: several pages of history spread over a few
// months.
func DefaultSeedConfig() SeedConfig {
	return SeedConfig{
		NumUsers:        8,
		NumTransactions: 120,
		StartingBalance: 25000,
		Seed:            42,
	}
}

var firstNames = []string{"Asha", "Bharat", "Chitra", "Dev", "Esha", "Farhan", "Gita", "Hari", "Isha", "Jai"}
var lastNames = []string{"Sharma", "Patel", "Reddy", "Khan", "Iyer", "Das", "Mehta", "Rao"}

// Seed populates the store with deterministic synthetic accounts and
// transaction history. Every seeded account's password is "password".
func Seed(store *Store, cfg SeedConfig) error {
	if cfg.NumUsers <= 0 {
		cfg.NumUsers = DefaultSeedConfig().NumUsers
	}
	if cfg.NumTransactions < 0 {
		cfg.NumTransactions = DefaultSeedConfig().NumTransactions
	}
	if cfg.StartingBalance <= 0 {
		cfg.StartingBalance = DefaultSeedConfig().StartingBalance
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(cfg.Seed))

	users := make([]int64, 0, cfg.NumUsers)
	for i := 0; i < cfg.NumUsers; i++ {
		name := fmt.Sprintf("%s %s", firstNames[rng.Intn(len(firstNames))], lastNames[rng.Intn(len(lastNames))])
		email := fmt.Sprintf("user%d@payflow.local", i+1)
		user, err := store.Signup(name, email, "password")
		if err != nil {
			return fmt.Errorf("seed user %d: %w", i+1, err)
		}
		if _, err := store.Credit(user.ID, "INR", cfg.StartingBalance); err != nil {
			return fmt.Errorf("seed wallet %d: %w", user.ID, err)
		}
		users = append(users, user.ID)
	}

	if len(users) < 2 {
		return nil
	}

	// Spread the history over the last six months so the monthly trend
	// panel has several buckets, and vary the timestamps so sorting is
	// meaningful. The clock is rewound per transaction and restored
	// afterwards.
	now := time.Now()
	defer store.WithClock(time.Now)
	for i := 0; i < cfg.NumTransactions; i++ {
		ts := now.Add(-time.Duration(rng.Intn(180*24)) * time.Hour)
		store.WithClock(func() time.Time { return ts })

		senderIdx := rng.Intn(len(users))
		receiverIdx := rng.Intn(len(users))
		if senderIdx == receiverIdx {
			receiverIdx = (receiverIdx + 1) % len(users)
		}

		// Mostly small payments with the occasional large transfer.
		amount := float64(10 + rng.Intn(490))
		switch rng.Intn(10) {
		case 0:
			amount = float64(2100 + rng.Intn(4000))
		case 1, 2:
			amount = float64(500 + rng.Intn(1500))
		}

		if _, err := store.Transfer(users[senderIdx], users[receiverIdx], amount); err != nil {
			return fmt.Errorf("seed transaction %d: %w", i+1, err)
		}
	}
	return nil
}
