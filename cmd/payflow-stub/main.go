// Command payflow-stub runs an in-memory stand-in for the PayFlow
// platform services on a single port. Point every PAYFLOW_*_URL at it
// to use the client without the real backend:
//
//	payflow-stub -addr :8080 -seed 42
//	PAYFLOW_USER_URL=http://localhost:8080 ... payflow login
//
// Seeded accounts are user1@payflow.local through userN@payflow.local,
// all with password "password".
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/t4nm4ymittal/payflow/internal/config"
	"github.com/t4nm4ymittal/payflow/internal/devstub"
	"github.com/t4nm4ymittal/payflow/internal/logging"
)

func main() {
	seedCfg := devstub.DefaultSeedConfig()
	var (
		addr         = flag.String("addr", ":8080", "listen address")
		users        = flag.Int("users", seedCfg.NumUsers, "number of accounts to seed")
		transactions = flag.Int("transactions", seedCfg.NumTransactions, "number of transactions to seed")
		balance      = flag.Float64("balance", seedCfg.StartingBalance, "starting wallet balance per account")
		seed         = flag.Int64("seed", seedCfg.Seed, "random seed for deterministic data")
	)
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger := logging.New(cfg.Logging)

	store := devstub.NewStore()
	if err := devstub.Seed(store, devstub.SeedConfig{
		NumUsers:        *users,
		NumTransactions: *transactions,
		StartingBalance: *balance,
		Seed:            *seed,
	}); err != nil {
		logger.Error("seeding failed", "error", err)
		os.Exit(1)
	}
	logger.Info("seeded stub data", "users", *users, "transactions", *transactions)

	handlers := devstub.NewAPIHandlers(logger, store)
	srv := devstub.NewServer(logger, *addr, devstub.NewRouter(logger, handlers))

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Info("received shutdown signal", "signal", sig.String())
	case err := <-errCh:
		if err != nil {
			logger.Error("server stopped unexpectedly", "error", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
}
