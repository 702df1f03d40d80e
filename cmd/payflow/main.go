// Command payflow is a terminal client for the PayFlow platform:
// log in, inspect the dashboard, browse transaction history, send
// money, add funds and check rewards, all against the remote services.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/t4nm4ymittal/payflow/internal/api"
	"github.com/t4nm4ymittal/payflow/internal/config"
	"github.com/t4nm4ymittal/payflow/internal/dashboard"
	"github.com/t4nm4ymittal/payflow/internal/logging"
	"github.com/t4nm4ymittal/payflow/internal/session"
)

func main() {
	if len(os.Args) < 2 {
		printUsage(os.Stderr)
		os.Exit(2)
	}

	// A local .env is optional; absence is not an error.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.Logging)
	app := newApp(cfg, logger)

	command, args := os.Args[1], os.Args[2:]
	if err := app.run(command, args); err != nil {
		if errors.Is(err, session.ErrUnauthenticated) {
			fmt.Fprintln(os.Stderr, "You are not logged in. Run `payflow login` first.")
			os.Exit(1)
		}
		var apiErr *api.Error
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized && app.store.IsAuthenticated() {
			// The backend rejected the stored token; drop it so the
			// next run starts clean.
			app.store.Invalidate()
			fmt.Fprintln(os.Stderr, "Your session has expired. Run `payflow login` again.")
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

// app carries the wired clients and session for the subcommands.
type app struct {
	cfg    config.Config
	logger *slog.Logger

	store *session.Store
	guard *session.Guard

	auth     *api.AuthClient
	users    *api.UserClient
	wallets  *api.WalletClient
	txs      *api.TransactionClient
	rewards  *api.RewardClient
	notifs   *api.NotificationClient
	overview *dashboard.Service
}

func newApp(cfg config.Config, logger *slog.Logger) *app {
	store := session.NewStore(cfg.Session.StateDir, logger)
	timeout := cfg.Client.Timeout

	users := api.NewUserClient(cfg.Services.User, timeout, store)
	wallets := api.NewWalletClient(cfg.Services.Wallet, timeout, store)
	txs := api.NewTransactionClient(cfg.Services.API, timeout, store)
	rewards := api.NewRewardClient(cfg.Services.Reward, timeout, store)
	notifs := api.NewNotificationClient(cfg.Services.Notification, timeout, store)

	return &app{
		cfg:      cfg,
		logger:   logger,
		store:    store,
		guard:    session.NewGuard(store),
		auth:     api.NewAuthClient(cfg.Services.API, timeout),
		users:    users,
		wallets:  wallets,
		txs:      txs,
		rewards:  rewards,
		notifs:   notifs,
		overview: dashboard.NewService(users, wallets, txs, rewards, notifs, logger),
	}
}

func (a *app) run(command string, args []string) error {
	switch command {
	case "signup":
		return a.runSignup(args)
	case "login":
		return a.runLogin(args)
	case "logout":
		return a.runLogout(args)
	case "dashboard":
		return a.runDashboard(args)
	case "transactions":
		return a.runTransactions(args)
	case "send":
		return a.runSend(args)
	case "add-funds":
		return a.runAddFunds(args)
	case "rewards":
		return a.runRewards(args)
	case "profile":
		return a.runProfile(args)
	case "help", "-h", "--help":
		printUsage(os.Stdout)
		return nil
	default:
		printUsage(os.Stderr)
		return fmt.Errorf("unknown command %q", command)
	}
}

func printUsage(w *os.File) {
	fmt.Fprintln(w, `Usage: payflow <command> [flags]

Commands:
  signup        Create a new account
  login         Sign in and store the session
  logout        Clear the stored session
  dashboard     Show the account overview (-watch polls for notifications)
  transactions  Browse transaction history (-search, -from, -to, -sort, -desc, -page, -csv)
  send          Send money (-to, -amount)
  add-funds     Credit your wallet (-amount, -currency)
  rewards       Show reward points
  profile       Show your profile
  help          Show this help`)
}
