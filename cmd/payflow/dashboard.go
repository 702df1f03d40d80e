package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/t4nm4ymittal/payflow/internal/domain"
	"github.com/t4nm4ymittal/payflow/internal/notify"
)

func (a *app) runDashboard(args []string) error {
	fs := flag.NewFlagSet("dashboard", flag.ContinueOnError)
	watch := fs.Bool("watch", false, "keep running and announce new notifications")
	if err := fs.Parse(args); err != nil {
		return err
	}

	claims, err := a.guard.Require()
	if err != nil {
		return err
	}

	ctx := context.Background()
	overview, err := a.overview.Fetch(ctx, claims.UserID)
	if err != nil {
		return fmt.Errorf("could not load dashboard: %w", err)
	}
	renderOverview(os.Stdout, overview)

	if !*watch {
		return nil
	}
	return a.watchNotifications(ctx, claims.UserID, len(overview.Notifications))
}

// watchNotifications polls the feed until interrupted, announcing each
// batch of new items. The count seen on the initial screen seeds the
// watermark so nothing already shown is announced again.
func (a *app) watchNotifications(ctx context.Context, userID int64, seen int) error {
	fetch := func(ctx context.Context) ([]domain.Notification, error) {
		return a.notifs.ListByUser(ctx, userID)
	}
	alert := func(latest domain.Notification, newCount int) {
		if newCount == 1 {
			fmt.Printf("\nNew notification: %s\n", latest.Message)
			return
		}
		fmt.Printf("\n%d new notifications, latest: %s\n", newCount, latest.Message)
	}

	poller := notify.NewPoller(fetch, alert, a.cfg.Client.PollInterval, a.logger)
	poller.Reset(seen)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	if err := poller.Start(ctx); err != nil {
		return err
	}
	defer poller.Stop()

	fmt.Printf("Watching for notifications every %s. Press Ctrl+C to stop.\n", a.cfg.Client.PollInterval)

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	<-sigs
	fmt.Println("\nStopped watching.")
	return nil
}
