package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/t4nm4ymittal/payflow/internal/viewmodel"
)

func (a *app) runTransactions(args []string) error {
	fs := flag.NewFlagSet("transactions", flag.ContinueOnError)
	search := fs.String("search", "", "filter by counterpart, amount, status or ID")
	from := fs.String("from", "", "only transactions on or after this date (YYYY-MM-DD)")
	to := fs.String("to", "", "only transactions on or before this date (YYYY-MM-DD)")
	sortKey := fs.String("sort", "timestamp", "sort column: timestamp, amount, status or description")
	desc := fs.Bool("desc", false, "sort descending")
	page := fs.Int("page", 1, "page number")
	csvOut := fs.Bool("csv", false, "write the filtered rows as CSV to stdout")
	if err := fs.Parse(args); err != nil {
		return err
	}

	state, err := buildViewState(*search, *from, *to, *sortKey, *desc, *page)
	if err != nil {
		return err
	}

	claims, err := a.guard.Require()
	if err != nil {
		return err
	}

	ctx := context.Background()
	txs, err := a.txs.ListByUser(ctx, claims.UserID)
	if err != nil {
		return fmt.Errorf("could not load transactions: %w", err)
	}
	directory := a.loadDirectory(ctx)

	if *csvOut {
		filtered := viewmodel.Filter(txs, directory, claims.UserID, state)
		sorted := viewmodel.Sort(filtered, directory, claims.UserID, state.SortKey, state.SortDir)
		rows := viewmodel.Rows(sorted, directory, claims.UserID)
		return viewmodel.WriteCSV(os.Stdout, rows)
	}

	view := viewmodel.BuildView(txs, directory, claims.UserID, state, time.Now())
	renderTransactions(os.Stdout, view)
	return nil
}

func buildViewState(search, from, to, sortKey string, desc bool, page int) (viewmodel.ViewState, error) {
	state := viewmodel.DefaultViewState()
	if search != "" {
		state = state.WithSearch(search)
	}

	fromTime, err := parseDateFlag(from)
	if err != nil {
		return state, fmt.Errorf("invalid -from: %w", err)
	}
	toTime, err := parseDateFlag(to)
	if err != nil {
		return state, fmt.Errorf("invalid -to: %w", err)
	}
	if fromTime != nil || toTime != nil {
		state = state.WithDateRange(fromTime, toTime)
	}

	switch key := viewmodel.SortKey(sortKey); key {
	case viewmodel.SortByTimestamp, viewmodel.SortByAmount, viewmodel.SortByStatus, viewmodel.SortByDescription:
		state.SortKey = key
	default:
		return state, fmt.Errorf("unknown sort column %q", sortKey)
	}
	state.SortDir = viewmodel.Ascending
	if desc {
		state.SortDir = viewmodel.Descending
	}

	if page < 1 {
		return state, fmt.Errorf("page must be at least 1")
	}
	state.Page = page
	return state, nil
}

func parseDateFlag(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation("2006-01-02", value, time.Local)
	if err != nil {
		return nil, fmt.Errorf("want YYYY-MM-DD, got %q", value)
	}
	return &t, nil
}

// loadDirectory fetches the user directory for counterpart names. A
// missing directory is survivable; rows fall back to numeric IDs.
func (a *app) loadDirectory(ctx context.Context) viewmodel.Directory {
	users, err := a.users.List(ctx)
	if err != nil {
		a.logger.Warn("user directory unavailable", "error", err)
		return viewmodel.NewDirectory(nil)
	}
	return viewmodel.NewDirectory(users)
}
