// Package viewmodel derives everything the transaction history screen
// shows from raw service data. Every function is pure: the output is a
// deterministic function of (transactions, directory, current user ID,
// view state) and the input slice is never mutated.
package viewmodel

import (
	"fmt"
	"time"

	"github.com/t4nm4ymittal/payflow/internal/domain"
)

// PageSize is the fixed number of rows per page.
const PageSize = 10

// SortKey identifies the column a listing is ordered by.
type SortKey string

const (
	SortByTimestamp   SortKey = "timestamp"
	SortByAmount      SortKey = "amount"
	SortByStatus      SortKey = "status"
	SortByDescription SortKey = "description"
)

// SortDir is the ordering direction.
type SortDir string

const (
	Ascending  SortDir = "asc"
	Descending SortDir = "desc"
)

// ViewState is the ephemeral filter/sort/page selection. The zero
// value plus DefaultViewState's ordering is what a fresh screen shows.
type ViewState struct {
	Search  string
	From    *time.Time
	To      *time.Time
	SortKey SortKey
	SortDir SortDir
	Page    int
}

// DefaultViewState orders newest first on page one, like the
// transaction history screen does on load.
func DefaultViewState() ViewState {
	return ViewState{SortKey: SortByTimestamp, SortDir: Descending, Page: 1}
}

// WithSearch returns the state filtered by term, reset to page one.
func (s ViewState) WithSearch(term string) ViewState {
	s.Search = term
	s.Page = 1
	return s
}

// WithDateRange returns the state restricted to [from, to], reset to
// page one. Either bound may be nil.
func (s ViewState) WithDateRange(from, to *time.Time) ViewState {
	s.From = from
	s.To = to
	s.Page = 1
	return s
}

// ToggleSort returns the state sorted by key: selecting the active key
// flips the direction, selecting a new key resets to ascending. The
// page resets to one either way.
func (s ViewState) ToggleSort(key SortKey) ViewState {
	if s.SortKey == key && s.SortDir == Ascending {
		s.SortDir = Descending
	} else {
		s.SortDir = Ascending
	}
	s.SortKey = key
	s.Page = 1
	return s
}

// Directory resolves user IDs to display names.
type Directory map[int64]domain.User

// NewDirectory indexes users by ID.
func NewDirectory(users []domain.User) Directory {
	dir := make(Directory, len(users))
	for _, u := range users {
		dir[u.ID] = u
	}
	return dir
}

// Name returns the user's display name, or a placeholder when the
// directory does not know the ID.
func (d Directory) Name(id int64) string {
	if u, ok := d[id]; ok && u.Name != "" {
		return u.Name
	}
	return fmt.Sprintf("User %d", id)
}

// Row is one rendered transaction line.
type Row struct {
	Transaction domain.Transaction
	Sent        bool
	Counterpart string
	Description string
	Category    string
}

// Pagination captures pagination metadata for the rendered page.
type Pagination struct {
	Page       int
	PageSize   int
	TotalItems int
	TotalPages int
}

// View is the fully derived screen state.
type View struct {
	Rows       []Row
	Pagination Pagination
	Summary    Summary
	Categories []CategoryAmount
	Trend      []MonthBucket
	Insights   Insights
}

// BuildView runs the whole pipeline: filter, sort, paginate the rows
// and compute the aggregate panels from the unfiltered set.
func BuildView(txs []domain.Transaction, dir Directory, userID int64, state ViewState, now time.Time) View {
	filtered := Filter(txs, dir, userID, state)
	sorted := Sort(filtered, dir, userID, state.SortKey, state.SortDir)
	page, meta := Paginate(sorted, state.Page)

	rows := make([]Row, 0, len(page))
	for _, tx := range page {
		rows = append(rows, buildRow(tx, dir, userID))
	}

	return View{
		Rows:       rows,
		Pagination: meta,
		Summary:    Summarize(txs, userID),
		Categories: CategoryBreakdown(txs, userID),
		Trend:      MonthlyTrend(txs, userID),
		Insights:   ComputeInsights(txs, userID, now),
	}
}

// Rows renders every transaction in order, used by exports that want
// the whole filtered sequence rather than one page.
func Rows(txs []domain.Transaction, dir Directory, userID int64) []Row {
	rows := make([]Row, 0, len(txs))
	for _, tx := range txs {
		rows = append(rows, buildRow(tx, dir, userID))
	}
	return rows
}

func buildRow(tx domain.Transaction, dir Directory, userID int64) Row {
	sent := tx.Sent(userID)
	counterpart := dir.Name(tx.Counterpart(userID))
	return Row{
		Transaction: tx,
		Sent:        sent,
		Counterpart: counterpart,
		Description: describe(tx, dir, userID),
		Category:    Categorize(tx.Amount),
	}
}

// describe renders the "Sent to X" / "Received from Y" line.
func describe(tx domain.Transaction, dir Directory, userID int64) string {
	if tx.Sent(userID) {
		return "Sent to " + dir.Name(tx.ReceiverID)
	}
	return "Received from " + dir.Name(tx.SenderID)
}
