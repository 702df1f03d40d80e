package viewmodel

import (
	"testing"
	"time"
)

func TestViewStateToggleSort(t *testing.T) {
	state := DefaultViewState()
	if state.SortKey != SortByTimestamp || state.SortDir != Descending || state.Page != 1 {
		t.Fatalf("unexpected default state %+v", state)
	}

	state.Page = 3
	state = state.ToggleSort(SortByAmount)
	if state.SortKey != SortByAmount || state.SortDir != Ascending {
		t.Errorf("selecting a new column must sort ascending, got %+v", state)
	}
	if state.Page != 1 {
		t.Errorf("sorting must reset to page 1, got %d", state.Page)
	}

	state = state.ToggleSort(SortByAmount)
	if state.SortDir != Descending {
		t.Errorf("re-selecting the column must flip to descending, got %v", state.SortDir)
	}

	state = state.ToggleSort(SortByAmount)
	if state.SortDir != Ascending {
		t.Errorf("third toggle must flip back to ascending, got %v", state.SortDir)
	}
}

func TestViewStateFiltersResetPage(t *testing.T) {
	state := DefaultViewState()
	state.Page = 5

	state = state.WithSearch("chitra")
	if state.Page != 1 {
		t.Errorf("search must reset to page 1, got %d", state.Page)
	}

	state.Page = 5
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	state = state.WithDateRange(&from, nil)
	if state.Page != 1 {
		t.Errorf("date range must reset to page 1, got %d", state.Page)
	}
}

func TestDirectoryNameFallback(t *testing.T) {
	dir := testDirectory()
	if got := dir.Name(2); got != "Bharat" {
		t.Errorf("expected Bharat, got %q", got)
	}
	if got := dir.Name(42); got != "User 42" {
		t.Errorf("expected placeholder for unknown ID, got %q", got)
	}
}

func TestBuildView(t *testing.T) {
	txs := testTransactions()
	now := time.Date(2026, 2, 20, 12, 0, 0, 0, time.UTC)

	view := BuildView(txs, testDirectory(), me, DefaultViewState(), now)

	if len(view.Rows) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(view.Rows))
	}
	// Default ordering is newest first.
	if view.Rows[0].Transaction.ID != 4 {
		t.Errorf("expected newest row first, got ID %d", view.Rows[0].Transaction.ID)
	}

	row := view.Rows[0] // incoming failed 75 from Bharat
	if row.Sent {
		t.Errorf("expected an incoming row")
	}
	if row.Description != "Received from Bharat" {
		t.Errorf("unexpected description %q", row.Description)
	}
	if row.Category != "Small Payment" {
		t.Errorf("unexpected category %q", row.Category)
	}

	sent := view.Rows[1] // outgoing 2500 to Chitra
	if !sent.Sent || sent.Description != "Sent to Chitra" {
		t.Errorf("unexpected outgoing row %+v", sent)
	}

	// The aggregate panels are computed over the unfiltered set even
	// when the rows are filtered down.
	filtered := BuildView(txs, testDirectory(), me, DefaultViewState().WithSearch("bharat"), now)
	if len(filtered.Rows) != 2 {
		t.Errorf("expected 2 filtered rows, got %d", len(filtered.Rows))
	}
	if filtered.Summary != view.Summary {
		t.Errorf("summary must ignore the search filter: %+v vs %+v", filtered.Summary, view.Summary)
	}
	if filtered.Pagination.TotalItems != 2 {
		t.Errorf("pagination must follow the filtered rows, got %d items", filtered.Pagination.TotalItems)
	}
}

func TestRowsRendersWholeSequence(t *testing.T) {
	txs := testTransactions()
	rows := Rows(txs, testDirectory(), me)
	if len(rows) != len(txs) {
		t.Fatalf("expected %d rows, got %d", len(txs), len(rows))
	}
	for i, row := range rows {
		if row.Transaction.ID != txs[i].ID {
			t.Errorf("row %d out of order", i)
		}
	}
}
