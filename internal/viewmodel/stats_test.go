package viewmodel

import (
	"reflect"
	"testing"
	"time"

	"github.com/t4nm4ymittal/payflow/internal/domain"
)

func TestSummarize(t *testing.T) {
	base := time.Date(2026, 2, 10, 9, 0, 0, 0, time.UTC)
	txs := []domain.Transaction{
		tx(1, me, 2, 100, domain.StatusSuccess, base),
		tx(2, 2, me, 50, domain.StatusSuccess, base),
		tx(3, me, 3, 200, domain.StatusFailed, base),
		tx(4, 3, me, 30, domain.StatusPending, base),
	}

	s := Summarize(txs, me)

	if s.TotalSpent != 100 {
		t.Errorf("expected spent 100, got %v", s.TotalSpent)
	}
	if s.TotalReceived != 50 {
		t.Errorf("expected received 50, got %v", s.TotalReceived)
	}
	// The average divides by every outgoing transaction, including the
	// failed one, matching what the history screen reports.
	if s.AverageSpend != 50 {
		t.Errorf("expected average spend 50, got %v", s.AverageSpend)
	}
	if s.SentCount != 1 || s.ReceivedCount != 1 {
		t.Errorf("expected 1 successful send and 1 receipt, got %d and %d", s.SentCount, s.ReceivedCount)
	}
	if s.TransactionCount != 4 {
		t.Errorf("expected 4 transactions total, got %d", s.TransactionCount)
	}
}

func TestSummarizeTwoTransactionExample(t *testing.T) {
	base := time.Date(2026, 2, 10, 9, 0, 0, 0, time.UTC)
	txs := []domain.Transaction{
		tx(1, me, 2, 100, domain.StatusSuccess, base),
		tx(2, 2, me, 50, domain.StatusSuccess, base),
	}

	s := Summarize(txs, me)
	if s.TotalSpent != 100 || s.TotalReceived != 50 || s.AverageSpend != 100 {
		t.Errorf("expected spent 100, received 50, average 100; got %+v", s)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil, me)
	if s.AverageSpend != 0 {
		t.Errorf("expected zero average for no transactions, got %v", s.AverageSpend)
	}
}

func TestCategorize(t *testing.T) {
	cases := []struct {
		amount float64
		want   string
	}{
		{2500, "Large Transfer"},
		{2000.01, "Large Transfer"},
		{2000, "General"},
		{500, "General"},
		{1000, "General"},
		{499.99, "Small Payment"},
		{400, "Small Payment"},
	}
	for _, tc := range cases {
		if got := Categorize(tc.amount); got != tc.want {
			t.Errorf("Categorize(%v) = %q, want %q", tc.amount, got, tc.want)
		}
	}
}

func TestCategoryBreakdown(t *testing.T) {
	base := time.Date(2026, 2, 10, 9, 0, 0, 0, time.UTC)
	txs := []domain.Transaction{
		tx(1, me, 2, 2500, domain.StatusSuccess, base),
		tx(2, me, 2, 3000, domain.StatusSuccess, base),
		tx(3, me, 3, 400, domain.StatusSuccess, base),
		tx(4, me, 3, 1000, domain.StatusFailed, base), // failed, ignored
		tx(5, 2, me, 800, domain.StatusSuccess, base), // incoming, ignored
	}

	got := CategoryBreakdown(txs, me)
	want := []CategoryAmount{
		{Category: "Large Transfer", Amount: 5500},
		{Category: "Small Payment", Amount: 400},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %+v, got %+v", want, got)
	}
}

func TestMonthlyTrendKeepsLastSixChronologically(t *testing.T) {
	var txs []domain.Transaction
	for i := 0; i < 8; i++ {
		ts := time.Date(2025, time.Month(1+i), 15, 12, 0, 0, 0, time.UTC)
		txs = append(txs, tx(int64(2*i+1), me, 2, 100, domain.StatusSuccess, ts))
		txs = append(txs, tx(int64(2*i+2), 2, me, 40, domain.StatusSuccess, ts))
	}
	// Shuffle in an extra early-month transaction out of order.
	txs = append(txs, tx(100, me, 2, 7, domain.StatusSuccess, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)))

	got := MonthlyTrend(txs, me)
	if len(got) != 6 {
		t.Fatalf("expected 6 buckets, got %d", len(got))
	}
	for i, b := range got {
		wantMonth := time.Month(3 + i)
		if b.Month != wantMonth || b.Year != 2025 {
			t.Errorf("bucket %d: expected %v 2025, got %v %d", i, wantMonth, b.Month, b.Year)
		}
	}
	if got[0].Spent != 107 {
		t.Errorf("expected March spend 107, got %v", got[0].Spent)
	}
	if got[1].Received != 40 {
		t.Errorf("expected April received 40, got %v", got[1].Received)
	}
	if got[0].Label() != "Mar 2025" {
		t.Errorf("unexpected label %q", got[0].Label())
	}
}

func TestComputeInsights(t *testing.T) {
	now := time.Date(2026, 3, 31, 18, 0, 0, 0, time.UTC)
	txs := []domain.Transaction{
		tx(1, me, 2, 300, domain.StatusSuccess, time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)),
		tx(2, me, 2, 100, domain.StatusSuccess, time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC)),
		tx(3, me, 3, 200, domain.StatusSuccess, time.Date(2026, 2, 14, 0, 0, 0, 0, time.UTC)),
		tx(4, 2, me, 900, domain.StatusSuccess, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)),
		tx(5, me, 3, 5000, domain.StatusFailed, time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC)),
	}

	in := ComputeInsights(txs, me, now)

	if in.CurrentMonthSpend != 400 {
		t.Errorf("expected current month spend 400, got %v", in.CurrentMonthSpend)
	}
	// now is March 31; the previous month must still resolve to
	// February despite February having fewer days.
	if in.PreviousMonthSpend != 200 {
		t.Errorf("expected previous month spend 200, got %v", in.PreviousMonthSpend)
	}
	if in.ChangePercent != 100 {
		t.Errorf("expected +100%% change, got %v", in.ChangePercent)
	}
	// The largest transaction considers receipts too, but never failed
	// transfers.
	if !in.HasLargest || in.Largest.ID != 4 {
		t.Errorf("expected largest transaction 4, got %+v (has=%v)", in.Largest, in.HasLargest)
	}
}

func TestComputeInsightsNoPreviousMonth(t *testing.T) {
	now := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	txs := []domain.Transaction{
		tx(1, me, 2, 300, domain.StatusSuccess, time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)),
	}
	in := ComputeInsights(txs, me, now)
	if in.ChangePercent != 0 {
		t.Errorf("expected zero change when previous month had no spend, got %v", in.ChangePercent)
	}
}
