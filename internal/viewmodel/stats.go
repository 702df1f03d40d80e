package viewmodel

import (
	"fmt"
	"sort"
	"time"

	"github.com/t4nm4ymittal/payflow/internal/domain"
)

// Summary holds the headline figures over the full, unfiltered set.
// Spent/received totals count only SUCCESS transactions.
type Summary struct {
	TotalSpent       float64
	TotalReceived    float64
	AverageSpend     float64
	SentCount        int // successful sends
	ReceivedCount    int // successful receipts
	TransactionCount int // all statuses
}

// Summarize computes the headline figures for the given user.
func Summarize(txs []domain.Transaction, userID int64) Summary {
	s := Summary{TransactionCount: len(txs)}
	sentTotal := 0
	for _, tx := range txs {
		sent := tx.Sent(userID)
		if sent {
			sentTotal++
		}
		if tx.Status != domain.StatusSuccess {
			continue
		}
		if sent {
			s.TotalSpent += tx.Amount
			s.SentCount++
		} else {
			s.TotalReceived += tx.Amount
			s.ReceivedCount++
		}
	}
	if sentTotal > 0 {
		s.AverageSpend = s.TotalSpent / float64(sentTotal)
	}
	return s
}

// Category thresholds for the spend breakdown.
const (
	largeTransferOver = 2000
	smallPaymentUnder = 500
)

// Categorize buckets an amount for the spend-by-category panel.
func Categorize(amount float64) string {
	switch {
	case amount > largeTransferOver:
		return "Large Transfer"
	case amount < smallPaymentUnder:
		return "Small Payment"
	default:
		return "General"
	}
}

// CategoryAmount is one slice of the spend-by-category panel.
type CategoryAmount struct {
	Category string
	Amount   float64
}

var categoryOrder = []string{"Large Transfer", "General", "Small Payment"}

// CategoryBreakdown sums successful outgoing spend per category.
// Buckets with no spend are omitted; the remainder keep a fixed order
// so repeated renders are identical.
func CategoryBreakdown(txs []domain.Transaction, userID int64) []CategoryAmount {
	totals := make(map[string]float64)
	for _, tx := range txs {
		if !tx.Sent(userID) || tx.Status != domain.StatusSuccess {
			continue
		}
		totals[Categorize(tx.Amount)] += tx.Amount
	}

	out := make([]CategoryAmount, 0, len(totals))
	for _, category := range categoryOrder {
		if amount, ok := totals[category]; ok {
			out = append(out, CategoryAmount{Category: category, Amount: amount})
		}
	}
	return out
}

// MonthBucket is one calendar month of successful spend vs receipts.
type MonthBucket struct {
	Year     int
	Month    time.Month
	Spent    float64
	Received float64
}

// Label renders the bucket as "Jan 2025".
func (b MonthBucket) Label() string {
	return fmt.Sprintf("%s %d", b.Month.String()[:3], b.Year)
}

// MonthlyTrend groups successful amounts by calendar year-month,
// chronologically, keeping the most recent six buckets.
func MonthlyTrend(txs []domain.Transaction, userID int64) []MonthBucket {
	type ym struct {
		year  int
		month time.Month
	}
	buckets := make(map[ym]*MonthBucket)
	for _, tx := range txs {
		if tx.Status != domain.StatusSuccess {
			continue
		}
		key := ym{tx.Timestamp.Year(), tx.Timestamp.Month()}
		b, ok := buckets[key]
		if !ok {
			b = &MonthBucket{Year: key.year, Month: key.month}
			buckets[key] = b
		}
		if tx.Sent(userID) {
			b.Spent += tx.Amount
		} else {
			b.Received += tx.Amount
		}
	}

	out := make([]MonthBucket, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year < out[j].Year
		}
		return out[i].Month < out[j].Month
	})
	if len(out) > 6 {
		out = out[len(out)-6:]
	}
	return out
}

// Insights are the quick highlights above the history table.
type Insights struct {
	CurrentMonthSpend  float64
	PreviousMonthSpend float64
	// ChangePercent is the spend change vs the previous month; zero
	// when the previous month had no spend (no division by zero).
	ChangePercent float64
	Largest       domain.Transaction
	HasLargest    bool
}

// ComputeInsights derives the highlights relative to now, which is
// injected so renders are reproducible.
func ComputeInsights(txs []domain.Transaction, userID int64, now time.Time) Insights {
	currentYear, currentMonth, _ := now.Date()
	firstOfMonth := time.Date(currentYear, currentMonth, 1, 0, 0, 0, 0, now.Location())
	prevYear, prevMonth, _ := firstOfMonth.AddDate(0, -1, 0).Date()

	var in Insights
	for _, tx := range txs {
		if tx.Status != domain.StatusSuccess {
			continue
		}
		if !in.HasLargest || tx.Amount > in.Largest.Amount {
			in.Largest = tx
			in.HasLargest = true
		}
		if !tx.Sent(userID) {
			continue
		}
		y, m, _ := tx.Timestamp.Date()
		switch {
		case y == currentYear && m == currentMonth:
			in.CurrentMonthSpend += tx.Amount
		case y == prevYear && m == prevMonth:
			in.PreviousMonthSpend += tx.Amount
		}
	}
	if in.PreviousMonthSpend > 0 {
		in.ChangePercent = (in.CurrentMonthSpend - in.PreviousMonthSpend) / in.PreviousMonthSpend * 100
	}
	return in
}
