package viewmodel

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/t4nm4ymittal/payflow/internal/domain"
)

// Filter keeps transactions matching the state's search term and date
// range. The search term matches, case-insensitively, the counterpart
// display name, the amount rendered as a string, the status, or the
// transaction ID. The range start is inclusive; the range end is
// extended to the end of its calendar day.
func Filter(txs []domain.Transaction, dir Directory, userID int64, state ViewState) []domain.Transaction {
	term := strings.ToLower(strings.TrimSpace(state.Search))

	var endOfRange time.Time
	if state.To != nil {
		t := *state.To
		endOfRange = time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
	}

	out := make([]domain.Transaction, 0, len(txs))
	for _, tx := range txs {
		if term != "" && !matchesTerm(tx, dir, userID, term) {
			continue
		}
		if state.From != nil && tx.Timestamp.Before(*state.From) {
			continue
		}
		if state.To != nil && tx.Timestamp.After(endOfRange) {
			continue
		}
		out = append(out, tx)
	}
	return out
}

func matchesTerm(tx domain.Transaction, dir Directory, userID int64, term string) bool {
	counterpart := strings.ToLower(dir.Name(tx.Counterpart(userID)))
	if strings.Contains(counterpart, term) {
		return true
	}
	if strings.Contains(formatAmount(tx.Amount), term) {
		return true
	}
	if strings.Contains(strings.ToLower(string(tx.Status)), term) {
		return true
	}
	return strings.Contains(strconv.FormatInt(tx.ID, 10), term)
}

// formatAmount renders the amount the way the history table does, so a
// search for "150" finds a 150.5 transfer.
func formatAmount(amount float64) string {
	return strconv.FormatFloat(amount, 'f', -1, 64)
}

// Sort returns a stably sorted copy; the input order is preserved for
// equal keys and the input slice is untouched.
func Sort(txs []domain.Transaction, dir Directory, userID int64, key SortKey, direction SortDir) []domain.Transaction {
	out := make([]domain.Transaction, len(txs))
	copy(out, txs)

	less := lessFunc(out, dir, userID, key)
	if direction == Descending {
		inner := less
		less = func(i, j int) bool { return inner(j, i) }
	}
	sort.SliceStable(out, less)
	return out
}

func lessFunc(txs []domain.Transaction, dir Directory, userID int64, key SortKey) func(i, j int) bool {
	switch key {
	case SortByAmount:
		return func(i, j int) bool { return txs[i].Amount < txs[j].Amount }
	case SortByStatus:
		return func(i, j int) bool { return txs[i].Status < txs[j].Status }
	case SortByDescription:
		return func(i, j int) bool {
			return describe(txs[i], dir, userID) < describe(txs[j], dir, userID)
		}
	default: // timestamp
		return func(i, j int) bool { return txs[i].Timestamp.Before(txs[j].Timestamp) }
	}
}

// Paginate slices out the requested page. The page number is clamped
// to the valid range, so stale state after a filter change still lands
// on a real page.
func Paginate(txs []domain.Transaction, page int) ([]domain.Transaction, Pagination) {
	total := len(txs)
	totalPages := (total + PageSize - 1) / PageSize
	if totalPages == 0 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * PageSize
	end := start + PageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return txs[start:end], Pagination{
		Page:       page,
		PageSize:   PageSize,
		TotalItems: total,
		TotalPages: totalPages,
	}
}
