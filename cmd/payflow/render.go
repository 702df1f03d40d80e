package main

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/t4nm4ymittal/payflow/internal/dashboard"
	"github.com/t4nm4ymittal/payflow/internal/domain"
	"github.com/t4nm4ymittal/payflow/internal/viewmodel"
)

func formatMoney(amount float64) string {
	return strconv.FormatFloat(amount, 'f', 2, 64)
}

func formatDate(t time.Time) string {
	return t.Local().Format("2006-01-02 15:04")
}

func renderOverview(w io.Writer, ov dashboard.Overview) {
	name := ov.User.Name
	if name == "" {
		name = ov.User.Email
	}
	fmt.Fprintf(w, "Welcome back, %s\n\n", name)
	fmt.Fprintf(w, "Available balance: %s\n", formatMoney(ov.Balance))
	fmt.Fprintf(w, "Transactions: %d    Rewards: %d    Notifications: %d\n", ov.TransactionCount, ov.RewardCount, len(ov.Notifications))

	if len(ov.Recent) > 0 {
		fmt.Fprintf(w, "\nRecent activity:\n")
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tDATE\tFROM\tTO\tAMOUNT\tSTATUS")
		for _, tx := range ov.Recent {
			fmt.Fprintf(tw, "%d\t%s\t%d\t%d\t%s\t%s\n",
				tx.ID, formatDate(tx.Timestamp), tx.SenderID, tx.ReceiverID, formatMoney(tx.Amount), tx.Status)
		}
		tw.Flush()
	}

	if len(ov.Notifications) > 0 {
		fmt.Fprintf(w, "\nNotifications:\n")
		for i, n := range ov.Notifications {
			if i == 3 {
				fmt.Fprintf(w, "  ... and %d more\n", len(ov.Notifications)-i)
				break
			}
			fmt.Fprintf(w, "  %s  %s\n", formatDate(n.Timestamp), n.Message)
		}
	}
}

func renderTransactions(w io.Writer, view viewmodel.View) {
	s := view.Summary
	fmt.Fprintf(w, "Spent: %s    Received: %s    Avg spend: %s    Total: %d\n\n",
		formatMoney(s.TotalSpent), formatMoney(s.TotalReceived), formatMoney(s.AverageSpend), s.TransactionCount)

	if len(view.Rows) == 0 {
		fmt.Fprintln(w, "No transactions match.")
	} else {
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tDATE\tDESCRIPTION\tAMOUNT\tSTATUS\tCATEGORY")
		for _, row := range view.Rows {
			amount := "+" + formatMoney(row.Transaction.Amount)
			if row.Sent {
				amount = "-" + formatMoney(row.Transaction.Amount)
			}
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
				row.Transaction.ID, formatDate(row.Transaction.Timestamp), row.Description,
				amount, row.Transaction.Status, row.Category)
		}
		tw.Flush()
	}

	p := view.Pagination
	fmt.Fprintf(w, "\nPage %d of %d (%d transactions)\n", p.Page, p.TotalPages, p.TotalItems)

	if len(view.Categories) > 0 {
		fmt.Fprintf(w, "\nSpend by category:\n")
		for _, c := range view.Categories {
			fmt.Fprintf(w, "  %-15s %s\n", c.Category, formatMoney(c.Amount))
		}
	}

	if len(view.Trend) > 0 {
		fmt.Fprintf(w, "\nMonthly trend:\n")
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "MONTH\tSPENT\tRECEIVED")
		for _, b := range view.Trend {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", b.Label(), formatMoney(b.Spent), formatMoney(b.Received))
		}
		tw.Flush()
	}

	in := view.Insights
	fmt.Fprintf(w, "\nThis month: %s", formatMoney(in.CurrentMonthSpend))
	if in.PreviousMonthSpend > 0 {
		fmt.Fprintf(w, " (%+.1f%% vs last month)", in.ChangePercent)
	}
	fmt.Fprintln(w)
	if in.HasLargest {
		fmt.Fprintf(w, "Largest transaction: %s on %s\n", formatMoney(in.Largest.Amount), formatDate(in.Largest.Timestamp))
	}
}

func renderRewards(w io.Writer, summary dashboard.RewardSummary) {
	fmt.Fprintf(w, "Total reward points: %d\n", summary.TotalPoints)
	if len(summary.History) == 0 {
		return
	}
	fmt.Fprintln(w)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "DATE\tPOINTS")
	for _, r := range summary.History {
		fmt.Fprintf(tw, "%s\t%d\n", formatDate(r.SentAt), r.Points)
	}
	tw.Flush()
}

func renderProfile(w io.Writer, user domain.User) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "ID\t%d\n", user.ID)
	fmt.Fprintf(tw, "Name\t%s\n", user.Name)
	fmt.Fprintf(tw, "Email\t%s\n", user.Email)
	if user.Phone != "" {
		fmt.Fprintf(tw, "Phone\t%s\n", user.Phone)
	}
	if !user.CreatedAt.IsZero() {
		fmt.Fprintf(tw, "Member since\t%s\n", user.CreatedAt.Local().Format("Jan 2, 2006"))
	}
	tw.Flush()
}
