package viewmodel

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"
)

// WriteCSV exports rendered rows in the history screen's export shape.
func WriteCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"ID", "Date", "Type", "Amount", "Status", "Other Party", "Description"}); err != nil {
		return err
	}
	for _, row := range rows {
		direction := "Received"
		if row.Sent {
			direction = "Sent"
		}
		record := []string{
			fmt.Sprintf("%d", row.Transaction.ID),
			row.Transaction.Timestamp.UTC().Format(time.RFC3339),
			direction,
			formatAmount(row.Transaction.Amount),
			string(row.Transaction.Status),
			row.Counterpart,
			row.Description,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
