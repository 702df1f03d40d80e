package viewmodel

import (
	"bytes"
	"encoding/csv"
	"testing"
)

func TestWriteCSV(t *testing.T) {
	rows := Rows(testTransactions(), testDirectory(), me)

	var buf bytes.Buffer
	if err := WriteCSV(&buf, rows); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}
	if len(records) != 5 {
		t.Fatalf("expected header plus 4 rows, got %d records", len(records))
	}

	header := records[0]
	want := []string{"ID", "Date", "Type", "Amount", "Status", "Other Party", "Description"}
	for i, col := range want {
		if header[i] != col {
			t.Errorf("header column %d: expected %q, got %q", i, col, header[i])
		}
	}

	first := records[1]
	if first[0] != "1" || first[2] != "Sent" || first[3] != "150.5" || first[5] != "Bharat" {
		t.Errorf("unexpected first record %v", first)
	}

	second := records[2]
	if second[2] != "Received" || second[6] != "Received from Chitra" {
		t.Errorf("unexpected second record %v", second)
	}
}
