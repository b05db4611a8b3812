package export

import (
	"context"
	"encoding/csv"
	"os"
	"strings"
	"testing"

	"budsjetto/internal/core"
)

func TestExportWritesHeaderAndRows(t *testing.T) {
	exp := NewCSVExporter(t.TempDir())
	entries := []core.Entry{
		{ID: "e1", EntryType: core.Income, Amount: core.Money{Cents: 500000}, Category: "Salary", Date: core.NewDate(2024, 3, 10), Description: "March pay"},
		{ID: "e2", EntryType: core.Expense, Amount: core.Money{Cents: 120050}, Category: "Food", Date: core.NewDate(2024, 3, 12), Description: "weekly, groceries"},
	}

	path, err := exp.Export(context.Background(), entries)
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open export: %v", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("rows = %d, want header + 2", len(records))
	}
	if strings.Join(records[0], ",") != "id,type,amount,category,date,description" {
		t.Fatalf("header = %v", records[0])
	}
	if records[1][2] != "5000.00" || records[2][2] != "1200.50" {
		t.Fatalf("amounts not rendered with two decimals: %v %v", records[1], records[2])
	}
	// Field with an embedded comma survives the round trip intact.
	if records[2][5] != "weekly, groceries" {
		t.Fatalf("description = %q", records[2][5])
	}
}

func TestExportEmptyLedgerStillWritesHeader(t *testing.T) {
	exp := NewCSVExporter(t.TempDir())
	path, err := exp.Export(context.Background(), nil)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if strings.TrimSpace(string(raw)) != "id,type,amount,category,date,description" {
		t.Fatalf("content = %q", raw)
	}
}

func TestExportUnwritableDirectory(t *testing.T) {
	exp := NewCSVExporter("/proc/nonexistent/exports")
	if _, err := exp.Export(context.Background(), nil); err == nil {
		t.Fatalf("expected error for unwritable destination")
	}
}
