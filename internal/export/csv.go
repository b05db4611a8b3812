// Package export serializes the entry history to CSV.
package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"budsjetto/internal/core"
)

// CSVExporter writes entry exports into Dir, one timestamped file per call.
type CSVExporter struct {
	Dir string
}

func NewCSVExporter(dir string) *CSVExporter {
	return &CSVExporter{Dir: dir}
}

// Export writes every entry to a new CSV file and returns its path. Trip
// expenses are not included; the export covers the main ledger only.
func (e *CSVExporter) Export(ctx context.Context, entries []core.Entry) (string, error) {
	if err := os.MkdirAll(e.Dir, 0o755); err != nil {
		return "", fmt.Errorf("create export directory: %w", err)
	}

	path := filepath.Join(e.Dir, fmt.Sprintf("budget_export_%s.csv", time.Now().Format("2006-01-02_150405")))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create export file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"id", "type", "amount", "category", "date", "description"}); err != nil {
		return "", fmt.Errorf("write csv header: %w", err)
	}
	for _, entry := range entries {
		record := []string{
			entry.ID,
			string(entry.EntryType),
			entry.Amount.Decimal(),
			entry.Category,
			entry.Date.String(),
			entry.Description,
		}
		if err := w.Write(record); err != nil {
			return "", fmt.Errorf("write csv record %s: %w", entry.ID, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flush csv: %w", err)
	}

	slog.InfoContext(ctx, "Entries exported", "path", path, "count", len(entries))
	return path, nil
}
