// Package service implements the ledger: it owns the canonical in-memory
// AppState and enforces the mutate-then-persist contract. Every mutating
// operation validates first (no partial mutation), applies the change, and
// synchronously saves the whole state document before returning. Derived
// views are recomputed from the canonical collections on every read.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"budsjetto/internal/core"
	"budsjetto/internal/export"
	"budsjetto/internal/store"
)

type Ledger struct {
	mu       sync.Mutex
	store    store.StateStore
	exporter *export.CSVExporter
	state    core.AppState

	// Overridable in tests.
	now   func() time.Time
	newID func() string
}

func NewLedger(st store.StateStore, exporter *export.CSVExporter) *Ledger {
	return &Ledger{
		store:    st,
		exporter: exporter,
		state:    core.DefaultAppState(),
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// Load replaces the in-memory state with the persisted document. On a
// corrupt document the store hands back the empty default together with the
// error; the ledger adopts the default and surfaces the error so the caller
// can log it loudly instead of crashing.
func (l *Ledger) Load(ctx context.Context) error {
	state, err := l.store.Load(ctx)
	l.mu.Lock()
	l.state = state
	l.mu.Unlock()
	if err != nil {
		return fmt.Errorf("load ledger state: %w", err)
	}
	return nil
}

// persist writes the whole current state. A failed save leaves the in-memory
// mutation in place; the caller surfaces the error as "not guaranteed
// durable" and may retry by mutating again or calling Save.
func (l *Ledger) persist(ctx context.Context) error {
	if err := l.store.Save(ctx, l.state); err != nil {
		return fmt.Errorf("persist ledger state: %w", err)
	}
	return nil
}

// Save re-persists the current state without mutating it.
func (l *Ledger) Save(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.persist(ctx)
}

// Currency returns the selected display currency.
func (l *Ledger) Currency() core.Currency {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state.SelectedCurrency
}

// SetCurrency switches the display currency and persists immediately.
func (l *Ledger) SetCurrency(ctx context.Context, c core.Currency) error {
	if err := c.Validate(); err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.state.SelectedCurrency = c
	slog.InfoContext(ctx, "Currency changed", "currency", c)
	return l.persist(ctx)
}

// AddEntry appends a new income or expense record. The description defaults
// to the category name when left blank.
func (l *Ledger) AddEntry(ctx context.Context, entryType core.EntryType, amount core.Money, category string, date core.Date, description string) (core.Entry, error) {
	entry := core.Entry{
		ID:          l.newID(),
		EntryType:   entryType,
		Amount:      amount,
		Category:    strings.TrimSpace(category),
		Date:        date,
		Description: strings.TrimSpace(description),
	}
	if entry.Description == "" {
		entry.Description = entry.Category
	}
	if err := entry.Validate(); err != nil {
		return core.Entry{}, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.state.Entries = append(l.state.Entries, entry)
	slog.InfoContext(ctx, "Entry added",
		"id", entry.ID,
		"entry_type", entry.EntryType,
		"amount_cents", entry.Amount.Cents,
		"category", entry.Category,
		"date", entry.Date.String())
	return entry, l.persist(ctx)
}

// Entries returns a copy of the full entry collection, in stored order.
// Display ordering is the presentation layer's concern.
func (l *Ledger) Entries() []core.Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]core.Entry(nil), l.state.Entries...)
}

// DeleteEntry removes the entry with the given id. An unknown id is
// ErrEntryNotFound; unknown-id deletes raise consistently across the ledger.
func (l *Ledger) DeleteEntry(ctx context.Context, id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i, e := range l.state.Entries {
		if e.ID == id {
			l.state.Entries = append(l.state.Entries[:i], l.state.Entries[i+1:]...)
			slog.InfoContext(ctx, "Entry deleted", "id", id)
			return l.persist(ctx)
		}
	}
	return core.ErrEntryNotFound
}

// CreateTrip adds a new trip with an empty expense list. Date ordering
// (start before end) is the caller's responsibility.
func (l *Ledger) CreateTrip(ctx context.Context, name, destination string, budget core.Money, startDate, endDate core.Date) (core.Trip, error) {
	trip := core.Trip{
		ID:          l.newID(),
		Name:        strings.TrimSpace(name),
		Destination: strings.TrimSpace(destination),
		Budget:      budget,
		StartDate:   startDate,
		EndDate:     endDate,
		Expenses:    []core.TripExpense{},
	}
	if err := trip.Validate(); err != nil {
		return core.Trip{}, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.state.Trips = append(l.state.Trips, trip)
	slog.InfoContext(ctx, "Trip created",
		"id", trip.ID,
		"name", trip.Name,
		"destination", trip.Destination,
		"budget_cents", trip.Budget.Cents)
	return trip, l.persist(ctx)
}

// Trips returns all trips annotated with their recomputed spend totals.
func (l *Ledger) Trips() []core.TripReport {
	l.mu.Lock()
	defer l.mu.Unlock()
	reports := make([]core.TripReport, len(l.state.Trips))
	for i, t := range l.state.Trips {
		reports[i] = t.Report()
	}
	return reports
}

// AddTripExpense appends an expense to the identified trip.
func (l *Ledger) AddTripExpense(ctx context.Context, tripID string, amount core.Money, category, description string, date core.Date) (core.TripExpense, error) {
	expense := core.TripExpense{
		ID:          l.newID(),
		Amount:      amount,
		Category:    strings.TrimSpace(category),
		Description: strings.TrimSpace(description),
		Date:        date,
	}
	if err := expense.Validate(); err != nil {
		return core.TripExpense{}, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	for i := range l.state.Trips {
		if l.state.Trips[i].ID == tripID {
			l.state.Trips[i].Expenses = append(l.state.Trips[i].Expenses, expense)
			slog.InfoContext(ctx, "Trip expense added",
				"trip_id", tripID,
				"id", expense.ID,
				"amount_cents", expense.Amount.Cents,
				"category", expense.Category)
			return expense, l.persist(ctx)
		}
	}
	return core.TripExpense{}, core.ErrTripNotFound
}

// DeleteTrip removes the trip and all of its expenses atomically.
func (l *Ledger) DeleteTrip(ctx context.Context, tripID string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i, t := range l.state.Trips {
		if t.ID == tripID {
			l.state.Trips = append(l.state.Trips[:i], l.state.Trips[i+1:]...)
			slog.InfoContext(ctx, "Trip deleted", "id", tripID, "expenses", len(t.Expenses))
			return l.persist(ctx)
		}
	}
	return core.ErrTripNotFound
}

// DeleteTripExpense removes one expense from one trip.
func (l *Ledger) DeleteTripExpense(ctx context.Context, tripID, expenseID string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := range l.state.Trips {
		if l.state.Trips[i].ID != tripID {
			continue
		}
		expenses := l.state.Trips[i].Expenses
		for j, e := range expenses {
			if e.ID == expenseID {
				l.state.Trips[i].Expenses = append(expenses[:j], expenses[j+1:]...)
				slog.InfoContext(ctx, "Trip expense deleted", "trip_id", tripID, "id", expenseID)
				return l.persist(ctx)
			}
		}
		return core.ErrTripExpenseNotFound
	}
	return core.ErrTripNotFound
}

// WeeklySummary recomputes totals for one ISO week.
func (l *Ledger) WeeklySummary(week, year int) core.Summary {
	l.mu.Lock()
	defer l.mu.Unlock()
	return core.WeeklySummary(l.state.Entries, week, year)
}

// MonthlySummary recomputes totals for one calendar month.
func (l *Ledger) MonthlySummary(month, year int) core.Summary {
	l.mu.Lock()
	defer l.mu.Unlock()
	return core.MonthlySummary(l.state.Entries, month, year)
}

// MonthlyTrends recomputes the trend series for the last months calendar
// months, ending at the current month.
func (l *Ledger) MonthlyTrends(months int) []core.MonthTrend {
	l.mu.Lock()
	defer l.mu.Unlock()
	return core.MonthlyTrends(l.state.Entries, months, l.now())
}

// CategoryAnalytics recomputes the per-category breakdown for one month.
func (l *Ledger) CategoryAnalytics(month, year int) core.Analytics {
	l.mu.Lock()
	defer l.mu.Unlock()
	return core.CategoryAnalytics(l.state.Entries, month, year)
}

// ExportCSV writes the full entry history to a CSV file and returns its path.
func (l *Ledger) ExportCSV(ctx context.Context) (string, error) {
	if l.exporter == nil {
		return "", fmt.Errorf("csv export not configured")
	}
	entries := l.Entries()
	path, err := l.exporter.Export(ctx, entries)
	if err != nil {
		return "", fmt.Errorf("export entries: %w", err)
	}
	return path, nil
}
