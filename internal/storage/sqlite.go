// Package storage provides the SQLite-backed state store. It keeps the same
// full-document semantics as the JSON file store: Save replaces the whole
// ledger inside one transaction, Load reads it all back.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"budsjetto/internal/core"

	_ "modernc.org/sqlite"
)

const currencyKey = "selected_currency"

type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Load reads the complete state document.
func (s *SQLiteStore) Load(ctx context.Context) (core.AppState, error) {
	state := core.DefaultAppState()

	var currency string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM app_settings WHERE key = ?`, currencyKey).Scan(&currency)
	switch {
	case err == sql.ErrNoRows:
		// Fresh database, keep the NOK default.
	case err != nil:
		return state, fmt.Errorf("load currency: %w", err)
	default:
		state.SelectedCurrency = core.Currency(currency)
	}

	entries, err := s.loadEntries(ctx)
	if err != nil {
		return state, err
	}
	state.Entries = entries

	trips, err := s.loadTrips(ctx)
	if err != nil {
		return state, err
	}
	state.Trips = trips

	state.Normalize()
	slog.InfoContext(ctx, "State loaded from sqlite",
		"entries", len(state.Entries),
		"trips", len(state.Trips),
		"currency", state.SelectedCurrency)
	return state, nil
}

func (s *SQLiteStore) loadEntries(ctx context.Context) ([]core.Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, entry_type, amount_cents, category, entry_date, description
		FROM entries ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("load entries: %w", err)
	}
	defer rows.Close()

	entries := []core.Entry{}
	for rows.Next() {
		var (
			e       core.Entry
			kind    string
			cents   int64
			rawDate string
		)
		if err := rows.Scan(&e.ID, &kind, &cents, &e.Category, &rawDate, &e.Description); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		date, err := core.ParseDate(rawDate)
		if err != nil {
			return nil, fmt.Errorf("entry %s has malformed date %q: %w", e.ID, rawDate, err)
		}
		e.EntryType = core.EntryType(kind)
		e.Amount = core.Money{Cents: cents}
		e.Date = date
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *SQLiteStore) loadTrips(ctx context.Context) ([]core.Trip, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, destination, budget_cents, start_date, end_date
		FROM trips ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("load trips: %w", err)
	}
	defer rows.Close()

	trips := []core.Trip{}
	for rows.Next() {
		var (
			t          core.Trip
			cents      int64
			start, end string
		)
		if err := rows.Scan(&t.ID, &t.Name, &t.Destination, &cents, &start, &end); err != nil {
			return nil, fmt.Errorf("scan trip: %w", err)
		}
		t.Budget = core.Money{Cents: cents}
		if t.StartDate, err = core.ParseDate(start); err != nil {
			return nil, fmt.Errorf("trip %s has malformed start date %q: %w", t.ID, start, err)
		}
		if t.EndDate, err = core.ParseDate(end); err != nil {
			return nil, fmt.Errorf("trip %s has malformed end date %q: %w", t.ID, end, err)
		}
		t.Expenses = []core.TripExpense{}
		trips = append(trips, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	byID := make(map[string]int, len(trips))
	for i, t := range trips {
		byID[t.ID] = i
	}

	expRows, err := s.db.QueryContext(ctx, `
		SELECT id, trip_id, amount_cents, category, description, expense_date
		FROM trip_expenses ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("load trip expenses: %w", err)
	}
	defer expRows.Close()

	for expRows.Next() {
		var (
			e       core.TripExpense
			tripID  string
			cents   int64
			rawDate string
		)
		if err := expRows.Scan(&e.ID, &tripID, &cents, &e.Category, &e.Description, &rawDate); err != nil {
			return nil, fmt.Errorf("scan trip expense: %w", err)
		}
		e.Amount = core.Money{Cents: cents}
		if e.Date, err = core.ParseDate(rawDate); err != nil {
			return nil, fmt.Errorf("trip expense %s has malformed date %q: %w", e.ID, rawDate, err)
		}
		idx, ok := byID[tripID]
		if !ok {
			// Orphan row; cascade should prevent this, skip defensively.
			continue
		}
		trips[idx].Expenses = append(trips[idx].Expenses, e)
	}
	return trips, expRows.Err()
}

// Save replaces the whole document in one transaction, mirroring the atomic
// full-file rewrite of the JSON store.
func (s *SQLiteStore) Save(ctx context.Context, state core.AppState) error {
	state.Normalize()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save transaction: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range []string{
		`DELETE FROM trip_expenses`,
		`DELETE FROM trips`,
		`DELETE FROM entries`,
	} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("clear previous document: %w", err)
		}
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO app_settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		currencyKey, string(state.SelectedCurrency)); err != nil {
		return fmt.Errorf("save currency: %w", err)
	}

	for i, e := range state.Entries {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO entries (id, entry_type, amount_cents, category, entry_date, description, position)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			e.ID, string(e.EntryType), e.Amount.Cents, e.Category, e.Date.String(), e.Description, i); err != nil {
			return fmt.Errorf("save entry %s: %w", e.ID, err)
		}
	}

	for i, t := range state.Trips {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO trips (id, name, destination, budget_cents, start_date, end_date, position)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			t.ID, t.Name, t.Destination, t.Budget.Cents, t.StartDate.String(), t.EndDate.String(), i); err != nil {
			return fmt.Errorf("save trip %s: %w", t.ID, err)
		}
		for j, e := range t.Expenses {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO trip_expenses (id, trip_id, amount_cents, category, description, expense_date, position)
				VALUES (?, ?, ?, ?, ?, ?, ?)`,
				e.ID, t.ID, e.Amount.Cents, e.Category, e.Description, e.Date.String(), j); err != nil {
				return fmt.Errorf("save trip expense %s: %w", e.ID, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save transaction: %w", err)
	}

	slog.DebugContext(ctx, "State saved to sqlite",
		"entries", len(state.Entries),
		"trips", len(state.Trips))
	return nil
}
