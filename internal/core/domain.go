package core

import (
	"errors"
	"strings"
)

const (
	Income  EntryType = "income"
	Expense EntryType = "expense"
)

const (
	NOK Currency = "NOK"
	EUR Currency = "EUR"
)

type (
	// EntryType distinguishes income from expense records.
	EntryType string

	// Currency is the display currency of the whole ledger. It labels
	// amounts; it never converts them.
	Currency string

	// Entry is a single income or expense transaction in the main ledger.
	// Entries are immutable after creation and deleted by id.
	Entry struct {
		ID          string    `json:"id"`
		EntryType   EntryType `json:"entry_type"`
		Amount      Money     `json:"amount"`
		Category    string    `json:"category"`
		Date        Date      `json:"date"`
		Description string    `json:"description"`
	}

	// Trip is a bounded sub-budget with its own scoped expense list. The
	// trip owns its expenses exclusively; deleting the trip cascades.
	Trip struct {
		ID          string        `json:"id"`
		Name        string        `json:"name"`
		Destination string        `json:"destination"`
		Budget      Money         `json:"budget"`
		StartDate   Date          `json:"start_date"`
		EndDate     Date          `json:"end_date"`
		Expenses    []TripExpense `json:"expenses"`
	}

	// TripExpense is an expense scoped to one trip.
	TripExpense struct {
		ID          string `json:"id"`
		Amount      Money  `json:"amount"`
		Category    string `json:"category"`
		Description string `json:"description"`
		Date        Date   `json:"date"`
	}

	// TripReport is a Trip annotated with its recomputed spend total. The
	// total is always derived from the expense list, never stored.
	TripReport struct {
		Trip
		TotalSpent Money `json:"total_spent"`
	}

	// AppState is the unit of persistence: the whole ledger is serialized
	// and deserialized as one document.
	AppState struct {
		SelectedCurrency Currency `json:"selected_currency"`
		Entries          []Entry  `json:"entries"`
		Trips            []Trip   `json:"trips"`
	}
)

var (
	ErrInvalidAmount    = errors.New("amount must be positive")
	ErrInvalidEntryType = errors.New("entry type must be income or expense")
	ErrInvalidCurrency  = errors.New("currency must be NOK or EUR")
	ErrInvalidDate      = errors.New("invalid date")
	ErrInvalidBudget    = errors.New("budget must not be negative")
	ErrEmptyName        = errors.New("name must not be empty")
	ErrEmptyCategory    = errors.New("category must not be empty")

	ErrEntryNotFound       = errors.New("entry not found")
	ErrTripNotFound        = errors.New("trip not found")
	ErrTripExpenseNotFound = errors.New("trip expense not found")
)

// Recommended category sets. Entries are not strictly validated against
// them; they seed the presentation layer's pickers.
var (
	IncomeCategories = []string{
		"Salary", "Freelance", "Investment", "Gift", "Other",
	}
	ExpenseCategories = []string{
		"Food", "Transport", "Housing", "Utilities",
		"Entertainment", "Health", "Clothing", "Other",
	}
	TripExpenseCategories = []string{
		"Accommodation", "Transport", "Food", "Activities", "Shopping", "Other",
	}
)

// IsValidation reports whether err is one of the input-validation sentinels.
func IsValidation(err error) bool {
	for _, sentinel := range []error{
		ErrInvalidAmount, ErrInvalidEntryType, ErrInvalidCurrency,
		ErrInvalidDate, ErrInvalidBudget, ErrEmptyName, ErrEmptyCategory,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

// IsNotFound reports whether err is one of the unknown-id sentinels.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrEntryNotFound) ||
		errors.Is(err, ErrTripNotFound) ||
		errors.Is(err, ErrTripExpenseNotFound)
}

func (t EntryType) Validate() error {
	switch t {
	case Income, Expense:
		return nil
	default:
		return ErrInvalidEntryType
	}
}

func (c Currency) Validate() error {
	switch c {
	case NOK, EUR:
		return nil
	default:
		return ErrInvalidCurrency
	}
}

func (e Entry) Validate() error {
	if err := e.EntryType.Validate(); err != nil {
		return err
	}
	if err := e.Amount.Validate(); err != nil {
		return err
	}
	if err := e.Date.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(e.Category) == "" {
		return ErrEmptyCategory
	}
	return nil
}

func (t Trip) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return ErrEmptyName
	}
	if t.Budget.Cents < 0 {
		return ErrInvalidBudget
	}
	if err := t.StartDate.Validate(); err != nil {
		return err
	}
	return t.EndDate.Validate()
}

// TotalSpent sums the trip's expense amounts.
func (t Trip) TotalSpent() Money {
	var total Money
	for _, e := range t.Expenses {
		total = total.Add(e.Amount)
	}
	return total
}

// Report annotates the trip with its recomputed total.
func (t Trip) Report() TripReport {
	return TripReport{Trip: t, TotalSpent: t.TotalSpent()}
}

func (e TripExpense) Validate() error {
	if err := e.Amount.Validate(); err != nil {
		return err
	}
	if err := e.Date.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(e.Category) == "" {
		return ErrEmptyCategory
	}
	return nil
}

// DefaultAppState returns the empty ledger used when no document has been
// persisted yet: no entries, no trips, currency NOK.
func DefaultAppState() AppState {
	return AppState{
		SelectedCurrency: NOK,
		Entries:          []Entry{},
		Trips:            []Trip{},
	}
}

// Normalize replaces nil collections with empty ones so a freshly decoded
// state always marshals back as [] rather than null.
func (s *AppState) Normalize() {
	if s.SelectedCurrency == "" {
		s.SelectedCurrency = NOK
	}
	if s.Entries == nil {
		s.Entries = []Entry{}
	}
	if s.Trips == nil {
		s.Trips = []Trip{}
	}
	for i := range s.Trips {
		if s.Trips[i].Expenses == nil {
			s.Trips[i].Expenses = []TripExpense{}
		}
	}
}

// Clone returns a deep copy of the state. Callers mutate clones, never the
// canonical state they were handed.
func (s AppState) Clone() AppState {
	out := AppState{
		SelectedCurrency: s.SelectedCurrency,
		Entries:          append([]Entry(nil), s.Entries...),
		Trips:            make([]Trip, len(s.Trips)),
	}
	for i, t := range s.Trips {
		t.Expenses = append([]TripExpense(nil), t.Expenses...)
		out.Trips[i] = t
	}
	out.Normalize()
	return out
}
