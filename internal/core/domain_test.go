package core

import (
	"encoding/json"
	"testing"
)

func TestEntryValidate(t *testing.T) {
	good := Entry{
		ID:        "e1",
		EntryType: Expense,
		Amount:    Money{Cents: 100},
		Category:  "Food",
		Date:      NewDate(2024, 3, 12),
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []Entry{
		{EntryType: "transfer", Amount: Money{Cents: 1}, Category: "c", Date: NewDate(2024, 1, 1)},
		{EntryType: Income, Amount: Money{Cents: 0}, Category: "c", Date: NewDate(2024, 1, 1)},
		{EntryType: Income, Amount: Money{Cents: -50}, Category: "c", Date: NewDate(2024, 1, 1)},
		{EntryType: Income, Amount: Money{Cents: 1}, Category: "", Date: NewDate(2024, 1, 1)},
		{EntryType: Income, Amount: Money{Cents: 1}, Category: "c", Date: Date{}},
	}
	for i, e := range bads {
		if err := e.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestTripValidate(t *testing.T) {
	good := Trip{
		Name:      "Summer",
		Budget:    Money{Cents: 100000},
		StartDate: NewDate(2024, 7, 1),
		EndDate:   NewDate(2024, 7, 14),
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	// Zero budget is allowed, negative is not.
	good.Budget = Money{Cents: 0}
	if err := good.Validate(); err != nil {
		t.Fatalf("zero budget should validate, got %v", err)
	}
	good.Budget = Money{Cents: -1}
	if err := good.Validate(); err == nil {
		t.Fatalf("expected error for negative budget")
	}
	good.Budget = Money{Cents: 1}
	good.Name = "  "
	if err := good.Validate(); err == nil {
		t.Fatalf("expected error for blank name")
	}
}

func TestTripTotalSpentIsDerived(t *testing.T) {
	trip := Trip{
		Name:      "City break",
		Budget:    Money{Cents: 100000},
		StartDate: NewDate(2024, 5, 1),
		EndDate:   NewDate(2024, 5, 4),
		Expenses: []TripExpense{
			{ID: "x1", Amount: Money{Cents: 30000}, Category: "Food", Date: NewDate(2024, 5, 1)},
			{ID: "x2", Amount: Money{Cents: 90000}, Category: "Accommodation", Date: NewDate(2024, 5, 2)},
		},
	}
	report := trip.Report()
	if report.TotalSpent.Cents != 120000 {
		t.Fatalf("total_spent = %d, want 120000", report.TotalSpent.Cents)
	}
	// Overrun is the caller's concern; the total still reports faithfully.
	if report.TotalSpent.Sub(report.Budget).Cents != 20000 {
		t.Fatalf("overrun = %d, want 20000", report.TotalSpent.Sub(report.Budget).Cents)
	}
}

func TestErrorClassification(t *testing.T) {
	if !IsValidation(ErrInvalidAmount) || !IsValidation(ErrInvalidCurrency) {
		t.Fatalf("validation sentinels not classified")
	}
	if !IsNotFound(ErrTripNotFound) || !IsNotFound(ErrEntryNotFound) || !IsNotFound(ErrTripExpenseNotFound) {
		t.Fatalf("not-found sentinels not classified")
	}
	if IsValidation(ErrEntryNotFound) || IsNotFound(ErrInvalidAmount) {
		t.Fatalf("sentinels classified into the wrong kind")
	}
}

func TestAppStateJSONRoundTrip(t *testing.T) {
	st := AppState{
		SelectedCurrency: EUR,
		Entries: []Entry{
			{ID: "e1", EntryType: Income, Amount: Money{Cents: 500000}, Category: "Salary", Date: NewDate(2024, 3, 10), Description: "March pay"},
		},
		Trips: []Trip{
			{
				ID: "t1", Name: "Oslo", Destination: "Oslo", Budget: Money{Cents: 100000},
				StartDate: NewDate(2024, 6, 1), EndDate: NewDate(2024, 6, 3),
				Expenses: []TripExpense{
					{ID: "x1", Amount: Money{Cents: 2550}, Category: "Food", Description: "lunch", Date: NewDate(2024, 6, 1)},
				},
			},
		},
	}

	raw, err := json.Marshal(st)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var back AppState
	if err := json.Unmarshal(raw, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.SelectedCurrency != EUR {
		t.Fatalf("currency = %s, want EUR", back.SelectedCurrency)
	}
	if len(back.Entries) != 1 || back.Entries[0].Amount.Cents != 500000 {
		t.Fatalf("entries did not survive round trip: %+v", back.Entries)
	}
	if back.Entries[0].Date.String() != "2024-03-10" {
		t.Fatalf("date = %s, want 2024-03-10", back.Entries[0].Date)
	}
	if len(back.Trips) != 1 || len(back.Trips[0].Expenses) != 1 || back.Trips[0].Expenses[0].Amount.Cents != 2550 {
		t.Fatalf("trips did not survive round trip: %+v", back.Trips)
	}
}

func TestAppStateNormalize(t *testing.T) {
	var st AppState
	st.Normalize()
	if st.SelectedCurrency != NOK {
		t.Fatalf("currency = %s, want NOK", st.SelectedCurrency)
	}
	if st.Entries == nil || st.Trips == nil {
		t.Fatalf("collections should be non-nil after Normalize")
	}
}

func TestAppStateCloneIsDeep(t *testing.T) {
	st := DefaultAppState()
	st.Trips = append(st.Trips, Trip{
		ID: "t1", Name: "n", Budget: Money{Cents: 1},
		StartDate: NewDate(2024, 1, 1), EndDate: NewDate(2024, 1, 2),
		Expenses:  []TripExpense{{ID: "x1", Amount: Money{Cents: 1}, Category: "c", Date: NewDate(2024, 1, 1)}},
	})

	clone := st.Clone()
	clone.Trips[0].Expenses[0].Amount = Money{Cents: 999}
	if st.Trips[0].Expenses[0].Amount.Cents != 1 {
		t.Fatalf("clone shares trip expense backing array with original")
	}
}
