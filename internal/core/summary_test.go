package core

import (
	"testing"
	"time"
)

func entry(t EntryType, cents int64, category string, date Date) Entry {
	return Entry{EntryType: t, Amount: Money{Cents: cents}, Category: category, Date: date}
}

func TestMonthlySummary(t *testing.T) {
	entries := []Entry{
		entry(Income, 500000, "Salary", NewDate(2024, 3, 10)),
		entry(Expense, 120000, "Food", NewDate(2024, 3, 12)),
		entry(Expense, 9900, "Food", NewDate(2024, 4, 2)), // other month
	}
	s := MonthlySummary(entries, 3, 2024)
	if s.TotalIncome.Cents != 500000 {
		t.Fatalf("total_income = %d, want 500000", s.TotalIncome.Cents)
	}
	if s.TotalExpenses.Cents != 120000 {
		t.Fatalf("total_expenses = %d, want 120000", s.TotalExpenses.Cents)
	}
	if s.NetBalance.Cents != 380000 {
		t.Fatalf("net_balance = %d, want 380000", s.NetBalance.Cents)
	}
}

func TestWeeklySummaryUsesISOWeek(t *testing.T) {
	// 2024-01-01 is a Monday, ISO week 1 of 2024.
	// 2023-12-31 is a Sunday, ISO week 52 of 2023.
	entries := []Entry{
		entry(Income, 1000, "Salary", NewDate(2024, 1, 1)),
		entry(Expense, 400, "Food", NewDate(2024, 1, 7)),   // same ISO week
		entry(Expense, 9999, "Food", NewDate(2023, 12, 31)), // previous ISO week
	}
	s := WeeklySummary(entries, 1, 2024)
	if s.TotalIncome.Cents != 1000 || s.TotalExpenses.Cents != 400 {
		t.Fatalf("summary = %+v, want income 1000 expenses 400", s)
	}
	if s.NetBalance.Cents != s.TotalIncome.Cents-s.TotalExpenses.Cents {
		t.Fatalf("net balance identity broken: %+v", s)
	}

	prev := WeeklySummary(entries, 52, 2023)
	if prev.TotalExpenses.Cents != 9999 {
		t.Fatalf("week 52/2023 expenses = %d, want 9999", prev.TotalExpenses.Cents)
	}
}

func TestMonthlyTrends(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	entries := []Entry{
		entry(Income, 500000, "Salary", NewDate(2024, 3, 10)),
		entry(Expense, 100000, "Food", NewDate(2024, 1, 5)),
	}

	trends := MonthlyTrends(entries, 3, now)
	if len(trends) != 3 {
		t.Fatalf("len = %d, want 3", len(trends))
	}
	// Oldest first, ending at the current month.
	if trends[0].Month != 1 || trends[0].Year != 2024 || trends[0].MonthName != "January" {
		t.Fatalf("trends[0] = %+v, want January 2024", trends[0])
	}
	if trends[2].Month != 3 || trends[2].Year != 2024 {
		t.Fatalf("trends[2] = %+v, want March 2024", trends[2])
	}
	if trends[0].Expenses.Cents != 100000 || trends[0].Net.Cents != -100000 {
		t.Fatalf("January trend = %+v", trends[0])
	}
	// February has no entries but must still be present, zero-valued.
	if trends[1].Month != 2 || trends[1].Income.Cents != 0 || trends[1].Expenses.Cents != 0 {
		t.Fatalf("February trend = %+v, want zero row", trends[1])
	}
	if trends[2].Income.Cents != 500000 {
		t.Fatalf("March income = %d, want 500000", trends[2].Income.Cents)
	}
}

func TestMonthlyTrendsCrossesYearBoundary(t *testing.T) {
	now := time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC)
	trends := MonthlyTrends(nil, 3, now)
	if len(trends) != 3 {
		t.Fatalf("len = %d, want 3", len(trends))
	}
	if trends[0].Month != 11 || trends[0].Year != 2023 {
		t.Fatalf("trends[0] = %+v, want November 2023", trends[0])
	}
	if trends[1].Month != 12 || trends[1].Year != 2023 {
		t.Fatalf("trends[1] = %+v, want December 2023", trends[1])
	}
	if trends[2].Month != 1 || trends[2].Year != 2024 {
		t.Fatalf("trends[2] = %+v, want January 2024", trends[2])
	}
}

func TestMonthlyTrendsZeroMonths(t *testing.T) {
	if got := MonthlyTrends(nil, 0, time.Now()); len(got) != 0 {
		t.Fatalf("len = %d, want 0", len(got))
	}
}

func TestCategoryAnalytics(t *testing.T) {
	entries := []Entry{
		entry(Expense, 10000, "Food", NewDate(2024, 2, 1)),
	}
	a := CategoryAnalytics(entries, 2, 2024)
	if len(a.ExpenseByCategory) != 1 {
		t.Fatalf("expense breakdown len = %d, want 1", len(a.ExpenseByCategory))
	}
	stat := a.ExpenseByCategory[0]
	if stat.Category != "Food" || stat.Total.Cents != 10000 || stat.Count != 1 || stat.Percentage != 100.0 {
		t.Fatalf("stat = %+v", stat)
	}
	// No income that month: empty breakdown, zero total, no division by zero.
	if len(a.IncomeByCategory) != 0 || a.TotalIncome.Cents != 0 {
		t.Fatalf("income side = %+v", a)
	}
}

func TestCategoryAnalyticsPercentagesSumToTypeTotal(t *testing.T) {
	entries := []Entry{
		entry(Expense, 30000, "Food", NewDate(2024, 2, 1)),
		entry(Expense, 10000, "Transport", NewDate(2024, 2, 3)),
		entry(Expense, 20000, "Food", NewDate(2024, 2, 9)),
		entry(Income, 90000, "Salary", NewDate(2024, 2, 25)),
	}
	a := CategoryAnalytics(entries, 2, 2024)

	var sum Money
	var pct float64
	for _, stat := range a.ExpenseByCategory {
		sum = sum.Add(stat.Total)
		pct += stat.Percentage
	}
	if sum.Cents != a.TotalExpenses.Cents {
		t.Fatalf("category totals sum to %d, type total is %d", sum.Cents, a.TotalExpenses.Cents)
	}
	if pct < 99.999 || pct > 100.001 {
		t.Fatalf("percentages sum to %f, want 100", pct)
	}

	byCat := map[string]CategoryStat{}
	for _, stat := range a.ExpenseByCategory {
		byCat[stat.Category] = stat
	}
	if byCat["Food"].Count != 2 || byCat["Food"].Total.Cents != 50000 {
		t.Fatalf("Food stat = %+v", byCat["Food"])
	}
	if len(a.IncomeByCategory) != 1 || a.IncomeByCategory[0].Percentage != 100.0 {
		t.Fatalf("income breakdown = %+v", a.IncomeByCategory)
	}
}
