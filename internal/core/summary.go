package core

import "time"

type (
	// Summary aggregates one calendar window (ISO week or month).
	Summary struct {
		TotalIncome   Money `json:"total_income"`
		TotalExpenses Money `json:"total_expenses"`
		NetBalance    Money `json:"net_balance"`
	}

	// MonthTrend is one row of a multi-month trend series.
	MonthTrend struct {
		Month     int    `json:"month"`
		Year      int    `json:"year"`
		MonthName string `json:"month_name"`
		Income    Money  `json:"income"`
		Expenses  Money  `json:"expenses"`
		Net       Money  `json:"net"`
	}

	// CategoryStat is one category's share of a type's total for a month.
	CategoryStat struct {
		Category   string  `json:"category"`
		Total      Money   `json:"total"`
		Count      int     `json:"count"`
		Percentage float64 `json:"percentage"`
	}

	// Analytics partitions one month's entries by category per type. Only
	// categories with at least one entry appear, in first-seen order.
	Analytics struct {
		TotalIncome       Money          `json:"total_income"`
		TotalExpenses     Money          `json:"total_expenses"`
		IncomeByCategory  []CategoryStat `json:"income_by_category"`
		ExpenseByCategory []CategoryStat `json:"expense_by_category"`
	}
)

// WeeklySummary totals the entries whose date falls in the given ISO week.
func WeeklySummary(entries []Entry, week, year int) Summary {
	return summarize(entries, func(e Entry) bool {
		wy, w := e.Date.ISOWeek()
		return w == week && wy == year
	})
}

// MonthlySummary totals the entries of one calendar month.
func MonthlySummary(entries []Entry, month, year int) Summary {
	return summarize(entries, inMonth(month, year))
}

func summarize(entries []Entry, match func(Entry) bool) Summary {
	var s Summary
	for _, e := range entries {
		if !match(e) {
			continue
		}
		switch e.EntryType {
		case Income:
			s.TotalIncome = s.TotalIncome.Add(e.Amount)
		case Expense:
			s.TotalExpenses = s.TotalExpenses.Add(e.Amount)
		}
	}
	s.NetBalance = s.TotalIncome.Sub(s.TotalExpenses)
	return s
}

func inMonth(month, year int) func(Entry) bool {
	return func(e Entry) bool {
		return e.Date.Month() == month && e.Date.Year() == year
	}
}

// MonthlyTrends computes per-month totals for the last months calendar
// months ending at the month of now, oldest first. Months without entries
// yield zero rows; the result always has exactly months elements (empty for
// months <= 0).
func MonthlyTrends(entries []Entry, months int, now time.Time) []MonthTrend {
	trends := make([]MonthTrend, 0, max(months, 0))
	for i := months - 1; i >= 0; i-- {
		anchor := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -i, 0)
		month, year := int(anchor.Month()), anchor.Year()
		s := MonthlySummary(entries, month, year)
		trends = append(trends, MonthTrend{
			Month:     month,
			Year:      year,
			MonthName: anchor.Month().String(),
			Income:    s.TotalIncome,
			Expenses:  s.TotalExpenses,
			Net:       s.NetBalance,
		})
	}
	return trends
}

// CategoryAnalytics breaks one month's entries down by category, per type.
// Percentages are of the type's month total and 0 when that total is zero.
func CategoryAnalytics(entries []Entry, month, year int) Analytics {
	s := MonthlySummary(entries, month, year)
	a := Analytics{
		TotalIncome:       s.TotalIncome,
		TotalExpenses:     s.TotalExpenses,
		IncomeByCategory:  breakdown(entries, Income, month, year, s.TotalIncome),
		ExpenseByCategory: breakdown(entries, Expense, month, year, s.TotalExpenses),
	}
	return a
}

func breakdown(entries []Entry, t EntryType, month, year int, typeTotal Money) []CategoryStat {
	match := inMonth(month, year)
	totals := map[string]*CategoryStat{}
	order := []string{}
	for _, e := range entries {
		if e.EntryType != t || !match(e) {
			continue
		}
		stat, ok := totals[e.Category]
		if !ok {
			stat = &CategoryStat{Category: e.Category}
			totals[e.Category] = stat
			order = append(order, e.Category)
		}
		stat.Total = stat.Total.Add(e.Amount)
		stat.Count++
	}
	out := make([]CategoryStat, 0, len(order))
	for _, cat := range order {
		stat := *totals[cat]
		if typeTotal.Cents > 0 {
			stat.Percentage = 100 * float64(stat.Total.Cents) / float64(typeTotal.Cents)
		}
		out = append(out, stat)
	}
	return out
}
