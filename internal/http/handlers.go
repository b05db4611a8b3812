package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"budsjetto/internal/core"
)

func (s *Server) handleGetCurrency(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]core.Currency{"currency": s.ledger.Currency()})
}

func (s *Server) handleSetCurrency(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Currency core.Currency `json:"currency"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if err := s.ledger.SetCurrency(r.Context(), req.Currency); err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]core.Currency{"currency": req.Currency})
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string][]string{
		"income":       core.IncomeCategories,
		"expense":      core.ExpenseCategories,
		"trip_expense": core.TripExpenseCategories,
	})
}

func (s *Server) handleListEntries(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.ledger.Entries())
}

func (s *Server) handleAddEntry(w http.ResponseWriter, r *http.Request) {
	var req struct {
		EntryType   core.EntryType `json:"entry_type"`
		Amount      core.Money     `json:"amount"`
		Category    string         `json:"category"`
		Date        core.Date      `json:"date"`
		Description string         `json:"description"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	entry, err := s.ledger.AddEntry(r.Context(), req.EntryType, req.Amount, req.Category, req.Date, req.Description)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, entry)
}

func (s *Server) handleDeleteEntry(w http.ResponseWriter, r *http.Request) {
	if err := s.ledger.DeleteEntry(r.Context(), r.PathValue("id")); err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

func (s *Server) handleWeeklySummary(w http.ResponseWriter, r *http.Request) {
	week, year := parseWeekParams(r)
	respondJSON(w, http.StatusOK, s.ledger.WeeklySummary(week, year))
}

func (s *Server) handleMonthlySummary(w http.ResponseWriter, r *http.Request) {
	month, year := parseMonthParams(r)
	respondJSON(w, http.StatusOK, s.ledger.MonthlySummary(month, year))
}

func (s *Server) handleTrends(w http.ResponseWriter, r *http.Request) {
	months := parseIntParam(r, "months", 6)
	if months < 1 || months > 120 {
		respondError(w, http.StatusUnprocessableEntity, "months must be between 1 and 120")
		return
	}
	respondJSON(w, http.StatusOK, s.ledger.MonthlyTrends(months))
}

func (s *Server) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	month, year := parseMonthParams(r)
	respondJSON(w, http.StatusOK, s.ledger.CategoryAnalytics(month, year))
}

func (s *Server) handleListTrips(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.ledger.Trips())
}

func (s *Server) handleCreateTrip(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        string     `json:"name"`
		Destination string     `json:"destination"`
		Budget      core.Money `json:"budget"`
		StartDate   core.Date  `json:"start_date"`
		EndDate     core.Date  `json:"end_date"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	trip, err := s.ledger.CreateTrip(r.Context(), req.Name, req.Destination, req.Budget, req.StartDate, req.EndDate)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, trip)
}

func (s *Server) handleDeleteTrip(w http.ResponseWriter, r *http.Request) {
	if err := s.ledger.DeleteTrip(r.Context(), r.PathValue("id")); err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

func (s *Server) handleAddTripExpense(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Amount      core.Money `json:"amount"`
		Category    string     `json:"category"`
		Description string     `json:"description"`
		Date        core.Date  `json:"date"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	expense, err := s.ledger.AddTripExpense(r.Context(), r.PathValue("id"), req.Amount, req.Category, req.Description, req.Date)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, expense)
}

func (s *Server) handleDeleteTripExpense(w http.ResponseWriter, r *http.Request) {
	if err := s.ledger.DeleteTripExpense(r.Context(), r.PathValue("id"), r.PathValue("expenseID")); err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	path, err := s.ledger.ExportCSV(r.Context())
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"path": path})
}

// decodeBody parses a JSON request body into dst. Malformed field values
// that carry a validation sentinel come back as 422, anything else as 400.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if core.IsValidation(err) {
			respondError(w, http.StatusUnprocessableEntity, err.Error())
		} else {
			respondError(w, http.StatusBadRequest, "invalid request body")
		}
		return false
	}
	return true
}

// parseMonthParams reads month/year query parameters, defaulting to the
// current month.
func parseMonthParams(r *http.Request) (month, year int) {
	now := time.Now()
	month = parseIntParam(r, "month", int(now.Month()))
	year = parseIntParam(r, "year", now.Year())
	return month, year
}

// parseWeekParams reads week/year query parameters, defaulting to the
// current ISO week.
func parseWeekParams(r *http.Request) (week, year int) {
	isoYear, isoWeek := time.Now().ISOWeek()
	week = parseIntParam(r, "week", isoWeek)
	year = parseIntParam(r, "year", isoYear)
	return week, year
}

func parseIntParam(r *http.Request, name string, fallback int) int {
	v := r.URL.Query().Get(name)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
