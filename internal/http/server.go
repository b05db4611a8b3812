// Package http exposes the ledger's boundary contract as a JSON API. The
// presentation layer invokes these routes; all state and derivation logic
// stays behind the service package.
package http

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"budsjetto/internal/core"
	applog "budsjetto/internal/log"
)

// Ledger is the boundary contract the server exposes. The service package
// implements it.
type Ledger interface {
	Currency() core.Currency
	SetCurrency(ctx context.Context, c core.Currency) error

	AddEntry(ctx context.Context, entryType core.EntryType, amount core.Money, category string, date core.Date, description string) (core.Entry, error)
	Entries() []core.Entry
	DeleteEntry(ctx context.Context, id string) error

	CreateTrip(ctx context.Context, name, destination string, budget core.Money, startDate, endDate core.Date) (core.Trip, error)
	Trips() []core.TripReport
	AddTripExpense(ctx context.Context, tripID string, amount core.Money, category, description string, date core.Date) (core.TripExpense, error)
	DeleteTrip(ctx context.Context, tripID string) error
	DeleteTripExpense(ctx context.Context, tripID, expenseID string) error

	WeeklySummary(week, year int) core.Summary
	MonthlySummary(month, year int) core.Summary
	MonthlyTrends(months int) []core.MonthTrend
	CategoryAnalytics(month, year int) core.Analytics

	ExportCSV(ctx context.Context) (string, error)
}

type Server struct {
	http.Server
	ledger Ledger
}

// NewServer configures all routes, returning a ready-to-run http.Server.
func NewServer(addr string, ledger Ledger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: mux,
		},
		ledger: ledger,
	}

	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", handleReady)

	mux.HandleFunc("GET /api/currency", s.withRequestLog(s.handleGetCurrency))
	mux.HandleFunc("PUT /api/currency", s.withRequestLog(s.handleSetCurrency))
	mux.HandleFunc("GET /api/categories", s.withRequestLog(s.handleCategories))

	mux.HandleFunc("GET /api/entries", s.withRequestLog(s.handleListEntries))
	mux.HandleFunc("POST /api/entries", s.withRequestLog(s.handleAddEntry))
	mux.HandleFunc("DELETE /api/entries/{id}", s.withRequestLog(s.handleDeleteEntry))

	mux.HandleFunc("GET /api/summary/weekly", s.withRequestLog(s.handleWeeklySummary))
	mux.HandleFunc("GET /api/summary/monthly", s.withRequestLog(s.handleMonthlySummary))
	mux.HandleFunc("GET /api/trends", s.withRequestLog(s.handleTrends))
	mux.HandleFunc("GET /api/analytics", s.withRequestLog(s.handleAnalytics))

	mux.HandleFunc("GET /api/trips", s.withRequestLog(s.handleListTrips))
	mux.HandleFunc("POST /api/trips", s.withRequestLog(s.handleCreateTrip))
	mux.HandleFunc("DELETE /api/trips/{id}", s.withRequestLog(s.handleDeleteTrip))
	mux.HandleFunc("POST /api/trips/{id}/expenses", s.withRequestLog(s.handleAddTripExpense))
	mux.HandleFunc("DELETE /api/trips/{id}/expenses/{expenseID}", s.withRequestLog(s.handleDeleteTripExpense))

	mux.HandleFunc("POST /api/export", s.withRequestLog(s.handleExport))

	return s
}

// withRequestLog adds security headers, a request id and request logging.
func (s *Server) withRequestLog(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		clientIP := r.Header.Get("X-Forwarded-For")
		if clientIP == "" {
			clientIP = r.RemoteAddr
		}
		requestID := generateRequestID()

		slog.InfoContext(r.Context(), "Request started",
			applog.FieldRequestID, requestID,
			applog.FieldMethod, r.Method,
			applog.FieldPath, r.URL.Path,
			applog.FieldClientIP, clientIP,
			applog.FieldUserAgent, r.Header.Get("User-Agent"))

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		slog.InfoContext(r.Context(), "Request completed",
			applog.FieldRequestID, requestID,
			applog.FieldMethod, r.Method,
			applog.FieldPath, r.URL.Path,
			applog.FieldStatus, rw.statusCode,
			applog.FieldDuration, time.Since(start).Milliseconds(),
			applog.FieldClientIP, clientIP)
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func generateRequestID() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		return fmt.Sprintf("req_%d", time.Now().UnixNano())
	}
	return "req_" + hex.EncodeToString(bytes)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
