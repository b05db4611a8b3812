// Package log holds the shared structured-logging conventions: field names
// and component labels used across packages so log output stays queryable.
package log

// Common field names for structured logging
const (
	FieldComponent = "component"
	FieldRequestID = "request_id"
	FieldClientIP  = "client_ip"
	FieldMethod    = "method"
	FieldPath      = "path"
	FieldStatus    = "status"
	FieldDuration  = "duration_ms"
	FieldUserAgent = "user_agent"
	FieldError     = "error"
	FieldBackend   = "backend"
	FieldPort      = "port"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentHTTP    = "http"
	ComponentLedger  = "ledger"
	ComponentStore   = "store"
	ComponentExport  = "export"
	ComponentBackend = "backend"
)
