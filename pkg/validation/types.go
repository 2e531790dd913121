package validation

// RawRequest carries the request metadata inspected by the gate. It is
// built once per inbound request and discarded after gating.
type RawRequest struct {
	Method       string
	ContentType  string
	DeclaredSize int64
	ActualSize   int64
}

// FieldCandidate is a single named string field to validate, with the
// constraints declared by the resource schema.
type FieldCandidate struct {
	Name      string
	Value     *string // nil when the field is absent
	Required  bool
	MaxLength int
}

type GateReason string

const (
	GateTooLarge             GateReason = "too_large"
	GateUnsupportedMediaType GateReason = "unsupported_media_type"
)

type FieldReason string

const (
	FieldMissingRequired       FieldReason = "missing_required"
	FieldTooLong               FieldReason = "too_long"
	FieldHTMLNotAllowed        FieldReason = "html_not_allowed"
	FieldDangerousCharacters   FieldReason = "dangerous_characters"
	FieldSuspectedSQLInjection FieldReason = "suspected_sql_injection"
	FieldForbiddenWord         FieldReason = "forbidden_word"
)

// GateDecision is the outcome of the structural pre-check.
type GateDecision struct {
	Accepted bool
	Reason   GateReason
	Message  string
}

// Outcome is the per-field verdict. Value is only meaningful when Accepted
// is true; a nil Value means the optional field was absent.
type Outcome struct {
	Accepted bool
	Value    *string
	Reason   FieldReason
	Field    string
	Message  string
	Input    string // echo of the original offending value
}

// Rejection is the aggregate pipeline failure handed to the transport layer
// for response rendering. StatusCode distinguishes structural failures
// (413, 415) from content failures (422).
type Rejection struct {
	StatusCode int
	Reason     string
	Field      string
	Message    string
	Input      string
}

// Log classification kinds for the observability surface. One log record is
// emitted per rejection event, carrying enough context that log consumers
// never need to re-run detection.
const (
	kindOversizedRequest      = "oversized_request"
	kindWrongContentType      = "wrong_content_type"
	kindHTMLStripped          = "html_stripped"
	kindDangerousCharacters   = "dangerous_characters"
	kindSQLInjectionSuspected = "sql_injection_suspected"
	kindForbiddenWordFound    = "forbidden_word_found"
	kindMissingRequired       = "missing_required"
	kindTooLong               = "too_long"
)

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
