package domain

import (
	"context"
	"errors"
	"net"
	"time"
)

// CheckErrorKind is a high-level classification of probe runtime errors.
type CheckErrorKind string

const (
	CheckErrorUnknown CheckErrorKind = "unknown"
	CheckErrorTimeout CheckErrorKind = "timeout"
	CheckErrorDNS     CheckErrorKind = "dns"
	CheckErrorConn    CheckErrorKind = "connection"
	CheckErrorHTTP    CheckErrorKind = "http"
	CheckErrorSQL     CheckErrorKind = "sql"
)

// CheckError represents a structured error produced while running a check.
type CheckError struct {
	Kind    CheckErrorKind `json:"kind"`
	Message string         `json:"message"`
}

// NewCheckError classifies a transport-level error into a CheckError.
func NewCheckError(err error) *CheckError {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return &CheckError{Kind: CheckErrorTimeout, Message: err.Error()}
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return &CheckError{Kind: CheckErrorDNS, Message: err.Error()}
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return &CheckError{Kind: CheckErrorTimeout, Message: err.Error()}
		}
		return &CheckError{Kind: CheckErrorConn, Message: err.Error()}
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return &CheckError{Kind: CheckErrorConn, Message: err.Error()}
	}

	return &CheckError{Kind: CheckErrorUnknown, Message: err.Error()}
}

// NewSQLCheckError wraps a database error; the driver already produced a
// human-readable message, so only connectivity-class errors are re-kinded.
func NewSQLCheckError(err error) *CheckError {
	if err == nil {
		return nil
	}
	ce := NewCheckError(err)
	if ce.Kind == CheckErrorUnknown {
		ce.Kind = CheckErrorSQL
	}
	return ce
}

// CheckResult is the outcome of a single verification step.
type CheckResult struct {
	Name    string `json:"name"`
	Passed  bool   `json:"passed"`
	Skipped bool   `json:"skipped,omitempty"`
	Message string `json:"message"`

	// Details are extra human-oriented lines (schema columns, ranking rows).
	Details []string `json:"details,omitempty"`

	LatencyMS int64       `json:"latency_ms,omitempty"`
	Error     *CheckError `json:"error,omitempty"`
}

// SuiteResult groups the checks of one probe run (db, api, login, cache).
type SuiteResult struct {
	Suite     string        `json:"suite"`
	Target    string        `json:"target"`
	StartedAt time.Time     `json:"started_at"`
	EndedAt   time.Time     `json:"ended_at"`
	Checks    []CheckResult `json:"checks"`
}

// Failures counts failed, non-skipped checks.
func (s SuiteResult) Failures() int {
	n := 0
	for _, c := range s.Checks {
		if !c.Passed && !c.Skipped {
			n++
		}
	}
	return n
}

// Report is a persisted probe run covering one or more suites.
type Report struct {
	ID string `json:"id"`

	Profile string `json:"profile,omitempty"`

	StartedAt  time.Time     `json:"started_at"`
	FinishedAt time.Time     `json:"finished_at"`
	Suites     []SuiteResult `json:"suites"`
}

// Failures counts failed checks across all suites.
func (r Report) Failures() int {
	n := 0
	for _, s := range r.Suites {
		n += s.Failures()
	}
	return n
}
