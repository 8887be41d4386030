// Package errs is the closed error taxonomy of the locator pipeline and
// RPC coordinator. Every kind is its own exported struct
// implementing error; callers type-switch or use errors.As to recover
// structured fields instead of parsing messages.
package errs

import (
	"fmt"
	"strings"
	"time"
)

// LocatorParseError reports a malformed locator string. Offset points at
// the first offending byte; the input truncated to Offset is guaranteed
// to be a prefix of some valid locator.
type LocatorParseError struct {
	Input    string
	Offset   int
	Expected string
}

func (e *LocatorParseError) Error() string {
	return fmt.Sprintf("invalid locator %q at offset %d: expected %s", e.Input, e.Offset, e.Expected)
}

// EmptyLocator is returned for an empty locator string.
type EmptyLocator struct{}

func (EmptyLocator) Error() string { return "locator must not be empty" }

// ElementNotFound reports that no component matched a locator. Similar
// holds up to 5 near-miss candidates.
type ElementNotFound struct {
	Locator     string
	Similar     []string
	Suggestions []string
}

func (e *ElementNotFound) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "no element found for locator %q", e.Locator)
	if len(e.Similar) > 0 {
		fmt.Fprintf(&b, " (similar: %s)", strings.Join(e.Similar, ", "))
	}
	return b.String()
}

// StaleHandle reports that a cached ComponentHandle no longer resolves to
// a live component (cache invalidated, or agent reported staleHandle).
type StaleHandle struct {
	Handle int64
}

func (e *StaleHandle) Error() string {
	return fmt.Sprintf("component handle %d is stale", e.Handle)
}

// ConnectionError wraps a recoverable transport failure.
type ConnectionError struct {
	Message     string
	Recoverable bool
}

func (e *ConnectionError) Error() string { return "connection error: " + e.Message }

// ProtocolError wraps a JSON-RPC error object, or a transport-level
// framing violation (malformed JSON, missing/mismatched id).
type ProtocolError struct {
	Code    int
	Message string
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("protocol error %d: %s", e.Code, e.Message)
}

// ActionTimeout reports that an operation exceeded its deadline.
type ActionTimeout struct {
	Operation string
	Seconds   float64
}

func (e *ActionTimeout) Error() string {
	return fmt.Sprintf("%s timed out after %.3fs", e.Operation, e.Seconds)
}

// ActionFailed reports an agent-side action failure (e.g. a click on a
// disabled button), distinct from a transport or protocol problem.
type ActionFailed struct {
	Action string
	Reason string
}

func (e *ActionFailed) Error() string {
	return fmt.Sprintf("action %q failed: %s", e.Action, e.Reason)
}

// AssertionError is raised by the assertion engine when an operator never
// succeeds before its deadline.
type AssertionError struct {
	Locator  string
	Operator string
	Expected string
	Actual   string
	Elapsed  time.Duration
	// Message overrides the default formatting verbatim when non-empty,
	// for a caller-supplied message.
	Message string
}

func (e *AssertionError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("assertion failed for %q: expected %s %q, got %q (after %s)",
		e.Locator, e.Operator, e.Expected, e.Actual, e.Elapsed)
}

// UnsupportedOperator is returned by the assertion engine for an operator
// it cannot evaluate: `validate`, an unknown operator name, or a `then`
// chain whose operator and expected parts differ in count.
type UnsupportedOperator struct {
	Operator string
}

func (e *UnsupportedOperator) Error() string {
	return fmt.Sprintf("unsupported assertion operator %q", e.Operator)
}

// UnsupportedFormat is returned by tree inspection for a format it does
// not implement: `yaml` or any unknown format name.
type UnsupportedFormat struct {
	Format string
}

func (e *UnsupportedFormat) Error() string {
	return fmt.Sprintf("unsupported tree format %q", e.Format)
}

// IsRetryable reports whether err is a kind the assertion engine's retry
// loop should swallow until its deadline: only ElementNotFound is
// retryable, since every other producer error surfaces immediately.
func IsRetryable(err error) bool {
	_, ok := err.(*ElementNotFound)
	return ok
}
