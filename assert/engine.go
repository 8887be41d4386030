// Package assert implements the inline assertion operators the session
// façade evaluates against a resolved element's properties, with bounded
// retry while the target locator has not yet appeared or the comparison
// does not yet hold.
package assert

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/cwbudde/swinglibrary-go/errs"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Resolver fetches the current value of a locator/attribute pair. It
// returns *errs.ElementNotFound while the target has not appeared yet; the
// Engine's retry loop is the only caller that treats that error as
// transient (via errs.IsRetryable).
type Resolver func(locator, attribute string) (string, error)

// Engine evaluates one assertion, retrying while Resolver returns a
// retryable error or the comparison fails, until it passes or the
// deadline elapses.
type Engine struct {
	PollInterval time.Duration
}

// NewEngine returns an Engine with a 100ms poll interval.
func NewEngine() *Engine {
	return &Engine{PollInterval: 100 * time.Millisecond}
}

// Assert evaluates `actual(locator, attribute) <operator> expected`,
// applying formatters (left to right) to the resolved value before
// comparison, retrying until timeout elapses.
func (e *Engine) Assert(resolve Resolver, locator, attribute, operator, expected string, formatters []string, timeout time.Duration, message string) error {
	deadline := time.Now().Add(timeout)
	interval := e.PollInterval
	if interval <= 0 {
		interval = 100 * time.Millisecond
	}

	var lastActual string
	var lastErr error
	start := time.Now()
	for {
		actual, err := resolve(locator, attribute)
		if err == nil {
			formatted := applyFormatters(actual, formatters)
			ok, evalErr := Evaluate(operator, formatted, expected)
			if evalErr != nil {
				return evalErr
			}
			if ok {
				return nil
			}
			lastActual = formatted
			lastErr = nil
		} else if errs.IsRetryable(err) {
			lastErr = err
		} else {
			return err
		}

		if time.Now().After(deadline) {
			if lastErr != nil {
				return lastErr
			}
			return &errs.AssertionError{
				Locator: locator, Operator: operator, Expected: expected,
				Actual: lastActual, Elapsed: time.Since(start), Message: message,
			}
		}
		time.Sleep(interval)
	}
}

// thenSeparator joins chained sub-assertions in both the operator and
// expected strings, e.g. operator "contains then starts" paired with
// expected "Hello then Wor" requires both `actual contains "Hello"` and
// `actual starts "Wor"`.
const thenSeparator = " then "

// Evaluate applies a single operator, returning an *errs.UnsupportedOperator
// for `validate` (no safe embedded expression evaluator is available) and
// unknown operators. `then` chains two
// or more sub-operators as a boolean AND: operator and expected are each
// split on " then " and evaluated pairwise, short-circuiting on the first
// failure.
func Evaluate(operator, actual, expected string) (bool, error) {
	if strings.Contains(operator, thenSeparator) {
		ops := strings.Split(operator, thenSeparator)
		vals := strings.Split(expected, thenSeparator)
		if len(ops) != len(vals) {
			return false, &errs.UnsupportedOperator{Operator: operator}
		}
		for i, op := range ops {
			ok, err := Evaluate(strings.TrimSpace(op), actual, vals[i])
			if err != nil {
				return false, err
			}
			if !ok {
				return false, nil
			}
		}
		return true, nil
	}
	switch operator {
	case "==":
		return actual == expected, nil
	case "!=":
		return actual != expected, nil
	case "<":
		return less(actual, expected), nil
	case ">":
		return less(expected, actual), nil
	case "<=":
		return !less(expected, actual), nil
	case ">=":
		return !less(actual, expected), nil
	case "contains":
		return strings.Contains(actual, expected), nil
	case "not contains":
		return !strings.Contains(actual, expected), nil
	case "starts":
		return strings.HasPrefix(actual, expected), nil
	case "ends":
		return strings.HasSuffix(actual, expected), nil
	case "matches":
		re, err := regexp.Compile(expected)
		if err != nil {
			return false, &errs.ProtocolError{Code: -32602, Message: "invalid regex: " + err.Error()}
		}
		return re.MatchString(actual), nil
	case "validate":
		return false, &errs.UnsupportedOperator{Operator: operator}
	default:
		return false, &errs.UnsupportedOperator{Operator: operator}
	}
}

// less orders a and b numerically when both parse as floats (so "10" sorts
// after "9"), falling back to lexicographic order for any value that does
// not parse as a number.
func less(a, b string) bool {
	af, aerr := strconv.ParseFloat(strings.TrimSpace(a), 64)
	bf, berr := strconv.ParseFloat(strings.TrimSpace(b), 64)
	if aerr == nil && berr == nil {
		return af < bf
	}
	return a < b
}

var (
	titleCaser = cases.Title(language.Und)
	lowerCaser = cases.Lower(language.Und)
	upperCaser = cases.Upper(language.Und)
)

// applyFormatters runs the named formatters left to right over s.
// Unrecognised formatter names are skipped: they leave the value unchanged
// and no error is reported for them.
func applyFormatters(s string, formatters []string) string {
	for _, f := range formatters {
		switch f {
		case "strip":
			s = strings.TrimSpace(s)
		case "lowercase":
			s = lowerCaser.String(s)
		case "uppercase":
			s = upperCaser.String(s)
		case "normalize_spaces":
			s = strings.Join(strings.Fields(s), " ")
		case "title":
			s = titleCaser.String(s)
		}
	}
	return s
}
