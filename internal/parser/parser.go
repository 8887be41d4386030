// Package parser turns a locator string into a typed internal/ast.Ast, per
// the grammar:
//
//	locator ::= cascade
//	cascade ::= segment (">>" segment)*
//	segment ::= "*"? segment_body
//
// segment_body is dispatched on its leading characters: "//" selects the
// XPath subset, "#" is shorthand for "name:<rest>", an unquoted "key:"
// prefix (checked against the recognised legacy keys) selects the legacy
// grammar, "<engine>=" selects an explicitly engine-tagged payload, and
// anything else is parsed as CSS.
package parser

import (
	"strings"

	"github.com/cwbudde/swinglibrary-go/errs"
	"github.com/cwbudde/swinglibrary-go/internal/ast"
	"github.com/cwbudde/swinglibrary-go/internal/token"
)

// engines lists the recognised "<engine>=" locator prefixes.
var engines = map[string]bool{
	"name": true, "text": true, "class": true, "id": true, "xpath": true, "index": true, "css": true,
}

// Parse is the package's public entry point: it turns locator into an Ast,
// or a *errs.LocatorParseError / *errs.EmptyLocator on malformed input.
func Parse(locator string) (ast.Ast, error) {
	if strings.TrimSpace(locator) == "" {
		return nil, &errs.EmptyLocator{}
	}

	spans := splitCascade(locator)
	if len(spans) == 1 {
		_, body, err := parseSegment(spans[0].text, spans[0].start, locator)
		if err != nil {
			return nil, err
		}
		return body, nil
	}

	segments := make([]ast.CascadeSegment, 0, len(spans))
	for _, sp := range spans {
		capture, body, err := parseSegment(sp.text, sp.start, locator)
		if err != nil {
			return nil, err
		}
		segments = append(segments, ast.CascadeSegment{Capture: capture, Inner: body})
	}
	return ast.NewCascade(segments, token.Position{Line: 1, Column: 1, Offset: 0}), nil
}

// parseSegment parses one `>>`-delimited span: an optional leading `*`
// capture marker followed by the segment body in whichever sub-grammar its
// contents select. offset is the span's byte offset in the original
// locator, used to translate sub-parser errors back to the caller's
// coordinates; input is the full original locator, for error reporting.
func parseSegment(text string, offset int, input string) (capture bool, body ast.Ast, err error) {
	trimmed := strings.TrimLeft(text, " \t\r\n")
	leadingWS := len(text) - len(trimmed)

	// A lone `*` is the CSS universal selector, not a capture marker.
	if strings.HasPrefix(trimmed, "*") && strings.TrimSpace(trimmed[1:]) != "" {
		capture = true
		trimmed = trimmed[1:]
		leadingWS++
	}
	trimmed = strings.TrimRight(trimmed, " \t\r\n")
	bodyTrimmedForDispatch := strings.TrimLeft(trimmed, " \t\r\n")
	segOffset := offset + leadingWS + (len(trimmed) - len(bodyTrimmedForDispatch))

	node, err := dispatchSegmentBody(bodyTrimmedForDispatch)
	if err != nil {
		if se, ok := err.(*structuredError); ok {
			se.pos.Offset += segOffset
			return false, nil, toLocatorParseError(input, se)
		}
		return false, nil, err
	}
	return capture, node, nil
}

// dispatchSegmentBody implements the segment_body grammar dispatch. Errors
// returned here carry positions relative to body (offset 0); the caller
// (parseSegment) translates them into the original locator's coordinates.
func dispatchSegmentBody(body string) (ast.Ast, error) {
	if body == "" {
		return nil, newError(token.Position{Line: 1, Column: 1, Offset: 0}, "a non-empty locator segment")
	}

	if strings.HasPrefix(body, "//") {
		return parseXPath(body)
	}

	if strings.HasPrefix(body, "#") {
		return ast.NewLegacy(ast.LegacyName, body[1:], token.Position{Line: 1, Column: 1, Offset: 0}), nil
	}

	if eng, payload, ok := splitEnginePrefix(body); ok {
		return dispatchEngine(eng, payload)
	}

	if name, value, ok := splitLegacyPrefix(body); ok {
		return parseLegacy(name, value, token.Position{Line: 1, Column: 1, Offset: 0})
	}

	return parseCss(body)
}

// splitEnginePrefix recognises "<engine>=" where engine is one of the
// fixed set in the engines map, and the '=' precedes any '[' (so CSS
// attribute selectors like `[name=x]` are never mistaken for an
// engine-prefixed locator).
func splitEnginePrefix(body string) (engine, payload string, ok bool) {
	eq := strings.IndexByte(body, '=')
	if eq < 0 {
		return "", "", false
	}
	bracket := strings.IndexByte(body, '[')
	if bracket >= 0 && bracket < eq {
		return "", "", false
	}
	prefix := strings.ToLower(body[:eq])
	if !engines[prefix] {
		return "", "", false
	}
	return prefix, body[eq+1:], true
}

// dispatchEngine parses payload according to the fixed engine it was
// explicitly tagged with; the default when no engine prefix is present
// is CSS.
func dispatchEngine(engine, payload string) (ast.Ast, error) {
	zeroPos := token.Position{Line: 1, Column: 1, Offset: 0}
	switch engine {
	case "xpath":
		return parseXPath(payload)
	case "css":
		return parseCss(payload)
	case "index":
		if !isNonNegativeInt(payload) {
			return nil, newError(zeroPos, "a non-negative integer index")
		}
		return ast.NewLegacy(ast.LegacyIndex, payload, zeroPos), nil
	case "name":
		return ast.NewLegacy(ast.LegacyName, payload, zeroPos), nil
	case "text":
		return ast.NewLegacy(ast.LegacyText, payload, zeroPos), nil
	case "class":
		return ast.NewLegacy(ast.LegacyClass, payload, zeroPos), nil
	case "id":
		return ast.NewLegacy(ast.LegacyID, payload, zeroPos), nil
	default:
		return nil, newError(zeroPos, "a recognised engine")
	}
}
