package parser

import (
	"strings"

	"github.com/cwbudde/swinglibrary-go/internal/ast"
	"github.com/cwbudde/swinglibrary-go/internal/token"
)

// parseLegacy parses the `kind:value` shorthand. body has already been
// identified by the caller as having an unquoted top-level ':' before any
// '[' with a recognised key prefix; name is the lowercased key and value is
// everything after the colon, taken verbatim (glob wildcards and all).
func parseLegacy(name, value string, pos token.Position) (*ast.Legacy, error) {
	kind, ok := ast.LegacyKinds[name]
	if !ok {
		return nil, newError(pos, "a recognised legacy key (name, text, id, class, type, tooltip, label, index)")
	}
	if kind == ast.LegacyIndex {
		if !isNonNegativeInt(value) {
			return nil, newError(pos, "a non-negative integer index")
		}
	}
	return ast.NewLegacy(kind, value, pos), nil
}

func isNonNegativeInt(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// splitLegacyPrefix looks for an unquoted ':' occurring before any '[' in
// trimmed, returning the lowercased prefix and the remainder when that
// prefix is a recognised legacy key. ok is false when the segment is not a
// legacy locator, in which case the caller falls through to the engine-
// prefixed or CSS dispatch.
func splitLegacyPrefix(trimmed string) (name, value string, ok bool) {
	bracket := strings.IndexByte(trimmed, '[')
	colon := strings.IndexByte(trimmed, ':')
	if colon < 0 {
		return "", "", false
	}
	if bracket >= 0 && bracket < colon {
		return "", "", false
	}
	prefix := strings.ToLower(trimmed[:colon])
	if _, known := ast.LegacyKinds[prefix]; !known {
		return "", "", false
	}
	return prefix, trimmed[colon+1:], true
}
