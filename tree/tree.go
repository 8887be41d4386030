// Package tree renders a widget tree snapshot for debugging and the
// getUiTree keyword: a stable pre-order walk, bounded by an
// optional max depth, in one of the supported textual formats.
package tree

import (
	"fmt"
	"strings"

	"github.com/cwbudde/swinglibrary-go/errs"
	"github.com/cwbudde/swinglibrary-go/internal/jsonvalue"
	"github.com/cwbudde/swinglibrary-go/match"
)

// Format selects the tree inspector's output encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Render walks root pre-order to at most maxDepth levels and renders it in
// the given format. maxDepth 0 returns only the root(s); a negative
// maxDepth is unbounded. FormatYAML is reserved but unimplemented, and
// reports *errs.UnsupportedFormat.
func Render(root *match.Node, format Format, maxDepth int) (string, error) {
	switch format {
	case FormatText, "":
		return renderText(root, maxDepth), nil
	case FormatJSON:
		return renderJSON(root, maxDepth), nil
	case FormatYAML:
		return "", &errs.UnsupportedFormat{Format: string(format)}
	default:
		return "", &errs.UnsupportedFormat{Format: string(format)}
	}
}

func renderText(root *match.Node, maxDepth int) string {
	var b strings.Builder
	var walk func(n *match.Node, depth int)
	walk = func(n *match.Node, depth int) {
		b.WriteString(strings.Repeat("  ", depth))
		fmt.Fprintf(&b, "%s (handle=%d)", n.ClassName, n.Handle)
		if n.Name != "" {
			fmt.Fprintf(&b, " name=%q", n.Name)
		}
		if n.Text != "" {
			fmt.Fprintf(&b, " text=%q", n.Text)
		}
		b.WriteByte('\n')
		if maxDepth >= 0 && depth+1 > maxDepth {
			return
		}
		for _, c := range n.Children {
			walk(c, depth+1)
		}
	}
	walk(root, 0)
	return b.String()
}

func renderJSON(root *match.Node, maxDepth int) string {
	return jsonvalue.Dump(toValue(root, maxDepth, 0))
}

func toValue(n *match.Node, maxDepth, depth int) jsonvalue.Value {
	obj := map[string]jsonvalue.Value{
		"class":   jsonvalue.String(n.ClassName),
		"handle":  jsonvalue.Number(float64(n.Handle)),
		"name":    jsonvalue.String(n.Name),
		"text":    jsonvalue.String(n.Text),
		"enabled": jsonvalue.Bool(n.Enabled),
		"visible": jsonvalue.Bool(n.Visible),
	}
	if maxDepth < 0 || depth+1 <= maxDepth {
		children := make([]jsonvalue.Value, len(n.Children))
		for i, c := range n.Children {
			children[i] = toValue(c, maxDepth, depth+1)
		}
		obj["children"] = jsonvalue.Array(children...)
	}
	return jsonvalue.Object(obj)
}
