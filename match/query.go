package match

import (
	"github.com/cwbudde/swinglibrary-go/internal/ast"
	"github.com/cwbudde/swinglibrary-go/internal/jsonvalue"
)

// Query serialises a parsed locator into the protocol's query object, the
// shape findWidgets accepts on the wire:
//
//	{"type":"legacy","kind":<kind>,"value":<value>}
//	{"type":"css","selector":<canonical selector text>}
//	{"type":"xpath","expression":<canonical xpath text>}
//	{"type":"cascade","segments":[{"capture":<bool>,"query":<inner>}...]}
//
// The css/xpath payloads are the AST's canonical round-trip rendering, so
// the agent re-parses exactly what this side validated. Capture flags are
// carried per segment, unaltered.
func Query(locator ast.Ast) jsonvalue.Value {
	switch l := locator.(type) {
	case *ast.Legacy:
		return jsonvalue.Object(map[string]jsonvalue.Value{
			"type":  jsonvalue.String("legacy"),
			"kind":  jsonvalue.String(string(l.Kind)),
			"value": jsonvalue.String(l.Value),
		})
	case *ast.Css:
		return jsonvalue.Object(map[string]jsonvalue.Value{
			"type":     jsonvalue.String("css"),
			"selector": jsonvalue.String(l.String()),
		})
	case *ast.XPath:
		return jsonvalue.Object(map[string]jsonvalue.Value{
			"type":       jsonvalue.String("xpath"),
			"expression": jsonvalue.String(l.String()),
		})
	case *ast.Cascade:
		segments := make([]jsonvalue.Value, len(l.Segments))
		for i, seg := range l.Segments {
			segments[i] = jsonvalue.Object(map[string]jsonvalue.Value{
				"capture": jsonvalue.Bool(seg.Capture),
				"query":   Query(seg.Inner),
			})
		}
		return jsonvalue.Object(map[string]jsonvalue.Value{
			"type":     jsonvalue.String("cascade"),
			"segments": jsonvalue.Array(segments...),
		})
	default:
		return jsonvalue.Null
	}
}
