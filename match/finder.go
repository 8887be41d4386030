package match

import (
	"fmt"

	"github.com/cwbudde/swinglibrary-go/element"
	"github.com/cwbudde/swinglibrary-go/errs"
	"github.com/cwbudde/swinglibrary-go/internal/ast"
	"github.com/cwbudde/swinglibrary-go/internal/jsonvalue"
)

// Caller issues one JSON-RPC request to the agent. *rpc.Client satisfies
// it directly; the session façade adapts its own call path via CallerFunc.
type Caller interface {
	Call(method string, params jsonvalue.Value) (jsonvalue.Value, error)
}

// CallerFunc adapts a plain function to the Caller interface.
type CallerFunc func(method string, params jsonvalue.Value) (jsonvalue.Value, error)

func (f CallerFunc) Call(method string, params jsonvalue.Value) (jsonvalue.Value, error) {
	return f(method, params)
}

// FindHandles resolves locator against the agent's live widget tree by
// issuing findWidgets RPCs, the query object carrying the serialised Ast.
// The agent walks its own tree; nothing is matched locally here.
//
// A non-cascade locator is a single round trip, returning the agent's
// ordered handle list (empty when nothing matched). A cascade issues one
// findWidgets per segment, threading a single handle: the first match of
// segment one becomes segment two's scope, and so on. The handle returned
// for the whole cascade is the one matched at the first capturing segment
// (the last segment when none captures); segments after the capture are
// still evaluated to validate the chain, their results discarded. A
// segment with no match fails the whole cascade, naming the segment in
// the error.
//
// scope 0 means the tree root; any other value scopes the search to that
// component's subtree.
func FindHandles(c Caller, locator ast.Ast, scope element.ComponentHandle) ([]element.ComponentHandle, error) {
	cascade, ok := locator.(*ast.Cascade)
	if !ok {
		return findWidgets(c, locator, scope)
	}

	captureIdx := cascade.CaptureIndex()
	var captured element.ComponentHandle
	current := scope
	for i, seg := range cascade.Segments {
		handles, err := findWidgets(c, seg.Inner, current)
		if err != nil {
			return nil, err
		}
		if len(handles) == 0 {
			return nil, &errs.ElementNotFound{
				Locator: fmt.Sprintf("%s [segment %d of %d]", cascade.String(), i+1, len(cascade.Segments)),
			}
		}
		current = handles[0]
		if i == captureIdx {
			captured = current
		}
	}
	return []element.ComponentHandle{captured}, nil
}

func findWidgets(c Caller, locator ast.Ast, scope element.ComponentHandle) ([]element.ComponentHandle, error) {
	params := map[string]jsonvalue.Value{"query": Query(locator)}
	if scope != 0 {
		params["scope"] = jsonvalue.Number(float64(scope))
	}
	result, err := c.Call("findWidgets", jsonvalue.Object(params))
	if err != nil {
		return nil, err
	}
	items, _ := result.AsArray()
	handles := make([]element.ComponentHandle, 0, len(items))
	for _, item := range items {
		if n, ok := item.AsNumber(); ok {
			handles = append(handles, element.ComponentHandle(int64(n)))
		}
	}
	return handles, nil
}
