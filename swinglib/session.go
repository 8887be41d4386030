// Package swinglib is the library's Go entry point: a Session wraps one RPC
// connection to the Java agent, its element cache, and the locator/match/
// assert pipeline, exposing the operations a Robot Framework keyword layer
// (out of scope here) would bind to.
package swinglib

import (
	"fmt"
	"sync"
	"time"

	"github.com/cwbudde/swinglibrary-go/assert"
	"github.com/cwbudde/swinglibrary-go/element"
	"github.com/cwbudde/swinglibrary-go/errs"
	"github.com/cwbudde/swinglibrary-go/internal/ast"
	"github.com/cwbudde/swinglibrary-go/internal/jsonvalue"
	"github.com/cwbudde/swinglibrary-go/internal/parser"
	"github.com/cwbudde/swinglibrary-go/internal/rlog"
	"github.com/cwbudde/swinglibrary-go/match"
	"github.com/cwbudde/swinglibrary-go/rpc"
	"github.com/cwbudde/swinglibrary-go/tree"
)

// DefaultTimeout is the per-call RPC timeout used when a caller does not
// override it.
const DefaultTimeout = 10 * time.Second

// Session is the library's single stateful object: one connection, one
// cache, safe for sequential use by one test at a time (Robot Framework
// test libraries are not expected to be called concurrently from multiple
// goroutines, but the mutex keeps reconnect/cache races impossible if they
// ever are).
type Session struct {
	mu      sync.Mutex
	client  *rpc.Client
	cache   *element.ElementCache
	assert  *assert.Engine
	log     *rlog.Logger
	timeout time.Duration
}

// NewSession returns a disconnected Session.
func NewSession() *Session {
	return &Session{
		cache:   element.NewElementCache(),
		assert:  assert.NewEngine(),
		log:     rlog.New(rlog.LevelInfo),
		timeout: DefaultTimeout,
	}
}

// Connect dials the agent at addr ("host:port").
func (s *Session) Connect(addr string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, err := rpc.Dial(addr, s.timeout, s.log)
	if err != nil {
		return err
	}
	s.client = c
	s.cache.InvalidateAll()
	return nil
}

// Disconnect closes the agent connection, if any.
func (s *Session) Disconnect() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.client == nil {
		return nil
	}
	err := s.client.Close()
	s.client = nil
	s.cache.InvalidateAll()
	return err
}

func (s *Session) call(method string, params jsonvalue.Value) (jsonvalue.Value, error) {
	s.mu.Lock()
	client := s.client
	s.mu.Unlock()
	if client == nil {
		return jsonvalue.Null, &errs.ConnectionError{Message: "not connected", Recoverable: false}
	}
	result, err := client.Call(method, params)
	switch err.(type) {
	case *errs.ConnectionError, *errs.ActionTimeout:
		// The connection was torn down, so cached handles from it can no
		// longer be trusted to resolve.
		s.cache.InvalidateAll()
	}
	return result, err
}

// fetchTree retrieves and decodes a widget tree snapshot via the
// getUiTree inspection method. params may carry the catalogued scope and
// maxDepth fields, or be nil for everything. Snapshots back the tree
// inspector and the near-miss suggestions on a failed find; locator
// resolution itself goes over findWidgets instead.
func (s *Session) fetchTree(params map[string]jsonvalue.Value) (*match.Node, error) {
	result, err := s.call("getUiTree", jsonvalue.Object(params))
	if err != nil {
		return nil, err
	}
	return decodeNode(result), nil
}

func decodeNode(v jsonvalue.Value) *match.Node {
	handle, _ := v.Get("handle").AsNumber()
	className, _ := v.Get("class").AsString()
	name, _ := v.Get("name").AsString()
	text, _ := v.Get("text").AsString()
	enabled, _ := v.Get("enabled").AsBool()
	visible, _ := v.Get("visible").AsBool()
	showing, _ := v.Get("showing").AsBool()
	selected, _ := v.Get("selected").AsBool()
	checked, _ := v.Get("checked").AsBool()
	focused, _ := v.Get("focused").AsBool()

	n := &match.Node{
		Handle:    element.ComponentHandle(int64(handle)),
		ClassName: className,
		Name:      name,
		Text:      text,
		Attrs:     v.Get("attrs"),
		Enabled:   enabled,
		Visible:   visible,
		Showing:   showing,
		Selected:  selected,
		Checked:   checked,
		Focused:   focused,
	}
	if kids, ok := v.Get("children").AsArray(); ok {
		n.Children = make([]*match.Node, len(kids))
		for i, k := range kids {
			n.Children[i] = decodeNode(k)
		}
	}
	return n
}

// Find resolves locator to exactly one element by asking the agent via
// findWidgets (the parsed Ast serialised into the query object), then
// fetching and caching the first handle's full record. It returns
// *errs.ElementNotFound if nothing matched; the error's
// Similar/Suggestions fields list nearby widgets whose name, text, or
// class share a substantial substring with something in locator, to help
// a test author spot a typo instead of re-reading the whole tree.
func (s *Session) Find(locator string) (*element.ElementRecord, error) {
	parsed, err := parser.Parse(locator)
	if err != nil {
		return nil, err
	}
	handles, err := s.findHandles(locator, parsed)
	if err != nil {
		return nil, err
	}
	return s.describe(handles[0], locator)
}

// FindAll resolves locator to every matching element, in the agent's
// traversal order. A cascade yields its single captured element.
func (s *Session) FindAll(locator string) ([]*element.ElementRecord, error) {
	parsed, err := parser.Parse(locator)
	if err != nil {
		return nil, err
	}
	handles, err := s.findHandles(locator, parsed)
	if err != nil {
		return nil, err
	}
	records := make([]*element.ElementRecord, len(handles))
	for i, h := range handles {
		rec, err := s.describe(h, locator)
		if err != nil {
			return nil, err
		}
		records[i] = rec
	}
	return records, nil
}

// findHandles runs parsed through findWidgets and normalises "nothing
// matched" into *errs.ElementNotFound carrying the caller's verbatim
// locator string, enriched with near-miss candidates from a tree
// snapshot.
func (s *Session) findHandles(locator string, parsed ast.Ast) ([]element.ComponentHandle, error) {
	handles, err := match.FindHandles(match.CallerFunc(s.call), parsed, 0)
	if err != nil {
		if nf, ok := err.(*errs.ElementNotFound); ok {
			s.addSimilar(nf, parsed)
		}
		return nil, err
	}
	if len(handles) == 0 {
		nf := &errs.ElementNotFound{Locator: locator}
		s.addSimilar(nf, parsed)
		return nil, nf
	}
	return handles, nil
}

// addSimilar best-effort populates nf with near-miss candidates scanned
// from a fresh tree snapshot; a snapshot failure leaves nf as-is rather
// than masking the original not-found error.
func (s *Session) addSimilar(nf *errs.ElementNotFound, parsed ast.Ast) {
	root, err := s.fetchTree(nil)
	if err != nil {
		return
	}
	nf.Similar = match.Similar(root, parsed)
	nf.Suggestions = nf.Similar
}

// describe fetches handle's full property record via getElementProperties
// and registers it in the cache under locator.
func (s *Session) describe(handle element.ComponentHandle, locator string) (*element.ElementRecord, error) {
	props, err := s.call("getElementProperties", jsonvalue.Object(map[string]jsonvalue.Value{
		"componentId": jsonvalue.Number(float64(handle)),
	}))
	if err != nil {
		return nil, err
	}
	rec := element.NewRecord(handle, locator, props)
	s.cache.InsertOrRefresh(rec)
	return &rec, nil
}

// ---------------------------------------------------------------------
// actions
// ---------------------------------------------------------------------

// resolve returns the cached handle for locator when one is already
// known, so repeated actions on "the same button" skip the findWidgets
// lookup; it falls back to Find on a cache miss.
func (s *Session) resolve(locator string) (*element.ElementRecord, error) {
	if rec, ok := s.cache.Lookup(locator); ok {
		return &rec, nil
	}
	return s.Find(locator)
}

// withResolvedHandle calls do with locator's handle, retrying once against
// a freshly re-resolved handle if the agent reports the cached one stale
// (the component was disposed and recreated since the handle was cached).
func (s *Session) withResolvedHandle(locator string, do func(element.ComponentHandle) (jsonvalue.Value, error)) (jsonvalue.Value, error) {
	rec, err := s.resolve(locator)
	if err != nil {
		return jsonvalue.Null, err
	}
	result, err := do(rec.Handle)
	if stale, ok := err.(*errs.StaleHandle); ok {
		s.cache.Invalidate(element.ComponentHandle(stale.Handle))
		rec, err = s.Find(locator)
		if err != nil {
			return jsonvalue.Null, err
		}
		result, err = do(rec.Handle)
	}
	return result, err
}

func (s *Session) act(locator, method string, extra map[string]jsonvalue.Value) error {
	result, err := s.withResolvedHandle(locator, func(handle element.ComponentHandle) (jsonvalue.Value, error) {
		params := map[string]jsonvalue.Value{"componentId": jsonvalue.Number(float64(handle))}
		for k, v := range extra {
			params[k] = v
		}
		return s.call(method, jsonvalue.Object(params))
	})
	if err != nil {
		return err
	}
	if ok, _ := result.Get("ok").AsBool(); !ok {
		reason, _ := result.Get("reason").AsString()
		return &errs.ActionFailed{Action: method, Reason: reason}
	}
	return nil
}

func (s *Session) Click(locator string) error       { return s.act(locator, "click", nil) }
func (s *Session) DoubleClick(locator string) error { return s.act(locator, "doubleClick", nil) }
func (s *Session) RightClick(locator string) error  { return s.act(locator, "rightClick", nil) }
func (s *Session) Check(locator string) error       { return s.act(locator, "check", nil) }
func (s *Session) Uncheck(locator string) error     { return s.act(locator, "uncheck", nil) }

// TypeText types text into the element matching locator. When clear is
// true the field is cleared first (wire shape: "typeText{componentId,
// text, clear?}").
func (s *Session) TypeText(locator, text string, clear bool) error {
	params := map[string]jsonvalue.Value{"text": jsonvalue.String(text)}
	if clear {
		params["clear"] = jsonvalue.Bool(true)
	}
	return s.act(locator, "typeText", params)
}

func (s *Session) ClearText(locator string) error { return s.act(locator, "clearText", nil) }

// SelectItem selects an item of the combo box/list matching locator, by
// display value (string) or position (int).
func (s *Session) SelectItem(locator string, item any) error {
	return s.act(locator, "selectItem", map[string]jsonvalue.Value{"item": valueOrIndex(item)})
}

// SelectTab selects a tab of the tabbed pane matching locator, by title
// (string) or position (int).
func (s *Session) SelectTab(locator string, tab any) error {
	return s.act(locator, "selectTab", map[string]jsonvalue.Value{"tab": valueOrIndex(tab)})
}

// valueOrIndex encodes the recurring "value|index" wire parameter shape:
// a string is sent verbatim, an int as a numeric index, anything else as
// null (the agent rejects it as a malformed param rather than this client
// guessing at intent).
func valueOrIndex(v any) jsonvalue.Value {
	switch t := v.(type) {
	case string:
		return jsonvalue.String(t)
	case int:
		return jsonvalue.Number(float64(t))
	default:
		return jsonvalue.Null
	}
}

// GetProperty returns a named attribute of the element matching locator.
// Rather than trusting the attribute snapshot taken when the element was
// last matched, it refreshes the cached record via getElementProperties
// first, so a value the agent has since changed is reflected immediately.
func (s *Session) GetProperty(locator, attribute string) (string, error) {
	rec, err := s.resolve(locator)
	if err != nil {
		return "", err
	}
	className := rec.ClassName
	handle := rec.Handle

	result, err := s.call("getElementProperties", jsonvalue.Object(map[string]jsonvalue.Value{
		"componentId": jsonvalue.Number(float64(handle)),
	}))
	if stale, ok := err.(*errs.StaleHandle); ok {
		s.cache.Invalidate(element.ComponentHandle(stale.Handle))
		rec, err = s.Find(locator)
		if err != nil {
			return "", err
		}
		className, handle = rec.ClassName, rec.Handle
		result, err = s.call("getElementProperties", jsonvalue.Object(map[string]jsonvalue.Value{
			"componentId": jsonvalue.Number(float64(handle)),
		}))
	}
	if err != nil {
		return "", err
	}
	s.cache.Refresh(handle, result)

	v := result.Get(attribute)
	if v.IsNull() {
		switch attribute {
		case "class":
			return className, nil
		default:
			return "", &errs.ActionFailed{Action: "getProperty", Reason: fmt.Sprintf("no attribute %q", attribute)}
		}
	}
	return v.Text(), nil
}

// AssertValue asserts `GetProperty(locator, attribute) <operator> expected`,
// retrying until timeout while locator has not yet resolved or the
// comparison fails.
func (s *Session) AssertValue(locator, attribute, operator, expected string, formatters []string, timeout time.Duration, message string) error {
	return s.assert.Assert(s.GetProperty, locator, attribute, operator, expected, formatters, timeout, message)
}

// Tree renders the widget tree in the given format. A non-empty scope
// locator narrows the dump to the first matching component's subtree
// (resolved via findWidgets, then passed as getUiTree's scope parameter);
// maxDepth 0 prints only the scope root, negative is unbounded.
func (s *Session) Tree(scope string, format tree.Format, maxDepth int) (string, error) {
	var params map[string]jsonvalue.Value
	if scope != "" {
		parsed, err := parser.Parse(scope)
		if err != nil {
			return "", err
		}
		handles, err := s.findHandles(scope, parsed)
		if err != nil {
			return "", err
		}
		params = map[string]jsonvalue.Value{"scope": jsonvalue.Number(float64(handles[0]))}
	}
	root, err := s.fetchTree(params)
	if err != nil {
		return "", err
	}
	return tree.Render(root, format, maxDepth)
}

// CloseAllDialogs asks the agent to close every currently open modal
// dialog, used for test teardown.
func (s *Session) CloseAllDialogs() error {
	_, err := s.call("closeAllDialogs", jsonvalue.Object(nil))
	return err
}

// ForceCloseDialog closes the dialog with the given window name, bypassing
// its normal close affordance (e.g. a dialog with no visible close
// button). Dialogs are addressed by name directly rather than through the
// locator pipeline: a dialog that needs force-closing is often in a state
// where it cannot be matched as a regular widget.
func (s *Session) ForceCloseDialog(name string) error {
	_, err := s.call("forceCloseDialog", jsonvalue.Object(map[string]jsonvalue.Value{
		"name": jsonvalue.String(name),
	}))
	return err
}
