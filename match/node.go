// Package match evaluates a parsed locator Ast against the widget tree
// reported by the agent: CSS/XPath/legacy predicate matching,
// deterministic pre-order traversal, and `>>` cascade scoping.
package match

import (
	"github.com/cwbudde/swinglibrary-go/element"
	"github.com/cwbudde/swinglibrary-go/internal/jsonvalue"
)

// Node is one widget in the tree snapshot the agent reports. It is the
// shared representation both the matcher and the tree inspector walk.
type Node struct {
	Handle    element.ComponentHandle
	ClassName string
	Name      string          // the component's logical "name" attribute, if any
	Text      string          // visible text/label
	Attrs     jsonvalue.Value // full attribute object as reported by the agent
	Enabled   bool
	Visible   bool
	Showing   bool // visible and all ancestors visible: actually on screen
	Selected  bool
	Checked   bool
	Focused   bool
	Children  []*Node
}

// Attr returns the named attribute's display text, consulting the
// well-known struct fields first for the handful of attributes the agent
// always populates and falling back to Attrs otherwise (name and text fall
// through to Attrs when their field is empty). This includes the boolean state
// fields (enabled/visible/selected/checked/focused), which decodeNode
// stores as typed Node fields rather than in Attrs, so that an `@enabled`
// or `[enabled]` predicate resolves the same way whether or not the agent
// also happened to echo the state back inside the attrs bag.
func (n *Node) Attr(name string) (string, bool) {
	switch name {
	case "name":
		if n.Name != "" {
			return n.Name, true
		}
	case "text":
		if n.Text != "" {
			return n.Text, true
		}
	case "class":
		return n.ClassName, true
	case "enabled":
		return boolText(n.Enabled), true
	case "visible":
		return boolText(n.Visible), true
	case "showing":
		return boolText(n.Showing), true
	case "selected":
		return boolText(n.Selected), true
	case "checked":
		return boolText(n.Checked), true
	case "focused":
		return boolText(n.Focused), true
	}
	v := n.Attrs.Get(name)
	if v.IsNull() {
		return "", false
	}
	return v.Text(), true
}

func boolText(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
