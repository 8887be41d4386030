package match

import (
	"strings"

	"github.com/cwbudde/swinglibrary-go/element"
	"github.com/cwbudde/swinglibrary-go/internal/ast"
	"golang.org/x/text/unicode/norm"
)

// textEquals compares text the way a Java component reports it: Unicode
// normalised (so a precomposed and a combining-mark spelling of the same
// label compare equal) but still case-sensitive.
func textEquals(a, b string) bool {
	return norm.NFC.String(a) == norm.NFC.String(b)
}

// treeIndex is a one-time pre-order walk of a tree snapshot, giving the
// matcher O(1) parent/sibling/rank lookups without threading them through
// the Node type itself.
type treeIndex struct {
	parent   map[*Node]*Node
	siblings map[*Node][]*Node // the slice node belongs to (its parent's Children, or the root slice)
	order    map[*Node]int
}

func buildIndex(root *Node) *treeIndex {
	ti := &treeIndex{
		parent:   make(map[*Node]*Node),
		siblings: make(map[*Node][]*Node),
		order:    make(map[*Node]int),
	}
	n := 0
	var walk func(node, parent *Node, siblingSet []*Node)
	walk = func(node, parent *Node, siblingSet []*Node) {
		ti.parent[node] = parent
		ti.siblings[node] = siblingSet
		ti.order[node] = n
		n++
		for _, child := range node.Children {
			walk(child, node, node.Children)
		}
	}
	walk(root, nil, []*Node{root})
	return ti
}

// FindAll evaluates locator against root's subtree, returning matches in
// deterministic pre-order. It is the in-process implementation of the
// matching contract the agent applies remotely: the session resolves
// locators over the wire through FindHandles/findWidgets, while this
// evaluator backs the package's property tests and the fake-agent
// fixtures that stand in for a live JVM.
func FindAll(root *Node, locator ast.Ast) []*Node {
	ti := buildIndex(root)
	switch l := locator.(type) {
	case *ast.Legacy:
		return dedupeOrdered(matchLegacy(root, l), ti)
	case *ast.Css:
		return dedupeOrdered(matchCss(root, ti, l), ti)
	case *ast.XPath:
		return dedupeOrdered(matchXPath(root, l), ti)
	case *ast.Cascade:
		return evaluateCascade(root, l)
	default:
		return nil
	}
}

func allNodes(root *Node) []*Node {
	var out []*Node
	var walk func(*Node)
	walk = func(n *Node) {
		out = append(out, n)
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(root)
	return out
}

func dedupeOrdered(nodes []*Node, ti *treeIndex) []*Node {
	seen := make(map[*Node]bool, len(nodes))
	out := nodes[:0:0]
	for _, n := range nodes {
		if !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}
	// stable pre-order
	for i := 1; i < len(out); i++ {
		j := i
		for j > 0 && ti.order[out[j-1]] > ti.order[out[j]] {
			out[j-1], out[j] = out[j], out[j-1]
			j--
		}
	}
	return out
}

// ---------------------------------------------------------------------
// CSS
// ---------------------------------------------------------------------

func matchCss(root *Node, ti *treeIndex, css *ast.Css) []*Node {
	var results []*Node
	for _, chain := range css.Chains {
		for _, n := range allNodes(root) {
			if matchesChainAt(n, chain, len(chain.Compounds)-1, ti) {
				results = append(results, n)
			}
		}
	}
	return results
}

func matchesChainAt(node *Node, chain ast.SelectorChain, idx int, ti *treeIndex) bool {
	if !matchesCompound(node, chain.Compounds[idx], ti) {
		return false
	}
	if idx == 0 {
		return true
	}
	switch chain.Combinators[idx-1] {
	case ast.Child:
		p := ti.parent[node]
		return p != nil && matchesChainAt(p, chain, idx-1, ti)
	case ast.Descendant:
		for p := ti.parent[node]; p != nil; p = ti.parent[p] {
			if matchesChainAt(p, chain, idx-1, ti) {
				return true
			}
		}
		return false
	case ast.AdjacentSibling:
		sibs := ti.siblings[node]
		pos := indexOf(sibs, node)
		if pos <= 0 {
			return false
		}
		return matchesChainAt(sibs[pos-1], chain, idx-1, ti)
	case ast.GeneralSibling:
		sibs := ti.siblings[node]
		pos := indexOf(sibs, node)
		for i := 0; i < pos; i++ {
			if matchesChainAt(sibs[i], chain, idx-1, ti) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

func indexOf(nodes []*Node, target *Node) int {
	for i, n := range nodes {
		if n == target {
			return i
		}
	}
	return -1
}

func matchesCompound(node *Node, compound ast.Compound, ti *treeIndex) bool {
	for _, sel := range compound.Selectors {
		if !matchesSimple(node, sel, ti) {
			return false
		}
	}
	return true
}

func matchesSimple(node *Node, sel ast.SimpleSelector, ti *treeIndex) bool {
	switch s := sel.(type) {
	case ast.TypeSelector:
		return classNameMatches(node.ClassName, s.Name)
	case ast.UniversalSelector:
		return true
	case ast.IDSelector:
		v, ok := node.Attr("id")
		return ok && v == s.Name
	case ast.ClassSelector:
		v, ok := node.Attr("styleClass")
		if !ok {
			return false
		}
		for _, tok := range strings.Fields(v) {
			if tok == s.Name {
				return true
			}
		}
		return false
	case ast.AttributeSelector:
		return matchesAttribute(node, s)
	case ast.PseudoSelector:
		return matchesPseudo(node, s, ti)
	default:
		return false
	}
}

// classNameMatches accepts a simple class name, a fully-qualified class
// name, or a normalised element type ("Button" finds a JButton), so
// toolkit-agnostic locators work unchanged across Swing and SWT trees.
func classNameMatches(className, name string) bool {
	if className == name {
		return true
	}
	if strings.HasSuffix(className, "."+name) {
		return true
	}
	return name == element.TypeOf(element.SimpleName(className))
}

// isStateAttr reports whether name is one of the agent's always-present
// boolean widget-state flags, for which `@attr`/`[attr]` existence checks
// test truthiness rather than mere presence (a disabled button still has
// an `enabled` attribute, just set to "false").
func isStateAttr(name string) bool {
	switch name {
	case "enabled", "visible", "showing", "selected", "checked", "focused":
		return true
	}
	return false
}

func matchesAttribute(node *Node, sel ast.AttributeSelector) bool {
	val, ok := node.Attr(sel.Name)
	if !ok {
		return false
	}
	switch sel.Op {
	case ast.Exists:
		if isStateAttr(sel.Name) {
			return val == "true"
		}
		return true
	case ast.Eq:
		return globMatch(sel.Value, val)
	case ast.Contains:
		return strings.Contains(val, sel.Value)
	case ast.Prefix:
		return strings.HasPrefix(val, sel.Value)
	case ast.Suffix:
		return strings.HasSuffix(val, sel.Value)
	default:
		return false
	}
}

func matchesPseudo(node *Node, sel ast.PseudoSelector, ti *treeIndex) bool {
	switch sel.Kind {
	case ast.Enabled:
		return node.Enabled
	case ast.Disabled:
		return !node.Enabled
	case ast.Visible:
		// A widget is only actually on screen when it is visible itself
		// and every ancestor is too (the showing flag).
		return node.Visible && node.Showing
	case ast.Hidden:
		return !(node.Visible && node.Showing)
	case ast.Selected:
		return node.Selected
	case ast.Checked:
		return node.Checked
	case ast.Focus:
		return node.Focused
	case ast.Empty:
		return len(node.Children) == 0
	case ast.ContainsText:
		return strings.Contains(node.Text, sel.Arg)
	case ast.FirstChild:
		sibs := ti.siblings[node]
		return len(sibs) > 0 && sibs[0] == node
	case ast.LastChild:
		sibs := ti.siblings[node]
		return len(sibs) > 0 && sibs[len(sibs)-1] == node
	case ast.NthChild:
		sibs := ti.siblings[node]
		pos := indexOf(sibs, node)
		return pos >= 0 && pos+1 == sel.N
	default:
		return false
	}
}

// globMatch supports '*' as a multi-character wildcard, the only glob
// metacharacter legacy/CSS attribute values use.
func globMatch(pattern, s string) bool {
	if !strings.Contains(pattern, "*") {
		return pattern == s
	}
	parts := strings.Split(pattern, "*")
	if !strings.HasPrefix(s, parts[0]) {
		return false
	}
	s = s[len(parts[0]):]
	for _, part := range parts[1 : len(parts)-1] {
		i := strings.Index(s, part)
		if i < 0 {
			return false
		}
		s = s[i+len(part):]
	}
	return strings.HasSuffix(s, parts[len(parts)-1])
}

// ---------------------------------------------------------------------
// XPath
// ---------------------------------------------------------------------

func matchXPath(root *Node, xp *ast.XPath) []*Node {
	working := []*Node{root}
	for _, step := range xp.Steps {
		var next []*Node
		for _, ctx := range working {
			var candidates []*Node
			if step.Axis == ast.DescendantOrSelf {
				candidates = allNodes(ctx)
			} else {
				candidates = ctx.Children
			}
			total := 0
			for _, c := range candidates {
				if nodeTestMatches(c, step.NodeTest) {
					total++
				}
			}
			pos := 0
			for _, c := range candidates {
				if !nodeTestMatches(c, step.NodeTest) {
					continue
				}
				pos++
				if predicateMatches(c, step.Predicate, pos, total) {
					next = append(next, c)
				}
			}
		}
		working = next
	}
	return working
}

func nodeTestMatches(node *Node, test string) bool {
	if test == "*" {
		return true
	}
	return classNameMatches(node.ClassName, test)
}

func predicateMatches(node *Node, pred ast.Predicate, position, total int) bool {
	if pred == nil {
		return true
	}
	switch p := pred.(type) {
	case ast.AttrEqPredicate:
		v, ok := node.Attr(p.Attr)
		return ok && globMatch(p.Value, v)
	case ast.AttrExistsPredicate:
		v, ok := node.Attr(p.Attr)
		if !ok {
			return false
		}
		if isStateAttr(p.Attr) {
			return v == "true"
		}
		return true
	case ast.ContainsPredicate:
		v, ok := node.Attr(p.Attr)
		return ok && strings.Contains(v, p.Value)
	case ast.StartsWithPredicate:
		v, ok := node.Attr(p.Attr)
		return ok && strings.HasPrefix(v, p.Value)
	case ast.TextEqPredicate:
		return textEquals(node.Text, p.Value)
	case ast.PositionPredicate:
		return position == p.N
	case ast.LastPredicate:
		return position == total
	case ast.AndPredicate:
		return predicateMatches(node, p.Left, position, total) && predicateMatches(node, p.Right, position, total)
	case ast.OrPredicate:
		return predicateMatches(node, p.Left, position, total) || predicateMatches(node, p.Right, position, total)
	default:
		return false
	}
}

// ---------------------------------------------------------------------
// Legacy
// ---------------------------------------------------------------------

func matchLegacy(root *Node, l *ast.Legacy) []*Node {
	if l.Kind == ast.LegacyIndex {
		n := 0
		for _, r := range l.Value {
			n = n*10 + int(r-'0')
		}
		if n >= 0 && n < len(root.Children) {
			return []*Node{root.Children[n]}
		}
		return nil
	}
	var out []*Node
	for _, node := range allNodes(root) {
		if legacyMatches(node, l) {
			out = append(out, node)
		}
	}
	return out
}

func legacyMatches(node *Node, l *ast.Legacy) bool {
	switch l.Kind {
	case ast.LegacyName:
		return globMatch(l.Value, node.Name)
	case ast.LegacyText:
		return globMatch(l.Value, node.Text)
	case ast.LegacyID:
		v, ok := node.Attr("id")
		return ok && globMatch(l.Value, v)
	case ast.LegacyClass:
		v, ok := node.Attr("styleClass")
		if !ok {
			return false
		}
		for _, tok := range strings.Fields(v) {
			if globMatch(l.Value, tok) {
				return true
			}
		}
		return false
	case ast.LegacyType:
		return classNameMatches(node.ClassName, l.Value) || globMatch(l.Value, node.ClassName)
	case ast.LegacyTooltip:
		v, ok := node.Attr("tooltip")
		return ok && globMatch(l.Value, v)
	case ast.LegacyLabel:
		if v, ok := node.Attr("label"); ok {
			return globMatch(l.Value, v)
		}
		return globMatch(l.Value, node.Text)
	default:
		return false
	}
}

// ---------------------------------------------------------------------
// Cascade
// ---------------------------------------------------------------------

// evaluateCascade threads a single handle through the `>>` segments: the
// first match of segment one becomes segment two's scope, and so on. The
// node returned is the one matched at the first capturing segment (the
// last segment when none captures); segments after the capture are still
// evaluated to validate the chain, their matches discarded. Any segment
// with no match fails the whole cascade.
func evaluateCascade(root *Node, c *ast.Cascade) []*Node {
	captureIdx := c.CaptureIndex()
	var captured *Node
	scope := root
	for i, seg := range c.Segments {
		matches := FindAll(scope, seg.Inner)
		if len(matches) == 0 {
			return nil
		}
		scope = matches[0]
		if i == captureIdx {
			captured = scope
		}
	}
	return []*Node{captured}
}
