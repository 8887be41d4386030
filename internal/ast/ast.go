// Package ast defines the typed Abstract Syntax Tree produced by the
// locator parser. Every node knows its own source position so
// the matcher and diagnostics can point back at the original locator
// text; nodes are immutable once constructed.
package ast

import (
	"strings"

	"github.com/cwbudde/swinglibrary-go/internal/token"
)

// Node is the base interface implemented by every AST node.
type Node interface {
	// String renders the node back to canonical locator syntax. For any
	// parsed Ast `a`, parsing String() of `a` must be structurally equal
	// to `a` (ignoring whitespace) — printing and re-parsing must round-trip.
	String() string
	// Pos returns the node's position in the original locator string.
	Pos() token.Position
}

// Ast is the root sum type: exactly one of Legacy, Css, XPath, or Cascade.
type Ast interface {
	Node
	astNode()
}

// ---------------------------------------------------------------------
// Legacy: kind:value shorthand, including the `#id` alias for name:value.
// ---------------------------------------------------------------------

// LegacyKind enumerates the recognised legacy locator key prefixes.
type LegacyKind string

const (
	LegacyName    LegacyKind = "name"
	LegacyText    LegacyKind = "text"
	LegacyID      LegacyKind = "id"
	LegacyClass   LegacyKind = "class"
	LegacyType    LegacyKind = "type"
	LegacyTooltip LegacyKind = "tooltip"
	LegacyLabel   LegacyKind = "label"
	LegacyIndex   LegacyKind = "index"
)

// LegacyKinds lists every recognised key, used by the parser to decide
// whether an unquoted `ident:` prefix should be parsed as Legacy.
var LegacyKinds = map[string]LegacyKind{
	"name": LegacyName, "text": LegacyText, "id": LegacyID,
	"class": LegacyClass, "type": LegacyType, "tooltip": LegacyTooltip,
	"label": LegacyLabel, "index": LegacyIndex,
}

// Legacy is the `kind:value` shorthand Ast variant. Value may contain `*`
// glob wildcards, preserved verbatim: values are pre-unescaped, but never
// otherwise transformed.
type Legacy struct {
	Kind  LegacyKind
	Value string
	pos   token.Position
}

func NewLegacy(kind LegacyKind, value string, pos token.Position) *Legacy {
	return &Legacy{Kind: kind, Value: value, pos: pos}
}

func (l *Legacy) astNode()            {}
func (l *Legacy) Pos() token.Position { return l.pos }
func (l *Legacy) String() string {
	if l.Kind == LegacyName {
		return "#" + l.Value
	}
	return string(l.Kind) + ":" + l.Value
}

// ---------------------------------------------------------------------
// CSS subset.
// ---------------------------------------------------------------------

// Combinator joins two compound selectors within a SelectorChain.
type Combinator int

const (
	Descendant Combinator = iota
	Child
	AdjacentSibling
	GeneralSibling
)

func (c Combinator) String() string {
	switch c {
	case Child:
		return ">"
	case AdjacentSibling:
		return "+"
	case GeneralSibling:
		return "~"
	default:
		return " "
	}
}

// AttrOp is the comparison operator of an attribute selector.
type AttrOp int

const (
	Eq AttrOp = iota
	Contains
	Prefix
	Suffix
	Exists
)

func (op AttrOp) String() string {
	switch op {
	case Eq:
		return "="
	case Contains:
		return "*="
	case Prefix:
		return "^="
	case Suffix:
		return "$="
	default:
		return ""
	}
}

// PseudoKind enumerates the supported CSS pseudo-classes.
type PseudoKind int

const (
	Enabled PseudoKind = iota
	Disabled
	Visible
	Hidden
	Selected
	Checked
	Focus
	FirstChild
	LastChild
	NthChild
	Empty
	ContainsText
)

var pseudoNames = map[PseudoKind]string{
	Enabled: "enabled", Disabled: "disabled", Visible: "visible", Hidden: "hidden",
	Selected: "selected", Checked: "checked", Focus: "focus", FirstChild: "first-child",
	LastChild: "last-child", NthChild: "nth-child", Empty: "empty", ContainsText: "contains",
}

// PseudoKinds maps a lowercased pseudo-class identifier to its kind, used
// by the parser to reject unknown pseudo-classes.
var PseudoKinds = func() map[string]PseudoKind {
	m := make(map[string]PseudoKind, len(pseudoNames))
	for k, v := range pseudoNames {
		m[v] = k
	}
	return m
}()

// SimpleSelector is one atomic selector within a compound (e.g. the
// `JButton`, `#ok`, `[enabled]`, or `:visible` parts of
// `JButton#ok[enabled]:visible`).
type SimpleSelector interface {
	simpleSelectorNode()
	String() string
}

type TypeSelector struct{ Name string }

func (TypeSelector) simpleSelectorNode() {}
func (s TypeSelector) String() string    { return s.Name }

type UniversalSelector struct{}

func (UniversalSelector) simpleSelectorNode() {}
func (UniversalSelector) String() string      { return "*" }

type IDSelector struct{ Name string }

func (IDSelector) simpleSelectorNode() {}
func (s IDSelector) String() string    { return "#" + s.Name }

type ClassSelector struct{ Name string }

func (ClassSelector) simpleSelectorNode() {}
func (s ClassSelector) String() string    { return "." + s.Name }

// AttributeSelector represents `[name]`, `[name=value]`, `[name*=value]`,
// `[name^=value]`, or `[name$=value]`. Name is lowercased for comparison
// since attribute *names* are case-insensitive; Value is kept
// verbatim (attribute *values* are case-sensitive).
type AttributeSelector struct {
	Name  string
	Op    AttrOp
	Value string
}

func (AttributeSelector) simpleSelectorNode() {}
func (s AttributeSelector) String() string {
	if s.Op == Exists {
		return "[" + s.Name + "]"
	}
	return "[" + s.Name + s.Op.String() + quoteIfNeeded(s.Value) + "]"
}

// PseudoSelector represents a pseudo-class, optionally with an argument
// (`nth-child(n)`, `contains('s')`).
type PseudoSelector struct {
	Kind PseudoKind
	N    int    // nth-child argument, 1-indexed
	Arg  string // contains() argument
}

func (PseudoSelector) simpleSelectorNode() {}
func (s PseudoSelector) String() string {
	switch s.Kind {
	case NthChild:
		return ":nth-child(" + itoa(s.N) + ")"
	case ContainsText:
		return ":contains(" + quote(s.Arg) + ")"
	default:
		return ":" + pseudoNames[s.Kind]
	}
}

// Compound is a maximal run of simple selectors with no combinator
// between them (`JButton#ok[enabled]:visible`).
type Compound struct {
	Selectors []SimpleSelector
}

func (c Compound) String() string {
	var b strings.Builder
	for _, s := range c.Selectors {
		b.WriteString(s.String())
	}
	return b.String()
}

// SelectorChain is a non-empty sequence of compounds joined by
// combinators (`JPanel > JButton.primary`).
type SelectorChain struct {
	Compounds   []Compound
	Combinators []Combinator // len == len(Compounds)-1
}

func (c SelectorChain) String() string {
	var b strings.Builder
	for i, comp := range c.Compounds {
		if i > 0 {
			switch c.Combinators[i-1] {
			case Descendant:
				b.WriteString(" ")
			default:
				b.WriteString(" " + c.Combinators[i-1].String() + " ")
			}
		}
		b.WriteString(comp.String())
	}
	return b.String()
}

// Css is the Ast variant for a CSS-subset locator: a non-empty,
// comma-separated list of selector chains.
type Css struct {
	Chains []SelectorChain
	pos    token.Position
}

func NewCss(chains []SelectorChain, pos token.Position) *Css {
	return &Css{Chains: chains, pos: pos}
}

func (c *Css) astNode()            {}
func (c *Css) Pos() token.Position { return c.pos }
func (c *Css) String() string {
	parts := make([]string, len(c.Chains))
	for i, ch := range c.Chains {
		parts[i] = ch.String()
	}
	return strings.Join(parts, ", ")
}

// ---------------------------------------------------------------------
// XPath subset.
// ---------------------------------------------------------------------

// XPathAxis distinguishes the head `//` (descendant-or-self) from a
// subsequent `/` (child) step.
type XPathAxis int

const (
	DescendantOrSelf XPathAxis = iota
	ChildAxis
)

// Predicate is the boolean-tree of an XPath step's bracketed predicate.
type Predicate interface {
	predicateNode()
	String() string
}

type AttrEqPredicate struct{ Attr, Value string }

func (AttrEqPredicate) predicateNode() {}
func (p AttrEqPredicate) String() string {
	return "@" + p.Attr + "=" + quoteIfNeeded(p.Value)
}

type AttrExistsPredicate struct{ Attr string }

func (AttrExistsPredicate) predicateNode() {}
func (p AttrExistsPredicate) String() string { return "@" + p.Attr }

type ContainsPredicate struct{ Attr, Value string }

func (ContainsPredicate) predicateNode() {}
func (p ContainsPredicate) String() string {
	return "contains(@" + p.Attr + "," + quoteIfNeeded(p.Value) + ")"
}

type StartsWithPredicate struct{ Attr, Value string }

func (StartsWithPredicate) predicateNode() {}
func (p StartsWithPredicate) String() string {
	return "starts-with(@" + p.Attr + "," + quoteIfNeeded(p.Value) + ")"
}

type TextEqPredicate struct{ Value string }

func (TextEqPredicate) predicateNode() {}
func (p TextEqPredicate) String() string { return "text()=" + quoteIfNeeded(p.Value) }

// PositionPredicate covers both the bare-integer position shorthand and
// `position()=n`.
type PositionPredicate struct{ N int }

func (PositionPredicate) predicateNode() {}
func (p PositionPredicate) String() string { return itoa(p.N) }

type LastPredicate struct{}

func (LastPredicate) predicateNode() {}
func (LastPredicate) String() string { return "last()" }

type AndPredicate struct{ Left, Right Predicate }

func (AndPredicate) predicateNode() {}
func (p AndPredicate) String() string { return p.Left.String() + " and " + p.Right.String() }

type OrPredicate struct{ Left, Right Predicate }

func (OrPredicate) predicateNode() {}
func (p OrPredicate) String() string { return p.Left.String() + " or " + p.Right.String() }

// XPathStep is one `//NodeTest[predicate]` or `/NodeTest[predicate]` step.
type XPathStep struct {
	Axis      XPathAxis
	NodeTest  string    // tag name, or "*" for any
	Predicate Predicate // nil if absent
}

func (s XPathStep) String() string {
	var b strings.Builder
	if s.Axis == DescendantOrSelf {
		b.WriteString("//")
	} else {
		b.WriteString("/")
	}
	b.WriteString(s.NodeTest)
	if s.Predicate != nil {
		b.WriteString("[" + s.Predicate.String() + "]")
	}
	return b.String()
}

// XPath is the Ast variant for the restricted XPath subset this locator
// grammar supports.
type XPath struct {
	Steps []XPathStep
	pos   token.Position
}

func NewXPath(steps []XPathStep, pos token.Position) *XPath {
	return &XPath{Steps: steps, pos: pos}
}

func (x *XPath) astNode()            {}
func (x *XPath) Pos() token.Position { return x.pos }
func (x *XPath) String() string {
	var b strings.Builder
	for _, s := range x.Steps {
		b.WriteString(s.String())
	}
	return b.String()
}

// ---------------------------------------------------------------------
// Cascade: `>>` chaining with `*` capture.
// ---------------------------------------------------------------------

// CascadeSegment is one `segment` of a `>>`-chained locator. Capture
// marks a `*`-prefixed segment; Inner is never itself a *Cascade (the
// parser rejects that input before evaluation).
type CascadeSegment struct {
	Capture bool
	Inner   Ast
}

func (s CascadeSegment) String() string {
	prefix := ""
	if s.Capture {
		prefix = "*"
	}
	return prefix + s.Inner.String()
}

// Cascade is the Ast variant for a `>>`-chained locator. A single-segment
// cascade is normalised to its inner Ast by the parser and never appears
// wrapped in a Cascade, so Segments always has length >= 2 here.
type Cascade struct {
	Segments []CascadeSegment
	pos      token.Position
}

func NewCascade(segments []CascadeSegment, pos token.Position) *Cascade {
	return &Cascade{Segments: segments, pos: pos}
}

func (c *Cascade) astNode()            {}
func (c *Cascade) Pos() token.Position { return c.pos }
func (c *Cascade) String() string {
	parts := make([]string, len(c.Segments))
	for i, s := range c.Segments {
		parts[i] = s.String()
	}
	return strings.Join(parts, " >> ")
}

// CaptureIndex returns the index of the first capturing segment, or
// len(Segments)-1 (the last segment) when none capture.
func (c *Cascade) CaptureIndex() int {
	for i, s := range c.Segments {
		if s.Capture {
			return i
		}
	}
	return len(c.Segments) - 1
}

// ---------------------------------------------------------------------
// helpers
// ---------------------------------------------------------------------

func quoteIfNeeded(s string) string {
	if s == "" {
		return "''"
	}
	needsQuote := strings.ContainsAny(s, " '\"()[]*")
	if !needsQuote {
		return s
	}
	return quote(s)
}

// quote single-quotes s unconditionally, escaping embedded quotes. The
// :contains() argument grammar only accepts a quoted string, so its printer
// cannot use quoteIfNeeded's bare form.
func quote(s string) string {
	var b strings.Builder
	b.WriteByte('\'')
	for _, r := range s {
		if r == '\'' {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	b.WriteByte('\'')
	return b.String()
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}
