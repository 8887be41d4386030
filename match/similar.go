package match

import (
	"github.com/cwbudde/swinglibrary-go/element"
	"github.com/cwbudde/swinglibrary-go/internal/ast"
)

// maxSimilar bounds how many near-miss candidates Similar reports, keeping
// an ElementNotFound message readable no matter how large the tree is.
const maxSimilar = 5

// minLCS is the shortest longest-common-substring length a candidate's
// name/text/simple class name must share with some literal in the failed
// locator before it is considered a near miss; shorter overlaps are too
// common to be useful (e.g. a single shared letter).
const minLCS = 3

// Similar walks root's subtree looking for widgets whose name, text, or
// simple class name share a substring of at least minLCS runes with any
// string literal appearing in locator, returning up to maxSimilar of them
// in pre-order. It is used to populate errs.ElementNotFound.Similar when a
// locator resolves to nothing, so the failure message can nudge a test
// author toward a typo rather than leaving them to re-read the whole tree.
func Similar(root *Node, locator ast.Ast) []string {
	literals := literalsOf(locator)
	if len(literals) == 0 {
		return nil
	}

	var out []string
	for _, n := range allNodes(root) {
		candidates := []string{n.Name, n.Text, element.SimpleName(n.ClassName)}
		best := 0
		for _, c := range candidates {
			if c == "" {
				continue
			}
			for _, lit := range literals {
				if lit == "" {
					continue
				}
				if l := longestCommonSubstring(c, lit); l > best {
					best = l
				}
			}
		}
		if best < minLCS {
			continue
		}
		label := n.Name
		if label == "" {
			label = n.Text
		}
		if label == "" {
			label = element.SimpleName(n.ClassName)
		}
		if label == "" {
			continue
		}
		out = append(out, label)
		if len(out) == maxSimilar {
			break
		}
	}
	return out
}

// literalsOf collects every string literal embedded in locator: selector
// names, attribute values, and predicate operands. These are the strings a
// typo in a locator most plausibly differs from by one or two characters.
func literalsOf(locator ast.Ast) []string {
	var out []string
	var walk func(ast.Ast)
	walk = func(a ast.Ast) {
		switch n := a.(type) {
		case *ast.Legacy:
			out = append(out, n.Value)
		case *ast.Css:
			for _, chain := range n.Chains {
				for _, compound := range chain.Compounds {
					for _, sel := range compound.Selectors {
						out = append(out, literalsOfSimple(sel)...)
					}
				}
			}
		case *ast.XPath:
			for _, step := range n.Steps {
				out = append(out, literalsOfPredicate(step.Predicate)...)
			}
		case *ast.Cascade:
			for _, seg := range n.Segments {
				walk(seg.Inner)
			}
		}
	}
	walk(locator)
	return out
}

func literalsOfSimple(sel ast.SimpleSelector) []string {
	switch s := sel.(type) {
	case ast.TypeSelector:
		return []string{s.Name}
	case ast.IDSelector:
		return []string{s.Name}
	case ast.ClassSelector:
		return []string{s.Name}
	case ast.AttributeSelector:
		return []string{s.Value}
	case ast.PseudoSelector:
		if s.Arg != "" {
			return []string{s.Arg}
		}
	}
	return nil
}

func literalsOfPredicate(pred ast.Predicate) []string {
	switch p := pred.(type) {
	case ast.AttrEqPredicate:
		return []string{p.Value}
	case ast.ContainsPredicate:
		return []string{p.Value}
	case ast.StartsWithPredicate:
		return []string{p.Value}
	case ast.TextEqPredicate:
		return []string{p.Value}
	case ast.AndPredicate:
		return append(literalsOfPredicate(p.Left), literalsOfPredicate(p.Right)...)
	case ast.OrPredicate:
		return append(literalsOfPredicate(p.Left), literalsOfPredicate(p.Right)...)
	}
	return nil
}

// longestCommonSubstring returns the length of the longest run of runes
// common to a and b, via the standard O(len(a)*len(b)) dynamic program.
func longestCommonSubstring(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 || len(rb) == 0 {
		return 0
	}
	prev := make([]int, len(rb)+1)
	best := 0
	for i := 1; i <= len(ra); i++ {
		cur := make([]int, len(rb)+1)
		for j := 1; j <= len(rb); j++ {
			if ra[i-1] == rb[j-1] {
				cur[j] = prev[j-1] + 1
				if cur[j] > best {
					best = cur[j]
				}
			}
		}
		prev = cur
	}
	return best
}
