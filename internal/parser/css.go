package parser

import (
	"strings"

	"github.com/cwbudde/swinglibrary-go/internal/ast"
	"github.com/cwbudde/swinglibrary-go/internal/lexer"
	"github.com/cwbudde/swinglibrary-go/internal/token"
)

// parseCss parses the CSS-subset grammar:
//
//	selector_list ::= chain ("," chain)*
//	chain         ::= compound (combinator compound)*
//	combinator    ::= ">" | "+" | "~" | <whitespace>
//	compound      ::= simple+
//	simple        ::= type | "*" | "#" ident | "." ident | "[" attr "]" | ":" pseudo
func parseCss(body string) (*ast.Css, error) {
	cur := NewTokenCursor(lexer.New(body))
	startPos := cur.Current().Pos

	var chains []ast.SelectorChain
	for {
		chain, next, err := parseChain(cur)
		if err != nil {
			return nil, err
		}
		chains = append(chains, chain)
		cur = next
		if cur.Is(token.COMMA) {
			cur = cur.Advance()
			continue
		}
		break
	}
	if !cur.IsEOF() {
		return nil, newError(cur.Current().Pos, "',' or end of selector")
	}
	return ast.NewCss(chains, startPos), nil
}

func parseChain(cur *TokenCursor) (ast.SelectorChain, *TokenCursor, error) {
	var chain ast.SelectorChain
	compound, next, err := parseCompound(cur)
	if err != nil {
		return chain, nil, err
	}
	chain.Compounds = append(chain.Compounds, compound)
	cur = next

	for {
		tok := cur.Current()
		switch tok.Type {
		case token.COMMA, token.EOF, token.RPAREN, token.RBRACK:
			return chain, cur, nil
		case token.GT:
			cur = cur.Advance()
			chain.Combinators = append(chain.Combinators, ast.Child)
		case token.PLUS:
			cur = cur.Advance()
			chain.Combinators = append(chain.Combinators, ast.AdjacentSibling)
		case token.TILDE:
			cur = cur.Advance()
			chain.Combinators = append(chain.Combinators, ast.GeneralSibling)
		default:
			if !tok.SpaceBefore {
				return chain, nil, newError(tok.Pos, "combinator or end of selector")
			}
			chain.Combinators = append(chain.Combinators, ast.Descendant)
		}
		compound, next, err := parseCompound(cur)
		if err != nil {
			return chain, nil, err
		}
		chain.Compounds = append(chain.Compounds, compound)
		cur = next
	}
}

func isSimpleStart(t token.Type) bool {
	switch t {
	case token.IDENT, token.STAR, token.HASH, token.DOT, token.LBRACK, token.COLON:
		return true
	default:
		return false
	}
}

func parseCompound(cur *TokenCursor) (ast.Compound, *TokenCursor, error) {
	var comp ast.Compound
	first := true
	for {
		tok := cur.Current()
		if !first && tok.SpaceBefore {
			break
		}
		if !isSimpleStart(tok.Type) {
			if first {
				return comp, nil, newError(tok.Pos, "type, '*', '#', '.', '[', or ':'")
			}
			break
		}
		switch tok.Type {
		case token.IDENT:
			comp.Selectors = append(comp.Selectors, ast.TypeSelector{Name: tok.Literal})
			cur = cur.Advance()
		case token.STAR:
			if !first {
				return comp, nil, newError(tok.Pos, "no selector after '*'")
			}
			comp.Selectors = append(comp.Selectors, ast.UniversalSelector{})
			cur = cur.Advance()
		case token.HASH:
			cur = cur.Advance()
			if !cur.Is(token.IDENT) {
				return comp, nil, newError(cur.Current().Pos, "identifier after '#'")
			}
			comp.Selectors = append(comp.Selectors, ast.IDSelector{Name: cur.Current().Literal})
			cur = cur.Advance()
		case token.DOT:
			cur = cur.Advance()
			if !cur.Is(token.IDENT) {
				return comp, nil, newError(cur.Current().Pos, "identifier after '.'")
			}
			comp.Selectors = append(comp.Selectors, ast.ClassSelector{Name: cur.Current().Literal})
			cur = cur.Advance()
		case token.LBRACK:
			sel, next, err := parseAttribute(cur)
			if err != nil {
				return comp, nil, err
			}
			comp.Selectors = append(comp.Selectors, sel)
			cur = next
		case token.COLON:
			sel, next, err := parsePseudo(cur)
			if err != nil {
				return comp, nil, err
			}
			comp.Selectors = append(comp.Selectors, sel)
			cur = next
		}
		first = false
	}
	return comp, cur, nil
}

func parseAttribute(cur *TokenCursor) (ast.AttributeSelector, *TokenCursor, error) {
	var sel ast.AttributeSelector
	cur = cur.Advance() // consume '['
	if !cur.Is(token.IDENT) {
		return sel, nil, newError(cur.Current().Pos, "attribute name")
	}
	sel.Name = strings.ToLower(cur.Current().Literal)
	cur = cur.Advance()

	switch cur.Current().Type {
	case token.EQ:
		sel.Op = ast.Eq
		cur = cur.Advance()
	case token.STAREQ:
		sel.Op = ast.Contains
		cur = cur.Advance()
	case token.CARETEQ:
		sel.Op = ast.Prefix
		cur = cur.Advance()
	case token.DOLLAREQ:
		sel.Op = ast.Suffix
		cur = cur.Advance()
	case token.RBRACK:
		sel.Op = ast.Exists
		cur = cur.Advance()
		return sel, cur, nil
	default:
		return sel, nil, newError(cur.Current().Pos, "'=', '*=', '^=', '$=', or ']'")
	}

	value, next, err := parseAttrValue(cur)
	if err != nil {
		return sel, nil, err
	}
	sel.Value = value
	cur = next
	if !cur.Is(token.RBRACK) {
		return sel, nil, newError(cur.Current().Pos, "']'")
	}
	return sel, cur.Advance(), nil
}

// parseAttrValue reads either a single quoted STRING token or a bare run of
// adjacent IDENT/NUMBER/STAR tokens (so glob wildcards like `Submit*` lex as
// separate STAR tokens but still join into one bare value).
func parseAttrValue(cur *TokenCursor) (string, *TokenCursor, error) {
	if cur.Is(token.STRING) {
		v := cur.Current().Literal
		return v, cur.Advance(), nil
	}
	if cur.Is(token.UNTERMINATED) {
		return "", nil, newError(cur.Current().Pos, "a closing quote")
	}
	var b strings.Builder
	first := true
	for {
		tok := cur.Current()
		if !first && tok.SpaceBefore {
			break
		}
		switch tok.Type {
		case token.IDENT, token.NUMBER:
			b.WriteString(tok.Literal)
			cur = cur.Advance()
		case token.STAR:
			b.WriteByte('*')
			cur = cur.Advance()
		case token.UNTERMINATED:
			return "", nil, newError(tok.Pos, "a closing quote")
		default:
			if first {
				return "", nil, newError(tok.Pos, "attribute value")
			}
			return b.String(), cur, nil
		}
		first = false
	}
	return b.String(), cur, nil
}

func parsePseudo(cur *TokenCursor) (ast.PseudoSelector, *TokenCursor, error) {
	var sel ast.PseudoSelector
	cur = cur.Advance() // consume ':'
	if !cur.Is(token.IDENT) {
		return sel, nil, newError(cur.Current().Pos, "pseudo-class name")
	}
	name := strings.ToLower(cur.Current().Literal)
	kind, ok := ast.PseudoKinds[name]
	if !ok {
		return sel, nil, newError(cur.Current().Pos, "a recognised pseudo-class")
	}
	sel.Kind = kind
	cur = cur.Advance()

	if kind != ast.NthChild && kind != ast.ContainsText {
		return sel, cur, nil
	}
	if !cur.Is(token.LPAREN) {
		return sel, nil, newError(cur.Current().Pos, "'(' after :"+name)
	}
	cur = cur.Advance()
	switch kind {
	case ast.NthChild:
		if !cur.Is(token.NUMBER) {
			return sel, nil, newError(cur.Current().Pos, "a positive integer")
		}
		n, err := parsePositiveInt(cur.Current())
		if err != nil {
			return sel, nil, err
		}
		if n < 1 {
			return sel, nil, newError(cur.Current().Pos, "nth-child argument >= 1")
		}
		sel.N = n
		cur = cur.Advance()
	case ast.ContainsText:
		if cur.Is(token.UNTERMINATED) {
			return sel, nil, newError(cur.Current().Pos, "a closing quote")
		}
		if !cur.Is(token.STRING) {
			return sel, nil, newError(cur.Current().Pos, "a quoted string")
		}
		sel.Arg = cur.Current().Literal
		cur = cur.Advance()
	}
	if !cur.Is(token.RPAREN) {
		return sel, nil, newError(cur.Current().Pos, "')'")
	}
	return sel, cur.Advance(), nil
}

func parsePositiveInt(tok token.Token) (int, error) {
	n := 0
	for _, r := range tok.Literal {
		if r < '0' || r > '9' {
			return 0, newError(tok.Pos, "a positive integer")
		}
		n = n*10 + int(r-'0')
	}
	return n, nil
}
