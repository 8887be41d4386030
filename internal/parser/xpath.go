package parser

import (
	"strings"

	"github.com/cwbudde/swinglibrary-go/internal/ast"
	"github.com/cwbudde/swinglibrary-go/internal/lexer"
	"github.com/cwbudde/swinglibrary-go/internal/token"
)

// parseXPath parses the restricted XPath subset:
//
//	xpath     ::= step+
//	step      ::= ("//" | "/") nodeTest ("[" predicate "]")?
//	nodeTest  ::= ident | "*"
//	predicate ::= andOr
//	andOr     ::= atom (("and" | "or") atom)*     -- left-to-right
//	atom      ::= "@" ident ("=" value)?
//	            | "contains" "(" "@" ident "," value ")"
//	            | "starts-with" "(" "@" ident "," value ")"
//	            | "text" "(" ")" "=" value
//	            | "position" "(" ")" "=" integer
//	            | "last" "(" ")"
//	            | integer
func parseXPath(body string) (*ast.XPath, error) {
	cur := NewTokenCursor(lexer.New(body))
	startPos := cur.Current().Pos

	var steps []ast.XPathStep
	for {
		var axis ast.XPathAxis
		switch cur.Current().Type {
		case token.SLASH2:
			axis = ast.DescendantOrSelf
			cur = cur.Advance()
		case token.SLASH:
			axis = ast.ChildAxis
			cur = cur.Advance()
		default:
			if len(steps) == 0 {
				return nil, newError(cur.Current().Pos, "'//' at start of xpath")
			}
			if !cur.IsEOF() {
				return nil, newError(cur.Current().Pos, "'/' or end of xpath")
			}
			return ast.NewXPath(steps, startPos), nil
		}

		var nodeTest string
		switch cur.Current().Type {
		case token.STAR:
			nodeTest = "*"
			cur = cur.Advance()
		case token.IDENT:
			nodeTest = cur.Current().Literal
			cur = cur.Advance()
		default:
			return nil, newError(cur.Current().Pos, "a node test")
		}

		var pred ast.Predicate
		if cur.Is(token.LBRACK) {
			cur = cur.Advance()
			p, next, err := parsePredicateOr(cur)
			if err != nil {
				return nil, err
			}
			cur = next
			if !cur.Is(token.RBRACK) {
				return nil, newError(cur.Current().Pos, "']'")
			}
			cur = cur.Advance()
			pred = p
		}
		steps = append(steps, ast.XPathStep{Axis: axis, NodeTest: nodeTest, Predicate: pred})

		if cur.IsEOF() {
			return ast.NewXPath(steps, startPos), nil
		}
	}
}

func parsePredicateOr(cur *TokenCursor) (ast.Predicate, *TokenCursor, error) {
	left, next, err := parsePredicateAtom(cur)
	if err != nil {
		return nil, nil, err
	}
	cur = next
	for cur.Is(token.IDENT) && (cur.Current().Literal == "and" || cur.Current().Literal == "or") {
		op := cur.Current().Literal
		cur = cur.Advance()
		right, next, err := parsePredicateAtom(cur)
		if err != nil {
			return nil, nil, err
		}
		cur = next
		if op == "and" {
			left = ast.AndPredicate{Left: left, Right: right}
		} else {
			left = ast.OrPredicate{Left: left, Right: right}
		}
	}
	return left, cur, nil
}

func parsePredicateAtom(cur *TokenCursor) (ast.Predicate, *TokenCursor, error) {
	tok := cur.Current()
	switch tok.Type {
	case token.AT:
		cur = cur.Advance()
		if !cur.Is(token.IDENT) {
			return nil, nil, newError(cur.Current().Pos, "attribute name after '@'")
		}
		attr := strings.ToLower(cur.Current().Literal)
		cur = cur.Advance()
		if !cur.Is(token.EQ) {
			return ast.AttrExistsPredicate{Attr: attr}, cur, nil
		}
		cur = cur.Advance()
		value, next, err := parsePredicateValue(cur)
		if err != nil {
			return nil, nil, err
		}
		return ast.AttrEqPredicate{Attr: attr, Value: value}, next, nil

	case token.NUMBER:
		n, err := parsePositiveInt(tok)
		if err != nil {
			return nil, nil, err
		}
		return ast.PositionPredicate{N: n}, cur.Advance(), nil

	case token.IDENT:
		switch tok.Literal {
		case "contains":
			return parseFnAttrValue(cur, func(attr, value string) ast.Predicate {
				return ast.ContainsPredicate{Attr: attr, Value: value}
			})
		case "starts-with":
			return parseFnAttrValue(cur, func(attr, value string) ast.Predicate {
				return ast.StartsWithPredicate{Attr: attr, Value: value}
			})
		case "text":
			cur = cur.Advance()
			if err := expect(cur, token.LPAREN, "'('"); err != nil {
				return nil, nil, err
			}
			cur = cur.Advance()
			if err := expect(cur, token.RPAREN, "')'"); err != nil {
				return nil, nil, err
			}
			cur = cur.Advance()
			if err := expect(cur, token.EQ, "'='"); err != nil {
				return nil, nil, err
			}
			cur = cur.Advance()
			value, next, err := parsePredicateValue(cur)
			if err != nil {
				return nil, nil, err
			}
			return ast.TextEqPredicate{Value: value}, next, nil
		case "position":
			cur = cur.Advance()
			if err := expect(cur, token.LPAREN, "'('"); err != nil {
				return nil, nil, err
			}
			cur = cur.Advance()
			if err := expect(cur, token.RPAREN, "')'"); err != nil {
				return nil, nil, err
			}
			cur = cur.Advance()
			if err := expect(cur, token.EQ, "'='"); err != nil {
				return nil, nil, err
			}
			cur = cur.Advance()
			if !cur.Is(token.NUMBER) {
				return nil, nil, newError(cur.Current().Pos, "an integer")
			}
			n, err := parsePositiveInt(cur.Current())
			if err != nil {
				return nil, nil, err
			}
			return ast.PositionPredicate{N: n}, cur.Advance(), nil
		case "last":
			cur = cur.Advance()
			if err := expect(cur, token.LPAREN, "'('"); err != nil {
				return nil, nil, err
			}
			cur = cur.Advance()
			if err := expect(cur, token.RPAREN, "')'"); err != nil {
				return nil, nil, err
			}
			return ast.LastPredicate{}, cur.Advance(), nil
		default:
			return nil, nil, newError(tok.Pos, "a predicate function or '@attr'")
		}

	default:
		return nil, nil, newError(tok.Pos, "a predicate")
	}
}

func parseFnAttrValue(cur *TokenCursor, build func(attr, value string) ast.Predicate) (ast.Predicate, *TokenCursor, error) {
	cur = cur.Advance() // consume function name
	if err := expect(cur, token.LPAREN, "'('"); err != nil {
		return nil, nil, err
	}
	cur = cur.Advance()
	if err := expect(cur, token.AT, "'@attr'"); err != nil {
		return nil, nil, err
	}
	cur = cur.Advance()
	if !cur.Is(token.IDENT) {
		return nil, nil, newError(cur.Current().Pos, "attribute name after '@'")
	}
	attr := strings.ToLower(cur.Current().Literal)
	cur = cur.Advance()
	if err := expect(cur, token.COMMA, "','"); err != nil {
		return nil, nil, err
	}
	cur = cur.Advance()
	value, next, err := parsePredicateValue(cur)
	if err != nil {
		return nil, nil, err
	}
	cur = next
	if err := expect(cur, token.RPAREN, "')'"); err != nil {
		return nil, nil, err
	}
	return build(attr, value), cur.Advance(), nil
}

func parsePredicateValue(cur *TokenCursor) (string, *TokenCursor, error) {
	tok := cur.Current()
	switch tok.Type {
	case token.STRING:
		return tok.Literal, cur.Advance(), nil
	case token.IDENT, token.NUMBER:
		return tok.Literal, cur.Advance(), nil
	case token.UNTERMINATED:
		return "", nil, newError(tok.Pos, "a closing quote")
	default:
		return "", nil, newError(tok.Pos, "a quoted string or bare value")
	}
}

func expect(cur *TokenCursor, t token.Type, what string) error {
	if !cur.Is(t) {
		return newError(cur.Current().Pos, what)
	}
	return nil
}
