// Copyright 2015 Google Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package parser

import (
	"github.com/prismlang/prsmc/pkg/diag"
	"github.com/prismlang/prsmc/pkg/token"
	"github.com/prismlang/prsmc/pkg/tree"
)

// parseExpression is the grammar's expression entry point: an
// assignment-expr, since assignment is the lowest-precedence, right
// associative production (spec.md §4.7 grammar).
func (p *Parser) parseExpression() (*tree.Node, bool) {
	return p.parseAssignmentExpr()
}

// parseAssignmentExpr implements assignment-expr := logical-or
// (assign-op assignment-expr)? — right associative, so a chain like
// a = b = c builds with c nested deepest.
func (p *Parser) parseAssignmentExpr() (*tree.Node, bool) {
	left, ok := p.parseLogicalOr()
	if !ok {
		return nil, false
	}
	if t, ok := p.peek(); ok && assignOpKinds[t.Kind] {
		op, _ := p.next()
		right, ok := p.parseAssignmentExpr()
		if !ok {
			return left, true
		}
		n := tree.NewNode("AssignmentExpr")
		n.AddChild(left)
		n.AddChild(tree.NewTerminal(op.Kind.String(), op.Lexeme))
		n.AddChild(right)
		return n, true
	}
	return left, true
}

// binaryLevel describes one left-associative binary-operator precedence
// level: the set of token kinds accepted at this level, the label given to
// the resulting node, and the next-tighter production to call for operands.
type binaryLevel struct {
	label string
	kinds map[token.Kind]bool
	next  func(*Parser) (*tree.Node, bool)
}

// parseLeftAssoc implements the common shape of every left-associative
// binary level: operand (op operand)*, folding left (spec.md §4.7 grammar:
// logical-or, logical-and, equality, relational, additive, multiplicative
// all share this shape). The operator lookahead goes through peekAt(0)
// rather than peek, so the six levels checking the same token after an
// operand do not count toward the maxPeekStall bound.
func (p *Parser) parseLeftAssoc(lvl binaryLevel) (*tree.Node, bool) {
	left, ok := lvl.next(p)
	if !ok {
		return nil, false
	}
	for {
		t, ok := p.peekAt(0)
		if !ok || !lvl.kinds[t.Kind] {
			return left, true
		}
		op, _ := p.next()
		right, ok := lvl.next(p)
		if !ok {
			return left, true
		}
		n := tree.NewNode(lvl.label)
		n.AddChild(left)
		n.AddChild(tree.NewTerminal(op.Kind.String(), op.Lexeme))
		n.AddChild(right)
		left = n
	}
}

func (p *Parser) parseLogicalOr() (*tree.Node, bool) {
	return p.parseLeftAssoc(binaryLevel{
		label: "LogicalOrExpr",
		kinds: map[token.Kind]bool{token.LogicalOr: true},
		next:  (*Parser).parseLogicalAnd,
	})
}

func (p *Parser) parseLogicalAnd() (*tree.Node, bool) {
	return p.parseLeftAssoc(binaryLevel{
		label: "LogicalAndExpr",
		kinds: map[token.Kind]bool{token.LogicalAnd: true},
		next:  (*Parser).parseEquality,
	})
}

func (p *Parser) parseEquality() (*tree.Node, bool) {
	return p.parseLeftAssoc(binaryLevel{
		label: "EqualityExpr",
		kinds: map[token.Kind]bool{token.RelEqual: true, token.RelNotEqual: true},
		next:  (*Parser).parseRelational,
	})
}

func (p *Parser) parseRelational() (*tree.Node, bool) {
	return p.parseLeftAssoc(binaryLevel{
		label: "RelationalExpr",
		kinds: map[token.Kind]bool{
			token.RelGreater: true, token.RelLess: true,
			token.RelGreaterEq: true, token.RelLessEq: true,
		},
		next: (*Parser).parseAdditive,
	})
}

func (p *Parser) parseAdditive() (*tree.Node, bool) {
	return p.parseLeftAssoc(binaryLevel{
		label: "AdditiveExpr",
		kinds: map[token.Kind]bool{token.OpAdd: true, token.OpSub: true},
		next:  (*Parser).parseMultiplicative,
	})
}

func (p *Parser) parseMultiplicative() (*tree.Node, bool) {
	return p.parseLeftAssoc(binaryLevel{
		label: "MultiplicativeExpr",
		kinds: map[token.Kind]bool{
			token.OpMul: true, token.OpDiv: true,
			token.OpMod: true, token.OpIntDiv: true,
		},
		next: (*Parser).parseExponential,
	})
}

// parseExponential implements exponential := unary ("^" exponential)? —
// right associative, unlike the left-associative binary levels above it
// (spec.md §4.7 grammar).
func (p *Parser) parseExponential() (*tree.Node, bool) {
	left, ok := p.parseUnary()
	if !ok {
		return nil, false
	}
	if t, ok := p.peek(); ok && t.Kind == token.OpPow {
		op, _ := p.next()
		right, ok := p.parseExponential()
		if !ok {
			return left, true
		}
		n := tree.NewNode("ExponentialExpr")
		n.AddChild(left)
		n.AddChild(tree.NewTerminal(op.Kind.String(), op.Lexeme))
		n.AddChild(right)
		return n, true
	}
	return left, true
}

// unaryPrefixKinds are the token kinds that may prefix a unary expression
// (spec.md §4.7 grammar: unary binds tighter than exponentiation, so
// -2^2 parses as (-2)^2).
var unaryPrefixKinds = map[token.Kind]bool{
	token.LogicalNot: true, token.OpSub: true,
	token.UnaryIncrement: true, token.UnaryDecrement: true,
}

// parseUnary implements unary := ("!" | "-" | "++" | "--") unary | postfix.
func (p *Parser) parseUnary() (*tree.Node, bool) {
	if t, ok := p.peek(); ok && unaryPrefixKinds[t.Kind] {
		op, _ := p.next()
		operand, ok := p.parseUnary()
		if !ok {
			return nil, false
		}
		n := tree.NewNode("UnaryExpr")
		n.AddChild(tree.NewTerminal(op.Kind.String(), op.Lexeme))
		n.AddChild(operand)
		return n, true
	}
	return p.parsePostfix()
}

// parsePostfix implements postfix := primary (call-suffix | "++" | "--" |
// index-suffix)*.
func (p *Parser) parsePostfix() (*tree.Node, bool) {
	expr, ok := p.parsePrimary()
	if !ok {
		return nil, false
	}
	for {
		t, ok := p.peek()
		if !ok {
			return expr, true
		}
		switch t.Kind {
		case token.UnaryIncrement, token.UnaryDecrement:
			op, _ := p.next()
			n := tree.NewNode("PostfixExpr")
			n.AddChild(expr)
			n.AddChild(tree.NewTerminal(op.Kind.String(), op.Lexeme))
			expr = n
		case token.DelimLParen:
			p.next()
			n := tree.NewNode("CallExpr")
			n.AddChild(expr)
			args := tree.NewNode("ArgList")
			for !p.check(token.DelimRParen) {
				arg, ok := p.parseExpression()
				if !ok {
					break
				}
				args.AddChild(arg)
				if _, ok := p.match(token.DelimComma); !ok {
					break
				}
			}
			n.AddChild(args)
			if close, ok := p.expect(token.DelimRParen, ")", "')'"); ok {
				n.AddChild(close)
			}
			expr = n
		case token.DelimLBracket:
			p.next()
			n := tree.NewNode("IndexExpr")
			n.AddChild(expr)
			if idx, ok := p.parseExpression(); ok {
				n.AddChild(idx)
			}
			if close, ok := p.expect(token.DelimRBracket, "]", "']'"); ok {
				n.AddChild(close)
			}
			expr = n
		default:
			return expr, true
		}
	}
}

// literalKinds are the token kinds parsePrimary accepts as a literal
// directly, without further structure.
var literalKinds = map[token.Kind]bool{
	token.IntegerLiteral: true, token.FloatLiteral: true,
	token.CharLiteral: true, token.StringLiteral: true,
	token.Reserved: true,
}

// parsePrimary implements primary := literal | IDENT | "&" IDENT |
// "(" expression ")".
func (p *Parser) parsePrimary() (*tree.Node, bool) {
	t, ok := p.peek()
	if !ok {
		p.diags.Errorf(diag.Syntax, p.lastLine(), "expected an expression, found end of input")
		return nil, false
	}

	switch {
	case literalKinds[t.Kind]:
		p.next()
		return tree.NewTerminal(t.Kind.String(), t.Lexeme), true

	case t.Kind == token.Identifier:
		p.next()
		return tree.NewTerminal("Identifier", t.Lexeme), true

	case t.Kind == token.AddressOf:
		p.next()
		if id, ok := p.match(token.Identifier); ok {
			return tree.NewTerminal("SpecifierIdentifier", id.Lexeme), true
		}
		p.reportMismatch("an identifier after '&'")
		return nil, false

	case t.Kind == token.DelimLParen:
		p.next()
		inner, ok := p.parseExpression()
		if !ok {
			return nil, false
		}
		if _, ok := p.expect(token.DelimRParen, ")", "')'"); !ok {
			return inner, true
		}
		return inner, true

	case t.Kind == token.LexicalError:
		// spec.md §8 scenario S6: the error token becomes the left operand
		// of the enclosing expression rather than being rejected outright.
		p.next()
		return tree.NewTerminal(t.Kind.String(), t.Lexeme), true

	default:
		p.reportMismatch("an expression")
		return nil, false
	}
}
