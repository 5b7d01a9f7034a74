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

// Package parser implements the recursive-descent, operator-precedence
// parser of spec.md §4.7: each grammar non-terminal is a method that
// returns an owned *tree.Node or reports "no match", panic-mode recovery
// resynchronizes at statement boundaries, and a loop-safety counter bounds
// non-termination the way spec.md §4.7/§5 requires.
package parser

import (
	"errors"
	"fmt"

	"github.com/prismlang/prsmc/pkg/diag"
	"github.com/prismlang/prsmc/pkg/token"
	"github.com/prismlang/prsmc/pkg/tree"
)

// maxStatementStall is the loop-safety bound from spec.md §4.7: if 100
// consecutive top-level parseStatement calls show no cursor progress, the
// parser aborts with an internal diagnostic.
const maxStatementStall = 100

// maxPeekStall is the loop-safety bound on peek itself: the same cursor
// position observed more than 10 times consecutively without advancing
// aborts the parse (spec.md §4.7).
const maxPeekStall = 10

// statementStarters are the keywords that terminate panic-mode recovery
// without being consumed (spec.md §4.7, recovery rule 2).
var statementStarters = map[string]bool{
	"if": true, "else": true, "for": true, "while": true, "do": true,
	"return": true, "input": true, "printf": true, "array": true,
}

// internalFault is panicked by internalErrorf and recovered at Parse's
// single boundary, turning a loop-safety trip or cursor non-advance bug
// into a returned error instead of a crash (spec.md §7: internal errors
// terminate the run).
type internalFault struct{ msg string }

// Parser holds the token array loaded once, a cursor, and the diagnostic
// bag accumulating syntax and internal errors (spec.md §3 "Parser state").
type Parser struct {
	tokens []token.Token
	cursor int

	lastPeekCursor int
	peekRepeat     int

	diags *diag.Bag
}

// New returns a Parser over tokens. Noise-word tokens (spec.md glossary:
// by, from, until) are dropped up front since the grammar never references
// them; every other token, including lexical-error and comment tokens,
// reaches the parser so it can act on them (spec.md §4.7, §8 scenario S6).
func New(tokens []token.Token) *Parser {
	filtered := make([]token.Token, 0, len(tokens))
	for _, t := range tokens {
		if t.Kind == token.Noise {
			continue
		}
		filtered = append(filtered, t)
	}
	return &Parser{tokens: filtered, lastPeekCursor: -1, diags: diag.NewBag()}
}

// Diagnostics returns the diagnostics accumulated during Parse.
func (p *Parser) Diagnostics() *diag.Bag {
	return p.diags
}

// Parse parses the full token stream into a "Program" root node. It
// returns a non-nil error only for an internal invariant violation
// (spec.md §7); syntax and lexical errors are reported through
// Diagnostics and do not themselves make Parse return an error, matching
// spec.md §7's "syntax errors do not stop the parser until recovery
// fails" propagation policy.
func (p *Parser) Parse() (root *tree.Node, err error) {
	defer func() {
		if r := recover(); r != nil {
			if f, ok := r.(internalFault); ok {
				err = errors.New(f.msg)
				return
			}
			panic(r)
		}
	}()

	root = tree.NewNode("Program")
	stall := 0
	for !p.atEnd() {
		before := p.cursor
		stmt, ok := p.parseStatement()
		if ok && stmt != nil {
			root.AddChild(stmt)
		}
		if p.cursor == before {
			stall++
			if stall >= maxStatementStall {
				p.internalErrorf("parser made no progress for %d consecutive statements at token %d", maxStatementStall, p.cursor)
			}
			// A production that claims success without advancing is a
			// bug (spec.md §4.7 "failure-to-advance policy"); force
			// progress here so the loop cannot spin even if the bound
			// above were ever raised.
			p.cursor++
		} else {
			stall = 0
		}
	}
	return root, nil
}

// atEnd reports whether the cursor has run off the end of the token
// array.
func (p *Parser) atEnd() bool {
	return p.cursor >= len(p.tokens)
}

// peek returns the token at the cursor without consuming it. Calling peek
// repeatedly from the same cursor position more than maxPeekStall times
// trips the loop-safety bound (spec.md §4.7).
func (p *Parser) peek() (token.Token, bool) {
	if p.cursor == p.lastPeekCursor {
		p.peekRepeat++
		if p.peekRepeat > maxPeekStall {
			p.internalErrorf("peek observed cursor %d more than %d times without advancing", p.cursor, maxPeekStall)
		}
	} else {
		p.lastPeekCursor = p.cursor
		p.peekRepeat = 1
	}
	if p.atEnd() {
		return token.Token{}, false
	}
	return p.tokens[p.cursor], true
}

// peekAt looks offset tokens ahead of the cursor without consuming
// anything, mirroring the original source's peekNextToken. Unlike peek it
// does not count toward the maxPeekStall bound. parseStatement uses it to
// look one or two tokens ahead before committing to a production (an
// identifier-led assignment or function call, a type-led function
// declaration), and parseLeftAssoc uses peekAt(0) for its operator
// lookahead.
func (p *Parser) peekAt(offset int) (token.Token, bool) {
	idx := p.cursor + offset
	if idx < 0 || idx >= len(p.tokens) {
		return token.Token{}, false
	}
	return p.tokens[idx], true
}

// next returns the token at the cursor and advances past it.
func (p *Parser) next() (token.Token, bool) {
	t, ok := p.peek()
	if ok {
		p.cursor++
	}
	return t, ok
}

// lastLine returns the line number to attribute a diagnostic to when the
// cursor has run off the end of the token array.
func (p *Parser) lastLine() int {
	if len(p.tokens) == 0 {
		return 0
	}
	return p.tokens[len(p.tokens)-1].Line
}

// check reports whether the next token has kind k, without consuming it.
func (p *Parser) check(k token.Kind) bool {
	t, ok := p.peek()
	return ok && t.Kind == k
}

// checkKeyword reports whether the next token is the keyword lexeme.
func (p *Parser) checkKeyword(lexeme string) bool {
	t, ok := p.peek()
	return ok && t.Kind == token.Keyword && t.Lexeme == lexeme
}

// match consumes and returns the next token if it has kind k.
func (p *Parser) match(k token.Kind) (token.Token, bool) {
	if p.check(k) {
		return p.next()
	}
	return token.Token{}, false
}

// expect consumes the next token if it has kind k, terminal node on
// success; otherwise it reports a syntax error, triggers panic-mode
// recovery, and returns ok=false.
func (p *Parser) expect(k token.Kind, label, desc string) (*tree.Node, bool) {
	t, ok := p.match(k)
	if ok {
		return tree.NewTerminal(label, t.Lexeme), true
	}
	p.reportMismatch(desc)
	p.recover()
	return nil, false
}

// reportMismatch records a syntax error naming what was expected and what
// was actually found (spec.md §4.7: "a diagnostic carrying the expected
// kind/value, the found kind/value, and the line number").
func (p *Parser) reportMismatch(desc string) {
	if t, ok := p.peek(); ok {
		p.diags.Errorf(diag.Syntax, t.Line, "expected %s, found %s %q", desc, t.Kind, t.Lexeme)
		return
	}
	p.diags.Errorf(diag.Syntax, p.lastLine(), "expected %s, found end of input", desc)
}

// recover implements spec.md §4.7's panic-mode recovery: advance the
// cursor until a recovery delimiter is consumed, a statement-starting
// keyword is reached (left unconsumed), or end of input forces recovery
// to give up.
func (p *Parser) recover() {
	for {
		t, ok := p.peek()
		if !ok {
			return
		}
		switch {
		case t.Kind == token.DelimSemicolon || t.Kind == token.DelimLBrace ||
			t.Kind == token.DelimRBrace || t.Kind == token.DelimRParen:
			p.next()
			return
		case t.Kind == token.Keyword && statementStarters[t.Lexeme]:
			return
		case t.Kind == token.DelimLParen || t.Kind == token.DelimLBracket:
			p.skipBracket()
		default:
			p.next()
		}
	}
}

// skipBracket consumes a '(' or '[' already at the cursor and everything
// up to and including its matching close, by bracket counting (spec.md
// §4.7 recovery rule 3).
func (p *Parser) skipBracket() {
	open, ok := p.next()
	if !ok {
		return
	}
	var closeKind token.Kind
	if open.Kind == token.DelimLParen {
		closeKind = token.DelimRParen
	} else {
		closeKind = token.DelimRBracket
	}
	depth := 1
	for depth > 0 {
		t, ok := p.next()
		if !ok {
			return
		}
		switch t.Kind {
		case open.Kind:
			depth++
		case closeKind:
			depth--
		}
	}
}

// internalErrorf panics with an internalFault, recovered at Parse's single
// boundary (spec.md §7: internal errors terminate the run).
func (p *Parser) internalErrorf(format string, args ...interface{}) {
	panic(internalFault{msg: fmt.Sprintf(format, args...)})
}
