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

// Package lexer implements the line-oriented lexical state machine of
// spec.md §4.4: it consumes .prsm source text one line at a time and emits
// a stream of token.Token values, tracking a block-comment flag across
// lines (spec.md §4.2, §3).
package lexer

import (
	"strings"

	"github.com/prismlang/prsmc/pkg/classify"
	"github.com/prismlang/prsmc/pkg/keyword"
	"github.com/prismlang/prsmc/pkg/token"
)

// Lexer holds the state that survives across lines: whether we are inside
// a block comment. Everything else (accumulator, write index, FSM state)
// is confined to the scan of a single line, per spec.md §3.
type Lexer struct {
	comment commentTracker
}

// New returns a Lexer ready to scan from the START state, outside any
// block comment.
func New() *Lexer {
	return &Lexer{}
}

// Lex tokenizes the entirety of source, returning every token in source
// order (spec.md §5 ordering guarantees). An unclosed block comment at end
// of input is surfaced as a lexical error token on the last line, per
// spec.md §3 invariant 3.
func Lex(source string) []token.Token {
	l := New()
	var out []token.Token
	emit := func(t token.Token) { out = append(out, t) }

	lines := strings.Split(source, "\n")
	lastLine := 1
	for i, line := range lines {
		lineNo := i + 1
		lastLine = lineNo
		line = strings.TrimSuffix(line, "\r")
		l.scanLine(line, lineNo, emit)
	}
	if l.comment.inBlock {
		emit(token.NewError("Unterminated Block Comment", blockOpen, lastLine))
	}
	return out
}

// scanLine runs the FSM across a single line of source, starting in the
// START state (spec.md §4.4) unless a block comment carried over from a
// previous line is still open.
func (l *Lexer) scanLine(line string, lineNo int, emit func(token.Token)) {
	n := len(line)
	i := 0

	if l.comment.inBlock {
		pos, closed := l.comment.scanClose(line, lineNo, 0, emit)
		if !closed {
			return
		}
		i = pos
	}

	for i < n {
		c := line[i]
		switch {
		case classify.IsSpace(c):
			i++

		case c == '~' && i+1 < n && line[i+1] == '~':
			emit(token.New(token.SingleLineComment, line[i:], lineNo))
			return

		case c == '~' && i+1 < n && line[i+1] == '/':
			i = l.comment.open(line, lineNo, i, emit)
			pos, closed := l.comment.scanClose(line, lineNo, i, emit)
			if !closed {
				return
			}
			i = pos

		case classify.IsLetter(c):
			i = l.scanIdentifier(line, lineNo, i, emit)

		case classify.IsDigit(c):
			i = l.scanNumber(line, lineNo, i, emit)

		case c == '"':
			i = l.scanString(line, lineNo, i, emit)

		case c == '\'':
			i = l.scanCharLiteral(line, lineNo, i, emit)

		case classify.IsDelimiter(c):
			emit(token.New(delimiterKind(c), line[i:i+1], lineNo))
			i++

		case classify.IsOperatorStart(c):
			i = l.scanOperator(line, lineNo, i, emit)

		default:
			start := i
			for i < n && !classify.IsSpace(line[i]) && !classify.IsDelimiter(line[i]) {
				i++
			}
			emit(token.NewError("Invalid Identifier", line[start:i], lineNo))
		}
	}
}

// scanIdentifier implements the IDENTIFIER state: accumulate alnum/_,
// classify the finished lexeme as Keyword, Reserved, Noise or Identifier
// on a terminator, or emit a lexical error on an invalid continuation
// (spec.md §4.4).
func (l *Lexer) scanIdentifier(line string, lineNo int, i int, emit func(token.Token)) int {
	n := len(line)
	start := i
	for i < n && classify.IsAlnumOrUnderscore(line[i]) {
		i++
	}
	if i < n && !classify.IsTerminator(line[i]) {
		j := i
		for j < n && !classify.IsTerminator(line[j]) {
			j++
		}
		emit(token.NewError("Invalid Identifier", line[start:j], lineNo))
		return j
	}
	emit(classifyWord(line[start:i], lineNo))
	return i
}

// classifyWord resolves a finished identifier lexeme to its token kind,
// consulting the keyword recognizer first, then the reserved and noise
// word sets, per spec.md §4.4's finalize order.
func classifyWord(lexeme string, lineNo int) token.Token {
	switch {
	case keyword.Lookup(lexeme):
		return token.New(token.Keyword, lexeme, lineNo)
	case keyword.IsReserved(lexeme):
		return token.New(token.Reserved, lexeme, lineNo)
	case keyword.IsNoise(lexeme):
		return token.New(token.Noise, lexeme, lineNo)
	default:
		return token.New(token.Identifier, lexeme, lineNo)
	}
}

// scanNumber implements the INTEGER/FLOAT states (spec.md §4.4).
func (l *Lexer) scanNumber(line string, lineNo int, i int, emit func(token.Token)) int {
	n := len(line)
	start := i
	for i < n && classify.IsDigit(line[i]) {
		i++
	}

	isFloat := false
	if i+1 < n && line[i] == '.' && classify.IsDigit(line[i+1]) {
		isFloat = true
		i++
		for i < n && classify.IsDigit(line[i]) {
			i++
		}
	}

	if i < n && !classify.IsTerminator(line[i]) {
		j := i
		for j < n && !classify.IsTerminator(line[j]) {
			j++
		}
		detail := "Invalid Integer"
		if isFloat {
			detail = "Invalid Float"
		}
		emit(token.NewError(detail, line[start:j], lineNo))
		return j
	}

	if isFloat {
		emit(token.New(token.FloatLiteral, line[start:i], lineNo))
	} else {
		emit(token.New(token.IntegerLiteral, line[start:i], lineNo))
	}
	return i
}

// scanString implements the STRING_LITERAL state: accumulate until a
// closing '"' on the same line (spec.md §4.4).
func (l *Lexer) scanString(line string, lineNo int, i int, emit func(token.Token)) int {
	n := len(line)
	start := i
	i++
	for i < n && line[i] != '"' {
		i++
	}
	if i >= n {
		emit(token.NewError("Unterminated String Literal", line[start:i], lineNo))
		return i
	}
	i++
	emit(token.New(token.StringLiteral, line[start:i], lineNo))
	return i
}

// scanCharLiteral implements the CHAR_LITERAL state: exactly one graphic
// character, or a two-character backslash escape, between the quotes
// (spec.md §9 clarification of the off-by-one in the original source).
func (l *Lexer) scanCharLiteral(line string, lineNo int, i int, emit func(token.Token)) int {
	n := len(line)
	start := i
	i++
	if i >= n {
		emit(token.NewError("Invalid Character Literal", line[start:i], lineNo))
		return i
	}
	if line[i] == '\\' && i+1 < n {
		i += 2
	} else {
		i++
	}
	if i < n && line[i] == '\'' {
		i++
		emit(token.New(token.CharLiteral, line[start:i], lineNo))
		return i
	}
	j := i
	for j < n && line[j] != '\'' {
		j++
	}
	if j < n {
		j++
	}
	emit(token.NewError("Invalid Character Literal", line[start:j], lineNo))
	return j
}

// scanOperator applies maximal munch (spec.md §4.4 operator table). A
// stray '|' or '~' that forms no recognized operator is an unknown
// operator, per spec.md §7's lexical error taxonomy; a lone '&' is
// recognized on its own as AddressOf.
func (l *Lexer) scanOperator(line string, lineNo int, i int, emit func(token.Token)) int {
	if kind, lexeme, ok := matchOperator(line, i); ok {
		emit(token.New(kind, lexeme, lineNo))
		return i + len(lexeme)
	}
	emit(token.NewError("Unknown Operator", line[i:i+1], lineNo))
	return i + 1
}

// delimiterKind maps a single delimiter byte to its Kind. '"' and '\'' are
// never routed here: the START dispatch in scanLine claims them first for
// string/character literal scanning.
func delimiterKind(c byte) token.Kind {
	switch c {
	case ',':
		return token.DelimComma
	case '.':
		return token.DelimDot
	case ';':
		return token.DelimSemicolon
	case ':':
		return token.DelimColon
	case '(':
		return token.DelimLParen
	case ')':
		return token.DelimRParen
	case '{':
		return token.DelimLBrace
	case '}':
		return token.DelimRBrace
	case '[':
		return token.DelimLBracket
	case ']':
		return token.DelimRBracket
	case '"':
		return token.DelimDoubleQuote
	case '\'':
		return token.DelimSingleQuote
	}
	return token.Invalid
}
