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

package lexer

import (
	"runtime"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/prismlang/prsmc/pkg/token"
)

// line returns the line number from which it was called, used to tag test
// table entries with their own source location.
func line() int {
	_, _, l, _ := runtime.Caller(1)
	return l
}

// T builds a non-error token for table brevity.
func T(k token.Kind, lexeme string, ln int) token.Token {
	return token.New(k, lexeme, ln)
}

func TestLex(t *testing.T) {
	for _, tt := range []struct {
		line int
		in   string
		want []token.Token
	}{
		// S1 — Keyword/identifier boundary.
		{line(), "int count=0;", []token.Token{
			T(token.Keyword, "int", 1),
			T(token.Identifier, "count", 1),
			T(token.AssignSimple, "=", 1),
			T(token.IntegerLiteral, "0", 1),
			T(token.DelimSemicolon, ";", 1),
		}},
		// S2 — Maximal munch on '/'.
		{line(), "a //= 2;", []token.Token{
			T(token.Identifier, "a", 1),
			T(token.AssignIntDiv, "//=", 1),
			T(token.IntegerLiteral, "2", 1),
			T(token.DelimSemicolon, ";", 1),
		}},
		{line(), "x == 1", []token.Token{
			T(token.Identifier, "x", 1),
			T(token.RelEqual, "==", 1),
			T(token.IntegerLiteral, "1", 1),
		}},
		{line(), "x = 1", []token.Token{
			T(token.Identifier, "x", 1),
			T(token.AssignSimple, "=", 1),
			T(token.IntegerLiteral, "1", 1),
		}},
		{line(), "i++", []token.Token{
			T(token.Identifier, "i", 1),
			T(token.UnaryIncrement, "++", 1),
		}},
		{line(), "i+=1", []token.Token{
			T(token.Identifier, "i", 1),
			T(token.AssignAdd, "+=", 1),
			T(token.IntegerLiteral, "1", 1),
		}},
		{line(), "x = 3.14;", []token.Token{
			T(token.Identifier, "x", 1),
			T(token.AssignSimple, "=", 1),
			T(token.FloatLiteral, "3.14", 1),
			T(token.DelimSemicolon, ";", 1),
		}},
		{line(), `s = "hello";`, []token.Token{
			T(token.Identifier, "s", 1),
			T(token.AssignSimple, "=", 1),
			T(token.StringLiteral, `"hello"`, 1),
			T(token.DelimSemicolon, ";", 1),
		}},
		{line(), `c = 'a';`, []token.Token{
			T(token.Identifier, "c", 1),
			T(token.AssignSimple, "=", 1),
			T(token.CharLiteral, "'a'", 1),
			T(token.DelimSemicolon, ";", 1),
		}},
		{line(), `c = '\n';`, []token.Token{
			T(token.Identifier, "c", 1),
			T(token.AssignSimple, "=", 1),
			T(token.CharLiteral, `'\n'`, 1),
			T(token.DelimSemicolon, ";", 1),
		}},
		{line(), "x by y", []token.Token{
			T(token.Identifier, "x", 1),
			T(token.Noise, "by", 1),
			T(token.Identifier, "y", 1),
		}},
		{line(), "true false null const", []token.Token{
			T(token.Keyword, "true", 1),
			T(token.Keyword, "false", 1),
			T(token.Reserved, "null", 1),
			T(token.Reserved, "const", 1),
		}},
		{line(), "a ~~ trailing comment", []token.Token{
			T(token.Identifier, "a", 1),
			T(token.SingleLineComment, "~~ trailing comment", 1),
		}},
	} {
		got := Lex(tt.in)
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("%d: Lex(%q) mismatch (-want +got):\n%s", tt.line, tt.in, diff)
		}
	}
}

// TestBlockComment is scenario S3 from spec.md §8: a block comment spanning
// two lines must produce exactly the open and close tokens, nothing for
// the enclosed text.
func TestBlockComment(t *testing.T) {
	src := "~/ a = 1;\n b = 2; /~"
	want := []token.Token{
		T(token.BlockCommentOpen, "~/", 1),
		T(token.BlockCommentClose, "/~", 2),
	}
	got := Lex(src)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Lex(%q) mismatch (-want +got):\n%s", src, diff)
	}
}

func TestUnterminatedBlockComment(t *testing.T) {
	got := Lex("~/ a = 1;\n b = 2;")
	if len(got) != 2 {
		t.Fatalf("got %d tokens, want 2: %v", len(got), got)
	}
	if got[0].Kind != token.BlockCommentOpen {
		t.Errorf("got[0] = %v, want BlockCommentOpen", got[0])
	}
	last := got[len(got)-1]
	if last.Kind != token.LexicalError {
		t.Errorf("got last = %v, want LexicalError", last)
	}
}

// TestLexicalErrorSurvives is scenario S6: an invalid integer still
// produces a token and lexing continues.
func TestLexicalErrorSurvives(t *testing.T) {
	got := Lex("1abc + 2;")
	want := []token.Token{
		token.NewError("Invalid Integer", "1abc", 1),
		T(token.OpAdd, "+", 1),
		T(token.IntegerLiteral, "2", 1),
		T(token.DelimSemicolon, ";", 1),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

// TestLineNumbersNonDecreasing is invariant 1 from spec.md §8.
func TestLineNumbersNonDecreasing(t *testing.T) {
	src := "int a = 1;\nint b = 2;\n\nint c = 3;\n"
	got := Lex(src)
	prev := 0
	for _, tok := range got {
		if tok.Line < prev {
			t.Fatalf("line numbers not non-decreasing: %v", got)
		}
		prev = tok.Line
	}
}

// TestKeywordNeverIdentifier is invariant 5 from spec.md §8.
func TestKeywordNeverIdentifier(t *testing.T) {
	for _, kw := range []string{"int", "if", "while", "printf", "array", "return"} {
		got := Lex(kw + ";")
		if len(got) == 0 || got[0].Kind != token.Keyword {
			t.Errorf("Lex(%q)[0] = %v, want Keyword", kw, got)
		}
	}
}

func TestUnknownOperator(t *testing.T) {
	got := Lex("a | b;")
	want := []token.Token{
		T(token.Identifier, "a", 1),
		token.NewError("Unknown Operator", "|", 1),
		T(token.Identifier, "b", 1),
		T(token.DelimSemicolon, ";", 1),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

// TestAddressOf covers the lone '&' sigil used by SpecifierIdentifier in
// input argument lists (spec.md glossary).
func TestAddressOf(t *testing.T) {
	got := Lex("&x;")
	want := []token.Token{
		T(token.AddressOf, "&", 1),
		T(token.Identifier, "x", 1),
		T(token.DelimSemicolon, ";", 1),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}
