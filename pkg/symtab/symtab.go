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

// Package symtab serializes tokens to the symbol-table file and reads them
// back (spec.md §4.5, §6). One token per line, three comma-separated
// fields: kind, lexeme, line number. The reader splits on the first and
// last comma so a lexeme may itself contain commas, matching spec.md §6's
// "reader splits on the first and last commas" contract.
package symtab

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/prismlang/prsmc/pkg/token"
)

// rule is the horizontal bar original_source's utils.c writeHorizontalBar
// writes around the symbol table's human-readable listing.
const rule = "--------------------------------------------------------------------------------------------------------------------------------------------"

// Writer appends tokens to the symbol-table stream. Writer is append-only;
// it performs no buffering beyond what w itself does, so the lexer's
// caller is responsible for closing the underlying file before the parser
// opens it for reading (spec.md §5).
type Writer struct {
	w io.Writer
}

// NewWriter returns a Writer over w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Write appends one record for t.
func (s *Writer) Write(t token.Token) error {
	kind := t.Kind.String()
	if t.Kind == token.LexicalError && t.Detail != "" {
		kind = fmt.Sprintf("%s (%s)", kind, t.Detail)
	}
	_, err := fmt.Fprintf(s.w, "%s,%s,%d\n", kind, t.Lexeme, t.Line)
	return err
}

// WriteAll appends every token in tokens, in order.
func (s *Writer) WriteAll(tokens []token.Token) error {
	for _, t := range tokens {
		if err := s.Write(t); err != nil {
			return err
		}
	}
	return nil
}

// WriteRule writes the horizontal-bar separator the original lexer wrote
// around the human-readable symbol table listing.
func (s *Writer) WriteRule() error {
	_, err := fmt.Fprintln(s.w, rule)
	return err
}

// WriteHeader writes the rule followed by a column header row, matching
// the original's pretty-printed (not machine-parsed) symbol table listing.
// It is meant for a separate human-readable listing; Reader does not
// expect to see it mixed into the machine-readable stream it parses back.
func (s *Writer) WriteHeader() error {
	if err := s.WriteRule(); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(s.w, "Token Type, Lexeme, Line Number"); err != nil {
		return err
	}
	return s.WriteRule()
}

// Reader reads tokens back from a symbol-table stream written by Writer.
type Reader struct {
	sc *bufio.Scanner
}

// NewReader returns a Reader over r.
func NewReader(r io.Reader) *Reader {
	return &Reader{sc: bufio.NewScanner(r)}
}

// ReadAll reads every remaining record from the stream.
func (r *Reader) ReadAll() ([]token.Token, error) {
	var out []token.Token
	for {
		t, ok, err := r.Read()
		if err != nil {
			return nil, err
		}
		if !ok {
			return out, nil
		}
		out = append(out, t)
	}
}

// Read reads the next record, returning ok=false at end of stream. Empty
// lines and rule lines (which contain no comma) are skipped transparently.
// The column-header row written by WriteHeader does contain commas and is
// not skipped: Read reports it as a malformed record.
func (r *Reader) Read() (token.Token, bool, error) {
	for r.sc.Scan() {
		line := r.sc.Text()
		if line == "" || !strings.Contains(line, ",") {
			continue
		}
		t, err := parseLine(line)
		if err != nil {
			return token.Token{}, false, err
		}
		return t, true, nil
	}
	if err := r.sc.Err(); err != nil {
		return token.Token{}, false, err
	}
	return token.Token{}, false, nil
}

// parseLine splits line on its first and last comma, so an embedded comma
// in the lexeme field survives round-tripping.
func parseLine(line string) (token.Token, error) {
	first := strings.Index(line, ",")
	last := strings.LastIndex(line, ",")
	if first < 0 || last <= first {
		return token.Token{}, fmt.Errorf("symtab: malformed record: %q", line)
	}
	kindField := line[:first]
	lexeme := line[first+1 : last]
	lineField := line[last+1:]

	lineNo, err := strconv.Atoi(lineField)
	if err != nil {
		return token.Token{}, fmt.Errorf("symtab: bad line number in %q: %w", line, err)
	}

	detail := ""
	kindName := kindField
	if idx := strings.Index(kindField, " ("); idx >= 0 && strings.HasSuffix(kindField, ")") {
		if strings.HasPrefix(kindField, token.LexicalError.String()) {
			kindName = kindField[:idx]
			detail = kindField[idx+2 : len(kindField)-1]
		}
	}
	kind, ok := token.ParseKind(kindName)
	if !ok {
		return token.Token{}, fmt.Errorf("symtab: unknown kind %q in %q", kindName, line)
	}
	return token.Token{Kind: kind, Lexeme: lexeme, Line: lineNo, Detail: detail}, nil
}
