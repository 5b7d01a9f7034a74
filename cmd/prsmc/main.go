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

// Program prsmc compiles a .prsm source file through the lexer and parser,
// writing the lexed symbol-table file and the parsed tree to disk.
//
// Usage: prsmc [--path DIR] [--format indented|parenthesized] [--symtab FILE] [--trace FILE] [SOURCE]
//
// If SOURCE is omitted, prsmc looks for a single .prsm file under --path
// (the current directory by default); if more than one is found it prompts
// on standard input to choose one.
package main

import (
	"fmt"
	"os"
	"runtime/trace"

	"github.com/pborman/getopt"

	"github.com/prismlang/prsmc/pkg/lexer"
	"github.com/prismlang/prsmc/pkg/parser"
	"github.com/prismlang/prsmc/pkg/source"
	"github.com/prismlang/prsmc/pkg/symtab"
	"github.com/prismlang/prsmc/pkg/token"
	"github.com/prismlang/prsmc/pkg/tree"
)

// stop is os.Exit, indirected so a running trace is stopped before the
// process exits (mirrors the teacher's yang.go stop variable).
var stop = os.Exit

// exitLexicalOrSyntax and exitInternal are the two non-zero exit codes
// spec.md §7 reserves: 1 for a failed run (no source found, a file error,
// or the input contained lexical/syntax errors), 2 for an internal
// invariant violation.
const (
	exitLexicalOrSyntax = 1
	exitInternal        = 2
)

func main() {
	var dir, format, symtabPath, traceP string
	var help bool

	getopt.StringVarLong(&dir, "path", 0, "directory to search for a .prsm file", "DIR")
	getopt.StringVarLong(&format, "format", 0, "tree output format: indented or parenthesized", "FORMAT")
	getopt.StringVarLong(&symtabPath, "symtab", 0, "path to write the symbol-table file", "FILE")
	getopt.StringVarLong(&traceP, "trace", 0, "write an execution trace to FILE", "FILE")
	getopt.BoolVarLong(&help, "help", '?', "display help")
	getopt.SetParameters("[SOURCE]")

	if err := getopt.Getopt(func(getopt.Option) bool { return true }); err != nil {
		fmt.Fprintln(os.Stderr, err)
		getopt.PrintUsage(os.Stderr)
		os.Exit(exitLexicalOrSyntax)
	}

	if help {
		getopt.CommandLine.PrintUsage(os.Stderr)
		stop(0)
	}

	if traceP != "" {
		fp, err := os.Create(traceP)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(exitLexicalOrSyntax)
		}
		trace.Start(fp)
		stop = func(c int) { trace.Stop(); os.Exit(c) }
		defer trace.Stop()
	}

	if format == "" {
		format = "indented"
	}
	if format != "indented" && format != "parenthesized" {
		fmt.Fprintf(os.Stderr, "%s: invalid format, want indented or parenthesized\n", format)
		stop(exitLexicalOrSyntax)
	}
	if dir == "" {
		dir = "."
	}
	if symtabPath == "" {
		symtabPath = "symbol_table.prsm"
	}

	name, err := resolveSourceName(getopt.Args(), dir)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop(exitLexicalOrSyntax)
	}

	text, err := source.Read(name)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop(exitLexicalOrSyntax)
	}

	tokens := lexer.Lex(text)
	lexErrors := false
	for _, t := range tokens {
		if t.Kind == token.LexicalError {
			fmt.Fprintf(os.Stderr, "line %d: lexical error: %s %q\n", t.Line, t.Detail, t.Lexeme)
			lexErrors = true
		}
	}

	if err := writeSymtabFile(symtabPath, tokens); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop(exitLexicalOrSyntax)
	}
	tokens, err = readSymtabFile(symtabPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop(exitLexicalOrSyntax)
	}

	p := parser.New(tokens)
	root, err := p.Parse()
	if err != nil {
		// An internal invariant violation (spec.md §7): terminate the run
		// rather than report it as an ordinary diagnostic.
		fmt.Fprintln(os.Stderr, err)
		stop(exitInternal)
	}

	if p.Diagnostics().HasErrors() {
		fmt.Fprint(os.Stderr, p.Diagnostics().String())
	}

	if err := writeTree(os.Stdout, root, format); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop(exitLexicalOrSyntax)
	}

	if lexErrors || p.Diagnostics().HasErrors() {
		stop(exitLexicalOrSyntax)
	}
}

// resolveSourceName returns the one .prsm file to compile: an explicit
// positional argument if given, otherwise the result of discovering and
// selecting among candidates under dir.
func resolveSourceName(args []string, dir string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	candidates, err := source.Discover(dir)
	if err != nil {
		return "", err
	}
	return source.Select(candidates, os.Stdin, os.Stderr)
}

// writeSymtabFile writes every token to path and closes the file on every
// return path, the release guarantee spec.md §5 requires of the lexer
// stage before the parser stage opens the same path for reading.
func writeSymtabFile(path string, tokens []token.Token) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return symtab.NewWriter(f).WriteAll(tokens)
}

// readSymtabFile opens path and reads back every token record written by
// writeSymtabFile.
func readSymtabFile(path string) ([]token.Token, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return symtab.NewReader(f).ReadAll()
}

// writeTree serializes root to w in the requested format (spec.md §4.8).
func writeTree(w *os.File, root *tree.Node, format string) error {
	if format == "parenthesized" {
		if err := tree.WriteParenthesized(w, root); err != nil {
			return err
		}
		_, err := fmt.Fprintln(w)
		return err
	}
	return tree.WriteIndented(w, root)
}
