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
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/openconfig/gnmi/errdiff"

	"github.com/prismlang/prsmc/pkg/lexer"
	"github.com/prismlang/prsmc/pkg/tree"
)

// shape is a trimmed, comparison-friendly projection of a *tree.Node: just
// labels and, for terminals, values, with children recursed. Comparing
// shapes rather than raw *tree.Node keeps the table below readable.
type shape struct {
	Label    string
	Value    string
	HasValue bool
	Children []shape
}

func toShape(n *tree.Node) shape {
	s := shape{Label: n.Label, Value: n.Value, HasValue: n.HasValue}
	for _, c := range n.Children {
		s.Children = append(s.Children, toShape(c))
	}
	return s
}

func parse(t *testing.T, src string) (*tree.Node, *Parser) {
	t.Helper()
	toks := lexer.Lex(src)
	p := New(toks)
	root, err := p.Parse()
	if err != nil {
		t.Fatalf("Parse(%q): unexpected internal error: %v", src, err)
	}
	return root, p
}

// TestIfElse covers spec.md §8 scenario S4: an if/else tree shape with the
// expected child sequence.
func TestIfElse(t *testing.T) {
	root, p := parse(t, "if (x == 1) { y = 2; } else { y = 3; }")
	if p.Diagnostics().HasErrors() {
		t.Fatalf("unexpected diagnostics: %s", p.Diagnostics().String())
	}
	if len(root.Children) != 1 {
		t.Fatalf("got %d top-level statements, want 1", len(root.Children))
	}
	ifStmt := root.Children[0]
	if ifStmt.Label != "IfStatement" {
		t.Fatalf("got root child label %q, want IfStatement", ifStmt.Label)
	}

	var labels []string
	for _, c := range ifStmt.Children {
		labels = append(labels, c.Label)
	}
	want := []string{
		"Keyword", "(", "EqualityExpr",
		")", "Block", "Keyword", "Block",
	}
	if diff := cmp.Diff(want, labels); diff != "" {
		t.Errorf("IfStatement children labels mismatch (-want +got):\n%s", diff)
	}

	eq := ifStmt.Children[2]
	wantEq := shape{
		Label: "EqualityExpr",
		Children: []shape{
			{Label: "Identifier", Value: "x", HasValue: true},
			{Label: "Relational Operator (Equal To)", Value: "==", HasValue: true},
			{Label: "Integer Literal", Value: "1", HasValue: true},
		},
	}
	if diff := cmp.Diff(wantEq, toShape(eq)); diff != "" {
		t.Errorf("equality expr mismatch (-want +got):\n%s", diff)
	}
}

// TestMissingSemicolonRecovery covers spec.md §8 scenario S5: one syntax
// error at the token following the missing ';', and two AssignmentStatement
// subtrees recovered, the first flagged.
func TestMissingSemicolonRecovery(t *testing.T) {
	root, p := parse(t, "x = 1 y = 2;")
	if len(root.Children) != 2 {
		t.Fatalf("got %d top-level statements, want 2", len(root.Children))
	}
	first, second := root.Children[0], root.Children[1]
	if first.Label != "AssignmentStatement" || second.Label != "AssignmentStatement" {
		t.Fatalf("got labels %q, %q, want two AssignmentStatement", first.Label, second.Label)
	}
	if first.Value != "missing-semicolon" {
		t.Errorf("first AssignmentStatement.Value = %q, want %q", first.Value, "missing-semicolon")
	}
	if second.HasValue {
		t.Errorf("second AssignmentStatement unexpectedly flagged: %q", second.Value)
	}
	if p.Diagnostics().Len() != 1 {
		t.Fatalf("got %d diagnostics, want 1: %s", p.Diagnostics().Len(), p.Diagnostics().String())
	}
	if diff := errdiff.Substring(firstDiagErr(p), "missing ';'"); diff != "" {
		t.Errorf("diagnostic mismatch: %s", diff)
	}
}

// firstDiagErr adapts a Bag's first recorded diagnostic into an error so
// errdiff.Substring (built for comparing error values) can check it.
func firstDiagErr(p *Parser) error {
	items := p.Diagnostics().Items()
	if len(items) == 0 {
		return nil
	}
	return errString(items[0].Message)
}

type errString string

func (e errString) Error() string { return string(e) }

func TestLexicalErrorBecomesOperand(t *testing.T) {
	root, _ := parse(t, "1abc + 2;")
	if len(root.Children) != 1 {
		t.Fatalf("got %d top-level statements, want 1", len(root.Children))
	}
	stmt := root.Children[0]
	if stmt.Label != "ExpressionStatement" {
		t.Fatalf("got label %q, want ExpressionStatement", stmt.Label)
	}
	add := stmt.Children[0]
	if add.Label != "AdditiveExpr" {
		t.Fatalf("got label %q, want AdditiveExpr", add.Label)
	}
	if add.Children[0].Label != "Lexical Error" {
		t.Errorf("left operand label = %q, want %q", add.Children[0].Label, "Lexical Error")
	}
}

func TestFunctionDeclAndCall(t *testing.T) {
	root, p := parse(t, "int add(int a, int b) { return a + b; }\nadd(1, 2);")
	if p.Diagnostics().HasErrors() {
		t.Fatalf("unexpected diagnostics: %s", p.Diagnostics().String())
	}
	if len(root.Children) != 2 {
		t.Fatalf("got %d top-level statements, want 2", len(root.Children))
	}
	if root.Children[0].Label != "FunctionDeclaration" {
		t.Errorf("got %q, want FunctionDeclaration", root.Children[0].Label)
	}
	if root.Children[1].Label != "FunctionCallStatement" {
		t.Errorf("got %q, want FunctionCallStatement", root.Children[1].Label)
	}
}

func TestForLoop(t *testing.T) {
	root, p := parse(t, "for (int i=0; i < 10; i++) { printf(\"%d\", i); }")
	if p.Diagnostics().HasErrors() {
		t.Fatalf("unexpected diagnostics: %s", p.Diagnostics().String())
	}
	if len(root.Children) != 1 || root.Children[0].Label != "ForStatement" {
		t.Fatalf("got %+v, want a single ForStatement", root.Children)
	}
}

func TestInputStatement(t *testing.T) {
	root, p := parse(t, "input(\"%d\", &x);")
	if p.Diagnostics().HasErrors() {
		t.Fatalf("unexpected diagnostics: %s", p.Diagnostics().String())
	}
	if len(root.Children) != 1 || root.Children[0].Label != "InputStatement" {
		t.Fatalf("got %+v, want a single InputStatement", root.Children)
	}
	pair := root.Children[0].Children[2]
	if pair.Label != "FormatVariablePair" {
		t.Fatalf("got %q, want FormatVariablePair", pair.Label)
	}
	if got := pair.Children[1].Label; got != "SpecifierIdentifier" {
		t.Errorf("got %q, want SpecifierIdentifier", got)
	}
}

// TestMainFunction covers the "main" keyword occupying a function-name
// position (spec.md §9 keyword set reserves "main" lexically).
func TestMainFunction(t *testing.T) {
	root, p := parse(t, "void main() { return; }")
	if p.Diagnostics().HasErrors() {
		t.Fatalf("unexpected diagnostics: %s", p.Diagnostics().String())
	}
	if len(root.Children) != 1 || root.Children[0].Label != "FunctionDeclaration" {
		t.Fatalf("got %+v, want a single FunctionDeclaration", root.Children)
	}
	if got := root.Children[0].Children[1].Value; got != "main" {
		t.Errorf("got function name %q, want main", got)
	}
}
