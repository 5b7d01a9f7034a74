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

import "github.com/prismlang/prsmc/pkg/token"

// operatorEntry is one row of the maximal-munch operator table (spec.md
// §4.4 "Operator table"). The source contained several near-identical
// operator-classification blocks; spec.md §9 asks for exactly one
// table-driven recognizer instead, which is what matchOperator below is.
type operatorEntry struct {
	lexeme string
	kind   token.Kind
}

// operatorsByLength holds candidate operators grouped by length, longest
// first, so matchOperator can try 3-character matches before 2- and
// 1-character ones.
var operatorsByLength = [][]operatorEntry{
	{ // length 3
		{"//=", token.AssignIntDiv},
	},
	{ // length 2
		{"==", token.RelEqual},
		{"!=", token.RelNotEqual},
		{"<=", token.RelLessEq},
		{">=", token.RelGreaterEq},
		{"++", token.UnaryIncrement},
		{"+=", token.AssignAdd},
		{"--", token.UnaryDecrement},
		{"-=", token.AssignSub},
		{"*=", token.AssignMul},
		{"//", token.OpIntDiv},
		{"/=", token.AssignDiv},
		{"%=", token.AssignMod},
		{"~=", token.AssignTilde},
		{"&&", token.LogicalAnd},
		{"||", token.LogicalOr},
	},
	{ // length 1
		{"=", token.AssignSimple},
		{"!", token.LogicalNot},
		{"<", token.RelLess},
		{">", token.RelGreater},
		{"+", token.OpAdd},
		{"-", token.OpSub},
		{"*", token.OpMul},
		{"/", token.OpDiv},
		{"%", token.OpMod},
		{"^", token.OpPow},
		{"&", token.AddressOf},
	},
}

// matchOperator applies maximal munch at line[pos:], returning the longest
// matching operator kind and lexeme. ok is false for a stray '|', '~' that
// does not form a recognized operator (those are reported as unknown
// operators by the caller). A lone '&' is recognized as AddressOf (spec.md
// glossary: "SpecifierIdentifier ... an identifier preceded by &").
func matchOperator(line string, pos int) (kind token.Kind, lexeme string, ok bool) {
	for _, group := range operatorsByLength {
		for _, e := range group {
			n := len(e.lexeme)
			if pos+n <= len(line) && line[pos:pos+n] == e.lexeme {
				return e.kind, e.lexeme, true
			}
		}
	}
	return token.Invalid, "", false
}
