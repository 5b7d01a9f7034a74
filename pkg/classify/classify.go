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

// Package classify holds the pure, stateless byte predicates the lexer FSM
// dispatches on. None of these allocate; all operate on a single byte,
// since .prsm source is specified as ASCII (spec.md §1 non-goals exclude
// Unicode source text).
package classify

// Delimiters is the fixed set of twelve single-character delimiter shapes.
const Delimiters = ",.;:(){}[]\"'"

// operatorStarts is the union of first bytes of every recognized operator.
const operatorStarts = "=!<>+-*/%^~&|"

// IsLetter reports whether c is an ASCII letter or an underscore.
func IsLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}

// IsDigit reports whether c is an ASCII decimal digit.
func IsDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// IsAlnumOrUnderscore reports whether c may continue an identifier once
// started.
func IsAlnumOrUnderscore(c byte) bool {
	return IsLetter(c) || IsDigit(c)
}

// IsSpace reports whether c is insignificant horizontal or vertical
// whitespace.
func IsSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\r', '\n', '\v', '\f':
		return true
	}
	return false
}

// IsDelimiter reports whether c is one of the twelve delimiter characters.
func IsDelimiter(c byte) bool {
	for i := 0; i < len(Delimiters); i++ {
		if Delimiters[i] == c {
			return true
		}
	}
	return false
}

// IsOperatorStart reports whether c can begin a recognized operator.
func IsOperatorStart(c byte) bool {
	for i := 0; i < len(operatorStarts); i++ {
		if operatorStarts[i] == c {
			return true
		}
	}
	return false
}

// IsTerminator reports whether c ends a run of identifier/number
// characters: whitespace, a delimiter, or the start of an operator.
func IsTerminator(c byte) bool {
	return IsSpace(c) || IsDelimiter(c) || IsOperatorStart(c)
}
