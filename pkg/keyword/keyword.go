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

// Package keyword recognizes the reserved words of .prsm. spec.md §4.3
// specifies a trie-shaped DFA driven one character at a time; spec.md §9
// explicitly steers away from a hand-enumerated ~70-state switch (a
// "teaching artifact, not a performance requirement") toward a generated
// trie walk over a static table. This package keeps the character-at-a-time
// contract callers rely on but builds the table once at init time instead
// of hand-naming every state.
package keyword

// Words is the full reserved keyword set (spec.md glossary).
var Words = []string{
	"array", "bool", "break", "case", "char", "continue", "default", "do",
	"else", "false", "float", "for", "goto", "if", "input", "int", "main",
	"printf", "return", "string", "switch", "true", "void", "while",
}

// Reserved are lexically identifiers that cannot be redeclared, tagged
// distinctly from general keywords (spec.md glossary).
var Reserved = []string{"true", "false", "null", "const"}

// Noise words are preserved in the token stream but ignored by the parser
// (spec.md glossary).
var Noise = []string{"by", "from", "until"}

func set(words []string) map[string]bool {
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[w] = true
	}
	return m
}

var (
	keywordSet  = set(Words)
	reservedSet = set(Reserved)
	noiseSet    = set(Noise)
)

// node is one state of the keyword trie: a prefix of one or more reserved
// words, with a transition table keyed by the next byte and a flag marking
// whether the prefix read so far is itself a complete word.
type node struct {
	next   map[byte]*node
	accept bool
}

var root = buildTrie(Words)

func buildTrie(words []string) *node {
	r := &node{next: map[byte]*node{}}
	for _, w := range words {
		n := r
		for i := 0; i < len(w); i++ {
			c := w[i]
			child, ok := n.next[c]
			if !ok {
				child = &node{next: map[byte]*node{}}
				n.next[c] = child
			}
			n = child
		}
		n.accept = true
	}
	return r
}

// Recognizer drives the trie one character at a time, matching spec.md
// §4.3's "consume the characters of a candidate identifier one at a time"
// contract.
type Recognizer struct {
	cur *node
}

// NewRecognizer returns a Recognizer positioned at the trie root.
func NewRecognizer() *Recognizer {
	return &Recognizer{cur: root}
}

// Step transitions on c, returning false (and leaving the recognizer dead)
// if no reserved word has c as its next character from the current prefix.
// A false return is not an error: callers fall through to identifier
// classification, per spec.md §4.3's failure semantics.
func (r *Recognizer) Step(c byte) bool {
	if r.cur == nil {
		return false
	}
	n, ok := r.cur.next[c]
	if !ok {
		r.cur = nil
		return false
	}
	r.cur = n
	return true
}

// Accept reports whether the prefix consumed so far is exactly one of the
// reserved words (i.e. the lexeme ended exactly where the word did).
func (r *Recognizer) Accept() bool {
	return r.cur != nil && r.cur.accept
}

// Lookup is the whole-lexeme convenience form: feed every byte of word
// through a fresh Recognizer and report whether it is accepted. Most
// callers (the lexer's IDENTIFIER finalize step) already have the whole
// lexeme in hand and use this instead of driving Step by hand.
func Lookup(word string) bool {
	r := NewRecognizer()
	for i := 0; i < len(word); i++ {
		if !r.Step(word[i]) {
			return false
		}
	}
	return r.Accept()
}

// IsReserved reports whether word is one of the reserved words (spec.md
// glossary: true, false, null, const).
func IsReserved(word string) bool {
	return reservedSet[word]
}

// IsNoise reports whether word is one of the noise words (spec.md
// glossary: by, from, until).
func IsNoise(word string) bool {
	return noiseSet[word]
}

// IsKeyword is the hash-set membership alternative spec.md §9 also
// sanctions; Lookup and IsKeyword always agree, but IsKeyword is the
// cheaper check when the caller doesn't need the character-at-a-time
// contract.
func IsKeyword(word string) bool {
	return keywordSet[word]
}
