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

package tree

import (
	"fmt"
	"io"

	"github.com/prismlang/prsmc/pkg/indent"
)

// WriteIndented writes n in the indented format of spec.md §4.8: two
// spaces per depth level, "label: value" for terminals, just "label"
// otherwise. Depth is realized the way the teacher's Statement.Write nests
// indentation for sub-statements: each recursive call writes through one
// more layer of indent.Writer rather than computing a repeated prefix.
func WriteIndented(w io.Writer, n *Node) error {
	if n == nil {
		return nil
	}
	var err error
	if n.IsTerminal() {
		_, err = fmt.Fprintf(w, "%s: %s\n", n.Label, n.Value)
	} else {
		_, err = fmt.Fprintf(w, "%s\n", n.Label)
	}
	if err != nil {
		return err
	}
	if len(n.Children) == 0 {
		return nil
	}
	iw := indent.NewWriter(w, "  ")
	for _, c := range n.Children {
		if err := WriteIndented(iw, c); err != nil {
			return err
		}
	}
	return nil
}

// WriteParenthesized writes n in the parenthesized format of spec.md §4.8:
// "(label:value child1 child2 ...)". A terminal with no children is
// written as "(label:value)"; a non-terminal with no value and no
// children as "(label)".
func WriteParenthesized(w io.Writer, n *Node) error {
	if n == nil {
		return nil
	}
	if _, err := io.WriteString(w, "("); err != nil {
		return err
	}
	if n.IsTerminal() {
		if _, err := fmt.Fprintf(w, "%s:%s", n.Label, n.Value); err != nil {
			return err
		}
	} else {
		if _, err := io.WriteString(w, n.Label); err != nil {
			return err
		}
	}
	for _, c := range n.Children {
		if _, err := io.WriteString(w, " "); err != nil {
			return err
		}
		if err := WriteParenthesized(w, c); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, ")")
	return err
}
