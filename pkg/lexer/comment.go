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

const (
	blockOpen  = "~/"
	blockClose = "/~"
)

// commentTracker tracks whether the lexer is currently inside a block
// comment, across line boundaries (spec.md §4.2, §3 "cross-line" state).
// Block comments do not nest (spec.md §9).
type commentTracker struct {
	inBlock bool
}

// scanClose looks for the "/~" marker starting at or after pos in line. If
// found, it emits a BlockCommentClose token, clears inBlock, and returns the
// byte offset just past the marker plus true. If not found, the entire
// remainder of the line is part of the comment body; it returns
// (len(line), false) and inBlock stays set.
func (c *commentTracker) scanClose(line string, lineNo int, pos int, emit func(token.Token)) (int, bool) {
	for i := pos; i+1 < len(line); i++ {
		if line[i] == '/' && line[i+1] == '~' {
			emit(token.New(token.BlockCommentClose, blockClose, lineNo))
			c.inBlock = false
			return i + 2, true
		}
	}
	return len(line), false
}

// open emits a BlockCommentOpen token at pos (the marker itself) and sets
// inBlock. Returns the offset just past the marker.
func (c *commentTracker) open(line string, lineNo int, pos int, emit func(token.Token)) int {
	emit(token.New(token.BlockCommentOpen, blockOpen, lineNo))
	c.inBlock = true
	return pos + 2
}
