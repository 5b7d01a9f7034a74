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

package source

import (
	"errors"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestIsSourceFile(t *testing.T) {
	for _, tt := range []struct {
		name string
		want bool
	}{
		{"program.prsm", true},
		{"dir/program.prsm", true},
		{"program.txt", false},
		{"program", false},
		{".prsm", false},
		{"program.prsmx", false},
	} {
		if got := IsSourceFile(tt.name); got != tt.want {
			t.Errorf("IsSourceFile(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestDiscover(t *testing.T) {
	dir, err := ioutil.TempDir("", "source-discover")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)

	for _, name := range []string{"a.prsm", "b.txt", "c.prsm"} {
		if err := ioutil.WriteFile(filepath.Join(dir, name), []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	sub := filepath.Join(dir, "nested")
	if err := os.Mkdir(sub, 0755); err != nil {
		t.Fatal(err)
	}
	if err := ioutil.WriteFile(filepath.Join(sub, "d.prsm"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	got, err := Discover(dir)
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, p := range got {
		names = append(names, filepath.Base(p))
	}
	want := []string{"a.prsm", "c.prsm", "d.prsm"}
	if len(names) != len(want) {
		t.Fatalf("got %v, want %v", names, want)
	}
	seen := map[string]bool{}
	for _, n := range names {
		seen[n] = true
	}
	for _, w := range want {
		if !seen[w] {
			t.Errorf("missing %q in %v", w, names)
		}
	}
}

func TestSelectSingleCandidate(t *testing.T) {
	got, err := Select([]string{"only.prsm"}, strings.NewReader(""), new(strings.Builder))
	if err != nil {
		t.Fatal(err)
	}
	if got != "only.prsm" {
		t.Errorf("got %q, want only.prsm", got)
	}
}

func TestSelectNoCandidates(t *testing.T) {
	if _, err := Select(nil, strings.NewReader(""), new(strings.Builder)); err == nil {
		t.Error("Select with no candidates unexpectedly succeeded")
	}
}

func TestSelectPrompts(t *testing.T) {
	var out strings.Builder
	got, err := Select([]string{"one.prsm", "two.prsm"}, strings.NewReader("2\n"), &out)
	if err != nil {
		t.Fatal(err)
	}
	if got != "two.prsm" {
		t.Errorf("got %q, want two.prsm", got)
	}
	if !strings.Contains(out.String(), "one.prsm") || !strings.Contains(out.String(), "two.prsm") {
		t.Errorf("prompt missing a candidate: %q", out.String())
	}
}

func TestSelectInvalidChoice(t *testing.T) {
	_, err := Select([]string{"one.prsm", "two.prsm"}, strings.NewReader("9\n"), new(strings.Builder))
	if err == nil {
		t.Error("Select with out-of-range choice unexpectedly succeeded")
	}
}

func TestReadRejectsWrongExtension(t *testing.T) {
	if _, err := Read("program.txt"); err == nil {
		t.Error("Read of a non-.prsm name unexpectedly succeeded")
	}
}

func TestReadUsesReadFile(t *testing.T) {
	orig := readFile
	defer func() { readFile = orig }()

	var got string
	readFile = func(path string) ([]byte, error) {
		got = path
		return []byte("int x = 1;\n"), nil
	}
	data, err := Read("program.prsm")
	if err != nil {
		t.Fatal(err)
	}
	if got != "program.prsm" {
		t.Errorf("readFile called with %q, want program.prsm", got)
	}
	if data != "int x = 1;\n" {
		t.Errorf("got %q", data)
	}
}

func TestReadPropagatesError(t *testing.T) {
	orig := readFile
	defer func() { readFile = orig }()
	readFile = func(string) ([]byte, error) { return nil, errors.New("boom") }

	if _, err := Read("program.prsm"); err == nil {
		t.Error("Read unexpectedly succeeded despite readFile error")
	}
}
