// Copyright 2025 walteh LLC
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

package text

import (
	"regexp"

	"gitlab.com/tozd/go/errors"
)

// ValueGroup is the name of the capture group holding the field value.
const ValueGroup = "value"

// ErrNoValueGroup is returned when an expression has no value group.
var ErrNoValueGroup = errors.Base("pattern has no value group")

// 🔍 Pattern locates a single field occurrence inside a document.
//
// The expression anchors on the surrounding structure and captures the
// field itself in a group named "value". Only the first match is ever used.
type Pattern struct {
	name  string
	re    *regexp.Regexp
	group int
}

// 🏭 Compile compiles expr into a Pattern
func Compile(name, expr string) (*Pattern, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, errors.Errorf("compiling pattern %s: %w", name, err)
	}

	group := re.SubexpIndex(ValueGroup)
	if group < 0 {
		return nil, errors.Errorf("compiling pattern %s: %w", name, ErrNoValueGroup)
	}

	return &Pattern{name: name, re: re, group: group}, nil
}

// MustCompile is like Compile but panics on error.
func MustCompile(name, expr string) *Pattern {
	p, err := Compile(name, expr)
	if err != nil {
		panic(err)
	}
	return p
}

// Name returns the name the pattern was compiled with
func (p *Pattern) Name() string {
	return p.name
}

// String returns the source expression
func (p *Pattern) String() string {
	return p.re.String()
}

// 📍 Match is the first occurrence of a pattern in a text
type Match struct {
	Start      int    // Start of the whole match
	End        int    // End of the whole match
	ValueStart int    // Start of the captured value
	ValueEnd   int    // End of the captured value
	Value      string // Captured value
}

// 🎯 Find returns the first match of the pattern in s
func (p *Pattern) Find(s string) (Match, bool) {
	loc := p.re.FindStringSubmatchIndex(s)
	if loc == nil {
		return Match{}, false
	}

	vs, ve := loc[2*p.group], loc[2*p.group+1]
	if vs < 0 {
		return Match{}, false
	}

	return Match{
		Start:      loc[0],
		End:        loc[1],
		ValueStart: vs,
		ValueEnd:   ve,
		Value:      s[vs:ve],
	}, true
}

// Value returns the captured value of the first match
func (p *Pattern) Value(s string) (string, bool) {
	m, ok := p.Find(s)
	if !ok {
		return "", false
	}
	return m.Value, true
}

// ✏️ Rewrite returns s with the matched value replaced by value.
//
// The value is inserted literally; callers escape it if the document
// format needs that.
func (m Match) Rewrite(s, value string) string {
	return s[:m.ValueStart] + value + s[m.ValueEnd:]
}

// Replace rewrites the first match of the pattern in s
func (p *Pattern) Replace(s, value string) (string, bool) {
	m, ok := p.Find(s)
	if !ok {
		return s, false
	}
	return m.Rewrite(s, value), true
}
