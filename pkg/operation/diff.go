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

package operation

import (
	"strings"

	"github.com/fatih/color"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// diffContext is the number of unchanged runes shown around each change
const diffContext = 40

// renderDiff shows only the changed regions of a document with a little
// surrounding context
func renderDiff(before, after string) string {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffCleanupSemantic(dmp.DiffMain(before, after, false))

	var sb strings.Builder
	for i, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			sb.WriteString(color.New(color.FgRed).Sprint("[-" + d.Text + "-]"))
		case diffmatchpatch.DiffInsert:
			sb.WriteString(color.New(color.FgGreen).Sprint("{+" + d.Text + "+}"))
		case diffmatchpatch.DiffEqual:
			sb.WriteString(trimEqual(d.Text, i == 0, i == len(diffs)-1))
		}
	}

	return sb.String()
}

// trimEqual keeps the tail of the leading run, the head of the trailing run,
// and both ends of runs in between
func trimEqual(s string, first, last bool) string {
	r := []rune(s)
	if len(r) <= 2*diffContext {
		if first && len(r) > diffContext {
			return "…" + string(r[len(r)-diffContext:])
		}
		if last && len(r) > diffContext {
			return string(r[:diffContext]) + "…"
		}
		return s
	}

	switch {
	case first && last:
		return "…"
	case first:
		return "…" + string(r[len(r)-diffContext:])
	case last:
		return string(r[:diffContext]) + "…"
	default:
		return string(r[:diffContext]) + "\n…\n" + string(r[len(r)-diffContext:])
	}
}
