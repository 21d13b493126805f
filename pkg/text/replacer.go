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
	"gitlab.com/tozd/go/errors"
)

// Rule replaces the value captured by Pattern with Value
type Rule struct {
	// Pattern locates the field
	Pattern *Pattern

	// Value is the literal replacement text
	Value string
}

// ReplacementResult contains the results of applying a set of rules
type ReplacementResult struct {
	// WasModified indicates the content differs from the original
	WasModified bool

	// ReplacementCount is the number of rules that matched
	ReplacementCount int

	// OriginalContent is the content before replacements
	OriginalContent string

	// ModifiedContent is the content after replacements
	ModifiedContent string
}

// Apply runs each rule once, in order, against the output of the previous one.
// A rule whose pattern does not match is skipped.
func Apply(content string, rules ...Rule) *ReplacementResult {
	result := &ReplacementResult{
		OriginalContent: content,
		ModifiedContent: content,
	}

	current := content
	for _, rule := range rules {
		if rule.Pattern == nil {
			continue
		}

		next, ok := rule.Pattern.Replace(current, rule.Value)
		if !ok {
			continue
		}

		result.ReplacementCount++
		current = next
	}

	result.ModifiedContent = current
	result.WasModified = current != content
	return result
}

// ValidateRules checks that all rules are usable
func ValidateRules(rules []Rule) error {
	for i, rule := range rules {
		if rule.Pattern == nil {
			return errors.Errorf("rule %d: pattern is required", i)
		}
	}
	return nil
}
