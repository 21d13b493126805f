package text

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApply(t *testing.T) {
	flat := MustCompile("flat", `<Buyer[^>]*?Title="(?P<value>[^"]*)"`)
	nested := MustCompile("nested", `<Buyer[\s\S]*?<Legal[^>]*?Title="(?P<value>[^"]*)"`)

	tests := []struct {
		name         string
		content      string
		rules        []Rule
		want         string
		wantCount    int
		wantModified bool
	}{
		{
			name:    "both_rules_fire",
			content: `<Buyer Title="A"><Legal Title="B"/></Buyer>`,
			rules: []Rule{
				{Pattern: flat, Value: "X"},
				{Pattern: nested, Value: "X"},
			},
			want:         `<Buyer Title="X"><Legal Title="X"/></Buyer>`,
			wantCount:    2,
			wantModified: true,
		},
		{
			name:    "only_nested_rule_fires",
			content: `<Buyer><Legal Title="B"/></Buyer>`,
			rules: []Rule{
				{Pattern: flat, Value: "X"},
				{Pattern: nested, Value: "X"},
			},
			want:         `<Buyer><Legal Title="X"/></Buyer>`,
			wantCount:    1,
			wantModified: true,
		},
		{
			name:    "matched_but_unchanged",
			content: `<Buyer Title="X"><Legal Title="X"/></Buyer>`,
			rules: []Rule{
				{Pattern: flat, Value: "X"},
				{Pattern: nested, Value: "X"},
			},
			want:         `<Buyer Title="X"><Legal Title="X"/></Buyer>`,
			wantCount:    2,
			wantModified: false,
		},
		{
			name:    "no_match",
			content: `<Seller Title="A"/>`,
			rules: []Rule{
				{Pattern: flat, Value: "X"},
			},
			want:         `<Seller Title="A"/>`,
			wantCount:    0,
			wantModified: false,
		},
		{
			name:         "empty_rules",
			content:      `<Buyer Title="A"/>`,
			want:         `<Buyer Title="A"/>`,
			wantCount:    0,
			wantModified: false,
		},
		{
			name:    "nil_pattern_skipped",
			content: `<Buyer Title="A"/>`,
			rules: []Rule{
				{Value: "X"},
			},
			want:         `<Buyer Title="A"/>`,
			wantCount:    0,
			wantModified: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Apply(tt.content, tt.rules...)
			require.NotNil(t, result)
			assert.Equal(t, tt.content, result.OriginalContent)
			assert.Equal(t, tt.want, result.ModifiedContent)
			assert.Equal(t, tt.wantCount, result.ReplacementCount)
			assert.Equal(t, tt.wantModified, result.WasModified)
		})
	}
}

func TestValidateRules(t *testing.T) {
	p := MustCompile("p", `a="(?P<value>[^"]*)"`)

	tests := []struct {
		name      string
		rules     []Rule
		wantError string
	}{
		{
			name:  "valid_rules",
			rules: []Rule{{Pattern: p, Value: "x"}},
		},
		{
			name:      "missing_pattern",
			rules:     []Rule{{Pattern: p}, {Value: "x"}},
			wantError: "rule 1: pattern is required",
		},
		{
			name:  "empty_rules",
			rules: []Rule{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRules(tt.rules)
			if tt.wantError != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantError)
				return
			}
			require.NoError(t, err)
		})
	}
}
