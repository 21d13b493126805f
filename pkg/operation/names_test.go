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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/cgefix/pkg/document"
	"github.com/walteh/cgefix/pkg/text"
)

func TestReplaceSourceNames(t *testing.T) {
	env := newTestEnv(t)
	op := env.operator(t, false)

	changed := env.write(t, "ON_NSCHFDOPPR_1.xml", sourceDoc("ООО Старое", "123456789", "A"))
	current := env.write(t, "ON_NSCHFDOPPR_2.xml", sourceDoc(testTargetName, "123456789", "A"))
	missing := env.write(t, "ON_NSCHFDOPPR_3.xml", `<Файл><СвПокуп/></Файл>`)

	set, err := env.scanner.Load(env.ctx, env.root, "ON_NSCHFDOPPR*.xml")
	require.NoError(t, err)

	n, err := op.ReplaceSourceNames(env.ctx, set)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	assert.Equal(t, sourceDoc(testTargetName, "123456789", "A"), env.read(t, changed))
	assert.Equal(t, sourceDoc(testTargetName, "123456789", "A"), env.read(t, current))
	assert.Equal(t, `<Файл><СвПокуп/></Файл>`, env.read(t, missing))
}

func TestReplaceSourceNames_KeepsGapBeforeINN(t *testing.T) {
	env := newTestEnv(t)
	op := env.operator(t, false)

	content := `<СвПокуп><ИдСв><СвЮЛУч НаимОрг="Old"   ИННЮЛ="7702000002"  КПП="770201001"/></ИдСв></СвПокуп>`
	set := &document.Set{Documents: []*document.Document{{Path: env.write(t, "ON_NSCHFDOPPR_1.xml", content), Text: content}}}

	n, err := op.ReplaceSourceNames(env.ctx, set)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t,
		`<СвПокуп><ИдСв><СвЮЛУч НаимОрг="`+testTargetName+`"   ИННЮЛ="7702000002"  КПП="770201001"/></ИдСв></СвПокуп>`,
		set.Documents[0].Text)
}

func TestReplaceTargetNames(t *testing.T) {
	tests := []struct {
		name        string
		content     string
		want        string
		wantChanged int
	}{
		{
			name:        "both_fields",
			content:     targetDoc("Старое", "Старое юр", "123456789", "A", "A"),
			want:        targetDoc(testTargetName, testTargetName, "123456789", "A", "A"),
			wantChanged: 1,
		},
		{
			name:        "only_legal_field_differs",
			content:     targetDoc(testTargetName, "Старое юр", "123456789", "A", "A"),
			want:        targetDoc(testTargetName, testTargetName, "123456789", "A", "A"),
			wantChanged: 1,
		},
		{
			name:        "only_short_field_present",
			content:     `<Покупатель Название="Старое"/>`,
			want:        `<Покупатель Название="` + testTargetName + `"/>`,
			wantChanged: 1,
		},
		{
			name:        "already_current",
			content:     targetDoc(testTargetName, testTargetName, "123456789", "A", "A"),
			want:        targetDoc(testTargetName, testTargetName, "123456789", "A", "A"),
			wantChanged: 0,
		},
		{
			name:        "no_buyer",
			content:     `<Файл/>`,
			want:        `<Файл/>`,
			wantChanged: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			path := env.write(t, "ON_SCHET__1.xml", tt.content)

			set, err := env.scanner.Load(env.ctx, env.root, "ON_SCHET__*.xml")
			require.NoError(t, err)

			n, err := env.operator(t, false).ReplaceTargetNames(env.ctx, set)
			require.NoError(t, err)
			assert.Equal(t, tt.wantChanged, n)
			assert.Equal(t, tt.want, env.read(t, path))
		})
	}
}

func TestReplaceNames_ReportsSkippedDocuments(t *testing.T) {
	env := newTestEnv(t)
	env.write(t, "ON_SCHET__1.xml", `<Файл/>`)

	set, err := env.scanner.Load(env.ctx, env.root, "ON_SCHET__*.xml")
	require.NoError(t, err)

	n, err := env.operator(t, false).ReplaceTargetNames(env.ctx, set)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Contains(t, env.console.String(), "ON_SCHET__1.xml")
	assert.Contains(t, env.console.String(), "unchanged (no name field)")
}

func TestReplaceNames_RejectsRuleWithoutPattern(t *testing.T) {
	env := newTestEnv(t)
	set := &document.Set{Documents: []*document.Document{{Path: "x", Text: `<Покупатель Название="Старое"/>`}}}

	_, err := env.operator(t, false).replaceNames(env.ctx, StageTargetNames, set, []text.Rule{
		{Pattern: targetBuyerName, Value: "A"},
		{Value: "B"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rule 1: pattern is required")
	assert.Equal(t, `<Покупатель Название="Старое"/>`, set.Documents[0].Text)
}

func TestReplaceSourceNames_NonASCIISpaceBeforeKPP(t *testing.T) {
	env := newTestEnv(t)
	op := env.operator(t, false)

	for _, sep := range []string{"\u00a0", " \u00a0", "\t", "\v", "\u001f"} {
		content := `<СвПокуп><СвЮЛУч НаимОрг="Old" ИННЮЛ="7702000002"` + sep + `КПП="770201001"/></СвПокуп>` +
			`<ГрузПолуч><СвЮЛУч НаимОрг="Склад" ИННЮЛ="7701000001" КПП="123456789"/></ГрузПолуч>`
		set := &document.Set{Documents: []*document.Document{{Path: env.write(t, "ON_NSCHFDOPPR_1.xml", content), Text: content}}}

		n, err := op.ReplaceSourceNames(env.ctx, set)
		require.NoError(t, err)
		assert.Equal(t, 1, n, "separator %q", sep)
		assert.Equal(t,
			`<СвПокуп><СвЮЛУч НаимОрг="`+testTargetName+`" ИННЮЛ="7702000002"`+sep+`КПП="770201001"/></СвПокуп>`+
				`<ГрузПолуч><СвЮЛУч НаимОрг="Склад" ИННЮЛ="7701000001" КПП="123456789"/></ГрузПолуч>`,
			set.Documents[0].Text, "separator %q", sep)
	}
}
