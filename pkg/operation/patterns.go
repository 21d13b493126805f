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

import "github.com/walteh/cgefix/pkg/text"

// spaces is one or more whitespace runes: ASCII whitespace, the
// information separators, NEL and no-break space
const spaces = `[\s\v\x{1c}-\x{1f}\x{85}\x{a0}]+`

// 🔍 Field patterns for the two document families.
//
// Each pattern anchors on an outer element, skips to a nested element and
// captures one attribute value. Only the first occurrence in a document is
// ever touched.
var (
	// СвПокуп/СвЮЛУч/@НаимОрг, only when followed by ИННЮЛ and a 9-digit КПП.
	// The separator also accepts the non-ASCII spaces a windows-1251 file can
	// hold, such as 0xA0.
	sourceBuyerName = text.MustCompile("source buyer name",
		`<СвПокуп[\s\S]*?<СвЮЛУч[^>]*?НаимОрг="(?P<value>[^"]*)"[^>]*?ИННЮЛ="\d+"`+spaces+`КПП="\d{9}"`)

	// Покупатель/@Название
	targetBuyerName = text.MustCompile("target buyer name",
		`<Покупатель[^>]*?Название="(?P<value>[^"]*)"`)

	// Покупатель/СвЮЛ/@Название
	targetBuyerLegalName = text.MustCompile("target buyer legal name",
		`<Покупатель[\s\S]*?<СвЮЛ[^>]*?Название="(?P<value>[^"]*)"`)

	// ГрузПолуч/СвЮЛУч/@КПП
	sourceConsigneeCode = text.MustCompile("source consignee code",
		`<ГрузПолуч[\s\S]*?<СвЮЛУч[^>]*?КПП="(?P<value>\d{9})"`)

	// ГрузПолуч/Адрес/АдрИнф/@АдрТекст
	sourceConsigneeAddress = text.MustCompile("source consignee address",
		`<ГрузПолуч[\s\S]*?<Адрес[\s\S]*?АдрИнф[^>]*?АдрТекст="(?P<value>[^"]+)"`)

	// the whole first Грузополучатель element
	targetConsigneeBlock = text.MustCompile("target consignee block",
		`(?P<value><Грузополучатель[\s\S]*?</Грузополучатель>)`)

	// patterns below run inside the consignee block only

	targetConsigneeCode = text.MustCompile("target consignee code",
		`<СвЮЛ[^>]*?КПП="(?P<value>\d{9})"`)

	targetConsigneeAddress = text.MustCompile("target consignee address",
		`<Адрес[^>]*?АдрТекст="(?P<value>[^"]*)"`)

	targetConsigneeForeignAddress = text.MustCompile("target consignee foreign address",
		`<АдрИно[^>]*?АдрТекст="(?P<value>[^"]*)"`)
)
