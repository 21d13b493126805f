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
	"context"

	"github.com/rs/zerolog"
	"github.com/walteh/cgefix/pkg/document"
	"github.com/walteh/cgefix/pkg/text"
	"github.com/walteh/cgefix/pkg/xref"
	"gitlab.com/tozd/go/errors"
)

// 🗺️ CrossReference maps each source consignee КПП to its address
func (op *Operator) CrossReference(ctx context.Context, set *document.Set) xref.Map {
	if set.Len() == 0 {
		return xref.Map{}
	}
	return op.xref.Build(ctx, set.Documents)
}

// 📮 PropagateAddresses copies the address for the КПП found in the first
// consignee block of each target document into both address fields of that
// block. Nothing outside the block changes.
func (op *Operator) PropagateAddresses(ctx context.Context, set *document.Set, refs xref.Map) (int, error) {
	if set.Len() == 0 || len(refs) == 0 {
		zerolog.Ctx(ctx).Debug().
			Int("documents", set.Len()).
			Int("references", len(refs)).
			Msg("nothing to propagate")
		return 0, nil
	}

	if err := text.ValidateRules(addressRules("")); err != nil {
		return 0, errors.Errorf("%s: %w", StageAddresses, err)
	}

	changed := 0
	for _, doc := range set.Documents {
		result, reason := propagate(doc.Text, refs)
		if result == nil {
			op.skip(ctx, StageAddresses, doc, reason)
			continue
		}

		ok, err := op.commit(ctx, StageAddresses, doc, result)
		if err != nil {
			return changed, errors.Errorf("updating %s: %w", doc.Path, err)
		}
		if ok {
			changed++
		}
	}

	return changed, nil
}

// addressRules sets both address fields of a consignee block to addr
func addressRules(addr string) []text.Rule {
	return []text.Rule{
		{Pattern: targetConsigneeAddress, Value: addr},
		{Pattern: targetConsigneeForeignAddress, Value: addr},
	}
}

// propagate rewrites the first consignee block of content. It returns nil and
// a reason when the document has nothing to update.
func propagate(content string, refs xref.Map) (*text.ReplacementResult, string) {
	block, ok := targetConsigneeBlock.Find(content)
	if !ok {
		return nil, "no consignee block"
	}

	code, ok := targetConsigneeCode.Value(block.Value)
	if !ok {
		return nil, "no КПП in consignee block"
	}

	addr, ok := refs.Lookup(code)
	if !ok || addr == "" {
		return nil, "no address for КПП " + code
	}

	inner := text.Apply(block.Value, addressRules(addr)...)
	if inner.ReplacementCount == 0 {
		return nil, "no address field in consignee block"
	}

	modified := content
	if inner.WasModified {
		modified = block.Rewrite(content, inner.ModifiedContent)
	}

	return &text.ReplacementResult{
		WasModified:      modified != content,
		ReplacementCount: inner.ReplacementCount,
		OriginalContent:  content,
		ModifiedContent:  modified,
	}, ""
}
