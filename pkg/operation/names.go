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
	"gitlab.com/tozd/go/errors"
)

// 🏷️ ReplaceSourceNames sets the buyer organization name of every source
// document to the configured target name
func (op *Operator) ReplaceSourceNames(ctx context.Context, set *document.Set) (int, error) {
	return op.replaceNames(ctx, StageSourceNames, set, []text.Rule{
		{Pattern: sourceBuyerName, Value: op.config.TargetName},
	})
}

// 🏷️ ReplaceTargetNames sets both buyer name fields of every target
// document to the configured target name. Both fields are attempted
// independently.
func (op *Operator) ReplaceTargetNames(ctx context.Context, set *document.Set) (int, error) {
	return op.replaceNames(ctx, StageTargetNames, set, []text.Rule{
		{Pattern: targetBuyerName, Value: op.config.TargetName},
		{Pattern: targetBuyerLegalName, Value: op.config.TargetName},
	})
}

func (op *Operator) replaceNames(ctx context.Context, stage string, set *document.Set, rules []text.Rule) (int, error) {
	if set.Len() == 0 {
		zerolog.Ctx(ctx).Debug().Str("stage", stage).Msg("no documents")
		return 0, nil
	}

	if err := text.ValidateRules(rules); err != nil {
		return 0, errors.Errorf("%s: %w", stage, err)
	}

	changed := 0
	for _, doc := range set.Documents {
		result := text.Apply(doc.Text, rules...)
		if result.ReplacementCount == 0 {
			op.skip(ctx, stage, doc, "no name field")
			continue
		}

		ok, err := op.commit(ctx, stage, doc, result)
		if err != nil {
			return changed, errors.Errorf("updating %s: %w", doc.Path, err)
		}
		if ok {
			changed++
		}
	}

	return changed, nil
}
