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

// Package xref joins two document families on a correlation key.
package xref

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/walteh/cgefix/pkg/document"
	"github.com/walteh/cgefix/pkg/text"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Map holds one value per correlation key
type Map map[string]string

// Lookup returns the value recorded for key
func (m Map) Lookup(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

// Keys returns the keys in sorted order
func (m Map) Keys() []string {
	keys := maps.Keys(m)
	slices.Sort(keys)
	return keys
}

// 🔗 Builder extracts a key and a value from each document
type Builder struct {
	Key   *text.Pattern
	Value *text.Pattern
}

// 🏭 NewBuilder creates a builder from its two extraction patterns
func NewBuilder(key, value *text.Pattern) (*Builder, error) {
	if key == nil {
		return nil, errors.Errorf("key pattern is required")
	}
	if value == nil {
		return nil, errors.Errorf("value pattern is required")
	}
	return &Builder{Key: key, Value: value}, nil
}

// 🗺️ Build scans docs in order. A document contributes only when both its
// key and its value are found; a later document overwrites an earlier one
// with the same key.
func (b *Builder) Build(ctx context.Context, docs []*document.Document) Map {
	logger := zerolog.Ctx(ctx)
	out := make(Map)

	for _, doc := range docs {
		key, keyOK := b.Key.Value(doc.Text)
		value, valueOK := b.Value.Value(doc.Text)
		if !keyOK || !valueOK {
			logger.Debug().
				Str("path", doc.Path).
				Bool("key", keyOK).
				Bool("value", valueOK).
				Msg("document has no complete cross reference")
			continue
		}

		if prev, ok := out[key]; ok && prev != value {
			logger.Debug().Str("path", doc.Path).Str("key", key).Msg("overwriting cross reference")
		}
		out[key] = value
	}

	logger.Debug().Int("entries", len(out)).Msg("built cross reference")
	return out
}
