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

package document

import (
	"strings"
	"unicode/utf8"

	"gitlab.com/tozd/go/errors"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/ianaindex"
)

// DefaultEncoding is the encoding documents are stored in
const DefaultEncoding = "windows-1251"

var (
	// ErrUnknownEncoding is returned for names that are not single-byte charmaps
	ErrUnknownEncoding = errors.Base("unknown single-byte encoding")

	// ErrUndecodable is returned for bytes undefined in the charmap
	ErrUndecodable = errors.Base("byte not defined in encoding")

	// ErrUnencodable is returned for runes the charmap cannot represent
	ErrUnencodable = errors.Base("character not representable in encoding")
)

// 🔤 Codec converts between a single-byte charmap and UTF-8 text.
//
// Unlike the x/text transformers it never substitutes: a byte or rune
// outside the charmap is an error.
type Codec struct {
	name string
	cm   *charmap.Charmap
}

// 🏭 NewCodec looks up a single-byte encoding by its IANA name
func NewCodec(name string) (*Codec, error) {
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil {
		return nil, errors.Errorf("%w: %s", ErrUnknownEncoding, name)
	}

	// known to IANA but unsupported by x/text comes back as nil
	cm, ok := enc.(*charmap.Charmap)
	if !ok {
		return nil, errors.Errorf("%w: %s", ErrUnknownEncoding, name)
	}

	return &Codec{name: name, cm: cm}, nil
}

// Name returns the encoding name
func (c *Codec) Name() string {
	return c.name
}

// Decode converts encoded bytes to text
func (c *Codec) Decode(data []byte) (string, error) {
	var sb strings.Builder
	sb.Grow(len(data))

	for i, b := range data {
		r := c.cm.DecodeByte(b)
		if r == utf8.RuneError {
			return "", errors.Errorf("%w: %s byte 0x%02x at offset %d", ErrUndecodable, c.name, b, i)
		}
		sb.WriteRune(r)
	}

	return sb.String(), nil
}

// Encode converts text to encoded bytes
func (c *Codec) Encode(s string) ([]byte, error) {
	out := make([]byte, 0, len(s))

	for i, r := range s {
		b, ok := c.cm.EncodeRune(r)
		if !ok {
			return nil, errors.Errorf("%w: %s %q at offset %d", ErrUnencodable, c.name, r, i)
		}
		out = append(out, b)
	}

	return out, nil
}
