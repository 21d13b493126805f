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
	"context"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/teris-io/shortid"
	"gitlab.com/tozd/go/errors"
)

// tempIDs names the sibling files used by atomic saves
var tempIDs = shortid.MustNew(16, shortid.DefaultABC, uint64(time.Now().UnixNano()))

// 📄 Document is one decoded record file
type Document struct {
	Path string // Absolute or root-relative file path
	Text string // Decoded content
}

// 📚 Set is the sorted collection of documents matching a glob in one directory
type Set struct {
	Dir       string
	Glob      string
	Documents []*Document
}

// Len returns the number of documents in the set, zero for a nil set
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Documents)
}

// 🔧 Scanner reads and writes document sets with a fixed codec
type Scanner struct {
	codec *Codec
}

// 🏭 NewScanner creates a scanner for the given codec
func NewScanner(codec *Codec) *Scanner {
	return &Scanner{codec: codec}
}

// Codec returns the codec used for reading and writing
func (s *Scanner) Codec() *Codec {
	return s.codec
}

// 🔍 List returns the files in dir matching glob in lexicographic order.
// An empty dir means the set is absent and yields no files.
func (s *Scanner) List(ctx context.Context, dir, glob string) ([]string, error) {
	if dir == "" {
		zerolog.Ctx(ctx).Debug().Str("glob", glob).Msg("no directory for set, skipping")
		return nil, nil
	}

	if !doublestar.ValidatePattern(glob) {
		return nil, errors.Errorf("invalid glob %q", glob)
	}

	matches, err := doublestar.Glob(os.DirFS(dir), glob, doublestar.WithFilesOnly(), doublestar.WithFailOnIOErrors())
	if err != nil {
		return nil, errors.Errorf("listing %s in %s: %w", glob, dir, err)
	}

	sort.Strings(matches)

	paths := make([]string, 0, len(matches))
	for _, m := range matches {
		paths = append(paths, filepath.Join(dir, filepath.FromSlash(m)))
	}

	zerolog.Ctx(ctx).Debug().Str("dir", dir).Str("glob", glob).Int("files", len(paths)).Msg("listed document set")
	return paths, nil
}

// 📥 Read decodes a single document
func (s *Scanner) Read(ctx context.Context, path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading %s: %w", path, err)
	}

	txt, err := s.codec.Decode(data)
	if err != nil {
		return nil, errors.Errorf("decoding %s: %w", path, err)
	}

	return &Document{Path: path, Text: txt}, nil
}

// 📚 Load lists and decodes every document of a set
func (s *Scanner) Load(ctx context.Context, dir, glob string) (*Set, error) {
	paths, err := s.List(ctx, dir, glob)
	if err != nil {
		return nil, err
	}

	set := &Set{Dir: dir, Glob: glob, Documents: make([]*Document, 0, len(paths))}
	for _, p := range paths {
		doc, err := s.Read(ctx, p)
		if err != nil {
			return nil, err
		}
		set.Documents = append(set.Documents, doc)
	}

	return set, nil
}

// 💾 Save encodes the document and replaces the file in full
func (s *Scanner) Save(ctx context.Context, doc *Document) error {
	data, err := s.codec.Encode(doc.Text)
	if err != nil {
		return errors.Errorf("encoding %s: %w", doc.Path, err)
	}

	if err := writeFileAtomic(doc.Path, data); err != nil {
		return errors.Errorf("writing %s: %w", doc.Path, err)
	}

	zerolog.Ctx(ctx).Debug().Str("path", doc.Path).Int("bytes", len(data)).Msg("saved document")
	return nil
}

// writeFileAtomic writes to a sibling temp file and renames it over path,
// keeping the original permissions. A symlinked path is written through to
// its target.
func writeFileAtomic(path string, content []byte) error {
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		path = resolved
	}

	mode := os.FileMode(0644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	id, err := tempIDs.Generate()
	if err != nil {
		return errors.Errorf("naming temp file: %w", err)
	}

	tempPath := path + "." + id + ".tmp"
	if err := os.WriteFile(tempPath, content, mode); err != nil {
		return errors.Errorf("writing temp file: %w", err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return errors.Errorf("renaming temp file: %w", err)
	}

	return nil
}
