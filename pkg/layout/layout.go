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

// Package layout finds the working folder and the set directories inside it.
package layout

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

var (
	// ErrNoDirectory is returned when no folder was given
	ErrNoDirectory = errors.Base("no folder specified")

	// ErrDirectoryNotFound is returned when the folder does not exist
	ErrDirectoryNotFound = errors.Base("folder not found")
)

// 📁 Dirs are the resolved directories of one run.
// An empty Source or Target means no layout convention matched.
type Dirs struct {
	Root   string
	Source string
	Target string
}

// Candidates lists root-relative directories to try per role, in order
type Candidates struct {
	Source []string
	Target []string
}

// 🎯 Root resolves folder against base and checks it is a directory
func Root(base, folder string) (string, error) {
	folder = strings.TrimSpace(folder)
	if folder == "" {
		return "", ErrNoDirectory
	}

	candidate := folder
	if !filepath.IsAbs(candidate) {
		candidate = filepath.Join(base, folder)
	}

	abs, err := filepath.Abs(candidate)
	if err != nil {
		return "", errors.Errorf("resolving %s: %w", candidate, err)
	}

	info, err := os.Stat(abs)
	if err != nil || !info.IsDir() {
		return "", errors.Errorf("%w: %s", ErrDirectoryNotFound, abs)
	}

	return abs, nil
}

// 🔍 Resolve picks the first existing candidate per role
func Resolve(ctx context.Context, root string, c Candidates) Dirs {
	dirs := Dirs{
		Root:   root,
		Source: firstExisting(root, c.Source),
		Target: firstExisting(root, c.Target),
	}

	zerolog.Ctx(ctx).Debug().
		Str("root", dirs.Root).
		Str("source", dirs.Source).
		Str("target", dirs.Target).
		Msg("resolved layout")

	return dirs
}

func firstExisting(root string, candidates []string) string {
	for _, c := range candidates {
		p := filepath.Join(root, filepath.FromSlash(c))
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}
