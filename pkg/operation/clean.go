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
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/walteh/cgefix/pkg/log"
	"gitlab.com/tozd/go/errors"
)

// 🧹 Clean removes every file under root whose name starts with the cleanup
// prefix, ignoring case. It returns the number of files removed.
func (op *Operator) Clean(ctx context.Context, root string) (int, error) {
	if root == "" {
		return 0, nil
	}

	files, err := op.cleanupCandidates(root)
	if err != nil {
		return 0, err
	}

	logger := log.FromContext(ctx)
	for i, file := range files {
		if !op.dryRun {
			if err := os.Remove(file); err != nil {
				return i, errors.Errorf("removing %s: %w", file, err)
			}
		}

		logger.LogFileOperation(ctx, log.FileOperation{
			Path:      file,
			Stage:     StageCleanup,
			IsRemoved: true,
			DryRun:    op.dryRun,
		})
	}

	zerolog.Ctx(ctx).Debug().Str("root", root).Int("removed", len(files)).Msg("cleanup done")
	return len(files), nil
}

// 🔍 cleanupCandidates lists matching files in sorted order
func (op *Operator) cleanupCandidates(root string) ([]string, error) {
	prefix := strings.ToLower(op.config.CleanupPrefix)
	if prefix == "" {
		return nil, errors.Errorf("cleanup prefix is empty")
	}

	var files []string
	err := doublestar.GlobWalk(os.DirFS(root), "**", func(path string, d fs.DirEntry) error {
		if strings.HasPrefix(strings.ToLower(d.Name()), prefix) {
			files = append(files, filepath.Join(root, filepath.FromSlash(path)))
		}
		return nil
	}, doublestar.WithFilesOnly())
	if err != nil {
		return nil, errors.Errorf("walking %s: %w", root, err)
	}

	sort.Strings(files)
	return files, nil
}
