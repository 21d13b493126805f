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
	"fmt"

	"github.com/rs/zerolog"
	"github.com/walteh/cgefix/pkg/config"
	"github.com/walteh/cgefix/pkg/document"
	"github.com/walteh/cgefix/pkg/layout"
	"github.com/walteh/cgefix/pkg/log"
	"github.com/walteh/cgefix/pkg/text"
	"github.com/walteh/cgefix/pkg/xref"
	"gitlab.com/tozd/go/errors"
)

// Stage names as they appear in logs
const (
	StageCleanup     = "cleanup"
	StageSourceNames = "source names"
	StageTargetNames = "target names"
	StageAddresses   = "addresses"
)

// 🔧 Options contains configuration for the operator
type Options struct {
	// Config supplies the target name, globs and cleanup prefix
	Config *config.Config
	// Scanner reads and writes documents
	Scanner *document.Scanner
	// DryRun reports changes without writing or removing anything
	DryRun bool
}

// 📊 Summary holds the per-stage counts of files changed
type Summary struct {
	Removed     int
	SourceNames int
	TargetNames int
	Addresses   int
}

// 🎮 Operator runs the update stages over one working folder
type Operator struct {
	config  *config.Config
	scanner *document.Scanner
	dryRun  bool
	xref    *xref.Builder
}

// 🏭 New creates a new operator with the given options
func New(opts Options) (*Operator, error) {
	if opts.Config == nil {
		return nil, errors.Errorf("config is required")
	}
	if opts.Scanner == nil {
		return nil, errors.Errorf("scanner is required")
	}

	builder, err := xref.NewBuilder(sourceConsigneeCode, sourceConsigneeAddress)
	if err != nil {
		return nil, errors.Errorf("creating cross reference builder: %w", err)
	}

	return &Operator{
		config:  opts.Config,
		scanner: opts.Scanner,
		dryRun:  opts.DryRun,
		xref:    builder,
	}, nil
}

// Counts returns the summary as labeled lines
func (s *Summary) Counts(cleanupPrefix string) []log.Count {
	return []log.Count{
		{Label: fmt.Sprintf("removed %s* files", cleanupPrefix), N: s.Removed},
		{Label: "updated source names", N: s.SourceNames},
		{Label: "updated target names", N: s.TargetNames},
		{Label: "propagated addresses", N: s.Addresses},
	}
}

// 🏃 Run executes every stage in order. Any read, decode, encode or write
// failure aborts the run.
func (op *Operator) Run(ctx context.Context, dirs layout.Dirs) (*Summary, error) {
	var s Summary
	var err error

	if s.Removed, err = op.Clean(ctx, dirs.Root); err != nil {
		return nil, errors.Errorf("cleaning up: %w", err)
	}

	source, target, err := op.LoadSets(ctx, dirs)
	if err != nil {
		return nil, err
	}

	if s.SourceNames, err = op.ReplaceSourceNames(ctx, source); err != nil {
		return nil, errors.Errorf("replacing source names: %w", err)
	}

	if s.TargetNames, err = op.ReplaceTargetNames(ctx, target); err != nil {
		return nil, errors.Errorf("replacing target names: %w", err)
	}

	refs := op.CrossReference(ctx, source)

	if s.Addresses, err = op.PropagateAddresses(ctx, target, refs); err != nil {
		return nil, errors.Errorf("propagating addresses: %w", err)
	}

	zerolog.Ctx(ctx).Info().
		Int("removed", s.Removed).
		Int("source_names", s.SourceNames).
		Int("target_names", s.TargetNames).
		Int("addresses", s.Addresses).
		Bool("dry_run", op.dryRun).
		Msg("run complete")

	return &s, nil
}

// 📚 LoadSets reads both document sets. A file matched by both sets is
// loaded once so that every stage sees the edits of the previous ones.
func (op *Operator) LoadSets(ctx context.Context, dirs layout.Dirs) (*document.Set, *document.Set, error) {
	source, err := op.scanner.Load(ctx, dirs.Source, op.config.Source.Glob)
	if err != nil {
		return nil, nil, errors.Errorf("loading source set: %w", err)
	}

	target, err := op.scanner.Load(ctx, dirs.Target, op.config.Target.Glob)
	if err != nil {
		return nil, nil, errors.Errorf("loading target set: %w", err)
	}

	shared := make(map[string]*document.Document, source.Len())
	for _, d := range source.Documents {
		shared[d.Path] = d
	}
	for i, d := range target.Documents {
		if s, ok := shared[d.Path]; ok {
			target.Documents[i] = s
		}
	}

	return source, target, nil
}

// 💾 commit persists a changed document and reports it.
// It returns whether the document counts as changed.
func (op *Operator) commit(ctx context.Context, stage string, doc *document.Document, result *text.ReplacementResult) (bool, error) {
	if !result.WasModified {
		zerolog.Ctx(ctx).Debug().
			Str("path", doc.Path).
			Str("stage", stage).
			Int("matches", result.ReplacementCount).
			Msg("document already up to date")
		return false, nil
	}

	doc.Text = result.ModifiedContent

	logger := log.FromContext(ctx)
	if op.dryRun {
		logger.Diff(doc.Path, renderDiff(result.OriginalContent, result.ModifiedContent))
	} else if err := op.scanner.Save(ctx, doc); err != nil {
		return false, err
	}

	logger.LogFileOperation(ctx, log.FileOperation{
		Path:         doc.Path,
		Stage:        stage,
		IsModified:   true,
		DryRun:       op.dryRun,
		Replacements: result.ReplacementCount,
	})

	return true, nil
}

// skip reports a document a stage left alone and why
func (op *Operator) skip(ctx context.Context, stage string, doc *document.Document, reason string) {
	log.FromContext(ctx).LogFileOperation(ctx, log.FileOperation{
		Path:   doc.Path,
		Stage:  stage,
		Reason: reason,
		DryRun: op.dryRun,
	})
}
