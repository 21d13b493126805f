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

package commands

import (
	"context"

	"github.com/walteh/cgefix/cmd/cgefix/opts"
	"github.com/walteh/cgefix/pkg/log"
	"github.com/walteh/cgefix/pkg/operation"
	"gitlab.com/tozd/go/errors"
)

// Fix runs every stage over the resolved folder and prints the summary
func Fix(ctx context.Context, o *opts.RootOpts) error {
	console := log.FromContext(ctx)
	console.Header(title("updating", o))
	warnMissingSets(console, o)

	op, err := operation.New(operation.Options{
		Config:  o.Config,
		Scanner: o.Scanner,
		DryRun:  o.DryRun,
	})
	if err != nil {
		return errors.Errorf("creating operator: %w", err)
	}

	summary, err := op.Run(ctx, o.Dirs)
	if err != nil {
		return err
	}

	console.Summary(summary.Counts(o.Config.CleanupPrefix)...)
	if o.DryRun {
		console.Warning("dry run, nothing was written")
	} else {
		console.Success("done")
	}

	return nil
}

func title(verb string, o *opts.RootOpts) string {
	if o.DryRun {
		verb += " (dry run)"
	}
	return verb + " " + o.Dirs.Root
}

func warnMissingSets(console *log.Logger, o *opts.RootOpts) {
	if o.Dirs.Source == "" {
		console.Warningf("no folder for %s under %s", o.Config.Source.Glob, o.Dirs.Root)
	}
	if o.Dirs.Target == "" {
		console.Warningf("no folder for %s under %s", o.Config.Target.Glob, o.Dirs.Root)
	}
}
