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
	"github.com/spf13/cobra"
	"github.com/walteh/cgefix/cmd/cgefix/opts"
	"github.com/walteh/cgefix/pkg/log"
	"github.com/walteh/cgefix/pkg/operation"
	"gitlab.com/tozd/go/errors"
)

// NewCleanCmd creates a new clean command
func NewCleanCmd(load opts.Loader) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean [folder]",
		Short: "Remove konvert* files only",
		Long: `Clean removes every file whose name starts with the cleanup prefix
(konvert by default, any case) anywhere under the folder. No document is
changed.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := load(cmd, args)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			console := log.FromContext(ctx)
			console.Header(title("cleaning", o))

			op, err := operation.New(operation.Options{
				Config:  o.Config,
				Scanner: o.Scanner,
				DryRun:  o.DryRun,
			})
			if err != nil {
				return errors.Errorf("creating operator: %w", err)
			}

			removed, err := op.Clean(ctx, o.Dirs.Root)
			if err != nil {
				return errors.Errorf("cleaning up: %w", err)
			}

			summary := operation.Summary{Removed: removed}
			console.Summary(summary.Counts(o.Config.CleanupPrefix)[0])
			return nil
		},
	}

	return cmd
}
