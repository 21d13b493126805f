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

package main

import (
	"context"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/cgefix/cmd/cgefix/commands"
	"github.com/walteh/cgefix/cmd/cgefix/opts"
	"github.com/walteh/cgefix/pkg/config"
	"github.com/walteh/cgefix/pkg/document"
	"github.com/walteh/cgefix/pkg/layout"
	"github.com/walteh/cgefix/pkg/log"
	"gitlab.com/tozd/go/errors"
)

type rootFlags struct {
	configFile string
	debug      bool
	base       string
	dryRun     bool
}

// newRootCmd creates the cgefix command tree
func newRootCmd(prompter layout.Prompter) *cobra.Command {
	flags := &rootFlags{}
	load := func(cmd *cobra.Command, args []string) (*opts.RootOpts, error) {
		return newRootOpts(cmd, flags, prompter, args)
	}

	cmd := &cobra.Command{
		Use:   "cgefix [folder]",
		Short: "Fix buyer names and consignee addresses in CGE export folders",
		Long: `cgefix updates the windows-1251 XML documents of an export folder.
It will:
1. Remove konvert* files anywhere under the folder
2. Set the buyer name in every ON_NSCHFDOPPR document
3. Set the buyer names in every ON_SCHET document
4. Copy each consignee address from ON_NSCHFDOPPR to ON_SCHET by КПП

When no folder is given, cgefix asks for one.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(setupLogging(cmd.Context(), cmd.ErrOrStderr(), cmd.OutOrStdout(), flags.debug))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := load(cmd, args)
			if err != nil {
				return err
			}
			return commands.Fix(cmd.Context(), o)
		},
	}

	addRootFlags(cmd, flags)

	cmd.AddCommand(
		commands.NewCleanCmd(load),
		commands.NewXrefCmd(load),
		newVersionCmd(),
	)

	return cmd
}

// newRootOpts loads the config and resolves the working folder
func newRootOpts(cmd *cobra.Command, flags *rootFlags, prompter layout.Prompter, args []string) (*opts.RootOpts, error) {
	ctx := cmd.Context()

	// Load config
	cfg, err := config.LoadOrDefault(ctx, flags.configFile, cmd.Flags().Changed("config"))
	if err != nil {
		return nil, errors.Errorf("loading config: %w", err)
	}

	codec, err := document.NewCodec(cfg.Encoding)
	if err != nil {
		return nil, errors.Errorf("creating codec: %w", err)
	}

	// Resolve folder
	folder := ""
	if len(args) > 0 {
		folder = args[0]
	}
	root, err := layout.Ask(ctx, prompter, flags.base, folder)
	if err != nil {
		return nil, err
	}

	return &opts.RootOpts{
		Config:  cfg,
		Scanner: document.NewScanner(codec),
		Dirs:    layout.Resolve(ctx, root, cfg.Candidates()),
		DryRun:  flags.dryRun,
	}, nil
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command, flags *rootFlags) {
	cmd.PersistentFlags().StringVarP(&flags.configFile, "config", "c", ".cgefix.yaml", "config file path")
	cmd.PersistentFlags().BoolVarP(&flags.debug, "debug", "d", false, "enable debug logging")
	cmd.PersistentFlags().StringVar(&flags.base, "base", ".", "directory relative folders are resolved against")
	cmd.PersistentFlags().BoolVar(&flags.dryRun, "dry-run", false, "show changes without writing or removing files")
}

// setupLogging attaches the structured logger and the console logger to ctx
func setupLogging(ctx context.Context, stderr, stdout io.Writer, debug bool) context.Context {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	zlog := zerolog.New(stderr).Level(level).With().Timestamp().Logger()

	ctx = zlog.WithContext(ctx)
	return log.NewContext(ctx, log.New(stdout, zlog))
}
