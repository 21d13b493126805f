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
	"github.com/walteh/cgefix/pkg/operation"
	"github.com/walteh/cgefix/pkg/xref"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

// NewXrefCmd creates a command that prints the КПП to address map
func NewXrefCmd(load opts.Loader) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "xref [folder]",
		Short: "Print the consignee КПП to address map as YAML",
		Long: `Xref reads the ON_NSCHFDOPPR documents of the folder and prints the
consignee addresses they define, keyed by КПП. Nothing is changed.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := load(cmd, args)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			op, err := operation.New(operation.Options{
				Config:  o.Config,
				Scanner: o.Scanner,
			})
			if err != nil {
				return errors.Errorf("creating operator: %w", err)
			}

			source, err := o.Scanner.Load(ctx, o.Dirs.Source, o.Config.Source.Glob)
			if err != nil {
				return errors.Errorf("loading source set: %w", err)
			}

			enc := yaml.NewEncoder(cmd.OutOrStdout())
			defer enc.Close()
			if err := enc.Encode(mapNode(op.CrossReference(ctx, source))); err != nil {
				return errors.Errorf("encoding map: %w", err)
			}
			return nil
		},
	}

	return cmd
}

// mapNode lays the map out as a YAML mapping in key order
func mapNode(refs xref.Map) *yaml.Node {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, k := range refs.Keys() {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: refs[k]},
		)
	}
	return node
}
