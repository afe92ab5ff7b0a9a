// Package cli implements the docshape command line interface.
package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/docshape/docshape/pkg/version"
)

// rootOptions carries the persistent flags shared by every subcommand.
type rootOptions struct {
	configFile string
	envPrefix  string
}

// NewRootCommand builds the docshape CLI.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "docshape",
		Short:         "Shape and paginate documents in a MongoDB collection",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&opts.configFile, "config-file", "c", "", "config file path")
	root.PersistentFlags().StringVar(&opts.envPrefix, "env-prefix", "DOCSHAPE", "prefix for environment overrides")

	root.AddCommand(newQueryCommand(opts))
	root.AddCommand(newTransformCommand())
	root.AddCommand(newHealthCommand(opts))
	root.AddCommand(newVersionCommand())
	return root
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build version metadata",
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := json.MarshalIndent(version.Current(), "", "  ")
			if err != nil {
				return fmt.Errorf("failed to render version info: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}
}
