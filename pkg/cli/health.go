package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/docshape/docshape/pkg/config"
	"github.com/docshape/docshape/pkg/health"
	"github.com/docshape/docshape/pkg/observability/logger"
	"github.com/docshape/docshape/pkg/store/mongodb"
)

func newHealthCommand(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check connectivity to the configured document store",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.NewViperLoader(root.configFile, root.envPrefix).Load()
			if err != nil {
				return err
			}

			adapter, err := mongodb.NewAdapter(mongodb.Config{
				URL:              cfg.MongoDB.URL,
				Database:         cfg.MongoDB.Database,
				ConnectTimeout:   cfg.MongoDB.ConnectTimeout,
				OperationTimeout: cfg.MongoDB.OperationTimeout,
			}, logger.Nop())
			if err != nil {
				return err
			}
			defer func() { _ = adapter.Close() }()

			registry := health.NewRegistry()
			registry.Register("mongodb", func(ctx context.Context) error {
				return adapter.HealthCheck(ctx)
			})

			results := registry.RunAll(cmd.Context())
			out, err := json.MarshalIndent(results, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to render health results: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))

			if !health.Healthy(results) {
				return fmt.Errorf("one or more health checks failed")
			}
			return nil
		},
	}
}
