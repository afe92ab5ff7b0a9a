package cli

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/docshape/docshape/pkg/config"
	"github.com/docshape/docshape/pkg/document"
	"github.com/docshape/docshape/pkg/observability/logger"
	"github.com/docshape/docshape/pkg/observability/metrics"
	"github.com/docshape/docshape/pkg/paginate"
	"github.com/docshape/docshape/pkg/store/mongodb"
	"github.com/docshape/docshape/pkg/transform"
)

type queryOptions struct {
	collection string
	filter     string
	pipeline   string
	sort       string
	page       int
	limit      int
	fields     string
	populate   string
	alias      string
	shuffle    bool
}

func newQueryCommand(root *rootOptions) *cobra.Command {
	opts := &queryOptions{}

	cmd := &cobra.Command{
		Use:   "query",
		Short: "Run a paginated query and print the result envelope",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runQuery(cmd, root, opts)
		},
	}
	cmd.Flags().StringVar(&opts.collection, "collection", "", "collection to query (defaults to the configured one)")
	cmd.Flags().StringVar(&opts.filter, "filter", "{}", "filter as a JSON object")
	cmd.Flags().StringVar(&opts.pipeline, "pipeline", "", "aggregation pipeline as a JSON array of stages")
	cmd.Flags().StringVar(&opts.sort, "sort", "", "sort spec, e.g. score:desc,name")
	cmd.Flags().IntVar(&opts.page, "page", paginate.DefaultPage, "1-based page, -1 for everything")
	cmd.Flags().IntVar(&opts.limit, "limit", paginate.DefaultLimit, "page size")
	cmd.Flags().StringVar(&opts.fields, "fields", "", "comma-separated field selection")
	cmd.Flags().StringVar(&opts.populate, "populate", "", "populate spec, e.g. author:name;comments")
	cmd.Flags().StringVar(&opts.alias, "alias", "", "alias spec, e.g. author.name::writer")
	cmd.Flags().BoolVar(&opts.shuffle, "shuffle", false, "shuffle the fetched page")
	return cmd
}

func runQuery(cmd *cobra.Command, root *rootOptions, opts *queryOptions) error {
	cfg, err := config.NewViperLoader(root.configFile, root.envPrefix).Load()
	if err != nil {
		return err
	}

	level, err := logger.ParseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}
	format, err := logger.ParseFormat(cfg.Log.Format)
	if err != nil {
		return err
	}
	log, err := logger.NewZapLogger(logger.Config{Level: level, Format: format})
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	adapter, err := mongodb.NewAdapter(mongodb.Config{
		URL:              cfg.MongoDB.URL,
		Database:         cfg.MongoDB.Database,
		ConnectTimeout:   cfg.MongoDB.ConnectTimeout,
		OperationTimeout: cfg.MongoDB.OperationTimeout,
	}, log)
	if err != nil {
		return err
	}
	defer func() { _ = adapter.Close() }()

	collection := opts.collection
	if collection == "" {
		collection = cfg.MongoDB.Collection
	}
	store, err := mongodb.NewCollectionStore(adapter, collection,
		mongodb.WithMetrics(metrics.NewRegistry()))
	if err != nil {
		return err
	}

	paginator, err := paginate.New(store, paginate.WithLogger(log))
	if err != nil {
		return err
	}

	filter := document.Document{}
	if err := json.Unmarshal([]byte(opts.filter), &filter); err != nil {
		return fmt.Errorf("failed to parse filter: %w", err)
	}
	var pipeline []document.Document
	if opts.pipeline != "" {
		if err := json.Unmarshal([]byte(opts.pipeline), &pipeline); err != nil {
			return fmt.Errorf("failed to parse pipeline: %w", err)
		}
	}

	ctx := logger.ContextWithRequestID(cmd.Context(), uuid.NewString())
	result, err := paginator.Paginate(ctx, filter, paginate.Options{
		Sort:     opts.sort,
		Page:     opts.page,
		Limit:    opts.limit,
		Fields:   opts.fields,
		Populate: opts.populate,
		Aliases:  transform.ParseRules(opts.alias),
		Pipeline: pipeline,
		Shuffle:  opts.shuffle,
	})
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to render result: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}
