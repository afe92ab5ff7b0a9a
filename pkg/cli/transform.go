package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/docshape/docshape/pkg/document"
	"github.com/docshape/docshape/pkg/transform"
)

type transformOptions struct {
	doc     string
	private string
	alias   string
}

func newTransformCommand() *cobra.Command {
	opts := &transformOptions{}

	cmd := &cobra.Command{
		Use:   "transform",
		Short: "Strip private fields and rewrite aliases on a JSON document",
		Long: "Reads a JSON document from --doc or stdin, deletes the paths listed\n" +
			"in --private, applies the --alias rules, and prints the result.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTransform(cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.doc, "doc", "", "document as a JSON object (stdin when empty)")
	cmd.Flags().StringVar(&opts.private, "private", "", "comma-separated private field paths")
	cmd.Flags().StringVar(&opts.alias, "alias", "", "alias spec, e.g. author.name::writer")
	return cmd
}

func runTransform(cmd *cobra.Command, opts *transformOptions) error {
	raw := opts.doc
	if raw == "" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("failed to read document from stdin: %w", err)
		}
		raw = string(data)
	}

	doc := document.Document{}
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return fmt.Errorf("failed to parse document: %w", err)
	}

	meta := transform.SchemaMeta{}
	for _, path := range strings.Split(opts.private, ",") {
		if path = strings.TrimSpace(path); path != "" {
			meta[path] = transform.FieldFlags{Private: true}
		}
	}

	transform.Apply(doc, transform.Options{
		Schema:  meta,
		Aliases: transform.ParseRules(opts.alias),
	})

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to render document: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}
