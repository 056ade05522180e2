package cli

import (
	"context"

	"github.com/jsonai/jsonai/internal/config"
	"github.com/jsonai/jsonai/internal/ingest"
	"github.com/spf13/cobra"
)

var fieldsCmd = &cobra.Command{
	Use:   "fields <input ...>",
	Short: "List the distinct field paths discovered across ingested documents",
	Long: `fields ingests one or more JSON files, directories, glob patterns, or
"-" for stdin, shreds them into addressable records, and prints every
distinct field path along with its cardinality, without building an
index or running a query.`,
	RunE: runFields,
}

func init() {
	rootCmd.AddCommand(fieldsCmd)
}

func runFields(cmd *cobra.Command, args []string) error {
	d := Defaults()
	if d == nil {
		d = config.DefaultDefaults()
	}

	if len(args) == 0 {
		args = []string{"."}
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	logger := config.NewLogger("ingest")
	result, err := ingest.Ingest(ctx, args, ingest.Options{
		Concurrency: d.Concurrency,
		Stdin:       cmd.InOrStdin(),
		Logger:      logger,
	})
	if err != nil {
		return err
	}

	return renderFields(cmd, result.Records)
}
