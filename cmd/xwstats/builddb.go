package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/xwstats/internal/corpus"
	"github.com/heartmarshall/xwstats/internal/freqdb"
)

func (c *cli) builddbCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "builddb <corpus-dir>",
		Short: "Build the answer frequency database from a directory of puzzle JSON files",
		Long: `Walk corpus-dir for *.json puzzle files and count every across and
down answer. Unreadable files are skipped and counted. The result replaces
the configured frequency database, or is written to --out as CSV.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			db, stats, err := corpus.NewBuilder(c.log).Build(ctx, args[0])
			if err != nil {
				return err
			}

			var store freqdb.Store
			if out != "" {
				store = c.app.CSVStore(out)
			} else if store, err = c.app.Store(ctx); err != nil {
				return err
			}
			if err := store.Replace(ctx, db); err != nil {
				return err
			}

			_, err = fmt.Fprintf(c.stdout,
				"Parsed %d of %d puzzle files (%d without answers, %d failed): %d answers, %d distinct.\n",
				stats.Parsed, stats.Files, stats.Empty, stats.Failed, stats.Answers, db.Len())
			return err
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "write a CSV file here instead of the configured database")
	return cmd
}
