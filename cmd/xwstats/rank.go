package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/xwstats/internal/crosswordese"
	"github.com/heartmarshall/xwstats/internal/domain"
	"github.com/heartmarshall/xwstats/internal/rarity"
	"github.com/heartmarshall/xwstats/internal/report"
)

func (c *cli) rankCmd() *cobra.Command {
	var (
		top        int
		rarityName string
		out        string
	)

	cmd := &cobra.Command{
		Use:   "rank",
		Short: "Rank every answer in the frequency database by crosswordese",
		Long: `Rank every answer in the frequency database by crosswordese.

With --out the full ranking is saved as CSV unless --top or --format say
otherwise. A directory as --out gets crosswordese_<rarity>.csv inside it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			if top < 0 {
				return domain.NewValidationError("top", "must be >= 0")
			}
			if cmd.Flags().Changed("rarity") {
				c.app.Config().Scoring.Rarity = rarityName
			}
			if out != "" && !cmd.Flags().Changed("format") {
				c.format = string(report.FormatCSV)
			}
			if out != "" && !cmd.Flags().Changed("top") {
				top = 0
			}
			format, err := c.outputFormat()
			if err != nil {
				return err
			}

			rarityFn, err := c.app.RarityFunc()
			if err != nil {
				return err
			}
			acfg, err := c.app.AnalysisConfig()
			if err != nil {
				return err
			}

			store, err := c.app.Store(ctx)
			if err != nil {
				return err
			}
			db, err := store.Load(ctx)
			if err != nil {
				return err
			}

			ranked, failed, err := crosswordese.RankDatabase(ctx, db, rarityFn, acfg.CrosswordeseParams)
			if err != nil {
				return err
			}
			for _, we := range failed {
				c.log.WarnContext(ctx, "answer not ranked",
					slog.String("answer", we.Word),
					slog.String("error", we.Err.Error()),
				)
			}

			if top > 0 && len(ranked) > top {
				ranked = ranked[:top]
			}
			if out == "" {
				return report.WriteRanking(c.stdout, ranked, format)
			}

			path := rankingPath(out, acfg.Rarity)
			if err := writeRankingFile(path, ranked, format); err != nil {
				return err
			}
			c.log.InfoContext(ctx, "ranking written", slog.String("path", path), slog.Int("answers", len(ranked)))
			_, err = fmt.Fprintf(c.stdout, "Wrote %d ranked answers to %s.\n", len(ranked), path)
			return err
		},
	}

	cmd.Flags().IntVarP(&top, "top", "n", 25, "show the first N answers (0 = all)")
	cmd.Flags().StringVar(&rarityName, "rarity", "", "rarity algorithm used for the language frequency")
	cmd.Flags().StringVarP(&out, "out", "o", "", "save the ranking to this file or directory instead of printing it")
	addFormatFlag(cmd, &c.format)
	return cmd
}

// rankingPath resolves --out. An existing directory gets the per-algorithm
// default file name.
func rankingPath(out, rarityName string) string {
	if fi, err := os.Stat(out); err == nil && fi.IsDir() {
		return filepath.Join(out, fmt.Sprintf("crosswordese_%s.csv", rarity.Canonical(rarityName)))
	}
	return out
}

func writeRankingFile(path string, ranked []crosswordese.Ranked, format report.Format) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create ranking file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close ranking file: %w", cerr)
		}
	}()
	return report.WriteRanking(f, ranked, format)
}
