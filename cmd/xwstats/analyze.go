package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/xwstats/internal/analysis"
	"github.com/heartmarshall/xwstats/internal/extract"
	"github.com/heartmarshall/xwstats/internal/puzzle"
	"github.com/heartmarshall/xwstats/internal/report"
)

func (c *cli) analyzeCmd() *cobra.Command {
	var (
		rarityName   string
		noveltyName  string
		crosswordese string
		commit       bool
	)

	cmd := &cobra.Command{
		Use:   "analyze <grid-file>",
		Short: "Score a grid's answers and print the score maps",
		Long: `Score every answer of a grid (plain text, one row per line, or a
puzzle JSON file) for rarity, novelty and crosswordese. The frequency
database is only updated when --commit is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scoring := &c.app.Config().Scoring
			if cmd.Flags().Changed("rarity") {
				scoring.Rarity = rarityName
			}
			if cmd.Flags().Changed("novelty") {
				scoring.Novelty = noveltyName
			}
			if cmd.Flags().Changed("crosswordese") {
				scoring.Crosswordese = crosswordese
			}
			return c.runAnalyze(cmd, args[0], commit)
		},
	}

	f := cmd.Flags()
	f.StringVar(&rarityName, "rarity", "", "rarity algorithm (see `xwstats algorithms`)")
	f.StringVar(&noveltyName, "novelty", "", "novelty algorithm")
	f.StringVar(&crosswordese, "crosswordese", "", "crosswordese mode: ratio or product")
	f.BoolVar(&commit, "commit", false, "merge the grid's answers into the frequency database")
	f.StringVar(&c.color, "color", "auto", "heatmap colour: auto, always or never")
	addFormatFlag(cmd, &c.format)
	return cmd
}

func (c *cli) runAnalyze(cmd *cobra.Command, path string, commit bool) error {
	ctx := cmd.Context()

	format, err := c.outputFormat()
	if err != nil {
		return err
	}
	blocked, err := c.blockedRune()
	if err != nil {
		return err
	}

	g, err := puzzle.LoadGrid(path, blocked)
	if err != nil {
		return err
	}

	analyzer, err := c.app.Analyzer()
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

	rep, err := analyzer.Analyze(ctx, g, db)
	if err != nil {
		return err
	}

	if format == report.FormatHeatmap {
		opts, err := c.heatmapOptions()
		if err != nil {
			return err
		}
		err = report.WriteHeatmap(c.stdout, rep, g, opts)
	} else {
		err = report.Write(c.stdout, rep, g, format)
	}
	if err != nil {
		return err
	}

	if commit {
		res, err := analysis.Commit(ctx, store, db, rep)
		if err != nil {
			return err
		}
		c.log.InfoContext(ctx, "answers committed",
			slog.String("run_id", rep.RunID.String()),
			slog.Int("answers", res.Answers),
			slog.Int("distinct", res.Distinct),
			slog.Int("total", res.Total),
		)
	}

	if rep.HasWordErrors() {
		return errWordErrors
	}
	return nil
}

func (c *cli) commitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "commit <grid-file>",
		Short: "Merge a grid's answers into the frequency database without scoring",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			blocked, err := c.blockedRune()
			if err != nil {
				return err
			}
			g, err := puzzle.LoadGrid(args[0], blocked)
			if err != nil {
				return err
			}

			spans := extract.All(g)
			answers := make([]string, 0, len(spans))
			for _, s := range spans {
				answers = append(answers, s.Text)
			}

			store, err := c.app.Store(ctx)
			if err != nil {
				return err
			}
			db, err := store.Load(ctx)
			if err != nil {
				return err
			}

			res, err := analysis.CommitAnswers(ctx, store, db, answers)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(c.stdout, "Committed %d answers (%d distinct); the database now holds %d answers.\n",
				res.Answers, res.Distinct, res.Total)
			return err
		},
	}
}
