package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/heartmarshall/xwstats/internal/app"
	"github.com/heartmarshall/xwstats/internal/config"
	"github.com/heartmarshall/xwstats/internal/domain"
	"github.com/heartmarshall/xwstats/internal/report"
	"github.com/heartmarshall/xwstats/pkg/ctxutil"
)

// cli holds the state shared by all subcommands of one invocation.
type cli struct {
	stdout io.Writer
	stderr io.Writer

	configPath string
	dbPath     string
	blocked    string
	format     string
	color      string

	app *app.App
	log *slog.Logger
}

func newCLI(stdout, stderr io.Writer) *cli {
	return &cli{stdout: stdout, stderr: stderr}
}

func (c *cli) close() {
	if c.app == nil {
		return
	}
	if err := c.app.Close(); err != nil {
		c.log.Warn("close resources", slog.String("error", err.Error()))
	}
}

func (c *cli) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "xwstats",
		Short:         "Crossword answer statistics: rarity, novelty and crosswordese",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SetContext(ctxutil.WithCommand(cmd.Context(), cmd.Name()))
			return c.setup()
		},
	}
	root.SetOut(c.stdout)
	root.SetErr(c.stderr)

	pf := root.PersistentFlags()
	pf.StringVar(&c.configPath, "config", os.Getenv("CONFIG_PATH"), "path to the YAML config file")
	pf.StringVar(&c.dbPath, "db", "", "CSV frequency database path (overrides freqdb.path)")
	pf.StringVar(&c.blocked, "blocked", string(domain.DefaultBlocked), "blocked-cell character in text grids")

	root.AddCommand(
		c.analyzeCmd(),
		c.commitCmd(),
		c.builddbCmd(),
		c.rankCmd(),
		c.algorithmsCmd(),
		c.versionCmd(),
	)
	return root
}

// setup loads configuration and builds the App. Flags override config.
func (c *cli) setup() error {
	cfg, err := config.LoadFile(c.configPath)
	if err != nil {
		return err
	}
	if c.dbPath != "" {
		cfg.FreqDB.Backend = config.BackendCSV
		cfg.FreqDB.Path = c.dbPath
	}

	c.log = app.NewLogger(cfg.Log, c.stderr)
	c.app = app.New(cfg, c.log)
	return nil
}

func (c *cli) blockedRune() (rune, error) {
	if utf8.RuneCountInString(c.blocked) != 1 {
		return 0, domain.NewValidationError("blocked", fmt.Sprintf("must be a single character (got %q)", c.blocked))
	}
	r, _ := utf8.DecodeRuneInString(c.blocked)
	return r, nil
}

func (c *cli) outputFormat() (report.Format, error) {
	return report.ParseFormat(c.format)
}

// heatmapOptions resolves --color against whether stdout is a terminal.
func (c *cli) heatmapOptions() (report.HeatmapOptions, error) {
	switch c.color {
	case "always":
		return report.HeatmapOptions{ForceColor: true}, nil
	case "never":
		return report.HeatmapOptions{NoColor: true}, nil
	case "auto", "":
		f, ok := c.stdout.(*os.File)
		tty := ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
		return report.HeatmapOptions{ForceColor: tty, NoColor: !tty}, nil
	default:
		return report.HeatmapOptions{}, domain.NewValidationError("color", fmt.Sprintf("must be auto, always or never (got %q)", c.color))
	}
}

func addFormatFlag(cmd *cobra.Command, target *string) {
	cmd.Flags().StringVarP(target, "format", "f", string(report.FormatText), "output format: "+strings.Join(report.Formats(), ", "))
}
