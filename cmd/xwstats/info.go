package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/xwstats/internal/app"
	"github.com/heartmarshall/xwstats/internal/crosswordese"
	"github.com/heartmarshall/xwstats/internal/novelty"
	"github.com/heartmarshall/xwstats/internal/rarity"
)

func noSetup(*cobra.Command, []string) error { return nil }

func (c *cli) algorithmsCmd() *cobra.Command {
	return &cobra.Command{
		Use:               "algorithms",
		Short:             "List the available scoring algorithms",
		Args:              cobra.NoArgs,
		PersistentPreRunE: noSetup,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(c.stdout, "rarity:       %s\nnovelty:      %s\ncrosswordese: %s\n",
				strings.Join(rarity.Names(), ", "),
				strings.Join(novelty.Names(), ", "),
				strings.Join(crosswordese.Modes(), ", "),
			)
			return err
		},
	}
}

func (c *cli) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:               "version",
		Short:             "Print build information",
		Args:              cobra.NoArgs,
		PersistentPreRunE: noSetup,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(c.stdout, "xwstats %s\n", app.BuildVersion())
			return err
		},
	}
}
