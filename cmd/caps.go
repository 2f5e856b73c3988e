package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/sp0x/torznab-client/torznab"
)

func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "caps",
		Short: "Shows what the indexer supports.",
		Run: func(c *cobra.Command, _ []string) {
			ixr := lookupIndexer()
			ctx, cancel := interruptContext()
			defer cancel()
			caps, err := ixr.Capabilities(ctx)
			if err != nil {
				log.Errorf("Couldn't get capabilities: %s", err)
				os.Exit(1)
			}
			_ = printCapabilities(os.Stdout, caps)
		},
	})
}

func printCapabilities(w io.Writer, caps *torznab.Capabilities) error {
	tabWr := tabwriter.NewWriter(w, 0, 8, 1, '\t', 0)
	if caps.Server.Title != "" {
		_, _ = fmt.Fprintf(tabWr, "Server:\t%s\n", caps.Server.Title)
	}
	if caps.Limits.Max > 0 {
		_, _ = fmt.Fprintf(tabWr, "Limits:\t%d (default %d)\n", caps.Limits.Max, caps.Limits.Default)
	}
	for _, mode := range caps.Searching {
		available := "no"
		if mode.Available {
			available = "yes"
		}
		_, _ = fmt.Fprintf(tabWr, "Search %s:\t%s\t%s\n", mode.Key, available, strings.Join(mode.SupportedParams, ","))
	}
	for _, cat := range caps.Categories {
		_, _ = fmt.Fprintf(tabWr, "%d\t%s\n", cat.ID, cat.Name)
		for _, sub := range cat.Subcats {
			_, _ = fmt.Fprintf(tabWr, "  %d\t%s\n", sub.ID, sub.Name)
		}
	}
	return tabWr.Flush()
}
