package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/sp0x/torznab-client/storage"
)

func init() {
	torrentCount := 100
	cmdList := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Lists the latest torrents in the database",
		Run: func(c *cobra.Command, _ []string) {
			store, err := newStorage(&appConfig)
			if err != nil {
				log.Errorf("Couldn't open storage: %s", err)
				os.Exit(1)
			}
			defer store.Close()
			if err := listLatest(os.Stdout, store, torrentCount); err != nil {
				log.Error(err)
			}
		},
	}
	cmdList.Flags().IntVarP(&torrentCount, "count", "c", 100, "Number of torrents to display")

	cmdTruncate := &cobra.Command{
		Use:   "truncate",
		Short: "Truncates the database",
		Run: func(c *cobra.Command, _ []string) {
			store, err := newStorage(&appConfig)
			if err != nil {
				log.Errorf("Couldn't open storage: %s", err)
				os.Exit(1)
			}
			defer store.Close()
			if err := store.Truncate(); err != nil {
				log.Error(err)
			}
		},
	}
	rootCmd.AddCommand(cmdList, cmdTruncate)
}

func listLatest(w io.Writer, store storage.ItemStorage, n int) error {
	records, err := store.Latest(n)
	if err != nil {
		return err
	}
	total, err := store.Count()
	if err != nil {
		return err
	}
	tabWr := tabwriter.NewWriter(w, 0, 8, 1, '\t', 0)
	for _, r := range records {
		_, _ = fmt.Fprintf(tabWr, "%s\t%s\t%s\t%s\t%s\n",
			r.Indexer, r.Name, humanize.Bytes(r.Size), count(r.Seeders), humanize.Time(r.LastSeen))
	}
	if err := tabWr.Flush(); err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%d of %d stored torrents\n", len(records), total)
	return err
}
