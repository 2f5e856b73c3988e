package main

import (
	"io"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/sp0x/torznab-client/indexer"
)

func init() {
	var output string
	cmdFetch := &cobra.Command{
		Use:   "fetch <link>",
		Short: "Downloads a torrent file from the indexer.",
		Args:  cobra.ExactArgs(1),
		Run: func(c *cobra.Command, args []string) {
			if err := fetchTorrent(args[0], output); err != nil {
				log.Errorf("Couldn't fetch torrent: %s", err)
				os.Exit(1)
			}
		},
	}
	cmdFetch.Flags().StringVarP(&output, "output", "O", "", "File to write to, stdout by default")
	rootCmd.AddCommand(cmdFetch)
}

// fetchTorrent downloads through the indexer client, so the indexer's proxy and timeout apply.
func fetchTorrent(link, output string) error {
	client, err := indexer.CreateIndexer(&appConfig, indexerName)
	if err != nil {
		return err
	}
	ctx, cancel := interruptContext()
	defer cancel()
	body, err := client.Download(ctx, link)
	if err != nil {
		return err
	}
	defer body.Close()

	var w io.Writer = os.Stdout
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	_, err = io.Copy(w, body)
	return err
}
