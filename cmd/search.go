package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/sp0x/torznab-client/indexer/categories"
	"github.com/sp0x/torznab-client/torznab"
)

func init() {
	rootCmd.AddCommand(
		newSearchCommand("search", "Searches the indexer."),
		newSearchCommand("tvsearch", "Searches the indexer for tv shows.", categories.TV),
		newSearchCommand("moviesearch", "Searches the indexer for movies.", categories.Movies),
		newSearchCommand("audiosearch", "Searches the indexer for music.", categories.Audio),
	)
}

// newSearchCommand creates a search command that looks in the default categories
// unless others are given with --category.
func newSearchCommand(use, short string, defaults ...categories.Category) *cobra.Command {
	var cats []string
	var limit int
	cmd := &cobra.Command{
		Use:   use + " [keywords]",
		Short: short,
		Run: func(c *cobra.Command, args []string) {
			query, err := buildQuery(strings.Join(args, " "), cats, defaults)
			if err != nil {
				log.Error(err)
				os.Exit(1)
			}
			query.Limit = limit
			runSearch(query)
		},
	}
	cmd.Flags().StringSliceVarP(&cats, "category", "c", nil,
		"Categories to search in, by code or name, e.g. 2040 or movies/hd")
	cmd.Flags().IntVarP(&limit, "limit", "l", 0, "Maximum number of results")
	return cmd
}

func buildQuery(q string, cats []string, defaults []categories.Category) (*torznab.Query, error) {
	if len(cats) == 0 {
		return torznab.NewQuery(q, defaults...), nil
	}
	query := torznab.NewQuery(q)
	for _, raw := range cats {
		cat, err := categories.Parse(raw)
		if err != nil {
			return nil, err
		}
		query.AddCategory(cat)
	}
	return query, nil
}

func runSearch(query *torznab.Query) {
	ixr := lookupIndexer()
	ctx, cancel := interruptContext()
	defer cancel()
	results, err := ixr.Query(ctx, query)
	if err != nil {
		log.Errorf("Search failed: %s", err)
		os.Exit(1)
	}
	for _, failed := range results.Failed() {
		log.WithFields(log.Fields{"indexer": failed.Indexer}).Warnf("Rejected item: %s", failed.Err)
	}
	if err := printResults(os.Stdout, results); err != nil {
		log.Error(err)
	}
}

func printResults(w io.Writer, results torznab.Results) error {
	tabWr := tabwriter.NewWriter(w, 0, 8, 1, '\t', 0)
	_, _ = fmt.Fprintln(tabWr, "Indexer\tName\tSize\tSeeders\tLeechers\tCategories\tLink")
	for _, r := range results {
		if !r.OK() {
			continue
		}
		t := r.Torrent
		_, _ = fmt.Fprintf(tabWr, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			r.Indexer, t.Name, humanize.Bytes(t.Size), count(t.Seeders), count(t.Leechers),
			formatCategories(t.Categories), t.Link)
	}
	if err := tabWr.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, results.Summary())
	return err
}

func count(n *uint32) string {
	if n == nil {
		return "-"
	}
	return humanize.Comma(int64(*n))
}

func formatCategories(codes []uint32) string {
	names := make([]string, len(codes))
	for i, code := range codes {
		cat := categories.FromCode(code)
		if cat.Known() {
			names[i] = cat.Name
		} else {
			names[i] = fmt.Sprint(code)
		}
	}
	return strings.Join(names, ",")
}
