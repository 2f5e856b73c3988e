package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/sp0x/torznab-client/indexer/categories"
)

func init() {
	var family string
	cmdCategories := &cobra.Command{
		Use:     "categories",
		Aliases: []string{"cats"},
		Short:   "Lists the standard torznab categories.",
		Run: func(c *cobra.Command, _ []string) {
			if err := listCategories(os.Stdout, family); err != nil {
				log.Error(err)
				os.Exit(1)
			}
		},
	}
	cmdCategories.Flags().StringVarP(&family, "family", "f", "", "Only list the categories of a family, e.g. movies")
	rootCmd.AddCommand(cmdCategories)
}

func listCategories(w io.Writer, family string) error {
	list := categories.All()
	if family != "" {
		fam, err := categories.Parse(family)
		if err != nil {
			return err
		}
		list = append([]categories.Category{fam.Family()}, categories.Subcategories(fam.Family())...)
	}
	tabWr := tabwriter.NewWriter(w, 0, 8, 1, ' ', 0)
	for _, cat := range list {
		_, _ = fmt.Fprintf(tabWr, "%d\t%s\n", cat.Code(), cat.Name)
	}
	return tabWr.Flush()
}
