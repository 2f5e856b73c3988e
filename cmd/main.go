package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sp0x/torznab-client/indexer"
)

var rootCmd = &cobra.Command{
	Use:   "torznab",
	Short: "Searches torznab indexers and keeps track of the torrents they publish.",
}

var (
	configFile  string
	indexerName string
)

func init() {
	cobra.OnInitialize(initConfig)
	flags := rootCmd.PersistentFlags()
	var verbose bool
	flags.StringVar(&configFile, "config", "", "config file (default is $HOME/.torznab/torznab.yaml)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Show debug output")
	flags.StringVarP(&indexerName, "indexer", "x", indexer.AggregateKey,
		"The configured indexer to use, "+indexer.AggregateKey+" uses every one of them")
	flags.StringP("storage", "o", "boltdb", `The storage backing to use.
Currently supported storage backings: boltdb, sqlite`)
	_ = viper.BindPFlag("verbose", flags.Lookup("verbose"))
	_ = viper.BindPFlag("storage", flags.Lookup("storage"))
	_ = viper.BindEnv("storage")
}

// interruptContext is cancelled on ctrl+c.
func interruptContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func main() {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
