package main

import (
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sp0x/torznab-client/server"
)

func init() {
	cmdServe := &cobra.Command{
		Use:   "serve",
		Short: "Runs the torznab proxy and RSS server.",
		Run:   serve,
	}
	cmdFlags := cmdServe.Flags()
	cmdFlags.IntP("port", "p", 5000, "The port to listen on.")
	cmdFlags.String("api_key", "", "The key clients have to present to search.")
	_ = viper.BindEnv("port")
	_ = viper.BindPFlag("port", cmdFlags.Lookup("port"))
	_ = viper.BindEnv("api_key")
	_ = viper.BindPFlag("api_key", cmdFlags.Lookup("api_key"))
	rootCmd.AddCommand(cmdServe)
}

func serve(c *cobra.Command, _ []string) {
	store, err := newStorage(&appConfig)
	if err != nil {
		log.Errorf("Couldn't open storage: %s", err)
		os.Exit(1)
	}
	defer store.Close()
	// Init the server
	rserver := server.NewServer(&appConfig, indexerScope, store)
	if err := rserver.Listen(); err != nil {
		log.Error(err)
	}
}
