package main

import (
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/sp0x/torznab-client/config"
	"github.com/sp0x/torznab-client/indexer"
)

var (
	appConfig    config.ViperConfig
	indexerScope = indexer.NewScope()
)

func initConfig() {
	config.SetDefaults()
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		// We load the default config file
		defaultConfigPath := config.GetConfigDir()
		_ = os.MkdirAll(defaultConfigPath, os.ModePerm)
		viper.AddConfigPath(defaultConfigPath)
		viper.SetConfigType("yaml")
		viper.SetConfigName("torznab")
	}
	viper.AutomaticEnv()
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			err = viper.SafeWriteConfig()
			if err != nil {
				log.Warningf("error while writing default config file: %v\n", err)
			}
		} else {
			log.Warningf("error while reading config file: %v\n", err)
			os.Exit(1)
		}
	}
	log.SetLevel(config.GetMinLogLevel(&appConfig))
}

// lookupIndexer resolves the indexer selected with --indexer, exiting when it isn't configured.
func lookupIndexer() indexer.Indexer {
	ixr, err := indexerScope.Lookup(&appConfig, indexerName)
	if err != nil {
		log.Errorf("Couldn't load indexer %q: %s", indexerName, err)
		os.Exit(1)
	}
	return ixr
}
