package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sp0x/torznab-client/bots"
	"github.com/sp0x/torznab-client/config"
	"github.com/sp0x/torznab-client/indexer"
)

func init() {
	var cats []string
	cmdWatch := &cobra.Command{
		Use:   "watch [keywords]",
		Short: "Watches the indexer for new torrents.",
		Run: func(c *cobra.Command, args []string) {
			watchIndexer(strings.Join(args, " "), cats)
		},
	}
	flags := cmdWatch.Flags()
	flags.DurationP("interval", "i", 15*time.Minute, "Interval between checks.")
	flags.StringSliceVarP(&cats, "category", "c", nil, "Categories to watch, by code or name")
	flags.String("telegram_token", "", "Announce new torrents through this telegram bot")
	_ = viper.BindPFlag("watch_interval", flags.Lookup("interval"))
	_ = viper.BindPFlag("telegram_token", flags.Lookup("telegram_token"))
	_ = viper.BindEnv("telegram_token")
	rootCmd.AddCommand(cmdWatch)
}

// uncachedIndexer creates the selected indexer without a search cache, every poll has to reach it.
func uncachedIndexer(cfg config.Config, name string) (indexer.Indexer, error) {
	if name != indexer.AggregateKey {
		client, err := indexer.CreateIndexer(cfg, name)
		if err != nil {
			return nil, err
		}
		return client, nil
	}
	ag := indexer.NewAggregate()
	for _, site := range cfg.GetSites() {
		client, err := indexer.CreateIndexer(cfg, site)
		if err != nil {
			return nil, err
		}
		ag.Indexers = append(ag.Indexers, client)
	}
	if len(ag.Indexers) == 0 {
		return nil, errors.New("no indexers are configured")
	}
	return ag, nil
}

func watchIndexer(q string, cats []string) {
	query, err := buildQuery(q, cats, nil)
	if err != nil {
		log.Error(err)
		os.Exit(1)
	}
	interval := appConfig.GetDuration("watch_interval")
	if interval <= 0 {
		log.Errorf("Invalid watch interval %s, it has to be positive", interval)
		os.Exit(1)
	}
	ixr, err := uncachedIndexer(&appConfig, indexerName)
	if err != nil {
		log.Errorf("Couldn't load indexer %q: %s", indexerName, err)
		os.Exit(1)
	}
	store, err := newStorage(&appConfig)
	if err != nil {
		log.Errorf("Couldn't open storage: %s", err)
		os.Exit(1)
	}
	defer store.Close()

	ctx, cancel := interruptContext()
	defer cancel()
	log.WithFields(log.Fields{"indexer": ixr.Name(), "interval": interval}).Info("Watching indexer")

	updates, err := indexer.Watch(ctx, ixr, query, interval, store)
	if err != nil {
		log.Error(err)
		os.Exit(1)
	}
	announcements := startTelegram(appConfig.GetString("telegram_token"))
	if announcements != nil {
		defer close(announcements)
	}

	tabWr := tabwriter.NewWriter(os.Stdout, 0, 8, 1, '\t', 0)
	for update := range updates {
		if update.Err != nil {
			continue
		}
		if announcements != nil {
			announcements <- bots.NewTorrentMessage(update)
		}
		state := "Updated"
		if update.IsNew {
			state = "New"
		}
		_, _ = fmt.Fprintf(tabWr, "%s\t%s\t%s\t%s\n", state, update.Indexer, update.Torrent.Name, update.Torrent.Link)
		_ = tabWr.Flush()
	}
}

// startTelegram runs the telegram bot when a token is configured, the returned channel feeds its broadcasts.
func startTelegram(token string) chan bots.ChatMessage {
	if token == "" {
		return nil
	}
	chats, err := bots.NewBoltChatStore(config.GetDataPath("chats.db"))
	if err != nil {
		log.Errorf("Couldn't open chat storage: %s", err)
		os.Exit(1)
	}
	runner, err := bots.NewTelegram(token, chats, tgbotapi.NewBotAPI)
	if err == nil {
		err = runner.Run()
	}
	if err != nil {
		log.Errorf("Couldn't start the telegram bot: %s", err)
		os.Exit(1)
	}
	messages := make(chan bots.ChatMessage, 16)
	go func() {
		defer chats.Close()
		if err := runner.FeedBroadcast(messages); err != nil {
			log.Warnf("Telegram broadcast stopped: %s", err)
		}
	}()
	return messages
}
