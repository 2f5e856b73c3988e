package bots

import (
	"errors"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
	log "github.com/sirupsen/logrus"
)

// botAPI is the part of the telegram api the runner uses.
type botAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) (tgbotapi.UpdatesChannel, error)
}

type TelegramRunner struct {
	bot     botAPI
	updates tgbotapi.UpdatesChannel
	chats   ChatStore
}

type TelegramProvider func(token string) (*tgbotapi.BotAPI, error)

// NewTelegram creates a new telegram bot runner, chats that talk to the bot are kept in chats.
func NewTelegram(token string, chats ChatStore, provider TelegramProvider) (*TelegramRunner, error) {
	if token == "" {
		return nil, errors.New("token is required")
	}
	if provider == nil {
		return nil, errors.New("telegram api provider is required")
	}
	if chats == nil {
		return nil, errors.New("chat storage is required")
	}
	bot, err := provider(token) // tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	log.Infof("Authorized on account %s", bot.Self.UserName)
	return &TelegramRunner{bot: bot, chats: chats}, nil
}

// listenForUpdates registers everyone that talks to us.
func (t *TelegramRunner) listenForUpdates() {
	for update := range t.updates {
		if update.Message == nil { // ignore any non-Message Updates
			continue
		}
		msg := update.Message
		chat := &Chat{InitialText: msg.Text}
		if msg.Chat != nil {
			chat.ChatID = msg.Chat.ID
		}
		if msg.From != nil {
			chat.Username = msg.From.UserName
		}
		if err := t.chats.AddChat(chat); err != nil {
			log.Warnf("Couldn't store chat: %s", err)
			continue
		}
		log.Debugf("[%s] %s", chat.Username, msg.Text)
		if msg.Text == "/start" {
			reply := tgbotapi.NewMessage(chat.ChatID, "Hello. I'll keep you posted for new torrents.")
			_, _ = t.bot.Send(reply)
		}
	}
}

// Run the bot, listening for updates from users
func (t *TelegramRunner) Run() error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates, err := t.bot.GetUpdatesChan(u)
	if err != nil {
		return err
	}
	t.updates = updates
	go t.listenForUpdates()
	return nil
}

// Broadcast a message to all the chats we know of.
func (t *TelegramRunner) Broadcast(message *ChatMessage) error {
	return t.chats.ForEachChat(func(chat *Chat) {
		msg := tgbotapi.NewMessage(chat.ChatID, message.Text)
		msg.ParseMode = "HTML"
		if _, err := t.bot.Send(msg); err != nil {
			log.WithFields(log.Fields{"chat": chat.ChatID}).Warnf("Couldn't send message: %s", err)
		}
	})
}

// FeedBroadcast the messages that are passed to each one of the chats.
func (t *TelegramRunner) FeedBroadcast(messageChannel <-chan ChatMessage) error {
	if messageChannel == nil {
		return fmt.Errorf("message channel is required")
	}
	for chatMsg := range messageChannel {
		tmpChatMsg := chatMsg
		if err := t.Broadcast(&tmpChatMsg); err != nil {
			return err
		}
	}
	return nil
}
