package bots

type ChatBotRunner interface {
	// Run starts listening for messages from clients.
	Run() error
	// FeedBroadcast broadcasts anything that comes from a channel.
	FeedBroadcast(messageChannel <-chan ChatMessage) error
}
