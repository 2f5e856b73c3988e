package bots

import (
	"fmt"
	"html"

	"github.com/dustin/go-humanize"

	"github.com/sp0x/torznab-client/indexer"
)

type Chat struct {
	Username    string
	InitialText string
	ChatID      int64
}

type ChatMessage struct {
	Text string
}

// NewTorrentMessage announces a new or updated torrent, formatted as telegram html.
func NewTorrentMessage(u indexer.Update) ChatMessage {
	t := u.Torrent
	state := "Updated"
	if u.IsNew {
		state = "New"
	}
	text := fmt.Sprintf("<b>%s</b> on %s: <a href=\"%s\">%s</a>\n%s",
		state, html.EscapeString(u.Indexer), html.EscapeString(t.Link), html.EscapeString(t.Name), humanize.Bytes(t.Size))
	if t.Seeders != nil {
		text += fmt.Sprintf(", %d seeders", *t.Seeders)
	}
	return ChatMessage{Text: text}
}
