package bots

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"

	"github.com/boltdb/bolt"

	"github.com/sp0x/torznab-client/storage/serializers"
	"github.com/sp0x/torznab-client/storage/serializers/json"
)

const chatsBucket = "__chats_telegram"

// ChatStore keeps the chats that asked for notifications.
type ChatStore interface {
	AddChat(chat *Chat) error
	ForEachChat(callback func(chat *Chat)) error
	Close() error
}

// BoltChatStore keeps chats in a bolt database, keyed by chat id.
type BoltChatStore struct {
	db        *bolt.DB
	marshaler serializers.MarshalUnmarshaler
}

func NewBoltChatStore(file string) (*BoltChatStore, error) {
	if err := os.MkdirAll(filepath.Dir(file), os.ModePerm); err != nil {
		return nil, err
	}
	db, err := bolt.Open(file, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("couldn't open chat db %s: %w", file, err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(chatsBucket))
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return &BoltChatStore{db: db, marshaler: json.Serializer}, nil
}

// AddChat stores the chat, replacing any chat with the same id.
func (s *BoltChatStore) AddChat(chat *Chat) error {
	raw, err := s.marshaler.Marshal(chat)
	if err != nil {
		return err
	}
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, uint64(chat.ChatID))
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(chatsBucket)).Put(key, raw)
	})
}

func (s *BoltChatStore) ForEachChat(callback func(chat *Chat)) error {
	return s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(chatsBucket)).ForEach(func(_, v []byte) error {
			chat := &Chat{}
			if err := s.marshaler.Unmarshal(v, chat); err != nil {
				return err
			}
			callback(chat)
			return nil
		})
	})
}

func (s *BoltChatStore) Close() error {
	return s.db.Close()
}
