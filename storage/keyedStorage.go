package storage

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sp0x/torznab-client/torznab"
)

// KeyedStorage stores torrents in a backing, deduplicating them by link.
type KeyedStorage struct {
	backing ItemStorageBacking
	lock    sync.Mutex
	now     func() time.Time
}

func NewKeyedStorage(backing ItemStorageBacking) *KeyedStorage {
	return &KeyedStorage{backing: backing, now: time.Now}
}

func (s *KeyedStorage) Add(indexer string, t *torznab.Torrent) (bool, bool, error) {
	if t == nil || t.Link == "" {
		return false, false, errors.New("torrent link is required")
	}
	s.lock.Lock()
	defer s.lock.Unlock()

	record := NewRecord(indexer, t)
	record.LastSeen = s.now()
	existing, err := s.backing.Find(t.Link)
	switch {
	case errors.Is(err, ErrNotFound):
		record.ID = uuid.New().String()
		record.FirstSeen = record.LastSeen
		return true, false, s.backing.Create(record)
	case err != nil:
		return false, false, err
	}

	record.ID = existing.ID
	record.FirstSeen = existing.FirstSeen
	changed := existing.Changed(record)
	return false, changed, s.backing.Update(record)
}

func (s *KeyedStorage) Latest(n int) ([]*Record, error) {
	return s.backing.Latest(n)
}

func (s *KeyedStorage) Count() (int64, error) {
	return s.backing.Size()
}

func (s *KeyedStorage) Close() error {
	return s.backing.Close()
}

// Truncate drops every record, if the backing supports it.
func (s *KeyedStorage) Truncate() error {
	t, ok := s.backing.(Truncater)
	if !ok {
		return errors.New("storage can't be truncated")
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	return t.Truncate()
}
