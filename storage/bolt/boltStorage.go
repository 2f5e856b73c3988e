package bolt

import (
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/boltdb/bolt"
	log "github.com/sirupsen/logrus"

	"github.com/sp0x/torznab-client/storage"
	"github.com/sp0x/torznab-client/storage/serializers"
	"github.com/sp0x/torznab-client/storage/serializers/json"
)

const (
	resultsBucket = "results"
	// link -> record id
	linksBucket = "results.links"
	// sequence -> record id, in the order records were last stored
	orderBucket = "results.order"
)

// storedRecord keeps the position of the record in the order bucket.
type storedRecord struct {
	*storage.Record
	Seq uint64
}

// BoltStorage persists torrent records in a bolt database.
type BoltStorage struct {
	Database  *bolt.DB
	marshaler serializers.MarshalUnmarshaler
}

func NewBoltStorage(dbPath string) (*BoltStorage, error) {
	dbx, err := GetBoltDB(dbPath)
	if err != nil {
		return nil, err
	}
	return &BoltStorage{
		Database:  dbx,
		marshaler: json.Serializer,
	}, nil
}

// GetBoltDB opens the database at file, creating it along with its buckets if needed.
func GetBoltDB(file string) (*bolt.DB, error) {
	if file == "" {
		return nil, errors.New("bolt database path is required")
	}
	if err := os.MkdirAll(filepath.Dir(file), os.ModePerm); err != nil {
		return nil, err
	}
	dbx, err := bolt.Open(file, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("couldn't open bolt db %s: %w", file, err)
	}
	if err = dbx.Update(createBuckets); err != nil {
		_ = dbx.Close()
		return nil, err
	}
	return dbx, nil
}

var buckets = []string{resultsBucket, linksBucket, orderBucket}

func createBuckets(tx *bolt.Tx) error {
	for _, name := range buckets {
		if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
			return err
		}
	}
	return nil
}

// Truncate drops every stored record.
func (b *BoltStorage) Truncate() error {
	return b.Database.Update(func(tx *bolt.Tx) error {
		for _, name := range buckets {
			if err := tx.DeleteBucket([]byte(name)); err != nil && err != bolt.ErrBucketNotFound {
				return err
			}
		}
		return createBuckets(tx)
	})
}

func (b *BoltStorage) Find(link string) (*storage.Record, error) {
	var found *storage.Record
	err := b.Database.View(func(tx *bolt.Tx) error {
		id := tx.Bucket([]byte(linksBucket)).Get([]byte(link))
		if id == nil {
			return storage.ErrNotFound
		}
		rec, err := b.get(tx, id)
		if err != nil {
			return err
		}
		found = rec.Record
		return nil
	})
	return found, err
}

func (b *BoltStorage) get(tx *bolt.Tx, id []byte) (*storedRecord, error) {
	raw := tx.Bucket([]byte(resultsBucket)).Get(id)
	if raw == nil {
		return nil, storage.ErrNotFound
	}
	rec := &storedRecord{Record: &storage.Record{}}
	if err := b.marshaler.Unmarshal(raw, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// Create stores a new record, the record id is used as the key.
func (b *BoltStorage) Create(r *storage.Record) error {
	if r.ID == "" {
		return errors.New("record id is required")
	}
	return b.Database.Update(func(tx *bolt.Tx) error {
		links := tx.Bucket([]byte(linksBucket))
		if links.Get([]byte(r.Link)) != nil {
			return fmt.Errorf("can't add record, link %s is already stored", r.Link)
		}
		if err := links.Put([]byte(r.Link), []byte(r.ID)); err != nil {
			return err
		}
		return b.put(tx, &storedRecord{Record: r})
	})
}

// Update replaces the record with the same id and moves it to the front of the order.
func (b *BoltStorage) Update(r *storage.Record) error {
	return b.Database.Update(func(tx *bolt.Tx) error {
		old, err := b.get(tx, []byte(r.ID))
		if err != nil {
			return err
		}
		if err := tx.Bucket([]byte(orderBucket)).Delete(u64tob(old.Seq)); err != nil {
			return err
		}
		return b.put(tx, &storedRecord{Record: r})
	})
}

func (b *BoltStorage) put(tx *bolt.Tx, rec *storedRecord) error {
	order := tx.Bucket([]byte(orderBucket))
	seq, err := order.NextSequence()
	if err != nil {
		return err
	}
	rec.Seq = seq
	if err := order.Put(u64tob(seq), []byte(rec.ID)); err != nil {
		return err
	}
	serialized, err := b.marshaler.Marshal(rec)
	if err != nil {
		return err
	}
	return tx.Bucket([]byte(resultsBucket)).Put([]byte(rec.ID), serialized)
}

// Latest walks the order bucket backwards.
func (b *BoltStorage) Latest(count int) ([]*storage.Record, error) {
	var output []*storage.Record
	err := b.Database.View(func(tx *bolt.Tx) error {
		cursor := ReversibleCursor{C: tx.Bucket([]byte(orderBucket)).Cursor(), Reverse: true}
		for _, id := cursor.First(); cursor.CanContinue(id) && len(output) < count; _, id = cursor.Next() {
			rec, err := b.get(tx, id)
			if err != nil {
				log.WithFields(log.Fields{"id": string(id)}).
					Warning("Couldn't deserialize item from bolt storage.")
				continue
			}
			output = append(output, rec.Record)
		}
		return nil
	})
	return output, err
}

func (b *BoltStorage) Size() (int64, error) {
	var count int
	err := b.Database.View(func(tx *bolt.Tx) error {
		count = tx.Bucket([]byte(resultsBucket)).Stats().KeyN
		return nil
	})
	return int64(count), err
}

func (b *BoltStorage) Close() error {
	return b.Database.Close()
}

// u64tob returns an 8-byte big endian representation of v.
func u64tob(v uint64) []byte {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, v)
	return buf
}
