package sqlite

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jinzhu/gorm"
	_ "github.com/mattn/go-sqlite3"

	"github.com/sp0x/torznab-client/storage"
)

// torrentRow is the table layout of a stored record.
type torrentRow struct {
	ID              string `gorm:"primary_key"`
	Indexer         string
	Name            string
	Link            string `gorm:"unique_index"`
	GUID            string
	Size            uint64
	Categories      string
	Seeders         *uint32
	Leechers        *uint32
	MinimumRatio    *float64
	MinimumSeedTime *int64
	PublishDate     *time.Time
	FirstSeen       time.Time
	LastSeen        time.Time `gorm:"index"`
}

func (torrentRow) TableName() string {
	return "torrents"
}

// DBStorage persists torrent records in an sqlite database through gorm.
type DBStorage struct {
	Path string
	db   *gorm.DB
}

func NewDBStorage(path string) (*DBStorage, error) {
	if path == "" {
		return nil, errors.New("sqlite database path is required")
	}
	gdb, err := gorm.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("error with db %v: %w", path, err)
	}
	if err := gdb.AutoMigrate(&torrentRow{}).Error; err != nil {
		_ = gdb.Close()
		return nil, err
	}
	return &DBStorage{Path: path, db: gdb}, nil
}

func (d *DBStorage) Find(link string) (*storage.Record, error) {
	var row torrentRow
	err := d.db.Where("link = ?", link).First(&row).Error
	if gorm.IsRecordNotFoundError(err) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return fromRow(&row)
}

func (d *DBStorage) Create(r *storage.Record) error {
	return d.db.Create(toRow(r)).Error
}

// Update a record with a matching id.
func (d *DBStorage) Update(r *storage.Record) error {
	res := d.db.Save(toRow(r))
	return res.Error
}

func (d *DBStorage) Latest(count int) ([]*storage.Record, error) {
	var rows []torrentRow
	if err := d.db.Order("last_seen desc").Limit(count).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*storage.Record, 0, len(rows))
	for i := range rows {
		rec, err := fromRow(&rows[i])
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

func (d *DBStorage) Size() (int64, error) {
	var result int64
	err := d.db.Model(&torrentRow{}).Count(&result).Error
	return result, err
}

// Truncate drops every stored record.
func (d *DBStorage) Truncate() error {
	return d.db.Unscoped().Delete(&torrentRow{}).Error
}

func (d *DBStorage) Close() error {
	return d.db.Close()
}

func toRow(r *storage.Record) *torrentRow {
	row := &torrentRow{
		ID:           r.ID,
		Indexer:      r.Indexer,
		Name:         r.Name,
		Link:         r.Link,
		GUID:         r.GUID,
		Size:         r.Size,
		Seeders:      r.Seeders,
		Leechers:     r.Leechers,
		MinimumRatio: r.MinimumRatio,
		PublishDate:  r.PublishDate,
		FirstSeen:    r.FirstSeen,
		LastSeen:     r.LastSeen,
	}
	cats := make([]string, 0, len(r.Categories))
	for _, c := range r.Categories {
		cats = append(cats, strconv.FormatUint(uint64(c), 10))
	}
	row.Categories = strings.Join(cats, ",")
	if r.MinimumSeedTime != nil {
		secs := int64(*r.MinimumSeedTime / time.Second)
		row.MinimumSeedTime = &secs
	}
	return row
}

func fromRow(row *torrentRow) (*storage.Record, error) {
	r := &storage.Record{
		ID:           row.ID,
		Indexer:      row.Indexer,
		Name:         row.Name,
		Link:         row.Link,
		GUID:         row.GUID,
		Size:         row.Size,
		Seeders:      row.Seeders,
		Leechers:     row.Leechers,
		MinimumRatio: row.MinimumRatio,
		PublishDate:  row.PublishDate,
		FirstSeen:    row.FirstSeen,
		LastSeen:     row.LastSeen,
	}
	if row.Categories != "" {
		for _, raw := range strings.Split(row.Categories, ",") {
			c, err := strconv.ParseUint(raw, 10, 32)
			if err != nil {
				return nil, fmt.Errorf("corrupt categories %q in record %s: %w", row.Categories, row.ID, err)
			}
			r.Categories = append(r.Categories, uint32(c))
		}
	}
	if row.MinimumSeedTime != nil {
		d := time.Duration(*row.MinimumSeedTime) * time.Second
		r.MinimumSeedTime = &d
	}
	return r, nil
}
