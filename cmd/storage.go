package main

import (
	"fmt"

	"github.com/sp0x/torznab-client/config"
	"github.com/sp0x/torznab-client/storage"
	"github.com/sp0x/torznab-client/storage/bolt"
	"github.com/sp0x/torznab-client/storage/sqlite"
)

// newStorage opens the storage selected by the "storage" key.
func newStorage(cfg config.Config) (*storage.KeyedStorage, error) {
	var backing storage.ItemStorageBacking
	var err error
	switch kind := cfg.GetString("storage"); kind {
	case "boltdb", "":
		backing, err = bolt.NewBoltStorage(dataPath(cfg, "torznab.db"))
	case "sqlite":
		backing, err = sqlite.NewDBStorage(dataPath(cfg, "torznab.sqlite"))
	default:
		return nil, fmt.Errorf("unknown storage %q, use boltdb or sqlite", kind)
	}
	if err != nil {
		return nil, err
	}
	return storage.NewKeyedStorage(backing), nil
}

func dataPath(cfg config.Config, file string) string {
	if p := cfg.GetString("db_path"); p != "" {
		return p
	}
	return config.GetDataPath(file)
}
