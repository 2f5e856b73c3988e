package config

import (
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/mitchellh/go-homedir"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

var appname = "torznab"

// Release name handling modes, see the "names" key.
const (
	NamesOff     = "off"
	NamesParse   = "parse"
	NamesRequire = "require"
)

//go:generate mockgen -destination=mocks/mock_config.go -package=mocks . Config
type Config interface {
	GetSiteOption(name, key string) (string, bool, error)
	GetSite(name string) (map[string]string, error)
	GetSites() []string
	GetInt(key string) int
	GetString(key string) string
	GetBool(key string) bool
	GetBytes(key string) []byte
	GetDuration(key string) time.Duration
	Get(key string) interface{}
	SetSiteOption(section, key, value string) error
	Set(key, value interface{}) error
}

func GetMinLogLevel(c Config) log.Level {
	if c.GetBool("verbose") {
		return log.DebugLevel
	}
	return log.InfoLevel
}

// GetConfigDir returns the directory the config file and the databases live in.
func GetConfigDir() string {
	if configDir := os.Getenv("CONFIG_DIR"); configDir != "" {
		return filepath.FromSlash(configDir)
	}
	home, _ := homedir.Dir()
	return filepath.FromSlash(path.Join(home, "."+appname))
}

// GetDataPath returns the path of a file inside the data directory, creating the directory if needed.
func GetDataPath(file string) string {
	dir := filepath.Join(GetConfigDir(), "db")
	_ = os.MkdirAll(dir, os.ModePerm)
	return filepath.Join(dir, file)
}

// SetDefaults registers the default value of every known key.
func SetDefaults() {
	viper.SetDefault("verbose", false)
	viper.SetDefault("names", NamesOff)
	viper.SetDefault("name_parser", "scene")
	viper.SetDefault("timeout", 30*time.Second)
	viper.SetDefault("storage", "boltdb")
	viper.SetDefault("db_path", "")
	viper.SetDefault("port", 5000)
	viper.SetDefault("cache_ttl", 10*time.Minute)
	viper.SetDefault("watch_interval", 15*time.Minute)
}
