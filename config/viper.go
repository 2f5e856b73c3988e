package config

import (
	"fmt"
	"sort"
	"time"

	"github.com/spf13/viper"
)

// ViperConfig reads the global viper registry.
type ViperConfig struct{}

func (v *ViperConfig) SetSiteOption(section, key, value string) error {
	viper.Set(fmt.Sprintf("indexer.%s.%s", section, key), value)
	return nil
}

func (v *ViperConfig) Set(key, value interface{}) error {
	viper.Set(fmt.Sprintf("%s", key), value)
	return nil
}

func (v *ViperConfig) GetSiteOption(name, key string) (string, bool, error) {
	indexerMap := viper.GetStringMap(fmt.Sprintf("indexer.%s", name))
	raw, ok := indexerMap[key]
	if !ok {
		return "", false, nil
	}
	value, isString := raw.(string)
	if !isString {
		return "", true, fmt.Errorf("option %s of indexer %s is not a string", key, name)
	}
	return value, true, nil
}

func (v *ViperConfig) GetSite(name string) (map[string]string, error) {
	if !viper.IsSet(fmt.Sprintf("indexer.%s", name)) {
		return nil, fmt.Errorf("indexer %s is not configured", name)
	}
	return viper.GetStringMapString(fmt.Sprintf("indexer.%s", name)), nil
}

// GetSites lists the configured indexer names in order.
func (v *ViperConfig) GetSites() []string {
	var names []string
	for name := range viper.GetStringMap("indexer") {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (v *ViperConfig) GetInt(param string) int {
	return viper.GetInt(param)
}

func (v *ViperConfig) GetString(param string) string {
	return viper.GetString(param)
}

func (v *ViperConfig) GetBytes(param string) []byte {
	return []byte(viper.GetString(param))
}

func (v *ViperConfig) GetBool(param string) bool {
	return viper.GetBool(param)
}

func (v *ViperConfig) GetDuration(param string) time.Duration {
	return viper.GetDuration(param)
}

func (v *ViperConfig) Get(param string) interface{} {
	return viper.Get(param)
}
