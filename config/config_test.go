package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/mitchellh/go-homedir"
	. "github.com/onsi/gomega"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/sp0x/torznab-client/config/mocks"
)

func TestGetConfigDir(t *testing.T) {
	g := NewGomegaWithT(t)
	home, _ := homedir.Dir()
	old, had := os.LookupEnv("CONFIG_DIR")
	_ = os.Unsetenv("CONFIG_DIR")
	defer func() {
		if had {
			_ = os.Setenv("CONFIG_DIR", old)
		}
	}()
	g.Expect(GetConfigDir()).To(Equal(filepath.Join(home, ".torznab")))

	_ = os.Setenv("CONFIG_DIR", "/tmp/torznab-test")
	g.Expect(GetConfigDir()).To(Equal(filepath.FromSlash("/tmp/torznab-test")))
	_ = os.Unsetenv("CONFIG_DIR")
}

func TestGetMinLogLevel(t *testing.T) {
	g := NewGomegaWithT(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cfg := mocks.NewMockConfig(ctrl)
	cfg.EXPECT().GetBool("verbose").Return(true)
	g.Expect(GetMinLogLevel(cfg)).To(Equal(log.DebugLevel))

	cfg.EXPECT().GetBool("verbose").Return(false)
	g.Expect(GetMinLogLevel(cfg)).To(Equal(log.InfoLevel))
}

func TestViperConfig_Sites(t *testing.T) {
	g := NewGomegaWithT(t)
	viper.Reset()
	defer viper.Reset()
	cfg := &ViperConfig{}

	_ = cfg.SetSiteOption("rarbg", "url", "http://localhost:9117/api/v2.0/indexers/rarbg/results/torznab/api")
	_ = cfg.SetSiteOption("rarbg", "apikey", "k")
	_ = cfg.SetSiteOption("1337x", "url", "http://localhost:9117/1337x")

	g.Expect(cfg.GetSites()).To(Equal([]string{"1337x", "rarbg"}))
	key, ok, err := cfg.GetSiteOption("rarbg", "apikey")
	g.Expect(err).ToNot(HaveOccurred())
	g.Expect(ok).To(BeTrue())
	g.Expect(key).To(Equal("k"))

	_, ok, err = cfg.GetSiteOption("1337x", "apikey")
	g.Expect(err).ToNot(HaveOccurred())
	g.Expect(ok).To(BeFalse())

	site, err := cfg.GetSite("rarbg")
	g.Expect(err).ToNot(HaveOccurred())
	g.Expect(site).To(HaveKeyWithValue("apikey", "k"))

	_, err = cfg.GetSite("missing")
	g.Expect(err).To(HaveOccurred())
}

func TestSetDefaults(t *testing.T) {
	g := NewGomegaWithT(t)
	viper.Reset()
	defer viper.Reset()
	SetDefaults()
	cfg := &ViperConfig{}
	g.Expect(cfg.GetString("names")).To(Equal(NamesOff))
	g.Expect(cfg.GetString("storage")).To(Equal("boltdb"))
	g.Expect(cfg.GetInt("port")).To(Equal(5000))
	g.Expect(cfg.GetDuration("watch_interval")).To(Equal(15 * time.Minute))

	_ = cfg.Set("names", NamesRequire)
	g.Expect(cfg.GetString("names")).To(Equal(NamesRequire))
}
