package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/golang/mock/gomock"
	. "github.com/onsi/gomega"

	"github.com/sp0x/torznab-client/config/mocks"
	"github.com/sp0x/torznab-client/indexer/categories"
	"github.com/sp0x/torznab-client/torznab"
)

func TestBuildQuery(t *testing.T) {
	g := NewGomegaWithT(t)
	query, err := buildQuery("chaos walking", nil, []categories.Category{categories.Movies})
	g.Expect(err).ToNot(HaveOccurred())
	g.Expect(query.Q).To(Equal("chaos walking"))
	g.Expect(query.Categories).To(Equal([]uint32{2000}))

	query, err = buildQuery("chaos walking", []string{"movies/uhd", "2040"}, []categories.Category{categories.Movies})
	g.Expect(err).ToNot(HaveOccurred())
	g.Expect(query.Categories).To(Equal([]uint32{2045, 2040}))

	_, err = buildQuery("", []string{"films"}, nil)
	g.Expect(err).To(HaveOccurred())
}

func TestPrintResults(t *testing.T) {
	g := NewGomegaWithT(t)
	seeders, leechers := uint32(1029), uint32(255)
	results := torznab.Results{
		{Indexer: "rarbg", Torrent: &torznab.Torrent{
			Name: "Chaos.Walking.2021.1080p", Size: 2228167421, Categories: []uint32{2040, 100044},
			Link: "magnet:?a", Seeders: &seeders, Leechers: &leechers,
		}},
		{Indexer: "rarbg", Torrent: &torznab.Torrent{Name: "Unknown.Swarm", Size: 10, Link: "magnet:?b"}},
		{Indexer: "rarbg", Err: torznab.ErrMissingSize},
	}
	var out bytes.Buffer
	g.Expect(printResults(&out, results)).To(Succeed())
	g.Expect(out.String()).To(ContainSubstring("Chaos.Walking.2021.1080p"))
	g.Expect(out.String()).To(ContainSubstring("2.2 GB"))
	g.Expect(out.String()).To(ContainSubstring("1,029"))
	g.Expect(out.String()).To(ContainSubstring("Movies/HD,100044"))
	g.Expect(out.String()).To(ContainSubstring("2 of 3 parsed, 1 rejected"))
}

func TestListCategories(t *testing.T) {
	g := NewGomegaWithT(t)
	var out bytes.Buffer
	g.Expect(listCategories(&out, "books/ebook")).To(Succeed())
	g.Expect(out.String()).To(Equal("7000 Books\n7010 Books/Mags\n7020 Books/EBook\n7030 Books/Comics\n"))

	out.Reset()
	g.Expect(listCategories(&out, "")).To(Succeed())
	g.Expect(bytes.Count(out.Bytes(), []byte("\n"))).To(Equal(53))

	g.Expect(listCategories(&out, "films")).ToNot(Succeed())
}

func TestPrintCapabilities(t *testing.T) {
	g := NewGomegaWithT(t)
	var out bytes.Buffer
	g.Expect(printCapabilities(&out, torznab.DefaultCapabilities("local"))).To(Succeed())
	g.Expect(out.String()).To(ContainSubstring("local"))
	g.Expect(out.String()).To(ContainSubstring("2045"))
}

func TestNewStorage(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	dir, err := os.MkdirTemp("", "torznab-cmd")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)

	for _, kind := range []string{"boltdb", "sqlite"} {
		t.Run(kind, func(t *testing.T) {
			g := NewGomegaWithT(t)
			cfg := mocks.NewMockConfig(ctrl)
			cfg.EXPECT().GetString("storage").Return(kind).AnyTimes()
			cfg.EXPECT().GetString("db_path").Return(filepath.Join(dir, kind)).AnyTimes()

			store, err := newStorage(cfg)
			g.Expect(err).ToNot(HaveOccurred())
			defer store.Close()
			isNew, _, err := store.Add("rarbg", &torznab.Torrent{Name: "a", Link: "magnet:?a", Size: 1})
			g.Expect(err).ToNot(HaveOccurred())
			g.Expect(isNew).To(BeTrue())

			var out bytes.Buffer
			g.Expect(listLatest(&out, store, 10)).To(Succeed())
			g.Expect(out.String()).To(ContainSubstring("1 of 1 stored torrents"))
		})
	}

	g := NewGomegaWithT(t)
	cfg := mocks.NewMockConfig(ctrl)
	cfg.EXPECT().GetString("storage").Return("firebase")
	_, err = newStorage(cfg)
	g.Expect(err).To(MatchError(ContainSubstring("unknown storage")))
}
