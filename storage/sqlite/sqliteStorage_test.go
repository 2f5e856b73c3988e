package sqlite

import (
	"os"
	"time"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/sp0x/torznab-client/storage"
)

var _ = Describe("Sqlite storage", func() {
	var (
		path  string
		store *DBStorage
	)

	BeforeEach(func() {
		var err error
		path = tempfile()
		store, err = NewDBStorage(path)
		Expect(err).ToNot(HaveOccurred())
	})

	AfterEach(func() {
		_ = store.Close()
		_ = os.Remove(path)
	})

	It("should not find unknown links", func() {
		_, err := store.Find("magnet:?missing")
		Expect(err).To(MatchError(storage.ErrNotFound))
	})

	It("should create, update and find records", func() {
		seeders := uint32(753)
		seedTime := 36 * time.Hour
		seen := time.Date(2021, 4, 3, 9, 0, 0, 0, time.UTC)
		rec := &storage.Record{
			ID: "1", Indexer: "rarbg", Name: "Chaos.Walking.2021.1080p.WEB-DL.DD5.1.H264-FGT", Link: "magnet:?a",
			Size: 3994659600, Categories: []uint32{2040, 100044}, Seeders: &seeders, MinimumSeedTime: &seedTime,
			FirstSeen: seen, LastSeen: seen,
		}
		Expect(store.Create(rec)).To(Succeed())

		found, err := store.Find("magnet:?a")
		Expect(err).ToNot(HaveOccurred())
		Expect(found.Categories).To(Equal([]uint32{2040, 100044}))
		Expect(*found.Seeders).To(BeEquivalentTo(753))
		Expect(found.Leechers).To(BeNil())
		Expect(*found.MinimumSeedTime).To(Equal(seedTime))

		rec.Name = "renamed"
		rec.LastSeen = seen.Add(time.Hour)
		Expect(store.Update(rec)).To(Succeed())
		found, err = store.Find("magnet:?a")
		Expect(err).ToNot(HaveOccurred())
		Expect(found.Name).To(Equal("renamed"))
		Expect(store.Size()).To(BeEquivalentTo(1))
	})

	It("should list the most recently seen records first", func() {
		seen := time.Date(2021, 4, 3, 9, 0, 0, 0, time.UTC)
		Expect(store.Create(&storage.Record{ID: "1", Name: "old", Link: "a", LastSeen: seen})).To(Succeed())
		Expect(store.Create(&storage.Record{ID: "2", Name: "new", Link: "b", LastSeen: seen.Add(time.Minute)})).To(Succeed())
		latest, err := store.Latest(1)
		Expect(err).ToNot(HaveOccurred())
		Expect(latest).To(HaveLen(1))
		Expect(latest[0].Name).To(Equal("new"))

		Expect(store.Truncate()).To(Succeed())
		Expect(store.Size()).To(BeEquivalentTo(0))
	})
})
