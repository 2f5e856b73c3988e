package bolt_test

import (
	"os"
	"time"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/sp0x/torznab-client/storage"
	. "github.com/sp0x/torznab-client/storage/bolt"
	"github.com/sp0x/torznab-client/torznab"
)

var _ = Describe("Bolt storage", func() {
	It("should be able to open a db", func() {
		db, err := GetBoltDB(tempfile())
		Expect(err).ToNot(HaveOccurred())
		Expect(db).ToNot(BeNil())
		Expect(db.Close()).To(Succeed())
	})

	It("should require a path", func() {
		_, err := GetBoltDB("")
		Expect(err).To(HaveOccurred())
	})

	Context("with a database", func() {
		var (
			path  string
			store *BoltStorage
		)

		BeforeEach(func() {
			var err error
			path = tempfile()
			store, err = NewBoltStorage(path)
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

		It("should create and find records by link", func() {
			seeders := uint32(109)
			seedTime := 48 * time.Hour
			rec := &storage.Record{
				ID: "1", Indexer: "rarbg", Name: "Chaos.Walking.2021.2160p", Link: "magnet:?a",
				Size: 6827927817, Categories: []uint32{2045, 100051}, Seeders: &seeders, MinimumSeedTime: &seedTime,
			}
			Expect(store.Create(rec)).To(Succeed())
			Expect(store.Create(rec)).ToNot(Succeed())

			found, err := store.Find("magnet:?a")
			Expect(err).ToNot(HaveOccurred())
			Expect(found.ID).To(Equal("1"))
			Expect(found.Size).To(BeEquivalentTo(6827927817))
			Expect(found.Categories).To(Equal([]uint32{2045, 100051}))
			Expect(*found.Seeders).To(BeEquivalentTo(109))
			Expect(*found.MinimumSeedTime).To(Equal(seedTime))
			Expect(found.Leechers).To(BeNil())
			Expect(store.Size()).To(BeEquivalentTo(1))
		})

		It("should order records by when they were last stored", func() {
			Expect(store.Create(&storage.Record{ID: "1", Name: "a", Link: "magnet:?a"})).To(Succeed())
			Expect(store.Create(&storage.Record{ID: "2", Name: "b", Link: "magnet:?b"})).To(Succeed())
			Expect(store.Create(&storage.Record{ID: "3", Name: "c", Link: "magnet:?c"})).To(Succeed())
			Expect(store.Update(&storage.Record{ID: "1", Name: "a2", Link: "magnet:?a"})).To(Succeed())

			latest, err := store.Latest(2)
			Expect(err).ToNot(HaveOccurred())
			Expect(latest).To(HaveLen(2))
			Expect(latest[0].Name).To(Equal("a2"))
			Expect(latest[1].Name).To(Equal("c"))
			Expect(store.Size()).To(BeEquivalentTo(3))
		})

		It("should not update unknown records", func() {
			Expect(store.Update(&storage.Record{ID: "404", Link: "x"})).To(MatchError(storage.ErrNotFound))
		})

		It("should back a keyed storage", func() {
			keyed := storage.NewKeyedStorage(store)
			isNew, _, err := keyed.Add("rarbg", &torznab.Torrent{Name: "a", Link: "magnet:?a"})
			Expect(err).ToNot(HaveOccurred())
			Expect(isNew).To(BeTrue())
			isNew, isUpdate, err := keyed.Add("rarbg", &torznab.Torrent{Name: "a", Link: "magnet:?a", Size: 2})
			Expect(err).ToNot(HaveOccurred())
			Expect(isNew).To(BeFalse())
			Expect(isUpdate).To(BeTrue())
			Expect(keyed.Count()).To(BeEquivalentTo(1))

			Expect(keyed.Truncate()).To(Succeed())
			Expect(keyed.Count()).To(BeEquivalentTo(0))
			isNew, _, err = keyed.Add("rarbg", &torznab.Torrent{Name: "a", Link: "magnet:?a"})
			Expect(err).ToNot(HaveOccurred())
			Expect(isNew).To(BeTrue())
		})
	})
})
