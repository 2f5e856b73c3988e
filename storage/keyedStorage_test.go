package storage

import (
	"sort"
	"time"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/sp0x/torznab-client/torznab"
)

type memoryBacking struct {
	records map[string]*Record
	closed  bool
}

func (m *memoryBacking) Find(link string) (*Record, error) {
	r, ok := m.records[link]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *r
	return &copied, nil
}

func (m *memoryBacking) Create(r *Record) error {
	m.records[r.Link] = r
	return nil
}

func (m *memoryBacking) Update(r *Record) error {
	m.records[r.Link] = r
	return nil
}

func (m *memoryBacking) Latest(n int) ([]*Record, error) {
	var out []*Record
	for _, r := range m.records {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LastSeen.After(out[j].LastSeen) })
	if len(out) > n {
		out = out[:n]
	}
	return out, nil
}

func (m *memoryBacking) Size() (int64, error) {
	return int64(len(m.records)), nil
}

func (m *memoryBacking) Close() error {
	m.closed = true
	return nil
}

func count(v uint32) *uint32 {
	return &v
}

var _ = Describe("Keyed storage", func() {
	var (
		backing *memoryBacking
		store   *KeyedStorage
		clock   time.Time
	)

	BeforeEach(func() {
		backing = &memoryBacking{records: map[string]*Record{}}
		store = NewKeyedStorage(backing)
		clock = time.Date(2021, 4, 3, 9, 0, 0, 0, time.UTC)
		store.now = func() time.Time {
			clock = clock.Add(time.Minute)
			return clock
		}
	})

	It("should report unseen torrents as new", func() {
		isNew, isUpdate, err := store.Add("rarbg", &torznab.Torrent{Name: "a", Link: "magnet:?a", Seeders: count(1)})
		Expect(err).ToNot(HaveOccurred())
		Expect(isNew).To(BeTrue())
		Expect(isUpdate).To(BeFalse())
		Expect(backing.records["magnet:?a"].ID).ToNot(BeEmpty())
		Expect(backing.records["magnet:?a"].Indexer).To(Equal("rarbg"))
	})

	It("should report changed swarm counts as updates", func() {
		_, _, _ = store.Add("rarbg", &torznab.Torrent{Name: "a", Link: "magnet:?a", Seeders: count(1)})
		first := backing.records["magnet:?a"]

		isNew, isUpdate, err := store.Add("rarbg", &torznab.Torrent{Name: "a", Link: "magnet:?a", Seeders: count(1)})
		Expect(err).ToNot(HaveOccurred())
		Expect(isNew).To(BeFalse())
		Expect(isUpdate).To(BeFalse())

		isNew, isUpdate, err = store.Add("rarbg", &torznab.Torrent{Name: "a", Link: "magnet:?a", Seeders: count(7)})
		Expect(err).ToNot(HaveOccurred())
		Expect(isNew).To(BeFalse())
		Expect(isUpdate).To(BeTrue())

		updated := backing.records["magnet:?a"]
		Expect(updated.ID).To(Equal(first.ID))
		Expect(updated.FirstSeen).To(Equal(first.FirstSeen))
		Expect(updated.LastSeen.After(first.LastSeen)).To(BeTrue())
		Expect(*updated.Seeders).To(BeEquivalentTo(7))
	})

	It("should reject torrents without a link", func() {
		_, _, err := store.Add("rarbg", &torznab.Torrent{Name: "a"})
		Expect(err).To(HaveOccurred())
		_, _, err = store.Add("rarbg", nil)
		Expect(err).To(HaveOccurred())
	})

	It("should list the latest records", func() {
		_, _, _ = store.Add("rarbg", &torznab.Torrent{Name: "a", Link: "magnet:?a"})
		_, _, _ = store.Add("rarbg", &torznab.Torrent{Name: "b", Link: "magnet:?b"})
		latest, err := store.Latest(1)
		Expect(err).ToNot(HaveOccurred())
		Expect(latest).To(HaveLen(1))
		Expect(latest[0].Name).To(Equal("b"))
		Expect(store.Count()).To(BeEquivalentTo(2))
		Expect(store.Close()).To(Succeed())
		Expect(backing.closed).To(BeTrue())
	})

	It("should refuse to truncate backings that don't support it", func() {
		Expect(store.Truncate()).ToNot(Succeed())
	})
})

var _ = Describe("Record", func() {
	It("should round trip torrents", func() {
		ratio := 1.0
		t := &torznab.Torrent{Name: "a", Size: 10, Categories: []uint32{2040}, Link: "l", Seeders: count(3), Leechers: count(1), MinimumRatio: &ratio}
		Expect(NewRecord("rarbg", t).Torrent()).To(Equal(t))
	})

	It("should compare swarm counts by value", func() {
		a := &Record{Seeders: count(3)}
		Expect(a.Changed(&Record{Seeders: count(3)})).To(BeFalse())
		Expect(a.Changed(&Record{})).To(BeTrue())
		Expect(a.Changed(&Record{Seeders: count(3), Leechers: count(0)})).To(BeTrue())
	})
})
