package indexer

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	. "github.com/onsi/gomega"

	"github.com/sp0x/torznab-client/storage"
	"github.com/sp0x/torznab-client/torznab"
)

type memoryStore struct {
	seen map[string]uint64
}

func (m *memoryStore) Add(_ string, t *torznab.Torrent) (bool, bool, error) {
	size, ok := m.seen[t.Link]
	m.seen[t.Link] = t.Size
	return !ok, ok && size != t.Size, nil
}

func (m *memoryStore) Latest(int) ([]*storage.Record, error) { return nil, nil }
func (m *memoryStore) Count() (int64, error)                 { return int64(len(m.seen)), nil }
func (m *memoryStore) Close() error                          { return nil }

func TestPoll_ReportsNewUpdatedAndRejected(t *testing.T) {
	g := NewGomegaWithT(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ixr := named(ctrl, "rarbg")
	first := resultsOf("rarbg", "a", "b")
	second := append(resultsOf("rarbg", "a"),
		torznab.Result{Indexer: "rarbg", Torrent: &torznab.Torrent{Name: "b", Link: "magnet:?b", Size: 10}},
		torznab.Result{Indexer: "rarbg", Err: torznab.ErrMissingLink},
	)
	gomock.InOrder(
		ixr.EXPECT().Query(gomock.Any(), gomock.Any()).Return(first, nil),
		ixr.EXPECT().Query(gomock.Any(), gomock.Any()).Return(second, nil),
	)
	store := &memoryStore{seen: map[string]uint64{}}
	ctx := context.Background()

	updates, err := Poll(ctx, ixr, torznab.NewQuery(""), store)
	g.Expect(err).ToNot(HaveOccurred())
	g.Expect(updates).To(HaveLen(2))
	g.Expect(updates[0].IsNew).To(BeTrue())

	updates, err = Poll(ctx, ixr, torznab.NewQuery(""), store)
	g.Expect(err).ToNot(HaveOccurred())
	g.Expect(updates).To(HaveLen(2))
	g.Expect(updates[0].IsUpdate).To(BeTrue())
	g.Expect(updates[0].Torrent.Name).To(Equal("b"))
	g.Expect(updates[1].Err).To(MatchError(torznab.ErrMissingLink))
}

func TestWatch_StopsWithContext(t *testing.T) {
	g := NewGomegaWithT(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ixr := named(ctrl, "rarbg")
	ixr.EXPECT().Query(gomock.Any(), gomock.Any()).Return(resultsOf("rarbg", "a"), nil).AnyTimes()
	ctx, cancel := context.WithCancel(context.Background())
	updates, err := Watch(ctx, ixr, torznab.NewQuery(""), time.Millisecond, &memoryStore{seen: map[string]uint64{}})
	g.Expect(err).ToNot(HaveOccurred())

	var u Update
	g.Eventually(updates).Should(Receive(&u))
	g.Expect(u.IsNew).To(BeTrue())
	cancel()
	g.Eventually(updates).Should(BeClosed())
}

func TestWatch_RejectsNonPositiveIntervals(t *testing.T) {
	g := NewGomegaWithT(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ixr := named(ctrl, "rarbg")
	for _, interval := range []time.Duration{0, -time.Second} {
		updates, err := Watch(context.Background(), ixr, torznab.NewQuery("x"), interval, &memoryStore{seen: map[string]uint64{}})
		g.Expect(err).To(HaveOccurred())
		g.Expect(updates).To(BeNil())
	}
}
