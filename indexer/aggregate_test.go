package indexer

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	. "github.com/onsi/gomega"

	"github.com/sp0x/torznab-client/indexer/categories"
	"github.com/sp0x/torznab-client/indexer/mocks"
	"github.com/sp0x/torznab-client/torznab"
)

func named(ctrl *gomock.Controller, name string) *mocks.MockIndexer {
	ixr := mocks.NewMockIndexer(ctrl)
	ixr.EXPECT().Name().Return(name).AnyTimes()
	return ixr
}

func resultsOf(indexer string, names ...string) torznab.Results {
	var out torznab.Results
	for _, n := range names {
		out = append(out, torznab.Result{Indexer: indexer, Torrent: &torznab.Torrent{Name: n, Link: "magnet:?" + n}})
	}
	return out
}

func TestAggregate_InterleavesResults(t *testing.T) {
	g := NewGomegaWithT(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	a, b := named(ctrl, "a"), named(ctrl, "b")
	a.EXPECT().Query(gomock.Any(), gomock.Any()).Return(resultsOf("a", "a1", "a2", "a3"), nil)
	b.EXPECT().Query(gomock.Any(), gomock.Any()).Return(resultsOf("b", "b1"), nil)

	ag := NewAggregate(a, b)
	g.Expect(ag.Name()).To(Equal("a,b"))
	results, err := ag.Query(context.Background(), torznab.NewQuery("x", categories.Movies))
	g.Expect(err).ToNot(HaveOccurred())
	var names []string
	for _, r := range results {
		names = append(names, r.Torrent.Name)
	}
	g.Expect(names).To(Equal([]string{"a1", "b1", "a2", "a3"}))
}

func TestAggregate_SkipsFailingIndexers(t *testing.T) {
	g := NewGomegaWithT(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	a, b := named(ctrl, "a"), named(ctrl, "b")
	a.EXPECT().Query(gomock.Any(), gomock.Any()).Return(nil, torznab.ErrAPIDisabled)
	b.EXPECT().Query(gomock.Any(), gomock.Any()).Return(resultsOf("b", "b1", "b2"), nil)

	query := torznab.NewQuery("x")
	query.Limit = 1
	results, err := NewAggregate(a, b).Query(context.Background(), query)
	g.Expect(err).ToNot(HaveOccurred())
	g.Expect(results).To(HaveLen(1))
	g.Expect(results[0].Indexer).To(Equal("b"))
}

func TestAggregate_FailsWhenEveryIndexerFails(t *testing.T) {
	g := NewGomegaWithT(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	a := named(ctrl, "a")
	a.EXPECT().Query(gomock.Any(), gomock.Any()).Return(nil, errors.New("connection refused"))
	_, err := NewAggregate(a).Query(context.Background(), torznab.NewQuery("x"))
	g.Expect(err).To(MatchError(ContainSubstring("connection refused")))

	_, err = NewAggregate().Query(context.Background(), torznab.NewQuery("x"))
	g.Expect(err).To(HaveOccurred())
}

func TestAggregate_CapabilitiesUnion(t *testing.T) {
	g := NewGomegaWithT(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	a, b, c := named(ctrl, "a"), named(ctrl, "b"), named(ctrl, "c")
	a.EXPECT().Capabilities(gomock.Any()).Return(&torznab.Capabilities{Categories: []torznab.CapsCategory{{ID: 2000, Name: "Movies"}}}, nil)
	b.EXPECT().Capabilities(gomock.Any()).Return(&torznab.Capabilities{Categories: []torznab.CapsCategory{{ID: 2000, Name: "Movies"}, {ID: 5000, Name: "TV"}}}, nil)
	c.EXPECT().Capabilities(gomock.Any()).Return(nil, errors.New("down"))

	caps, err := NewAggregate(a, b, c).Capabilities(context.Background())
	g.Expect(err).ToNot(HaveOccurred())
	g.Expect(caps.Categories).To(HaveLen(2))
	g.Expect(caps.HasCategory(5000)).To(BeTrue())
}

func TestAggregate_Check(t *testing.T) {
	g := NewGomegaWithT(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	a, b := named(ctrl, "a"), named(ctrl, "b")
	a.EXPECT().Capabilities(gomock.Any()).Return(&torznab.Capabilities{}, nil)
	b.EXPECT().Capabilities(gomock.Any()).Return(nil, errors.New("down"))
	g.Expect(NewAggregate(a, b).Check(context.Background())).To(Equal([]string{"b"}))
}
