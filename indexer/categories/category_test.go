package categories

import (
	"math"
	"testing"

	. "github.com/onsi/gomega"
)

func TestFromCode_RoundTripsStandardCodes(t *testing.T) {
	g := NewGomegaWithT(t)
	g.Expect(Codes()).To(HaveLen(53))
	for _, code := range Codes() {
		cat := FromCode(code)
		g.Expect(cat.Known()).To(BeTrue(), "code %d", code)
		g.Expect(cat.Code()).To(Equal(code))
	}
}

func TestFromCode_UnknownKeepsCode(t *testing.T) {
	g := NewGomegaWithT(t)
	for _, code := range []uint32{1, 999, 2041, 100044, math.MaxUint32} {
		cat := FromCode(code)
		g.Expect(cat.Known()).To(BeFalse())
		g.Expect(cat.Code()).To(Equal(code))
		g.Expect(cat.Name).To(Equal("Unknown"))
	}
}

func TestCodesAreUnique(t *testing.T) {
	g := NewGomegaWithT(t)
	seen := map[uint32]bool{}
	for _, c := range All() {
		g.Expect(seen[c.ID]).To(BeFalse(), "duplicate %v", c)
		seen[c.ID] = true
	}
}

func TestCategory_Family(t *testing.T) {
	tests := []struct {
		cat  Category
		want Category
	}{
		{MoviesUHD, Movies},
		{MoviesHD, Movies},
		{TVSD, TV},
		{Movies, Movies},
		{AudioLossless, Audio},
		{PCGames, PC},
		{ConsoleWii, Console},
		{XXXPack, XXX},
		{BooksComics, Books},
		{OtherMisc, Other},
		{Reserved, Reserved},
		{FromCode(100044), Other},
	}
	for _, tt := range tests {
		t.Run(tt.cat.String(), func(t *testing.T) {
			g := NewGomegaWithT(t)
			g.Expect(tt.cat.Family()).To(Equal(tt.want))
		})
	}
}

func TestParse(t *testing.T) {
	g := NewGomegaWithT(t)
	c, err := Parse("2040")
	g.Expect(err).ToNot(HaveOccurred())
	g.Expect(c).To(Equal(MoviesHD))

	c, err = Parse("movies/uhd")
	g.Expect(err).ToNot(HaveOccurred())
	g.Expect(c).To(Equal(MoviesUHD))

	c, err = Parse("123456")
	g.Expect(err).ToNot(HaveOccurred())
	g.Expect(c.Known()).To(BeFalse())

	_, err = Parse("not-a-category")
	g.Expect(err).To(HaveOccurred())
}

func TestSubcategories(t *testing.T) {
	g := NewGomegaWithT(t)
	g.Expect(Subcategories(Books)).To(Equal([]Category{BooksMags, BooksEbook, BooksComics}))
	g.Expect(Subcategories(Reserved)).To(BeEmpty())
	g.Expect(Subcategories(Movies)).To(ContainElement(MoviesUHD))
}

func TestCategory_String(t *testing.T) {
	g := NewGomegaWithT(t)
	g.Expect(MoviesHD.String()).To(Equal("Movies/HD[2040]"))
}
