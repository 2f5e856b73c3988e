package categories

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Category is a torznab search category, identified on the wire by its numeric code.
type Category struct {
	ID    uint32
	Name  string
	known bool
}

func (c Category) String() string {
	return fmt.Sprintf("%s[%d]", c.Name, c.ID)
}

// Code returns the wire code of the category.
func (c Category) Code() uint32 {
	return c.ID
}

// Known reports whether the category is part of the standard table.
func (c Category) Known() bool {
	return c.known
}

// Family returns the top level category this one belongs to, e.g. Movies for Movies/HD.
func (c Category) Family() Category {
	switch {
	case c.ID == 0:
		return Reserved
	case c.ID < 1000:
		return Other
	case c.ID < 2000:
		return Console
	case c.ID < 3000:
		return Movies
	case c.ID < 4000:
		return Audio
	case c.ID < 5000:
		return PC
	case c.ID < 6000:
		return TV
	case c.ID < 7000:
		return XXX
	case c.ID < 8000:
		return Books
	}
	return Other
}

// Unknown wraps a code that isn't in the standard table, keeping the code intact.
func Unknown(code uint32) Category {
	return Category{ID: code, Name: "Unknown"}
}

func def(id uint32, name string) Category {
	return Category{ID: id, Name: name, known: true}
}

// Categories from the Torznab spec
// https://torznab.github.io/spec-1.3-draft/external/newznab/api.html#predefined-categories
var (
	Reserved          = def(0, "Reserved")
	Console           = def(1000, "Console")
	ConsoleNDS        = def(1010, "Console/NDS")
	ConsolePSP        = def(1020, "Console/PSP")
	ConsoleWii        = def(1030, "Console/Wii")
	ConsoleXBox       = def(1040, "Console/XBox")
	ConsoleXBox360    = def(1050, "Console/XBox 360")
	ConsoleWiiware    = def(1060, "Console/Wiiware")
	ConsoleXBox360DLC = def(1070, "Console/XBox 360 DLC")
	Movies            = def(2000, "Movies")
	MoviesForeign     = def(2010, "Movies/Foreign")
	MoviesOther       = def(2020, "Movies/Other")
	MoviesSD          = def(2030, "Movies/SD")
	MoviesHD          = def(2040, "Movies/HD")
	MoviesUHD         = def(2045, "Movies/UHD")
	MoviesBluRay      = def(2050, "Movies/BluRay")
	Movies3D          = def(2060, "Movies/3D")
	Audio             = def(3000, "Audio")
	AudioMP3          = def(3010, "Audio/MP3")
	AudioVideo        = def(3020, "Audio/Video")
	AudioAudiobook    = def(3030, "Audio/Audiobook")
	AudioLossless     = def(3040, "Audio/Lossless")
	PC                = def(4000, "PC")
	PC0day            = def(4010, "PC/0day")
	PCISO             = def(4020, "PC/ISO")
	PCMac             = def(4030, "PC/Mac")
	PCMobileOther     = def(4040, "PC/Mobile-Other")
	PCGames           = def(4050, "PC/Games")
	PCMobileIOS       = def(4060, "PC/Mobile-iOS")
	PCMobileAndroid   = def(4070, "PC/Mobile-Android")
	TV                = def(5000, "TV")
	TVForeign         = def(5020, "TV/Foreign")
	TVSD              = def(5030, "TV/SD")
	TVHD              = def(5040, "TV/HD")
	TVUHD             = def(5045, "TV/UHD")
	TVOther           = def(5050, "TV/Other")
	TVSport           = def(5060, "TV/Sport")
	TVAnime           = def(5070, "TV/Anime")
	TVDocumentary     = def(5080, "TV/Documentary")
	XXX               = def(6000, "XXX")
	XXXDVD            = def(6010, "XXX/DVD")
	XXXWMV            = def(6020, "XXX/WMV")
	XXXXviD           = def(6030, "XXX/XviD")
	XXXx264           = def(6040, "XXX/x264")
	XXXPack           = def(6050, "XXX/Pack")
	XXXImageSet       = def(6060, "XXX/ImageSet")
	XXXOther          = def(6070, "XXX/Other")
	Books             = def(7000, "Books")
	BooksMags         = def(7010, "Books/Mags")
	BooksEbook        = def(7020, "Books/EBook")
	BooksComics       = def(7030, "Books/Comics")
	Other             = def(8000, "Other")
	OtherMisc         = def(8010, "Other/Misc")
)

var table = []Category{
	Reserved,
	Console, ConsoleNDS, ConsolePSP, ConsoleWii, ConsoleXBox, ConsoleXBox360, ConsoleWiiware, ConsoleXBox360DLC,
	Movies, MoviesForeign, MoviesOther, MoviesSD, MoviesHD, MoviesUHD, MoviesBluRay, Movies3D,
	Audio, AudioMP3, AudioVideo, AudioAudiobook, AudioLossless,
	PC, PC0day, PCISO, PCMac, PCMobileOther, PCGames, PCMobileIOS, PCMobileAndroid,
	TV, TVForeign, TVSD, TVHD, TVUHD, TVOther, TVSport, TVAnime, TVDocumentary,
	XXX, XXXDVD, XXXWMV, XXXXviD, XXXx264, XXXPack, XXXImageSet, XXXOther,
	Books, BooksMags, BooksEbook, BooksComics,
	Other, OtherMisc,
}

var (
	byCode              = map[uint32]Category{}
	byName              = map[string]Category{}
	standardCategoryIDs []uint32
)

func init() {
	for _, c := range table {
		if _, dup := byCode[c.ID]; dup {
			panic(fmt.Sprintf("duplicate category code %d", c.ID))
		}
		byCode[c.ID] = c
		byName[strings.ToLower(c.Name)] = c
		standardCategoryIDs = append(standardCategoryIDs, c.ID)
	}
}

// FromCode maps a wire code to its category. It never fails: codes outside the
// standard table come back as Unknown(code).
func FromCode(code uint32) Category {
	if c, ok := byCode[code]; ok {
		return c
	}
	return Unknown(code)
}

// Parse resolves a category from either its numeric code or its name (case insensitive), e.g. "2040" or "movies/hd".
func Parse(s string) (Category, error) {
	s = strings.TrimSpace(s)
	if code, err := strconv.ParseUint(s, 10, 32); err == nil {
		return FromCode(uint32(code)), nil
	}
	if c, ok := byName[strings.ToLower(s)]; ok {
		return c, nil
	}
	return Category{}, fmt.Errorf("unknown category %q", s)
}

// All returns the standard categories ordered by code.
func All() []Category {
	out := make([]Category, len(table))
	copy(out, table)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Codes returns the codes of every standard category.
func Codes() []uint32 {
	out := make([]uint32, len(standardCategoryIDs))
	copy(out, standardCategoryIDs)
	return out
}

// Subcategories lists the standard categories of a family, excluding the family itself.
func Subcategories(family Category) []Category {
	var subs []Category
	for _, c := range table {
		if c.ID != family.ID && c.Family().ID == family.ID && family.ID != 0 {
			subs = append(subs, c)
		}
	}
	return subs
}
