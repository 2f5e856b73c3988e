package torznab

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/sp0x/torznab-client/indexer/categories"
)

// Search functions of the torznab api.
const (
	TypeSearch      = "search"
	TypeTVSearch    = "tvsearch"
	TypeMovieSearch = "movie"
	TypeMusicSearch = "music"
	TypeCaps        = "caps"
)

// Query represents a torznab query
type Query struct {
	Type                         string
	Q, Series, Ep, Season, Movie string
	Year                         string
	Limit, Offset                int
	Extended                     bool
	Categories                   []uint32
	APIKey                       string

	// identifier types
	TVDBID   string
	TVRageID string
	IMDBID   string
	TVMazeID string
}

// NewQuery creates a plain search query in the given categories.
func NewQuery(q string, cats ...categories.Category) *Query {
	query := &Query{Type: TypeSearch, Q: q}
	for _, c := range cats {
		query.AddCategory(c)
	}
	return query
}

// Episode returns either the season + episode in the format S00E00 or just the season as S00 if
// no episode has been specified.
func (query Query) Episode() (s string) {
	if query.Season != "" {
		s += fmt.Sprintf("S%02s", query.Season)
	}
	if query.Ep != "" {
		s += fmt.Sprintf("E%02s", query.Ep)
	}
	return s
}

// AddCategory adds a category to the query
func (query *Query) AddCategory(cat categories.Category) {
	query.Categories = append(query.Categories, cat.Code())
}

// Keywords returns the query formatted as search keywords
func (query Query) Keywords() string {
	var tokens []string
	if query.Q != "" {
		tokens = append(tokens, query.Q)
	}
	if query.Series != "" {
		tokens = append(tokens, query.Series)
	}
	if query.Movie != "" {
		tokens = append(tokens, query.Movie)
	}
	if query.Year != "" {
		tokens = append(tokens, query.Year)
	}
	if query.Season != "" || query.Ep != "" {
		tokens = append(tokens, query.Episode())
	}
	return strings.Join(tokens, " ")
}

// Values returns the query as url parameters.
func (query Query) Values() url.Values {
	v := url.Values{}

	if query.Type != "" {
		v.Set("t", query.Type)
	} else {
		v.Set("t", TypeSearch)
	}
	if len(query.Categories) > 0 {
		cats := make([]string, 0, len(query.Categories))
		for _, cat := range query.Categories {
			cats = append(cats, strconv.FormatUint(uint64(cat), 10))
		}
		v.Set("cat", strings.Join(cats, ","))
	}
	if query.APIKey != "" {
		v.Set("apikey", query.APIKey)
	}
	if query.Q != "" {
		v.Set("q", query.Q)
	}
	if query.Ep != "" {
		v.Set("ep", query.Ep)
	}
	if query.Season != "" {
		v.Set("season", query.Season)
	}
	if query.Movie != "" {
		v.Set("movie", query.Movie)
	}
	if query.Year != "" {
		v.Set("year", query.Year)
	}
	if query.Series != "" {
		v.Set("series", query.Series)
	}
	if query.Offset != 0 {
		v.Set("offset", strconv.Itoa(query.Offset))
	}
	if query.Limit != 0 {
		v.Set("limit", strconv.Itoa(query.Limit))
	}
	if query.Extended {
		v.Set("extended", "1")
	}
	if query.TVDBID != "" {
		v.Set("tvdbid", query.TVDBID)
	}
	if query.TVRageID != "" {
		v.Set("rid", query.TVRageID)
	}
	if query.TVMazeID != "" {
		v.Set("tvmazeid", query.TVMazeID)
	}
	if query.IMDBID != "" {
		v.Set("imdbid", query.IMDBID)
	}
	return v
}

// Encode returns the query as a url query string
func (query Query) Encode() string {
	return query.Values().Encode()
}

// String is the encoded query with the api key left out, safe for logs and cache keys.
func (query Query) String() string {
	query.APIKey = ""
	return query.Encode()
}

func single(k string, vals []string) (string, error) {
	if len(vals) > 1 {
		return "", fmt.Errorf("multiple %s parameters not allowed", k)
	}
	return vals[0], nil
}

// ParseQuery takes the query string parameters for a torznab query and parses them
func ParseQuery(v url.Values) (*Query, error) {
	query := &Query{}

	for k, vals := range v {
		if len(vals) == 0 {
			continue
		}
		var err error
		switch k {
		case "t":
			if len(vals) > 1 {
				return query, errors.New("multiple t parameters not allowed")
			}
			query.Type = vals[0]
		case "q":
			query.Q = strings.Join(vals, " ")
		case "series":
			query.Series = strings.Join(vals, " ")
		case "movie":
			query.Movie = strings.Join(vals, " ")
		case "year":
			query.Year, err = single(k, vals)
		case "ep":
			query.Ep, err = single(k, vals)
		case "season":
			query.Season, err = single(k, vals)
		case "apikey":
			query.APIKey, err = single(k, vals)
		case "limit", "offset":
			var raw string
			if raw, err = single(k, vals); err != nil {
				break
			}
			var n int
			if n, err = strconv.Atoi(raw); err != nil {
				break
			}
			if k == "limit" {
				query.Limit = n
			} else {
				query.Offset = n
			}
		case "extended":
			var raw string
			if raw, err = single(k, vals); err == nil {
				query.Extended, err = strconv.ParseBool(raw)
			}
		case "cat":
			query.Categories = nil
			for _, val := range vals {
				codes, cErr := splitCodes(val, ",")
				if cErr != nil {
					return nil, fmt.Errorf("unable to parse cats %q: %w", val, cErr)
				}
				query.Categories = append(query.Categories, codes...)
			}
		case "format":
		case "tvdbid":
			query.TVDBID, err = single(k, vals)
		case "rid":
			query.TVRageID, err = single(k, vals)
		case "tvmazeid":
			query.TVMazeID, err = single(k, vals)
		case "imdbid":
			query.IMDBID, err = single(k, vals)
		default:
			log.Warningf("Unknown torznab request key %q", k)
		}
		if err != nil {
			return query, err
		}
	}

	return query, nil
}

func splitCodes(s, delim string) ([]uint32, error) {
	var codes []uint32
	for _, v := range strings.Split(s, delim) {
		if v == "" {
			continue
		}
		code, err := strconv.ParseUint(strings.TrimSpace(v), 10, 32)
		if err != nil {
			return codes, err
		}
		codes = append(codes, uint32(code))
	}
	return codes, nil
}
