package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/gocolly/colly/v2"
	"github.com/iiviie/gearheads/internal/models"
)

// DefaultBaseURL is the public Nominatim instance
const DefaultBaseURL = "https://nominatim.openstreetmap.org"

// Place is one search candidate as returned by the place-search endpoint.
// Coordinates stay decimal strings until the candidate is picked.
type Place struct {
	DisplayName string `json:"display_name"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
}

// Location parses the candidate into a storable location
func (p Place) Location() (models.Location, error) {
	lat, err := strconv.ParseFloat(p.Lat, 64)
	if err != nil {
		return models.Location{}, fmt.Errorf("parse lat %q: %w", p.Lat, err)
	}
	lng, err := strconv.ParseFloat(p.Lon, 64)
	if err != nil {
		return models.Location{}, fmt.Errorf("parse lon %q: %w", p.Lon, err)
	}
	return models.Location{Lat: lat, Lng: lng, Name: p.DisplayName}, nil
}

// Searcher looks up places for a free-text query
type Searcher interface {
	Search(ctx context.Context, query string) ([]Place, error)
}

// Geocoder queries a Nominatim-compatible search endpoint
type Geocoder struct {
	collector *colly.Collector
	baseURL   string
	language  string
	limit     int
}

// NewGeocoder creates a geocoder for baseURL. limit caps the number of
// candidates requested and returned.
func NewGeocoder(baseURL, language, userAgent string, limit int) (*Geocoder, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse geocoder base url: %w", err)
	}
	if u.Hostname() == "" {
		return nil, fmt.Errorf("geocoder base url %q has no host", baseURL)
	}

	c := colly.NewCollector(
		colly.AllowedDomains(u.Hostname()),
		colly.UserAgent(userAgent),
		colly.AllowURLRevisit(),
	)

	return &Geocoder{
		collector: c,
		baseURL:   strings.TrimRight(baseURL, "/"),
		language:  language,
		limit:     limit,
	}, nil
}

// Search fetches up to limit candidates for query. Cancelling ctx aborts the
// request.
func (g *Geocoder) Search(ctx context.Context, query string) ([]Place, error) {
	// Clone the collector for this specific request
	c := g.collector.Clone()
	c.Context = ctx

	var places []Place
	var decodeErr error

	c.OnRequest(func(r *colly.Request) {
		r.Headers.Set("Accept", "application/json")
		if g.language != "" {
			r.Headers.Set("Accept-Language", g.language)
		}
	})

	c.OnResponse(func(r *colly.Response) {
		if err := json.Unmarshal(r.Body, &places); err != nil {
			decodeErr = fmt.Errorf("decode places: %w", err)
		}
	})

	if err := c.Visit(g.searchURL(query)); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("geocode %q: %w", query, err)
	}
	if decodeErr != nil {
		return nil, decodeErr
	}
	if len(places) > g.limit {
		places = places[:g.limit]
	}
	return places, nil
}

func (g *Geocoder) searchURL(query string) string {
	q := url.Values{}
	q.Set("q", query)
	q.Set("format", "json")
	q.Set("limit", strconv.Itoa(g.limit))
	return g.baseURL + "/search?" + q.Encode()
}
