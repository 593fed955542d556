// Package source implements the offer source: fetching the job board's
// listing page for a search and decoding the embedded offer payload.
package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"

	"jobwatch/monitor-service/internal/model"
	"jobwatch/monitor-service/internal/search"
)

const httpTimeout = 30 * time.Second

// Fetcher yields the current grouped offers for a search.
type Fetcher interface {
	Fetch(ctx context.Context, s search.Search) ([]model.GroupedOffer, error)
}

// PracujFetcher fetches a pracuj.pl listing page and extracts the offer list
// from the __NEXT_DATA__ script tag the site embeds for hydration.
type PracujFetcher struct {
	client *http.Client
}

// NewPracujFetcher constructs a fetcher with a shared HTTP client.
func NewPracujFetcher() *PracujFetcher {
	return &PracujFetcher{
		client: &http.Client{Timeout: httpTimeout},
	}
}

// nextData mirrors the slice of the __NEXT_DATA__ payload we care about.
type nextData struct {
	Props struct {
		PageProps struct {
			Data struct {
				JobOffers struct {
					GroupedOffers []model.GroupedOffer `json:"groupedOffers"`
				} `json:"jobOffers"`
			} `json:"data"`
		} `json:"pageProps"`
	} `json:"props"`
}

// Fetch retrieves the listing page for the search and returns its grouped
// offers in page order. A missing payload or a non-2xx status is an error;
// the caller decides whether that empties the cycle for this search.
func (f *PracujFetcher) Fetch(ctx context.Context, s search.Search) ([]model.GroupedOffer, error) {
	return f.fetchURL(ctx, s.URL())
}

func (f *PracujFetcher) fetchURL(ctx context.Context, pageURL string) ([]model.GroupedOffer, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Language", "pl-PL,pl;q=0.9,en-US;q=0.8,en;q=0.7")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http GET: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("listing page returned %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	raw := doc.Find("script#__NEXT_DATA__").Text()
	if raw == "" {
		return nil, fmt.Errorf("no __NEXT_DATA__ payload on page %s", pageURL)
	}

	var payload nextData
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, fmt.Errorf("decode __NEXT_DATA__: %w", err)
	}

	return payload.Props.PageProps.Data.JobOffers.GroupedOffers, nil
}
