// Package search defines the search identity: a (position, optional city)
// query, its canonical identifier and its listing URL.
package search

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

const baseURL = "https://it.pracuj.pl/praca"

// ErrEmptyPosition is returned when a search is created without a position.
var ErrEmptyPosition = errors.New("search: position is required")

// Search is a (position, optional city) query against the job board.
// An empty City means "all locations".
type Search struct {
	Position string
	City     string
}

// New validates and constructs a Search. Position must be non-blank;
// surrounding whitespace is trimmed from both fields.
func New(position, city string) (Search, error) {
	position = strings.TrimSpace(position)
	if position == "" {
		return Search{}, ErrEmptyPosition
	}
	return Search{Position: position, City: strings.TrimSpace(city)}, nil
}

// ID returns the canonical identifier: lowercase(position), with
// ":"+lowercase(city) appended when a city is set. Two searches that differ
// only in case collapse to the same identifier.
func (s Search) ID() string {
	if s.City != "" {
		return strings.ToLower(s.Position + ":" + s.City)
	}
	return strings.ToLower(s.Position)
}

// URL returns the listing URL for this search. Recomputed on demand, never
// persisted.
func (s Search) URL() string {
	position := url.PathEscape(s.Position)
	if s.City != "" {
		return fmt.Sprintf("%s/%s;kw/%s;wp?rd=30", baseURL, position, url.PathEscape(s.City))
	}
	return fmt.Sprintf("%s/%s;kw", baseURL, position)
}

// OfferKey returns the global dedup key for an offer seen under this search.
func (s Search) OfferKey(groupID string) string {
	return s.ID() + ":" + groupID
}

// ParseList parses "position" / "position:city" specs, as found in the
// DEFAULT_SEARCHES configuration entry. A blank position fails the whole
// list: malformed configuration is a startup error, not something to skip.
func ParseList(specs []string) ([]Search, error) {
	searches := make([]Search, 0, len(specs))
	for _, spec := range specs {
		position, city, _ := strings.Cut(spec, ":")
		s, err := New(position, city)
		if err != nil {
			return nil, fmt.Errorf("search spec %q: %w", spec, err)
		}
		searches = append(searches, s)
	}
	return searches, nil
}

func (s Search) String() string {
	if s.City != "" {
		return fmt.Sprintf("%s in %s", s.Position, s.City)
	}
	return s.Position
}
