// Package movie defines the normalized movie shapes shared by the query
// service, the favorites store and the CLI.
package movie

import (
	"maps"
	"slices"
)

// Missing is the value substituted for any known text field the upstream
// API leaves empty or marks as unavailable.
const Missing = "N/A"

// Type filters accepted by the upstream search endpoint.
const (
	TypeAny     = ""
	TypeMovie   = "movie"
	TypeSeries  = "series"
	TypeEpisode = "episode"
)

// ValidType reports whether t is an accepted search type filter.
func ValidType(t string) bool {
	switch t {
	case TypeAny, TypeMovie, TypeSeries, TypeEpisode:
		return true
	}
	return false
}

// Record is a raw upstream object as decoded from JSON.
type Record map[string]any

// Summary is a search hit. Not every field is filled by the upstream API.
type Summary struct {
	ID     string   `json:"imdbID"`
	Title  string   `json:"Title"`
	Year   string   `json:"Year"`
	Poster *string  `json:"Poster"` // nil when the upstream has no poster
	Type   string   `json:"Type"`
	Rating *float64 `json:"Rating"` // imdbRating, nil when unrated

	// Extra holds upstream fields the normalizer does not know about.
	Extra map[string]any `json:"Extra,omitempty"`
}

// ExternalRating is a third-party score such as Rotten Tomatoes.
type ExternalRating struct {
	Source string `json:"Source"`
	Value  string `json:"Value"`
}

// Detail is the full record returned by an id lookup. A later fetch
// replaces it entirely; details are never merged.
type Detail struct {
	Summary

	Rated     string           `json:"Rated"`
	Released  string           `json:"Released"`
	Runtime   string           `json:"Runtime"`
	Genres    []string         `json:"Genres"`
	Director  string           `json:"Director"`
	Writer    string           `json:"Writer"`
	Actors    []string         `json:"Actors"`
	Plot      string           `json:"Plot"`
	Language  string           `json:"Language"`
	Country   string           `json:"Country"`
	Awards    string           `json:"Awards"`
	BoxOffice string           `json:"BoxOffice"`
	Votes     string           `json:"Votes"`
	Ratings   []ExternalRating `json:"Ratings"`
}

// HasPoster reports whether a poster URL is available.
func (s *Summary) HasPoster() bool {
	return s.Poster != nil && *s.Poster != ""
}

// Clone returns a deep copy of s. Extra is copied one level deep.
func (s *Summary) Clone() *Summary {
	if s == nil {
		return nil
	}
	c := *s
	if s.Poster != nil {
		p := *s.Poster
		c.Poster = &p
	}
	if s.Rating != nil {
		r := *s.Rating
		c.Rating = &r
	}
	c.Extra = maps.Clone(s.Extra)
	return &c
}

// Clone returns a deep copy of d.
func (d *Detail) Clone() *Detail {
	if d == nil {
		return nil
	}
	c := *d
	c.Summary = *d.Summary.Clone()
	c.Genres = slices.Clone(d.Genres)
	c.Actors = slices.Clone(d.Actors)
	c.Ratings = slices.Clone(d.Ratings)
	return &c
}
