package movie

import (
	"fmt"
	"strconv"
	"strings"
)

// Upstream field names.
const (
	fieldID       = "imdbID"
	fieldTitle    = "Title"
	fieldYear     = "Year"
	fieldPoster   = "Poster"
	fieldType     = "Type"
	fieldRating   = "imdbRating"
	fieldRated    = "Rated"
	fieldReleased = "Released"
	fieldRuntime  = "Runtime"
	fieldGenre    = "Genre"
	fieldDirector = "Director"
	fieldWriter   = "Writer"
	fieldActors   = "Actors"
	fieldPlot     = "Plot"
	fieldLanguage = "Language"
	fieldCountry  = "Country"
	fieldAwards   = "Awards"
	fieldBoxOff   = "BoxOffice"
	fieldVotes    = "imdbVotes"
	fieldRatings  = "Ratings"

	// fieldResponse is the envelope flag on lookups, not movie data.
	fieldResponse = "Response"
)

var summaryFields = map[string]bool{
	fieldID: true, fieldTitle: true, fieldYear: true, fieldPoster: true,
	fieldType: true, fieldRating: true, fieldResponse: true,
}

var detailFields = map[string]bool{
	fieldRated: true, fieldReleased: true, fieldRuntime: true, fieldGenre: true,
	fieldDirector: true, fieldWriter: true, fieldActors: true, fieldPlot: true,
	fieldLanguage: true, fieldCountry: true, fieldAwards: true, fieldBoxOff: true,
	fieldVotes: true, fieldRatings: true,
}

// NormalizeSummary maps a raw search hit to a Summary.
// Returns nil for a nil record.
func NormalizeSummary(rec Record) *Summary {
	if rec == nil {
		return nil
	}
	s := summaryOf(rec)
	s.Extra = extra(rec, func(k string) bool { return summaryFields[k] })
	return &s
}

// NormalizeDetail maps a raw lookup record to a Detail.
// Returns nil for a nil record.
func NormalizeDetail(rec Record) *Detail {
	if rec == nil {
		return nil
	}
	d := &Detail{
		Summary:   summaryOf(rec),
		Rated:     text(rec, fieldRated),
		Released:  text(rec, fieldReleased),
		Runtime:   text(rec, fieldRuntime),
		Genres:    list(rec, fieldGenre),
		Director:  text(rec, fieldDirector),
		Writer:    text(rec, fieldWriter),
		Actors:    list(rec, fieldActors),
		Plot:      text(rec, fieldPlot),
		Language:  text(rec, fieldLanguage),
		Country:   text(rec, fieldCountry),
		Awards:    text(rec, fieldAwards),
		BoxOffice: text(rec, fieldBoxOff),
		Votes:     text(rec, fieldVotes),
		Ratings:   externalRatings(rec),
	}
	d.Extra = extra(rec, func(k string) bool { return summaryFields[k] || detailFields[k] })
	return d
}

func summaryOf(rec Record) Summary {
	s := Summary{
		ID:     text(rec, fieldID),
		Title:  text(rec, fieldTitle),
		Year:   text(rec, fieldYear),
		Type:   text(rec, fieldType),
		Rating: number(rec, fieldRating),
	}
	if poster, ok := value(rec, fieldPoster); ok {
		s.Poster = &poster
	}
	return s
}

// value returns the field as a trimmed string, reporting false when it is
// absent, empty or the missing sentinel.
func value(rec Record, key string) (string, bool) {
	raw, ok := rec[key]
	if !ok || raw == nil {
		return "", false
	}
	var v string
	switch t := raw.(type) {
	case string:
		v = t
	case float64:
		v = strconv.FormatFloat(t, 'f', -1, 64)
	default:
		v = fmt.Sprint(t)
	}
	v = strings.TrimSpace(v)
	if v == "" || v == Missing {
		return "", false
	}
	return v, true
}

func text(rec Record, key string) string {
	if v, ok := value(rec, key); ok {
		return v
	}
	return Missing
}

func number(rec Record, key string) *float64 {
	v, ok := value(rec, key)
	if !ok {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil
	}
	return &f
}

func list(rec Record, key string) []string {
	v, ok := value(rec, key)
	if !ok {
		return []string{}
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func externalRatings(rec Record) []ExternalRating {
	raw, ok := rec[fieldRatings].([]any)
	if !ok {
		return []ExternalRating{}
	}
	out := make([]ExternalRating, 0, len(raw))
	for _, item := range raw {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		src, _ := value(Record(m), "Source")
		val, _ := value(Record(m), "Value")
		if src == "" && val == "" {
			continue
		}
		out = append(out, ExternalRating{Source: src, Value: val})
	}
	return out
}

func extra(rec Record, known func(string) bool) map[string]any {
	var out map[string]any
	for k, v := range rec {
		if known(k) {
			continue
		}
		if out == nil {
			out = make(map[string]any)
		}
		out[k] = v
	}
	return out
}
