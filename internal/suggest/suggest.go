// Package suggest offers search completions from recent queries and a
// fixed list of popular titles.
package suggest

import (
	"cmp"
	"slices"
	"strings"

	"github.com/hbollon/go-edlib"
	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/vmunix/marquee/internal/movie"
)

// Popular titles offered when the user has not typed anything yet.
var Popular = []string{
	"Avatar",
	"Inception",
	"Interstellar",
	"The Matrix",
	"Titanic",
	"Avengers",
	"Spider-Man",
	"Batman",
	"Joker",
	"Forrest Gump",
	"The Shawshank Redemption",
	"Breaking Bad",
}

// Origin of a suggestion.
type Origin string

const (
	OriginRecent  Origin = "recent"
	OriginPopular Origin = "popular"
)

// Suggestion is one completion candidate.
type Suggestion struct {
	Text   string  `json:"text"`
	Origin Origin  `json:"origin"`
	Score  float64 `json:"score,omitempty"`
}

// Suggest returns recent queries first, then popular titles. With a
// non-blank input both groups keep only fuzzy matches, and popular titles
// are ordered by Jaro-Winkler similarity to the input. Duplicates (ignoring
// case and accents) are dropped. limit <= 0 means no limit.
func Suggest(input string, recent []string, limit int) []Suggestion {
	input = strings.TrimSpace(input)
	seen := make(map[string]bool)
	out := []Suggestion{}

	add := func(s Suggestion) {
		key := movie.Fold(s.Text)
		if key == "" || seen[key] {
			return
		}
		seen[key] = true
		out = append(out, s)
	}

	for _, q := range recent {
		if input == "" || matches(input, q) {
			add(Suggestion{Text: q, Origin: OriginRecent})
		}
	}

	if input == "" {
		for _, p := range Popular {
			add(Suggestion{Text: p, Origin: OriginPopular})
		}
	} else {
		for _, p := range rank(input, Popular) {
			add(p)
		}
	}

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// matches reports whether the input's characters appear in order in
// candidate, ignoring case and diacritics.
func matches(input, candidate string) bool {
	return fuzzy.MatchNormalizedFold(input, candidate)
}

func rank(input string, candidates []string) []Suggestion {
	cleaned := movie.MatchKey(input)
	ranked := make([]Suggestion, 0, len(candidates))
	for _, c := range candidates {
		if !matches(input, c) {
			continue
		}
		score := float64(edlib.JaroWinklerSimilarity(cleaned, movie.MatchKey(c)))
		ranked = append(ranked, Suggestion{Text: c, Origin: OriginPopular, Score: score})
	}
	slices.SortStableFunc(ranked, func(a, b Suggestion) int {
		return cmp.Compare(b.Score, a.Score)
	})
	return ranked
}
