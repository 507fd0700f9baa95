// Package favorites keeps the user's favorite movies and personal ratings
// in durable storage.
//
// Every mutation writes the whole affected collection back to storage
// before it returns. A failed write leaves the in-memory state unchanged.
package favorites

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"slices"
	"sync"

	"github.com/sahilm/fuzzy"

	"github.com/vmunix/marquee/internal/movie"
	"github.com/vmunix/marquee/internal/storage"
)

// Storage keys.
const (
	KeyFavorites = "movieFavorites"
	KeyRatings   = "movieRatings"
)

// Rating bounds.
const (
	MinRating = 1
	MaxRating = 5
)

// ErrInvalidRating is returned for ratings outside [MinRating, MaxRating].
var ErrInvalidRating = errors.New("rating must be between 1 and 5")

// Store holds favorites in insertion order and ratings by movie id.
type Store struct {
	kv  storage.KV
	log *slog.Logger

	mu        sync.RWMutex
	favorites []*movie.Detail
	ratings   map[string]int
}

// New loads both collections from kv. Missing or unreadable entries start
// empty; the problem is logged, not returned.
func New(ctx context.Context, kv storage.KV, log *slog.Logger) *Store {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s := &Store{kv: kv, log: log, ratings: map[string]int{}}

	var favs []*movie.Detail
	if s.load(ctx, KeyFavorites, &favs) {
		for _, f := range favs {
			if f != nil && f.ID != "" && s.index(f.ID) < 0 {
				s.favorites = append(s.favorites, f)
			}
		}
	}

	var ratings map[string]int
	if s.load(ctx, KeyRatings, &ratings) {
		for id, r := range ratings {
			if validRating(r) {
				s.ratings[id] = r
			}
		}
	}
	return s
}

func (s *Store) load(ctx context.Context, key string, dest any) bool {
	data, ok, err := s.kv.Get(ctx, key)
	if err != nil {
		s.log.Warn("failed to load", "key", key, "error", err)
		return false
	}
	if !ok {
		return false
	}
	if err := json.Unmarshal(data, dest); err != nil {
		s.log.Warn("discarding unparsable stored value", "key", key, "error", err)
		return false
	}
	return true
}

func (s *Store) persist(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.kv.Set(ctx, key, data); err != nil {
		s.log.Warn("failed to persist", "key", key, "error", err)
		return fmt.Errorf("persist %s: %w", key, err)
	}
	return nil
}

func (s *Store) index(id string) int {
	return slices.IndexFunc(s.favorites, func(f *movie.Detail) bool { return f.ID == id })
}

// Add appends m to the favorites. Adding an id that is already present
// does nothing and keeps the original position.
func (s *Store) Add(ctx context.Context, m *movie.Detail) error {
	if m == nil || m.ID == "" {
		return errors.New("favorite requires a movie id")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.index(m.ID) >= 0 {
		return nil
	}
	next := append(slices.Clone(s.favorites), m)
	if err := s.persist(ctx, KeyFavorites, next); err != nil {
		return err
	}
	s.favorites = next
	s.log.Debug("favorite added", "id", m.ID)
	return nil
}

// Remove drops id from the favorites if present.
func (s *Store) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(id)
	if i < 0 {
		return nil
	}
	next := slices.Delete(slices.Clone(s.favorites), i, i+1)
	if err := s.persist(ctx, KeyFavorites, next); err != nil {
		return err
	}
	s.favorites = next
	s.log.Debug("favorite removed", "id", id)
	return nil
}

// IsFavorite reports whether id is a favorite.
func (s *Store) IsFavorite(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index(id) >= 0
}

// List returns the favorites in insertion order.
func (s *Store) List() []*movie.Detail {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := slices.Clone(s.favorites)
	if out == nil {
		out = []*movie.Detail{}
	}
	return out
}

// SetRating sets the rating for id. A nil value removes it.
func (s *Store) SetRating(ctx context.Context, id string, value *int) error {
	if value != nil && !validRating(*value) {
		return fmt.Errorf("%w: got %d", ErrInvalidRating, *value)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	next := maps.Clone(s.ratings)
	if value == nil {
		if _, ok := next[id]; !ok {
			return nil
		}
		delete(next, id)
	} else {
		next[id] = *value
	}
	if err := s.persist(ctx, KeyRatings, next); err != nil {
		return err
	}
	s.ratings = next
	return nil
}

// Rating returns the rating for id, if any.
func (s *Store) Rating(id string) (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.ratings[id]
	return r, ok
}

// Ratings returns a copy of every rating.
func (s *Store) Ratings() map[string]int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maps.Clone(s.ratings)
}

// titleSource adapts favorites to fuzzy.Source over folded titles.
type titleSource []*movie.Detail

func (t titleSource) String(i int) string { return movie.Fold(t[i].Title) }
func (t titleSource) Len() int            { return len(t) }

// Filter returns favorites whose title fuzzy-matches pattern, best match
// first. Matching ignores case and accents. A blank pattern returns List().
func (s *Store) Filter(pattern string) []*movie.Detail {
	pattern = movie.Fold(pattern)
	favs := s.List()
	if pattern == "" {
		return favs
	}

	matches := fuzzy.FindFrom(pattern, titleSource(favs))
	out := make([]*movie.Detail, 0, len(matches))
	for _, m := range matches {
		out = append(out, favs[m.Index])
	}
	return out
}

func validRating(r int) bool {
	return r >= MinRating && r <= MaxRating
}
