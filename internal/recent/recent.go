// Package recent remembers the last few search queries.
package recent

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/vmunix/marquee/internal/storage"
)

// Key is the storage key holding the list.
const Key = "recentMovieSearches"

// MaxEntries caps the stored list.
const MaxEntries = 5

// List is a most-recent-first list of distinct queries.
type List struct {
	kv  storage.KV
	log *slog.Logger

	mu      sync.Mutex
	queries []string
}

// New loads the list from kv; anything unreadable starts empty.
func New(ctx context.Context, kv storage.KV, log *slog.Logger) *List {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	l := &List{kv: kv, log: log}

	data, ok, err := kv.Get(ctx, Key)
	switch {
	case err != nil:
		log.Warn("failed to load recent searches", "error", err)
	case ok:
		var stored []string
		if err := json.Unmarshal(data, &stored); err != nil {
			log.Warn("discarding unparsable recent searches", "error", err)
			break
		}
		for _, q := range stored {
			if q = strings.TrimSpace(q); q != "" && !slices.Contains(l.queries, q) {
				l.queries = append(l.queries, q)
			}
		}
		if len(l.queries) > MaxEntries {
			l.queries = l.queries[:MaxEntries]
		}
	}
	return l
}

// Add moves query to the front, dropping any earlier copy and the oldest
// entry beyond MaxEntries. Blank queries are ignored.
func (l *List) Add(ctx context.Context, query string) error {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	next := make([]string, 0, MaxEntries)
	next = append(next, query)
	for _, q := range l.queries {
		if q != query && len(next) < MaxEntries {
			next = append(next, q)
		}
	}
	if err := l.save(ctx, next); err != nil {
		return err
	}
	l.queries = next
	return nil
}

// List returns the queries, most recent first.
func (l *List) List() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := slices.Clone(l.queries)
	if out == nil {
		out = []string{}
	}
	return out
}

// Clear forgets every query.
func (l *List) Clear(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.kv.Delete(ctx, Key); err != nil {
		return fmt.Errorf("clear recent searches: %w", err)
	}
	l.queries = nil
	return nil
}

func (l *List) save(ctx context.Context, queries []string) error {
	data, err := json.Marshal(queries)
	if err != nil {
		return fmt.Errorf("encode recent searches: %w", err)
	}
	if err := l.kv.Set(ctx, Key, data); err != nil {
		l.log.Warn("failed to persist recent searches", "error", err)
		return fmt.Errorf("persist recent searches: %w", err)
	}
	return nil
}
