// Package catalog composes the OMDb client, the response cache and the
// normalizer into the movie query operations used by the CLI.
//
// Every operation returns a result value; failures are reported in its
// Error field rather than as Go errors, so callers branch on Error alone.
package catalog

import (
	"context"
	"io"
	"log/slog"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vmunix/marquee/internal/cache"
	"github.com/vmunix/marquee/internal/movie"
	"github.com/vmunix/marquee/internal/omdb"
)

// Cache key prefixes
const (
	keyPrefixSearch  = "search?"
	keyPrefixDetails = "details?"
)

// Trending defaults.
var DefaultSeeds = []string{"Avatar", "Inception", "Interstellar"}

const DefaultTrendingLimit = 12

// Upstream is the subset of the OMDb client the service needs.
type Upstream interface {
	IsConfigured() bool
	Search(ctx context.Context, query, typ string, page int) (*omdb.SearchPage, error)
	Lookup(ctx context.Context, id string) (*omdb.LookupResult, error)
}

// SearchResult is one page of search hits.
type SearchResult struct {
	Results      []*movie.Summary `json:"results"`
	TotalResults int              `json:"totalResults"`
	Error        string           `json:"error,omitempty"`
}

// DetailResult is a single id lookup.
type DetailResult struct {
	Data  *movie.Detail `json:"data"`
	Error string        `json:"error,omitempty"`
}

// BatchResult partitions a multi-id lookup by outcome.
type BatchResult struct {
	Movies []*movie.Detail `json:"movies"`
	Errors []string        `json:"errors"`
}

// Options tunes the aggregate operations.
type Options struct {
	Seeds         []string
	TrendingLimit int
	// BestEffort keeps trending results from the seeds that succeeded.
	// When false any failed seed fails the whole trending request.
	BestEffort bool
	// BatchConcurrency caps in-flight lookups in GetMoviesByIDs; 0 is unlimited.
	BatchConcurrency int
}

// Service runs movie queries through the cache.
type Service struct {
	upstream Upstream
	cache    *cache.Cache[any]
	opts     Options
	log      *slog.Logger
}

// New creates a query service. A nil cache gets a default one-hour cache;
// a nil logger discards output.
func New(upstream Upstream, c *cache.Cache[any], opts Options, log *slog.Logger) *Service {
	if c == nil {
		c = cache.New[any]()
	}
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if len(opts.Seeds) == 0 {
		opts.Seeds = DefaultSeeds
	}
	if opts.TrendingLimit <= 0 {
		opts.TrendingLimit = DefaultTrendingLimit
	}
	return &Service{upstream: upstream, cache: c, opts: opts, log: log}
}

func searchKey(query, typ string, page int) string {
	v := url.Values{}
	v.Set("q", query)
	v.Set("type", typ)
	v.Set("page", strconv.Itoa(page))
	return keyPrefixSearch + v.Encode()
}

func detailsKey(id string) string {
	v := url.Values{}
	v.Set("i", id)
	return keyPrefixDetails + v.Encode()
}

// SearchMovies returns one page of results for query, optionally filtered
// by type. Blank queries and a missing API key fail without a network call.
func (s *Service) SearchMovies(ctx context.Context, query, typ string, page int) SearchResult {
	if strings.TrimSpace(query) == "" {
		return searchError(MsgEmptyQuery)
	}
	if !s.upstream.IsConfigured() {
		s.log.Error("OMDb API key is not configured, set OMDB_API_KEY")
		return searchError(MsgConfig)
	}
	if page < 1 {
		page = 1
	}

	key := searchKey(query, typ, page)
	if v, ok := s.cache.Get(key); ok {
		if res, ok := v.(SearchResult); ok {
			s.log.Debug("cache hit for search", "query", query, "type", typ, "page", page)
			return res.clone()
		}
	}
	s.log.Debug("cache miss for search, calling API", "query", query, "type", typ, "page", page)

	resp, err := s.upstream.Search(ctx, query, typ, page)
	if err != nil {
		s.log.Warn("search failed", "query", query, "error", err)
		return searchError(errorMessage(err, MsgSearchFailed))
	}
	if !resp.OK() {
		msg := resp.Error
		if msg == "" {
			msg = MsgUnknown
		}
		return searchError(msg)
	}

	results := make([]*movie.Summary, 0, len(resp.Search))
	for _, rec := range resp.Search {
		if sum := movie.NormalizeSummary(rec); sum != nil {
			results = append(results, sum)
		}
	}
	res := SearchResult{Results: results, TotalResults: resp.Total()}
	if len(results) > 0 {
		s.cache.Put(key, res.clone())
	}
	return res
}

// GetMovieDetails fetches the full record for id.
func (s *Service) GetMovieDetails(ctx context.Context, id string) DetailResult {
	id = strings.TrimSpace(id)
	if id == "" {
		return DetailResult{Error: MsgInvalidID}
	}
	if !s.upstream.IsConfigured() {
		s.log.Error("OMDb API key is not configured, set OMDB_API_KEY")
		return DetailResult{Error: MsgConfig}
	}

	key := detailsKey(id)
	if v, ok := s.cache.Get(key); ok {
		if res, ok := v.(DetailResult); ok {
			s.log.Debug("cache hit for details", "id", id)
			return res.clone()
		}
	}
	s.log.Debug("cache miss for details, calling API", "id", id)

	resp, err := s.upstream.Lookup(ctx, id)
	if err != nil {
		s.log.Warn("details failed", "id", id, "error", err)
		return DetailResult{Error: errorMessage(err, MsgDetailsFailed)}
	}
	if !resp.OK() {
		msg := resp.Message()
		if msg == "" {
			msg = MsgNotFound
		}
		return DetailResult{Error: msg}
	}

	res := DetailResult{Data: movie.NormalizeDetail(resp.Record)}
	s.cache.Put(key, res.clone())
	return res
}

// GetMoviesByIDs looks up every id concurrently and partitions the outcomes.
// Movies and Errors keep the relative order of ids.
func (s *Service) GetMoviesByIDs(ctx context.Context, ids []string) BatchResult {
	out := BatchResult{Movies: []*movie.Detail{}, Errors: []string{}}
	if len(ids) == 0 {
		return out
	}

	results := make([]DetailResult, len(ids))
	var g errgroup.Group
	if s.opts.BatchConcurrency > 0 {
		g.SetLimit(s.opts.BatchConcurrency)
	}
	for i, id := range ids {
		g.Go(func() error {
			results[i] = s.GetMovieDetails(ctx, id)
			return nil
		})
	}
	_ = g.Wait()

	for _, r := range results {
		if r.Error != "" {
			out.Errors = append(out.Errors, r.Error)
			continue
		}
		out.Movies = append(out.Movies, r.Data)
	}
	return out
}

// GetTrendingMovies runs the seed searches concurrently and concatenates
// their first pages in seed order, truncated to the trending limit.
func (s *Service) GetTrendingMovies(ctx context.Context) SearchResult {
	seeds := s.opts.Seeds
	pages := make([]SearchResult, len(seeds))

	var g errgroup.Group
	for i, seed := range seeds {
		g.Go(func() error {
			pages[i] = s.SearchMovies(ctx, seed, movie.TypeMovie, 1)
			return nil
		})
	}
	_ = g.Wait()

	all := make([]*movie.Summary, 0, s.opts.TrendingLimit)
	failed := 0
	for i, p := range pages {
		if p.Error != "" {
			failed++
			s.log.Warn("trending seed failed", "seed", seeds[i], "error", p.Error)
			continue
		}
		all = append(all, p.Results...)
	}

	if failed == len(seeds) || (failed > 0 && !s.opts.BestEffort) {
		return searchError(MsgTrendingFailed)
	}

	if len(all) > s.opts.TrendingLimit {
		all = all[:s.opts.TrendingLimit]
	}
	return SearchResult{Results: all, TotalResults: len(all)}
}

// ClearCache drops every cached response.
func (s *Service) ClearCache() {
	s.cache.Clear()
	s.log.Info("API cache cleared")
}

// CacheStats reports the number of cached responses and their keys.
func (s *Service) CacheStats() cache.Stats {
	return s.cache.Stats()
}

// CacheTTL is how long responses stay cached.
func (s *Service) CacheTTL() time.Duration {
	return s.cache.TTL()
}

// CacheEntries lists cached responses with their creation times.
func (s *Service) CacheEntries() []cache.EntryInfo {
	return s.cache.Entries()
}

// clone copies the hits so callers never share records with the cache.
func (r SearchResult) clone() SearchResult {
	out := r
	out.Results = make([]*movie.Summary, len(r.Results))
	for i, m := range r.Results {
		out.Results[i] = m.Clone()
	}
	return out
}

func (r DetailResult) clone() DetailResult {
	return DetailResult{Data: r.Data.Clone(), Error: r.Error}
}

func searchError(msg string) SearchResult {
	return SearchResult{Results: []*movie.Summary{}, TotalResults: 0, Error: msg}
}
