package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockOMDb is a fake OMDb API. Searches and lookups are answered from
// the registered tables; anything else reports "Movie not found!".
type mockOMDb struct {
	t        *testing.T
	server   *httptest.Server
	searches map[string]any
	lookups  map[string]any
	status   int
	calls    atomic.Int32
}

// newMockOMDb creates a new fake API builder.
// Call .Build() to start the httptest.Server.
func newMockOMDb(t *testing.T) *mockOMDb {
	t.Helper()
	return &mockOMDb{t: t, searches: map[string]any{}, lookups: map[string]any{}}
}

// Search registers the response for a title search.
func (m *mockOMDb) Search(query string, titles ...string) *mockOMDb {
	hits := make([]map[string]string, len(titles))
	for i, title := range titles {
		hits[i] = map[string]string{
			"Title":  title,
			"Year":   "2009",
			"imdbID": fmt.Sprintf("tt%07d", len(m.searches)*100+i+1),
			"Type":   "movie",
			"Poster": "N/A",
		}
	}
	m.searches[query] = map[string]any{"Response": "True", "Search": hits, "totalResults": fmt.Sprint(len(titles))}
	return m
}

// SearchTotal registers a search whose totalResults exceeds the page.
func (m *mockOMDb) SearchTotal(query string, total int, titles ...string) *mockOMDb {
	m.Search(query, titles...)
	m.searches[query].(map[string]any)["totalResults"] = fmt.Sprint(total)
	return m
}

// Movie registers a full record for id lookups.
func (m *mockOMDb) Movie(id, title string) *mockOMDb {
	m.lookups[id] = map[string]any{
		"Title":      title,
		"Year":       "2010",
		"Rated":      "PG-13",
		"Runtime":    "148 min",
		"Genre":      "Action, Sci-Fi",
		"Director":   "Christopher Nolan",
		"Actors":     "Leonardo DiCaprio, Elliot Page",
		"Plot":       "A thief who steals corporate secrets.",
		"imdbRating": "8.8",
		"imdbVotes":  "2,500,000",
		"imdbID":     id,
		"Type":       "movie",
		"Ratings":    []map[string]string{{"Source": "Rotten Tomatoes", "Value": "87%"}},
		"Response":   "True",
	}
	return m
}

// RespondStatus makes every request fail with code.
func (m *mockOMDb) RespondStatus(code int) *mockOMDb {
	m.status = code
	return m
}

// Build starts the server; it is closed when the test ends.
func (m *mockOMDb) Build() *mockOMDb {
	m.t.Helper()
	m.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m.calls.Add(1)
		assert.Equal(m.t, http.MethodGet, r.Method, "unexpected request method")
		assert.NotEmpty(m.t, r.URL.Query().Get("apikey"), "missing api key")

		if m.status != 0 {
			w.WriteHeader(m.status)
			return
		}
		q := r.URL.Query()
		if s := q.Get("s"); s != "" {
			if v, ok := m.searches[s]; ok {
				respondJSON(m.t, w, v)
				return
			}
		}
		if id := q.Get("i"); id != "" {
			if v, ok := m.lookups[id]; ok {
				respondJSON(m.t, w, v)
				return
			}
			respondJSON(m.t, w, map[string]string{"Response": "False", "Error": "Incorrect IMDb ID."})
			return
		}
		respondJSON(m.t, w, map[string]string{"Response": "False", "Error": "Movie not found!"})
	}))
	m.t.Cleanup(m.server.Close)
	return m
}

// respondJSON writes a JSON response with proper content-type header.
func respondJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Errorf("failed to encode JSON response: %v", err)
	}
}

// cli runs marquee commands against one config and data directory.
type cli struct {
	t      *testing.T
	config string
}

// newCLI writes a config pointing at baseURL with sqlite storage in a
// temp dir, so state persists across invocations like a real install.
func newCLI(t *testing.T, baseURL, apiKey string) *cli {
	t.Helper()
	t.Setenv("OMDB_API_KEY", "")
	dir := t.TempDir()
	cfg := fmt.Sprintf(`
[omdb]
api_key = %q
base_url = %q
timeout = "5s"

[retry]
max_attempts = 2
base_delay = "1ms"

[storage]
driver = "sqlite"
path = %q

[log]
level = "error"
`, apiKey, baseURL+"/", filepath.Join(dir, "marquee.db"))

	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(cfg), 0644))
	return &cli{t: t, config: path}
}

// Run executes one command and returns stdout, stderr and the error.
func (c *cli) Run(args ...string) (string, string, error) {
	return c.RunInput("", args...)
}

// RunInput is Run with stdin content.
func (c *cli) RunInput(stdin string, args ...string) (string, string, error) {
	c.t.Helper()
	var out, errOut bytes.Buffer
	full := append([]string{"--config", c.config}, args...)
	err := run(context.Background(), full, strings.NewReader(stdin), &out, &errOut)
	return out.String(), errOut.String(), err
}

// MustRun fails the test when the command fails.
func (c *cli) MustRun(args ...string) string {
	c.t.Helper()
	out, errOut, err := c.Run(args...)
	require.NoError(c.t, err, "stderr: %s", errOut)
	return out
}
