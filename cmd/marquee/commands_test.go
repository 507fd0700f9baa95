package main

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vmunix/marquee/internal/catalog"
)

func TestSearch_Table(t *testing.T) {
	api := newMockOMDb(t).SearchTotal("Avatar", 95, "Avatar", "Avatar: The Way of Water").Build()
	c := newCLI(t, api.server.URL, "test-key")

	out := c.MustRun("search", "Avatar")
	assert.Contains(t, out, `Found 95 results for "Avatar"`)
	assert.Contains(t, out, "Avatar: The Way of Water")
	assert.Contains(t, out, "tt0000001")
	assert.Contains(t, out, "Showing 1 to 10 of 95 results")
	assert.Contains(t, out, "[1]")

	recent := c.MustRun("recent")
	assert.Contains(t, recent, "1. Avatar")
}

func TestSearch_JSON(t *testing.T) {
	api := newMockOMDb(t).Search("matrix", "The Matrix").Build()
	c := newCLI(t, api.server.URL, "test-key")

	out := c.MustRun("--json", "search", "matrix")
	var res catalog.SearchResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	require.Len(t, res.Results, 1)
	assert.Equal(t, "The Matrix", res.Results[0].Title)
	assert.Equal(t, 1, res.TotalResults)
	assert.Empty(t, res.Error)
}

func TestSearch_Errors(t *testing.T) {
	api := newMockOMDb(t).Build()
	c := newCLI(t, api.server.URL, "test-key")

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"blank query", []string{"search", "  "}, catalog.MsgEmptyQuery},
		{"invalid type", []string{"search", "x", "--type", "game"}, `invalid --type "game"`},
		{"no matches", []string{"search", "zzzz"}, "Movie not found!"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := c.Run(tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestSearch_PageOutOfRange(t *testing.T) {
	api := newMockOMDb(t).SearchTotal("Avatar", 12, "Avatar", "Avatar 2").Build()
	c := newCLI(t, api.server.URL, "test-key")

	out := c.MustRun("search", "Avatar", "--page", "2")
	assert.Contains(t, out, "Showing 11 to 12 of 12 results")

	_, _, err := c.Run("search", "Avatar", "--page", "3")
	require.Error(t, err)
	assert.Equal(t, "page 3 is out of range: 12 results fill 2 pages", err.Error())
}

func TestSearch_HTTPErrors(t *testing.T) {
	tests := []struct {
		status int
		want   string
		calls  int32
	}{
		{status: 429, want: catalog.MsgRateLimited, calls: 2},
		{status: 500, want: catalog.MsgServerError, calls: 1},
		{status: 401, want: catalog.MsgInvalidKey, calls: 1},
	}
	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			api := newMockOMDb(t).RespondStatus(tt.status).Build()
			c := newCLI(t, api.server.URL, "test-key")

			_, _, err := c.Run("search", "Avatar")
			require.Error(t, err)
			assert.Equal(t, tt.want, err.Error())
			assert.Equal(t, tt.calls, api.calls.Load())
		})
	}
}

func TestMissingAPIKey(t *testing.T) {
	api := newMockOMDb(t).Search("Avatar", "Avatar").Build()
	c := newCLI(t, api.server.URL, "")

	_, _, err := c.Run("search", "Avatar")
	require.Error(t, err)
	assert.Equal(t, catalog.MsgConfig, err.Error())
	assert.Zero(t, api.calls.Load())
}

func TestShow(t *testing.T) {
	api := newMockOMDb(t).Movie("tt1375666", "Inception").Build()
	c := newCLI(t, api.server.URL, "test-key")

	out := c.MustRun("show", "tt1375666")
	assert.Contains(t, out, "Inception (2010)")
	assert.Contains(t, out, "Christopher Nolan")
	assert.Contains(t, out, "Action, Sci-Fi")
	assert.Contains(t, out, "8.8")
	assert.Contains(t, out, "Tomatoes")
	assert.Contains(t, out, "Not rated")

	c.MustRun("rate", "tt1375666", "4")
	out = c.MustRun("--json", "show", "tt1375666")
	var res showOutput
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, "Inception", res.Movie.Title)
	assert.Equal(t, []string{"Leonardo DiCaprio", "Elliot Page"}, res.Movie.Actors)
	assert.False(t, res.Favorite)
	require.NotNil(t, res.Rating)
	assert.Equal(t, 4, *res.Rating)
}

func TestShow_NotFound(t *testing.T) {
	api := newMockOMDb(t).Build()
	c := newCLI(t, api.server.URL, "test-key")

	_, _, err := c.Run("show", "tt0000000")
	require.Error(t, err)
	assert.Equal(t, "Incorrect IMDb ID.", err.Error())
}

func TestFavorites(t *testing.T) {
	api := newMockOMDb(t).
		Movie("tt1375666", "Inception").
		Movie("tt0816692", "Interstellar").
		Build()
	c := newCLI(t, api.server.URL, "test-key")

	assert.Contains(t, c.MustRun("fav", "ls"), "No favorites yet")

	assert.Contains(t, c.MustRun("fav", "add", "tt1375666"), "Added Inception (2010) to favorites")
	assert.Contains(t, c.MustRun("fav", "add", "tt0816692"), "Added Interstellar")
	assert.Contains(t, c.MustRun("fav", "add", "tt1375666"), "already a favorite")

	out := c.MustRun("fav", "ls")
	assert.Contains(t, out, "Inception")
	assert.Contains(t, out, "Interstellar")

	out = c.MustRun("fav", "ls", "--filter", "intr")
	assert.Contains(t, out, "Interstellar")
	assert.NotContains(t, out, "Inception")

	c.MustRun("rate", "tt0816692", "5")
	out = c.MustRun("--json", "fav", "ls")
	var favs []struct {
		ID         string `json:"imdbID"`
		Title      string `json:"Title"`
		UserRating *int   `json:"userRating"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &favs))
	require.Len(t, favs, 2)
	assert.Equal(t, "tt1375666", favs[0].ID)
	assert.Nil(t, favs[0].UserRating)
	require.NotNil(t, favs[1].UserRating)
	assert.Equal(t, 5, *favs[1].UserRating)

	assert.Contains(t, c.MustRun("fav", "rm", "tt1375666"), "Removed tt1375666")
	assert.Contains(t, c.MustRun("fav", "rm", "tt1375666"), "is not a favorite")
	out = c.MustRun("fav", "ls")
	assert.NotContains(t, out, "Inception")
}

func TestRate(t *testing.T) {
	api := newMockOMDb(t).Build()
	c := newCLI(t, api.server.URL, "test-key")

	assert.Contains(t, c.MustRun("rate", "tt1", "3"), "Rated tt1")
	assert.Contains(t, c.MustRun("rate", "tt1", "none"), "Cleared rating for tt1")

	_, _, err := c.Run("rate", "tt1", "9")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rating must be between 1 and 5")

	_, _, err = c.Run("rate", "tt1", "great")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid rating "great"`)
	assert.Zero(t, api.calls.Load())
}

func TestTrending(t *testing.T) {
	five := func(p string) []string {
		return []string{p + " 1", p + " 2", p + " 3", p + " 4", p + " 5"}
	}
	api := newMockOMDb(t).
		Search("Avatar", five("Avatar")...).
		Search("Inception", five("Inception")...).
		Search("Interstellar", five("Interstellar")...).
		Build()
	c := newCLI(t, api.server.URL, "test-key")

	out := c.MustRun("--json", "trending")
	var res catalog.SearchResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	require.Len(t, res.Results, 12)
	assert.Equal(t, "Avatar 1", res.Results[0].Title)
	assert.Equal(t, "Inception 1", res.Results[5].Title)
	assert.Equal(t, "Interstellar 2", res.Results[11].Title)
}

func TestTrending_SeedFailure(t *testing.T) {
	api := newMockOMDb(t).Search("Avatar", "Avatar").Build()
	c := newCLI(t, api.server.URL, "test-key")

	_, _, err := c.Run("trending")
	require.Error(t, err)
	assert.Equal(t, catalog.MsgTrendingFailed, err.Error())
}

func TestBatch(t *testing.T) {
	api := newMockOMDb(t).
		Movie("tt1375666", "Inception").
		Movie("tt0816692", "Interstellar").
		Build()
	c := newCLI(t, api.server.URL, "test-key")

	out := c.MustRun("batch", "tt0816692", "tt9999999", "tt1375666")
	assert.Contains(t, out, "Interstellar")
	assert.Contains(t, out, "Inception")
	assert.Contains(t, out, "Warnings: Incorrect IMDb ID.")
	assert.Less(t, bytes.Index([]byte(out), []byte("Interstellar")), bytes.Index([]byte(out), []byte("Inception")))

	_, _, err := c.Run("batch", "tt9999999")
	require.Error(t, err)
	assert.Equal(t, "all lookups failed", err.Error())
}

func TestRecentAndSuggest(t *testing.T) {
	api := newMockOMDb(t).Search("batman", "Batman").Search("star", "Star Wars").Build()
	c := newCLI(t, api.server.URL, "test-key")

	c.MustRun("search", "batman")
	c.MustRun("search", "star")

	assert.Equal(t, "1. star\n2. batman\n", c.MustRun("recent"))

	out := c.MustRun("suggest")
	assert.Contains(t, out, "Recent Searches")
	assert.Contains(t, out, "Popular")
	assert.Contains(t, out, "  star\n")

	out = c.MustRun("suggest", "batm")
	assert.Equal(t, "Recent Searches\n  batman\n", out)

	assert.Contains(t, c.MustRun("recent", "--clear"), "Recent searches cleared")
	assert.Contains(t, c.MustRun("recent"), "No recent searches")
}

func TestShell_SharesCache(t *testing.T) {
	api := newMockOMDb(t).Search("avatar", "Avatar").Build()
	c := newCLI(t, api.server.URL, "test-key")

	out, errOut, err := c.RunInput("search avatar\nsearch avatar\ncache stats\nshell\nsearch \"unterminated\nexit\n", "shell")
	require.NoError(t, err)
	assert.Contains(t, out, "marquee> ")
	assert.Contains(t, out, "Cached responses: 1 (ttl 1h0m0s)")
	assert.EqualValues(t, 1, api.calls.Load(), "second search is served from cache")
	assert.Contains(t, errOut, "already in a shell")
	assert.Contains(t, errOut, "unterminated")
}

func TestShell_CacheClear(t *testing.T) {
	api := newMockOMDb(t).Search("avatar", "Avatar").Build()
	c := newCLI(t, api.server.URL, "test-key")

	out, _, err := c.RunInput("search avatar\ncache clear\ncache stats\nquit\n", "shell")
	require.NoError(t, err)
	assert.Contains(t, out, "Cleared 1 cached response\n")
	assert.Contains(t, out, "Cached responses: 0")
}

func TestConfigCommands(t *testing.T) {
	api := newMockOMDb(t).Build()
	c := newCLI(t, api.server.URL, "test-key")

	out := c.MustRun("config", "test")
	assert.Contains(t, out, "Configuration valid!")
	assert.Contains(t, out, "api key set")
	assert.Contains(t, out, "2 attempts")

	assert.Equal(t, c.config+"\n", c.MustRun("config", "path"))

	path := filepath.Join(t.TempDir(), "sub", "config.toml")
	assert.Contains(t, c.MustRun("config", "init", path), "Wrote "+path)
	_, _, err := c.Run("config", "init", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
	c.MustRun("config", "init", path, "--force")
}

func TestConfigTest_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[omdb]\napi_key = \"${MARQUEE_TEST_UNSET}\"\n\n[retry]\nmax_attempts = -1\n"), 0644))

	var out, errOut bytes.Buffer
	err := run(t.Context(), []string{"config", "test", path}, strings.NewReader(""), &out, &errOut)
	require.Error(t, err)
	assert.Equal(t, "configuration invalid", err.Error())
	assert.Contains(t, out.String(), "Configuration Summary:")
	assert.Contains(t, out.String(), "-1 attempts")
	assert.Contains(t, out.String(), "MARQUEE_TEST_UNSET")
	assert.Contains(t, out.String(), "retry.max_attempts")
	assert.NotContains(t, out.String(), "Configuration valid!")
}

func TestSplitArgs(t *testing.T) {
	tests := []struct {
		line    string
		want    []string
		wantErr bool
	}{
		{line: "search avatar", want: []string{"search", "avatar"}},
		{line: "  search   the  matrix ", want: []string{"search", "the", "matrix"}},
		{line: `search "star wars" -t movie`, want: []string{"search", "star wars", "-t", "movie"}},
		{line: `fav ls --filter 'dark knight'`, want: []string{"fav", "ls", "--filter", "dark knight"}},
		{line: `search ""`, want: []string{"search", ""}},
		{line: `search "open`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, err := splitArgs(tt.line)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseRating(t *testing.T) {
	for _, s := range []string{"none", "Clear", "0"} {
		v, err := parseRating(s)
		require.NoError(t, err, s)
		assert.Nil(t, v, s)
	}

	v, err := parseRating("4")
	require.NoError(t, err)
	require.NotNil(t, v)
	assert.Equal(t, 4, *v)

	_, err = parseRating("four")
	assert.Error(t, err)
}

func TestParseLogLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"INFO":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
		"":      slog.LevelInfo,
		"loud":  slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, parseLogLevel(in), in)
	}
}

func TestPrintPager(t *testing.T) {
	tests := []struct {
		name        string
		page, total int
		want        []string
		notWant     []string
	}{
		{name: "single page", page: 1, total: 7, want: []string{"Showing 1 to 7 of 7 results"}, notWant: []string{"Pages:"}},
		{name: "first of many", page: 1, total: 95, want: []string{"Showing 1 to 10 of 95", "[1] 2 3 4 5 … 10"}},
		{name: "middle", page: 5, total: 95, want: []string{"Showing 41 to 50 of 95", "1 … 3 4 [5] 6 7 … 10"}},
		{name: "last", page: 10, total: 95, want: []string{"Showing 91 to 95 of 95", "1 … 6 7 8 9 [10]"}},
		{name: "empty", page: 1, total: 0, notWant: []string{"Showing"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			printPager(&buf, tt.page, tt.total)
			for _, s := range tt.want {
				assert.Contains(t, buf.String(), s)
			}
			for _, s := range tt.notWant {
				assert.NotContains(t, buf.String(), s)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "Amélie ...", truncate("Amélie Poulain", 10))
}
