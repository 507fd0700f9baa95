package suggest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func texts(s []Suggestion) []string {
	out := make([]string, len(s))
	for i, v := range s {
		out[i] = v.Text
	}
	return out
}

func TestSuggest_EmptyInput(t *testing.T) {
	got := Suggest("", []string{"Heat", "Avatar"}, 0)

	require.Len(t, got, len(Popular)+1, "recent Avatar is not repeated")
	assert.Equal(t, "Heat", got[0].Text)
	assert.Equal(t, OriginRecent, got[0].Origin)
	assert.Equal(t, "Avatar", got[1].Text)
	assert.Equal(t, OriginRecent, got[1].Origin)
	assert.Equal(t, "Inception", got[2].Text)
	assert.Equal(t, OriginPopular, got[2].Origin)
}

func TestSuggest_FiltersAndRanks(t *testing.T) {
	got := Suggest("matrix", nil, 0)
	assert.Equal(t, []string{"The Matrix"}, texts(got))
	assert.Greater(t, got[0].Score, 0.9)

	got = Suggest("bat", nil, 0)
	require.NotEmpty(t, got)
	assert.Equal(t, "Batman", got[0].Text)
}

func TestSuggest_FoldsCaseAndAccents(t *testing.T) {
	got := Suggest("INCÉPTION", nil, 0)
	assert.Equal(t, []string{"Inception"}, texts(got))
}

func TestSuggest_RecentFirstWhenMatching(t *testing.T) {
	got := Suggest("in", []string{"Inside Out", "Heat"}, 0)
	require.NotEmpty(t, got)
	assert.Equal(t, "Inside Out", got[0].Text)
	assert.Equal(t, OriginRecent, got[0].Origin)
	assert.NotContains(t, texts(got), "Heat")
	assert.Contains(t, texts(got), "Inception")
}

func TestSuggest_Limit(t *testing.T) {
	got := Suggest("", []string{"Heat"}, 3)
	assert.Equal(t, []string{"Heat", "Avatar", "Inception"}, texts(got))
}

func TestSuggest_NoMatch(t *testing.T) {
	got := Suggest("qqqq", []string{"Heat"}, 0)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
