package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"github.com/vmunix/marquee/internal/movie"
	"github.com/vmunix/marquee/internal/paging"
)

var (
	accent = lipgloss.Color("#E5A00D")
	dim    = lipgloss.Color("#6B7280")
	red    = lipgloss.Color("#EF4444")

	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(accent)
	headerStyle = lipgloss.NewStyle().Bold(true)
	dimStyle    = lipgloss.NewStyle().Foreground(dim)
	starStyle   = lipgloss.NewStyle().Foreground(accent)
	errorStyle  = lipgloss.NewStyle().Foreground(red)
)

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n-3]) + "..."
}

// stars renders a 1-5 rating as filled and empty stars.
func stars(n int) string {
	n = min(max(n, 0), 5)
	return starStyle.Render(strings.Repeat("★", n)) + dimStyle.Render(strings.Repeat("☆", 5-n))
}

func imdbRating(r *float64) string {
	if r == nil {
		return movie.Missing
	}
	return fmt.Sprintf("%.1f", *r)
}

// printSummaries prints a numbered table of search hits. mark reports
// whether an id is a favorite.
func printSummaries(w io.Writer, results []*movie.Summary, offset int, mark func(id string) bool) {
	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("  # │ %-11s │ %-40s │ %-9s │ %-7s", "ID", "TITLE", "YEAR", "TYPE")))
	fmt.Fprintln(w, "────┼─────────────┼──────────────────────────────────────────┼───────────┼────────")
	for i, m := range results {
		fav := " "
		if mark != nil && mark(m.ID) {
			fav = starStyle.Render("♥")
		}
		fmt.Fprintf(w, " %2d │ %-11s │ %-40s │ %-9s │ %-7s %s\n",
			offset+i+1, m.ID, truncate(m.Title, 40), m.Year, m.Type, fav)
	}
}

// printPager prints "Showing a to b of n" and the page window.
func printPager(w io.Writer, page, total int) {
	first, last := paging.Range(page, total, paging.PerPage)
	if total == 0 || first == 0 {
		return
	}
	fmt.Fprintf(w, "\nShowing %d to %d of %d results\n", first, last, total)

	pages := paging.TotalPages(total, paging.PerPage)
	if pages <= 1 {
		return
	}
	win := paging.NewWindow(page, pages, paging.WindowSize)
	var parts []string
	if win.ShowFirst() {
		parts = append(parts, "1")
		if win.LeadingGap() {
			parts = append(parts, "…")
		}
	}
	for _, p := range win.Pages() {
		if p == win.Current {
			parts = append(parts, titleStyle.Render(fmt.Sprintf("[%d]", p)))
			continue
		}
		parts = append(parts, fmt.Sprint(p))
	}
	if win.ShowLast() {
		if win.TrailingGap() {
			parts = append(parts, "…")
		}
		parts = append(parts, fmt.Sprint(pages))
	}
	fmt.Fprintf(w, "Pages: %s\n", strings.Join(parts, " "))
}

func printDetail(w io.Writer, d *movie.Detail, favorite bool, rating int, rated bool) {
	fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("%s (%s)", d.Title, d.Year)))
	fmt.Fprintln(w, dimStyle.Render(fmt.Sprintf("%s · %s · %s · %s", d.ID, d.Rated, d.Runtime, d.Type)))
	fmt.Fprintln(w)

	field := func(label, value string) {
		fmt.Fprintf(w, "  %-10s %s\n", label+":", value)
	}
	field("Genre", joinOrMissing(d.Genres))
	field("Released", d.Released)
	field("Director", d.Director)
	field("Writer", d.Writer)
	field("Actors", joinOrMissing(d.Actors))
	field("Language", d.Language)
	field("Country", d.Country)
	field("Awards", d.Awards)
	field("BoxOffice", d.BoxOffice)
	field("IMDb", fmt.Sprintf("%s (%s votes)", imdbRating(d.Rating), d.Votes))
	for _, r := range d.Ratings {
		field(shortSource(r.Source), r.Value)
	}
	if d.HasPoster() {
		field("Poster", *d.Poster)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, d.Plot)
	fmt.Fprintln(w)

	if favorite {
		fmt.Fprintln(w, starStyle.Render("♥ In favorites"))
	}
	if rated {
		fmt.Fprintf(w, "Your rating: %s\n", stars(rating))
	} else {
		fmt.Fprintln(w, dimStyle.Render("Not rated"))
	}
}

func joinOrMissing(list []string) string {
	if len(list) == 0 {
		return movie.Missing
	}
	return strings.Join(list, ", ")
}

func shortSource(s string) string {
	switch s {
	case "Internet Movie Database":
		return "IMDb"
	case "Rotten Tomatoes":
		return "Tomatoes"
	default:
		return truncate(s, 10)
	}
}
