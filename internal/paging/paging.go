// Package paging computes page counts and the page-number window shown
// under a result list.
package paging

// Defaults used by the upstream search API and the result footer.
const (
	PerPage    = 10
	WindowSize = 5
)

// TotalPages returns ceil(total/perPage). perPage <= 0 uses PerPage.
func TotalPages(total, perPage int) int {
	if perPage <= 0 {
		perPage = PerPage
	}
	if total <= 0 {
		return 0
	}
	return (total + perPage - 1) / perPage
}

// Valid reports whether page can be jumped to.
func Valid(page, totalPages int) bool {
	return page >= 1 && page <= totalPages
}

// Window is a run of page numbers centered on the current page.
type Window struct {
	Current int
	Start   int
	End     int
	Total   int
}

// NewWindow centers up to size pages on current and shifts the run to
// stay inside [1, totalPages]. size <= 0 uses WindowSize.
func NewWindow(current, totalPages, size int) Window {
	if size <= 0 {
		size = WindowSize
	}
	if totalPages < 1 {
		return Window{}
	}
	current = min(max(current, 1), totalPages)

	start := max(1, current-size/2)
	end := min(totalPages, start+size-1)
	if end-start+1 < size {
		start = max(1, end-size+1)
	}
	return Window{Current: current, Start: start, End: end, Total: totalPages}
}

// Pages lists the page numbers in the window.
func (w Window) Pages() []int {
	if w.Total == 0 {
		return nil
	}
	pages := make([]int, 0, w.End-w.Start+1)
	for p := w.Start; p <= w.End; p++ {
		pages = append(pages, p)
	}
	return pages
}

// ShowFirst reports whether page 1 needs its own link before the window,
// and LeadingGap whether an ellipsis separates it from the window.
func (w Window) ShowFirst() bool  { return w.Start > 1 }
func (w Window) LeadingGap() bool { return w.Start > 2 }

// ShowLast and TrailingGap mirror ShowFirst and LeadingGap at the end.
func (w Window) ShowLast() bool    { return w.End < w.Total }
func (w Window) TrailingGap() bool { return w.End < w.Total-1 }

// Range returns the 1-based positions of the first and last results on
// page, for "Showing a to b of n". Both are 0 when the page is empty.
func Range(page, total, perPage int) (first, last int) {
	if perPage <= 0 {
		perPage = PerPage
	}
	if total <= 0 || page < 1 {
		return 0, 0
	}
	first = (page-1)*perPage + 1
	if first > total {
		return 0, 0
	}
	return first, min(page*perPage, total)
}
