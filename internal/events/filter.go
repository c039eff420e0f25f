package events

import (
	"strings"

	"github.com/gatherly/gatherly/internal/api"
)

// Filter narrows an already-fetched collection. Filtering is pure
// client-side slicing; the server is never consulted.
type Filter struct {
	Category  string
	EventType string
	Pricing   string
	Language  string
	AgeGroup  string

	// Query matches case-insensitively against title, description and
	// location
	Query string

	// DateFrom and DateTo bound the event date inclusively; dates are
	// ISO-8601 strings so lexical comparison orders them
	DateFrom string
	DateTo   string
}

// IsZero reports whether the filter matches everything
func (f Filter) IsZero() bool {
	return f == Filter{}
}

// Match reports whether the event passes the filter
func (f Filter) Match(ev api.Event) bool {
	if f.Category != "" && !strings.EqualFold(ev.Category, f.Category) {
		return false
	}
	if f.EventType != "" && !strings.EqualFold(ev.EventType, f.EventType) {
		return false
	}
	if f.Pricing != "" && ev.Pricing != f.Pricing {
		return false
	}
	if f.Language != "" && !strings.EqualFold(ev.Language, f.Language) {
		return false
	}
	if f.AgeGroup != "" && !strings.EqualFold(ev.AgeGroup, f.AgeGroup) {
		return false
	}
	if f.DateFrom != "" && ev.Date < f.DateFrom {
		return false
	}
	if f.DateTo != "" && ev.Date > f.DateTo {
		return false
	}
	if f.Query != "" {
		q := strings.ToLower(f.Query)
		haystack := strings.ToLower(ev.Title + " " + ev.Description + " " + ev.Location)
		if !strings.Contains(haystack, q) {
			return false
		}
	}
	return true
}

// Apply returns the events passing the filter, preserving order
func (f Filter) Apply(events []api.Event) []api.Event {
	if f.IsZero() {
		return events
	}

	out := make([]api.Event, 0, len(events))
	for _, ev := range events {
		if f.Match(ev) {
			out = append(out, ev)
		}
	}
	return out
}

// PageSize derives the number of events per page from the terminal width,
// mirroring the breakpoint sizing of the original grid
func PageSize(width int) int {
	switch {
	case width < 80:
		return 6
	case width < 100:
		return 8
	case width < 120:
		return 10
	case width < 160:
		return 12
	default:
		return 15
	}
}

// Paginate slices out one page (1-based) of the given size
func Paginate(events []api.Event, page, size int) []api.Event {
	if size <= 0 || page < 1 {
		return nil
	}

	start := (page - 1) * size
	if start >= len(events) {
		return nil
	}

	end := start + size
	if end > len(events) {
		end = len(events)
	}
	return events[start:end]
}

// TotalPages returns the number of pages needed for n events
func TotalPages(n, size int) int {
	if size <= 0 || n <= 0 {
		return 0
	}
	return (n + size - 1) / size
}

// PageNumbers returns the page labels to show around the current page,
// grouped in threes the way the original pager renders them
func PageNumbers(current, total int) []int {
	const groupSize = 3
	if total <= 0 || current < 1 {
		return nil
	}

	start := (current - 1) / groupSize * groupSize
	end := start + groupSize
	if end > total {
		end = total
	}

	pages := make([]int, 0, groupSize)
	for p := start + 1; p <= end; p++ {
		pages = append(pages, p)
	}
	return pages
}
