package events

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gatherly/gatherly/internal/api"
)

func sampleEvents() []api.Event {
	return []api.Event{
		{ID: 1, Title: "Jazz Night", Category: "music", Pricing: api.PricingPaid, Language: "en", AgeGroup: "adults", Date: "2026-09-05", Location: "Harbor Stage"},
		{ID: 2, Title: "Kids Art Walk", Category: "art", Pricing: api.PricingFree, Language: "nl", AgeGroup: "kids", Date: "2026-09-10", Location: "Old Town"},
		{ID: 3, Title: "Street Food Festival", Category: "food", Pricing: api.PricingFree, Language: "en", AgeGroup: "all", Date: "2026-10-01", Location: "Market Square"},
	}
}

func TestFilterMatch(t *testing.T) {
	events := sampleEvents()

	tests := []struct {
		name   string
		filter Filter
		want   []int
	}{
		{"zero filter matches all", Filter{}, []int{1, 2, 3}},
		{"category", Filter{Category: "music"}, []int{1}},
		{"category is case-insensitive", Filter{Category: "MUSIC"}, []int{1}},
		{"pricing", Filter{Pricing: api.PricingFree}, []int{2, 3}},
		{"language", Filter{Language: "en"}, []int{1, 3}},
		{"age group", Filter{AgeGroup: "kids"}, []int{2}},
		{"date from", Filter{DateFrom: "2026-09-08"}, []int{2, 3}},
		{"date to", Filter{DateTo: "2026-09-08"}, []int{1}},
		{"date range", Filter{DateFrom: "2026-09-06", DateTo: "2026-09-30"}, []int{2}},
		{"query against title", Filter{Query: "jazz"}, []int{1}},
		{"query against location", Filter{Query: "market"}, []int{3}},
		{"combined", Filter{Pricing: api.PricingFree, Language: "en"}, []int{3}},
		{"no match", Filter{Category: "sports"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.filter.Apply(events)
			var ids []int
			for _, ev := range got {
				ids = append(ids, ev.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestPageSizeBreakpoints(t *testing.T) {
	tests := []struct {
		width int
		want  int
	}{
		{40, 6},
		{79, 6},
		{80, 8},
		{100, 10},
		{120, 12},
		{159, 12},
		{160, 15},
		{240, 15},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, PageSize(tt.width), "width %d", tt.width)
	}
}

func TestPaginate(t *testing.T) {
	events := sampleEvents()

	assert.Len(t, Paginate(events, 1, 2), 2)
	assert.Len(t, Paginate(events, 2, 2), 1)
	assert.Nil(t, Paginate(events, 3, 2))
	assert.Nil(t, Paginate(events, 0, 2))
	assert.Equal(t, 3, Paginate(events, 2, 2)[0].ID)
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 0, TotalPages(0, 10))
	assert.Equal(t, 1, TotalPages(10, 10))
	assert.Equal(t, 2, TotalPages(11, 10))
	assert.Equal(t, 0, TotalPages(5, 0))
}

func TestPageNumbers(t *testing.T) {
	// Pages come in groups of three around the current page.
	assert.Equal(t, []int{1, 2, 3}, PageNumbers(1, 7))
	assert.Equal(t, []int{1, 2, 3}, PageNumbers(3, 7))
	assert.Equal(t, []int{4, 5, 6}, PageNumbers(4, 7))
	assert.Equal(t, []int{7}, PageNumbers(7, 7))
	assert.Equal(t, []int{1, 2}, PageNumbers(1, 2))
	assert.Nil(t, PageNumbers(1, 0))
}
