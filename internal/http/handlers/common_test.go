package handlers

import (
	"testing"

	"busbooking/internal/domain"
)

func TestNewPageMeta(t *testing.T) {
	cases := []struct {
		name        string
		page, limit int
		total       int
		wantPages   int
		wantNext    bool
		wantPrev    bool
	}{
		{"first of many", 1, 10, 35, 4, true, false},
		{"middle", 2, 10, 35, 4, true, true},
		{"last", 4, 10, 35, 4, false, true},
		{"exact fit", 2, 10, 20, 2, false, true},
		{"empty result", 1, 10, 0, 1, false, false},
		{"single page", 1, 10, 3, 1, false, false},
	}
	for _, tc := range cases {
		meta := NewPageMeta(domain.PageParams{Page: tc.page, Limit: tc.limit}, tc.total)
		if meta.TotalPages != tc.wantPages {
			t.Errorf("%s: totalPages = %d, want %d", tc.name, meta.TotalPages, tc.wantPages)
		}
		if meta.HasNextPage != tc.wantNext {
			t.Errorf("%s: hasNextPage = %v, want %v", tc.name, meta.HasNextPage, tc.wantNext)
		}
		if meta.HasPrevPage != tc.wantPrev {
			t.Errorf("%s: hasPrevPage = %v, want %v", tc.name, meta.HasPrevPage, tc.wantPrev)
		}
		if meta.TotalItems != tc.total {
			t.Errorf("%s: totalItems = %d", tc.name, meta.TotalItems)
		}
	}
}

func TestNormalizePage(t *testing.T) {
	cases := []struct {
		page, limit         int
		wantPage, wantLimit int
	}{
		{0, 0, 1, 10},
		{-3, -5, 1, 10},
		{2, 50, 2, 50},
		{1, 500, 1, 100},
	}
	for _, tc := range cases {
		p := domain.NormalizePage(tc.page, tc.limit)
		if p.Page != tc.wantPage || p.Limit != tc.wantLimit {
			t.Errorf("NormalizePage(%d, %d) = %+v, want page %d limit %d",
				tc.page, tc.limit, p, tc.wantPage, tc.wantLimit)
		}
	}
}
