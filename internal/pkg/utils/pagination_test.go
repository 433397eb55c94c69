package utils

import (
	"math"
	"net/http/httptest"
	"testing"
)

func TestParsePaginationParams(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantPage   int
		wantLimit  int
		wantOffset int
	}{
		{"defaults", "", 1, DefaultPageSize, 0},
		{"second page", "?page=2&limit=10", 2, 10, 10},
		{"negative page", "?page=-3", 1, DefaultPageSize, 0},
		{"zero limit", "?limit=0", 1, DefaultPageSize, 0},
		{"limit clamped", "?limit=1000", 1, MaxPageSize, 0},
		{"garbage", "?page=abc&limit=xyz", 1, DefaultPageSize, 0},
		{"huge page", "?page=100000000000000000&limit=100", math.MaxInt / 100, 100, (math.MaxInt/100 - 1) * 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/api/admin/users"+tt.query, nil)
			got := ParsePaginationParams(r, DefaultPageSize, MaxPageSize)
			if got.Page != tt.wantPage || got.Limit != tt.wantLimit || got.Offset != tt.wantOffset {
				t.Errorf("ParsePaginationParams(%q) = %+v, want page %d limit %d offset %d",
					tt.query, got, tt.wantPage, tt.wantLimit, tt.wantOffset)
			}
			if got.Offset < 0 {
				t.Errorf("offset overflowed: %d", got.Offset)
			}
		})
	}
}

func TestTotalPages(t *testing.T) {
	tests := []struct {
		total int64
		limit int
		want  int
	}{
		{0, 25, 0},
		{1, 25, 1},
		{25, 25, 1},
		{26, 25, 2},
		{30, 7, 5},
		{10, 0, 0},
	}
	for _, tt := range tests {
		if got := TotalPages(tt.total, tt.limit); got != tt.want {
			t.Errorf("TotalPages(%d, %d) = %d, want %d", tt.total, tt.limit, got, tt.want)
		}
	}
}
