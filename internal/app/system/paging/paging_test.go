package paging

import (
	"net/http/httptest"
	"testing"
)

func TestLimitPlusOne(t *testing.T) {
	want := int64(PageSize + 1)
	got := LimitPlusOne()
	if got != want {
		t.Errorf("LimitPlusOne() = %d, want %d", got, want)
	}
}

func TestParseStart(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want int
	}{
		{"missing", "/admin/applications", 1},
		{"valid", "/admin/applications?start=51", 51},
		{"zero", "/admin/applications?start=0", 1},
		{"negative", "/admin/applications?start=-5", 1},
		{"garbage", "/admin/applications?start=abc", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", tt.url, nil)
			if got := ParseStart(r); got != tt.want {
				t.Errorf("ParseStart(%s) = %d, want %d", tt.url, got, tt.want)
			}
		})
	}
}

func TestTrim(t *testing.T) {
	t.Run("under page size", func(t *testing.T) {
		rows := []int{1, 2, 3}
		if Trim(&rows) {
			t.Error("expected no next page")
		}
		if len(rows) != 3 {
			t.Errorf("rows trimmed unexpectedly to %d", len(rows))
		}
	})

	t.Run("look-ahead row trimmed", func(t *testing.T) {
		rows := make([]int, PageSize+1)
		if !Trim(&rows) {
			t.Error("expected next page")
		}
		if len(rows) != PageSize {
			t.Errorf("expected %d rows after trim, got %d", PageSize, len(rows))
		}
	})
}

func TestComputeRange(t *testing.T) {
	tests := []struct {
		name  string
		start int
		shown int
		want  Range
	}{
		{"empty", 1, 0, Range{Start: 0, End: 0, PrevStart: 1, NextStart: 1}},
		{"first page", 1, PageSize, Range{Start: 1, End: PageSize, PrevStart: 1, NextStart: PageSize + 1}},
		{"second page", PageSize + 1, 10, Range{Start: PageSize + 1, End: PageSize + 10, PrevStart: 1, NextStart: PageSize + 11}},
		{"third page prev clamped", 2*PageSize + 1, 5, Range{Start: 2*PageSize + 1, End: 2*PageSize + 5, PrevStart: PageSize + 1, NextStart: 2*PageSize + 6}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ComputeRange(tt.start, tt.shown); got != tt.want {
				t.Errorf("ComputeRange(%d, %d) = %+v, want %+v", tt.start, tt.shown, got, tt.want)
			}
		})
	}
}
