package trend

import (
	"math"
	"testing"
)

func TestVolume(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"1,000+", 1000},
		{"500+", 500},
		{"abc", 0},
		{"", 0},
		{"2만+", 2},
		{"1,000,000+", 1000000},
		{"99999999999999999999999", math.MaxInt64},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := Volume(tt.in); got != tt.want {
				t.Errorf("Volume(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestGrowthRate(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"1,000+", 1000},
		{"500+", 500},
		{"1,000,000+", 0},
		{"abc", 0},
		{"", 0},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := GrowthRate(tt.in); got != tt.want {
				t.Errorf("GrowthRate(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestCategoryLabel(t *testing.T) {
	if got := CategoryLabel(AllCategories); got != "전체 카테고리" {
		t.Errorf("CategoryLabel(all) = %q", got)
	}
	if got := CategoryLabel("스포츠"); got != "스포츠" {
		t.Errorf("CategoryLabel(스포츠) = %q", got)
	}
	for _, c := range Categories {
		if c == AllCategories {
			t.Error("Categories must not contain the all sentinel")
		}
	}
}
