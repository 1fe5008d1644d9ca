package app

import "testing"

func TestGetLayoutMode(t *testing.T) {
	tests := []struct {
		width int
		want  LayoutMode
	}{
		{0, LayoutNarrow},
		{40, LayoutNarrow},
		{59, LayoutNarrow},
		{60, LayoutWide},
		{120, LayoutWide},
	}
	for _, tt := range tests {
		got := GetLayoutMode(tt.width)
		if got != tt.want {
			t.Errorf("GetLayoutMode(%d) = %d, want %d", tt.width, got, tt.want)
		}
	}
}

func TestListWidth(t *testing.T) {
	tests := []struct {
		total int
		want  int
	}{
		{60, 20},
		{90, 30},
		{150, 40},
		{300, 40},
	}
	for _, tt := range tests {
		got := ListWidth(tt.total)
		if got != tt.want {
			t.Errorf("ListWidth(%d) = %d, want %d", tt.total, got, tt.want)
		}
	}
}

func TestContentHeight(t *testing.T) {
	tests := []struct {
		total int
		want  int
	}{
		{24, 22},
		{2, 0},
		{1, 0},
		{0, 0},
		{80, 78},
	}
	for _, tt := range tests {
		got := ContentHeight(tt.total)
		if got != tt.want {
			t.Errorf("ContentHeight(%d) = %d, want %d", tt.total, got, tt.want)
		}
	}
}
