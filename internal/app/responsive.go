package app

// LayoutMode represents the display width category for responsive layout.
type LayoutMode int

const (
	LayoutNarrow LayoutMode = iota // <60 chars: single column, list or detail
	LayoutWide                     // 60+: list and detail side by side
)

// GetLayoutMode returns the appropriate layout mode for the given terminal width.
func GetLayoutMode(width int) LayoutMode {
	if width < 60 {
		return LayoutNarrow
	}
	return LayoutWide
}

// ListWidth returns the width of the repository list column in wide layout:
// a third of the screen, clamped to stay readable.
func ListWidth(totalWidth int) int {
	w := totalWidth / 3
	if w < 20 {
		w = 20
	}
	if w > 40 {
		w = 40
	}
	return w
}

// TitleBarHeight returns the height of the title bar (always 1 row).
func TitleBarHeight() int {
	return 1
}

// StatusBarHeight returns the height of the status bar (always 1 row).
func StatusBarHeight() int {
	return 1
}

// ContentHeight returns the available height for content after subtracting
// the title bar and status bar from the total terminal height.
func ContentHeight(totalHeight int) int {
	h := totalHeight - TitleBarHeight() - StatusBarHeight()
	if h < 0 {
		return 0
	}
	return h
}
