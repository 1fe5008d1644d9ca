// Package pane renders the detail tabs of the dashboard: local changes,
// recent commits, and GitHub issues and pull requests for the selected
// repository. Renderers produce plain line slices; scrolling and layout
// belong to the caller.
package pane

import (
	"fmt"
	"time"

	"repodash/internal/gitscan"
)

// TabID identifies a detail tab.
type TabID int

const (
	TabChanges TabID = iota
	TabCommits
	TabIssues
	TabPRs

	tabCount
)

// Next returns the tab to the right, wrapping around.
func (t TabID) Next() TabID {
	return (t + 1) % tabCount
}

// Prev returns the tab to the left, wrapping around.
func (t TabID) Prev() TabID {
	return (t + tabCount - 1) % tabCount
}

func (t TabID) Title() string {
	switch t {
	case TabChanges:
		return "Changes"
	case TabCommits:
		return "Commits"
	case TabIssues:
		return "Issues"
	case TabPRs:
		return "PRs"
	default:
		return "?"
	}
}

// Tabs returns every tab in display order.
func Tabs() []TabID {
	tabs := make([]TabID, tabCount)
	for i := range tabs {
		tabs[i] = TabID(i)
	}
	return tabs
}

// Render produces the content lines for a tab. fetching reports whether a
// GitHub request for this repository is currently in flight; only the
// Issues and PRs tabs care.
func Render(id TabID, info *gitscan.RepoInfo, fetching bool, width int) []string {
	if info == nil {
		return nil
	}
	switch id {
	case TabChanges:
		return changesLines(info, width)
	case TabCommits:
		return commitLines(info, width)
	case TabIssues:
		return issueLines(info, fetching, width)
	case TabPRs:
		return prLines(info, fetching, width)
	default:
		return nil
	}
}

// FormatAge formats a duration as a human-readable age string.
func FormatAge(d time.Duration) string {
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}

// TruncateWithEllipsis truncates s to maxLen, appending "…" if truncated.
// If maxLen < 1, returns an empty string.
func TruncateWithEllipsis(s string, maxLen int) string {
	if maxLen < 1 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen == 1 {
		return "…"
	}
	return string(runes[:maxLen-1]) + "…"
}
