package pane

import (
	"fmt"

	"repodash/internal/gitscan"
	"repodash/internal/theme"
)

// issueLines renders the open-issue count and the most recent open issues.
func issueLines(info *gitscan.RepoInfo, fetching bool, width int) []string {
	if placeholder, done := githubPlaceholder(info, fetching, width); done {
		return placeholder
	}

	gh := info.GitHub
	lines := []string{
		theme.PaneHeaderStyle.Render(fmt.Sprintf("  %d open issues", gh.OpenIssues)),
		"",
	}
	if len(gh.RecentIssues) == 0 {
		return append(lines, theme.MutedStyle.Render("  No recent issues"))
	}
	return append(lines, itemLines(gh.RecentIssues, width)...)
}
