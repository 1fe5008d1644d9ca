package pane

import (
	"fmt"

	"repodash/internal/gitscan"
	"repodash/internal/theme"
)

// prLines renders the open-PR count and the most recent open pull requests.
func prLines(info *gitscan.RepoInfo, fetching bool, width int) []string {
	if placeholder, done := githubPlaceholder(info, fetching, width); done {
		return placeholder
	}

	gh := info.GitHub
	lines := []string{
		theme.PaneHeaderStyle.Render(fmt.Sprintf("  %d open PRs", gh.OpenPRs)),
		"",
	}
	if len(gh.RecentPRs) == 0 {
		return append(lines, theme.MutedStyle.Render("  No open PRs"))
	}
	return append(lines, itemLines(gh.RecentPRs, width)...)
}
