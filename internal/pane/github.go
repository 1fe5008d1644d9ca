package pane

import (
	"fmt"

	"repodash/internal/forge"
	"repodash/internal/gitscan"
	"repodash/internal/theme"
)

// githubPlaceholder returns the lines to show when a GitHub tab has no data
// to render. Data beats a stale error, an error beats the in-flight
// spinner, and only then does the fetch state show.
func githubPlaceholder(info *gitscan.RepoInfo, fetching bool, width int) ([]string, bool) {
	switch {
	case !info.OnGitHub():
		return []string{theme.MutedStyle.Render("  Not a GitHub repository")}, true
	case info.GitHub != nil:
		return nil, false
	case info.GitHubErr != "":
		return []string{
			theme.FailStyle.Render(TruncateWithEllipsis("  GitHub error: "+info.GitHubErr, width)),
			theme.MutedStyle.Render("  r to retry, R to bypass cache"),
		}, true
	case fetching:
		return []string{theme.MutedStyle.Render("  Fetching GitHub data…")}, true
	default:
		return []string{theme.MutedStyle.Render("  No GitHub data yet")}, true
	}
}

// ItemAt maps a content line of the Issues or PRs tab back to the item
// rendered there, mirroring the layout of issueLines and prLines. ok is
// false for non-GitHub tabs and for lines outside the item rows.
func ItemAt(id TabID, info *gitscan.RepoInfo, line int) (forge.Item, bool) {
	if info == nil || info.GitHub == nil {
		return forge.Item{}, false
	}

	var items []forge.Item
	switch id {
	case TabIssues:
		items = info.GitHub.RecentIssues
	case TabPRs:
		items = info.GitHub.RecentPRs
	default:
		return forge.Item{}, false
	}

	// Items start after the count header and the separator line.
	idx := line - 2
	if idx < 0 || idx >= len(items) {
		return forge.Item{}, false
	}
	return items[idx], true
}

// itemLines renders "#N  title" rows for recent issues or pull requests.
func itemLines(items []forge.Item, width int) []string {
	var lines []string
	for _, it := range items {
		num := fmt.Sprintf("#%d", it.Number)
		titleMax := width - 2 - len(num) - 2
		if titleMax < 4 {
			titleMax = 4
		}
		lines = append(lines, fmt.Sprintf("  %s  %s",
			theme.AccentStyle.Render(num),
			TruncateWithEllipsis(it.Title, titleMax),
		))
	}
	return lines
}
