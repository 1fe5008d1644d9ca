package pane

import (
	"fmt"

	"repodash/internal/gitscan"
	"repodash/internal/theme"
)

// commitLines renders recent history, newest first, one commit per line.
func commitLines(info *gitscan.RepoInfo, width int) []string {
	if len(info.RecentCommits) == 0 {
		return []string{theme.MutedStyle.Render("  No commits")}
	}

	var lines []string
	for _, c := range info.RecentCommits {
		meta := fmt.Sprintf("%s, %s", c.Author, c.When)

		// Layout: "  <hash>  message  author, age"
		msgMax := width - 2 - len(c.Hash) - 2 - 2 - len(meta)
		if msgMax < 8 {
			msgMax = 8
		}
		line := fmt.Sprintf("  %s  %s  %s",
			theme.AccentStyle.Render(c.Hash),
			TruncateWithEllipsis(c.Message, msgMax),
			theme.MutedStyle.Render(meta),
		)
		lines = append(lines, line)
	}
	return lines
}
