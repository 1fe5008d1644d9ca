package pane

import (
	"fmt"
	"strings"

	"repodash/internal/gitscan"
	"repodash/internal/theme"
)

// changesLines renders the working-tree summary followed by one line per
// changed file, colored by change kind.
func changesLines(info *gitscan.RepoInfo, width int) []string {
	if info.Status.Clean() {
		return []string{theme.PassStyle.Render("  Working tree clean")}
	}

	summary := fmt.Sprintf("  %d modified, %d added, %d deleted",
		info.Status.Modified, info.Status.Added, info.Status.Deleted)
	lines := []string{
		theme.WarnStyle.Render(TruncateWithEllipsis(summary, width)),
		"",
	}

	for _, f := range info.ChangedFiles {
		lines = append(lines, changedFileLine(f, width))
	}
	return lines
}

func changedFileLine(f string, width int) string {
	kind, path, ok := strings.Cut(f, " ")
	if !ok {
		return "  " + TruncateWithEllipsis(f, width-2)
	}

	var prefix string
	switch kind {
	case "M":
		prefix = theme.PrefixModified
	case "A":
		prefix = theme.PrefixAdded
	case "D":
		prefix = theme.PrefixDeleted
	default:
		prefix = theme.MutedStyle.Render(kind)
	}
	return "  " + prefix + " " + TruncateWithEllipsis(path, width-4)
}
