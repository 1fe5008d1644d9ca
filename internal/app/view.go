package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"repodash/internal/pane"
	"repodash/internal/theme"
)

// tabBarHeight is the row the detail tab bar occupies inside the content
// area.
const tabBarHeight = 1

// View renders the full UI: title bar, list and detail columns, status bar.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	titleBar := m.renderTitleBar()
	statusBar := m.renderStatusBar()

	var content string
	switch {
	case m.showHelp:
		content = m.help.View(m.keys)
	case m.layoutMode == LayoutNarrow:
		if m.focus == FocusDetail {
			content = m.renderDetail(m.width)
		} else {
			content = m.renderList(m.width)
		}
	default:
		list := m.renderList(m.listWidth())
		detail := m.renderDetail(m.width - m.listWidth() - 1)
		content = lipgloss.JoinHorizontal(lipgloss.Top, list, " ", detail)
	}

	return lipgloss.JoinVertical(lipgloss.Left, titleBar, content, statusBar)
}

// listVisible reports whether the repository list column is on screen.
func (m Model) listVisible() bool {
	return m.layoutMode == LayoutWide || m.focus == FocusList
}

// detailVisible reports whether the detail column is on screen.
func (m Model) detailVisible() bool {
	return m.layoutMode == LayoutWide || m.focus == FocusDetail
}

func (m Model) listWidth() int {
	if m.layoutMode == LayoutNarrow {
		return m.width
	}
	return ListWidth(m.width)
}

// detailOriginX is the screen column where the detail pane starts.
func (m Model) detailOriginX() int {
	if m.layoutMode == LayoutNarrow {
		return 0
	}
	return m.listWidth() + 1
}

// ---------------------------------------------------------------------------
// Title and status bars
// ---------------------------------------------------------------------------

func (m Model) renderTitleBar() string {
	title := "repodash"
	if repo := m.selectedRepo(); repo != nil {
		title = fmt.Sprintf("repodash — %s (%s)", repo.Name, repo.CurrentBranch)
	}
	return theme.TitleBarStyle.Width(m.width).Render(pane.TruncateWithEllipsis(title, m.width-2))
}

func (m Model) renderStatusBar() string {
	var state string
	switch {
	case m.scanning:
		state = theme.WarnStyle.Render("scanning…")
	default:
		state = theme.PassStyle.Render(fmt.Sprintf("%d repos", len(m.repos)))
	}

	age := "…"
	if !m.lastScan.IsZero() {
		age = pane.FormatAge(time.Since(m.lastScan))
	}
	scan := theme.MutedStyle.Render("↻ " + age)

	keys := theme.MutedStyle.Render("?=help  q=quit")

	bar := strings.Join([]string{state, scan, keys}, "  |  ")
	return theme.StatusBarStyle.Width(m.width).Render(bar)
}

// ---------------------------------------------------------------------------
// Repository list
// ---------------------------------------------------------------------------

func (m Model) renderList(width int) string {
	contentH := ContentHeight(m.height)
	var b strings.Builder

	if m.scanning && len(m.repos) == 0 {
		b.WriteString(theme.MutedStyle.Render("  Scanning repositories…"))
		return padLines(b.String(), width, contentH)
	}
	if len(m.repos) == 0 {
		b.WriteString(theme.MutedStyle.Render("  No repositories found"))
		return padLines(b.String(), width, contentH)
	}

	end := m.listScroll + contentH
	if end > len(m.repos) {
		end = len(m.repos)
	}
	for i := m.listScroll; i < end; i++ {
		b.WriteString(m.listRow(i, width))
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	return padLines(b.String(), width, contentH)
}

func (m Model) listRow(i, width int) string {
	repo := &m.repos[i]

	icon := theme.IconClean
	if !repo.Status.Clean() {
		icon = theme.IconDirty
	}
	if m.fetching(repo.Path) {
		icon = theme.IconFetching
	} else if repo.GitHubErr != "" && repo.GitHub == nil {
		icon = theme.IconFetchErr
	}

	branch := repo.CurrentBranch
	nameMax := width - 2 - 2 - len(branch) - 2
	if nameMax < 4 {
		nameMax = 4
	}
	name := pane.TruncateWithEllipsis(repo.Name, nameMax)

	if i == m.selected {
		marker := "> "
		if m.focus == FocusList {
			marker = theme.ListSelectedStyle.Render("> ")
		}
		return marker + icon + " " + theme.ListSelectedStyle.Render(fmt.Sprintf("%s  %s", name, branch))
	}
	return fmt.Sprintf("  %s %s  %s", icon, name, theme.MutedStyle.Render(branch))
}

// ---------------------------------------------------------------------------
// Detail pane
// ---------------------------------------------------------------------------

func (m Model) renderDetail(width int) string {
	contentH := ContentHeight(m.height)
	tabBar := m.renderTabBar()

	bodyH := contentH - tabBarHeight
	if bodyH < 1 {
		bodyH = 1
	}

	lines := m.detailLines()
	start := m.scroll
	if start > len(lines) {
		start = len(lines)
	}
	end := start + bodyH
	if end > len(lines) {
		end = len(lines)
	}

	body := strings.Join(lines[start:end], "\n")
	return tabBar + "\n" + padLines(body, width, bodyH)
}

// detailLines renders the active tab's content for the selected repository.
func (m Model) detailLines() []string {
	width := m.width - m.detailOriginX()
	if width < 10 {
		width = 10
	}
	repo := m.selectedRepo()
	if repo == nil {
		return nil
	}
	return pane.Render(m.tab, repo, m.fetching(repo.Path), width)
}

// renderTabBar renders the detail tab labels.
func (m Model) renderTabBar() string {
	var parts []string
	for _, tab := range pane.Tabs() {
		style := theme.TabInactiveStyle
		if tab == m.tab {
			style = theme.TabActiveStyle.Underline(true)
		}
		parts = append(parts, style.Render(tab.Title()))
	}
	return strings.Join(parts, " ")
}

// tabAtX returns the tab whose rendered label contains column x, measured
// against the same styles the tab bar renders with.
func (m Model) tabAtX(x int) (pane.TabID, bool) {
	pos := 0
	for _, tab := range pane.Tabs() {
		style := theme.TabInactiveStyle
		if tab == m.tab {
			style = theme.TabActiveStyle.Underline(true)
		}
		tabWidth := lipgloss.Width(style.Render(tab.Title()))

		if x >= pos && x < pos+tabWidth {
			return tab, true
		}
		pos += tabWidth + 1 // separator space
	}
	return 0, false
}

// padLines pads s with blank lines up to height so columns line up.
func padLines(s string, width, height int) string {
	lines := strings.Split(s, "\n")
	for len(lines) < height {
		lines = append(lines, "")
	}
	styled := lipgloss.NewStyle().Width(width)
	return styled.Render(strings.Join(lines, "\n"))
}
