// Package app holds the root bubbletea model of the dashboard: the
// repository list, the detail tabs, and the background scan and GitHub
// fetch commands feeding them.
package app

import (
	"context"
	"os/exec"
	"runtime"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"repodash/internal/config"
	"repodash/internal/forge"
	"repodash/internal/gitscan"
	"repodash/internal/pane"
)

// Focus names the pane that owns movement keys.
type Focus int

const (
	FocusList Focus = iota
	FocusDetail
)

// Model is the root bubbletea Model. All state transitions happen on the
// Update goroutine; scans and GitHub fetches run as commands and report
// back through messages keyed by repository path.
type Model struct {
	cfg     *config.Config
	log     *log.Logger
	scanner *gitscan.Scanner
	forge   *forge.Client

	repos    []gitscan.RepoInfo
	selected int
	scanning bool

	focus      Focus
	tab        pane.TabID
	scroll     int
	listScroll int

	// inflight holds the paths of repositories with a GitHub fetch
	// running, so a repository is never fetched twice concurrently.
	inflight map[string]struct{}

	width      int
	height     int
	layoutMode LayoutMode
	keys       KeyMap
	help       help.Model
	showHelp   bool
	lastScan   time.Time
}

// New creates a root Model with the given config and shared components.
func New(cfg *config.Config, logger *log.Logger, scanner *gitscan.Scanner, client *forge.Client) Model {
	return Model{
		cfg:      cfg,
		log:      logger,
		scanner:  scanner,
		forge:    client,
		scanning: true,
		inflight: make(map[string]struct{}),
		keys:     DefaultKeyMap(),
		help:     help.New(),
	}
}

// ShortHelp implements help.KeyMap for the application key bindings.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Quit, k.Detail, k.Refresh, k.Help}
}

// FullHelp implements help.KeyMap for the application key bindings.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Detail, k.Back},
		{k.NextTab, k.PrevTab, k.Open},
		{k.Refresh, k.ForceRefresh},
		{k.Help, k.Quit},
	}
}

// Ensure KeyMap satisfies help.KeyMap at compile time.
var _ help.KeyMap = KeyMap{}

// ---------------------------------------------------------------------------
// Messages
// ---------------------------------------------------------------------------

// reposScannedMsg carries a finished scan.
type reposScannedMsg struct {
	repos []gitscan.RepoInfo
}

// githubResultMsg carries the outcome of one GitHub fetch. Path correlates
// it back to a repository; results for repositories that vanished in a
// rescan are dropped.
type githubResultMsg struct {
	path string
	data *forge.RepoData
	err  error
}

// tickMsg drives periodic redraws so relative timestamps stay fresh.
type tickMsg time.Time

// ---------------------------------------------------------------------------
// Commands
// ---------------------------------------------------------------------------

func scanCmd(s *gitscan.Scanner, root string) tea.Cmd {
	return func() tea.Msg {
		return reposScannedMsg{repos: s.Scan(root)}
	}
}

func fetchCmd(c *forge.Client, path, owner, repo string) tea.Cmd {
	return func() tea.Msg {
		data, err := c.Fetch(context.Background(), owner, repo)
		return githubResultMsg{path: path, data: data, err: err}
	}
}

func tickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// openURLCmd opens url in the OS default browser.
func openURLCmd(url string) tea.Cmd {
	return func() tea.Msg {
		var cmd *exec.Cmd
		switch runtime.GOOS {
		case "darwin":
			cmd = exec.Command("open", url)
		case "windows":
			cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
		default:
			cmd = exec.Command("xdg-open", url)
		}
		_ = cmd.Start()
		return nil
	}
}

// Init starts the initial scan and the redraw ticker.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		scanCmd(m.scanner, m.cfg.ScanPath),
		tickCmd(m.tickInterval()),
	)
}

func (m Model) tickInterval() time.Duration {
	return time.Duration(m.cfg.TickMS) * time.Millisecond
}

// ---------------------------------------------------------------------------
// Update
// ---------------------------------------------------------------------------

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layoutMode = GetLayoutMode(msg.Width)
		m.help.Width = msg.Width
		m.clampScroll()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case reposScannedMsg:
		return m.handleScanned(msg)

	case githubResultMsg:
		return m.handleGitHubResult(msg)

	case tickMsg:
		// No state change; the redraw keeps relative ages current.
		return m, tickCmd(m.tickInterval())
	}

	return m, nil
}

// handleScanned swaps in a fresh repository list. The list is replaced
// wholesale and the selection returns to the top; any GitHub state lives
// on the old list and is refetched on demand.
func (m Model) handleScanned(msg reposScannedMsg) (tea.Model, tea.Cmd) {
	m.repos = msg.repos
	m.scanning = false
	m.lastScan = time.Now()
	m.inflight = make(map[string]struct{})
	m.selected = 0
	m.scroll = 0
	m.clampScroll()
	m.log.Debug("scan finished", "repos", len(m.repos))

	return m, m.maybeFetchSelected()
}

// handleGitHubResult applies a fetch outcome to the repository it belongs
// to. Unknown paths are dropped: the repository disappeared in a rescan.
func (m Model) handleGitHubResult(msg githubResultMsg) (tea.Model, tea.Cmd) {
	delete(m.inflight, msg.path)

	repo := m.repoByPath(msg.path)
	if repo == nil {
		m.log.Debug("dropping result for unknown repository", "path", msg.path)
		return m, nil
	}

	if msg.err != nil {
		// A repository shows data or an error, never both.
		repo.GitHub = nil
		repo.GitHubErr = msg.err.Error()
		m.log.Warn("github fetch failed", "path", msg.path, "error", msg.err)
		return m, nil
	}

	repo.GitHub = msg.data
	repo.GitHubErr = ""
	return m, nil
}

// handleKey processes global key bindings.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		return m, nil

	case key.Matches(msg, m.keys.Up):
		return m.moveCursor(-1)

	case key.Matches(msg, m.keys.Down):
		return m.moveCursor(+1)

	case key.Matches(msg, m.keys.Detail):
		if len(m.repos) > 0 {
			m.focus = FocusDetail
			m.scroll = 0
			return m, m.maybeFetchSelected()
		}
		return m, nil

	case key.Matches(msg, m.keys.Back):
		m.focus = FocusList
		m.scroll = 0
		return m, m.maybeFetchSelected()

	case key.Matches(msg, m.keys.NextTab):
		m.tab = m.tab.Next()
		m.scroll = 0
		return m, nil

	case key.Matches(msg, m.keys.PrevTab):
		m.tab = m.tab.Prev()
		m.scroll = 0
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		return m.refresh(false)

	case key.Matches(msg, m.keys.ForceRefresh):
		return m.refresh(true)

	case key.Matches(msg, m.keys.Open):
		if repo := m.selectedRepo(); repo != nil && repo.OnGitHub() {
			return m, openURLCmd("https://github.com/" + repo.Owner + "/" + repo.RepoName)
		}
		return m, nil
	}

	return m, nil
}

// moveCursor moves the list selection (wrapping) or scrolls the detail
// pane, depending on focus.
func (m Model) moveCursor(delta int) (tea.Model, tea.Cmd) {
	if m.focus == FocusDetail {
		m.scroll += delta
		m.clampScroll()
		return m, nil
	}

	if len(m.repos) == 0 {
		return m, nil
	}
	m.selected = (m.selected + delta + len(m.repos)) % len(m.repos)
	m.tab = pane.TabChanges
	m.scroll = 0
	m.clampScroll()
	return m, m.maybeFetchSelected()
}

// refresh retries the selected repository's GitHub fetch in the detail
// pane, or clears the list and rescans in the list pane. force bypasses
// the caches.
func (m Model) refresh(force bool) (tea.Model, tea.Cmd) {
	if m.focus == FocusDetail {
		return m, m.retryFetch(force)
	}

	if force {
		m.scanner.Cache().Clear()
	}
	m.repos = nil
	m.selected = 0
	m.scroll = 0
	m.listScroll = 0
	m.scanning = true
	return m, scanCmd(m.scanner, m.cfg.ScanPath)
}

// maybeFetchSelected starts a GitHub fetch for the selected repository if
// it needs one. Existing data wins, then a recorded error (which waits for
// an explicit retry), then an in-flight request.
func (m *Model) maybeFetchSelected() tea.Cmd {
	repo := m.selectedRepo()
	if repo == nil || !repo.OnGitHub() {
		return nil
	}
	if repo.GitHub != nil || repo.GitHubErr != "" {
		return nil
	}
	if _, busy := m.inflight[repo.Path]; busy {
		return nil
	}

	m.inflight[repo.Path] = struct{}{}
	return fetchCmd(m.forge, repo.Path, repo.Owner, repo.RepoName)
}

// retryFetch drops the selected repository's GitHub state, including any
// in-flight mark, and fetches again. A soft retry is served from the
// cache when still valid; force additionally drops the cache entry so the
// network is actually hit.
func (m *Model) retryFetch(force bool) tea.Cmd {
	repo := m.selectedRepo()
	if repo == nil || !repo.OnGitHub() {
		return nil
	}

	repo.GitHub = nil
	repo.GitHubErr = ""
	if force {
		m.forge.Invalidate(repo.Owner, repo.RepoName)
	}

	// The new request supersedes any fetch already in flight; the earlier
	// result simply lands first and is then overwritten.
	m.inflight[repo.Path] = struct{}{}
	return fetchCmd(m.forge, repo.Path, repo.Owner, repo.RepoName)
}

// handleMouse processes mouse events: tab bar clicks and list row clicks.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Button != tea.MouseButtonLeft || msg.Action != tea.MouseActionPress {
		return m, nil
	}

	// Tab bar is the first content row of the detail column.
	if msg.Y == TitleBarHeight() && msg.X >= m.detailOriginX() && m.detailVisible() {
		if tab, ok := m.tabAtX(msg.X - m.detailOriginX()); ok {
			m.tab = tab
			m.scroll = 0
			m.focus = FocusDetail
			return m, nil
		}
		return m, nil
	}

	// List rows select repositories.
	if m.listVisible() && msg.X < m.listWidth() && msg.Y >= TitleBarHeight() && msg.Y < m.height-StatusBarHeight() {
		idx := m.listScroll + msg.Y - TitleBarHeight()
		if idx >= 0 && idx < len(m.repos) && idx != m.selected {
			m.selected = idx
			m.tab = pane.TabChanges
			m.scroll = 0
			m.focus = FocusList
			m.clampScroll()
			return m, m.maybeFetchSelected()
		}
		return m, nil
	}

	// Issue and PR rows in the detail body open in the browser.
	if m.detailVisible() && msg.X >= m.detailOriginX() && msg.Y > TitleBarHeight() && msg.Y < m.height-StatusBarHeight() {
		return m, m.openItemAt(msg.Y)
	}

	return m, nil
}

// openItemAt maps a clicked detail row back to the issue or PR rendered
// there and opens it in the browser.
func (m *Model) openItemAt(y int) tea.Cmd {
	repo := m.selectedRepo()
	if repo == nil {
		return nil
	}

	line := m.scroll + y - TitleBarHeight() - tabBarHeight
	item, ok := pane.ItemAt(m.tab, repo, line)
	if !ok {
		return nil
	}

	url := forge.IssueURL(repo.Owner, repo.RepoName, item.Number)
	if m.tab == pane.TabPRs {
		url = forge.PullURL(repo.Owner, repo.RepoName, item.Number)
	}
	return openURLCmd(url)
}

// ---------------------------------------------------------------------------
// Accessors and clamping
// ---------------------------------------------------------------------------

func (m *Model) repoByPath(path string) *gitscan.RepoInfo {
	for i := range m.repos {
		if m.repos[i].Path == path {
			return &m.repos[i]
		}
	}
	return nil
}

func (m *Model) selectedRepo() *gitscan.RepoInfo {
	if m.selected < 0 || m.selected >= len(m.repos) {
		return nil
	}
	return &m.repos[m.selected]
}

// fetching reports whether a GitHub request is in flight for path.
func (m *Model) fetching(path string) bool {
	_, ok := m.inflight[path]
	return ok
}

// clampScroll keeps the selection, the list viewport, and the detail
// scroll offset inside their valid ranges.
func (m *Model) clampScroll() {
	if m.selected >= len(m.repos) {
		m.selected = len(m.repos) - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}

	contentH := ContentHeight(m.height)
	if contentH < 1 {
		contentH = 1
	}

	// Keep the selected row visible.
	if m.selected < m.listScroll {
		m.listScroll = m.selected
	}
	if m.selected >= m.listScroll+contentH {
		m.listScroll = m.selected - contentH + 1
	}
	if m.listScroll < 0 {
		m.listScroll = 0
	}

	// Detail scroll never runs past the content.
	lines := len(m.detailLines())
	maxScroll := lines - (contentH - tabBarHeight)
	if maxScroll < 0 {
		maxScroll = 0
	}
	if m.scroll > maxScroll {
		m.scroll = maxScroll
	}
	if m.scroll < 0 {
		m.scroll = 0
	}
}
