// Package gitscan discovers git repositories under a root path and
// extracts their metadata: working-tree status, branches, remotes, and
// recent history.
package gitscan

import (
	"fmt"
	"time"

	"repodash/internal/forge"
)

// WorkStatus counts working-tree and index changes. A repository is clean
// when all three counters are zero.
type WorkStatus struct {
	Modified int
	Added    int
	Deleted  int
}

func (s WorkStatus) Clean() bool {
	return s.Modified == 0 && s.Added == 0 && s.Deleted == 0
}

// CommitInfo is one commit as shown in the dashboard.
type CommitInfo struct {
	Hash    string // 7-hex abbreviation
	Message string // summary line only
	Author  string // name, no email
	When    string // relative, e.g. "3h ago"
}

// RepoInfo is one discovered repository. Path uniquely identifies it and
// is the correlation key for cache entries and fetch results.
type RepoInfo struct {
	Name          string
	Path          string
	Status        WorkStatus
	ChangedFiles  []string // "<M|A|D> <path>", sorted by path
	CurrentBranch string
	Branches      []string
	RemoteURL     string
	Owner         string // set when RemoteURL points at GitHub
	RepoName      string

	// GitHub and GitHubErr are populated lazily by the dashboard; at most
	// one of them is ever set.
	GitHub    *forge.RepoData
	GitHubErr string

	RecentCommits []CommitInfo
}

// OnGitHub reports whether the origin remote parsed as a GitHub repository.
func (r *RepoInfo) OnGitHub() bool {
	return r.Owner != ""
}

// formatWhen renders a commit timestamp relative to now.
func formatWhen(t time.Time) string {
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	case d < 30*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	default:
		return fmt.Sprintf("%dmo ago", int(d.Hours()/(24*30)))
	}
}
