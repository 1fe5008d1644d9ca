package gitscan

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"

	"repodash/internal/forge"
)

// maxRecentCommits bounds the history walk per repository.
const maxRecentCommits = 20

// Analyze opens the repository at path and extracts its metadata. It
// returns nil when the path cannot be opened as a repository; any failing
// sub-step degrades its field to empty instead of failing the whole
// extraction.
func Analyze(path string) *RepoInfo {
	repo, err := git.PlainOpen(path)
	if err != nil {
		return nil
	}

	info := &RepoInfo{
		Name:          filepath.Base(path),
		Path:          path,
		CurrentBranch: currentBranch(repo),
		Branches:      listBranches(repo),
		RemoteURL:     remoteURL(repo),
		RecentCommits: recentCommits(repo, maxRecentCommits),
	}

	info.Status, info.ChangedFiles = workStatus(repo)

	if owner, name, ok := forge.ParseGitHubURL(info.RemoteURL); ok {
		info.Owner = owner
		info.RepoName = name
	}

	return info
}

// currentBranch returns the branch shorthand, a detached@<hash7> marker
// for detached HEAD, or "HEAD" when nothing better is known.
func currentBranch(repo *git.Repository) string {
	head, err := repo.Head()
	if err != nil {
		return "HEAD"
	}

	if head.Name().IsBranch() {
		return head.Name().Short()
	}

	if hash := head.Hash(); !hash.IsZero() {
		return fmt.Sprintf("detached@%s", hash.String()[:7])
	}
	return "detached"
}

func listBranches(repo *git.Repository) []string {
	var names []string
	iter, err := repo.Branches()
	if err != nil {
		return names
	}
	defer iter.Close()

	_ = iter.ForEach(func(ref *plumbing.Reference) error {
		names = append(names, ref.Name().Short())
		return nil
	})
	return names
}

// workStatus classifies each changed file into exactly one of
// modified/added/deleted, preferring modified (including renames) over
// added over deleted so nothing is double-counted. Paths are sorted so the
// changed-files list is stable across runs.
func workStatus(repo *git.Repository) (WorkStatus, []string) {
	wt, err := repo.Worktree()
	if err != nil {
		return WorkStatus{}, nil
	}
	status, err := wt.Status()
	if err != nil {
		return WorkStatus{}, nil
	}

	paths := make([]string, 0, len(status))
	for p := range status {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	var ws WorkStatus
	var changed []string
	for _, p := range paths {
		fs := status[p]
		switch {
		case isCode(fs, git.Modified) || isCode(fs, git.Renamed):
			ws.Modified++
			changed = append(changed, "M "+p)
		case fs.Staging == git.Added || fs.Worktree == git.Untracked:
			ws.Added++
			changed = append(changed, "A "+p)
		case isCode(fs, git.Deleted):
			ws.Deleted++
			changed = append(changed, "D "+p)
		}
	}
	return ws, changed
}

func isCode(fs *git.FileStatus, code git.StatusCode) bool {
	return fs.Staging == code || fs.Worktree == code
}

func remoteURL(repo *git.Repository) string {
	remote, err := repo.Remote("origin")
	if err != nil {
		return ""
	}
	urls := remote.Config().URLs
	if len(urls) == 0 {
		return ""
	}
	return urls[0]
}

// recentCommits walks history from HEAD, newest first, up to count
// entries. An unborn HEAD yields an empty list.
func recentCommits(repo *git.Repository, count int) []CommitInfo {
	head, err := repo.Head()
	if err != nil {
		return nil
	}

	iter, err := repo.Log(&git.LogOptions{From: head.Hash()})
	if err != nil {
		return nil
	}
	defer iter.Close()

	var commits []CommitInfo
	_ = iter.ForEach(func(c *object.Commit) error {
		commits = append(commits, CommitInfo{
			Hash:    c.Hash.String()[:7],
			Message: summaryLine(c.Message),
			Author:  c.Author.Name,
			When:    formatWhen(c.Author.When),
		})
		if len(commits) >= count {
			return storer.ErrStop
		}
		return nil
	})
	return commits
}

func summaryLine(message string) string {
	if i := strings.IndexByte(message, '\n'); i >= 0 {
		message = message[:i]
	}
	return strings.TrimSpace(message)
}
