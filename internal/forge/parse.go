// Package forge talks to GitHub: remote URL parsing, issue/PR fetching,
// and the process-wide TTL cache in front of the API.
package forge

import (
	"fmt"
	"strings"
)

// ParseGitHubURL extracts (owner, repo) from a git remote URL pointing at
// GitHub. Both the scp-like SSH form (git@github.com:owner/repo.git) and
// HTTPS-like forms containing github.com are recognized; a trailing .git
// is stripped. ok is false for other hosts or malformed input.
func ParseGitHubURL(url string) (owner, repo string, ok bool) {
	// SSH: git@github.com:owner/repo.git is not a real URL, so no net/url.
	if rest, found := strings.CutPrefix(url, "git@github.com:"); found {
		rest = strings.TrimSuffix(rest, ".git")
		parts := strings.SplitN(rest, "/", 2)
		if len(parts) == 2 && parts[0] != "" && parts[1] != "" {
			return parts[0], parts[1], true
		}
		return "", "", false
	}

	// HTTPS: https://github.com/owner/repo.git; owner and repo are the
	// last two path segments.
	if strings.Contains(url, "github.com") {
		trimmed := strings.TrimSuffix(url, ".git")
		parts := strings.Split(trimmed, "/")
		if len(parts) < 2 {
			return "", "", false
		}
		owner = parts[len(parts)-2]
		repo = parts[len(parts)-1]
		if owner == "" || repo == "" || strings.Contains(owner, ":") || strings.Contains(owner, ".") {
			return "", "", false
		}
		return owner, repo, true
	}

	return "", "", false
}

// IssueURL returns the browser URL for an issue.
func IssueURL(owner, repo string, number int) string {
	return fmt.Sprintf("https://github.com/%s/%s/issues/%d", owner, repo, number)
}

// PullURL returns the browser URL for a pull request.
func PullURL(owner, repo string, number int) string {
	return fmt.Sprintf("https://github.com/%s/%s/pull/%d", owner, repo, number)
}
