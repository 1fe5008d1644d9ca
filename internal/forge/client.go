package forge

import (
	"context"
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/google/go-github/v21/github"
	"golang.org/x/oauth2"
)

// RecentItems bounds both the recent issue/PR lists and the page size used
// when fetching them.
const RecentItems = 5

// Item is one issue or pull request, trimmed to what the dashboard shows.
type Item struct {
	Number int
	Title  string
}

// RepoData holds the GitHub state of one repository.
type RepoData struct {
	OpenIssues   int // PRs already subtracted
	OpenPRs      int
	RecentIssues []Item
	RecentPRs    []Item
}

// Client fetches issue and PR data for repositories, cache-first.
type Client struct {
	gh    *github.Client
	cache *Cache
	log   *log.Logger
}

// NewClient builds a Client. An empty token yields an unauthenticated
// client, which works for public repositories at a lower rate limit.
func NewClient(token string, cache *Cache, logger *log.Logger) *Client {
	var hc *http.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		hc = oauth2.NewClient(context.Background(), ts)
	}
	return &Client{
		gh:    github.NewClient(hc),
		cache: cache,
		log:   logger,
	}
}

// Fetch returns GitHub data for owner/repo. A fresh cache entry
// short-circuits the network entirely; otherwise the result of a
// successful fetch overwrites the cache. Errors are returned as-is with
// no retry; retrying is a user action at the dashboard level.
func (c *Client) Fetch(ctx context.Context, owner, repo string) (*RepoData, error) {
	if data, ok := c.cache.Get(owner, repo); ok {
		c.log.Debug("github cache hit", "repo", cacheKey(owner, repo))
		return &data, nil
	}

	issues, _, err := c.gh.Issues.ListByRepo(ctx, owner, repo, &github.IssueListByRepoOptions{
		State:       "open",
		ListOptions: github.ListOptions{PerPage: RecentItems},
	})
	if err != nil {
		return nil, fmt.Errorf("listing issues for %s: %w", cacheKey(owner, repo), err)
	}

	prs, _, err := c.gh.PullRequests.List(ctx, owner, repo, &github.PullRequestListOptions{
		State:       "open",
		ListOptions: github.ListOptions{PerPage: RecentItems},
	})
	if err != nil {
		return nil, fmt.Errorf("listing pull requests for %s: %w", cacheKey(owner, repo), err)
	}

	issueTotal, prTotal := c.fetchTotals(ctx, owner, repo, len(issues), len(prs))

	// GitHub's issue count includes pull requests; subtract to report
	// plain issues only.
	openIssues := issueTotal - prTotal
	if openIssues < 0 {
		openIssues = 0
	}

	data := RepoData{
		OpenIssues: openIssues,
		OpenPRs:    prTotal,
	}

	// The issues listing also contains PRs; drop them from the recent list.
	for _, is := range issues {
		if is.IsPullRequest() {
			continue
		}
		if len(data.RecentIssues) == RecentItems {
			break
		}
		data.RecentIssues = append(data.RecentIssues, Item{
			Number: is.GetNumber(),
			Title:  is.GetTitle(),
		})
	}
	for _, pr := range prs {
		if len(data.RecentPRs) == RecentItems {
			break
		}
		data.RecentPRs = append(data.RecentPRs, Item{
			Number: pr.GetNumber(),
			Title:  pr.GetTitle(),
		})
	}

	c.cache.Put(owner, repo, data)
	c.log.Debug("github fetched", "repo", cacheKey(owner, repo),
		"issues", data.OpenIssues, "prs", data.OpenPRs)
	return &data, nil
}

// Invalidate drops the cache entry for owner/repo so the next Fetch hits
// the network.
func (c *Client) Invalidate(owner, repo string) {
	c.cache.Invalidate(owner, repo)
}

// fetchTotals asks GitHub for the reported totals: the repository's
// open-issue count (which includes PRs) and the search API's open-PR count.
// Either call failing falls back to the number of items the listings
// returned.
func (c *Client) fetchTotals(ctx context.Context, owner, repo string, issueItems, prItems int) (int, int) {
	issueTotal := issueItems
	if r, _, err := c.gh.Repositories.Get(ctx, owner, repo); err == nil && r.OpenIssuesCount != nil {
		issueTotal = r.GetOpenIssuesCount()
	}

	prTotal := prItems
	query := fmt.Sprintf("repo:%s/%s is:pr is:open", owner, repo)
	if res, _, err := c.gh.Search.Issues(ctx, query, &github.SearchOptions{
		ListOptions: github.ListOptions{PerPage: 1},
	}); err == nil && res.Total != nil {
		prTotal = res.GetTotal()
	}

	return issueTotal, prTotal
}
