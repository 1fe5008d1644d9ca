package forge

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/go-github/v21/github"
)

// setup returns a Client whose API calls hit a local test server, plus the
// mux to register handlers on.
func setup(t *testing.T, ttl time.Duration) (*Client, *http.ServeMux) {
	t.Helper()

	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	gh := github.NewClient(nil)
	base, _ := url.Parse(server.URL + "/")
	gh.BaseURL = base

	return &Client{
		gh:    gh,
		cache: NewCache(ttl),
		log:   log.New(io.Discard),
	}, mux
}

func registerRepo(mux *http.ServeMux, owner, repo string, openIssuesCount, prSearchTotal int, issuesJSON, pullsJSON string, issueCalls *int) {
	prefix := fmt.Sprintf("/repos/%s/%s", owner, repo)

	mux.HandleFunc(prefix+"/issues", func(w http.ResponseWriter, r *http.Request) {
		if issueCalls != nil {
			*issueCalls++
		}
		fmt.Fprint(w, issuesJSON)
	})
	mux.HandleFunc(prefix+"/pulls", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, pullsJSON)
	})
	mux.HandleFunc(prefix, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"open_issues_count": %d}`, openIssuesCount)
	})
	mux.HandleFunc("/search/issues", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"total_count": %d, "items": []}`, prSearchTotal)
	})
}

func TestFetchCountCorrection(t *testing.T) {
	c, mux := setup(t, time.Hour)
	registerRepo(mux, "o", "r", 12, 5,
		`[{"number": 1, "title": "bug"}]`,
		`[{"number": 2, "title": "fix"}]`, nil)

	data, err := c.Fetch(context.Background(), "o", "r")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if data.OpenIssues != 7 {
		t.Errorf("OpenIssues = %d, want 7", data.OpenIssues)
	}
	if data.OpenPRs != 5 {
		t.Errorf("OpenPRs = %d, want 5", data.OpenPRs)
	}
}

func TestFetchCountNeverNegative(t *testing.T) {
	c, mux := setup(t, time.Hour)
	registerRepo(mux, "o", "r", 3, 5, `[]`, `[]`, nil)

	data, err := c.Fetch(context.Background(), "o", "r")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if data.OpenIssues != 0 {
		t.Errorf("OpenIssues = %d, want 0", data.OpenIssues)
	}
}

func TestFetchFiltersPRsFromRecentIssues(t *testing.T) {
	c, mux := setup(t, time.Hour)
	// The middle entry is a PR masquerading as an issue.
	issues := `[
		{"number": 1, "title": "real issue"},
		{"number": 2, "title": "a pr", "pull_request": {"url": "https://example.com"}},
		{"number": 3, "title": "another issue"}
	]`
	registerRepo(mux, "o", "r", 10, 4, issues, `[{"number": 2, "title": "a pr"}]`, nil)

	data, err := c.Fetch(context.Background(), "o", "r")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(data.RecentIssues) != 2 {
		t.Fatalf("RecentIssues has %d entries, want 2", len(data.RecentIssues))
	}
	if data.RecentIssues[0].Number != 1 || data.RecentIssues[1].Number != 3 {
		t.Errorf("RecentIssues = %+v, want numbers 1 and 3", data.RecentIssues)
	}
	if len(data.RecentPRs) != 1 || data.RecentPRs[0].Number != 2 {
		t.Errorf("RecentPRs = %+v, want number 2", data.RecentPRs)
	}
}

func TestFetchServedFromCache(t *testing.T) {
	var issueCalls int
	c, mux := setup(t, time.Hour)
	registerRepo(mux, "o", "r", 2, 1, `[{"number": 1, "title": "x"}]`, `[]`, &issueCalls)

	for i := 0; i < 3; i++ {
		if _, err := c.Fetch(context.Background(), "o", "r"); err != nil {
			t.Fatalf("fetch %d: %v", i, err)
		}
	}

	if issueCalls != 1 {
		t.Errorf("issues endpoint hit %d times, want 1", issueCalls)
	}
}

func TestInvalidateForcesRefetch(t *testing.T) {
	var issueCalls int
	c, mux := setup(t, time.Hour)
	registerRepo(mux, "o", "r", 2, 1, `[]`, `[]`, &issueCalls)

	if _, err := c.Fetch(context.Background(), "o", "r"); err != nil {
		t.Fatal(err)
	}
	c.cache.Invalidate("o", "r")
	if _, err := c.Fetch(context.Background(), "o", "r"); err != nil {
		t.Fatal(err)
	}

	if issueCalls != 2 {
		t.Errorf("issues endpoint hit %d times, want 2", issueCalls)
	}
}

func TestZeroTTLNeverCaches(t *testing.T) {
	var issueCalls int
	c, mux := setup(t, 0)
	registerRepo(mux, "o", "r", 2, 1, `[]`, `[]`, &issueCalls)

	for i := 0; i < 2; i++ {
		if _, err := c.Fetch(context.Background(), "o", "r"); err != nil {
			t.Fatal(err)
		}
	}

	if issueCalls != 2 {
		t.Errorf("issues endpoint hit %d times, want 2", issueCalls)
	}
}

func TestFetchTotalsFallBackToItemCounts(t *testing.T) {
	c, mux := setup(t, time.Hour)
	// Only the listing endpoints exist; repo metadata and search 404.
	mux.HandleFunc("/repos/o/r/issues", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[{"number": 1, "title": "a"}, {"number": 2, "title": "b"}]`)
	})
	mux.HandleFunc("/repos/o/r/pulls", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[{"number": 3, "title": "c"}]`)
	})

	data, err := c.Fetch(context.Background(), "o", "r")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 2 listed issues minus 1 listed PR.
	if data.OpenIssues != 1 {
		t.Errorf("OpenIssues = %d, want 1", data.OpenIssues)
	}
	if data.OpenPRs != 1 {
		t.Errorf("OpenPRs = %d, want 1", data.OpenPRs)
	}
}

func TestFetchErrorSurfaces(t *testing.T) {
	c, mux := setup(t, time.Hour)
	mux.HandleFunc("/repos/o/r/issues", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	if _, err := c.Fetch(context.Background(), "o", "r"); err == nil {
		t.Fatal("expected error from failing issues endpoint")
	}
}

func TestCacheGetPutInvalidate(t *testing.T) {
	cache := NewCache(time.Hour)

	if _, ok := cache.Get("o", "r"); ok {
		t.Fatal("empty cache should miss")
	}

	cache.Put("o", "r", RepoData{OpenIssues: 3})
	data, ok := cache.Get("o", "r")
	if !ok || data.OpenIssues != 3 {
		t.Fatalf("Get after Put = (%+v, %v)", data, ok)
	}

	// A second Put overwrites unconditionally.
	cache.Put("o", "r", RepoData{OpenIssues: 9})
	if data, _ := cache.Get("o", "r"); data.OpenIssues != 9 {
		t.Errorf("overwrite not applied, got %+v", data)
	}

	cache.Invalidate("o", "r")
	if _, ok := cache.Get("o", "r"); ok {
		t.Fatal("Get after Invalidate should miss")
	}
}
