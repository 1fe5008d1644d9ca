package gitscan

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func testScanner(ttl time.Duration) *Scanner {
	return NewScanner(NewCache(ttl), log.New(io.Discard), nil)
}

func mkRepo(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(path, 0755); err != nil {
		t.Fatal(err)
	}
	initRepo(t, path)
}

func repoNames(repos []RepoInfo) []string {
	names := make([]string, len(repos))
	for i, r := range repos {
		names[i] = r.Name
	}
	return names
}

func TestScanFindsNestedRepos(t *testing.T) {
	root := t.TempDir()
	mkRepo(t, filepath.Join(root, "group", "repo-a"))
	mkRepo(t, filepath.Join(root, "group", "repo-b"))
	if err := os.MkdirAll(filepath.Join(root, "group", "not-a-repo"), 0755); err != nil {
		t.Fatal(err)
	}

	repos := testScanner(time.Hour).Scan(root)
	got := repoNames(repos)
	want := []string{"repo-a", "repo-b"}
	if len(got) != len(want) {
		t.Fatalf("Scan = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Scan[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestScanRootIsRepo(t *testing.T) {
	root := t.TempDir()
	mkRepo(t, root)
	// A repository root is returned alone; nothing underneath is visited.
	mkRepo(t, filepath.Join(root, "inner"))

	repos := testScanner(time.Hour).Scan(root)
	if len(repos) != 1 || repos[0].Path != root {
		t.Fatalf("Scan = %v, want just the root", repoNames(repos))
	}
}

func TestScanRecursesIntoRepos(t *testing.T) {
	root := t.TempDir()
	mkRepo(t, filepath.Join(root, "outer"))
	mkRepo(t, filepath.Join(root, "outer", "inner"))

	got := repoNames(testScanner(time.Hour).Scan(root))
	want := []string{"inner", "outer"}
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("Scan = %v, want %v", got, want)
	}
}

func TestScanSkipsHiddenAndSkipList(t *testing.T) {
	root := t.TempDir()
	mkRepo(t, filepath.Join(root, ".hidden", "repo"))
	mkRepo(t, filepath.Join(root, "node_modules", "repo"))
	mkRepo(t, filepath.Join(root, "custom-skip", "repo"))
	mkRepo(t, filepath.Join(root, "visible"))

	s := NewScanner(NewCache(time.Hour), log.New(io.Discard), []string{"custom-skip"})
	got := repoNames(s.Scan(root))
	if len(got) != 1 || got[0] != "visible" {
		t.Fatalf("Scan = %v, want [visible]", got)
	}
}

func TestScanSortsCaseInsensitively(t *testing.T) {
	root := t.TempDir()
	mkRepo(t, filepath.Join(root, "Banana"))
	mkRepo(t, filepath.Join(root, "apple"))
	mkRepo(t, filepath.Join(root, "cherry"))

	got := repoNames(testScanner(time.Hour).Scan(root))
	want := []string{"apple", "Banana", "cherry"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Scan = %v, want %v", got, want)
		}
	}
}

func TestScanMissingRoot(t *testing.T) {
	repos := testScanner(time.Hour).Scan(filepath.Join(t.TempDir(), "nope"))
	if len(repos) != 0 {
		t.Fatalf("Scan of missing root = %v, want empty", repoNames(repos))
	}
}

func TestScanUsesCache(t *testing.T) {
	root := t.TempDir()
	mkRepo(t, filepath.Join(root, "repo-a"))
	mkRepo(t, filepath.Join(root, "repo-b"))

	s := testScanner(time.Hour)
	calls := 0
	s.analyze = func(path string) *RepoInfo {
		calls++
		return &RepoInfo{Name: filepath.Base(path), Path: path}
	}

	first := s.Scan(root)
	second := s.Scan(root)
	if calls != 2 {
		t.Errorf("analyze called %d times across two scans, want 2", calls)
	}
	if len(first) != len(second) {
		t.Fatalf("scans disagree: %v vs %v", repoNames(first), repoNames(second))
	}
	for i := range first {
		if first[i].Path != second[i].Path {
			t.Errorf("scans disagree at %d: %q vs %q", i, first[i].Path, second[i].Path)
		}
	}
}

func TestScanZeroTTLReanalyzes(t *testing.T) {
	root := t.TempDir()
	mkRepo(t, filepath.Join(root, "repo-a"))

	s := testScanner(0)
	calls := 0
	s.analyze = func(path string) *RepoInfo {
		calls++
		return &RepoInfo{Name: filepath.Base(path), Path: path}
	}

	s.Scan(root)
	s.Scan(root)
	if calls != 2 {
		t.Errorf("analyze called %d times with caching disabled, want 2", calls)
	}
}

func TestScanClearForcesReanalysis(t *testing.T) {
	root := t.TempDir()
	mkRepo(t, filepath.Join(root, "repo-a"))

	s := testScanner(time.Hour)
	calls := 0
	s.analyze = func(path string) *RepoInfo {
		calls++
		return &RepoInfo{Name: filepath.Base(path), Path: path}
	}

	s.Scan(root)
	s.Cache().Clear()
	s.Scan(root)
	if calls != 2 {
		t.Errorf("analyze called %d times around a Clear, want 2", calls)
	}
}

func TestScanDropsFailedAnalysis(t *testing.T) {
	root := t.TempDir()
	mkRepo(t, filepath.Join(root, "repo-a"))

	s := testScanner(time.Hour)
	s.analyze = func(string) *RepoInfo { return nil }

	if repos := s.Scan(root); len(repos) != 0 {
		t.Fatalf("Scan = %v, want empty when analysis fails", repoNames(repos))
	}
}
