package gitscan

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
)

// defaultSkipDirs lists dependency, build, and cache directory basenames
// that are never descended into, along with a few macOS user folders that
// are large and never hold projects.
var defaultSkipDirs = []string{
	"node_modules",
	"target",
	"build",
	"dist",
	"out",
	"vendor",
	"venv",
	".venv",
	"__pycache__",
	"Pods",
	"DerivedData",
	".gradle",
	".cargo",
	".rustup",
	"Library",
	"Applications",
	"Music",
	"Movies",
	"Pictures",
	"Photos",
	".Trash",
}

// Scanner walks a directory tree looking for git repositories, analyzing
// each through a shared TTL cache.
type Scanner struct {
	cache *Cache
	log   *log.Logger
	skip  map[string]struct{}

	// analyze is swappable so tests can count or stub extractions.
	analyze func(string) *RepoInfo
}

// NewScanner builds a Scanner. extraSkip entries are added to the built-in
// skip list.
func NewScanner(cache *Cache, logger *log.Logger, extraSkip []string) *Scanner {
	skip := make(map[string]struct{}, len(defaultSkipDirs)+len(extraSkip))
	for _, d := range defaultSkipDirs {
		skip[d] = struct{}{}
	}
	for _, d := range extraSkip {
		skip[d] = struct{}{}
	}
	return &Scanner{
		cache:   cache,
		log:     logger,
		skip:    skip,
		analyze: Analyze,
	}
}

// Cache exposes the scanner's cache for bulk invalidation.
func (s *Scanner) Cache() *Cache {
	return s.cache
}

// Scan returns every repository under root, sorted case-insensitively by
// name. A root that is itself a repository is returned alone without
// descending further; repositories found while descending are still
// recursed into, since repositories may nest.
func (s *Scanner) Scan(root string) []RepoInfo {
	var repos []RepoInfo

	if isRepo(root) {
		if info := s.analyzeCached(root); info != nil {
			repos = append(repos, *info)
		}
		return repos
	}

	s.walk(root, &repos)
	sort.Slice(repos, func(i, j int) bool {
		return strings.ToLower(repos[i].Name) < strings.ToLower(repos[j].Name)
	})
	return repos
}

func (s *Scanner) walk(dir string, repos *[]RepoInfo) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		// Permission errors and the like skip the directory, not the scan.
		s.log.Debug("skipping unreadable directory", "path", dir, "error", err)
		return
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		if _, skip := s.skip[name]; skip {
			continue
		}

		path := filepath.Join(dir, name)
		if isRepo(path) {
			if info := s.analyzeCached(path); info != nil {
				*repos = append(*repos, *info)
			}
		}
		// Keep descending even into repositories: they may contain
		// nested repositories of their own.
		s.walk(path, repos)
	}
}

// isRepo reports whether path holds a .git entry. A .git file (not just a
// directory) counts, to support worktrees and submodules.
func isRepo(path string) bool {
	_, err := os.Stat(filepath.Join(path, ".git"))
	return err == nil
}

func (s *Scanner) analyzeCached(path string) *RepoInfo {
	if info, ok := s.cache.Get(path); ok {
		return &info
	}

	info := s.analyze(path)
	if info == nil {
		return nil
	}
	s.cache.Put(*info)
	return info
}
