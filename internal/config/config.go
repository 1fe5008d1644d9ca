package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const DefaultConfigPath = "~/.config/repodash/repodash.yaml"

// CacheTTL holds cache expiry settings, in minutes. Zero disables caching.
type CacheTTL struct {
	Repos  int `yaml:"repos"`
	GitHub int `yaml:"github"`
}

// SSH configures the optional wish server that serves the dashboard to
// remote SSH clients.
type SSH struct {
	Port       int    `yaml:"port"`
	HostKeyDir string `yaml:"host_key_dir"`
}

type Config struct {
	ScanPath    string   `yaml:"scan_path"`
	GitHubToken string   `yaml:"github_token"`
	LogFile     string   `yaml:"log_file"`
	TickMS      int      `yaml:"tick_ms"`
	SkipDirs    []string `yaml:"skip_dirs"` // appended to the built-in skip list
	CacheTTL    CacheTTL `yaml:"cache_ttl"`
	SSH         SSH      `yaml:"ssh"`
}

func Default() Config {
	home, _ := os.UserHomeDir()
	return Config{
		ScanPath: ".",
		TickMS:   250,
		CacheTTL: CacheTTL{
			Repos:  60,
			GitHub: 60,
		},
		SSH: SSH{
			Port:       2222,
			HostKeyDir: filepath.Join(home, ".ssh"),
		},
	}
}

func expandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[1:])
	}
	return path
}

func Load(path string) (Config, error) {
	cfg := Default()

	resolved := expandPath(path)
	data, err := os.ReadFile(resolved)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", resolved, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", resolved, err)
	}

	cfg.ScanPath = expandPath(cfg.ScanPath)
	cfg.LogFile = expandPath(cfg.LogFile)
	cfg.SSH.HostKeyDir = expandPath(cfg.SSH.HostKeyDir)

	// The GITHUB_TOKEN environment variable wins over the config file.
	if tok := os.Getenv("GITHUB_TOKEN"); tok != "" {
		cfg.GitHubToken = tok
	}

	if err := validate(cfg); err != nil {
		return cfg, err
	}

	return cfg, nil
}

func validate(cfg Config) error {
	if cfg.ScanPath == "" {
		return fmt.Errorf("scan_path must not be empty")
	}

	if cfg.TickMS < 16 {
		return fmt.Errorf("tick_ms must be >= 16")
	}

	if cfg.CacheTTL.Repos < 0 {
		return fmt.Errorf("cache_ttl.repos must be >= 0")
	}
	if cfg.CacheTTL.GitHub < 0 {
		return fmt.Errorf("cache_ttl.github must be >= 0")
	}

	if cfg.SSH.Port < 1 || cfg.SSH.Port > 65535 {
		return fmt.Errorf("ssh.port %d out of range (1-65535)", cfg.SSH.Port)
	}

	return nil
}
