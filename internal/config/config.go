// Package config holds the endpoint configuration for cargo-clone.
//
// Every remote service the tool talks to has a documented public default
// and can be overridden through a TOML config file, which is also how the
// integration tests point the tool at mock servers.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/ehuss/cargo-clone-crate/pkg/hosting"
	"github.com/ehuss/cargo-clone-crate/pkg/registry"
)

// Config collects the base URLs and HTTP settings for one invocation.
type Config struct {
	RegistryURL     string        `toml:"registry_url"`
	GitHubURL       string        `toml:"github_url"`
	GitLabURL       string        `toml:"gitlab_url"`
	BitbucketAPIURL string        `toml:"bitbucket_api_url"`
	PijulNestURL    string        `toml:"pijul_nest_url"`
	UserAgent       string        `toml:"user_agent"`
	HTTPTimeout     time.Duration `toml:"-"`

	// TimeoutSeconds is the TOML-facing form of HTTPTimeout.
	TimeoutSeconds int `toml:"timeout_seconds"`
}

// Default returns the configuration pointing at the public services.
// userAgent should be version-stamped; crates.io policy requires outbound
// requests to identify the tool.
func Default(userAgent string) Config {
	return Config{
		RegistryURL:     registry.DefaultBaseURL,
		GitHubURL:       hosting.DefaultGitHubURL,
		GitLabURL:       hosting.DefaultGitLabURL,
		BitbucketAPIURL: hosting.DefaultBitbucketAPIURL,
		PijulNestURL:    hosting.DefaultPijulNestURL,
		UserAgent:       userAgent,
	}
}

// DefaultPath returns the conventional config file location,
// `<user-config-dir>/cargo-clone/config.toml`, or "" when the user config
// directory cannot be determined.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "cargo-clone", "config.toml")
}

// Load overlays the TOML file at path onto base. A missing file is not an
// error; the defaults stand. Unset fields keep their base values.
func Load(path string, base Config) (Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return base, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := base
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if cfg.TimeoutSeconds > 0 {
		cfg.HTTPTimeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	return cfg, nil
}

// Hosting converts the endpoint settings into a detector configuration.
func (c Config) Hosting() hosting.Config {
	return hosting.Config{
		GitHubURL:       c.GitHubURL,
		GitLabURL:       c.GitLabURL,
		BitbucketAPIURL: c.BitbucketAPIURL,
		PijulNestURL:    c.PijulNestURL,
		UserAgent:       c.UserAgent,
		HTTPTimeout:     c.HTTPTimeout,
	}
}
