package hosting

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/ehuss/cargo-clone-crate/pkg/clone"
)

// Defaults for the public hosting services. Overriding them is how the
// detector is pointed at a mock server in tests.
const (
	DefaultGitHubURL       = "https://github.com"
	DefaultGitLabURL       = "https://gitlab.com"
	DefaultBitbucketAPIURL = "https://api.bitbucket.org/2.0/repositories"
	DefaultPijulNestURL    = "https://nest.pijul.com/"
)

// ErrUnknownVCS is returned when a declared repository URL matches no
// known hosting pattern. The user must pick a method explicitly.
var ErrUnknownVCS = errors.New("could not determine the VCS from the repository URL")

// Owner and repo are the first two path segments and exclude `/`; any
// trailing segments are ignored.
var (
	githubPattern    = regexp.MustCompile(`^https?://(?:www\.)?github\.com/([^/]+)/([^/]+)`)
	gitlabPattern    = regexp.MustCompile(`^https?://(?:www\.)?gitlab\.com/([^/]+)/([^/]+)`)
	bitbucketPattern = regexp.MustCompile(`^https?://(?:www\.)?bitbucket\.(?:org|com)/([^/]+)/([^/]+)`)
)

// Detector classifies repository/homepage URLs into VCS targets.
//
// Detection is an ordered rule table evaluated first-match-wins; new
// hosting providers slot in above the catch-all failure. The Bitbucket
// rule needs a network round trip because bitbucket paths alone do not
// reveal whether a repository is git or mercurial.
type Detector struct {
	githubURL    string
	gitlabURL    string
	pijulNestURL string
	bitbucket    *bitbucketClient
}

// Config holds the detector's base URLs. Zero-value fields fall back to
// the public services.
type Config struct {
	GitHubURL       string
	GitLabURL       string
	BitbucketAPIURL string
	PijulNestURL    string
	UserAgent       string
	HTTPTimeout     time.Duration
}

// NewDetector creates a Detector with the given hosting endpoints.
func NewDetector(cfg Config) *Detector {
	if cfg.GitHubURL == "" {
		cfg.GitHubURL = DefaultGitHubURL
	}
	if cfg.GitLabURL == "" {
		cfg.GitLabURL = DefaultGitLabURL
	}
	if cfg.BitbucketAPIURL == "" {
		cfg.BitbucketAPIURL = DefaultBitbucketAPIURL
	}
	if cfg.PijulNestURL == "" {
		cfg.PijulNestURL = DefaultPijulNestURL
	}
	return &Detector{
		githubURL:    cfg.GitHubURL,
		gitlabURL:    cfg.GitLabURL,
		pijulNestURL: cfg.PijulNestURL,
		bitbucket:    newBitbucketClient(cfg.BitbucketAPIURL, cfg.UserAgent, cfg.HTTPTimeout),
	}
}

// rule pairs a predicate with its handler; Detect walks the table in
// order and the first matching rule decides.
type rule struct {
	match  func(location string) []string
	handle func(ctx context.Context, location string, captures []string) (clone.Target, error)
}

// Detect classifies location into a VCS and a normalized clone URL.
//
// URLs ending in `.git` are git regardless of host. GitHub- and
// GitLab-style URLs are rewritten to `<base>/<owner>/<repo>.git`;
// Bitbucket is disambiguated through its API; Pijul nest URLs pass
// through unchanged. Anything else is [ErrUnknownVCS].
func (d *Detector) Detect(ctx context.Context, location string) (clone.Target, error) {
	for _, r := range d.rules() {
		if captures := r.match(location); captures != nil {
			return r.handle(ctx, location, captures)
		}
	}
	return clone.Target{}, fmt.Errorf("%w: `%s`; use --method to specify how to download", ErrUnknownVCS, location)
}

func (d *Detector) rules() []rule {
	return []rule{
		{
			match: suffixMatch(".git"),
			handle: func(_ context.Context, location string, _ []string) (clone.Target, error) {
				return clone.Target{VCS: clone.Git, Location: location}, nil
			},
		},
		{
			match: githubPattern.FindStringSubmatch,
			handle: func(_ context.Context, _ string, c []string) (clone.Target, error) {
				return clone.Target{VCS: clone.Git, Location: fmt.Sprintf("%s/%s/%s.git", d.githubURL, c[1], c[2])}, nil
			},
		},
		{
			match: gitlabPattern.FindStringSubmatch,
			handle: func(_ context.Context, _ string, c []string) (clone.Target, error) {
				return clone.Target{VCS: clone.Git, Location: fmt.Sprintf("%s/%s/%s.git", d.gitlabURL, c[1], c[2])}, nil
			},
		},
		{
			match: bitbucketPattern.FindStringSubmatch,
			handle: func(ctx context.Context, _ string, c []string) (clone.Target, error) {
				return d.bitbucket.disambiguate(ctx, c[1], c[2])
			},
		},
		{
			match: prefixMatch(d.pijulNestURL),
			handle: func(_ context.Context, location string, _ []string) (clone.Target, error) {
				return clone.Target{VCS: clone.Pijul, Location: location}, nil
			},
		},
	}
}

func suffixMatch(suffix string) func(string) []string {
	return func(location string) []string {
		if strings.HasSuffix(location, suffix) {
			return []string{location}
		}
		return nil
	}
}

func prefixMatch(prefix string) func(string) []string {
	return func(location string) []string {
		if strings.HasPrefix(location, prefix) {
			return []string{location}
		}
		return nil
	}
}
