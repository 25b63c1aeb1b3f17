package hosting

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ehuss/cargo-clone-crate/pkg/clone"
)

func newTestDetector() *Detector {
	return NewDetector(Config{UserAgent: "test-agent"})
}

func TestDetect_GitSuffixUnchanged(t *testing.T) {
	d := newTestDetector()
	target, err := d.Detect(context.Background(), "https://example.com/anything/repo.git")
	if err != nil {
		t.Fatalf("Detect failed: %v", err)
	}
	if target.VCS != clone.Git {
		t.Errorf("expected git, got %s", target.VCS)
	}
	if target.Location != "https://example.com/anything/repo.git" {
		t.Errorf("location must pass through unchanged, got %s", target.Location)
	}
}

func TestDetect_GitHubRewrite(t *testing.T) {
	tests := []struct {
		location string
		want     string
	}{
		{"https://github.com/acme/widgets", "https://github.com/acme/widgets.git"},
		{"http://www.github.com/acme/widgets", "https://github.com/acme/widgets.git"},
		// Trailing path segments beyond the repo are ignored.
		{"https://github.com/acme/widgets/tree/main/sub", "https://github.com/acme/widgets.git"},
	}
	d := newTestDetector()
	for _, tt := range tests {
		t.Run(tt.location, func(t *testing.T) {
			target, err := d.Detect(context.Background(), tt.location)
			if err != nil {
				t.Fatalf("Detect failed: %v", err)
			}
			if target.VCS != clone.Git || target.Location != tt.want {
				t.Errorf("got (%s, %s), want (git, %s)", target.VCS, target.Location, tt.want)
			}
		})
	}
}

func TestDetect_GitLabRewrite(t *testing.T) {
	d := newTestDetector()
	target, err := d.Detect(context.Background(), "https://gitlab.com/acme/widgets")
	if err != nil {
		t.Fatalf("Detect failed: %v", err)
	}
	if target.VCS != clone.Git || target.Location != "https://gitlab.com/acme/widgets.git" {
		t.Errorf("unexpected target: %+v", target)
	}
}

func TestDetect_PijulNest(t *testing.T) {
	d := newTestDetector()
	target, err := d.Detect(context.Background(), "https://nest.pijul.com/pijul_org/pijul")
	if err != nil {
		t.Fatalf("Detect failed: %v", err)
	}
	if target.VCS != clone.Pijul {
		t.Errorf("expected pijul, got %s", target.VCS)
	}
	if target.Location != "https://nest.pijul.com/pijul_org/pijul" {
		t.Errorf("location must pass through unchanged, got %s", target.Location)
	}
}

func TestDetect_UnknownVCS(t *testing.T) {
	d := newTestDetector()
	_, err := d.Detect(context.Background(), "https://example.com/some/page")
	if !errors.Is(err, ErrUnknownVCS) {
		t.Errorf("expected ErrUnknownVCS, got %v", err)
	}
}

func bitbucketDetector(t *testing.T, handler http.HandlerFunc) (*Detector, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewDetector(Config{BitbucketAPIURL: server.URL, UserAgent: "test-agent"}), server
}

func TestDetect_BitbucketMercurial(t *testing.T) {
	d, _ := bitbucketDetector(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/acme/widgets" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte(`{"scm":"hg","links":{"clone":[{"name":"ssh","href":"ssh://x/y"},{"name":"https","href":"https://x/y"}]}}`))
	})

	target, err := d.Detect(context.Background(), "https://bitbucket.org/acme/widgets")
	if err != nil {
		t.Fatalf("Detect failed: %v", err)
	}
	if target.VCS != clone.Mercurial {
		t.Errorf("expected hg, got %s", target.VCS)
	}
	if target.Location != "https://x/y" {
		t.Errorf("expected https clone href, got %s", target.Location)
	}
}

func TestDetect_BitbucketGit(t *testing.T) {
	d, _ := bitbucketDetector(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"scm":"git","links":{"clone":[{"name":"https","href":"https://bitbucket.org/acme/widgets.git"}]}}`))
	})

	// bitbucket.com is accepted alongside bitbucket.org.
	target, err := d.Detect(context.Background(), "https://bitbucket.com/acme/widgets")
	if err != nil {
		t.Fatalf("Detect failed: %v", err)
	}
	if target.VCS != clone.Git {
		t.Errorf("expected git, got %s", target.VCS)
	}
}

func TestDetect_BitbucketUnsupportedSCM(t *testing.T) {
	d, _ := bitbucketDetector(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"scm":"svn","links":{"clone":[{"name":"https","href":"https://x/y"}]}}`))
	})

	_, err := d.Detect(context.Background(), "https://bitbucket.org/acme/widgets")
	if !errors.Is(err, ErrUnsupportedSCM) {
		t.Errorf("expected ErrUnsupportedSCM, got %v", err)
	}
}

func TestDetect_BitbucketMalformedResponses(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing scm", `{"links":{"clone":[{"name":"https","href":"https://x/y"}]}}`},
		{"missing clone list", `{"scm":"git","links":{}}`},
		{"no https link", `{"scm":"git","links":{"clone":[{"name":"ssh","href":"ssh://x/y"}]}}`},
		{"https link without href", `{"scm":"git","links":{"clone":[{"name":"https"}]}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := tt.body
			d, _ := bitbucketDetector(t, func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(body))
			})
			_, err := d.Detect(context.Background(), "https://bitbucket.org/acme/widgets")
			if !errors.Is(err, ErrMalformedResponse) {
				t.Errorf("expected ErrMalformedResponse, got %v", err)
			}
		})
	}
}

func TestDetect_BitbucketAPIFailure(t *testing.T) {
	d, server := bitbucketDetector(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})

	_, err := d.Detect(context.Background(), "https://bitbucket.org/acme/widgets")
	if err == nil {
		t.Fatal("expected error for failing API")
	}
	// The error names the URL and the status so the user can see what the
	// API said.
	if want := server.URL + "/acme/widgets"; !strings.Contains(err.Error(), want) || !strings.Contains(err.Error(), "403") {
		t.Errorf("error should name URL and status, got: %v", err)
	}
}

func TestDetect_RuleOrder(t *testing.T) {
	// A github URL ending in .git must hit the .git rule first and stay
	// unchanged.
	d := newTestDetector()
	target, err := d.Detect(context.Background(), "https://github.com/acme/widgets.git")
	if err != nil {
		t.Fatalf("Detect failed: %v", err)
	}
	if target.Location != "https://github.com/acme/widgets.git" {
		t.Errorf("expected .git rule to win, got %s", target.Location)
	}
}
