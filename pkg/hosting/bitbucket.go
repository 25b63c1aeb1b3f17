package hosting

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ehuss/cargo-clone-crate/pkg/clone"
	"github.com/ehuss/cargo-clone-crate/pkg/httputil"
)

var (
	// ErrUnsupportedSCM is returned when the Bitbucket API reports a
	// source-control system other than git or hg.
	ErrUnsupportedSCM = errors.New("unsupported bitbucket scm")

	// ErrMalformedResponse is returned when the Bitbucket API response is
	// missing the scm field, the clone-link list, or an https clone link.
	ErrMalformedResponse = errors.New("malformed bitbucket response")
)

// bitbucketClient queries the Bitbucket repositories API to tell git
// repositories from mercurial ones; the URL path alone cannot.
type bitbucketClient struct {
	http    *httputil.Client
	baseURL string
}

func newBitbucketClient(baseURL, userAgent string, timeout time.Duration) *bitbucketClient {
	headers := map[string]string{"User-Agent": userAgent}
	return &bitbucketClient{
		http:    httputil.NewClient(timeout, headers),
		baseURL: baseURL,
	}
}

type bitbucketResponse struct {
	SCM   string `json:"scm"`
	Links struct {
		Clone []struct {
			Name string `json:"name"`
			Href string `json:"href"`
		} `json:"clone"`
	} `json:"links"`
}

// disambiguate resolves a Bitbucket owner/repo pair into a target. The
// API's scm field picks the tool; the clone link named "https" supplies
// the location. The response is trusted structurally but every field this
// depends on is checked for presence.
func (c *bitbucketClient) disambiguate(ctx context.Context, owner, repo string) (clone.Target, error) {
	url := fmt.Sprintf("%s/%s/%s", c.baseURL, owner, repo)

	var data bitbucketResponse
	if err := c.http.GetJSON(ctx, url, &data); err != nil {
		return clone.Target{}, fmt.Errorf("fetching repo info from bitbucket API `%s`: %w", url, err)
	}

	var vcs clone.VCS
	switch data.SCM {
	case "git":
		vcs = clone.Git
	case "hg":
		vcs = clone.Mercurial
	case "":
		return clone.Target{}, fmt.Errorf("%w: missing `scm` field", ErrMalformedResponse)
	default:
		return clone.Target{}, fmt.Errorf("%w: `%s`", ErrUnsupportedSCM, data.SCM)
	}

	if len(data.Links.Clone) == 0 {
		return clone.Target{}, fmt.Errorf("%w: missing `links.clone` list", ErrMalformedResponse)
	}
	for _, link := range data.Links.Clone {
		if link.Name == "https" {
			if link.Href == "" {
				return clone.Target{}, fmt.Errorf("%w: https clone link has no href", ErrMalformedResponse)
			}
			return clone.Target{VCS: vcs, Location: link.Href}, nil
		}
	}
	return clone.Target{}, fmt.Errorf("%w: no `https` clone link", ErrMalformedResponse)
}
