package registry

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/ehuss/cargo-clone-crate/pkg/httputil"
)

// DefaultBaseURL is the public crates.io registry.
const DefaultBaseURL = "https://crates.io"

// ErrCrateNotFound is returned when the registry has no crate by the
// requested name.
var ErrCrateNotFound = errors.New("crate not found")

// Version is one published release of a crate: its semver string and the
// registry-relative download path for its .crate archive.
type Version struct {
	Num    string `json:"num"`
	DLPath string `json:"dl_path"`
}

// Metadata holds the registry's view of a crate as needed for cloning.
//
// Location is the declared repository URL, falling back to the homepage
// URL; it is empty when the crate declares neither.
type Metadata struct {
	Name     string
	Location string
	Versions []Version
}

// Client provides access to the crates.io package registry API.
//
// Note: crates.io requires a User-Agent header; callers supply one through
// the httputil client.
type Client struct {
	http    *httputil.Client
	baseURL string
}

// NewClient creates a registry client against baseURL with the given
// User-Agent. An empty baseURL falls back to [DefaultBaseURL]; overriding
// it is how tests point the client at a mock server.
func NewClient(baseURL, userAgent string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	headers := map[string]string{"User-Agent": userAgent}
	return &Client{
		http:    httputil.NewClient(timeout, headers),
		baseURL: baseURL,
	}
}

// Metadata retrieves the crate's declared location and published versions.
//
// Returns [ErrCrateNotFound] if the registry responds 404; any other
// non-200 status surfaces as a [httputil.StatusError].
func (c *Client) Metadata(ctx context.Context, name string) (*Metadata, error) {
	var data crateResponse
	url := fmt.Sprintf("%s/api/v1/crates/%s", c.baseURL, name)
	if err := c.http.GetJSON(ctx, url, &data); err != nil {
		if errors.Is(err, httputil.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrCrateNotFound, name)
		}
		return nil, fmt.Errorf("fetching crate info for %s: %w", name, err)
	}

	location := data.Crate.Repository
	if location == "" {
		location = data.Crate.HomePage
	}
	return &Metadata{
		Name:     data.Crate.Name,
		Location: location,
		Versions: data.Versions,
	}, nil
}

// Download streams the archive at the registry-relative dlPath, as found
// in [Version.DLPath]. The caller must close the returned reader.
func (c *Client) Download(ctx context.Context, dlPath string) (io.ReadCloser, error) {
	url := c.baseURL + dlPath
	body, err := c.http.Stream(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("downloading %s: %w", url, err)
	}
	return body, nil
}

// DownloadURL returns the absolute URL Download would fetch for dlPath.
// Useful for progress reporting before the request starts.
func (c *Client) DownloadURL(dlPath string) string {
	return c.baseURL + dlPath
}

type crateResponse struct {
	Crate struct {
		Name       string `json:"name"`
		Repository string `json:"repository"`
		HomePage   string `json:"homepage"`
	} `json:"crate"`
	Versions []Version `json:"versions"`
}
