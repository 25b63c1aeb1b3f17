package registry

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ehuss/cargo-clone-crate/pkg/httputil"
)

func TestClient_Metadata(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/crates/widgets" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte(`{
			"crate": {"name": "widgets", "repository": "https://github.com/acme/widgets"},
			"versions": [
				{"num": "1.0.0", "dl_path": "/api/v1/crates/widgets/1.0.0/download"},
				{"num": "0.9.0", "dl_path": "/api/v1/crates/widgets/0.9.0/download"}
			]
		}`))
	}))
	defer server.Close()

	c := NewClient(server.URL, "test-agent", 0)
	meta, err := c.Metadata(context.Background(), "widgets")
	if err != nil {
		t.Fatalf("Metadata failed: %v", err)
	}

	if meta.Name != "widgets" {
		t.Errorf("expected name widgets, got %s", meta.Name)
	}
	if meta.Location != "https://github.com/acme/widgets" {
		t.Errorf("unexpected location: %s", meta.Location)
	}
	if len(meta.Versions) != 2 {
		t.Fatalf("expected 2 versions, got %d", len(meta.Versions))
	}
	if meta.Versions[0].Num != "1.0.0" {
		t.Errorf("expected 1.0.0 first, got %s", meta.Versions[0].Num)
	}
}

func TestClient_Metadata_HomepageFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"crate": {"name": "widgets", "homepage": "https://widgets.example"}, "versions": []}`))
	}))
	defer server.Close()

	c := NewClient(server.URL, "test-agent", 0)
	meta, err := c.Metadata(context.Background(), "widgets")
	if err != nil {
		t.Fatalf("Metadata failed: %v", err)
	}
	if meta.Location != "https://widgets.example" {
		t.Errorf("expected homepage fallback, got %q", meta.Location)
	}
}

func TestClient_Metadata_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	c := NewClient(server.URL, "test-agent", 0)
	_, err := c.Metadata(context.Background(), "nonexistent")
	if !errors.Is(err, ErrCrateNotFound) {
		t.Errorf("expected ErrCrateNotFound, got %v", err)
	}
}

func TestClient_Metadata_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	c := NewClient(server.URL, "test-agent", 0)
	_, err := c.Metadata(context.Background(), "widgets")

	var se *httputil.StatusError
	if !errors.As(err, &se) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if se.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", se.Code)
	}
}

func TestClient_Download(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/crates/widgets/1.0.0/download" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte("archive bytes"))
	}))
	defer server.Close()

	c := NewClient(server.URL, "test-agent", 0)
	body, err := c.Download(context.Background(), "/api/v1/crates/widgets/1.0.0/download")
	if err != nil {
		t.Fatalf("Download failed: %v", err)
	}
	defer body.Close()

	data, _ := io.ReadAll(body)
	if string(data) != "archive bytes" {
		t.Errorf("unexpected archive body: %q", data)
	}
}
