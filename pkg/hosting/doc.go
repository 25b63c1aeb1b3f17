// Package hosting classifies repository-hosting URLs into version-control
// targets.
//
// Detection walks an ordered rule table: a `.git` suffix, GitHub- and
// GitLab-style paths (rewritten to canonical `.git` clone URLs), Bitbucket
// paths (disambiguated between git and mercurial through the Bitbucket
// API), and Pijul nest URLs. URLs matching none of these fail with
// [ErrUnknownVCS] and the user has to name a method explicitly.
//
// Base URLs for each service default to the public hosts and are
// configurable, which is how tests substitute httptest servers.
package hosting
