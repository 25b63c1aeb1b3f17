// Package registry provides an HTTP client for the crates.io API.
//
// # Overview
//
// This package fetches crate metadata from crates.io (https://crates.io),
// the Rust community's package registry, and downloads released .crate
// archives.
//
// # Usage
//
//	client := registry.NewClient("", "cargo-clone/1.0", 0)
//
//	meta, err := client.Metadata(ctx, "serde")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println(meta.Location)
//	for _, v := range meta.Versions {
//	    fmt.Println(v.Num)
//	}
//
// # Metadata
//
// [Client.Metadata] returns a [Metadata] containing:
//
//   - Name: Crate identity as published
//   - Location: Repository URL, falling back to homepage (may be empty)
//   - Versions: Every published release with its download path
//
// # User-Agent
//
// Every request carries the caller-supplied User-Agent header, as required
// by the crates.io acceptable-use policy.
package registry
