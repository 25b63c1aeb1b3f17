package clone

import (
	"archive/tar"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Extract unpacks a gzip-compressed tar stream into dest, which must
// already exist. Every entry path must live under prefix (the expected
// `{name}-{version}` top-level directory); the first entry that does not
// aborts extraction with [ErrArchiveLayout], leaving earlier entries in
// place. Entries keep their relative path and declared file mode.
//
// Symlink entries pointing outside dest are rejected, and no entry is
// ever written through a symlinked path component, so a crafted archive
// cannot redirect writes out of the destination.
//
// The stream is processed entry by entry; the archive is never buffered
// into memory as a whole. Returns the paths of the entries written, in
// archive order.
func Extract(r io.Reader, prefix, dest string) ([]string, error) {
	gz, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("reading gzip stream: %w", err)
	}
	defer gz.Close()

	var written []string
	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return written, nil
		}
		if err != nil {
			return written, fmt.Errorf("reading tar entry: %w", err)
		}

		name := hdr.Name
		if !underPrefix(name, prefix) {
			return written, fmt.Errorf("%w: expected entries under %q, got %q", ErrArchiveLayout, prefix, name)
		}

		path, err := securePath(dest, name)
		if err != nil {
			return written, err
		}
		if err := checkAncestors(dest, name); err != nil {
			return written, err
		}
		if hdr.Typeflag == tar.TypeSymlink {
			if err := checkLinkTarget(name, hdr.Linkname); err != nil {
				return written, err
			}
		}
		if err := unpackEntry(tr, hdr, path); err != nil {
			return written, fmt.Errorf("unpacking %q: %w", name, err)
		}
		written = append(written, name)
	}
}

// underPrefix reports whether an entry name is the prefix directory
// itself or lives inside it. A plain string prefix would also accept
// sibling directories like `widgets-1.0.0-evil/`, so the match is
// component-wise.
func underPrefix(name, prefix string) bool {
	name = strings.TrimSuffix(name, "/")
	return name == prefix || strings.HasPrefix(name, prefix+"/")
}

// securePath joins an entry name onto dest and rejects results that
// escape it. The prefix check already blocks foreign top-level
// directories; this catches `..` components hidden behind a valid prefix.
func securePath(dest, name string) (string, error) {
	path := filepath.Join(dest, filepath.FromSlash(name))
	if rel, err := filepath.Rel(dest, path); err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(os.PathSeparator)) {
		return "", fmt.Errorf("%w: entry %q escapes the destination directory", ErrArchiveLayout, name)
	}
	return path, nil
}

// checkAncestors refuses to write an entry whose path passes through an
// already extracted symlink. Without this, a symlink entry followed by a
// file under it would land wherever the link points, past the lexical
// containment check.
func checkAncestors(dest, name string) error {
	dir := dest
	parts := strings.Split(path.Clean(name), "/")
	for _, part := range parts[:len(parts)-1] {
		dir = filepath.Join(dir, part)
		fi, err := os.Lstat(dir)
		if os.IsNotExist(err) {
			return nil
		}
		if err != nil {
			return err
		}
		if fi.Mode()&os.ModeSymlink != 0 {
			return fmt.Errorf("%w: entry %q passes through a symlink", ErrArchiveLayout, name)
		}
	}
	return nil
}

// checkLinkTarget rejects symlink entries whose target leaves the
// destination directory, either via an absolute path or by climbing out
// with `..` components.
func checkLinkTarget(name, target string) error {
	if path.IsAbs(target) || filepath.IsAbs(target) {
		return fmt.Errorf("%w: symlink %q has absolute target %q", ErrArchiveLayout, name, target)
	}
	resolved := path.Join(path.Dir(name), target)
	if resolved == ".." || strings.HasPrefix(resolved, "../") {
		return fmt.Errorf("%w: symlink %q escapes the destination directory", ErrArchiveLayout, name)
	}
	return nil
}

func unpackEntry(tr *tar.Reader, hdr *tar.Header, path string) error {
	switch hdr.Typeflag {
	case tar.TypeDir:
		return os.MkdirAll(path, os.FileMode(hdr.Mode)&os.ModePerm)

	case tar.TypeReg:
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return err
		}
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, os.FileMode(hdr.Mode)&os.ModePerm)
		if err != nil {
			return err
		}
		if _, err := io.Copy(f, tr); err != nil {
			f.Close()
			return err
		}
		return f.Close()

	case tar.TypeSymlink:
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return err
		}
		return os.Symlink(hdr.Linkname, path)

	default:
		// PAX headers and other special entries carry no file content.
		return nil
	}
}
