// Package wikipath provides lexical path helpers for link rewriting.
//
// Everything here operates purely on strings. Cleaning and diffing are
// lexical so that links can be rewritten for an output tree that does
// not exist yet; nothing in this package touches the filesystem.
package wikipath

import (
	"path/filepath"
	"strings"
)

// EncodeSpaces percent-encodes every space so the path survives inside
// a markdown link destination.
func EncodeSpaces(path string) string {
	return strings.ReplaceAll(path, " ", "%20")
}

// Clean collapses "." and ".." segments lexically. A ".." only
// collapses against a preceding real segment; leading ".." runs are
// kept as-is.
func Clean(path string) string {
	return filepath.Clean(path)
}

// Join resolves p against dir. An absolute p wins outright instead of
// being nested under dir.
func Join(dir, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir, p)
}

// Diff computes the lexical relative path from base to target. It
// reports false when no relative path exists, such as when one path is
// absolute and the other is not.
func Diff(target, base string) (string, bool) {
	rel, err := filepath.Rel(base, target)
	if err != nil {
		return "", false
	}
	return rel, true
}

// Ext returns the final extension of path. Unlike filepath.Ext, a bare
// dotfile such as ".profile" has no extension.
func Ext(path string) string {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	if ext == base {
		return ""
	}
	return ext
}

// StripExt removes the final extension, keeping the rest of the path
// intact.
func StripExt(path string) string {
	return strings.TrimSuffix(path, Ext(path))
}

// ReplaceExt swaps the final extension of path for ext (given without
// the leading dot), adding one when the path has none.
func ReplaceExt(path, ext string) string {
	return StripExt(path) + "." + ext
}
