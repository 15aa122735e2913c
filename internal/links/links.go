// Package links classifies and rewrites markdown link destinations for
// static publishing.
//
// A destination is resolved in one of four ways: wiki-internal pages
// get their extension swapped for .html, file: targets are forced to
// absolute filesystem paths, local: targets are recomputed relative to
// the output directory, and everything else passes through untouched
// apart from lexical cleaning and space encoding.
package links

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/euforicio/wikipage/internal/wikipath"
)

var (
	linkPattern  = regexp.MustCompile(`\[(.*)\]\((.*)\)`)
	titlePattern = regexp.MustCompile(`\s+"`)
)

// Context carries the read-only inputs shared by every link resolution
// for one document. It is never mutated during resolution.
type Context struct {
	// InputDir is the directory containing the source document.
	InputDir string
	// OutputDir is the directory the rendered HTML will be written to.
	OutputDir string
	// Extension marks wiki-internal pages, e.g. "wiki".
	Extension string
}

// NewContext derives a Context from the source file path.
func NewContext(inputFile, outputDir, extension string) Context {
	return Context{
		InputDir:  filepath.Dir(inputFile),
		OutputDir: outputDir,
		Extension: extension,
	}
}

// RewriteAll rewrites every [title](uri) occurrence in text.
func RewriteAll(text string, ctx Context) string {
	return linkPattern.ReplaceAllStringFunc(text, func(match string) string {
		groups := linkPattern.FindStringSubmatch(match)
		return Resolve(groups[1], groups[2], ctx)
	})
}

// Resolve rewrites a single link destination and returns the complete
// markdown link.
func Resolve(display, rawURI string, ctx Context) string {
	var uri string
	if isWikiPage(rawURI, ctx) {
		uri = resolveWikiPage(rawURI)
	} else {
		uri = resolveExternal(rawURI, ctx)
	}
	return fmt.Sprintf("[%s](%s)", display, uri)
}

// splitFragment splits a URI on its "#". A URI with more than one "#"
// is treated as having no fragment at all: the whole string becomes
// the path. The rule is deliberately this narrow; do not widen it.
func splitFragment(uri string) (path, fragment string, ok bool) {
	parts := strings.Split(uri, "#")
	switch len(parts) {
	case 1:
		return parts[0], "", false
	case 2:
		return parts[0], parts[1], true
	default:
		return uri, "", false
	}
}

// isWikiPage reports whether the target, with its extension swapped for
// the configured wiki extension, exists beside the source document.
// This is the pipeline's only filesystem probe. A missing or unreadable
// file is not an error: the link simply is not wiki-internal.
func isWikiPage(uri string, ctx Context) bool {
	path, _, _ := splitFragment(uri)
	probe := wikipath.ReplaceExt(wikipath.Join(ctx.InputDir, path), ctx.Extension)
	info, err := os.Stat(probe)
	return err == nil && info.Mode().IsRegular()
}

// resolveWikiPage swaps the target's extension for .html. Fragments are
// re-attached with spaces encoded but are not validated against the
// target's headings.
func resolveWikiPage(uri string) string {
	path, fragment, ok := splitFragment(uri)
	page := wikipath.StripExt(path) + ".html"
	if ok {
		return page + "#" + wikipath.EncodeSpaces(fragment)
	}
	return page
}

// splitTitle separates an optional quoted markdown title from the
// destination. The opening quote is consumed by the split and restored
// on reattachment.
func splitTitle(uri string) (path, title string, ok bool) {
	parts := titlePattern.Split(uri, -1)
	switch len(parts) {
	case 1:
		return parts[0], "", false
	case 2:
		return parts[0], parts[1], true
	default:
		return uri, "", false
	}
}

func resolveExternal(uri string, ctx Context) string {
	path, title, hasTitle := splitTitle(uri)

	switch {
	case strings.HasPrefix(path, "file:"):
		// The author opted out of relative resolution: force an
		// absolute filesystem path.
		path = wikipath.Join(ctx.InputDir, strings.TrimPrefix(path, "file:"))
	case strings.HasPrefix(path, "local:"):
		// A stable source-tree reference, republished relative to the
		// output directory.
		abs := wikipath.Join(ctx.InputDir, strings.TrimPrefix(path, "local:"))
		if rel, ok := wikipath.Diff(abs, ctx.OutputDir); ok {
			path = rel
		} else {
			path = abs
		}
	}

	path = wikipath.EncodeSpaces(wikipath.Clean(path))
	if hasTitle {
		return path + ` "` + title
	}
	return path
}
