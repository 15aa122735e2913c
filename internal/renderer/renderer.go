// Package renderer converts preprocessed markdown to HTML.
package renderer

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	goldmarkmeta "github.com/yuin/goldmark-meta"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	htmlrenderer "github.com/yuin/goldmark/renderer/html"
	"go.abhg.dev/goldmark/anchor"
)

// Metadata captures optional frontmatter data rendered alongside a document.
type Metadata struct {
	Raw   map[string]any
	Title string
}

// Document represents a rendered markdown document body.
type Document struct {
	HTML     string
	Metadata Metadata
	Raw      string
}

// Service renders markdown into HTML. It uses Goldmark with
// GitHub-flavored markdown extensions, footnotes, YAML frontmatter
// parsing and syntax highlighting. Highlighted code carries inline
// styles so the resulting page is standalone and needs no extra CSS.
type Service struct {
	md     goldmark.Markdown
	logger *slog.Logger
}

// NewService constructs a markdown renderer. The theme selects the
// chroma style used for code blocks; an unknown or empty theme falls
// back to chroma's default. If logger is nil, the default slog logger
// is used.
func NewService(theme string, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}

	highlight := highlighting.NewHighlighting(
		highlighting.WithStyle(theme),
		highlighting.WithFormatOptions(
			chromahtml.WithLineNumbers(false),
		),
	)

	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Footnote,
			goldmarkmeta.Meta,
			highlight,
			&anchor.Extender{
				Position: anchor.After, // Place anchor link after heading text
			},
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			// Raw HTML stays enabled: wiki content is trusted local input.
			htmlrenderer.WithUnsafe(),
			htmlrenderer.WithXHTML(),
		),
	)

	return &Service{
		md:     md,
		logger: logger.With("component", "renderer"),
	}
}

// Render converts markdown content to HTML and extracts frontmatter
// metadata when present.
func (s *Service) Render(_ context.Context, content []byte) (Document, error) {
	parserCtx := parser.NewContext()
	buf := bytes.NewBuffer(nil)

	if err := s.md.Convert(content, buf, parser.WithContext(parserCtx)); err != nil {
		return Document{}, fmt.Errorf("render markdown: %w", err)
	}

	return Document{
		HTML:     buf.String(),
		Metadata: extractMetadata(parserCtx),
		Raw:      string(content),
	}, nil
}

func extractMetadata(ctx parser.Context) Metadata {
	raw := goldmarkmeta.Get(ctx)
	var meta Metadata
	if raw == nil {
		return meta
	}

	meta.Raw = make(map[string]any)
	for k, v := range raw {
		meta.Raw[k] = v
		if k == "title" {
			if str, ok := toString(v); ok {
				meta.Title = str
			}
		}
	}

	if len(meta.Raw) == 0 {
		meta.Raw = nil
	}

	return meta
}

func toString(v any) (string, bool) {
	switch val := v.(type) {
	case string:
		return val, true
	case fmt.Stringer:
		return val.String(), true
	default:
		return "", false
	}
}
