// Package page orchestrates the single-document conversion pipeline:
// read source → substitute variables → rewrite links → render markdown
// → apply directives → wrap in the template shell.
package page

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/euforicio/wikipage/internal/directive"
	"github.com/euforicio/wikipage/internal/links"
	"github.com/euforicio/wikipage/internal/renderer"
	"github.com/euforicio/wikipage/internal/vars"
	"github.com/euforicio/wikipage/internal/wikipath"
)

// Options describe one document conversion.
type Options struct {
	// InputFile is the markdown source document.
	InputFile string
	// OutputDir is where the rendered page will be published.
	OutputDir string
	// Extension marks wiki-internal pages, e.g. "wiki".
	Extension string
	// TemplateFile is optional; the built-in shell is used when empty
	// or unreadable.
	TemplateFile string
	// RootPath is the relative prefix from the page to the site root,
	// consumed only by template placeholders.
	RootPath string
}

// Result carries every payload the pipeline produces.
type Result struct {
	// Markdown is the cleaned source after the variable and link stages.
	Markdown string
	// Body is the rendered HTML body after directives were applied.
	Body string
	// Page is the full HTML page with the template shell applied.
	Page string
	// Title is the page title used by the template.
	Title string
}

// Converter runs the pipeline for one document per call. It owns no
// retry logic: any stage failure is fatal for that document and no
// partial output is produced.
type Converter struct {
	renderer *renderer.Service
	theme    string
	logger   *slog.Logger
	now      func() time.Time
}

// NewConverter constructs a converter. The theme selects the syntax
// highlighting style and fills the template's %code_theme% slot.
func NewConverter(theme string, logger *slog.Logger) *Converter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Converter{
		renderer: renderer.NewService(theme, logger),
		theme:    theme,
		logger:   logger.With("component", "page"),
		now:      time.Now,
	}
}

// Convert processes one document and returns all pipeline payloads.
func (c *Converter) Convert(ctx context.Context, opts Options) (Result, error) {
	raw, err := os.ReadFile(opts.InputFile)
	if err != nil {
		return Result{}, fmt.Errorf("read source %s: %w", opts.InputFile, err)
	}

	text, err := vars.Preprocess(string(raw))
	if err != nil {
		return Result{}, err
	}

	text = links.RewriteAll(text, links.NewContext(opts.InputFile, opts.OutputDir, opts.Extension))

	doc, err := c.renderer.Render(ctx, []byte(text))
	if err != nil {
		return Result{}, err
	}

	body, err := directive.Apply(doc.HTML)
	if err != nil {
		return Result{}, err
	}

	title := doc.Metadata.Title
	if title == "" {
		title = titleFromStem(opts.InputFile)
	}

	shell := loadTemplate(opts.TemplateFile, c.logger)
	full := renderTemplate(shell, templateData{
		RootPath: opts.RootPath,
		Title:    title,
		Theme:    c.theme,
		Content:  body,
		Now:      c.now(),
	})

	return Result{
		Markdown: text,
		Body:     body,
		Page:     full,
		Title:    title,
	}, nil
}

// OutputFile returns the destination path of the rendered page: the
// source stem with an .html extension under the output directory.
func OutputFile(opts Options) string {
	stem := wikipath.StripExt(filepath.Base(opts.InputFile))
	return filepath.Join(opts.OutputDir, stem+".html")
}

// Export converts the document and writes the finished page into the
// output directory. It returns the written file path.
func (c *Converter) Export(ctx context.Context, opts Options) (string, error) {
	start := c.now()

	result, err := c.Convert(ctx, opts)
	if err != nil {
		return "", err
	}

	dest := OutputFile(opts)
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	if err := os.WriteFile(dest, []byte(result.Page), 0o644); err != nil {
		return "", fmt.Errorf("write page: %w", err)
	}

	c.logger.Info("page written",
		slog.String("source", opts.InputFile),
		slog.String("output", dest),
		slog.Duration("duration", time.Since(start)))

	return dest, nil
}

// titleFromStem derives a human-readable title from the source file
// name: underscores become spaces and dash-separated words are
// capitalized.
func titleFromStem(inputFile string) string {
	base := wikipath.StripExt(filepath.Base(inputFile))
	base = strings.ReplaceAll(base, "_", " ")
	base = strings.ReplaceAll(base, "-", " ")
	words := strings.Fields(base)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}
	return strings.Join(words, " ")
}
