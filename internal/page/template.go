package page

import (
	"log/slog"
	"os"
	"strings"
	"time"
)

// defaultTemplate is the built-in page shell used when no template file
// is configured or the configured one cannot be read.
const defaultTemplate = `<html>
<head>
    <link rel="Stylesheet" type="text/css" href="%root_path%style.css" />
    <title>%title%</title>
    <meta http-equiv="Content-Type" content="text/html; charset=utf-8" />
</head>
<body>
    <a href="%root_path%index.html">Index</a> |
    <hr>
    <div class="content">
    %content%
    </div>
</body>
</html>`

type templateData struct {
	RootPath string
	Title    string
	Theme    string
	Content  string
	Now      time.Time
}

// loadTemplate reads the template file, falling back to the built-in
// shell when the path is empty or unreadable. A broken template is
// never fatal.
func loadTemplate(path string, logger *slog.Logger) string {
	if path == "" {
		return defaultTemplate
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		logger.Warn("template not readable, using built-in",
			slog.String("template", path), slog.Any("err", err))
		return defaultTemplate
	}
	return string(raw)
}

// renderTemplate fills the %placeholder% slots by literal string
// replacement; this is intentionally not a templating engine. The
// content slot is filled last so placeholder-like text inside the
// rendered body is left alone.
func renderTemplate(tmpl string, data templateData) string {
	shell := strings.NewReplacer(
		"%root_path%", data.RootPath,
		"%title%", data.Title,
		"%pygments%", "",
		"%code_theme%", data.Theme,
		"%date%", data.Now.Format("2. Jan 2006"),
	).Replace(tmpl)
	return strings.ReplaceAll(shell, "%content%", data.Content)
}
