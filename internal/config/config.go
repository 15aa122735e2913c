// Package config manages invocation configuration from command-line
// arguments and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
)

const envPrefix = "WIKIPAGE_"

// Config holds the per-invocation options of the converter.
type Config struct {
	InputFile    string
	OutputDir    string
	Extension    string
	TemplateDir  string
	TemplateName string
	TemplateExt  string
	CSSFile      string
	RootPath     string
	Force        bool
	Verbose      bool
}

// Default returns ready-to-use defaults prior to env/flag overrides.
func Default() Config {
	return Config{
		Extension:   "wiki",
		TemplateExt: ".tpl",
		RootPath:    "./",
	}
}

// RegisterFlags attaches configuration flags to the provided FlagSet.
func RegisterFlags(fs *pflag.FlagSet, cfg *Config) {
	fs.StringVarP(&cfg.InputFile, "input", "i", cfg.InputFile, "markdown source document to convert")
	fs.StringVarP(&cfg.OutputDir, "out", "o", cfg.OutputDir, "output directory for the generated HTML page")
	fs.StringVarP(&cfg.Extension, "extension", "e", cfg.Extension, "file extension marking wiki-internal pages")
	fs.StringVar(&cfg.TemplateDir, "template-dir", cfg.TemplateDir, "directory containing the page template")
	fs.StringVar(&cfg.TemplateName, "template-name", cfg.TemplateName, "template file name without extension")
	fs.StringVar(&cfg.TemplateExt, "template-ext", cfg.TemplateExt, "template file extension")
	fs.StringVar(&cfg.CSSFile, "css", cfg.CSSFile, "css file referenced by the template (informational)")
	fs.StringVar(&cfg.RootPath, "root-path", cfg.RootPath, "relative path from the page to the site root")
	fs.BoolVarP(&cfg.Force, "force", "f", cfg.Force, "overwrite the output page unconditionally")
	fs.BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "enable verbose logging")
}

// ApplyEnvOverrides reads supported environment variables and overrides
// cfg in place.
func ApplyEnvOverrides(cfg *Config) {
	applyStringEnv("INPUT", func(v string) { cfg.InputFile = v })
	applyStringEnv("OUT", func(v string) { cfg.OutputDir = v })
	applyStringEnv("EXTENSION", func(v string) { cfg.Extension = v })
	applyStringEnv("TEMPLATE_DIR", func(v string) { cfg.TemplateDir = v })
	applyStringEnv("TEMPLATE_NAME", func(v string) { cfg.TemplateName = v })
	applyStringEnv("TEMPLATE_EXT", func(v string) { cfg.TemplateExt = v })
	applyStringEnv("ROOT_PATH", func(v string) { cfg.RootPath = v })
}

func applyStringEnv(key string, apply func(string)) {
	if raw, ok := lookupNonEmpty(key); ok {
		apply(raw)
	}
}

func lookupNonEmpty(key string) (string, bool) {
	raw, ok := os.LookupEnv(envPrefix + key)
	if !ok {
		return "", false
	}
	value := strings.TrimSpace(raw)
	if value == "" {
		return "", false
	}
	return value, true
}

// TemplateFile joins the template directory, name and extension; it is
// empty when no template was configured.
func (c Config) TemplateFile() string {
	if c.TemplateDir == "" || c.TemplateName == "" {
		return ""
	}
	return filepath.Join(c.TemplateDir, c.TemplateName+c.TemplateExt)
}

// Finalize validates and normalizes paths.
func Finalize(cfg *Config) error {
	if strings.TrimSpace(cfg.InputFile) == "" {
		return errors.New("input file is required")
	}
	input, err := filepath.Abs(cfg.InputFile)
	if err != nil {
		return fmt.Errorf("resolve input file: %w", err)
	}
	cfg.InputFile = input

	if cfg.OutputDir == "" {
		cfg.OutputDir = filepath.Dir(cfg.InputFile)
	}
	output, err := filepath.Abs(cfg.OutputDir)
	if err != nil {
		return fmt.Errorf("resolve output directory: %w", err)
	}
	cfg.OutputDir = output

	if cfg.Extension == "" {
		cfg.Extension = "wiki"
	}
	if cfg.RootPath == "" {
		cfg.RootPath = "./"
	}

	return nil
}

// ParseVimwikiArgs builds a Config from the positional argument
// contract the vimwiki plugin uses when invoking a custom converter:
//
//	force syntax extension output_dir input_file css_file
//	template_dir template_name template_ext root_path custom
//
// Only markdown syntax is supported.
func ParseVimwikiArgs(args []string) (Config, error) {
	if len(args) != 11 {
		return Config{}, fmt.Errorf("expected 11 arguments from vimwiki, got %d", len(args))
	}
	if args[1] != "markdown" {
		return Config{}, fmt.Errorf("unsupported syntax %q: only markdown is supported", args[1])
	}

	cfg := Default()
	cfg.Force = args[0] == "1"
	cfg.Extension = args[2]
	cfg.OutputDir = args[3]
	cfg.InputFile = args[4]
	cfg.CSSFile = args[5]
	cfg.TemplateDir = args[6]
	cfg.TemplateName = args[7]
	cfg.TemplateExt = args[8]
	if args[9] == "-" && args[10] == "-" {
		cfg.RootPath = "./"
	} else {
		cfg.RootPath = args[9]
	}
	return cfg, nil
}
