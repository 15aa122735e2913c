// Package main provides the wikipage markdown-to-HTML converter CLI.
//
// It accepts either regular flags or the positional argument contract
// the vimwiki plugin uses when invoking a custom converter, so the
// binary can be wired directly into vimwiki's html export.
package main

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/pflag"

	"github.com/euforicio/wikipage/internal/buildinfo"
	"github.com/euforicio/wikipage/internal/config"
	"github.com/euforicio/wikipage/internal/page"
	"github.com/euforicio/wikipage/internal/settings"
)

func main() {
	cfg, err := loadConfig(os.Args[1:])
	if err != nil {
		slog.Error("invalid configuration", slog.Any("err", err))
		os.Exit(1)
	}

	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	logger.Debug("starting wikipage", slog.String("version", buildinfo.Summary()))

	prefs := settings.Load(logger)

	conv := page.NewConverter(prefs.HighlightTheme, logger)
	dest, err := conv.Export(context.Background(), page.Options{
		InputFile:    cfg.InputFile,
		OutputDir:    cfg.OutputDir,
		Extension:    cfg.Extension,
		TemplateFile: cfg.TemplateFile(),
		RootPath:     cfg.RootPath,
	})
	if err != nil {
		logger.Error("conversion failed", slog.Any("err", err))
		os.Exit(1)
	}

	logger.Info("conversion succeeded", slog.String("output", dest))
}

// loadConfig accepts either the vimwiki plugin's 11 positional
// arguments or regular flags with an optional positional input file.
func loadConfig(args []string) (config.Config, error) {
	var cfg config.Config
	var err error

	if looksLikeVimwiki(args) {
		cfg, err = config.ParseVimwikiArgs(args)
		if err != nil {
			return config.Config{}, err
		}
	} else {
		cfg = config.Default()
		config.ApplyEnvOverrides(&cfg)
		flags := pflag.NewFlagSet("wikipage", pflag.ContinueOnError)
		config.RegisterFlags(flags, &cfg)
		if err := flags.Parse(args); err != nil {
			return config.Config{}, err
		}
		if cfg.InputFile == "" && flags.NArg() > 0 {
			cfg.InputFile = flags.Arg(0)
		}
	}

	if err := config.Finalize(&cfg); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func looksLikeVimwiki(args []string) bool {
	return len(args) == 11 && !strings.HasPrefix(args[0], "-")
}
