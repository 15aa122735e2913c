// Package settings loads and saves the on-disk program settings file.
package settings

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Settings holds user-level options that survive across invocations,
// as opposed to the per-invocation options the caller supplies.
type Settings struct {
	HighlightTheme string `toml:"highlight_theme"`
}

// Default returns the built-in settings.
func Default() Settings {
	return Settings{HighlightTheme: "github"}
}

// Path returns the settings file location under the user config
// directory.
func Path() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(dir, "wikipage", "config.toml"), nil
}

// Load reads the settings file, writing one with defaults when it is
// missing. Load never fails the program: problems are logged as
// warnings and the defaults returned.
func Load(logger *slog.Logger) Settings {
	if logger == nil {
		logger = slog.Default()
	}
	path, err := Path()
	if err != nil {
		logger.Warn("settings location unavailable, using defaults", slog.Any("err", err))
		return Default()
	}

	loaded, err := LoadFile(path)
	if err == nil {
		return loaded
	}
	logger.Warn("settings not loaded, using defaults",
		slog.String("path", path), slog.Any("err", err))

	defaults := Default()
	if err := Save(path, defaults); err != nil {
		logger.Warn("could not write default settings",
			slog.String("path", path), slog.Any("err", err))
	}
	return defaults
}

// LoadFile decodes settings from path. Missing values fall back to the
// defaults.
func LoadFile(path string) (Settings, error) {
	var loaded Settings
	if _, err := toml.DecodeFile(path, &loaded); err != nil {
		return Settings{}, fmt.Errorf("decode settings: %w", err)
	}
	if loaded.HighlightTheme == "" {
		loaded.HighlightTheme = Default().HighlightTheme
	}
	return loaded, nil
}

// Save writes settings to path, creating parent directories as needed.
func Save(path string, s Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create settings dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create settings file: %w", err)
	}
	defer f.Close()
	if err := toml.NewEncoder(f).Encode(s); err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	return nil
}
