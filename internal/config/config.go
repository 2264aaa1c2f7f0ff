package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures marquee's application settings.
type Config struct {
	DeckPath    string
	LogFile     string
	LogLevel    string
	CellWidthPx int
	Watch       bool
}

const (
	defaultConfigPath  = "~/.config/marquee/config.toml"
	defaultDeckPath    = "~/.config/marquee/deck.toml"
	defaultLogFile     = "~/.local/state/marquee/marquee.log"
	defaultLogLevel    = "info"
	defaultCellWidthPx = 8
)

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		DeckPath:    mustExpand(defaultDeckPath),
		LogFile:     mustExpand(defaultLogFile),
		LogLevel:    defaultLogLevel,
		CellWidthPx: defaultCellWidthPx,
	}
}

// Load locates and parses the config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		Deck        string `toml:"deck"`
		LogFile     string `toml:"log_file"`
		LogLevel    string `toml:"log_level"`
		CellWidthPx int    `toml:"cell_width_px"`
		Watch       bool   `toml:"watch"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if deck := strings.TrimSpace(raw.Deck); deck != "" {
		cfg.DeckPath = mustExpand(deck)
	}
	if logFile := strings.TrimSpace(raw.LogFile); logFile != "" {
		cfg.LogFile = mustExpand(logFile)
	}
	if level := strings.TrimSpace(raw.LogLevel); level != "" {
		cfg.LogLevel = strings.ToLower(level)
	}
	if raw.CellWidthPx > 0 {
		cfg.CellWidthPx = raw.CellWidthPx
	}
	cfg.Watch = raw.Watch

	return cfg, nil
}

// ExpandPath resolves a leading tilde and makes path absolute.
func ExpandPath(path string) (string, error) {
	return expandPath(path)
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
