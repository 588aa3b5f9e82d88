// Package config loads the ~/.revealitrc settings file.
package config

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// FileName is the settings file looked up in the user's home directory.
const FileName = ".revealitrc"

type Config struct {
	WindowWidth   int
	WindowHeight  int
	Compact       bool
	Seed          int64
	Font          string
	LogLevel      string
	DebugFills    bool
	SaveDirectory string
}

// Default returns the settings used when no file exists.
func Default() *Config {
	return &Config{
		WindowWidth:  1280,
		WindowHeight: 720,
		Font:         "mono",
		LogLevel:     "info",
	}
}

// Load reads ~/.revealitrc. A missing or unreadable file yields defaults.
func Load() *Config {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return Default()
	}
	cfg, err := LoadFile(filepath.Join(homeDir, FileName))
	if err != nil {
		return Default()
	}
	if strings.HasPrefix(cfg.SaveDirectory, "~") {
		cfg.SaveDirectory = filepath.Join(homeDir, strings.TrimPrefix(cfg.SaveDirectory, "~"))
	}
	return cfg
}

// LoadFile reads settings from path.
func LoadFile(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return Parse(file)
}

// Parse reads key = value lines. Blank lines, # comments, unknown keys and
// values that fail to parse are skipped.
func Parse(r io.Reader) (*Config, error) {
	config := Default()

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		switch strings.ToLower(key) {
		case "window_width", "width":
			if n, err := strconv.Atoi(value); err == nil && n > 0 {
				config.WindowWidth = n
			}
		case "window_height", "height":
			if n, err := strconv.Atoi(value); err == nil && n > 0 {
				config.WindowHeight = n
			}
		case "compact":
			config.Compact = strings.ToLower(value) == "true"
		case "seed":
			if n, err := strconv.ParseInt(value, 10, 64); err == nil {
				config.Seed = n
			}
		case "font":
			config.Font = strings.ToLower(value)
		case "log_level", "loglevel":
			config.LogLevel = value
		case "debug_fills", "debugfills":
			config.DebugFills = strings.ToLower(value) == "true"
		case "save_directory", "savedirectory", "savedir":
			config.SaveDirectory = value
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return config, nil
}

// SavePath joins filename onto the save directory, creating it if needed.
func (c *Config) SavePath(filename string) string {
	if c.SaveDirectory == "" {
		return filename
	}
	os.MkdirAll(c.SaveDirectory, 0755)
	return filepath.Join(c.SaveDirectory, filename)
}
