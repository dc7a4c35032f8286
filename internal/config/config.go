package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// DirName is the name of the per-user and per-repo config directory.
const DirName = ".vcard"

// Config holds application configuration.
type Config struct {
	// Encodings is the ordered list of text encodings tried when decoding input files.
	// The first encoding that decodes a file without error wins. Empty means the
	// decoder's built-in order (utf-8, utf-8-sig, utf-16, latin-1, windows-1252).
	// Other WHATWG labels (e.g. "iso-8859-15", "koi8-r") are accepted too.
	Encodings []string `json:"encodings,omitempty"`

	// Delimiter separates projected columns (name, numbers, categories) in tabular output.
	Delimiter string `json:"delimiter,omitempty"`

	// NumberSeparator joins multiple phone numbers inside one projected column.
	NumberSeparator string `json:"number_separator,omitempty"`

	// CategorySeparator joins multiple categories inside one projected column.
	CategorySeparator string `json:"category_separator,omitempty"`

	// LogLevel is the default diagnostic level (debug, info, warn, error).
	LogLevel string `json:"log_level,omitempty"`

	// DisabledTools is a list of MCP tool names to exclude from registration.
	// Unknown tool names are logged as warnings.
	DisabledTools []string `json:"disabled_tools,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Delimiter:         "\t",
		NumberSeparator:   ";",
		CategorySeparator: ",",
		LogLevel:          "info",
	}
}

// Load loads configuration from baseDir/config.json.
// Returns default config if the file doesn't exist.
// The baseDir parameter allows tests to use t.TempDir() instead of ~/.vcard.
func Load(baseDir string) (*Config, error) {
	return LoadFile(filepath.Join(baseDir, "config.json"))
}

// LoadWithRepo loads configuration from both global (~/.vcard) and repo (.vcard) directories.
// Repo config is found by walking upward from startDir to find the nearest .vcard/config.json.
// Repo config takes precedence for scalar values; disabled_tools are merged (deduplicated).
// Either or both configs may be missing.
func LoadWithRepo(globalDir, startDir string) (*Config, error) {
	global, err := loadFileRaw(filepath.Join(globalDir, "config.json"))
	if err != nil {
		return nil, err
	}

	repo, err := loadFileRaw(FindRepoConfig(startDir))
	if err != nil {
		return nil, err
	}

	// Apply defaults, then global, then repo
	return Merge(Merge(DefaultConfig(), global), repo), nil
}

// FindRepoConfig walks upward from startDir to find the nearest .vcard/config.json.
// Returns the path if found, or empty string if not found.
func FindRepoConfig(startDir string) string {
	if startDir == "" {
		return ""
	}
	dir := startDir
	for {
		configPath := filepath.Join(dir, DirName, "config.json")
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// LoadFile loads configuration from a specific file path.
// Returns default config if the file doesn't exist.
func LoadFile(configPath string) (*Config, error) {
	cfg, err := loadFileRaw(configPath)
	if err != nil {
		return nil, err
	}
	return Merge(DefaultConfig(), cfg), nil
}

// loadFileRaw loads configuration from a specific file path.
// Returns zero-valued config if the path is empty or the file doesn't exist (not defaults).
func loadFileRaw(configPath string) (*Config, error) {
	if configPath == "" {
		return &Config{}, nil
	}
	data, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, err
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Merge combines base and overlay configs.
// Overlay values take precedence for scalars. Encodings are an ordered preference,
// so a non-empty overlay list replaces the base list; disabled_tools are merged.
func Merge(base, overlay *Config) *Config {
	result := &Config{}

	result.Delimiter = firstNonEmpty(overlay.Delimiter, base.Delimiter)
	result.NumberSeparator = firstNonEmpty(overlay.NumberSeparator, base.NumberSeparator)
	result.CategorySeparator = firstNonEmpty(overlay.CategorySeparator, base.CategorySeparator)
	result.LogLevel = firstNonEmpty(strings.TrimSpace(overlay.LogLevel), base.LogLevel)

	result.Encodings = cleanStringSlice(overlay.Encodings)
	if result.Encodings == nil {
		result.Encodings = cleanStringSlice(base.Encodings)
	}

	result.DisabledTools = mergeStringSlice(base.DisabledTools, overlay.DisabledTools)

	return result
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}

// cleanStringSlice trims entries and drops empties and duplicates, keeping order.
func cleanStringSlice(s []string) []string {
	return mergeStringSlice(s, nil)
}

// mergeStringSlice combines two slices, trims whitespace, and removes duplicates.
func mergeStringSlice(a, b []string) []string {
	seen := make(map[string]bool)
	result := make([]string, 0, len(a)+len(b))

	for _, s := range a {
		s = strings.TrimSpace(s)
		if s != "" && !seen[s] {
			seen[s] = true
			result = append(result, s)
		}
	}
	for _, s := range b {
		s = strings.TrimSpace(s)
		if s != "" && !seen[s] {
			seen[s] = true
			result = append(result, s)
		}
	}

	if len(result) == 0 {
		return nil
	}
	return result
}
