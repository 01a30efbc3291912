// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file. Every field is a
// pointer so an absent key can be told apart from a zero value.
type FileConfig struct {
	GitHub  GitHubConfig  `toml:"github"`
	Pattern PatternConfig `toml:"pattern"`
	Commit  CommitConfig  `toml:"commit"`
}

type GitHubConfig struct {
	User *string `toml:"user"`
}

type PatternConfig struct {
	Year      *int    `toml:"year"`
	Intensity *int    `toml:"intensity"`
	Mode      *string `toml:"mode"`
}

type CommitConfig struct {
	Repo            *string `toml:"repo"`
	TrackerFile     *string `toml:"tracker-file"`
	MessagePrefix   *string `toml:"message-prefix"`
	IntervalMinutes *int    `toml:"interval-minutes"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q in %s", undecoded[0].String(), path)
	}
	if err := cfg.validate(); err != nil {
		return FileConfig{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func (c FileConfig) validate() error {
	if c.Pattern.Intensity != nil && *c.Pattern.Intensity < 1 {
		return fmt.Errorf("pattern.intensity must be >= 1")
	}
	if c.Pattern.Mode != nil {
		switch *c.Pattern.Mode {
		case "ascii", "emoji", "color":
		default:
			return fmt.Errorf("pattern.mode must be one of ascii, emoji, color")
		}
	}
	if c.Commit.IntervalMinutes != nil && *c.Commit.IntervalMinutes < 1 {
		return fmt.Errorf("commit.interval-minutes must be >= 1")
	}
	return nil
}

// Template is the commented starter file written by WriteTemplate.
const Template = `# kusa-painter configuration.
# Command-line flags always take precedence over these values.

[github]
# Login used by analyze and commit. Falls back to $GITHUB_USERNAME.
# user = "octocat"

[pattern]
# year = 2024
# intensity = 3
# Preview style: ascii, emoji or color.
# mode = "color"

[commit]
# repo = "."
# tracker-file = "contribution-tracker.json"
# message-prefix = "feat:"
# interval-minutes = 30
`

// WriteTemplate writes Template to path unless a file already exists there.
func WriteTemplate(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config already exists: %s", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(Template), 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
