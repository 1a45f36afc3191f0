// Package config loads the rc file of crispy.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Backends.
const (
	BackendVT    = "vt"
	BackendTcell = "tcell"
)

// Config is the content of the rc file.
type Config struct {
	Prompt  string `yaml:"prompt"`
	Backend string `yaml:"backend"`
	// Use the kitty keyboard protocol, which reports key releases.
	KittyKeyboard bool     `yaml:"kitty-keyboard"`
	MouseCapture  bool     `yaml:"mouse-capture"`
	StatusLine    bool     `yaml:"status-line"`
	Debug         bool     `yaml:"debug"`
	Log           string   `yaml:"log"`
	KillRing      KillRing `yaml:"kill-ring"`
}

// KillRing configures the kill ring.
type KillRing struct {
	Size int `yaml:"size"`
	// Path of a bbolt database; empty keeps the ring in memory.
	DB string `yaml:"db"`
}

// Default returns the configuration used when there is no rc file.
func Default() Config {
	return Config{
		Prompt:       "> ",
		Backend:      BackendVT,
		MouseCapture: true,
		StatusLine:   true,
		KillRing:     KillRing{Size: 16},
	}
}

// DefaultPath returns the path of the rc file: crispy/rc.yaml under
// $XDG_CONFIG_HOME, or under ~/.config if that is not set.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "crispy", "rc.yaml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("can't find home directory: %w", err)
	}
	return filepath.Join(home, ".config", "crispy", "rc.yaml"), nil
}

// Load reads the rc file at path. Fields missing from the file keep their
// default values.
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer f.Close()
	cfg, err := Parse(f)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// LoadDefault reads the rc file at DefaultPath. A missing file is not an
// error and yields the defaults.
func LoadDefault() (Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return Config{}, err
	}
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Parse reads a configuration in YAML. Unknown fields are errors.
func Parse(r io.Reader) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && err != io.EOF {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	if c.Prompt == "" {
		return errors.New("prompt must not be empty")
	}
	if c.Backend != BackendVT && c.Backend != BackendTcell {
		return fmt.Errorf("unknown backend %q, want %q or %q",
			c.Backend, BackendVT, BackendTcell)
	}
	if c.KillRing.Size <= 0 {
		return fmt.Errorf("kill-ring size must be positive, got %d", c.KillRing.Size)
	}
	return nil
}
