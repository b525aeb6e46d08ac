// Package config loads the user configuration: defaults, then the YAML file
// when present, then AEMD_* environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	applog "github.com/goliatone/go-aemdialog/internal/log"
)

type WorkspaceConfig struct {
	Path string `yaml:"path"`
}

type ExportConfig struct {
	Dir      string `yaml:"dir"`
	Renderer string `yaml:"renderer"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Source bool   `yaml:"source"`
	File   string `yaml:"file"`
}

// Config is the user-editable configuration. Environment variables are
// read-only overrides applied at load time.
type Config struct {
	ConfigVersion int             `yaml:"config_version"`
	Workspace     WorkspaceConfig `yaml:"workspace"`
	Export        ExportConfig    `yaml:"export"`
	Server        ServerConfig    `yaml:"server"`
	Logging       LoggingConfig   `yaml:"logging"`
}

// Env var names used as overrides.
const (
	EnvConfig    = "AEMD_CONFIG"
	EnvWorkspace = "AEMD_WORKSPACE"
	EnvExportDir = "AEMD_EXPORT_DIR"
	EnvRenderer  = "AEMD_RENDERER"
	EnvAddr      = "AEMD_ADDR"
)

// Defaults returns the application defaults. The workspace lives next to the
// config file.
func Defaults() Config {
	workspace := "aemdialog.db"
	if dir, err := configDir(); err == nil {
		workspace = filepath.Join(dir, "workspace.db")
	}
	return Config{
		ConfigVersion: 1,
		Workspace:     WorkspaceConfig{Path: workspace},
		Export:        ExportConfig{Dir: ".", Renderer: "aem-xml"},
		Server:        ServerConfig{Addr: "127.0.0.1:8080"},
		Logging:       LoggingConfig{Level: "info", Format: "console"},
	}
}

// Path returns $AEMD_CONFIG or ~/.config/aemdialog/config.yaml.
func Path() (string, error) {
	if v := strings.TrimSpace(os.Getenv(EnvConfig)); v != "" {
		return v, nil
	}
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "", errors.New("config: cannot resolve home directory")
	}
	return filepath.Join(home, ".config", "aemdialog"), nil
}

// Load reads the config file at Path.
func Load() (Config, error) {
	path, err := Path()
	if err != nil {
		cfg := Defaults()
		applyEnvOverrides(&cfg)
		return cfg, nil
	}
	return LoadFile(path)
}

// LoadFile reads the config at path. A missing file is not an error; a file
// that does not parse is.
func LoadFile(path string) (Config, error) {
	cfg := Defaults()
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		var fileCfg Config
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			return cfg, fmt.Errorf("config: parse %s: %w", path, err)
		}
		mergeInto(&cfg, &fileCfg)
	case errors.Is(err, os.ErrNotExist):
	default:
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}
	applyEnvOverrides(&cfg)
	return cfg, nil
}

// Save writes cfg as YAML, creating the parent directory.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("config: encode: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// LogOptions converts the logging section for log.Init.
func (c Config) LogOptions() applog.Options {
	return applog.Options{
		Level:     c.Logging.Level,
		Format:    c.Logging.Format,
		AddSource: c.Logging.Source,
		File:      c.Logging.File,
	}
}

func mergeInto(dst, src *Config) {
	if src.ConfigVersion != 0 {
		dst.ConfigVersion = src.ConfigVersion
	}
	if v := strings.TrimSpace(src.Workspace.Path); v != "" {
		dst.Workspace.Path = expandHome(v)
	}
	if v := strings.TrimSpace(src.Export.Dir); v != "" {
		dst.Export.Dir = expandHome(v)
	}
	if v := strings.TrimSpace(src.Export.Renderer); v != "" {
		dst.Export.Renderer = v
	}
	if v := strings.TrimSpace(src.Server.Addr); v != "" {
		dst.Server.Addr = v
	}
	if v := strings.TrimSpace(src.Logging.Level); v != "" {
		dst.Logging.Level = strings.ToLower(v)
	}
	if v := strings.TrimSpace(src.Logging.Format); v != "" {
		dst.Logging.Format = strings.ToLower(v)
	}
	dst.Logging.Source = src.Logging.Source
	if v := strings.TrimSpace(src.Logging.File); v != "" {
		dst.Logging.File = expandHome(v)
	}
}

func applyEnvOverrides(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv(EnvWorkspace)); v != "" {
		cfg.Workspace.Path = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvExportDir)); v != "" {
		cfg.Export.Dir = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvRenderer)); v != "" {
		cfg.Export.Renderer = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvAddr)); v != "" {
		cfg.Server.Addr = v
	}
	if v := strings.TrimSpace(os.Getenv(applog.EnvLogLevel)); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(applog.EnvLogFormat)); v != "" {
		cfg.Logging.Format = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(applog.EnvLogSource)); v != "" {
		lv := strings.ToLower(v)
		cfg.Logging.Source = lv == "1" || lv == "true" || lv == "on" || lv == "yes"
	}
	if v := strings.TrimSpace(os.Getenv(applog.EnvLogFile)); v != "" {
		cfg.Logging.File = v
	}
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
