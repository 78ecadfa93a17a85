package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"

	"github.com/samzong/git-autocommit/internal/committype"
)

// Config holds every setting the tool reads from file, environment or flags.
type Config struct {
	Model    string       `mapstructure:"model"`
	APIKey   string       `mapstructure:"api_key"`
	APIBase  string       `mapstructure:"api_base"`
	Timeout  int          `mapstructure:"timeout"`
	LogLevel string       `mapstructure:"log_level"`
	Prompt   PromptConfig `mapstructure:"prompt"`
}

// PromptConfig shapes the instructions sent with every generation request.
type PromptConfig struct {
	MaxSubjectLength int      `mapstructure:"max_subject_length"`
	BodyWrapWidth    int      `mapstructure:"body_wrap_width"`
	AllowedTypes     []string `mapstructure:"allowed_types"`
	MaxDiffBytes     int      `mapstructure:"max_diff_bytes"`
	TemplateFile     string   `mapstructure:"template_file"`
}

const (
	DefaultModel            = "gpt-4.1-mini"
	DefaultTimeout          = 30
	DefaultLogLevel         = "warn"
	DefaultMaxSubjectLength = 72
	DefaultBodyWrapWidth    = 100
	DefaultConfigName       = "config"
	DefaultConfigDir        = "git-autocommit"
	EnvPrefix               = "AUTOCOMMIT"
)

// Keys lists the settings `config set` accepts.
var Keys = []string{
	"model",
	"api_key",
	"api_base",
	"timeout",
	"log_level",
	"prompt.max_subject_length",
	"prompt.body_wrap_width",
	"prompt.allowed_types",
	"prompt.max_diff_bytes",
	"prompt.template_file",
}

var suggestedModels = []string{
	"gpt-4.1-mini",
	"gpt-4.1",
	"gpt-4o-mini",
	"gpt-4o",
}

// InitConfig wires viper to the config file, defaults and AUTOCOMMIT_* environment
// variables. A missing config file is created empty with 0600 permissions.
func InitConfig(cfgFile string) error {
	changed = nil
	setDefaults()

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	configPath := cfgFile
	if configPath == "" {
		var err error
		configPath, err = DefaultConfigPath()
		if err != nil {
			return err
		}
	}
	viper.SetConfigFile(configPath)
	viper.SetConfigType("yaml")

	if err := viper.ReadInConfig(); err != nil {
		if !errors.Is(err, os.ErrNotExist) && !isConfigNotFound(err) {
			return fmt.Errorf("failed to read configuration file: %w", err)
		}
		return createConfigFile(configPath)
	}
	return ensurePrivate(configPath)
}

func setDefaults() {
	viper.SetDefault("model", DefaultModel)
	viper.SetDefault("api_key", "")
	viper.SetDefault("api_base", "")
	viper.SetDefault("timeout", DefaultTimeout)
	viper.SetDefault("log_level", DefaultLogLevel)
	viper.SetDefault("prompt.max_subject_length", DefaultMaxSubjectLength)
	viper.SetDefault("prompt.body_wrap_width", DefaultBodyWrapWidth)
	viper.SetDefault("prompt.allowed_types", committype.Defaults())
	viper.SetDefault("prompt.max_diff_bytes", 0)
	viper.SetDefault("prompt.template_file", "")
}

func isConfigNotFound(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound)
}

// DefaultConfigPath resolves $XDG_CONFIG_HOME/git-autocommit/config.yaml, falling
// back to ~/.config when XDG_CONFIG_HOME is unset.
func DefaultConfigPath() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to find home directory: %w", err)
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, DefaultConfigDir, DefaultConfigName+".yaml"), nil
}

func createConfigFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create configuration directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("failed to create configuration file: %w", err)
	}
	return f.Close()
}

func ensurePrivate(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return nil
	}
	if info.Mode().Perm()&0o077 != 0 {
		return os.Chmod(path, 0o600)
	}
	return nil
}

// GetConfig decodes the current viper state.
func GetConfig() (*Config, error) {
	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}
	if len(cfg.Prompt.AllowedTypes) == 1 && strings.Contains(cfg.Prompt.AllowedTypes[0], ",") {
		cfg.Prompt.AllowedTypes = splitList(cfg.Prompt.AllowedTypes[0])
	}
	return cfg, nil
}

// Validate rejects settings that would make a run misbehave.
func (c *Config) Validate() error {
	if !IsValidModel(c.Model) {
		return errors.New("model must not be empty")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %d", c.Timeout)
	}
	if c.Prompt.MaxSubjectLength <= 0 {
		return fmt.Errorf("prompt.max_subject_length must be positive, got %d", c.Prompt.MaxSubjectLength)
	}
	if c.Prompt.BodyWrapWidth <= 0 {
		return fmt.Errorf("prompt.body_wrap_width must be positive, got %d", c.Prompt.BodyWrapWidth)
	}
	if c.Prompt.MaxDiffBytes < 0 {
		return fmt.Errorf("prompt.max_diff_bytes must not be negative, got %d", c.Prompt.MaxDiffBytes)
	}
	if err := committype.Validate(c.Prompt.AllowedTypes); err != nil {
		return fmt.Errorf("prompt.allowed_types: %w", err)
	}
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	return nil
}

// changed holds the values set through SetConfigValue since InitConfig. Only
// these are added to the file on save.
var changed map[string]any

// SetConfigValue overrides key for the rest of the process.
func SetConfigValue(key string, value any) {
	viper.Set(key, value)
	if changed == nil {
		changed = make(map[string]any)
	}
	changed[key] = value
}

// SetFromString parses value according to the type of key and stores it.
func SetFromString(key, value string) error {
	switch key {
	case "timeout", "prompt.max_subject_length", "prompt.body_wrap_width", "prompt.max_diff_bytes":
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("%s expects an integer, got %q", key, value)
		}
		SetConfigValue(key, n)
	case "prompt.allowed_types":
		SetConfigValue(key, splitList(value))
	default:
		if !IsKnownKey(key) {
			return fmt.Errorf("unknown configuration key %q (known: %s)", key, strings.Join(Keys, ", "))
		}
		SetConfigValue(key, value)
	}
	return nil
}

// IsKnownKey reports whether key is one of Keys.
func IsKnownKey(key string) bool {
	for _, k := range Keys {
		if k == key {
			return true
		}
	}
	return false
}

// SaveConfig writes the values set through SetConfigValue into the config file.
// Keys already in the file are kept; defaults and AUTOCOMMIT_* environment values
// are never written.
func SaveConfig() error {
	path := viper.ConfigFileUsed()
	if path == "" {
		var err error
		path, err = DefaultConfigPath()
		if err != nil {
			return err
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create configuration directory: %w", err)
	}
	file := viper.New()
	file.SetConfigFile(path)
	file.SetConfigType("yaml")
	if err := file.ReadInConfig(); err != nil && !errors.Is(err, os.ErrNotExist) && !isConfigNotFound(err) {
		return fmt.Errorf("failed to read configuration file: %w", err)
	}
	for key, value := range changed {
		file.Set(key, value)
	}
	if err := file.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write configuration file: %w", err)
	}
	return os.Chmod(path, 0o600)
}

func IsValidModel(model string) bool {
	return strings.TrimSpace(model) != ""
}

func GetSuggestedModels() []string {
	return suggestedModels
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
