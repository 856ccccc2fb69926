package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// Config is the root configuration for the bot.
type Config struct {
	General  GeneralConfig  `json:"general"`
	Telegram TelegramConfig `json:"telegram"`
	Gemini   GeminiConfig   `json:"gemini"`
	Speech   SpeechConfig   `json:"speech"`
}

type GeneralConfig struct {
	LogLevel              string `json:"logLevel"`
	MaxConcurrentHandlers int    `json:"maxConcurrentHandlers"`
	RepliesPath           string `json:"repliesPath,omitempty"` // optional YAML override for user-facing strings
}

type TelegramConfig struct {
	Token       string `json:"token"`
	ParseMode   string `json:"parseMode"`
	PollTimeout int    `json:"pollTimeoutSeconds"`
}

type GeminiConfig struct {
	APIKey     string `json:"apiKey"`
	TextModel  string `json:"textModel"`
	ImageModel string `json:"imageModel"`
}

type SpeechConfig struct {
	APIKey     string `json:"apiKey,omitempty"` // falls back to gemini.apiKey when empty
	Language   string `json:"language"`
	SampleRate int    `json:"sampleRateHertz"`
	FFmpegPath string `json:"ffmpegPath"`
	TempDir    string `json:"tempDir,omitempty"` // empty = OS default
}

// DefaultConfigDir returns the default config directory (~/.geminigram).
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".geminigram"
	}
	return filepath.Join(home, ".geminigram")
}

func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.json")
}

// Load reads a config file, expands ${VAR} references from the environment
// and validates the result.
func Load(path string) (*Config, error) {
	path = ExpandPath(path)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read config file %s: %w", path, err)
	}

	// Substitute environment variables: ${VAR} and ${VAR:-default}
	data = []byte(ExpandEnvVars(string(data)))

	cfg := Defaults()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("cannot parse config file %s: %w", path, err)
	}

	cfg.General.RepliesPath = ExpandPath(cfg.General.RepliesPath)
	cfg.Speech.TempDir = ExpandPath(cfg.Speech.TempDir)

	// The speech key is optional; an unresolved placeholder means "unset"
	// and triggers the fallback to the Gemini key.
	if strings.HasPrefix(cfg.Speech.APIKey, "${") {
		cfg.Speech.APIKey = ""
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

// FromEnv builds a config from defaults plus the required environment
// variables, for running without a config file.
func FromEnv() (*Config, error) {
	cfg := Defaults()
	cfg.Telegram.Token = os.Getenv("TELEGRAM_BOT_TOKEN")
	cfg.Gemini.APIKey = os.Getenv("GEMINI_API_KEY")
	cfg.Speech.APIKey = os.Getenv("GOOGLE_SPEECH_API_KEY")
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// envVarPattern matches ${VAR} and ${VAR:-default} patterns in config strings.
var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(?::-(.*?))?\}`)

// ExpandEnvVars replaces ${VAR} with the environment variable value.
// Supports default values: ${VAR:-default} uses "default" when VAR is unset or empty.
// Unresolved placeholders become empty strings, which Validate then rejects
// for the required fields.
func ExpandEnvVars(input string) string {
	return envVarPattern.ReplaceAllStringFunc(input, func(match string) string {
		groups := envVarPattern.FindStringSubmatch(match)
		if len(groups) < 2 {
			return match
		}
		varName := groups[1]
		defaultVal := ""
		hasDefault := len(groups) >= 3 && groups[2] != ""
		if hasDefault {
			defaultVal = groups[2]
		}

		val, exists := os.LookupEnv(varName)
		if !exists || val == "" {
			return defaultVal
		}
		return val
	})
}

func Save(path string, cfg *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("cannot create config directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("cannot marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0o600)
}

// Validate checks that the config has valid values. The Telegram token and
// Gemini API key are hard requirements; the bot refuses to start without them.
func Validate(cfg *Config) error {
	var errs []string

	if cfg.Telegram.Token == "" || strings.HasPrefix(cfg.Telegram.Token, "${") {
		errs = append(errs, "telegram.token is required (set TELEGRAM_BOT_TOKEN)")
	}
	if cfg.Gemini.APIKey == "" || strings.HasPrefix(cfg.Gemini.APIKey, "${") {
		errs = append(errs, "gemini.apiKey is required (set GEMINI_API_KEY)")
	}
	if cfg.General.MaxConcurrentHandlers < 1 || cfg.General.MaxConcurrentHandlers > 100 {
		errs = append(errs, "general.maxConcurrentHandlers must be between 1 and 100")
	}
	if cfg.Telegram.PollTimeout < 1 {
		errs = append(errs, "telegram.pollTimeoutSeconds must be >= 1")
	}
	if cfg.Speech.SampleRate < 8000 || cfg.Speech.SampleRate > 48000 {
		errs = append(errs, "speech.sampleRateHertz must be between 8000 and 48000")
	}
	if cfg.Speech.Language == "" {
		errs = append(errs, "speech.language must not be empty")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation errors:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

// SpeechKey returns the key for the speech backend, falling back to the
// Gemini key when no dedicated one is configured.
func (c *Config) SpeechKey() string {
	if c.Speech.APIKey != "" {
		return c.Speech.APIKey
	}
	return c.Gemini.APIKey
}

// ExpandPath resolves ~/ to the user's home directory.
func ExpandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}
