package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

var (
	errInvalidPort         = errors.New("config: invalid PORT number")
	errTimeoutOutOfRange   = errors.New("config: SCAN_TIMEOUT_SECONDS must be 1-120")
	errProbeTimeoutInvalid = errors.New("config: PROBE_TIMEOUT_SECONDS must be 1-30")
)

// Config holds all application configuration. Values come from the optional
// YAML config file first, then environment variables override.
type Config struct {
	Port                string `yaml:"port"`
	LogLevel            string `yaml:"log_level"`
	ScanTimeoutSeconds  int    `yaml:"scan_timeout_seconds"`
	ProbeTimeoutSeconds int    `yaml:"probe_timeout_seconds"`
	GeminiAPIKey        string `yaml:"gemini_api_key"`
	GeminiModel         string `yaml:"gemini_model"`
}

// Load reads configuration with sensible defaults, layering the YAML file at
// path (if it exists) and then environment variables on top. An empty path
// skips the file layer.
func Load(path string) (Config, error) {
	cfg := Config{
		Port:                "8080",
		LogLevel:            "INFO",
		ScanTimeoutSeconds:  15,
		ProbeTimeoutSeconds: 5,
		GeminiModel:         "gemini-1.5-flash",
	}

	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return cfg, err
		}
	}

	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.ScanTimeoutSeconds = getEnvAsInt("SCAN_TIMEOUT_SECONDS", cfg.ScanTimeoutSeconds)
	cfg.ProbeTimeoutSeconds = getEnvAsInt("PROBE_TIMEOUT_SECONDS", cfg.ProbeTimeoutSeconds)
	cfg.GeminiAPIKey = getEnv("GEMINI_API_KEY", cfg.GeminiAPIKey)
	cfg.GeminiModel = getEnv("GEMINI_MODEL", cfg.GeminiModel)

	return cfg, cfg.validate()
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	return nil
}

func (c Config) validate() error {
	port, err := strconv.Atoi(c.Port)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("%w: %q", errInvalidPort, c.Port)
	}

	if c.ScanTimeoutSeconds < 1 || c.ScanTimeoutSeconds > 120 {
		return fmt.Errorf("%w: got %d", errTimeoutOutOfRange, c.ScanTimeoutSeconds)
	}

	if c.ProbeTimeoutSeconds < 1 || c.ProbeTimeoutSeconds > 30 {
		return fmt.Errorf("%w: got %d", errProbeTimeoutInvalid, c.ProbeTimeoutSeconds)
	}

	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	s := os.Getenv(key)
	if s == "" {
		return fallback
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return v
}
