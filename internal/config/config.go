package config

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application level configuration aggregated from env/config files.
type Config struct {
	Server struct {
		Addr string
	}
	API struct {
		BaseURL string
		Timeout time.Duration
	}
	Database struct {
		Path string
	}
	Log struct {
		Level string
		File  string
	}
}

// Option adjusts the loader before any source is read.
type Option func(v *viper.Viper)

// WithDefaultLogLevel replaces the built-in log level default. Env and config
// file values still take precedence.
func WithDefaultLogLevel(level string) Option {
	return func(v *viper.Viper) {
		v.SetDefault("log.level", level)
	}
}

// Load reads configuration from environment variables and optional config files.
func Load(opts ...Option) (Config, error) {
	loadDotEnv(".env")
	return load(viper.New(), opts...)
}

func load(v *viper.Viper, opts ...Option) (Config, error) {
	v.SetEnvPrefix("PANEL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.addr", "127.0.0.1:3000")
	v.SetDefault("api.baseurl", "http://127.0.0.1:8000")
	v.SetDefault("api.timeout", 15*time.Second)
	v.SetDefault("database.path", "data/panel.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	for _, opt := range opts {
		opt(v)
	}

	// API_URL is accepted as a shorter alias.
	if err := v.BindEnv("api.baseurl", "PANEL_API_BASEURL", "API_URL"); err != nil {
		return Config{}, fmt.Errorf("bind api url env: %w", err)
	}

	v.SetConfigName("config")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // optional file

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.API.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.API.BaseURL), "/")
	if cfg.API.BaseURL == "" {
		return Config{}, fmt.Errorf("api base url is required")
	}
	if cfg.API.Timeout <= 0 {
		return Config{}, fmt.Errorf("api timeout must be positive, got %s", cfg.API.Timeout)
	}

	return cfg, nil
}

func loadDotEnv(path string) {
	file, err := os.Open(path)
	if err != nil {
		return
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		partsIndex := strings.Index(line, "=")
		if partsIndex <= 0 {
			continue
		}

		key := strings.TrimSpace(strings.TrimPrefix(line[:partsIndex], "export "))
		value := strings.TrimSpace(line[partsIndex+1:])
		value = strings.Trim(value, `"'`)
		if key == "" {
			continue
		}

		if _, exists := os.LookupEnv(key); !exists {
			_ = os.Setenv(key, value)
		}
	}
}
