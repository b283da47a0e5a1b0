package config

import (
	"errors"
	"log/slog"
	"strings"
	"time"

	golobby "github.com/golobby/config/v3"
	"github.com/golobby/config/v3/pkg/feeder"
)

var ErrMissingAPIKey = errors.New("STEAM_API_KEY must be provided")

type Config struct {
	Server ServerConfig
	Shame  ShameConfig
	Steam  SteamConfig
}

type ServerConfig struct {
	AllowedOrigins string `env:"CORS_ALLOWED_ORIGINS"`
	LogLevel       string `env:"LOG_LEVEL"`
	Port           int    `env:"PORT"`
}

type ShameConfig struct {
	Policy string `env:"SHAME_POLICY"`
}

type SteamConfig struct {
	APIKey         string `env:"STEAM_API_KEY"`
	TimeoutSeconds int    `env:"STEAM_TIMEOUT_SECONDS"`
}

// Default returns a Config with every optional value filled in.
// Values from the environment are layered on top by Load.
func Default() Config {
	return Config{
		Server: ServerConfig{
			AllowedOrigins: "*",
			LogLevel:       "info",
			Port:           8080,
		},
		Shame: ShameConfig{
			Policy: "weighted",
		},
		Steam: SteamConfig{
			TimeoutSeconds: 10,
		},
	}
}

// Load reads configuration from the process environment. Callers that want
// a .env file honoured should load it with godotenv beforehand.
func Load() (Config, error) {
	cfg := Default()
	err := golobby.New().
		AddFeeder(feeder.Env{}).
		AddStruct(&cfg).
		Feed()
	if err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.Steam.APIKey) == "" {
		return ErrMissingAPIKey
	}
	if c.Steam.TimeoutSeconds <= 0 {
		c.Steam.TimeoutSeconds = 10
	}
	if c.Server.Port <= 0 {
		c.Server.Port = 8080
	}
	return nil
}

func (c *Config) SteamTimeout() time.Duration {
	return time.Duration(c.Steam.TimeoutSeconds) * time.Second
}

func (c *Config) GetAllowedOrigins() []string {
	var origins []string
	for _, o := range strings.Split(c.Server.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

func (c *Config) GetLogLevel() slog.Leveler {
	logLevel := strings.ToLower(c.Server.LogLevel)
	if logLevel == "error" {
		return slog.LevelError
	}
	if logLevel == "warning" || logLevel == "warn" {
		return slog.LevelWarn
	}
	if logLevel == "info" {
		return slog.LevelInfo
	}
	if logLevel == "debug" {
		return slog.LevelDebug
	}
	// default to info if unknown
	slog.With(slog.String("log_level", logLevel)).Info("Received invalid log level. Defaulting to INFO.")
	return slog.LevelInfo
}
