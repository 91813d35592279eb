// Package config provides runtime configuration for ResearchSynthesis.
// It uses Viper to load settings from files, environment variables, and CLI flags.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all runtime configuration for the ResearchSynthesis service.
type Config struct {
	// ── Server ───────────────────────────────────────────────────────────────
	ServerHost string `mapstructure:"server_host"`
	// Port: HTTP port for the API + landing page. The bare PORT env var
	// (hosting-platform convention) is honored alongside RSYNTH_PORT.
	Port  int  `mapstructure:"port"`
	Debug bool `mapstructure:"debug"`

	// ── Storage ──────────────────────────────────────────────────────────────
	DBPath   string `mapstructure:"db_path"`
	DBDriver string `mapstructure:"db_driver"` // only "sqlite" for now
	// CacheSize: number of documents kept in the in-memory LRU in front of sqlite.
	CacheSize int `mapstructure:"cache_size"`

	// ── Security ──────────────────────────────────────────────────────────────
	// JWTSecret: HS256 signing key for admin API tokens.
	// Change this in production — default is a random-looking placeholder.
	JWTSecret string `mapstructure:"jwt_secret"`
	// AdminUser / AdminPass: credentials for /api/login.
	AdminUser string `mapstructure:"admin_user"`
	AdminPass string `mapstructure:"admin_pass"`

	// ── Ingestion limits ─────────────────────────────────────────────────────
	MaxDocumentBytes int `mapstructure:"max_document_bytes"`
	PreviewLen       int `mapstructure:"preview_len"`

	// ── Ingest client ─────────────────────────────────────────────────────────
	// APIURL: base URL the `ingest` subcommand posts documents to.
	APIURL       string `mapstructure:"api_url"`
	IngestSource string `mapstructure:"ingest_source"`
}

// Load reads config from file (./config.yaml or ~/.researchsynth/config.yaml)
// and falls back to smart defaults. Environment variables with prefix RSYNTH_
// override file values; PORT, DEBUG and API_URL are also honored bare.
func Load() (*Config, error) {
	v := viper.New()

	// --- Smart Defaults ---
	v.SetDefault("server_host", "0.0.0.0")
	v.SetDefault("port", 8000)
	v.SetDefault("debug", false)

	v.SetDefault("db_path", "researchsynth.db")
	v.SetDefault("db_driver", "sqlite")
	v.SetDefault("cache_size", 4096)

	// Security defaults — MUST be overridden in production via config.yaml or env vars.
	v.SetDefault("jwt_secret", "Rs&Th3$iZ9@qL2!vX7#nK4^bW8*mC1(f")
	v.SetDefault("admin_user", "admin")
	v.SetDefault("admin_pass", "admin")

	v.SetDefault("max_document_bytes", 10_000_000) // 10MB per document
	v.SetDefault("preview_len", 200)

	v.SetDefault("api_url", "http://127.0.0.1:8000")
	v.SetDefault("ingest_source", "cli")

	// --- Config file ---
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.researchsynth")
	if err := v.ReadInConfig(); err != nil {
		// config file is optional; ignore "not found" errors
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	// --- Environment Variables ---
	v.SetEnvPrefix("RSYNTH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	// Bare env vars documented for hosting platforms; the RSYNTH_-prefixed
	// forms take precedence when both are set.
	_ = v.BindEnv("port", "RSYNTH_PORT", "PORT")
	_ = v.BindEnv("debug", "RSYNTH_DEBUG", "DEBUG")
	_ = v.BindEnv("api_url", "RSYNTH_API_URL", "API_URL")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	return &cfg, nil
}
