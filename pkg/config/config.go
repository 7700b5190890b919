package config

import (
	"fmt"
	"net/url"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds all configuration for copa-console.
// Configuration can come from a YAML file (config.yaml) or environment
// variables; environment variables always override YAML values. Secrets
// (admin secret, session secret) must only come from the environment.
type Config struct {
	// Server configuration
	BindAddr string `yaml:"bind_addr" env:"BIND_ADDR" env-default:"127.0.0.1"`
	Port     string `yaml:"port" env:"PORT" env-default:"8090"`
	Env      string `yaml:"env" env:"ENVIRONMENT" env-default:"local"`
	BaseURL  string `yaml:"base_url" env:"BASE_URL" env-default:""` // Auto-derived from Port if empty
	Version  string `yaml:"-"`                                      // Set at load time, not from config

	// TLS configuration (optional - if both provided, server uses HTTPS)
	TLSCertPath string `yaml:"tls_cert_path" env:"TLS_CERT_PATH" env-default:""`
	TLSKeyPath  string `yaml:"tls_key_path" env:"TLS_KEY_PATH" env-default:""`

	// AssetsPath is the data directory root. Catalogue, vocabulary and
	// forms documents live under it as JSON files.
	AssetsPath string `yaml:"assets_path" env:"ASSETS_PATH" env-default:"./assets"`

	// AdminSecret gates POST /api/admin/reseed. When unset, reseed is
	// disabled entirely; there is deliberately no built-in fallback value.
	AdminSecret string `yaml:"-" env:"ADMIN_SECRET"` // Secret - not in YAML

	// SessionSecret signs session cookies. Must be consistent across
	// restarts and across servers in a load-balanced deployment.
	SessionSecret string `yaml:"-" env:"SESSION_SECRET"` // Secret - not in YAML

	// Auth holds OAuth/session configuration.
	Auth AuthConfig `yaml:"auth"`
}

// AuthConfig holds authentication-related configuration. Authentication is
// delegated to an external OAuth provider; the console only verifies the
// provider's ID tokens and keeps a session cookie.
type AuthConfig struct {
	// ClientID is the OAuth client ID registered with the auth server.
	ClientID string `yaml:"client_id" env:"OAUTH_CLIENT_ID" env-default:"copa-console"`

	// AuthServerURL is the OAuth authorization server base URL.
	AuthServerURL string `yaml:"auth_server_url" env:"AUTH_SERVER_URL" env-default:""`

	// JWKSURL is the provider's JWKS endpoint used to verify ID tokens.
	// If empty, it is derived from AuthServerURL.
	JWKSURL string `yaml:"jwks_url" env:"JWKS_URL" env-default:""`

	// EnableVerification controls whether ID token signatures are
	// validated. Set to false for local development without an auth server.
	EnableVerification bool `yaml:"enable_verification" env:"AUTH_ENABLE_VERIFICATION" env-default:"true"`
}

// Load reads configuration from config.yaml with environment variable
// overrides. If config.yaml is absent the environment alone is used. The
// version parameter is injected at build time and set on the returned Config.
func Load(version string) (*Config, error) {
	cfg := &Config{
		Version: version,
	}

	if _, err := os.Stat("config.yaml"); err == nil {
		if err := cleanenv.ReadConfig("config.yaml", cfg); err != nil {
			return nil, fmt.Errorf("failed to read config.yaml: %w", err)
		}
	} else {
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return nil, fmt.Errorf("failed to read environment: %w", err)
		}
	}

	if err := cfg.validateTLS(); err != nil {
		return nil, fmt.Errorf("invalid TLS configuration: %w", err)
	}

	// Auto-derive BaseURL from Port if not explicitly set.
	// Use HTTPS scheme if TLS is configured.
	if cfg.BaseURL == "" {
		scheme := "http"
		if cfg.TLSCertPath != "" {
			scheme = "https"
		}
		cfg.BaseURL = (&url.URL{
			Scheme: scheme,
			Host:   "localhost:" + cfg.Port,
		}).String()
	}

	if cfg.Auth.JWKSURL == "" && cfg.Auth.AuthServerURL != "" {
		cfg.Auth.JWKSURL = cfg.Auth.AuthServerURL + "/.well-known/jwks.json"
	}

	return cfg, nil
}

// ReseedEnabled reports whether the admin reseed endpoint is usable.
func (c *Config) ReseedEnabled() bool {
	return c.AdminSecret != ""
}

// validateTLS ensures TLS configuration is valid if provided.
// Both cert and key must be provided together, and the files must exist.
func (c *Config) validateTLS() error {
	certSet := c.TLSCertPath != ""
	keySet := c.TLSKeyPath != ""

	if certSet != keySet {
		return fmt.Errorf("both tls_cert_path and tls_key_path must be provided together")
	}

	if certSet {
		if _, err := os.Stat(c.TLSCertPath); err != nil {
			return fmt.Errorf("TLS cert file does not exist: %w", err)
		}
		if _, err := os.Stat(c.TLSKeyPath); err != nil {
			return fmt.Errorf("TLS key file does not exist: %w", err)
		}
	}

	return nil
}
