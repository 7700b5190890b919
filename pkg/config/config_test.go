package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("test")
	require.NoError(t, err)

	assert.Equal(t, "8090", cfg.Port)
	assert.Equal(t, "./assets", cfg.AssetsPath)
	assert.Equal(t, "http://localhost:8090", cfg.BaseURL)
	assert.Equal(t, "test", cfg.Version)
	assert.False(t, cfg.ReseedEnabled())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("ASSETS_PATH", "/var/lib/copa")
	t.Setenv("ADMIN_SECRET", "s3cret")
	t.Setenv("AUTH_SERVER_URL", "https://auth.example.com")

	cfg, err := Load("test")
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "/var/lib/copa", cfg.AssetsPath)
	assert.True(t, cfg.ReseedEnabled())
	assert.Equal(t, "https://auth.example.com/.well-known/jwks.json", cfg.Auth.JWKSURL)
}

func TestLoad_TLSRequiresBothPaths(t *testing.T) {
	t.Setenv("TLS_CERT_PATH", "/tmp/cert.pem")

	_, err := Load("test")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tls_key_path")
}
