package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Addr)
	assert.Equal(t, "data/itemshare.db", cfg.Database.Path)
	assert.Equal(t, "http://localhost:8080/transfers", cfg.Transfer.LinkBase)
	assert.Empty(t, cfg.Auth.JWTSecret)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("ITEMSHARE_SERVER_ADDR", "127.0.0.1:9999")
	t.Setenv("ITEMSHARE_AUTH_JWTSECRET", "s3cret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9999", cfg.Server.Addr)
	assert.Equal(t, "s3cret", cfg.Auth.JWTSecret)
}
