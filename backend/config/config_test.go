// Copyright (C) 2025 eternitymarket.io <dev@eternitymarket.io>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":3001", cfg.ListenAddr)
	assert.Equal(t, "uploads", cfg.UploadDir)
	assert.False(t, cfg.Dev)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
listen_addr = ":9000"
redis_url = "redis.internal:6379"
allowed_origins = ["https://eternitymarket.io"]
dev = true
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.ListenAddr)
	assert.Equal(t, "redis.internal:6379", cfg.RedisURL)
	assert.Equal(t, []string{"https://eternitymarket.io"}, cfg.AllowedOrigins)
	assert.True(t, cfg.Dev)
	// Untouched keys keep defaults.
	assert.Equal(t, "uploads", cfg.UploadDir)
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`listen_addr = ":9000"`), 0o600))

	t.Setenv("PORT", "8080")
	t.Setenv("DATABASE_URL", "postgres://db.internal/chat")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example,https://b.example")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, "postgres://db.internal/chat", cfg.DatabaseURL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}
