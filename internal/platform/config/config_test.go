// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/inkwell/internal/platform/config"
)

func setRequired(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/inkwell")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("JWT_PRIVATE_KEY_PATH", "private.pem")
	t.Setenv("JWT_PUBLIC_KEY_PATH", "public.pem")
}

/*
TestLoad_Defaults fills optional fields from their defaults.
*/
func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "core", cfg.DatabaseSchema)
	assert.Equal(t, "./migrations", cfg.MigrationPath)
	assert.True(t, cfg.IsDevelopment())
	assert.Empty(t, cfg.AllowedOrigins())
}

/*
TestLoad_DotEnv reads values from a file without overriding the process env.
*/
func TestLoad_DotEnv(t *testing.T) {
	setRequired(t)
	t.Setenv("SERVER_PORT", "9090")

	file := filepath.Join(t.TempDir(), ".env")
	content := "SERVER_PORT=7070\nEXTRA_ORIGINS= https://a.example , ,https://b.example\n"
	require.NoError(t, os.WriteFile(file, []byte(content), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv("EXTRA_ORIGINS") })

	cfg, err := config.Load(file)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins())
}

/*
TestLoad_MissingRequired fails when a required variable is absent.
*/
func TestLoad_MissingRequired(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	_ = os.Unsetenv("DATABASE_URL")

	_, err := config.Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err)
}

/*
TestLoad_UnknownEnvironment rejects a typo in ENVIRONMENT.
*/
func TestLoad_UnknownEnvironment(t *testing.T) {
	setRequired(t)
	t.Setenv("ENVIRONMENT", "prod")

	_, err := config.Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.ErrorContains(t, err, "prod")
}
