package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSafeErrorMessage(t *testing.T) {
	fallback := "Operación fallida"
	testErr := errors.New("dial tcp: connection refused")

	// nil err 返回 fallback
	assert.Equal(t, fallback, SafeErrorMessage(nil, fallback))

	// release 模式返回 fallback，不暴露错误详情
	GlobalConfig = &Config{Server: ServerConfig{Mode: "release"}}
	defer func() { GlobalConfig = nil }()
	assert.Equal(t, fallback, SafeErrorMessage(testErr, fallback))

	// debug 模式返回 err.Error()
	GlobalConfig = &Config{Server: ServerConfig{Mode: "debug"}}
	assert.Equal(t, "dial tcp: connection refused", SafeErrorMessage(testErr, fallback))

	// GlobalConfig 为 nil 时返回 err.Error()（视为开发环境）
	GlobalConfig = nil
	assert.Equal(t, "dial tcp: connection refused", SafeErrorMessage(testErr, fallback))
}

func TestLoadConfig_Defaults(t *testing.T) {
	defer func() { GlobalConfig = nil }()

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Port)
	assert.Equal(t, "admin", cfg.Auth.Username)
	assert.Equal(t, "1234", cfg.Auth.Password)
	assert.Equal(t, "finanzas_logged_in", cfg.Auth.FlagKey)
	assert.True(t, cfg.Features.LoanLinks)
	assert.Equal(t, 30*time.Second, cfg.Remote.Timeout)
	assert.Equal(t, time.Minute, cfg.RateLimit.Window)
	assert.Same(t, cfg, GlobalConfig)
}

func TestLoadConfig_ExternalFileAndEnv(t *testing.T) {
	defer func() { GlobalConfig = nil }()

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "remote:\n  url: \"http://example.test/exec\"\n  timeout_seconds: 5\nfeatures:\n  loan_links: false\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv("FINANCE_SERVER_MODE", "release")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "http://example.test/exec", cfg.Remote.URL)
	assert.Equal(t, 5*time.Second, cfg.Remote.Timeout)
	assert.False(t, cfg.Features.LoanLinks)
	assert.Equal(t, "release", cfg.Server.Mode)
}
