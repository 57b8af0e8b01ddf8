package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kestrelgfx/gdsl/verify"
)

func TestDefaultConfig(t *testing.T) {
	cfg := Default()
	require.Equal(t, 4096, cfg.Diff.PageSize)
	require.Equal(t, int(verify.DomainLevel), cfg.Verify.Level)
}

func TestLoadWithNoPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

func TestLoadFromYAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gdsl.yaml")
	require.NoError(t, os.WriteFile(path, []byte("diff:\n  page_size: 8192\nverify:\n  level: 1\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 8192, cfg.Diff.PageSize)
	require.Equal(t, 1, cfg.Verify.Level)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gdsl.yaml")
	require.NoError(t, os.WriteFile(path, []byte("diff:\n  page_size: 8192\n"), 0o644))

	t.Setenv("GDSL_PAGE_SIZE", "2048")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 2048, cfg.Diff.PageSize)
}

func TestLoadRejectsInvalidVerifyLevel(t *testing.T) {
	t.Setenv("GDSL_VERIFY_LEVEL", "99")
	_, err := Load("")
	require.Error(t, err)
}

func TestLoadRejectsMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.Error(t, err)
}
