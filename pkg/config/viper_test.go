package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadWithoutConfigFile(t *testing.T) {
	t.Chdir(t.TempDir())

	v, err := Load("./config", "config")
	require.NoError(t, err)
	assert.NotNil(t, v)
}

func TestLoadReadsYAMLAndEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "config"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config", "config.yaml"),
		[]byte("server:\n  port: 4000\n  host: 127.0.0.1\n"), 0o644))
	t.Setenv("SERVER_HOST", "10.0.0.1")

	v, err := Load("./config", "config")
	require.NoError(t, err)
	assert.Equal(t, 4000, v.GetInt("server.port"))
	assert.Equal(t, "10.0.0.1", v.GetString("server.host"))
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, LoadDotEnv(filepath.Join(dir, "missing.env")))

	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("CONTACT_TEST_KEY=from-file\n"), 0o644))
	t.Setenv("CONTACT_TEST_KEY", "")
	require.NoError(t, os.Unsetenv("CONTACT_TEST_KEY"))

	require.NoError(t, LoadDotEnv(path))
	assert.Equal(t, "from-file", GetEnv("CONTACT_TEST_KEY", "default"))
	assert.Equal(t, "default", GetEnv("CONTACT_TEST_MISSING", "default"))
}
