// vi: sw=4 ts=4:

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverridesOnlyGivenFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ssd.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[server]
sock_path = "/var/run/rendez.sock"
`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/var/run/rendez.sock", cfg.Server.SockPath)
	assert.Equal(t, Default().Server.FifoDir, cfg.Server.FifoDir)
	assert.Equal(t, Default().Server.LogLevel, cfg.Server.LogLevel)
}

func TestLoadRejectsEmptySockPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ssd.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[server]
sock_path = ""
`), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}
