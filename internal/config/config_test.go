package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "amiplus.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "key: \"\"\n"))
	require.NoError(t, err)
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, FormatJSON, cfg.Format)
}

func TestLoadValues(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
key: 000102030405060708090A0B0C0D0E0F
log_level: trace
format: cbor
catalog: /etc/amiplus/catalog.yaml
`))
	require.NoError(t, err)
	require.Equal(t, "000102030405060708090A0B0C0D0E0F", cfg.Key)
	require.Equal(t, "trace", cfg.LogLevel)
	require.Equal(t, FormatCBOR, cfg.Format)
	require.Equal(t, "/etc/amiplus/catalog.yaml", cfg.Catalog)
}

func TestLoadRejectsUnknownFormat(t *testing.T) {
	_, err := Load(writeConfig(t, "format: xml\n"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "format")
}

func TestLoadRejectsBadLogLevel(t *testing.T) {
	_, err := Load(writeConfig(t, "log_level: loud\n"))
	require.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
