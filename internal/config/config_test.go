package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testOwner = "0x00112233445566778899aabbccddeeff00112233"

func TestLoadConfig(t *testing.T) {
	tempDir := t.TempDir()

	content := `
[server]
bind_address = "0.0.0.0"
port = 8080

[vault]
owner = "` + testOwner + `"

[database]
backend = "pebble"
path = "/tmp/test/db"
compression = "none"

[audit]
driver = "sqlite"
path = "/tmp/test/audit.db"

[oracle]
mode = "http"
endpoint = "http://localhost:9000/price"
`
	path := filepath.Join(tempDir, "test_config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	config, err := LoadConfig(path)
	require.NoError(t, err)
	require.NotNil(t, config)

	assert.Equal(t, "0.0.0.0", config.Server.BindAddress)
	assert.Equal(t, 8080, config.Server.Port)
	assert.Equal(t, testOwner, config.Vault.Owner)
	assert.Equal(t, "pebble", config.Database.Backend)
	assert.Equal(t, "/tmp/test/db", config.Database.Path)
	assert.Equal(t, "none", config.Database.Compression)
	assert.Equal(t, "sqlite", config.Audit.Driver)
	assert.Equal(t, "http", config.Oracle.Mode)
	assert.Equal(t, "http://localhost:9000/price", config.Oracle.Endpoint)
	assert.Equal(t, path, config.GetConfigPath())

	// Unset sections keep their defaults.
	assert.Equal(t, 30, config.Server.RequestTimeout)
	assert.True(t, config.Events.Enabled)
	assert.Equal(t, 256, config.Events.ReplaySize)
}

func TestLoadConfigDefaultsOnly(t *testing.T) {
	// Without a config file the only way to pass validation is the
	// owner env var.
	t.Setenv("FUNDVAULTD_VAULT_OWNER", testOwner)

	config, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", config.Server.BindAddress)
	assert.Equal(t, 5005, config.Server.Port)
	assert.Equal(t, "memory", config.Database.Backend)
	assert.Equal(t, "none", config.Audit.Driver)
	assert.Equal(t, "fixed", config.Oracle.Mode)
	assert.Equal(t, testOwner, config.Vault.Owner)
	assert.Empty(t, config.GetConfigPath())
}

func TestLoadConfigExplicitMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not exist")
}

func TestConfigValidation(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:   ServerConfig{BindAddress: "127.0.0.1", Port: 5005, RequestTimeout: 30},
			Vault:    VaultConfig{Owner: testOwner},
			Database: DatabaseConfig{Backend: "memory", Compression: "lz4"},
			Audit:    AuditConfig{Driver: "none"},
			Oracle:   OracleConfig{Mode: "fixed", Price: "200000000000", Decimals: 8, Timeout: 5},
			Events:   EventsConfig{Enabled: true, ReplaySize: 256},
		}
	}
	require.NoError(t, ValidateConfig(valid()))

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing owner", func(c *Config) { c.Vault.Owner = "" }},
		{"bad owner", func(c *Config) { c.Vault.Owner = "not-an-address" }},
		{"bad port", func(c *Config) { c.Server.Port = 0 }},
		{"bad backend", func(c *Config) { c.Database.Backend = "cassandra" }},
		{"pebble without path", func(c *Config) { c.Database.Backend = "pebble"; c.Database.Path = "" }},
		{"bad compression", func(c *Config) { c.Database.Compression = "zstd" }},
		{"bad audit driver", func(c *Config) { c.Audit.Driver = "mysql" }},
		{"sqlite without path", func(c *Config) { c.Audit.Driver = "sqlite"; c.Audit.Path = "" }},
		{"postgres without dsn", func(c *Config) { c.Audit.Driver = "postgres"; c.Audit.DSN = "" }},
		{"bad oracle mode", func(c *Config) { c.Oracle.Mode = "chainlink" }},
		{"http without endpoint", func(c *Config) { c.Oracle.Mode = "http"; c.Oracle.Endpoint = "" }},
		{"non-integer price", func(c *Config) { c.Oracle.Price = "2000.5" }},
		{"zero price", func(c *Config) { c.Oracle.Price = "0" }},
		{"decimals too large", func(c *Config) { c.Oracle.Decimals = 19 }},
		{"bad replay size", func(c *Config) { c.Events.ReplaySize = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			assert.Error(t, ValidateConfig(c))
		})
	}
}
