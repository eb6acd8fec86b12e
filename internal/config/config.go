package config

// Config represents the complete fundvaultd configuration.
// This mirrors the structure of fundvaultd.toml.
type Config struct {
	Server   ServerConfig   `toml:"server" mapstructure:"server"`
	Vault    VaultConfig    `toml:"vault" mapstructure:"vault"`
	Database DatabaseConfig `toml:"database" mapstructure:"database"`
	Audit    AuditConfig    `toml:"audit" mapstructure:"audit"`
	Oracle   OracleConfig   `toml:"oracle" mapstructure:"oracle"`
	Events   EventsConfig   `toml:"events" mapstructure:"events"`

	configPath string `toml:"-" mapstructure:"-"`
}

// ServerConfig controls the JSON-RPC listener.
type ServerConfig struct {
	BindAddress    string `toml:"bind_address" mapstructure:"bind_address"`
	Port           int    `toml:"port" mapstructure:"port"`
	RequestTimeout int    `toml:"request_timeout" mapstructure:"request_timeout"` // seconds
}

// VaultConfig identifies the deployed ledger.
type VaultConfig struct {
	// Owner is the withdrawal-privileged account, 0x-prefixed hex.
	Owner string `toml:"owner" mapstructure:"owner"`
}

// DatabaseConfig selects the key-value backend holding vault state.
type DatabaseConfig struct {
	// Backend is one of "memory", "pebble", "leveldb".
	Backend string `toml:"backend" mapstructure:"backend"`
	Path    string `toml:"path" mapstructure:"path"`
	// Compression is one of "none", "lz4".
	Compression string `toml:"compression" mapstructure:"compression"`
}

// AuditConfig selects the relational audit trail.
type AuditConfig struct {
	// Driver is one of "none", "sqlite", "postgres".
	Driver string `toml:"driver" mapstructure:"driver"`
	// Path is the sqlite database file.
	Path string `toml:"path" mapstructure:"path"`
	// DSN is the postgres connection string.
	DSN string `toml:"dsn" mapstructure:"dsn"`
}

// OracleConfig selects the price feed.
type OracleConfig struct {
	// Mode is "fixed" for a pinned local price or "http" for a live feed.
	Mode     string `toml:"mode" mapstructure:"mode"`
	Endpoint string `toml:"endpoint" mapstructure:"endpoint"`
	// Price and Decimals pin the fixed feed; Price is an integer string
	// at Decimals digits, e.g. "200000000000" at 8 digits for 2000.
	Price    string `toml:"price" mapstructure:"price"`
	Decimals uint8  `toml:"decimals" mapstructure:"decimals"`
	Version  uint64 `toml:"version" mapstructure:"version"`
	// Timeout bounds one HTTP feed read, in seconds.
	Timeout int `toml:"timeout" mapstructure:"timeout"`
}

// EventsConfig controls the websocket event stream.
type EventsConfig struct {
	Enabled    bool `toml:"enabled" mapstructure:"enabled"`
	ReplaySize int  `toml:"replay_size" mapstructure:"replay_size"`
}

// DefaultConfigPath is the config file fundvaultd looks for when no
// --config flag is given.
const DefaultConfigPath = "fundvaultd.toml"

// GetConfigPath returns the path the configuration was loaded from, or
// empty when running on defaults.
func (c *Config) GetConfigPath() string {
	return c.configPath
}
