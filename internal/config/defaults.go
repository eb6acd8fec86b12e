package config

import (
	"strconv"

	"github.com/spf13/viper"

	"github.com/fundvault/fundvaultd/internal/core/oracle"
)

// setDefaults installs the default value for every key. A bare binary
// with only an owner address configured comes up in-memory on
// localhost with a pinned test price.
func setDefaults(v *viper.Viper) {
	// Server
	v.SetDefault("server.bind_address", "127.0.0.1")
	v.SetDefault("server.port", 5005)
	v.SetDefault("server.request_timeout", 30)

	// Vault
	v.SetDefault("vault.owner", "")

	// Database
	v.SetDefault("database.backend", "memory")
	v.SetDefault("database.path", "fundvault-db")
	v.SetDefault("database.compression", "lz4")

	// Audit
	v.SetDefault("audit.driver", "none")
	v.SetDefault("audit.path", "fundvault-audit.db")
	v.SetDefault("audit.dsn", "")

	// Oracle
	v.SetDefault("oracle.mode", "fixed")
	v.SetDefault("oracle.endpoint", "")
	v.SetDefault("oracle.price", strconv.Itoa(oracle.DefaultFixedPrice))
	v.SetDefault("oracle.decimals", int(oracle.DefaultFixedDecimals))
	v.SetDefault("oracle.version", int(oracle.DefaultFixedVersion))
	v.SetDefault("oracle.timeout", 5)

	// Events
	v.SetDefault("events.enabled", true)
	v.SetDefault("events.replay_size", 256)
}
