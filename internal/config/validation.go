package config

import (
	"fmt"
	"math/big"

	"github.com/fundvault/fundvaultd/internal/core/types"
)

// ValidateConfig performs validation on the complete configuration.
func ValidateConfig(config *Config) error {
	if err := validateServerConfig(&config.Server); err != nil {
		return fmt.Errorf("server config validation failed: %w", err)
	}
	if err := validateVaultConfig(&config.Vault); err != nil {
		return fmt.Errorf("vault config validation failed: %w", err)
	}
	if err := validateDatabaseConfig(&config.Database); err != nil {
		return fmt.Errorf("database config validation failed: %w", err)
	}
	if err := validateAuditConfig(&config.Audit); err != nil {
		return fmt.Errorf("audit config validation failed: %w", err)
	}
	if err := validateOracleConfig(&config.Oracle); err != nil {
		return fmt.Errorf("oracle config validation failed: %w", err)
	}
	if err := validateEventsConfig(&config.Events); err != nil {
		return fmt.Errorf("events config validation failed: %w", err)
	}
	return nil
}

func validateServerConfig(c *ServerConfig) error {
	if c.BindAddress == "" {
		return fmt.Errorf("bind_address cannot be empty")
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", c.Port)
	}
	if c.RequestTimeout < 1 {
		return fmt.Errorf("request_timeout must be at least 1 second, got %d", c.RequestTimeout)
	}
	return nil
}

func validateVaultConfig(c *VaultConfig) error {
	if c.Owner == "" {
		return fmt.Errorf("owner is required")
	}
	if _, err := types.ParseAddress(c.Owner); err != nil {
		return fmt.Errorf("invalid owner address: %w", err)
	}
	return nil
}

func validateDatabaseConfig(c *DatabaseConfig) error {
	switch c.Backend {
	case "memory":
	case "pebble", "leveldb":
		if c.Path == "" {
			return fmt.Errorf("path is required for backend %q", c.Backend)
		}
	default:
		return fmt.Errorf("unknown backend %q (expected memory, pebble or leveldb)", c.Backend)
	}

	switch c.Compression {
	case "none", "lz4":
	default:
		return fmt.Errorf("unknown compression %q (expected none or lz4)", c.Compression)
	}
	return nil
}

func validateAuditConfig(c *AuditConfig) error {
	switch c.Driver {
	case "none":
	case "sqlite":
		if c.Path == "" {
			return fmt.Errorf("path is required for the sqlite driver")
		}
	case "postgres":
		if c.DSN == "" {
			return fmt.Errorf("dsn is required for the postgres driver")
		}
	default:
		return fmt.Errorf("unknown driver %q (expected none, sqlite or postgres)", c.Driver)
	}
	return nil
}

func validateOracleConfig(c *OracleConfig) error {
	switch c.Mode {
	case "fixed":
		price, ok := new(big.Int).SetString(c.Price, 10)
		if !ok {
			return fmt.Errorf("price %q is not an integer", c.Price)
		}
		if price.Sign() <= 0 {
			return fmt.Errorf("price must be positive, got %s", c.Price)
		}
	case "http":
		if c.Endpoint == "" {
			return fmt.Errorf("endpoint is required for the http mode")
		}
	default:
		return fmt.Errorf("unknown mode %q (expected fixed or http)", c.Mode)
	}

	if c.Decimals > 18 {
		return fmt.Errorf("decimals must be at most 18, got %d", c.Decimals)
	}
	if c.Timeout < 1 {
		return fmt.Errorf("timeout must be at least 1 second, got %d", c.Timeout)
	}
	return nil
}

func validateEventsConfig(c *EventsConfig) error {
	if c.Enabled && c.ReplaySize < 1 {
		return fmt.Errorf("replay_size must be at least 1, got %d", c.ReplaySize)
	}
	return nil
}
