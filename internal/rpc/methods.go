package rpc

// registerAllMethods registers all RPC methods. Called by NewServer to
// set up the complete method registry.
func (s *Server) registerAllMethods() {
	// Value-moving methods
	s.registry.Register("fund", &FundMethod{vault: s.vault})
	s.registry.Register("withdraw", &WithdrawMethod{vault: s.vault})
	s.registry.Register("cheap_withdraw", &WithdrawMethod{vault: s.vault, cheap: true})

	// Query methods
	s.registry.Register("balance", &BalanceMethod{vault: s.vault})
	s.registry.Register("funder_at", &FunderAtMethod{vault: s.vault})
	s.registry.Register("funder_count", &FunderCountMethod{vault: s.vault})
	s.registry.Register("vault_info", &VaultInfoMethod{vault: s.vault})
	s.registry.Register("oracle_version", &OracleVersionMethod{vault: s.vault})

	// Utility methods
	s.registry.Register("ping", &PingMethod{})
}
