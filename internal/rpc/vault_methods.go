package rpc

import (
	"encoding/json"

	"github.com/fundvault/fundvaultd/internal/core/amount"
	"github.com/fundvault/fundvaultd/internal/core/types"
	"github.com/fundvault/fundvaultd/internal/core/vault"
)

// AccountParam identifies the calling account.
type AccountParam struct {
	Account string `json:"account"`
}

// FundParams carries a contribution: the account and a decimal native
// amount like "0.1".
type FundParams struct {
	Account string `json:"account"`
	Amount  string `json:"amount"`
}

// FunderAtParams selects one funder-log entry.
type FunderAtParams struct {
	Index int `json:"index"`
}

func parseParams(params json.RawMessage, dst interface{}) *RpcError {
	if len(params) == 0 {
		return RpcErrorInvalidParams("Missing params")
	}
	if err := json.Unmarshal(params, dst); err != nil {
		return RpcErrorInvalidParams("Invalid params: " + err.Error())
	}
	return nil
}

func parseAccount(s string) (types.Address, *RpcError) {
	if s == "" {
		return types.Address{}, RpcErrorInvalidParams("Missing account field")
	}
	addr, err := types.ParseAddress(s)
	if err != nil {
		return types.Address{}, RpcErrorInvalidParams("Invalid account: " + err.Error())
	}
	return addr, nil
}

// FundMethod handles the fund RPC method. It is also the fallback
// target for unmatched value-carrying calls.
type FundMethod struct {
	vault *vault.Vault
}

func (m *FundMethod) Handle(ctx *RpcContext, params json.RawMessage) (interface{}, *RpcError) {
	var p FundParams
	if rpcErr := parseParams(params, &p); rpcErr != nil {
		return nil, rpcErr
	}
	addr, rpcErr := parseAccount(p.Account)
	if rpcErr != nil {
		return nil, rpcErr
	}
	amt, err := amount.NativeFromDecimal(p.Amount)
	if err != nil {
		return nil, RpcErrorInvalidParams("Invalid amount: " + err.Error())
	}
	if amt.Sign() <= 0 {
		return nil, RpcErrorInvalidParams("Amount must be positive")
	}

	if err := m.vault.Fund(ctx.Context, addr, amt); err != nil {
		return nil, rpcErrorFromVault(err)
	}
	return map[string]interface{}{
		"account": addr.String(),
		"amount":  amt.String(),
		"balance": m.vault.Balance(addr).String(),
		"held":    m.vault.Held().String(),
	}, nil
}

// WithdrawMethod handles the withdraw RPC method.
type WithdrawMethod struct {
	vault *vault.Vault
	cheap bool
}

func (m *WithdrawMethod) Handle(ctx *RpcContext, params json.RawMessage) (interface{}, *RpcError) {
	var p AccountParam
	if rpcErr := parseParams(params, &p); rpcErr != nil {
		return nil, rpcErr
	}
	addr, rpcErr := parseAccount(p.Account)
	if rpcErr != nil {
		return nil, rpcErr
	}

	out := m.vault.Held()
	var err error
	if m.cheap {
		err = m.vault.CheapWithdraw(ctx.Context, addr)
	} else {
		err = m.vault.Withdraw(ctx.Context, addr)
	}
	if err != nil {
		return nil, rpcErrorFromVault(err)
	}
	return map[string]interface{}{
		"owner":     m.vault.Owner().String(),
		"withdrawn": out.String(),
	}, nil
}

// BalanceMethod handles the balance RPC method.
type BalanceMethod struct {
	vault *vault.Vault
}

func (m *BalanceMethod) Handle(ctx *RpcContext, params json.RawMessage) (interface{}, *RpcError) {
	var p AccountParam
	if rpcErr := parseParams(params, &p); rpcErr != nil {
		return nil, rpcErr
	}
	addr, rpcErr := parseAccount(p.Account)
	if rpcErr != nil {
		return nil, rpcErr
	}
	return map[string]interface{}{
		"account": addr.String(),
		"balance": m.vault.Balance(addr).String(),
	}, nil
}

// FunderAtMethod handles the funder_at RPC method.
type FunderAtMethod struct {
	vault *vault.Vault
}

func (m *FunderAtMethod) Handle(ctx *RpcContext, params json.RawMessage) (interface{}, *RpcError) {
	var p FunderAtParams
	if rpcErr := parseParams(params, &p); rpcErr != nil {
		return nil, rpcErr
	}
	addr, err := m.vault.FunderAt(p.Index)
	if err != nil {
		return nil, rpcErrorFromVault(err)
	}
	return map[string]interface{}{
		"index":  p.Index,
		"funder": addr.String(),
	}, nil
}

// FunderCountMethod handles the funder_count RPC method.
type FunderCountMethod struct {
	vault *vault.Vault
}

func (m *FunderCountMethod) Handle(ctx *RpcContext, params json.RawMessage) (interface{}, *RpcError) {
	return map[string]interface{}{
		"count": m.vault.FunderCount(),
	}, nil
}

// VaultInfoMethod handles the vault_info RPC method: owner, held total,
// minimum and oracle version in one call.
type VaultInfoMethod struct {
	vault *vault.Vault
}

func (m *VaultInfoMethod) Handle(ctx *RpcContext, params json.RawMessage) (interface{}, *RpcError) {
	info := map[string]interface{}{
		"owner":   m.vault.Owner().String(),
		"held":    m.vault.Held().String(),
		"minimum": m.vault.Minimum().String(),
		"funders": m.vault.FunderCount(),
	}
	if ver, err := m.vault.FeedVersion(ctx.Context); err == nil {
		info["oracle_version"] = ver
	}
	return info, nil
}

// OracleVersionMethod handles the oracle_version RPC method.
type OracleVersionMethod struct {
	vault *vault.Vault
}

func (m *OracleVersionMethod) Handle(ctx *RpcContext, params json.RawMessage) (interface{}, *RpcError) {
	ver, err := m.vault.FeedVersion(ctx.Context)
	if err != nil {
		return nil, rpcErrorFromVault(err)
	}
	return map[string]interface{}{
		"oracle_version": ver,
	}, nil
}

// PingMethod handles the ping RPC method.
type PingMethod struct{}

func (m *PingMethod) Handle(ctx *RpcContext, params json.RawMessage) (interface{}, *RpcError) {
	return map[string]interface{}{}, nil
}
