package rpc

import (
	"errors"

	"github.com/fundvault/fundvaultd/internal/core/vault"
)

// RpcError represents a JSON-RPC error with code and message.
type RpcError struct {
	Code        int    `json:"error_code"`
	ErrorString string `json:"error"`
	Message     string `json:"error_message,omitempty"`
}

func (e RpcError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.ErrorString
}

// Standard JSON-RPC 2.0 error codes.
const (
	RpcJSON_RPC         = -32600
	RpcMETHOD_NOT_FOUND = -32601
	RpcINVALID_PARAMS   = -32602
	RpcINTERNAL         = -32603
	RpcPARSE_ERROR      = -32700
)

// Vault-specific error codes.
const (
	RpcINSUFFICIENT_CONTRIBUTION = 100
	RpcNOT_OWNER                 = 101
	RpcTRANSFER_FAILED           = 102
	RpcINDEX_OUT_OF_RANGE        = 103
	RpcORACLE_UNAVAILABLE        = 104
)

func RpcErrorMethodNotFound(method string) *RpcError {
	return &RpcError{
		Code:        RpcMETHOD_NOT_FOUND,
		ErrorString: "methodNotFound",
		Message:     "Unknown method: " + method,
	}
}

func RpcErrorInvalidParams(msg string) *RpcError {
	return &RpcError{
		Code:        RpcINVALID_PARAMS,
		ErrorString: "invalidParams",
		Message:     msg,
	}
}

func RpcErrorInternal(msg string) *RpcError {
	return &RpcError{
		Code:        RpcINTERNAL,
		ErrorString: "internal",
		Message:     msg,
	}
}

// rpcErrorFromVault maps vault sentinel errors to their wire codes.
// Anything unexpected surfaces as an internal error.
func rpcErrorFromVault(err error) *RpcError {
	switch {
	case errors.Is(err, vault.ErrInsufficientContribution):
		return &RpcError{Code: RpcINSUFFICIENT_CONTRIBUTION, ErrorString: "insufficientContribution", Message: err.Error()}
	case errors.Is(err, vault.ErrNotOwner):
		return &RpcError{Code: RpcNOT_OWNER, ErrorString: "notOwner", Message: err.Error()}
	case errors.Is(err, vault.ErrTransferFailed):
		return &RpcError{Code: RpcTRANSFER_FAILED, ErrorString: "transferFailed", Message: err.Error()}
	case errors.Is(err, vault.ErrIndexOutOfRange):
		return &RpcError{Code: RpcINDEX_OUT_OF_RANGE, ErrorString: "indexOutOfRange", Message: err.Error()}
	case errors.Is(err, vault.ErrOracleUnavailable):
		return &RpcError{Code: RpcORACLE_UNAVAILABLE, ErrorString: "oracleUnavailable", Message: err.Error()}
	default:
		return RpcErrorInternal(err.Error())
	}
}
