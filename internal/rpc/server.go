package rpc

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/fundvault/fundvaultd/internal/core/vault"
)

// Server handles HTTP JSON-RPC requests against one vault.
type Server struct {
	registry *MethodRegistry
	vault    *vault.Vault
	fund     MethodHandler
	timeout  time.Duration
}

// NewServer creates a new RPC server bound to v.
func NewServer(v *vault.Vault, timeout time.Duration) *Server {
	server := &Server{
		registry: NewMethodRegistry(),
		vault:    v,
		timeout:  timeout,
	}
	server.registerAllMethods()
	server.fund, _ = server.registry.Get("fund")
	return server
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	w.Header().Set("Content-Type", "application/json")

	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != "POST" {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		s.writeResponse(w, nil, nil, RpcErrorInternal("Failed to read request body"))
		return
	}
	defer r.Body.Close()

	var request JsonRpcRequest
	if err := json.Unmarshal(body, &request); err != nil {
		s.writeResponse(w, nil, nil, &RpcError{Code: RpcPARSE_ERROR, ErrorString: "jsonInvalid", Message: "Invalid JSON: " + err.Error()})
		return
	}

	reqCtx, cancel := context.WithTimeout(r.Context(), s.timeout)
	defer cancel()

	ctx := &RpcContext{
		Context:  reqCtx,
		ClientIP: getClientIP(r),
	}

	result, rpcErr := s.executeMethod(request.Method, request.Params, ctx)
	s.writeResponse(w, request.ID, result, rpcErr)
}

// executeMethod dispatches to the registered handler. An unknown method
// whose params carry a contribution amount falls back to fund: value
// sent through an unmatched entry point is accepted as a contribution
// rather than lost to a transport error.
func (s *Server) executeMethod(method string, params json.RawMessage, ctx *RpcContext) (interface{}, *RpcError) {
	if method == "" {
		return nil, &RpcError{Code: RpcJSON_RPC, ErrorString: "missingCommand", Message: "Missing method field"}
	}

	handler, exists := s.registry.Get(method)
	if !exists {
		if carriesValue(params) {
			log.Printf("routing unknown method %q with attached value to fund", method)
			handler = s.fund
		} else {
			return nil, RpcErrorMethodNotFound(method)
		}
	}
	return handler.Handle(ctx, params)
}

// carriesValue reports whether params look like a value transfer: an
// account plus a non-empty amount.
func carriesValue(params json.RawMessage) bool {
	if len(params) == 0 {
		return false
	}
	var probe struct {
		Account string `json:"account"`
		Amount  string `json:"amount"`
	}
	if err := json.Unmarshal(params, &probe); err != nil {
		return false
	}
	return probe.Account != "" && probe.Amount != ""
}

func (s *Server) writeResponse(w http.ResponseWriter, id interface{}, result interface{}, rpcErr *RpcError) {
	response := JsonRpcResponse{
		JsonRpc: "2.0",
		Result:  result,
		Error:   rpcErr,
		ID:      id,
	}
	data, err := json.Marshal(response)
	if err != nil {
		log.Printf("Failed to marshal response: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// getClientIP extracts the client IP from the request.
func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if i := strings.Index(xff, ","); i >= 0 {
			return strings.TrimSpace(xff[:i])
		}
		return strings.TrimSpace(xff)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
