// Package rpc exposes the relay over the JSON-RPC 2.0 protocol spoken by
// Ethereum tooling. Each supported eth_/net_ method is translated into calls
// against the consensus adapter or the mirror node.
package rpc

import (
	"encoding/json"
	"fmt"
)

// JSON-RPC 2.0 error codes.
const (
	codeParseError     = -32700
	codeInvalidRequest = -32600
	codeMethodNotFound = -32601
	codeInvalidParams  = -32602
	codeInternalError  = -32603
)

// request represents a standard JSON-RPC 2.0 request.
type request struct {
	JsonRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params"`
}

// rpcError is the error object embedded in a failed response. It doubles as
// a Go error so method implementations can return protocol errors directly.
type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *rpcError) Error() string {
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

func invalidParams(format string, args ...any) *rpcError {
	return &rpcError{Code: codeInvalidParams, Message: fmt.Sprintf(format, args...)}
}

// response represents a standard JSON-RPC 2.0 response. Exactly one of
// Result and Error is set; a successful lookup with no value carries an
// explicit null result.
type response struct {
	JsonRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *rpcError       `json:"error,omitempty"`
}

func okResponse(id json.RawMessage, result any) response {
	raw, err := json.Marshal(result)
	if err != nil {
		return errResponse(id, &rpcError{Code: codeInternalError, Message: "failed to encode result"})
	}

	return response{JsonRPC: "2.0", ID: id, Result: raw}
}

func errResponse(id json.RawMessage, e *rpcError) response {
	return response{JsonRPC: "2.0", ID: id, Error: e}
}

// parseParams decodes the positional parameter array, requiring at least
// minArgs entries.
func parseParams(params json.RawMessage, minArgs int) ([]json.RawMessage, error) {
	var args []json.RawMessage
	if len(params) > 0 {
		if err := json.Unmarshal(params, &args); err != nil {
			return nil, invalidParams("params must be a positional array")
		}
	}

	if len(args) < minArgs {
		return nil, invalidParams("expected at least %d params, got %d", minArgs, len(args))
	}

	return args, nil
}

// stringParam decodes the i-th positional parameter as a JSON string.
func stringParam(args []json.RawMessage, i int) (string, error) {
	var s string
	if err := json.Unmarshal(args[i], &s); err != nil {
		return "", invalidParams("param %d must be a string", i)
	}

	return s, nil
}
