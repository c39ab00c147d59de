package rpc

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/spalladino/hedera-json-rpc-relay/internal/consensus"
	"github.com/spalladino/hedera-json-rpc-relay/internal/pkg/logger"

	"github.com/google/uuid"
)

// Server serves the JSON-RPC methods over HTTP. Requests are accepted as
// single POST bodies; batching is not supported.
type Server struct {
	methods map[string]methodFunc
	srv     *http.Server
}

// NewServer builds an HTTP server for the given handlers listening on addr.
func NewServer(addr string, handlers *Handlers) *Server {
	s := &Server{
		methods: handlers.methods(),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handle)

	s.srv = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s
}

// Start blocks serving requests until Shutdown is called.
func (s *Server) Start() error {
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

// Shutdown drains in-flight requests and stops the listener.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeResponse(r.Context(), w, errResponse(nil, &rpcError{Code: codeParseError, Message: "failed to parse request"}))
		return
	}

	writeResponse(r.Context(), w, s.dispatch(r.Context(), req))
}

// dispatch routes one request to its method implementation and folds the
// outcome into a protocol response.
func (s *Server) dispatch(ctx context.Context, req request) response {
	if req.JsonRPC != "2.0" || req.Method == "" {
		return errResponse(req.ID, &rpcError{Code: codeInvalidRequest, Message: "not a json-rpc 2.0 request"})
	}

	method, ok := s.methods[req.Method]
	if !ok {
		return errResponse(req.ID, &rpcError{Code: codeMethodNotFound, Message: "method " + req.Method + " not supported"})
	}

	requestID := uuid.NewString()
	started := time.Now()

	result, err := method(ctx, req.Params)
	if err != nil {
		rpcErr := toRPCError(err)
		logger.Warn(ctx, "rpc method failed",
			"request_id", requestID,
			"method", req.Method,
			"code", rpcErr.Code,
			"error", err,
		)
		return errResponse(req.ID, rpcErr)
	}

	logger.Debug(ctx, "rpc method served",
		"request_id", requestID,
		"method", req.Method,
		"duration", time.Since(started),
	)

	return okResponse(req.ID, result)
}

// toRPCError maps handler errors onto protocol error objects. Protocol
// errors pass through; native consensus failures keep their status in the
// message; anything else is reported as a generic internal error without
// leaking internals to the caller.
func toRPCError(err error) *rpcError {
	var protocol *rpcError
	if errors.As(err, &protocol) {
		return protocol
	}

	var native *consensus.NativeOperationError
	if errors.As(err, &native) {
		return &rpcError{Code: codeInternalError, Message: native.Error()}
	}

	return &rpcError{Code: codeInternalError, Message: "internal error"}
}

func writeResponse(ctx context.Context, w http.ResponseWriter, res response) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(res); err != nil {
		logger.Error(ctx, "failed to write rpc response", "error", err)
	}
}
