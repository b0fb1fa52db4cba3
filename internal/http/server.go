package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
)

type Logger interface {
	InfoContext(ctx context.Context, msg string, args ...any)
	ErrorContext(ctx context.Context, msg string, args ...any)
}

type requestIDKey struct{}

func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set("X-Request-Id", id)

		ctx := context.WithValue(r.Context(), requestIDKey{}, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func loggingMiddleware(logger Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID, _ := r.Context().Value(requestIDKey{}).(string)

		logger.InfoContext(
			r.Context(),
			"request",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", requestID,
		)

		next.ServeHTTP(w, r)
	})
}

type Server struct {
	httpServer *http.Server
	handler    Handler
	logger     Logger
}

// NewRouter wires every route, including the session middleware on
// authenticated operations.
func NewRouter(ledgerHandler Handler, tokens TokenManager) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /accounts", ledgerHandler.PostAccounts)
	mux.HandleFunc("POST /sessions", ledgerHandler.PostSessions)

	authed := func(h http.HandlerFunc) http.Handler {
		return authMiddleware(tokens, h)
	}

	mux.Handle("GET /balance", authed(ledgerHandler.GetBalance))
	mux.Handle("POST /deposits", authed(ledgerHandler.PostDeposits))
	mux.Handle("POST /withdrawals", authed(ledgerHandler.PostWithdrawals))
	mux.Handle("POST /transfers", authed(ledgerHandler.PostTransfers))
	mux.Handle("POST /recharges", authed(ledgerHandler.PostRecharges))
	mux.Handle("DELETE /accounts/me", authed(ledgerHandler.DeleteAccount))

	return mux
}

func NewServer(
	ledger LedgerService,
	tokens TokenManager,
	logger Logger,
	config Config,
) *Server {
	ledgerHandler := NewHandler(ledger, tokens, logger)

	router := NewRouter(ledgerHandler, tokens)
	handler := requestIDMiddleware(loggingMiddleware(logger, router))

	httpServer := &http.Server{
		Addr:         config.Address,
		Handler:      handler,
		ReadTimeout:  config.Timeout,
		WriteTimeout: config.Timeout,
	}

	return &Server{
		httpServer: httpServer,
		handler:    ledgerHandler,
		logger:     logger,
	}
}

func (s *Server) Start(ctx context.Context) error {
	s.logger.InfoContext(ctx, "Starting HTTP server", "address", s.httpServer.Addr)

	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.ErrorContext(ctx, "HTTP server error", "error", err)
		}
	}()

	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	s.logger.InfoContext(ctx, "Stopping HTTP server")
	return s.httpServer.Shutdown(ctx)
}
