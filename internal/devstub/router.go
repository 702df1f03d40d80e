package devstub

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"
)

// NewRouter wires the stub's routes behind request logging.
func NewRouter(logger *slog.Logger, api *APIHandlers) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	mux.HandleFunc("/auth/login", api.handleLogin)
	mux.HandleFunc("/auth/signup", api.handleSignup)
	mux.HandleFunc("/api/users", api.handleUsers)
	mux.HandleFunc("/api/users/", api.handleUsers)
	mux.HandleFunc("/api/v1/wallets/credit", api.handleWalletCredit)
	mux.HandleFunc("/api/v1/wallets/", api.handleWallets)
	mux.HandleFunc("/api/transactions", api.handleTransactions)
	mux.HandleFunc("/api/transactions/user/", api.handleUserTransactions)
	mux.HandleFunc("/api/rewards/user/", api.handleRewards)
	mux.HandleFunc("/api/notifications/", api.handleNotifications)

	return loggingMiddleware(logger, mux)
}

func loggingMiddleware(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &responseRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.Info("request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(data)
}

type responseRecorder struct {
	http.ResponseWriter
	status int
}

func (r *responseRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
