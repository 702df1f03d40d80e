package devstub

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/t4nm4ymittal/payflow/internal/domain"
)

// APIHandlers exposes the fake platform endpoints. Paths and payload
// shapes mirror the real services so the client needs no stub-specific
// configuration beyond the base URLs.
type APIHandlers struct {
	logger *slog.Logger
	store  *Store
}

// NewAPIHandlers constructs an APIHandlers instance.
func NewAPIHandlers(logger *slog.Logger, store *Store) *APIHandlers {
	return &APIHandlers{logger: logger, store: store}
}

type userPayload struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	CreatedAt string `json:"createdAt"`
}

func toUserPayload(u domain.User) userPayload {
	return userPayload{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Phone:     u.Phone,
		CreatedAt: u.CreatedAt.UTC().Format(time.RFC3339),
	}
}

type transactionPayload struct {
	ID         int64   `json:"id"`
	SenderID   int64   `json:"senderId"`
	ReceiverID int64   `json:"receiverId"`
	Amount     float64 `json:"amount"`
	Status     string  `json:"status"`
	Timestamp  string  `json:"timestamp"`
	Message    string  `json:"message,omitempty"`
}

func toTransactionPayload(tx domain.Transaction) transactionPayload {
	return transactionPayload{
		ID:         tx.ID,
		SenderID:   tx.SenderID,
		ReceiverID: tx.ReceiverID,
		Amount:     tx.Amount,
		Status:     string(tx.Status),
		Timestamp:  tx.Timestamp.UTC().Format(time.RFC3339),
		Message:    tx.Message,
	}
}

func (h *APIHandlers) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token, user, err := h.store.Login(req.Email, req.Password)
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"token": token,
		"user":  toUserPayload(user),
	})
}

func (h *APIHandlers) handleSignup(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}
	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if _, err := h.store.Signup(req.Username, req.Email, req.Password); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	// The real auth service answers signup with plain text.
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("User registered successfully"))
}

func (h *APIHandlers) handleUsers(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}

	rest := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/users"), "/")
	if rest == "" {
		users := h.store.Users()
		payload := make([]userPayload, 0, len(users))
		for _, u := range users {
			payload = append(payload, toUserPayload(u))
		}
		respondJSON(w, http.StatusOK, payload)
		return
	}

	id, ok := parseID(w, rest)
	if !ok {
		return
	}
	user, found := h.store.User(id)
	if !found {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}
	respondJSON(w, http.StatusOK, toUserPayload(user))
}

func (h *APIHandlers) handleWallets(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	id, ok := parseID(w, strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/v1/wallets"), "/"))
	if !ok {
		return
	}
	wallet, found := h.store.Wallet(id)
	if !found {
		writeError(w, http.StatusNotFound, "wallet not found")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"userId":           wallet.UserID,
		"balance":          wallet.Balance,
		"availableBalance": wallet.AvailableBalance,
		"currency":         wallet.Currency,
	})
}

func (h *APIHandlers) handleWalletCredit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}
	var req struct {
		UserID   int64   `json:"userId"`
		Currency string  `json:"currency"`
		Amount   float64 `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	wallet, err := h.store.Credit(req.UserID, req.Currency, req.Amount)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"userId":           wallet.UserID,
		"balance":          wallet.Balance,
		"availableBalance": wallet.AvailableBalance,
		"currency":         wallet.Currency,
	})
}

func (h *APIHandlers) handleTransactions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}
	var req struct {
		SenderAccountID   int64   `json:"senderAccountId"`
		ReceiverAccountID int64   `json:"receiverAccountId"`
		Amount            float64 `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	tx, err := h.store.Transfer(req.SenderAccountID, req.ReceiverAccountID, req.Amount)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, toTransactionPayload(tx))
}

func (h *APIHandlers) handleUserTransactions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	id, ok := parseID(w, strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/transactions/user"), "/"))
	if !ok {
		return
	}
	txs := h.store.TransactionsFor(id)
	payload := make([]transactionPayload, 0, len(txs))
	for _, tx := range txs {
		payload = append(payload, toTransactionPayload(tx))
	}
	respondJSON(w, http.StatusOK, payload)
}

func (h *APIHandlers) handleRewards(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	id, ok := parseID(w, strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/rewards/user"), "/"))
	if !ok {
		return
	}
	rewards := h.store.RewardsFor(id)
	payload := make([]map[string]any, 0, len(rewards))
	for _, reward := range rewards {
		payload = append(payload, map[string]any{
			"points": reward.Points,
			"sentAt": reward.SentAt.UTC().Format(time.RFC3339),
		})
	}
	respondJSON(w, http.StatusOK, payload)
}

func (h *APIHandlers) handleNotifications(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	id, ok := parseID(w, strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/notifications"), "/"))
	if !ok {
		return
	}
	notes := h.store.NotificationsFor(id)
	payload := make([]map[string]any, 0, len(notes))
	for _, note := range notes {
		payload = append(payload, map[string]any{
			"id":        note.ID,
			"message":   note.Message,
			"timestamp": note.Timestamp.UTC().Format(time.RFC3339),
		})
	}
	respondJSON(w, http.StatusOK, payload)
}

func parseID(w http.ResponseWriter, raw string) (int64, bool) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "a numeric ID is required")
		return 0, false
	}
	return id, true
}

func methodNotAllowed(w http.ResponseWriter, allowed ...string) {
	w.Header().Set("Allow", strings.Join(allowed, ", "))
	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
}

func writeError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"message": message})
}
