package devstub

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/t4nm4ymittal/payflow/internal/session"
)

func newTestServer(t *testing.T) (*httptest.Server, *Store) {
	t.Helper()
	store := NewStore()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := httptest.NewServer(NewRouter(logger, NewAPIHandlers(logger, store)))
	t.Cleanup(srv.Close)
	return srv, store
}

func TestSignupAndLogin(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Post(srv.URL+"/auth/signup", "application/json",
		strings.NewReader(`{"username":"Asha","email":"asha@example.com","password":"secret"}`))
	if err != nil {
		t.Fatalf("signup request: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 from signup, got %d: %s", resp.StatusCode, body)
	}
	if !strings.Contains(string(body), "registered") {
		t.Errorf("expected plain-text confirmation, got %q", body)
	}

	resp, err = http.Post(srv.URL+"/auth/login", "application/json",
		strings.NewReader(`{"email":"asha@example.com","password":"secret"}`))
	if err != nil {
		t.Fatalf("login request: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 from login, got %d", resp.StatusCode)
	}

	var payload struct {
		Token string `json:"token"`
		User  struct {
			ID int64 `json:"id"`
		} `json:"user"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	if payload.User.ID != 1 {
		t.Errorf("expected user ID 1, got %d", payload.User.ID)
	}

	// The minted token must be decodable by the client's claim logic.
	claims, err := session.DecodeClaims(payload.Token)
	if err != nil {
		t.Fatalf("expected decodable token, got %v", err)
	}
	if claims.UserID != 1 {
		t.Errorf("expected userId claim 1, got %d", claims.UserID)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	srv, store := newTestServer(t)
	if _, err := store.Signup("Asha", "asha@example.com", "secret"); err != nil {
		t.Fatalf("seed account: %v", err)
	}

	resp, err := http.Post(srv.URL+"/auth/login", "application/json",
		strings.NewReader(`{"email":"asha@example.com","password":"wrong"}`))
	if err != nil {
		t.Fatalf("login request: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}

func TestTransferEndToEnd(t *testing.T) {
	srv, store := newTestServer(t)
	sender, _ := store.Signup("Asha", "asha@example.com", "secret")
	receiver, _ := store.Signup("Bharat", "bharat@example.com", "secret")
	if _, err := store.Credit(sender.ID, "INR", 1000); err != nil {
		t.Fatalf("credit sender: %v", err)
	}

	resp, err := http.Post(srv.URL+"/api/transactions", "application/json",
		strings.NewReader(`{"senderAccountId":1,"receiverAccountId":2,"amount":600}`))
	if err != nil {
		t.Fatalf("transfer request: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var tx struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tx); err != nil {
		t.Fatalf("decode transfer response: %v", err)
	}
	if tx.Status != "SUCCESS" {
		t.Fatalf("expected SUCCESS, got %q", tx.Status)
	}

	senderWallet, _ := store.Wallet(sender.ID)
	if senderWallet.AvailableBalance != 400 {
		t.Errorf("expected sender balance 400, got %v", senderWallet.AvailableBalance)
	}
	receiverWallet, _ := store.Wallet(receiver.ID)
	if receiverWallet.AvailableBalance != 600 {
		t.Errorf("expected receiver balance 600, got %v", receiverWallet.AvailableBalance)
	}

	// A 600 transfer earns 6 points and notifies the receiver.
	rewards := store.RewardsFor(sender.ID)
	if len(rewards) != 1 || rewards[0].Points != 6 {
		t.Errorf("expected one 6-point reward, got %+v", rewards)
	}
	notes := store.NotificationsFor(receiver.ID)
	if len(notes) != 1 {
		t.Errorf("expected one notification for the receiver, got %d", len(notes))
	}
}

func TestTransferInsufficientFundsRecordsFailure(t *testing.T) {
	srv, store := newTestServer(t)
	sender, _ := store.Signup("Asha", "asha@example.com", "secret")
	store.Signup("Bharat", "bharat@example.com", "secret")

	resp, err := http.Post(srv.URL+"/api/transactions", "application/json",
		strings.NewReader(`{"senderAccountId":1,"receiverAccountId":2,"amount":500}`))
	if err != nil {
		t.Fatalf("transfer request: %v", err)
	}
	defer resp.Body.Close()
	// The real service answers 2xx with a FAILED record, not an HTTP
	// error.
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var tx struct {
		Status  string `json:"status"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tx); err != nil {
		t.Fatalf("decode transfer response: %v", err)
	}
	if tx.Status != "FAILED" {
		t.Fatalf("expected FAILED, got %q", tx.Status)
	}
	if !strings.Contains(tx.Message, "Not enough balance") {
		t.Errorf("expected technical failure message, got %q", tx.Message)
	}
	if txs := store.TransactionsFor(sender.ID); len(txs) != 1 {
		t.Errorf("expected the failed transfer to be recorded, got %d", len(txs))
	}
}

func TestUserAndWalletEndpoints(t *testing.T) {
	srv, store := newTestServer(t)
	store.Signup("Asha", "asha@example.com", "secret")
	store.Signup("Bharat", "bharat@example.com", "secret")

	resp, err := http.Get(srv.URL + "/api/users")
	if err != nil {
		t.Fatalf("list users: %v", err)
	}
	var users []struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&users); err != nil {
		t.Fatalf("decode users: %v", err)
	}
	resp.Body.Close()
	if len(users) != 2 || users[0].Name != "Asha" {
		t.Errorf("unexpected user listing %+v", users)
	}

	resp, err = http.Post(srv.URL+"/api/v1/wallets/credit", "application/json",
		strings.NewReader(`{"userId":1,"currency":"INR","amount":250}`))
	if err != nil {
		t.Fatalf("credit request: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 from credit, got %d", resp.StatusCode)
	}

	resp, err = http.Get(srv.URL + "/api/v1/wallets/1")
	if err != nil {
		t.Fatalf("wallet request: %v", err)
	}
	defer resp.Body.Close()
	var wallet struct {
		AvailableBalance float64 `json:"availableBalance"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&wallet); err != nil {
		t.Fatalf("decode wallet: %v", err)
	}
	if wallet.AvailableBalance != 250 {
		t.Errorf("expected balance 250, got %v", wallet.AvailableBalance)
	}
}
