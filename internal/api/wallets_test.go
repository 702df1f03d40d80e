package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestWalletClientGet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/wallets/7" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{"userId":7,"balance":1200,"availableBalance":1000,"currency":"INR"}`))
	}))
	defer srv.Close()

	client := NewWalletClient(srv.URL, time.Second, nil)
	wallet, err := client.Get(context.Background(), 7)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if wallet.AvailableBalance != 1000 || wallet.Currency != "INR" {
		t.Errorf("unexpected wallet %+v", wallet)
	}
}

func TestWalletClientCreditBackfillsUserID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// The credit endpoint omits userId in its response.
		w.Write([]byte(`{"balance":1500,"availableBalance":1500,"currency":"INR"}`))
	}))
	defer srv.Close()

	client := NewWalletClient(srv.URL, time.Second, nil)
	wallet, err := client.Credit(context.Background(), 7, "INR", 500)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if wallet.UserID != 7 {
		t.Errorf("expected backfilled user ID 7, got %d", wallet.UserID)
	}
	if wallet.AvailableBalance != 1500 {
		t.Errorf("expected updated balance, got %v", wallet.AvailableBalance)
	}
}
