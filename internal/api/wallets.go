package api

import (
	"context"
	"fmt"
	"time"

	"github.com/t4nm4ymittal/payflow/internal/domain"
)

// WalletClient talks to the wallet service.
type WalletClient struct {
	client *Client
}

// NewWalletClient builds a client for the wallet service at baseURL.
func NewWalletClient(baseURL string, timeout time.Duration, tokens TokenSource) *WalletClient {
	return &WalletClient{client: NewClient(baseURL, timeout, tokens)}
}

type walletResponse struct {
	UserID           int64   `json:"userId"`
	Balance          float64 `json:"balance"`
	AvailableBalance float64 `json:"availableBalance"`
	Currency         string  `json:"currency"`
}

func (r walletResponse) toDomain() domain.Wallet {
	return domain.Wallet{
		UserID:           r.UserID,
		Balance:          r.Balance,
		AvailableBalance: r.AvailableBalance,
		Currency:         r.Currency,
	}
}

type creditRequest struct {
	UserID   int64   `json:"userId"`
	Currency string  `json:"currency"`
	Amount   float64 `json:"amount"`
}

// Get fetches the wallet for a user.
func (c *WalletClient) Get(ctx context.Context, userID int64) (domain.Wallet, error) {
	var resp walletResponse
	if err := c.client.get(ctx, fmt.Sprintf("/api/v1/wallets/%d", userID), &resp); err != nil {
		return domain.Wallet{}, err
	}
	return resp.toDomain(), nil
}

// Credit adds funds to a user's wallet and returns the updated wallet.
func (c *WalletClient) Credit(ctx context.Context, userID int64, currency string, amount float64) (domain.Wallet, error) {
	var resp walletResponse
	req := creditRequest{UserID: userID, Currency: currency, Amount: amount}
	if err := c.client.post(ctx, "/api/v1/wallets/credit", req, &resp); err != nil {
		return domain.Wallet{}, err
	}
	if resp.UserID == 0 {
		resp.UserID = userID
	}
	return resp.toDomain(), nil
}
