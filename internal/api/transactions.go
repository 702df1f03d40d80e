package api

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/t4nm4ymittal/payflow/internal/domain"
)

// ErrTransferFailed marks a transfer the backend accepted but did not
// complete (for example, insufficient funds). The wrapped message is
// already cleaned for display; the failed transaction record is still
// returned alongside it.
var ErrTransferFailed = errors.New("transfer failed")

// TransactionClient talks to the transaction service.
type TransactionClient struct {
	client *Client
}

// NewTransactionClient builds a client for the transaction service at
// baseURL.
func NewTransactionClient(baseURL string, timeout time.Duration, tokens TokenSource) *TransactionClient {
	return &TransactionClient{client: NewClient(baseURL, timeout, tokens)}
}

type transactionResponse struct {
	ID         int64         `json:"id"`
	SenderID   int64         `json:"senderId"`
	ReceiverID int64         `json:"receiverId"`
	Amount     float64       `json:"amount"`
	Status     domain.Status `json:"status"`
	Timestamp  apiTime       `json:"timestamp"`
	Message    string        `json:"message"`
}

func (r transactionResponse) toDomain() domain.Transaction {
	return domain.Transaction{
		ID:         r.ID,
		SenderID:   r.SenderID,
		ReceiverID: r.ReceiverID,
		Amount:     r.Amount,
		Status:     r.Status,
		Timestamp:  r.Timestamp.Time,
		Message:    r.Message,
	}
}

type createTransactionRequest struct {
	SenderAccountID   int64   `json:"senderAccountId"`
	ReceiverAccountID int64   `json:"receiverAccountId"`
	Amount            float64 `json:"amount"`
}

// ListByUser fetches every transaction the user participated in.
func (c *TransactionClient) ListByUser(ctx context.Context, userID int64) ([]domain.Transaction, error) {
	var resp []transactionResponse
	if err := c.client.get(ctx, fmt.Sprintf("/api/transactions/user/%d", userID), &resp); err != nil {
		return nil, err
	}
	txs := make([]domain.Transaction, 0, len(resp))
	for _, item := range resp {
		txs = append(txs, item.toDomain())
	}
	return txs, nil
}

// Create submits a transfer. A 2xx response whose status is not
// SUCCESS is returned as the recorded transaction together with
// ErrTransferFailed wrapping the cleaned backend reason.
func (c *TransactionClient) Create(ctx context.Context, senderAccountID, receiverAccountID int64, amount float64) (domain.Transaction, error) {
	var resp transactionResponse
	req := createTransactionRequest{
		SenderAccountID:   senderAccountID,
		ReceiverAccountID: receiverAccountID,
		Amount:            amount,
	}
	if err := c.client.post(ctx, "/api/transactions", req, &resp); err != nil {
		return domain.Transaction{}, err
	}

	tx := resp.toDomain()
	if tx.Status != domain.StatusSuccess {
		return tx, fmt.Errorf("%w: %s", ErrTransferFailed, CleanFailureMessage(tx.Message))
	}
	return tx, nil
}

var embeddedMessagePattern = regexp.MustCompile(`"message"\s*:\s*"([^"]+)"`)

// CleanFailureMessage converts the transaction service's technical
// failure text into something fit for a user. The service forwards
// raw downstream exceptions, so known patterns are mapped first and an
// embedded JSON message is mined as a fallback.
func CleanFailureMessage(technical string) string {
	if technical == "" {
		return "Transaction failed"
	}
	if strings.Contains(technical, "Not enough balance") ||
		strings.Contains(technical, "InsufficientFundsException") {
		return "Insufficient funds in your wallet"
	}
	if m := embeddedMessagePattern.FindStringSubmatch(technical); len(m) == 2 {
		return m[1]
	}
	return "Transaction failed - please try again"
}
