package api

import (
	"context"
	"fmt"
	"time"

	"github.com/t4nm4ymittal/payflow/internal/domain"
)

// NotificationClient talks to the notification service.
type NotificationClient struct {
	client *Client
}

// NewNotificationClient builds a client for the notification service
// at baseURL.
func NewNotificationClient(baseURL string, timeout time.Duration, tokens TokenSource) *NotificationClient {
	return &NotificationClient{client: NewClient(baseURL, timeout, tokens)}
}

type notificationResponse struct {
	ID        int64   `json:"id"`
	Message   string  `json:"message"`
	Timestamp apiTime `json:"timestamp"`
}

// ListByUser fetches the user's notification feed, newest first.
func (c *NotificationClient) ListByUser(ctx context.Context, userID int64) ([]domain.Notification, error) {
	var resp []notificationResponse
	if err := c.client.get(ctx, fmt.Sprintf("/api/notifications/%d", userID), &resp); err != nil {
		return nil, err
	}
	items := make([]domain.Notification, 0, len(resp))
	for _, item := range resp {
		items = append(items, domain.Notification{
			ID:        item.ID,
			Message:   item.Message,
			Timestamp: item.Timestamp.Time,
		})
	}
	return items, nil
}
