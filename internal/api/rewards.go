package api

import (
	"context"
	"fmt"
	"time"

	"github.com/t4nm4ymittal/payflow/internal/domain"
)

// RewardClient talks to the reward service.
type RewardClient struct {
	client *Client
}

// NewRewardClient builds a client for the reward service at baseURL.
func NewRewardClient(baseURL string, timeout time.Duration, tokens TokenSource) *RewardClient {
	return &RewardClient{client: NewClient(baseURL, timeout, tokens)}
}

type rewardResponse struct {
	Points int     `json:"points"`
	SentAt apiTime `json:"sentAt"`
}

// ListByUser fetches the user's reward history.
func (c *RewardClient) ListByUser(ctx context.Context, userID int64) ([]domain.Reward, error) {
	var resp []rewardResponse
	if err := c.client.get(ctx, fmt.Sprintf("/api/rewards/user/%d", userID), &resp); err != nil {
		return nil, err
	}
	rewards := make([]domain.Reward, 0, len(resp))
	for _, item := range resp {
		rewards = append(rewards, domain.Reward{Points: item.Points, SentAt: item.SentAt.Time})
	}
	return rewards, nil
}
