package api

import (
	"context"
	"fmt"
	"time"

	"github.com/t4nm4ymittal/payflow/internal/domain"
)

// UserClient talks to the user service.
type UserClient struct {
	client *Client
}

// NewUserClient builds a client for the user service at baseURL.
func NewUserClient(baseURL string, timeout time.Duration, tokens TokenSource) *UserClient {
	return &UserClient{client: NewClient(baseURL, timeout, tokens)}
}

type userResponse struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Phone     string  `json:"phone"`
	CreatedAt apiTime `json:"createdAt"`
}

func (r userResponse) toDomain() domain.User {
	return domain.User{
		ID:        r.ID,
		Name:      r.Name,
		Email:     r.Email,
		Phone:     r.Phone,
		CreatedAt: r.CreatedAt.Time,
	}
}

// Get fetches a single user by ID.
func (c *UserClient) Get(ctx context.Context, id int64) (domain.User, error) {
	var resp userResponse
	if err := c.client.get(ctx, fmt.Sprintf("/api/users/%d", id), &resp); err != nil {
		return domain.User{}, err
	}
	return resp.toDomain(), nil
}

// List fetches the full user directory, used to resolve counterpart
// display names.
func (c *UserClient) List(ctx context.Context) ([]domain.User, error) {
	var resp []userResponse
	if err := c.client.get(ctx, "/api/users", &resp); err != nil {
		return nil, err
	}
	users := make([]domain.User, 0, len(resp))
	for _, item := range resp {
		users = append(users, item.toDomain())
	}
	return users, nil
}
