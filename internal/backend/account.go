package backend

import (
	"context"
	"net/http"
)

// RegisterInput is the account registration payload.
type RegisterInput struct {
	ID       string `json:"id"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// CheckAccountID asks whether a login id is still available.
// POST /api/v1/account/check
func (c *Client) CheckAccountID(ctx context.Context, id string) (bool, error) {
	body := map[string]string{"id": id}
	var result struct {
		Available bool `json:"available"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/v1/account/check", nil, body, &result); err != nil {
		return false, err
	}
	return result.Available, nil
}

// RegisterAccount creates a new account. POST /api/v1/account/register
func (c *Client) RegisterAccount(ctx context.Context, input *RegisterInput) error {
	return c.do(ctx, http.MethodPost, "/api/v1/account/register", nil, input, nil)
}
