package api

import (
	"context"

	"github.com/labmall/storefront/internal/domain"
)

func (c *Client) Me(ctx context.Context) (*domain.User, error) {
	var out domain.User
	if err := c.get(ctx, "/users/me", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateProfile edits the profile through the storefront endpoint.
func (c *Client) UpdateProfile(ctx context.Context, in domain.ProfileUpdate) error {
	return c.put(ctx, "/users/profile", in, nil)
}

// UpdateMe edits the profile through the account endpoint and returns the
// stored result.
func (c *Client) UpdateMe(ctx context.Context, in domain.ProfileUpdate) (*domain.User, error) {
	var out domain.User
	if err := c.put(ctx, "/users/me", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Balance(ctx context.Context) (*domain.Balance, error) {
	var out domain.Balance
	if err := c.get(ctx, "/users/balance", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Certification(ctx context.Context) (*domain.Certification, error) {
	var out *domain.Certification
	if err := c.get(ctx, "/users/certification", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) SubmitCertification(ctx context.Context, in domain.Certification) (*domain.Certification, error) {
	var out domain.Certification
	if err := c.post(ctx, "/users/certification", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
