package api

import (
	"context"

	"github.com/labmall/storefront/internal/domain"
)

// DefaultGroupName is used when a group is created without a name.
const DefaultGroupName = "我的团队"

// MyGroup returns the user's group, or nil when they have none.
func (c *Client) MyGroup(ctx context.Context) (*domain.Group, error) {
	var out *domain.Group
	if err := c.get(ctx, "/groups/my", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateGroup(ctx context.Context, name string) (*domain.Group, error) {
	if name == "" {
		name = DefaultGroupName
	}
	var out domain.Group
	if err := c.post(ctx, "/groups/create", map[string]string{"name": name}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) InviteRecords(ctx context.Context, page domain.PageQuery) (*domain.Page[domain.InviteRecord], error) {
	var out domain.Page[domain.InviteRecord]
	if err := c.get(ctx, "/invites/records", pageValues(page), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) InviteStats(ctx context.Context) (*domain.InviteStats, error) {
	var out domain.InviteStats
	if err := c.get(ctx, "/invites/stats", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ApplyWithdraw(ctx context.Context, in domain.WithdrawRequest) error {
	return c.post(ctx, "/invites/withdraw", in, nil)
}
