package api

import (
	"context"

	"github.com/labmall/storefront/internal/domain"
)

func (c *Client) LotteryInfo(ctx context.Context) (*domain.LotteryInfo, error) {
	var out domain.LotteryInfo
	if err := c.get(ctx, "/lottery/info", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Draw(ctx context.Context) (*domain.LotteryResult, error) {
	var out domain.LotteryResult
	if err := c.post(ctx, "/lottery/draw", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) LotteryRecords(ctx context.Context, page domain.PageQuery) (*domain.Page[domain.LotteryRecord], error) {
	var out domain.Page[domain.LotteryRecord]
	if err := c.get(ctx, "/lottery/records", pageValues(page), &out); err != nil {
		return nil, err
	}
	return &out, nil
}
