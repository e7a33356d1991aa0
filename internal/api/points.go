package api

import (
	"context"

	"github.com/labmall/storefront/internal/domain"
)

func (c *Client) PointsGoods(ctx context.Context, page domain.PageQuery) (*domain.Page[domain.PointsGoods], error) {
	var out domain.Page[domain.PointsGoods]
	if err := c.get(ctx, "/points/goods", pageValues(page), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ExchangePoints(ctx context.Context, goodsID int64, quantity int) error {
	if quantity < 1 {
		quantity = 1
	}
	return c.post(ctx, "/points/exchange", domain.PointsExchange{GoodsID: goodsID, Quantity: quantity}, nil)
}

func (c *Client) PointsRecords(ctx context.Context, page domain.PageQuery) (*domain.Page[domain.PointsRecord], error) {
	var out domain.Page[domain.PointsRecord]
	if err := c.get(ctx, "/points/records", pageValues(page), &out); err != nil {
		return nil, err
	}
	return &out, nil
}
