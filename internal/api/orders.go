package api

import (
	"context"

	"github.com/labmall/storefront/internal/domain"
)

// DefaultCancelReason is sent when the user gives no reason.
const DefaultCancelReason = "用户取消"

type OrderFilter struct {
	domain.PageQuery
	Status string
}

func (c *Client) Orders(ctx context.Context, f OrderFilter) (*domain.Page[domain.Order], error) {
	q := pageValues(f.PageQuery)
	if f.Status != "" {
		q.Set("status", f.Status)
	}
	var out domain.Page[domain.Order]
	if err := c.get(ctx, "/orders/list", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Order(ctx context.Context, orderID int64) (*domain.OrderDetail, error) {
	var out domain.OrderDetail
	if err := c.get(ctx, "/orders/"+id(orderID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateOrder(ctx context.Context, in domain.OrderCreate) (*domain.CreatedOrder, error) {
	var out domain.CreatedOrder
	if err := c.post(ctx, "/orders/create", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CalculateOrder(ctx context.Context, in domain.OrderCalculate) (*domain.OrderQuote, error) {
	var out domain.OrderQuote
	if err := c.post(ctx, "/orders/calculate", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CancelOrder(ctx context.Context, orderID int64, reason string) error {
	if reason == "" {
		reason = DefaultCancelReason
	}
	return c.post(ctx, "/orders/"+id(orderID)+"/cancel", map[string]string{"reason": reason}, nil)
}

func (c *Client) ConfirmReceipt(ctx context.Context, orderID int64) error {
	return c.post(ctx, "/orders/"+id(orderID)+"/confirm-receipt", nil, nil)
}
