package api

import (
	"context"

	"github.com/labmall/storefront/internal/domain"
)

// CreatePayment starts a gateway payment. The result carries the URL the
// user must visit to pay.
func (c *Client) CreatePayment(ctx context.Context, orderID int64, method string) (*domain.PaymentResult, error) {
	body := map[string]any{"order_id": orderID, "pay_method": method}
	var out domain.PaymentResult
	if err := c.post(ctx, "/payments/create", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// PayWithBalance settles an order from the account balance.
func (c *Client) PayWithBalance(ctx context.Context, orderID int64) (*domain.PaymentResult, error) {
	var out domain.PaymentResult
	if err := c.post(ctx, "/payments/balance-pay", map[string]int64{"order_id": orderID}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
