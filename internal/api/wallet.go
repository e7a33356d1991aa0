package api

import (
	"context"

	"github.com/labmall/storefront/internal/domain"
)

func (c *Client) CreateRecharge(ctx context.Context, in domain.RechargeRequest) (*domain.RechargeRecord, error) {
	var out domain.RechargeRecord
	if err := c.post(ctx, "/recharge/create", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) RechargeRecords(ctx context.Context, page domain.PageQuery) (*domain.Page[domain.RechargeRecord], error) {
	var out domain.Page[domain.RechargeRecord]
	if err := c.get(ctx, "/recharge/records", pageValues(page), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ApplyInvoice(ctx context.Context, in domain.InvoiceApply) (*domain.Invoice, error) {
	var out domain.Invoice
	if err := c.post(ctx, "/invoices/apply", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Invoices(ctx context.Context, page domain.PageQuery) (*domain.Page[domain.Invoice], error) {
	var out domain.Page[domain.Invoice]
	if err := c.get(ctx, "/invoices/list", pageValues(page), &out); err != nil {
		return nil, err
	}
	return &out, nil
}
