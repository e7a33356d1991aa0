package api

import (
	"context"
	"net/url"

	"github.com/labmall/storefront/internal/domain"
)

// Coupon list tabs.
const (
	CouponUnused  = "unused"
	CouponUsed    = "used"
	CouponExpired = "expired"
)

func (c *Client) Coupons(ctx context.Context, status string, page domain.PageQuery) (*domain.Page[domain.UserCoupon], error) {
	q := pageValues(page)
	if status != "" {
		q.Set("status", status)
	}
	var out domain.Page[domain.UserCoupon]
	if err := c.get(ctx, "/coupons/list", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AvailableCoupons lists the coupons usable for a booking of projectID.
func (c *Client) AvailableCoupons(ctx context.Context, projectID int64) ([]domain.UserCoupon, error) {
	q := url.Values{}
	if projectID > 0 {
		q.Set("project_id", id(projectID))
	}
	var out domain.Page[domain.UserCoupon]
	if err := c.get(ctx, "/coupons/available", q, &out); err != nil {
		return nil, err
	}
	return out.Entries(), nil
}
