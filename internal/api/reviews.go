package api

import (
	"context"

	"github.com/labmall/storefront/internal/domain"
)

func (c *Client) ProjectReviews(ctx context.Context, projectID int64, page domain.PageQuery) (*domain.Page[domain.Review], error) {
	var out domain.Page[domain.Review]
	if err := c.get(ctx, "/reviews/project/"+id(projectID), pageValues(page), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) MyReviews(ctx context.Context, page domain.PageQuery) (*domain.Page[domain.Review], error) {
	var out domain.Page[domain.Review]
	if err := c.get(ctx, "/reviews/my", pageValues(page), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateReview submits one star rating, applied to every rated dimension.
func (c *Client) CreateReview(ctx context.Context, orderID int64, rating int, content string) error {
	in := domain.ReviewCreate{
		OrderID:         orderID,
		ServiceRating:   rating,
		QualityRating:   rating,
		LogisticsRating: rating,
		Content:         content,
	}
	return c.post(ctx, "/reviews/create", in, nil)
}
