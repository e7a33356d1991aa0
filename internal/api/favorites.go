package api

import (
	"context"

	"github.com/labmall/storefront/internal/domain"
)

func (c *Client) Favorites(ctx context.Context, page domain.PageQuery) (*domain.Page[domain.Favorite], error) {
	var out domain.Page[domain.Favorite]
	if err := c.get(ctx, "/favorites/list", pageValues(page), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) AddFavorite(ctx context.Context, projectID int64) error {
	return c.post(ctx, "/favorites/add", map[string]int64{"project_id": projectID}, nil)
}

func (c *Client) RemoveFavorite(ctx context.Context, projectID int64) error {
	return c.delete(ctx, "/favorites/"+id(projectID), nil)
}

func (c *Client) IsFavorite(ctx context.Context, projectID int64) (bool, error) {
	var out domain.FavoriteCheck
	if err := c.get(ctx, "/favorites/check/"+id(projectID), nil, &out); err != nil {
		return false, err
	}
	return out.IsFavorite, nil
}
