package api

import (
	"context"

	"github.com/labmall/storefront/internal/domain"
)

func (c *Client) Banners(ctx context.Context) ([]domain.Banner, error) {
	var out domain.Page[domain.Banner]
	if err := c.get(ctx, "/banners/list", nil, &out); err != nil {
		return nil, err
	}
	return out.Entries(), nil
}

func (c *Client) Announcements(ctx context.Context, page domain.PageQuery) (*domain.Page[domain.Announcement], error) {
	var out domain.Page[domain.Announcement]
	if err := c.get(ctx, "/announcements/list", pageValues(page), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) HelpCategories(ctx context.Context) ([]domain.HelpCategory, error) {
	var out domain.Page[domain.HelpCategory]
	if err := c.get(ctx, "/help/categories", nil, &out); err != nil {
		return nil, err
	}
	return out.Entries(), nil
}

// HelpArticles lists articles, optionally restricted to one category.
func (c *Client) HelpArticles(ctx context.Context, categoryID int64, page domain.PageQuery) (*domain.Page[domain.HelpArticle], error) {
	q := pageValues(page)
	if categoryID > 0 {
		q.Set("category_id", id(categoryID))
	}
	var out domain.Page[domain.HelpArticle]
	if err := c.get(ctx, "/help/articles", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
