package api

import (
	"context"
	"strconv"

	"github.com/labmall/storefront/internal/domain"
)

// ProjectFilter narrows the project catalogue. Zero values are not sent.
type ProjectFilter struct {
	domain.PageQuery
	CategoryID int64
	Keyword    string
	IsHot      bool
	Sort       string
}

func (c *Client) Categories(ctx context.Context) ([]domain.Category, error) {
	var out domain.Page[domain.Category]
	if err := c.get(ctx, "/projects/categories", nil, &out); err != nil {
		return nil, err
	}
	return out.Entries(), nil
}

func (c *Client) Projects(ctx context.Context, f ProjectFilter) (*domain.Page[domain.Project], error) {
	q := pageValues(f.PageQuery)
	if f.CategoryID > 0 {
		q.Set("category_id", id(f.CategoryID))
	}
	if f.Keyword != "" {
		q.Set("keyword", f.Keyword)
	}
	if f.IsHot {
		q.Set("is_hot", strconv.FormatBool(true))
	}
	if f.Sort != "" {
		q.Set("sort", f.Sort)
	}

	var out domain.Page[domain.Project]
	if err := c.get(ctx, "/projects/list", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Project(ctx context.Context, projectID int64) (*domain.ProjectDetail, error) {
	var out domain.ProjectDetail
	if err := c.get(ctx, "/projects/"+id(projectID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
