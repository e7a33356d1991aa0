package api

import (
	"context"

	"github.com/labmall/storefront/internal/domain"
)

func (c *Client) Addresses(ctx context.Context) ([]domain.Address, error) {
	var out domain.Page[domain.Address]
	if err := c.get(ctx, "/addresses/list", nil, &out); err != nil {
		return nil, err
	}
	return out.Entries(), nil
}

func (c *Client) CreateAddress(ctx context.Context, in domain.Address) (*domain.Address, error) {
	in.ID = 0
	var out domain.Address
	if err := c.post(ctx, "/addresses/create", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateAddress(ctx context.Context, addressID int64, in domain.Address) error {
	return c.put(ctx, "/addresses/"+id(addressID), in, nil)
}

func (c *Client) DeleteAddress(ctx context.Context, addressID int64) error {
	return c.delete(ctx, "/addresses/"+id(addressID), nil)
}

func (c *Client) SetDefaultAddress(ctx context.Context, addressID int64) error {
	return c.put(ctx, "/addresses/"+id(addressID)+"/default", nil, nil)
}

// DefaultAddress picks the address flagged as default, else the first one.
func DefaultAddress(list []domain.Address) *domain.Address {
	for i := range list {
		if list[i].IsDefault {
			return &list[i]
		}
	}
	if len(list) > 0 {
		return &list[0]
	}
	return nil
}
