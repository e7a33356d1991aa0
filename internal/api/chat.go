package api

import (
	"context"

	"github.com/labmall/storefront/internal/domain"
)

func (c *Client) ChatHistory(ctx context.Context) ([]domain.ChatMessage, error) {
	var out domain.Page[domain.ChatMessage]
	if err := c.get(ctx, "/chat/history", nil, &out); err != nil {
		return nil, err
	}
	return out.Entries(), nil
}

// SendMessage posts a message to customer service. The reply, when the
// backend answers synchronously, is returned; otherwise nil.
func (c *Client) SendMessage(ctx context.Context, content string) (*domain.ChatMessage, error) {
	var out *domain.ChatMessage
	if err := c.post(ctx, "/chat/send", map[string]string{"content": content}, &out); err != nil {
		return nil, err
	}
	return out, nil
}
