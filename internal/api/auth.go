package api

import (
	"context"

	"github.com/labmall/storefront/internal/domain"
)

// SendSMS asks the backend to text a verification code. Development
// backends echo the code back.
func (c *Client) SendSMS(ctx context.Context, phone, scene string) (*domain.SMSResult, error) {
	if scene == "" {
		scene = domain.SceneLogin
	}
	var out domain.SMSResult
	err := c.post(ctx, "/auth/send-sms", map[string]string{"phone": phone, "scene": scene}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) SMSLogin(ctx context.Context, phone, code string) (*domain.TokenResponse, error) {
	return c.token(ctx, "/auth/sms-login", map[string]string{"phone": phone, "sms_code": code})
}

func (c *Client) Register(ctx context.Context, phone, password, code string) (*domain.TokenResponse, error) {
	return c.token(ctx, "/auth/register", map[string]string{"phone": phone, "password": password, "sms_code": code})
}

func (c *Client) PasswordLogin(ctx context.Context, phone, password string) (*domain.TokenResponse, error) {
	return c.token(ctx, "/auth/login", map[string]string{"phone": phone, "password": password})
}

func (c *Client) WechatLogin(ctx context.Context, code string) (*domain.TokenResponse, error) {
	return c.token(ctx, "/auth/wechat-login", map[string]string{"code": code})
}

func (c *Client) token(ctx context.Context, path string, body any) (*domain.TokenResponse, error) {
	var out domain.TokenResponse
	if err := c.post(ctx, path, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
