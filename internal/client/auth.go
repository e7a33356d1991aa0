package client

import (
	"context"
	"net/http"

	"golang.org/x/oauth2"
)

type bearerKey struct{}

// WithBearer makes calls made with ctx use token instead of the session's.
// The login flow uses it to fetch the profile before the session exists.
func WithBearer(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, bearerKey{}, token)
}

func hasBearerOverride(ctx context.Context) bool {
	_, ok := ctx.Value(bearerKey{}).(string)
	return ok
}

func (c *Client) tokenFor(ctx context.Context) string {
	if tok, ok := ctx.Value(bearerKey{}).(string); ok {
		return tok
	}
	if c.session == nil {
		return ""
	}
	return c.session.Token()
}

// authorize sets "Authorization: Bearer <token>" when a token is held and
// leaves the header absent otherwise.
func (c *Client) authorize(ctx context.Context, req *http.Request) {
	tok := c.tokenFor(ctx)
	if tok == "" {
		req.Header.Del("Authorization")
		return
	}
	(&oauth2.Token{AccessToken: tok, TokenType: "Bearer"}).SetAuthHeader(req)
}
