package session

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is what the client can read from its own token. Nothing here is
// verified; it is for display only and never gates a request.
type Claims struct {
	UserID    int64
	Phone     string
	ExpiresAt time.Time
}

// Expired reports whether the token carries an expiry that has passed.
func (c Claims) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && now.After(c.ExpiresAt)
}

// ParseClaims decodes the JWT payload without checking the signature.
func ParseClaims(token string) (Claims, error) {
	mc := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, mc); err != nil {
		return Claims{}, fmt.Errorf("parse token: %w", err)
	}

	var c Claims
	switch v := mc["user_id"].(type) {
	case float64:
		c.UserID = int64(v)
	case json.Number:
		c.UserID, _ = v.Int64()
	case string:
		c.UserID, _ = strconv.ParseInt(v, 10, 64)
	}
	if phone, ok := mc["phone"].(string); ok {
		c.Phone = phone
	}
	if exp, err := mc.GetExpirationTime(); err == nil && exp != nil {
		c.ExpiresAt = exp.Time
	}
	return c, nil
}
