package session

import (
	"encoding/json"
	"fmt"

	"github.com/labmall/storefront/internal/domain"
)

// Storage keys, matching what the browser client keeps in localStorage.
const (
	keyToken    = "token"
	keyUserInfo = "userInfo"
)

func encodeUser(u *domain.User) (string, error) {
	if u == nil {
		return "", nil
	}
	b, err := json.Marshal(u)
	if err != nil {
		return "", fmt.Errorf("marshal user info: %w", err)
	}
	return string(b), nil
}

func decodeUser(raw string) (*domain.User, error) {
	if raw == "" || raw == "null" || raw == "{}" {
		return nil, nil
	}
	var u domain.User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		return nil, fmt.Errorf("unmarshal user info: %w", err)
	}
	return &u, nil
}
