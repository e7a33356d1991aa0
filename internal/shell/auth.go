package shell

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/labmall/storefront/internal/client"
	"github.com/labmall/storefront/internal/domain"
	"github.com/labmall/storefront/internal/logging"
	"github.com/labmall/storefront/internal/views"
)

var phonePattern = regexp.MustCompile(`^\d{11}$`)

// ValidPhone reports whether phone is an 11-digit mobile number.
func ValidPhone(phone string) bool {
	return phonePattern.MatchString(phone)
}

// SendSMS requests a login code for phone. Development backends return the
// code, which is surfaced to the user and returned.
func (s *Shell) SendSMS(ctx context.Context, phone string) (string, error) {
	phone = strings.TrimSpace(phone)
	if !ValidPhone(phone) {
		return "", s.invalid(ctx, "phone", msgInvalidPhone)
	}

	res, err := s.api.SendSMS(ctx, phone, domain.SceneLogin)
	if err != nil {
		return "", err
	}
	s.notify(ctx, client.LevelSuccess, msgSMSSent)
	if res.Code != "" {
		s.notify(ctx, client.LevelInfo, fmt.Sprintf(msgDevCode, res.Code))
		s.mu.Lock()
		s.state.DevCode = res.Code
		s.mu.Unlock()
	}
	return res.Code, nil
}

// Login signs in with an SMS code. The profile is fetched with the new
// token before anything is stored, so a failed fetch leaves the session
// untouched.
func (s *Shell) Login(ctx context.Context, phone, code string) (*domain.User, error) {
	phone, code = strings.TrimSpace(phone), strings.TrimSpace(code)
	if phone == "" || code == "" {
		return nil, s.invalid(ctx, "login", msgIncompleteLogin)
	}
	if !ValidPhone(phone) {
		return nil, s.invalid(ctx, "phone", msgInvalidPhone)
	}

	tok, err := s.api.SMSLogin(ctx, phone, code)
	if err != nil {
		return nil, err
	}
	user, err := s.api.Me(client.WithBearer(ctx, tok.AccessToken))
	if err != nil {
		return nil, err
	}
	if err := s.session.Login(ctx, tok.AccessToken, user); err != nil {
		logging.NewLogger(ctx).LogError("session_login", err)
		s.notify(ctx, client.LevelError, client.MsgRequestFailed)
		return nil, err
	}

	s.mu.Lock()
	s.state.Modals.Login = false
	s.state.DevCode = ""
	s.mu.Unlock()
	s.notify(ctx, client.LevelSuccess, msgLoginOK)
	return user, nil
}

// Logout ends the session and returns to the home view.
func (s *Shell) Logout(ctx context.Context) error {
	err := s.session.Logout(ctx)

	s.mu.Lock()
	s.state = State{ActiveView: views.NameHome}
	s.mu.Unlock()

	if err != nil {
		logging.NewLogger(ctx).LogError("session_logout", err)
		return err
	}
	s.notify(ctx, client.LevelSuccess, msgLogoutOK)
	return nil
}
