// Package shell owns the cross-screen state of a storefront client: the
// active view, the modal dialogs and their forms, and the actions those
// dialogs submit. The web server and the CLI each drive one Shell.
package shell

import (
	"context"
	"sync"

	"github.com/labmall/storefront/internal/api"
	"github.com/labmall/storefront/internal/client"
	"github.com/labmall/storefront/internal/domain"
	"github.com/labmall/storefront/internal/logging"
	"github.com/labmall/storefront/internal/session"
	"github.com/labmall/storefront/internal/views"
)

// UnauthorizedPolicy is what a shell does after a 401 ended the session.
type UnauthorizedPolicy int

const (
	// PolicyReload resets the shell to its start state.
	PolicyReload UnauthorizedPolicy = iota
	// PolicyRedirectLogin keeps the shell and moves it to the login screen.
	PolicyRedirectLogin
)

func (p UnauthorizedPolicy) String() string {
	if p == PolicyRedirectLogin {
		return "redirect_login"
	}
	return "reload"
}

type Modals struct {
	Login   bool `json:"login"`
	Booking bool `json:"booking"`
	Payment bool `json:"payment"`
	Review  bool `json:"review"`
	Invoice bool `json:"invoice"`
	Profile bool `json:"profile"`
}

// State is a copy of the shell state for rendering.
type State struct {
	ActiveView       string                `json:"active_view"`
	CurrentProjectID int64                 `json:"current_project_id,omitempty"`
	CurrentOrderID   int64                 `json:"current_order_id,omitempty"`
	Authenticated    bool                  `json:"authenticated"`
	User             *domain.User          `json:"user,omitempty"`
	Modals           Modals                `json:"modals"`
	Booking          *BookingForm          `json:"booking,omitempty"`
	Payment          *PaymentForm          `json:"payment,omitempty"`
	Review           *ReviewForm           `json:"review,omitempty"`
	Invoice          *domain.InvoiceApply  `json:"invoice,omitempty"`
	Profile          *domain.ProfileUpdate `json:"profile,omitempty"`
	DevCode          string                `json:"dev_code,omitempty"`
}

type Options struct {
	API      *api.Client
	Session  *session.Store
	Notifier client.Notifier
	Policy   UnauthorizedPolicy
}

type Shell struct {
	api      *api.Client
	session  *session.Store
	notifier client.Notifier
	policy   UnauthorizedPolicy

	mu    sync.Mutex
	state State
	views *views.Set
}

func New(opts Options) *Shell {
	n := opts.Notifier
	if n == nil {
		n = NewNotifications(0)
	}
	s := &Shell{
		api:      opts.API,
		session:  opts.Session,
		notifier: n,
		policy:   opts.Policy,
		state:    State{ActiveView: views.NameHome},
	}
	s.views = views.NewSet(opts.API, opts.Session)
	return s
}

func (s *Shell) Policy() UnauthorizedPolicy { return s.policy }

// Views returns the view set of the shell. It is replaced on reload.
func (s *Shell) Views() *views.Set {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.views
}

// State returns a copy of the current state with the session folded in.
func (s *Shell) State() State {
	sess := s.session.Snapshot()
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.state
	st.Authenticated = sess.Authenticated()
	st.User = sess.User
	return st
}

// CheckLogin restores the persisted session. The shell counts as signed in
// only when both the token and the profile were restored.
func (s *Shell) CheckLogin(ctx context.Context) (bool, error) {
	if err := s.session.Restore(ctx); err != nil {
		return false, err
	}
	return s.session.IsAuthenticated(), nil
}

// Navigate switches the active view and loads it. Views that need a user
// open the login modal instead while signed out.
func (s *Shell) Navigate(ctx context.Context, name string, p views.Params) (any, error) {
	if name == views.NameLogin {
		s.openLogin()
		return nil, nil
	}
	if views.RequiresLogin(name) && !s.session.IsAuthenticated() {
		s.openLogin()
		return nil, ErrLoginRequired
	}

	s.mu.Lock()
	s.state.ActiveView = name
	switch name {
	case views.NameProject:
		s.state.CurrentProjectID = p.ID
	case views.NameOrder, views.NameSample:
		s.state.CurrentOrderID = p.ID
	}
	set := s.views
	s.mu.Unlock()

	return set.Open(ctx, name, p)
}

// HandleUnauthorized applies the shell's policy after a 401. The pipeline
// has already cleared the session.
func (s *Shell) HandleUnauthorized(ctx context.Context) {
	logging.NewLogger(ctx).LogInfof("unauthorized", "applying %s policy", s.policy)

	s.mu.Lock()
	var old *views.Set
	switch s.policy {
	case PolicyRedirectLogin:
		s.state = State{
			ActiveView:       views.NameLogin,
			CurrentProjectID: s.state.CurrentProjectID,
			CurrentOrderID:   s.state.CurrentOrderID,
			Modals:           Modals{Login: true},
		}
	default:
		old = s.views
		s.views = views.NewSet(s.api, s.session)
		s.state = State{ActiveView: views.NameHome}
	}
	s.mu.Unlock()

	// The 401 may have come from one of the old set's poll jobs, and closing
	// the set waits for that job to return.
	if old != nil {
		go old.Close()
	}
}

// Close releases background work held by the views.
func (s *Shell) Close() {
	s.Views().Close()
}

func (s *Shell) openLogin() {
	s.mu.Lock()
	s.state.Modals.Login = true
	s.mu.Unlock()
}

// CloseModal dismisses one dialog and drops its form.
func (s *Shell) CloseModal(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch name {
	case "login":
		s.state.Modals.Login = false
		s.state.DevCode = ""
	case "booking":
		s.state.Modals.Booking = false
		s.state.Booking = nil
	case "payment":
		s.state.Modals.Payment = false
		s.state.Payment = nil
	case "review":
		s.state.Modals.Review = false
		s.state.Review = nil
	case "invoice":
		s.state.Modals.Invoice = false
		s.state.Invoice = nil
	case "profile":
		s.state.Modals.Profile = false
		s.state.Profile = nil
	}
}

func (s *Shell) notify(ctx context.Context, level client.Level, msg string) {
	s.notifier.Notify(ctx, client.Notification{Level: level, Message: msg})
}

// invalid notifies and returns a validation error for field.
func (s *Shell) invalid(ctx context.Context, field, msg string) error {
	s.notify(ctx, client.LevelError, msg)
	return &ValidationError{Field: field, Message: msg}
}

// requireLogin opens the login modal and fails when nobody is signed in.
func (s *Shell) requireLogin() error {
	if s.session.IsAuthenticated() {
		return nil
	}
	s.openLogin()
	return ErrLoginRequired
}
