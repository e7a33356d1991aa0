package views

import (
	"context"
	"fmt"
	"sort"

	"github.com/labmall/storefront/internal/api"
)

// View names, as used for navigation.
const (
	NameHome          = "home"
	NameProjects      = "projects"
	NameProject       = "project"
	NameOrders        = "orders"
	NameOrder         = "order"
	NameSample        = "sample"
	NameProfile       = "profile"
	NameWallet        = "wallet"
	NameAddresses     = "addresses"
	NameCoupons       = "coupons"
	NameFavorites     = "favorites"
	NamePoints        = "points"
	NameInvites       = "invites"
	NameLottery       = "lottery"
	NameChat          = "chat"
	NameReports       = "reports"
	NameAnnouncements = "announcements"
	NameHelp          = "help"
	NameInvoices      = "invoices"
	NameReviews       = "reviews"
	NameLogin         = "login"
)

// Params are the navigation inputs a view may use.
type Params struct {
	ID         int64
	Page       int
	Status     string
	CategoryID int64
	Keyword    string
}

// Set holds one instance of every view for a single shell.
type Set struct {
	Home          *Home
	Projects      *ProjectList
	Project       *ProjectDetail
	Orders        *Orders
	Order         *OrderDetail
	Sample        *SampleTrack
	Profile       *Profile
	Wallet        *Wallet
	Addresses     *Addresses
	Coupons       *Coupons
	Favorites     *Favorites
	Points        *Points
	Invites       *Invites
	Lottery       *Lottery
	Chat          *Chat
	Reports       *Reports
	Announcements *Announcements
	Help          *Help
	Invoices      *Invoices
	Reviews       *Reviews
}

func NewSet(a *api.Client, auth AuthState) *Set {
	return &Set{
		Home:          NewHome(a),
		Projects:      NewProjectList(a),
		Project:       NewProjectDetail(a, auth),
		Orders:        NewOrders(a),
		Order:         NewOrderDetail(a),
		Sample:        NewSampleTrack(a),
		Profile:       NewProfile(a),
		Wallet:        NewWallet(a),
		Addresses:     NewAddresses(a),
		Coupons:       NewCoupons(a),
		Favorites:     NewFavorites(a),
		Points:        NewPoints(a),
		Invites:       NewInvites(a),
		Lottery:       NewLottery(a),
		Chat:          NewChat(a),
		Reports:       NewReports(a),
		Announcements: NewAnnouncements(a),
		Help:          NewHelp(a),
		Invoices:      NewInvoices(a),
		Reviews:       NewReviews(a),
	}
}

// RequiresLogin reports whether a view only makes sense for a signed-in user.
func RequiresLogin(name string) bool {
	switch name {
	case NameHome, NameProjects, NameProject, NameAnnouncements, NameHelp, NameLogin:
		return false
	}
	return true
}

// Names lists every view that Open accepts.
func Names() []string {
	names := make([]string, 0, len(openers))
	for n := range openers {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

type opener func(ctx context.Context, s *Set, p Params) (any, error)

var openers = map[string]opener{
	NameHome: func(ctx context.Context, s *Set, _ Params) (any, error) {
		err := s.Home.Load(ctx)
		return s.Home.Snapshot(), err
	},
	NameProjects: func(ctx context.Context, s *Set, p Params) (any, error) {
		f := api.ProjectFilter{CategoryID: p.CategoryID, Keyword: p.Keyword}
		f.Page = p.Page
		if err := s.Projects.SetFilter(ctx, f); err != nil {
			return s.Projects.Snapshot(), err
		}
		return s.Projects.Snapshot(), nil
	},
	NameProject: func(ctx context.Context, s *Set, p Params) (any, error) {
		err := s.Project.Open(ctx, p.ID)
		return s.Project.Snapshot(), err
	},
	NameOrders: func(ctx context.Context, s *Set, p Params) (any, error) {
		err := s.Orders.SetStatus(ctx, p.Status)
		return s.Orders.Snapshot(), err
	},
	NameOrder: func(ctx context.Context, s *Set, p Params) (any, error) {
		err := s.Order.Open(ctx, p.ID)
		return s.Order.Snapshot(), err
	},
	NameSample: func(ctx context.Context, s *Set, p Params) (any, error) {
		err := s.Sample.Open(ctx, p.ID)
		return s.Sample.Snapshot(), err
	},
	NameProfile: func(ctx context.Context, s *Set, _ Params) (any, error) {
		err := s.Profile.Load(ctx)
		return s.Profile.Snapshot(), err
	},
	NameWallet: func(ctx context.Context, s *Set, _ Params) (any, error) {
		err := s.Wallet.Load(ctx)
		return s.Wallet.Snapshot(), err
	},
	NameAddresses: func(ctx context.Context, s *Set, _ Params) (any, error) {
		err := s.Addresses.Load(ctx)
		return s.Addresses.Snapshot(), err
	},
	NameCoupons: func(ctx context.Context, s *Set, p Params) (any, error) {
		err := s.Coupons.SetStatus(ctx, p.Status)
		return s.Coupons.Snapshot(), err
	},
	NameFavorites: func(ctx context.Context, s *Set, _ Params) (any, error) {
		err := s.Favorites.Load(ctx)
		return s.Favorites.Snapshot(), err
	},
	NamePoints: func(ctx context.Context, s *Set, _ Params) (any, error) {
		err := s.Points.Load(ctx)
		return s.Points.Snapshot(), err
	},
	NameInvites: func(ctx context.Context, s *Set, _ Params) (any, error) {
		err := s.Invites.Load(ctx)
		return s.Invites.Snapshot(), err
	},
	NameLottery: func(ctx context.Context, s *Set, _ Params) (any, error) {
		err := s.Lottery.Load(ctx)
		return s.Lottery.Snapshot(), err
	},
	NameChat: func(ctx context.Context, s *Set, _ Params) (any, error) {
		err := s.Chat.Load(ctx)
		return s.Chat.Snapshot(), err
	},
	NameReports: func(ctx context.Context, s *Set, _ Params) (any, error) {
		err := s.Reports.Load(ctx)
		return s.Reports.Snapshot(), err
	},
	NameAnnouncements: func(ctx context.Context, s *Set, _ Params) (any, error) {
		err := s.Announcements.Load(ctx)
		return s.Announcements.Snapshot(), err
	},
	NameHelp: func(ctx context.Context, s *Set, p Params) (any, error) {
		if p.CategoryID > 0 {
			if err := s.Help.Load(ctx); err != nil {
				return s.Help.Snapshot(), err
			}
			err := s.Help.SetCategory(ctx, p.CategoryID)
			return s.Help.Snapshot(), err
		}
		err := s.Help.Load(ctx)
		return s.Help.Snapshot(), err
	},
	NameInvoices: func(ctx context.Context, s *Set, _ Params) (any, error) {
		err := s.Invoices.Load(ctx)
		return s.Invoices.Snapshot(), err
	},
	NameReviews: func(ctx context.Context, s *Set, p Params) (any, error) {
		err := s.Reviews.SetProject(ctx, p.ID)
		return s.Reviews.Snapshot(), err
	},
}

// Open loads the named view with p and returns its state. On failure the
// returned state is whatever the view held before.
func (s *Set) Open(ctx context.Context, name string, p Params) (any, error) {
	open, ok := openers[name]
	if !ok {
		return nil, fmt.Errorf("unknown view %q", name)
	}
	return open(ctx, s, p)
}

// Close stops background work owned by the views.
func (s *Set) Close() {
	s.Chat.StopPolling()
}
