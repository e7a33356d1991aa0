package views

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/labmall/storefront/internal/api"
	"github.com/labmall/storefront/internal/domain"
)

type ProfileState struct {
	User    *domain.User    `json:"user"`
	Balance *domain.Balance `json:"balance"`
}

// Profile shows the signed-in user with their balance.
type Profile struct {
	api *api.Client

	mu    sync.RWMutex
	state ProfileState
}

func NewProfile(a *api.Client) *Profile {
	return &Profile{api: a}
}

func (v *Profile) Load(ctx context.Context) error {
	var (
		next ProfileState
		g    errgroup.Group
	)
	g.Go(func() (err error) {
		next.User, err = v.api.Me(ctx)
		return err
	})
	g.Go(func() (err error) {
		next.Balance, err = v.api.Balance(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	v.mu.Lock()
	v.state = next
	v.mu.Unlock()
	return nil
}

func (v *Profile) Snapshot() ProfileState {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.state
}

type WalletState struct {
	Balance *domain.Balance                  `json:"balance"`
	Records ListState[domain.RechargeRecord] `json:"records"`
}

type Wallet struct {
	api     *api.Client
	records *List[domain.RechargeRecord]

	mu      sync.RWMutex
	balance *domain.Balance
}

func NewWallet(a *api.Client) *Wallet {
	return &Wallet{api: a, records: NewList[domain.RechargeRecord](domain.DefaultPageSize, a.RechargeRecords)}
}

func (v *Wallet) Load(ctx context.Context) error {
	var g errgroup.Group
	g.Go(func() error {
		b, err := v.api.Balance(ctx)
		if err != nil {
			return err
		}
		v.mu.Lock()
		v.balance = b
		v.mu.Unlock()
		return nil
	})
	g.Go(func() error { return v.records.Load(ctx) })
	return g.Wait()
}

func (v *Wallet) NextPage(ctx context.Context) error { return v.records.NextPage(ctx) }

// Recharge creates a top-up order. The returned record carries the payment
// URL; the wallet is refreshed afterwards.
func (v *Wallet) Recharge(ctx context.Context, amount domain.Money, method string) (*domain.RechargeRecord, error) {
	if !domain.ValidPayMethod(method) || method == domain.PayBalance {
		return nil, domain.ErrInvalidPayMethod
	}
	if f, err := amount.Float64(); err != nil || f <= 0 {
		return nil, domain.ErrInvalidAmount
	}
	rec, err := v.api.CreateRecharge(ctx, domain.RechargeRequest{Amount: amount, PaymentMethod: method})
	if err != nil {
		return nil, err
	}
	_ = v.Load(ctx)
	return rec, nil
}

func (v *Wallet) Snapshot() WalletState {
	v.mu.RLock()
	b := v.balance
	v.mu.RUnlock()
	return WalletState{Balance: b, Records: v.records.Snapshot()}
}

// Addresses is the address book. Every mutation reloads the list.
type Addresses struct {
	api *api.Client

	mu    sync.RWMutex
	items []domain.Address
}

func NewAddresses(a *api.Client) *Addresses {
	return &Addresses{api: a}
}

func (v *Addresses) Load(ctx context.Context) error {
	list, err := v.api.Addresses(ctx)
	if err != nil {
		return err
	}
	v.mu.Lock()
	v.items = list
	v.mu.Unlock()
	return nil
}

func (v *Addresses) Create(ctx context.Context, a domain.Address) error {
	if _, err := v.api.CreateAddress(ctx, a); err != nil {
		return err
	}
	return v.Load(ctx)
}

func (v *Addresses) Update(ctx context.Context, id int64, a domain.Address) error {
	if err := v.api.UpdateAddress(ctx, id, a); err != nil {
		return err
	}
	return v.Load(ctx)
}

func (v *Addresses) Delete(ctx context.Context, id int64) error {
	if err := v.api.DeleteAddress(ctx, id); err != nil {
		return err
	}
	return v.Load(ctx)
}

func (v *Addresses) SetDefault(ctx context.Context, id int64) error {
	if err := v.api.SetDefaultAddress(ctx, id); err != nil {
		return err
	}
	return v.Load(ctx)
}

func (v *Addresses) Snapshot() []domain.Address {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return append([]domain.Address{}, v.items...)
}

type CouponsState struct {
	Status string                       `json:"status"`
	List   ListState[domain.UserCoupon] `json:"list"`
}

// Coupons lists the user's coupons under one status tab.
type Coupons struct {
	api *api.Client

	mu     sync.RWMutex
	status string
	list   *List[domain.UserCoupon]
}

// couponPageSize matches the single long page the coupon tab shows.
const couponPageSize = 50

func NewCoupons(a *api.Client) *Coupons {
	v := &Coupons{api: a, status: api.CouponUnused}
	v.list = v.newList(v.status)
	return v
}

func (v *Coupons) newList(status string) *List[domain.UserCoupon] {
	return NewList[domain.UserCoupon](couponPageSize, func(ctx context.Context, q domain.PageQuery) (*domain.Page[domain.UserCoupon], error) {
		return v.api.Coupons(ctx, status, q)
	})
}

func (v *Coupons) Load(ctx context.Context) error {
	v.mu.RLock()
	list := v.list
	v.mu.RUnlock()
	return list.Load(ctx)
}

func (v *Coupons) SetStatus(ctx context.Context, status string) error {
	if status == "" {
		status = api.CouponUnused
	}
	next := v.newList(status)
	if err := next.Load(ctx); err != nil {
		return err
	}
	v.mu.Lock()
	v.status = status
	v.list = next
	v.mu.Unlock()
	return nil
}

func (v *Coupons) Snapshot() CouponsState {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return CouponsState{Status: v.status, List: v.list.Snapshot()}
}

type Favorites struct {
	api  *api.Client
	list *List[domain.Favorite]
}

func NewFavorites(a *api.Client) *Favorites {
	return &Favorites{api: a, list: NewList[domain.Favorite](domain.DefaultPageSize, a.Favorites)}
}

func (v *Favorites) Load(ctx context.Context) error { return v.list.Load(ctx) }

func (v *Favorites) NextPage(ctx context.Context) error { return v.list.NextPage(ctx) }

func (v *Favorites) Remove(ctx context.Context, projectID int64) error {
	if err := v.api.RemoveFavorite(ctx, projectID); err != nil {
		return err
	}
	return v.list.Load(ctx)
}

func (v *Favorites) Snapshot() ListState[domain.Favorite] { return v.list.Snapshot() }

type Invoices struct {
	list *List[domain.Invoice]
}

func NewInvoices(a *api.Client) *Invoices {
	return &Invoices{list: NewList[domain.Invoice](domain.DefaultPageSize, a.Invoices)}
}

func (v *Invoices) Load(ctx context.Context) error { return v.list.Load(ctx) }

func (v *Invoices) NextPage(ctx context.Context) error { return v.list.NextPage(ctx) }

func (v *Invoices) Snapshot() ListState[domain.Invoice] { return v.list.Snapshot() }

type ReviewsState struct {
	ProjectID int64                    `json:"project_id,omitempty"`
	List      ListState[domain.Review] `json:"list"`
}

// Reviews lists the user's own reviews, or a project's when one is set.
type Reviews struct {
	api *api.Client

	mu        sync.RWMutex
	projectID int64
	list      *List[domain.Review]
}

func NewReviews(a *api.Client) *Reviews {
	v := &Reviews{api: a}
	v.list = v.newList(0)
	return v
}

func (v *Reviews) newList(projectID int64) *List[domain.Review] {
	return NewList[domain.Review](domain.DefaultPageSize, func(ctx context.Context, q domain.PageQuery) (*domain.Page[domain.Review], error) {
		if projectID > 0 {
			return v.api.ProjectReviews(ctx, projectID, q)
		}
		return v.api.MyReviews(ctx, q)
	})
}

func (v *Reviews) Load(ctx context.Context) error {
	v.mu.RLock()
	list := v.list
	v.mu.RUnlock()
	return list.Load(ctx)
}

// SetProject switches to a project's reviews; zero means the user's own.
func (v *Reviews) SetProject(ctx context.Context, projectID int64) error {
	if projectID < 0 {
		return errors.New("invalid project id")
	}
	next := v.newList(projectID)
	if err := next.Load(ctx); err != nil {
		return err
	}
	v.mu.Lock()
	v.projectID = projectID
	v.list = next
	v.mu.Unlock()
	return nil
}

func (v *Reviews) Snapshot() ReviewsState {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return ReviewsState{ProjectID: v.projectID, List: v.list.Snapshot()}
}
