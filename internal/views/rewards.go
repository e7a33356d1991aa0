package views

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/labmall/storefront/internal/api"
	"github.com/labmall/storefront/internal/domain"
)

type PointsState struct {
	Goods   ListState[domain.PointsGoods]  `json:"goods"`
	Records ListState[domain.PointsRecord] `json:"records"`
}

type Points struct {
	api     *api.Client
	goods   *List[domain.PointsGoods]
	records *List[domain.PointsRecord]
}

func NewPoints(a *api.Client) *Points {
	return &Points{
		api:     a,
		goods:   NewList[domain.PointsGoods](domain.DefaultPageSize, a.PointsGoods),
		records: NewList[domain.PointsRecord](domain.DefaultPageSize, a.PointsRecords),
	}
}

func (v *Points) Load(ctx context.Context) error {
	var g errgroup.Group
	g.Go(func() error { return v.goods.Load(ctx) })
	g.Go(func() error { return v.records.Load(ctx) })
	return g.Wait()
}

// Exchange redeems one unit of goodsID and reloads both lists.
func (v *Points) Exchange(ctx context.Context, goodsID int64) error {
	if err := v.api.ExchangePoints(ctx, goodsID, 1); err != nil {
		return err
	}
	return v.Load(ctx)
}

func (v *Points) Snapshot() PointsState {
	return PointsState{Goods: v.goods.Snapshot(), Records: v.records.Snapshot()}
}

type InvitesState struct {
	Group   *domain.Group         `json:"group"`
	Stats   *domain.InviteStats   `json:"stats"`
	Records []domain.InviteRecord `json:"records"`
}

// Invites shows the user's group, invite stats and records. The three are
// fetched as one unit: if any fails nothing changes.
type Invites struct {
	api *api.Client

	mu    sync.RWMutex
	state InvitesState
}

func NewInvites(a *api.Client) *Invites {
	return &Invites{api: a}
}

func (v *Invites) Load(ctx context.Context) error {
	var next InvitesState
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		next.Group, err = v.api.MyGroup(gctx)
		return err
	})
	g.Go(func() (err error) {
		next.Stats, err = v.api.InviteStats(gctx)
		return err
	})
	g.Go(func() error {
		page, err := v.api.InviteRecords(gctx, domain.PageQuery{Page: 1})
		if err != nil {
			return err
		}
		next.Records = page.Entries()
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	v.mu.Lock()
	v.state = next
	v.mu.Unlock()
	return nil
}

func (v *Invites) CreateGroup(ctx context.Context, name string) error {
	if _, err := v.api.CreateGroup(ctx, name); err != nil {
		return err
	}
	return v.Load(ctx)
}

func (v *Invites) Withdraw(ctx context.Context, amount domain.Money) error {
	if f, err := amount.Float64(); err != nil || f <= 0 {
		return domain.ErrInvalidAmount
	}
	if err := v.api.ApplyWithdraw(ctx, domain.WithdrawRequest{Amount: amount}); err != nil {
		return err
	}
	return v.Load(ctx)
}

func (v *Invites) Snapshot() InvitesState {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.state
}

type LotteryState struct {
	Info    *domain.LotteryInfo    `json:"info"`
	Records []domain.LotteryRecord `json:"records"`
	Last    *domain.LotteryResult  `json:"last,omitempty"`
}

// Lottery loads prize info and the draw history together.
type Lottery struct {
	api *api.Client

	mu    sync.RWMutex
	state LotteryState
}

func NewLottery(a *api.Client) *Lottery {
	return &Lottery{api: a}
}

func (v *Lottery) Load(ctx context.Context) error {
	var (
		info    *domain.LotteryInfo
		records []domain.LotteryRecord
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		info, err = v.api.LotteryInfo(gctx)
		return err
	})
	g.Go(func() error {
		page, err := v.api.LotteryRecords(gctx, domain.PageQuery{Page: 1})
		if err != nil {
			return err
		}
		records = page.Entries()
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	v.mu.Lock()
	v.state.Info = info
	v.state.Records = records
	v.mu.Unlock()
	return nil
}

// Draw spends one chance and refreshes info and history.
func (v *Lottery) Draw(ctx context.Context) (*domain.LotteryResult, error) {
	res, err := v.api.Draw(ctx)
	if err != nil {
		return nil, err
	}
	v.mu.Lock()
	v.state.Last = res
	v.mu.Unlock()
	_ = v.Load(ctx)
	return res, nil
}

func (v *Lottery) Snapshot() LotteryState {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.state
}
