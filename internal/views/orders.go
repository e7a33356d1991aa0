package views

import (
	"context"
	"errors"
	"sync"

	"github.com/labmall/storefront/internal/api"
	"github.com/labmall/storefront/internal/domain"
)

// OrderTabs are the status filters offered on the order list, "" being all.
var OrderTabs = []string{
	"",
	domain.OrderPendingPayment,
	domain.OrderPendingSample,
	domain.OrderTesting,
	domain.OrderCompleted,
}

type OrdersState struct {
	Status string                  `json:"status"`
	List   ListState[domain.Order] `json:"list"`
}

type Orders struct {
	api *api.Client

	mu     sync.RWMutex
	status string
	list   *List[domain.Order]
}

func NewOrders(a *api.Client) *Orders {
	v := &Orders{api: a}
	v.list = v.newList("")
	return v
}

func (v *Orders) newList(status string) *List[domain.Order] {
	return NewList[domain.Order](domain.DefaultPageSize, func(ctx context.Context, q domain.PageQuery) (*domain.Page[domain.Order], error) {
		return v.api.Orders(ctx, api.OrderFilter{PageQuery: q, Status: status})
	})
}

func (v *Orders) current() *List[domain.Order] {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.list
}

func (v *Orders) Load(ctx context.Context) error { return v.current().Load(ctx) }

func (v *Orders) NextPage(ctx context.Context) error { return v.current().NextPage(ctx) }

// SetStatus switches the status tab; the previous tab stays on failure.
func (v *Orders) SetStatus(ctx context.Context, status string) error {
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

// Cancel cancels an order and refreshes the current tab.
func (v *Orders) Cancel(ctx context.Context, orderID int64, reason string) error {
	if err := v.api.CancelOrder(ctx, orderID, reason); err != nil {
		return err
	}
	return v.Load(ctx)
}

func (v *Orders) Snapshot() OrdersState {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return OrdersState{Status: v.status, List: v.list.Snapshot()}
}

type OrderDetail struct {
	api *api.Client

	mu    sync.RWMutex
	order *domain.OrderDetail
}

func NewOrderDetail(a *api.Client) *OrderDetail {
	return &OrderDetail{api: a}
}

func (v *OrderDetail) Open(ctx context.Context, orderID int64) error {
	if orderID <= 0 {
		return errors.New("order id is required")
	}
	o, err := v.api.Order(ctx, orderID)
	if err != nil {
		return err
	}
	v.mu.Lock()
	v.order = o
	v.mu.Unlock()
	return nil
}

// ConfirmReceipt confirms delivery of the open order and reloads it.
func (v *OrderDetail) ConfirmReceipt(ctx context.Context) error {
	o := v.Snapshot()
	if o == nil {
		return errors.New("no order is open")
	}
	if err := v.api.ConfirmReceipt(ctx, o.ID); err != nil {
		return err
	}
	return v.Open(ctx, o.ID)
}

func (v *OrderDetail) Snapshot() *domain.OrderDetail {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.order
}

// SampleTrack follows the sample of one order through the lab.
type SampleTrack struct {
	api *api.Client

	mu     sync.RWMutex
	status *domain.SampleStatus
}

func NewSampleTrack(a *api.Client) *SampleTrack {
	return &SampleTrack{api: a}
}

func (v *SampleTrack) Open(ctx context.Context, orderID int64) error {
	if orderID <= 0 {
		return errors.New("order id is required")
	}
	st, err := v.api.SampleStatus(ctx, orderID)
	if err != nil {
		return err
	}
	v.mu.Lock()
	v.status = st
	v.mu.Unlock()
	return nil
}

func (v *SampleTrack) Snapshot() *domain.SampleStatus {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.status
}

type Reports struct {
	api  *api.Client
	list *List[domain.Report]
}

func NewReports(a *api.Client) *Reports {
	return &Reports{api: a, list: NewList[domain.Report](domain.DefaultPageSize, a.Reports)}
}

func (v *Reports) Load(ctx context.Context) error { return v.list.Load(ctx) }

func (v *Reports) NextPage(ctx context.Context) error { return v.list.NextPage(ctx) }

func (v *Reports) Download(ctx context.Context, orderID int64) (*domain.ReportFile, error) {
	return v.api.DownloadReport(ctx, orderID)
}

func (v *Reports) Snapshot() ListState[domain.Report] { return v.list.Snapshot() }
