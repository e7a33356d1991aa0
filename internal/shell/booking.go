package shell

import (
	"context"
	"fmt"
	"math/big"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/labmall/storefront/internal/api"
	"github.com/labmall/storefront/internal/client"
	"github.com/labmall/storefront/internal/domain"
	"github.com/labmall/storefront/internal/views"
)

var errNoBooking = fmt.Errorf("booking: %w", ErrDialogClosed)

// BookingForm is the state of the booking dialog.
type BookingForm struct {
	ProjectID      int64               `json:"project_id"`
	ProjectName    string              `json:"project_name"`
	UnitPrice      domain.Money        `json:"unit_price"`
	SampleName     string              `json:"sample_name"`
	Quantity       int                 `json:"quantity"`
	ShippingMethod string              `json:"shipping_method,omitempty"`
	IsUrgent       bool                `json:"is_urgent"`
	Remark         string              `json:"remark,omitempty"`
	AddressID      *int64              `json:"address_id,omitempty"`
	CouponID       *int64              `json:"coupon_id,omitempty"`
	Addresses      []domain.Address    `json:"addresses"`
	Coupons        []domain.UserCoupon `json:"coupons"`
	Estimate       string              `json:"estimate"`
}

// BookingInput is what the user filled in. A nil AddressID keeps the
// preselected address.
type BookingInput struct {
	SampleName     string `json:"sample_name"`
	Quantity       int    `json:"quantity"`
	ShippingMethod string `json:"shipping_method"`
	IsUrgent       bool   `json:"is_urgent"`
	Remark         string `json:"remark"`
	AddressID      *int64 `json:"address_id"`
	CouponID       *int64 `json:"coupon_id"`
}

type PaymentForm struct {
	Order   domain.CreatedOrder `json:"order"`
	Method  string              `json:"method"`
	Balance *domain.Balance     `json:"balance,omitempty"`
}

// PaymentOutcome says how a payment ended. Gateway payments finish
// outside the client at PayURL.
type PaymentOutcome struct {
	Method string `json:"method"`
	Paid   bool   `json:"paid"`
	PayURL string `json:"pay_url,omitempty"`
}

// OpenBooking opens the booking dialog for a project. Addresses and coupons
// are fetched together; if either fails the dialog opens with neither.
func (s *Shell) OpenBooking(ctx context.Context, projectID int64) (*BookingForm, error) {
	if err := s.requireLogin(); err != nil {
		return nil, err
	}
	project, err := s.api.Project(ctx, projectID)
	if err != nil {
		return nil, err
	}

	var (
		addresses []domain.Address
		coupons   []domain.UserCoupon
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		addresses, err = s.api.Addresses(gctx)
		return err
	})
	g.Go(func() (err error) {
		coupons, err = s.api.AvailableCoupons(gctx, projectID)
		return err
	})
	if err := g.Wait(); err != nil {
		// A 401 has already reset the shell; do not reopen the dialog.
		if client.IsUnauthorized(err) || !s.session.IsAuthenticated() {
			return nil, err
		}
		addresses, coupons = nil, nil
	}

	form := &BookingForm{
		ProjectID:   project.ID,
		ProjectName: project.Name,
		UnitPrice:   project.CurrentPrice,
		Quantity:    1,
		Addresses:   nonNil(addresses),
		Coupons:     nonNil(coupons),
	}
	if def := api.DefaultAddress(addresses); def != nil {
		id := def.ID
		form.AddressID = &id
	}
	form.Estimate = estimate(form)

	s.mu.Lock()
	s.state.CurrentProjectID = projectID
	s.state.Booking = form
	s.state.Modals.Booking = true
	s.mu.Unlock()
	return form, nil
}

// SubmitBooking creates the order and moves straight on to payment.
func (s *Shell) SubmitBooking(ctx context.Context, in BookingInput) (*domain.CreatedOrder, error) {
	s.mu.Lock()
	open := s.state.Booking
	s.mu.Unlock()
	if open == nil {
		return nil, errNoBooking
	}

	form := *open
	form.SampleName = strings.TrimSpace(in.SampleName)
	form.Remark = in.Remark
	form.IsUrgent = in.IsUrgent
	form.ShippingMethod = in.ShippingMethod
	form.CouponID = in.CouponID
	if in.AddressID != nil {
		form.AddressID = in.AddressID
	}
	form.Quantity = in.Quantity
	if form.Quantity == 0 {
		form.Quantity = 1
	}

	if form.SampleName == "" {
		return nil, s.invalid(ctx, "sample_name", msgSampleRequired)
	}
	if form.AddressID == nil || *form.AddressID <= 0 {
		return nil, s.invalid(ctx, "address_id", msgAddressRequired)
	}
	if form.Quantity < 1 {
		return nil, s.invalid(ctx, "quantity", msgQuantityInvalid)
	}

	order, err := s.api.CreateOrder(ctx, domain.OrderCreate{
		ProjectID:      form.ProjectID,
		SampleName:     form.SampleName,
		Quantity:       form.Quantity,
		ShippingMethod: form.ShippingMethod,
		AddressID:      form.AddressID,
		CouponID:       form.CouponID,
		IsUrgent:       form.IsUrgent,
		Remark:         form.Remark,
	})
	if err != nil {
		return nil, err
	}
	s.notify(ctx, client.LevelSuccess, msgOrderCreated)

	s.mu.Lock()
	s.state.Booking = nil
	s.state.Modals.Booking = false
	s.mu.Unlock()

	if err := s.OpenPayment(ctx, *order); err != nil {
		return order, err
	}
	return order, nil
}

// Quote asks the backend to price the open booking with the given input.
func (s *Shell) Quote(ctx context.Context, in BookingInput) (*domain.OrderQuote, error) {
	s.mu.Lock()
	open := s.state.Booking
	s.mu.Unlock()
	if open == nil {
		return nil, errNoBooking
	}
	qty := in.Quantity
	if qty < 1 {
		qty = 1
	}
	return s.api.CalculateOrder(ctx, domain.OrderCalculate{
		ProjectID:      open.ProjectID,
		SampleCount:    qty,
		IsUrgent:       in.IsUrgent,
		ShippingMethod: in.ShippingMethod,
		CouponID:       in.CouponID,
	})
}

// OpenPayment opens the payment dialog for order, defaulting to balance
// payment, and refreshes the balance shown in it.
func (s *Shell) OpenPayment(ctx context.Context, order domain.CreatedOrder) error {
	if err := s.requireLogin(); err != nil {
		return err
	}
	form := &PaymentForm{Order: order, Method: domain.PayBalance}
	b, err := s.api.Balance(ctx)
	switch {
	case err == nil:
		form.Balance = b
	case client.IsUnauthorized(err) || !s.session.IsAuthenticated():
		return err
	}

	s.mu.Lock()
	s.state.CurrentOrderID = order.ID
	s.state.Payment = form
	s.state.Modals.Payment = true
	s.mu.Unlock()
	return nil
}

// OpenPaymentFor opens the payment dialog for an existing order.
func (s *Shell) OpenPaymentFor(ctx context.Context, orderID int64) error {
	if err := s.requireLogin(); err != nil {
		return err
	}
	o, err := s.api.Order(ctx, orderID)
	if err != nil {
		return err
	}
	return s.OpenPayment(ctx, domain.CreatedOrder{
		ID:       o.ID,
		OrderNo:  o.OrderNo,
		TotalFee: o.TotalFee,
		Status:   o.Status,
	})
}

// SubmitPayment pays the open order. Balance payments settle at once and
// switch to the order list; gateway payments return the URL to pay at.
func (s *Shell) SubmitPayment(ctx context.Context, method string) (*PaymentOutcome, error) {
	s.mu.Lock()
	form := s.state.Payment
	s.mu.Unlock()
	if form == nil {
		return nil, fmt.Errorf("payment: %w", ErrDialogClosed)
	}
	if method == "" {
		method = form.Method
	}
	if !domain.ValidPayMethod(method) {
		return nil, s.invalid(ctx, "method", msgPayMethodInvalid)
	}

	if method == domain.PayBalance {
		if _, err := s.api.PayWithBalance(ctx, form.Order.ID); err != nil {
			return nil, err
		}
		s.notify(ctx, client.LevelSuccess, msgPaid)
		s.mu.Lock()
		s.state.Payment = nil
		s.state.Modals.Payment = false
		s.state.ActiveView = views.NameOrders
		s.mu.Unlock()
		return &PaymentOutcome{Method: method, Paid: true}, nil
	}

	res, err := s.api.CreatePayment(ctx, form.Order.ID, method)
	if err != nil {
		return nil, err
	}
	s.notify(ctx, client.LevelInfo, msgPayInNewWindow)
	s.mu.Lock()
	s.state.Payment = nil
	s.state.Modals.Payment = false
	s.mu.Unlock()
	return &PaymentOutcome{Method: method, PayURL: res.PayURL}, nil
}

// estimate is unit price times quantity less the chosen coupon, floored at
// zero and rendered with two decimals.
func estimate(f *BookingForm) string {
	total, ok := new(big.Rat).SetString(f.UnitPrice.String())
	if !ok {
		return ""
	}
	total.Mul(total, big.NewRat(int64(f.Quantity), 1))
	if f.CouponID != nil {
		for _, c := range f.Coupons {
			if c.ID != *f.CouponID {
				continue
			}
			if d, ok := new(big.Rat).SetString(c.DiscountValue.String()); ok {
				total.Sub(total, d)
			}
		}
	}
	if total.Sign() < 0 {
		total.SetInt64(0)
	}
	return total.FloatString(2)
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
