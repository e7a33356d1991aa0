package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/labmall/storefront/internal/api"
	"github.com/labmall/storefront/internal/domain"
	"github.com/labmall/storefront/internal/session"
	"github.com/labmall/storefront/internal/shell"
	"github.com/labmall/storefront/internal/views"
)

var errUsage = errors.New("usage")

func (e *env) flags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(e.stderr)
	return fs
}

func parse(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	return nil
}

func (e *env) need(fs *flag.FlagSet, ok bool, what string) error {
	if ok {
		return nil
	}
	fmt.Fprintf(e.stderr, "%s: %s is required\n", fs.Name(), what)
	fs.Usage()
	return errUsage
}

func (e *env) requireLogin() error {
	if !e.app.Session.IsAuthenticated() {
		return shell.ErrLoginRequired
	}
	return nil
}

// open navigates the shell to a view and prints what it loaded.
func (e *env) open(ctx context.Context, name string, p views.Params) error {
	data, err := e.app.Shell.Navigate(ctx, name, p)
	if err != nil {
		return err
	}
	return e.print(data)
}

func runSMS(ctx context.Context, e *env, args []string) error {
	fs := e.flags("sms")
	phone := fs.String("phone", "", "11-digit phone number")
	if err := parse(fs, args); err != nil {
		return err
	}

	code, err := e.app.Shell.SendSMS(ctx, *phone)
	if err != nil {
		return err
	}
	out := map[string]any{"sent": true}
	if code != "" {
		out["dev_code"] = code
	}
	return e.print(out)
}

func runLogin(ctx context.Context, e *env, args []string) error {
	fs := e.flags("login")
	phone := fs.String("phone", "", "11-digit phone number")
	code := fs.String("code", "", "SMS code")
	if err := parse(fs, args); err != nil {
		return err
	}

	user, err := e.app.Shell.Login(ctx, *phone, *code)
	if err != nil {
		return err
	}
	return e.print(user)
}

func runLogout(ctx context.Context, e *env, _ []string) error {
	return e.app.Shell.Logout(ctx)
}

type whoami struct {
	User      *domain.User `json:"user"`
	UserID    int64        `json:"token_user_id,omitempty"`
	ExpiresAt *time.Time   `json:"token_expires_at,omitempty"`
	Expired   bool         `json:"token_expired"`
}

func runWhoami(_ context.Context, e *env, _ []string) error {
	if err := e.requireLogin(); err != nil {
		return err
	}
	out := whoami{User: e.app.Session.User()}
	if claims, err := session.ParseClaims(e.app.Session.Token()); err == nil {
		out.UserID = claims.UserID
		if !claims.ExpiresAt.IsZero() {
			exp := claims.ExpiresAt
			out.ExpiresAt = &exp
		}
		out.Expired = claims.Expired(time.Now())
	}
	return e.print(out)
}

func runHome(ctx context.Context, e *env, _ []string) error {
	return e.open(ctx, views.NameHome, views.Params{})
}

func runProjects(ctx context.Context, e *env, args []string) error {
	fs := e.flags("projects")
	page := fs.Int("page", 1, "page number")
	category := fs.Int64("category", 0, "category id")
	keyword := fs.String("keyword", "", "search keyword")
	if err := parse(fs, args); err != nil {
		return err
	}
	return e.open(ctx, views.NameProjects, views.Params{Page: *page, CategoryID: *category, Keyword: *keyword})
}

func runProject(ctx context.Context, e *env, args []string) error {
	fs := e.flags("project")
	id := fs.Int64("id", 0, "project id")
	if err := parse(fs, args); err != nil {
		return err
	}
	if err := e.need(fs, *id > 0, "-id"); err != nil {
		return err
	}
	return e.open(ctx, views.NameProject, views.Params{ID: *id})
}

func runOrders(ctx context.Context, e *env, args []string) error {
	fs := e.flags("orders")
	status := fs.String("status", "", "order status filter")
	page := fs.Int("page", 1, "page number")
	if err := parse(fs, args); err != nil {
		return err
	}
	if _, err := e.app.Shell.Navigate(ctx, views.NameOrders, views.Params{Status: *status}); err != nil {
		return err
	}
	orders := e.app.Shell.Views().Orders
	for p := 1; p < *page && orders.Snapshot().List.HasMore; p++ {
		if err := orders.NextPage(ctx); err != nil {
			return err
		}
	}
	return e.print(orders.Snapshot())
}

func runOrder(ctx context.Context, e *env, args []string) error {
	fs := e.flags("order")
	id := fs.Int64("id", 0, "order id")
	if err := parse(fs, args); err != nil {
		return err
	}
	if err := e.need(fs, *id > 0, "-id"); err != nil {
		return err
	}
	return e.open(ctx, views.NameOrder, views.Params{ID: *id})
}

func runBook(ctx context.Context, e *env, args []string) error {
	fs := e.flags("book")
	projectID := fs.Int64("project", 0, "project id")
	sample := fs.String("sample", "", "sample name")
	qty := fs.Int("qty", 1, "sample count")
	address := fs.Int64("address", 0, "address id (default address when omitted)")
	coupon := fs.Int64("coupon", 0, "coupon id")
	urgent := fs.Bool("urgent", false, "urgent testing")
	shipping := fs.String("shipping", "", "shipping method")
	remark := fs.String("remark", "", "remark")
	pay := fs.String("pay", "", "pay right away with balance, alipay or wechat")
	if err := parse(fs, args); err != nil {
		return err
	}
	if err := e.need(fs, *projectID > 0, "-project"); err != nil {
		return err
	}

	if _, err := e.app.Shell.OpenBooking(ctx, *projectID); err != nil {
		return err
	}
	in := shell.BookingInput{
		SampleName:     *sample,
		Quantity:       *qty,
		ShippingMethod: *shipping,
		IsUrgent:       *urgent,
		Remark:         *remark,
	}
	if *address > 0 {
		in.AddressID = address
	}
	if *coupon > 0 {
		in.CouponID = coupon
	}

	order, err := e.app.Shell.SubmitBooking(ctx, in)
	if err != nil {
		return err
	}
	out := map[string]any{"order": order}
	if *pay != "" {
		res, err := e.app.Shell.SubmitPayment(ctx, *pay)
		if err != nil {
			return err
		}
		out["payment"] = res
	}
	return e.print(out)
}

func runPay(ctx context.Context, e *env, args []string) error {
	fs := e.flags("pay")
	orderID := fs.Int64("order", 0, "order id")
	method := fs.String("method", domain.PayBalance, "balance, alipay or wechat")
	if err := parse(fs, args); err != nil {
		return err
	}
	if err := e.need(fs, *orderID > 0, "-order"); err != nil {
		return err
	}

	if err := e.app.Shell.OpenPaymentFor(ctx, *orderID); err != nil {
		return err
	}
	res, err := e.app.Shell.SubmitPayment(ctx, *method)
	if err != nil {
		return err
	}
	return e.print(res)
}

func runCancel(ctx context.Context, e *env, args []string) error {
	fs := e.flags("cancel")
	orderID := fs.Int64("order", 0, "order id")
	reason := fs.String("reason", api.DefaultCancelReason, "cancel reason")
	if err := parse(fs, args); err != nil {
		return err
	}
	if err := e.need(fs, *orderID > 0, "-order"); err != nil {
		return err
	}
	if err := e.requireLogin(); err != nil {
		return err
	}

	if err := e.app.Shell.Views().Orders.Cancel(ctx, *orderID, *reason); err != nil {
		return err
	}
	return e.print(map[string]any{"cancelled": *orderID})
}

func runAddresses(ctx context.Context, e *env, _ []string) error {
	return e.open(ctx, views.NameAddresses, views.Params{})
}

func runCoupons(ctx context.Context, e *env, args []string) error {
	fs := e.flags("coupons")
	status := fs.String("status", api.CouponUnused, "unused, used or expired")
	if err := parse(fs, args); err != nil {
		return err
	}
	return e.open(ctx, views.NameCoupons, views.Params{Status: *status})
}

func runBalance(ctx context.Context, e *env, _ []string) error {
	if err := e.requireLogin(); err != nil {
		return err
	}
	b, err := e.app.API.Balance(ctx)
	if err != nil {
		return err
	}
	return e.print(b)
}

func runChat(ctx context.Context, e *env, args []string) error {
	fs := e.flags("chat")
	send := fs.String("send", "", "message to send")
	follow := fs.Bool("follow", false, "keep polling for new messages")
	if err := parse(fs, args); err != nil {
		return err
	}

	if _, err := e.app.Shell.Navigate(ctx, views.NameChat, views.Params{}); err != nil {
		return err
	}
	chat := e.app.Shell.Views().Chat
	if *send != "" {
		if err := chat.Send(ctx, *send); err != nil {
			return err
		}
	}
	if err := e.print(chat.Snapshot()); err != nil {
		return err
	}
	if !*follow {
		return nil
	}

	chat.OnUpdate(func(msgs []domain.ChatMessage) {
		_ = e.print(msgs)
	})
	if err := chat.StartPolling(e.app.Config.API.ChatPollInterval); err != nil {
		return err
	}
	defer chat.StopPolling()
	<-ctx.Done()
	return nil
}

func runLottery(ctx context.Context, e *env, args []string) error {
	fs := e.flags("lottery")
	draw := fs.Bool("draw", false, "draw once")
	if err := parse(fs, args); err != nil {
		return err
	}

	if _, err := e.app.Shell.Navigate(ctx, views.NameLottery, views.Params{}); err != nil {
		return err
	}
	lottery := e.app.Shell.Views().Lottery
	if *draw {
		if _, err := lottery.Draw(ctx); err != nil {
			return err
		}
	}
	return e.print(lottery.Snapshot())
}

func runSample(ctx context.Context, e *env, args []string) error {
	fs := e.flags("sample")
	orderID := fs.Int64("order", 0, "order id")
	if err := parse(fs, args); err != nil {
		return err
	}
	if err := e.need(fs, *orderID > 0, "-order"); err != nil {
		return err
	}
	return e.open(ctx, views.NameSample, views.Params{ID: *orderID})
}

func runReport(ctx context.Context, e *env, args []string) error {
	fs := e.flags("report")
	orderID := fs.Int64("order", 0, "order id")
	out := fs.String("out", "", "output file (default: name sent by the server)")
	if err := parse(fs, args); err != nil {
		return err
	}
	if err := e.need(fs, *orderID > 0, "-order"); err != nil {
		return err
	}
	if err := e.requireLogin(); err != nil {
		return err
	}

	file, err := e.app.Shell.Views().Reports.Download(ctx, *orderID)
	if err != nil {
		return err
	}
	path := *out
	if path == "" {
		path = file.FileName
	}
	if err := os.WriteFile(path, file.Body, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return e.print(map[string]any{
		"file":         path,
		"bytes":        len(file.Body),
		"content_type": file.ContentType,
	})
}

func runAnnouncements(ctx context.Context, e *env, _ []string) error {
	return e.open(ctx, views.NameAnnouncements, views.Params{})
}
