// Command storefront drives the storefront shell from a terminal. Each
// invocation runs one subcommand against the persisted session.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/labmall/storefront/config"
	"github.com/labmall/storefront/internal/bootstrap"
	"github.com/labmall/storefront/internal/client"
	"github.com/labmall/storefront/internal/logging"
	"github.com/labmall/storefront/internal/shell"
)

type env struct {
	app    *bootstrap.App
	stdout io.Writer
	stderr io.Writer
}

type command struct {
	usage string
	run   func(ctx context.Context, e *env, args []string) error
}

var commands = map[string]command{
	"sms":           {"sms -phone 13800000000", runSMS},
	"login":         {"login -phone 13800000000 -code 123456", runLogin},
	"logout":        {"logout", runLogout},
	"whoami":        {"whoami", runWhoami},
	"home":          {"home", runHome},
	"projects":      {"projects [-page n] [-category id] [-keyword text]", runProjects},
	"project":       {"project -id n", runProject},
	"orders":        {"orders [-status s] [-page n]", runOrders},
	"order":         {"order -id n", runOrder},
	"book":          {"book -project n -sample name [-qty n] [-address id] [-coupon id] [-urgent] [-pay method]", runBook},
	"pay":           {"pay -order n [-method balance|alipay|wechat]", runPay},
	"cancel":        {"cancel -order n [-reason text]", runCancel},
	"addresses":     {"addresses", runAddresses},
	"coupons":       {"coupons [-status unused|used|expired]", runCoupons},
	"balance":       {"balance", runBalance},
	"chat":          {"chat [-send text] [-follow]", runChat},
	"lottery":       {"lottery [-draw]", runLottery},
	"sample":        {"sample -order n", runSample},
	"report":        {"report -order n [-out file]", runReport},
	"announcements": {"announcements", runAnnouncements},
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" {
		usage(stderr)
		return 2
	}
	cmd, ok := commands[args[0]]
	if !ok {
		fmt.Fprintf(stderr, "unknown command %q\n\n", args[0])
		usage(stderr)
		return 2
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "config: %v\n", err)
		return 1
	}
	logging.Setup(cfg.App.LogLevel, cfg.IsProduction())
	logging.SetOutput(stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.NewApp(ctx, cfg, bootstrap.AppOptions{
		Policy:   shell.PolicyRedirectLogin,
		Notifier: stderrNotifier(stderr),
	})
	if err != nil {
		fmt.Fprintf(stderr, "bootstrap: %v\n", err)
		return 1
	}
	defer app.Close()

	e := &env{app: app, stdout: stdout, stderr: stderr}
	if err := cmd.run(ctx, e, args[1:]); err != nil {
		return e.report(err)
	}
	return 0
}

// report prints err unless the pipeline already told the user about it.
func (e *env) report(err error) int {
	switch {
	case errors.Is(err, shell.ErrLoginRequired), client.IsUnauthorized(err):
		fmt.Fprintln(e.stderr, "not signed in: run `storefront sms` and `storefront login` first")
	case shell.IsValidation(err):
	case errors.Is(err, errUsage):
	default:
		var be *client.BusinessError
		var se *client.StatusError
		var te *client.TransportError
		if !errors.As(err, &be) && !errors.As(err, &se) && !errors.As(err, &te) {
			fmt.Fprintf(e.stderr, "error: %v\n", err)
		}
	}
	return 1
}

func (e *env) print(v any) error {
	enc := json.NewEncoder(e.stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

func stderrNotifier(w io.Writer) client.Notifier {
	return client.NotifierFunc(func(_ context.Context, n client.Notification) {
		fmt.Fprintf(w, "[%s] %s\n", n.Level, n.Message)
	})
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "usage: storefront <command> [flags]")
	fmt.Fprintln(w)
	names := make([]string, 0, len(commands))
	for n := range commands {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		fmt.Fprintf(w, "  %s\n", commands[n].usage)
	}
}
