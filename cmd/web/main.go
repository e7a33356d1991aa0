package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labmall/storefront/config"
	"github.com/labmall/storefront/internal/bootstrap"
	"github.com/labmall/storefront/internal/logging"
	"github.com/labmall/storefront/internal/shell"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logging.Setup(cfg.App.LogLevel, cfg.IsProduction())
	bootstrap.SetGinMode(cfg.App.Environment)

	notes := shell.NewNotifications(0)
	app, err := bootstrap.NewApp(context.Background(), cfg, bootstrap.AppOptions{
		Policy:   shell.PolicyReload,
		Notifier: notes,
	})
	if err != nil {
		log.Fatalf("bootstrap: %v", err)
	}
	defer func() {
		if err := app.Close(); err != nil {
			log.Printf("close: %v", err)
		}
	}()

	router := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName:   "storefront-web",
		Version:       cfg.App.Version,
		CORSOrigins:   cfg.Server.CORSOrigins,
		App:           app,
		Notifications: notes,
	})

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.API.Timeout + 10*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logging.Base().Infof("storefront web shell listening on %s (backend %s)", server.Addr, cfg.BaseURL())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}
