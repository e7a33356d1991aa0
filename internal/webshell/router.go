// Package webshell serves one storefront shell over HTTP for a local
// browser front end.
package webshell

import (
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/labmall/storefront/internal/client"
	"github.com/labmall/storefront/internal/session"
	"github.com/labmall/storefront/internal/shell"
)

type Deps struct {
	ServiceName   string
	Version       string
	CORSOrigins   []string
	Shell         *shell.Shell
	Session       *session.Store
	Client        *client.Client
	DB            *pgxpool.Pool
	Notifications *shell.Notifications
}

func NewRouter(dep Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(cors.New(corsConfig(dep.CORSOrigins)))

	NewHealthHandler(dep.ServiceName, dep.Version, dep.Session, dep.DB).RegisterRoutes(r)
	if dep.Client != nil {
		r.GET("/metrics", gin.WrapH(dep.Client.MetricsHandler()))
	}

	h := NewHandler(dep.Shell, dep.Notifications)
	h.Register(r.Group("/shell"))
	h.RegisterViews(r.Group("/views"))

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", requestIDHeader},
		ExposeHeaders: []string{requestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}
