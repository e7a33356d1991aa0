package bootstrap

import (
	"github.com/gin-gonic/gin"

	"github.com/labmall/storefront/internal/shell"
	"github.com/labmall/storefront/internal/webshell"
)

type RouterDeps struct {
	ServiceName   string
	Version       string
	CORSOrigins   []string
	App           *App
	Notifications *shell.Notifications
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	return webshell.NewRouter(webshell.Deps{
		ServiceName:   dep.ServiceName,
		Version:       dep.Version,
		CORSOrigins:   dep.CORSOrigins,
		Shell:         dep.App.Shell,
		Session:       dep.App.Session,
		Client:        dep.App.Client,
		DB:            dep.App.Backend.DB,
		Notifications: dep.Notifications,
	})
}
