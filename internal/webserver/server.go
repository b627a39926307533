// Package webserver bootstraps the echo server shared by the storefront and
// admin APIs and carries the request-scoped injection of the application
// handle.
package webserver

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/prayani09/ShriyashWork/config"
	"github.com/prayani09/ShriyashWork/internal/app"
	"github.com/prayani09/ShriyashWork/internal/catalog"
	"github.com/prayani09/ShriyashWork/internal/store"
)

const (
	configContextKey = "shriyash.config"
	storeContextKey  = "shriyash.store"
	viewContextKey   = "shriyash.view"
)

var server *WebServer

type WebServer struct {
	root *echo.Echo
	app  *app.Application
}

type payloadValidator struct {
	validate *validator.Validate
}

func (p *payloadValidator) Validate(i interface{}) error {
	if err := p.validate.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

// NewValidator builds the payload validator used by the server; handler
// tests attach it to their own echo instance.
func NewValidator() echo.Validator {
	return &payloadValidator{validate: validator.New()}
}

// Init builds the package server. The application handle is injected into
// every request context so handlers reach the store and catalog view
// without package-level state of their own.
func Init(a *app.Application) *WebServer {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = NewValidator()

	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
	}))
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			Inject(c, a.Config(), a.Store(), a.CatalogView())
			return next(c)
		}
	})
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:    true,
		LogStatus: true,
		LogMethod: true,
		LogError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			if v.Error != nil {
				zap.L().Warn("request",
					zap.String("method", v.Method),
					zap.String("uri", v.URI),
					zap.Int("status", v.Status),
					zap.Error(v.Error),
				)
				return nil
			}
			zap.L().Info("request",
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
			)
			return nil
		},
	}))

	server = &WebServer{root: e, app: a}
	return server
}

// Listen starts the server and blocks until shutdown.
func Listen() error {
	cfg := server.app.Config()
	addr := fmt.Sprintf("%s:%d", cfg.Web.Host, cfg.Web.Port)
	zap.S().Infof("web server listening on %s", addr)
	err := server.root.Start(addr)
	if err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests.
func Shutdown(ctx context.Context) error {
	return server.root.Shutdown(ctx)
}

// Route registration helpers used by the api packages.

func ApiGET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	server.root.GET(path, h, m...)
}

func ApiPOST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	server.root.POST(path, h, m...)
}

func ApiPUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	server.root.PUT(path, h, m...)
}

func ApiDELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	server.root.DELETE(path, h, m...)
}

// Inject binds the composition-root handles into a request context. The
// request middleware calls this on every request; tests call it directly.
func Inject(c echo.Context, cfg *config.AppConfig, st *store.Store, view *catalog.View) {
	c.Set(configContextKey, cfg)
	c.Set(storeContextKey, st)
	c.Set(viewContextKey, view)
}

// GetConfig returns the injected application configuration.
func GetConfig(c echo.Context) *config.AppConfig {
	return c.Get(configContextKey).(*config.AppConfig)
}

// GetStore returns the injected record store handle.
func GetStore(c echo.Context) *store.Store {
	return c.Get(storeContextKey).(*store.Store)
}

// GetView returns the injected live catalog view.
func GetView(c echo.Context) *catalog.View {
	return c.Get(viewContextKey).(*catalog.View)
}
