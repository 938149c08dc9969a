package httpserver

import (
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/Skotchmaster/magazin/internal/middleware/csrf"
	"github.com/Skotchmaster/magazin/internal/session"
	loggingmw "github.com/Skotchmaster/magazin/pkg/middleware/logging"
)

type Options struct {
	Sessions     *session.Store
	SecureCookie bool
}

// New builds the storefront: middleware chain, renderer and routes.
func New(d *Deps, opts Options, logger *slog.Logger) (*echo.Echo, error) {
	renderer, err := NewRenderer()
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = renderer
	e.HTTPErrorHandler = ErrorHandler

	csrfCfg := csrf.DefaultConfig()
	csrfCfg.Secure = opts.SecureCookie

	e.Use(middleware.RequestID())
	e.Use(loggingmw.RequestLogger(logger))
	e.Use(middleware.Recover())
	e.Use(opts.Sessions.Middleware())
	e.Use(csrf.Middleware(csrfCfg))

	Register(e, d)
	return e, nil
}
