package httpserver

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/magazin/internal/service"
	"github.com/Skotchmaster/magazin/pkg/logging"
)

// ErrorHandler renders error.html. Messages of 5xx errors never reach the
// client.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
	}

	msg := http.StatusText(code)
	if he != nil && code < http.StatusInternalServerError {
		msg = fmt.Sprint(he.Message)
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(code)
		return
	}

	data := echo.Map{"status": code, "message": msg}
	if rerr := c.Render(code, "error.html", data); rerr != nil {
		logging.FromContext(c.Request().Context()).Error("render_error_page_failed", "status", code, "error", rerr)
		_ = c.String(code, msg)
	}
}

// publicMessage strips the sentinel prefix from a validation error so the
// customer sees only the detail.
func publicMessage(err error) string {
	return strings.TrimPrefix(err.Error(), service.ErrValidation.Error()+": ")
}
