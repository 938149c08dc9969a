package httpserver

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/magazin/internal/events"
	"github.com/Skotchmaster/magazin/internal/service"
	"github.com/Skotchmaster/magazin/internal/transport"
	"github.com/Skotchmaster/magazin/pkg/logging"
)

type CommentHTTP struct {
	Svc    *service.CommentService
	Events events.Publisher
}

func (h *CommentHTTP) AddComment(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "comment.add_comment")

	productID, err := parseID(c)
	if err != nil {
		l.Warn("add_comment_failed", "status", 400, "reason", "bad product id", "id", c.Param("id"), "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var form transport.CommentForm
	if err := c.Bind(&form); err != nil {
		l.Warn("add_comment_failed", "status", 400, "reason", "invalid form", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}

	comment, err := h.Svc.AddComment(ctx, productID, form)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			l.Warn("add_comment_failed", "status", 400, "reason", "validation", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, publicMessage(err))
		case errors.Is(err, service.ErrNotFound):
			l.Warn("add_comment_failed", "status", 404, "reason", "product not found", "id", productID)
			return echo.NewHTTPError(http.StatusNotFound, "product not found")
		default:
			l.Error("add_comment_failed", "status", 500, "reason", "cannot save comment", "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "cannot save comment")
		}
	}

	publish(ctx, h.Events, events.TopicComment, strconv.FormatUint(uint64(productID), 10), map[string]any{
		"type":       "comment_added",
		"comment_id": comment.ID,
		"product_id": productID,
		"author":     comment.Author,
	})

	l.Info("add_comment_success", "comment_id", comment.ID, "product_id", productID)
	return c.Redirect(http.StatusSeeOther, fmt.Sprintf("/product/%d", productID))
}
