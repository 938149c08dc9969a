package httpserver

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/magazin/internal/events"
	"github.com/Skotchmaster/magazin/internal/service"
	"github.com/Skotchmaster/magazin/internal/session"
	"github.com/Skotchmaster/magazin/internal/transport"
	"github.com/Skotchmaster/magazin/pkg/logging"
)

type CartHTTP struct {
	Svc      *service.CheckoutService
	Sessions *session.Store
	Events   events.Publisher
}

func parseQty(raw string) (int, error) {
	if raw == "" {
		return 1, nil
	}
	qty, err := strconv.Atoi(raw)
	if err != nil || qty < 1 {
		return 0, errors.New("qty must be a positive integer")
	}
	return qty, nil
}

func (h *CartHTTP) AddToCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.add_to_cart")

	id, err := parseID(c)
	if err != nil {
		l.Warn("add_to_cart_failed", "status", 400, "reason", "bad product id", "id", c.Param("id"), "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	qty, err := parseQty(c.QueryParam("qty"))
	if err != nil {
		l.Warn("add_to_cart_failed", "status", 400, "reason", "bad qty", "qty", c.QueryParam("qty"), "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	crt := session.FromContext(ctx)
	if err := crt.Add(id, qty); err != nil {
		l.Warn("add_to_cart_failed", "status", 400, "reason", "quantity too large", "product_id", id, "qty", qty, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "quantity too large")
	}
	if err := h.Sessions.Save(c, crt); err != nil {
		l.Error("add_to_cart_failed", "status", 500, "reason", "cannot save session", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot save cart")
	}

	publish(ctx, h.Events, events.TopicCart, strconv.FormatUint(uint64(id), 10), map[string]any{
		"type":       "item_added",
		"product_id": id,
		"qty":        qty,
	})

	l.Info("add_to_cart_success", "product_id", id, "qty", qty)
	return c.Redirect(http.StatusSeeOther, "/cart")
}

func (h *CartHTTP) GetCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.get_cart")

	crt := session.FromContext(ctx)
	view, err := h.Svc.ViewCart(ctx, crt)
	if err != nil {
		l.Error("get_cart_failed", "status", 500, "reason", "cannot price cart", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot get cart")
	}

	data := echo.Map{"view": view}
	if len(view.Missing) > 0 {
		for _, id := range view.Missing {
			crt.Remove(id)
		}
		if err := h.Sessions.Save(c, crt); err != nil {
			l.Error("get_cart_failed", "status", 500, "reason", "cannot save session", "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "cannot save cart")
		}
		l.Warn("cart_pruned", "missing", view.Missing)
		data["notice"] = "Some products are no longer available and were removed from your cart."
	}

	return c.Render(http.StatusOK, "cart.html", data)
}

func (h *CartHTTP) PostCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.post_cart")

	var form transport.OrderForm
	if err := c.Bind(&form); err != nil {
		l.Warn("place_order_failed", "status", 400, "reason", "invalid form", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}

	crt := session.FromContext(ctx)
	order, err := h.Svc.PlaceOrder(ctx, crt, form)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("place_order_failed", "status", 400, "reason", "validation", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, publicMessage(err))
		}
		l.Error("place_order_failed", "status", 500, "reason", "cannot save order", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot place order")
	}

	if err := h.Sessions.Save(c, crt); err != nil {
		l.Error("place_order_failed", "status", 500, "reason", "cannot save session", "order_id", order.ID, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot save cart")
	}

	lines := make([]map[string]any, 0, len(order.Lines))
	for _, ln := range order.Lines {
		lines = append(lines, map[string]any{
			"product_id": ln.ProductID,
			"qty":        ln.Quantity,
			"unit_price": ln.UnitPrice.StringFixed(2),
		})
	}
	publish(ctx, h.Events, events.TopicOrder, strconv.FormatUint(uint64(order.ID), 10), map[string]any{
		"type":        "order_created",
		"order_id":    order.ID,
		"total_price": order.TotalPrice.StringFixed(2),
		"lines":       lines,
	})

	l.Info("place_order_success", "order_id", order.ID, "total", order.TotalPrice.StringFixed(2))
	return c.Redirect(http.StatusSeeOther, "/order_confirmation")
}

func (h *CartHTTP) ClearCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.clear_cart")

	crt := session.FromContext(ctx)
	crt.Clear()
	if err := h.Sessions.Save(c, crt); err != nil {
		l.Error("clear_cart_failed", "status", 500, "reason", "cannot save session", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot save cart")
	}

	publish(ctx, h.Events, events.TopicCart, sessionKey(c), map[string]any{
		"type": "cart_cleared",
	})

	return c.Redirect(http.StatusSeeOther, "/cart")
}

// sessionKey partitions cart events by request id when one is present.
func sessionKey(c echo.Context) string {
	if rid := strings.TrimSpace(c.Response().Header().Get(echo.HeaderXRequestID)); rid != "" {
		return rid
	}
	return uuid.NewString()
}
