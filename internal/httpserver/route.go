package httpserver

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/magazin/pkg/logging"
)

type Deps struct {
	CatalogHandler *CatalogHTTP
	CommentHandler *CommentHTTP
	CartHandler    *CartHTTP
	// Ready reports whether the store is reachable.
	Ready func(ctx context.Context) error
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error {
		if d.Ready != nil {
			if err := d.Ready(c.Request().Context()); err != nil {
				logging.FromContext(c.Request().Context()).Error("readiness_failed", "status", 503, "error", err)
				return c.NoContent(http.StatusServiceUnavailable)
			}
		}
		return c.NoContent(http.StatusOK)
	})

	e.GET("/", d.CatalogHandler.Index)
	e.GET("/catalog", d.CatalogHandler.Catalog)
	e.GET("/subcategory/:id", d.CatalogHandler.Subcategory)
	e.GET("/product/:id", d.CatalogHandler.Product)
	e.GET("/search", d.CatalogHandler.Search)

	e.POST("/add_comment/:id", d.CommentHandler.AddComment)

	e.GET("/add_to_cart/:id", d.CartHandler.AddToCart)
	e.GET("/cart", d.CartHandler.GetCart)
	e.POST("/cart", d.CartHandler.PostCart)
	e.GET("/clear_cart", d.CartHandler.ClearCart)

	e.GET("/contacts", Contacts)
	e.GET("/order_confirmation", OrderConfirmation)
}
