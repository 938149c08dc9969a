package httpserver

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/magazin/internal/service"
	"github.com/Skotchmaster/magazin/pkg/logging"
)

type CatalogHTTP struct {
	Svc      *service.CatalogService
	Comments *service.CommentService
}

func parseID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, errors.New("id must be a positive integer")
	}
	return uint(id), nil
}

func (h *CatalogHTTP) Index(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.index")

	popular, err := h.Svc.GetPopularProducts(ctx)
	if err != nil {
		l.Error("index_failed", "status", 500, "reason", "cannot get popular products", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot get popular products")
	}

	comments, err := h.Comments.GetRecentComments(ctx, service.RecentCommentsLimit)
	if err != nil {
		l.Error("index_failed", "status", 500, "reason", "cannot get recent comments", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot get recent comments")
	}

	return c.Render(http.StatusOK, "index.html", echo.Map{
		"popular":  popular,
		"comments": comments,
	})
}

func (h *CatalogHTTP) Catalog(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.catalog")

	categories, err := h.Svc.GetCatalog(ctx)
	if err != nil {
		l.Error("catalog_failed", "status", 500, "reason", "cannot get catalog", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot get catalog")
	}

	popular, err := h.Svc.GetPopularProducts(ctx)
	if err != nil {
		l.Error("catalog_failed", "status", 500, "reason", "cannot get popular products", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot get popular products")
	}

	return c.Render(http.StatusOK, "catalog.html", echo.Map{
		"categories":          categories,
		"popular":             popular,
		"current_subcategory": uint(0),
	})
}

func (h *CatalogHTTP) Subcategory(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.subcategory")

	id, err := parseID(c)
	if err != nil {
		l.Warn("subcategory_failed", "status", 400, "reason", "bad id", "id", c.Param("id"), "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	sub, err := h.Svc.GetSubcategory(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("subcategory_failed", "status", 404, "reason", "subcategory not found", "id", id)
			return echo.NewHTTPError(http.StatusNotFound, "subcategory not found")
		}
		l.Error("subcategory_failed", "status", 500, "reason", "cannot get subcategory", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot get subcategory")
	}

	categories, err := h.Svc.GetCatalog(ctx)
	if err != nil {
		l.Error("subcategory_failed", "status", 500, "reason", "cannot get catalog", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot get catalog")
	}

	products, err := h.Svc.GetProductsBySubcategory(ctx, id)
	if err != nil {
		l.Error("subcategory_failed", "status", 500, "reason", "cannot get products", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot get products")
	}

	return c.Render(http.StatusOK, "catalog.html", echo.Map{
		"categories":          categories,
		"subcategory":         sub,
		"products":            products,
		"current_subcategory": sub.ID,
	})
}

func (h *CatalogHTTP) Product(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.product")

	id, err := parseID(c)
	if err != nil {
		l.Warn("product_failed", "status", 400, "reason", "bad id", "id", c.Param("id"), "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	product, err := h.Svc.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("product_failed", "status", 404, "reason", "product not found", "id", id)
			return echo.NewHTTPError(http.StatusNotFound, "product not found")
		}
		l.Error("product_failed", "status", 500, "reason", "cannot get product", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot get product")
	}

	comments, err := h.Comments.GetComments(ctx, id)
	if err != nil {
		l.Error("product_failed", "status", 500, "reason", "cannot get comments", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot get comments")
	}

	return c.Render(http.StatusOK, "product.html", echo.Map{
		"product":  product,
		"comments": comments,
	})
}

func (h *CatalogHTTP) Search(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.search")

	q := strings.TrimSpace(c.QueryParam("q"))
	products, err := h.Svc.SearchProducts(ctx, q)
	if err != nil {
		if errors.Is(err, service.ErrEmptyQuery) {
			return c.Redirect(http.StatusSeeOther, "/catalog")
		}
		l.Error("search_failed", "status", 500, "reason", "cannot search products", "query", q, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot search products")
	}

	l.Info("search_success", "query", q, "found", len(products))
	return c.Render(http.StatusOK, "catalog.html", echo.Map{
		"products": products,
		"query":    q,
	})
}

func Contacts(c echo.Context) error {
	return c.Render(http.StatusOK, "contacts.html", nil)
}

func OrderConfirmation(c echo.Context) error {
	return c.Render(http.StatusOK, "order_confirmation.html", nil)
}
